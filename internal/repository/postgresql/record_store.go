package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type recordStoreImpl struct {
	db *database.DB
}

// NewRecordStore stores every collection in the records table, one row per
// document.
func NewRecordStore(db *database.DB) record.Store {
	return &recordStoreImpl{db: db}
}

func (r *recordStoreImpl) List(ctx context.Context, c record.Collection) ([]record.Document, error) {
	if !c.Valid() {
		return nil, record.ErrUnknownCollection
	}
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `
		SELECT id, version, data
		FROM records
		WHERE collection = $1
		ORDER BY position`, string(c))
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}
	defer rows.Close()

	docs := []record.Document{}
	for rows.Next() {
		var (
			d    record.Document
			data []byte
		)
		if err := rows.Scan(&d.ID, &d.Version, &data); err != nil {
			return nil, record.Corrupt(c, d.ID, err)
		}
		d.Data = json.RawMessage(data)
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", c, err)
	}

	if err := record.CheckReadable(c, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *recordStoreImpl) Replace(ctx context.Context, c record.Collection, docs []record.Document) error {
	if err := record.CheckDocuments(c, docs); err != nil {
		return err
	}

	return WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, `DELETE FROM records WHERE collection = $1`, string(c)); err != nil {
			return fmt.Errorf("failed to clear %s: %w", c, err)
		}
		for _, d := range docs {
			version := d.Version
			if version <= 0 {
				version = 1
			}
			if _, err := tx.Exec(ctx, `
				INSERT INTO records (collection, id, version, data)
				VALUES ($1, $2, $3, $4)`,
				string(c), d.ID, version, []byte(d.Data)); err != nil {
				return fmt.Errorf("failed to insert %s/%s: %w", c, d.ID, err)
			}
		}
		return nil
	})
}

func (r *recordStoreImpl) Find(ctx context.Context, c record.Collection, id string) (record.Document, error) {
	if !c.Valid() {
		return record.Document{}, record.ErrUnknownCollection
	}
	q := GetQuerier(ctx, r.db)

	var (
		d    record.Document
		data []byte
	)
	err := q.QueryRow(ctx, `
		SELECT id, version, data
		FROM records
		WHERE collection = $1 AND id = $2`, string(c), id).Scan(&d.ID, &d.Version, &data)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return record.Document{}, record.ErrNotFound
		}
		return record.Document{}, fmt.Errorf("failed to find %s/%s: %w", c, id, err)
	}
	d.Data = json.RawMessage(data)
	return d, nil
}

func (r *recordStoreImpl) Upsert(ctx context.Context, c record.Collection, doc record.Document) (record.Document, error) {
	if err := record.CheckDocuments(c, []record.Document{doc}); err != nil {
		return record.Document{}, err
	}
	q := GetQuerier(ctx, r.db)

	var version int64
	if doc.Version == 0 {
		err := q.QueryRow(ctx, `
			INSERT INTO records (collection, id, version, data)
			VALUES ($1, $2, 1, $3)
			ON CONFLICT (collection, id) DO NOTHING
			RETURNING version`, string(c), doc.ID, []byte(doc.Data)).Scan(&version)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return record.Document{}, record.ErrDuplicateID
			}
			return record.Document{}, fmt.Errorf("failed to insert %s/%s: %w", c, doc.ID, err)
		}
		doc.Version = version
		return doc, nil
	}

	err := q.QueryRow(ctx, `
		UPDATE records
		SET data = $4, version = version + 1, updated_at = NOW()
		WHERE collection = $1 AND id = $2 AND version = $3
		RETURNING version`, string(c), doc.ID, doc.Version, []byte(doc.Data)).Scan(&version)
	if err == nil {
		doc.Version = version
		return doc, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return record.Document{}, fmt.Errorf("failed to update %s/%s: %w", c, doc.ID, err)
	}

	var exists bool
	if err := q.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM records WHERE collection = $1 AND id = $2)`,
		string(c), doc.ID).Scan(&exists); err != nil {
		return record.Document{}, fmt.Errorf("failed to check %s/%s: %w", c, doc.ID, err)
	}
	if !exists {
		return record.Document{}, record.ErrNotFound
	}
	return record.Document{}, record.ErrVersionConflict
}

func (r *recordStoreImpl) Delete(ctx context.Context, c record.Collection, id string) error {
	if !c.Valid() {
		return record.ErrUnknownCollection
	}
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM records WHERE collection = $1 AND id = $2`, string(c), id)
	if err != nil {
		return fmt.Errorf("failed to delete %s/%s: %w", c, id, err)
	}
	if tag.RowsAffected() == 0 {
		return record.ErrNotFound
	}
	return nil
}
