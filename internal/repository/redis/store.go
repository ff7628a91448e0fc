// Package redis keeps record collections and sessions in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
	goredis "github.com/redis/go-redis/v9"
)

const defaultMaxRetries = 8

// envelope is the stored form of one document. A collection is a JSON array
// of envelopes under one key.
type envelope struct {
	ID      string          `json:"id"`
	Version int64           `json:"version"`
	Data    json.RawMessage `json:"data"`
}

type getter interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
}

// Store is a record.Store where each collection lives under
// prefix + collection name. Keyed writes run inside WATCH/MULTI so two
// writers never silently overwrite each other.
type Store struct {
	rdb        *goredis.Client
	prefix     string
	maxRetries int
}

func NewStore(rdb *goredis.Client, prefix string) *Store {
	return &Store{rdb: rdb, prefix: prefix, maxRetries: defaultMaxRetries}
}

func (s *Store) key(c record.Collection) string {
	return s.prefix + string(c)
}

func (s *Store) load(ctx context.Context, g getter, c record.Collection) ([]envelope, error) {
	raw, err := g.Get(ctx, s.key(c)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return []envelope{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", c, err)
	}

	var envs []envelope
	if err := json.Unmarshal(raw, &envs); err != nil {
		return nil, record.Corrupt(c, "", err)
	}
	for _, e := range envs {
		if e.ID == "" {
			return nil, record.Corrupt(c, "", record.ErrEmptyID)
		}
	}
	return envs, nil
}

func (s *Store) List(ctx context.Context, c record.Collection) ([]record.Document, error) {
	if !c.Valid() {
		return nil, record.ErrUnknownCollection
	}
	envs, err := s.load(ctx, s.rdb, c)
	if err != nil {
		return nil, err
	}
	docs := make([]record.Document, 0, len(envs))
	for _, e := range envs {
		docs = append(docs, record.Document{ID: e.ID, Version: e.Version, Data: e.Data})
	}
	return docs, nil
}

func (s *Store) Replace(ctx context.Context, c record.Collection, docs []record.Document) error {
	if err := record.CheckDocuments(c, docs); err != nil {
		return err
	}
	envs := make([]envelope, 0, len(docs))
	for _, d := range docs {
		version := d.Version
		if version <= 0 {
			version = 1
		}
		envs = append(envs, envelope{ID: d.ID, Version: version, Data: d.Data})
	}
	raw, err := json.Marshal(envs)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", c, err)
	}
	if err := s.rdb.Set(ctx, s.key(c), raw, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s: %w", c, err)
	}
	return nil
}

func (s *Store) Find(ctx context.Context, c record.Collection, id string) (record.Document, error) {
	if !c.Valid() {
		return record.Document{}, record.ErrUnknownCollection
	}
	envs, err := s.load(ctx, s.rdb, c)
	if err != nil {
		return record.Document{}, err
	}
	for _, e := range envs {
		if e.ID == id {
			return record.Document{ID: e.ID, Version: e.Version, Data: e.Data}, nil
		}
	}
	return record.Document{}, record.ErrNotFound
}

func (s *Store) Upsert(ctx context.Context, c record.Collection, doc record.Document) (record.Document, error) {
	if err := record.CheckDocuments(c, []record.Document{doc}); err != nil {
		return record.Document{}, err
	}

	var stored record.Document
	err := s.update(ctx, c, func(envs []envelope) ([]envelope, error) {
		idx := indexOf(envs, doc.ID)
		switch {
		case doc.Version == 0 && idx >= 0:
			return nil, record.ErrDuplicateID
		case doc.Version == 0:
			envs = append(envs, envelope{ID: doc.ID, Version: 1, Data: doc.Data})
			idx = len(envs) - 1
		case idx < 0:
			return nil, record.ErrNotFound
		case envs[idx].Version != doc.Version:
			return nil, record.ErrVersionConflict
		default:
			envs[idx] = envelope{ID: doc.ID, Version: doc.Version + 1, Data: doc.Data}
		}
		stored = record.Document{ID: envs[idx].ID, Version: envs[idx].Version, Data: envs[idx].Data}
		return envs, nil
	})
	if err != nil {
		return record.Document{}, err
	}
	return stored, nil
}

func (s *Store) Delete(ctx context.Context, c record.Collection, id string) error {
	if !c.Valid() {
		return record.ErrUnknownCollection
	}
	return s.update(ctx, c, func(envs []envelope) ([]envelope, error) {
		idx := indexOf(envs, id)
		if idx < 0 {
			return nil, record.ErrNotFound
		}
		return append(envs[:idx], envs[idx+1:]...), nil
	})
}

// update applies fn to the current collection inside an optimistic
// transaction, retrying when another client changed the key meanwhile.
func (s *Store) update(ctx context.Context, c record.Collection, fn func([]envelope) ([]envelope, error)) error {
	key := s.key(c)
	txf := func(tx *goredis.Tx) error {
		envs, err := s.load(ctx, tx, c)
		if err != nil {
			return err
		}
		next, err := fn(envs)
		if err != nil {
			return err
		}
		raw, err := json.Marshal(next)
		if err != nil {
			return fmt.Errorf("failed to encode %s: %w", c, err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, key, raw, 0)
			return nil
		})
		return err
	}

	for i := 0; i < s.maxRetries; i++ {
		err := s.rdb.Watch(ctx, txf, key)
		if errors.Is(err, goredis.TxFailedErr) {
			continue
		}
		return err
	}
	return record.ErrVersionConflict
}

func indexOf(envs []envelope, id string) int {
	for i, e := range envs {
		if e.ID == id {
			return i
		}
	}
	return -1
}
