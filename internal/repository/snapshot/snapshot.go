// Package snapshot moves whole collections between a record.Store and a JSON
// object of the form {"<collection>": [ ... ]}, the shape of a browser
// localStorage dump.
package snapshot

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

var errMissingID = errors.New("record has no id")

// Report holds the per-collection outcome of an import. Collections absent
// from the snapshot are not listed.
type Report map[record.Collection]error

// Failed reports whether any collection could not be loaded.
func (r Report) Failed() bool {
	for _, err := range r {
		if err != nil {
			return true
		}
	}
	return false
}

type Options struct {
	// HashPassword turns a legacy plaintext "password" field into
	// "passwordHash". Users carrying plaintext are rejected when nil.
	HashPassword func(password string) (string, error)
	// Location anchors legacy HH:MM attendance clock values. UTC when nil.
	Location *time.Location
}

// Import replaces every collection present in the snapshot. A collection that
// cannot be parsed is reported and skipped; the others still load.
func Import(ctx context.Context, store record.Store, r io.Reader, opts Options) (Report, error) {
	var top map[string]json.RawMessage
	if err := json.NewDecoder(r).Decode(&top); err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}

	for key := range top {
		if !record.Collection(key).Valid() {
			slog.Warn("ignoring unknown snapshot key", "key", key)
		}
	}

	report := make(Report)
	for _, c := range record.Collections() {
		raw, ok := top[string(c)]
		if !ok {
			continue
		}

		docs, err := parseCollection(c, raw, opts)
		if err != nil {
			report[c] = err
			slog.Error("skipping corrupt collection", "collection", c, "error", err)
			continue
		}

		if err := store.Replace(ctx, c, docs); err != nil {
			report[c] = fmt.Errorf("failed to replace %s: %w", c, err)
			continue
		}
		report[c] = nil
		slog.Info("collection imported", "collection", c, "records", len(docs))
	}
	return report, nil
}

// Export writes every collection, including empty ones.
func Export(ctx context.Context, store record.Store, w io.Writer) error {
	out := make(map[string][]json.RawMessage, len(record.Collections()))
	for _, c := range record.Collections() {
		docs, err := store.List(ctx, c)
		if err != nil {
			return fmt.Errorf("failed to list %s: %w", c, err)
		}
		items := make([]json.RawMessage, 0, len(docs))
		for _, d := range docs {
			items = append(items, d.Data)
		}
		out[string(c)] = items
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func parseCollection(c record.Collection, raw json.RawMessage, opts Options) ([]record.Document, error) {
	// localStorage values are strings, so a raw dump double-encodes arrays.
	raw = bytes.TrimSpace(raw)
	if len(raw) > 0 && raw[0] == '"' {
		var inner string
		if err := json.Unmarshal(raw, &inner); err != nil {
			return nil, record.Corrupt(c, "", err)
		}
		raw = json.RawMessage(inner)
	}
	if bytes.Equal(raw, []byte("null")) {
		return []record.Document{}, nil
	}

	var items []map[string]any
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, record.Corrupt(c, "", err)
	}

	docs := make([]record.Document, 0, len(items))
	for _, item := range items {
		id, _ := item["id"].(string)
		if id == "" {
			return nil, record.Corrupt(c, "", errMissingID)
		}

		switch c {
		case record.Users:
			if err := normalizeUser(item, opts); err != nil {
				return nil, record.Corrupt(c, id, err)
			}
		case record.Attendance:
			if err := normalizeAttendance(item, opts); err != nil {
				return nil, record.Corrupt(c, id, err)
			}
		}

		data, err := json.Marshal(item)
		if err != nil {
			return nil, record.Corrupt(c, id, err)
		}
		docs = append(docs, record.Document{ID: id, Data: data})
	}

	if err := record.CheckDocuments(c, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

func normalizeUser(item map[string]any, opts Options) error {
	plain, hasPlain := item["password"].(string)
	delete(item, "password")
	if hash, _ := item["passwordHash"].(string); hash != "" || !hasPlain {
		return nil
	}
	if opts.HashPassword == nil {
		return errors.New("plaintext password without a hasher")
	}
	hash, err := opts.HashPassword(plain)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}
	item["passwordHash"] = hash
	return nil
}

func normalizeAttendance(item map[string]any, opts Options) error {
	loc := opts.Location
	if loc == nil {
		loc = time.UTC
	}
	date, _ := item["date"].(string)
	for _, key := range []string{"checkIn", "checkOut"} {
		value, ok := item[key].(string)
		if !ok || value == "" {
			delete(item, key)
			continue
		}
		if _, err := time.Parse(time.RFC3339, value); err == nil {
			continue
		}
		clock, err := time.ParseInLocation("2006-01-02 15:04", date+" "+value, loc)
		if err != nil {
			return fmt.Errorf("%s: %w", key, err)
		}
		item[key] = clock.Format(time.RFC3339)
	}
	return nil
}
