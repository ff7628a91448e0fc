// Package memory holds in-process implementations of the storage interfaces.
package memory

import (
	"context"
	"sync"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

type collection struct {
	order []string
	docs  map[string]record.Document
}

// Store is a record.Store kept in process memory.
type Store struct {
	mu          sync.RWMutex
	collections map[record.Collection]*collection
}

func NewStore() *Store {
	return &Store{collections: make(map[record.Collection]*collection)}
}

func (s *Store) List(ctx context.Context, c record.Collection) ([]record.Document, error) {
	if !c.Valid() {
		return nil, record.ErrUnknownCollection
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[c]
	if !ok {
		return []record.Document{}, nil
	}
	out := make([]record.Document, 0, len(col.order))
	for _, id := range col.order {
		out = append(out, clone(col.docs[id]))
	}
	return out, nil
}

func (s *Store) Replace(ctx context.Context, c record.Collection, docs []record.Document) error {
	if err := record.CheckDocuments(c, docs); err != nil {
		return err
	}
	col := &collection{
		order: make([]string, 0, len(docs)),
		docs:  make(map[string]record.Document, len(docs)),
	}
	for _, d := range docs {
		d = clone(d)
		if d.Version <= 0 {
			d.Version = 1
		}
		col.order = append(col.order, d.ID)
		col.docs[d.ID] = d
	}

	s.mu.Lock()
	s.collections[c] = col
	s.mu.Unlock()
	return nil
}

func (s *Store) Find(ctx context.Context, c record.Collection, id string) (record.Document, error) {
	if !c.Valid() {
		return record.Document{}, record.ErrUnknownCollection
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	col, ok := s.collections[c]
	if !ok {
		return record.Document{}, record.ErrNotFound
	}
	d, ok := col.docs[id]
	if !ok {
		return record.Document{}, record.ErrNotFound
	}
	return clone(d), nil
}

func (s *Store) Upsert(ctx context.Context, c record.Collection, doc record.Document) (record.Document, error) {
	if err := record.CheckDocuments(c, []record.Document{doc}); err != nil {
		return record.Document{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c]
	if !ok {
		col = &collection{docs: make(map[string]record.Document)}
		s.collections[c] = col
	}

	stored, exists := col.docs[doc.ID]
	switch {
	case doc.Version == 0 && exists:
		return record.Document{}, record.ErrDuplicateID
	case doc.Version == 0:
		col.order = append(col.order, doc.ID)
	case !exists:
		return record.Document{}, record.ErrNotFound
	case stored.Version != doc.Version:
		return record.Document{}, record.ErrVersionConflict
	}

	next := clone(doc)
	next.Version = doc.Version + 1
	col.docs[doc.ID] = next
	return clone(next), nil
}

func (s *Store) Delete(ctx context.Context, c record.Collection, id string) error {
	if !c.Valid() {
		return record.ErrUnknownCollection
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	col, ok := s.collections[c]
	if !ok {
		return record.ErrNotFound
	}
	if _, ok := col.docs[id]; !ok {
		return record.ErrNotFound
	}
	delete(col.docs, id)
	for i, existing := range col.order {
		if existing == id {
			col.order = append(col.order[:i], col.order[i+1:]...)
			break
		}
	}
	return nil
}

func clone(d record.Document) record.Document {
	if d.Data != nil {
		d.Data = append([]byte(nil), d.Data...)
	}
	return d
}
