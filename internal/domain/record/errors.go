package record

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound          = errors.New("record not found")
	ErrDuplicateID       = errors.New("record id already exists")
	ErrVersionConflict   = errors.New("record was modified concurrently")
	ErrCorruptCollection = errors.New("stored collection is corrupt")
	ErrUnknownCollection = errors.New("unknown collection")
	ErrEmptyID           = errors.New("record id is required")
)

// CorruptCollectionError reports a collection whose stored data could not be
// parsed. Only that collection is affected.
type CorruptCollectionError struct {
	Collection Collection
	ID         string
	Err        error
}

func (e *CorruptCollectionError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("collection %s: record %s: %v", e.Collection, e.ID, e.Err)
	}
	return fmt.Sprintf("collection %s: %v", e.Collection, e.Err)
}

func (e *CorruptCollectionError) Unwrap() error { return e.Err }

func (e *CorruptCollectionError) Is(target error) bool {
	return target == ErrCorruptCollection
}

// Corrupt builds a *CorruptCollectionError.
func Corrupt(c Collection, id string, err error) error {
	return &CorruptCollectionError{Collection: c, ID: id, Err: err}
}
