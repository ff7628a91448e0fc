package record

import (
	"encoding/json"
	"errors"
)

var errInvalidJSON = errors.New("invalid JSON")

// CheckDocuments verifies that docs may be written to c: known collection,
// non-empty unique ids and well-formed JSON payloads.
func CheckDocuments(c Collection, docs []Document) error {
	if !c.Valid() {
		return ErrUnknownCollection
	}
	seen := make(map[string]struct{}, len(docs))
	for _, d := range docs {
		if d.ID == "" {
			return ErrEmptyID
		}
		if _, dup := seen[d.ID]; dup {
			return ErrDuplicateID
		}
		seen[d.ID] = struct{}{}
		if !json.Valid(d.Data) {
			return Corrupt(c, d.ID, errInvalidJSON)
		}
	}
	return nil
}

// CheckReadable reports the first document of a loaded collection that is not
// valid JSON.
func CheckReadable(c Collection, docs []Document) error {
	for _, d := range docs {
		if !json.Valid(d.Data) {
			return Corrupt(c, d.ID, errInvalidJSON)
		}
	}
	return nil
}
