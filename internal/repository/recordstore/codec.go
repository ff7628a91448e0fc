// Package recordstore implements the domain repositories on top of any
// record.Store backend.
package recordstore

import (
	"encoding/json"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/record"
)

func decode[T any](c record.Collection, d record.Document, setVersion func(*T, int64)) (T, error) {
	var v T
	if err := json.Unmarshal(d.Data, &v); err != nil {
		return v, record.Corrupt(c, d.ID, err)
	}
	setVersion(&v, d.Version)
	return v, nil
}

func decodeAll[T any](c record.Collection, docs []record.Document, setVersion func(*T, int64)) ([]T, error) {
	out := make([]T, 0, len(docs))
	for _, d := range docs {
		v, err := decode(c, d, setVersion)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

func encode(id string, version int64, v any) (record.Document, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return record.Document{}, fmt.Errorf("failed to encode %s: %w", id, err)
	}
	return record.Document{ID: id, Version: version, Data: data}, nil
}
