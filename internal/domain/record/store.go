// Package record defines the persistence facade every other part of the
// application reads and writes through.
package record

import (
	"context"
	"encoding/json"
)

// Collection names one logical collection. The values double as storage
// keys, so a browser localStorage dump maps onto them one to one.
type Collection string

const (
	Users          Collection = "dayflow_users"
	Attendance     Collection = "dayflow_attendance"
	LeaveRequests  Collection = "dayflow_leave_requests"
	SalaryRequests Collection = "dayflow_salary_requests"
	Payroll        Collection = "dayflow_payroll"
)

// Collections lists every known collection in a stable order.
func Collections() []Collection {
	return []Collection{Users, Attendance, LeaveRequests, SalaryRequests, Payroll}
}

func (c Collection) Valid() bool {
	for _, known := range Collections() {
		if c == known {
			return true
		}
	}
	return false
}

// Document is one stored record. Version starts at 1 and increases by one on
// every successful write of that id.
type Document struct {
	ID      string
	Version int64
	Data    json.RawMessage
}

// Store is implemented by the memory, postgres and redis backends.
type Store interface {
	// List returns the whole collection in insertion order. A collection that
	// was never written is empty, not an error.
	List(ctx context.Context, c Collection) ([]Document, error)

	// Replace overwrites the whole collection with docs, keeping their order.
	Replace(ctx context.Context, c Collection, docs []Document) error

	Find(ctx context.Context, c Collection, id string) (Document, error)

	// Upsert inserts doc when doc.Version is zero and fails with ErrDuplicateID
	// if the id is taken. Otherwise it replaces the stored document only when
	// the stored version equals doc.Version. The stored document is returned.
	Upsert(ctx context.Context, c Collection, doc Document) (Document, error)

	Delete(ctx context.Context, c Collection, id string) error
}
