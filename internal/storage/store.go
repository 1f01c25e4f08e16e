// Package storage defines the record-store boundary and its SQLite
// implementation.
package storage

import (
	"context"

	"moneylog/internal/core"
	"moneylog/internal/query"
)

// Store is the durable owner of ledger entries. Implementations:
// SQLite (this package) and an in-memory store (storage/memory).
type Store interface {
	// Insert persists a new entry and returns it with its assigned ID.
	Insert(ctx context.Context, e core.Entry) (core.Entry, error)
	// Find returns the entries matching the predicate in the requested
	// order; zero-value sort means the store's natural (insertion) order.
	Find(ctx context.Context, p query.Predicate, sort query.SortSpec) ([]core.Entry, error)
	// UpdateByID replaces all fields of the identified entry. Returns
	// nil with no error when no entry matches.
	UpdateByID(ctx context.Context, id string, e core.Entry) (*core.Entry, error)
	// DeleteByID removes the identified entry, reporting whether an
	// entry was actually deleted.
	DeleteByID(ctx context.Context, id string) (bool, error)
	Close() error
}
