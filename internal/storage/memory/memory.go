// Package memory implements the record store in process memory. It is
// the zero-setup backend and the reference implementation the tests
// run against.
package memory

import (
	"context"
	"slices"
	"sync"

	"github.com/google/uuid"

	"moneylog/internal/core"
	"moneylog/internal/query"
)

type Store struct {
	mu      sync.Mutex
	entries []core.Entry
}

func New() *Store {
	return &Store{}
}

func (s *Store) Close() error { return nil }

func (s *Store) Insert(_ context.Context, e core.Entry) (core.Entry, error) {
	if err := e.Validate(); err != nil {
		return core.Entry{}, err
	}
	e.ID = uuid.NewString()
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = append(s.entries, copyEntry(e))
	return e, nil
}

func (s *Store) Find(_ context.Context, p query.Predicate, sort query.SortSpec) ([]core.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []core.Entry
	for _, e := range s.entries {
		if p.Match(e) {
			out = append(out, copyEntry(e))
		}
	}
	sort.Apply(out)
	return out, nil
}

func (s *Store) UpdateByID(_ context.Context, id string, e core.Entry) (*core.Entry, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			e.ID = id
			s.entries[i] = copyEntry(e)
			updated := copyEntry(e)
			return &updated, nil
		}
	}
	return nil, nil
}

func (s *Store) DeleteByID(_ context.Context, id string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i := range s.entries {
		if s.entries[i].ID == id {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

// Len reports the number of stored entries; test helper.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

func copyEntry(e core.Entry) core.Entry {
	e.Tags = slices.Clone(e.Tags)
	return e
}
