package memory

import (
	"context"
	"sync"

	"budget/internal/core"
)

// Store is a Mirror that keeps rows in memory. It is used in tests and when
// no external mirror is configured.
type Store struct {
	mu    sync.Mutex
	name  string
	rows  []core.Record
	saves int
	err   error
}

func New(name string) *Store {
	if name == "" {
		name = "memory"
	}
	return &Store{name: name}
}

// FailWith makes every following Mirror call return err.
func (s *Store) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *Store) Name() string {
	return s.name
}

func (s *Store) Mirror(_ context.Context, snap core.Snapshot, appendMode bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	if !appendMode {
		s.rows = nil
	}
	s.rows = append(s.rows, snap.Records()...)
	s.saves++
	return nil
}

// Rows returns a copy of the mirrored rows.
func (s *Store) Rows() []core.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]core.Record(nil), s.rows...)
}

// Saves counts successful Mirror calls.
func (s *Store) Saves() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saves
}
