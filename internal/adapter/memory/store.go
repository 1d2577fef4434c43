// Package memory is a process-local backend. It keeps the same ownership
// rules as the database adapters and is used for local runs and tests.
package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"devflow/internal/core/domain"
)

type Option func(*Store)

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

type Store struct {
	mu    sync.RWMutex
	now   func() time.Time
	tasks map[string]domain.Task
	notes map[string]domain.Note
	users map[string]domain.User
}

func NewStore(opts ...Option) *Store {
	s := &Store{
		now:   func() time.Time { return time.Now().UTC() },
		tasks: make(map[string]domain.Task),
		notes: make(map[string]domain.Note),
		users: make(map[string]domain.User),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Ping(context.Context) error {
	return nil
}

func sortByCreation[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	slices.SortFunc(items, func(a, b T) int {
		if c := createdAt(a).Compare(createdAt(b)); c != 0 {
			return c
		}
		if id(a) < id(b) {
			return -1
		}
		if id(a) > id(b) {
			return 1
		}
		return 0
	})
}

// clonePtr returns a pointer to a copy of *p, so records handed out never
// alias the stored ones.
func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
