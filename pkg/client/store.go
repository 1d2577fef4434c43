package client

import (
	"context"
	"slices"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Resource is the server side of a Store.
type Resource[T, D any] interface {
	List(ctx context.Context) ([]T, error)
	Create(ctx context.Context, draft D) (T, error)
	Update(ctx context.Context, id string, fields Fields) (T, error)
	Delete(ctx context.Context, id string) error
	ID(item T) string
}

// Store mirrors a server collection. Mutations are applied locally only
// after the server confirms them, and the local copy is replaced with what
// the server returned. A failed call leaves the collection untouched and is
// reported by Err until the next call starts.
type Store[T, D any] struct {
	resource Resource[T, D]
	fetches  singleflight.Group

	mu       sync.RWMutex
	items    []T
	inFlight int
	err      error
}

func NewStore[T, D any](resource Resource[T, D]) *Store[T, D] {
	return &Store[T, D]{resource: resource}
}

// Fetch replaces the collection with the server's list. Concurrent calls
// share one request, which runs detached from any single caller's
// cancellation; a caller whose ctx ends stops waiting without touching Err.
func (s *Store[T, D]) Fetch(ctx context.Context) error {
	s.begin()
	defer s.end()

	shared := context.WithoutCancel(ctx)
	result := s.fetches.DoChan("list", func() (any, error) {
		items, err := s.resource.List(shared)
		if err != nil {
			return nil, err
		}
		s.mu.Lock()
		s.items = items
		s.mu.Unlock()
		return nil, nil
	})

	select {
	case res := <-result:
		if res.Err != nil {
			s.fail(res.Err)
		}
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *Store[T, D]) Add(ctx context.Context, draft D) (T, error) {
	s.begin()
	defer s.end()

	item, err := s.resource.Create(ctx, draft)
	if err != nil {
		s.fail(err)
		return item, err
	}

	s.mu.Lock()
	s.items = append(s.items, item)
	s.mu.Unlock()
	return item, nil
}

// Update replaces the matching local item with the server's full record.
func (s *Store[T, D]) Update(ctx context.Context, id string, fields Fields) (T, error) {
	s.begin()
	defer s.end()

	item, err := s.resource.Update(ctx, id, fields)
	if err != nil {
		s.fail(err)
		return item, err
	}

	s.mu.Lock()
	if i := s.indexOf(id); i >= 0 {
		s.items[i] = item
	}
	s.mu.Unlock()
	return item, nil
}

func (s *Store[T, D]) Delete(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if err := s.resource.Delete(ctx, id); err != nil {
		s.fail(err)
		return err
	}

	s.mu.Lock()
	s.items = slices.DeleteFunc(s.items, func(item T) bool {
		return s.resource.ID(item) == id
	})
	s.mu.Unlock()
	return nil
}

// Items returns a copy of the collection.
func (s *Store[T, D]) Items() []T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.items)
}

func (s *Store[T, D]) Get(id string) (T, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.indexOf(id); i >= 0 {
		return s.items[i], true
	}
	var zero T
	return zero, false
}

func (s *Store[T, D]) IsLoading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.inFlight > 0
}

// Err is the failure of the most recent call, or nil.
func (s *Store[T, D]) Err() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.err
}

// indexOf must be called with mu held.
func (s *Store[T, D]) indexOf(id string) int {
	return slices.IndexFunc(s.items, func(item T) bool {
		return s.resource.ID(item) == id
	})
}

func (s *Store[T, D]) begin() {
	s.mu.Lock()
	s.inFlight++
	s.err = nil
	s.mu.Unlock()
}

func (s *Store[T, D]) end() {
	s.mu.Lock()
	s.inFlight--
	s.mu.Unlock()
}

func (s *Store[T, D]) fail(err error) {
	s.mu.Lock()
	s.err = err
	s.mu.Unlock()
}

type TaskStore struct {
	*Store[Task, NewTask]
}

func NewTaskStore(c *Client) *TaskStore {
	return &TaskStore{Store: NewStore[Task, NewTask](taskResource{c})}
}

// Move changes only the status of a task, as dropping a card on another
// board column does.
func (s *TaskStore) Move(ctx context.Context, id, status string) (Task, error) {
	return s.Update(ctx, id, Fields{"status": status})
}

// ByStatus returns the tasks of one board column in collection order.
func (s *TaskStore) ByStatus(status string) []Task {
	return slices.DeleteFunc(s.Items(), func(task Task) bool {
		return task.Status != status
	})
}

type NoteStore struct {
	*Store[Note, NewNote]
}

func NewNoteStore(c *Client) *NoteStore {
	return &NoteStore{Store: NewStore[Note, NewNote](noteResource{c})}
}

type taskResource struct {
	client *Client
}

func (r taskResource) List(ctx context.Context) ([]Task, error) {
	return r.client.ListTasks(ctx)
}

func (r taskResource) Create(ctx context.Context, draft NewTask) (Task, error) {
	return r.client.CreateTask(ctx, draft)
}

func (r taskResource) Update(ctx context.Context, id string, fields Fields) (Task, error) {
	return r.client.UpdateTask(ctx, id, fields)
}

func (r taskResource) Delete(ctx context.Context, id string) error {
	return r.client.DeleteTask(ctx, id)
}

func (taskResource) ID(task Task) string {
	return task.ID
}

type noteResource struct {
	client *Client
}

func (r noteResource) List(ctx context.Context) ([]Note, error) {
	return r.client.ListNotes(ctx)
}

func (r noteResource) Create(ctx context.Context, draft NewNote) (Note, error) {
	return r.client.CreateNote(ctx, draft)
}

func (r noteResource) Update(ctx context.Context, id string, fields Fields) (Note, error) {
	return r.client.UpdateNote(ctx, id, fields)
}

func (r noteResource) Delete(ctx context.Context, id string) error {
	return r.client.DeleteNote(ctx, id)
}

func (noteResource) ID(note Note) string {
	return note.ID
}
