package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type TaskRepository struct {
	store *Store
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(store *Store) *TaskRepository {
	return &TaskRepository{store: store}
}

func (r *TaskRepository) ListTasks(_ context.Context, ownerID string, includeShared bool) ([]domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	tasks := make([]domain.Task, 0)
	for _, task := range r.store.tasks {
		if task.OwnerID == ownerID || (includeShared && task.SharedWithPromo) {
			tasks = append(tasks, cloneTask(task))
		}
	}
	sortByCreation(tasks,
		func(t domain.Task) time.Time { return t.CreatedAt },
		func(t domain.Task) string { return t.ID },
	)
	return tasks, nil
}

func (r *TaskRepository) CreateTask(_ context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	task := domain.Task{
		ID:                uuid.NewString(),
		OwnerID:           input.OwnerID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		Priority:          input.Priority,
		DueDate:           input.DueDate,
		DocumentationLink: input.DocumentationLink,
		Tags:              slices.Clone(input.Tags),
		SharedWithPromo:   input.SharedWithPromo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	r.store.tasks[task.ID] = cloneTask(task)
	return cloneTask(task), nil
}

func (r *TaskRepository) GetTask(_ context.Context, id string) (domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *TaskRepository) GetOwnedTask(_ context.Context, id, ownerID string) (domain.Task, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	task, ok := r.store.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	return cloneTask(task), nil
}

func (r *TaskRepository) UpdateTask(_ context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	return r.update(id, "", input)
}

func (r *TaskRepository) UpdateOwnedTask(_ context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	return r.update(id, ownerID, input)
}

func (r *TaskRepository) DeleteOwnedTask(_ context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok || task.OwnerID != ownerID {
		return domain.ErrTaskNotFound
	}
	delete(r.store.tasks, id)
	return nil
}

// update with an empty ownerID is unscoped.
func (r *TaskRepository) update(id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	task, ok := r.store.tasks[id]
	if !ok || (ownerID != "" && task.OwnerID != ownerID) {
		return domain.Task{}, domain.ErrTaskNotFound
	}
	input.Apply(&task)
	task.UpdatedAt = r.store.now()
	r.store.tasks[id] = cloneTask(task)
	return cloneTask(task), nil
}

func cloneTask(task domain.Task) domain.Task {
	task.Description = clonePtr(task.Description)
	task.DueDate = clonePtr(task.DueDate)
	task.DocumentationLink = clonePtr(task.DocumentationLink)
	task.Tags = slices.Clone(task.Tags)
	return task
}
