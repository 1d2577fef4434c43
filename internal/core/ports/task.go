package ports

import (
	"context"

	"devflow/internal/core/domain"
)

// TaskRepository methods suffixed "Owned" carry the owner in the same query
// predicate as the id, so a record owned by someone else reads as not found.
type TaskRepository interface {
	ListTasks(ctx context.Context, ownerID string, includeShared bool) ([]domain.Task, error)
	CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, id string) (domain.Task, error)
	GetOwnedTask(ctx context.Context, id, ownerID string) (domain.Task, error)
	UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error)
	UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteOwnedTask(ctx context.Context, id, ownerID string) error
}

type TaskService interface {
	ListTasks(ctx context.Context, caller domain.Identity) ([]domain.Task, error)
	CreateTask(ctx context.Context, caller domain.Identity, input domain.CreateTaskInput) (domain.Task, error)
	GetTask(ctx context.Context, caller domain.Identity, id string) (domain.Task, error)
	UpdateTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error)
	PatchTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error)
	DeleteTask(ctx context.Context, caller domain.Identity, id string) error
}
