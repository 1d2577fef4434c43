package service

import (
	"context"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type TaskService struct {
	taskRepository ports.TaskRepository
	promoFit       domain.AllowList
}

func NewTaskService(taskRepository ports.TaskRepository, promoFit domain.AllowList) *TaskService {
	return &TaskService{taskRepository: taskRepository, promoFit: promoFit}
}

func (s *TaskService) ListTasks(ctx context.Context, caller domain.Identity) ([]domain.Task, error) {
	return s.taskRepository.ListTasks(ctx, caller.UserID, s.promoFit.Contains(caller.Email))
}

// CreateTask binds the task to the caller and derives the shared flag from
// the allow-list; neither is taken from the client.
func (s *TaskService) CreateTask(ctx context.Context, caller domain.Identity, input domain.CreateTaskInput) (domain.Task, error) {
	input.OwnerID = caller.UserID
	input.SharedWithPromo = s.promoFit.Contains(caller.Email)
	if input.Status == "" {
		input.Status = domain.TaskStatusTodo
	}
	if input.Priority == "" {
		input.Priority = domain.TaskPriorityMedium
	}
	return s.taskRepository.CreateTask(ctx, input)
}

func (s *TaskService) GetTask(ctx context.Context, caller domain.Identity, id string) (domain.Task, error) {
	return s.taskRepository.GetOwnedTask(ctx, id, caller.UserID)
}

func (s *TaskService) UpdateTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	input, err := s.restrictSharedFlag(caller, input)
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.UpdateOwnedTask(ctx, id, caller.UserID, input)
}

// PatchTask also lets allow-listed accounts edit tasks flagged as shared.
// Unlike UpdateTask, a task that exists but is not editable by the caller
// yields ErrForbidden.
func (s *TaskService) PatchTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	task, err := s.taskRepository.GetTask(ctx, id)
	if err != nil {
		return domain.Task{}, err
	}

	isOwner := task.OwnerID == caller.UserID
	isPromoFit := s.promoFit.Contains(caller.Email)
	if !isOwner && !(isPromoFit && task.SharedWithPromo) {
		return domain.Task{}, domain.ErrForbidden
	}

	input, err = s.restrictSharedFlag(caller, input)
	if err != nil {
		return domain.Task{}, err
	}
	return s.taskRepository.UpdateTask(ctx, id, input)
}

func (s *TaskService) DeleteTask(ctx context.Context, caller domain.Identity, id string) error {
	return s.taskRepository.DeleteOwnedTask(ctx, id, caller.UserID)
}

// restrictSharedFlag drops shared_with_promo for callers outside the
// allow-list. An update left with nothing to apply is ErrEmptyUpdate.
func (s *TaskService) restrictSharedFlag(caller domain.Identity, input domain.UpdateTaskInput) (domain.UpdateTaskInput, error) {
	if !s.promoFit.Contains(caller.Email) {
		input.SharedWithPromo = nil
	}
	if input.IsEmpty() {
		return domain.UpdateTaskInput{}, domain.ErrEmptyUpdate
	}
	return input, nil
}

var _ ports.TaskService = (*TaskService)(nil)
