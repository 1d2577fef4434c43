package domain

import (
	"strings"
	"time"
)

type TaskStatus string

const (
	TaskStatusTodo       TaskStatus = "todo"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusDone       TaskStatus = "done"
)

type TaskPriority string

const (
	TaskPriorityLow    TaskPriority = "low"
	TaskPriorityMedium TaskPriority = "medium"
	TaskPriorityHigh   TaskPriority = "high"
)

// ParseTaskStatus maps every spelling the board clients have used over time
// ("TODO", "in-progress", "IN_PROGRESS", ...) onto the stored value.
func ParseTaskStatus(value string) (TaskStatus, bool) {
	normalized := strings.ToLower(strings.TrimSpace(value))
	normalized = strings.ReplaceAll(normalized, "-", "_")

	switch TaskStatus(normalized) {
	case TaskStatusTodo, TaskStatusInProgress, TaskStatusDone:
		return TaskStatus(normalized), true
	default:
		return "", false
	}
}

func ParseTaskPriority(value string) (TaskPriority, bool) {
	switch p := TaskPriority(strings.ToLower(strings.TrimSpace(value))); p {
	case TaskPriorityLow, TaskPriorityMedium, TaskPriorityHigh:
		return p, true
	default:
		return "", false
	}
}

type Task struct {
	ID                string
	OwnerID           string
	Title             string
	Description       *string
	Status            TaskStatus
	Priority          TaskPriority
	DueDate           *time.Time
	DocumentationLink *string
	Tags              []string
	SharedWithPromo   bool
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

type CreateTaskInput struct {
	OwnerID           string
	Title             string
	Description       *string
	Status            TaskStatus
	Priority          TaskPriority
	DueDate           *time.Time
	DocumentationLink *string
	Tags              []string
	SharedWithPromo   bool
}

// UpdateTaskInput is a partial update. Nil pointers leave the field untouched;
// the *Set flags distinguish "clear this nullable field" from "not sent".
type UpdateTaskInput struct {
	Title                *string
	Description          *string
	DescriptionSet       bool
	Status               *TaskStatus
	Priority             *TaskPriority
	DueDate              *time.Time
	DueDateSet           bool
	DocumentationLink    *string
	DocumentationLinkSet bool
	Tags                 []string
	TagsSet              bool
	SharedWithPromo      *bool
}

func (in UpdateTaskInput) IsEmpty() bool {
	return in.Title == nil &&
		!in.DescriptionSet &&
		in.Status == nil &&
		in.Priority == nil &&
		!in.DueDateSet &&
		!in.DocumentationLinkSet &&
		!in.TagsSet &&
		in.SharedWithPromo == nil
}

// Apply merges the update into task. The owner and timestamps are left to the caller.
func (in UpdateTaskInput) Apply(task *Task) {
	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.DescriptionSet {
		task.Description = in.Description
	}
	if in.Status != nil {
		task.Status = *in.Status
	}
	if in.Priority != nil {
		task.Priority = *in.Priority
	}
	if in.DueDateSet {
		task.DueDate = in.DueDate
	}
	if in.DocumentationLinkSet {
		task.DocumentationLink = in.DocumentationLink
	}
	if in.TagsSet {
		task.Tags = in.Tags
	}
	if in.SharedWithPromo != nil {
		task.SharedWithPromo = *in.SharedWithPromo
	}
}
