package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

const taskColumns = `id, owner_id, title, description, status, priority, due_date,
  documentation_link, tags, shared_with_promo, created_at, updated_at`

const listOwnTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE owner_id = ?
ORDER BY created_at, id;
`

const listOwnAndSharedTasksQuery = `
SELECT ` + taskColumns + `
FROM tasks
WHERE owner_id = ? OR shared_with_promo = TRUE
ORDER BY created_at, id;
`

const insertTaskQuery = `
INSERT INTO tasks (` + taskColumns + `)
VALUES (:id, :owner_id, :title, :description, :status, :priority, :due_date,
  :documentation_link, :tags, :shared_with_promo, :created_at, :updated_at);
`

const updateTaskQuery = `
UPDATE tasks SET
  title = :title,
  description = :description,
  status = :status,
  priority = :priority,
  due_date = :due_date,
  documentation_link = :documentation_link,
  tags = :tags,
  shared_with_promo = :shared_with_promo,
  updated_at = :updated_at
WHERE id = :id;
`

type TaskRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

type taskRow struct {
	ID                string         `db:"id"`
	OwnerID           string         `db:"owner_id"`
	Title             string         `db:"title"`
	Description       sql.NullString `db:"description"`
	Status            string         `db:"status"`
	Priority          string         `db:"priority"`
	DueDate           sql.NullTime   `db:"due_date"`
	DocumentationLink sql.NullString `db:"documentation_link"`
	Tags              jsonTags       `db:"tags"`
	SharedWithPromo   bool           `db:"shared_with_promo"`
	CreatedAt         time.Time      `db:"created_at"`
	UpdatedAt         time.Time      `db:"updated_at"`
}

var _ ports.TaskRepository = (*TaskRepository)(nil)

func NewTaskRepository(db *sqlx.DB) *TaskRepository {
	return &TaskRepository{db: db, now: utcMillis}
}

func (r *TaskRepository) ListTasks(ctx context.Context, ownerID string, includeShared bool) ([]domain.Task, error) {
	query := listOwnTasksQuery
	if includeShared {
		query = listOwnAndSharedTasksQuery
	}

	var rows []taskRow
	if err := r.db.SelectContext(ctx, &rows, query, ownerID); err != nil {
		return nil, err
	}

	tasks := make([]domain.Task, 0, len(rows))
	for _, row := range rows {
		tasks = append(tasks, mapTaskRowToDomainTask(row))
	}

	return tasks, nil
}

func (r *TaskRepository) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	now := r.now()
	task := domain.Task{
		ID:                uuid.NewString(),
		OwnerID:           input.OwnerID,
		Title:             input.Title,
		Description:       input.Description,
		Status:            input.Status,
		Priority:          input.Priority,
		DueDate:           input.DueDate,
		DocumentationLink: input.DocumentationLink,
		Tags:              input.Tags,
		SharedWithPromo:   input.SharedWithPromo,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	if _, err := r.db.NamedExecContext(ctx, insertTaskQuery, mapDomainTaskToRow(task)); err != nil {
		return domain.Task{}, fmt.Errorf("insert task: %w", err)
	}
	return task, nil
}

func (r *TaskRepository) GetTask(ctx context.Context, id string) (domain.Task, error) {
	return r.get(ctx, r.db, "WHERE id = ?", id)
}

func (r *TaskRepository) GetOwnedTask(ctx context.Context, id, ownerID string) (domain.Task, error) {
	return r.get(ctx, r.db, "WHERE id = ? AND owner_id = ?", id, ownerID)
}

func (r *TaskRepository) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	return r.update(ctx, input, "WHERE id = ?", id)
}

func (r *TaskRepository) UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	return r.update(ctx, input, "WHERE id = ? AND owner_id = ?", id, ownerID)
}

func (r *TaskRepository) DeleteOwnedTask(ctx context.Context, id, ownerID string) error {
	result, err := r.db.ExecContext(ctx, "DELETE FROM tasks WHERE id = ? AND owner_id = ?", id, ownerID)
	if err != nil {
		return err
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return domain.ErrTaskNotFound
	}
	return nil
}

// update locks the row matched by the predicate, merges the input and writes
// the full row back in one transaction.
func (r *TaskRepository) update(ctx context.Context, input domain.UpdateTaskInput, predicate string, args ...any) (domain.Task, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return domain.Task{}, err
	}
	defer func() { _ = tx.Rollback() }()

	task, err := r.get(ctx, tx, predicate+" FOR UPDATE", args...)
	if err != nil {
		return domain.Task{}, err
	}

	input.Apply(&task)
	task.UpdatedAt = r.now()

	if _, err := tx.NamedExecContext(ctx, updateTaskQuery, mapDomainTaskToRow(task)); err != nil {
		return domain.Task{}, fmt.Errorf("update task: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return domain.Task{}, err
	}
	return task, nil
}

func (r *TaskRepository) get(ctx context.Context, q sqlx.QueryerContext, predicate string, args ...any) (domain.Task, error) {
	var row taskRow
	err := sqlx.GetContext(ctx, q, &row, "SELECT "+taskColumns+" FROM tasks "+predicate, args...)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Task{}, domain.ErrTaskNotFound
		}
		return domain.Task{}, err
	}
	return mapTaskRowToDomainTask(row), nil
}

func mapTaskRowToDomainTask(row taskRow) domain.Task {
	task := domain.Task{
		ID:              row.ID,
		OwnerID:         row.OwnerID,
		Title:           row.Title,
		Status:          domain.TaskStatus(row.Status),
		Priority:        domain.TaskPriority(row.Priority),
		Tags:            []string(row.Tags),
		SharedWithPromo: row.SharedWithPromo,
		CreatedAt:       row.CreatedAt,
		UpdatedAt:       row.UpdatedAt,
	}

	if row.Description.Valid {
		value := row.Description.String
		task.Description = &value
	}

	if row.DueDate.Valid {
		value := row.DueDate.Time
		task.DueDate = &value
	}

	if row.DocumentationLink.Valid {
		value := row.DocumentationLink.String
		task.DocumentationLink = &value
	}

	return task
}

func mapDomainTaskToRow(task domain.Task) taskRow {
	row := taskRow{
		ID:              task.ID,
		OwnerID:         task.OwnerID,
		Title:           task.Title,
		Status:          string(task.Status),
		Priority:        string(task.Priority),
		Tags:            jsonTags(task.Tags),
		SharedWithPromo: task.SharedWithPromo,
		CreatedAt:       task.CreatedAt,
		UpdatedAt:       task.UpdatedAt,
	}
	if task.Description != nil {
		row.Description = sql.NullString{String: *task.Description, Valid: true}
	}
	if task.DueDate != nil {
		row.DueDate = sql.NullTime{Time: *task.DueDate, Valid: true}
	}
	if task.DocumentationLink != nil {
		row.DocumentationLink = sql.NullString{String: *task.DocumentationLink, Valid: true}
	}
	return row
}
