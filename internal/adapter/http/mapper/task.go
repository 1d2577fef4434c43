package mapper

import (
	"time"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/core/domain"
)

const dateLayout = "2006-01-02"

func ToTaskItems(tasks []domain.Task) []dto.TaskItem {
	items := make([]dto.TaskItem, 0, len(tasks))
	for _, task := range tasks {
		items = append(items, ToTaskItem(task))
	}
	return items
}

func ToTaskItem(task domain.Task) dto.TaskItem {
	item := dto.TaskItem{
		ID:              task.ID,
		OwnerID:         task.OwnerID,
		Title:           task.Title,
		Status:          string(task.Status),
		Priority:        string(task.Priority),
		Tags:            tagsOrEmpty(task.Tags),
		SharedWithPromo: task.SharedWithPromo,
		CreatedAt:       formatTimestamp(task.CreatedAt),
		UpdatedAt:       formatTimestamp(task.UpdatedAt),
	}

	if task.Description != nil {
		value := *task.Description
		item.Description = &value
	}

	if task.DueDate != nil {
		value := task.DueDate.Format(dateLayout)
		item.DueDate = &value
	}

	if task.DocumentationLink != nil {
		value := *task.DocumentationLink
		item.DocumentationLink = &value
	}

	return item
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func tagsOrEmpty(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}
