package validation

import (
	"encoding/json"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/core/domain"
	"devflow/pkg/apierrors"
)

const maxTitleLength = 255

var taskUpdateFields = []string{
	"title", "description", "status", "priority", "due_date",
	"documentation_link", "tags", "shared_with_promo",
}

func BuildCreateTaskInput(req dto.CreateTaskRequest, raw map[string]json.RawMessage) (domain.CreateTaskInput, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	status := domain.TaskStatusTodo
	if hasJSONField(raw, "status") && !isJSONNull(raw["status"]) {
		if status, err = parseStatus(req.Status); err != nil {
			return domain.CreateTaskInput{}, err
		}
	}

	priority := domain.TaskPriorityMedium
	if hasJSONField(raw, "priority") && !isJSONNull(raw["priority"]) {
		if priority, err = parsePriority(req.Priority); err != nil {
			return domain.CreateTaskInput{}, err
		}
	}

	dueDate, err := parseDueDate(req.DueDate)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	link, err := normalizeLink(req.DocumentationLink)
	if err != nil {
		return domain.CreateTaskInput{}, err
	}

	return domain.CreateTaskInput{
		Title:             title,
		Description:       optionalText(req.Description),
		Status:            status,
		Priority:          priority,
		DueDate:           dueDate,
		DocumentationLink: link,
		Tags:              normalizeTags(req.Tags),
	}, nil
}

// BuildUpdateTaskInput turns a partial body into an update. A field that is
// absent is left untouched; description, due_date, documentation_link and
// tags may be null to clear them.
func BuildUpdateTaskInput(req dto.UpdateTaskRequest, raw map[string]json.RawMessage) (domain.UpdateTaskInput, error) {
	if !hasAnyJSONField(raw, taskUpdateFields) {
		return domain.UpdateTaskInput{}, invalid(apierrors.MsgEmptyUpdate)
	}

	var input domain.UpdateTaskInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateTaskInput{}, invalid(apierrors.MsgTitleRequired)
		}
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Title = &title
	}

	if hasJSONField(raw, "status") {
		status, err := parseStatus(req.Status)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Status = &status
	}

	if hasJSONField(raw, "priority") {
		priority, err := parsePriority(req.Priority)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.Priority = &priority
	}

	if hasJSONField(raw, "description") {
		input.DescriptionSet = true
		input.Description = optionalText(req.Description)
	}

	if hasJSONField(raw, "due_date") {
		dueDate, err := parseDueDate(req.DueDate)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.DueDateSet = true
		input.DueDate = dueDate
	}

	if hasJSONField(raw, "documentation_link") {
		link, err := normalizeLink(req.DocumentationLink)
		if err != nil {
			return domain.UpdateTaskInput{}, err
		}
		input.DocumentationLinkSet = true
		input.DocumentationLink = link
	}

	if hasJSONField(raw, "tags") {
		input.TagsSet = true
		input.Tags = normalizeTags(req.Tags)
	}

	if hasJSONField(raw, "shared_with_promo") {
		if req.SharedWithPromo == nil {
			return domain.UpdateTaskInput{}, invalid(apierrors.MsgInvalidPayload)
		}
		value := *req.SharedWithPromo
		input.SharedWithPromo = &value
	}

	return input, nil
}

func normalizeTitle(value string) (string, error) {
	title := strings.TrimSpace(value)
	if title == "" {
		return "", invalid(apierrors.MsgTitleRequired)
	}
	if utf8.RuneCountInString(title) > maxTitleLength {
		return "", invalid(apierrors.MsgTitleTooLong)
	}
	return title, nil
}

func parseStatus(value *string) (domain.TaskStatus, error) {
	if value == nil {
		return "", invalid(apierrors.MsgInvalidStatus)
	}
	status, ok := domain.ParseTaskStatus(*value)
	if !ok {
		return "", invalid(apierrors.MsgInvalidStatus)
	}
	return status, nil
}

func parsePriority(value *string) (domain.TaskPriority, error) {
	if value == nil {
		return "", invalid(apierrors.MsgInvalidPriority)
	}
	priority, ok := domain.ParseTaskPriority(*value)
	if !ok {
		return "", invalid(apierrors.MsgInvalidPriority)
	}
	return priority, nil
}

// parseDueDate accepts a calendar date or a full RFC 3339 timestamp, which
// browser date pickers send; only the UTC date is kept.
func parseDueDate(value *string) (*time.Time, error) {
	text := optionalText(value)
	if text == nil {
		return nil, nil
	}

	if parsed, err := time.Parse("2006-01-02", *text); err == nil {
		return &parsed, nil
	}
	parsed, err := time.Parse(time.RFC3339, *text)
	if err != nil {
		return nil, invalid(apierrors.MsgInvalidDueDate)
	}
	date := time.Date(parsed.UTC().Year(), parsed.UTC().Month(), parsed.UTC().Day(), 0, 0, 0, 0, time.UTC)
	return &date, nil
}

func normalizeLink(value *string) (*string, error) {
	text := optionalText(value)
	if text == nil {
		return nil, nil
	}

	parsed, err := url.ParseRequestURI(*text)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, invalid(apierrors.MsgInvalidLink)
	}
	return text, nil
}

// optionalText trims value and treats blank text as absent.
func optionalText(value *string) *string {
	if value == nil {
		return nil
	}
	text := strings.TrimSpace(*value)
	if text == "" {
		return nil
	}
	return &text
}

func normalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(tags))
	normalized := make([]string, 0, len(tags))
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" {
			continue
		}
		if _, ok := seen[tag]; ok {
			continue
		}
		seen[tag] = struct{}{}
		normalized = append(normalized, tag)
	}
	return normalized
}
