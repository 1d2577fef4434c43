package validation

import (
	"encoding/json"
	"strings"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/core/domain"
	"devflow/pkg/apierrors"
)

var noteUpdateFields = []string{"title", "content", "tags", "color"}

func BuildCreateNoteInput(req dto.CreateNoteRequest) (domain.CreateNoteInput, error) {
	title, err := normalizeTitle(req.Title)
	if err != nil {
		return domain.CreateNoteInput{}, err
	}
	if strings.TrimSpace(req.Content) == "" {
		return domain.CreateNoteInput{}, invalid(apierrors.MsgContentRequired)
	}

	return domain.CreateNoteInput{
		Title:   title,
		Content: req.Content,
		Tags:    normalizeTags(req.Tags),
		Color:   optionalText(req.Color),
	}, nil
}

func BuildUpdateNoteInput(req dto.UpdateNoteRequest, raw map[string]json.RawMessage) (domain.UpdateNoteInput, error) {
	if !hasAnyJSONField(raw, noteUpdateFields) {
		return domain.UpdateNoteInput{}, invalid(apierrors.MsgEmptyUpdate)
	}

	var input domain.UpdateNoteInput

	if hasJSONField(raw, "title") {
		if req.Title == nil {
			return domain.UpdateNoteInput{}, invalid(apierrors.MsgTitleRequired)
		}
		title, err := normalizeTitle(*req.Title)
		if err != nil {
			return domain.UpdateNoteInput{}, err
		}
		input.Title = &title
	}

	if hasJSONField(raw, "content") {
		if req.Content == nil || strings.TrimSpace(*req.Content) == "" {
			return domain.UpdateNoteInput{}, invalid(apierrors.MsgContentRequired)
		}
		content := *req.Content
		input.Content = &content
	}

	if hasJSONField(raw, "tags") {
		input.TagsSet = true
		input.Tags = normalizeTags(req.Tags)
	}

	if hasJSONField(raw, "color") {
		input.ColorSet = true
		input.Color = optionalText(req.Color)
	}

	return input, nil
}
