package mapper

import (
	"devflow/internal/adapter/http/dto"
	"devflow/internal/core/domain"
)

func ToNoteItems(notes []domain.Note) []dto.NoteItem {
	items := make([]dto.NoteItem, 0, len(notes))
	for _, note := range notes {
		items = append(items, ToNoteItem(note))
	}
	return items
}

func ToNoteItem(note domain.Note) dto.NoteItem {
	item := dto.NoteItem{
		ID:        note.ID,
		OwnerID:   note.OwnerID,
		Title:     note.Title,
		Content:   note.Content,
		Tags:      tagsOrEmpty(note.Tags),
		CreatedAt: formatTimestamp(note.CreatedAt),
		UpdatedAt: formatTimestamp(note.UpdatedAt),
	}
	if note.Color != nil {
		value := *note.Color
		item.Color = &value
	}
	return item
}
