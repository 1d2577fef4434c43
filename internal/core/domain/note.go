package domain

import "time"

type Note struct {
	ID        string
	OwnerID   string
	Title     string
	Content   string
	Tags      []string
	Color     *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

type CreateNoteInput struct {
	OwnerID string
	Title   string
	Content string
	Tags    []string
	Color   *string
}

type UpdateNoteInput struct {
	Title    *string
	Content  *string
	Tags     []string
	TagsSet  bool
	Color    *string
	ColorSet bool
}

func (in UpdateNoteInput) IsEmpty() bool {
	return in.Title == nil && in.Content == nil && !in.TagsSet && !in.ColorSet
}

func (in UpdateNoteInput) Apply(note *Note) {
	if in.Title != nil {
		note.Title = *in.Title
	}
	if in.Content != nil {
		note.Content = *in.Content
	}
	if in.TagsSet {
		note.Tags = in.Tags
	}
	if in.ColorSet {
		note.Color = in.Color
	}
}
