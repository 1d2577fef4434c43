package ports

import (
	"context"

	"devflow/internal/core/domain"
)

type NoteRepository interface {
	ListNotes(ctx context.Context, ownerID string) ([]domain.Note, error)
	CreateNote(ctx context.Context, input domain.CreateNoteInput) (domain.Note, error)
	GetNote(ctx context.Context, id, ownerID string) (domain.Note, error)
	UpdateNote(ctx context.Context, id, ownerID string, input domain.UpdateNoteInput) (domain.Note, error)
	DeleteNote(ctx context.Context, id, ownerID string) error
}

type NoteService interface {
	ListNotes(ctx context.Context, caller domain.Identity) ([]domain.Note, error)
	CreateNote(ctx context.Context, caller domain.Identity, input domain.CreateNoteInput) (domain.Note, error)
	GetNote(ctx context.Context, caller domain.Identity, id string) (domain.Note, error)
	UpdateNote(ctx context.Context, caller domain.Identity, id string, input domain.UpdateNoteInput) (domain.Note, error)
	DeleteNote(ctx context.Context, caller domain.Identity, id string) error
}
