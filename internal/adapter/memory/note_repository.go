package memory

import (
	"context"
	"slices"
	"time"

	"github.com/google/uuid"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type NoteRepository struct {
	store *Store
}

var _ ports.NoteRepository = (*NoteRepository)(nil)

func NewNoteRepository(store *Store) *NoteRepository {
	return &NoteRepository{store: store}
}

func (r *NoteRepository) ListNotes(_ context.Context, ownerID string) ([]domain.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	notes := make([]domain.Note, 0)
	for _, note := range r.store.notes {
		if note.OwnerID == ownerID {
			notes = append(notes, cloneNote(note))
		}
	}
	sortByCreation(notes,
		func(n domain.Note) time.Time { return n.CreatedAt },
		func(n domain.Note) string { return n.ID },
	)
	return notes, nil
}

func (r *NoteRepository) CreateNote(_ context.Context, input domain.CreateNoteInput) (domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	now := r.store.now()
	note := domain.Note{
		ID:        uuid.NewString(),
		OwnerID:   input.OwnerID,
		Title:     input.Title,
		Content:   input.Content,
		Tags:      slices.Clone(input.Tags),
		Color:     input.Color,
		CreatedAt: now,
		UpdatedAt: now,
	}
	r.store.notes[note.ID] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *NoteRepository) GetNote(_ context.Context, id, ownerID string) (domain.Note, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	note, ok := r.store.notes[id]
	if !ok || note.OwnerID != ownerID {
		return domain.Note{}, domain.ErrNoteNotFound
	}
	return cloneNote(note), nil
}

func (r *NoteRepository) UpdateNote(_ context.Context, id, ownerID string, input domain.UpdateNoteInput) (domain.Note, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	note, ok := r.store.notes[id]
	if !ok || note.OwnerID != ownerID {
		return domain.Note{}, domain.ErrNoteNotFound
	}
	input.Tags = slices.Clone(input.Tags)
	input.Apply(&note)
	note.UpdatedAt = r.store.now()
	r.store.notes[id] = cloneNote(note)
	return cloneNote(note), nil
}

func (r *NoteRepository) DeleteNote(_ context.Context, id, ownerID string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	note, ok := r.store.notes[id]
	if !ok || note.OwnerID != ownerID {
		return domain.ErrNoteNotFound
	}
	delete(r.store.notes, id)
	return nil
}

func cloneNote(note domain.Note) domain.Note {
	note.Color = clonePtr(note.Color)
	note.Tags = slices.Clone(note.Tags)
	return note
}
