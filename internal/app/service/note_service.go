package service

import (
	"context"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type NoteService struct {
	noteRepository ports.NoteRepository
}

func NewNoteService(noteRepository ports.NoteRepository) *NoteService {
	return &NoteService{noteRepository: noteRepository}
}

func (s *NoteService) ListNotes(ctx context.Context, caller domain.Identity) ([]domain.Note, error) {
	return s.noteRepository.ListNotes(ctx, caller.UserID)
}

func (s *NoteService) CreateNote(ctx context.Context, caller domain.Identity, input domain.CreateNoteInput) (domain.Note, error) {
	input.OwnerID = caller.UserID
	return s.noteRepository.CreateNote(ctx, input)
}

func (s *NoteService) GetNote(ctx context.Context, caller domain.Identity, id string) (domain.Note, error) {
	return s.noteRepository.GetNote(ctx, id, caller.UserID)
}

func (s *NoteService) UpdateNote(ctx context.Context, caller domain.Identity, id string, input domain.UpdateNoteInput) (domain.Note, error) {
	return s.noteRepository.UpdateNote(ctx, id, caller.UserID, input)
}

func (s *NoteService) DeleteNote(ctx context.Context, caller domain.Identity, id string) error {
	return s.noteRepository.DeleteNote(ctx, id, caller.UserID)
}

var _ ports.NoteService = (*NoteService)(nil)
