package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/mapper"
	"devflow/internal/adapter/http/validation"
	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
	"devflow/pkg/apierrors"
)

type NoteHandler struct {
	noteService ports.NoteService
}

func NewNoteHandler(noteService ports.NoteService) *NoteHandler {
	return &NoteHandler{noteService: noteService}
}

func (h *NoteHandler) ListNotes(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	notes, err := h.noteService.ListNotes(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to list notes", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailListNote)
		return
	}

	c.JSON(http.StatusOK, mapper.ToNoteItems(notes))
}

func (h *NoteHandler) CreateNote(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.CreateNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	input, err := validation.BuildCreateNoteInput(req)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.MessageKey(err))
		return
	}

	note, err := h.noteService.CreateNote(c.Request.Context(), identity, input)
	if err != nil {
		zap.L().Error("failed to create note", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailCreateNote)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToNoteItem(note))
}

func (h *NoteHandler) GetNote(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	noteID := c.Param("id")
	note, err := h.noteService.GetNote(c.Request.Context(), identity, noteID)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgNoteNotFound)
			return
		}

		zap.L().Error("failed to get note", zap.String("note_id", noteID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, mapper.ToNoteItem(note))
}

// UpdateNote serves both PUT and PATCH; notes have no shared access path.
func (h *NoteHandler) UpdateNote(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.UpdateNoteRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	input, err := validation.BuildUpdateNoteInput(req, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.MessageKey(err))
		return
	}

	noteID := c.Param("id")
	note, err := h.noteService.UpdateNote(c.Request.Context(), identity, noteID, input)
	if err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgNoteNotFound)
			return
		}

		zap.L().Error("failed to update note", zap.String("note_id", noteID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailUpdateNote)
		return
	}

	c.JSON(http.StatusOK, mapper.ToNoteItem(note))
}

func (h *NoteHandler) DeleteNote(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	noteID := c.Param("id")
	if err := h.noteService.DeleteNote(c.Request.Context(), identity, noteID); err != nil {
		if errors.Is(err, domain.ErrNoteNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgNoteNotFound)
			return
		}

		zap.L().Error("failed to delete note", zap.String("note_id", noteID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteNote)
		return
	}

	respondMessage(c, http.StatusOK, apierrors.MsgNoteDeleted)
}
