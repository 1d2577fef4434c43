package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/mapper"
	"devflow/internal/adapter/http/validation"
	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
	"devflow/pkg/apierrors"
)

type UserHandler struct {
	userService ports.UserService
}

func NewUserHandler(userService ports.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

func (h *UserHandler) SearchUsers(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	query := strings.TrimSpace(c.Query("email"))
	if query == "" {
		respondError(c, http.StatusBadRequest, apierrors.MsgSearchQueryRequired)
		return
	}

	users, err := h.userService.SearchUsers(c.Request.Context(), identity, query)
	if err != nil {
		zap.L().Error("failed to search users", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(users))
}

func (h *UserHandler) ListFriends(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	friends, err := h.userService.ListFriends(c.Request.Context(), identity)
	if err != nil {
		h.respondFriendError(c, identity, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(friends))
}

func (h *UserHandler) ListFriendRequests(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	senders, err := h.userService.ListFriendRequests(c.Request.Context(), identity)
	if err != nil {
		h.respondFriendError(c, identity, err)
		return
	}

	c.JSON(http.StatusOK, mapper.ToUserItems(senders))
}

func (h *UserHandler) SendFriendRequest(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	outcome, err := h.userService.SendFriendRequest(c.Request.Context(), identity, strings.TrimSpace(req.RecipientID))
	if err != nil {
		h.respondFriendError(c, identity, err)
		return
	}

	if outcome == domain.FriendRequestAutoAccepted {
		respondMessage(c, http.StatusOK, apierrors.MsgFriendRequestAutoAccepted)
		return
	}
	respondMessage(c, http.StatusOK, apierrors.MsgFriendRequestSent)
}

func (h *UserHandler) RespondFriendRequest(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.RespondFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	action := domain.FriendAction(strings.ToLower(strings.TrimSpace(req.Action)))
	if action != domain.FriendActionAccept && action != domain.FriendActionReject {
		respondError(c, http.StatusBadRequest, apierrors.MsgInvalidFriendAction)
		return
	}

	err := h.userService.RespondFriendRequest(c.Request.Context(), identity, strings.TrimSpace(req.SenderID), action)
	if err != nil {
		h.respondFriendError(c, identity, err)
		return
	}

	if action == domain.FriendActionAccept {
		respondMessage(c, http.StatusOK, apierrors.MsgFriendRequestAccepted)
		return
	}
	respondMessage(c, http.StatusOK, apierrors.MsgFriendRequestRejected)
}

func (h *UserHandler) respondFriendError(c *gin.Context, identity domain.Identity, err error) {
	switch {
	case errors.Is(err, domain.ErrUserNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgUserNotFound)
	case errors.Is(err, domain.ErrFriendRequestNotFound):
		respondError(c, http.StatusNotFound, apierrors.MsgFriendRequestNotFound)
	case errors.Is(err, domain.ErrSelfFriendRequest):
		respondError(c, http.StatusBadRequest, apierrors.MsgSelfFriendRequest)
	case errors.Is(err, domain.ErrAlreadyFriends):
		respondError(c, http.StatusBadRequest, apierrors.MsgAlreadyFriends)
	case errors.Is(err, domain.ErrFriendRequestExists):
		respondError(c, http.StatusBadRequest, apierrors.MsgFriendRequestExists)
	default:
		zap.L().Error("friend operation failed", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailFriends)
	}
}
