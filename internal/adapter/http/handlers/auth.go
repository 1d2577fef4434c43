package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/mapper"
	"devflow/internal/adapter/http/middleware"
	"devflow/internal/adapter/http/validation"
	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
	"devflow/pkg/apierrors"
)

type AuthHandler struct {
	authService ports.AuthService
	now         func() time.Time
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService, now: time.Now}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	user, err := h.authService.Register(c.Request.Context(), domain.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			respondError(c, http.StatusConflict, apierrors.MsgEmailTaken)
			return
		}

		zap.L().Error("failed to register user", zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailRegister)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": apierrors.Localize(apierrors.MsgRegistered, middleware.GetLang(c)),
		"user":    mapper.ToUserItem(user),
	})
}

func (h *AuthHandler) SignIn(c *gin.Context) {
	var req dto.SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, apierrors.MsgCredentialsRequired)
		return
	}

	session, err := h.authService.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, apierrors.MsgInvalidCredentials)
			return
		}

		zap.L().Error("failed to sign in", zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailSignIn)
		return
	}

	h.startSession(c, session)
}

func (h *AuthHandler) SignInWithTelegram(c *gin.Context) {
	var req dto.TelegramLoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	session, err := h.authService.SignInWithTelegram(c.Request.Context(), domain.TelegramLogin{
		ID:        req.ID,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Username:  req.Username,
		PhotoURL:  req.PhotoURL,
		AuthDate:  req.AuthDate,
		Hash:      req.Hash,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidTelegramLogin):
			respondError(c, http.StatusUnauthorized, apierrors.MsgInvalidTelegramLogin)
		case errors.Is(err, domain.ErrTelegramDisabled):
			respondError(c, http.StatusServiceUnavailable, apierrors.MsgTelegramNotConfigured)
		default:
			zap.L().Error("failed to sign in with telegram", zap.Int64("telegram_id", req.ID), zap.Error(err))
			respondError(c, http.StatusInternalServerError, apierrors.MsgFailSignIn)
		}
		return
	}

	h.startSession(c, session)
}

func (h *AuthHandler) CurrentSession(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	user, err := h.authService.CurrentUser(c.Request.Context(), identity)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			respondError(c, http.StatusUnauthorized, apierrors.MsgInvalidSession)
			return
		}

		zap.L().Error("failed to load session user", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, dto.CurrentSessionResponse{
		User:      mapper.ToUserItem(user),
		ExpiresAt: identity.ExpiresAt.UTC().Format(time.RFC3339),
	})
}

func (h *AuthHandler) SignOut(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	if err := h.authService.SignOut(c.Request.Context(), identity); err != nil {
		zap.L().Error("failed to revoke session", zap.String("session_id", identity.SessionID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}

	h.setSessionCookie(c, "", -1)
	respondMessage(c, http.StatusOK, apierrors.MsgSignedOut)
}

func (h *AuthHandler) startSession(c *gin.Context, session domain.Session) {
	maxAge := int(session.ExpiresAt.Sub(h.now()).Seconds())
	h.setSessionCookie(c, session.Token, maxAge)
	c.JSON(http.StatusOK, mapper.ToSessionResponse(session))
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, value string, maxAge int) {
	secure := c.Request.TLS != nil || c.GetHeader("X-Forwarded-Proto") == "https"
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, value, maxAge, "/", "", secure, true)
}
