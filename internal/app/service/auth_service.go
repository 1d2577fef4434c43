package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"

	"go.uber.org/zap"
)

type AuthService struct {
	userRepository ports.UserRepository
	hasher         ports.PasswordHasher
	sessions       ports.SessionManager
	revoker        ports.SessionRevoker
	telegram       ports.TelegramVerifier
}

func NewAuthService(
	userRepository ports.UserRepository,
	hasher ports.PasswordHasher,
	sessions ports.SessionManager,
	revoker ports.SessionRevoker,
	telegram ports.TelegramVerifier,
) *AuthService {
	return &AuthService{
		userRepository: userRepository,
		hasher:         hasher,
		sessions:       sessions,
		revoker:        revoker,
		telegram:       telegram,
	}
}

func (s *AuthService) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	email := normalizeEmail(input.Email)

	if _, err := s.userRepository.GetUserByEmail(ctx, email); err == nil {
		return domain.User{}, domain.ErrEmailTaken
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hash password: %w", err)
	}

	username := strings.TrimSpace(input.Username)
	if username == "" {
		username, _, _ = strings.Cut(email, "@")
	}

	return s.userRepository.CreateUser(ctx, domain.CreateUserInput{
		Email:        &email,
		PasswordHash: hash,
		Username:     username,
	})
}

func (s *AuthService) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	user, err := s.userRepository.GetUserByEmail(ctx, normalizeEmail(email))
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.Session{}, domain.ErrInvalidCredentials
		}
		return domain.Session{}, err
	}

	if user.PasswordHash == "" || !s.hasher.Verify(password, user.PasswordHash) {
		return domain.Session{}, domain.ErrInvalidCredentials
	}

	return s.issue(user)
}

func (s *AuthService) SignInWithTelegram(ctx context.Context, login domain.TelegramLogin) (domain.Session, error) {
	if err := s.telegram.Verify(login); err != nil {
		return domain.Session{}, err
	}

	telegramID := login.ID
	user, err := s.userRepository.UpsertTelegramUser(ctx, domain.CreateUserInput{
		TelegramID: &telegramID,
		Username:   login.Username,
		FirstName:  login.FirstName,
		LastName:   login.LastName,
		PhotoURL:   login.PhotoURL,
	})
	if err != nil {
		return domain.Session{}, err
	}

	return s.issue(user)
}

func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	identity, err := s.sessions.Parse(token)
	if err != nil {
		return domain.Identity{}, domain.ErrInvalidSession
	}

	revoked, err := s.revoker.IsRevoked(ctx, identity.SessionID)
	if err != nil {
		return domain.Identity{}, fmt.Errorf("check session revocation: %w", err)
	}
	if revoked {
		return domain.Identity{}, domain.ErrInvalidSession
	}

	return identity, nil
}

func (s *AuthService) SignOut(ctx context.Context, caller domain.Identity) error {
	return s.revoker.Revoke(ctx, caller.SessionID, caller.ExpiresAt)
}

func (s *AuthService) CurrentUser(ctx context.Context, caller domain.Identity) (domain.User, error) {
	return s.userRepository.GetUserByID(ctx, caller.UserID)
}

func (s *AuthService) issue(user domain.User) (domain.Session, error) {
	token, identity, err := s.sessions.Issue(user)
	if err != nil {
		return domain.Session{}, fmt.Errorf("issue session: %w", err)
	}
	zap.L().Debug("session issued", zap.String("user_id", user.ID), zap.String("session_id", identity.SessionID))
	return domain.Session{Token: token, ExpiresAt: identity.ExpiresAt, User: user}, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

var _ ports.AuthService = (*AuthService)(nil)
