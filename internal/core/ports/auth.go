package ports

import (
	"context"
	"time"

	"devflow/internal/core/domain"
)

type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

type SessionManager interface {
	Issue(user domain.User) (string, domain.Identity, error)
	Parse(token string) (domain.Identity, error)
}

type SessionRevoker interface {
	Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type TelegramVerifier interface {
	Verify(login domain.TelegramLogin) error
}

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (domain.Identity, error)
}

type AuthService interface {
	Authenticator
	Register(ctx context.Context, input domain.RegisterInput) (domain.User, error)
	SignIn(ctx context.Context, email, password string) (domain.Session, error)
	SignInWithTelegram(ctx context.Context, login domain.TelegramLogin) (domain.Session, error)
	SignOut(ctx context.Context, caller domain.Identity) error
	CurrentUser(ctx context.Context, caller domain.Identity) (domain.User, error)
}

// Pinger is implemented by every backing service the health report covers.
type Pinger interface {
	Ping(ctx context.Context) error
}
