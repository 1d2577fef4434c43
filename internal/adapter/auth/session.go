package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

const DefaultSessionTTL = 30 * 24 * time.Hour

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type SessionClaims struct {
	Email string `json:"email,omitempty"`
	Name  string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// JWTSessions issues and validates HS256 session tokens.
type JWTSessions struct {
	secret []byte
	ttl    time.Duration
	issuer string
	now    func() time.Time
}

var _ ports.SessionManager = (*JWTSessions)(nil)

func NewJWTSessions(secret string, ttl time.Duration) *JWTSessions {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &JWTSessions{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: "devflow",
		now:    time.Now,
	}
}

func (s *JWTSessions) Issue(user domain.User) (string, domain.Identity, error) {
	now := s.now()
	identity := domain.Identity{
		UserID:    user.ID,
		Name:      user.DisplayName(),
		SessionID: uuid.NewString(),
		ExpiresAt: now.Add(s.ttl).Truncate(time.Second),
	}
	if user.Email != nil {
		identity.Email = *user.Email
	}

	claims := SessionClaims{
		Email: identity.Email,
		Name:  identity.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.issuer,
			Subject:   identity.UserID,
			ID:        identity.SessionID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(identity.ExpiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", domain.Identity{}, err
	}
	return token, identity, nil
}

func (s *JWTSessions) Parse(tokenString string) (domain.Identity, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	}, jwt.WithIssuer(s.issuer), jwt.WithTimeFunc(s.now))
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return domain.Identity{}, ErrExpiredToken
		}
		return domain.Identity{}, ErrInvalidToken
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid || claims.Subject == "" || claims.ID == "" || claims.ExpiresAt == nil {
		return domain.Identity{}, ErrInvalidToken
	}

	return domain.Identity{
		UserID:    claims.Subject,
		Email:     claims.Email,
		Name:      claims.Name,
		SessionID: claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}
