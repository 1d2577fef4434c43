package domain

import "time"

// Identity is what the authentication gate resolves from a session token.
type Identity struct {
	UserID    string
	Email     string
	Name      string
	SessionID string
	ExpiresAt time.Time
}

type Session struct {
	Token     string
	ExpiresAt time.Time
	User      User
}

type RegisterInput struct {
	Email    string
	Password string
	Username string
}

// TelegramLogin is the payload produced by the Telegram login widget.
type TelegramLogin struct {
	ID        int64
	FirstName string
	LastName  string
	Username  string
	PhotoURL  string
	AuthDate  int64
	Hash      string
}
