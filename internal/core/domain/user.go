package domain

import (
	"slices"
	"time"
)

// User is either a credential account (Email + PasswordHash) or a Telegram
// account (TelegramID). Friends and FriendRequests hold user ids; a pending
// request lives only in the recipient's FriendRequests.
type User struct {
	ID             string
	Email          *string
	TelegramID     *int64
	PasswordHash   string
	Username       string
	FirstName      string
	LastName       string
	PhotoURL       string
	Friends        []string
	FriendRequests []string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

func (u User) HasFriend(userID string) bool {
	return slices.Contains(u.Friends, userID)
}

func (u User) HasFriendRequestFrom(userID string) bool {
	return slices.Contains(u.FriendRequests, userID)
}

// AddFriend is idempotent.
func (u *User) AddFriend(userID string) {
	if !u.HasFriend(userID) {
		u.Friends = append(u.Friends, userID)
	}
}

func (u *User) AddFriendRequest(userID string) {
	if !u.HasFriendRequestFrom(userID) {
		u.FriendRequests = append(u.FriendRequests, userID)
	}
}

func (u *User) RemoveFriendRequest(userID string) {
	u.FriendRequests = slices.DeleteFunc(u.FriendRequests, func(id string) bool {
		return id == userID
	})
}

// DisplayName is the name put in session claims.
func (u User) DisplayName() string {
	if u.Username != "" {
		return u.Username
	}
	return u.FirstName
}

type CreateUserInput struct {
	Email        *string
	TelegramID   *int64
	PasswordHash string
	Username     string
	FirstName    string
	LastName     string
	PhotoURL     string
}

type FriendAction string

const (
	FriendActionAccept FriendAction = "accept"
	FriendActionReject FriendAction = "reject"
)

type FriendRequestOutcome int

const (
	FriendRequestSent FriendRequestOutcome = iota
	FriendRequestAutoAccepted
)
