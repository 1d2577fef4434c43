package domain

import "errors"

var (
	ErrTaskNotFound          = errors.New("task not found")
	ErrNoteNotFound          = errors.New("note not found")
	ErrUserNotFound          = errors.New("user not found")
	ErrForbidden             = errors.New("forbidden")
	ErrEmptyUpdate           = errors.New("no updatable fields")
	ErrEmailTaken            = errors.New("email already registered")
	ErrInvalidCredentials    = errors.New("invalid email or password")
	ErrInvalidSession        = errors.New("invalid session")
	ErrInvalidTelegramLogin  = errors.New("invalid telegram login")
	ErrTelegramDisabled      = errors.New("telegram sign-in is not configured")
	ErrAlreadyFriends        = errors.New("already friends")
	ErrFriendRequestExists   = errors.New("friend request already sent")
	ErrFriendRequestNotFound = errors.New("friend request not found")
	ErrSelfFriendRequest     = errors.New("cannot send a friend request to yourself")
)
