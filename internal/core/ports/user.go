package ports

import (
	"context"

	"devflow/internal/core/domain"
)

type UserRepository interface {
	CreateUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	GetUserByID(ctx context.Context, id string) (domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)
	// UpsertTelegramUser creates the account on first sign-in and refreshes
	// the profile fields afterwards.
	UpsertTelegramUser(ctx context.Context, input domain.CreateUserInput) (domain.User, error)
	SearchUsersByEmail(ctx context.Context, query, excludeID string, limit int) ([]domain.User, error)
	ListUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error)
	// SaveRelations persists the friend list and pending requests of a single user.
	SaveRelations(ctx context.Context, user domain.User) error
}

type UserService interface {
	SearchUsers(ctx context.Context, caller domain.Identity, emailQuery string) ([]domain.User, error)
	ListFriends(ctx context.Context, caller domain.Identity) ([]domain.User, error)
	ListFriendRequests(ctx context.Context, caller domain.Identity) ([]domain.User, error)
	SendFriendRequest(ctx context.Context, caller domain.Identity, recipientID string) (domain.FriendRequestOutcome, error)
	RespondFriendRequest(ctx context.Context, caller domain.Identity, senderID string, action domain.FriendAction) error
}
