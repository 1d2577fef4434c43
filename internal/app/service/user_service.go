package service

import (
	"context"
	"fmt"
	"strings"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"

	"go.uber.org/zap"
)

const searchResultLimit = 20

type UserService struct {
	userRepository ports.UserRepository
}

func NewUserService(userRepository ports.UserRepository) *UserService {
	return &UserService{userRepository: userRepository}
}

func (s *UserService) SearchUsers(ctx context.Context, caller domain.Identity, emailQuery string) ([]domain.User, error) {
	return s.userRepository.SearchUsersByEmail(ctx, strings.TrimSpace(emailQuery), caller.UserID, searchResultLimit)
}

func (s *UserService) ListFriends(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return s.userRepository.ListUsersByIDs(ctx, user.Friends)
}

func (s *UserService) ListFriendRequests(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	user, err := s.userRepository.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return nil, err
	}
	return s.userRepository.ListUsersByIDs(ctx, user.FriendRequests)
}

// SendFriendRequest records a pending request in the recipient's document.
// When the recipient already asked the caller, both become friends instead.
func (s *UserService) SendFriendRequest(ctx context.Context, caller domain.Identity, recipientID string) (domain.FriendRequestOutcome, error) {
	if recipientID == caller.UserID {
		return 0, domain.ErrSelfFriendRequest
	}

	sender, err := s.userRepository.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return 0, err
	}
	recipient, err := s.userRepository.GetUserByID(ctx, recipientID)
	if err != nil {
		return 0, err
	}

	if sender.HasFriend(recipient.ID) {
		return 0, domain.ErrAlreadyFriends
	}
	if recipient.HasFriendRequestFrom(sender.ID) {
		return 0, domain.ErrFriendRequestExists
	}

	if sender.HasFriendRequestFrom(recipient.ID) {
		sender.AddFriend(recipient.ID)
		recipient.AddFriend(sender.ID)
		sender.RemoveFriendRequest(recipient.ID)
		if err := s.saveBoth(ctx, sender, recipient); err != nil {
			return 0, err
		}
		return domain.FriendRequestAutoAccepted, nil
	}

	recipient.AddFriendRequest(sender.ID)
	if err := s.userRepository.SaveRelations(ctx, recipient); err != nil {
		return 0, fmt.Errorf("save recipient %s: %w", recipient.ID, err)
	}
	return domain.FriendRequestSent, nil
}

func (s *UserService) RespondFriendRequest(ctx context.Context, caller domain.Identity, senderID string, action domain.FriendAction) error {
	recipient, err := s.userRepository.GetUserByID(ctx, caller.UserID)
	if err != nil {
		return err
	}
	sender, err := s.userRepository.GetUserByID(ctx, senderID)
	if err != nil {
		return err
	}

	if !recipient.HasFriendRequestFrom(sender.ID) {
		return domain.ErrFriendRequestNotFound
	}

	if action == domain.FriendActionAccept {
		recipient.AddFriend(sender.ID)
		sender.AddFriend(recipient.ID)
	}
	recipient.RemoveFriendRequest(sender.ID)

	return s.saveBoth(ctx, recipient, sender)
}

// saveBoth writes the two documents one after the other. There is no
// transaction: if the second write fails the first one stays applied.
func (s *UserService) saveBoth(ctx context.Context, first, second domain.User) error {
	if err := s.userRepository.SaveRelations(ctx, first); err != nil {
		return fmt.Errorf("save user %s: %w", first.ID, err)
	}
	if err := s.userRepository.SaveRelations(ctx, second); err != nil {
		zap.L().Error("friend relation left one-sided",
			zap.String("saved_user_id", first.ID),
			zap.String("failed_user_id", second.ID),
			zap.Error(err),
		)
		return fmt.Errorf("save user %s: %w", second.ID, err)
	}
	return nil
}

var _ ports.UserService = (*UserService)(nil)
