package memory

import (
	"context"
	"slices"
	"strings"

	"github.com/google/uuid"

	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
)

type UserRepository struct {
	store *Store
}

var _ ports.UserRepository = (*UserRepository)(nil)

func NewUserRepository(store *Store) *UserRepository {
	return &UserRepository{store: store}
}

func (r *UserRepository) CreateUser(_ context.Context, input domain.CreateUserInput) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	if input.Email != nil {
		if _, ok := r.findByEmail(*input.Email); ok {
			return domain.User{}, domain.ErrEmailTaken
		}
	}
	return r.insert(input), nil
}

func (r *UserRepository) GetUserByID(_ context.Context, id string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.store.users[id]
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) GetUserByEmail(_ context.Context, email string) (domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	user, ok := r.findByEmail(email)
	if !ok {
		return domain.User{}, domain.ErrUserNotFound
	}
	return cloneUser(user), nil
}

func (r *UserRepository) UpsertTelegramUser(_ context.Context, input domain.CreateUserInput) (domain.User, error) {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	for id, user := range r.store.users {
		if user.TelegramID == nil || input.TelegramID == nil || *user.TelegramID != *input.TelegramID {
			continue
		}
		user.Username = input.Username
		user.FirstName = input.FirstName
		user.LastName = input.LastName
		user.PhotoURL = input.PhotoURL
		user.UpdatedAt = r.store.now()
		r.store.users[id] = user
		return cloneUser(user), nil
	}
	return r.insert(input), nil
}

func (r *UserRepository) SearchUsersByEmail(_ context.Context, query, excludeID string, limit int) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	query = strings.ToLower(query)
	users := make([]domain.User, 0)
	for _, user := range r.store.users {
		if user.ID == excludeID || user.Email == nil {
			continue
		}
		if strings.Contains(strings.ToLower(*user.Email), query) {
			users = append(users, cloneUser(user))
		}
	}
	slices.SortFunc(users, func(a, b domain.User) int {
		return strings.Compare(*a.Email, *b.Email)
	})
	if limit > 0 && len(users) > limit {
		users = users[:limit]
	}
	return users, nil
}

func (r *UserRepository) ListUsersByIDs(_ context.Context, ids []string) ([]domain.User, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		if user, ok := r.store.users[id]; ok {
			users = append(users, cloneUser(user))
		}
	}
	return users, nil
}

func (r *UserRepository) SaveRelations(_ context.Context, user domain.User) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()

	stored, ok := r.store.users[user.ID]
	if !ok {
		return domain.ErrUserNotFound
	}
	stored.Friends = slices.Clone(user.Friends)
	stored.FriendRequests = slices.Clone(user.FriendRequests)
	stored.UpdatedAt = r.store.now()
	r.store.users[user.ID] = stored
	return nil
}

func (r *UserRepository) insert(input domain.CreateUserInput) domain.User {
	now := r.store.now()
	user := domain.User{
		ID:             uuid.NewString(),
		Email:          input.Email,
		TelegramID:     input.TelegramID,
		PasswordHash:   input.PasswordHash,
		Username:       input.Username,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PhotoURL:       input.PhotoURL,
		Friends:        []string{},
		FriendRequests: []string{},
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	r.store.users[user.ID] = cloneUser(user)
	return cloneUser(user)
}

func (r *UserRepository) findByEmail(email string) (domain.User, bool) {
	for _, user := range r.store.users {
		if user.Email != nil && strings.EqualFold(*user.Email, email) {
			return user, true
		}
	}
	return domain.User{}, false
}

func cloneUser(user domain.User) domain.User {
	user.Email = clonePtr(user.Email)
	user.TelegramID = clonePtr(user.TelegramID)
	user.Friends = slices.Clone(user.Friends)
	user.FriendRequests = slices.Clone(user.FriendRequests)
	return user
}
