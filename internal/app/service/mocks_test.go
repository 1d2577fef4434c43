package service_test

import (
	"context"
	"time"

	"devflow/internal/core/domain"

	"github.com/stretchr/testify/mock"
)

type taskRepositoryMock struct {
	mock.Mock
}

func (m *taskRepositoryMock) ListTasks(ctx context.Context, ownerID string, includeShared bool) ([]domain.Task, error) {
	args := m.Called(ctx, ownerID, includeShared)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskRepositoryMock) CreateTask(ctx context.Context, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) GetTask(ctx context.Context, id string) (domain.Task, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) GetOwnedTask(ctx context.Context, id, ownerID string) (domain.Task, error) {
	args := m.Called(ctx, id, ownerID)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateTask(ctx context.Context, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) UpdateOwnedTask(ctx context.Context, id, ownerID string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, id, ownerID, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskRepositoryMock) DeleteOwnedTask(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

type hasherMock struct {
	mock.Mock
}

func (m *hasherMock) Hash(password string) (string, error) {
	args := m.Called(password)
	return args.String(0), args.Error(1)
}

func (m *hasherMock) Verify(password, hash string) bool {
	args := m.Called(password, hash)
	return args.Bool(0)
}

type sessionManagerMock struct {
	mock.Mock
}

func (m *sessionManagerMock) Issue(user domain.User) (string, domain.Identity, error) {
	args := m.Called(user)
	return args.String(0), args.Get(1).(domain.Identity), args.Error(2)
}

func (m *sessionManagerMock) Parse(token string) (domain.Identity, error) {
	args := m.Called(token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

type revokerMock struct {
	mock.Mock
}

func (m *revokerMock) Revoke(ctx context.Context, sessionID string, expiresAt time.Time) error {
	args := m.Called(ctx, sessionID, expiresAt)
	return args.Error(0)
}

func (m *revokerMock) IsRevoked(ctx context.Context, sessionID string) (bool, error) {
	args := m.Called(ctx, sessionID)
	return args.Bool(0), args.Error(1)
}

type telegramVerifierMock struct {
	mock.Mock
}

func (m *telegramVerifierMock) Verify(login domain.TelegramLogin) error {
	args := m.Called(login)
	return args.Error(0)
}
