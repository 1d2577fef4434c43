package tests

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/mock"

	"devflow/internal/adapter/http/middleware"
	"devflow/internal/core/domain"
)

var (
	alice = domain.Identity{UserID: "u-alice", Email: "alice@example.com", Name: "alice", SessionID: "s-alice"}
	bob   = domain.Identity{UserID: "u-bob", Email: "bob@example.com", Name: "bob", SessionID: "s-bob"}
)

// tokenAuthenticator resolves the bearer token "<user id>" to a fixed identity.
type tokenAuthenticator map[string]domain.Identity

func (a tokenAuthenticator) Authenticate(_ context.Context, token string) (domain.Identity, error) {
	identity, ok := a[token]
	if !ok {
		return domain.Identity{}, domain.ErrInvalidSession
	}
	return identity, nil
}

var testAuthenticator = tokenAuthenticator{
	alice.UserID: alice,
	bob.UserID:   bob,
}

// newRouter mounts a single route behind the language middleware and, when
// protected, the session gate.
func newRouter(method, path string, protected bool, handler gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	chain := []gin.HandlerFunc{middleware.LanguageMiddleware()}
	if protected {
		chain = append(chain, middleware.RequireSession(testAuthenticator))
	}
	router.Handle(method, path, append(chain, handler)...)
	return router
}

func newRequest(method, target, body string, identity *domain.Identity) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept-Language", "en")
	if identity != nil {
		req.Header.Set("Authorization", "Bearer "+identity.UserID)
	}
	return req
}

func record(router *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func serve(router *gin.Engine, method, target, body string, identity *domain.Identity) *httptest.ResponseRecorder {
	return record(router, newRequest(method, target, body, identity))
}

type taskServiceMock struct {
	mock.Mock
}

func (m *taskServiceMock) ListTasks(ctx context.Context, caller domain.Identity) ([]domain.Task, error) {
	args := m.Called(ctx, caller)

	var tasks []domain.Task
	if value := args.Get(0); value != nil {
		tasks = value.([]domain.Task)
	}
	return tasks, args.Error(1)
}

func (m *taskServiceMock) CreateTask(ctx context.Context, caller domain.Identity, input domain.CreateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, caller, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) GetTask(ctx context.Context, caller domain.Identity, id string) (domain.Task, error) {
	args := m.Called(ctx, caller, id)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) UpdateTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, caller, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) PatchTask(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error) {
	args := m.Called(ctx, caller, id, input)
	return args.Get(0).(domain.Task), args.Error(1)
}

func (m *taskServiceMock) DeleteTask(ctx context.Context, caller domain.Identity, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

type noteServiceMock struct {
	mock.Mock
}

func (m *noteServiceMock) ListNotes(ctx context.Context, caller domain.Identity) ([]domain.Note, error) {
	args := m.Called(ctx, caller)

	var notes []domain.Note
	if value := args.Get(0); value != nil {
		notes = value.([]domain.Note)
	}
	return notes, args.Error(1)
}

func (m *noteServiceMock) CreateNote(ctx context.Context, caller domain.Identity, input domain.CreateNoteInput) (domain.Note, error) {
	args := m.Called(ctx, caller, input)
	return args.Get(0).(domain.Note), args.Error(1)
}

func (m *noteServiceMock) GetNote(ctx context.Context, caller domain.Identity, id string) (domain.Note, error) {
	args := m.Called(ctx, caller, id)
	return args.Get(0).(domain.Note), args.Error(1)
}

func (m *noteServiceMock) UpdateNote(ctx context.Context, caller domain.Identity, id string, input domain.UpdateNoteInput) (domain.Note, error) {
	args := m.Called(ctx, caller, id, input)
	return args.Get(0).(domain.Note), args.Error(1)
}

func (m *noteServiceMock) DeleteNote(ctx context.Context, caller domain.Identity, id string) error {
	return m.Called(ctx, caller, id).Error(0)
}

type userServiceMock struct {
	mock.Mock
}

func (m *userServiceMock) SearchUsers(ctx context.Context, caller domain.Identity, emailQuery string) ([]domain.User, error) {
	args := m.Called(ctx, caller, emailQuery)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userServiceMock) ListFriends(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	args := m.Called(ctx, caller)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userServiceMock) ListFriendRequests(ctx context.Context, caller domain.Identity) ([]domain.User, error) {
	args := m.Called(ctx, caller)

	var users []domain.User
	if value := args.Get(0); value != nil {
		users = value.([]domain.User)
	}
	return users, args.Error(1)
}

func (m *userServiceMock) SendFriendRequest(ctx context.Context, caller domain.Identity, recipientID string) (domain.FriendRequestOutcome, error) {
	args := m.Called(ctx, caller, recipientID)
	return args.Get(0).(domain.FriendRequestOutcome), args.Error(1)
}

func (m *userServiceMock) RespondFriendRequest(ctx context.Context, caller domain.Identity, senderID string, action domain.FriendAction) error {
	return m.Called(ctx, caller, senderID, action).Error(0)
}

type authServiceMock struct {
	mock.Mock
}

func (m *authServiceMock) Authenticate(ctx context.Context, token string) (domain.Identity, error) {
	args := m.Called(ctx, token)
	return args.Get(0).(domain.Identity), args.Error(1)
}

func (m *authServiceMock) Register(ctx context.Context, input domain.RegisterInput) (domain.User, error) {
	args := m.Called(ctx, input)
	return args.Get(0).(domain.User), args.Error(1)
}

func (m *authServiceMock) SignIn(ctx context.Context, email, password string) (domain.Session, error) {
	args := m.Called(ctx, email, password)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) SignInWithTelegram(ctx context.Context, login domain.TelegramLogin) (domain.Session, error) {
	args := m.Called(ctx, login)
	return args.Get(0).(domain.Session), args.Error(1)
}

func (m *authServiceMock) SignOut(ctx context.Context, caller domain.Identity) error {
	return m.Called(ctx, caller).Error(0)
}

func (m *authServiceMock) CurrentUser(ctx context.Context, caller domain.Identity) (domain.User, error) {
	args := m.Called(ctx, caller)
	return args.Get(0).(domain.User), args.Error(1)
}
