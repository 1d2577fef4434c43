package tests

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
	"golang.org/x/crypto/bcrypt"

	"devflow/internal/adapter/auth"
	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/handlers"
	"devflow/internal/adapter/http/middleware"
	"devflow/internal/adapter/memory"
	"devflow/internal/adapter/session"
	"devflow/internal/app"
	"devflow/internal/config"
	"devflow/pkg/apierrors"
)

const (
	promoEmail = "promo@example.com"
	coachEmail = "coach@example.com"
	password   = "pw123"
)

// apiSuite drives the complete router: real services, real JWT sessions and
// a Redis revocation list served by miniredis. backend is called before each
// test and must return an empty store.
type apiSuite struct {
	suite.Suite

	backend func() app.Backend
	redis   *miniredis.Miniredis
	router  *gin.Engine
}

type account struct {
	id    string
	token string
}

func TestMemoryAPISuite(t *testing.T) {
	suite.Run(t, &apiSuite{
		backend: func() app.Backend {
			return app.MemoryBackend(memory.NewStore())
		},
	})
}

func (s *apiSuite) SetupTest() {
	s.redis = miniredis.RunT(s.T())
	store := session.NewRedisStoreWithClient(redis.NewClient(&redis.Options{Addr: s.redis.Addr()}))
	s.T().Cleanup(func() {
		_ = store.Close()
	})

	cfg := &config.Config{
		AppName:            "devflow",
		AppVersion:         "test",
		SessionSecret:      "api-suite-secret",
		SessionTTL:         720 * time.Hour,
		TelegramAuthMaxAge: 24 * time.Hour,
		PromoFitEmails:     []string{promoEmail, coachEmail},
	}

	router, err := app.NewRouter(cfg, s.backend(), app.Sessions{Revoker: store, Pinger: store}, auth.NewPasswordHasherWithCost(bcrypt.MinCost))
	s.Require().NoError(err)
	s.router = router
}

func (s *apiSuite) call(method, path, token string, body any) *httptest.ResponseRecorder {
	var reader io.Reader = http.NoBody
	switch value := body.(type) {
	case nil:
	case string:
		reader = strings.NewReader(value)
	default:
		payload, err := json.Marshal(value)
		s.Require().NoError(err)
		reader = strings.NewReader(string(payload))
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return s.serve(req)
}

func (s *apiSuite) serve(req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func (s *apiSuite) signUp(email string) account {
	rec := s.call(http.MethodPost, "/api/auth/register", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return s.signIn(email, password)
}

func (s *apiSuite) signIn(email, password string) account {
	rec := s.call(http.MethodPost, "/api/auth/signin", "", gin.H{"email": email, "password": password})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.SessionResponse](s.T(), rec)
	return account{id: got.User.ID, token: got.Token}
}

func (s *apiSuite) createTask(owner account, body any) dto.TaskItem {
	rec := s.call(http.MethodPost, "/api/tasks", owner.token, body)
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	return decode[dto.TaskItem](s.T(), rec)
}

func (s *apiSuite) listTasks(caller account) []dto.TaskItem {
	rec := s.call(http.MethodGet, "/api/tasks", caller.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return decode[[]dto.TaskItem](s.T(), rec)
}

func (s *apiSuite) users(path string, caller account) []dto.UserItem {
	rec := s.call(http.MethodGet, path, caller.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	return decode[[]dto.UserItem](s.T(), rec)
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var value T
	if err := json.Unmarshal(rec.Body.Bytes(), &value); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return value
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	return decode[apierrors.JsonErr](t, rec).ErrDetails.Message
}

func taskIDs(tasks []dto.TaskItem) []string {
	ids := make([]string, 0, len(tasks))
	for _, task := range tasks {
		ids = append(ids, task.ID)
	}
	return ids
}

func userIDs(users []dto.UserItem) []string {
	ids := make([]string, 0, len(users))
	for _, user := range users {
		ids = append(ids, user.ID)
	}
	return ids
}

func (s *apiSuite) TestRegisterAndSignIn() {
	rec := s.call(http.MethodPost, "/api/auth/register", "", gin.H{"email": "alice@example.com", "password": password})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	s.Require().Contains(rec.Body.String(), "User registered successfully.")
	s.Require().NotContains(rec.Body.String(), "password")

	rec = s.call(http.MethodPost, "/api/auth/register", "", gin.H{"email": "ALICE@example.com", "password": "other"})
	s.Require().Equal(http.StatusConflict, rec.Code)

	rec = s.call(http.MethodPost, "/api/auth/register", "", gin.H{"email": "carol@example.com"})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.call(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "alice@example.com", "password": "wrong"})
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Require().Empty(rec.Header().Values("Set-Cookie"))
	s.Require().NotContains(rec.Body.String(), "token")

	alice := s.signIn("alice@example.com", password)
	s.Require().NotEmpty(alice.id)

	task := s.createTask(alice, `{"title":"T1","priority":"LOW","owner_id":"someone-else"}`)
	s.Require().Equal(alice.id, task.OwnerID)
	s.Require().Equal("todo", task.Status)
	s.Require().Equal("low", task.Priority)
	s.Require().False(task.SharedWithPromo)
}

func (s *apiSuite) TestSessionCookieAuthenticates() {
	s.signUp("alice@example.com")

	rec := s.call(http.MethodPost, "/api/auth/signin", "", gin.H{"email": "alice@example.com", "password": password})
	s.Require().Equal(http.StatusOK, rec.Code)
	cookies := (&http.Response{Header: rec.Header()}).Cookies()
	s.Require().Len(cookies, 1)
	s.Require().Equal(middleware.SessionCookie, cookies[0].Name)
	s.Require().True(cookies[0].HttpOnly)

	req := httptest.NewRequest(http.MethodGet, "/api/auth/session", nil)
	req.AddCookie(&http.Cookie{Name: cookies[0].Name, Value: cookies[0].Value})
	rec = s.serve(req)

	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	got := decode[dto.CurrentSessionResponse](s.T(), rec)
	s.Require().Equal("alice", got.User.Username)
	s.Require().NotEmpty(got.ExpiresAt)
}

func (s *apiSuite) TestUnauthenticatedRequestsAreRejected() {
	routes := []struct{ method, path string }{
		{http.MethodGet, "/api/tasks"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodGet, "/api/tasks/any"},
		{http.MethodPut, "/api/tasks/any"},
		{http.MethodPatch, "/api/tasks/any"},
		{http.MethodDelete, "/api/tasks/any"},
		{http.MethodGet, "/api/notes"},
		{http.MethodPost, "/api/notes"},
		{http.MethodDelete, "/api/notes/any"},
		{http.MethodGet, "/api/users/search?email=a"},
		{http.MethodGet, "/api/users/friends"},
		{http.MethodPost, "/api/users/friend-requests/send"},
		{http.MethodPatch, "/api/users/friend-requests/respond"},
		{http.MethodGet, "/api/auth/session"},
	}

	for _, route := range routes {
		rec := s.call(route.method, route.path, "", `{"title":"x","content":"y"}`)
		s.Require().Equal(http.StatusUnauthorized, rec.Code, route.path)
		s.Require().Equal("Authentication required.", errorMessage(s.T(), rec))

		rec = s.call(route.method, route.path, "forged.token.value", `{"title":"x","content":"y"}`)
		s.Require().Equal(http.StatusUnauthorized, rec.Code, route.path)
		s.Require().Equal("Session is invalid or expired.", errorMessage(s.T(), rec))
	}
}

func (s *apiSuite) TestDeleteRemovesTaskFromList() {
	alice := s.signUp("alice@example.com")
	keep := s.createTask(alice, gin.H{"title": "keep"})
	drop := s.createTask(alice, gin.H{"title": "T1", "priority": "LOW"})

	rec := s.call(http.MethodDelete, "/api/tasks/"+drop.ID, alice.token, nil)
	s.Require().Equal(http.StatusNoContent, rec.Code)
	s.Require().Equal([]string{keep.ID}, taskIDs(s.listTasks(alice)))

	for range 2 {
		rec = s.call(http.MethodDelete, "/api/tasks/"+drop.ID, alice.token, nil)
		s.Require().Equal(http.StatusNotFound, rec.Code)
		s.Require().Equal("Task not found.", errorMessage(s.T(), rec))
	}
}

func (s *apiSuite) TestTaskOwnershipIsolation() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")
	task := s.createTask(alice, gin.H{"title": "private"})
	path := "/api/tasks/" + task.ID

	s.Require().Equal(http.StatusNotFound, s.call(http.MethodGet, path, bob.token, nil).Code)
	s.Require().Equal(http.StatusNotFound, s.call(http.MethodPut, path, bob.token, gin.H{"title": "stolen"}).Code)
	s.Require().Equal(http.StatusNotFound, s.call(http.MethodDelete, path, bob.token, nil).Code)

	rec := s.call(http.MethodPatch, path, bob.token, gin.H{"title": "stolen"})
	s.Require().Equal(http.StatusForbidden, rec.Code)
	s.Require().Equal("You are not allowed to modify this task.", errorMessage(s.T(), rec))

	rec = s.call(http.MethodPatch, "/api/tasks/missing-task", bob.token, gin.H{"title": "stolen"})
	s.Require().Equal(http.StatusNotFound, rec.Code)

	s.Require().Empty(s.listTasks(bob))

	rec = s.call(http.MethodGet, path, alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	got := decode[dto.TaskItem](s.T(), rec)
	s.Require().Equal("private", got.Title)
	s.Require().Equal(task.UpdatedAt, got.UpdatedAt)
}

func (s *apiSuite) TestPromoAccountsShareTasks() {
	promo := s.signUp(promoEmail)
	coach := s.signUp(coachEmail)
	bob := s.signUp("bob@example.com")

	shared := s.createTask(promo, gin.H{"title": "shared plan", "shared_with_promo": false})
	s.Require().True(shared.SharedWithPromo)
	private := s.createTask(bob, gin.H{"title": "bob only"})
	s.Require().False(private.SharedWithPromo)

	s.Require().Equal([]string{shared.ID}, taskIDs(s.listTasks(coach)))
	s.Require().Equal([]string{private.ID}, taskIDs(s.listTasks(bob)))

	rec := s.call(http.MethodPatch, "/api/tasks/"+shared.ID, coach.token, gin.H{"status": "done"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	patched := decode[dto.TaskItem](s.T(), rec)
	s.Require().Equal("done", patched.Status)
	s.Require().Equal(promo.id, patched.OwnerID)

	rec = s.call(http.MethodPut, "/api/tasks/"+shared.ID, coach.token, gin.H{"status": "todo"})
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.call(http.MethodPatch, "/api/tasks/"+shared.ID, bob.token, gin.H{"status": "todo"})
	s.Require().Equal(http.StatusForbidden, rec.Code)

	rec = s.call(http.MethodPatch, "/api/tasks/"+private.ID, bob.token, gin.H{"shared_with_promo": true})
	s.Require().Equal(http.StatusBadRequest, rec.Code, rec.Body.String())
	s.Require().Equal(apierrors.Localize(apierrors.MsgEmptyUpdate, "en"), errorMessage(s.T(), rec))

	rec = s.call(http.MethodPatch, "/api/tasks/"+private.ID, bob.token, gin.H{"status": "done", "shared_with_promo": true})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().False(decode[dto.TaskItem](s.T(), rec).SharedWithPromo)
	s.Require().NotContains(taskIDs(s.listTasks(promo)), private.ID)
}

func (s *apiSuite) TestTaskRoundTrip() {
	alice := s.signUp("alice@example.com")
	created := s.createTask(alice, gin.H{
		"title":              "Build board API",
		"description":        "ship endpoint",
		"status":             "in-progress",
		"priority":           "HIGH",
		"due_date":           "2026-03-01",
		"documentation_link": "https://go.dev/doc",
		"tags":               []string{"api", " go ", "api"},
	})
	s.Require().NotEmpty(created.ID)
	s.Require().Equal("in_progress", created.Status)
	s.Require().Equal("high", created.Priority)
	s.Require().Equal("2026-03-01", *created.DueDate)
	s.Require().Equal([]string{"api", "go"}, created.Tags)

	rec := s.call(http.MethodGet, "/api/tasks/"+created.ID, alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Equal(created, decode[dto.TaskItem](s.T(), rec))

	time.Sleep(5 * time.Millisecond)
	rec = s.call(http.MethodPut, "/api/tasks/"+created.ID, alice.token, `{"description":null,"tags":["go"]}`)
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())

	rec = s.call(http.MethodGet, "/api/tasks/"+created.ID, alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	got := decode[dto.TaskItem](s.T(), rec)

	s.Require().Nil(got.Description)
	s.Require().Equal([]string{"go"}, got.Tags)
	s.Require().Equal(created.Title, got.Title)
	s.Require().Equal(created.Status, got.Status)
	s.Require().Equal(created.DueDate, got.DueDate)
	s.Require().Equal(created.DocumentationLink, got.DocumentationLink)
	s.Require().Equal(created.CreatedAt, got.CreatedAt)

	createdAt, err := time.Parse(time.RFC3339Nano, created.UpdatedAt)
	s.Require().NoError(err)
	updatedAt, err := time.Parse(time.RFC3339Nano, got.UpdatedAt)
	s.Require().NoError(err)
	s.Require().True(updatedAt.After(createdAt), "updated_at %s not after %s", got.UpdatedAt, created.UpdatedAt)
}

func (s *apiSuite) TestTaskPayloadValidation() {
	alice := s.signUp("alice@example.com")
	task := s.createTask(alice, gin.H{"title": "validate me"})
	path := "/api/tasks/" + task.ID

	cases := []struct {
		method  string
		body    string
		message string
	}{
		{http.MethodPatch, `{}`, "At least one field must be provided."},
		{http.MethodPatch, `{"status":"blocked"}`, "Status must be one of: todo, in_progress, done."},
		{http.MethodPut, `{"due_date":"01/03/2026"}`, "Due date must use the YYYY-MM-DD format."},
		{http.MethodPut, `{"title":"   "}`, "Title is required."},
		{http.MethodPut, `{"documentation_link":"go.dev"}`, "Documentation link must be an absolute http(s) URL."},
	}
	for _, tc := range cases {
		rec := s.call(tc.method, path, alice.token, tc.body)
		s.Require().Equal(http.StatusBadRequest, rec.Code, tc.body)
		s.Require().Equal(tc.message, errorMessage(s.T(), rec))
	}

	rec := s.call(http.MethodGet, "/api/tasks/not-a-valid-id", alice.token, nil)
	s.Require().Equal(http.StatusNotFound, rec.Code)
}

func (s *apiSuite) TestNoteLifecycle() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")

	rec := s.call(http.MethodPost, "/api/notes", alice.token, gin.H{"title": "Standup", "content": "- auth", "owner_id": bob.id})
	s.Require().Equal(http.StatusCreated, rec.Code, rec.Body.String())
	note := decode[dto.NoteItem](s.T(), rec)
	s.Require().Equal(alice.id, note.OwnerID)
	path := "/api/notes/" + note.ID

	rec = s.call(http.MethodGet, "/api/notes", bob.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())
	s.Require().Equal(http.StatusNotFound, s.call(http.MethodGet, path, bob.token, nil).Code)
	s.Require().Equal(http.StatusNotFound, s.call(http.MethodPatch, path, bob.token, gin.H{"content": "x"}).Code)
	s.Require().Equal(http.StatusNotFound, s.call(http.MethodDelete, path, bob.token, nil).Code)

	rec = s.call(http.MethodPatch, path, alice.token, gin.H{"content": "- auth\n- notes", "color": "#ffd54f"})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	updated := decode[dto.NoteItem](s.T(), rec)
	s.Require().Equal("Standup", updated.Title)
	s.Require().Equal("- auth\n- notes", updated.Content)
	s.Require().Equal("#ffd54f", *updated.Color)

	rec = s.call(http.MethodGet, "/api/notes", alice.token, nil)
	s.Require().Len(decode[[]dto.NoteItem](s.T(), rec), 1)

	rec = s.call(http.MethodDelete, path, alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"message":"Note deleted successfully"}`, rec.Body.String())

	for range 2 {
		s.Require().Equal(http.StatusNotFound, s.call(http.MethodDelete, path, alice.token, nil).Code)
	}
}

func (s *apiSuite) TestFriendMutualIntent() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")

	rec := s.call(http.MethodPost, "/api/users/friend-requests/send", alice.token, gin.H{"recipient_id": bob.id})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().JSONEq(`{"message":"Friend request sent."}`, rec.Body.String())
	s.Require().Equal([]string{alice.id}, userIDs(s.users("/api/users/friend-requests", bob)))

	rec = s.call(http.MethodPost, "/api/users/friend-requests/send", alice.token, gin.H{"recipient_id": bob.id})
	s.Require().Equal(http.StatusBadRequest, rec.Code)

	rec = s.call(http.MethodPost, "/api/users/friend-requests/send", bob.token, gin.H{"recipient_id": alice.id})
	s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	s.Require().JSONEq(`{"message":"You are now friends."}`, rec.Body.String())

	s.Require().Equal([]string{bob.id}, userIDs(s.users("/api/users/friends", alice)))
	s.Require().Equal([]string{alice.id}, userIDs(s.users("/api/users/friends", bob)))
	s.Require().Empty(s.users("/api/users/friend-requests", alice))
	s.Require().Empty(s.users("/api/users/friend-requests", bob))

	rec = s.call(http.MethodPatch, "/api/users/friend-requests/respond", bob.token, gin.H{"sender_id": alice.id, "action": "accept"})
	s.Require().Equal(http.StatusNotFound, rec.Code)

	rec = s.call(http.MethodPost, "/api/users/friend-requests/send", alice.token, gin.H{"recipient_id": bob.id})
	s.Require().Equal(http.StatusBadRequest, rec.Code)
	s.Require().Equal("You are already friends.", errorMessage(s.T(), rec))
}

func (s *apiSuite) TestFriendRequestAcceptAndReject() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")
	carol := s.signUp("carol@example.com")

	for _, sender := range []account{alice, carol} {
		rec := s.call(http.MethodPost, "/api/users/friend-requests/send", sender.token, gin.H{"recipient_id": bob.id})
		s.Require().Equal(http.StatusOK, rec.Code, rec.Body.String())
	}
	s.Require().ElementsMatch([]string{alice.id, carol.id}, userIDs(s.users("/api/users/friend-requests", bob)))

	rec := s.call(http.MethodPatch, "/api/users/friend-requests/respond", bob.token, gin.H{"sender_id": alice.id, "action": "reject"})
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`{"message":"Friend request rejected."}`, rec.Body.String())

	rec = s.call(http.MethodPatch, "/api/users/friend-requests/respond", bob.token, gin.H{"sender_id": carol.id, "action": "accept"})
	s.Require().Equal(http.StatusOK, rec.Code)

	s.Require().Equal([]string{carol.id}, userIDs(s.users("/api/users/friends", bob)))
	s.Require().Equal([]string{bob.id}, userIDs(s.users("/api/users/friends", carol)))
	s.Require().Empty(s.users("/api/users/friends", alice))
	s.Require().Empty(s.users("/api/users/friend-requests", bob))

	for _, sender := range []account{alice, carol} {
		rec = s.call(http.MethodPatch, "/api/users/friend-requests/respond", bob.token, gin.H{"sender_id": sender.id, "action": "accept"})
		s.Require().Equal(http.StatusNotFound, rec.Code)
	}

	rec = s.call(http.MethodPost, "/api/users/friend-requests/send", bob.token, gin.H{"recipient_id": "missing-user"})
	s.Require().Equal(http.StatusNotFound, rec.Code)
	rec = s.call(http.MethodPost, "/api/users/friend-requests/send", bob.token, gin.H{"recipient_id": bob.id})
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *apiSuite) TestSearchUsersExcludesCaller() {
	alice := s.signUp("alice@example.com")
	bob := s.signUp("bob@example.com")
	s.signUp("carol@elsewhere.org")

	rec := s.call(http.MethodGet, "/api/users/search?email=EXAMPLE.com", alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().NotContains(rec.Body.String(), "password")
	s.Require().Equal([]string{bob.id}, userIDs(decode[[]dto.UserItem](s.T(), rec)))

	rec = s.call(http.MethodGet, "/api/users/search?email=.*", alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().JSONEq(`[]`, rec.Body.String())

	rec = s.call(http.MethodGet, "/api/users/search", alice.token, nil)
	s.Require().Equal(http.StatusBadRequest, rec.Code)
}

func (s *apiSuite) TestSignOutRevokesSession() {
	alice := s.signUp("alice@example.com")

	rec := s.call(http.MethodPost, "/api/auth/signout", alice.token, nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	s.Require().Len(s.redis.Keys(), 1)

	rec = s.call(http.MethodGet, "/api/tasks", alice.token, nil)
	s.Require().Equal(http.StatusUnauthorized, rec.Code)
	s.Require().Equal("Session is invalid or expired.", errorMessage(s.T(), rec))

	fresh := s.signIn("alice@example.com", password)
	s.Require().Equal(http.StatusOK, s.call(http.MethodGet, "/api/tasks", fresh.token, nil).Code)
}

func (s *apiSuite) TestTelegramSignInDisabledWithoutBotToken() {
	rec := s.call(http.MethodPost, "/api/auth/telegram", "", `{"id":42,"first_name":"Alice","auth_date":1700000000,"hash":"abc"}`)
	s.Require().Equal(http.StatusServiceUnavailable, rec.Code)
}

func (s *apiSuite) TestErrorsFollowAcceptLanguage() {
	alice := s.signUp("alice@example.com")

	req := httptest.NewRequest(http.MethodGet, "/api/tasks/missing-task", nil)
	req.Header.Set("Authorization", "Bearer "+alice.token)
	req.Header.Set("Accept-Language", "ru-RU,ru;q=0.9,en;q=0.5")
	rec := s.serve(req)

	s.Require().Equal(http.StatusNotFound, rec.Code)
	s.Require().Equal("Задача не найдена.", errorMessage(s.T(), rec))
}

func (s *apiSuite) TestHealthReport() {
	rec := s.call(http.MethodGet, "/api/health", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)

	rec = s.call(http.MethodGet, "/api/health/report", "", nil)
	s.Require().Equal(http.StatusOK, rec.Code)
	report := decode[handlers.HealthAdvanced](s.T(), rec)
	s.Require().Equal(handlers.HealthServices{Database: handlers.StatusOk, Sessions: handlers.StatusOk}, report.Status)
	s.Require().Equal("en", report.Language)

	s.redis.Close()
	rec = s.call(http.MethodGet, "/api/health/report", "", nil)
	s.Require().Equal(handlers.StatusDown, decode[handlers.HealthAdvanced](s.T(), rec).Status.Sessions)
}
