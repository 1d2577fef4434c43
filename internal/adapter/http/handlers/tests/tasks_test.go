package tests

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/handlers"
	"devflow/internal/core/domain"
	"devflow/pkg/apierrors"
)

func sampleTask() domain.Task {
	description := "ship endpoint"
	dueDate := time.Date(2026, 2, 20, 0, 0, 0, 0, time.UTC)
	createdAt := time.Date(2026, 2, 13, 10, 20, 30, 0, time.UTC)

	return domain.Task{
		ID:          "t1",
		OwnerID:     alice.UserID,
		Title:       "Build board API",
		Description: &description,
		Status:      domain.TaskStatusInProgress,
		Priority:    domain.TaskPriorityHigh,
		DueDate:     &dueDate,
		Tags:        []string{"backend"},
		CreatedAt:   createdAt,
		UpdatedAt:   createdAt.Add(time.Hour),
	}
}

func decodeError(t *testing.T, body []byte) apierrors.JsonErr {
	t.Helper()
	var got apierrors.JsonErr
	require.NoError(t, json.Unmarshal(body, &got))
	return got
}

func TestTaskHandler_ListTasks_Success(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, alice).Return([]domain.Task{sampleTask()}, nil).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks", true, handler.ListTasks)

	rec := serve(router, http.MethodGet, "/api/tasks", "", &alice)

	require.Equal(t, http.StatusOK, rec.Code)

	var got []dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 1)
	require.Equal(t, "t1", got[0].ID)
	require.Equal(t, alice.UserID, got[0].OwnerID)
	require.Equal(t, "in_progress", got[0].Status)
	require.Equal(t, "high", got[0].Priority)
	require.Equal(t, "2026-02-20", *got[0].DueDate)
	require.Equal(t, []string{"backend"}, got[0].Tags)
	require.Equal(t, "2026-02-13T10:20:30Z", got[0].CreatedAt)
	require.Equal(t, "2026-02-13T11:20:30Z", got[0].UpdatedAt)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ListTasks_Unauthenticated(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks", true, handler.ListTasks)

	rec := serve(router, http.MethodGet, "/api/tasks", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	require.Equal(t, http.StatusUnauthorized, decodeError(t, rec.Body.Bytes()).ErrDetails.Code)
	serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_WithoutGateStillRejects(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks", false, handler.ListTasks)

	rec := serve(router, http.MethodGet, "/api/tasks", "", nil)

	require.Equal(t, http.StatusUnauthorized, rec.Code)
	serviceMock.AssertNotCalled(t, "ListTasks", mock.Anything, mock.Anything)
}

func TestTaskHandler_ListTasks_Error(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("ListTasks", mock.Anything, alice).Return(nil, errors.New("db is down")).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks", true, handler.ListTasks)

	rec := serve(router, http.MethodGet, "/api/tasks", "", &alice)

	require.Equal(t, http.StatusInternalServerError, rec.Code)
	got := decodeError(t, rec.Body.Bytes())
	require.Equal(t, http.StatusInternalServerError, got.ErrDetails.Code)
	require.Equal(t, "Failed to fetch tasks.", got.ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_Success(t *testing.T) {
	expectedInput := domain.CreateTaskInput{
		Title:    "T1",
		Status:   domain.TaskStatusTodo,
		Priority: domain.TaskPriorityLow,
	}
	created := domain.Task{
		ID:        "t9",
		OwnerID:   alice.UserID,
		Title:     "T1",
		Status:    domain.TaskStatusTodo,
		Priority:  domain.TaskPriorityLow,
		CreatedAt: time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC),
		UpdatedAt: time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC),
	}

	serviceMock := new(taskServiceMock)
	serviceMock.On("CreateTask", mock.Anything, alice, expectedInput).Return(created, nil).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPost, "/api/tasks", true, handler.CreateTask)

	rec := serve(router, http.MethodPost, "/api/tasks", `{"title":"T1","priority":"LOW","owner_id":"u-bob"}`, &alice)

	require.Equal(t, http.StatusCreated, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "t9", got.ID)
	require.Equal(t, alice.UserID, got.OwnerID)
	require.Equal(t, "todo", got.Status)
	require.Equal(t, "low", got.Priority)
	require.Nil(t, got.Description)
	require.Equal(t, []string{}, got.Tags)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_CreateTask_InvalidPayload(t *testing.T) {
	cases := map[string]struct {
		body    string
		message string
	}{
		"malformed json": {`{"title":`, "Invalid request payload."},
		"missing title":  {`{"priority":"low"}`, "Title is required."},
		"invalid status": {`{"title":"T","status":"blocked"}`, "Status must be one of: todo, in_progress, done."},
		"wrong type":     {`{"title":42}`, "Invalid request payload."},
		"invalid due":    {`{"title":"T","due_date":"tomorrow"}`, "Due date must use the YYYY-MM-DD format."},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			serviceMock := new(taskServiceMock)
			handler := handlers.NewTaskHandler(serviceMock)
			router := newRouter(http.MethodPost, "/api/tasks", true, handler.CreateTask)

			rec := serve(router, http.MethodPost, "/api/tasks", tc.body, &alice)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			require.Equal(t, tc.message, decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
			serviceMock.AssertNotCalled(t, "CreateTask", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

func TestTaskHandler_GetTask_NotFound(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, bob, "t1").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks/:id", true, handler.GetTask)

	rec := serve(router, http.MethodGet, "/api/tasks/t1", "", &bob)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Task not found.", decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_ClearsDescription(t *testing.T) {
	status := domain.TaskStatusDone
	expectedInput := domain.UpdateTaskInput{Status: &status, DescriptionSet: true}
	updated := sampleTask()
	updated.Status = domain.TaskStatusDone
	updated.Description = nil

	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, alice, "t1", expectedInput).Return(updated, nil).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPut, "/api/tasks/:id", true, handler.UpdateTask)

	rec := serve(router, http.MethodPut, "/api/tasks/t1", `{"status":"done","description":null}`, &alice)

	require.Equal(t, http.StatusOK, rec.Code)
	var got dto.TaskItem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Equal(t, "done", got.Status)
	require.Nil(t, got.Description)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_UpdateTask_EmptyBody(t *testing.T) {
	serviceMock := new(taskServiceMock)
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPut, "/api/tasks/:id", true, handler.UpdateTask)

	rec := serve(router, http.MethodPut, "/api/tasks/t1", `{}`, &alice)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "At least one field must be provided.", decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
}

func TestTaskHandler_UpdateTask_NotOwned(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("UpdateTask", mock.Anything, bob, "t1", mock.Anything).Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPut, "/api/tasks/:id", true, handler.UpdateTask)

	rec := serve(router, http.MethodPut, "/api/tasks/t1", `{"title":"mine now"}`, &bob)

	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_PatchTask_Forbidden(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("PatchTask", mock.Anything, bob, "t1", mock.Anything).Return(domain.Task{}, domain.ErrForbidden).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPatch, "/api/tasks/:id", true, handler.PatchTask)

	rec := serve(router, http.MethodPatch, "/api/tasks/t1", `{"status":"done"}`, &bob)

	require.Equal(t, http.StatusForbidden, rec.Code)
	require.Equal(t, "You are not allowed to modify this task.", decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_PatchTask_NothingLeftToApply(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("PatchTask", mock.Anything, bob, "t1", mock.Anything).Return(domain.Task{}, domain.ErrEmptyUpdate).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodPatch, "/api/tasks/:id", true, handler.PatchTask)

	rec := serve(router, http.MethodPatch, "/api/tasks/t1", `{"shared_with_promo":true}`, &bob)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "At least one field must be provided.", decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_DeleteTask(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("DeleteTask", mock.Anything, alice, "t1").Return(nil).Once()
	serviceMock.On("DeleteTask", mock.Anything, alice, "t1").Return(domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodDelete, "/api/tasks/:id", true, handler.DeleteTask)

	rec := serve(router, http.MethodDelete, "/api/tasks/t1", "", &alice)
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Empty(t, rec.Body.String())

	rec = serve(router, http.MethodDelete, "/api/tasks/t1", "", &alice)
	require.Equal(t, http.StatusNotFound, rec.Code)
	serviceMock.AssertExpectations(t)
}

func TestTaskHandler_ErrorsAreTranslated(t *testing.T) {
	serviceMock := new(taskServiceMock)
	serviceMock.On("GetTask", mock.Anything, alice, "missing").Return(domain.Task{}, domain.ErrTaskNotFound).Once()
	handler := handlers.NewTaskHandler(serviceMock)
	router := newRouter(http.MethodGet, "/api/tasks/:id", true, handler.GetTask)

	req := newRequest(http.MethodGet, "/api/tasks/missing", "", &alice)
	req.Header.Set("Accept-Language", "ru")
	rec := record(router, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, "Задача не найдена.", decodeError(t, rec.Body.Bytes()).ErrDetails.Message)
}
