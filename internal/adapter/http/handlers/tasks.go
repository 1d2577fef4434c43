package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"devflow/internal/adapter/http/dto"
	"devflow/internal/adapter/http/mapper"
	"devflow/internal/adapter/http/validation"
	"devflow/internal/core/domain"
	"devflow/internal/core/ports"
	"devflow/pkg/apierrors"
)

type TaskHandler struct {
	taskService ports.TaskService
}

func NewTaskHandler(taskService ports.TaskService) *TaskHandler {
	return &TaskHandler{taskService: taskService}
}

func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	tasks, err := h.taskService.ListTasks(c.Request.Context(), identity)
	if err != nil {
		zap.L().Error("failed to list tasks", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailListTask)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItems(tasks))
}

func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.CreateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	input, err := validation.BuildCreateTaskInput(req, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.MessageKey(err))
		return
	}

	task, err := h.taskService.CreateTask(c.Request.Context(), identity, input)
	if err != nil {
		zap.L().Error("failed to create task", zap.String("user_id", identity.UserID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailCreateTask)
		return
	}

	c.JSON(http.StatusCreated, mapper.ToTaskItem(task))
}

func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	task, err := h.taskService.GetTask(c.Request.Context(), identity, taskID)
	if err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
			return
		}

		zap.L().Error("failed to get task", zap.String("task_id", taskID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgInternalError)
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

// UpdateTask handles PUT: the owner predicate is part of the lookup, so a
// task owned by someone else is reported as missing.
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	h.update(c, h.taskService.UpdateTask)
}

// PatchTask additionally lets allow-listed accounts edit shared tasks and
// answers 403 for an existing task the caller may not touch.
func (h *TaskHandler) PatchTask(c *gin.Context) {
	h.update(c, h.taskService.PatchTask)
}

type taskUpdateFunc func(ctx context.Context, caller domain.Identity, id string, input domain.UpdateTaskInput) (domain.Task, error)

func (h *TaskHandler) update(c *gin.Context, apply taskUpdateFunc) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	var req dto.UpdateTaskRequest
	raw, err := bindJSONWithRaw(c, &req)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.BindingMessageKey(err))
		return
	}

	input, err := validation.BuildUpdateTaskInput(req, raw)
	if err != nil {
		respondError(c, http.StatusBadRequest, validation.MessageKey(err))
		return
	}

	taskID := c.Param("id")
	task, err := apply(c.Request.Context(), identity, taskID, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrTaskNotFound):
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
		case errors.Is(err, domain.ErrForbidden):
			respondError(c, http.StatusForbidden, apierrors.MsgForbidden)
		case errors.Is(err, domain.ErrEmptyUpdate):
			respondError(c, http.StatusBadRequest, apierrors.MsgEmptyUpdate)
		default:
			zap.L().Error("failed to update task", zap.String("task_id", taskID), zap.Error(err))
			respondError(c, http.StatusInternalServerError, apierrors.MsgFailUpdateTask)
		}
		return
	}

	c.JSON(http.StatusOK, mapper.ToTaskItem(task))
}

func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, ok := caller(c)
	if !ok {
		return
	}

	taskID := c.Param("id")
	if err := h.taskService.DeleteTask(c.Request.Context(), identity, taskID); err != nil {
		if errors.Is(err, domain.ErrTaskNotFound) {
			respondError(c, http.StatusNotFound, apierrors.MsgTaskNotFound)
			return
		}

		zap.L().Error("failed to delete task", zap.String("task_id", taskID), zap.Error(err))
		respondError(c, http.StatusInternalServerError, apierrors.MsgFailDeleteTask)
		return
	}

	c.Status(http.StatusNoContent)
}
