package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/api/transport"
	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/pkg/httpcontext"
	"github.com/workaholic/backend/repository"
	taskUC "github.com/workaholic/backend/usecase/task"
)

type TaskHandler struct {
	baseHandler
	uc *taskUC.UseCase
}

func NewTaskHandler(uc *taskUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List the caller's tasks
// @Tags tasks
// @Router /api/tasks [get]
func (h *TaskHandler) GetTasks(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	filter := repository.TaskFilter{
		Username: username,
		Status:   string(ctx.QueryArgs().Peek("status")),
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx, filter)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	if tasks == nil {
		tasks = []domain.Task{}
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{
		"user":  username,
		"tasks": tasks,
	})
}

// @Summary Create a task
// @Tags tasks
// @Router /api/tasks [post]
func (h *TaskHandler) AddTask(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	task, ok := h.parseTask(ctx, username)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"user": username,
		"task": created,
	}))
}

// @Summary Replace a task's fields
// @Tags tasks
// @Router /api/tasks/{id} [put]
func (h *TaskHandler) EditTask(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	task, ok := h.parseTask(ctx, username)
	if !ok {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("missing task id", ""))
		return
	}
	task.ID = id

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	updated, err := h.uc.UpdateTask(stdCtx, task)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"user": username,
		"task": updated,
	}))
}

// @Summary Delete a task
// @Tags tasks
// @Router /api/tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("missing task id", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, username, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(nil))
}

func (h *TaskHandler) parseTask(ctx *fasthttp.RequestCtx, username string) (*domain.Task, bool) {
	var req transport.TaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid payload", ""))
		return nil, false
	}
	if req.Title == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Title required", ""))
		return nil, false
	}

	task := &domain.Task{
		Username:    username,
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
		Priority:    req.Priority,
		Repeat:      req.Repeat,
		Days:        req.Days,
		Dates:       req.Dates,
		Time:        req.Time,
	}

	// Legacy clients send a single absolute timestamp.
	if req.TaskTime != "" {
		if parsed, err := time.Parse(time.RFC3339, req.TaskTime); err == nil {
			task.TaskTime = &parsed
		}
	}

	return task, true
}
