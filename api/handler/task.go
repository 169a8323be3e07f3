package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskwire/backend/api/transport"
	"github.com/taskwire/backend/pkg/httpcontext"
	appLogger "github.com/taskwire/backend/pkg/logger"
	taskUC "github.com/taskwire/backend/usecase/task"
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

// @Summary List tasks
// @Tags tasks
// @Router /tasks [get]
func (h *TaskHandler) ListTasks(ctx *fasthttp.RequestCtx) {
	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	tasks, err := h.uc.ListTasks(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, tasks)
}

// @Summary Create task with optional parent/child links
// @Tags tasks
// @Router /tasks [post]
func (h *TaskHandler) CreateTask(ctx *fasthttp.RequestCtx) {
	var req transport.CreateTaskRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid payload"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	created, err := h.uc.CreateTask(stdCtx, req.Title, req.Description, req.ParentTasks, req.ChildTasks)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.CreatedTaskBody{
		ID:          created.ID,
		Title:       created.Title,
		Description: created.Description,
	})
}

// @Summary Reorder tasks by submitted id order
// @Tags tasks
// @Router /tasks/reorder [put]
func (h *TaskHandler) ReorderTasks(ctx *fasthttp.RequestCtx) {
	var req transport.ReorderRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Tasks == nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("tasks must be an array of task ids"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.ReorderTasks(stdCtx, req.Tasks); err != nil {
		appLogger.WithRequestID(stdCtx, h.logger).Error("reorder failed", zap.Error(err))
		h.respondJSON(ctx, http.StatusInternalServerError, transport.NewError("failed to update task order"))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewMessage("Urutan task berhasil diperbarui"))
}

// @Summary Set task completion
// @Tags tasks
// @Router /tasks/{id} [put]
func (h *TaskHandler) SetTaskDone(ctx *fasthttp.RequestCtx) {
	id, err := taskID(ctx)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid task id"))
		return
	}

	var req transport.SetDoneRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid payload"))
		return
	}
	done := bool(req.Done)

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.SetTaskDone(stdCtx, id, done); err != nil {
		h.respondError(ctx, err)
		return
	}

	label := "Belum Selesai"
	if done {
		label = "Selesai"
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewMessage(
		fmt.Sprintf("Task dengan ID %d ditandai sebagai %s", id, label),
	))
}

// @Summary Delete task, cascading its relationships
// @Tags tasks
// @Router /tasks/{id} [delete]
func (h *TaskHandler) DeleteTask(ctx *fasthttp.RequestCtx) {
	id, err := taskID(ctx)
	if err != nil {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("invalid task id"))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.DeleteTask(stdCtx, id); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.NewMessage(
		fmt.Sprintf("Task dengan ID %d berhasil dihapus", id),
	))
}

func taskID(ctx *fasthttp.RequestCtx) (int64, error) {
	raw, _ := ctx.UserValue("id").(string)
	return strconv.ParseInt(raw, 10, 64)
}
