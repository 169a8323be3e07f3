package handler

import (
	"encoding/json"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskwire/backend/api/transport"
	"github.com/taskwire/backend/domain"
	"github.com/taskwire/backend/internal/config"
	sqliteInfra "github.com/taskwire/backend/internal/infrastructure/sqlite"
	"github.com/taskwire/backend/pkg/httpcontext"
	sqliteRepo "github.com/taskwire/backend/repository/sqlite"
	taskUC "github.com/taskwire/backend/usecase/task"
)

func newTestHandler(t *testing.T) *TaskHandler {
	t.Helper()
	cfg := config.DatabaseConfig{
		Path:        filepath.Join(t.TempDir(), "api.db"),
		ForeignKeys: true,
	}
	db, err := sqliteInfra.Open(cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("failed to open db: %v", err)
	}
	if err := sqliteInfra.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })

	uc := taskUC.New(sqliteRepo.NewTaskRepository(db), zap.NewNop())
	return NewTaskHandler(uc, httpcontext.NewAdapter(time.Second), zap.NewNop())
}

func invoke(t *testing.T, fn fasthttp.RequestHandler, method, body, id string) *fasthttp.RequestCtx {
	t.Helper()
	ctx := &fasthttp.RequestCtx{}
	ctx.Request.Header.SetMethod(method)
	if body != "" {
		ctx.Request.SetBodyString(body)
	}
	if id != "" {
		ctx.SetUserValue("id", id)
	}
	fn(ctx)
	return ctx
}

func createTestTask(t *testing.T, h *TaskHandler, body string) transport.CreatedTaskBody {
	t.Helper()
	ctx := invoke(t, h.CreateTask, fasthttp.MethodPost, body, "")
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("create failed with status %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}
	var created transport.CreatedTaskBody
	if err := json.Unmarshal(ctx.Response.Body(), &created); err != nil {
		t.Fatalf("failed to decode create response: %v", err)
	}
	return created
}

func listTestTasks(t *testing.T, h *TaskHandler) []domain.Task {
	t.Helper()
	ctx := invoke(t, h.ListTasks, fasthttp.MethodGet, "", "")
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("list failed with status %d", ctx.Response.StatusCode())
	}
	var tasks []domain.Task
	if err := json.Unmarshal(ctx.Response.Body(), &tasks); err != nil {
		t.Fatalf("failed to decode list response: %v", err)
	}
	return tasks
}

func TestCreateTaskRequiresTitle(t *testing.T) {
	h := newTestHandler(t)

	ctx := invoke(t, h.CreateTask, fasthttp.MethodPost, `{"description":"no title"}`, "")
	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", ctx.Response.StatusCode())
	}
	var body transport.ErrorBody
	if err := json.Unmarshal(ctx.Response.Body(), &body); err != nil {
		t.Fatalf("failed to decode error body: %v", err)
	}
	if !strings.Contains(body.Error, "title") {
		t.Errorf("expected title error, got %q", body.Error)
	}

	// Nothing persisted.
	if tasks := listTestTasks(t, h); len(tasks) != 0 {
		t.Errorf("expected no tasks persisted, got %d", len(tasks))
	}
}

func TestCreateTaskMalformedBody(t *testing.T) {
	h := newTestHandler(t)

	ctx := invoke(t, h.CreateTask, fasthttp.MethodPost, `{not json`, "")
	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", ctx.Response.StatusCode())
	}
}

func TestCreateAndListWithRelationships(t *testing.T) {
	h := newTestHandler(t)

	a := createTestTask(t, h, `{"title":"a"}`)
	b := createTestTask(t, h, `{"title":"b"}`)
	c := createTestTask(t, h, fmt.Sprintf(`{"title":"c","description":"grouped","parentTasks":[%d,%d]}`, a.ID, b.ID))

	if c.Title != "c" || c.Description != "grouped" {
		t.Errorf("unexpected create echo: %+v", c)
	}

	tasks := listTestTasks(t, h)
	if len(tasks) != 3 {
		t.Fatalf("expected 3 tasks, got %d", len(tasks))
	}

	byID := make(map[int64]domain.Task)
	for _, task := range tasks {
		byID[task.ID] = task
	}
	if got := byID[c.ID].ParentTasks; len(got) != 2 {
		t.Errorf("expected 2 parents for c, got %v", got)
	}
	if got := byID[a.ID].ChildTasks; len(got) != 1 || got[0] != c.ID {
		t.Errorf("expected a's children to be [%d], got %v", c.ID, got)
	}
	if got := byID[b.ID].ChildTasks; len(got) != 1 || got[0] != c.ID {
		t.Errorf("expected b's children to be [%d], got %v", c.ID, got)
	}

	// Positions are assigned in creation order.
	for i, task := range tasks {
		if task.Position != int64(i) {
			t.Errorf("expected position %d, got %d", i, task.Position)
		}
	}
}

func TestListEmitsEmptyArraysNotNull(t *testing.T) {
	h := newTestHandler(t)
	createTestTask(t, h, `{"title":"lonely","parentTasks":[],"childTasks":[]}`)

	ctx := invoke(t, h.ListTasks, fasthttp.MethodGet, "", "")
	body := string(ctx.Response.Body())
	if !strings.Contains(body, `"child_tasks":[]`) || !strings.Contains(body, `"parent_tasks":[]`) {
		t.Errorf("expected empty relationship arrays in body, got %s", body)
	}
}

func TestReorderEndpoint(t *testing.T) {
	h := newTestHandler(t)

	t1 := createTestTask(t, h, `{"title":"one"}`)
	t2 := createTestTask(t, h, `{"title":"two"}`)
	t3 := createTestTask(t, h, `{"title":"three"}`)

	body := fmt.Sprintf(`{"tasks":[%d,%d,%d]}`, t3.ID, t1.ID, t2.ID)
	ctx := invoke(t, h.ReorderTasks, fasthttp.MethodPut, body, "")
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ctx.Response.StatusCode(), ctx.Response.Body())
	}

	tasks := listTestTasks(t, h)
	want := []int64{t3.ID, t1.ID, t2.ID}
	for i, task := range tasks {
		if task.ID != want[i] {
			t.Errorf("index %d: expected task %d, got %d", i, want[i], task.ID)
		}
	}
}

func TestReorderRejectsNonArray(t *testing.T) {
	h := newTestHandler(t)

	for _, body := range []string{`{"tasks":"3,1,2"}`, `{}`, `{"tasks":null}`} {
		ctx := invoke(t, h.ReorderTasks, fasthttp.MethodPut, body, "")
		if ctx.Response.StatusCode() != http.StatusBadRequest {
			t.Errorf("body %s: expected 400, got %d", body, ctx.Response.StatusCode())
		}
	}
}

func TestSetDoneMessages(t *testing.T) {
	h := newTestHandler(t)
	task := createTestTask(t, h, `{"title":"toggle"}`)
	id := fmt.Sprintf("%d", task.ID)

	ctx := invoke(t, h.SetTaskDone, fasthttp.MethodPut, `{"done":true}`, id)
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}
	var msg transport.MessageBody
	_ = json.Unmarshal(ctx.Response.Body(), &msg)
	want := fmt.Sprintf("Task dengan ID %d ditandai sebagai Selesai", task.ID)
	if msg.Message != want {
		t.Errorf("expected %q, got %q", want, msg.Message)
	}

	if tasks := listTestTasks(t, h); !tasks[0].Done {
		t.Error("expected task to be done after update")
	}

	ctx = invoke(t, h.SetTaskDone, fasthttp.MethodPut, `{"done":0}`, id)
	_ = json.Unmarshal(ctx.Response.Body(), &msg)
	want = fmt.Sprintf("Task dengan ID %d ditandai sebagai Belum Selesai", task.ID)
	if msg.Message != want {
		t.Errorf("expected %q, got %q", want, msg.Message)
	}

	if tasks := listTestTasks(t, h); tasks[0].Done {
		t.Error("expected task to be not done after update")
	}
}

func TestSetDoneNotFound(t *testing.T) {
	h := newTestHandler(t)

	ctx := invoke(t, h.SetTaskDone, fasthttp.MethodPut, `{"done":true}`, "999")
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

func TestDeleteTask(t *testing.T) {
	h := newTestHandler(t)

	a := createTestTask(t, h, `{"title":"a"}`)
	createTestTask(t, h, fmt.Sprintf(`{"title":"b","parentTasks":[%d]}`, a.ID))

	ctx := invoke(t, h.DeleteTask, fasthttp.MethodDelete, "", fmt.Sprintf("%d", a.ID))
	if ctx.Response.StatusCode() != http.StatusOK {
		t.Fatalf("expected 200, got %d", ctx.Response.StatusCode())
	}

	tasks := listTestTasks(t, h)
	if len(tasks) != 1 {
		t.Fatalf("expected 1 task left, got %d", len(tasks))
	}
	if len(tasks[0].ParentTasks) != 0 {
		t.Errorf("expected cascade to clear parents, got %v", tasks[0].ParentTasks)
	}
}

func TestDeleteNotFound(t *testing.T) {
	h := newTestHandler(t)

	ctx := invoke(t, h.DeleteTask, fasthttp.MethodDelete, "", "999")
	if ctx.Response.StatusCode() != http.StatusNotFound {
		t.Errorf("expected 404, got %d", ctx.Response.StatusCode())
	}
}

func TestInvalidTaskID(t *testing.T) {
	h := newTestHandler(t)

	ctx := invoke(t, h.DeleteTask, fasthttp.MethodDelete, "", "abc")
	if ctx.Response.StatusCode() != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", ctx.Response.StatusCode())
	}
}
