package router

import (
	"net/http"

	"github.com/fasthttp/router"
	"github.com/valyala/fasthttp"

	apiHandler "github.com/taskwire/backend/api/handler"
)

type Handlers struct {
	Task   *apiHandler.TaskHandler
	Health *apiHandler.HealthHandler
}

// New builds the route table. The static /tasks/reorder route takes priority
// over the /tasks/{id} parameter route.
func New(handlers Handlers, wrap func(fasthttp.RequestHandler) fasthttp.RequestHandler) *router.Router {
	if wrap == nil {
		wrap = func(next fasthttp.RequestHandler) fasthttp.RequestHandler { return next }
	}

	r := router.New()
	r.PanicHandler = func(ctx *fasthttp.RequestCtx, _ interface{}) {
		ctx.Response.Header.SetContentType("application/json")
		ctx.SetStatusCode(http.StatusInternalServerError)
		ctx.SetBodyString(`{"error":"internal server error"}`)
	}

	r.GET("/health", wrap(handlers.Health.Check))

	r.GET("/tasks", wrap(handlers.Task.ListTasks))
	r.POST("/tasks", wrap(handlers.Task.CreateTask))
	r.PUT("/tasks/reorder", wrap(handlers.Task.ReorderTasks))
	r.PUT("/tasks/{id}", wrap(handlers.Task.SetTaskDone))
	r.DELETE("/tasks/{id}", wrap(handlers.Task.DeleteTask))

	return r
}
