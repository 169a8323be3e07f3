package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/taskwire/backend/api/transport"
	"github.com/taskwire/backend/domain"
	"github.com/taskwire/backend/pkg/httpcontext"
)

type baseHandler struct {
	adapter *httpcontext.Adapter
	logger  *zap.Logger
}

func newBaseHandler(adapter *httpcontext.Adapter, logger *zap.Logger) baseHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return baseHandler{adapter: adapter, logger: logger}
}

func (h baseHandler) requestContext(ctx *fasthttp.RequestCtx) (context.Context, context.CancelFunc) {
	if h.adapter != nil {
		return h.adapter.Attach(ctx)
	}
	return context.WithCancel(context.Background())
}

func (h baseHandler) respondJSON(ctx *fasthttp.RequestCtx, status int, payload interface{}) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(status)
	body, _ := json.Marshal(payload)
	ctx.SetBody(body)
}

func (h baseHandler) respondError(ctx *fasthttp.RequestCtx, err error) {
	status := mapError(err)
	h.respondJSON(ctx, status, transport.NewError(err.Error()))
}

func mapError(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
