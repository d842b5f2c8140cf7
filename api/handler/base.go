package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/api/transport"
	"github.com/workaholic/backend/domain"
	"github.com/workaholic/backend/internal/middleware"
	"github.com/workaholic/backend/pkg/httpcontext"
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

	var dErr *domain.Error
	message := "Server error"
	details := ""
	if errors.As(err, &dErr) {
		message = dErr.Message
		if dErr.Err != nil {
			details = dErr.Err.Error()
		}
	} else if err != nil {
		details = err.Error()
	}
	h.respondJSON(ctx, status, transport.NewError(message, details))
}

// username reads the identity stamped by the session middleware; empty means
// the middleware was bypassed, which is answered with a 401.
func (h baseHandler) username(ctx *fasthttp.RequestCtx) string {
	username := string(ctx.Request.Header.Peek(middleware.UsernameHeader))
	if username == "" {
		h.respondJSON(ctx, http.StatusUnauthorized, transport.NewError("Unauthorized", ""))
	}
	return username
}

func mapError(err error) int {
	switch {
	case domain.IsDomainError(err, domain.ErrCodeUnauthorized):
		return http.StatusUnauthorized
	case domain.IsDomainError(err, domain.ErrCodeInvalid):
		return http.StatusBadRequest
	case domain.IsDomainError(err, domain.ErrCodeNotFound):
		return http.StatusNotFound
	case domain.IsDomainError(err, domain.ErrCodeConflict):
		return http.StatusConflict
	case domain.IsDomainError(err, domain.ErrCodeUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
