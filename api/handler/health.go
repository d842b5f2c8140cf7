package handler

import (
	"net/http"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/api/transport"
	"github.com/workaholic/backend/internal/infrastructure/monitor"
	"github.com/workaholic/backend/pkg/httpcontext"
)

type HealthHandler struct {
	baseHandler
	monitor *monitor.Monitor
}

func NewHealthHandler(mon *monitor.Monitor, adapter *httpcontext.Adapter, logger *zap.Logger) *HealthHandler {
	return &HealthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		monitor:     mon,
	}
}

// @Summary Health check
// @Tags health
// @Router /health [get]
func (h *HealthHandler) Check(ctx *fasthttp.RequestCtx) {
	status := h.monitor.GetStatus()
	services := map[string]interface{}{
		"postgresql": status.PostgreSQL,
		"journal": map[string]interface{}{
			"online": status.Journal,
			"size":   status.JournalSize,
		},
	}
	if status.Redis != nil {
		services["redis"] = *status.Redis
	}
	payload := map[string]interface{}{
		"timestamp": time.Now().UTC(),
		"services":  services,
	}

	if h.monitor.IsOnline() {
		h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{"health": payload}))
		return
	}
	h.respondJSON(ctx, http.StatusServiceUnavailable, transport.NewError("dependencies unhealthy", ""))
}
