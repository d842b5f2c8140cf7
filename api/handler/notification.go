package handler

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/api/transport"
	"github.com/workaholic/backend/pkg/httpcontext"
	"github.com/workaholic/backend/repository"
	"github.com/workaholic/backend/usecase/notify"
)

type NotificationHandler struct {
	baseHandler
	svc              *notify.Service
	direct           notify.ReadySender
	relay            notify.Sender
	users            repository.UserRepository
	defaultLookahead int
}

func NewNotificationHandler(
	svc *notify.Service,
	direct notify.ReadySender,
	relay notify.Sender,
	users repository.UserRepository,
	adapter *httpcontext.Adapter,
	logger *zap.Logger,
	defaultLookahead int,
) *NotificationHandler {
	if defaultLookahead <= 0 {
		defaultLookahead = 10
	}
	return &NotificationHandler{
		baseHandler:      newBaseHandler(adapter, logger),
		svc:              svc,
		direct:           direct,
		relay:            relay,
		users:            users,
		defaultLookahead: defaultLookahead,
	}
}

// @Summary Send a raw FCM notification to a device token
// @Tags notifications
// @Router /api/send-notification [post]
func (h *NotificationHandler) SendDirect(ctx *fasthttp.RequestCtx) {
	if h.direct == nil || !h.direct.Ready() {
		h.respondJSON(ctx, http.StatusServiceUnavailable,
			transport.NewError("FCM not initialized. Add firebase-service-account.json.", ""))
		return
	}

	var req transport.DirectNotificationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.DeviceToken == "" || req.Title == "" || req.Body == "" {
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError("deviceToken, title, and body required", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.direct.Send(stdCtx, req.DeviceToken, req.Title, req.Body); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError,
			transport.NewError("Notification send failed", err.Error()))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(nil))
}

// @Summary Send a raw Expo notification to a push token
// @Tags notifications
// @Router /api/send-expo-notification [post]
func (h *NotificationHandler) SendRelay(ctx *fasthttp.RequestCtx) {
	var req transport.RelayNotificationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.ExpoPushToken == "" || req.Title == "" || req.Body == "" {
		h.respondJSON(ctx, http.StatusBadRequest,
			transport.NewError("expoPushToken, title, and body required", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.relay.Send(stdCtx, req.ExpoPushToken, req.Title, req.Body); err != nil {
		h.respondJSON(ctx, http.StatusInternalServerError,
			transport.NewError("Expo notification send failed", err.Error()))
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(nil))
}

// @Summary Notify the caller through their stored addresses
// @Tags notifications
// @Router /api/send-user-notification [post]
func (h *NotificationHandler) SendToUser(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.UserNotificationRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Title == "" || req.Body == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Missing title or body", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	outcome, err := h.svc.SendToUser(stdCtx, username, req.Title, req.Body)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"method": string(outcome.Channel),
	}))
}

// @Summary Persist the caller's push tokens
// @Tags notifications
// @Router /api/update-device-token [post]
func (h *NotificationHandler) UpdateDeviceToken(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	var req transport.DeviceTokenUpdateRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || (req.DeviceToken == nil && req.ExpoPushToken == nil) {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("deviceToken or expoPushToken required", ""))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.users.UpdatePushTokens(stdCtx, username, req.DeviceToken, req.ExpoPushToken); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"message": "Push token saved",
	}))
}

// @Summary Run one on-demand due-task pass
// @Tags notifications
// @Router /api/send-due-task-notifications [get]
func (h *NotificationHandler) SendDueTaskNotifications(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	minutes := h.defaultLookahead
	if raw := string(ctx.QueryArgs().Peek("minutes")); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 {
			minutes = parsed
		}
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	attempted, err := h.svc.RunLookaheadPass(stdCtx, time.Now(), minutes)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"message":   "Notifications sent (if any due tasks found).",
		"attempted": attempted,
	}))
}
