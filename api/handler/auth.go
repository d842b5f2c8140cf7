package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/api/transport"
	"github.com/workaholic/backend/pkg/httpcontext"
	authUC "github.com/workaholic/backend/usecase/auth"
)

type AuthHandler struct {
	baseHandler
	uc *authUC.UseCase
}

func NewAuthHandler(uc *authUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary Register a new account
// @Tags auth
// @Router /api/signup [post]
func (h *AuthHandler) Signup(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseCredentials(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Signup(stdCtx, req.Username, req.Password); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(nil))
}

// @Summary Authenticate and issue a session token
// @Tags auth
// @Router /api/login [post]
func (h *AuthHandler) Login(ctx *fasthttp.RequestCtx) {
	req, ok := h.parseCredentials(ctx)
	if !ok {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	session, err := h.uc.Login(stdCtx, req.Username, req.Password)
	if err != nil {
		h.respondError(ctx, err)
		return
	}

	cookie := fasthttp.AcquireCookie()
	defer fasthttp.ReleaseCookie(cookie)
	cookie.SetKey("token")
	cookie.SetValue(session.Token)
	cookie.SetPath("/")
	cookie.SetHTTPOnly(true)
	cookie.SetExpire(session.ExpiresAt)
	ctx.Response.Header.SetCookie(cookie)

	h.respondJSON(ctx, http.StatusOK, transport.Success(map[string]interface{}{
		"token": session.Token,
	}))
}

// @Summary Destroy the current session
// @Tags auth
// @Router /api/logout [post]
func (h *AuthHandler) Logout(ctx *fasthttp.RequestCtx) {
	token := string(ctx.Request.Header.Cookie("token"))
	if token == "" {
		token = strings.TrimPrefix(string(ctx.Request.Header.Peek("Authorization")), "Bearer ")
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	if err := h.uc.Logout(stdCtx, token); err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, transport.Success(nil))
}

// @Summary Confirm the session is still valid
// @Tags auth
// @Router /api/checklogin [get]
func (h *AuthHandler) CheckLogin(ctx *fasthttp.RequestCtx) {
	username := h.username(ctx)
	if username == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	user, err := h.uc.CheckLogin(stdCtx, username)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondJSON(ctx, http.StatusOK, map[string]interface{}{
		"status":  true,
		"message": map[string]string{"username": user.Username},
	})
}

func (h *AuthHandler) parseCredentials(ctx *fasthttp.RequestCtx) (transport.CredentialsRequest, bool) {
	var req transport.CredentialsRequest
	if err := json.Unmarshal(ctx.PostBody(), &req); err != nil || req.Username == "" || req.Password == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError("Username and password required", ""))
		return req, false
	}
	return req, true
}
