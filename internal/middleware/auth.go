package middleware

import (
	"context"
	"strings"
	"time"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/workaholic/backend/repository"
)

// UsernameHeader carries the resolved session owner to downstream handlers.
const UsernameHeader = "X-Username"

const sessionCookie = "token"

// SessionAuth checks the bearer token (cookie first, then Authorization
// header) against the session store and stamps the username onto the
// request. Unauthenticated requests get a 401 with the historical body.
func SessionAuth(sessions repository.SessionRepository, logger *zap.Logger) func(fasthttp.RequestHandler) fasthttp.RequestHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(next fasthttp.RequestHandler) fasthttp.RequestHandler {
		return func(ctx *fasthttp.RequestCtx) {
			token := extractToken(ctx)
			if token == "" {
				reject(ctx)
				return
			}

			lookupCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			session, err := sessions.Get(lookupCtx, token)
			if err != nil || session.IsExpired(time.Now()) {
				logger.Debug("session rejected", zap.Error(err))
				reject(ctx)
				return
			}

			ctx.Request.Header.Set(UsernameHeader, session.Username)
			next(ctx)
		}
	}
}

func extractToken(ctx *fasthttp.RequestCtx) string {
	if cookie := string(ctx.Request.Header.Cookie(sessionCookie)); cookie != "" {
		return cookie
	}
	header := string(ctx.Request.Header.Peek("Authorization"))
	if header == "" {
		return ""
	}
	return strings.TrimPrefix(header, "Bearer ")
}

func reject(ctx *fasthttp.RequestCtx) {
	ctx.Response.Header.SetContentType("application/json")
	ctx.SetStatusCode(fasthttp.StatusUnauthorized)
	ctx.SetBodyString(`{"error":"Unauthorized"}`)
}
