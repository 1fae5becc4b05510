package middleware

import (
	"log/slog"
	"net/http"

	"solar-system-server/internal/session"
	"solar-system-server/internal/shared/cookies"
	"solar-system-server/internal/shared/errors"
	"solar-system-server/internal/shared/response"
)

// SessionMiddleware resolves the browser session from its cookie. Requests
// without a valid token are given a new session and cookie.
func SessionMiddleware(manager *session.Manager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			logger := slog.With(
				"middleware", "session",
				"method", r.Method,
				"path", r.URL.Path,
			)

			stale := false
			if cookie, err := r.Cookie(cookies.SessionCookieName); err == nil {
				claims, err := manager.Validate(cookie.Value)
				if err == nil {
					next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), claims.SessionID)))
					return
				}
				logger.Debug("Discarding invalid session token", "error", err)
				stale = true
			}

			token, sessionID, err := manager.Issue()
			if err != nil {
				if stale {
					cookies.ClearSessionCookie(w)
				}
				response.Error(w, r, logger, errors.WrapInternal("failed to start session", err))
				return
			}

			cookies.SetSessionCookie(w, token)
			logger.Debug("New session started")

			next.ServeHTTP(w, r.WithContext(session.WithID(r.Context(), sessionID)))
		})
	}
}
