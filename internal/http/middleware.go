package http

import (
	"context"
	"net/http"

	"github.com/google/uuid"
)

// SessionHeader carries the shopper session id. Carts and recent searches
// are scoped to it.
const SessionHeader = "X-Session-ID"

const maxSessionIDLength = 128

type contextKey int

const sessionKey contextKey = iota

// SessionMiddleware reads the session id from SessionHeader, generating a
// new one when it is missing or too long, and echoes it on the response.
func SessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session := r.Header.Get(SessionHeader)
		if session == "" || len(session) > maxSessionIDLength {
			session = uuid.NewString()
		}

		w.Header().Set(SessionHeader, session)
		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), session)))
	})
}

func SessionFromContext(ctx context.Context) string {
	if session, ok := ctx.Value(sessionKey).(string); ok {
		return session
	}
	return ""
}

func withSession(ctx context.Context, session string) context.Context {
	return context.WithValue(ctx, sessionKey, session)
}
