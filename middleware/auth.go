package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/mitoneko/neko-todo/auth"
)

// ContextKey is a custom type to avoid context key collisions.
type ContextKey string

// SessionKey is the key under which the caller's session id is stored in
// the request context. It always holds the rotated id, not the one the
// request arrived with.
const SessionKey ContextKey = "sessionId"

// SessionHeader is the response header carrying the rotated session id.
// Clients must replace their stored token with this value after every
// authenticated call; the old one stops working the moment the check runs.
const SessionHeader = "X-Session-Token"

// Auth validates the bearer session token, rotates it, and passes the new
// id on to the handler via the request context and to the client via the
// SessionHeader response header.
func Auth(manager *auth.Manager, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Authorization header required", http.StatusUnauthorized)
			return
		}

		// The token is in the format "Bearer <token>".
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			http.Error(w, "Invalid Authorization header format", http.StatusUnauthorized)
			return
		}

		sess, err := uuid.Parse(parts[1])
		if err != nil {
			http.Error(w, "Invalid session token", http.StatusUnauthorized)
			return
		}

		newID, ok, err := manager.CheckAndRenew(r.Context(), sess)
		if err != nil {
			log.Printf("middleware: session check: %v", err)
			http.Error(w, "Storage failure", http.StatusInternalServerError)
			return
		}
		if !ok {
			http.Error(w, "Invalid or expired session", http.StatusUnauthorized)
			return
		}

		w.Header().Set(SessionHeader, newID.String())
		ctx := context.WithValue(r.Context(), SessionKey, newID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// SessionFromContext extracts the rotated session id placed by Auth.
func SessionFromContext(ctx context.Context) (uuid.UUID, bool) {
	sess, ok := ctx.Value(SessionKey).(uuid.UUID)
	return sess, ok
}
