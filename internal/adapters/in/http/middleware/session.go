// internal/adapters/in/http/middleware/session.go
package middleware

import (
	"context"
	"log"
	"net/http"
	"strings"

	"storefront/internal/application/usecase"
)

type ctxKey int

const ctxKeyToken ctxKey = iota

// SessionGate protects pages that need a logged-in user. A missing or
// expired token gets a redirect to the login page with the current path
// as the return target; a valid token rides along in the request context.
type SessionGate struct {
	Sessions *usecase.SessionUsecase
}

func (m *SessionGate) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if m.Sessions == nil {
			http.Error(w, "session gate not initialized", http.StatusServiceUnavailable)
			return
		}

		token, redirect := m.Sessions.CheckSession(r.URL.Path)
		if redirect != "" {
			log.Printf("[session_gate] redirect path=%q -> %q", r.URL.Path, redirect)
			http.Redirect(w, r, redirect, http.StatusSeeOther)
			return
		}

		ctx := context.WithValue(r.Context(), ctxKeyToken, token)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// CurrentToken returns the session token the gate stored for this request.
func CurrentToken(r *http.Request) (string, bool) {
	v := r.Context().Value(ctxKeyToken)
	tok, ok := v.(string)
	if !ok || strings.TrimSpace(tok) == "" {
		return "", false
	}
	return tok, true
}
