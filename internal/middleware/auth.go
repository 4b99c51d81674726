// Package middleware resolves who is calling before a request reaches the
// handlers.
package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/osse101/CoffeePOS_Go/internal/access"
	"github.com/osse101/CoffeePOS_Go/internal/domain"
	"github.com/osse101/CoffeePOS_Go/internal/logger"
)

// Authenticator verifies a name and password pair
type Authenticator interface {
	Authenticate(ctx context.Context, name, password string) (domain.Caller, error)
}

// FailureRecorder is told about every rejected credential, keyed by client IP
type FailureRecorder func(r *http.Request)

// Authenticate resolves the caller from HTTP Basic credentials and stores it
// in the request context. Requests without credentials continue as the
// anonymous caller; the access guard decides what they may do. Wrong
// credentials are rejected here with a 401 and a Basic challenge.
func Authenticate(auth Authenticator, onFailure FailureRecorder) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			name, password, ok := r.BasicAuth()
			if !ok {
				ctx := access.WithCaller(r.Context(), domain.Anonymous())
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			log := logger.FromContext(r.Context())
			caller, err := auth.Authenticate(r.Context(), name, password)
			if err != nil {
				if errors.Is(err, domain.ErrStorage) {
					log.Error(LogMsgAuthError, "error", err)
					writeError(w, http.StatusInternalServerError, ErrMsgAuthUnavailable)
					return
				}
				log.Warn(LogMsgAuthFailed, "user", name, "path", r.URL.Path)
				if onFailure != nil {
					onFailure(r)
				}
				w.Header().Set(HeaderWWWAuthenticate, BasicRealm)
				writeError(w, http.StatusUnauthorized, ErrMsgInvalidCredentials)
				return
			}

			ctx := access.WithCaller(r.Context(), caller)
			ctx = logger.WithCallerName(ctx, caller.Name)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
