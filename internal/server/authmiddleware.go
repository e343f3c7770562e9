package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/lixumin/vocabvid-gateway/internal/auth"
	"github.com/lixumin/vocabvid-gateway/internal/credstore"
)

// userContextKey is the context key for the authenticated user.
type userContextKey struct{}

// AuthMiddleware validates bearer tokens and injects the authenticated user
// into the request context. Requests without a well-formed Authorization
// header are rejected before the token service is consulted. Disabled users
// get a 400, everything else a 401 with a Bearer challenge.
func AuthMiddleware(authenticator *auth.Authenticator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, err := auth.ExtractBearer(r)
			if err != nil {
				Unauthorized(w, "invalid authentication credentials")
				return
			}

			user, err := authenticator.Authenticate(r.Context(), token)
			if err != nil {
				AddError(r.Context(), err)
				if errors.Is(err, auth.ErrUserDisabled) {
					WriteJSONError(w, http.StatusBadRequest, "user is disabled")
					return
				}
				Unauthorized(w, "invalid authentication credentials")
				return
			}

			ctx := context.WithValue(r.Context(), userContextKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// GetUser retrieves the authenticated user from context.
// Returns nil if auth middleware did not run.
func GetUser(ctx context.Context) *credstore.User {
	if u, ok := ctx.Value(userContextKey{}).(*credstore.User); ok {
		return u
	}
	return nil
}

// Unauthorized writes a 401 with the Bearer challenge header required by the
// token contract.
func Unauthorized(w http.ResponseWriter, detail string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	WriteJSONError(w, http.StatusUnauthorized, detail)
}

// WriteJSONError writes a JSON error body of the form {"detail": ...}.
func WriteJSONError(w http.ResponseWriter, status int, detail string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"detail": detail})
}
