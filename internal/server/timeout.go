package server

import (
	"context"
	"net/http"
	"time"
)

// TimeoutMiddleware enforces request timeouts.
// If a request exceeds the specified timeout, the context is cancelled.
// Note: This does not forcibly terminate the handler, it relies on the handler
// checking context.Done() for cooperative cancellation. The streaming
// generation route uses this with a longer deadline so a hung upstream call
// fails the request instead of holding the connection forever.
func TimeoutMiddleware(timeout time.Duration) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx, cancel := context.WithTimeout(r.Context(), timeout)
			defer cancel()
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
