package middleware

import (
	"log"
	"net/http"
	"runtime/debug"

	"botbackend/interactions"
)

// RecoveryMiddleware converts panics in HTTP handlers into the protocol's
// 500 error response instead of tearing down the connection
type RecoveryMiddleware struct{}

func NewRecoveryMiddleware() *RecoveryMiddleware {
	return &RecoveryMiddleware{}
}

func (m *RecoveryMiddleware) HTTPMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("❌ Panic in HTTP %s %s: %v\n%s", r.Method, r.URL.Path, rec, debug.Stack())
				interactions.ErrorResponse("internal server error").Write(w)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
