package handlers

import (
	"net/http"
	"runtime"

	"gstinvoice/logger"
)

// RecoverWrapper wraps an http.Handler with panic recovery
func RecoverWrapper(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				stack := make([]byte, 8*1024)
				stack = stack[:runtime.Stack(stack, false)]
				log := logger.FromContext(r.Context())
				log.Error().
					Interface("panic", rec).
					Str("stack", string(stack)).
					Str("path", r.URL.Path).
					Msg("panic recovered")
				http.Error(w, "internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
