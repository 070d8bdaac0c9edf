// AngelaMos | 2026
// recover.go

package middleware

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/carterperez-dev/site-atlas/internal/core"
)

// Recoverer turns a handler panic into a 500 response. Mount it after
// Logger so the failure is logged and counted.
func Recoverer(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
				panic(rec)
			}

			slog.ErrorContext(r.Context(), "handler panic",
				"panic", rec,
				"request_id", GetRequestID(r.Context()),
				"stack", string(debug.Stack()),
			)
			core.InternalServerError(w, fmt.Errorf("panic: %v", rec))
		}()

		next.ServeHTTP(w, r)
	})
}
