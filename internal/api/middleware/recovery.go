package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/m04kA/servihogar-turnos/internal/api/handlers"
)

// Recovery перехватывает панику обработчика и отвечает 500
func Recovery(logger Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Error("panic: %v request_id=%s %s %s\n%s",
						rec, GetRequestID(r.Context()), r.Method, r.URL.Path, debug.Stack())
					handlers.RespondInternalError(w)
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}
