package middleware

import (
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/FlamingoLogic/chat-markdown-app/internal/httputil"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recovery turns a handler panic into a 500 problem response carrying the
// request id, so a client report can be matched to the logged stack.
// http.ErrAbortHandler is re-raised for net/http to handle.
func Recovery(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				reqID := chimw.GetReqID(r.Context())
				logger.Error("panic recovered",
					"error", rec,
					"method", r.Method,
					"path", r.URL.Path,
					"request_id", reqID,
					"stack", string(debug.Stack()),
				)

				var extras map[string]interface{}
				if reqID != "" {
					extras = map[string]interface{}{"request_id": reqID}
				}
				httputil.RespondErrorWithExtras(w, http.StatusInternalServerError, "internal server error", extras)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
