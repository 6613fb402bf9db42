package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"github.com/ghtimeline/timeline/pkg/logger"
)

// Recoverer turns a panic in next into a logged 500 with the generic
// ErrInternal body. http.ErrAbortHandler is re-panicked so net/http can
// abort the connection.
func Recoverer(log *slog.Logger) func(http.Handler) http.Handler {
	if log == nil {
		log = slog.Default()
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if err, ok := rec.(error); ok && errors.Is(err, http.ErrAbortHandler) {
					panic(rec)
				}

				log.LogAttrs(r.Context(), slog.LevelError, "panic recovered",
					logger.Component("recoverer"),
					logger.Error(fmt.Errorf("panic: %v", rec)),
					slog.String("method", r.Method),
					slog.String("path", r.URL.Path),
					slog.String("stack", string(debug.Stack())),
				)

				body := ErrorBody{Error: ErrInternal.message(), Code: ErrInternal.Key}
				_ = JSON(body, WithJSONStatus(ErrInternal.Code)).Render(w, r)
			}()

			next.ServeHTTP(w, r)
		})
	}
}
