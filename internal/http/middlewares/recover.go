package middlewares

import (
	"fmt"
	"net/http"

	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/observability/logger"
)

// WithRecover captura panics y devuelve un 500 estructurado en lugar de crashear.
// http.ErrAbortHandler se re-lanza para que net/http corte la conexión.
func WithRecover() Middleware {
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
				logger.From(r.Context()).Error("panic recovered",
					logger.Op("recover"),
					logger.Any("panic", rec),
				)
				errors.WriteError(w, r, errors.ErrInternal.WithCause(fmt.Errorf("panic: %v", rec)))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
