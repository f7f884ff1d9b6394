package middlewares

import "net/http"

// WithBodyLimit corta el cuerpo en max bytes. Leer más allá devuelve
// *http.MaxBytesError, que el traductor convierte en 413.
func WithBodyLimit(max int64) Middleware {
	return func(next http.Handler) http.Handler {
		if max <= 0 {
			return next
		}
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Body != nil {
				r.Body = http.MaxBytesReader(w, r.Body, max)
			}
			next.ServeHTTP(w, r)
		})
	}
}
