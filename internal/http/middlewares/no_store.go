package middlewares

import "net/http"

// WithNoStore agrega Cache-Control: no-store a la respuesta.
// Para endpoints que devuelven tokens o datos del principal.
func WithNoStore() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("Cache-Control", "no-store")
			h.Set("Pragma", "no-cache")
			next.ServeHTTP(w, r)
		})
	}
}
