package middlewares

import (
	"net/http"
	"slices"
	"strings"

	"github.com/rs/cors"
)

// WithCORS maneja CORS para los orígenes permitidos ("*" = cualquiera).
// Los preflight siguen la cadena (OptionsPassthrough): el gate los deja pasar y
// WithPreflight los termina con 204.
func WithCORS(allowed []string) Middleware {
	origins := make([]string, 0, len(allowed))
	for _, o := range allowed {
		if o = strings.TrimRight(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}

	c := cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{
			http.MethodGet, http.MethodPost, http.MethodPut,
			http.MethodDelete, http.MethodOptions,
		},
		AllowedHeaders:     []string{"Content-Type", "Authorization", HeaderRequestID},
		ExposedHeaders:     []string{HeaderRequestID, "WWW-Authenticate", "Location"},
		MaxAge:             600, // preflight cache 10 min
		OptionsPassthrough: true,
	})
	return func(next http.Handler) http.Handler {
		h := c.Handler(next)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				normalizeRequestHeaders(r)
			}
			h.ServeHTTP(w, r)
		})
	}
}

// normalizeRequestHeaders deja Access-Control-Request-Headers como lo mandan
// los navegadores: minúsculas, ordenado, sin duplicados ni espacios.
func normalizeRequestHeaders(r *http.Request) {
	const key = "Access-Control-Request-Headers"
	vals := r.Header.Values(key)
	if len(vals) == 0 {
		return
	}
	var names []string
	for _, v := range vals {
		for _, n := range strings.Split(v, ",") {
			if n = strings.ToLower(strings.TrimSpace(n)); n != "" {
				names = append(names, n)
			}
		}
	}
	slices.Sort(names)
	r.Header.Set(key, strings.Join(slices.Compact(names), ","))
}

// WithPreflight responde 204 a todo OPTIONS. Va después del gate para que el
// preflight atraviese la cadena completa sin llegar al router.
func WithPreflight() Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				w.WriteHeader(http.StatusNoContent)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
