package middlewares

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

const (
	apiCSP = "default-src 'none'; frame-ancestors 'none'"
	// la UI de documentación trae scripts y estilos inline
	docsCSP = "default-src 'self'; script-src 'self' 'unsafe-inline'; style-src 'self' 'unsafe-inline'; img-src 'self' data:; frame-ancestors 'none'"
)

// SecurityHeadersOptions ajusta WithSecurityHeaders.
type SecurityHeadersOptions struct {
	// TrustProxy acepta X-Forwarded-Proto para decidir HSTS. Solo con un
	// proxy propio delante; si no, cualquier cliente podría forzarlo.
	TrustProxy bool
	// HSTSMaxAge 0 = sin Strict-Transport-Security.
	HSTSMaxAge time.Duration
	// DocsPrefix recibe la CSP de la UI de documentación ("" = ninguna).
	DocsPrefix string
}

// WithSecurityHeaders agrega las cabeceras de una API JSON consumida desde
// otro origen. HSTS solo sobre HTTPS.
func WithSecurityHeaders(opts SecurityHeadersOptions) Middleware {
	var hsts string
	if secs := int64(opts.HSTSMaxAge / time.Second); secs > 0 {
		hsts = "max-age=" + strconv.FormatInt(secs, 10) + "; includeSubDomains"
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := w.Header()
			h.Set("X-Content-Type-Options", "nosniff")
			h.Set("X-Frame-Options", "DENY")
			h.Set("Referrer-Policy", "no-referrer")
			// el front vive en otro origen
			h.Set("Cross-Origin-Resource-Policy", "cross-origin")

			if opts.DocsPrefix != "" && strings.HasPrefix(r.URL.Path, opts.DocsPrefix) {
				h.Set("Content-Security-Policy", docsCSP)
			} else {
				h.Set("Content-Security-Policy", apiCSP)
			}

			if hsts != "" && overTLS(r, opts.TrustProxy) {
				h.Set("Strict-Transport-Security", hsts)
			}

			next.ServeHTTP(w, r)
		})
	}
}

func overTLS(r *http.Request, trustProxy bool) bool {
	if r.TLS != nil {
		return true
	}
	return trustProxy && strings.EqualFold(strings.TrimSpace(r.Header.Get("X-Forwarded-Proto")), "https")
}
