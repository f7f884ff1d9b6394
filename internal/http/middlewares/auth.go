package middlewares

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/http/policy"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/metrics"
	"github.com/umdev/infoeste/internal/observability/logger"
)

// TokenVerifier es lo que el interceptor necesita del Token Service.
type TokenVerifier interface {
	Verify(raw string) (jwtx.Principal, error)
}

// =================================================================================
// AUTHENTICATION (interceptor)
// =================================================================================

// Authenticate lee Authorization: Bearer <token> y, si verifica, liga el
// principal al contexto. Nunca rechaza: header ausente, mal formado o token
// inválido dejan el request anónimo y la decisión queda para Authorize.
// Los preflight OPTIONS pasan sin mirar credenciales.
func Authenticate(v TokenVerifier) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method == http.MethodOptions {
				next.ServeHTTP(w, r)
				return
			}

			header := r.Header.Get("Authorization")
			if strings.TrimSpace(header) == "" {
				metrics.TokenVerifications.WithLabelValues("absent").Inc()
				next.ServeHTTP(w, r)
				return
			}

			raw, ok := bearerToken(header)
			if !ok {
				metrics.TokenVerifications.WithLabelValues("malformed").Inc()
				logger.From(r.Context()).Warn("credential rejected", logger.Reason("bad_scheme"))
				next.ServeHTTP(w, r)
				return
			}

			principal, err := v.Verify(raw)
			if err != nil {
				reason := "malformed"
				if stderrors.Is(err, jwtx.ErrExpired) {
					reason = "expired"
				}
				metrics.TokenVerifications.WithLabelValues(reason).Inc()
				// solo el tipo de falla: ni el token ni el detalle del parser
				logger.From(r.Context()).Warn("credential rejected", logger.Reason(reason))
				next.ServeHTTP(w, r)
				return
			}

			ctx, _ := WithPrincipal(r.Context(), principal)
			ctx = logger.ToContext(ctx, logger.From(ctx).With(logger.Subject(principal.Subject)))
			metrics.TokenVerifications.WithLabelValues("ok").Inc()

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// bearerToken extrae el token de "Bearer <token>". El esquema no distingue
// mayúsculas; el token no puede estar vacío ni contener espacios.
func bearerToken(header string) (string, bool) {
	scheme, token, found := strings.Cut(strings.TrimSpace(header), " ")
	if !found || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	if token == "" || strings.ContainsAny(token, " \t") {
		return "", false
	}
	return token, true
}

// =================================================================================
// AUTHORIZATION (política de rutas)
// =================================================================================

// Authorize aplica la tabla de reglas. Rutas públicas pasan siempre; el resto
// (incluido el default) exige principal o responde 401 genérico.
func Authorize(p *policy.Policy) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			req, _ := p.DecideRequest(r)
			if req == policy.Public {
				metrics.AuthzDecisions.WithLabelValues(req.String(), "allowed").Inc()
				next.ServeHTTP(w, r)
				return
			}

			if _, ok := PrincipalFrom(r.Context()); !ok {
				metrics.AuthzDecisions.WithLabelValues(req.String(), "rejected").Inc()
				errors.WriteError(w, r, errors.ErrUnauthenticated)
				return
			}

			metrics.AuthzDecisions.WithLabelValues(req.String(), "allowed").Inc()
			next.ServeHTTP(w, r)
		})
	}
}
