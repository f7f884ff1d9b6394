// Package router arma el router chi y el pipeline del gate.
//
// Orden del pipeline (el primero es el más externo):
//
//	CORS → RequestID → Recover → SecurityHeaders → Metrics → Logging → BodyLimit
//	     → Authenticate → Authorize → Preflight → chi → controller → errors.Handler
//
// La política de rutas se evalúa antes del router: una ruta protegida
// inexistente responde 401 a un anónimo, nunca 404 ni 405.
package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/umdev/infoeste/internal/http/controllers"
	"github.com/umdev/infoeste/internal/http/errors"
	mw "github.com/umdev/infoeste/internal/http/middlewares"
	"github.com/umdev/infoeste/internal/http/policy"
)

// Deps contiene todo lo que el router necesita.
type Deps struct {
	Controllers *controllers.Controllers
	Verifier    mw.TokenVerifier
	// Policy nil = policy.Default().
	Policy *policy.Policy
	// Metrics es el handler de /metrics; nil = no se expone.
	Metrics http.Handler

	CORSOrigins  []string
	MaxBodyBytes int64
	// SecurityHeaders.DocsPrefix se completa con DocsUIPrefix si Docs está activo.
	SecurityHeaders mw.SecurityHeadersOptions
	// Docs expone /v3/api-docs y /swagger-ui.
	Docs bool
}

// New devuelve el handler completo.
func New(d Deps) http.Handler {
	if d.Policy == nil {
		d.Policy = policy.Default()
	}

	r := chi.NewRouter()
	r.NotFound(errors.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return errors.ErrRouteNotFound
	}))
	r.MethodNotAllowed(errors.Handler(func(w http.ResponseWriter, r *http.Request) error {
		return errors.ErrMethodNotAllowed
	}))

	registerHealthRoutes(r, d.Controllers.Health, d.Metrics)
	if d.Docs {
		registerDocsRoutes(r)
		d.SecurityHeaders.DocsPrefix = DocsUIPrefix
	}
	r.Route("/v1/stores", func(r chi.Router) {
		registerStoreRoutes(r, d.Controllers.Store)
	})
	r.Route("/v1/products", func(r chi.Router) {
		registerProductRoutes(r, d.Controllers.Product)
	})

	return mw.Chain(r,
		mw.WithCORS(d.CORSOrigins),
		mw.WithRequestID(),
		mw.WithRecover(),
		mw.WithSecurityHeaders(d.SecurityHeaders),
		mw.WithMetrics(),
		mw.WithLogging(),
		mw.WithBodyLimit(d.MaxBodyBytes),
		mw.Authenticate(d.Verifier),
		mw.Authorize(d.Policy),
		mw.WithPreflight(),
	)
}
