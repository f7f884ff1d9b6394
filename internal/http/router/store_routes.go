package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/umdev/infoeste/internal/http/controllers/store"
	"github.com/umdev/infoeste/internal/http/errors"
	mw "github.com/umdev/infoeste/internal/http/middlewares"
)

// registerStoreRoutes registra /v1/stores. Los requisitos de acceso viven en
// la tabla de policy, no acá.
func registerStoreRoutes(r chi.Router, c *ctrl.Controllers) {
	// POST /v1/stores/register
	r.Post("/register", errors.Handler(c.Store.Register))

	// POST /v1/stores/login - devuelve token
	r.With(mw.WithNoStore()).Post("/login", errors.Handler(c.Store.Login))

	// GET /v1/stores/me - perfil del principal
	r.With(mw.WithNoStore()).Get("/me", errors.Handler(c.Store.Me))

	// GET /v1/stores
	r.Get("/", errors.Handler(c.Store.List))

	// GET /v1/stores/{storeId}
	r.Get("/{storeId}", errors.Handler(c.Store.Get))
}
