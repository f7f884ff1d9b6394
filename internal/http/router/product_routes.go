package router

import (
	"github.com/go-chi/chi/v5"

	ctrl "github.com/umdev/infoeste/internal/http/controllers/product"
	"github.com/umdev/infoeste/internal/http/errors"
)

// registerProductRoutes registra /v1/products.
func registerProductRoutes(r chi.Router, c *ctrl.Controllers) {
	p := c.Product

	// autenticadas
	r.Post("/", errors.Handler(p.Create))
	r.Get("/my", errors.Handler(p.My))
	r.Put("/{productId}", errors.Handler(p.Update))
	r.Put("/{productId}/image", errors.Handler(p.UpdateImage))
	r.Delete("/{productId}", errors.Handler(p.Delete))

	// públicas
	r.Get("/", errors.Handler(p.List))
	r.Get("/store/{storeId}", errors.Handler(p.ListByStore))
	r.Get("/{productId}", errors.Handler(p.Get))
}
