// Package store contiene los controllers de /v1/stores.
package store

import (
	"net/http"

	dtos "github.com/umdev/infoeste/internal/http/dto/store"
	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/http/helpers"
	"github.com/umdev/infoeste/internal/http/middlewares"
	svc "github.com/umdev/infoeste/internal/http/services/store"
	"github.com/umdev/infoeste/internal/observability/logger"
)

// StoreController maneja las rutas de tiendas.
type StoreController struct {
	service svc.StoreService
}

// NewStoreController crea el controller de tiendas.
func NewStoreController(service svc.StoreService) *StoreController {
	return &StoreController{service: service}
}

// Register maneja POST /v1/stores/register
func (c *StoreController) Register(w http.ResponseWriter, r *http.Request) error {
	var in dtos.RegisterRequest
	if err := helpers.ReadJSON(r, &in); err != nil {
		return err
	}

	out, err := c.service.Register(r.Context(), in)
	if err != nil {
		return err
	}
	w.Header().Set("Location", "/v1/stores/"+out.ID.String())
	helpers.WriteJSON(w, http.StatusCreated, out)
	return nil
}

// Login maneja POST /v1/stores/login
func (c *StoreController) Login(w http.ResponseWriter, r *http.Request) error {
	var in dtos.LoginRequest
	if err := helpers.ReadJSON(r, &in); err != nil {
		return err
	}

	out, err := c.service.Login(r.Context(), in)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// Me maneja GET /v1/stores/me
func (c *StoreController) Me(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()
	subject := middlewares.Subject(ctx)
	if subject == "" {
		return errors.ErrUnauthenticated
	}

	out, err := c.service.Profile(ctx, subject)
	if err != nil {
		return err
	}
	logger.From(ctx).Debug("profile returned", logger.StoreID(out.ID.String()))
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// List maneja GET /v1/stores?page=&limit=&q=
func (c *StoreController) List(w http.ResponseWriter, r *http.Request) error {
	page, err := helpers.PageParams(r)
	if err != nil {
		return err
	}

	out, err := c.service.List(r.Context(), page, helpers.StringParam(r, "q"))
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// Get maneja GET /v1/stores/{storeId}
func (c *StoreController) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := helpers.UUIDParam(r, "storeId")
	if err != nil {
		return err
	}

	out, err := c.service.Get(r.Context(), id)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}
