package helpers

import (
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/errors"
)

// UUIDParam lee un parámetro de ruta chi y lo parsea como UUID.
func UUIDParam(r *http.Request, name string) (uuid.UUID, error) {
	raw := chi.URLParam(r, name)
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, errors.ErrInvalidUUID.WithCause(err)
	}
	return id, nil
}

// PageParams lee page y limit del query string (defaults 1 y 10).
func PageParams(r *http.Request) (repository.Page, error) {
	q := r.URL.Query()
	p := repository.Page{Number: repository.DefaultPage, Limit: repository.DefaultLimit}

	if raw := strings.TrimSpace(q.Get("page")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, invalidParam("page", raw, err)
		}
		if n < 1 {
			return p, errors.ErrMalformedInput.WithMessage("Page must be greater than 0")
		}
		p.Number = n
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return p, invalidParam("limit", raw, err)
		}
		if n < 1 || n > repository.MaxLimit {
			return p, errors.ErrMalformedInput.WithMessagef("Limit must be between 1 and %d", repository.MaxLimit)
		}
		p.Limit = n
	}
	return p, nil
}

// FloatParam lee un parámetro numérico opcional. Ausente → nil.
func FloatParam(r *http.Request, name string) (*float64, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, invalidParam(name, raw, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return nil, invalidParam(name, raw, strconv.ErrSyntax)
	}
	return &f, nil
}

// StringParam devuelve el parámetro recortado ("" si falta).
func StringParam(r *http.Request, name string) string {
	return strings.TrimSpace(r.URL.Query().Get(name))
}

func invalidParam(name, raw string, err error) *errors.AppError {
	return errors.ErrMalformedInput.
		WithMessage(fmt.Sprintf("Invalid value for parameter '%s': %q", name, raw)).
		WithCause(err)
}
