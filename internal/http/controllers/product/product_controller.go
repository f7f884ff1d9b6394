// Package product contiene los controllers de /v1/products.
package product

import (
	"net/http"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/domain/repository"
	dtop "github.com/umdev/infoeste/internal/http/dto/product"
	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/http/helpers"
	"github.com/umdev/infoeste/internal/http/middlewares"
	svc "github.com/umdev/infoeste/internal/http/services/product"
	"github.com/umdev/infoeste/internal/validation"
)

// ProductController maneja las rutas de productos.
type ProductController struct {
	service  svc.ProductService
	maxImage int64
}

// NewProductController crea el controller de productos.
func NewProductController(service svc.ProductService, maxImage int64) *ProductController {
	if maxImage <= 0 {
		maxImage = config.DefaultMaxImageBytes
	}
	return &ProductController{service: service, maxImage: maxImage}
}

func owner(r *http.Request) (string, error) {
	subject := middlewares.Subject(r.Context())
	if subject == "" {
		return "", errors.ErrUnauthenticated
	}
	return subject, nil
}

// Create maneja POST /v1/products (multipart: name, description, price, stock, category, file)
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) error {
	subject, err := owner(r)
	if err != nil {
		return err
	}
	if err := helpers.ParseMultipart(r); err != nil {
		return err
	}

	in, err := createInput(r)
	if err != nil {
		return err
	}
	img, err := helpers.FormImage(r, "file", c.maxImage)
	if err != nil {
		return err
	}

	out, err := c.service.Create(r.Context(), subject, in, img)
	if err != nil {
		return err
	}
	w.Header().Set("Location", "/v1/products/"+out.ID.String())
	helpers.WriteJSON(w, http.StatusCreated, out)
	return nil
}

// createInput arma el DTO desde las partes de texto. Un número mal formado es
// una falla de validación del campo.
func createInput(r *http.Request) (dtop.CreateInput, error) {
	in := dtop.CreateInput{
		Name:        r.FormValue("name"),
		Description: r.FormValue("description"),
		Category:    r.FormValue("category"),
	}

	var bad []validation.FieldError
	price, ok := helpers.FormFloat(r, "price")
	if !ok {
		bad = append(bad, validation.FieldError{Field: "price", Message: "Price must be a valid number"})
	}
	stock, ok := helpers.FormInt(r, "stock")
	if !ok {
		bad = append(bad, validation.FieldError{Field: "stock", Message: "Stock must be a valid integer"})
	}
	if len(bad) > 0 {
		return in, &validation.RequestValidationError{Fields: bad}
	}

	in.Price, in.Stock = price, stock
	return in, nil
}

// My maneja GET /v1/products/my
func (c *ProductController) My(w http.ResponseWriter, r *http.Request) error {
	subject, err := owner(r)
	if err != nil {
		return err
	}

	out, err := c.service.My(r.Context(), subject)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// Update maneja PUT /v1/products/{productId}
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) error {
	subject, err := owner(r)
	if err != nil {
		return err
	}
	id, err := helpers.UUIDParam(r, "productId")
	if err != nil {
		return err
	}

	var in dtop.UpdateRequest
	if err := helpers.ReadJSON(r, &in); err != nil {
		return err
	}

	out, err := c.service.Update(r.Context(), subject, id, in)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// UpdateImage maneja PUT /v1/products/{productId}/image (multipart: file)
func (c *ProductController) UpdateImage(w http.ResponseWriter, r *http.Request) error {
	subject, err := owner(r)
	if err != nil {
		return err
	}
	id, err := helpers.UUIDParam(r, "productId")
	if err != nil {
		return err
	}
	if err := helpers.ParseMultipart(r); err != nil {
		return err
	}

	img, err := helpers.FormImage(r, "file", c.maxImage)
	if err != nil {
		return err
	}

	out, err := c.service.UpdateImage(r.Context(), subject, id, img)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// Delete maneja DELETE /v1/products/{productId}
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) error {
	subject, err := owner(r)
	if err != nil {
		return err
	}
	id, err := helpers.UUIDParam(r, "productId")
	if err != nil {
		return err
	}

	if err := c.service.Delete(r.Context(), subject, id); err != nil {
		return err
	}
	helpers.NoContent(w)
	return nil
}

// List maneja GET /v1/products?page=&limit=&q=&category=&minPrice=&maxPrice=
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) error {
	page, q, err := listParams(r)
	if err != nil {
		return err
	}

	out, err := c.service.List(r.Context(), page, q)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// ListByStore maneja GET /v1/products/store/{storeId}
func (c *ProductController) ListByStore(w http.ResponseWriter, r *http.Request) error {
	storeID, err := helpers.UUIDParam(r, "storeId")
	if err != nil {
		return err
	}
	page, q, err := listParams(r)
	if err != nil {
		return err
	}

	out, err := c.service.ListByStore(r.Context(), storeID, page, q)
	if err != nil {
		return err
	}
	helpers.WriteJSON(w, http.StatusOK, out)
	return nil
}

// Get maneja GET /v1/products/{productId}
func (c *ProductController) Get(w http.ResponseWriter, r *http.Request) error {
	id, err := helpers.UUIDParam(r, "productId")
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

func listParams(r *http.Request) (page repository.Page, q dtop.ListQuery, err error) {
	if page, err = helpers.PageParams(r); err != nil {
		return page, q, err
	}
	q.Query = helpers.StringParam(r, "q")
	q.Category = helpers.StringParam(r, "category")
	if q.MinPrice, err = helpers.FloatParam(r, "minPrice"); err != nil {
		return page, q, err
	}
	if q.MaxPrice, err = helpers.FloatParam(r, "maxPrice"); err != nil {
		return page, q, err
	}
	return page, q, nil
}
