package product

import svc "github.com/umdev/infoeste/internal/http/services/product"

// Controllers agrupa los controllers del dominio product.
type Controllers struct {
	Product *ProductController
}

// NewControllers crea el agregador de controllers product.
func NewControllers(s svc.Services, maxImageBytes int64) *Controllers {
	return &Controllers{
		Product: NewProductController(s.Product, maxImageBytes),
	}
}
