// Package product contiene los services de productos.
package product

import (
	"context"

	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/dto"
	dtop "github.com/umdev/infoeste/internal/http/dto/product"
)

// ProductService define las operaciones sobre productos. Las operaciones con
// owner reciben el subject del principal (e-mail de la tienda).
type ProductService interface {
	Create(ctx context.Context, owner string, in dtop.CreateInput, img *dtop.Image) (*dtop.CreateResponse, error)
	My(ctx context.Context, owner string) ([]dtop.MyItem, error)
	Update(ctx context.Context, owner string, id uuid.UUID, in dtop.UpdateRequest) (*dtop.CreateResponse, error)
	UpdateImage(ctx context.Context, owner string, id uuid.UUID, img *dtop.Image) (*dtop.ImageResponse, error)
	Delete(ctx context.Context, owner string, id uuid.UUID) error

	List(ctx context.Context, page repository.Page, q dtop.ListQuery) (*dto.Page[dtop.PublicItem], error)
	ListByStore(ctx context.Context, storeID uuid.UUID, page repository.Page, q dtop.ListQuery) (*dto.Page[dtop.PublicItem], error)
	Get(ctx context.Context, id uuid.UUID) (*dtop.DetailResponse, error)
}

// Deps contiene las dependencias para crear los services de productos.
type Deps struct {
	Stores   repository.StoreRepository
	Products repository.ProductRepository
	// MaxImageBytes límite por imagen; 0 = config.DefaultMaxImageBytes.
	MaxImageBytes int64
}

// Services agrupa los services del dominio product.
type Services struct {
	Product ProductService
}

// NewServices crea el agregador de services product.
func NewServices(d Deps) Services {
	if d.MaxImageBytes <= 0 {
		d.MaxImageBytes = config.DefaultMaxImageBytes
	}
	return Services{
		Product: NewProductService(d),
	}
}
