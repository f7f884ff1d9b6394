package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Product es un producto publicado por una tienda. La imagen se guarda en base64.
type Product struct {
	ID          uuid.UUID
	StoreID     uuid.UUID
	StoreName   string // solo lectura, resuelto en las consultas
	Name        string
	Description string
	Price       float64
	Stock       int
	Category    string
	ImageBase64 string
	CreatedAt   time.Time
}

// ProductFilter opciones para listar productos públicos.
type ProductFilter struct {
	Page
	StoreID  *uuid.UUID
	Query    string // nombre, sin distinguir mayúsculas
	Category string // igualdad, sin distinguir mayúsculas
	MinPrice *float64
	MaxPrice *float64
}

// ProductRepository define operaciones sobre productos.
type ProductRepository interface {
	// Create persiste un producto nuevo. Asigna ID y CreatedAt si vienen vacíos.
	Create(ctx context.Context, p *Product) error

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// GetOwned busca un producto de una tienda. Retorna ErrNotFound si no
	// existe o pertenece a otra tienda.
	GetOwned(ctx context.Context, id, storeID uuid.UUID) (*Product, error)

	// ListByStore lista todos los productos de una tienda.
	ListByStore(ctx context.Context, storeID uuid.UUID) ([]Product, error)

	// List lista productos paginados con filtros.
	List(ctx context.Context, f ProductFilter) ([]Product, int64, error)

	// Update reemplaza los campos editables (nombre, descripción, precio, stock,
	// categoría, imagen). Retorna ErrNotFound si no existe.
	Update(ctx context.Context, p *Product) error

	// Delete elimina un producto de una tienda. Retorna ErrNotFound si no
	// existe o pertenece a otra tienda.
	Delete(ctx context.Context, id, storeID uuid.UUID) error
}
