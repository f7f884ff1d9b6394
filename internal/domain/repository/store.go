package repository

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Store es una tienda del marketplace. El e-mail es la identidad de login (subject del token).
type Store struct {
	ID           uuid.UUID
	Name         string
	Email        string
	PasswordHash string
	Description  string
	Address      string
	City         string
	Phone        string
	CreatedAt    time.Time
}

// StoreFilter opciones para listar tiendas.
type StoreFilter struct {
	Page
	Query string // nombre o ciudad, sin distinguir mayúsculas
}

// StoreRepository define operaciones sobre tiendas.
type StoreRepository interface {
	// Create persiste una tienda nueva. Asigna ID y CreatedAt si vienen vacíos.
	// Retorna ErrConflict si el e-mail ya existe.
	Create(ctx context.Context, s *Store) error

	// GetByEmail retorna ErrNotFound si no existe.
	GetByEmail(ctx context.Context, email string) (*Store, error)

	// GetByID retorna ErrNotFound si no existe.
	GetByID(ctx context.Context, id uuid.UUID) (*Store, error)

	// ExistsByEmail verifica si el e-mail ya está registrado.
	ExistsByEmail(ctx context.Context, email string) (bool, error)

	// List lista tiendas paginadas, ordenadas por fecha de creación.
	List(ctx context.Context, f StoreFilter) ([]Store, int64, error)
}
