// Package store contiene los services de tiendas: registro, login y perfil.
package store

import (
	"context"

	"github.com/google/uuid"

	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/dto"
	dtos "github.com/umdev/infoeste/internal/http/dto/store"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/security/password"
)

// TokenIssuer es lo que el login necesita del Token Service.
type TokenIssuer interface {
	Issue(subject string) (jwtx.Token, error)
}

// StoreService define las operaciones sobre tiendas.
type StoreService interface {
	Register(ctx context.Context, in dtos.RegisterRequest) (*dtos.RegisterResponse, error)
	Login(ctx context.Context, in dtos.LoginRequest) (*dtos.LoginResponse, error)
	// Profile devuelve la tienda del principal (subject = e-mail).
	Profile(ctx context.Context, email string) (*dtos.ProfileResponse, error)
	List(ctx context.Context, page repository.Page, query string) (*dto.Page[dtos.PublicItem], error)
	Get(ctx context.Context, id uuid.UUID) (*dtos.DetailResponse, error)
}

// Deps contiene las dependencias para crear los services de tiendas.
type Deps struct {
	Stores repository.StoreRepository
	Issuer TokenIssuer
	// Hasher por defecto: argon2id con password.Default.
	Params *password.Params
}

// Services agrupa los services del dominio store.
type Services struct {
	Store StoreService
}

// NewServices crea el agregador de services store.
func NewServices(d Deps) Services {
	return Services{
		Store: NewStoreService(d),
	}
}
