// Package store contiene los DTOs de /v1/stores.
package store

import (
	"time"

	"github.com/google/uuid"
)

// RegisterRequest es el body de POST /v1/stores/register.
type RegisterRequest struct {
	Name        string `json:"name" validate:"required" msg:"required=Name is required"`
	Email       string `json:"email" validate:"required,email" msg:"required=Email is required;email=Email must be valid"`
	Password    string `json:"password" validate:"required,min=6" msg:"required=Password is required;min=Password must be at least 6 characters"`
	Description string `json:"description"`
	Address     string `json:"address"`
	City        string `json:"city" validate:"required" msg:"required=City is required"`
	Phone       string `json:"phone"`
}

// RegisterResponse es la respuesta 201 del registro.
type RegisterResponse struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	City      string    `json:"city"`
	CreatedAt time.Time `json:"createdAt"`
}

// LoginRequest es el body de POST /v1/stores/login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email" msg:"required=Email is required;email=Email must be valid"`
	Password string `json:"password" validate:"required" msg:"required=Password is required"`
}

// LoginResponse lleva el token y el resumen del principal.
type LoginResponse struct {
	Token string       `json:"token"`
	Store StoreSummary `json:"store"`
}

// StoreSummary es el resumen de la tienda autenticada.
type StoreSummary struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Email string    `json:"email"`
}

// ProfileResponse es GET /v1/stores/me.
type ProfileResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	Description string    `json:"description"`
	City        string    `json:"city"`
	CreatedAt   time.Time `json:"createdAt"`
}

// PublicItem es un ítem del listado público.
type PublicItem struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Description string    `json:"description"`
}

// DetailResponse es GET /v1/stores/{storeId}.
type DetailResponse struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	City        string    `json:"city"`
	Address     string    `json:"address"`
	Phone       string    `json:"phone"`
	Description string    `json:"description"`
}
