// Package product contiene los DTOs de /v1/products.
package product

import (
	"time"

	"github.com/google/uuid"
)

// CreateInput son los campos de texto del multipart de POST /v1/products.
// Price y Stock son punteros para distinguir ausente de cero.
type CreateInput struct {
	Name        string   `json:"name" validate:"required" msg:"required=Name is required"`
	Description string   `json:"description"`
	Price       *float64 `json:"price" validate:"required,gt=0" msg:"required=Price is required;gt=Price must be greater than 0"`
	Stock       *int     `json:"stock" validate:"required,gte=0" msg:"required=Stock is required;gte=Stock must be 0 or greater"`
	Category    string   `json:"category"`
}

// UpdateRequest es el body JSON de PUT /v1/products/{productId}.
type UpdateRequest struct {
	Name     string   `json:"name" validate:"required" msg:"required=Name is required"`
	Price    *float64 `json:"price" validate:"required,gt=0" msg:"required=Price is required;gt=Price must be greater than 0"`
	Stock    *int     `json:"stock" validate:"required,gte=0" msg:"required=Stock is required;gte=Stock must be 0 or greater"`
	Category string   `json:"category"`
}

// Image es un archivo subido ya leído en memoria.
type Image struct {
	Filename    string
	ContentType string
	Data        []byte
}

// CreateResponse es la respuesta 201 de la creación.
type CreateResponse struct {
	ID          uuid.UUID `json:"id"`
	StoreID     uuid.UUID `json:"storeId"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	Stock       int       `json:"stock"`
	Category    string    `json:"category"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ImageResponse es la respuesta de PUT /v1/products/{productId}/image.
type ImageResponse struct {
	ID       uuid.UUID `json:"id"`
	ImageURL string    `json:"imageUrl"`
}

// MyItem es un ítem de GET /v1/products/my.
type MyItem struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Price    float64   `json:"price"`
	Stock    int       `json:"stock"`
	ImageURL string    `json:"imageUrl"`
}

// PublicItem es un ítem de los listados públicos.
type PublicItem struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Price     float64   `json:"price"`
	Stock     int       `json:"stock"`
	Category  string    `json:"category"`
	StoreName string    `json:"storeName"`
	ImageURL  string    `json:"imageUrl"`
}

// DetailResponse es GET /v1/products/{productId}.
type DetailResponse struct {
	ID          uuid.UUID  `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Price       float64    `json:"price"`
	Stock       int        `json:"stock"`
	Category    string     `json:"category"`
	ImageURL    string     `json:"imageUrl"`
	Store       StoreBrief `json:"store"`
}

// StoreBrief identifica a la tienda dueña en el detalle.
type StoreBrief struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// ListQuery son los filtros de los listados públicos.
type ListQuery struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
