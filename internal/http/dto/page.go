// Package dto contiene las formas comunes a todos los dominios.
package dto

// PageMeta describe la página devuelta.
type PageMeta struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
}

// Page es la envoltura de todo listado paginado.
type Page[T any] struct {
	Meta PageMeta `json:"meta"`
	Data []T      `json:"data"`
}
