package store

import svc "github.com/umdev/infoeste/internal/http/services/store"

// Controllers agrupa los controllers del dominio store.
type Controllers struct {
	Store *StoreController
}

// NewControllers crea el agregador de controllers store.
func NewControllers(s svc.Services) *Controllers {
	return &Controllers{
		Store: NewStoreController(s.Store),
	}
}
