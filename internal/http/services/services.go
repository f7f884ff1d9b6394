// Package services agrupa todos los services HTTP.
// Este es el "composition root" de services.
//
// Cada dominio vive en su sub-paquete (services/{dominio}/) con:
//   - {nombre}_service.go  → implementación del service
//   - services.go          → Deps, Services y NewServices del dominio
//
// Uso en el comando serve:
//
//	svcs := services.New(services.Deps{
//	    Stores:   repos.Stores,
//	    Products: repos.Products,
//	    Issuer:   issuer,
//	    Health:   health.Deps{Storage: repos.Ping},
//	})
//	ctrls := controllers.New(svcs)
package services

import (
	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/http/services/health"
	"github.com/umdev/infoeste/internal/http/services/product"
	"github.com/umdev/infoeste/internal/http/services/store"
	"github.com/umdev/infoeste/internal/security/password"
)

// Deps contiene las dependencias base para crear los services.
type Deps struct {
	// ─── Infraestructura ───
	Stores   repository.StoreRepository
	Products repository.ProductRepository
	Issuer   store.TokenIssuer

	// ─── Configuración ───
	MaxImageBytes  int64
	PasswordParams *password.Params // nil = password.Default

	// ─── Health Check ───
	Health health.Deps
}

// Services agrupa todos los sub-services por dominio.
type Services struct {
	Store   store.Services
	Product product.Services
	Health  health.Services
}

// New crea el agregador de services con todas las dependencias inyectadas.
func New(d Deps) *Services {
	return &Services{
		Store: store.NewServices(store.Deps{
			Stores: d.Stores,
			Issuer: d.Issuer,
			Params: d.PasswordParams,
		}),
		Product: product.NewServices(product.Deps{
			Stores:        d.Stores,
			Products:      d.Products,
			MaxImageBytes: d.MaxImageBytes,
		}),
		Health: health.NewServices(d.Health),
	}
}
