// Package controllers agrupa todos los controllers HTTP.
// Este es el "composition root" de controllers.
//
// Cada dominio vive en su sub-paquete (controllers/{dominio}/) con:
//   - {nombre}_controller.go  → implementación del controller
//   - controllers.go          → aggregator del dominio
//
// Los controllers de negocio devuelven error y se adaptan con errors.Handler,
// así toda falla pasa por el traductor.
//
// ═══════════════════════════════════════════════════════════════════════════════
// FLUJO DE INICIALIZACIÓN (cascada de dependencias)
// ═══════════════════════════════════════════════════════════════════════════════
//
//	┌───────────────────────────────────────────────────────────────────────────┐
//	│  infoeste serve                                                           │
//	│                                                                           │
//	│  1. deps := services.Deps{...}      ← Inyectar dependencias externas     │
//	│           ▼                                                               │
//	│  2. svcs := services.New(deps)      ← Crear todos los services           │
//	│           ▼                                                               │
//	│  3. ctrls := controllers.New(svcs)  ← Crear controllers con services     │
//	│           ▼                                                               │
//	│  4. router.New(router.Deps{...})    ← Rutas + pipeline del gate          │
//	│           ▼                                                               │
//	│  5. server.Run(ctx, cfg, handler)   ← Iniciar servidor                   │
//	└───────────────────────────────────────────────────────────────────────────┘
//
// ═══════════════════════════════════════════════════════════════════════════════
package controllers

import (
	"github.com/umdev/infoeste/internal/http/controllers/health"
	"github.com/umdev/infoeste/internal/http/controllers/product"
	"github.com/umdev/infoeste/internal/http/controllers/store"
	"github.com/umdev/infoeste/internal/http/services"
)

// Controllers agrupa todos los sub-controllers por dominio.
type Controllers struct {
	Store   *store.Controllers   // Registro, login, perfil y catálogo de tiendas
	Product *product.Controllers // Alta, edición y catálogo de productos
	Health  *health.Controllers  // healthz / readyz
}

// New crea el agregador de controllers con todos los services inyectados.
// maxImageBytes 0 usa el default de config.
func New(svc *services.Services, maxImageBytes int64) *Controllers {
	return &Controllers{
		Store:   store.NewControllers(svc.Store),
		Product: product.NewControllers(svc.Product, maxImageBytes),
		Health:  health.NewControllers(svc.Health),
	}
}
