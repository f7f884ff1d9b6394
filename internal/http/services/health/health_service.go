// Package health contiene el service para health checks.
package health

import (
	"context"
	"os"
	"time"

	dto "github.com/umdev/infoeste/internal/http/dto/health"
	"github.com/umdev/infoeste/internal/observability/logger"
)

// HealthService define las operaciones de health check.
type HealthService interface {
	Check(ctx context.Context) dto.HealthResponse
}

// Checker verifica una dependencia. nil = componente no configurado.
type Checker func(ctx context.Context) error

// Deps contiene las dependencias inyectables para el health service.
type Deps struct {
	Storage Checker // crítico
	Cache   Checker // degradado: sin cache el servicio sigue respondiendo
	Timeout time.Duration
}

type healthService struct {
	deps Deps
}

// NewHealthService crea un nuevo service de health check.
func NewHealthService(deps Deps) HealthService {
	if deps.Timeout <= 0 {
		deps.Timeout = 2 * time.Second
	}
	return &healthService{deps: deps}
}

const componentHealth = "health"

func (s *healthService) Check(ctx context.Context) dto.HealthResponse {
	log := logger.From(ctx).With(
		logger.Layer("service"),
		logger.Component(componentHealth),
		logger.Op("Check"),
	)

	ctx, cancel := context.WithTimeout(ctx, s.deps.Timeout)
	defer cancel()

	response := dto.HealthResponse{
		Status:     "ready",
		Version:    os.Getenv("SERVICE_VERSION"),
		Commit:     os.Getenv("SERVICE_COMMIT"),
		Components: make(map[string]dto.HealthStatus),
		Timestamp:  time.Now().UTC(),
	}

	// 1) Storage (crítico)
	if s.deps.Storage == nil {
		response.Components["storage"] = dto.HealthStatus{Status: "error", Message: "not initialized"}
		response.Status = "unavailable"
	} else if err := s.deps.Storage(ctx); err != nil {
		response.Components["storage"] = dto.HealthStatus{Status: "error", Message: "unavailable"}
		response.Status = "unavailable"
		log.Error("storage unavailable", logger.Err(err))
	} else {
		response.Components["storage"] = dto.HealthStatus{Status: "ok"}
	}

	// 2) Cache (no crítico)
	if s.deps.Cache != nil {
		if err := s.deps.Cache(ctx); err != nil {
			response.Components["cache"] = dto.HealthStatus{Status: "error", Message: "unavailable"}
			if response.Status == "ready" {
				response.Status = "degraded"
			}
			log.Warn("cache unavailable", logger.Err(err))
		} else {
			response.Components["cache"] = dto.HealthStatus{Status: "ok"}
		}
	}

	return response
}

// Services agrupa los services del dominio health.
type Services struct {
	Health HealthService
}

// NewServices crea el agregador de services health.
func NewServices(d Deps) Services {
	return Services{Health: NewHealthService(d)}
}
