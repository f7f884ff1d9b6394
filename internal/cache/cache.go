// Package cache provee un cache de lookups con soporte multi-backend.
//
// Soporta:
//   - memory (in-process, go-cache)
//   - redis (distribuido, protegido por circuit breaker)
//   - none (deshabilitado)
//
// El cache nunca es fuente de verdad: cualquier error de backend se trata como miss.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Client define las operaciones de cache.
type Client interface {
	// Get obtiene un valor. Retorna ErrNotFound si no existe.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set guarda un valor con TTL. Si ttl es 0 se usa el default del backend.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete elimina una key.
	Delete(ctx context.Context, key string) error

	// Ping verifica la conexión.
	Ping(ctx context.Context) error

	// Close libera recursos.
	Close() error

	// Kind identifica el backend (memory, redis, none).
	Kind() string
}

// Config configuración para crear un cliente de cache.
type Config struct {
	Kind       string // "memory" | "redis" | "none"
	DefaultTTL time.Duration
	Prefix     string
	Redis      RedisConfig
}

// RedisConfig datos de conexión a Redis.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// ErrNotFound indica que la key no existe o expiró.
var ErrNotFound = errors.New("cache: key not found")

// IsNotFound verifica si el error es porque la key no existe.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// New crea un cliente de cache según la configuración.
func New(cfg Config) (Client, error) {
	switch cfg.Kind {
	case "memory", "":
		return NewMemory(cfg.Prefix, cfg.DefaultTTL), nil
	case "redis":
		return NewRedis(cfg)
	case "none":
		return Noop{}, nil
	default:
		return nil, fmt.Errorf("cache: unknown kind %q", cfg.Kind)
	}
}

func prefixed(prefix, k string) string {
	if prefix == "" {
		return k
	}
	return prefix + ":" + k
}
