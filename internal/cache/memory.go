package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/umdev/infoeste/internal/metrics"
)

// memoryClient implementa Client sobre go-cache. Útil para desarrollo y un solo nodo.
type memoryClient struct {
	prefix string
	c      *gocache.Cache
}

// NewMemory crea un cliente de cache en memoria. Las entradas vencidas se purgan cada minuto.
func NewMemory(prefix string, defaultTTL time.Duration) *memoryClient {
	if defaultTTL <= 0 {
		defaultTTL = gocache.NoExpiration
	}
	return &memoryClient{
		prefix: prefix,
		c:      gocache.New(defaultTTL, time.Minute),
	}
}

func (m *memoryClient) Get(_ context.Context, key string) ([]byte, error) {
	v, ok := m.c.Get(prefixed(m.prefix, key))
	if !ok {
		metrics.CacheOperations.WithLabelValues("memory", "get", "miss").Inc()
		return nil, ErrNotFound
	}
	b, _ := v.([]byte)
	metrics.CacheOperations.WithLabelValues("memory", "get", "hit").Inc()
	return b, nil
}

func (m *memoryClient) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = gocache.DefaultExpiration
	}
	// copia: el caller puede reutilizar el slice
	cp := make([]byte, len(value))
	copy(cp, value)
	m.c.Set(prefixed(m.prefix, key), cp, ttl)
	return nil
}

func (m *memoryClient) Delete(_ context.Context, key string) error {
	m.c.Delete(prefixed(m.prefix, key))
	return nil
}

func (m *memoryClient) Ping(context.Context) error { return nil }

func (m *memoryClient) Close() error {
	m.c.Flush()
	return nil
}

func (m *memoryClient) Kind() string { return "memory" }

// Len devuelve la cantidad de entradas (incluye vencidas aún no purgadas).
func (m *memoryClient) Len() int { return m.c.ItemCount() }
