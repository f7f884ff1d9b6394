package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/umdev/infoeste/internal/metrics"
	"github.com/umdev/infoeste/internal/observability/logger"
)

const breakerName = "cache-redis"

// redisClient implementa Client usando Redis. Todas las llamadas pasan por un
// circuit breaker: con el circuito abierto Get devuelve miss sin tocar la red.
type redisClient struct {
	client *redis.Client
	prefix string
	ttl    time.Duration
	cb     *gobreaker.CircuitBreaker[[]byte]
}

// NewRedis crea un cliente de cache Redis y verifica la conexión.
func NewRedis(cfg Config) (*redisClient, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("cache: redis ping failed: %w", err)
	}

	return newRedisClient(rdb, cfg.Prefix, cfg.DefaultTTL), nil
}

func newRedisClient(rdb *redis.Client, prefix string, ttl time.Duration) *redisClient {
	log := logger.Named("cache")
	metrics.CircuitBreakerState.WithLabelValues(breakerName).Set(0)

	cb := gobreaker.NewCircuitBreaker[[]byte](gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		// un miss no es una falla del backend
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, redis.Nil)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Warn("circuit breaker state change",
				logger.Component(name),
				logger.String("from", from.String()),
				logger.String("to", to.String()),
			)
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateValue(to))
		},
	})

	return &redisClient{client: rdb, prefix: prefix, ttl: ttl, cb: cb}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}

func (c *redisClient) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := c.cb.Execute(func() ([]byte, error) {
		return c.client.Get(ctx, prefixed(c.prefix, key)).Bytes()
	})
	switch {
	case err == nil:
		metrics.CacheOperations.WithLabelValues("redis", "get", "hit").Inc()
		return val, nil
	case errors.Is(err, redis.Nil):
		metrics.CacheOperations.WithLabelValues("redis", "get", "miss").Inc()
		return nil, ErrNotFound
	default:
		metrics.CacheOperations.WithLabelValues("redis", "get", "error").Inc()
		return nil, fmt.Errorf("cache: redis get: %w", err)
	}
}

func (c *redisClient) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = c.ttl
	}
	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.client.Set(ctx, prefixed(c.prefix, key), value, ttl).Err()
	})
	if err != nil {
		metrics.CacheOperations.WithLabelValues("redis", "set", "error").Inc()
		return fmt.Errorf("cache: redis set: %w", err)
	}
	return nil
}

func (c *redisClient) Delete(ctx context.Context, key string) error {
	_, err := c.cb.Execute(func() ([]byte, error) {
		return nil, c.client.Del(ctx, prefixed(c.prefix, key)).Err()
	})
	if err != nil {
		return fmt.Errorf("cache: redis del: %w", err)
	}
	return nil
}

func (c *redisClient) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *redisClient) Close() error {
	return c.client.Close()
}

func (c *redisClient) Kind() string { return "redis" }
