// Package store abre el almacenamiento configurado y arma los repositorios.
package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/umdev/infoeste/internal/cache"
	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/domain/repository"
	"github.com/umdev/infoeste/internal/store/cached"
	"github.com/umdev/infoeste/internal/store/memory"
	"github.com/umdev/infoeste/internal/store/pg"
)

// Repositories expone los repositorios listos para los services.
type Repositories struct {
	Driver   string
	Stores   repository.StoreRepository
	Products repository.ProductRepository
	Cache    cache.Client

	// Pool es nil salvo con driver postgres.
	Pool *pgxpool.Pool

	ping  func(ctx context.Context) error
	close func()
}

// PingStorage verifica solo el almacenamiento.
func (r *Repositories) PingStorage(ctx context.Context) error {
	return r.ping(ctx)
}

// Ping verifica storage y cache.
func (r *Repositories) Ping(ctx context.Context) error {
	if err := r.ping(ctx); err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	if r.Cache != nil {
		if err := r.Cache.Ping(ctx); err != nil {
			return fmt.Errorf("cache: %w", err)
		}
	}
	return nil
}

// Close libera pool y cache.
func (r *Repositories) Close() {
	if r.Cache != nil {
		_ = r.Cache.Close()
	}
	r.close()
}

// Open abre el driver de storage y el cache según la configuración.
func Open(ctx context.Context, cfg *config.Config) (*Repositories, error) {
	cc, err := cache.New(cache.Config{
		Kind:       cfg.Cache.Kind,
		DefaultTTL: cfg.CacheTTL(),
		Prefix:     cfg.Cache.Redis.Prefix,
		Redis: cache.RedisConfig{
			Addr:     cfg.Cache.Redis.Addr,
			Password: cfg.Cache.Redis.Password,
			DB:       cfg.Cache.Redis.DB,
		},
	})
	if err != nil {
		return nil, err
	}

	var r *Repositories
	switch d := strings.ToLower(cfg.Storage.Driver); d {
	case "memory":
		m := memory.New()
		r = &Repositories{Driver: d, Stores: m.Stores(), Products: m.Products(), ping: m.Ping, close: m.Close}
	case "postgres", "pg":
		s, err := OpenPostgres(ctx, cfg)
		if err != nil {
			_ = cc.Close()
			return nil, err
		}
		r = &Repositories{Driver: "postgres", Stores: s.Stores(), Products: s.Products(), Pool: s.Pool(), ping: s.Ping, close: s.Close}
	default:
		_ = cc.Close()
		return nil, fmt.Errorf("unsupported driver: %s", cfg.Storage.Driver)
	}

	r.Cache = cc
	r.Stores = cached.NewStores(r.Stores, cc, cfg.CacheTTL())
	return r, nil
}

// OpenPostgres abre el pool de Postgres con el tuning de la configuración.
func OpenPostgres(ctx context.Context, cfg *config.Config) (*pg.Store, error) {
	return pg.New(ctx, cfg.Storage.DSN, pg.PoolConfig{
		MaxOpenConns:    cfg.Storage.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Storage.Postgres.MaxIdleConns,
		ConnMaxLifetime: cfg.Storage.Postgres.ConnMaxLifetime,
	})
}
