// Package server arma el handler completo desde la configuración y corre el
// http.Server con apagado ordenado.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/sync/errgroup"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/http/controllers"
	mw "github.com/umdev/infoeste/internal/http/middlewares"
	"github.com/umdev/infoeste/internal/http/policy"
	"github.com/umdev/infoeste/internal/http/router"
	"github.com/umdev/infoeste/internal/http/services"
	"github.com/umdev/infoeste/internal/http/services/health"
	jwtx "github.com/umdev/infoeste/internal/jwt"
	"github.com/umdev/infoeste/internal/metrics"
	"github.com/umdev/infoeste/internal/observability/logger"
	"github.com/umdev/infoeste/internal/store"
)

// App es el resultado del wiring: handler listo y recursos a liberar.
type App struct {
	Handler http.Handler
	Issuer  *jwtx.Issuer
	Repos   *store.Repositories
	Policy  *policy.Policy
}

// Close libera storage y cache.
func (a *App) Close() {
	if a.Repos != nil {
		a.Repos.Close()
	}
}

// Options ajusta Build. Los campos nil usan el default.
type Options struct {
	// Registerer de métricas; nil = prometheus.DefaultRegisterer.
	Registerer prometheus.Registerer
	// Repos ya abiertos (tests); nil = store.Open(cfg).
	Repos *store.Repositories
}

// Build instancia todas las dependencias desde cfg:
//
//	issuer → storage+cache → métricas → services → controllers → router → otelhttp
func Build(ctx context.Context, cfg *config.Config, opts Options) (*App, error) {
	issuer, err := jwtx.NewIssuer(cfg.JWT.Issuer, []byte(cfg.JWT.Secret), cfg.TokenTTL())
	if err != nil {
		return nil, fmt.Errorf("token service: %w", err)
	}

	repos := opts.Repos
	if repos == nil {
		if repos, err = store.Open(ctx, cfg); err != nil {
			return nil, fmt.Errorf("storage: %w", err)
		}
	}

	metricsHandler, err := metrics.Register(opts.Registerer, repos.Pool)
	if err != nil {
		repos.Close()
		return nil, fmt.Errorf("metrics: %w", err)
	}

	healthDeps := health.Deps{Storage: repos.PingStorage}
	if repos.Cache != nil {
		healthDeps.Cache = repos.Cache.Ping
	}

	svcs := services.New(services.Deps{
		Stores:        repos.Stores,
		Products:      repos.Products,
		Issuer:        issuer,
		MaxImageBytes: cfg.Server.MaxImageBytes,
		Health:        healthDeps,
	})
	ctrls := controllers.New(svcs, cfg.Server.MaxImageBytes)

	pol := policy.Default()
	h := router.New(router.Deps{
		Controllers:  ctrls,
		Verifier:     issuer,
		Policy:       pol,
		Metrics:      metricsHandler,
		CORSOrigins:  cfg.Server.CORSAllowedOrigins,
		MaxBodyBytes: cfg.Server.MaxBodyBytes,
		SecurityHeaders: mw.SecurityHeadersOptions{
			TrustProxy: cfg.Server.TrustProxy,
			HSTSMaxAge: cfg.HSTSMaxAge(),
		},
		Docs: cfg.DocsEnabled(),
	})

	logger.L().Info("http handler built",
		logger.String("storage", repos.Driver),
		logger.String("cache", cacheKind(repos)),
		logger.Count(len(pol.Rules())),
	)

	return &App{
		Handler: otelhttp.NewHandler(h, "infoeste.http"),
		Issuer:  issuer,
		Repos:   repos,
		Policy:  pol,
	}, nil
}

func cacheKind(r *store.Repositories) string {
	if r.Cache == nil {
		return "none"
	}
	return r.Cache.Kind()
}

// shutdownTimeout es lo que se espera a los requests en vuelo al apagar.
const shutdownTimeout = 15 * time.Second

// Run sirve handler en cfg.Server.Addr hasta que ctx se cancele y luego apaga
// el servidor esperando a los requests en vuelo.
func Run(ctx context.Context, cfg *config.Config, handler http.Handler) error {
	srv := &http.Server{
		Addr:              cfg.Server.Addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       config.Duration(cfg.Server.ReadTimeout, 30*time.Second),
		WriteTimeout:      config.Duration(cfg.Server.WriteTimeout, 30*time.Second),
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    64 << 10,
	}

	log := logger.Named("server")
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("listening", logger.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen %s: %w", srv.Addr, err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Info("shutting down")
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		return srv.Shutdown(sctx)
	})

	return g.Wait()
}
