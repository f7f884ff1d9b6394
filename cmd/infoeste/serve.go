package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/umdev/infoeste/internal/http/errors"
	"github.com/umdev/infoeste/internal/http/server"
	"github.com/umdev/infoeste/internal/observability/logger"
)

func newServeCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Inicia el servidor HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			defer func() { _ = logger.Sync() }()

			errors.SetLocation(cfg.Location())
			log := logger.Named("serve")
			log.Info("config loaded", logger.Any("config", cfg.Redacted()))

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			app, err := server.Build(ctx, cfg, server.Options{})
			if err != nil {
				return err
			}
			defer app.Close()

			if err := server.Run(ctx, cfg, app.Handler); err != nil {
				log.Error("server stopped with error", logger.Err(err))
				return err
			}
			log.Info("server stopped")
			return nil
		},
	}
}
