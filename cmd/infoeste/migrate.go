package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/umdev/infoeste/internal/store"
)

func newMigrateCmd(g *globals) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Aplica el esquema Postgres embebido (idempotente)",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := g.loadConfig()
			if err != nil {
				return err
			}
			if cfg.Storage.DSN == "" {
				return fmt.Errorf("migrate requiere storage.dsn (env STORAGE_DSN)")
			}

			s, err := store.OpenPostgres(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer s.Close()

			n, err := s.Migrate(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrations applied: %d\n", n)
			return nil
		},
	}
}
