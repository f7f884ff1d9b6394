// Command infoeste es el backend del marketplace: servidor HTTP, migraciones
// y utilidades de operador para tokens y la tabla de rutas.
package main

import (
	"fmt"
	"io"
	"os"
	_ "time/tzdata" // zonas horarias embebidas para el timestamp de los errores

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/umdev/infoeste/internal/config"
	"github.com/umdev/infoeste/internal/observability/logger"
)

// globals son los flags persistentes compartidos por los subcomandos.
type globals struct {
	configPath string
	envFile    string
}

func main() {
	if err := newRootCmd(os.Stdout).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newRootCmd(out io.Writer) *cobra.Command {
	g := &globals{}

	root := &cobra.Command{
		Use:           "infoeste",
		Short:         "Backend del marketplace de tiendas y productos",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// .env es opcional; las variables ya exportadas tienen prioridad
			if g.envFile != "" {
				if err := godotenv.Load(g.envFile); err != nil && !os.IsNotExist(err) {
					return fmt.Errorf("env file %s: %w", g.envFile, err)
				}
			}
			return nil
		},
	}
	root.SetOut(out)

	root.PersistentFlags().StringVar(&g.configPath, "config", envOr("INFOESTE_CONFIG", ""), "Ruta al YAML de configuración (env INFOESTE_CONFIG)")
	root.PersistentFlags().StringVar(&g.envFile, "env-file", ".env", "Archivo .env a cargar si existe")

	root.AddCommand(
		newServeCmd(g),
		newMigrateCmd(g),
		newTokenCmd(g),
		newRoutesCmd(),
	)
	return root
}

// loadConfig carga config y deja listo el logger y la zona de los errores.
func (g *globals) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(g.configPath)
	if err != nil {
		return nil, err
	}
	logger.Init(logger.Config{
		Env:         cfg.App.Env,
		Level:       cfg.Log.Level,
		ServiceName: "infoeste",
		Version:     os.Getenv("SERVICE_VERSION"),
	})
	return cfg, nil
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}
