// Package cli wires the command tree: configuration, logger and the tenant
// API client are built once here (composition root) and shared by every
// subcommand.
package cli

import (
	"os"
	"time"

	"sripos/internal/api"
	"sripos/internal/config"
	"sripos/internal/service"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

type app struct {
	cfg        *config.Config
	client     *api.Client
	sesion     *service.SesionService
	inventario *service.InventarioService
}

// NewRootCmd builds the full command tree.
func NewRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:           "sripos",
		Short:         "Punto de venta e inventario para el régimen de facturación electrónica del SRI",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Structured logger — dev: pretty, prod: JSON
			log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if tenant, _ := cmd.Flags().GetString("tenant"); tenant != "" {
				cfg.Tenant = tenant
			}
			if base, _ := cmd.Flags().GetString("api"); base != "" {
				cfg.APIBaseURL = base
			}
			if cfg.Env == "production" {
				log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
			}

			a.cfg = cfg
			a.client = api.New(cfg)
			a.sesion = service.NewSesionService(a.client, cfg.PageSize)
			a.inventario = service.NewInventarioService(a.client, cfg.PageSize)
			return nil
		},
	}

	root.PersistentFlags().String("tenant", "", "esquema del tenant (omitir para 'public')")
	root.PersistentFlags().String("api", "", "URL base de la API")

	root.AddCommand(
		newTurnoCmd(a),
		newPosCmd(a),
		newInventarioCmd(a),
		newVentasCmd(a),
		newClientesCmd(a),
	)
	return root
}

// Execute runs the CLI.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("comando fallido")
		os.Exit(1)
	}
}
