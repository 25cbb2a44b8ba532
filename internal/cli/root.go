// Package cli comandos de administración de stockctl.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-pos/pkg/config"
)

// Formatos de salida.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// RootOptions flags globales y puntos de extensión para tests.
type RootOptions struct {
	Format string

	// LoadConfig lee la configuración; por defecto config.Load.
	LoadConfig func() (*config.Config, error)
	// OpenLots abre el libro de lotes; por defecto contra PostgreSQL.
	OpenLots func(ctx context.Context, cfg *config.Config) (repository.StockLotRepository, func(), error)

	cfg *config.Config
}

// NewRootCommand crea el comando raíz. opts puede ser nil.
func NewRootCommand(opts *RootOptions) *cobra.Command {
	if opts == nil {
		opts = &RootOptions{}
	}
	if opts.LoadConfig == nil {
		opts.LoadConfig = config.Load
	}
	if opts.OpenLots == nil {
		opts.OpenLots = openPostgresLots
	}

	cmd := &cobra.Command{
		Use:           "stockctl",
		Short:         "Administración del inventario POS",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if opts.Format != FormatText && opts.Format != FormatJSON {
				return fmt.Errorf("formato inválido %q: use text o json", opts.Format)
			}
			cfg, err := opts.LoadConfig()
			if err != nil {
				return fmt.Errorf("cargar configuración: %w", err)
			}
			opts.cfg = cfg
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&opts.Format, "format", FormatText, "formato de salida (text|json)")

	cmd.AddCommand(NewMigrateCommand(opts))
	cmd.AddCommand(NewTokenCommand(opts))
	cmd.AddCommand(NewLotsCommand(opts))

	return cmd
}

func openPostgresLots(ctx context.Context, cfg *config.Config) (repository.StockLotRepository, func(), error) {
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, nil, err
	}
	return postgres.NewStockLotRepository(pool), pool.Close, nil
}
