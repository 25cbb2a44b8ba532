package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-pos/internal/infrastructure/postgres"
)

// NewMigrateCommand aplica o revierte el esquema embebido.
func NewMigrateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:       "migrate up|down",
		Short:     "Aplicar o revertir migraciones de PostgreSQL",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{postgres.MigrateUp, postgres.MigrateDown},
		RunE: func(cmd *cobra.Command, args []string) error {
			pool, err := postgres.NewPool(cmd.Context(), opts.cfg.DB)
			if err != nil {
				return err
			}
			defer pool.Close()

			if err := postgres.Migrate(pool, args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "migrate %s: ok\n", args[0])
			return nil
		},
	}
}
