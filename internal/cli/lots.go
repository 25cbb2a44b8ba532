package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
)

// LotsOptions flags del comando lots.
type LotsOptions struct {
	*RootOptions
	Limit  int
	Offset int
}

// NewLotsCommand lista los lotes de un producto en orden FIFO, incluidos los agotados.
func NewLotsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &LotsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "lots <product-id>",
		Short: "Listar los lotes de un producto (auditoría)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLots(opts, cmd, args[0])
		},
	}

	cmd.Flags().IntVar(&opts.Limit, "limit", 100, "máximo de lotes")
	cmd.Flags().IntVar(&opts.Offset, "offset", 0, "lotes a saltar")

	return cmd
}

func runLots(opts *LotsOptions, cmd *cobra.Command, productID string) error {
	repo, closeFn, err := opts.OpenLots(cmd.Context(), opts.cfg)
	if err != nil {
		return err
	}
	defer closeFn()

	rows, err := repo.ListByProduct(cmd.Context(), productID, opts.Limit, opts.Offset)
	if err != nil {
		return err
	}
	lots := make([]dto.StockLotResponse, 0, len(rows))
	var available int64
	for _, l := range rows {
		lots = append(lots, inventory.ToStockLotResponse(l))
		available += l.RemainingQuantity
	}

	out := cmd.OutOrStdout()
	if opts.Format == FormatJSON {
		return writeJSON(out, dto.StockLotListResponse{
			Items: lots,
			Page:  dto.PageResponse{Limit: opts.Limit, Offset: opts.Offset},
		})
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LOTE\tCREADO\tINICIAL\tRESTANTE\tCOSTO")
	for _, l := range lots {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%d\t%s\n",
			l.ID, l.CreatedAt.Format("2006-01-02 15:04:05"), l.InitialQuantity, l.RemainingQuantity, l.CostPrice.StringFixed(2))
	}
	fmt.Fprintf(tw, "\t\t\t%d\t\n", available)
	return tw.Flush()
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
