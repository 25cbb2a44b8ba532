package inventory

import (
	"sort"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// Line producto y cantidad pedidos en una línea de venta.
type Line struct {
	ProductID string
	Quantity  int64
}

// LinePlan asignaciones calculadas para una línea, en el mismo orden de la venta.
type LinePlan struct {
	ProductID   string
	Quantity    int64
	Allocations []Allocation
}

// Snapshot lotes disponibles por producto, leídos dentro de la transacción.
type Snapshot map[string][]entity.StockLot

// Check es la verificación previa: suma lo pedido por producto en toda la venta y lo
// compara con lo disponible. Reporta todos los productos faltantes en un solo error.
func Check(snap Snapshot, lines []Line) error {
	requested := make(map[string]int64)
	var order []string
	for _, ln := range lines {
		if ln.Quantity <= 0 {
			return domain.ErrInvalidInput
		}
		if _, seen := requested[ln.ProductID]; !seen {
			order = append(order, ln.ProductID)
		}
		requested[ln.ProductID] += ln.Quantity
	}
	sort.Strings(order)

	var shortages []domain.Shortage
	for _, productID := range order {
		available := Available(snap[productID])
		if requested[productID] > available {
			shortages = append(shortages, domain.Shortage{
				ProductID: productID,
				Requested: requested[productID],
				Available: available,
			})
		}
	}
	if len(shortages) > 0 {
		return &domain.InsufficientStockError{Shortages: shortages}
	}
	return nil
}

// PlanSale calcula el plan completo de una venta: verificación previa y luego el
// recorrido FIFO línea por línea sobre una copia del snapshot, de modo que cada línea
// ve lo consumido por las anteriores. Todo o nada: ante cualquier error no hay plan.
func PlanSale(snap Snapshot, lines []Line) ([]LinePlan, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if err := Check(snap, lines); err != nil {
		return nil, err
	}

	work := make(Snapshot, len(snap))
	for productID, lots := range snap {
		cp := make([]entity.StockLot, len(lots))
		copy(cp, lots)
		work[productID] = cp
	}

	plans := make([]LinePlan, 0, len(lines))
	for _, ln := range lines {
		allocs, err := Allocate(work[ln.ProductID], ln.ProductID, ln.Quantity)
		if err != nil {
			return nil, err
		}
		consume(work[ln.ProductID], allocs)
		plans = append(plans, LinePlan{ProductID: ln.ProductID, Quantity: ln.Quantity, Allocations: allocs})
	}
	return plans, nil
}

// consume aplica las asignaciones sobre la copia de trabajo.
func consume(lots []entity.StockLot, allocs []Allocation) {
	for _, a := range allocs {
		for i := range lots {
			if lots[i].ID == a.LotID {
				lots[i].RemainingQuantity -= a.Quantity
				break
			}
		}
	}
}
