package inventory

import (
	"sort"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation cantidad tomada de un lote para cubrir una línea de venta.
type Allocation struct {
	LotID     string
	Quantity  int64
	CostPrice decimal.Decimal
}

// SortFIFO ordena los lotes del más antiguo al más reciente.
// Empates de CreatedAt se resuelven por ID para que el orden sea total.
func SortFIFO(lots []entity.StockLot) {
	sort.SliceStable(lots, func(i, j int) bool {
		a, b := lots[i], lots[j]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})
}

// Available suma la cantidad restante de los lotes.
func Available(lots []entity.StockLot) int64 {
	var total int64
	for _, l := range lots {
		if l.RemainingQuantity > 0 {
			total += l.RemainingQuantity
		}
	}
	return total
}

// Allocate recorre los lotes en orden FIFO y devuelve cuánto tomar de cada uno para
// cubrir requested. No modifica lots. Si el stock no alcanza devuelve
// *domain.InsufficientStockError y ninguna asignación.
func Allocate(lots []entity.StockLot, productID string, requested int64) ([]Allocation, error) {
	if requested < 0 {
		return nil, domain.ErrInvalidInput
	}
	if requested == 0 {
		return nil, nil
	}

	ordered := make([]entity.StockLot, 0, len(lots))
	for _, l := range lots {
		if l.RemainingQuantity > 0 {
			ordered = append(ordered, l)
		}
	}
	SortFIFO(ordered)

	remaining := requested
	var out []Allocation
	for _, lot := range ordered {
		if remaining == 0 {
			break
		}
		take := min(remaining, lot.RemainingQuantity)
		out = append(out, Allocation{LotID: lot.ID, Quantity: take, CostPrice: lot.CostPrice})
		remaining -= take
	}
	if remaining > 0 {
		return nil, domain.NewInsufficientStock(productID, requested, Available(ordered))
	}
	return out, nil
}
