package inventory

import (
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// WeightedAverageCost costo promedio ponderado del stock restante.
// Costo = Σ(Restante * CostoLote) / Σ(Restante). Sin stock devuelve cero.
func WeightedAverageCost(lots []entity.StockLot) decimal.Decimal {
	var units int64
	total := decimal.Zero
	for _, l := range lots {
		if l.RemainingQuantity <= 0 {
			continue
		}
		units += l.RemainingQuantity
		total = total.Add(l.CostPrice.Mul(decimal.NewFromInt(l.RemainingQuantity)))
	}
	if units == 0 {
		return decimal.Zero
	}
	return total.Div(decimal.NewFromInt(units))
}

// CostOf costo total de un conjunto de asignaciones (cantidad × costo del lote).
func CostOf(allocs []Allocation) decimal.Decimal {
	total := decimal.Zero
	for _, a := range allocs {
		total = total.Add(a.CostPrice.Mul(decimal.NewFromInt(a.Quantity)))
	}
	return total
}
