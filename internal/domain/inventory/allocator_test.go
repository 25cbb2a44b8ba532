package inventory_test

import (
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var t0 = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

func lot(id, productID string, qty int64, createdAt time.Time, cost string) entity.StockLot {
	return entity.StockLot{
		ID:                id,
		ProductID:         productID,
		InitialQuantity:   qty,
		RemainingQuantity: qty,
		CostPrice:         decimal.RequireFromString(cost),
		CreatedAt:         createdAt,
		UpdatedAt:         createdAt,
	}
}

// twoLots lote1 qty=6 (primero), lote2 qty=4 (después).
func twoLots() []entity.StockLot {
	return []entity.StockLot{
		lot("lot-1", "P", 6, t0, "10.00"),
		lot("lot-2", "P", 4, t0.Add(time.Hour), "12.50"),
	}
}

func sumQty(allocs []inventory.Allocation) int64 {
	var n int64
	for _, a := range allocs {
		n += a.Quantity
	}
	return n
}

// ──────────────────────────────────────────────────────────────────────────────
// Allocate
// ──────────────────────────────────────────────────────────────────────────────

// Escenario A: 8 unidades → lote1: 6, lote2: 2.
func TestAllocate_EscenarioA_ConsumeLoteAntiguoPrimero(t *testing.T) {
	allocs, err := inventory.Allocate(twoLots(), "P", 8)
	require.NoError(t, err)
	require.Len(t, allocs, 2)

	assert.Equal(t, "lot-1", allocs[0].LotID)
	assert.Equal(t, int64(6), allocs[0].Quantity)
	assert.True(t, decimal.RequireFromString("10.00").Equal(allocs[0].CostPrice))

	assert.Equal(t, "lot-2", allocs[1].LotID)
	assert.Equal(t, int64(2), allocs[1].Quantity)
	assert.True(t, decimal.RequireFromString("12.50").Equal(allocs[1].CostPrice),
		"el costo de la asignación se copia del lote consumido")
}

// Escenario B: 11 unidades con 10 disponibles → InsufficientStock(P, 11, 10).
func TestAllocate_EscenarioB_StockInsuficiente(t *testing.T) {
	lots := twoLots()
	allocs, err := inventory.Allocate(lots, "P", 11)
	require.Error(t, err)
	assert.Nil(t, allocs)
	assert.True(t, errors.Is(err, domain.ErrInsufficientStock))

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	require.Len(t, ise.Shortages, 1)
	assert.Equal(t, domain.Shortage{ProductID: "P", Requested: 11, Available: 10}, ise.Shortages[0])

	assert.Equal(t, int64(6), lots[0].RemainingQuantity, "la entrada no se modifica")
	assert.Equal(t, int64(4), lots[1].RemainingQuantity, "la entrada no se modifica")
}

// Escenario C: sin lotes → InsufficientStock(P, 1, 0).
func TestAllocate_EscenarioC_SinLotes(t *testing.T) {
	_, err := inventory.Allocate(nil, "P", 1)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, domain.Shortage{ProductID: "P", Requested: 1, Available: 0}, ise.Shortages[0])
}

func TestAllocate_CantidadExactaDelPrimerLote_NoTocaElSegundo(t *testing.T) {
	allocs, err := inventory.Allocate(twoLots(), "P", 6)
	require.NoError(t, err)
	require.Len(t, allocs, 1)
	assert.Equal(t, "lot-1", allocs[0].LotID)
	assert.Equal(t, int64(6), allocs[0].Quantity)
}

func TestAllocate_PrimerLoteMasKUnidades(t *testing.T) {
	for k := int64(1); k <= 4; k++ {
		allocs, err := inventory.Allocate(twoLots(), "P", 6+k)
		require.NoError(t, err)
		require.Len(t, allocs, 2)
		assert.Equal(t, int64(6), allocs[0].Quantity)
		assert.Equal(t, k, allocs[1].Quantity)
	}
}

func TestAllocate_IgnoraOrdenDeEntradaYLotesVacios(t *testing.T) {
	lots := []entity.StockLot{
		lot("lot-new", "P", 5, t0.Add(2*time.Hour), "3"),
		lot("lot-empty", "P", 0, t0.Add(-time.Hour), "1"),
		lot("lot-old", "P", 2, t0, "2"),
	}
	allocs, err := inventory.Allocate(lots, "P", 3)
	require.NoError(t, err)
	require.Len(t, allocs, 2)
	assert.Equal(t, "lot-old", allocs[0].LotID)
	assert.Equal(t, "lot-new", allocs[1].LotID)
	assert.Equal(t, int64(1), allocs[1].Quantity)
}

// Empate de timestamps: el ID desempata y el resultado es reproducible.
func TestAllocate_EmpateDeTimestamp_DesempataPorID(t *testing.T) {
	lots := []entity.StockLot{
		lot("b", "P", 3, t0, "1"),
		lot("a", "P", 3, t0, "1"),
	}
	for i := 0; i < 5; i++ {
		allocs, err := inventory.Allocate(lots, "P", 4)
		require.NoError(t, err)
		assert.Equal(t, "a", allocs[0].LotID)
		assert.Equal(t, "b", allocs[1].LotID)
	}
}

func TestAllocate_Conservacion(t *testing.T) {
	lots := []entity.StockLot{
		lot("l1", "P", 3, t0, "1"),
		lot("l2", "P", 1, t0.Add(time.Minute), "1"),
		lot("l3", "P", 7, t0.Add(2*time.Minute), "1"),
	}
	for q := int64(1); q <= 11; q++ {
		allocs, err := inventory.Allocate(lots, "P", q)
		require.NoError(t, err)
		assert.Equal(t, q, sumQty(allocs), "Σ asignado debe ser igual a lo pedido (q=%d)", q)
	}
}

func TestAllocate_CeroYNegativo(t *testing.T) {
	allocs, err := inventory.Allocate(twoLots(), "P", 0)
	require.NoError(t, err)
	assert.Empty(t, allocs)

	_, err = inventory.Allocate(twoLots(), "P", -1)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// PlanSale
// ──────────────────────────────────────────────────────────────────────────────

// Escenario D: dos productos, uno alcanza y otro no → venta rechazada completa.
func TestPlanSale_EscenarioD_TodoONada(t *testing.T) {
	snap := inventory.Snapshot{
		"P": twoLots(),
		"Q": {lot("q-1", "Q", 1, t0, "5")},
	}
	plans, err := inventory.PlanSale(snap, []inventory.Line{
		{ProductID: "P", Quantity: 5},
		{ProductID: "Q", Quantity: 2},
	})
	require.Error(t, err)
	assert.Nil(t, plans)

	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	require.Len(t, ise.Shortages, 1)
	assert.Equal(t, "Q", ise.Shortages[0].ProductID)

	assert.Equal(t, int64(6), snap["P"][0].RemainingQuantity, "el snapshot no se modifica")
	assert.Equal(t, int64(1), snap["Q"][0].RemainingQuantity, "el snapshot no se modifica")
}

// Dos líneas del mismo producto: la segunda ve lo consumido por la primera.
func TestPlanSale_LineasRepetidas_VenConsumoPrevio(t *testing.T) {
	snap := inventory.Snapshot{"P": twoLots()}
	plans, err := inventory.PlanSale(snap, []inventory.Line{
		{ProductID: "P", Quantity: 5},
		{ProductID: "P", Quantity: 3},
	})
	require.NoError(t, err)
	require.Len(t, plans, 2)

	require.Len(t, plans[0].Allocations, 1)
	assert.Equal(t, inventory.Allocation{LotID: "lot-1", Quantity: 5, CostPrice: snap["P"][0].CostPrice}, plans[0].Allocations[0])

	require.Len(t, plans[1].Allocations, 2)
	assert.Equal(t, "lot-1", plans[1].Allocations[0].LotID)
	assert.Equal(t, int64(1), plans[1].Allocations[0].Quantity)
	assert.Equal(t, "lot-2", plans[1].Allocations[1].LotID)
	assert.Equal(t, int64(2), plans[1].Allocations[1].Quantity)
}

// La verificación previa suma por producto: 6 + 5 > 10 aunque cada línea alcance sola.
func TestPlanSale_VerificacionPreviaSumaPorProducto(t *testing.T) {
	snap := inventory.Snapshot{"P": twoLots()}
	_, err := inventory.PlanSale(snap, []inventory.Line{
		{ProductID: "P", Quantity: 6},
		{ProductID: "P", Quantity: 5},
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	assert.Equal(t, domain.Shortage{ProductID: "P", Requested: 11, Available: 10}, ise.Shortages[0])
}

func TestCheck_ReportaTodosLosFaltantes(t *testing.T) {
	snap := inventory.Snapshot{"P": twoLots()}
	err := inventory.Check(snap, []inventory.Line{
		{ProductID: "Z", Quantity: 1},
		{ProductID: "P", Quantity: 20},
	})
	var ise *domain.InsufficientStockError
	require.True(t, errors.As(err, &ise))
	require.Len(t, ise.Shortages, 2)
	assert.Equal(t, "P", ise.Shortages[0].ProductID)
	assert.Equal(t, int64(10), ise.Shortages[0].Available)
	assert.Equal(t, "Z", ise.Shortages[1].ProductID)
	assert.Equal(t, int64(0), ise.Shortages[1].Available)
	assert.Contains(t, err.Error(), "solicitado 20")
}

func TestPlanSale_EntradasInvalidas(t *testing.T) {
	_, err := inventory.PlanSale(inventory.Snapshot{}, nil)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = inventory.PlanSale(inventory.Snapshot{"P": twoLots()}, []inventory.Line{{ProductID: "P", Quantity: 0}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// No sobreventa: ventas sucesivas nunca superan la cantidad inicial de los lotes.
func TestPlanSale_SinSobreventaEnSecuencia(t *testing.T) {
	lots := twoLots()
	var sold int64
	for i := 0; i < 20; i++ {
		plans, err := inventory.PlanSale(inventory.Snapshot{"P": lots}, []inventory.Line{{ProductID: "P", Quantity: 3}})
		if err != nil {
			assert.ErrorIs(t, err, domain.ErrInsufficientStock)
			break
		}
		for _, a := range plans[0].Allocations {
			for j := range lots {
				if lots[j].ID == a.LotID {
					lots[j].RemainingQuantity -= a.Quantity
				}
			}
			sold += a.Quantity
		}
	}
	assert.Equal(t, int64(9), sold)
	assert.LessOrEqual(t, sold, int64(10))
	assert.Equal(t, int64(1), inventory.Available(lots))
}

// ──────────────────────────────────────────────────────────────────────────────
// Costos
// ──────────────────────────────────────────────────────────────────────────────

func TestWeightedAverageCost(t *testing.T) {
	// (6*10 + 4*12.5) / 10 = 11
	assert.True(t, decimal.NewFromInt(11).Equal(inventory.WeightedAverageCost(twoLots())))
	assert.True(t, decimal.Zero.Equal(inventory.WeightedAverageCost(nil)))
}

func TestCostOf(t *testing.T) {
	allocs, err := inventory.Allocate(twoLots(), "P", 8)
	require.NoError(t, err)
	// 6*10 + 2*12.5 = 85
	assert.True(t, decimal.NewFromInt(85).Equal(inventory.CostOf(allocs)))
}
