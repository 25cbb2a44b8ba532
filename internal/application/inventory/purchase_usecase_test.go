package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/infrastructure/memory"
)

const company = "company-1"

type captured struct {
	companyID, reason string
	productIDs        []string
}

type captureNotifier struct{ events []captured }

func (n *captureNotifier) NotifyStockChanged(_ context.Context, companyID, reason string, productIDs []string) {
	n.events = append(n.events, captured{companyID, reason, productIDs})
}

func setup(t *testing.T) (*memory.Store, *inventory.PurchaseUseCase, *inventory.LedgerUseCase, *captureNotifier) {
	t.Helper()
	store := memory.NewStore()
	n := &captureNotifier{}
	purchases := inventory.NewPurchaseUseCase(store, store.Products(), store.Suppliers(), store.Purchases(), store.StockLots(), n)
	ledger := inventory.NewLedgerUseCase(store.Products(), store.StockLots())
	for _, id := range []string{"P", "Q"} {
		require.NoError(t, store.Products().Create(context.Background(), &entity.Product{
			ID: id, CompanyID: company, SKU: "SKU-" + id, Name: id, UnitMeasure: "UND",
			Price: decimal.NewFromInt(10), CreatedAt: time.Now(), UpdatedAt: time.Now(),
		}))
	}
	return store, purchases, ledger, n
}

func pline(productID string, qty int64, cost string) dto.PurchaseLineRequest {
	return dto.PurchaseLineRequest{ProductID: productID, Quantity: qty, CostPrice: decimal.RequireFromString(cost)}
}

// ──────────────────────────────────────────────────────────────────────────────
// CreatePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestCreatePurchase_QuedaPendienteSinMoverStock(t *testing.T) {
	store, purchases, _, n := setup(t)

	res, err := purchases.CreatePurchase(context.Background(), company, "user-1", dto.CreatePurchaseRequest{
		Reference: "  FAC-001 ",
		Lines:     []dto.PurchaseLineRequest{pline("P", 6, "10.00"), pline("Q", 2, "3.00")},
	})
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, res.Status)
	assert.Equal(t, "FAC-001", res.Reference)
	assert.Len(t, res.Lines, 2)
	assert.Empty(t, res.Lots)
	assert.Empty(t, n.events)

	lots, err := store.StockLots().AvailableLots(context.Background(), "P")
	require.NoError(t, err)
	assert.Empty(t, lots)
}

func TestCreatePurchase_Validaciones(t *testing.T) {
	store, purchases, _, _ := setup(t)
	require.NoError(t, store.Products().Archive(context.Background(), "Q"))
	require.NoError(t, store.Suppliers().Create(context.Background(), &entity.Supplier{
		ID: "sup-2", CompanyID: "company-2", Name: "Ajeno", TaxID: "1",
	}))
	foreign := "sup-2"

	cases := []struct {
		name string
		in   dto.CreatePurchaseRequest
		want error
	}{
		{"sin líneas", dto.CreatePurchaseRequest{}, domain.ErrInvalidInput},
		{"cantidad negativa", dto.CreatePurchaseRequest{Lines: []dto.PurchaseLineRequest{pline("P", -1, "1")}}, domain.ErrInvalidInput},
		{"costo negativo", dto.CreatePurchaseRequest{Lines: []dto.PurchaseLineRequest{pline("P", 1, "-1")}}, domain.ErrInvalidInput},
		{"producto inexistente", dto.CreatePurchaseRequest{Lines: []dto.PurchaseLineRequest{pline("Z", 1, "1")}}, domain.ErrNotFound},
		{"producto archivado", dto.CreatePurchaseRequest{Lines: []dto.PurchaseLineRequest{pline("Q", 1, "1")}}, domain.ErrProductArchived},
		{"proveedor de otra empresa", dto.CreatePurchaseRequest{SupplierID: &foreign, Lines: []dto.PurchaseLineRequest{pline("P", 1, "1")}}, domain.ErrForbidden},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := purchases.CreatePurchase(context.Background(), company, "user-1", tc.in)
			assert.ErrorIs(t, err, tc.want)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ReceivePurchase
// ──────────────────────────────────────────────────────────────────────────────

func TestReceivePurchase_CreaUnLotePorLinea(t *testing.T) {
	_, purchases, ledger, n := setup(t)
	created, err := purchases.CreatePurchase(context.Background(), company, "user-1", dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{pline("P", 6, "10.00"), pline("P", 4, "12.50"), pline("Q", 2, "3.00")},
	})
	require.NoError(t, err)

	received, err := purchases.ReceivePurchase(context.Background(), company, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusReceived, received.Status)
	require.NotNil(t, received.ReceivedAt)
	require.Len(t, received.Lots, 3, "las líneas del mismo producto no se fusionan")

	for i, lot := range received.Lots {
		line := received.Lines[i]
		assert.Equal(t, line.ID, lot.PurchaseLineID)
		assert.Equal(t, line.Quantity, lot.InitialQuantity)
		assert.Equal(t, lot.InitialQuantity, lot.RemainingQuantity)
		assert.True(t, line.CostPrice.Equal(lot.CostPrice))
	}

	require.Len(t, n.events, 1)
	assert.Equal(t, company, n.events[0].companyID)
	assert.Equal(t, ports.StockReasonReceipt, n.events[0].reason)
	assert.Equal(t, []string{"P", "Q"}, n.events[0].productIDs)

	summary, err := ledger.StockSummary(context.Background(), company, "P")
	require.NoError(t, err)
	assert.Equal(t, int64(10), summary.Available)
	assert.Len(t, summary.Lots, 2)
	// (6*10 + 4*12.5) / 10
	assert.True(t, decimal.RequireFromString("11").Equal(summary.AverageCost), summary.AverageCost.String())
}

func TestReceivePurchase_DosVeces_RetornaConflict(t *testing.T) {
	_, purchases, ledger, _ := setup(t)
	created, err := purchases.CreatePurchase(context.Background(), company, "user-1", dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{pline("P", 5, "1.00")},
	})
	require.NoError(t, err)

	_, err = purchases.ReceivePurchase(context.Background(), company, created.ID)
	require.NoError(t, err)
	_, err = purchases.ReceivePurchase(context.Background(), company, created.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	summary, err := ledger.StockSummary(context.Background(), company, "P")
	require.NoError(t, err)
	assert.Equal(t, int64(5), summary.Available, "la segunda recepción no duplica lotes")
}

func TestReceivePurchase_NoExiste_U_OtraEmpresa(t *testing.T) {
	_, purchases, _, _ := setup(t)
	_, err := purchases.ReceivePurchase(context.Background(), company, "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	created, err := purchases.CreatePurchase(context.Background(), company, "user-1", dto.CreatePurchaseRequest{
		Lines: []dto.PurchaseLineRequest{pline("P", 1, "1.00")},
	})
	require.NoError(t, err)
	_, err = purchases.ReceivePurchase(context.Background(), "company-2", created.ID)
	assert.ErrorIs(t, err, domain.ErrForbidden)

	got, err := purchases.GetPurchase(context.Background(), company, created.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.PurchaseStatusPending, got.Status)
}

// ──────────────────────────────────────────────────────────────────────────────
// Ledger
// ──────────────────────────────────────────────────────────────────────────────

func TestListLots_IncluyeLotesAgotados(t *testing.T) {
	store, _, ledger, _ := setup(t)
	ctx := context.Background()
	t0 := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	for i, qty := range []int64{3, 2} {
		require.NoError(t, store.StockLots().Create(ctx, &entity.StockLot{
			ID: []string{"lot-1", "lot-2"}[i], ProductID: "P",
			InitialQuantity: qty, RemainingQuantity: qty,
			CostPrice: decimal.NewFromInt(1), CreatedAt: t0.Add(time.Duration(i) * time.Hour),
		}))
	}
	_, err := store.StockLots().Decrement(ctx, "lot-1", 3)
	require.NoError(t, err)

	all, err := ledger.ListLots(ctx, company, "P", dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, all.Items, 2)
	assert.Equal(t, "lot-1", all.Items[0].ID)
	assert.Equal(t, int64(0), all.Items[0].RemainingQuantity)

	summary, err := ledger.StockSummary(ctx, company, "P")
	require.NoError(t, err)
	assert.Equal(t, int64(2), summary.Available)
	require.Len(t, summary.Lots, 1)
	assert.Equal(t, "lot-2", summary.Lots[0].ID)
}

func TestStockSummary_SinLotes_CostoCero(t *testing.T) {
	_, _, ledger, _ := setup(t)
	summary, err := ledger.StockSummary(context.Background(), company, "P")
	require.NoError(t, err)
	assert.Equal(t, int64(0), summary.Available)
	assert.True(t, summary.AverageCost.IsZero())
	assert.NotNil(t, summary.Lots)

	_, err = ledger.StockSummary(context.Background(), "company-2", "P")
	assert.ErrorIs(t, err, domain.ErrForbidden)
}
