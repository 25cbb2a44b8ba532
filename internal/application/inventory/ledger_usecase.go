package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	domaininv "github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// LedgerUseCase lecturas del libro de lotes: stock disponible y auditoría.
type LedgerUseCase struct {
	productRepo repository.ProductRepository
	lotRepo     repository.StockLotRepository
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(productRepo repository.ProductRepository, lotRepo repository.StockLotRepository) *LedgerUseCase {
	return &LedgerUseCase{productRepo: productRepo, lotRepo: lotRepo}
}

// StockSummary suma los lotes con saldo (sin bloquear) y calcula el costo promedio ponderado.
func (uc *LedgerUseCase) StockSummary(ctx context.Context, companyID, productID string) (*dto.StockSummaryResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	rows, err := uc.lotRepo.AvailableLots(ctx, productID)
	if err != nil {
		return nil, err
	}
	lots := make([]entity.StockLot, 0, len(rows))
	for _, l := range rows {
		lots = append(lots, *l)
	}
	domaininv.SortFIFO(lots)

	resp := &dto.StockSummaryResponse{
		ProductID:   productID,
		Available:   domaininv.Available(lots),
		AverageCost: domaininv.WeightedAverageCost(lots),
		Lots:        make([]dto.StockLotResponse, 0, len(lots)),
	}
	for i := range lots {
		resp.Lots = append(resp.Lots, ToStockLotResponse(&lots[i]))
	}
	return resp, nil
}

// ListLots lista todos los lotes del producto, incluidos los agotados.
func (uc *LedgerUseCase) ListLots(ctx context.Context, companyID, productID string, page dto.PageRequest) (*dto.StockLotListResponse, error) {
	if err := uc.checkProduct(ctx, companyID, productID); err != nil {
		return nil, err
	}
	page.DefaultPage()
	rows, err := uc.lotRepo.ListByProduct(ctx, productID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockLotResponse, 0, len(rows))
	for _, l := range rows {
		items = append(items, ToStockLotResponse(l))
	}
	return &dto.StockLotListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func (uc *LedgerUseCase) checkProduct(ctx context.Context, companyID, productID string) error {
	product, err := uc.productRepo.GetByID(ctx, productID)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrNotFound
	}
	if product.CompanyID != companyID {
		return domain.ErrForbidden
	}
	return nil
}

// ToStockLotResponse convierte un lote a su DTO.
func ToStockLotResponse(l *entity.StockLot) dto.StockLotResponse {
	return dto.StockLotResponse{
		ID:                l.ID,
		ProductID:         l.ProductID,
		PurchaseID:        l.PurchaseID,
		PurchaseLineID:    l.PurchaseLineID,
		InitialQuantity:   l.InitialQuantity,
		RemainingQuantity: l.RemainingQuantity,
		CostPrice:         l.CostPrice,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}
