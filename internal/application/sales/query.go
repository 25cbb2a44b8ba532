package sales

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// GetSale obtiene una venta por ID con líneas y lotes consumidos.
func (uc *CreateSaleUseCase) GetSale(ctx context.Context, companyID, id string) (*dto.SaleResponse, error) {
	sale, err := uc.saleRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if sale == nil {
		return nil, domain.ErrNotFound
	}
	if sale.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.saleRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	allocs, err := uc.saleRepo.GetAllocations(ctx, id)
	if err != nil {
		return nil, err
	}
	return toSaleResponse(sale, lines, allocs), nil
}

// ListSales lista ventas de la empresa (sin detalle).
func (uc *CreateSaleUseCase) ListSales(ctx context.Context, companyID string, page dto.PageRequest) (*dto.SaleListResponse, error) {
	page.DefaultPage()
	list, err := uc.saleRepo.ListByCompany(ctx, companyID, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SaleResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSaleResponse(s, nil, nil))
	}
	return &dto.SaleListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

func toSaleResponse(s *entity.Sale, lines []*entity.SaleLine, allocs []*entity.SaleLineAllocation) *dto.SaleResponse {
	resp := &dto.SaleResponse{
		ID:            s.ID,
		CompanyID:     s.CompanyID,
		CustomerID:    s.CustomerID,
		Number:        s.Number,
		Subtotal:      s.Subtotal,
		Discount:      s.Discount,
		Tax:           s.Tax,
		Total:         s.Total,
		CostTotal:     s.CostTotal,
		PaymentStatus: s.PaymentStatus,
		CreatedAt:     s.CreatedAt,
	}
	if len(lines) == 0 {
		return resp
	}
	byLine := make(map[string][]dto.AllocationResponse, len(lines))
	for _, a := range allocs {
		byLine[a.SaleLineID] = append(byLine[a.SaleLineID], dto.AllocationResponse{
			StockLotID:   a.StockLotID,
			QuantityUsed: a.QuantityUsed,
			CostPrice:    a.CostPrice,
		})
	}
	resp.Lines = make([]dto.SaleLineResponse, 0, len(lines))
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.SaleLineResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
			CostTotal:   l.CostTotal,
			Allocations: byLine[l.ID],
		})
	}
	return resp
}
