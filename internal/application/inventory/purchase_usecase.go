package inventory

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// PurchaseUseCase registra compras y las recibe creando un lote por línea.
type PurchaseUseCase struct {
	txRunner     ReceivingTxRunner
	productRepo  repository.ProductRepository
	supplierRepo repository.SupplierRepository
	purchaseRepo repository.PurchaseRepository
	lotRepo      repository.StockLotRepository
	notifier     ports.StockNotifier
}

// NewPurchaseUseCase construye el caso de uso. notifier puede ser nil.
func NewPurchaseUseCase(
	txRunner ReceivingTxRunner,
	productRepo repository.ProductRepository,
	supplierRepo repository.SupplierRepository,
	purchaseRepo repository.PurchaseRepository,
	lotRepo repository.StockLotRepository,
	notifier ports.StockNotifier,
) *PurchaseUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &PurchaseUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		supplierRepo: supplierRepo,
		purchaseRepo: purchaseRepo,
		lotRepo:      lotRepo,
		notifier:     notifier,
	}
}

// CreatePurchase registra una compra en estado PENDING. No mueve stock.
func (uc *PurchaseUseCase) CreatePurchase(ctx context.Context, companyID, userID string, in dto.CreatePurchaseRequest) (*dto.PurchaseResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	var supplierID *string
	if in.SupplierID != nil && strings.TrimSpace(*in.SupplierID) != "" {
		supplier, err := uc.supplierRepo.GetByID(ctx, *in.SupplierID)
		if err != nil {
			return nil, err
		}
		if supplier == nil {
			return nil, domain.ErrNotFound
		}
		if supplier.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		supplierID = &supplier.ID
	}

	checked := make(map[string]bool)
	for _, item := range in.Lines {
		if item.ProductID == "" || item.Quantity <= 0 || item.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		if checked[item.ProductID] {
			continue
		}
		product, err := uc.productRepo.GetByID(ctx, item.ProductID)
		if err != nil {
			return nil, err
		}
		if product == nil {
			return nil, domain.ErrNotFound
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if product.IsArchived() {
			return nil, domain.ErrProductArchived
		}
		checked[item.ProductID] = true
	}

	now := time.Now()
	purchase := &entity.Purchase{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SupplierID: supplierID,
		Reference:  strings.TrimSpace(in.Reference),
		Status:     entity.PurchaseStatusPending,
		CreatedBy:  userID,
		CreatedAt:  now,
	}
	lines := make([]*entity.PurchaseLine, 0, len(in.Lines))
	for _, item := range in.Lines {
		lines = append(lines, &entity.PurchaseLine{
			ID:         uuid.New().String(),
			PurchaseID: purchase.ID,
			ProductID:  item.ProductID,
			Quantity:   item.Quantity,
			CostPrice:  item.CostPrice,
		})
	}

	// Cabecera y líneas en la misma tx para no dejar compras sin detalle
	err := uc.txRunner.RunReceiving(ctx, func(purchaseRepo repository.PurchaseRepository, _ repository.StockLotRepository) error {
		if err := purchaseRepo.Create(ctx, purchase); err != nil {
			return err
		}
		for _, l := range lines {
			if err := purchaseRepo.CreateLine(ctx, l); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines, nil), nil
}

// ReceivePurchase bloquea la compra, crea un lote por línea (cantidad inicial = restante,
// costo de la línea) y la marca RECEIVED. Una compra ya recibida retorna domain.ErrConflict.
func (uc *PurchaseUseCase) ReceivePurchase(ctx context.Context, companyID, purchaseID string) (*dto.PurchaseResponse, error) {
	var (
		purchase *entity.Purchase
		lines    []*entity.PurchaseLine
		lots     []*entity.StockLot
	)
	err := uc.txRunner.RunReceiving(ctx, func(purchaseRepo repository.PurchaseRepository, lotRepo repository.StockLotRepository) error {
		p, err := purchaseRepo.GetForUpdate(ctx, purchaseID)
		if err != nil {
			return err
		}
		if p == nil {
			return domain.ErrNotFound
		}
		if p.CompanyID != companyID {
			return domain.ErrForbidden
		}
		if p.Status == entity.PurchaseStatusReceived {
			return domain.ErrConflict
		}
		lines, err = purchaseRepo.GetLines(ctx, purchaseID)
		if err != nil {
			return err
		}

		now := time.Now()
		lots = make([]*entity.StockLot, 0, len(lines))
		for _, line := range lines {
			lot := &entity.StockLot{
				ID:                uuid.New().String(),
				ProductID:         line.ProductID,
				PurchaseID:        p.ID,
				PurchaseLineID:    line.ID,
				InitialQuantity:   line.Quantity,
				RemainingQuantity: line.Quantity,
				CostPrice:         line.CostPrice,
				CreatedAt:         now,
				UpdatedAt:         now,
			}
			if err := lotRepo.Create(ctx, lot); err != nil {
				return err
			}
			lots = append(lots, lot)
		}

		p.Status = entity.PurchaseStatusReceived
		p.ReceivedAt = &now
		if err := purchaseRepo.MarkReceived(ctx, p); err != nil {
			return err
		}
		purchase = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.notifier.NotifyStockChanged(ctx, companyID, ports.StockReasonReceipt, productIDsOf(lines))
	return toPurchaseResponse(purchase, lines, lots), nil
}

// GetPurchase obtiene una compra con sus líneas.
func (uc *PurchaseUseCase) GetPurchase(ctx context.Context, companyID, id string) (*dto.PurchaseResponse, error) {
	purchase, err := uc.purchaseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if purchase == nil {
		return nil, domain.ErrNotFound
	}
	if purchase.CompanyID != companyID {
		return nil, domain.ErrForbidden
	}
	lines, err := uc.purchaseRepo.GetLines(ctx, id)
	if err != nil {
		return nil, err
	}
	return toPurchaseResponse(purchase, lines, nil), nil
}

func productIDsOf(lines []*entity.PurchaseLine) []string {
	seen := make(map[string]bool, len(lines))
	ids := make([]string, 0, len(lines))
	for _, l := range lines {
		if !seen[l.ProductID] {
			seen[l.ProductID] = true
			ids = append(ids, l.ProductID)
		}
	}
	sort.Strings(ids)
	return ids
}

func toPurchaseResponse(p *entity.Purchase, lines []*entity.PurchaseLine, lots []*entity.StockLot) *dto.PurchaseResponse {
	resp := &dto.PurchaseResponse{
		ID:         p.ID,
		CompanyID:  p.CompanyID,
		SupplierID: p.SupplierID,
		Reference:  p.Reference,
		Status:     p.Status,
		ReceivedAt: p.ReceivedAt,
		CreatedAt:  p.CreatedAt,
		Lines:      make([]dto.PurchaseLineResponse, 0, len(lines)),
	}
	for _, l := range lines {
		resp.Lines = append(resp.Lines, dto.PurchaseLineResponse{
			ID:        l.ID,
			ProductID: l.ProductID,
			Quantity:  l.Quantity,
			CostPrice: l.CostPrice,
		})
	}
	for _, lot := range lots {
		resp.Lots = append(resp.Lots, ToStockLotResponse(lot))
	}
	return resp
}
