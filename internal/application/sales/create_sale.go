package sales

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/ports"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/inventory"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
	"github.com/shopspring/decimal"
)

// CreateSaleUseCase registra una venta y descuenta los lotes FIFO en una sola transacción.
type CreateSaleUseCase struct {
	txRunner     SaleTxRunner
	productRepo  repository.ProductRepository
	customerRepo repository.CustomerRepository
	saleRepo     repository.SaleRepository
	notifier     ports.StockNotifier
	log          *logger.Logger
}

// NewCreateSaleUseCase construye el caso de uso. notifier puede ser nil.
func NewCreateSaleUseCase(
	txRunner SaleTxRunner,
	productRepo repository.ProductRepository,
	customerRepo repository.CustomerRepository,
	saleRepo repository.SaleRepository,
	notifier ports.StockNotifier,
	log *logger.Logger,
) *CreateSaleUseCase {
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	if log == nil {
		log = logger.Nop()
	}
	return &CreateSaleUseCase{
		txRunner:     txRunner,
		productRepo:  productRepo,
		customerRepo: customerRepo,
		saleRepo:     saleRepo,
		notifier:     notifier,
		log:          log,
	}
}

// CreateSale valida la venta, bloquea los lotes candidatos, calcula el plan FIFO,
// descuenta cada lote y guarda cabecera, líneas y asignaciones.
// Si algún producto no alcanza retorna *domain.InsufficientStockError sin efectos.
func (uc *CreateSaleUseCase) CreateSale(ctx context.Context, companyID, userID string, in dto.CreateSaleRequest) (*dto.SaleResponse, error) {
	if len(in.Lines) == 0 {
		return nil, domain.ErrInvalidInput
	}
	if in.Discount.IsNegative() || in.Tax.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	status := in.PaymentStatus
	if status == "" {
		status = entity.PaymentStatusPaid
	}
	if status != entity.PaymentStatusPaid && status != entity.PaymentStatusPending {
		return nil, domain.ErrInvalidInput
	}

	// Cliente opcional; si viene debe ser de la empresa
	var customerID *string
	if in.CustomerID != nil && strings.TrimSpace(*in.CustomerID) != "" {
		customer, err := uc.customerRepo.GetByID(ctx, *in.CustomerID)
		if err != nil {
			return nil, err
		}
		if customer == nil {
			return nil, domain.ErrNotFound
		}
		if customer.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		customerID = &customer.ID
	}

	// Validar productos y precios (fuera de la tx, solo lectura)
	productsByID := make(map[string]*entity.Product)
	lines := make([]inventory.Line, 0, len(in.Lines))
	unitPrices := make([]decimal.Decimal, 0, len(in.Lines))
	subtotal := decimal.Zero
	for i := range in.Lines {
		item := in.Lines[i]
		if item.ProductID == "" || item.Quantity <= 0 || item.UnitPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product, ok := productsByID[item.ProductID]
		if !ok {
			p, err := uc.productRepo.GetByID(ctx, item.ProductID)
			if err != nil {
				return nil, err
			}
			if p == nil {
				return nil, domain.ErrNotFound
			}
			product = p
			productsByID[item.ProductID] = product
		}
		if product.CompanyID != companyID {
			return nil, domain.ErrForbidden
		}
		if product.IsArchived() {
			return nil, domain.ErrProductArchived
		}
		price := item.UnitPrice
		if price.IsZero() {
			price = product.Price
		}
		unitPrices = append(unitPrices, price)
		subtotal = subtotal.Add(price.Mul(decimal.NewFromInt(item.Quantity)))
		lines = append(lines, inventory.Line{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	total := subtotal.Sub(in.Discount).Add(in.Tax)
	if total.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	productIDs := make([]string, 0, len(productsByID))
	for id := range productsByID {
		productIDs = append(productIDs, id)
	}
	// Orden fijo de bloqueo entre transacciones concurrentes para evitar deadlocks
	sort.Strings(productIDs)

	now := time.Now()
	saleID := uuid.New().String()
	sale := &entity.Sale{
		ID:            saleID,
		CompanyID:     companyID,
		CustomerID:    customerID,
		Number:        "POS-" + strings.ToUpper(saleID[:8]),
		Subtotal:      subtotal,
		Discount:      in.Discount,
		Tax:           in.Tax,
		Total:         total,
		PaymentStatus: status,
		CreatedBy:     userID,
		CreatedAt:     now,
	}
	var saleLines []*entity.SaleLine
	var allocs []*entity.SaleLineAllocation

	err := uc.txRunner.RunSale(ctx, func(
		lotRepo repository.StockLotRepository,
		saleRepo repository.SaleRepository,
	) error {
		// 1) Bloquear y leer los lotes disponibles (mismo snapshot para verificación y recorrido)
		snap := make(inventory.Snapshot, len(productIDs))
		for _, productID := range productIDs {
			rows, err := lotRepo.AvailableLotsForUpdate(ctx, productID)
			if err != nil {
				return err
			}
			lots := make([]entity.StockLot, 0, len(rows))
			for _, l := range rows {
				lots = append(lots, *l)
			}
			snap[productID] = lots
		}

		// 2) Plan FIFO completo; si algo falta no se escribe nada
		plans, err := inventory.PlanSale(snap, lines)
		if err != nil {
			return err
		}

		// 3) Descontar lotes
		for _, plan := range plans {
			for _, a := range plan.Allocations {
				if _, err := lotRepo.Decrement(ctx, a.LotID, a.Quantity); err != nil {
					return err
				}
			}
		}

		// 4) Cabecera, líneas y asignaciones
		costTotal := decimal.Zero
		saleLines = make([]*entity.SaleLine, 0, len(plans))
		allocs = nil
		for i, plan := range plans {
			lineCost := inventory.CostOf(plan.Allocations)
			line := &entity.SaleLine{
				ID:        uuid.New().String(),
				SaleID:    saleID,
				ProductID: plan.ProductID,
				Quantity:  plan.Quantity,
				UnitPrice: unitPrices[i],
				Subtotal:  unitPrices[i].Mul(decimal.NewFromInt(plan.Quantity)),
				CostTotal: lineCost,
			}
			saleLines = append(saleLines, line)
			costTotal = costTotal.Add(lineCost)
			for _, a := range plan.Allocations {
				allocs = append(allocs, &entity.SaleLineAllocation{
					ID:           uuid.New().String(),
					SaleLineID:   line.ID,
					StockLotID:   a.LotID,
					QuantityUsed: a.Quantity,
					CostPrice:    a.CostPrice,
				})
			}
		}
		sale.CostTotal = costTotal

		if err := saleRepo.Create(ctx, sale); err != nil {
			return err
		}
		for _, line := range saleLines {
			if err := saleRepo.CreateLine(ctx, line); err != nil {
				return err
			}
		}
		for _, a := range allocs {
			if err := saleRepo.CreateAllocation(ctx, a); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		var iv *domain.InvariantViolationError
		if errors.As(err, &iv) {
			uc.log.Error().Err(err).
				Str("sale_id", saleID).
				Str("lot_id", iv.LotID).
				Int64("requested", iv.Requested).
				Int64("remaining", iv.Remaining).
				Msg("lote por debajo de cero: transacción abortada")
		}
		return nil, err
	}

	uc.notifier.NotifyStockChanged(ctx, companyID, ports.StockReasonSale, productIDs)
	return toSaleResponse(sale, saleLines, allocs), nil
}
