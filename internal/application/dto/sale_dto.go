package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateSaleRequest body para POST /api/sales.
// Descuento, impuesto y estado de pago pasan sin intervenir en la asignación de lotes.
type CreateSaleRequest struct {
	CustomerID    *string           `json:"customer_id,omitempty" validate:"omitempty,uuid"`
	Discount      decimal.Decimal   `json:"discount" validate:"gte=0"`
	Tax           decimal.Decimal   `json:"tax" validate:"gte=0"`
	PaymentStatus string            `json:"payment_status,omitempty" validate:"omitempty,oneof=PAID PENDING"`
	Lines         []SaleLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// SaleLineRequest línea de venta. UnitPrice en cero toma el precio del producto.
type SaleLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	UnitPrice decimal.Decimal `json:"unit_price" validate:"gte=0"`
}

// AllocationResponse lote consumido por una línea.
type AllocationResponse struct {
	StockLotID   string          `json:"stock_lot_id"`
	QuantityUsed int64           `json:"quantity_used"`
	CostPrice    decimal.Decimal `json:"cost_price"`
}

// SaleLineResponse línea con sus asignaciones.
type SaleLineResponse struct {
	ID          string               `json:"id"`
	ProductID   string               `json:"product_id"`
	Quantity    int64                `json:"quantity"`
	UnitPrice   decimal.Decimal      `json:"unit_price"`
	Subtotal    decimal.Decimal      `json:"subtotal"`
	CostTotal   decimal.Decimal      `json:"cost_total"`
	Allocations []AllocationResponse `json:"allocations"`
}

// SaleResponse venta con detalle para POST/GET /api/sales.
type SaleResponse struct {
	ID            string             `json:"id"`
	CompanyID     string             `json:"company_id"`
	CustomerID    *string            `json:"customer_id,omitempty"`
	Number        string             `json:"number"`
	Subtotal      decimal.Decimal    `json:"subtotal"`
	Discount      decimal.Decimal    `json:"discount"`
	Tax           decimal.Decimal    `json:"tax"`
	Total         decimal.Decimal    `json:"total"`
	CostTotal     decimal.Decimal    `json:"cost_total"`
	PaymentStatus string             `json:"payment_status"`
	CreatedAt     time.Time          `json:"created_at"`
	Lines         []SaleLineResponse `json:"lines,omitempty"`
}

// SaleListResponse lista paginada de ventas (sin líneas).
type SaleListResponse struct {
	Items []SaleResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}
