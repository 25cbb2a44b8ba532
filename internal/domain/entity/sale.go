package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de pago de una venta.
const (
	PaymentStatusPaid    = "PAID"
	PaymentStatusPending = "PENDING"
)

// Sale cabecera de una venta (POS).
type Sale struct {
	ID            string
	CompanyID     string
	CustomerID    *string
	Number        string
	Subtotal      decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	Total         decimal.Decimal
	CostTotal     decimal.Decimal // costo FIFO de lo vendido
	PaymentStatus string
	CreatedBy     string
	CreatedAt     time.Time
}

// SaleLine línea de una venta.
type SaleLine struct {
	ID        string
	SaleID    string
	ProductID string
	Quantity  int64
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	CostTotal decimal.Decimal // suma de cantidad × costo de sus asignaciones
}

// SaleLineAllocation enlaza una línea de venta con el lote del que tomó unidades.
// La suma de QuantityUsed de una línea es igual a su Quantity. No se modifica nunca.
type SaleLineAllocation struct {
	ID           string
	SaleLineID   string
	StockLotID   string
	QuantityUsed int64
	CostPrice    decimal.Decimal
}
