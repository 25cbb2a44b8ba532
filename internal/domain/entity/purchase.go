package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Estados de una compra.
const (
	PurchaseStatusPending  = "PENDING"
	PurchaseStatusReceived = "RECEIVED"
)

// Purchase cabecera de una compra a proveedor.
type Purchase struct {
	ID         string
	CompanyID  string
	SupplierID *string
	Reference  string
	Status     string
	ReceivedAt *time.Time
	CreatedBy  string
	CreatedAt  time.Time
}

// PurchaseLine línea de compra; al recibirse genera exactamente un StockLot.
type PurchaseLine struct {
	ID         string
	PurchaseID string
	ProductID  string
	Quantity   int64
	CostPrice  decimal.Decimal
}
