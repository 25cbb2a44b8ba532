package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreatePurchaseRequest body para POST /api/purchases.
type CreatePurchaseRequest struct {
	SupplierID *string               `json:"supplier_id,omitempty" validate:"omitempty,uuid"`
	Reference  string                `json:"reference" validate:"max=100"`
	Lines      []PurchaseLineRequest `json:"lines" validate:"required,min=1,dive"`
}

// PurchaseLineRequest línea de compra; al recibirse genera un lote con este costo.
type PurchaseLineRequest struct {
	ProductID string          `json:"product_id" validate:"required,uuid"`
	Quantity  int64           `json:"quantity" validate:"gt=0"`
	CostPrice decimal.Decimal `json:"cost_price" validate:"gte=0"`
}

// PurchaseLineResponse línea de compra en respuestas.
type PurchaseLineResponse struct {
	ID        string          `json:"id"`
	ProductID string          `json:"product_id"`
	Quantity  int64           `json:"quantity"`
	CostPrice decimal.Decimal `json:"cost_price"`
}

// PurchaseResponse compra con sus líneas y, si fue recibida, los lotes creados.
type PurchaseResponse struct {
	ID         string                 `json:"id"`
	CompanyID  string                 `json:"company_id"`
	SupplierID *string                `json:"supplier_id,omitempty"`
	Reference  string                 `json:"reference"`
	Status     string                 `json:"status"`
	ReceivedAt *time.Time             `json:"received_at,omitempty"`
	CreatedAt  time.Time              `json:"created_at"`
	Lines      []PurchaseLineResponse `json:"lines"`
	Lots       []StockLotResponse     `json:"lots,omitempty"`
}
