package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLotResponse lote del libro de inventario.
type StockLotResponse struct {
	ID                string          `json:"id"`
	ProductID         string          `json:"product_id"`
	PurchaseID        string          `json:"purchase_id"`
	PurchaseLineID    string          `json:"purchase_line_id"`
	InitialQuantity   int64           `json:"initial_quantity"`
	RemainingQuantity int64           `json:"remaining_quantity"`
	CostPrice         decimal.Decimal `json:"cost_price"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

// StockSummaryResponse stock disponible de un producto (suma de lotes, calculado).
type StockSummaryResponse struct {
	ProductID   string             `json:"product_id"`
	Available   int64              `json:"available"`
	AverageCost decimal.Decimal    `json:"average_cost"` // promedio ponderado del stock restante
	Lots        []StockLotResponse `json:"lots"`         // orden FIFO
}

// StockLotListResponse lista paginada de lotes, incluidos los agotados.
type StockLotListResponse struct {
	Items []StockLotResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}
