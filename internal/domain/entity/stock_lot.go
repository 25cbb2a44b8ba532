package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// StockLot es la cantidad restante de un producto recibida en una línea de compra.
// Se crea al recibir la compra (un lote por línea, sin fusionar), solo se descuenta
// por ventas y nunca se elimina, aunque quede en cero.
type StockLot struct {
	ID                string
	ProductID         string
	PurchaseID        string
	PurchaseLineID    string
	InitialQuantity   int64
	RemainingQuantity int64 // siempre >= 0
	CostPrice         decimal.Decimal // costo unitario de la línea de compra que originó el lote
	CreatedAt         time.Time
	UpdatedAt         time.Time
}
