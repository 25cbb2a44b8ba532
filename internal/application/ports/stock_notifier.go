package ports

import "context"

// Motivos de cambio de stock publicados a los clientes en tiempo real.
const (
	StockReasonSale    = "sale_created"
	StockReasonReceipt = "purchase_received"
)

// StockNotifier publica que el stock de ciertos productos de una empresa cambió.
// Se invoca después del commit; un fallo aquí no revierte la operación.
type StockNotifier interface {
	NotifyStockChanged(ctx context.Context, companyID, reason string, productIDs []string)
}

// NopNotifier descarta las notificaciones.
type NopNotifier struct{}

func (NopNotifier) NotifyStockChanged(context.Context, string, string, []string) {}
