package inventory

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// ReceivingTxRunner ejecuta la recepción de una compra dentro de una transacción:
// bloqueo de la cabecera, creación de lotes y cambio de estado se confirman juntos.
type ReceivingTxRunner interface {
	RunReceiving(ctx context.Context, fn func(
		purchaseRepo repository.PurchaseRepository,
		lotRepo repository.StockLotRepository,
	) error) error
}
