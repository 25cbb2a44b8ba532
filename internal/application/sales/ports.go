package sales

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// SaleTxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios atados a esa tx.
// Si fn retorna error se hace rollback: ningún lote queda descontado.
type SaleTxRunner interface {
	RunSale(ctx context.Context, fn func(
		lotRepo repository.StockLotRepository,
		saleRepo repository.SaleRepository,
	) error) error
}
