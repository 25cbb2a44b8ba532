package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// StockLotRepository es el libro de lotes (ledger) por producto.
// Las lecturas de lotes disponibles devuelven solo remaining_quantity > 0,
// ordenadas por created_at y luego id (FIFO).
type StockLotRepository interface {
	Create(ctx context.Context, lot *entity.StockLot) error
	GetByID(ctx context.Context, id string) (*entity.StockLot, error)
	// AvailableLots no bloquea; el caller decide la disciplina de concurrencia.
	AvailableLots(ctx context.Context, productID string) ([]*entity.StockLot, error)
	// AvailableLotsForUpdate bloquea las filas (SELECT FOR UPDATE) hasta el fin de la tx.
	AvailableLotsForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error)
	// Decrement resta amount y devuelve la cantidad restante.
	// Si el lote tiene menos de amount retorna *domain.InvariantViolationError.
	Decrement(ctx context.Context, lotID string, amount int64) (int64, error)
	ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockLot, error)
}
