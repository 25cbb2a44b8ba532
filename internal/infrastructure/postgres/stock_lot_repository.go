package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

const lotColumns = `id, product_id, purchase_id, purchase_line_id, initial_quantity, remaining_quantity, cost_price, created_at, updated_at`

// StockLotRepo libro de lotes sobre la tabla stock_lots (usable con pool o tx).
type StockLotRepo struct {
	q Querier
}

// NewStockLotRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewStockLotRepository(q Querier) *StockLotRepo {
	return &StockLotRepo{q: q}
}

// Create inserta un lote recién recibido.
func (r *StockLotRepo) Create(ctx context.Context, lot *entity.StockLot) error {
	query := `INSERT INTO stock_lots (` + lotColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.ProductID, lot.PurchaseID, lot.PurchaseLineID, lot.InitialQuantity,
		lot.RemainingQuantity, lot.CostPrice, lot.CreatedAt, lot.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert stock lot: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID.
func (r *StockLotRepo) GetByID(ctx context.Context, id string) (*entity.StockLot, error) {
	lot, err := scanLot(r.q.QueryRow(ctx, `SELECT `+lotColumns+` FROM stock_lots WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock lot: %w", err)
	}
	return lot, nil
}

// AvailableLots lotes con saldo en orden FIFO, sin bloqueo.
func (r *StockLotRepo) AvailableLots(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM stock_lots
		WHERE product_id = $1 AND remaining_quantity > 0
		ORDER BY created_at, id`
	return r.list(ctx, "available lots", query, productID)
}

// AvailableLotsForUpdate igual que AvailableLots pero bloquea las filas (SELECT FOR UPDATE).
// Una venta concurrente sobre el mismo producto espera hasta el Commit/Rollback.
func (r *StockLotRepo) AvailableLotsForUpdate(ctx context.Context, productID string) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM stock_lots
		WHERE product_id = $1 AND remaining_quantity > 0
		ORDER BY created_at, id
		FOR UPDATE`
	return r.list(ctx, "available lots for update", query, productID)
}

// Decrement resta amount solo si el lote lo cubre (compare-and-swap en el WHERE).
func (r *StockLotRepo) Decrement(ctx context.Context, lotID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidInput
	}
	query := `
		UPDATE stock_lots
		SET remaining_quantity = remaining_quantity - $2, updated_at = now()
		WHERE id = $1 AND remaining_quantity >= $2
		RETURNING remaining_quantity`
	var remaining int64
	err := r.q.QueryRow(ctx, query, lotID, amount).Scan(&remaining)
	if err == nil {
		return remaining, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, fmt.Errorf("decrement stock lot: %w", err)
	}

	var current int64
	err = r.q.QueryRow(ctx, `SELECT remaining_quantity FROM stock_lots WHERE id = $1`, lotID).Scan(&current)
	if err != nil {
		if isNoRows(err) {
			return 0, fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
		}
		return 0, fmt.Errorf("decrement stock lot: %w", err)
	}
	return 0, &domain.InvariantViolationError{LotID: lotID, Requested: amount, Remaining: current}
}

// ListByProduct todos los lotes del producto (incluye agotados) en orden FIFO.
func (r *StockLotRepo) ListByProduct(ctx context.Context, productID string, limit, offset int) ([]*entity.StockLot, error) {
	query := `
		SELECT ` + lotColumns + ` FROM stock_lots
		WHERE product_id = $1
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`
	return r.list(ctx, "list stock lots", query, productID, limit, offset)
}

func (r *StockLotRepo) list(ctx context.Context, op, query string, args ...any) ([]*entity.StockLot, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer rows.Close()
	var list []*entity.StockLot
	for rows.Next() {
		lot, err := scanLot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock lot: %w", err)
		}
		list = append(list, lot)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return list, nil
}

func scanLot(row pgx.Row) (*entity.StockLot, error) {
	var l entity.StockLot
	err := row.Scan(&l.ID, &l.ProductID, &l.PurchaseID, &l.PurchaseLineID, &l.InitialQuantity,
		&l.RemainingQuantity, &l.CostPrice, &l.CreatedAt, &l.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &l, nil
}
