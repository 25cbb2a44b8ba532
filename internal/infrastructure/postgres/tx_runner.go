package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// Ensure TxRunner implements sales.SaleTxRunner and inventory.ReceivingTxRunner.
var _ sales.SaleTxRunner = (*TxRunner)(nil)
var _ inventory.ReceivingTxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL (read committed).
type TxRunner struct {
	pool        *pgxpool.Pool
	lockTimeout time.Duration
}

// NewTxRunner construye el runner con el pool. lockTimeout cero deja el valor del servidor.
func NewTxRunner(pool *pgxpool.Pool, lockTimeout time.Duration) *TxRunner {
	return &TxRunner{pool: pool, lockTimeout: lockTimeout}
}

// RunSale inicia una transacción con el libro de lotes y ventas, hace Commit o Rollback.
// Los errores de bloqueo (deadlock, lock_timeout, serialización) salen como domain.ErrConflict.
func (r *TxRunner) RunSale(ctx context.Context, fn func(
	lotRepo repository.StockLotRepository,
	saleRepo repository.SaleRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewStockLotRepository(tx), NewSaleRepository(tx))
	})
}

// RunReceiving inicia una transacción con compras y lotes (recepción de mercancía).
func (r *TxRunner) RunReceiving(ctx context.Context, fn func(
	purchaseRepo repository.PurchaseRepository,
	lotRepo repository.StockLotRepository,
) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(NewPurchaseRepository(tx), NewStockLotRepository(tx))
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if r.lockTimeout > 0 {
		// SET LOCAL no acepta parámetros; set_config(..., true) tiene el mismo alcance
		if _, err := tx.Exec(ctx, `SELECT set_config('lock_timeout', $1, true)`,
			fmt.Sprintf("%dms", r.lockTimeout.Milliseconds())); err != nil {
			return fmt.Errorf("set lock_timeout: %w", err)
		}
	}

	if err := fn(tx); err != nil {
		return mapTxError(err)
	}
	if err := tx.Commit(ctx); err != nil {
		return mapTxError(fmt.Errorf("commit transaction: %w", err))
	}
	return nil
}
