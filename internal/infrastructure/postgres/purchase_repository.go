package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

const purchaseColumns = `id, company_id, supplier_id, reference, status, received_at, created_by, created_at`

// PurchaseRepo compras y sus líneas (usable con pool o tx).
type PurchaseRepo struct {
	q Querier
}

// NewPurchaseRepository construye el adaptador.
func NewPurchaseRepository(q Querier) *PurchaseRepo {
	return &PurchaseRepo{q: q}
}

// Create inserta la cabecera de la compra.
func (r *PurchaseRepo) Create(ctx context.Context, p *entity.Purchase) error {
	query := `INSERT INTO purchases (` + purchaseColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query, p.ID, p.CompanyID, p.SupplierID, p.Reference, p.Status, p.ReceivedAt, p.CreatedBy, p.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert purchase: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de compra.
func (r *PurchaseRepo) CreateLine(ctx context.Context, l *entity.PurchaseLine) error {
	query := `
		INSERT INTO purchase_lines (id, purchase_id, product_id, quantity, cost_price)
		VALUES ($1, $2, $3, $4, $5)`
	if _, err := r.q.Exec(ctx, query, l.ID, l.PurchaseID, l.ProductID, l.Quantity, l.CostPrice); err != nil {
		return fmt.Errorf("insert purchase line: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una compra.
func (r *PurchaseRepo) GetByID(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1`, id)
}

// GetForUpdate obtiene la compra y bloquea la fila (SELECT FOR UPDATE).
func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.getOne(ctx, `SELECT `+purchaseColumns+` FROM purchases WHERE id = $1 FOR UPDATE`, id)
}

// GetLines líneas de la compra en orden de registro.
func (r *PurchaseRepo) GetLines(ctx context.Context, purchaseID string) ([]*entity.PurchaseLine, error) {
	query := `
		SELECT id, purchase_id, product_id, quantity, cost_price
		FROM purchase_lines WHERE purchase_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, purchaseID)
	if err != nil {
		return nil, fmt.Errorf("get purchase lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.PurchaseLine
	for rows.Next() {
		var l entity.PurchaseLine
		if err := rows.Scan(&l.ID, &l.PurchaseID, &l.ProductID, &l.Quantity, &l.CostPrice); err != nil {
			return nil, fmt.Errorf("scan purchase line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// MarkReceived cambia el estado a RECEIVED. Solo afecta compras pendientes.
func (r *PurchaseRepo) MarkReceived(ctx context.Context, p *entity.Purchase) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE purchases SET status = $2, received_at = $3 WHERE id = $1 AND status = $4`,
		p.ID, entity.PurchaseStatusReceived, p.ReceivedAt, entity.PurchaseStatusPending)
	if err != nil {
		return fmt.Errorf("mark purchase received: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrConflict
	}
	return nil
}

func (r *PurchaseRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Purchase, error) {
	var p entity.Purchase
	err := r.q.QueryRow(ctx, query, args...).Scan(
		&p.ID, &p.CompanyID, &p.SupplierID, &p.Reference, &p.Status, &p.ReceivedAt, &p.CreatedBy, &p.CreatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase: %w", err)
	}
	return &p, nil
}
