package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, company_id, customer_id, number, subtotal, discount, tax, total, cost_total, payment_status, created_by, created_at`

// SaleRepo ventas, líneas y asignaciones de lotes (usable con pool o tx).
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador.
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta la cabecera de la venta.
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `INSERT INTO sales (` + saleColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.CompanyID, s.CustomerID, s.Number, s.Subtotal, s.Discount, s.Tax, s.Total,
		s.CostTotal, s.PaymentStatus, s.CreatedBy, s.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert sale: %w", err)
	}
	return nil
}

// CreateLine inserta una línea de venta.
func (r *SaleRepo) CreateLine(ctx context.Context, l *entity.SaleLine) error {
	query := `
		INSERT INTO sale_lines (id, sale_id, product_id, quantity, unit_price, subtotal, cost_total)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(ctx, query, l.ID, l.SaleID, l.ProductID, l.Quantity, l.UnitPrice, l.Subtotal, l.CostTotal)
	if err != nil {
		return fmt.Errorf("insert sale line: %w", err)
	}
	return nil
}

// CreateAllocation registra qué lote y cuánto consumió una línea.
func (r *SaleRepo) CreateAllocation(ctx context.Context, a *entity.SaleLineAllocation) error {
	query := `
		INSERT INTO sale_line_allocations (id, sale_line_id, stock_lot_id, quantity_used, cost_price)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(ctx, query, a.ID, a.SaleLineID, a.StockLotID, a.QuantityUsed, a.CostPrice)
	if err != nil {
		return fmt.Errorf("insert sale allocation: %w", err)
	}
	return nil
}

// GetByID obtiene la cabecera de una venta.
func (r *SaleRepo) GetByID(ctx context.Context, id string) (*entity.Sale, error) {
	s, err := scanSale(r.q.QueryRow(ctx, `SELECT `+saleColumns+` FROM sales WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sale: %w", err)
	}
	return s, nil
}

// GetLines líneas de la venta en el orden en que se registraron.
func (r *SaleRepo) GetLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error) {
	query := `
		SELECT id, sale_id, product_id, quantity, unit_price, subtotal, cost_total
		FROM sale_lines WHERE sale_id = $1 ORDER BY seq`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale lines: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLine
	for rows.Next() {
		var l entity.SaleLine
		if err := rows.Scan(&l.ID, &l.SaleID, &l.ProductID, &l.Quantity, &l.UnitPrice, &l.Subtotal, &l.CostTotal); err != nil {
			return nil, fmt.Errorf("scan sale line: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// GetAllocations asignaciones de todas las líneas de la venta, en orden de consumo.
func (r *SaleRepo) GetAllocations(ctx context.Context, saleID string) ([]*entity.SaleLineAllocation, error) {
	query := `
		SELECT a.id, a.sale_line_id, a.stock_lot_id, a.quantity_used, a.cost_price
		FROM sale_line_allocations a
		JOIN sale_lines l ON l.id = a.sale_line_id
		WHERE l.sale_id = $1
		ORDER BY a.seq`
	rows, err := r.q.Query(ctx, query, saleID)
	if err != nil {
		return nil, fmt.Errorf("get sale allocations: %w", err)
	}
	defer rows.Close()
	var list []*entity.SaleLineAllocation
	for rows.Next() {
		var a entity.SaleLineAllocation
		if err := rows.Scan(&a.ID, &a.SaleLineID, &a.StockLotID, &a.QuantityUsed, &a.CostPrice); err != nil {
			return nil, fmt.Errorf("scan sale allocation: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// ListByCompany ventas de la empresa, más recientes primero.
func (r *SaleRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	query := `SELECT ` + saleColumns + ` FROM sales WHERE company_id = $1 ORDER BY created_at DESC, id LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(ctx, query, companyID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list sales: %w", err)
	}
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		s, err := scanSale(rows)
		if err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

func scanSale(row pgx.Row) (*entity.Sale, error) {
	var s entity.Sale
	err := row.Scan(&s.ID, &s.CompanyID, &s.CustomerID, &s.Number, &s.Subtotal, &s.Discount, &s.Tax,
		&s.Total, &s.CostTotal, &s.PaymentStatus, &s.CreatedBy, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
