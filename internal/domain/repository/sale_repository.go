package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para ventas, líneas y asignaciones.
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	CreateLine(ctx context.Context, line *entity.SaleLine) error
	CreateAllocation(ctx context.Context, alloc *entity.SaleLineAllocation) error
	GetByID(ctx context.Context, id string) (*entity.Sale, error)
	GetLines(ctx context.Context, saleID string) ([]*entity.SaleLine, error)
	GetAllocations(ctx context.Context, saleID string) ([]*entity.SaleLineAllocation, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Sale, error)
}
