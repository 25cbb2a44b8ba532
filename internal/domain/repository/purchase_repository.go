package repository

import (
	"context"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
)

// PurchaseRepository define el puerto de persistencia para compras.
type PurchaseRepository interface {
	Create(ctx context.Context, purchase *entity.Purchase) error
	CreateLine(ctx context.Context, line *entity.PurchaseLine) error
	GetByID(ctx context.Context, id string) (*entity.Purchase, error)
	// GetForUpdate bloquea la cabecera para que dos recepciones no creen lotes duplicados.
	GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error)
	GetLines(ctx context.Context, purchaseID string) ([]*entity.PurchaseLine, error)
	MarkReceived(ctx context.Context, purchase *entity.Purchase) error
}
