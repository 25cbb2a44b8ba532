package memory

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// StockLotRepo implementa repository.StockLotRepository en memoria.
// Dentro de RunSale el lock del store cumple el papel de SELECT FOR UPDATE.
type StockLotRepo struct{ base }

var _ repository.StockLotRepository = (*StockLotRepo)(nil)

func (r *StockLotRepo) Create(_ context.Context, lot *entity.StockLot) error {
	if lot.RemainingQuantity < 0 || lot.RemainingQuantity > lot.InitialQuantity {
		return domain.ErrInvalidInput
	}
	return r.read(func(st *state) error {
		if _, ok := st.lots[lot.ID]; ok {
			return fmt.Errorf("lote %s: %w", lot.ID, domain.ErrDuplicate)
		}
		st.lots[lot.ID] = *lot
		return nil
	})
}

func (r *StockLotRepo) GetByID(_ context.Context, id string) (*entity.StockLot, error) {
	var out *entity.StockLot
	err := r.read(func(st *state) error {
		if l, ok := st.lots[id]; ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *StockLotRepo) AvailableLots(_ context.Context, productID string) ([]*entity.StockLot, error) {
	return r.byProduct(productID, true)
}

func (r *StockLotRepo) AvailableLotsForUpdate(_ context.Context, productID string) ([]*entity.StockLot, error) {
	return r.byProduct(productID, true)
}

func (r *StockLotRepo) Decrement(_ context.Context, lotID string, amount int64) (int64, error) {
	if amount <= 0 {
		return 0, domain.ErrInvalidInput
	}
	var remaining int64
	err := r.read(func(st *state) error {
		lot, ok := st.lots[lotID]
		if !ok {
			return fmt.Errorf("lote %s: %w", lotID, domain.ErrNotFound)
		}
		if lot.RemainingQuantity < amount {
			return &domain.InvariantViolationError{LotID: lotID, Requested: amount, Remaining: lot.RemainingQuantity}
		}
		lot.RemainingQuantity -= amount
		lot.UpdatedAt = time.Now()
		st.lots[lotID] = lot
		remaining = lot.RemainingQuantity
		return nil
	})
	return remaining, err
}

func (r *StockLotRepo) ListByProduct(_ context.Context, productID string, limit, offset int) ([]*entity.StockLot, error) {
	out, err := r.byProduct(productID, false)
	if err != nil {
		return nil, err
	}
	return page(out, limit, offset), nil
}

func (r *StockLotRepo) byProduct(productID string, onlyAvailable bool) ([]*entity.StockLot, error) {
	var out []*entity.StockLot
	err := r.read(func(st *state) error {
		for _, l := range st.lots {
			if l.ProductID != productID || (onlyAvailable && l.RemainingQuantity <= 0) {
				continue
			}
			out = append(out, &l)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, err
}
