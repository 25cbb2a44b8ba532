package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// PurchaseRepo implementa repository.PurchaseRepository en memoria.
type PurchaseRepo struct{ base }

var _ repository.PurchaseRepository = (*PurchaseRepo)(nil)

func (r *PurchaseRepo) Create(_ context.Context, p *entity.Purchase) error {
	return r.read(func(st *state) error {
		if _, ok := st.purchases[p.ID]; ok {
			return fmt.Errorf("compra %s: %w", p.ID, domain.ErrDuplicate)
		}
		st.purchases[p.ID] = *p
		return nil
	})
}

func (r *PurchaseRepo) CreateLine(_ context.Context, l *entity.PurchaseLine) error {
	return r.read(func(st *state) error {
		if _, ok := st.purchases[l.PurchaseID]; !ok {
			return fmt.Errorf("compra %s: %w", l.PurchaseID, domain.ErrNotFound)
		}
		st.purchaseLines[l.ID] = *l
		st.mark(l.ID)
		return nil
	})
}

func (r *PurchaseRepo) GetByID(_ context.Context, id string) (*entity.Purchase, error) {
	var out *entity.Purchase
	err := r.read(func(st *state) error {
		if p, ok := st.purchases[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *PurchaseRepo) GetForUpdate(ctx context.Context, id string) (*entity.Purchase, error) {
	return r.GetByID(ctx, id)
}

func (r *PurchaseRepo) GetLines(_ context.Context, purchaseID string) ([]*entity.PurchaseLine, error) {
	var out []*entity.PurchaseLine
	seq := map[string]int64{}
	err := r.read(func(st *state) error {
		for _, l := range st.purchaseLines {
			if l.PurchaseID == purchaseID {
				out = append(out, &l)
				seq[l.ID] = st.seq[l.ID]
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] < seq[out[j].ID] })
	return out, err
}

func (r *PurchaseRepo) MarkReceived(_ context.Context, p *entity.Purchase) error {
	return r.read(func(st *state) error {
		cur, ok := st.purchases[p.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = entity.PurchaseStatusReceived
		cur.ReceivedAt = p.ReceivedAt
		st.purchases[p.ID] = cur
		return nil
	})
}
