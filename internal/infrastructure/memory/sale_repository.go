package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// SaleRepo implementa repository.SaleRepository en memoria.
type SaleRepo struct{ base }

var _ repository.SaleRepository = (*SaleRepo)(nil)

func (r *SaleRepo) Create(_ context.Context, s *entity.Sale) error {
	return r.read(func(st *state) error {
		if _, ok := st.sales[s.ID]; ok {
			return fmt.Errorf("venta %s: %w", s.ID, domain.ErrDuplicate)
		}
		st.sales[s.ID] = *s
		return nil
	})
}

func (r *SaleRepo) CreateLine(_ context.Context, l *entity.SaleLine) error {
	return r.read(func(st *state) error {
		if _, ok := st.sales[l.SaleID]; !ok {
			return fmt.Errorf("venta %s: %w", l.SaleID, domain.ErrNotFound)
		}
		st.saleLines[l.ID] = *l
		st.mark(l.ID)
		return nil
	})
}

func (r *SaleRepo) CreateAllocation(_ context.Context, a *entity.SaleLineAllocation) error {
	return r.read(func(st *state) error {
		if _, ok := st.saleLines[a.SaleLineID]; !ok {
			return fmt.Errorf("línea %s: %w", a.SaleLineID, domain.ErrNotFound)
		}
		if _, ok := st.lots[a.StockLotID]; !ok {
			return fmt.Errorf("lote %s: %w", a.StockLotID, domain.ErrNotFound)
		}
		if a.QuantityUsed <= 0 {
			return domain.ErrInvalidInput
		}
		st.allocations[a.ID] = *a
		st.mark(a.ID)
		return nil
	})
}

func (r *SaleRepo) GetByID(_ context.Context, id string) (*entity.Sale, error) {
	var out *entity.Sale
	err := r.read(func(st *state) error {
		if s, ok := st.sales[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SaleRepo) GetLines(_ context.Context, saleID string) ([]*entity.SaleLine, error) {
	var out []*entity.SaleLine
	seq := map[string]int64{}
	err := r.read(func(st *state) error {
		for _, l := range st.saleLines {
			if l.SaleID == saleID {
				out = append(out, &l)
				seq[l.ID] = st.seq[l.ID]
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] < seq[out[j].ID] })
	return out, err
}

// GetAllocations devuelve las asignaciones en el orden en que se consumieron los lotes.
func (r *SaleRepo) GetAllocations(_ context.Context, saleID string) ([]*entity.SaleLineAllocation, error) {
	var out []*entity.SaleLineAllocation
	seq := map[string]int64{}
	err := r.read(func(st *state) error {
		for _, a := range st.allocations {
			line, ok := st.saleLines[a.SaleLineID]
			if !ok || line.SaleID != saleID {
				continue
			}
			out = append(out, &a)
			seq[a.ID] = st.seq[a.ID]
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return seq[out[i].ID] < seq[out[j].ID] })
	return out, err
}

func (r *SaleRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Sale, error) {
	var out []*entity.Sale
	err := r.read(func(st *state) error {
		for _, s := range st.sales {
			if s.CompanyID == companyID {
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), err
}
