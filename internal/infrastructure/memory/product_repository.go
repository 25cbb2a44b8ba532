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

// ProductRepo implementa repository.ProductRepository en memoria.
type ProductRepo struct{ base }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func (r *ProductRepo) Create(_ context.Context, p *entity.Product) error {
	return r.read(func(st *state) error {
		for _, other := range st.products {
			if other.CompanyID == p.CompanyID && other.SKU == p.SKU {
				return fmt.Errorf("sku %s: %w", p.SKU, domain.ErrDuplicate)
			}
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.read(func(st *state) error {
		if p, ok := st.products[id]; ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) GetByCompanyAndSKU(_ context.Context, companyID, sku string) (*entity.Product, error) {
	var out *entity.Product
	err := r.read(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID && p.SKU == sku {
				out = &p
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *ProductRepo) Update(_ context.Context, p *entity.Product) error {
	return r.read(func(st *state) error {
		if _, ok := st.products[p.ID]; !ok {
			return domain.ErrNotFound
		}
		st.products[p.ID] = *p
		return nil
	})
}

func (r *ProductRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.read(func(st *state) error {
		for _, p := range st.products {
			if p.CompanyID == companyID {
				out = append(out, &p)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return page(out, limit, offset), err
}

func (r *ProductRepo) HasHistory(_ context.Context, id string) (bool, error) {
	found := false
	err := r.read(func(st *state) error {
		for _, l := range st.lots {
			if l.ProductID == id {
				found = true
				return nil
			}
		}
		for _, l := range st.saleLines {
			if l.ProductID == id {
				found = true
				return nil
			}
		}
		for _, l := range st.purchaseLines {
			if l.ProductID == id {
				found = true
				return nil
			}
		}
		return nil
	})
	return found, err
}

func (r *ProductRepo) Archive(_ context.Context, id string) error {
	return r.read(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		now := time.Now()
		p.ArchivedAt = &now
		p.UpdatedAt = now
		st.products[id] = p
		return nil
	})
}

func (r *ProductRepo) Delete(_ context.Context, id string) error {
	return r.read(func(st *state) error {
		if _, ok := st.products[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.products, id)
		return nil
	})
}
