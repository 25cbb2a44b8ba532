package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/jhoicas/Inventario-pos/internal/domain"
	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/jhoicas/Inventario-pos/internal/domain/repository"
)

// CustomerRepo implementa repository.CustomerRepository en memoria.
type CustomerRepo struct{ base }

var _ repository.CustomerRepository = (*CustomerRepo)(nil)

func (r *CustomerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.read(func(st *state) error {
		for _, other := range st.customers {
			if other.CompanyID == c.CompanyID && other.TaxID == c.TaxID {
				return fmt.Errorf("cliente %s: %w", c.TaxID, domain.ErrDuplicate)
			}
		}
		st.customers[c.ID] = *c
		return nil
	})
}

func (r *CustomerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.read(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.read(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID && c.TaxID == taxID {
				out = &c
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *CustomerRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.read(func(st *state) error {
		for _, c := range st.customers {
			if c.CompanyID == companyID {
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}

// SupplierRepo implementa repository.SupplierRepository en memoria.
type SupplierRepo struct{ base }

var _ repository.SupplierRepository = (*SupplierRepo)(nil)

func (r *SupplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.read(func(st *state) error {
		for _, other := range st.suppliers {
			if other.CompanyID == s.CompanyID && other.TaxID == s.TaxID {
				return fmt.Errorf("proveedor %s: %w", s.TaxID, domain.ErrDuplicate)
			}
		}
		st.suppliers[s.ID] = *s
		return nil
	})
}

func (r *SupplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.read(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			out = &s
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) GetByCompanyAndTaxID(_ context.Context, companyID, taxID string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.read(func(st *state) error {
		for _, s := range st.suppliers {
			if s.CompanyID == companyID && s.TaxID == taxID {
				out = &s
				return nil
			}
		}
		return nil
	})
	return out, err
}

func (r *SupplierRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.read(func(st *state) error {
		for _, s := range st.suppliers {
			if s.CompanyID == companyID {
				out = append(out, &s)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return page(out, limit, offset), err
}
