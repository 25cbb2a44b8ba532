package cache

import (
	"encoding/json"

	"github.com/jhoicas/Inventario-pos/internal/domain/entity"
	"github.com/shopspring/decimal"
)

func decode(raw []byte) (*entity.Product, error) {
	var e productEntry
	if err := json.Unmarshal(raw, &e); err != nil {
		return nil, err
	}
	price, err := decimal.NewFromString(e.Price)
	if err != nil {
		return nil, err
	}
	return &entity.Product{
		ID:          e.ID,
		CompanyID:   e.CompanyID,
		SKU:         e.SKU,
		Name:        e.Name,
		UnitMeasure: e.UnitMeasure,
		Price:       price,
		ArchivedAt:  e.ArchivedAt,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}
