package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// Una vez referenciado por lotes o ventas no se borra: se archiva (ArchivedAt).
type Product struct {
	ID          string
	CompanyID   string
	SKU         string // código único por empresa
	Name        string
	UnitMeasure string          // unidad de venta
	Price       decimal.Decimal // precio de venta
	ArchivedAt  *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// IsArchived indica si el producto fue archivado.
func (p *Product) IsArchived() bool {
	return p.ArchivedAt != nil
}
