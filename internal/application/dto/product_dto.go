package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
type CreateProductRequest struct {
	SKU         string          `json:"sku" validate:"required,min=1,max=100"`
	Name        string          `json:"name" validate:"required,min=1,max=200"`
	UnitMeasure string          `json:"unit_measure" validate:"omitempty,max=20"`
	Price       decimal.Decimal `json:"price" validate:"gte=0"`
}

// UpdateProductRequest entrada para actualizar un producto (el stock se maneja vía lotes).
type UpdateProductRequest struct {
	Name        *string          `json:"name" validate:"omitempty,min=1,max=200"`
	UnitMeasure *string          `json:"unit_measure" validate:"omitempty,max=20"`
	Price       *decimal.Decimal `json:"price" validate:"omitempty,gte=0"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID          string          `json:"id"`
	CompanyID   string          `json:"company_id"`
	SKU         string          `json:"sku"`
	Name        string          `json:"name"`
	UnitMeasure string          `json:"unit_measure"`
	Price       decimal.Decimal `json:"price"`
	Archived    bool            `json:"archived"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// ProductListResponse lista paginada de productos.
type ProductListResponse struct {
	Items []ProductResponse `json:"items"`
	Page  PageResponse      `json:"page"`
}

// DeleteProductResponse indica si el producto se borró o quedó archivado.
type DeleteProductResponse struct {
	ID       string `json:"id"`
	Archived bool   `json:"archived"`
	Deleted  bool   `json:"deleted"`
}
