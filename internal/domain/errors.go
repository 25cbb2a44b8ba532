package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrInsufficientStock  = errors.New("stock insuficiente")
	ErrInvariantViolation = errors.New("violación de invariante de inventario")
	ErrProductArchived    = errors.New("producto archivado")
)

// Shortage describe un producto que no alcanza a cubrir lo solicitado.
type Shortage struct {
	ProductID string `json:"product_id"`
	Requested int64  `json:"requested"`
	Available int64  `json:"available"`
}

// Missing cantidad que falta para cubrir la solicitud.
func (s Shortage) Missing() int64 {
	return s.Requested - s.Available
}

// InsufficientStockError error recuperable: la venta pide más de lo disponible.
// errors.Is(err, ErrInsufficientStock) es verdadero.
type InsufficientStockError struct {
	Shortages []Shortage
}

// NewInsufficientStock construye el error para un solo producto.
func NewInsufficientStock(productID string, requested, available int64) *InsufficientStockError {
	return &InsufficientStockError{Shortages: []Shortage{{ProductID: productID, Requested: requested, Available: available}}}
}

func (e *InsufficientStockError) Error() string {
	parts := make([]string, 0, len(e.Shortages))
	for _, s := range e.Shortages {
		parts = append(parts, fmt.Sprintf("producto %s: solicitado %d, disponible %d", s.ProductID, s.Requested, s.Available))
	}
	return "stock insuficiente: " + strings.Join(parts, "; ")
}

func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}

// InvariantViolationError se intentó dejar un lote por debajo de cero.
// Indica lectura obsoleta o un bug de concurrencia; nunca debe recuperarse.
type InvariantViolationError struct {
	LotID     string
	Requested int64
	Remaining int64
}

func (e *InvariantViolationError) Error() string {
	return fmt.Sprintf("lote %s: se intentó descontar %d con %d restantes", e.LotID, e.Requested, e.Remaining)
}

func (e *InvariantViolationError) Is(target error) bool {
	return target == ErrInvariantViolation
}
