package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// InventoryHandler lecturas del libro de lotes (protegido).
type InventoryHandler struct {
	uc   *inventory.LedgerUseCase
	errs errorResponder
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *inventory.LedgerUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{uc: uc, errs: newErrorResponder(log)}
}

// Stock godoc
// @Summary      Stock disponible de un producto (suma de lotes)
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del producto"
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/products/{id}/stock [get]
func (h *InventoryHandler) Stock(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.StockSummary(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// Lots godoc
// @Summary      Lotes del producto, incluidos los agotados
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        id      path   string  true   "ID del producto"
// @Param        limit   query  int     false  "Límite"  default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200     {object}  dto.StockLotListResponse
// @Router       /api/inventory/products/{id}/lots [get]
func (h *InventoryHandler) Lots(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ListLots(c.Context(), GetCompanyID(c), id, pageFromQuery(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
