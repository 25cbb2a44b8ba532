package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/sales"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// SaleHandler ventas POS (protegido).
type SaleHandler struct {
	uc   *sales.CreateSaleUseCase
	errs errorResponder
}

// NewSaleHandler construye el handler.
func NewSaleHandler(uc *sales.CreateSaleUseCase, log *logger.Logger) *SaleHandler {
	return &SaleHandler{uc: uc, errs: newErrorResponder(log)}
}

// Create godoc
// @Summary      Registrar venta (descuenta lotes FIFO)
// @Description  Toda la venta se confirma o no se aplica nada. Si falta stock responde 400 INSUFFICIENT_STOCK con el faltante por producto.
// @Tags         sales
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSaleRequest  true  "Venta"
// @Success      201   {object}  dto.SaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/sales [post]
func (h *SaleHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateSaleRequest
	if err := bind(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.CreateSale(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Detalle de venta con lotes consumidos
// @Tags         sales
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la venta"
// @Success      200  {object}  dto.SaleResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/sales/{id} [get]
func (h *SaleHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.GetSale(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// List GET /api/sales?limit=20&offset=0
func (h *SaleHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListSales(c.Context(), GetCompanyID(c), pageFromQuery(c))
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
