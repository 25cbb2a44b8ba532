package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Inventario-pos/internal/application/dto"
	"github.com/jhoicas/Inventario-pos/internal/application/inventory"
	"github.com/jhoicas/Inventario-pos/pkg/logger"
)

// PurchaseHandler compras y recepción de mercancía (protegido).
type PurchaseHandler struct {
	uc   *inventory.PurchaseUseCase
	errs errorResponder
}

// NewPurchaseHandler construye el handler.
func NewPurchaseHandler(uc *inventory.PurchaseUseCase, log *logger.Logger) *PurchaseHandler {
	return &PurchaseHandler{uc: uc, errs: newErrorResponder(log)}
}

// Create godoc
// @Summary      Registrar compra (pendiente de recibir)
// @Tags         purchases
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreatePurchaseRequest  true  "Compra"
// @Success      201   {object}  dto.PurchaseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/purchases [post]
func (h *PurchaseHandler) Create(c *fiber.Ctx) error {
	var in dto.CreatePurchaseRequest
	if err := bind(c, &in); err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.CreatePurchase(c.Context(), GetCompanyID(c), GetUserID(c), in)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Receive godoc
// @Summary      Recibir compra: crea un lote por línea
// @Tags         purchases
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la compra"
// @Success      200  {object}  dto.PurchaseResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/purchases/{id}/receive [post]
func (h *PurchaseHandler) Receive(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.ReceivePurchase(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}

// GetByID GET /api/purchases/:id
func (h *PurchaseHandler) GetByID(c *fiber.Ctx) error {
	id, err := pathID(c)
	if err != nil {
		return h.errs.respond(c, err)
	}
	out, err := h.uc.GetPurchase(c.Context(), GetCompanyID(c), id)
	if err != nil {
		return h.errs.respond(c, err)
	}
	return c.JSON(out)
}
