package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/application/picking"
)

// PickingHandler escrituras del picking: marcar líneas y confirmar pedidos.
type PickingHandler struct {
	engine *picking.Engine
}

// NewPickingHandler construye el handler de escrituras.
func NewPickingHandler(engine *picking.Engine) *PickingHandler {
	return &PickingHandler{engine: engine}
}

// SetPicked fija el flag de una línea del pedido. Línea inexistente es no-op
// (el frontend puede tener la pantalla desactualizada).
func (h *PickingHandler) SetPicked(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero inválido"})
	}
	sku := c.Params("codigo")
	if sku == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "codigo requerido"})
	}
	var in dto.SetPickedRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.engine.SetLinePicked(c.Context(), viewer(c), orderID, sku, in.Picked); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// Confirm cierra el pedido completo: todas las líneas a pickeado y sello de
// confirmación.
func (h *PickingHandler) Confirm(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero inválido"})
	}
	if err := h.engine.ConfirmOrder(c.Context(), viewer(c), orderID); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}
