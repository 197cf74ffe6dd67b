package http

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/application/picking"
)

// OrderHandler lecturas de pedidos: listado, detalle, hoja imprimible y
// tablero de avance.
type OrderHandler struct {
	uc    *picking.PickingUseCase
	sheet *picking.SheetUseCase
}

// NewOrderHandler construye el handler de lecturas.
func NewOrderHandler(uc *picking.PickingUseCase, sheet *picking.SheetUseCase) *OrderHandler {
	return &OrderHandler{uc: uc, sheet: sheet}
}

// List devuelve los pedidos visibles para el usuario; ?buscar= filtra por
// número, cliente o zona.
func (h *OrderHandler) List(c *fiber.Ctx) error {
	out, err := h.uc.ListOrders(c.Context(), viewer(c), c.Query("buscar"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Detail devuelve líneas, avance, tiempos y ETA de un pedido.
func (h *OrderHandler) Detail(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero inválido"})
	}
	out, err := h.uc.GetOrderDetail(c.Context(), viewer(c), orderID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Sheet devuelve la hoja de picking del pedido en PDF.
func (h *OrderHandler) Sheet(c *fiber.Ctx) error {
	orderID, err := orderIDParam(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "numero inválido"})
	}
	pdfBytes, err := h.sheet.OrderSheet(c.Context(), viewer(c), orderID)
	if err != nil {
		return respondError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="picking-%d.pdf"`, orderID))
	return c.Send(pdfBytes)
}

// Progress devuelve el avance por picker (solo jefe/admin).
func (h *OrderHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.GetUserProgress(c.Context(), viewer(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

func orderIDParam(c *fiber.Ctx) (int64, error) {
	return strconv.ParseInt(c.Params("numero"), 10, 64)
}
