package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/auth"
	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/application/picking"
	"github.com/jhoicas/picking-api/internal/domain/repository"
)

// AdminHandler administración: usuarios y reparto masivo de pedidos.
// Todas las rutas van detrás de RequireRole(admin).
type AdminHandler struct {
	authUC   *auth.AuthUseCase
	assigner *picking.Assigner
}

// NewAdminHandler construye el handler de administración.
func NewAdminHandler(authUC *auth.AuthUseCase, assigner *picking.Assigner) *AdminHandler {
	return &AdminHandler{authUC: authUC, assigner: assigner}
}

// CreateUser da de alta un usuario con su rol.
func (h *AdminHandler) CreateUser(c *fiber.Ctx) error {
	var in dto.CreateUserRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	out, err := h.authUC.CreateUser(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListUsers devuelve todos los usuarios.
func (h *AdminHandler) ListUsers(c *fiber.Ctx) error {
	out, err := h.authUC.ListUsers(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ResetPassword restablece la contraseña de un usuario.
func (h *AdminHandler) ResetPassword(c *fiber.Ctx) error {
	username := c.Params("username")
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := h.authUC.ResetPassword(c.Context(), username, in.Password); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"ok": true})
}

// BulkAssign reparte los pedidos entre los pickers indicados.
func (h *AdminHandler) BulkAssign(c *fiber.Ctx) error {
	var in dto.BulkAssignRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mode := repository.AssignMode(in.Mode)
	if in.Mode == "" {
		mode = repository.AssignUnassignedOnly
	}
	out, err := h.assigner.BulkAssign(c.Context(), in.Pickers, mode)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
