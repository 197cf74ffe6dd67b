package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/auth"
	"github.com/jhoicas/picking-api/internal/application/dto"
)

// AuthHandler maneja login y autologin por URL.
type AuthHandler struct {
	uc *auth.AuthUseCase
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase) *AuthHandler {
	return &AuthHandler{uc: uc}
}

// Login valida username/password y devuelve el token de sesión junto con el
// token de autologin para armar enlaces directos.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if in.Username == "" || in.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "username y password son requeridos"})
	}
	out, err := h.uc.Login(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Autologin restaura la sesión desde el token firmado del query string
// (?token=...). Pensado para enlaces compartidos por el jefe de bodega.
func (h *AuthHandler) Autologin(c *fiber.Ctx) error {
	tok := c.Query("token")
	if tok == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "token requerido"})
	}
	out, err := h.uc.Autologin(c.Context(), tok)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
