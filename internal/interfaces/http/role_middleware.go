package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/dto"
)

// RequireRole devuelve un middleware Fiber que permite el paso solo a los
// roles indicados. Debe usarse DESPUÉS de AuthMiddleware (necesita LocalRole).
//
// Comportamiento:
//   - 401 MISSING_ROLE → el token no trae rol (token legacy o mal emitido).
//   - 403 FORBIDDEN    → el rol no está en la lista permitida.
func RequireRole(roles ...string) fiber.Handler {
	allowed := make(map[string]bool, len(roles))
	for _, r := range roles {
		allowed[r] = true
	}
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "MISSING_ROLE",
				Message: "el token no incluye rol",
			})
		}
		if !allowed[role] {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "rol '" + role + "' sin acceso a este recurso",
			})
		}
		return c.Next()
	}
}
