package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/dto"
	"github.com/jhoicas/picking-api/internal/application/picking"
	"github.com/jhoicas/picking-api/pkg/jwt"
)

// Locals keys para los claims del token en Fiber.
const (
	LocalUserID   = "user_id"
	LocalUsername = "username"
	LocalRole     = "role"
)

// AuthMiddleware valida el Bearer Token JWT y extrae los claims a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		userID, username, role, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, userID)
		c.Locals(LocalUsername, username)
		c.Locals(LocalRole, role)
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string {
	return localString(c, LocalUserID)
}

// GetUsername devuelve el username del contexto.
func GetUsername(c *fiber.Ctx) string {
	return localString(c, LocalUsername)
}

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string {
	return localString(c, LocalRole)
}

// viewer arma el Viewer de los casos de uso desde los claims del token.
func viewer(c *fiber.Ctx) picking.Viewer {
	return picking.Viewer{Username: GetUsername(c), Role: GetRole(c)}
}

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
