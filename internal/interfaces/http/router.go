package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/picking-api/internal/application/auth"
	"github.com/jhoicas/picking-api/internal/application/picking"
	"github.com/jhoicas/picking-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC    *auth.AuthUseCase
	PickingUC *picking.PickingUseCase
	SheetUC   *picking.SheetUseCase
	Engine    *picking.Engine
	Assigner  *picking.Assigner
	JWTSecret string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Get("/autologin", authHandler.Autologin)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Pedidos (protegido; el scoping por rol lo hace el caso de uso)
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.PickingUC, deps.SheetUC)
	orders.Get("/", orderHandler.List)
	orders.Get("/:numero", orderHandler.Detail)
	orders.Get("/:numero/sheet", orderHandler.Sheet)

	// Picking (protegido)
	pickingHandler := NewPickingHandler(deps.Engine)
	orders.Put("/:numero/lines/:codigo/picking", pickingHandler.SetPicked)
	orders.Post("/:numero/confirm", pickingHandler.Confirm)

	// Tablero de avance (jefe/admin)
	protected.Get("/progress",
		RequireRole(entity.RoleJefe, entity.RoleAdmin),
		orderHandler.Progress,
	)

	// Administración (solo admin)
	admin := protected.Group("/admin", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.AuthUC, deps.Assigner)
	admin.Post("/users", adminHandler.CreateUser)
	admin.Get("/users", adminHandler.ListUsers)
	admin.Put("/users/:username/password", adminHandler.ResetPassword)
	admin.Post("/assign", adminHandler.BulkAssign)
}
