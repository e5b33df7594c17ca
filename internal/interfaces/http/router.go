package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-sheets/internal/application/auth"
	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	InventoryUC *appinventory.InventoryUseCase
	Sessions    *appinventory.SessionRegistry
	AuthUC      *auth.AuthUseCase
	JWTSecret   string // vacío = sin autenticación
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público); solo tiene sentido con JWT_SECRET configurado
	if deps.JWTSecret != "" && deps.AuthUC != nil {
		authHandler := NewAuthHandler(deps.AuthUC)
		api.Post("/auth/login", authHandler.Login)
	}

	inv := api.Group("/inventory", AuthMiddleware(deps.JWTSecret))
	h := NewInventoryHandler(deps.InventoryUC, deps.Sessions)
	write := RequireRole(RoleAdmin, RoleEditor)

	// View Inventory
	inv.Get("/", h.List)
	inv.Get("/report.pdf", h.Report)
	inv.Post("/reload", h.Reload)

	// Add New Item
	inv.Get("/form", h.Form)
	inv.Post("/", write, h.Create)

	// Edit/Delete Item
	inv.Get("/:id", h.GetByID)
	inv.Put("/:id", write, h.Update)
	inv.Delete("/:id", write, h.Delete)
}
