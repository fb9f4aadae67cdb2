package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jhoicas/Avicola-api/internal/application/alerts"
	"github.com/jhoicas/Avicola-api/internal/application/inventory"
	"github.com/jhoicas/Avicola-api/internal/application/notification"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ItemUC           *inventory.ItemUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	NotificationUC   *notification.UseCase
	GenerateAlerts   *alerts.GenerateAlertsUseCase
	JWTSecret        string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	// Métricas Prometheus (sin auth, se expone solo en la red interna)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Inventory: ítems y movimientos del ledger (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.ItemUC, deps.RegisterMovement)
	invGroup.Post("/items", inventoryHandler.CreateItem)
	invGroup.Get("/items", inventoryHandler.ListItems)
	invGroup.Get("/items/:id", inventoryHandler.GetItem)
	invGroup.Put("/items/:id", inventoryHandler.UpdateItem)
	invGroup.Delete("/items/:id", inventoryHandler.DeleteItem)
	invGroup.Post("/movements", inventoryHandler.RegisterMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)

	// Notifications y alertas (protegido)
	notifHandler := NewNotificationHandler(deps.NotificationUC, deps.GenerateAlerts)
	notifs := protected.Group("/notifications")
	notifs.Get("/", notifHandler.List)
	notifs.Get("/unread-count", notifHandler.UnreadCount)
	notifs.Patch("/read-all", notifHandler.MarkAllRead)
	notifs.Patch("/:id/read", notifHandler.MarkRead)
	notifs.Delete("/:id", notifHandler.Delete)

	alertsGroup := protected.Group("/alerts")
	alertsGroup.Post("/generate", notifHandler.GenerateAlerts)
}
