package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Bodegas-api/internal/application/inventory"
	"github.com/jhoicas/Bodegas-api/internal/application/ordering"
	"github.com/jhoicas/Bodegas-api/internal/application/usecase"
	"github.com/jhoicas/Bodegas-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	WarehouseUC *usecase.WarehouseUseCase
	InventoryUC *inventory.UseCase
	OrderUC     *ordering.UseCase
	PickingPDF  PickingListRenderer
	JWTSecret   string
	JWTIssuer   string
}

// Router registra las rutas de la API. La autorización fina (rol + alcance) la hacen los casos de uso;
// RequireRole solo descarta tokens sin rol reconocido.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api",
		AuthMiddleware(deps.JWTSecret, deps.JWTIssuer),
		RequireRole(entity.RoleManager, entity.RoleSupervisor, entity.RoleVendor, entity.RoleAdmin),
	)

	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses := api.Group("/warehouses")
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Post("/:id/racks", warehouseHandler.CreateRack)
	api.Get("/thrown-items", RequireRole(entity.RoleManager), warehouseHandler.ThrownSummary)

	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	api.Get("/racks/:id", inventoryHandler.GetRack)
	inv := api.Group("/inventory")
	inv.Post("/", inventoryHandler.Place)
	inv.Post("/remove", inventoryHandler.Remove)

	orderHandler := NewOrderHandler(deps.OrderUC, deps.PickingPDF)
	orders := api.Group("/orders")
	orders.Post("/", orderHandler.Create)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Put("/:id", orderHandler.Update)
	orders.Post("/:id/cancel", orderHandler.Cancel)
	orders.Post("/:id/confirm", orderHandler.Confirm)
	orders.Post("/:id/send", orderHandler.Send)
	orders.Post("/:id/deliver", orderHandler.Deliver)
	orders.Post("/:id/lost-items", orderHandler.ReportLost)
	orders.Post("/:id/receive", orderHandler.Receive)
	orders.Get("/:id/send-plan", orderHandler.SendPlan)
	orders.Get("/:id/receive-plan", orderHandler.ReceivePlan)
	orders.Get("/:id/picking-list", orderHandler.PickingList)
}
