package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	appanalytics "github.com/jhoicas/medsupply-api/internal/application/analytics"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC        *usecase.ProductUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	QueryUC          *inventory.QueryUseCase
	DashboardUC      *appanalytics.DashboardUseCase
	Store            Pinger
	ServiceName      string
	Log              zerolog.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", Health(deps.Store, deps.ServiceName))

	api := app.Group("/api")

	productHandler := NewProductHandler(deps.ProductUC, deps.QueryUC, deps.Log)
	api.Get("/categories", productHandler.Categories)

	products := api.Group("/products")
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Create)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)
	products.Get("/:id/movements", productHandler.Movements)

	movements := api.Group("/movements")
	inventoryHandler := NewInventoryHandler(deps.RegisterMovement, deps.QueryUC, deps.Log)
	movements.Get("/", inventoryHandler.ListMovements)
	movements.Post("/", inventoryHandler.RegisterMovement)

	dashboardHandler := NewDashboardHandler(deps.DashboardUC, deps.Log)
	api.Get("/dashboard", dashboardHandler.GetSummary)
}
