package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/report"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/pkg/logger"
	"github.com/jhoicas/estoque-api/pkg/metrics"
)

// RouterDeps dependencias para el router. Log, Metrics y DB son opcionales.
type RouterDeps struct {
	ProductUC       *usecase.ProductUseCase
	StockMovementUC *inventory.StockMovementUseCase
	GeodataUC       *usecase.GeodataUseCase
	StockReportUC   *report.StockReportUseCase
	JWTSecret       string // vacío = escrituras sin autenticación
	ServiceName     string
	StoreDriver     string
	DB              Pinger
	Log             *logger.Logger
	Metrics         *metrics.Metrics
}

// Router registra middlewares y rutas de la API. Las lecturas son públicas; las escrituras
// pasan por writeGuard.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Log != nil {
		app.Use(RequestLogger(deps.Log))
	}
	if deps.Metrics != nil {
		app.Use(deps.Metrics.Middleware())
		app.Get("/metrics", deps.Metrics.Handler())
	}
	app.Get("/health", Health(deps.ServiceName, deps.StoreDriver, deps.DB))

	val := NewValidator()
	guard := writeGuard(deps.JWTSecret)
	write := func(h fiber.Handler) []fiber.Handler {
		return append(append([]fiber.Handler{}, guard...), h)
	}

	// Products
	products := app.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC, deps.StockMovementUC, val)
	products.Get("/", productHandler.List)
	products.Post("/", write(productHandler.Create)...)
	products.Get("/:id", productHandler.GetByID)
	products.Get("/:id/stock", productHandler.Stock)
	products.Put("/:id", write(productHandler.Update)...)
	products.Delete("/:id", write(productHandler.Delete)...)

	// Stock movements
	movements := app.Group("/stock-movements")
	movementHandler := NewStockMovementHandler(deps.StockMovementUC, val)
	movements.Get("/", movementHandler.List)
	movements.Post("/", write(movementHandler.Create)...)
	movements.Get("/:id", movementHandler.GetByID)
	movements.Put("/:id", write(movementHandler.Update)...)
	movements.Delete("/:id", write(movementHandler.Delete)...)

	// Geodata
	geodata := app.Group("/geodata")
	geodataHandler := NewGeodataHandler(deps.GeodataUC, val)
	geodata.Get("/", geodataHandler.List)
	geodata.Post("/", write(geodataHandler.Create)...)
	geodata.Get("/:id", geodataHandler.GetByID)
	geodata.Get("/:id/kml", geodataHandler.KML)

	// Reports
	if deps.StockReportUC != nil {
		reportHandler := NewReportHandler(deps.StockReportUC)
		app.Get("/reports/stock.pdf", reportHandler.StockPDF)
	}
}
