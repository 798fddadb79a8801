package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"github.com/swaggo/swag"

	_ "github.com/jhoicas/estoque-api/docs"
	"github.com/jhoicas/estoque-api/internal/application/inventory"
	"github.com/jhoicas/estoque-api/internal/application/report"
	"github.com/jhoicas/estoque-api/internal/application/usecase"
	"github.com/jhoicas/estoque-api/internal/domain/repository"
	ledger "github.com/jhoicas/estoque-api/internal/domain/inventory"
	"github.com/jhoicas/estoque-api/internal/infrastructure/geo"
	"github.com/jhoicas/estoque-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/estoque-api/internal/infrastructure/pdf"
	"github.com/jhoicas/estoque-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/estoque-api/internal/interfaces/http"
	"github.com/jhoicas/estoque-api/pkg/config"
	"github.com/jhoicas/estoque-api/pkg/logger"
	"github.com/jhoicas/estoque-api/pkg/metrics"
)

const swaggerFile = "./docs/swagger.json"

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Levanta el servidor HTTP",
	RunE:  runServe,
}

// stores repositorios y runner transaccional del backend elegido.
type stores struct {
	products  repository.ProductRepository
	movements repository.StockMovementRepository
	stock     repository.StockRepository
	polygons  repository.PolygonRepository
	tx        inventory.TxRunner
	db        httpRouter.Pinger
	close     func()
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, log, err := boot()
	if err != nil {
		return err
	}
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	mode, err := ledger.ParseCheckMode(cfg.Stock.CheckMode)
	if err != nil {
		return err
	}

	ctx := context.Background()
	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer st.close()

	m := metrics.New(cfg.App.Name)
	productUC := usecase.NewProductUseCase(st.products, st.movements)
	movementUC := inventory.NewStockMovementUseCase(st.tx, st.movements, st.stock, st.products, mode, log.Component("stock")).
		WithObserver(m)
	geodataUC := usecase.NewGeodataUseCase(st.polygons, geo.Codec{})
	reportUC := report.NewStockReportUseCase(st.products, st.stock, infrapdf.NewMarotoStockReport(), "Estoque")

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	if cfg.Docs.Enabled {
		mountDocs(app, cfg.App.Name, log)
	}

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:       productUC,
		StockMovementUC: movementUC,
		GeodataUC:       geodataUC,
		StockReportUC:   reportUC,
		JWTSecret:       cfg.JWT.Secret,
		ServiceName:     cfg.App.Name,
		StoreDriver:     cfg.Store.Driver,
		DB:              st.db,
		Log:             log.Component("http"),
		Metrics:         m,
	})
	if !cfg.JWT.Enabled() {
		log.Warn().Msg("JWT_SECRET vacío: escrituras sin autenticación")
	}

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log *logger.Logger) (*stores, error) {
	if cfg.Store.Driver == config.DriverMemory {
		s := memory.New()
		log.Warn().Msg("almacén en memoria: los datos se pierden al reiniciar")
		return &stores{
			products:  s.Products(),
			movements: s.Movements(),
			stock:     s.Stock(),
			polygons:  s.Polygons(),
			tx:        s,
			close:     func() {},
		}, nil
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		return nil, fmt.Errorf("conexión a PostgreSQL: %w", err)
	}
	if cfg.DB.AutoMigrate {
		if err := postgres.Migrate(ctx, pool, postgres.MigrateUp, log.Component("migrate").Zerolog()); err != nil {
			pool.Close()
			return nil, err
		}
	}
	return &stores{
		products:  postgres.NewProductRepository(pool),
		movements: postgres.NewStockMovementRepository(pool),
		stock:     postgres.NewStockRepository(pool),
		polygons:  postgres.NewPolygonRepository(pool),
		tx:        postgres.NewTxRunner(pool),
		db:        pool,
		close:     pool.Close,
	}, nil
}

// mountDocs Swagger UI en /docs (si existe el JSON generado) y el documento en /openapi.json.
func mountDocs(app *fiber.App, title string, log *logger.Logger) {
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    title,
		}))
	} else {
		log.Warn().Str("file", swaggerFile).Msg("swagger.json no encontrado, /docs deshabilitado")
	}

	app.Get("/openapi.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc()
		if err != nil {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": err.Error()})
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})
}
