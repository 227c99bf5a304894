package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/swaggo/swag"

	"github.com/jhoicas/Bodegas-api/docs"
	"github.com/jhoicas/Bodegas-api/internal/application/engine"
	"github.com/jhoicas/Bodegas-api/internal/application/txn"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Bodegas-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Bodegas-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Bodegas-api/internal/interfaces/http"
	"github.com/jhoicas/Bodegas-api/pkg/config"
	"github.com/jhoicas/Bodegas-api/pkg/logger"
)

const swaggerFile = "./docs/swagger.json"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.Store.Driver).
		Msg("iniciando aplicación")

	ctx := context.Background()
	var runner txn.Runner
	switch cfg.Store.Driver {
	case config.DriverMemory:
		var store *memory.Store
		if cfg.Store.Fixture != "" {
			store, err = memory.LoadFixtureFile(cfg.Store.Fixture, memory.WithLockTimeout(cfg.Engine.LockTimeout))
		} else {
			store, err = memory.LoadDemo(memory.WithLockTimeout(cfg.Engine.LockTimeout))
		}
		if err != nil {
			log.Fatal().Err(err).Msg("cargar datos en memoria")
		}
		runner = store
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB, cfg.App.Name)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		runner = postgres.NewTxRunner(pool, cfg.Engine.LockTimeout)
	}

	runner = txn.NewRetrying(runner, txn.RetryPolicy{
		MaxRetries: cfg.Engine.MaxRetries,
		Backoff:    cfg.Engine.RetryBackoff,
	}, log.Component("txn"))
	e := engine.New(runner, nil, log.Zerolog())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestLogger(log.Component("http")))

	// Swagger UI en local: http://localhost:<port>/docs
	if _, err := os.Stat(swaggerFile); err == nil {
		app.Use(swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: swaggerFile,
			Path:     "docs",
			Title:    "Bodegas API",
		}))
	}
	docs.SwaggerInfo.Host = cfg.HTTP.Addr()
	app.Get("/swagger/doc.json", func(c *fiber.Ctx) error {
		doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.SendString(doc)
	})

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "store": cfg.Store.Driver})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		WarehouseUC: e.Warehouses,
		InventoryUC: e.Inventory,
		OrderUC:     e.Orders,
		PickingPDF:  infrapdf.NewPickingListGenerator(),
		JWTSecret:   cfg.JWT.Secret,
		JWTIssuer:   cfg.JWT.Issuer,
	})

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
}
