// @title        MedSupply API
// @version      1.0
// @description  Inventario de insumos médicos: productos, movimientos de stock y alertas.
// @BasePath     /
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

	"github.com/jhoicas/medsupply-api/docs"
	appanalytics "github.com/jhoicas/medsupply-api/internal/application/analytics"
	"github.com/jhoicas/medsupply-api/internal/application/inventory"
	"github.com/jhoicas/medsupply-api/internal/application/usecase"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/kafka"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/seed"
	"github.com/jhoicas/medsupply-api/internal/infrastructure/store"
	httpRouter "github.com/jhoicas/medsupply-api/internal/interfaces/http"
	"github.com/jhoicas/medsupply-api/pkg/config"
	"github.com/jhoicas/medsupply-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.Log.Level,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("db_driver", cfg.DB.Driver).
		Bool("allow_negative_stock", cfg.Inventory.AllowNegativeStock).
		Msg("iniciando aplicación")

	ctx := context.Background()
	st, err := store.Open(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Str("driver", cfg.DB.Driver).Msg("conexión al almacenamiento")
	}
	defer st.Close()

	if cfg.App.SeedDemo {
		n, err := seed.Demo(ctx, st.Products, time.Now())
		if err != nil {
			log.Fatal().Err(err).Msg("seed demo")
		}
		log.Info().Int("products", n).Msg("seed demo aplicado")
	}

	var publisher inventory.MovementPublisher = inventory.NoopPublisher{}
	if cfg.Kafka.Enabled() {
		kp, err := kafka.NewMovementPublisher(cfg.Kafka, log.Component("kafka"))
		if err != nil {
			log.Fatal().Err(err).Strs("brokers", cfg.Kafka.Brokers).Msg("productor kafka")
		}
		defer kp.Close()
		publisher = kp
		log.Info().Str("topic", cfg.Kafka.Topic).Msg("publicación de movimientos en kafka activa")
	}

	registerMovementUC := inventory.NewRegisterMovementUseCase(
		st.TxRunner, publisher,
		inventory.StockPolicy{AllowNegative: cfg.Inventory.AllowNegativeStock},
		log.Component("movement_engine"),
	)
	queryUC := inventory.NewQueryUseCase(st.Products, st.Movements)
	productUC := usecase.NewProductUseCase(st.Products, st.TxRunner)
	dashboardUC := appanalytics.NewDashboardUseCase(st.Products, st.Movements)

	httpLog := log.Component("http")
	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  cfg.HTTP.ReadTimeout,
		WriteTimeout: cfg.HTTP.WriteTimeout,
		IdleTimeout:  time.Second * 60,
		ErrorHandler: httpRouter.ErrorHandler(httpLog),
	})
	app.Use(recover.New())
	app.Use(httpRouter.RequestID())
	app.Use(httpRouter.RequestLogger(httpLog))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath:    "/",
		FileContent: []byte(docs.SwaggerInfo.ReadDoc()),
		Path:        "docs",
		Title:       "MedSupply API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:        productUC,
		RegisterMovement: registerMovementUC,
		QueryUC:          queryUC,
		DashboardUC:      dashboardUC,
		Store:            st,
		ServiceName:      cfg.App.Name,
		Log:              httpLog,
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

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
