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

	"github.com/jhoicas/Avicola-api/internal/application/alerts"
	"github.com/jhoicas/Avicola-api/internal/application/inventory"
	"github.com/jhoicas/Avicola-api/internal/application/notification"
	"github.com/jhoicas/Avicola-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Avicola-api/internal/infrastructure/rediscache"
	httpRouter "github.com/jhoicas/Avicola-api/internal/interfaces/http"
	"github.com/jhoicas/Avicola-api/internal/worker"
	"github.com/jhoicas/Avicola-api/pkg/config"
	"github.com/jhoicas/Avicola-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	itemRepo := postgres.NewInventoryItemRepository(pool)
	movementRepo := postgres.NewStockMovementRepository(pool)
	notificationRepo := postgres.NewNotificationRepository(pool)
	vaccinationRepo := postgres.NewVaccinationRepository(pool)
	taskRepo := postgres.NewFarmTaskRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Caché Redis opcional: sin REDIS_ADDR la aplicación consulta siempre PostgreSQL.
	var unreadCache notification.UnreadCountCache
	if cfg.Redis.Addr != "" {
		cache, err := rediscache.New(ctx, cfg.Redis, log)
		if err != nil {
			log.Warn().Err(err).Msg("conexión a Redis falló; se opera sin caché")
		} else {
			defer cache.Close()
			unreadCache = cache
		}
	}

	itemUC := inventory.NewItemUseCase(itemRepo)
	registerMovementUC := inventory.NewRegisterMovementUseCase(txRunner, movementRepo)
	notificationUC := notification.NewUseCase(notificationRepo, unreadCache)

	scanners := []alerts.Scanner{
		alerts.NewLowStockScanner(itemRepo),
		alerts.NewVaccinationScanner(vaccinationRepo, cfg.Alerts.DueWindowDays),
		alerts.NewTaskScanner(taskRepo, cfg.Alerts.DueWindowDays),
	}
	generateAlertsUC := alerts.NewGenerateAlertsUseCase(scanners, notificationRepo, unreadCache, log)

	// Barrido en servidor (opcional): el poll del cliente ya cubre a los usuarios activos.
	sweeper := worker.NewAlertSweeper(
		userRepo, generateAlertsUC, log,
		time.Duration(cfg.Alerts.SweepMinutes)*time.Minute,
		cfg.Alerts.SweepBatchSize,
	)
	sweeper.Start()
	defer sweeper.Stop()

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Avícola API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ItemUC:           itemUC,
		RegisterMovement: registerMovementUC,
		NotificationUC:   notificationUC,
		GenerateAlerts:   generateAlertsUC,
		JWTSecret:        cfg.JWT.Secret,
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
