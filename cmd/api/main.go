package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/picking-api/internal/application/auth"
	"github.com/jhoicas/picking-api/internal/application/picking"
	infracache "github.com/jhoicas/picking-api/internal/infrastructure/cache"
	infrapdf "github.com/jhoicas/picking-api/internal/infrastructure/pdf"
	"github.com/jhoicas/picking-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/picking-api/internal/interfaces/http"
	"github.com/jhoicas/picking-api/pkg/config"
	"github.com/jhoicas/picking-api/pkg/logger"
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

	redisCache, err := infracache.NewRedisCache(ctx, cfg.Redis)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a Redis")
	}
	defer redisCache.Close()
	if !cfg.Redis.Enabled {
		log.Info().Msg("cache Redis deshabilitado, consultas directas a la DB")
	}

	orderRepo := postgres.NewOrderRepository(pool)
	pickingRepo := postgres.NewPickingRepository(pool)
	userRepo := postgres.NewUserRepository(pool)

	authUC := auth.NewAuthUseCase(userRepo,
		auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		},
		auth.AutologinConfig{
			Secret: cfg.Autologin.Secret,
			MaxAge: cfg.Autologin.MaxAge,
		},
	)

	// Admin inicial en el primer arranque con la tabla usuarios vacía.
	created, err := authUC.Bootstrap(ctx, cfg.Bootstrap.AdminUser, cfg.Bootstrap.AdminPassword, cfg.Bootstrap.AdminName)
	if err != nil {
		log.Fatal().Err(err).Msg("bootstrap del admin inicial")
	}
	if created {
		log.Info().Str("username", cfg.Bootstrap.AdminUser).Msg("admin inicial creado")
	}

	pickingUC := picking.NewPickingUseCase(orderRepo, redisCache, cfg.Redis.TTL)
	engine := picking.NewEngine(pickingRepo, orderRepo, redisCache)
	assigner := picking.NewAssigner(pickingRepo, redisCache, picking.AssignOptions{
		MaxRetries:  cfg.Assign.MaxRetries,
		BackoffBase: cfg.Assign.BackoffBase,
		LockTimeout: cfg.Assign.LockTimeout,
	})
	sheetUC := picking.NewSheetUseCase(orderRepo, infrapdf.NewMarotoSheetGenerator())

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:    authUC,
		PickingUC: pickingUC,
		SheetUC:   sheetUC,
		Engine:    engine,
		Assigner:  assigner,
		JWTSecret: cfg.JWT.Secret,
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
