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

	"github.com/vendorhub/portal-api/internal/application/auth"
	"github.com/vendorhub/portal-api/internal/application/usecase"
	"github.com/vendorhub/portal-api/internal/infrastructure/email"
	"github.com/vendorhub/portal-api/internal/infrastructure/postgres"
	httpRouter "github.com/vendorhub/portal-api/internal/interfaces/http"
	"github.com/vendorhub/portal-api/pkg/config"
	"github.com/vendorhub/portal-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(cfg.App.Env, "info", cfg.App.Name)
	log.Info().
		Str("env", cfg.App.Env).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	accountRepo := postgres.NewAccountRepository(pool)
	notifier := email.NewResendService(cfg.Email.APIKey, cfg.Email.From, cfg.Email.AdminEmail)

	authUC := auth.NewAuthUseCase(accountRepo, notifier, auth.JWTConfig{
		Secret:         cfg.JWT.Secret,
		SessionMinutes: cfg.JWT.SessionMinutes,
		ResetMinutes:   cfg.JWT.ResetMinutes,
		Issuer:         cfg.JWT.Issuer,
	}, cfg.App.BaseURL)
	accountUC := usecase.NewAccountUseCase(accountRepo)
	approvalUC := usecase.NewApprovalUseCase(accountRepo, notifier)
	flagsUC := usecase.NewFlagsUseCase(accountRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Guard de rutas de página: /api pasa de largo, el resto se decide con
	// la política de redirecciones.
	app.Use(httpRouter.RouteGuard(cfg.JWT.Secret))

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Vendor Portal API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		AccountUC:      accountUC,
		ApprovalUC:     approvalUC,
		FlagsUC:        flagsUC,
		JWTSecret:      cfg.JWT.Secret,
		SessionMinutes: cfg.JWT.SessionMinutes,
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
