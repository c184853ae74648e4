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
	_ "github.com/tu-usuario/negocio-pro/docs"
	"github.com/tu-usuario/negocio-pro/internal/application/auth"
	"github.com/tu-usuario/negocio-pro/internal/application/business"
	"github.com/tu-usuario/negocio-pro/internal/infrastructure/email"
	"github.com/tu-usuario/negocio-pro/internal/infrastructure/postgres"
	httpRouter "github.com/tu-usuario/negocio-pro/internal/interfaces/http"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// @title                      NegocioPro API
// @version                    1.0
// @description                Backend multi-tenant para la gestión de pequeños negocios: cuentas, perfil del negocio y catálogos de preferencias.
// @BasePath                   /
// @securityDefinitions.apikey BearerAuth
// @in                         header
// @name                       Authorization
// @description                Token JWT con el prefijo "Bearer "
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

	if err := postgres.EnsureSchema(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("preparación del esquema")
	}

	userRepo := postgres.NewUserRepository(pool)
	businessRepo := postgres.NewBusinessRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	mailSvc, err := email.NewService(cfg.Mail, cfg.App.FrontendURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("configuración de correo")
	}

	authUC := auth.NewAuthUseCase(userRepo, businessRepo, txRunner, mailSvc, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, log)
	businessUC := business.NewBusinessUseCase(businessRepo, userRepo, log)

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
		Title:    "NegocioPro API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: businessUC,
		Users:      userRepo,
		Pool:       pool,
		Cfg:        cfg,
		Log:        log,
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
