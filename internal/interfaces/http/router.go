package http

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/valyala/fasthttp/fasthttpadaptor"

	"github.com/tu-usuario/negocio-pro/internal/application/auth"
	"github.com/tu-usuario/negocio-pro/internal/application/business"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
	"github.com/tu-usuario/negocio-pro/internal/observability/telemetry"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC     *auth.AuthUseCase
	BusinessUC *business.BusinessUseCase
	Users      repository.UserRepository
	Pool       *pgxpool.Pool
	Cfg        *config.Config
	Log        *logger.Logger
}

// Router registra middlewares y rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	responder := NewResponder(deps.Log, deps.Cfg.App.IsProduction())
	limiters := NewRateLimiters(deps.Cfg.RateLimit)

	app.Use(cors.New(cors.Config{
		AllowOrigins: deps.Cfg.App.FrontendURL,
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(requestLogger(deps.Log))

	// Prometheus (adaptado de net/http a fasthttp)
	metricsHandler := fasthttpadaptor.NewFastHTTPHandler(promhttp.Handler())
	app.Get("/metrics", func(c *fiber.Ctx) error {
		metricsHandler(c.Context())
		return nil
	})

	api := app.Group("/api")

	// Health checks fuera del limitador: los sondea el orquestador.
	healthHandler := NewHealthHandler(deps.Pool, responder, deps.Cfg.App.Name)
	api.Get("/health", healthHandler.Health)
	api.Get("/health/db", healthHandler.HealthDB)

	// Resto de la API bajo el límite general por IP.
	limited := api.Group("/", limiters.General)

	requireAuth := RequireAuth(deps.Cfg.JWT.Secret, deps.Users)

	// Auth
	authHandler := NewAuthHandler(deps.AuthUC, responder)
	authGroup := limited.Group("/auth")
	authGroup.Post("/register", limiters.Register, authHandler.Register)
	authGroup.Post("/login", limiters.Auth, authHandler.Login)
	authGroup.Post("/forgot-password", limiters.Auth, authHandler.ForgotPassword)
	authGroup.Put("/reset-password/:token", limiters.Auth, authHandler.ResetPassword)
	authGroup.Get("/me", requireAuth, authHandler.Me)
	authGroup.Put("/update-password", requireAuth, authHandler.UpdatePassword)
	authGroup.Post("/logout", requireAuth, authHandler.Logout)

	// Business (todo protegido; las escrituras exigen rol owner)
	businessHandler := NewBusinessHandler(deps.BusinessUC, responder)
	businessGroup := limited.Group("/business", requireAuth)
	businessGroup.Get("/profile", businessHandler.GetProfile)
	businessGroup.Put("/profile", RequireRole(entity.RoleOwner), businessHandler.UpdateProfile)
	businessGroup.Get("/preferences", businessHandler.GetPreferences)
	businessGroup.Put("/preferences", RequireRole(entity.RoleOwner), businessHandler.UpdatePreferences)
	businessGroup.Get("/preferences/export", businessHandler.ExportPreferences)
}

// requestLogger registra cada petición atendida y alimenta las métricas HTTP.
func requestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		elapsed := time.Since(start)
		route := c.Route().Path

		telemetry.HTTPRequestsTotal.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		telemetry.HTTPRequestDuration.WithLabelValues(c.Method(), route).Observe(elapsed.Seconds())

		log.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Dur("latency", elapsed).
			Str("ip", c.IP()).
			Msg("petición atendida")
		return err
	}
}
