package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/observability/telemetry"
	"github.com/tu-usuario/negocio-pro/pkg/config"
)

// RateLimiters agrupa los tres niveles de limitación por IP: el general de
// toda la API, el de login y el de registro, cada uno con su ventana.
type RateLimiters struct {
	General  fiber.Handler
	Auth     fiber.Handler
	Register fiber.Handler
}

// NewRateLimiters construye los limitadores a partir de la configuración.
// Los contadores viven en memoria del proceso.
func NewRateLimiters(cfg config.RateLimitConfig) RateLimiters {
	return RateLimiters{
		General: newLimiter("general", cfg.GeneralMax, cfg.GeneralWindow,
			"demasiadas peticiones desde esta IP, inténtalo de nuevo más tarde"),
		Auth: newLimiter("auth", cfg.AuthMax, cfg.AuthWindow,
			"demasiados intentos de acceso, espera unos minutos"),
		Register: newLimiter("register", cfg.RegisterMax, cfg.RegisterWindow,
			"demasiados registros desde esta IP, inténtalo de nuevo en una hora"),
	}
}

func newLimiter(tier string, max, windowMinutes int, message string) fiber.Handler {
	return limiter.New(limiter.Config{
		Max:        max,
		Expiration: time.Duration(windowMinutes) * time.Minute,
		LimitReached: func(c *fiber.Ctx) error {
			telemetry.RateLimitRejectionsTotal.WithLabelValues(tier).Inc()
			return c.Status(fiber.StatusTooManyRequests).JSON(dto.Fail(message))
		},
	})
}
