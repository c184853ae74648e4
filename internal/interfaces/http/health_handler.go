package http

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
)

// pinger es el contrato mínimo para verificar la BD. Lo satisface *pgxpool.Pool.
type pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responde los chequeos de vida del servicio.
type HealthHandler struct {
	db      pinger
	r       *Responder
	service string
}

// NewHealthHandler construye el handler de health checks.
func NewHealthHandler(db pinger, r *Responder, service string) *HealthHandler {
	return &HealthHandler{db: db, r: r, service: service}
}

// Health godoc
// @Summary      Estado del servicio
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.Response
// @Router       /api/health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return h.r.OK(c, fiber.Map{
		"status":  "ok",
		"service": h.service,
		"time":    time.Now().UTC(),
	})
}

// HealthDB godoc
// @Summary      Estado de la base de datos
// @Tags         health
// @Produce      json
// @Success      200  {object}  dto.Response
// @Failure      503  {object}  dto.Response
// @Router       /api/health/db [get]
func (h *HealthHandler) HealthDB(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()

	if err := h.db.Ping(ctx); err != nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.Fail("base de datos no disponible"))
	}
	return h.r.OK(c, fiber.Map{"status": "ok", "database": "up"})
}
