package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// Responder traduce resultados y errores de dominio al sobre estándar de la
// API: {success, message?, data?, errors?}.
type Responder struct {
	log        *logger.Logger
	production bool
}

// NewResponder crea el traductor de respuestas. En producción los errores
// internos no exponen detalle.
func NewResponder(log *logger.Logger, production bool) *Responder {
	return &Responder{log: log, production: production}
}

// OK responde 200 con datos.
func (r *Responder) OK(c *fiber.Ctx, data any) error {
	return c.JSON(dto.OK(data))
}

// OKMessage responde 200 con mensaje y datos.
func (r *Responder) OKMessage(c *fiber.Ctx, message string, data any) error {
	return c.JSON(dto.OKMessage(message, data))
}

// Created responde 201 con mensaje y datos.
func (r *Responder) Created(c *fiber.Ctx, message string, data any) error {
	return c.Status(fiber.StatusCreated).JSON(dto.OKMessage(message, data))
}

// BadRequest responde 400 con un mensaje fijo.
func (r *Responder) BadRequest(c *fiber.Ctx, message string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.Fail(message))
}

// Error mapea un error de dominio a su código HTTP y sobre de error.
func (r *Responder) Error(c *fiber.Ctx, err error) error {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		items := make([]dto.ErrorItem, 0, len(verr.Fields))
		for _, f := range verr.Fields {
			items = append(items, dto.ErrorItem{Field: f.Field, Message: f.Message})
		}
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailFields("datos inválidos", items))
	}

	switch {
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailFields("valor duplicado",
			[]dto.ErrorItem{{Field: "email", Message: "el email ya está registrado"}}))
	case errors.Is(err, domain.ErrRegistrationNumberTaken):
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailFields("valor duplicado",
			[]dto.ErrorItem{{Field: "registrationNumber", Message: "el número de registro ya está en uso"}}))
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("valor duplicado"))
	case errors.Is(err, domain.ErrNothingToUpdate):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("nada que actualizar: envía al menos un campo"))
	case errors.Is(err, domain.ErrTokenExpired):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Fail("token inválido o expirado"))
	case errors.Is(err, domain.ErrInvalidCredentials):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("credenciales inválidas"))
	case errors.Is(err, domain.ErrAccountDeactivated):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("la cuenta está desactivada"))
	case errors.Is(err, domain.ErrBusinessInactive):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("el negocio no existe o está inactivo"))
	case errors.Is(err, domain.ErrUnauthorized):
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail("no autenticado"))
	case errors.Is(err, domain.ErrForbidden):
		return c.Status(fiber.StatusForbidden).JSON(dto.Fail("no tienes permisos para esta acción"))
	case errors.Is(err, domain.ErrUserNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("usuario no encontrado"))
	case errors.Is(err, domain.ErrBusinessNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("negocio no encontrado"))
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.Fail("recurso no encontrado"))
	}

	r.log.Err(err).Str("path", c.Path()).Msg("error no controlado")
	message := "error interno del servidor"
	if !r.production {
		message = err.Error()
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Fail(message))
}
