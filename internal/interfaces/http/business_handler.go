package http

import (
	"encoding/json"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/negocio-pro/internal/application/business"
	"github.com/tu-usuario/negocio-pro/internal/application/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// BusinessHandler maneja el perfil del negocio y sus preferencias.
type BusinessHandler struct {
	uc *business.BusinessUseCase
	r  *Responder
}

// NewBusinessHandler construye el handler de negocio.
func NewBusinessHandler(uc *business.BusinessUseCase, r *Responder) *BusinessHandler {
	return &BusinessHandler{uc: uc, r: r}
}

// GetProfile godoc
// @Summary      Perfil del negocio
// @Description  Devuelve el negocio de la cuenta autenticada con el resumen de contacto del dueño.
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=dto.BusinessProfileResponse}
// @Failure      401  {object}  dto.Response
// @Failure      404  {object}  dto.Response
// @Router       /api/business/profile [get]
func (h *BusinessHandler) GetProfile(c *fiber.Ctx) error {
	out, err := h.uc.GetProfile(CurrentBusinessID(c))
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OK(c, out)
}

// UpdateProfile godoc
// @Summary      Actualizar perfil del negocio
// @Description  Aplica solo los campos enviados. Reservado al rol owner.
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdateBusinessRequest  true  "campos a actualizar"
// @Success      200   {object}  dto.Response{data=dto.BusinessResponse}
// @Failure      400   {object}  dto.Response
// @Failure      403   {object}  dto.Response
// @Router       /api/business/profile [put]
func (h *BusinessHandler) UpdateProfile(c *fiber.Ctx) error {
	var in dto.UpdateBusinessRequest
	if err := c.BodyParser(&in); err != nil {
		return h.typeError(c, err)
	}
	out, err := h.uc.UpdateProfile(CurrentBusinessID(c), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OKMessage(c, "perfil actualizado", out)
}

// GetPreferences godoc
// @Summary      Preferencias del negocio
// @Description  Devuelve las categorías, unidades y tipos de producto con sus contadores.
// @Tags         business
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=dto.PreferencesResponse}
// @Failure      401  {object}  dto.Response
// @Router       /api/business/preferences [get]
func (h *BusinessHandler) GetPreferences(c *fiber.Ctx) error {
	out, err := h.uc.GetPreferences(CurrentBusinessID(c))
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OK(c, out)
}

// UpdatePreferences godoc
// @Summary      Reemplazar preferencias
// @Description  Reemplaza por completo cada colección enviada; las ausentes no se tocan. Reservado al rol owner.
// @Tags         business
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdatePreferencesRequest  true  "colecciones a reemplazar"
// @Success      200   {object}  dto.Response{data=dto.PreferencesResponse}
// @Failure      400   {object}  dto.Response
// @Failure      403   {object}  dto.Response
// @Router       /api/business/preferences [put]
func (h *BusinessHandler) UpdatePreferences(c *fiber.Ctx) error {
	var in dto.UpdatePreferencesRequest
	if err := c.BodyParser(&in); err != nil {
		return h.typeError(c, err)
	}
	out, err := h.uc.ReplacePreferences(CurrentBusinessID(c), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OKMessage(c, "preferencias actualizadas", out)
}

// ExportPreferences godoc
// @Summary      Exportar preferencias a Excel
// @Description  Descarga un libro .xlsx con una hoja por colección.
// @Tags         business
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security     BearerAuth
// @Success      200  {file}  binary
// @Failure      401  {object}  dto.Response
// @Router       /api/business/preferences/export [get]
func (h *BusinessHandler) ExportPreferences(c *fiber.Ctx) error {
	data, filename, err := h.uc.ExportPreferences(CurrentBusinessID(c))
	if err != nil {
		return h.r.Error(c, err)
	}
	c.Set(fiber.HeaderContentType, xlsxContentType)
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}

// typeError distingue los errores de tipo del decodificador para nombrar el
// campo ofensor; cualquier otro fallo de parseo responde un 400 genérico.
func (h *BusinessHandler) typeError(c *fiber.Ctx, err error) error {
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) && typeErr.Field != "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.FailFields("datos inválidos",
			[]dto.ErrorItem{{Field: typeErr.Field, Message: "tipo de dato inválido, se esperaba " + typeErr.Type.String()}}))
	}
	return h.r.BadRequest(c, "cuerpo de la petición inválido")
}
