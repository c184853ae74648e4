package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/negocio-pro/internal/application/auth"
	"github.com/tu-usuario/negocio-pro/internal/application/dto"
)

// AuthHandler maneja registro, login y ciclo de vida de contraseñas.
type AuthHandler struct {
	uc *auth.AuthUseCase
	r  *Responder
}

// NewAuthHandler construye el handler de auth.
func NewAuthHandler(uc *auth.AuthUseCase, r *Responder) *AuthHandler {
	return &AuthHandler{uc: uc, r: r}
}

// Register godoc
// @Summary      Registrar cuenta y negocio
// @Description  Crea el usuario dueño y su negocio en una sola transacción y devuelve la sesión iniciada.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterRequest  true  "datos del dueño y del negocio"
// @Success      201   {object}  dto.Response{data=dto.AuthResponse}
// @Failure      400   {object}  dto.Response
// @Failure      429   {object}  dto.Response
// @Router       /api/auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.BadRequest(c, "cuerpo de la petición inválido")
	}
	out, err := h.uc.Register(c.Context(), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.Created(c, "registro completado", out)
}

// Login godoc
// @Summary      Iniciar sesión
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.LoginRequest  true  "email y contraseña"
// @Success      200   {object}  dto.Response{data=dto.AuthResponse}
// @Failure      401   {object}  dto.Response
// @Failure      429   {object}  dto.Response
// @Router       /api/auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var in dto.LoginRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.BadRequest(c, "cuerpo de la petición inválido")
	}
	if in.Email == "" || in.Password == "" {
		return h.r.BadRequest(c, "email y contraseña son obligatorios")
	}
	out, err := h.uc.Login(in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OK(c, out)
}

// Me godoc
// @Summary      Cuenta autenticada
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response{data=dto.MeResponse}
// @Failure      401  {object}  dto.Response
// @Router       /api/auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	out, err := h.uc.Me(CurrentUserID(c))
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OK(c, out)
}

// UpdatePassword godoc
// @Summary      Cambiar contraseña
// @Description  Verifica la contraseña actual y devuelve un token fresco.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body  dto.UpdatePasswordRequest  true  "contraseña actual y nueva"
// @Success      200   {object}  dto.Response{data=dto.TokenResponse}
// @Failure      400   {object}  dto.Response
// @Failure      401   {object}  dto.Response
// @Router       /api/auth/update-password [put]
func (h *AuthHandler) UpdatePassword(c *fiber.Ctx) error {
	var in dto.UpdatePasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.BadRequest(c, "cuerpo de la petición inválido")
	}
	out, err := h.uc.UpdatePassword(CurrentUserID(c), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OKMessage(c, "contraseña actualizada", out)
}

// Logout godoc
// @Summary      Cerrar sesión
// @Description  El token es stateless; el cierre real ocurre en el cliente.
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  dto.Response
// @Router       /api/auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	return h.r.OKMessage(c, "sesión cerrada", nil)
}

// ForgotPassword godoc
// @Summary      Solicitar restablecimiento de contraseña
// @Description  Envía por correo un enlace de un solo uso con vigencia de 15 minutos.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ForgotPasswordRequest  true  "email de la cuenta"
// @Success      200   {object}  dto.Response
// @Failure      404   {object}  dto.Response
// @Router       /api/auth/forgot-password [post]
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var in dto.ForgotPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.BadRequest(c, "cuerpo de la petición inválido")
	}
	if in.Email == "" {
		return h.r.BadRequest(c, "el email es obligatorio")
	}
	if err := h.uc.ForgotPassword(c.Context(), in); err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OKMessage(c, "correo de restablecimiento enviado", nil)
}

// ResetPassword godoc
// @Summary      Restablecer contraseña con token
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        token  path  string  true  "token recibido por correo"
// @Param        body   body  dto.ResetPasswordRequest  true  "nueva contraseña"
// @Success      200    {object}  dto.Response{data=dto.TokenResponse}
// @Failure      400    {object}  dto.Response
// @Router       /api/auth/reset-password/{token} [put]
func (h *AuthHandler) ResetPassword(c *fiber.Ctx) error {
	var in dto.ResetPasswordRequest
	if err := c.BodyParser(&in); err != nil {
		return h.r.BadRequest(c, "cuerpo de la petición inválido")
	}
	out, err := h.uc.ResetPassword(c.Params("token"), in)
	if err != nil {
		return h.r.Error(c, err)
	}
	return h.r.OKMessage(c, "contraseña restablecida", out)
}
