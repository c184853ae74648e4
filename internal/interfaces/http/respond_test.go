package http_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/negocio-pro/internal/domain"
	apphttp "github.com/tu-usuario/negocio-pro/internal/interfaces/http"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    any    `json:"data"`
	Errors  []struct {
		Field   string `json:"field"`
		Message string `json:"message"`
	} `json:"errors"`
}

// failWith devuelve una app cuyo único endpoint responde el error dado a
// través del Responder.
func failWith(production bool, err error) *fiber.App {
	r := apphttp.NewResponder(logger.New(logger.Config{Env: "test", Level: "error"}), production)
	app := fiber.New()
	app.Get("/fail", func(c *fiber.Ctx) error { return r.Error(c, err) })
	return app
}

func getEnvelope(t *testing.T, app *fiber.App) (int, envelope) {
	t.Helper()
	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/fail", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	return resp.StatusCode, body
}

// ──────────────────────────────────────────────────────────────────────────────
// Traducción de errores al sobre estándar
// ──────────────────────────────────────────────────────────────────────────────

func TestResponder_ErroresDeValidacionConCampos(t *testing.T) {
	verr := domain.NewValidationError("email", "el email no tiene un formato válido")
	verr.Add("password", "la contraseña debe tener al menos 8 caracteres")

	status, body := getEnvelope(t, failWith(false, verr))

	assert.Equal(t, http.StatusBadRequest, status)
	assert.False(t, body.Success)
	require.Len(t, body.Errors, 2)
	assert.Equal(t, "email", body.Errors[0].Field)
	assert.Equal(t, "password", body.Errors[1].Field)
}

func TestResponder_TaxonomiaDeLogin(t *testing.T) {
	// Credenciales inválidas, cuenta desactivada y negocio inactivo comparten
	// el 401 pero se distinguen por mensaje.
	casos := []struct {
		err     error
		mensaje string
	}{
		{domain.ErrInvalidCredentials, "credenciales inválidas"},
		{domain.ErrAccountDeactivated, "la cuenta está desactivada"},
		{domain.ErrBusinessInactive, "el negocio no existe o está inactivo"},
	}
	for _, tc := range casos {
		status, body := getEnvelope(t, failWith(false, tc.err))
		assert.Equal(t, http.StatusUnauthorized, status)
		assert.Equal(t, tc.mensaje, body.Message)
	}
}

func TestResponder_DuplicadosNombranElCampo(t *testing.T) {
	status, body := getEnvelope(t, failWith(false, domain.ErrRegistrationNumberTaken))

	assert.Equal(t, http.StatusBadRequest, status)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "registrationNumber", body.Errors[0].Field)
}

func TestResponder_NoEncontrado(t *testing.T) {
	status, _ := getEnvelope(t, failWith(false, domain.ErrBusinessNotFound))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestResponder_NadaQueActualizar(t *testing.T) {
	status, body := getEnvelope(t, failWith(false, domain.ErrNothingToUpdate))
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Contains(t, body.Message, "nada que actualizar")
}

func TestResponder_ErrorInternoOcultaDetalleEnProduccion(t *testing.T) {
	boom := errors.New("fallo interno con detalle sensible")

	status, body := getEnvelope(t, failWith(true, boom))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "error interno del servidor", body.Message)

	status, body = getEnvelope(t, failWith(false, boom))
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Contains(t, body.Message, "detalle sensible",
		"fuera de producción el detalle ayuda a depurar")
}

// ──────────────────────────────────────────────────────────────────────────────
// Límite de peticiones por IP
// ──────────────────────────────────────────────────────────────────────────────

func TestRateLimiter_Responde429AlSuperarElLimite(t *testing.T) {
	limiters := apphttp.NewRateLimiters(config.RateLimitConfig{
		GeneralMax: 100, GeneralWindow: 15,
		AuthMax: 2, AuthWindow: 15,
		RegisterMax: 3, RegisterWindow: 60,
	})

	app := fiber.New()
	app.Get("/limited", limiters.Auth, func(c *fiber.Ctx) error {
		return c.SendStatus(http.StatusOK)
	})

	for i := 0; i < 2; i++ {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp.Body.Close()
	}

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/limited", nil), -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)

	var body envelope
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.False(t, body.Success)
	assert.Contains(t, body.Message, "demasiados intentos")
}
