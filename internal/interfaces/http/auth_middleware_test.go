package http_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	apphttp "github.com/tu-usuario/negocio-pro/internal/interfaces/http"
	pkgjwt "github.com/tu-usuario/negocio-pro/pkg/jwt"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const (
	testJWTSecret  = "test-secret-key-for-unit-tests"
	testUserID     = "00000000-0000-0000-0000-000000000001"
	testBusinessID = "00000000-0000-0000-0000-000000000002"
	testIssuer     = "negocio-pro-test"
	testExpMin     = 60
)

// resolverStub resuelve cuentas desde un mapa en memoria.
type resolverStub struct {
	users map[string]*entity.User
}

func (s *resolverStub) GetByID(id string) (*entity.User, error) {
	return s.users[id], nil
}

func activeOwner() *resolverStub {
	return &resolverStub{users: map[string]*entity.User{
		testUserID: {
			ID:         testUserID,
			BusinessID: testBusinessID,
			Email:      "sade@mercado.ng",
			Role:       entity.RoleOwner,
			Active:     true,
		},
	}}
}

// buildTestApp construye una aplicación Fiber mínima con RequireAuth,
// RequireRole y un handler que refleja la cuenta resuelta.
func buildTestApp(resolver *resolverStub, allowedRoles ...string) *fiber.App {
	app := fiber.New()
	handlers := []fiber.Handler{apphttp.RequireAuth(testJWTSecret, resolver)}
	if len(allowedRoles) > 0 {
		handlers = append(handlers, apphttp.RequireRole(allowedRoles...))
	}
	handlers = append(handlers, func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"userId":     apphttp.CurrentUserID(c),
			"businessId": apphttp.CurrentBusinessID(c),
		})
	})
	app.Get("/protected", handlers...)
	return app
}

func tokenFor(t *testing.T, userID string) string {
	t.Helper()
	tok, err := pkgjwt.Generate(testJWTSecret, userID, testIssuer, testExpMin)
	require.NoError(t, err, "debe generarse un token JWT válido")
	return "Bearer " + tok
}

func doRequest(t *testing.T, app *fiber.App, authHeader string) *http.Response {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireAuth
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireAuth_TokenValidoCargaLaCuenta(t *testing.T) {
	app := buildTestApp(activeOwner())
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
	assert.Equal(t, testBusinessID, body["businessId"])
}

func TestRequireAuth_SinHeader(t *testing.T) {
	app := buildTestApp(activeOwner())
	resp := doRequest(t, app, "")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_HeaderMalformado(t *testing.T) {
	app := buildTestApp(activeOwner())

	for _, header := range []string{"Basic abc123", "Bearer", "Bearer "} {
		resp := doRequest(t, app, header)
		assert.Equal(t, http.StatusUnauthorized, resp.StatusCode,
			"el header %q debe rechazarse", header)
		resp.Body.Close()
	}
}

func TestRequireAuth_TokenInvalido(t *testing.T) {
	app := buildTestApp(activeOwner())
	resp := doRequest(t, app, "Bearer token.invalido.aqui")
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_TokenExpirado(t *testing.T) {
	app := buildTestApp(activeOwner())
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, -1)
	require.NoError(t, err)

	resp := doRequest(t, app, "Bearer "+tok)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_CuentaEliminada(t *testing.T) {
	// Token firmado y vigente, pero la cuenta ya no existe en BD.
	app := buildTestApp(&resolverStub{users: map[string]*entity.User{}})
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestRequireAuth_CuentaDesactivada(t *testing.T) {
	// La desactivación surte efecto aunque el token siga vigente.
	resolver := activeOwner()
	resolver.users[testUserID].Active = false

	app := buildTestApp(resolver)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "desactivada")
}

// ──────────────────────────────────────────────────────────────────────────────
// RequireRole
// ──────────────────────────────────────────────────────────────────────────────

func TestRequireRole_OwnerAccedeRutaOwner(t *testing.T) {
	app := buildTestApp(activeOwner(), entity.RoleOwner)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"el dueño debe poder acceder a rutas restringidas a owner")
}

func TestRequireRole_EmpleadoBloqueadoEnRutaOwner(t *testing.T) {
	resolver := activeOwner()
	resolver.users[testUserID].Role = entity.RoleEmployee

	app := buildTestApp(resolver, entity.RoleOwner)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "permisos")
}

func TestRequireRole_MultiRol(t *testing.T) {
	resolver := activeOwner()
	resolver.users[testUserID].Role = entity.RoleManager

	app := buildTestApp(resolver, entity.RoleOwner, entity.RoleManager)
	resp := doRequest(t, app, tokenFor(t, testUserID))
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode,
		"manager debe poder acceder a rutas que permiten owner o manager")
}

// ──────────────────────────────────────────────────────────────────────────────
// OptionalAuth
// ──────────────────────────────────────────────────────────────────────────────

func buildOptionalApp(resolver *resolverStub) *fiber.App {
	app := fiber.New()
	app.Get("/open", apphttp.OptionalAuth(testJWTSecret, resolver), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"userId": apphttp.CurrentUserID(c)})
	})
	return app
}

func TestOptionalAuth_SinTokenSigueAnonimo(t *testing.T) {
	app := buildOptionalApp(activeOwner())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode, "sin token no debe rechazar")

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["userId"])
}

func TestOptionalAuth_ConTokenAdjuntaLaCuenta(t *testing.T) {
	app := buildOptionalApp(activeOwner())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", tokenFor(t, testUserID))
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, testUserID, body["userId"])
}

func TestOptionalAuth_TokenInvalidoNoRechaza(t *testing.T) {
	app := buildOptionalApp(activeOwner())

	req := httptest.NewRequest(http.MethodGet, "/open", nil)
	req.Header.Set("Authorization", "Bearer token.invalido")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body map[string]string
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Empty(t, body["userId"], "con token inválido la petición sigue anónima")
}

// ──────────────────────────────────────────────────────────────────────────────
// JWT pkg — integridad de generate/parse
// ──────────────────────────────────────────────────────────────────────────────

func TestJWT_GenerateAndParse(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	userID, err := pkgjwt.Parse(testJWTSecret, tok)
	require.NoError(t, err)
	assert.Equal(t, testUserID, userID)
}

func TestJWT_SecretIncorrecto(t *testing.T) {
	tok, err := pkgjwt.Generate(testJWTSecret, testUserID, testIssuer, testExpMin)
	require.NoError(t, err)

	_, err = pkgjwt.Parse("otro-secret-completamente-distinto", tok)
	assert.Error(t, err, "secret incorrecto debe invalidar el token")
}
