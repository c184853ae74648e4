package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tu-usuario/negocio-pro/internal/application/auth"
	"github.com/tu-usuario/negocio-pro/internal/application/business"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
	apphttp "github.com/tu-usuario/negocio-pro/internal/interfaces/http"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Stores en memoria para el stack HTTP completo
// ──────────────────────────────────────────────────────────────────────────────

type apiUserRepo struct {
	users map[string]*entity.User
}

func (m *apiUserRepo) Create(u *entity.User) error {
	for _, existing := range m.users {
		if strings.EqualFold(existing.Email, u.Email) {
			return domain.ErrEmailAlreadyExists
		}
	}
	cp := *u
	m.users[u.ID] = &cp
	return nil
}

func (m *apiUserRepo) GetByID(id string) (*entity.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (m *apiUserRepo) GetByEmail(email string) (*entity.User, error) {
	for _, u := range m.users {
		if strings.EqualFold(u.Email, email) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *apiUserRepo) ExistsByEmail(email string) (bool, error) {
	u, _ := m.GetByEmail(email)
	return u != nil, nil
}

func (m *apiUserRepo) LinkBusiness(userID, businessID string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.BusinessID = businessID
	u.LastLogin = &now
	return nil
}

func (m *apiUserRepo) TouchLastLogin(userID string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	now := time.Now()
	u.LastLogin = &now
	return nil
}

func (m *apiUserRepo) UpdatePassword(userID, passwordHash string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (m *apiUserRepo) SetResetToken(userID, tokenHash string, expires time.Time) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = tokenHash
	u.ResetTokenExpires = &expires
	return nil
}

func (m *apiUserRepo) GetByResetToken(tokenHash string) (*entity.User, error) {
	for _, u := range m.users {
		if u.ResetToken == tokenHash && u.ResetTokenExpires != nil && u.ResetTokenExpires.After(time.Now()) {
			cp := *u
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *apiUserRepo) ClearResetToken(userID string) error {
	u, ok := m.users[userID]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.ResetToken = ""
	u.ResetTokenExpires = nil
	return nil
}

type apiBusinessRepo struct {
	businesses map[string]*entity.Business
}

func (m *apiBusinessRepo) Create(b *entity.Business) error {
	cp := *b
	m.businesses[b.ID] = &cp
	return nil
}

func (m *apiBusinessRepo) GetByID(id string) (*entity.Business, error) {
	b, ok := m.businesses[id]
	if !ok {
		return nil, nil
	}
	cp := *b
	return &cp, nil
}

func (m *apiBusinessRepo) GetByOwner(ownerID string) (*entity.Business, error) {
	for _, b := range m.businesses {
		if b.OwnerID == ownerID {
			cp := *b
			return &cp, nil
		}
	}
	return nil, nil
}

func (m *apiBusinessRepo) Update(b *entity.Business) error {
	if _, ok := m.businesses[b.ID]; !ok {
		return domain.ErrBusinessNotFound
	}
	cp := *b
	m.businesses[b.ID] = &cp
	return nil
}

func (m *apiBusinessRepo) UpdatePreferences(businessID string, prefs entity.Preferences) error {
	b, ok := m.businesses[businessID]
	if !ok {
		return domain.ErrBusinessNotFound
	}
	b.Preferences = prefs
	return nil
}

type apiTx struct {
	users      *apiUserRepo
	businesses *apiBusinessRepo
}

func (tx *apiTx) Run(_ context.Context, fn func(repository.UserRepository, repository.BusinessRepository) error) error {
	return fn(tx.users, tx.businesses)
}

type apiMailer struct{}

func (apiMailer) SendWelcome(context.Context, *entity.User, string) error       { return nil }
func (apiMailer) SendPasswordReset(context.Context, *entity.User, string) error { return nil }

// ──────────────────────────────────────────────────────────────────────────────
// App completa con el router real
// ──────────────────────────────────────────────────────────────────────────────

type apiFixture struct {
	app        *fiber.App
	users      *apiUserRepo
	businesses *apiBusinessRepo
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()
	log := logger.New(logger.Config{Env: "test", Level: "error"})
	users := &apiUserRepo{users: map[string]*entity.User{}}
	businesses := &apiBusinessRepo{businesses: map[string]*entity.Business{}}
	tx := &apiTx{users: users, businesses: businesses}

	cfg := &config.Config{
		App: config.AppConfig{Env: "test", Name: "negocio-pro-test"},
		JWT: config.JWTConfig{Secret: testJWTSecret, Expiration: 60, Issuer: testIssuer},
		RateLimit: config.RateLimitConfig{
			GeneralMax: 1000, GeneralWindow: 15,
			AuthMax: 1000, AuthWindow: 15,
			RegisterMax: 1000, RegisterWindow: 60,
		},
	}

	authUC := auth.NewAuthUseCase(users, businesses, tx, apiMailer{},
		auth.JWTConfig{Secret: cfg.JWT.Secret, ExpMinutes: cfg.JWT.Expiration, Issuer: cfg.JWT.Issuer}, log)
	businessUC := business.NewBusinessUseCase(businesses, users, log)

	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:     authUC,
		BusinessUC: businessUC,
		Users:      users,
		Cfg:        cfg,
		Log:        log,
	})
	return &apiFixture{app: app, users: users, businesses: businesses}
}

func (f *apiFixture) do(t *testing.T, method, path, token string, payload any) (*http.Response, envelope) {
	t.Helper()
	var body *bytes.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(raw)
	} else {
		body = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, body)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	if strings.Contains(resp.Header.Get("Content-Type"), "json") {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&env))
	}
	resp.Body.Close()
	return resp, env
}

func registerBody() map[string]any {
	return map[string]any{
		"firstName":    "Amina",
		"lastName":     "Okafor",
		"email":        "amina@tiendalagos.ng",
		"password":     "Segura123",
		"businessName": "Tienda Lagos",
		"industry":     "retail",
	}
}

// registerAndToken da de alta una cuenta por la API y devuelve su token.
func (f *apiFixture) registerAndToken(t *testing.T) string {
	t.Helper()
	resp, env := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody())
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	data, ok := env.Data.(map[string]any)
	require.True(t, ok, "data debe ser un objeto")
	token, _ := data["token"].(string)
	require.NotEmpty(t, token)
	return token
}

// ──────────────────────────────────────────────────────────────────────────────
// Flujos por la API completa
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_RegistroCompleto(t *testing.T) {
	f := newAPIFixture(t)

	resp, env := f.do(t, http.MethodPost, "/api/auth/register", "", registerBody())

	assert.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.True(t, env.Success)

	data := env.Data.(map[string]any)
	user := data["user"].(map[string]any)
	biz := data["business"].(map[string]any)
	assert.Equal(t, "owner", user["role"])
	assert.Equal(t, "Tienda Lagos", biz["name"])
	assert.Equal(t, "NGN", biz["currency"])
}

func TestAPI_RegistroConCamposFaltantes(t *testing.T) {
	f := newAPIFixture(t)

	resp, env := f.do(t, http.MethodPost, "/api/auth/register", "", map[string]any{})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.False(t, env.Success)
	assert.NotEmpty(t, env.Errors, "debe itemizar los campos faltantes")
}

func TestAPI_LoginInvalido(t *testing.T) {
	f := newAPIFixture(t)
	f.registerAndToken(t)

	resp, env := f.do(t, http.MethodPost, "/api/auth/login", "", map[string]any{
		"email":    "amina@tiendalagos.ng",
		"password": "clave-equivocada",
	})

	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Equal(t, "credenciales inválidas", env.Message)
}

func TestAPI_MeDevuelveCuentaYNegocio(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndToken(t)

	resp, env := f.do(t, http.MethodGet, "/api/auth/me", token, nil)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	data := env.Data.(map[string]any)
	user := data["user"].(map[string]any)
	assert.Equal(t, "amina@tiendalagos.ng", user["email"])
}

func TestAPI_PreferenciasFlujoCompleto(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndToken(t)

	// El alta deja el catálogo inicial.
	resp, env := f.do(t, http.MethodGet, "/api/business/preferences", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data := env.Data.(map[string]any)
	stats := data["stats"].(map[string]any)
	categories := stats["categories"].(map[string]any)
	assert.EqualValues(t, 3, categories["total"])

	// El dueño reemplaza las categorías.
	resp, env = f.do(t, http.MethodPut, "/api/business/preferences", token, map[string]any{
		"categories": []map[string]any{{"name": "Bebidas", "color": "#10B981"}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	data = env.Data.(map[string]any)
	prefs := data["preferences"].(map[string]any)
	cats := prefs["categories"].([]any)
	require.Len(t, cats, 1)
	units := prefs["units"].([]any)
	assert.Len(t, units, 4, "las unidades no se enviaron y no deben cambiar")
}

func TestAPI_PreferenciasRechazaTiposInvalidos(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndToken(t)

	resp, env := f.do(t, http.MethodPut, "/api/business/preferences", token, map[string]any{
		"categories": "no-es-una-lista",
	})

	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	require.NotEmpty(t, env.Errors)
	assert.Equal(t, "categories", env.Errors[0].Field)
}

func TestAPI_EmpleadoNoPuedeEscribirPreferencias(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndToken(t)

	// Se degrada el rol directamente en el store.
	for _, u := range f.users.users {
		u.Role = entity.RoleEmployee
	}

	resp, env := f.do(t, http.MethodPut, "/api/business/preferences", token, map[string]any{
		"categories": []map[string]any{{"name": "Bebidas"}},
	})
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.False(t, env.Success)

	// La lectura sigue permitida para cualquier rol.
	resp, _ = f.do(t, http.MethodGet, "/api/business/preferences", token, nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestAPI_PerfilDeNegocio(t *testing.T) {
	f := newAPIFixture(t)
	token := f.registerAndToken(t)

	resp, env := f.do(t, http.MethodGet, "/api/business/profile", token, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	data := env.Data.(map[string]any)
	owner := data["owner"].(map[string]any)
	assert.Equal(t, "Amina Okafor", owner["fullName"])

	// Solo el dueño puede actualizar y el número de registro se normaliza.
	resp, env = f.do(t, http.MethodPut, "/api/business/profile", token, map[string]any{
		"registrationNumber": "rc 123456",
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	biz := env.Data.(map[string]any)
	assert.Equal(t, "RC123456", biz["registrationNumber"])
}

func TestAPI_HealthSinAutenticacion(t *testing.T) {
	f := newAPIFixture(t)

	resp, env := f.do(t, http.MethodGet, "/api/health", "", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, env.Success)
}
