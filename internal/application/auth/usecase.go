// Package auth implementa el alta, el inicio de sesión y el ciclo de vida
// de contraseñas. El alta crea usuario y negocio en una sola transacción y
// entrelaza sus referencias antes de confirmar.
package auth

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
	"github.com/tu-usuario/negocio-pro/internal/observability/telemetry"
	"github.com/tu-usuario/negocio-pro/pkg/jwt"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// resetTokenTTL limita la ventana de uso del enlace de restablecimiento.
const resetTokenTTL = 15 * time.Minute

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// JWTConfig agrupa lo necesario para firmar tokens de sesión.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase orquesta autenticación y registro.
type AuthUseCase struct {
	users      repository.UserRepository
	businesses repository.BusinessRepository
	tx         TxRunner
	mailer     Mailer
	jwtCfg     JWTConfig
	log        *logger.Logger
}

// NewAuthUseCase crea el caso de uso de autenticación.
func NewAuthUseCase(
	users repository.UserRepository,
	businesses repository.BusinessRepository,
	tx TxRunner,
	mailer Mailer,
	jwtCfg JWTConfig,
	log *logger.Logger,
) *AuthUseCase {
	return &AuthUseCase{
		users:      users,
		businesses: businesses,
		tx:         tx,
		mailer:     mailer,
		jwtCfg:     jwtCfg,
		log:        log,
	}
}

// Register da de alta al dueño y su negocio. Usuario y negocio se insertan
// en la misma transacción y el usuario queda enlazado al negocio antes del
// commit, de modo que nunca existe una cuenta sin negocio.
func (uc *AuthUseCase) Register(ctx context.Context, req dto.RegisterRequest) (*dto.AuthResponse, error) {
	if verr := validateRegistration(req); verr.HasErrors() {
		return nil, verr
	}

	email := normalizeEmail(req.Email)
	exists, err := uc.users.ExistsByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("verificando email: %w", err)
	}
	if exists {
		return nil, domain.ErrEmailAlreadyExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash: %w", err)
	}

	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		Email:        email,
		Phone:        strings.TrimSpace(req.Phone),
		PasswordHash: string(hash),
		Role:         entity.RoleOwner,
		Active:       true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	business := newBusinessWithDefaults(user, req, now)

	err = uc.tx.Run(ctx, func(userRepo repository.UserRepository, businessRepo repository.BusinessRepository) error {
		if err := userRepo.Create(user); err != nil {
			return err
		}
		if err := businessRepo.Create(business); err != nil {
			return err
		}
		return userRepo.LinkBusiness(user.ID, business.ID)
	})
	if err != nil {
		telemetry.RegistrationsTotal.WithLabelValues(telemetry.StatusError).Inc()
		return nil, err
	}
	user.BusinessID = business.ID
	user.LastLogin = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmando token: %w", err)
	}

	// El correo de bienvenida nunca bloquea el alta.
	if uc.mailer != nil {
		if err := uc.mailer.SendWelcome(ctx, user, business.Name); err != nil {
			uc.log.Warn().Err(err).Str("email", user.Email).Msg("correo de bienvenida no enviado")
		}
	}

	telemetry.RegistrationsTotal.WithLabelValues(telemetry.StatusOK).Inc()
	uc.log.Info().Str("user_id", user.ID).Str("business_id", business.ID).Msg("registro completado")

	return uc.authResponse(token, user, business), nil
}

// Login valida credenciales y estado de la cuenta. Email desconocido y
// contraseña incorrecta responden con el mismo error; cuenta desactivada y
// negocio inactivo se distinguen.
func (uc *AuthUseCase) Login(req dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := uc.users.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		return nil, fmt.Errorf("buscando usuario: %w", err)
	}
	if user == nil {
		telemetry.LoginsTotal.WithLabelValues(telemetry.StatusError).Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		telemetry.LoginsTotal.WithLabelValues(telemetry.StatusError).Inc()
		return nil, domain.ErrInvalidCredentials
	}
	if !user.Active {
		telemetry.LoginsTotal.WithLabelValues(telemetry.StatusError).Inc()
		return nil, domain.ErrAccountDeactivated
	}

	business, err := uc.businessForUser(user)
	if err != nil {
		return nil, err
	}
	if business == nil || !business.Active {
		telemetry.LoginsTotal.WithLabelValues(telemetry.StatusError).Inc()
		return nil, domain.ErrBusinessInactive
	}

	if err := uc.users.TouchLastLogin(user.ID); err != nil {
		return nil, fmt.Errorf("actualizando last_login: %w", err)
	}
	now := time.Now()
	user.LastLogin = &now

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmando token: %w", err)
	}

	telemetry.LoginsTotal.WithLabelValues(telemetry.StatusOK).Inc()
	return uc.authResponse(token, user, business), nil
}

// Me devuelve la cuenta autenticada con su negocio.
func (uc *AuthUseCase) Me(userID string) (*dto.MeResponse, error) {
	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("buscando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	business, err := uc.businessForUser(user)
	if err != nil {
		return nil, err
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	return &dto.MeResponse{
		User:     dto.NewUserResponse(user),
		Business: dto.NewBusinessResponse(business),
	}, nil
}

// UpdatePassword rota la contraseña tras verificar la actual y emite un
// token fresco.
func (uc *AuthUseCase) UpdatePassword(userID string, req dto.UpdatePasswordRequest) (*dto.TokenResponse, error) {
	verr := &domain.ValidationError{}
	if strings.TrimSpace(req.CurrentPassword) == "" {
		verr.Add("currentPassword", "la contraseña actual es obligatoria")
	}
	checkRotatePassword("newPassword", req.NewPassword, verr)
	if verr.HasErrors() {
		return nil, verr
	}

	user, err := uc.users.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("buscando usuario: %w", err)
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.CurrentPassword)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash: %w", err)
	}
	if err := uc.users.UpdatePassword(user.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("guardando contraseña: %w", err)
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmando token: %w", err)
	}
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña actualizada")
	return &dto.TokenResponse{Token: token}, nil
}

// ForgotPassword genera un token de restablecimiento de un solo uso y lo
// envía por correo. En BD solo se guarda el hash del token; si el envío
// falla, el token se invalida antes de reportar el error.
func (uc *AuthUseCase) ForgotPassword(ctx context.Context, req dto.ForgotPasswordRequest) error {
	user, err := uc.users.GetByEmail(normalizeEmail(req.Email))
	if err != nil {
		return fmt.Errorf("buscando usuario: %w", err)
	}
	if user == nil {
		return domain.ErrUserNotFound
	}

	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return fmt.Errorf("generando token: %w", err)
	}
	resetToken := hex.EncodeToString(raw)
	expires := time.Now().Add(resetTokenTTL)

	if err := uc.users.SetResetToken(user.ID, hashResetToken(resetToken), expires); err != nil {
		telemetry.PasswordResetsTotal.WithLabelValues("request", telemetry.StatusError).Inc()
		return fmt.Errorf("guardando token: %w", err)
	}

	if err := uc.mailer.SendPasswordReset(ctx, user, resetToken); err != nil {
		if clearErr := uc.users.ClearResetToken(user.ID); clearErr != nil {
			uc.log.Error().Err(clearErr).Str("user_id", user.ID).Msg("no se pudo invalidar el token de restablecimiento")
		}
		telemetry.PasswordResetsTotal.WithLabelValues("request", telemetry.StatusError).Inc()
		return fmt.Errorf("enviando correo de restablecimiento: %w", err)
	}

	telemetry.PasswordResetsTotal.WithLabelValues("request", telemetry.StatusOK).Inc()
	uc.log.Info().Str("user_id", user.ID).Msg("restablecimiento solicitado")
	return nil
}

// ResetPassword consume el token recibido por correo y deja la sesión
// iniciada con un JWT fresco.
func (uc *AuthUseCase) ResetPassword(token string, req dto.ResetPasswordRequest) (*dto.TokenResponse, error) {
	verr := &domain.ValidationError{}
	checkRotatePassword("password", req.Password, verr)
	if verr.HasErrors() {
		return nil, verr
	}

	user, err := uc.users.GetByResetToken(hashResetToken(token))
	if err != nil {
		return nil, fmt.Errorf("buscando token: %w", err)
	}
	if user == nil {
		telemetry.PasswordResetsTotal.WithLabelValues("confirm", telemetry.StatusError).Inc()
		return nil, domain.ErrTokenExpired
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("generando hash: %w", err)
	}
	if err := uc.users.UpdatePassword(user.ID, string(hash)); err != nil {
		return nil, fmt.Errorf("guardando contraseña: %w", err)
	}
	if err := uc.users.ClearResetToken(user.ID); err != nil {
		return nil, fmt.Errorf("invalidando token: %w", err)
	}

	fresh, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, fmt.Errorf("firmando token: %w", err)
	}

	telemetry.PasswordResetsTotal.WithLabelValues("confirm", telemetry.StatusOK).Inc()
	uc.log.Info().Str("user_id", user.ID).Msg("contraseña restablecida")
	return &dto.TokenResponse{Token: fresh}, nil
}

// businessForUser resuelve el negocio de la cuenta. Prefiere el enlace
// directo y cae a la búsqueda por dueño para filas anteriores al enlace.
func (uc *AuthUseCase) businessForUser(user *entity.User) (*entity.Business, error) {
	if user.BusinessID != "" {
		b, err := uc.businesses.GetByID(user.BusinessID)
		if err != nil {
			return nil, fmt.Errorf("buscando negocio: %w", err)
		}
		return b, nil
	}
	b, err := uc.businesses.GetByOwner(user.ID)
	if err != nil {
		return nil, fmt.Errorf("buscando negocio: %w", err)
	}
	return b, nil
}

func (uc *AuthUseCase) authResponse(token string, user *entity.User, business *entity.Business) *dto.AuthResponse {
	return &dto.AuthResponse{
		Token:    token,
		User:     dto.NewUserResponse(user),
		Business: dto.NewBusinessResponse(business),
	}
}

// newBusinessWithDefaults arma el negocio inicial del alta: datos de
// contacto heredados del dueño cuando no vienen propios, moneda y zona
// horaria por defecto, plan gratuito en prueba y el catálogo de
// preferencias inicial.
func newBusinessWithDefaults(owner *entity.User, req dto.RegisterRequest, now time.Time) *entity.Business {
	industry := strings.ToLower(strings.TrimSpace(req.Industry))
	if industry == "" {
		industry = entity.IndustryOther
	}

	email := normalizeEmail(req.BusinessEmail)
	if email == "" {
		email = owner.Email
	}
	phone := strings.TrimSpace(req.BusinessPhone)
	if phone == "" {
		phone = owner.Phone
	}

	return &entity.Business{
		ID:                 uuid.New().String(),
		OwnerID:            owner.ID,
		Name:               strings.TrimSpace(req.BusinessName),
		Industry:           industry,
		Email:              email,
		Phone:              phone,
		Currency:           entity.CurrencyNGN,
		Timezone:           entity.DefaultTimezone,
		AnnualRevenue:      decimal.Zero,
		Active:             true,
		SubscriptionStatus: entity.SubscriptionTrial,
		SubscriptionPlan:   entity.PlanFree,
		Preferences:        entity.DefaultPreferences(now),
		CreatedAt:          now,
		UpdatedAt:          now,
	}
}

// validateRegistration acumula todos los errores de campo del alta en una
// sola pasada.
func validateRegistration(req dto.RegisterRequest) *domain.ValidationError {
	verr := &domain.ValidationError{}

	if strings.TrimSpace(req.FirstName) == "" {
		verr.Add("firstName", "el nombre es obligatorio")
	}
	if strings.TrimSpace(req.LastName) == "" {
		verr.Add("lastName", "el apellido es obligatorio")
	}
	email := normalizeEmail(req.Email)
	switch {
	case email == "":
		verr.Add("email", "el email es obligatorio")
	case !emailRe.MatchString(email):
		verr.Add("email", "el email no tiene un formato válido")
	}
	checkRegisterPassword("password", req.Password, verr)
	if strings.TrimSpace(req.BusinessName) == "" {
		verr.Add("businessName", "el nombre del negocio es obligatorio")
	}
	if industry := strings.ToLower(strings.TrimSpace(req.Industry)); industry != "" && !entity.ValidIndustry(industry) {
		verr.Add("industry", "industria no soportada")
	}
	if bizEmail := normalizeEmail(req.BusinessEmail); bizEmail != "" && !emailRe.MatchString(bizEmail) {
		verr.Add("businessEmail", "el email no tiene un formato válido")
	}

	return verr
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func hashResetToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
