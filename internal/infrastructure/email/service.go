package email

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/sony/gobreaker"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/observability/telemetry"
	"github.com/tu-usuario/negocio-pro/pkg/config"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

// Provider abstrae el transporte de correo saliente (SendGrid o SMTP).
type Provider interface {
	Send(ctx context.Context, to, subject, body string, isHTML bool) error
}

// Service arma y envía los correos transaccionales de la aplicación.
// Todas las salidas pasan por un circuit breaker: si el proveedor encadena
// fallos, se corta rápido en vez de bloquear cada petición en timeouts.
type Service struct {
	cfg         config.MailConfig
	frontendURL string
	provider    Provider
	breaker     *gobreaker.CircuitBreaker
	templates   map[string]*template.Template
	log         *logger.Logger
}

// NewService construye el servicio de correo según la configuración.
func NewService(cfg config.MailConfig, frontendURL string, log *logger.Logger) (*Service, error) {
	s := &Service{
		cfg:         cfg,
		frontendURL: frontendURL,
		templates:   make(map[string]*template.Template),
		log:         log,
	}

	switch cfg.Provider {
	case "sendgrid":
		if cfg.SendGridKey == "" {
			return nil, fmt.Errorf("email: falta SENDGRID_API_KEY para el proveedor sendgrid")
		}
		s.provider = NewSendGridProvider(cfg.SendGridKey, cfg.FromAddress, cfg.FromName)
	case "smtp":
		s.provider = NewSMTPProvider(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass,
			cfg.FromAddress, cfg.FromName)
	default:
		return nil, fmt.Errorf("email: proveedor desconocido %q", cfg.Provider)
	}

	s.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "mail-provider",
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			log.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("circuit breaker de correo cambió de estado")
		},
	})

	s.loadTemplates()
	return s, nil
}

func (s *Service) loadTemplates() {
	s.templates["welcome"] = template.Must(template.New("welcome").Parse(welcomeTemplate))
	s.templates["password_reset"] = template.Must(template.New("password_reset").Parse(passwordResetTemplate))
}

// send pasa el envío por el breaker y registra el resultado.
func (s *Service) send(ctx context.Context, tmplName, to, subject, body string) error {
	_, err := s.breaker.Execute(func() (interface{}, error) {
		return nil, s.provider.Send(ctx, to, subject, body, true)
	})
	if err != nil {
		telemetry.MailSendsTotal.WithLabelValues(tmplName, telemetry.StatusError).Inc()
		if err == gobreaker.ErrOpenState {
			return fmt.Errorf("email: proveedor no disponible (breaker abierto): %w", err)
		}
		return fmt.Errorf("email: envío a %s falló: %w", to, err)
	}
	telemetry.MailSendsTotal.WithLabelValues(tmplName, telemetry.StatusOK).Inc()
	s.log.Debug().Str("to", to).Str("subject", subject).Msg("correo enviado")
	return nil
}

func (s *Service) render(name string, data map[string]any) (string, error) {
	tmpl, ok := s.templates[name]
	if !ok {
		return "", fmt.Errorf("email: plantilla no encontrada: %s", name)
	}
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("email: render de plantilla %s: %w", name, err)
	}
	return buf.String(), nil
}

// SendWelcome da la bienvenida a un usuario recién registrado.
func (s *Service) SendWelcome(ctx context.Context, user *entity.User, businessName string) error {
	body, err := s.render("welcome", map[string]any{
		"UserName":     user.FirstName,
		"BusinessName": businessName,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, "welcome", user.Email, "¡Bienvenido a NegocioPro!", body)
}

// SendPasswordReset envía el enlace de restablecimiento de contraseña.
// El token viaja en claro en el enlace; en la base solo queda su hash.
func (s *Service) SendPasswordReset(ctx context.Context, user *entity.User, resetToken string) error {
	resetURL := fmt.Sprintf("%s/reset-password?token=%s", s.frontendURL, resetToken)
	body, err := s.render("password_reset", map[string]any{
		"UserName": user.FirstName,
		"ResetURL": resetURL,
	})
	if err != nil {
		return err
	}
	return s.send(ctx, "password_reset", user.Email, "Restablece tu contraseña", body)
}
