package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Métricas de negocio
	RegistrationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_registrations_total",
		Help: "Altas de usuario+negocio, por resultado",
	}, []string{"status"})

	LoginsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_logins_total",
		Help: "Intentos de inicio de sesión, por resultado",
	}, []string{"status"})

	PreferenceReplacesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_preference_replaces_total",
		Help: "Reemplazos de preferencias, por colección y resultado",
	}, []string{"collection", "status"})

	PasswordResetsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_password_resets_total",
		Help: "Solicitudes y confirmaciones de restablecimiento de contraseña",
	}, []string{"stage", "status"})

	// Métricas de infraestructura
	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_http_requests_total",
		Help: "Peticiones HTTP atendidas, por método, ruta y código",
	}, []string{"method", "route", "status"})

	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "negociopro_http_request_duration_seconds",
		Help:    "Latencia de las peticiones HTTP",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	RateLimitRejectionsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_rate_limit_rejections_total",
		Help: "Peticiones rechazadas por límite de tasa, por grupo de rutas",
	}, []string{"tier"})

	MailSendsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "negociopro_mail_sends_total",
		Help: "Correos salientes, por plantilla y resultado",
	}, []string{"template", "status"})
)

// Resultados usados como valor del label status.
const (
	StatusOK    = "ok"
	StatusError = "error"
)
