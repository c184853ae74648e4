package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Industrias soportadas (deben coincidir con el CHECK de la tabla businesses).
const (
	IndustryRetail        = "retail"
	IndustryWholesale     = "wholesale"
	IndustryManufacturing = "manufacturing"
	IndustryServices      = "services"
	IndustryTechnology    = "technology"
	IndustryAgriculture   = "agriculture"
	IndustryHealthcare    = "healthcare"
	IndustryEducation     = "education"
	IndustryHospitality   = "hospitality"
	IndustryLogistics     = "logistics"
	IndustryOther         = "other"
)

// ValidIndustry indica si la industria pertenece al catálogo soportado.
func ValidIndustry(industry string) bool {
	switch industry {
	case IndustryRetail, IndustryWholesale, IndustryManufacturing, IndustryServices,
		IndustryTechnology, IndustryAgriculture, IndustryHealthcare, IndustryEducation,
		IndustryHospitality, IndustryLogistics, IndustryOther:
		return true
	}
	return false
}

// Monedas soportadas para operar el negocio.
const (
	CurrencyNGN = "NGN"
	CurrencyUSD = "USD"
	CurrencyEUR = "EUR"
	CurrencyGBP = "GBP"
	CurrencyGHS = "GHS"
	CurrencyKES = "KES"
	CurrencyZAR = "ZAR"
)

// ValidCurrency indica si la moneda pertenece al catálogo soportado.
func ValidCurrency(currency string) bool {
	switch currency {
	case CurrencyNGN, CurrencyUSD, CurrencyEUR, CurrencyGBP, CurrencyGHS, CurrencyKES, CurrencyZAR:
		return true
	}
	return false
}

// DefaultTimezone es la zona horaria asignada a negocios nuevos.
const DefaultTimezone = "Africa/Lagos"

// Estados de suscripción del negocio.
const (
	SubscriptionTrial     = "trial"
	SubscriptionActive    = "active"
	SubscriptionSuspended = "suspended"
	SubscriptionCancelled = "cancelled"
)

// Planes de suscripción disponibles.
const (
	PlanFree       = "free"
	PlanStarter    = "starter"
	PlanGrowth     = "growth"
	PlanEnterprise = "enterprise"
)

// Address es la dirección física del negocio (se persiste como JSONB).
type Address struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// Business representa un negocio/tenant del sistema (multi-tenant).
// Preferences vive como documento único dentro de la fila para que cada
// reemplazo sea una sola escritura atómica.
type Business struct {
	ID                 string
	OwnerID            string
	Name               string
	Description        string
	Industry           string // ver constantes Industry*
	Email              string
	Phone              string
	Website            string
	Address            Address
	Currency           string // ver constantes Currency*
	Timezone           string
	RegistrationNumber string // RC/BN normalizado, vacío si no se informó
	TaxID              string
	LogoURL            string
	EmployeeCount      int
	AnnualRevenue      decimal.Decimal
	Active             bool
	SubscriptionStatus string // trial, active, suspended, cancelled
	SubscriptionPlan   string // free, starter, growth, enterprise
	Preferences        Preferences
	CreatedAt          time.Time
	UpdatedAt          time.Time
}
