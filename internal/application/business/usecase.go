// Package business gestiona el perfil del negocio y sus preferencias
// operativas: categorías, unidades de medida y tipos de producto.
package business

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/tu-usuario/negocio-pro/internal/application/dto"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/preferences"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
	"github.com/tu-usuario/negocio-pro/internal/observability/telemetry"
	"github.com/tu-usuario/negocio-pro/pkg/cac"
	"github.com/tu-usuario/negocio-pro/pkg/logger"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// BusinessUseCase orquesta el perfil del negocio y sus preferencias.
type BusinessUseCase struct {
	businesses repository.BusinessRepository
	users      OwnerReader
	log        *logger.Logger
}

// NewBusinessUseCase crea el caso de uso de negocio.
func NewBusinessUseCase(
	businesses repository.BusinessRepository,
	users OwnerReader,
	log *logger.Logger,
) *BusinessUseCase {
	return &BusinessUseCase{businesses: businesses, users: users, log: log}
}

// GetProfile devuelve el negocio junto con el resumen de contacto del dueño.
func (uc *BusinessUseCase) GetProfile(businessID string) (*dto.BusinessProfileResponse, error) {
	business, err := uc.businesses.GetByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("buscando negocio: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	owner, err := uc.users.GetByID(business.OwnerID)
	if err != nil {
		return nil, fmt.Errorf("buscando dueño: %w", err)
	}
	if owner == nil {
		return nil, domain.ErrUserNotFound
	}

	return &dto.BusinessProfileResponse{
		Business: dto.NewBusinessResponse(business),
		Owner:    dto.NewOwnerSummary(owner),
	}, nil
}

// UpdateProfile aplica solo los campos presentes en la petición. El número
// de registro se normaliza a la forma canónica de la CAC antes de guardar.
func (uc *BusinessUseCase) UpdateProfile(businessID string, req dto.UpdateBusinessRequest) (*dto.BusinessResponse, error) {
	if req.Empty() {
		return nil, domain.ErrNothingToUpdate
	}

	business, err := uc.businesses.GetByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("buscando negocio: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	verr := &domain.ValidationError{}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			verr.Add("name", "el nombre no puede quedar vacío")
		} else {
			business.Name = name
		}
	}
	if req.Description != nil {
		business.Description = strings.TrimSpace(*req.Description)
	}
	if req.Industry != nil {
		industry := strings.ToLower(strings.TrimSpace(*req.Industry))
		if !entity.ValidIndustry(industry) {
			verr.Add("industry", "industria no soportada")
		} else {
			business.Industry = industry
		}
	}
	if req.Email != nil {
		email := strings.ToLower(strings.TrimSpace(*req.Email))
		if !emailRe.MatchString(email) {
			verr.Add("email", "el email no tiene un formato válido")
		} else {
			business.Email = email
		}
	}
	if req.Phone != nil {
		business.Phone = strings.TrimSpace(*req.Phone)
	}
	if req.Website != nil {
		business.Website = strings.TrimSpace(*req.Website)
	}
	if req.Address != nil {
		business.Address = entity.Address(*req.Address)
	}
	if req.Currency != nil {
		currency := strings.ToUpper(strings.TrimSpace(*req.Currency))
		if !entity.ValidCurrency(currency) {
			verr.Add("currency", "moneda no soportada")
		} else {
			business.Currency = currency
		}
	}
	if req.Timezone != nil {
		tz := strings.TrimSpace(*req.Timezone)
		if tz == "" {
			verr.Add("timezone", "la zona horaria no puede quedar vacía")
		} else {
			business.Timezone = tz
		}
	}
	if req.RegistrationNumber != nil {
		raw := strings.TrimSpace(*req.RegistrationNumber)
		if raw == "" {
			business.RegistrationNumber = ""
		} else {
			normalized, err := cac.Normalize(raw)
			if err != nil {
				verr.Add("registrationNumber", strings.TrimPrefix(err.Error(), "cac: "))
			} else {
				business.RegistrationNumber = normalized
			}
		}
	}
	if req.TaxID != nil {
		business.TaxID = strings.TrimSpace(*req.TaxID)
	}
	if req.LogoURL != nil {
		business.LogoURL = strings.TrimSpace(*req.LogoURL)
	}
	if req.EmployeeCount != nil {
		if *req.EmployeeCount < 0 {
			verr.Add("employeeCount", "el número de empleados no puede ser negativo")
		} else {
			business.EmployeeCount = *req.EmployeeCount
		}
	}
	if req.AnnualRevenue != nil {
		if req.AnnualRevenue.IsNegative() {
			verr.Add("annualRevenue", "los ingresos anuales no pueden ser negativos")
		} else {
			business.AnnualRevenue = *req.AnnualRevenue
		}
	}

	if verr.HasErrors() {
		return nil, verr
	}

	business.UpdatedAt = time.Now()
	if err := uc.businesses.Update(business); err != nil {
		return nil, err
	}

	uc.log.Info().Str("business_id", business.ID).Msg("perfil de negocio actualizado")
	resp := dto.NewBusinessResponse(business)
	return &resp, nil
}

// GetPreferences devuelve el documento de preferencias con sus contadores.
// Los registros antiguos sin documento se reparan en la lectura: se les
// persisten tres colecciones vacías en lugar de fallar.
func (uc *BusinessUseCase) GetPreferences(businessID string) (*dto.PreferencesResponse, error) {
	business, err := uc.businesses.GetByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("buscando negocio: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	prefs := business.Preferences
	if prefs.IsZero() {
		prefs = entity.EmptyPreferences()
		if err := uc.businesses.UpdatePreferences(business.ID, prefs); err != nil {
			return nil, fmt.Errorf("inicializando preferencias: %w", err)
		}
		uc.log.Info().Str("business_id", business.ID).Msg("preferencias inicializadas en lectura")
	}

	resp := dto.NewPreferencesResponse(prefs)
	return &resp, nil
}

// ReplacePreferences reemplaza por completo cada colección presente en la
// petición. Las colecciones ausentes no se tocan y el documento se persiste
// en una sola escritura, de modo que un fallo en una colección no aplica
// parcialmente otra.
func (uc *BusinessUseCase) ReplacePreferences(businessID string, req dto.UpdatePreferencesRequest) (*dto.PreferencesResponse, error) {
	if req.Empty() {
		return nil, domain.ErrNothingToUpdate
	}

	business, err := uc.businesses.GetByID(businessID)
	if err != nil {
		return nil, fmt.Errorf("buscando negocio: %w", err)
	}
	if business == nil {
		return nil, domain.ErrBusinessNotFound
	}

	next := business.Preferences.Normalized()
	now := time.Now()
	newID := func() string { return uuid.New().String() }
	verr := &domain.ValidationError{}
	var touched []string

	if req.Categories != nil {
		cats, err := preferences.NormalizeCategories(toCategoryInputs(*req.Categories), now, newID)
		if err != nil {
			mergeValidation(verr, err)
		} else {
			next.Categories = cats
		}
		touched = append(touched, preferences.FieldCategories)
	}
	if req.Units != nil {
		units, err := preferences.NormalizeUnits(toUnitInputs(*req.Units), now, newID)
		if err != nil {
			mergeValidation(verr, err)
		} else {
			next.Units = units
		}
		touched = append(touched, preferences.FieldUnits)
	}
	if req.ProductTypes != nil {
		types, err := preferences.NormalizeProductTypes(toProductTypeInputs(*req.ProductTypes), now, newID)
		if err != nil {
			mergeValidation(verr, err)
		} else {
			next.ProductTypes = types
		}
		touched = append(touched, preferences.FieldProductTypes)
	}

	if verr.HasErrors() {
		for _, collection := range touched {
			telemetry.PreferenceReplacesTotal.WithLabelValues(collection, telemetry.StatusError).Inc()
		}
		return nil, verr
	}

	if err := uc.businesses.UpdatePreferences(business.ID, next); err != nil {
		return nil, fmt.Errorf("guardando preferencias: %w", err)
	}

	for _, collection := range touched {
		telemetry.PreferenceReplacesTotal.WithLabelValues(collection, telemetry.StatusOK).Inc()
	}
	uc.log.Info().
		Str("business_id", business.ID).
		Strs("collections", touched).
		Msg("preferencias reemplazadas")

	resp := dto.NewPreferencesResponse(next)
	return &resp, nil
}

// mergeValidation acumula los campos de un error de validación ajeno.
func mergeValidation(dst *domain.ValidationError, err error) {
	var src *domain.ValidationError
	if errors.As(err, &src) {
		dst.Fields = append(dst.Fields, src.Fields...)
		return
	}
	dst.Add("", err.Error())
}

func toCategoryInputs(in []dto.CategoryPayload) []preferences.CategoryInput {
	out := make([]preferences.CategoryInput, len(in))
	for i, c := range in {
		out[i] = preferences.CategoryInput{
			Name:        c.Name,
			Description: c.Description,
			Icon:        c.Icon,
			Color:       c.Color,
			Active:      c.Active,
			CreatedAt:   c.CreatedAt,
		}
	}
	return out
}

func toUnitInputs(in []dto.UnitPayload) []preferences.UnitInput {
	out := make([]preferences.UnitInput, len(in))
	for i, u := range in {
		out[i] = preferences.UnitInput{
			Name:         u.Name,
			Abbreviation: u.Abbreviation,
			Type:         u.Type,
			Active:       u.Active,
			CreatedAt:    u.CreatedAt,
		}
	}
	return out
}

func toProductTypeInputs(in []dto.ProductTypePayload) []preferences.ProductTypeInput {
	out := make([]preferences.ProductTypeInput, len(in))
	for i, p := range in {
		out[i] = preferences.ProductTypeInput{
			Name:                 p.Name,
			Description:          p.Description,
			TrackInventory:       p.TrackInventory,
			RequiresSerialNumber: p.RequiresSerialNumber,
			RequiresExpiryDate:   p.RequiresExpiryDate,
			Active:               p.Active,
			CreatedAt:            p.CreatedAt,
		}
	}
	return out
}
