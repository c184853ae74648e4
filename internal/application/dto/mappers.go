package dto

import (
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/preferences"
)

// NewUserResponse proyecta la entidad al contrato público, sin hash ni
// campos de restablecimiento.
func NewUserResponse(u *entity.User) UserResponse {
	return UserResponse{
		ID:            u.ID,
		FirstName:     u.FirstName,
		LastName:      u.LastName,
		FullName:      u.FullName(),
		Email:         u.Email,
		Phone:         u.Phone,
		Role:          u.Role,
		Active:        u.Active,
		EmailVerified: u.EmailVerified,
		LastLogin:     u.LastLogin,
		CreatedAt:     u.CreatedAt,
		UpdatedAt:     u.UpdatedAt,
	}
}

// NewBusinessResponse proyecta el perfil del negocio. Las preferencias
// viajan por su propio endpoint, nunca dentro del perfil.
func NewBusinessResponse(b *entity.Business) BusinessResponse {
	return BusinessResponse{
		ID:                 b.ID,
		OwnerID:            b.OwnerID,
		Name:               b.Name,
		Description:        b.Description,
		Industry:           b.Industry,
		Email:              b.Email,
		Phone:              b.Phone,
		Website:            b.Website,
		Address:            AddressPayload(b.Address),
		Currency:           b.Currency,
		Timezone:           b.Timezone,
		RegistrationNumber: b.RegistrationNumber,
		TaxID:              b.TaxID,
		LogoURL:            b.LogoURL,
		EmployeeCount:      b.EmployeeCount,
		AnnualRevenue:      b.AnnualRevenue,
		Active:             b.Active,
		SubscriptionStatus: b.SubscriptionStatus,
		SubscriptionPlan:   b.SubscriptionPlan,
		CreatedAt:          b.CreatedAt,
		UpdatedAt:          b.UpdatedAt,
	}
}

// NewOwnerSummary reduce al dueño a los campos de contacto.
func NewOwnerSummary(u *entity.User) OwnerSummary {
	return OwnerSummary{
		ID:        u.ID,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		FullName:  u.FullName(),
		Email:     u.Email,
		Phone:     u.Phone,
		Role:      u.Role,
	}
}

// NewPreferencesResponse empaqueta el documento normalizado junto con sus
// contadores.
func NewPreferencesResponse(p entity.Preferences) PreferencesResponse {
	norm := p.Normalized()
	return PreferencesResponse{
		Preferences: norm,
		Stats:       preferences.ComputeStats(norm),
	}
}
