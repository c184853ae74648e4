package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/preferences"
)

// AddressPayload dirección física tal como viaja en la API.
type AddressPayload struct {
	Street  string `json:"street,omitempty"`
	City    string `json:"city,omitempty"`
	State   string `json:"state,omitempty"`
	Country string `json:"country,omitempty"`
	ZipCode string `json:"zipCode,omitempty"`
}

// UpdateBusinessRequest entrada para actualizar el perfil del negocio
// (campos opcionales: solo se tocan los enviados).
type UpdateBusinessRequest struct {
	Name               *string          `json:"name" validate:"omitempty,min=1,max=100"`
	Description        *string          `json:"description" validate:"omitempty,max=500"`
	Industry           *string          `json:"industry"`
	Email              *string          `json:"email" validate:"omitempty,email"`
	Phone              *string          `json:"phone"`
	Website            *string          `json:"website"`
	Address            *AddressPayload  `json:"address"`
	Currency           *string          `json:"currency"`
	Timezone           *string          `json:"timezone"`
	RegistrationNumber *string          `json:"registrationNumber"`
	TaxID              *string          `json:"taxId"`
	LogoURL            *string          `json:"logoUrl"`
	EmployeeCount      *int             `json:"employeeCount" validate:"omitempty,min=0"`
	AnnualRevenue      *decimal.Decimal `json:"annualRevenue" swaggertype:"number"`
}

// Empty indica que la petición no trae ningún campo.
func (r UpdateBusinessRequest) Empty() bool {
	return r.Name == nil && r.Description == nil && r.Industry == nil &&
		r.Email == nil && r.Phone == nil && r.Website == nil &&
		r.Address == nil && r.Currency == nil && r.Timezone == nil &&
		r.RegistrationNumber == nil && r.TaxID == nil && r.LogoURL == nil &&
		r.EmployeeCount == nil && r.AnnualRevenue == nil
}

// BusinessResponse vista pública del negocio (sin el documento de preferencias,
// que tiene su propio endpoint).
type BusinessResponse struct {
	ID                 string          `json:"id"`
	OwnerID            string          `json:"ownerId"`
	Name               string          `json:"name"`
	Description        string          `json:"description,omitempty"`
	Industry           string          `json:"industry"`
	Email              string          `json:"email,omitempty"`
	Phone              string          `json:"phone,omitempty"`
	Website            string          `json:"website,omitempty"`
	Address            AddressPayload  `json:"address"`
	Currency           string          `json:"currency"`
	Timezone           string          `json:"timezone"`
	RegistrationNumber string          `json:"registrationNumber,omitempty"`
	TaxID              string          `json:"taxId,omitempty"`
	LogoURL            string          `json:"logoUrl,omitempty"`
	EmployeeCount      int             `json:"employeeCount"`
	AnnualRevenue      decimal.Decimal `json:"annualRevenue" swaggertype:"number"`
	Active             bool            `json:"active"`
	SubscriptionStatus string          `json:"subscriptionStatus"`
	SubscriptionPlan   string          `json:"subscriptionPlan"`
	CreatedAt          time.Time       `json:"createdAt"`
	UpdatedAt          time.Time       `json:"updatedAt"`
}

// OwnerSummary proyección reducida del propietario para el perfil del negocio.
type OwnerSummary struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role"`
}

// BusinessProfileResponse perfil completo: negocio más resumen del propietario.
type BusinessProfileResponse struct {
	Business BusinessResponse `json:"business"`
	Owner    OwnerSummary     `json:"owner"`
}

// CategoryPayload categoría entrante en el reemplazo de preferencias.
type CategoryPayload struct {
	Name        string     `json:"name"`
	Description string     `json:"description"`
	Icon        string     `json:"icon"`
	Color       string     `json:"color"`
	Active      *bool      `json:"active"`
	CreatedAt   *time.Time `json:"createdAt"`
}

// UnitPayload unidad entrante en el reemplazo de preferencias.
type UnitPayload struct {
	Name         string     `json:"name"`
	Abbreviation string     `json:"abbreviation"`
	Type         string     `json:"type"`
	Active       *bool      `json:"active"`
	CreatedAt    *time.Time `json:"createdAt"`
}

// ProductTypePayload tipo de producto entrante en el reemplazo de preferencias.
type ProductTypePayload struct {
	Name                 string     `json:"name"`
	Description          string     `json:"description"`
	TrackInventory       *bool      `json:"trackInventory"`
	RequiresSerialNumber *bool      `json:"requiresSerialNumber"`
	RequiresExpiryDate   *bool      `json:"requiresExpiryDate"`
	Active               *bool      `json:"active"`
	CreatedAt            *time.Time `json:"createdAt"`
}

// UpdatePreferencesRequest entrada del reemplazo de preferencias. Cada
// colección es opcional; un puntero nil significa "no tocar esa colección".
type UpdatePreferencesRequest struct {
	Categories   *[]CategoryPayload    `json:"categories"`
	Units        *[]UnitPayload        `json:"units"`
	ProductTypes *[]ProductTypePayload `json:"productTypes"`
}

// Empty indica que la petición no trae ninguna colección.
func (r UpdatePreferencesRequest) Empty() bool {
	return r.Categories == nil && r.Units == nil && r.ProductTypes == nil
}

// PreferencesResponse documento de preferencias más conteos derivados.
type PreferencesResponse struct {
	Preferences entity.Preferences `json:"preferences"`
	Stats       preferences.Stats  `json:"stats"`
}
