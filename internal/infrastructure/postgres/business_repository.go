package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
)

var _ repository.BusinessRepository = (*BusinessRepo)(nil)

const businessColumns = `id, owner_id, name, description, industry, email, phone, website, address,
		currency, timezone, registration_number, tax_id, logo_url, employee_count, annual_revenue,
		active, subscription_status, subscription_plan, preferences, created_at, updated_at`

// BusinessRepo implementación del puerto BusinessRepository sobre PostgreSQL.
// Acepta pool o tx (Querier) para servir dentro de la transacción de alta.
type BusinessRepo struct {
	q Querier
}

// NewBusinessRepository construye el adaptador de persistencia para negocios.
func NewBusinessRepository(q Querier) *BusinessRepo {
	return &BusinessRepo{q: q}
}

// Create persiste un nuevo negocio con su documento de preferencias.
func (r *BusinessRepo) Create(b *entity.Business) error {
	address, err := json.Marshal(b.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	prefs, err := marshalPreferences(b.Preferences)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO businesses (id, owner_id, name, description, industry, email, phone, website, address,
			currency, timezone, registration_number, tax_id, logo_url, employee_count, annual_revenue,
			active, subscription_status, subscription_plan, preferences, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19, $20, $21, $22)`
	_, err = r.q.Exec(context.Background(), query,
		b.ID, b.OwnerID, b.Name, b.Description, b.Industry, b.Email, b.Phone, b.Website, address,
		b.Currency, b.Timezone, nullIfEmpty(b.RegistrationNumber), b.TaxID, b.LogoURL,
		b.EmployeeCount, b.AnnualRevenue, b.Active, b.SubscriptionStatus, b.SubscriptionPlan,
		prefs, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		return translateBusinessUnique(err, "insert business")
	}
	return nil
}

// GetByID obtiene un negocio por ID. Devuelve (nil, nil) si no existe.
func (r *BusinessRepo) GetByID(id string) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get business by id")
}

// GetByOwner obtiene el negocio cuyo propietario es el usuario dado.
func (r *BusinessRepo) GetByOwner(ownerID string) (*entity.Business, error) {
	query := `SELECT ` + businessColumns + ` FROM businesses WHERE owner_id = $1 LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, ownerID), "get business by owner")
}

// Update actualiza el perfil del negocio (no toca preferencias ni suscripción).
func (r *BusinessRepo) Update(b *entity.Business) error {
	address, err := json.Marshal(b.Address)
	if err != nil {
		return fmt.Errorf("marshal address: %w", err)
	}
	query := `
		UPDATE businesses SET name = $2, description = $3, industry = $4, email = $5, phone = $6,
			website = $7, address = $8, currency = $9, timezone = $10, registration_number = $11,
			tax_id = $12, logo_url = $13, employee_count = $14, annual_revenue = $15, updated_at = $16
		WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query,
		b.ID, b.Name, b.Description, b.Industry, b.Email, b.Phone, b.Website, address,
		b.Currency, b.Timezone, nullIfEmpty(b.RegistrationNumber), b.TaxID, b.LogoURL,
		b.EmployeeCount, b.AnnualRevenue, b.UpdatedAt,
	)
	if err != nil {
		return translateBusinessUnique(err, "update business")
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

// UpdatePreferences reemplaza el documento de preferencias en una sola escritura
// (el lector concurrente ve el documento viejo completo o el nuevo completo).
func (r *BusinessRepo) UpdatePreferences(businessID string, prefs entity.Preferences) error {
	doc, err := marshalPreferences(prefs)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(context.Background(),
		`UPDATE businesses SET preferences = $2, updated_at = now() WHERE id = $1`, businessID, doc)
	if err != nil {
		return fmt.Errorf("update preferences: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrBusinessNotFound
	}
	return nil
}

func (r *BusinessRepo) scanOne(row pgx.Row, op string) (*entity.Business, error) {
	var (
		b     entity.Business
		regNo *string
		prefs *entity.Preferences
	)
	err := row.Scan(
		&b.ID, &b.OwnerID, &b.Name, &b.Description, &b.Industry, &b.Email, &b.Phone, &b.Website, &b.Address,
		&b.Currency, &b.Timezone, &regNo, &b.TaxID, &b.LogoURL, &b.EmployeeCount, &b.AnnualRevenue,
		&b.Active, &b.SubscriptionStatus, &b.SubscriptionPlan, &prefs, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if regNo != nil {
		b.RegistrationNumber = *regNo
	}
	// Columna NULL = documento ausente (fila previa a la migración): se deja
	// el cero para que la capa de aplicación repare con colecciones vacías.
	if prefs != nil {
		b.Preferences = prefs.Normalized()
	}
	return &b, nil
}

// marshalPreferences serializa el documento; un documento cero (ausente) viaja como NULL.
func marshalPreferences(p entity.Preferences) (any, error) {
	if p.IsZero() {
		return nil, nil
	}
	doc, err := json.Marshal(p.Normalized())
	if err != nil {
		return nil, fmt.Errorf("marshal preferences: %w", err)
	}
	return doc, nil
}

// translateBusinessUnique convierte violaciones de unicidad a errores de dominio.
func translateBusinessUnique(err error, op string) error {
	if isUniqueViolation(err) {
		if uniqueConstraint(err) == "businesses_registration_number_idx" {
			return domain.ErrRegistrationNumberTaken
		}
		return domain.ErrDuplicate
	}
	return fmt.Errorf("%s: %w", op, err)
}
