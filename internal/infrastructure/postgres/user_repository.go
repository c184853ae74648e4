package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

const userColumns = `id, business_id, first_name, last_name, email, phone, password_hash,
		role, active, email_verified, last_login, reset_token, reset_token_expires, created_at, updated_at`

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
// Acepta pool o tx (Querier) para servir dentro de la transacción de alta.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios.
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

// Create persiste un nuevo usuario. business_id puede ir vacío: el alta en
// dos pasos lo completa después con LinkBusiness.
func (r *UserRepo) Create(user *entity.User) error {
	query := `
		INSERT INTO users (id, business_id, first_name, last_name, email, phone, password_hash,
			role, active, email_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(context.Background(), query,
		user.ID, nullIfEmpty(user.BusinessID), user.FirstName, user.LastName, user.Email,
		user.Phone, user.PasswordHash, user.Role, user.Active, user.EmailVerified,
		user.CreatedAt, user.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrEmailAlreadyExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// GetByID obtiene un usuario por ID. Devuelve (nil, nil) si no existe.
func (r *UserRepo) GetByID(id string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, id), "get user by id")
}

// GetByEmail obtiene un usuario por email sin distinguir mayúsculas.
func (r *UserRepo) GetByEmail(email string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE lower(email) = lower($1) LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, email), "get user by email")
}

// ExistsByEmail indica si ya hay un usuario registrado con ese email.
func (r *UserRepo) ExistsByEmail(email string) (bool, error) {
	var exists bool
	err := r.q.QueryRow(context.Background(),
		`SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("exists user by email: %w", err)
	}
	return exists, nil
}

// LinkBusiness fija el negocio del usuario y marca el primer inicio de sesión.
func (r *UserRepo) LinkBusiness(userID, businessID string) error {
	query := `UPDATE users SET business_id = $2, last_login = now(), updated_at = now() WHERE id = $1`
	tag, err := r.q.Exec(context.Background(), query, userID, businessID)
	if err != nil {
		return fmt.Errorf("link business: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// TouchLastLogin registra el instante del inicio de sesión.
func (r *UserRepo) TouchLastLogin(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET last_login = now(), updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("touch last login: %w", err)
	}
	return nil
}

// UpdatePassword reemplaza el hash de contraseña.
func (r *UserRepo) UpdatePassword(userID, passwordHash string) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE users SET password_hash = $2, updated_at = now() WHERE id = $1`, userID, passwordHash)
	if err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// SetResetToken guarda el hash del token de recuperación y su vencimiento.
func (r *UserRepo) SetResetToken(userID, tokenHash string, expires time.Time) error {
	tag, err := r.q.Exec(context.Background(),
		`UPDATE users SET reset_token = $2, reset_token_expires = $3, updated_at = now() WHERE id = $1`,
		userID, tokenHash, expires)
	if err != nil {
		return fmt.Errorf("set reset token: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrUserNotFound
	}
	return nil
}

// GetByResetToken busca por hash de token de recuperación aún vigente.
func (r *UserRepo) GetByResetToken(tokenHash string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users
		WHERE reset_token = $1 AND reset_token_expires > now() LIMIT 1`
	return r.scanOne(r.q.QueryRow(context.Background(), query, tokenHash), "get user by reset token")
}

// ClearResetToken invalida el token de recuperación vigente.
func (r *UserRepo) ClearResetToken(userID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE users SET reset_token = NULL, reset_token_expires = NULL, updated_at = now() WHERE id = $1`, userID)
	if err != nil {
		return fmt.Errorf("clear reset token: %w", err)
	}
	return nil
}

func (r *UserRepo) scanOne(row pgx.Row, op string) (*entity.User, error) {
	var (
		u          entity.User
		businessID *string
		resetToken *string
	)
	err := row.Scan(
		&u.ID, &businessID, &u.FirstName, &u.LastName, &u.Email, &u.Phone, &u.PasswordHash,
		&u.Role, &u.Active, &u.EmailVerified, &u.LastLogin, &resetToken, &u.ResetTokenExpires,
		&u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if businessID != nil {
		u.BusinessID = *businessID
	}
	if resetToken != nil {
		u.ResetToken = *resetToken
	}
	return &u, nil
}
