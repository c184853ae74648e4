package repository

import (
	"time"

	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	// GetByEmail busca por email sin distinguir mayúsculas. Devuelve (nil, nil) si no existe.
	GetByEmail(email string) (*entity.User, error)
	ExistsByEmail(email string) (bool, error)
	// LinkBusiness completa el alta en dos pasos: fija business_id y marca el primer login.
	LinkBusiness(userID, businessID string) error
	TouchLastLogin(userID string) error
	UpdatePassword(userID, passwordHash string) error
	SetResetToken(userID, tokenHash string, expires time.Time) error
	// GetByResetToken busca por hash de token vigente. Devuelve (nil, nil) si no hay coincidencia.
	GetByResetToken(tokenHash string) (*entity.User, error)
	ClearResetToken(userID string) error
}
