package entity

import "time"

// Roles válidos para User.
const (
	RoleOwner    = "owner"
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleEmployee = "employee"
)

// ValidRole indica si el rol está dentro del catálogo soportado.
func ValidRole(role string) bool {
	switch role {
	case RoleOwner, RoleAdmin, RoleManager, RoleEmployee:
		return true
	}
	return false
}

// User representa un usuario del sistema (pertenece a un Business).
type User struct {
	ID                string
	BusinessID        string // vacío solo durante el alta en dos pasos
	FirstName         string
	LastName          string
	Email             string
	Phone             string
	PasswordHash      string // bcrypt hash, nunca plano en dominio después de persistir
	Role              string // owner, admin, manager, employee
	Active            bool
	EmailVerified     bool
	LastLogin         *time.Time // nil = nunca inició sesión
	ResetToken        string     // sha256 hex del token de recuperación, vacío si no hay uno vigente
	ResetTokenExpires *time.Time
	CreatedAt         time.Time
	UpdatedAt         time.Time
}

// FullName devuelve el nombre completo para mostrar.
func (u *User) FullName() string {
	if u.LastName == "" {
		return u.FirstName
	}
	return u.FirstName + " " + u.LastName
}

// IsOwner indica si el usuario es el propietario del negocio.
func (u *User) IsOwner() bool { return u.Role == RoleOwner }
