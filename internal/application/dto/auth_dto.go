package dto

import "time"

// RegisterRequest entrada para el alta de usuario + negocio.
type RegisterRequest struct {
	FirstName     string `json:"firstName" validate:"required,max=50"`
	LastName      string `json:"lastName" validate:"required,max=50"`
	Email         string `json:"email" validate:"required,email"`
	Phone         string `json:"phone" validate:"omitempty,max=20"`
	Password      string `json:"password" validate:"required,min=8"`
	BusinessName  string `json:"businessName" validate:"required,max=100"`
	Industry      string `json:"industry" validate:"omitempty"`
	BusinessEmail string `json:"businessEmail" validate:"omitempty,email"`
	BusinessPhone string `json:"businessPhone" validate:"omitempty,max=20"`
}

// LoginRequest entrada para iniciar sesión.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdatePasswordRequest entrada para rotar la contraseña de la sesión actual.
type UpdatePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=6"`
}

// ForgotPasswordRequest entrada para solicitar el enlace de recuperación.
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ResetPasswordRequest entrada para consumir el token de recuperación.
type ResetPasswordRequest struct {
	Password string `json:"password" validate:"required,min=6"`
}

// UserResponse vista pública de un usuario (sin hash de contraseña).
type UserResponse struct {
	ID            string     `json:"id"`
	FirstName     string     `json:"firstName"`
	LastName      string     `json:"lastName"`
	FullName      string     `json:"fullName"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone,omitempty"`
	Role          string     `json:"role"`
	Active        bool       `json:"active"`
	EmailVerified bool       `json:"emailVerified"`
	LastLogin     *time.Time `json:"lastLogin,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// AuthResponse salida de registro y login: token más las vistas públicas.
type AuthResponse struct {
	Token    string           `json:"token"`
	User     UserResponse     `json:"user"`
	Business BusinessResponse `json:"business"`
}

// MeResponse salida de la sesión actual.
type MeResponse struct {
	User     UserResponse     `json:"user"`
	Business BusinessResponse `json:"business"`
}

// TokenResponse salida con un token fresco (rotación de contraseña).
type TokenResponse struct {
	Token string `json:"token"`
}
