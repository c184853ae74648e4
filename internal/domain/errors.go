package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrUserNotFound            = errors.New("usuario no encontrado")
	ErrBusinessNotFound        = errors.New("negocio no encontrado")
	ErrEmailAlreadyExists      = errors.New("el email ya está registrado")
	ErrRegistrationNumberTaken = errors.New("el número de registro ya está en uso")
	ErrInvalidCredentials      = errors.New("credenciales inválidas")
	ErrAccountDeactivated      = errors.New("la cuenta está desactivada")
	ErrBusinessInactive        = errors.New("el negocio no está disponible")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrUnauthorized            = errors.New("no autorizado")
	ErrForbidden               = errors.New("acceso denegado")
	ErrTokenExpired            = errors.New("el token expiró o no es válido")
	ErrNothingToUpdate         = errors.New("nada que actualizar")
)

// FieldError señala un campo concreto que no pasó validación.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError agrupa los errores de campo de una misma petición.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrInvalidInput.Error()
	}
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Error())
	}
	return strings.Join(msgs, "; ")
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Add acumula un error de campo y devuelve el mismo puntero para encadenar.
func (e *ValidationError) Add(field, message string) *ValidationError {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	return e
}

// HasErrors indica si se acumuló al menos un error de campo.
func (e *ValidationError) HasErrors() bool { return len(e.Fields) > 0 }

// NewValidationError construye un error de validación con un único campo.
func NewValidationError(field, message string) *ValidationError {
	return (&ValidationError{}).Add(field, message)
}
