package auth

import (
	"unicode"

	"github.com/tu-usuario/negocio-pro/internal/domain"
)

const (
	// MinRegisterPasswordLen aplica al alta de cuentas.
	MinRegisterPasswordLen = 8
	// MinRotatePasswordLen aplica al cambio y al restablecimiento.
	// La rotación mantiene el mínimo histórico de 6 caracteres.
	MinRotatePasswordLen = 6
)

// checkRegisterPassword valida la política de alta: longitud mínima y
// presencia de mayúscula, minúscula y dígito.
func checkRegisterPassword(field, password string, verr *domain.ValidationError) {
	if len([]rune(password)) < MinRegisterPasswordLen {
		verr.Add(field, "la contraseña debe tener al menos 8 caracteres")
		return
	}

	var hasUpper, hasLower, hasDigit bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	if !hasUpper || !hasLower || !hasDigit {
		verr.Add(field, "la contraseña debe incluir mayúsculas, minúsculas y números")
	}
}

// checkRotatePassword valida la política de rotación.
func checkRotatePassword(field, password string, verr *domain.ValidationError) {
	if len([]rune(password)) < MinRotatePasswordLen {
		verr.Add(field, "la contraseña debe tener al menos 6 caracteres")
	}
}
