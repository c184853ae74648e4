// Package cac normaliza y valida números de registro mercantil de la
// Corporate Affairs Commission de Nigeria: RC (companies) y BN (business
// names). La forma canónica es el prefijo en mayúsculas seguido de los
// dígitos, sin separadores: RC123456, BN2487651.
package cac

import (
	"fmt"
	"strings"
	"unicode"
)

// Prefijos de registro reconocidos por la CAC.
const (
	PrefixCompany      = "RC"
	PrefixBusinessName = "BN"
)

// Longitudes aceptadas para la parte numérica del registro.
const (
	minDigits = 5
	maxDigits = 8
)

// Normalize lleva un número de registro CAC a su forma canónica.
// Acepta variantes como "rc 123456", "RC-123456", "bn/2487651" o solo
// dígitos (se asume RC). Devuelve error si el prefijo no es RC/BN o la
// parte numérica queda fuera de rango.
func Normalize(regNo string) (string, error) {
	cleaned := stripSeparators(regNo)
	if cleaned == "" {
		return "", fmt.Errorf("cac: número de registro vacío")
	}

	prefix := PrefixCompany
	rest := cleaned
	if len(cleaned) >= 2 && !isAllDigits(cleaned[:2]) {
		prefix = strings.ToUpper(cleaned[:2])
		rest = cleaned[2:]
		if prefix != PrefixCompany && prefix != PrefixBusinessName {
			return "", fmt.Errorf("cac: prefijo de registro desconocido %q (se espera RC o BN)", prefix)
		}
	}

	if !isAllDigits(rest) {
		return "", fmt.Errorf("cac: el número de registro solo admite dígitos tras el prefijo")
	}
	if len(rest) < minDigits || len(rest) > maxDigits {
		return "", fmt.Errorf("cac: la parte numérica debe tener entre %d y %d dígitos, se encontraron %d", minDigits, maxDigits, len(rest))
	}

	return prefix + rest, nil
}

// Validate verifica que el número de registro sea normalizable.
func Validate(regNo string) error {
	_, err := Normalize(regNo)
	return err
}

// stripSeparators elimina espacios, puntos, guiones y barras.
func stripSeparators(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsSpace(r), r == '.', r == '-', r == '/':
			continue
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
