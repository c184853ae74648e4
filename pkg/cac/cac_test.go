package cac_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/negocio-pro/pkg/cac"
)

func TestNormalize_FormasCanonicas(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"RC123456", "RC123456"},
		{"rc 123456", "RC123456"},
		{"RC-123456", "RC123456"},
		{"rc/1234567", "RC1234567"},
		{"BN2487651", "BN2487651"},
		{"bn 24876", "BN24876"},
		{"123456", "RC123456"}, // solo dígitos: se asume company
	}
	for _, tc := range cases {
		got, err := cac.Normalize(tc.in)
		require.NoError(t, err, "Normalize(%q)", tc.in)
		assert.Equal(t, tc.want, got, "Normalize(%q)", tc.in)
	}
}

func TestNormalize_PrefijoDesconocido(t *testing.T) {
	_, err := cac.Normalize("XX123456")
	assert.Error(t, err, "prefijos distintos de RC/BN deben rechazarse")
}

func TestNormalize_DigitosFueraDeRango(t *testing.T) {
	_, err := cac.Normalize("RC1234")
	assert.Error(t, err, "menos de 5 dígitos debe rechazarse")

	_, err = cac.Normalize("RC123456789")
	assert.Error(t, err, "más de 8 dígitos debe rechazarse")
}

func TestNormalize_CaracteresInvalidos(t *testing.T) {
	_, err := cac.Normalize("RC12A456")
	assert.Error(t, err, "letras dentro de la parte numérica deben rechazarse")
}

func TestNormalize_Vacio(t *testing.T) {
	_, err := cac.Normalize("   ")
	assert.Error(t, err)
}

func TestValidate_Delegado(t *testing.T) {
	assert.NoError(t, cac.Validate("BN 2487651"))
	assert.Error(t, cac.Validate("QQ999"))
}
