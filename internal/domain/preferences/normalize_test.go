package preferences_test

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
	"github.com/tu-usuario/negocio-pro/internal/domain/preferences"
)

// ──────────────────────────────────────────────────────────────────────────────
// Normalización de catálogos: unicidad por clave normalizada (case folding),
// campos obligatorios y valores por omisión. La colección entrante se valida
// completa antes de producir la secuencia final: o sale entera o no sale.
// ──────────────────────────────────────────────────────────────────────────────

var testNow = time.Date(2025, 6, 15, 10, 30, 0, 0, time.UTC)

func sequentialIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// ── Categorías ────────────────────────────────────────────────────────────────

func TestNormalizeCategories_AplicaDefaults(t *testing.T) {
	out, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "  Bebidas  "},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "Bebidas", out[0].Name, "el nombre debe quedar sin espacios alrededor")
	assert.Equal(t, entity.DefaultCategoryColor, out[0].Color, "sin color debe aplicar el default")
	assert.True(t, out[0].Active, "active por omisión debe ser true")
	assert.Equal(t, testNow, out[0].CreatedAt, "createdAt por omisión debe ser ahora")
	assert.Equal(t, "id-1", out[0].ID)
}

func TestNormalizeCategories_RespetaValoresExplicitos(t *testing.T) {
	inactive := false
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	out, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "Lácteos", Description: " refrigerados ", Icon: "🥛", Color: "#0EA5E9", Active: &inactive, CreatedAt: &created},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "refrigerados", out[0].Description)
	assert.Equal(t, "#0EA5E9", out[0].Color)
	assert.False(t, out[0].Active, "active=false explícito debe respetarse")
	assert.Equal(t, created, out[0].CreatedAt, "createdAt explícito debe respetarse")
}

func TestNormalizeCategories_NombreDuplicadoCaseInsensitive(t *testing.T) {
	_, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "Bebidas"},
		{Name: "  bebidas "},
	}, testNow, sequentialIDs())

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "categories", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "bebidas", "el mensaje debe listar el valor repetido")
}

func TestNormalizeCategories_NombreVacioObligatorio(t *testing.T) {
	_, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "Bebidas"},
		{Name: "   "},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "categories[1].name", verr.Fields[0].Field)
}

func TestNormalizeCategories_ColorInvalido(t *testing.T) {
	_, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "Bebidas", Color: "azul"},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "categories[0].color", verr.Fields[0].Field)
}

func TestNormalizeCategories_ColorCorto3Digitos(t *testing.T) {
	out, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "Bebidas", Color: "#0af"},
	}, testNow, sequentialIDs())

	require.NoError(t, err, "#RGB de 3 dígitos es hexadecimal válido")
	assert.Equal(t, "#0af", out[0].Color)
}

// ── Unidades ──────────────────────────────────────────────────────────────────

func TestNormalizeUnits_AbreviaturaMayusculasYDefaults(t *testing.T) {
	out, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "Caja", Abbreviation: " bx "},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "BX", out[0].Abbreviation, "la abreviatura debe normalizarse a mayúsculas")
	assert.Equal(t, entity.UnitTypeQuantity, out[0].Type, "sin tipo debe aplicar quantity")
	assert.True(t, out[0].Active)
}

// Caso del contrato: "bx" y "BX" colisionan tras normalizar, la colección
// entera se rechaza y el mensaje nombra la abreviatura ofensora.
func TestNormalizeUnits_AbreviaturaDuplicadaNormalizada(t *testing.T) {
	_, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "Box", Abbreviation: "bx"},
		{Name: "Pack", Abbreviation: "BX"},
	}, testNow, sequentialIDs())

	require.Error(t, err)
	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "units", verr.Fields[0].Field)
	assert.Contains(t, verr.Fields[0].Message, "BX")
}

func TestNormalizeUnits_CamposObligatorios(t *testing.T) {
	_, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "", Abbreviation: ""},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 2, "nombre y abreviatura faltantes deben reportarse por separado")
	assert.Equal(t, "units[0].name", verr.Fields[0].Field)
	assert.Equal(t, "units[0].abbreviation", verr.Fields[1].Field)
}

func TestNormalizeUnits_AbreviaturaDemasiadoLarga(t *testing.T) {
	_, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "Contenedor", Abbreviation: "CONTENEDORES"},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "units[0].abbreviation", verr.Fields[0].Field)
}

func TestNormalizeUnits_TipoInvalido(t *testing.T) {
	_, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "Caja", Abbreviation: "BX", Type: "tamaño"},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	require.Len(t, verr.Fields, 1)
	assert.Equal(t, "units[0].type", verr.Fields[0].Field)
}

func TestNormalizeUnits_TipoSeNormalizaAMinusculas(t *testing.T) {
	out, err := preferences.NormalizeUnits([]preferences.UnitInput{
		{Name: "Metro", Abbreviation: "M", Type: " Length "},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	assert.Equal(t, entity.UnitTypeLength, out[0].Type)
}

// ── Tipos de producto ─────────────────────────────────────────────────────────

func TestNormalizeProductTypes_Defaults(t *testing.T) {
	out, err := preferences.NormalizeProductTypes([]preferences.ProductTypeInput{
		{Name: "Consumible"},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.True(t, out[0].TrackInventory, "trackInventory por omisión debe ser true")
	assert.False(t, out[0].RequiresSerialNumber)
	assert.False(t, out[0].RequiresExpiryDate)
	assert.True(t, out[0].Active)
}

func TestNormalizeProductTypes_BooleanosExplicitos(t *testing.T) {
	noTrack := false
	serial := true
	out, err := preferences.NormalizeProductTypes([]preferences.ProductTypeInput{
		{Name: "Servicio", TrackInventory: &noTrack, RequiresSerialNumber: &serial},
	}, testNow, sequentialIDs())

	require.NoError(t, err)
	assert.False(t, out[0].TrackInventory)
	assert.True(t, out[0].RequiresSerialNumber)
}

func TestNormalizeProductTypes_NombreDuplicado(t *testing.T) {
	_, err := preferences.NormalizeProductTypes([]preferences.ProductTypeInput{
		{Name: "Servicio"},
		{Name: "SERVICIO"},
	}, testNow, sequentialIDs())

	var verr *domain.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, "productTypes", verr.Fields[0].Field)
}

// ── Unicidad con case folding Unicode ─────────────────────────────────────────

// "CAFÉ" y "café" deben colisionar aunque la É requiera folding más allá de
// ASCII; ToLower simple lo resuelve en este caso pero el folding cubre también
// pares como "STRASSE"/"straße".
func TestFoldKey_UnicodeCaseFolding(t *testing.T) {
	_, err := preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "CAFÉ"},
		{Name: "café"},
	}, testNow, sequentialIDs())
	assert.Error(t, err, "mayúsculas acentuadas deben colisionar con minúsculas")

	_, err = preferences.NormalizeCategories([]preferences.CategoryInput{
		{Name: "STRASSE"},
		{Name: "straße"},
	}, testNow, sequentialIDs())
	assert.Error(t, err, "el folding Unicode debe igualar ß con ss")
}

// ── Conteos derivados ─────────────────────────────────────────────────────────

func TestComputeStats_TotalesYActivos(t *testing.T) {
	prefs := entity.Preferences{
		Categories: []entity.Category{
			{Name: "A", Active: true},
			{Name: "B", Active: false},
			{Name: "C", Active: true},
		},
		Units: []entity.Unit{
			{Name: "U1", Active: true},
		},
		ProductTypes: []entity.ProductType{},
	}

	stats := preferences.ComputeStats(prefs)

	assert.Equal(t, 3, stats.Categories.Total)
	assert.Equal(t, 2, stats.Categories.Active)
	assert.Equal(t, 1, stats.Units.Total)
	assert.Equal(t, 1, stats.Units.Active)
	assert.Equal(t, 0, stats.ProductTypes.Total)
	assert.Equal(t, 0, stats.ProductTypes.Active)
}

func TestDefaultPreferences_CatalogoInicialCompleto(t *testing.T) {
	prefs := entity.DefaultPreferences(testNow)

	require.Len(t, prefs.Categories, 3)
	require.Len(t, prefs.Units, 4)
	require.Len(t, prefs.ProductTypes, 3)

	catNames := make([]string, 0, 3)
	for _, c := range prefs.Categories {
		catNames = append(catNames, c.Name)
		assert.True(t, c.Active)
		assert.NotEmpty(t, c.ID)
		assert.Equal(t, testNow, c.CreatedAt)
	}
	assert.Equal(t, []string{"Electronics", "Clothing", "Food & Beverages"}, catNames)

	abbrs := make(map[string]string, 4)
	for _, u := range prefs.Units {
		abbrs[u.Abbreviation] = u.Type
	}
	assert.Equal(t, entity.UnitTypeQuantity, abbrs["PCS"])
	assert.Equal(t, entity.UnitTypeWeight, abbrs["KG"])
	assert.Equal(t, entity.UnitTypeVolume, abbrs["L"])
	assert.Equal(t, entity.UnitTypeQuantity, abbrs["DZ"])

	byName := make(map[string]entity.ProductType, 3)
	for _, pt := range prefs.ProductTypes {
		byName[pt.Name] = pt
	}
	assert.True(t, byName["Physical Product"].TrackInventory)
	assert.False(t, byName["Physical Product"].RequiresExpiryDate)
	assert.True(t, byName["Perishable"].RequiresExpiryDate)
	assert.False(t, byName["Service"].TrackInventory)
}
