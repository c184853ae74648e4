// Package preferences valida y normaliza los catálogos configurables del
// negocio (categorías, unidades y tipos de producto). La unicidad se verifica
// sobre mapas indexados por la clave normalizada; la secuencia ordenada solo
// existe en el borde con el almacén.
package preferences

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/tu-usuario/negocio-pro/internal/domain"
	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
)

// Nombres de campo tal como viajan en la petición.
const (
	FieldCategories   = "categories"
	FieldUnits        = "units"
	FieldProductTypes = "productTypes"
)

// MaxAbbreviationLen limita la abreviatura de una unidad ya normalizada.
const MaxAbbreviationLen = 10

var hexColorRe = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// CategoryInput es una categoría tal como llega en la petición, antes de
// normalizar. Los punteros distinguen "no enviado" de "enviado en cero".
type CategoryInput struct {
	Name        string
	Description string
	Icon        string
	Color       string
	Active      *bool
	CreatedAt   *time.Time
}

// UnitInput es una unidad tal como llega en la petición.
type UnitInput struct {
	Name         string
	Abbreviation string
	Type         string
	Active       *bool
	CreatedAt    *time.Time
}

// ProductTypeInput es un tipo de producto tal como llega en la petición.
type ProductTypeInput struct {
	Name                 string
	Description          string
	TrackInventory       *bool
	RequiresSerialNumber *bool
	RequiresExpiryDate   *bool
	Active               *bool
	CreatedAt            *time.Time
}

// foldKey calcula la clave de unicidad: recorte de espacios y case folding
// Unicode, para que "Café" y "CAFÉ" colisionen igual que "cafe" y "CAFE" no.
func foldKey(s string) string {
	return cases.Fold().String(strings.TrimSpace(s))
}

// duplicatedValues devuelve, en orden de aparición, los valores cuya clave
// normalizada se repite dentro de la colección. Las claves vacías no cuentan:
// esas fallan el chequeo de obligatoriedad.
func duplicatedValues(values []string) []string {
	seen := make(map[string]int, len(values))
	var dups []string
	for _, v := range values {
		key := foldKey(v)
		if key == "" {
			continue
		}
		seen[key]++
		if seen[key] == 2 {
			dups = append(dups, strings.TrimSpace(v))
		}
	}
	return dups
}

// NormalizeCategories valida y normaliza una colección completa de categorías.
// Devuelve la colección lista para persistir o un *domain.ValidationError.
func NormalizeCategories(in []CategoryInput, now time.Time, newID func() string) ([]entity.Category, error) {
	names := make([]string, len(in))
	for i, c := range in {
		names[i] = c.Name
	}
	if dups := duplicatedValues(names); len(dups) > 0 {
		return nil, domain.NewValidationError(FieldCategories,
			fmt.Sprintf("nombres de categoría duplicados: %s", strings.Join(dups, ", ")))
	}

	verr := &domain.ValidationError{}
	out := make([]entity.Category, 0, len(in))
	for i, c := range in {
		name := strings.TrimSpace(c.Name)
		if name == "" {
			verr.Add(fmt.Sprintf("%s[%d].name", FieldCategories, i), "el nombre es obligatorio")
			continue
		}
		color := strings.TrimSpace(c.Color)
		if color == "" {
			color = entity.DefaultCategoryColor
		} else if !hexColorRe.MatchString(color) {
			verr.Add(fmt.Sprintf("%s[%d].color", FieldCategories, i), "el color debe ser hexadecimal, por ejemplo #6366F1")
			continue
		}
		out = append(out, entity.Category{
			ID:          newID(),
			Name:        name,
			Description: strings.TrimSpace(c.Description),
			Icon:        strings.TrimSpace(c.Icon),
			Color:       color,
			Active:      boolOrDefault(c.Active, true),
			CreatedAt:   timeOrDefault(c.CreatedAt, now),
		})
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

// NormalizeUnits valida y normaliza una colección completa de unidades.
// La abreviatura se almacena en mayúsculas y es la clave de unicidad.
func NormalizeUnits(in []UnitInput, now time.Time, newID func() string) ([]entity.Unit, error) {
	abbrs := make([]string, len(in))
	for i, u := range in {
		abbrs[i] = strings.ToUpper(strings.TrimSpace(u.Abbreviation))
	}
	if dups := duplicatedValues(abbrs); len(dups) > 0 {
		return nil, domain.NewValidationError(FieldUnits,
			fmt.Sprintf("abreviaturas duplicadas: %s", strings.Join(dups, ", ")))
	}

	verr := &domain.ValidationError{}
	out := make([]entity.Unit, 0, len(in))
	for i, u := range in {
		name := strings.TrimSpace(u.Name)
		abbr := strings.ToUpper(strings.TrimSpace(u.Abbreviation))
		if name == "" {
			verr.Add(fmt.Sprintf("%s[%d].name", FieldUnits, i), "el nombre es obligatorio")
		}
		if abbr == "" {
			verr.Add(fmt.Sprintf("%s[%d].abbreviation", FieldUnits, i), "la abreviatura es obligatoria")
		} else if len([]rune(abbr)) > MaxAbbreviationLen {
			verr.Add(fmt.Sprintf("%s[%d].abbreviation", FieldUnits, i),
				fmt.Sprintf("la abreviatura no puede superar %d caracteres", MaxAbbreviationLen))
		}
		unitType := strings.ToLower(strings.TrimSpace(u.Type))
		if unitType == "" {
			unitType = entity.DefaultUnitType
		} else if !entity.ValidUnitType(unitType) {
			verr.Add(fmt.Sprintf("%s[%d].type", FieldUnits, i),
				"el tipo debe ser weight, volume, length, quantity u other")
		}
		if name == "" || abbr == "" {
			continue
		}
		out = append(out, entity.Unit{
			ID:           newID(),
			Name:         name,
			Abbreviation: abbr,
			Type:         unitType,
			Active:       boolOrDefault(u.Active, true),
			CreatedAt:    timeOrDefault(u.CreatedAt, now),
		})
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

// NormalizeProductTypes valida y normaliza una colección completa de tipos de
// producto. TrackInventory por omisión queda en true; los demás booleanos en false.
func NormalizeProductTypes(in []ProductTypeInput, now time.Time, newID func() string) ([]entity.ProductType, error) {
	names := make([]string, len(in))
	for i, p := range in {
		names[i] = p.Name
	}
	if dups := duplicatedValues(names); len(dups) > 0 {
		return nil, domain.NewValidationError(FieldProductTypes,
			fmt.Sprintf("nombres de tipo de producto duplicados: %s", strings.Join(dups, ", ")))
	}

	verr := &domain.ValidationError{}
	out := make([]entity.ProductType, 0, len(in))
	for i, p := range in {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			verr.Add(fmt.Sprintf("%s[%d].name", FieldProductTypes, i), "el nombre es obligatorio")
			continue
		}
		out = append(out, entity.ProductType{
			ID:                   newID(),
			Name:                 name,
			Description:          strings.TrimSpace(p.Description),
			TrackInventory:       boolOrDefault(p.TrackInventory, true),
			RequiresSerialNumber: boolOrDefault(p.RequiresSerialNumber, false),
			RequiresExpiryDate:   boolOrDefault(p.RequiresExpiryDate, false),
			Active:               boolOrDefault(p.Active, true),
			CreatedAt:            timeOrDefault(p.CreatedAt, now),
		})
	}
	if verr.HasErrors() {
		return nil, verr
	}
	return out, nil
}

func boolOrDefault(v *bool, def bool) bool {
	if v == nil {
		return def
	}
	return *v
}

func timeOrDefault(v *time.Time, def time.Time) time.Time {
	if v == nil || v.IsZero() {
		return def
	}
	return *v
}

// CollectionStats son los conteos derivados de una colección.
type CollectionStats struct {
	Total  int `json:"total"`
	Active int `json:"active"`
}

// Stats agrupa los conteos derivados de las tres colecciones.
type Stats struct {
	Categories   CollectionStats `json:"categories"`
	Units        CollectionStats `json:"units"`
	ProductTypes CollectionStats `json:"productTypes"`
}

// ComputeStats calcula total y activos por colección.
func ComputeStats(p entity.Preferences) Stats {
	var s Stats
	s.Categories.Total = len(p.Categories)
	for _, c := range p.Categories {
		if c.Active {
			s.Categories.Active++
		}
	}
	s.Units.Total = len(p.Units)
	for _, u := range p.Units {
		if u.Active {
			s.Units.Active++
		}
	}
	s.ProductTypes.Total = len(p.ProductTypes)
	for _, t := range p.ProductTypes {
		if t.Active {
			s.ProductTypes.Active++
		}
	}
	return s
}
