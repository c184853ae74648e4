package entity

import (
	"time"

	"github.com/google/uuid"
)

// Tipos de unidad de medida soportados.
const (
	UnitTypeWeight   = "weight"
	UnitTypeVolume   = "volume"
	UnitTypeLength   = "length"
	UnitTypeQuantity = "quantity"
	UnitTypeOther    = "other"
)

// ValidUnitType indica si el tipo de unidad pertenece al catálogo soportado.
func ValidUnitType(t string) bool {
	switch t {
	case UnitTypeWeight, UnitTypeVolume, UnitTypeLength, UnitTypeQuantity, UnitTypeOther:
		return true
	}
	return false
}

// DefaultCategoryColor es el color asignado cuando la categoría no trae uno.
const DefaultCategoryColor = "#6366F1"

// DefaultUnitType es el tipo asignado cuando la unidad no trae uno.
const DefaultUnitType = UnitTypeQuantity

// Category es una categoría de producto definida por el negocio.
// Los tags JSON fijan la forma del documento almacenado y servido.
type Category struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Icon        string    `json:"icon,omitempty"`
	Color       string    `json:"color"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Unit es una unidad de medida definida por el negocio.
type Unit struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	Type         string    `json:"type"`
	Active       bool      `json:"active"`
	CreatedAt    time.Time `json:"createdAt"`
}

// ProductType clasifica los productos del negocio y controla su manejo
// (seguimiento de stock, seriales y fechas de vencimiento).
type ProductType struct {
	ID                   string    `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description,omitempty"`
	TrackInventory       bool      `json:"trackInventory"`
	RequiresSerialNumber bool      `json:"requiresSerialNumber"`
	RequiresExpiryDate   bool      `json:"requiresExpiryDate"`
	Active               bool      `json:"active"`
	CreatedAt            time.Time `json:"createdAt"`
}

// Preferences agrupa los catálogos configurables del negocio.
// Se persiste como un único documento JSONB en la fila del negocio.
type Preferences struct {
	Categories   []Category    `json:"categories"`
	Units        []Unit        `json:"units"`
	ProductTypes []ProductType `json:"productTypes"`
}

// EmptyPreferences devuelve un documento sin catálogos, con los slices
// inicializados para que el JSON serialice arreglos y no null.
func EmptyPreferences() Preferences {
	return Preferences{
		Categories:   []Category{},
		Units:        []Unit{},
		ProductTypes: []ProductType{},
	}
}

// DefaultPreferences devuelve el catálogo inicial que recibe todo negocio
// recién registrado.
func DefaultPreferences(now time.Time) Preferences {
	return Preferences{
		Categories: []Category{
			{ID: uuid.New().String(), Name: "Electronics", Description: "Dispositivos electrónicos y accesorios", Icon: "📱", Color: "#3B82F6", Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Clothing", Description: "Ropa y artículos de moda", Icon: "👕", Color: "#EC4899", Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Food & Beverages", Description: "Alimentos y bebidas", Icon: "🍔", Color: "#F59E0B", Active: true, CreatedAt: now},
		},
		Units: []Unit{
			{ID: uuid.New().String(), Name: "Piece", Abbreviation: "PCS", Type: UnitTypeQuantity, Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Kilogram", Abbreviation: "KG", Type: UnitTypeWeight, Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Liter", Abbreviation: "L", Type: UnitTypeVolume, Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Dozen", Abbreviation: "DZ", Type: UnitTypeQuantity, Active: true, CreatedAt: now},
		},
		ProductTypes: []ProductType{
			{ID: uuid.New().String(), Name: "Physical Product", Description: "Producto físico con control de stock", TrackInventory: true, Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Perishable", Description: "Producto con fecha de vencimiento", TrackInventory: true, RequiresExpiryDate: true, Active: true, CreatedAt: now},
			{ID: uuid.New().String(), Name: "Service", Description: "Servicio sin control de stock", TrackInventory: false, Active: true, CreatedAt: now},
		},
	}
}

// IsZero indica que el documento no existe en la fila (columna NULL de un
// registro anterior a la migración). Un documento con colecciones vacías
// NO es zero: ahí los slices vienen inicializados.
func (p Preferences) IsZero() bool {
	return p.Categories == nil && p.Units == nil && p.ProductTypes == nil
}

// Normalized garantiza slices no nulos tras deserializar documentos
// parciales o antiguos.
func (p Preferences) Normalized() Preferences {
	if p.Categories == nil {
		p.Categories = []Category{}
	}
	if p.Units == nil {
		p.Units = []Unit{}
	}
	if p.ProductTypes == nil {
		p.ProductTypes = []ProductType{}
	}
	return p
}
