package business

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/tu-usuario/negocio-pro/internal/domain/entity"
)

// Hojas del libro exportado.
const (
	sheetCategories   = "Categorias"
	sheetUnits        = "Unidades"
	sheetProductTypes = "Tipos de producto"
)

// ExportPreferences genera un libro .xlsx con una hoja por colección y
// devuelve su contenido junto con un nombre de archivo sugerido. Pasa por
// la misma lectura que GetPreferences, así que también repara registros
// antiguos sin documento.
func (uc *BusinessUseCase) ExportPreferences(businessID string) ([]byte, string, error) {
	resp, err := uc.GetPreferences(businessID)
	if err != nil {
		return nil, "", err
	}
	prefs := resp.Preferences

	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sheetCategories); err != nil {
		return nil, "", fmt.Errorf("creando hoja de categorías: %w", err)
	}
	if err := writeRows(f, sheetCategories, categoryRows(prefs.Categories)); err != nil {
		return nil, "", err
	}

	if _, err := f.NewSheet(sheetUnits); err != nil {
		return nil, "", fmt.Errorf("creando hoja de unidades: %w", err)
	}
	if err := writeRows(f, sheetUnits, unitRows(prefs.Units)); err != nil {
		return nil, "", err
	}

	if _, err := f.NewSheet(sheetProductTypes); err != nil {
		return nil, "", fmt.Errorf("creando hoja de tipos de producto: %w", err)
	}
	if err := writeRows(f, sheetProductTypes, productTypeRows(prefs.ProductTypes)); err != nil {
		return nil, "", err
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, "", fmt.Errorf("serializando libro: %w", err)
	}

	filename := fmt.Sprintf("preferencias-%s.xlsx", time.Now().Format("2006-01-02"))
	return buf.Bytes(), filename, nil
}

func writeRows(f *excelize.File, sheet string, rows [][]any) error {
	for r, row := range rows {
		for c, value := range row {
			cell, err := excelize.CoordinatesToCellName(c+1, r+1)
			if err != nil {
				return fmt.Errorf("calculando celda: %w", err)
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("escribiendo celda %s de %s: %w", cell, sheet, err)
			}
		}
	}
	return nil
}

func categoryRows(categories []entity.Category) [][]any {
	rows := [][]any{{"Nombre", "Descripción", "Icono", "Color", "Activa", "Creada"}}
	for _, c := range categories {
		rows = append(rows, []any{c.Name, c.Description, c.Icon, c.Color, boolLabel(c.Active), c.CreatedAt.Format("2006-01-02")})
	}
	return rows
}

func unitRows(units []entity.Unit) [][]any {
	rows := [][]any{{"Nombre", "Abreviatura", "Tipo", "Activa", "Creada"}}
	for _, u := range units {
		rows = append(rows, []any{u.Name, u.Abbreviation, u.Type, boolLabel(u.Active), u.CreatedAt.Format("2006-01-02")})
	}
	return rows
}

func productTypeRows(types []entity.ProductType) [][]any {
	rows := [][]any{{"Nombre", "Descripción", "Controla stock", "Requiere serie", "Requiere vencimiento", "Activo", "Creado"}}
	for _, p := range types {
		rows = append(rows, []any{
			p.Name, p.Description,
			boolLabel(p.TrackInventory), boolLabel(p.RequiresSerialNumber), boolLabel(p.RequiresExpiryDate),
			boolLabel(p.Active), p.CreatedAt.Format("2006-01-02"),
		})
	}
	return rows
}

func boolLabel(v bool) string {
	if v {
		return "sí"
	}
	return "no"
}
