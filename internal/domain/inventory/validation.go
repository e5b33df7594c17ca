package inventory

import (
	"fmt"
	"strings"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

// ValidateFields aplica las restricciones que el formulario original imponía en los widgets:
// mínimos numéricos y pertenencia al enum de estados.
func ValidateFields(f entity.RecordFields) error {
	if strings.TrimSpace(f.ItemName) == "" {
		return fmt.Errorf("%w: item_name es requerido", domain.ErrInvalidInput)
	}
	if strings.TrimSpace(f.Category) == "" {
		return fmt.Errorf("%w: category es requerida", domain.ErrInvalidInput)
	}
	if f.Quantity < 0 {
		return fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrInvalidInput)
	}
	if f.Price.IsNegative() {
		return fmt.Errorf("%w: price no puede ser negativo", domain.ErrInvalidInput)
	}
	if !f.Status.Valid() {
		return fmt.Errorf("%w: status %q no es válido", domain.ErrInvalidInput, f.Status)
	}
	if f.LastUpdated.IsZero() {
		return fmt.Errorf("%w: last_updated es requerido", domain.ErrInvalidInput)
	}
	return nil
}

// ValidateCategory con la tabla vacía cualquier categoría no vacía sirve; si hay filas,
// la categoría debe ser una de las ya presentes (las opciones del formulario).
// Las categorías nuevas entran por el seed CSV.
func ValidateCategory(t *Table, category string) error {
	if t.Len() == 0 {
		return nil
	}
	for _, c := range t.Categories() {
		if c == category {
			return nil
		}
	}
	return fmt.Errorf("%w: category %q no existe en la hoja", domain.ErrInvalidInput, category)
}
