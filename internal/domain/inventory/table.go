// Package inventory contiene la tabla de inventario en memoria y el formato de filas
// con el que se persiste en la hoja externa.
package inventory

import (
	"fmt"
	"math"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

// MinItemID id sugerido cuando la tabla está vacía (mismo mínimo que ofrecía el formulario original).
const MinItemID int64 = 1000

// AllOption valor del selector que desactiva un filtro.
const AllOption = "All"

// Filter predicados de igualdad opcionales para la vista. Vacío o "All" no filtra.
type Filter struct {
	Category string
	Status   string
}

func (f Filter) matches(r entity.Record) bool {
	if f.Category != "" && f.Category != AllOption && r.Category != f.Category {
		return false
	}
	if f.Status != "" && f.Status != AllOption && string(r.Status) != f.Status {
		return false
	}
	return true
}

// Table colección ordenada y mutable de Records que refleja una hoja externa.
// item_id es único en todo momento. No es segura para uso concurrente: el dueño
// (la sesión) serializa el acceso.
type Table struct {
	records []entity.Record
}

// NewTable construye una tabla con las filas dadas, en orden. Falla si hay item_id repetidos.
func NewTable(records []entity.Record) (*Table, error) {
	t := &Table{records: make([]entity.Record, 0, len(records))}
	for _, r := range records {
		if t.indexOf(r.ItemID) >= 0 {
			return nil, fmt.Errorf("%w: item_id %d repetido", domain.ErrDuplicate, r.ItemID)
		}
		t.records = append(t.records, r)
	}
	return t, nil
}

// Len número de filas.
func (t *Table) Len() int { return len(t.records) }

// Records devuelve una copia de las filas en orden.
func (t *Table) Records() []entity.Record {
	out := make([]entity.Record, len(t.records))
	copy(out, t.records)
	return out
}

// Clone copia independiente de la tabla.
func (t *Table) Clone() *Table {
	return &Table{records: t.Records()}
}

// Replace sustituye todo el contenido por el de other (carga completa).
func (t *Table) Replace(other *Table) {
	t.records = other.Records()
}

func (t *Table) indexOf(id int64) int {
	for i := range t.records {
		if t.records[i].ItemID == id {
			return i
		}
	}
	return -1
}

// Find localiza la fila con ese item_id.
func (t *Table) Find(id int64) (entity.Record, error) {
	i := t.indexOf(id)
	if i < 0 {
		return entity.Record{}, domain.ErrRecordNotFound
	}
	return t.records[i], nil
}

// Contains indica si existe una fila con ese item_id.
func (t *Table) Contains(id int64) bool { return t.indexOf(id) >= 0 }

// Insert agrega r al final. Rechaza item_id no positivos o ya presentes.
func (t *Table) Insert(r entity.Record) error {
	if r.ItemID <= 0 {
		return fmt.Errorf("%w: item_id debe ser positivo", domain.ErrInvalidInput)
	}
	if t.indexOf(r.ItemID) >= 0 {
		return fmt.Errorf("%w: item_id %d ya existe", domain.ErrDuplicate, r.ItemID)
	}
	t.records = append(t.records, r)
	return nil
}

// Update reemplaza los campos no clave de la fila id conservando su posición.
// Si no existe la tabla queda intacta y se devuelve ErrRecordNotFound.
func (t *Table) Update(id int64, f entity.RecordFields) error {
	i := t.indexOf(id)
	if i < 0 {
		return domain.ErrRecordNotFound
	}
	t.records[i] = t.records[i].WithFields(f)
	return nil
}

// Delete elimina la fila id. Si no existe la tabla queda intacta y se devuelve ErrRecordNotFound.
func (t *Table) Delete(id int64) error {
	i := t.indexOf(id)
	if i < 0 {
		return domain.ErrRecordNotFound
	}
	t.records = append(t.records[:i], t.records[i+1:]...)
	return nil
}

// Filter devuelve una tabla nueva con las filas que cumplen ambos predicados, en el mismo orden.
func (t *Table) Filter(f Filter) *Table {
	out := &Table{records: make([]entity.Record, 0, len(t.records))}
	for _, r := range t.records {
		if f.matches(r) {
			out.records = append(out.records, r)
		}
	}
	return out
}

// Categories categorías distintas en orden de primera aparición.
func (t *Table) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, r := range t.records {
		if !seen[r.Category] {
			seen[r.Category] = true
			out = append(out, r.Category)
		}
	}
	return out
}

// IDRange menor y mayor item_id presentes. Es orientativo: un id dentro del rango puede no existir.
func (t *Table) IDRange() (minID, maxID int64, ok bool) {
	if len(t.records) == 0 {
		return 0, 0, false
	}
	minID, maxID = math.MaxInt64, math.MinInt64
	for _, r := range t.records {
		if r.ItemID < minID {
			minID = r.ItemID
		}
		if r.ItemID > maxID {
			maxID = r.ItemID
		}
	}
	return minID, maxID, true
}

// NextID id por defecto para un alta: máximo actual + 1, o MinItemID si la tabla está vacía.
func (t *Table) NextID() int64 {
	_, maxID, ok := t.IDRange()
	if !ok {
		return MinItemID
	}
	return maxID + 1
}
