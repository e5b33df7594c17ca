package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Status estado operativo de un ítem del inventario.
type Status string

const (
	StatusInStock    Status = "In Stock"
	StatusOutOfStock Status = "Out of Stock"
	StatusDamaged    Status = "Damaged"
)

// Statuses devuelve los estados válidos en el orden en que se ofrecen en el formulario.
func Statuses() []Status {
	return []Status{StatusInStock, StatusOutOfStock, StatusDamaged}
}

// ParseStatus valida s contra los tres estados permitidos.
func ParseStatus(s string) (Status, bool) {
	for _, st := range Statuses() {
		if string(st) == s {
			return st, true
		}
	}
	return "", false
}

// Valid indica si el estado pertenece al conjunto permitido.
func (s Status) Valid() bool {
	_, ok := ParseStatus(string(s))
	return ok
}

// Record representa una línea del inventario tal como vive en la hoja externa.
// ItemID es la única clave de búsqueda para editar o eliminar.
type Record struct {
	ItemID      int64
	ItemName    string
	Category    string
	Quantity    int
	Price       decimal.Decimal
	Location    string
	Supplier    string
	Status      Status
	LastUpdated time.Time // solo fecha; la hora se descarta al persistir
}

// RecordFields campos no clave de un Record; Update los reemplaza en bloque.
type RecordFields struct {
	ItemName    string
	Category    string
	Quantity    int
	Price       decimal.Decimal
	Location    string
	Supplier    string
	Status      Status
	LastUpdated time.Time
}

// Fields extrae los campos no clave.
func (r Record) Fields() RecordFields {
	return RecordFields{
		ItemName:    r.ItemName,
		Category:    r.Category,
		Quantity:    r.Quantity,
		Price:       r.Price,
		Location:    r.Location,
		Supplier:    r.Supplier,
		Status:      r.Status,
		LastUpdated: r.LastUpdated,
	}
}

// WithFields devuelve una copia del Record con los campos no clave reemplazados.
func (r Record) WithFields(f RecordFields) Record {
	return Record{
		ItemID:      r.ItemID,
		ItemName:    f.ItemName,
		Category:    f.Category,
		Quantity:    f.Quantity,
		Price:       f.Price,
		Location:    f.Location,
		Supplier:    f.Supplier,
		Status:      f.Status,
		LastUpdated: f.LastUpdated,
	}
}
