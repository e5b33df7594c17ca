package dto

import (
	"github.com/shopspring/decimal"
)

// CreateRecordRequest entrada para dar de alta un ítem (página "Add New Item").
// ItemID nil usa el id por defecto (máximo actual + 1). LastUpdated vacío usa la fecha de hoy.
type CreateRecordRequest struct {
	ItemID      *int64          `json:"item_id"`
	ItemName    string          `json:"item_name" validate:"required"`
	Category    string          `json:"category" validate:"required"`
	Quantity    int             `json:"quantity" validate:"min=0"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Supplier    string          `json:"supplier"`
	Status      string          `json:"status" validate:"required,oneof='In Stock' 'Out of Stock' Damaged"`
	LastUpdated string          `json:"last_updated"` // DD-MM-YYYY (se acepta YYYY-MM-DD)
}

// UpdateRecordRequest entrada para editar un ítem. Los campos nil conservan el valor actual,
// igual que el formulario original que venía precargado con la fila.
type UpdateRecordRequest struct {
	ItemName    *string          `json:"item_name"`
	Category    *string          `json:"category"`
	Quantity    *int             `json:"quantity"`
	Price       *decimal.Decimal `json:"price"`
	Location    *string          `json:"location"`
	Supplier    *string          `json:"supplier"`
	Status      *string          `json:"status"`
	LastUpdated *string          `json:"last_updated"`
}

// RecordResponse salida de un ítem.
type RecordResponse struct {
	ItemID      int64           `json:"item_id"`
	ItemName    string          `json:"item_name"`
	Category    string          `json:"category"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Location    string          `json:"location"`
	Supplier    string          `json:"supplier"`
	Status      string          `json:"status"`
	LastUpdated string          `json:"last_updated"`
}

// InventoryFilter filtros de la vista. "All" o vacío no filtra.
type InventoryFilter struct {
	Category string `query:"category" json:"category"`
	Status   string `query:"status" json:"status"`
}

// InventoryViewResponse salida de la página "View Inventory".
type InventoryViewResponse struct {
	Items      []RecordResponse `json:"items"`
	Total      int              `json:"total"`
	TableSize  int              `json:"table_size"`
	Filter     InventoryFilter  `json:"filter"`
	Categories []string         `json:"categories"`
	Statuses   []string         `json:"statuses"`
}

// RecordFormResponse valores por defecto del formulario de alta.
type RecordFormResponse struct {
	NextItemID int64    `json:"next_item_id"`
	MinItemID  int64    `json:"min_item_id"`
	Categories []string `json:"categories"`
	Statuses   []string `json:"statuses"`
	Today      string   `json:"today"`
}

// RecordLookupResponse salida de la búsqueda por item_id en "Edit/Delete Item".
// MinItemID/MaxItemID son orientativos (el rango no garantiza existencia).
type RecordLookupResponse struct {
	Record     RecordResponse `json:"record"`
	MinItemID  int64          `json:"min_item_id"`
	MaxItemID  int64          `json:"max_item_id"`
	Categories []string       `json:"categories"`
	Statuses   []string       `json:"statuses"`
}

// DeleteRecordResponse confirmación de baja.
type DeleteRecordResponse struct {
	ItemID    int64 `json:"item_id"`
	TableSize int   `json:"table_size"`
}

// ReloadResponse resultado de recargar la tabla desde la hoja.
type ReloadResponse struct {
	TableSize int `json:"table_size"`
}
