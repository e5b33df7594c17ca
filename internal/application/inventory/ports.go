package inventory

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

// StockReport datos que necesita el generador para el reporte de existencias.
type StockReport struct {
	Title         string
	SheetName     string
	Category      string // "All" si no se filtró
	Status        string
	Records       []entity.Record
	TotalQuantity int
	TotalValue    decimal.Decimal // Σ quantity × price
	GeneratedAt   time.Time
}

// ReportGenerator puerto de salida para renderizar el reporte (implementado en infrastructure/pdf).
type ReportGenerator interface {
	GenerateStockReport(ctx context.Context, report StockReport) ([]byte, error)
}
