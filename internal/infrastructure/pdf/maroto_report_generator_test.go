package pdf

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

func TestFormatMoney(t *testing.T) {
	assert.Equal(t, "0,00", formatMoney(decimal.Zero))
	assert.Equal(t, "25.000,00", formatMoney(decimal.NewFromInt(25000)))
	assert.Equal(t, "1.234,50", formatMoney(decimal.RequireFromString("1234.5")))
	assert.Equal(t, "-1.000.000,00", formatMoney(decimal.NewFromInt(-1000000)))
}

func TestLocationSupplier(t *testing.T) {
	assert.Equal(t, "A1 / Acme", locationSupplier(entity.Record{Location: "A1", Supplier: "Acme"}))
	assert.Equal(t, "Acme", locationSupplier(entity.Record{Supplier: "Acme"}))
	assert.Equal(t, "—", locationSupplier(entity.Record{}))
}

func TestGenerateStockReport_ProducePDF(t *testing.T) {
	g := NewMarotoReportGenerator()
	report := appinventory.StockReport{
		Title:     "Inventario",
		SheetName: "Inventory",
		Category:  "All",
		Status:    "All",
		Records: []entity.Record{
			{ItemID: 1000, ItemName: "Widget", Category: "Tools", Quantity: 5, Price: decimal.RequireFromString("12.5"),
				Status: entity.StatusInStock, LastUpdated: time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)},
			{ItemID: 1001, ItemName: "Gadget", Category: "Parts", Quantity: 0, Price: decimal.Zero,
				Status: entity.StatusDamaged, LastUpdated: time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC)},
		},
		TotalQuantity: 5,
		TotalValue:    decimal.RequireFromString("62.5"),
		GeneratedAt:   time.Date(2024, 6, 10, 9, 0, 0, 0, time.UTC),
	}

	out, err := g.GenerateStockReport(context.Background(), report)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestGenerateStockReport_SinItems(t *testing.T) {
	out, err := NewMarotoReportGenerator().GenerateStockReport(context.Background(), appinventory.StockReport{})
	require.NoError(t, err)
	assert.NotEmpty(t, out)
}
