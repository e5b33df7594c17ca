package inventory_test

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
)

func TestEncodeRow_OrdenYFormatoDeFecha(t *testing.T) {
	r := entity.Record{
		ItemID:      1002,
		ItemName:    "Hammer",
		Category:    "Tools",
		Quantity:    12,
		Price:       decimal.RequireFromString("15.75"),
		Location:    "Aisle 3",
		Supplier:    "Acme",
		Status:      entity.StatusInStock,
		LastUpdated: time.Date(2024, 1, 9, 0, 0, 0, 0, time.UTC),
	}

	assert.Equal(t,
		[]string{"1002", "Hammer", "Tools", "12", "15.75", "Aisle 3", "Acme", "In Stock", "09-01-2024"},
		inventory.EncodeRow(r))
}

func TestEncodeDecode_IdaYVuelta(t *testing.T) {
	tbl := sampleTable(t)
	header, rows := inventory.EncodeTable(tbl)
	require.Equal(t, inventory.Header, header)

	got, stats, err := inventory.DecodeTable(append([][]string{header}, rows...))
	require.NoError(t, err)
	assert.Equal(t, tbl.Len(), stats.Rows)
	assert.Zero(t, stats.LegacyDates)

	want := tbl.Records()
	for i, r := range got.Records() {
		assert.Equal(t, want[i].ItemID, r.ItemID)
		assert.Equal(t, want[i].ItemName, r.ItemName)
		assert.Equal(t, want[i].Category, r.Category)
		assert.Equal(t, want[i].Quantity, r.Quantity)
		assert.True(t, want[i].Price.Equal(r.Price))
		assert.Equal(t, want[i].Location, r.Location)
		assert.Equal(t, want[i].Supplier, r.Supplier)
		assert.Equal(t, want[i].Status, r.Status)
		assert.True(t, want[i].LastUpdated.Equal(r.LastUpdated))
	}
}

func TestDecodeTable_HojaVacia(t *testing.T) {
	tbl, _, err := inventory.DecodeTable(nil)
	require.NoError(t, err)
	assert.Zero(t, tbl.Len())
}

func TestDecodeTable_FechaLegadaYFilasRecortadas(t *testing.T) {
	values := [][]string{
		{"item id", "ITEM NAME", "Category", "Quantity", "Price", "Location", "Supplier", "Status", "Last Updated"},
		{"1000", "Saw", "Tools", "3", "20", "B2", "", "Damaged", "2024-05-01"},
		{"", "", ""},
		{"1001", "Brush", "Paint", "1", "2.5", "C1", "Paints Co", "In Stock", "02-05-2024"},
	}

	tbl, stats, err := inventory.DecodeTable(values)
	require.NoError(t, err)
	assert.Equal(t, 2, stats.Rows)
	assert.Equal(t, 1, stats.BlankRows)
	assert.Equal(t, 1, stats.LegacyDates)

	r, err := tbl.Find(1000)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), r.LastUpdated)
	assert.Equal(t, "", r.Supplier)
}

func TestDecodeTable_CabeceraIncorrecta(t *testing.T) {
	_, _, err := inventory.DecodeTable([][]string{{"ID", "Name"}})
	assert.ErrorIs(t, err, domain.ErrHeaderMismatch)
}

func TestDecodeTable_FilaMalFormada(t *testing.T) {
	values := [][]string{
		inventory.Header,
		{"1000", "Saw", "Tools", "tres", "20", "B2", "Acme", "Damaged", "01-05-2024"},
	}
	_, _, err := inventory.DecodeTable(values)
	assert.ErrorIs(t, err, domain.ErrMalformedRow)
	assert.Contains(t, err.Error(), "fila 2")
}

func TestDecodeTable_EstadoDesconocido(t *testing.T) {
	values := [][]string{
		inventory.Header,
		{"1000", "Saw", "Tools", "1", "20", "B2", "Acme", "Lost", "01-05-2024"},
	}
	_, _, err := inventory.DecodeTable(values)
	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}
