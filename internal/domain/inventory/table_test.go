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

func rec(id int64, category string, status entity.Status, qty int) entity.Record {
	return entity.Record{
		ItemID:      id,
		ItemName:    "Item " + category,
		Category:    category,
		Quantity:    qty,
		Price:       decimal.RequireFromString("9.99"),
		Location:    "A1",
		Supplier:    "Acme",
		Status:      status,
		LastUpdated: time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC),
	}
}

func sampleTable(t *testing.T) *inventory.Table {
	t.Helper()
	tbl, err := inventory.NewTable([]entity.Record{
		rec(1000, "Tools", entity.StatusInStock, 5),
		rec(1001, "Paint", entity.StatusOutOfStock, 0),
		rec(1002, "Tools", entity.StatusDamaged, 2),
		rec(1003, "Paint", entity.StatusInStock, 7),
	})
	require.NoError(t, err)
	return tbl
}

func ids(tbl *inventory.Table) []int64 {
	var out []int64
	for _, r := range tbl.Records() {
		out = append(out, r.ItemID)
	}
	return out
}

func TestNewTable_RechazaIDsRepetidos(t *testing.T) {
	_, err := inventory.NewTable([]entity.Record{
		rec(1000, "Tools", entity.StatusInStock, 1),
		rec(1000, "Paint", entity.StatusInStock, 1),
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestFilter(t *testing.T) {
	tbl := sampleTable(t)

	tests := []struct {
		name   string
		filter inventory.Filter
		want   []int64
	}{
		{"All/All devuelve todo en orden", inventory.Filter{Category: "All", Status: "All"}, []int64{1000, 1001, 1002, 1003}},
		{"sin predicados devuelve todo", inventory.Filter{}, []int64{1000, 1001, 1002, 1003}},
		{"solo categoría", inventory.Filter{Category: "Tools", Status: "All"}, []int64{1000, 1002}},
		{"solo estado", inventory.Filter{Category: "All", Status: "In Stock"}, []int64{1000, 1003}},
		{"ambos predicados", inventory.Filter{Category: "Paint", Status: "In Stock"}, []int64{1003}},
		{"sin coincidencias", inventory.Filter{Category: "Garden"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tbl.Filter(tt.filter)
			assert.Equal(t, tt.want, ids(got))
		})
	}
	assert.Equal(t, 4, tbl.Len(), "Filter no debe mutar la tabla original")
}

func TestInsert_AgregaAlFinal(t *testing.T) {
	tbl := sampleTable(t)
	require.NoError(t, tbl.Insert(rec(1004, "Garden", entity.StatusInStock, 3)))

	assert.Equal(t, []int64{1000, 1001, 1002, 1003, 1004}, ids(tbl))
}

func TestInsert_RechazaDuplicadoYNoPositivo(t *testing.T) {
	tbl := sampleTable(t)

	assert.ErrorIs(t, tbl.Insert(rec(1001, "Paint", entity.StatusInStock, 1)), domain.ErrDuplicate)
	assert.ErrorIs(t, tbl.Insert(rec(0, "Paint", entity.StatusInStock, 1)), domain.ErrInvalidInput)
	assert.Equal(t, 4, tbl.Len())
}

func TestUpdate_ConservaPosicionYClave(t *testing.T) {
	tbl := sampleTable(t)
	before, err := tbl.Find(1000)
	require.NoError(t, err)

	fields := before.Fields()
	fields.Quantity = 8
	require.NoError(t, tbl.Update(1000, fields))

	after, err := tbl.Find(1000)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Quantity)
	assert.Equal(t, before.ItemName, after.ItemName)
	assert.True(t, before.Price.Equal(after.Price))
	assert.Equal(t, []int64{1000, 1001, 1002, 1003}, ids(tbl))
}

func TestUpdateYDelete_IDInexistenteNoModifica(t *testing.T) {
	tbl := sampleTable(t)
	snapshot := tbl.Records()

	err := tbl.Update(4242, rec(4242, "X", entity.StatusInStock, 1).Fields())
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, snapshot, tbl.Records())

	err = tbl.Delete(4242)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)
	assert.Equal(t, snapshot, tbl.Records())
}

func TestDelete_ReduceEnUno(t *testing.T) {
	tbl := sampleTable(t)
	require.NoError(t, tbl.Delete(1001))

	assert.Equal(t, 3, tbl.Len())
	assert.False(t, tbl.Contains(1001))
	assert.Equal(t, []int64{1000, 1002, 1003}, ids(tbl))
}

func TestNextIDYRango(t *testing.T) {
	empty, err := inventory.NewTable(nil)
	require.NoError(t, err)
	assert.Equal(t, inventory.MinItemID, empty.NextID())
	_, _, ok := empty.IDRange()
	assert.False(t, ok)

	tbl := sampleTable(t)
	assert.Equal(t, int64(1004), tbl.NextID())
	lo, hi, ok := tbl.IDRange()
	require.True(t, ok)
	assert.Equal(t, int64(1000), lo)
	assert.Equal(t, int64(1003), hi)
}

func TestCategories_OrdenDePrimeraAparicion(t *testing.T) {
	assert.Equal(t, []string{"Tools", "Paint"}, sampleTable(t).Categories())
}

func TestClone_EsIndependiente(t *testing.T) {
	tbl := sampleTable(t)
	cp := tbl.Clone()
	require.NoError(t, cp.Delete(1000))

	assert.Equal(t, 4, tbl.Len())
	assert.Equal(t, 3, cp.Len())
}

func TestValidateFields(t *testing.T) {
	ok := rec(1, "Tools", entity.StatusInStock, 0).Fields()
	require.NoError(t, inventory.ValidateFields(ok))

	negQty := ok
	negQty.Quantity = -1
	assert.ErrorIs(t, inventory.ValidateFields(negQty), domain.ErrInvalidInput)

	negPrice := ok
	negPrice.Price = decimal.NewFromInt(-1)
	assert.ErrorIs(t, inventory.ValidateFields(negPrice), domain.ErrInvalidInput)

	badStatus := ok
	badStatus.Status = "Lost"
	assert.ErrorIs(t, inventory.ValidateFields(badStatus), domain.ErrInvalidInput)

	noName := ok
	noName.ItemName = "  "
	assert.ErrorIs(t, inventory.ValidateFields(noName), domain.ErrInvalidInput)
}

func TestValidateCategory(t *testing.T) {
	tbl := sampleTable(t)
	assert.NoError(t, inventory.ValidateCategory(tbl, "Paint"))
	assert.ErrorIs(t, inventory.ValidateCategory(tbl, "Garden"), domain.ErrInvalidInput)
	assert.ErrorIs(t, inventory.ValidateCategory(tbl, "tools"), domain.ErrInvalidInput, "la comparación distingue mayúsculas")

	empty, err := inventory.NewTable(nil)
	require.NoError(t, err)
	assert.NoError(t, inventory.ValidateCategory(empty, "Garden"))
}
