package inventory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/application/dto"
	"github.com/jhoicas/Inventario-sheets/internal/domain"
	dominventory "github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

const testSheet = "Sheet1"

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// countingStore envuelve el almacén en memoria para contar lecturas y simular fallos de escritura.
type countingStore struct {
	*memory.SheetStore
	reads     int
	failWrite error
}

func (c *countingStore) Open(ctx context.Context, name string) (repository.Sheet, error) {
	sh, err := c.SheetStore.Open(ctx, name)
	if err != nil {
		return nil, err
	}
	return &countingSheet{Sheet: sh, parent: c}, nil
}

type countingSheet struct {
	repository.Sheet
	parent *countingStore
}

func (s *countingSheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	s.parent.reads++
	return s.Sheet.ReadAllRows(ctx)
}

func (s *countingSheet) WriteRows(ctx context.Context, header []string, rows [][]string) error {
	if s.parent.failWrite != nil {
		return s.parent.failWrite
	}
	return s.Sheet.WriteRows(ctx, header, rows)
}

type fixture struct {
	store  *countingStore
	loader *appinventory.CachedLoader
	uc     *appinventory.InventoryUseCase
	now    time.Time
}

func newFixture(t *testing.T, rows ...[]string) *fixture {
	t.Helper()
	mem, err := memory.NewSheetStore("")
	require.NoError(t, err)
	if len(rows) > 0 {
		mem.Seed(testSheet, append([][]string{dominventory.Header}, rows...))
	}
	f := &fixture{
		store: &countingStore{SheetStore: mem},
		now:   time.Date(2024, 6, 10, 15, 4, 5, 0, time.UTC),
	}
	log := logger.Nop()
	f.loader = appinventory.NewCachedLoader(f.store, testSheet, appinventory.DefaultCacheTTL, log)
	f.loader.SetClock(func() time.Time { return f.now })
	syncer := appinventory.NewReplaceAllSyncer(f.store, testSheet, log)
	f.uc = appinventory.NewInventoryUseCase(f.loader, syncer, &fakeReport{}, log)
	f.uc.SetClock(func() time.Time { return f.now })
	return f
}

func twoRows() [][]string {
	return [][]string{
		{"1000", "Hammer", "Tools", "5", "12.5", "A1", "Acme", "In Stock", "01-06-2024"},
		{"1001", "Paint", "Paint", "0", "7", "B2", "Colors", "Out of Stock", "02-06-2024"},
	}
}

func ptr[T any](v T) *T { return &v }

type fakeReport struct {
	last appinventory.StockReport
}

func (f *fakeReport) GenerateStockReport(_ context.Context, r appinventory.StockReport) ([]byte, error) {
	f.last = r
	return []byte("%PDF-fake"), nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Escenarios
// ──────────────────────────────────────────────────────────────────────────────

func TestAdd_IDPorDefectoYUnaSincronizacion(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	out, err := f.uc.Add(ctx, tbl, dto.CreateRecordRequest{
		ItemName: "Saw",
		Category: "Tools",
		Quantity: 3,
		Price:    decimal.RequireFromString("20.00"),
		Location: "A2",
		Supplier: "Acme",
		Status:   "In Stock",
	})
	require.NoError(t, err)

	assert.Equal(t, int64(1002), out.ItemID)
	assert.Equal(t, "10-06-2024", out.LastUpdated, "sin fecha se usa hoy en DD-MM-YYYY")
	assert.Equal(t, 3, tbl.Len())
	assert.Equal(t, 1, f.store.Writes(testSheet), "una sola sobrescritura por alta")

	values := f.store.Values(testSheet)
	require.Len(t, values, 4, "cabecera + 3 filas")
	assert.Equal(t, dominventory.Header, values[0])
	assert.Equal(t, "1002", values[3][0])
}

func TestEdit_CambiaCantidadYConservaPosicion(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)
	before, err := tbl.Find(1000)
	require.NoError(t, err)

	out, err := f.uc.Edit(ctx, tbl, 1000, dto.UpdateRecordRequest{Quantity: ptr(8)})
	require.NoError(t, err)
	assert.Equal(t, 8, out.Quantity)

	after, err := tbl.Find(1000)
	require.NoError(t, err)
	assert.Equal(t, 8, after.Quantity)
	assert.Equal(t, before.ItemName, after.ItemName)
	assert.Equal(t, before.Category, after.Category)
	assert.True(t, before.Price.Equal(after.Price))
	assert.Equal(t, before.Status, after.Status)
	assert.Equal(t, before.LastUpdated, after.LastUpdated)

	values := f.store.Values(testSheet)
	require.Len(t, values, 3)
	assert.Equal(t, []string{"1000", "Hammer", "Tools", "8", "12.5", "A1", "Acme", "In Stock", "01-06-2024"}, values[1])
	assert.Equal(t, 1, f.store.Writes(testSheet))
}

func TestEditYDelete_NoEncontradoNoSincroniza(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)
	snapshot := tbl.Records()

	_, err = f.uc.Edit(ctx, tbl, 4242, dto.UpdateRecordRequest{Quantity: ptr(1)})
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = f.uc.Delete(ctx, tbl, 4242)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	_, err = f.uc.Find(tbl, 4242)
	assert.ErrorIs(t, err, domain.ErrRecordNotFound)

	assert.Equal(t, snapshot, tbl.Records())
	assert.Zero(t, f.store.Writes(testSheet))
}

func TestDelete_QuitaLaFilaYSincroniza(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	out, err := f.uc.Delete(ctx, tbl, 1000)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TableSize)
	assert.False(t, tbl.Contains(1000))

	values := f.store.Values(testSheet)
	require.Len(t, values, 2)
	assert.Equal(t, "1001", values[1][0])
}

func TestAdd_IDDuplicadoSeRechaza(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	_, err = f.uc.Add(ctx, tbl, dto.CreateRecordRequest{
		ItemID: ptr(int64(1001)), ItemName: "Dup", Category: "Tools", Status: "In Stock",
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, 2, tbl.Len())
	assert.Zero(t, f.store.Writes(testSheet))
}

func TestAdd_Validaciones(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	cases := map[string]dto.CreateRecordRequest{
		"cantidad negativa": {ItemName: "X", Category: "Tools", Quantity: -1, Status: "In Stock"},
		"precio negativo":   {ItemName: "X", Category: "Tools", Price: decimal.NewFromInt(-2), Status: "In Stock"},
		"estado inválido":   {ItemName: "X", Category: "Tools", Status: "Lost"},
		"fecha inválida":    {ItemName: "X", Category: "Tools", Status: "Damaged", LastUpdated: "2024/06/01"},
		"id no positivo":    {ItemID: ptr(int64(0)), ItemName: "X", Category: "Tools", Status: "Damaged"},
	}
	for name, in := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := f.uc.Add(ctx, tbl, in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
	assert.Equal(t, 2, tbl.Len())
}

func TestAddYEdit_CategoriaDebeExistir(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	_, err = f.uc.Add(ctx, tbl, dto.CreateRecordRequest{ItemName: "Rake", Category: "Garden", Status: "In Stock"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = f.uc.Edit(ctx, tbl, 1000, dto.UpdateRecordRequest{Category: ptr("Garden")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	r, err := tbl.Find(1000)
	require.NoError(t, err)
	assert.Equal(t, "Tools", r.Category)
	assert.Equal(t, 2, tbl.Len())
	assert.Zero(t, f.store.Writes(testSheet))

	_, err = f.uc.Edit(ctx, tbl, 1000, dto.UpdateRecordRequest{Category: ptr("Paint")})
	require.NoError(t, err)
}

func TestAdd_HojaVaciaAceptaCualquierCategoria(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)
	require.Zero(t, tbl.Len())

	_, err = f.uc.Add(ctx, tbl, dto.CreateRecordRequest{ItemName: "Rake", Category: "Garden", Status: "In Stock"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Garden"}, tbl.Categories())
}

func TestAdd_IdaYVueltaPorLaHoja(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	_, err = f.uc.Add(ctx, tbl, dto.CreateRecordRequest{
		ItemID:      ptr(int64(2000)),
		ItemName:    "Ladder",
		Category:    "Paint",
		Quantity:    4,
		Price:       decimal.RequireFromString("99.90"),
		Location:    "Yard",
		Supplier:    "Tall Co",
		Status:      "Damaged",
		LastUpdated: "2024-05-31",
	})
	require.NoError(t, err)

	fresh, err := f.loader.Fetch(ctx)
	require.NoError(t, err)
	r, err := fresh.Find(2000)
	require.NoError(t, err)
	assert.Equal(t, "Ladder", r.ItemName)
	assert.Equal(t, "Paint", r.Category)
	assert.Equal(t, 4, r.Quantity)
	assert.True(t, decimal.RequireFromString("99.9").Equal(r.Price))
	assert.Equal(t, "Yard", r.Location)
	assert.Equal(t, "Tall Co", r.Supplier)
	assert.Equal(t, "Damaged", string(r.Status))
	assert.Equal(t, time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC), r.LastUpdated)
	assert.Equal(t, "31-05-2024", f.store.Values(testSheet)[3][8], "la fecha se escribe siempre en DD-MM-YYYY")
}

func TestSync_FallaNoRevierteLaTabla(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	f.store.failWrite = errors.New("quota exceeded")
	_, err = f.uc.Delete(ctx, tbl, 1001)

	assert.ErrorIs(t, err, domain.ErrSyncFailed)
	assert.False(t, tbl.Contains(1001), "la tabla en memoria conserva el cambio")
}

func TestReplaceAll_Idempotente(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	syncer := appinventory.NewReplaceAllSyncer(f.store, testSheet, logger.Nop())
	require.NoError(t, syncer.ReplaceAll(ctx, tbl))
	first := f.store.Values(testSheet)
	require.NoError(t, syncer.ReplaceAll(ctx, tbl))

	assert.Equal(t, first, f.store.Values(testSheet))
}

func TestLoad_CacheDentroDeLaVentana(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()

	_, err := f.uc.Load(ctx)
	require.NoError(t, err)
	_, err = f.uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, f.store.reads, "la segunda carga sale de la caché")

	f.now = f.now.Add(appinventory.DefaultCacheTTL + time.Second)
	_, err = f.uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, f.store.reads, "vencida la ventana se vuelve a leer")
}

func TestLoad_CopiasIndependientes(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()

	a, err := f.uc.Load(ctx)
	require.NoError(t, err)
	require.NoError(t, a.Delete(1000))

	b, err := f.uc.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, b.Len())
}

func TestLoad_HojaMalFormada(t *testing.T) {
	f := newFixture(t, []string{"x", "Hammer", "Tools", "5", "1", "A1", "Acme", "In Stock", "01-06-2024"})
	_, err := f.uc.Load(context.Background())
	assert.ErrorIs(t, err, domain.ErrLoadFailed)
	assert.ErrorIs(t, err, domain.ErrMalformedRow)
}

func TestView_FiltrosYOpciones(t *testing.T) {
	f := newFixture(t, twoRows()...)
	tbl, err := f.uc.Load(context.Background())
	require.NoError(t, err)

	out, err := f.uc.View(tbl, dto.InventoryFilter{Category: "All", Status: "Out of Stock"})
	require.NoError(t, err)
	require.Len(t, out.Items, 1)
	assert.Equal(t, int64(1001), out.Items[0].ItemID)
	assert.Equal(t, 2, out.TableSize)
	assert.Equal(t, []string{"Tools", "Paint"}, out.Categories)
	assert.Equal(t, []string{"In Stock", "Out of Stock", "Damaged"}, out.Statuses)

	_, err = f.uc.View(tbl, dto.InventoryFilter{Status: "Lost"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestFormDefaultsYFind(t *testing.T) {
	f := newFixture(t, twoRows()...)
	tbl, err := f.uc.Load(context.Background())
	require.NoError(t, err)

	form := f.uc.FormDefaults(tbl)
	assert.Equal(t, int64(1002), form.NextItemID)
	assert.Equal(t, "10-06-2024", form.Today)

	found, err := f.uc.Find(tbl, 1001)
	require.NoError(t, err)
	assert.Equal(t, "Paint", found.Record.ItemName)
	assert.Equal(t, int64(1000), found.MinItemID)
	assert.Equal(t, int64(1001), found.MaxItemID)
}

func TestReload_IgnoraLaCache(t *testing.T) {
	f := newFixture(t, twoRows()...)
	ctx := context.Background()
	tbl, err := f.uc.Load(ctx)
	require.NoError(t, err)

	// Otro escritor sobrescribe la hoja.
	f.store.Seed(testSheet, [][]string{dominventory.Header, twoRows()[0]})

	out, err := f.uc.Reload(ctx, tbl)
	require.NoError(t, err)
	assert.Equal(t, 1, out.TableSize)
	assert.Equal(t, 1, tbl.Len())
}

func TestReport_Totales(t *testing.T) {
	f := newFixture(t, twoRows()...)
	tbl, err := f.uc.Load(context.Background())
	require.NoError(t, err)
	gen := &fakeReport{}
	uc := appinventory.NewInventoryUseCase(f.loader, appinventory.NewReplaceAllSyncer(f.store, testSheet, logger.Nop()), gen, logger.Nop())

	pdf, err := uc.Report(context.Background(), tbl, dto.InventoryFilter{Category: "Tools"})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
	assert.Equal(t, 5, gen.last.TotalQuantity)
	assert.True(t, decimal.RequireFromString("62.5").Equal(gen.last.TotalValue))
	assert.Equal(t, "Tools", gen.last.Category)
	assert.Equal(t, "All", gen.last.Status)
	assert.Equal(t, testSheet, gen.last.SheetName)
}
