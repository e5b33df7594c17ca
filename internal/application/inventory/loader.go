package inventory

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

// DefaultCacheTTL ventana durante la cual cargas repetidas no consultan el almacén.
const DefaultCacheTTL = 60 * time.Second

// CachedLoader lee la hoja completa y guarda el resultado durante ttl.
// Devuelve siempre copias: quien carga es dueño de su tabla.
type CachedLoader struct {
	store     repository.SheetStore
	sheetName string
	ttl       time.Duration
	log       *logger.Logger
	now       func() time.Time

	mu        sync.Mutex
	cached    *inventory.Table
	fetchedAt time.Time
}

// NewCachedLoader construye el cargador. ttl <= 0 desactiva la caché.
func NewCachedLoader(store repository.SheetStore, sheetName string, ttl time.Duration, log *logger.Logger) *CachedLoader {
	return &CachedLoader{
		store:     store,
		sheetName: sheetName,
		ttl:       ttl,
		log:       log,
		now:       time.Now,
	}
}

// SetClock reemplaza el reloj (tests).
func (l *CachedLoader) SetClock(now func() time.Time) { l.now = now }

// SheetName nombre de la hoja que carga.
func (l *CachedLoader) SheetName() string { return l.sheetName }

// Load devuelve una copia de la tabla, desde la caché si sigue vigente.
func (l *CachedLoader) Load(ctx context.Context) (*inventory.Table, error) {
	l.mu.Lock()
	if l.cached != nil && l.ttl > 0 && l.now().Sub(l.fetchedAt) < l.ttl {
		tbl := l.cached.Clone()
		l.mu.Unlock()
		return tbl, nil
	}
	l.mu.Unlock()
	return l.Fetch(ctx)
}

// Fetch lee la hoja ignorando la caché y la renueva.
func (l *CachedLoader) Fetch(ctx context.Context) (*inventory.Table, error) {
	sheet, err := l.store.Open(ctx, l.sheetName)
	if err != nil {
		return nil, fmt.Errorf("%w: abrir %q: %w", domain.ErrLoadFailed, l.sheetName, err)
	}
	values, err := sheet.ReadAllRows(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: leer %q: %w", domain.ErrLoadFailed, l.sheetName, err)
	}
	tbl, stats, err := inventory.DecodeTable(values)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %w", domain.ErrLoadFailed, l.sheetName, err)
	}
	if stats.LegacyDates > 0 {
		l.log.Warn().
			Str("sheet", l.sheetName).
			Int("rows", stats.LegacyDates).
			Msg("filas con Last Updated en YYYY-MM-DD; se reescribirán como DD-MM-YYYY en la próxima sincronización")
	}
	l.log.Debug().Str("sheet", l.sheetName).Int("rows", stats.Rows).Msg("hoja cargada")

	l.Remember(tbl)
	return tbl.Clone(), nil
}

// Remember guarda una copia de tbl como contenido vigente (tras una sobrescritura exitosa).
func (l *CachedLoader) Remember(tbl *inventory.Table) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = tbl.Clone()
	l.fetchedAt = l.now()
}

// Invalidate descarta la caché.
func (l *CachedLoader) Invalidate() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.cached = nil
}
