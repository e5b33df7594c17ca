// Package store elige el adaptador de hoja según STORE_DRIVER.
package store

import (
	"context"
	"fmt"

	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/memory"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/postgres"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/sheets"
	"github.com/jhoicas/Inventario-sheets/internal/infrastructure/sqlite"
	"github.com/jhoicas/Inventario-sheets/pkg/config"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

// Open construye el SheetStore configurado. closeFn libera conexiones y nunca es nil.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger) (s repository.SheetStore, closeFn func(), err error) {
	noop := func() {}
	switch cfg.Store.Driver {
	case config.DriverSheets:
		st, err := sheets.New(ctx, cfg.Store.SpreadsheetID, cfg.Store.CredentialsFile)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("spreadsheet_id", cfg.Store.SpreadsheetID).Msg("almacén: Google Sheets")
		return st, noop, nil

	case config.DriverPostgres:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			return nil, noop, fmt.Errorf("conexión a PostgreSQL: %w", err)
		}
		st, err := postgres.NewSheetStore(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, noop, err
		}
		log.Info().Msg("almacén: PostgreSQL")
		return st, pool.Close, nil

	case config.DriverSQLite:
		st, err := sqlite.New(cfg.Store.SQLitePath)
		if err != nil {
			return nil, noop, err
		}
		log.Info().Str("path", cfg.Store.SQLitePath).Msg("almacén: SQLite")
		return st, func() { _ = st.Close() }, nil

	case config.DriverMemory:
		st, err := memory.NewSheetStore(cfg.Store.SnapshotPath)
		if err != nil {
			return nil, noop, err
		}
		log.Warn().Str("snapshot", cfg.Store.SnapshotPath).Msg("almacén: memoria (sin hoja externa)")
		return st, noop, nil

	default:
		return nil, noop, fmt.Errorf("STORE_DRIVER desconocido %q", cfg.Store.Driver)
	}
}
