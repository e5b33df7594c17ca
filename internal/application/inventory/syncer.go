package inventory

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
	"github.com/jhoicas/Inventario-sheets/pkg/logger"
)

// ReplaceAllSyncer implementa la política de persistencia "replace-all": en cada
// mutación la hoja externa se borra por completo y se reescribe con la cabecera y
// todas las filas de la tabla en memoria.
//
// No hay diff ni control de concurrencia optimista: si dos sesiones escriben, gana
// la última sobrescritura y los cambios de la otra se pierden. Si la escritura
// falla, la tabla en memoria no se revierte y puede quedar distinta de la hoja.
type ReplaceAllSyncer struct {
	store     repository.SheetStore
	sheetName string
	log       *logger.Logger
}

// NewReplaceAllSyncer construye el sincronizador para la hoja sheetName.
func NewReplaceAllSyncer(store repository.SheetStore, sheetName string, log *logger.Logger) *ReplaceAllSyncer {
	return &ReplaceAllSyncer{store: store, sheetName: sheetName, log: log}
}

// ReplaceAll sobrescribe la hoja con el contenido de tbl (Clear + WriteRows).
// Escribir dos veces la misma tabla deja la hoja en el mismo estado.
func (s *ReplaceAllSyncer) ReplaceAll(ctx context.Context, tbl *inventory.Table) error {
	syncID := uuid.New().String()
	header, rows := inventory.EncodeTable(tbl)

	sheet, err := s.store.Open(ctx, s.sheetName)
	if err != nil {
		return fmt.Errorf("%w: abrir %q: %w", domain.ErrSyncFailed, s.sheetName, err)
	}
	if err := sheet.Clear(ctx); err != nil {
		return fmt.Errorf("%w: limpiar %q: %w", domain.ErrSyncFailed, s.sheetName, err)
	}
	if err := sheet.WriteRows(ctx, header, rows); err != nil {
		s.log.Error().Err(err).
			Str("sync_id", syncID).
			Str("sheet", s.sheetName).
			Msg("hoja limpiada pero la escritura falló; la tabla en memoria no se revierte")
		return fmt.Errorf("%w: escribir %q: %w", domain.ErrSyncFailed, s.sheetName, err)
	}

	s.log.Info().
		Str("sync_id", syncID).
		Str("sheet", s.sheetName).
		Int("rows", len(rows)).
		Msg("hoja sobrescrita")
	return nil
}
