package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
)

var _ repository.SheetStore = (*SheetStore)(nil)

// SheetStore almacén de hojas sobre PostgreSQL: una fila de sheet_cells por fila de la hoja.
type SheetStore struct {
	pool *pgxpool.Pool
	tx   *TxRunner
}

// NewSheetStore construye el adaptador y asegura el esquema.
func NewSheetStore(ctx context.Context, pool *pgxpool.Pool) (*SheetStore, error) {
	if err := EnsureSchema(ctx, pool); err != nil {
		return nil, err
	}
	return &SheetStore{pool: pool, tx: NewTxRunner(pool)}, nil
}

// Open devuelve la hoja name.
func (s *SheetStore) Open(_ context.Context, name string) (repository.Sheet, error) {
	return &sheet{store: s, name: name}, nil
}

type sheet struct {
	store *SheetStore
	name  string
}

func (h *sheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	rows, err := h.store.pool.Query(ctx,
		`SELECT cells FROM sheet_cells WHERE sheet = $1 ORDER BY row_no`, h.name)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	values, err := pgx.CollectRows(rows, pgx.RowTo[[]string])
	if err != nil {
		return nil, fmt.Errorf("scan sheet: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return values, nil
}

func (h *sheet) Clear(ctx context.Context) error {
	if _, err := h.store.pool.Exec(ctx, `DELETE FROM sheet_cells WHERE sheet = $1`, h.name); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}
	return nil
}

// WriteRows reemplaza la hoja en una sola transacción: toma el lock de la hoja,
// borra sus filas y copia cabecera y filas (COPY). Escrituras concurrentes sobre la
// misma hoja se serializan y gana la última.
func (h *sheet) WriteRows(ctx context.Context, header []string, rows [][]string) error {
	src := make([][]any, 0, len(rows)+1)
	src = append(src, []any{h.name, int32(0), header})
	for i, cells := range rows {
		src = append(src, []any{h.name, int32(i + 1), cells})
	}

	err := h.store.tx.Run(ctx, func(q Querier) error {
		// El lock se libera con el commit o el rollback.
		if _, err := q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, h.name); err != nil {
			return fmt.Errorf("lock sheet: %w", err)
		}
		if _, err := q.Exec(ctx, `DELETE FROM sheet_cells WHERE sheet = $1`, h.name); err != nil {
			return fmt.Errorf("clear sheet: %w", err)
		}
		_, err := q.CopyFrom(ctx,
			pgx.Identifier{"sheet_cells"},
			[]string{"sheet", "row_no", "cells"},
			pgx.CopyFromRows(src),
		)
		return err
	})
	if err != nil {
		return fmt.Errorf("write sheet %q: %w", h.name, err)
	}
	return nil
}
