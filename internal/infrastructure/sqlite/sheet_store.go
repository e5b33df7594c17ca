// Package sqlite implementa el almacén de hojas sobre un archivo SQLite (modernc.org/sqlite, sin cgo).
// Cada fila de la hoja se guarda como un arreglo JSON de celdas.
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
)

var _ repository.SheetStore = (*SheetStore)(nil)

// SheetStore almacén de hojas respaldado por SQLite.
type SheetStore struct {
	db *sql.DB
}

// New abre la base SQLite en path y ejecuta las migraciones.
func New(path string) (*SheetStore, error) {
	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	db.SetMaxOpenConns(1)

	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SheetStore{db: db}, nil
}

// Close cierra la conexión.
func (s *SheetStore) Close() error {
	return s.db.Close()
}

// Open devuelve la hoja name. Una hoja sin filas se lee vacía.
func (s *SheetStore) Open(_ context.Context, name string) (repository.Sheet, error) {
	return &sheet{db: s.db, name: name}, nil
}

type sheet struct {
	db   *sql.DB
	name string
}

func (h *sheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	rows, err := h.db.QueryContext(ctx,
		`SELECT cells FROM sheet_cells WHERE sheet = ? ORDER BY row_no`, h.name)
	if err != nil {
		return nil, fmt.Errorf("read sheet: %w", err)
	}
	defer rows.Close()

	var values [][]string
	for rows.Next() {
		var raw string
		if err := rows.Scan(&raw); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		var cells []string
		if err := json.Unmarshal([]byte(raw), &cells); err != nil {
			return nil, fmt.Errorf("decode row: %w", err)
		}
		values = append(values, cells)
	}
	return values, rows.Err()
}

func (h *sheet) Clear(ctx context.Context) error {
	if _, err := h.db.ExecContext(ctx, `DELETE FROM sheet_cells WHERE sheet = ?`, h.name); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}
	return nil
}

// WriteRows reemplaza la hoja entera en una transacción: borra lo que haya y escribe
// cabecera y filas desde row_no 0. Si otra escritura se coló tras nuestro Clear, gana esta.
func (h *sheet) WriteRows(ctx context.Context, header []string, rows [][]string) error {
	tx, err := h.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM sheet_cells WHERE sheet = ?`, h.name); err != nil {
		return fmt.Errorf("clear sheet: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sheet_cells (sheet, row_no, cells) VALUES (?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	all := append([][]string{header}, rows...)
	for i, cells := range all {
		raw, err := json.Marshal(cells)
		if err != nil {
			return fmt.Errorf("encode row %d: %w", i, err)
		}
		if _, err := stmt.ExecContext(ctx, h.name, i, string(raw)); err != nil {
			return fmt.Errorf("insert row %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
