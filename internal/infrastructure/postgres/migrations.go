package postgres

import (
	"context"
	"fmt"
)

const createSheetCellsSQL = `
CREATE TABLE IF NOT EXISTS sheet_cells (
    sheet   TEXT    NOT NULL,
    row_no  INTEGER NOT NULL,
    cells   TEXT[]  NOT NULL,
    PRIMARY KEY (sheet, row_no)
)`

// EnsureSchema crea la tabla de celdas si no existe.
func EnsureSchema(ctx context.Context, q Querier) error {
	if _, err := q.Exec(ctx, createSheetCellsSQL); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}
