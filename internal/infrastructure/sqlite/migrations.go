package sqlite

const createTableSQL = `
CREATE TABLE IF NOT EXISTS sheet_cells (
    sheet   TEXT    NOT NULL,
    row_no  INTEGER NOT NULL,
    cells   TEXT    NOT NULL,
    PRIMARY KEY (sheet, row_no)
);
`
