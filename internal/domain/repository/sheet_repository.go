package repository

import "context"

// SheetStore define el puerto hacia el almacén tabular externo (hoja de cálculo usada como BD).
// Las credenciales y el transporte son responsabilidad del adaptador.
type SheetStore interface {
	Open(ctx context.Context, name string) (Sheet, error)
}

// Sheet es una tabla con nombre dentro del almacén externo. No tiene esquema propio:
// su contenido es lo que haya escrito el último reemplazo completo.
type Sheet interface {
	// ReadAllRows devuelve todas las filas en orden; la primera es la cabecera.
	// Una hoja vacía devuelve (nil, nil).
	ReadAllRows(ctx context.Context) ([][]string, error)
	// Clear borra todo el contenido de la hoja.
	Clear(ctx context.Context) error
	// WriteRows escribe la cabecera y las filas de una sola vez a partir de la primera celda.
	WriteRows(ctx context.Context, header []string, rows [][]string) error
}
