package sheets

import (
	"context"
	"fmt"
	"strconv"

	"google.golang.org/api/option"
	gsheets "google.golang.org/api/sheets/v4"

	"github.com/jhoicas/Inventario-sheets/internal/domain/repository"
)

var _ repository.SheetStore = (*SheetStore)(nil)

// SheetStore adaptador sobre Google Sheets API v4: cada Sheet es una pestaña del libro.
type SheetStore struct {
	values        *gsheets.SpreadsheetsValuesService
	spreadsheetID string
}

// New abre el libro spreadsheetID con las credenciales de cuenta de servicio (archivo JSON).
func New(ctx context.Context, spreadsheetID, credentialsFile string, opts ...option.ClientOption) (*SheetStore, error) {
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	opts = append(opts, option.WithScopes(gsheets.SpreadsheetsScope))
	svc, err := gsheets.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("sheets: crear servicio: %w", err)
	}
	return &SheetStore{values: svc.Spreadsheets.Values, spreadsheetID: spreadsheetID}, nil
}

// Open devuelve la pestaña name. La API no falla hasta la primera lectura si no existe.
func (s *SheetStore) Open(_ context.Context, name string) (repository.Sheet, error) {
	if name == "" {
		return nil, fmt.Errorf("sheets: nombre de hoja vacío")
	}
	return &sheet{store: s, name: name}, nil
}

type sheet struct {
	store *SheetStore
	name  string
}

// ReadAllRows lee valores sin formato: el formato de celda del libro (moneda, miles)
// no debe cambiar lo que se parsea. Las fechas-número vuelven como texto.
func (h *sheet) ReadAllRows(ctx context.Context) ([][]string, error) {
	resp, err := h.store.values.Get(h.store.spreadsheetID, rangeOf(h.name)).
		ValueRenderOption("UNFORMATTED_VALUE").
		DateTimeRenderOption("FORMATTED_STRING").
		Context(ctx).
		Do()
	if err != nil {
		return nil, fmt.Errorf("sheets: leer %q: %w", h.name, err)
	}
	return toStrings(resp.Values), nil
}

func (h *sheet) Clear(ctx context.Context) error {
	_, err := h.store.values.Clear(h.store.spreadsheetID, rangeOf(h.name), &gsheets.ClearValuesRequest{}).
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: limpiar %q: %w", h.name, err)
	}
	return nil
}

// WriteRows escribe desde A1 en una sola llamada. RAW evita que la hoja reinterprete fechas y precios.
func (h *sheet) WriteRows(ctx context.Context, header []string, rows [][]string) error {
	vr := &gsheets.ValueRange{
		MajorDimension: "ROWS",
		Values:         toInterfaces(header, rows),
	}
	_, err := h.store.values.Update(h.store.spreadsheetID, h.name+"!A1", vr).
		ValueInputOption("RAW").
		Context(ctx).
		Do()
	if err != nil {
		return fmt.Errorf("sheets: escribir %q: %w", h.name, err)
	}
	return nil
}

func rangeOf(name string) string {
	return "'" + name + "'"
}

func toStrings(values [][]interface{}) [][]string {
	if len(values) == 0 {
		return nil
	}
	out := make([][]string, len(values))
	for i, row := range values {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = cellString(v)
		}
		out[i] = cells
	}
	return out
}

// cellString los números llegan como float64 del JSON; sin exponente ni ceros de relleno.
func cellString(v interface{}) string {
	switch x := v.(type) {
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case nil:
		return ""
	default:
		return fmt.Sprint(x)
	}
}

func toInterfaces(header []string, rows [][]string) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	out = append(out, rowOf(header))
	for _, r := range rows {
		out = append(out, rowOf(r))
	}
	return out
}

func rowOf(cells []string) []interface{} {
	row := make([]interface{}, len(cells))
	for i, c := range cells {
		row[i] = c
	}
	return row
}
