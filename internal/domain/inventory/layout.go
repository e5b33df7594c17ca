package inventory

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"

	"github.com/jhoicas/Inventario-sheets/internal/domain"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
)

// Header cabecera de la hoja, en el orden fijo de columnas. Se escribe tal cual en cada reemplazo.
var Header = []string{
	"Item ID",
	"Item Name",
	"Category",
	"Quantity",
	"Price",
	"Location",
	"Supplier",
	"Status",
	"Last Updated",
}

const (
	colItemID = iota
	colItemName
	colCategory
	colQuantity
	colPrice
	colLocation
	colSupplier
	colStatus
	colLastUpdated
)

// DateLayout formato canónico de Last Updated (DD-MM-YYYY) en todas las escrituras.
const DateLayout = "02-01-2006"

// legacyDateLayout formato que escribía el alta en la versión anterior; solo se acepta al leer.
const legacyDateLayout = "2006-01-02"

// DecodeStats resumen de una lectura de la hoja.
type DecodeStats struct {
	Rows        int
	BlankRows   int
	LegacyDates int
}

// EncodeRow serializa r en el orden de Header.
func EncodeRow(r entity.Record) []string {
	return []string{
		strconv.FormatInt(r.ItemID, 10),
		r.ItemName,
		r.Category,
		strconv.Itoa(r.Quantity),
		r.Price.String(),
		r.Location,
		r.Supplier,
		string(r.Status),
		r.LastUpdated.Format(DateLayout),
	}
}

// EncodeTable devuelve una copia de la cabecera y todas las filas de t, listas para un reemplazo completo.
func EncodeTable(t *Table) (header []string, rows [][]string) {
	header = append([]string(nil), Header...)
	rows = make([][]string, 0, t.Len())
	for _, r := range t.records {
		rows = append(rows, EncodeRow(r))
	}
	return header, rows
}

// DecodeTable interpreta el contenido leído de la hoja (cabecera + filas).
// Una hoja sin filas produce una tabla vacía. Las filas completamente vacías se omiten.
func DecodeTable(values [][]string) (*Table, DecodeStats, error) {
	var stats DecodeStats
	if len(values) == 0 {
		return &Table{}, stats, nil
	}
	if err := checkHeader(values[0]); err != nil {
		return nil, stats, err
	}
	records := make([]entity.Record, 0, len(values)-1)
	for i, cells := range values[1:] {
		if isBlank(cells) {
			stats.BlankRows++
			continue
		}
		r, legacy, err := DecodeRow(cells)
		if err != nil {
			// i+2: numeración de filas de la hoja (1 = cabecera)
			return nil, stats, fmt.Errorf("fila %d: %w", i+2, err)
		}
		if legacy {
			stats.LegacyDates++
		}
		records = append(records, r)
	}
	t, err := NewTable(records)
	if err != nil {
		return nil, stats, err
	}
	stats.Rows = t.Len()
	return t, stats, nil
}

// DecodeRow interpreta una fila de datos. legacy indica que la fecha venía en YYYY-MM-DD.
// Las celdas finales vacías pueden venir recortadas por el almacén.
func DecodeRow(cells []string) (r entity.Record, legacy bool, err error) {
	for len(cells) > len(Header) && strings.TrimSpace(cells[len(cells)-1]) == "" {
		cells = cells[:len(cells)-1]
	}
	if len(cells) > len(Header) {
		return r, false, fmt.Errorf("%w: %d columnas, se esperaban %d", domain.ErrMalformedRow, len(cells), len(Header))
	}
	c := make([]string, len(Header))
	for i, v := range cells {
		c[i] = strings.TrimSpace(v)
	}

	if r.ItemID, err = strconv.ParseInt(c[colItemID], 10, 64); err != nil || r.ItemID <= 0 {
		return r, false, fmt.Errorf("%w: Item ID %q", domain.ErrMalformedRow, c[colItemID])
	}
	if r.Quantity, err = strconv.Atoi(c[colQuantity]); err != nil {
		return r, false, fmt.Errorf("%w: Quantity %q", domain.ErrMalformedRow, c[colQuantity])
	}
	price := c[colPrice]
	if price == "" {
		price = "0"
	}
	if r.Price, err = decimal.NewFromString(price); err != nil {
		return r, false, fmt.Errorf("%w: Price %q", domain.ErrMalformedRow, c[colPrice])
	}
	status, ok := entity.ParseStatus(c[colStatus])
	if !ok {
		return r, false, fmt.Errorf("%w: Status %q", domain.ErrMalformedRow, c[colStatus])
	}
	r.Status = status
	if r.LastUpdated, legacy, err = ParseDate(c[colLastUpdated]); err != nil {
		return r, false, fmt.Errorf("%w: Last Updated %q", domain.ErrMalformedRow, c[colLastUpdated])
	}

	r.ItemName = c[colItemName]
	r.Category = c[colCategory]
	r.Location = c[colLocation]
	r.Supplier = c[colSupplier]
	return r, legacy, nil
}

// ParseDate acepta DD-MM-YYYY y, por compatibilidad, YYYY-MM-DD.
func ParseDate(s string) (t time.Time, legacy bool, err error) {
	if t, err = time.Parse(DateLayout, s); err == nil {
		return t, false, nil
	}
	if t, err = time.Parse(legacyDateLayout, s); err == nil {
		return t, true, nil
	}
	return time.Time{}, false, err
}

// TruncateDate descarta la hora; la hoja solo guarda la fecha.
func TruncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func checkHeader(got []string) error {
	fold := cases.Fold()
	n := len(got)
	for n > 0 && strings.TrimSpace(got[n-1]) == "" {
		n--
	}
	if n != len(Header) {
		return fmt.Errorf("%w: %v", domain.ErrHeaderMismatch, got)
	}
	for i, h := range Header {
		if fold.String(strings.TrimSpace(got[i])) != fold.String(h) {
			return fmt.Errorf("%w: columna %d es %q, se esperaba %q", domain.ErrHeaderMismatch, i+1, got[i], h)
		}
	}
	return nil
}

func isBlank(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
