// Package pdf implementa el reporte de existencias en PDF.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + hoja        │  Fecha de generación         │
//	│  FILTRO: Categoría / Estado                                  │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: ID | Nombre | Categoría | Cant | Precio | Estado ... │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Ítems / Unidades / Valor                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	appinventory "github.com/jhoicas/Inventario-sheets/internal/application/inventory"
	"github.com/jhoicas/Inventario-sheets/internal/domain/entity"
	"github.com/jhoicas/Inventario-sheets/internal/domain/inventory"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorDamaged = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

var _ appinventory.ReportGenerator = (*MarotoReportGenerator)(nil)

// MarotoReportGenerator implementa inventory.ReportGenerator usando Maroto v2.
type MarotoReportGenerator struct{}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator { return &MarotoReportGenerator{} }

// GenerateStockReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateStockReport(_ context.Context, report appinventory.StockReport) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(nonEmpty(report.Title, "Inventario"), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(report))
	m.AddRows(filterRow(report))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	if len(report.Records) == 0 {
		m.AddRows(row.New(8).Add(col.New(12).Add(
			text.New("Sin ítems para el filtro seleccionado", props.Text{
				Size: 8, Align: align.Center, Color: colorGray, Top: 2,
			}),
		)))
	}
	m.AddRows(tableDetailRows(report.Records)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(report))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(report appinventory.StockReport) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(nonEmpty(report.Title, "Inventario"), props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Hoja: "+nonEmpty(report.SheetName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE EXISTENCIAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Generado: "+report.GeneratedAt.Format("02-01-2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func filterRow(report appinventory.StockReport) core.Row {
	return row.New(7).Add(col.New(12).Add(
		text.New(fmt.Sprintf("Categoría: %s   |   Estado: %s",
			nonEmpty(report.Category, inventory.AllOption),
			nonEmpty(report.Status, inventory.AllOption),
		), props.Text{Size: 8, Top: 1, Color: colorGray}),
	))
}

// tableHeaderRow: cabecera con las columnas de la hoja (sin Supplier, va en la celda de ubicación).
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).WithStyle(&props.Cell{BackgroundColor: colorPrimary}).Add(
		h("ID", 1, align.Left),
		h("Nombre", 3, align.Left),
		h("Categoría", 2, align.Left),
		h("Cant.", 1, align.Right),
		h("Precio", 1, align.Right),
		h("Ubicación / Proveedor", 2, align.Left),
		h("Estado", 1, align.Left),
		h("Actualizado", 1, align.Right),
	)
}

func tableDetailRows(records []entity.Record) []core.Row {
	result := make([]core.Row, 0, len(records))
	for _, r := range records {
		statusProps := props.Text{Size: 7, Top: 1, Left: 1}
		if r.Status == entity.StatusDamaged {
			statusProps.Color = colorDamaged
		}
		cell := func(a align.Type) props.Text {
			return props.Text{Size: 7, Align: a, Top: 1, Left: 1, Right: 1}
		}
		result = append(result, row.New(6).Add(
			col.New(1).Add(text.New(strconv.FormatInt(r.ItemID, 10), cell(align.Left))),
			col.New(3).Add(text.New(r.ItemName, cell(align.Left))),
			col.New(2).Add(text.New(r.Category, cell(align.Left))),
			col.New(1).Add(text.New(strconv.Itoa(r.Quantity), cell(align.Right))),
			col.New(1).Add(text.New("$"+formatMoney(r.Price), cell(align.Right))),
			col.New(2).Add(text.New(locationSupplier(r), cell(align.Left))),
			col.New(1).Add(text.New(string(r.Status), statusProps)),
			col.New(1).Add(text.New(r.LastUpdated.Format(inventory.DateLayout), cell(align.Right))),
		))
	}
	return result
}

func totalsRow(report appinventory.StockReport) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 1, Top: top,
		})
	}

	return row.New(20).Add(
		col.New(6),
		col.New(3).Add(
			label("Ítems:", 0),
			label("Unidades:", 6),
			text.New("VALOR TOTAL:", props.Text{Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: colorPrimary, Right: 2, Top: 12}),
		),
		col.New(3).Add(
			value(strconv.Itoa(len(report.Records)), 0),
			value(strconv.Itoa(report.TotalQuantity), 6),
			grand("$"+formatMoney(report.TotalValue), 12),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

func locationSupplier(r entity.Record) string {
	parts := make([]string, 0, 2)
	if r.Location != "" {
		parts = append(parts, r.Location)
	}
	if r.Supplier != "" {
		parts = append(parts, r.Supplier)
	}
	return nonEmpty(strings.Join(parts, " / "), "—")
}

// formatMoney formatea con puntos de miles y dos decimales tras coma.
// Ej: 25000 → "25.000,00", 1234.5 → "1.234,50"
func formatMoney(d decimal.Decimal) string {
	s := d.StringFixed(2)
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	intPart, frac, _ := strings.Cut(s, ".")
	return sign + groupThousands(intPart) + "," + frac
}

// groupThousands inserta puntos de miles en un string numérico sin decimales.
func groupThousands(s string) string {
	n := len(s)
	if n <= 3 {
		return s
	}
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(s) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}
