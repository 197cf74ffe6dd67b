// Package pdf implementa la hoja de picking imprimible de un pedido.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Pedido N° + Fecha  │  Cliente + Picker asignado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: [ ] | Código | Descripción | Cantidad                │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: firma del picker + firma del jefe de bodega        │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

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

	"github.com/jhoicas/picking-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// MarotoSheetGenerator implementa picking.SheetGenerator usando Maroto v2.
type MarotoSheetGenerator struct{}

// NewMarotoSheetGenerator construye el generador.
func NewMarotoSheetGenerator() *MarotoSheetGenerator { return &MarotoSheetGenerator{} }

// GeneratePickingSheet genera la hoja de picking y devuelve sus bytes.
func (g *MarotoSheetGenerator) GeneratePickingSheet(
	_ context.Context,
	orderID int64,
	client string,
	assignedUser string,
	lines []entity.OrderLine,
) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle(fmt.Sprintf("Hoja de picking %d", orderID), true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(orderID, client, assignedUser))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableLineRows(lines) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(signatureRow())

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar hoja de picking: %w", err)
	}
	return doc.GetBytes(), nil
}

// headerRow: N° de pedido + fecha (izq) y cliente + picker (der).
func headerRow(orderID int64, client, assignedUser string) core.Row {
	fecha := time.Now().Format("02/01/2006 15:04")
	if assignedUser == "" {
		assignedUser = "sin asignar"
	}
	return row.New(18).Add(
		col.New(6).Add(
			text.New("HOJA DE PICKING", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Pedido N° %d", orderID), props.Text{
				Style: fontstyle.Bold, Size: 13, Top: 6,
			}),
			text.New("Impreso: "+fecha, props.Text{
				Size: 8, Top: 14, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Cliente: "+client, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Top: 4,
			}),
			text.New("Picker: "+assignedUser, props.Text{
				Size: 9, Align: align.Right, Top: 11, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Pick", 1, align.Center),
		h("Código", 2, align.Left),
		h("Descripción", 7, align.Left),
		h("Cant.", 2, align.Right),
	)
}

// tableLineRows: una fila por línea del pedido, con casilla para marcar a mano.
func tableLineRows(lines []entity.OrderLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		mark := "[  ]"
		if l.Picked {
			mark = "[X]"
		}
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(mark, props.Text{
				Size: 8, Align: align.Center, Top: 1,
			})),
			col.New(2).Add(text.New(l.SKU, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(7).Add(text.New(l.ItemName, props.Text{
				Size: 8, Align: align.Left, Top: 1, Left: 1,
			})),
			col.New(2).Add(text.New(formatQty(l.Quantity), props.Text{
				Size: 8, Align: align.Right, Top: 1, Right: 1,
			})),
		))
	}
	return result
}

// signatureRow: líneas de firma al pie.
func signatureRow() core.Row {
	sig := func(label string) core.Col {
		return col.New(6).Add(
			text.New("_________________________", props.Text{
				Size: 9, Align: align.Center, Top: 12,
			}),
			text.New(label, props.Text{
				Size: 8, Align: align.Center, Top: 17, Color: colorGray,
			}),
		)
	}
	return row.New(24).Add(
		sig("Firma picker"),
		sig("Firma jefe de bodega"),
	)
}

// formatQty presenta cantidades enteras sin decimales.
func formatQty(q decimal.Decimal) string {
	if q.IsInteger() {
		return q.StringFixed(0)
	}
	return q.String()
}
