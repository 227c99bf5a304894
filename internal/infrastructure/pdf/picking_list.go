// Package pdf genera la hoja de picking (PDF) de un plan de asignación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + Bodega     │  Orden + Sentido + Fecha     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Rack | Producto | Cantidad | Volumen                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: unidades / volumen   │  QR con el ID de la orden   │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"time"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
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

	"github.com/jhoicas/Bodegas-api/internal/application/ordering"
)

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// PickingListGenerator renderiza planes de asignación usando Maroto v2.
type PickingListGenerator struct {
	now func() time.Time
}

// NewPickingListGenerator construye el generador.
func NewPickingListGenerator() *PickingListGenerator {
	return &PickingListGenerator{now: time.Now}
}

// Generate genera el PDF del plan y devuelve sus bytes.
func (g *PickingListGenerator) Generate(_ context.Context, plan *ordering.Plan) ([]byte, error) {
	if plan == nil {
		return nil, fmt.Errorf("pdf: plan nil")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Picking list "+plan.OrderID, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(plan, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(allocationRows(plan.Allocations)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(plan))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

func headerRow(plan *ordering.Plan, at time.Time) core.Row {
	title := "HOJA DE PICKING"
	if plan.Direction == ordering.DirectionReceive {
		title = "HOJA DE UBICACIÓN"
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New(title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Bodega: "+plan.WarehouseID, props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("Orden "+plan.OrderID, props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 1,
			}),
			text.New("Sentido: "+string(plan.Direction), props.Text{
				Size: 8, Align: align.Right, Top: 7, Color: colorGray,
			}),
			text.New("Fecha: "+at.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Rack", 3, align.Left),
		h("Producto", 5, align.Left),
		h("Cantidad", 2, align.Right),
		h("Volumen", 2, align.Right),
	)
}

func allocationRows(allocs []ordering.Allocation) []core.Row {
	result := make([]core.Row, 0, len(allocs))
	for _, a := range allocs {
		result = append(result, row.New(7).Add(
			col.New(3).Add(text.New(a.RackPosition, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(5).Add(text.New(a.ProductID, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(2).Add(text.New(fmt.Sprintf("%d", a.Quantity), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(a.Volume.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
		))
	}
	return result
}

func totalsRow(plan *ordering.Plan) core.Row {
	units, volume := totals(plan.Allocations)
	return row.New(40).Add(
		col.New(8).Add(
			text.New(fmt.Sprintf("Unidades: %d", units), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 2,
			}),
			text.New("Volumen total: "+volume.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 9, Top: 8, Color: colorPrimary,
			}),
		),
		col.New(4).Add(code.NewQr(plan.OrderID, props.Rect{
			Percent: 90,
			Center:  true,
		})),
	)
}

func totals(allocs []ordering.Allocation) (int, decimal.Decimal) {
	units, volume := 0, decimal.Zero
	for _, a := range allocs {
		units += a.Quantity
		volume = volume.Add(a.Volume)
	}
	return units, volume
}
