// Package pdf genera el extracto de cuenta corriente imprimible.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Empresa  │  Parte + rango de fechas                 │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Comprobante | Detalle | Debe | Haber | Saldo │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PIE: Saldo de apertura / Saldo al cierre                    │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"fmt"

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

	"github.com/frutasur/empaque-api/internal/application/reports"
	"github.com/frutasur/empaque-api/internal/domain/entity"
)

var (
	colorPrimary = &props.Color{Red: 34, Green: 102, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
)

// StatementGenerator implementa reports.StatementExporter usando Maroto v2.
type StatementGenerator struct {
	companyName string
}

// NewStatementGenerator construye el generador.
func NewStatementGenerator(companyName string) *StatementGenerator {
	return &StatementGenerator{companyName: companyName}
}

// Export genera el PDF del extracto y devuelve sus bytes.
func (g *StatementGenerator) Export(st *reports.Statement) ([]byte, error) {
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Extracto de cuenta corriente", true).
		WithAuthor(g.companyName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(st))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(tableHeaderRow())
	for _, r := range tableRows(st) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(footerRow(st))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar extracto: %w", err)
	}
	return doc.GetBytes(), nil
}

func (g *StatementGenerator) headerRow(st *reports.Statement) core.Row {
	tipo := "Cliente"
	if st.Party.Type == entity.PartyTypeSupplier {
		tipo = "Proveedor"
	}
	rango := fmt.Sprintf("Del %s al %s",
		st.From.Format("02/01/2006"), st.To.Format("02/01/2006"))

	return row.New(18).Add(
		col.New(7).Add(
			text.New(g.companyName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Extracto de cuenta corriente", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New(st.Party.Name, props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Top: 1,
			}),
			text.New(tipo, props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New(rango, props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorPrimary, Top: 2,
		}))
	}
	return row.New(8).Add(
		h("Fecha", 2, align.Left),
		h("Comprobante", 2, align.Left),
		h("Detalle", 3, align.Left),
		h("Debe", 1, align.Right),
		h("Haber", 2, align.Right),
		h("Saldo", 2, align.Right),
	)
}

func tableRows(st *reports.Statement) []core.Row {
	result := make([]core.Row, 0, len(st.Rows))
	for _, r := range st.Rows {
		debe, haber := "", ""
		if r.Entry.Direction == entity.DirectionDebit {
			debe = r.Entry.Amount.StringFixed(2)
		} else {
			haber = r.Entry.Amount.StringFixed(2)
		}
		result = append(result, row.New(6).Add(
			col.New(2).Add(text.New(r.Entry.Date.Format("02/01/2006"), props.Text{Size: 8, Top: 1})),
			col.New(2).Add(text.New(docLabel(r.Entry.DocType), props.Text{Size: 8, Top: 1})),
			col.New(3).Add(text.New(r.Entry.Description, props.Text{Size: 8, Top: 1})),
			col.New(1).Add(text.New(debe, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(haber, props.Text{Size: 8, Align: align.Right, Top: 1})),
			col.New(2).Add(text.New(r.Balance.StringFixed(2), props.Text{Size: 8, Align: align.Right, Top: 1})),
		))
	}
	return result
}

func footerRow(st *reports.Statement) core.Row {
	return row.New(14).Add(
		col.New(6).Add(
			text.New("Saldo de apertura: "+st.OpeningBalance.StringFixed(2), props.Text{
				Size: 9, Top: 2, Color: colorGray,
			}),
			text.New("Generado el "+st.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 7, Top: 9, Color: colorGray,
			}),
		),
		col.New(6).Add(
			text.New("Saldo al cierre: "+st.ClosingBalance.StringFixed(2), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right,
				Color: colorPrimary, Top: 2,
			}),
		),
	)
}

func docLabel(t string) string {
	switch t {
	case entity.DocTypeGoodsIntake:
		return "Ingreso"
	case entity.DocTypeGoodsOutflow:
		return "Salida"
	case entity.DocTypeCollection:
		return "Cobranza"
	case entity.DocTypePayment:
		return "Pago"
	case entity.DocTypeRetention:
		return "Retención"
	}
	return t
}
