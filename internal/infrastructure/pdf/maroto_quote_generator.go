// Package pdf implementa la versión imprimible de la cotización (devis) con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre del taller   │  DEVIS + Ref. + Fechas        │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CLIENTE (opcional)                                          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Qté | Désignation | P.U. TTC | Total TTC             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Total HT / TVA 20 % / TOTAL TTC                    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: QR con la referencia + condiciones                  │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

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

	"github.com/jhoicas/canape-quote/internal/application/quote"
	"github.com/jhoicas/canape-quote/internal/domain/entity"
	"github.com/jhoicas/canape-quote/pkg/money"
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 92, Green: 64, Blue: 51}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
)

// Las fuentes core de gofpdf no tienen los espacios finos que usa x/text en francés.
var spaceFixer = strings.NewReplacer("\u202f", " ", "\u00a0", " ")

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoQuotePDFGenerator implementa quote.QuotePDFGenerator usando Maroto v2.
type MarotoQuotePDFGenerator struct {
	formatter *money.Formatter
}

// NewMarotoQuotePDFGenerator construye el generador; locale define el formato de los importes.
func NewMarotoQuotePDFGenerator(locale string) *MarotoQuotePDFGenerator {
	return &MarotoQuotePDFGenerator{formatter: money.NewFormatter(locale)}
}

// GenerateQuotePDF genera el PDF y devuelve sus bytes.
func (g *MarotoQuotePDFGenerator) GenerateQuotePDF(ctx context.Context, doc quote.QuoteDocument) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Devis "+doc.Reference, true).
		WithAuthor(doc.ShopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	if doc.CustomerName != "" {
		m.AddRows(customerRow(doc.CustomerName))
		m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	}

	// Detalle
	m.AddRows(tableHeaderRow())
	for _, r := range g.tableLineRows(doc.Lines) {
		m.AddRows(r)
	}

	// Totales
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(g.totalsRow(doc))

	m.AddRows(line.NewRow(3))
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	m.AddRows(footerRow(doc))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: nombre del taller (izq) y referencia + fechas (der).
func headerRow(doc quote.QuoteDocument) core.Row {
	return row.New(20).Add(
		col.New(7).Add(
			text.New(doc.ShopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Canapés sur mesure", props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("DEVIS", props.Text{
				Style: fontstyle.Bold, Size: 12, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Réf. "+shortRef(doc.Reference), props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Top: 7,
			}),
			text.New("Date : "+doc.IssuedAt.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 12, Color: colorGray,
			}),
			text.New("Valable jusqu'au : "+doc.ValidUntil.Format("02/01/2006"), props.Text{
				Size: 8, Align: align.Right, Top: 16, Color: colorGray,
			}),
		),
	)
}

func customerRow(name string) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CLIENT", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(name, props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 6,
			}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla de líneas.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
	}
	return row.New(8).Add(
		h("Qté", 1, align.Center),
		h("Désignation", 6, align.Left),
		h("P.U. TTC", 2, align.Right),
		h("Total TTC", 3, align.Right),
	)
}

// tableLineRows: una fila por línea de la cotización.
func (g *MarotoQuotePDFGenerator) tableLineRows(lines []entity.QuoteLine) []core.Row {
	result := make([]core.Row, 0, len(lines))
	for _, l := range lines {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(l.Quantity),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				l.Label,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				g.amount(l.UnitPriceIncl),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				g.amount(l.LineTotalIncl),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
		))
	}
	return result
}

// totalsRow: bloque de totales alineado a la derecha.
func (g *MarotoQuotePDFGenerator) totalsRow(doc quote.QuoteDocument) core.Row {
	label := func(s string, top float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Top: top,
		})
	}
	value := func(s string, top float64) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Top: top})
	}
	grand := func(s string, right float64) core.Component {
		return text.New(s, props.Text{
			Style: fontstyle.Bold, Size: 10, Align: align.Right,
			Color: colorPrimary, Right: right, Top: 14,
		})
	}

	return row.New(22).Add(
		col.New(4),
		col.New(4).Add(
			label("Total HT :", 1),
			label("TVA 20 % :", 7),
			grand("TOTAL TTC :", 2),
		),
		col.New(4).Add(
			value(g.amount(doc.TotalPriceExcl), 1),
			value(g.amount(doc.TaxAmount), 7),
			grand(g.amount(doc.TotalPriceIncl), 1),
		),
	)
}

// footerRow: QR con la referencia completa y condiciones del devis.
func footerRow(doc quote.QuoteDocument) core.Row {
	return row.New(32).Add(
		col.New(3).Add(code.NewQr(doc.Reference, props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(9).Add(
			text.New("Référence : "+doc.Reference, props.Text{
				Size: 7, Top: 3, Left: 3, Color: colorGray,
			}),
			text.New(
				"Devis gratuit, valable jusqu'à la date indiquée. Prix TTC, TVA 20 % incluse. "+
					"Fabrication sur mesure après acceptation du devis et versement de l'acompte.",
				props.Text{Size: 7, Top: 10, Left: 3, Color: colorGray},
			),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func (g *MarotoQuotePDFGenerator) amount(v decimal.Decimal) string {
	return spaceFixer.Replace(g.formatter.Format(v))
}

// shortRef primeros 8 caracteres de la referencia, como en el nombre del archivo.
func shortRef(ref string) string {
	if len(ref) <= 8 {
		return strings.ToUpper(ref)
	}
	return strings.ToUpper(ref[:8])
}
