// Package pdf genera el reporte imprimible del inventario de una farmacia.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre farmacia + ID  │  Fecha de emisión          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  CONTACTO: Dirección / Tel / Coordenadas                     │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: # | Medicamento | Precio | Disponibilidad            │
//	│  ─────────────────────────────────────────────────────────  │
//	│  RESUMEN: conteo por estado + QR geo:lat,lon                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
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

	"github.com/jhoicas/Farmacia-api/internal/application/ports"
	"github.com/jhoicas/Farmacia-api/internal/domain/entity"
)

// Verificar en tiempo de compilación que MarotoReportGenerator implementa InventoryReportGenerator.
var _ ports.InventoryReportGenerator = (*MarotoReportGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 110, Blue: 90}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorLow     = &props.Color{Red: 200, Green: 120, Blue: 0}
	colorOut     = &props.Color{Red: 180, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoReportGenerator implementa ports.InventoryReportGenerator usando Maroto v2.
type MarotoReportGenerator struct {
	now func() time.Time
}

// NewMarotoReportGenerator construye el generador.
func NewMarotoReportGenerator() *MarotoReportGenerator {
	return &MarotoReportGenerator{now: time.Now}
}

// GenerateInventoryReport genera el PDF y devuelve sus bytes.
func (g *MarotoReportGenerator) GenerateInventoryReport(
	_ context.Context,
	pharmacy *entity.Pharmacy,
	stock []entity.MedicineStock,
) ([]byte, error) {
	if pharmacy == nil {
		return nil, fmt.Errorf("pdf: farmacia nil")
	}

	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Inventario "+pharmacy.Name, true).
		WithAuthor(pharmacy.Name, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(pharmacy, g.now()))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(contactRow(pharmacy))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	if len(stock) == 0 {
		m.AddRows(row.New(10).Add(col.New(12).Add(
			text.New("Sin medicamentos registrados.", props.Text{
				Size: 9, Align: align.Center, Top: 3, Color: colorGray,
			}),
		)))
	}
	m.AddRows(tableDetailRows(stock)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(summaryRow(pharmacy, stock))

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func headerRow(p *entity.Pharmacy, issued time.Time) core.Row {
	return row.New(18).Add(
		col.New(8).Add(
			text.New(p.Name, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Farmacia #"+strconv.FormatInt(p.ID, 10), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New("REPORTE DE INVENTARIO", props.Text{
				Style: fontstyle.Bold, Size: 8, Align: align.Right,
				Color: colorPrimary, Top: 1,
			}),
			text.New("Emitido: "+issued.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 9, Color: colorGray,
			}),
		),
	)
}

func contactRow(p *entity.Pharmacy) core.Row {
	return row.New(12).Add(
		col.New(12).Add(
			text.New("CONTACTO", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Dirección: %s   |   Tel: %s   |   Ubicación: %.5f, %.5f",
				nonEmpty(p.Address, "—"),
				nonEmpty(p.Phone, "—"),
				p.Lat, p.Lon,
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

// tableHeaderRow: cabecera de la tabla con texto blanco sobre fondo primario.
func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a,
			Color: colorWhite, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("#", 1, align.Center),
		h("Medicamento", 6, align.Left),
		h("Precio / tira", 2, align.Right),
		h("Disponibilidad", 3, align.Center),
	).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableDetailRows: una fila por medicamento, en el orden recibido.
func tableDetailRows(stock []entity.MedicineStock) []core.Row {
	result := make([]core.Row, 0, len(stock))
	for i, s := range stock {
		result = append(result, row.New(7).Add(
			col.New(1).Add(text.New(
				strconv.Itoa(i+1),
				props.Text{Size: 8, Align: align.Center, Top: 1},
			)),
			col.New(6).Add(text.New(
				s.MedicineKey,
				props.Text{Size: 8, Align: align.Left, Top: 1, Left: 1},
			)),
			col.New(2).Add(text.New(
				formatPrice(s.Price.StringFixed(2)),
				props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1},
			)),
			col.New(3).Add(text.New(
				string(s.Stock),
				props.Text{Size: 8, Align: align.Center, Top: 1, Color: stockColor(s.Stock)},
			)),
		))
	}
	return result
}

// summaryRow: conteo por disponibilidad y QR con la ubicación.
func summaryRow(p *entity.Pharmacy, stock []entity.MedicineStock) core.Row {
	counts := map[entity.StockStatus]int{}
	for _, s := range stock {
		counts[s.Stock]++
	}
	countLine := func(label string, n int, color *props.Color, top float64) core.Component {
		return text.New(fmt.Sprintf("%s: %d", label, n), props.Text{
			Size: 9, Top: top, Left: 3, Color: color,
		})
	}

	return row.New(40).Add(
		col.New(4).Add(code.NewQr(fmt.Sprintf("geo:%.6f,%.6f", p.Lat, p.Lon), props.Rect{
			Percent: 90,
			Center:  true,
		})),
		col.New(8).Add(
			text.New(fmt.Sprintf("Total de medicamentos: %d", len(stock)), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 4, Left: 3, Color: colorPrimary,
			}),
			countLine(string(entity.InStock), counts[entity.InStock], colorGray, 12),
			countLine(string(entity.LowStock), counts[entity.LowStock], colorLow, 18),
			countLine(string(entity.OutOfStock), counts[entity.OutOfStock], colorOut, 24),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func stockColor(s entity.StockStatus) *props.Color {
	switch s {
	case entity.LowStock:
		return colorLow
	case entity.OutOfStock:
		return colorOut
	}
	return colorGray
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatPrice antepone "Rs." e inserta comas de miles en la parte entera.
// Ej: "25.00" → "Rs. 25.00", "1250.50" → "Rs. 1,250.50"
func formatPrice(s string) string {
	intPart, frac := s, ""
	for i := 0; i < len(s); i++ {
		if s[i] == '.' {
			intPart, frac = s[:i], s[i:]
			break
		}
	}
	sign := ""
	if len(intPart) > 0 && intPart[0] == '-' {
		sign, intPart = "-", intPart[1:]
	}
	n := len(intPart)
	buf := make([]byte, 0, n+n/3)
	for i, c := range []byte(intPart) {
		if i > 0 && (n-i)%3 == 0 {
			buf = append(buf, ',')
		}
		buf = append(buf, c)
	}
	return "Rs. " + sign + string(buf) + frac
}
