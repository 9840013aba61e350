// Package pdf exporta las tablas renderizadas a PDF con Maroto v2.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Título + subtítulo  │  Fecha de generación         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: cabecera con fondo + una fila por registro          │
//	│  ─────────────────────────────────────────────────────────  │
//	│  FOOTER: total de registros                                 │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
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
)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorWhite   = &props.Color{Red: 255, Green: 255, Blue: 255}
	colorStripe  = &props.Color{Red: 240, Green: 244, Blue: 248}
)

// gridSize columnas de la grilla de Maroto.
const gridSize = 12

// Document tabla ya convertida a texto plano.
type Document struct {
	Title       string
	Subtitle    string
	GeneratedAt string
	Headers     []string
	Rows        [][]string
}

// TablePDFGenerator genera el PDF de una tabla.
type TablePDFGenerator struct {
	author string
}

// NewTablePDFGenerator construye el generador; author queda en los metadatos del PDF.
func NewTablePDFGenerator(author string) *TablePDFGenerator {
	return &TablePDFGenerator{author: author}
}

// Generate genera el PDF y devuelve sus bytes.
func (g *TablePDFGenerator) Generate(_ context.Context, doc Document) ([]byte, error) {
	if len(doc.Headers) == 0 {
		return nil, fmt.Errorf("pdf: tabla sin columnas")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 8}).
		WithTitle(doc.Title, true).
		WithAuthor(g.author, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(doc))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	sizes := columnSizes(len(doc.Headers))
	m.AddRows(tableHeaderRow(doc.Headers, sizes))
	for i, r := range doc.Rows {
		m.AddRows(tableRow(r, sizes, i%2 == 1))
	}

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(row.New(6).Add(col.New(gridSize).Add(
		text.New(fmt.Sprintf("Total de registros: %d", len(doc.Rows)), props.Text{
			Size: 8, Align: align.Right, Color: colorGray, Top: 1,
		}),
	)))

	out, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return out.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + subtítulo (izq) y fecha de generación (der).
func headerRow(doc Document) core.Row {
	return row.New(16).Add(
		col.New(8).Add(
			text.New(doc.Title, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New(nonEmpty(doc.Subtitle, " "), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(4).Add(
			text.New(nonEmpty(doc.GeneratedAt, " "), props.Text{
				Size: 8, Align: align.Right, Top: 2, Color: colorGray,
			}),
		),
	)
}

// tableHeaderRow: cabecera con fondo del color primario.
func tableHeaderRow(headers []string, sizes []int) core.Row {
	cols := make([]core.Col, 0, len(headers))
	for i, h := range headers {
		cols = append(cols, col.New(sizes[i]).Add(text.New(h, props.Text{
			Style: fontstyle.Bold, Size: 8, Color: colorWhite, Top: 2, Left: 1, Right: 1,
		})))
	}
	return row.New(8).Add(cols...).WithStyle(&props.Cell{BackgroundColor: colorPrimary})
}

// tableRow: una fila por registro; las pares llevan fondo alterno.
func tableRow(cells []string, sizes []int, striped bool) core.Row {
	cols := make([]core.Col, 0, len(sizes))
	for i := range sizes {
		v := ""
		if i < len(cells) {
			v = cells[i]
		}
		cols = append(cols, col.New(sizes[i]).Add(text.New(nonEmpty(v, "—"), props.Text{
			Size: 7.5, Top: 1, Left: 1, Right: 1,
		})))
	}
	r := row.New(7).Add(cols...)
	if striped {
		r = r.WithStyle(&props.Cell{BackgroundColor: colorStripe})
	}
	return r
}

// ── helpers ───────────────────────────────────────────────────────────────────

// columnSizes reparte las 12 columnas de la grilla; el resto va a las primeras.
// Más de 12 columnas: cada una ocupa 1 y Maroto recorta.
func columnSizes(n int) []int {
	sizes := make([]int, n)
	base, rest := gridSize/n, gridSize%n
	if base == 0 {
		base, rest = 1, 0
	}
	for i := range sizes {
		sizes[i] = base
		if i < rest {
			sizes[i]++
		}
	}
	return sizes
}

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}
