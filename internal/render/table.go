package render

import (
	"fmt"
	"image/color"

	"github.com/bmaharathi/zombiegene/internal/service"
	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

var (
	headerFill = color.RGBA{0, 8, 62, 255}      // #00083e
	stripeFill = color.RGBA{237, 237, 238, 255} // #ededee
	gridStroke = color.RGBA{255, 255, 255, 255}
	undefFill  = color.RGBA{150, 150, 150, 255}
)

const (
	tableMargin = 8.0
	cellPadding = 6.0
	// geneColumnUnits is the width of the gene column relative to a value column.
	geneColumnUnits = 2.0
)

// RenderTable draws the projected table: a dark header band followed by striped rows.
func (r *Renderer) RenderTable(t service.Table) ([]byte, error) {
	if len(t.Header) == 0 {
		return nil, fmt.Errorf("table has no header")
	}

	rows, hidden := t.Rows, 0
	if len(rows) > r.config.TableMaxRows {
		rows, hidden = rows[:r.config.TableMaxRows], len(rows)-r.config.TableMaxRows
	}
	lines := len(rows) + 1
	if hidden > 0 {
		lines++
	}

	rowH := float64(r.config.TableRowHeight)
	width := r.config.TableWidth
	height := int(2*tableMargin + rowH*float64(lines))

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)
	dc.Clear()

	inner := float64(width) - 2*tableMargin
	unit := inner / (geneColumnUnits + float64(len(t.Header)-1))
	colX := func(i int) (x, w float64) {
		if i == 0 {
			return tableMargin, unit * geneColumnUnits
		}
		return tableMargin + unit*(geneColumnUnits+float64(i-1)), unit
	}

	// Header
	dc.SetColor(headerFill)
	dc.DrawRectangle(tableMargin, tableMargin, inner, rowH)
	dc.Fill()
	dc.SetColor(color.White)
	for i, h := range t.Header {
		x, w := colX(i)
		dc.DrawStringAnchored(fitText(dc, h, w-2*cellPadding), x+cellPadding, tableMargin+rowH/2, 0, 0.5)
	}

	for ri, row := range rows {
		y := tableMargin + rowH*float64(ri+1)
		if ri%2 == 0 {
			dc.SetColor(stripeFill)
		} else {
			dc.SetColor(color.White)
		}
		dc.DrawRectangle(tableMargin, y, inner, rowH)
		dc.Fill()

		cells := make([]string, 0, len(row.Values)+1)
		cells = append(cells, row.Gene)
		for _, v := range row.Values {
			cells = append(cells, v.String())
		}
		for i, cell := range cells {
			if i >= len(t.Header) {
				break
			}
			x, w := colX(i)
			if i > 0 && !row.Defined {
				dc.SetColor(undefFill)
			} else {
				dc.SetColor(color.Black)
			}
			dc.DrawStringAnchored(fitText(dc, cell, w-2*cellPadding), x+cellPadding, y+rowH/2, 0, 0.5)
		}
	}

	// Column separators
	gridBottom := tableMargin + rowH*float64(len(rows)+1)
	dc.SetColor(gridStroke)
	dc.SetLineWidth(1)
	for i := 1; i < len(t.Header); i++ {
		x, _ := colX(i)
		dc.DrawLine(x, tableMargin, x, gridBottom)
		dc.Stroke()
	}

	if hidden > 0 {
		dc.SetColor(undefFill)
		dc.DrawStringAnchored(moreRowsLabel(hidden), tableMargin+cellPadding, gridBottom+rowH/2, 0, 0.5)
	}

	return r.encodeImage(dc.Image())
}

func moreRowsLabel(n int) string {
	if n == 1 {
		return "+1 more gene"
	}
	return fmt.Sprintf("+%d more genes", n)
}

// fitText truncates s with "..." so that it fits in maxW pixels.
func fitText(dc *gg.Context, s string, maxW float64) string {
	if w, _ := dc.MeasureString(s); w <= maxW {
		return s
	}
	runes := []rune(s)
	for n := len(runes) - 1; n > 0; n-- {
		cand := string(runes[:n]) + "..."
		if w, _ := dc.MeasureString(cand); w <= maxW {
			return cand
		}
	}
	return "..."
}
