package render

import (
	"image/color"

	"github.com/fogleman/gg"
	"golang.org/x/image/font/basicfont"
)

const placeholderScale = 3.0

// RenderPlaceholder draws text centered on a blank canvas of the given size.
func (r *Renderer) RenderPlaceholder(text string, width, height int) ([]byte, error) {
	if width <= 0 {
		width = r.config.ChartWidth
	}
	if height <= 0 {
		height = r.config.ChartHeight
	}

	dc := gg.NewContext(width, height)
	dc.SetFontFace(basicfont.Face7x13)
	dc.SetColor(color.White)
	dc.Clear()

	cx, cy := float64(width)/2, float64(height)/2
	scale := placeholderScale
	if w, _ := dc.MeasureString(text); w*scale > float64(width)*0.9 && w > 0 {
		scale = float64(width) * 0.9 / w
	}

	dc.Push()
	dc.ScaleAbout(scale, scale, cx, cy)
	dc.SetRGB255(68, 68, 68)
	dc.DrawStringAnchored(text, cx, cy, 0.5, 0.5)
	dc.Pop()

	return r.encodeImage(dc.Image())
}
