// Package render draws the expression chart and table as PNG images.
package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"sync"

	"github.com/bmaharathi/zombiegene/pkg/colormap"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

// Config contains renderer configuration.
type Config struct {
	ChartWidth     int
	ChartHeight    int
	LineWidth      float64
	TableWidth     int
	TableRowHeight int
	TableMaxRows   int // rows beyond this are summarized in a footer line
	Palette        string
}

// Renderer renders chart and table images. It is safe for concurrent use.
type Renderer struct {
	config     Config
	palette    colormap.CategoricalColormap
	bufferPool sync.Pool
}

// NewRenderer creates a new renderer. Unknown palettes fall back to plotly.
func NewRenderer(cfg Config) *Renderer {
	if cfg.ChartWidth <= 0 {
		cfg.ChartWidth = 1024
	}
	if cfg.ChartHeight <= 0 {
		cfg.ChartHeight = 512
	}
	if cfg.LineWidth <= 0 {
		cfg.LineWidth = 5
	}
	if cfg.TableWidth <= 0 {
		cfg.TableWidth = cfg.ChartWidth
	}
	if cfg.TableRowHeight <= 0 {
		cfg.TableRowHeight = 24
	}
	if cfg.TableMaxRows <= 0 {
		cfg.TableMaxRows = 50
	}

	palette, ok := colormap.ByName(cfg.Palette)
	if !ok {
		palette = colormap.Plotly
	}

	return &Renderer{
		config:  cfg,
		palette: palette,
		bufferPool: sync.Pool{
			New: func() interface{} {
				return bytes.NewBuffer(make([]byte, 0, 64*1024))
			},
		},
	}
}

// Config returns the effective configuration.
func (r *Renderer) Config() Config {
	return r.config
}

// SeriesColor returns the color of the i-th gene in first-seen order.
func (r *Renderer) SeriesColor(i int) color.Color {
	return r.palette.AtIndex(i)
}

func (r *Renderer) encodeImage(img image.Image) ([]byte, error) {
	encoder := png.Encoder{CompressionLevel: png.BestSpeed}
	return r.withBuffer(func(buf *bytes.Buffer) error {
		return encoder.Encode(buf, img)
	})
}

// withBuffer runs fn against a pooled buffer and returns a copy of what it wrote.
func (r *Renderer) withBuffer(fn func(buf *bytes.Buffer) error) ([]byte, error) {
	buf := r.bufferPool.Get().(*bytes.Buffer)
	defer func() {
		buf.Reset()
		r.bufferPool.Put(buf)
	}()

	if err := fn(buf); err != nil {
		return nil, err
	}

	// Copy buffer contents (buffer will be reused)
	result := make([]byte, buf.Len())
	copy(result, buf.Bytes())
	return result, nil
}

func toDrawing(c color.Color) drawing.Color {
	r, g, b, a := c.RGBA()
	return drawing.Color{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
}
