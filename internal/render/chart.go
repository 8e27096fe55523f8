package render

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"github.com/bmaharathi/zombiegene/internal/service"
	"github.com/wcharczuk/go-chart/v2"
)

const (
	chartTitle = "Relative Postmortem Gene Expression"
	xAxisTitle = "Postmortem Interval (Hours)"
	yAxisTitle = "Gene Expression"
)

// RenderChart draws one line per gene label, colored by first-seen order.
// When nothing can be plotted a placeholder naming the undefined genes is returned.
func (r *Renderer) RenderChart(res service.SeriesResult) ([]byte, error) {
	groups := res.Groups()

	series := make([]chart.Series, 0, len(groups))
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, g := range groups {
		if len(g.Values) == 0 {
			continue
		}
		col := toDrawing(r.SeriesColor(i))
		series = append(series, chart.ContinuousSeries{
			Name:    g.Gene,
			XValues: g.Times,
			YValues: g.Values,
			Style: chart.Style{
				StrokeColor: col,
				StrokeWidth: r.config.LineWidth,
				DotColor:    col,
				DotWidth:    r.config.LineWidth,
			},
		})
		for _, v := range g.Values {
			yMin = math.Min(yMin, v)
			yMax = math.Max(yMax, v)
		}
	}

	if len(series) == 0 {
		return r.RenderPlaceholder(noDataMessage(res), r.config.ChartWidth, r.config.ChartHeight)
	}

	lo, hi := paddedRange(yMin, yMax)
	title := chartTitle
	if len(res.Undefined) > 0 {
		title += " (not plotted: " + strings.Join(res.Undefined, ", ") + ")"
	}

	ch := chart.Chart{
		Title:      title,
		Width:      r.config.ChartWidth,
		Height:     r.config.ChartHeight,
		Background: chart.Style{Padding: chart.Box{Top: 48, Left: 16, Right: 16, Bottom: 16}},
		XAxis: chart.XAxis{
			Name:  xAxisTitle,
			Range: &chart.ContinuousRange{Min: float64(dataset.TimeAxis[0]), Max: float64(dataset.TimeAxis[len(dataset.TimeAxis)-1])},
			Ticks: timeTicks(),
		},
		YAxis: chart.YAxis{
			Name:  yAxisTitle,
			Range: &chart.ContinuousRange{Min: lo, Max: hi},
		},
		Series: series,
	}
	ch.Elements = []chart.Renderable{chart.Legend(&ch)}

	out, err := r.withBuffer(func(buf *bytes.Buffer) error {
		return ch.Render(chart.PNG, buf)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to render chart: %w", err)
	}
	return out, nil
}

func timeTicks() []chart.Tick {
	ticks := make([]chart.Tick, 0, len(dataset.TimeAxis))
	for _, t := range dataset.TimeAxis {
		ticks = append(ticks, chart.Tick{Value: float64(t), Label: strconv.Itoa(t)})
	}
	return ticks
}

// paddedRange widens [lo, hi] by 5% on each side; a flat series gets ±1.
func paddedRange(lo, hi float64) (float64, float64) {
	if hi-lo == 0 {
		return lo - 1, hi + 1
	}
	pad := (hi - lo) * 0.05
	return lo - pad, hi + pad
}

func noDataMessage(res service.SeriesResult) string {
	if len(res.Undefined) > 0 {
		return "Cannot normalize " + strings.Join(res.Undefined, ", ") + ": divisor is zero"
	}
	return "No numeric values for the selected genes"
}
