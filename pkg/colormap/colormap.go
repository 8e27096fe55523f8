// Package colormap provides color schemes for gene series.
package colormap

import (
	"fmt"
	"image/color"
	"strings"
)

// CategoricalColormap provides distinct colors for categories.
type CategoricalColormap struct {
	colors []color.RGBA
}

// AtIndex returns color at index (wraps around).
func (c CategoricalColormap) AtIndex(i int) color.Color {
	if i < 0 {
		i = -i
	}
	return c.colors[i%len(c.colors)]
}

// Len returns the number of distinct colors.
func (c CategoricalColormap) Len() int {
	return len(c.colors)
}

// Plotly is the default qualitative palette of plotly line charts.
var Plotly = CategoricalColormap{
	colors: []color.RGBA{
		{99, 110, 250, 255},  // #636EFA
		{239, 85, 59, 255},   // #EF553B
		{0, 204, 150, 255},   // #00CC96
		{171, 99, 250, 255},  // #AB63FA
		{255, 161, 90, 255},  // #FFA15A
		{25, 211, 243, 255},  // #19D3F3
		{255, 102, 146, 255}, // #FF6692
		{182, 232, 128, 255}, // #B6E880
		{255, 151, 255, 255}, // #FF97FF
		{254, 203, 82, 255},  // #FECB52
	},
}

// Categorical colormap with 20 distinct colors
var Categorical = CategoricalColormap{
	colors: []color.RGBA{
		{31, 119, 180, 255},  // Blue
		{255, 127, 14, 255},  // Orange
		{44, 160, 44, 255},   // Green
		{214, 39, 40, 255},   // Red
		{148, 103, 189, 255}, // Purple
		{140, 86, 75, 255},   // Brown
		{227, 119, 194, 255}, // Pink
		{127, 127, 127, 255}, // Gray
		{188, 189, 34, 255},  // Olive
		{23, 190, 207, 255},  // Cyan
		{174, 199, 232, 255}, // Light blue
		{255, 187, 120, 255}, // Light orange
		{152, 223, 138, 255}, // Light green
		{255, 152, 150, 255}, // Light red
		{197, 176, 213, 255}, // Light purple
		{196, 156, 148, 255}, // Light brown
		{247, 182, 210, 255}, // Light pink
		{199, 199, 199, 255}, // Light gray
		{219, 219, 141, 255}, // Light olive
		{158, 218, 229, 255}, // Light cyan
	},
}

// ByName returns a named palette.
func ByName(name string) (CategoricalColormap, bool) {
	switch strings.ToLower(name) {
	case "plotly":
		return Plotly, true
	case "categorical", "tab20":
		return Categorical, true
	}
	return CategoricalColormap{}, false
}

// Hex formats c as #RRGGBB.
func Hex(c color.Color) string {
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02X%02X%02X", r>>8, g>>8, b>>8)
}
