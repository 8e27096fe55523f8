package service

import (
	"errors"
	"math"

	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"github.com/montanaflynn/stats"
)

// EmptyMessage is shown in place of the chart and table when nothing is selected.
const EmptyMessage = "Please select a gene"

// ErrNoRecords signals an empty selection: no ids given, or none of them exist.
// It is distinct from a result with zero points.
var ErrNoRecords = errors.New("no genes selected")

// Selection is the per-request user input.
type Selection struct {
	GeneIDs []int
	Mode    Mode
}

// Point is one (time, expression) sample of a gene, the shape the chart consumes.
type Point struct {
	Time       int    `json:"time"`
	Expression Value  `json:"expression"`
	Gene       string `json:"gene"`
}

// SeriesResult is the chart-ready output of Compute.
type SeriesResult struct {
	Mode   Mode    `json:"mode"`
	Points []Point `json:"points"`
	// Undefined lists genes left out because their divisor (peak or hour-0 value) is zero
	// or not a number, in first-seen order.
	Undefined []string `json:"undefined"`
}

// Group is the run of points sharing one gene label.
type Group struct {
	Gene   string
	Times  []float64
	Values []float64
}

// Compute normalizes every record and flattens the result record-major, time-minor.
// Records whose normalization is undefined are not plotted and are reported in
// Undefined instead.
func Compute(records []dataset.GeneRecord, mode Mode) (SeriesResult, error) {
	if len(records) == 0 {
		return SeriesResult{}, ErrNoRecords
	}
	if !mode.valid() {
		return SeriesResult{}, ErrUnknownMode
	}

	res := SeriesResult{
		Mode:      mode,
		Points:    make([]Point, 0, len(records)*dataset.NumTimePoints),
		Undefined: []string{},
	}
	for _, rec := range records {
		values, ok := Normalize(rec.Expression, mode)
		if !ok {
			res.Undefined = appendUnique(res.Undefined, rec.Name)
			continue
		}
		for i, t := range dataset.TimeAxis {
			res.Points = append(res.Points, Point{
				Time:       t,
				Expression: Value(values[i]),
				Gene:       rec.Name,
			})
		}
	}
	return res, nil
}

// Normalize applies mode to one series. ok is false when the divisor is zero or not
// finite, and under RelativeToMax also when the peak is negative: dividing by a negative
// peak would flip the series and put its maximum below 100.
func Normalize(s dataset.Series, mode Mode) (dataset.Series, bool) {
	var divisor float64
	switch mode {
	case Absolute:
		return s, true
	case RelativeToMax:
		peak, ok := peakValue(s)
		if !ok || peak <= 0 {
			return dataset.Series{}, false
		}
		divisor = peak
	case RelativeToTimeZero:
		divisor = s[0]
	default:
		return dataset.Series{}, false
	}

	if divisor == 0 || math.IsNaN(divisor) || math.IsInf(divisor, 0) {
		return dataset.Series{}, false
	}

	var out dataset.Series
	for i, v := range s {
		out[i] = 100 * (v / divisor)
	}
	return out, true
}

// peakValue returns the largest finite value in s.
func peakValue(s dataset.Series) (float64, bool) {
	finite := make(stats.Float64Data, 0, len(s))
	for _, v := range s {
		if !math.IsNaN(v) && !math.IsInf(v, 0) {
			finite = append(finite, v)
		}
	}
	peak, err := stats.Max(finite)
	if err != nil {
		return 0, false
	}
	return peak, true
}

// Groups splits the points by gene label in first-seen order. Points of records
// that share a label end up in the same group. Undefined values are skipped.
func (r SeriesResult) Groups() []Group {
	var groups []Group
	index := make(map[string]int)
	for _, p := range r.Points {
		i, ok := index[p.Gene]
		if !ok {
			i = len(groups)
			index[p.Gene] = i
			groups = append(groups, Group{Gene: p.Gene})
		}
		if !p.Expression.Defined() {
			continue
		}
		groups[i].Times = append(groups[i].Times, float64(p.Time))
		groups[i].Values = append(groups[i].Values, float64(p.Expression))
	}
	return groups
}

func appendUnique(list []string, s string) []string {
	for _, v := range list {
		if v == s {
			return list
		}
	}
	return append(list, s)
}
