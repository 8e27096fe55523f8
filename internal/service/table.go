package service

import (
	"fmt"
	"io"
	"math"

	"github.com/bmaharathi/zombiegene/internal/data/dataset"
	"github.com/gocarina/gocsv"
)

// TableRow is one gene's row in the projected table.
type TableRow struct {
	Gene    string  `json:"gene"`
	Values  []Value `json:"values"`
	Defined bool    `json:"defined"`
}

// Table is the row-oriented companion to the chart.
type Table struct {
	Mode   Mode       `json:"mode"`
	Header []string   `json:"header"`
	Rows   []TableRow `json:"rows"`
}

// TableHeader returns ["Gene", "0 Hours", ..., "24 Hours"].
func TableHeader() []string {
	header := make([]string, 0, dataset.NumTimePoints+1)
	header = append(header, "Gene")
	for _, t := range dataset.TimeAxis {
		header = append(header, fmt.Sprintf("%d Hours", t))
	}
	return header
}

// Project builds the table for records. Relative modes are rounded half-to-even for
// display while Compute keeps full precision for the chart. Undefined rows keep their
// place with every value set to NaN.
func Project(records []dataset.GeneRecord, mode Mode) (Table, error) {
	if len(records) == 0 {
		return Table{}, ErrNoRecords
	}
	if !mode.valid() {
		return Table{}, ErrUnknownMode
	}

	t := Table{
		Mode:   mode,
		Header: TableHeader(),
		Rows:   make([]TableRow, 0, len(records)),
	}
	for _, rec := range records {
		row := TableRow{
			Gene:   rec.Name,
			Values: make([]Value, dataset.NumTimePoints),
		}
		values, ok := Normalize(rec.Expression, mode)
		row.Defined = ok
		for i := range row.Values {
			switch {
			case !ok:
				row.Values[i] = Value(math.NaN())
			case mode.Relative():
				row.Values[i] = Value(math.RoundToEven(values[i]))
			default:
				row.Values[i] = Value(values[i])
			}
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

// tableCSVRow mirrors TableHeader for gocsv.
type tableCSVRow struct {
	Gene string `csv:"Gene"`
	H0   string `csv:"0 Hours"`
	H1   string `csv:"1 Hours"`
	H2   string `csv:"2 Hours"`
	H4   string `csv:"4 Hours"`
	H8   string `csv:"8 Hours"`
	H12  string `csv:"12 Hours"`
	H24  string `csv:"24 Hours"`
}

// WriteCSV writes the table, header included, as comma-separated text.
func (t Table) WriteCSV(w io.Writer) error {
	rows := make([]*tableCSVRow, 0, len(t.Rows))
	for _, r := range t.Rows {
		v := func(i int) string {
			if i >= len(r.Values) {
				return ""
			}
			return r.Values[i].String()
		}
		rows = append(rows, &tableCSVRow{
			Gene: r.Gene,
			H0:   v(0),
			H1:   v(1),
			H2:   v(2),
			H4:   v(3),
			H8:   v(4),
			H12:  v(5),
			H24:  v(6),
		})
	}
	if err := gocsv.Marshal(rows, w); err != nil {
		return fmt.Errorf("failed to marshal table: %w", err)
	}
	return nil
}
