// Package dataset loads the postmortem gene expression table and serves it read-only.
package dataset

import (
	"errors"
	"fmt"
	"log"
	"math"
	"strconv"
	"strings"
)

// NumTimePoints is the number of sampled postmortem intervals per gene.
const NumTimePoints = 7

// TimeAxis holds the postmortem intervals (hours) each expression value is aligned to.
var TimeAxis = [NumTimePoints]int{0, 1, 2, 4, 8, 12, 24}

// Series is one gene's expression values, positionally aligned to TimeAxis.
type Series [NumTimePoints]float64

// GeneRecord is one parsed dataset row.
type GeneRecord struct {
	// ID is the 1-based position of the row in the file. Reordering the file changes it.
	ID          int
	Name        string
	EnsemblID   string
	Description string
	Expression  Series
}

// Label returns the picker label, e.g. "GFAP(glial fibrillary acidic protein)".
func (g GeneRecord) Label() string {
	return g.Name + "(" + g.Description + ")"
}

// ErrColumnCount is returned when a row does not match the configured column layout.
var ErrColumnCount = errors.New("unexpected column count")

// Columns describes where each field lives in a raw row (zero-based).
type Columns struct {
	Name        int `yaml:"name"`
	Ensembl     int `yaml:"ensembl"`
	Description int `yaml:"description"`
	FirstValue  int `yaml:"first_value"`
}

// DefaultColumns returns the layout of the published dataset:
// name, ensembl id, description, then the seven expression values.
func DefaultColumns() Columns {
	return Columns{Name: 0, Ensembl: 1, Description: 2, FirstValue: 3}
}

// Width returns the number of fields a row must have.
func (c Columns) Width() int {
	w := c.FirstValue + NumTimePoints
	for _, idx := range []int{c.Name, c.Ensembl, c.Description} {
		if idx+1 > w {
			w = idx + 1
		}
	}
	return w
}

// Validate checks that the layout is usable.
func (c Columns) Validate() error {
	for name, idx := range map[string]int{
		"name":        c.Name,
		"ensembl":     c.Ensembl,
		"description": c.Description,
		"first_value": c.FirstValue,
	} {
		if idx < 0 {
			return fmt.Errorf("column %s: negative index %d", name, idx)
		}
	}
	for name, idx := range map[string]int{"name": c.Name, "ensembl": c.Ensembl, "description": c.Description} {
		if idx >= c.FirstValue && idx < c.FirstValue+NumTimePoints {
			return fmt.Errorf("column %s (%d) overlaps expression columns %d..%d",
				name, idx, c.FirstValue, c.FirstValue+NumTimePoints-1)
		}
	}
	if c.Name == c.Ensembl || c.Name == c.Description || c.Ensembl == c.Description {
		return fmt.Errorf("text columns must be distinct: name=%d ensembl=%d description=%d",
			c.Name, c.Ensembl, c.Description)
	}
	return nil
}

// normalizeRow turns the raw fields of data row pos (zero-based) into a GeneRecord.
// Unparseable numbers become NaN and are logged, not rejected.
func normalizeRow(pos int, fields []string, cols Columns) (GeneRecord, error) {
	if len(fields) != cols.Width() {
		return GeneRecord{}, fmt.Errorf("row %d: %w: got %d, want %d", pos+1, ErrColumnCount, len(fields), cols.Width())
	}

	rec := GeneRecord{
		ID:          pos + 1,
		Name:        fields[cols.Name],
		EnsemblID:   fields[cols.Ensembl],
		Description: stripAnnotation(fields[cols.Description]),
	}

	for i := 0; i < NumTimePoints; i++ {
		col := cols.FirstValue + i
		v, err := strconv.ParseFloat(strings.TrimSpace(fields[col]), 64)
		if err != nil {
			log.Printf("[Dataset] row %d column %d: non-numeric value %q, using NaN", pos+1, col, fields[col])
			v = math.NaN()
		}
		rec.Expression[i] = v
	}
	return rec, nil
}

// stripAnnotation drops the "[Source:...]" suffix embedded in descriptions.
func stripAnnotation(s string) string {
	if i := strings.IndexByte(s, '['); i >= 0 {
		s = s[:i]
	}
	return strings.TrimRight(s, " \t")
}
