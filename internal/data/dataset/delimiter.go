package dataset

import (
	"io"

	"github.com/csimplestring/go-csv/detector"
)

// delimiterPreference orders the separators we accept. Descriptions in the published
// file carry "Symbol;Acc" annotations, so ';' can look as regular as ',' does.
var delimiterPreference = []string{",", "\t", ";", "|"}

// detectDelimiter returns the most likely field separator in r, falling back to ','.
func detectDelimiter(r io.Reader) rune {
	d := detector.New()
	found := make(map[string]bool)
	for _, cand := range d.DetectDelimiter(r, '"') {
		found[cand] = true
	}

	for _, cand := range delimiterPreference {
		if found[cand] {
			return rune(cand[0])
		}
	}
	return ','
}
