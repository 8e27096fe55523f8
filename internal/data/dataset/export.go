package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
)

// DownloadFilename is the attachment name of the full dataset export.
const DownloadFilename = "gene_expression_dataset.csv"

// WriteCSV writes the original header and rows, comma-delimited, exactly as loaded.
// No index column is added and no values are normalized.
func (s *Store) WriteCSV(w io.Writer) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(s.header); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	if err := cw.WriteAll(s.rows); err != nil {
		return fmt.Errorf("failed to write rows: %w", err)
	}
	return nil
}
