package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

// Store holds the loaded dataset. It is never mutated after Load returns,
// so it is safe for concurrent readers without locking.
type Store struct {
	path    string
	header  []string
	rows    [][]string
	records []GeneRecord
}

// GeneOption is one entry of the gene picker.
type GeneOption struct {
	Value int    `json:"value"`
	Label string `json:"label"`
}

// Options controls how the raw table is read.
type Options struct {
	Columns Columns
	// Delimiter is the field separator; zero means detect it from the content.
	Delimiter rune
}

// DefaultOptions returns the options matching the published dataset.
func DefaultOptions() Options {
	return Options{Columns: DefaultColumns()}
}

// Load reads the dataset at path. Files ending in .zst or .gz are decompressed.
func Load(path string, opts Options) (*Store, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer f.Close()

	var r io.Reader = f
	switch strings.ToLower(filepath.Ext(path)) {
	case ".zst", ".zstd":
		dec, err := zstd.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to create zstd decoder for %s: %w", path, err)
		}
		defer dec.Close()
		r = dec
	case ".gz":
		zr, err := gzip.NewReader(f)
		if err != nil {
			return nil, fmt.Errorf("failed to open gzip stream %s: %w", path, err)
		}
		defer zr.Close()
		r = zr
	}

	s, err := Parse(r, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to parse dataset %s: %w", path, err)
	}
	s.path = path
	return s, nil
}

// Parse reads a delimited table with a header row from r.
func Parse(r io.Reader, opts Options) (*Store, error) {
	cols := opts.Columns
	if err := cols.Validate(); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read failed: %w", err)
	}

	cr := csv.NewReader(bytes.NewReader(data))
	cr.Comma = opts.Delimiter
	if cr.Comma == 0 {
		cr.Comma = detectDelimiter(bytes.NewReader(data))
	}
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, errors.New("dataset is empty: missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	s := &Store{header: header}
	for pos := 0; ; pos++ {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", pos+1, err)
		}
		rec, err := normalizeRow(pos, fields, cols)
		if err != nil {
			return nil, err
		}
		s.rows = append(s.rows, fields)
		s.records = append(s.records, rec)
	}
	return s, nil
}

// Path returns the file the store was loaded from, if any.
func (s *Store) Path() string {
	return s.path
}

// Len returns the number of genes.
func (s *Store) Len() int {
	return len(s.records)
}

// Header returns a copy of the original header row.
func (s *Store) Header() []string {
	return append([]string(nil), s.header...)
}

// Records returns all records in load order. Callers must not modify the slice.
func (s *Store) Records() []GeneRecord {
	return s.records
}

// Get returns the record with the given id.
func (s *Store) Get(id int) (GeneRecord, bool) {
	if id < 1 || id > len(s.records) {
		return GeneRecord{}, false
	}
	return s.records[id-1], true
}

// Lookup returns the records matching ids, in load order. Unknown and duplicate ids are ignored.
func (s *Store) Lookup(ids []int) []GeneRecord {
	valid := make([]int, 0, len(ids))
	seen := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		if id < 1 || id > len(s.records) {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		valid = append(valid, id)
	}
	sort.Ints(valid)

	out := make([]GeneRecord, 0, len(valid))
	for _, id := range valid {
		out = append(out, s.records[id-1])
	}
	return out
}

// Options returns the gene picker entries in load order.
func (s *Store) Options() []GeneOption {
	opts := make([]GeneOption, 0, len(s.records))
	for _, rec := range s.records {
		opts = append(opts, GeneOption{Value: rec.ID, Label: rec.Label()})
	}
	return opts
}
