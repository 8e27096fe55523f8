package dataset

import (
	"bytes"
	"encoding/csv"
	"errors"
	"math"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/klauspost/compress/gzip"
	"github.com/klauspost/compress/zstd"
)

const testCSV = `Gene,Ensembl,Description,0h,1h,2h,4h,8h,12h,24h
GFAP,ENSG00000131095,glial fibrillary acidic protein [Source:HGNC Symbol;Acc:HGNC:4235],1,2,4,8,8,8,8
FOS,ENSG00000170345,"Fos proto-oncogene, AP-1 transcription factor subunit [Source:HGNC Symbol;Acc:HGNC:3796]",50.0,73.4,100.0,20,10,5,1
ZERO,ENSG00000000000,all zero [Source:test],0,0,0,0,0,0,0
`

func parseString(t *testing.T, content string) *Store {
	t.Helper()

	s, err := Parse(strings.NewReader(content), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to parse dataset: %v", err)
	}
	return s
}

func writeTemp(t *testing.T, name string, data []byte) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}

func TestParse_NormalizesRows(t *testing.T) {
	s := parseString(t, testCSV)

	if s.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", s.Len())
	}

	gfap := s.Records()[0]
	if gfap.ID != 1 {
		t.Errorf("expected id 1, got %d", gfap.ID)
	}
	if gfap.Name != "GFAP" {
		t.Errorf("unexpected name %q", gfap.Name)
	}
	if gfap.EnsemblID != "ENSG00000131095" {
		t.Errorf("unexpected ensembl id %q", gfap.EnsemblID)
	}
	if gfap.Description != "glial fibrillary acidic protein" {
		t.Errorf("annotation suffix not stripped: %q", gfap.Description)
	}
	want := Series{1, 2, 4, 8, 8, 8, 8}
	if gfap.Expression != want {
		t.Errorf("expected %v, got %v", want, gfap.Expression)
	}

	fos := s.Records()[1]
	if fos.ID != 2 {
		t.Errorf("expected id 2, got %d", fos.ID)
	}
	if fos.Description != "Fos proto-oncogene, AP-1 transcription factor subunit" {
		t.Errorf("unexpected quoted description %q", fos.Description)
	}
	if fos.Expression[1] != 73.4 {
		t.Errorf("expected 73.4, got %v", fos.Expression[1])
	}

	for i, rec := range s.Records() {
		if len(rec.Expression) != len(TimeAxis) {
			t.Errorf("record %d: expected %d values, got %d", i, len(TimeAxis), len(rec.Expression))
		}
	}
}

func TestParse_ColumnCountMismatch(t *testing.T) {
	content := "Gene,Ensembl,Description,0h,1h\nGFAP,ENSG1,desc,1,2\n"

	_, err := Parse(strings.NewReader(content), DefaultOptions())
	if !errors.Is(err, ErrColumnCount) {
		t.Fatalf("expected ErrColumnCount, got %v", err)
	}
	if !strings.Contains(err.Error(), "row 1") {
		t.Errorf("expected error to name the row, got %q", err.Error())
	}
}

func TestParse_NonNumericBecomesNaN(t *testing.T) {
	content := "Gene,Ensembl,Description,0h,1h,2h,4h,8h,12h,24h\nBAD,ENSG1,desc,1,x,3,4,5,6,7\n"
	s := parseString(t, content)

	v := s.Records()[0].Expression[1]
	if !math.IsNaN(v) {
		t.Fatalf("expected NaN for malformed cell, got %v", v)
	}
	if s.Records()[0].Expression[2] != 3 {
		t.Fatalf("expected neighbouring values to parse, got %v", s.Records()[0].Expression)
	}
}

func TestParse_Empty(t *testing.T) {
	if _, err := Parse(strings.NewReader(""), DefaultOptions()); err == nil {
		t.Fatal("expected error for empty input")
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	s := parseString(t, "Gene,Ensembl,Description,0h,1h,2h,4h,8h,12h,24h\n")
	if s.Len() != 0 {
		t.Fatalf("expected no records, got %d", s.Len())
	}
}

func TestParse_DetectsPipeDelimiter(t *testing.T) {
	content := strings.Join([]string{
		"Gene|Ensembl|Description|0h|1h|2h|4h|8h|12h|24h",
		"GFAP|ENSG00000131095|glial fibrillary acidic protein|1|2|4|8|8|8|8",
		"FOS|ENSG00000170345|Fos proto-oncogene|5|4|3|2|1|1|1",
	}, "\n") + "\n"
	s := parseString(t, content)

	if s.Len() != 2 {
		t.Fatalf("expected 2 records, got %d", s.Len())
	}
	if s.Records()[1].Expression[0] != 5 {
		t.Errorf("unexpected values %v", s.Records()[1].Expression)
	}
}

func TestParse_ExplicitDelimiter(t *testing.T) {
	content := "Gene;Ensembl;Description;0h;1h;2h;4h;8h;12h;24h\nGFAP;ENSG1;desc;1;2;4;8;8;8;8\n"
	s, err := Parse(strings.NewReader(content), Options{Columns: DefaultColumns(), Delimiter: ';'})
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	if s.Records()[0].Expression[6] != 8 {
		t.Errorf("unexpected values %v", s.Records()[0].Expression)
	}
}

func TestParse_CustomColumns(t *testing.T) {
	content := "id,Gene,Ensembl,Description,a,b,c,d,e,f,g\n" +
		"17,GFAP,ENSG1,glial [x],1,2,4,8,8,8,8\n"
	opts := Options{Columns: Columns{Name: 1, Ensembl: 2, Description: 3, FirstValue: 4}}

	s, err := Parse(strings.NewReader(content), opts)
	if err != nil {
		t.Fatalf("parse failed: %v", err)
	}
	rec := s.Records()[0]
	if rec.ID != 1 {
		t.Errorf("id must come from row position, got %d", rec.ID)
	}
	if rec.Name != "GFAP" || rec.Description != "glial" {
		t.Errorf("unexpected record %+v", rec)
	}
}

func TestColumnsValidate(t *testing.T) {
	tests := []struct {
		name    string
		cols    Columns
		wantErr bool
	}{
		{"default", DefaultColumns(), false},
		{"negative", Columns{Name: -1, Ensembl: 1, Description: 2, FirstValue: 3}, true},
		{"overlap", Columns{Name: 0, Ensembl: 1, Description: 4, FirstValue: 3}, true},
		{"duplicate", Columns{Name: 0, Ensembl: 0, Description: 2, FirstValue: 3}, true},
		{"textAfterValues", Columns{Name: 7, Ensembl: 8, Description: 9, FirstValue: 0}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cols.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}

	if w := DefaultColumns().Width(); w != 10 {
		t.Errorf("expected width 10, got %d", w)
	}
	if w := (Columns{Name: 7, Ensembl: 8, Description: 9, FirstValue: 0}).Width(); w != 10 {
		t.Errorf("expected width 10 for trailing text columns, got %d", w)
	}
}

func TestLookup(t *testing.T) {
	s := parseString(t, testCSV)

	t.Run("loadOrder", func(t *testing.T) {
		got := ids(s.Lookup([]int{3, 1}))
		if !reflect.DeepEqual(got, []int{1, 3}) {
			t.Fatalf("expected load order [1 3], got %v", got)
		}
	})

	t.Run("duplicatesAndUnknown", func(t *testing.T) {
		got := ids(s.Lookup([]int{2, 2, 0, -4, 99}))
		if !reflect.DeepEqual(got, []int{2}) {
			t.Fatalf("expected [2], got %v", got)
		}
	})

	t.Run("empty", func(t *testing.T) {
		if got := s.Lookup(nil); len(got) != 0 {
			t.Fatalf("expected no records, got %v", ids(got))
		}
	})

	t.Run("get", func(t *testing.T) {
		rec, ok := s.Get(2)
		if !ok || rec.Name != "FOS" {
			t.Fatalf("expected FOS, got %+v ok=%v", rec, ok)
		}
		if _, ok := s.Get(4); ok {
			t.Fatal("expected id 4 to be missing")
		}
	})
}

func TestOptions(t *testing.T) {
	s := parseString(t, testCSV)

	opts := s.Options()
	if len(opts) != 3 {
		t.Fatalf("expected 3 options, got %d", len(opts))
	}
	if opts[0].Value != 1 || opts[0].Label != "GFAP(glial fibrillary acidic protein)" {
		t.Errorf("unexpected first option %+v", opts[0])
	}
}

func TestWriteCSV_RoundTrip(t *testing.T) {
	s := parseString(t, testCSV)

	var buf bytes.Buffer
	if err := s.WriteCSV(&buf); err != nil {
		t.Fatalf("WriteCSV failed: %v", err)
	}

	got, err := csv.NewReader(bytes.NewReader(buf.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("failed to re-parse export: %v", err)
	}
	want, err := csv.NewReader(strings.NewReader(testCSV)).ReadAll()
	if err != nil {
		t.Fatalf("failed to parse fixture: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("round trip mismatch:\n got %v\nwant %v", got, want)
	}

	// Idempotent.
	var again bytes.Buffer
	if err := s.WriteCSV(&again); err != nil {
		t.Fatalf("second WriteCSV failed: %v", err)
	}
	if !bytes.Equal(buf.Bytes(), again.Bytes()) {
		t.Fatal("export is not idempotent")
	}
}

func TestLoad(t *testing.T) {
	t.Run("plain", func(t *testing.T) {
		path := writeTemp(t, "data.csv", []byte(testCSV))
		s, err := Load(path, DefaultOptions())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Len() != 3 || s.Path() != path {
			t.Fatalf("unexpected store: len=%d path=%q", s.Len(), s.Path())
		}
	})

	t.Run("zstd", func(t *testing.T) {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			t.Fatalf("failed to create encoder: %v", err)
		}
		compressed := enc.EncodeAll([]byte(testCSV), nil)
		enc.Close()

		s, err := Load(writeTemp(t, "data.csv.zst", compressed), DefaultOptions())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Len() != 3 {
			t.Fatalf("expected 3 records, got %d", s.Len())
		}
	})

	t.Run("gzip", func(t *testing.T) {
		var buf bytes.Buffer
		zw := gzip.NewWriter(&buf)
		if _, err := zw.Write([]byte(testCSV)); err != nil {
			t.Fatalf("gzip write failed: %v", err)
		}
		if err := zw.Close(); err != nil {
			t.Fatalf("gzip close failed: %v", err)
		}

		s, err := Load(writeTemp(t, "data.csv.gz", buf.Bytes()), DefaultOptions())
		if err != nil {
			t.Fatalf("Load failed: %v", err)
		}
		if s.Records()[0].Name != "GFAP" {
			t.Fatalf("unexpected first record %+v", s.Records()[0])
		}
	})

	t.Run("missing", func(t *testing.T) {
		missing := filepath.Join(t.TempDir(), "nope.csv")
		_, err := Load(missing, DefaultOptions())
		if err == nil {
			t.Fatal("expected error for missing file")
		}
		if !strings.Contains(err.Error(), missing) {
			t.Errorf("expected error to name %s, got %q", missing, err.Error())
		}
	})
}

func ids(recs []GeneRecord) []int {
	out := make([]int, 0, len(recs))
	for _, r := range recs {
		out = append(out, r.ID)
	}
	return out
}
