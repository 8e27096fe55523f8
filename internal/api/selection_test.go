package api

import (
	"net/url"
	"reflect"
	"testing"

	"github.com/bmaharathi/zombiegene/internal/service"
)

func TestParseSelection(t *testing.T) {
	def := service.Selection{GeneIDs: []int{1}, Mode: service.RelativeToTimeZero}

	t.Run("absent", func(t *testing.T) {
		sel, err := parseSelection(url.Values{}, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !reflect.DeepEqual(sel, def) {
			t.Fatalf("expected default selection, got %#v", sel)
		}
	})

	t.Run("commaSeparated", func(t *testing.T) {
		q, _ := url.ParseQuery("genes=2,3&mode=GEA")
		sel, err := parseSelection(q, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{2, 3}; !reflect.DeepEqual(sel.GeneIDs, want) {
			t.Fatalf("expected %v, got %v", want, sel.GeneIDs)
		}
		if sel.Mode != service.Absolute {
			t.Fatalf("expected absolute mode, got %v", sel.Mode)
		}
	})

	t.Run("repeated", func(t *testing.T) {
		q, _ := url.ParseQuery("genes=&genes=4&genes=5&mode=max")
		sel, err := parseSelection(q, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{4, 5}; !reflect.DeepEqual(sel.GeneIDs, want) {
			t.Fatalf("expected %v, got %v", want, sel.GeneIDs)
		}
		if sel.Mode != service.RelativeToMax {
			t.Fatalf("expected max mode, got %v", sel.Mode)
		}
	})

	t.Run("jsonArray", func(t *testing.T) {
		q, _ := url.ParseQuery("genes=[1,2]")
		sel, err := parseSelection(q, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if want := []int{1, 2}; !reflect.DeepEqual(sel.GeneIDs, want) {
			t.Fatalf("expected %v, got %v", want, sel.GeneIDs)
		}
	})

	t.Run("emptyString", func(t *testing.T) {
		q, _ := url.ParseQuery("genes=")
		sel, err := parseSelection(q, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if sel.GeneIDs == nil || len(sel.GeneIDs) != 0 {
			t.Fatalf("expected non-nil empty selection, got %#v", sel.GeneIDs)
		}
		if sel.Mode != def.Mode {
			t.Fatalf("expected default mode, got %v", sel.Mode)
		}
	})

	t.Run("defaultNotAliased", func(t *testing.T) {
		q, _ := url.ParseQuery("mode=GEA")
		sel, err := parseSelection(q, def)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if def.Mode != service.RelativeToTimeZero {
			t.Fatalf("default selection was modified: %#v", def)
		}
		if sel.Mode != service.Absolute {
			t.Fatalf("expected absolute mode, got %v", sel.Mode)
		}
	})

	invalid := []string{
		"genes=abc",
		"genes=0",
		"genes=-3",
		"genes=1,x",
		"genes=[1,",
		"genes=[0]",
		"mode=relative",
	}
	for _, raw := range invalid {
		t.Run("invalid "+raw, func(t *testing.T) {
			q, _ := url.ParseQuery(raw)
			if _, err := parseSelection(q, def); err == nil {
				t.Fatalf("expected error for %q", raw)
			}
		})
	}
}

func TestSelectionQueryRoundTrip(t *testing.T) {
	for _, sel := range []service.Selection{
		{GeneIDs: []int{1, 4}, Mode: service.Absolute},
		{GeneIDs: []int{}, Mode: service.RelativeToMax},
	} {
		got, err := parseSelection(selectionQuery(sel), service.Selection{GeneIDs: []int{9}, Mode: service.RelativeToTimeZero})
		if err != nil {
			t.Fatalf("parseSelection failed: %v", err)
		}
		if !reflect.DeepEqual(got, sel) {
			t.Errorf("round trip mismatch: got %#v, want %#v", got, sel)
		}
	}
}
