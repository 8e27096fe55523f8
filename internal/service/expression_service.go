package service

import (
	"github.com/bmaharathi/zombiegene/internal/data/dataset"
)

// ExpressionServiceConfig contains expression service configuration.
type ExpressionServiceConfig struct {
	Store        *dataset.Store
	DefaultGenes []int
	DefaultMode  Mode
}

// ExpressionService answers selection queries against a loaded dataset.
// It holds no per-request state and is safe for concurrent use.
type ExpressionService struct {
	store        *dataset.Store
	defaultGenes []int
	defaultMode  Mode
}

// NewExpressionService creates a new expression service.
func NewExpressionService(cfg ExpressionServiceConfig) *ExpressionService {
	mode := cfg.DefaultMode
	if !mode.valid() {
		mode = RelativeToTimeZero
	}
	return &ExpressionService{
		store:        cfg.Store,
		defaultGenes: append([]int(nil), cfg.DefaultGenes...),
		defaultMode:  mode,
	}
}

// Store returns the underlying dataset.
func (s *ExpressionService) Store() *dataset.Store {
	return s.store
}

// DefaultSelection returns the selection shown before the user picks anything.
func (s *ExpressionService) DefaultSelection() Selection {
	return Selection{
		GeneIDs: append([]int(nil), s.defaultGenes...),
		Mode:    s.defaultMode,
	}
}

// Records resolves the selected ids in load order.
func (s *ExpressionService) Records(sel Selection) []dataset.GeneRecord {
	return s.store.Lookup(sel.GeneIDs)
}

// Series computes the chart series for sel.
func (s *ExpressionService) Series(sel Selection) (SeriesResult, error) {
	return Compute(s.Records(sel), sel.Mode)
}

// Table projects the table for sel.
func (s *ExpressionService) Table(sel Selection) (Table, error) {
	return Project(s.Records(sel), sel.Mode)
}

// Options returns the gene picker entries.
func (s *ExpressionService) Options() []dataset.GeneOption {
	return s.store.Options()
}
