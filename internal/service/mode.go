// Package service provides the expression transforms behind the chart and table views.
package service

import (
	"errors"
	"fmt"
	"strings"
)

// Mode selects how a gene's series is normalized.
type Mode int

const (
	// Absolute plots the raw expression values.
	Absolute Mode = iota
	// RelativeToMax plots each value as a percentage of the gene's own peak.
	RelativeToMax
	// RelativeToTimeZero plots each value as a percentage of the gene's value at hour 0.
	RelativeToTimeZero
)

// Modes lists every mode in picker order.
var Modes = []Mode{Absolute, RelativeToMax, RelativeToTimeZero}

// ErrUnknownMode is returned for unrecognized mode names.
var ErrUnknownMode = errors.New("unknown normalization mode")

// ParseMode accepts the picker codes (GEA, GEE, GET) and the names
// absolute, max and t0, case-insensitively.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "gea", "absolute":
		return Absolute, nil
	case "gee", "max", "relative_to_max":
		return RelativeToMax, nil
	case "get", "t0", "relative_to_time_zero":
		return RelativeToTimeZero, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownMode, s)
}

// Code returns the short picker code.
func (m Mode) Code() string {
	switch m {
	case Absolute:
		return "GEA"
	case RelativeToMax:
		return "GEE"
	case RelativeToTimeZero:
		return "GET"
	}
	return ""
}

// Label returns the human-readable picker label.
func (m Mode) Label() string {
	switch m {
	case Absolute:
		return "Gene Expression (Absolute)"
	case RelativeToMax:
		return "Gene Expression (Relative to max expression)"
	case RelativeToTimeZero:
		return "Gene Expression (Relative to expression at time zero)"
	}
	return ""
}

func (m Mode) String() string {
	switch m {
	case Absolute:
		return "absolute"
	case RelativeToMax:
		return "max"
	case RelativeToTimeZero:
		return "t0"
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// Relative reports whether values are percentages.
func (m Mode) Relative() bool {
	return m == RelativeToMax || m == RelativeToTimeZero
}

func (m Mode) valid() bool {
	return m >= Absolute && m <= RelativeToTimeZero
}

// MarshalText encodes the mode as its picker code.
func (m Mode) MarshalText() ([]byte, error) {
	if !m.valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, int(m))
	}
	return []byte(m.Code()), nil
}

// UnmarshalText accepts anything ParseMode does.
func (m *Mode) UnmarshalText(b []byte) error {
	parsed, err := ParseMode(string(b))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
