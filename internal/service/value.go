package service

import (
	"encoding/json"
	"math"
	"strconv"
)

// Value is an expression value that encodes NaN and ±Inf as JSON null.
type Value float64

// Defined reports whether v is a finite number.
func (v Value) Defined() bool {
	f := float64(v)
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

// MarshalJSON implements json.Marshaler.
func (v Value) MarshalJSON() ([]byte, error) {
	if !v.Defined() {
		return []byte("null"), nil
	}
	return json.Marshal(float64(v))
}

// String formats v for display; undefined values print as "n/a".
func (v Value) String() string {
	if !v.Defined() {
		return "n/a"
	}
	return strconv.FormatFloat(float64(v), 'f', -1, 64)
}
