// Package qso defines the canonical contest QSO record and the fixed
// reference data (band centers, mode display classes) used across the
// analysis pipeline. Normalization happens once, at the boundary; downstream
// code never branches on empty identity fields.
package qso

import "strings"

// Sentinel identities substituted for missing fields. Substitution is silent
// but observable: the sentinels show up in session keys, tallies, and reports.
const (
	UnknownOperator = "UNKNOWN"
	DefaultStation  = "HAL 9000"
	UnknownCountry  = "ELBONIA"
	UnknownSection  = "UNKNOWN"
)

// Record is a single normalized QSO. Time fields are optional: a record
// without TimeOn still contributes to band/mode/section/country/operator
// tallies but is excluded from every time-based computation.
type Record struct {
	Call     string  // worked station callsign, uppercased
	Band     string  // canonical band designator (e.g., "20M"), may be empty
	Mode     string  // raw mode as logged, uppercased
	Freq     float64 // frequency in MHz, valid only when HasFreq
	HasFreq  bool
	TimeOn   int // HHMMSS, valid only when HasTime
	HasTime  bool
	Operator string // logging operator identity
	Station  string // logging computer identity
	Section  string // ARRL section abbreviation
	Country  string
	Date     string // 8-digit YYYYMMDD, may be empty
}

// Normalize applies the sentinel defaults and canonical casing in one place.
// It returns the record by value so callers keep an immutable copy.
func Normalize(r Record) Record {
	r.Call = strings.ToUpper(strings.TrimSpace(r.Call))
	r.Mode = strings.ToUpper(strings.TrimSpace(r.Mode))
	r.Band = NormalizeBand(r.Band)

	r.Operator = strings.ToUpper(strings.TrimSpace(r.Operator))
	if r.Operator == "" {
		r.Operator = UnknownOperator
	}
	r.Station = strings.TrimSpace(r.Station)
	if r.Station == "" {
		r.Station = DefaultStation
	}
	r.Section = strings.ToUpper(strings.TrimSpace(r.Section))
	if r.Section == "" {
		r.Section = UnknownSection
	}
	r.Country = strings.ToUpper(strings.TrimSpace(r.Country))
	if r.Country == "" {
		r.Country = UnknownCountry
	}
	return r
}

// NormalizeAll normalizes a whole slice, returning a fresh slice.
func NormalizeAll(records []Record) []Record {
	out := make([]Record, len(records))
	for i, r := range records {
		out[i] = Normalize(r)
	}
	return out
}
