package qso

import "strings"

// BandInfo describes an amateur radio band by canonical designator and the
// nominal center frequency in MHz used when a QSO carries no measured value.
type BandInfo struct {
	Name      string  // canonical designator (e.g., "20M", "70CM")
	CenterMHz float64 // band-center estimate in MHz
}

// DefaultCenterMHz is the fallback estimate when the band itself is unknown.
// It is the 20M center, matching the most common contest band.
const DefaultCenterMHz = 14.200

var bandTable = []BandInfo{
	{Name: "160M", CenterMHz: 1.900},
	{Name: "80M", CenterMHz: 3.750},
	{Name: "60M", CenterMHz: 5.330},
	{Name: "40M", CenterMHz: 7.100},
	{Name: "30M", CenterMHz: 10.125},
	{Name: "20M", CenterMHz: 14.200},
	{Name: "17M", CenterMHz: 18.100},
	{Name: "15M", CenterMHz: 21.200},
	{Name: "12M", CenterMHz: 24.900},
	{Name: "10M", CenterMHz: 28.400},
	{Name: "6M", CenterMHz: 50.100},
	{Name: "4M", CenterMHz: 70.200},
	{Name: "2M", CenterMHz: 144.200},
	{Name: "1.25M", CenterMHz: 222.100},
	{Name: "70CM", CenterMHz: 432.100},
}

var bandLookup = func() map[string]BandInfo {
	m := make(map[string]BandInfo, len(bandTable))
	for _, entry := range bandTable {
		m[entry.Name] = entry
	}
	return m
}()

// NormalizeBand returns the canonical uppercase band designator for a label.
// Meter/centimeter words collapse to their unit letters and a bare number
// gets an "M" suffix, so "20", "20 meters", and "20m" all map to "20M".
func NormalizeBand(label string) string {
	cleaned := strings.ToUpper(strings.TrimSpace(label))
	if cleaned == "" {
		return ""
	}

	replacementPairs := []struct{ old, new string }{
		{"METERS", "M"},
		{"METER", "M"},
		{"METRES", "M"},
		{"METRE", "M"},
		{"CENTIMETERS", "CM"},
		{"CENTIMETER", "CM"},
		{"CENTIMETRES", "CM"},
		{"CENTIMETRE", "CM"},
	}
	for _, pair := range replacementPairs {
		cleaned = strings.ReplaceAll(cleaned, pair.old, pair.new)
	}

	cleaned = strings.ReplaceAll(cleaned, " ", "")
	if cleaned == "" {
		return ""
	}

	last := cleaned[len(cleaned)-1]
	if last >= '0' && last <= '9' {
		cleaned += "M"
	}

	return cleaned
}

// BandCenter returns the center frequency estimate for a band designator.
// The second result reports whether the band is in the reference table.
func BandCenter(band string) (float64, bool) {
	info, ok := bandLookup[NormalizeBand(band)]
	if !ok {
		return 0, false
	}
	return info.CenterMHz, true
}

// EstimateFreq resolves a usable frequency for classification: the measured
// value when present, else the band-center estimate, else the fixed default
// for a non-empty unknown band. A record with neither frequency nor band
// cannot be resolved.
func EstimateFreq(r Record) (float64, bool) {
	if r.HasFreq {
		return r.Freq, true
	}
	if r.Band == "" {
		return 0, false
	}
	if center, ok := BandCenter(r.Band); ok {
		return center, true
	}
	return DefaultCenterMHz, true
}

// IsValidBand reports whether the label corresponds to a known band.
func IsValidBand(label string) bool {
	_, ok := bandLookup[NormalizeBand(label)]
	return ok
}

// PreferredBandOrder returns the canonical report ordering, lowest band first.
func PreferredBandOrder() []string {
	names := make([]string, len(bandTable))
	for i, entry := range bandTable {
		names[i] = entry.Name
	}
	return names
}
