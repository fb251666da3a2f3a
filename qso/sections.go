package qso

// ARRLSections is the fixed list of section abbreviations used for the
// section table: the 86 ARRL/RAC sections plus "DX" for anything outside
// them. Reference data, not derived.
var ARRLSections = []string{
	// Call area 0: central and northern plains
	"CO", "IA", "KS", "MN", "MO", "ND", "NE", "SD",
	// Call area 1: New England
	"CT", "EMA", "ME", "NH", "RI", "VT", "WMA",
	// Call area 2: New York and northern New Jersey
	"ENY", "NLI", "NNJ", "NNY", "SNJ", "WNY",
	// Call area 3: Delaware, Pennsylvania, Maryland-DC
	"DE", "EPA", "MDC", "WPA",
	// Call area 4: southeast, Puerto Rico, Virgin Islands
	"AL", "GA", "KY", "NC", "NFL", "PR", "SC", "SFL", "TN", "VA", "VI", "WCF",
	// Call area 5: south central
	"AR", "LA", "MS", "NM", "NTX", "OK", "STX", "WTX",
	// Call area 6: California and Pacific
	"EB", "LAX", "ORG", "PAC", "SB", "SCV", "SDG", "SF", "SJV", "SV",
	// Call area 7: northwest, Alaska, Hawaii, mountain states
	"AK", "AZ", "EWA", "HI", "ID", "MT", "NV", "OR", "UT", "WWA", "WY",
	// Call area 8: Michigan, Ohio, West Virginia
	"MI", "OH", "WV",
	// Call area 9: Illinois, Indiana, Wisconsin
	"IL", "IN", "WI",
	// Canada: RAC sections and territories
	"AB", "BC", "GH", "MB", "NB", "NL", "NS", "ONE", "ONN", "ONS", "PE", "QC", "SK", "TER",
	// Any DX outside an ARRL/RAC section
	"DX",
}

var sectionLookup = func() map[string]struct{} {
	m := make(map[string]struct{}, len(ARRLSections))
	for _, s := range ARRLSections {
		m[s] = struct{}{}
	}
	return m
}()

// IsKnownSection reports whether the abbreviation is in the official list.
func IsKnownSection(section string) bool {
	_, ok := sectionLookup[section]
	return ok
}
