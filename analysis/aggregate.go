package analysis

import (
	"math"
	"sort"

	lev "github.com/agnivade/levenshtein"
	"github.com/zeebo/xxh3"

	"contestlog/qso"
)

// UnknownBandLabel stands in for records whose band never resolved.
const UnknownBandLabel = "UNKNOWN"

// BandModeBreakdown is the band-by-display-mode contact matrix.
type BandModeBreakdown struct {
	Bands      []string // row order: preferred band order, extras sorted, unknown last
	Modes      []string // column order: CW, Phone, DIG, extras sorted
	Counts     map[string]map[string]int
	BandTotals map[string]int
	ModeTotals map[string]int
	GrandTotal int
}

// BuildBandModeBreakdown tallies contacts per (band, display mode).
func BuildBandModeBreakdown(records []qso.Record) *BandModeBreakdown {
	b := &BandModeBreakdown{
		Counts:     make(map[string]map[string]int),
		BandTotals: make(map[string]int),
		ModeTotals: make(map[string]int),
	}

	bandSet := make(map[string]struct{})
	modeSet := make(map[string]struct{})
	for _, r := range records {
		band := r.Band
		if band == "" {
			band = UnknownBandLabel
		}
		mode := qso.DisplayMode(r.Mode)
		bandSet[band] = struct{}{}
		modeSet[mode] = struct{}{}
		row := b.Counts[band]
		if row == nil {
			row = make(map[string]int)
			b.Counts[band] = row
		}
		row[mode]++
		b.BandTotals[band]++
		b.ModeTotals[mode]++
		b.GrandTotal++
	}

	for _, name := range qso.PreferredBandOrder() {
		if _, ok := bandSet[name]; ok {
			b.Bands = append(b.Bands, name)
			delete(bandSet, name)
		}
	}
	_, hasUnknown := bandSet[UnknownBandLabel]
	delete(bandSet, UnknownBandLabel)
	extra := make([]string, 0, len(bandSet))
	for name := range bandSet {
		extra = append(extra, name)
	}
	sort.Strings(extra)
	b.Bands = append(b.Bands, extra...)
	if hasUnknown {
		b.Bands = append(b.Bands, UnknownBandLabel)
	}

	for _, name := range qso.DisplayModeOrder() {
		if _, ok := modeSet[name]; ok {
			b.Modes = append(b.Modes, name)
			delete(modeSet, name)
		}
	}
	extraModes := make([]string, 0, len(modeSet))
	for name := range modeSet {
		extraModes = append(extraModes, name)
	}
	sort.Strings(extraModes)
	b.Modes = append(b.Modes, extraModes...)

	return b
}

// DuplicateGroup lists every contact sharing one (call, band, mode) tuple
// more than once. The report is exhaustive, not sampled.
type DuplicateGroup struct {
	Call  string
	Band  string
	Mode  string
	Times []int // HHMMSS of each contact that carried a time, sorted
	Count int   // total contacts in the group, timed or not
	Key   uint64
}

// DuplicateKey hashes a (call, band, mode) tuple into a stable 64-bit key
// using a fixed-layout buffer: call padded to 16 bytes, band to 8, mode to 8.
// Fixed widths keep distinct tuples from colliding on concatenation.
func DuplicateKey(call, band, mode string) uint64 {
	var buf [32]byte
	copyPadded(buf[0:16], call)
	copyPadded(buf[16:24], band)
	copyPadded(buf[24:32], mode)
	return xxh3.Hash(buf[:])
}

func copyPadded(dst []byte, s string) {
	n := len(s)
	if n > len(dst) {
		n = len(dst)
	}
	copy(dst, s[:n])
}

// FindDuplicates groups contacts by (call, band, mode) and returns every
// group with more than one record, sorted by call, band, mode.
func FindDuplicates(records []qso.Record) []DuplicateGroup {
	type tuple struct{ call, band, mode string }
	groups := make(map[tuple]*DuplicateGroup)
	for _, r := range records {
		k := tuple{call: r.Call, band: r.Band, mode: r.Mode}
		g := groups[k]
		if g == nil {
			g = &DuplicateGroup{
				Call: r.Call,
				Band: r.Band,
				Mode: r.Mode,
				Key:  DuplicateKey(r.Call, r.Band, r.Mode),
			}
			groups[k] = g
		}
		g.Count++
		if r.HasTime {
			g.Times = append(g.Times, r.TimeOn)
		}
	}

	out := make([]DuplicateGroup, 0)
	for _, g := range groups {
		if g.Count > 1 {
			sort.Ints(g.Times)
			out = append(out, *g)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Call != out[j].Call {
			return out[i].Call < out[j].Call
		}
		if out[i].Band != out[j].Band {
			return out[i].Band < out[j].Band
		}
		return out[i].Mode < out[j].Mode
	})
	return out
}

// BandMultiMode counts, for one band, how many calls were worked there on
// two or more distinct modes.
type BandMultiMode struct {
	Band       string
	MultiMode  int
	TotalCalls int
}

// MultiModeStats reports calls worked on multiple modes. A call counts once
// toward MultiModeCalls if any band shows two or more distinct modes for it,
// regardless of how many bands do.
type MultiModeStats struct {
	UniqueCalls    int
	MultiModeCalls int
	PerBand        []BandMultiMode // ascending band name
}

// BuildMultiModeStats derives the multi-mode-per-band figures.
func BuildMultiModeStats(records []qso.Record) MultiModeStats {
	allCalls := make(map[string]struct{})
	callBandModes := make(map[string]map[string]map[string]struct{})
	for _, r := range records {
		if r.Call == "" {
			continue
		}
		allCalls[r.Call] = struct{}{}
		if r.Band == "" || r.Mode == "" {
			continue
		}
		bands := callBandModes[r.Call]
		if bands == nil {
			bands = make(map[string]map[string]struct{})
			callBandModes[r.Call] = bands
		}
		modes := bands[r.Band]
		if modes == nil {
			modes = make(map[string]struct{})
			bands[r.Band] = modes
		}
		modes[r.Mode] = struct{}{}
	}

	perBand := make(map[string]*BandMultiMode)
	multiCalls := make(map[string]struct{})
	for call, bands := range callBandModes {
		for band, modes := range bands {
			bm := perBand[band]
			if bm == nil {
				bm = &BandMultiMode{Band: band}
				perBand[band] = bm
			}
			bm.TotalCalls++
			if len(modes) > 1 {
				bm.MultiMode++
				multiCalls[call] = struct{}{}
			}
		}
	}

	stats := MultiModeStats{
		UniqueCalls:    len(allCalls),
		MultiModeCalls: len(multiCalls),
	}
	bandNames := make([]string, 0, len(perBand))
	for band := range perBand {
		bandNames = append(bandNames, band)
	}
	sort.Strings(bandNames)
	for _, band := range bandNames {
		stats.PerBand = append(stats.PerBand, *perBand[band])
	}
	return stats
}

// Tally is one row of a frequency table with a whole-percent share.
type Tally struct {
	Key     string
	Count   int
	Percent int
}

// TallyBy counts records per key, sorted by count descending with ties
// broken by ascending key name.
func TallyBy(records []qso.Record, keyFn func(qso.Record) string) []Tally {
	counts := make(map[string]int)
	for _, r := range records {
		counts[keyFn(r)]++
	}
	return sortedTallies(counts, len(records))
}

func sortedTallies(counts map[string]int, total int) []Tally {
	out := make([]Tally, 0, len(counts))
	for key, count := range counts {
		out = append(out, Tally{Key: key, Count: count, Percent: wholePercent(count, total)})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Key < out[j].Key
	})
	return out
}

func wholePercent(part, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}

// SectionSummary is the section table over the fixed ARRL list, including
// zero-count rows, plus any logged section values outside the official list.
type SectionSummary struct {
	Tallies     []Tally
	WorkedCount int
	Unmatched   []string     // unrecognized section values, ascending
	UnmatchedBy []qso.Record // the offending records, wire order
}

// BuildSectionSummary tallies contacts per ARRL section. Every official
// section appears even when unworked; values outside the list are reported
// separately rather than silently folded in.
func BuildSectionSummary(records []qso.Record) SectionSummary {
	counts := make(map[string]int)
	unmatchedSet := make(map[string]struct{})
	var unmatchedBy []qso.Record
	for _, r := range records {
		counts[r.Section]++
		if !qso.IsKnownSection(r.Section) {
			unmatchedSet[r.Section] = struct{}{}
			unmatchedBy = append(unmatchedBy, r)
		}
	}

	total := len(records)
	tallies := make([]Tally, 0, len(qso.ARRLSections))
	worked := 0
	for _, section := range qso.ARRLSections {
		count := counts[section]
		if count > 0 {
			worked++
		}
		tallies = append(tallies, Tally{Key: section, Count: count, Percent: wholePercent(count, total)})
	}
	sort.Slice(tallies, func(i, j int) bool {
		if tallies[i].Count != tallies[j].Count {
			return tallies[i].Count > tallies[j].Count
		}
		return tallies[i].Key < tallies[j].Key
	})

	unmatched := make([]string, 0, len(unmatchedSet))
	for s := range unmatchedSet {
		unmatched = append(unmatched, s)
	}
	sort.Strings(unmatched)

	return SectionSummary{
		Tallies:     tallies,
		WorkedCount: worked,
		Unmatched:   unmatched,
		UnmatchedBy: unmatchedBy,
	}
}

// BustedCallSuspect flags a callsign that appears exactly once and sits at
// edit distance 1 from a call worked repeatedly: the classic shape of a
// mis-copied call.
type BustedCallSuspect struct {
	Call     string // the one-off, suspect call
	Likely   string // the frequent neighbor it probably should have been
	Seen     int    // occurrences of the likely call
	Distance int
}

// FindBustedSuspects compares single-occurrence calls against calls worked
// at least twice. Heuristic only; the report lists suspects, it never
// rewrites the log.
func FindBustedSuspects(records []qso.Record) []BustedCallSuspect {
	counts := make(map[string]int)
	for _, r := range records {
		if r.Call != "" {
			counts[r.Call]++
		}
	}

	frequent := make([]string, 0)
	for call, n := range counts {
		if n >= 2 {
			frequent = append(frequent, call)
		}
	}
	sort.Strings(frequent)

	var suspects []BustedCallSuspect
	for call, n := range counts {
		if n != 1 {
			continue
		}
		best := ""
		bestSeen := 0
		for _, candidate := range frequent {
			if lev.ComputeDistance(call, candidate) != 1 {
				continue
			}
			if counts[candidate] > bestSeen {
				best = candidate
				bestSeen = counts[candidate]
			}
		}
		if best != "" {
			suspects = append(suspects, BustedCallSuspect{Call: call, Likely: best, Seen: bestSeen, Distance: 1})
		}
	}
	sort.Slice(suspects, func(i, j int) bool { return suspects[i].Call < suspects[j].Call })
	return suspects
}
