package analysis

import (
	"testing"

	"contestlog/qso"
)

func aggQSO(call, band, mode string) qso.Record {
	return qso.Record{Call: call, Band: band, Mode: mode, Operator: "K9CT", Station: "STA-A",
		Section: "IL", Country: "UNITED STATES"}
}

func TestBandModeBreakdown(t *testing.T) {
	records := []qso.Record{
		aggQSO("W1AW", "20M", "CW"),
		aggQSO("W1AW", "20M", "SSB"),
		aggQSO("K1TTT", "40M", "FT8"),
		aggQSO("K1TTT", "40M", "CW"),
		aggQSO("N0AX", "", "CW"),
	}
	b := BuildBandModeBreakdown(records)
	if b.GrandTotal != 5 {
		t.Fatalf("expected grand total 5, got %d", b.GrandTotal)
	}
	// Preferred order puts 40M before 20M; unknown band goes last.
	want := []string{"40M", "20M", UnknownBandLabel}
	if len(b.Bands) != len(want) {
		t.Fatalf("unexpected bands %v", b.Bands)
	}
	for i, name := range want {
		if b.Bands[i] != name {
			t.Fatalf("band order %v, want %v", b.Bands, want)
		}
	}
	if b.Counts["20M"][qso.DisplayCW] != 1 || b.Counts["20M"][qso.DisplayPhone] != 1 {
		t.Fatalf("unexpected 20M row %v", b.Counts["20M"])
	}
	if b.Counts["40M"][qso.DisplayDig] != 1 {
		t.Fatalf("FT8 should collapse to DIG: %v", b.Counts["40M"])
	}
	if b.ModeTotals[qso.DisplayCW] != 3 {
		t.Fatalf("expected 3 CW total, got %d", b.ModeTotals[qso.DisplayCW])
	}
}

func TestFindDuplicates(t *testing.T) {
	r1 := aggQSO("W1AW", "20M", "CW")
	r1.TimeOn, r1.HasTime = 120000, true
	r2 := aggQSO("W1AW", "20M", "CW")
	r2.TimeOn, r2.HasTime = 143000, true
	records := []qso.Record{
		r1, r2,
		aggQSO("W1AW", "40M", "CW"),  // different band: not a dupe
		aggQSO("W1AW", "20M", "SSB"), // different mode: not a dupe
	}
	dupes := FindDuplicates(records)
	if len(dupes) != 1 {
		t.Fatalf("expected exactly one duplicate group, got %+v", dupes)
	}
	d := dupes[0]
	if d.Call != "W1AW" || d.Band != "20M" || d.Mode != "CW" || d.Count != 2 {
		t.Fatalf("unexpected duplicate %+v", d)
	}
	if len(d.Times) != 2 || d.Times[0] != 120000 || d.Times[1] != 143000 {
		t.Fatalf("duplicate times should be listed sorted: %+v", d.Times)
	}
	if d.Key != DuplicateKey("W1AW", "20M", "CW") {
		t.Fatalf("key mismatch")
	}
}

func TestDuplicateKeyLayoutAvoidsConcatCollisions(t *testing.T) {
	if DuplicateKey("W1A", "W20M", "CW") == DuplicateKey("W1AW", "20M", "CW") {
		t.Fatalf("fixed-layout key should not collide on shifted boundaries")
	}
}

func TestMultiModeCountsCallOnce(t *testing.T) {
	records := []qso.Record{
		aggQSO("W1AW", "20M", "CW"),
		aggQSO("W1AW", "20M", "SSB"), // multi-mode on 20M
		aggQSO("W1AW", "40M", "CW"),
		aggQSO("W1AW", "40M", "SSB"), // multi-mode on 40M too
		aggQSO("K1TTT", "20M", "CW"),
	}
	stats := BuildMultiModeStats(records)
	if stats.UniqueCalls != 2 {
		t.Fatalf("expected 2 unique calls, got %d", stats.UniqueCalls)
	}
	// W1AW is multi-mode on two bands but counts once.
	if stats.MultiModeCalls != 1 {
		t.Fatalf("expected 1 multi-mode call, got %d", stats.MultiModeCalls)
	}
	if len(stats.PerBand) != 2 {
		t.Fatalf("expected 2 band rows, got %+v", stats.PerBand)
	}
	for _, row := range stats.PerBand {
		if row.MultiMode != 1 {
			t.Fatalf("each band shows W1AW as multi-mode: %+v", row)
		}
	}
}

func TestTallyOrdering(t *testing.T) {
	records := []qso.Record{
		aggQSO("A", "20M", "CW"), aggQSO("B", "20M", "CW"), aggQSO("C", "20M", "CW"),
	}
	records[0].Country = "SLOVENIA"
	records[1].Country = "CANADA"
	records[2].Country = "CANADA"
	tallies := TallyBy(records, func(r qso.Record) string { return r.Country })
	if tallies[0].Key != "CANADA" || tallies[0].Count != 2 {
		t.Fatalf("count descending first: %+v", tallies)
	}
	if tallies[1].Key != "SLOVENIA" {
		t.Fatalf("unexpected order %+v", tallies)
	}
	if tallies[0].Percent != 67 {
		t.Fatalf("expected rounded 67%%, got %d", tallies[0].Percent)
	}
}

func TestSectionSummary(t *testing.T) {
	records := []qso.Record{
		aggQSO("W1AW", "20M", "CW"),
		aggQSO("K1TTT", "20M", "CW"),
	}
	records[1].Section = "ZZZ" // not an ARRL section
	s := BuildSectionSummary(records)
	if s.WorkedCount != 1 {
		t.Fatalf("only IL is officially worked, got %d", s.WorkedCount)
	}
	if len(s.Tallies) != len(qso.ARRLSections) {
		t.Fatalf("every official section appears, got %d rows", len(s.Tallies))
	}
	if s.Tallies[0].Key != "IL" || s.Tallies[0].Count != 1 {
		t.Fatalf("worked section sorts first: %+v", s.Tallies[0])
	}
	if len(s.Unmatched) != 1 || s.Unmatched[0] != "ZZZ" {
		t.Fatalf("expected unmatched ZZZ, got %+v", s.Unmatched)
	}
	if len(s.UnmatchedBy) != 1 || s.UnmatchedBy[0].Call != "K1TTT" {
		t.Fatalf("expected the offending record, got %+v", s.UnmatchedBy)
	}
}

func TestFindBustedSuspects(t *testing.T) {
	records := []qso.Record{
		aggQSO("W1AW", "20M", "CW"),
		aggQSO("W1AW", "40M", "CW"),
		aggQSO("W1AW", "15M", "CW"),
		aggQSO("W1AQ", "20M", "CW"), // once, one edit from W1AW
		aggQSO("K5ZD", "20M", "CW"), // once, but no close neighbor
	}
	suspects := FindBustedSuspects(records)
	if len(suspects) != 1 {
		t.Fatalf("expected one suspect, got %+v", suspects)
	}
	s := suspects[0]
	if s.Call != "W1AQ" || s.Likely != "W1AW" || s.Seen != 3 || s.Distance != 1 {
		t.Fatalf("unexpected suspect %+v", s)
	}
}
