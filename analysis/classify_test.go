package analysis

import (
	"testing"

	"contestlog/qso"
)

func timedQSO(timeOn int, band string, freq float64) qso.Record {
	return qso.Record{
		Band:    band,
		Freq:    freq,
		HasFreq: freq != 0,
		TimeOn:  timeOn,
		HasTime: true,
	}
}

func TestClassifyFrequencyJumpIsSP(t *testing.T) {
	// Two QSOs in the same minute, same band, 300 Hz apart.
	records := []qso.Record{
		timedQSO(120000, "20M", 14.0250),
		timedQSO(120000, "20M", 14.0253),
	}
	c := ClassifyLog(records, 0)
	if c.Counted != 1 || c.SPTransitions != 1 {
		t.Fatalf("expected one counted S&P transition, got %+v", c)
	}
	if c.SPPercentage != 100.0 {
		t.Fatalf("expected 100.0%% S&P, got %v", c.SPPercentage)
	}
}

func TestClassifySmallDriftIsRun(t *testing.T) {
	// 100 Hz of drift stays within the Run threshold.
	records := []qso.Record{
		timedQSO(120000, "20M", 14.0250),
		timedQSO(120100, "20M", 14.0251),
	}
	c := ClassifyLog(records, 0)
	if c.Counted != 1 || c.SPTransitions != 0 {
		t.Fatalf("expected one counted Run transition, got %+v", c)
	}
	if c.SPPercentage != 0.0 {
		t.Fatalf("expected 0.0%% S&P, got %v", c.SPPercentage)
	}
}

func TestClassifyBandChangeExcluded(t *testing.T) {
	records := []qso.Record{
		timedQSO(120000, "20M", 14.0250),
		timedQSO(120100, "40M", 7.0250),
	}
	c := ClassifyLog(records, 0)
	if c.Counted != 0 {
		t.Fatalf("band change must not be counted, got %+v", c)
	}
	if c.SPPercentage != 0.0 {
		t.Fatalf("expected 0.0%% with no counted transitions, got %v", c.SPPercentage)
	}
}

func TestClassifyMissingFreqUsesBandCenter(t *testing.T) {
	// First record has no frequency: the 40M center estimate (7.100) applies,
	// and the second sits far enough away to read as S&P.
	records := []qso.Record{
		timedQSO(120000, "40M", 0),
		timedQSO(120100, "40M", 7.0250),
	}
	c := ClassifyLog(records, 0)
	if c.Counted != 1 || c.SPTransitions != 1 {
		t.Fatalf("expected estimated-frequency S&P transition, got %+v", c)
	}
}

func TestClassifyUnresolvableFrequencyExcluded(t *testing.T) {
	records := []qso.Record{
		timedQSO(120000, "", 0),
		timedQSO(120100, "", 0),
	}
	c := ClassifyLog(records, 0)
	if c.Counted != 0 {
		t.Fatalf("unresolvable pair must be excluded, got %+v", c)
	}
}

func TestClassifyEmptyAndSingle(t *testing.T) {
	if c := ClassifyLog(nil, 0); c.SPPercentage != 0.0 {
		t.Fatalf("empty log should yield 0.0, got %v", c.SPPercentage)
	}
	if c := ClassifyLog([]qso.Record{timedQSO(120000, "20M", 14.0)}, 0); c.SPPercentage != 0.0 {
		t.Fatalf("single record should yield 0.0, got %v", c.SPPercentage)
	}
}

func TestClassifyBoundsProperty(t *testing.T) {
	records := []qso.Record{
		timedQSO(120000, "20M", 14.0250),
		timedQSO(120100, "20M", 14.0900),
		timedQSO(120200, "20M", 14.0901),
		timedQSO(120300, "40M", 7.0250),
		timedQSO(120400, "40M", 7.0100),
	}
	c := ClassifyLog(records, 0)
	if c.SPPercentage < 0.0 || c.SPPercentage > 100.0 {
		t.Fatalf("S&P percentage out of bounds: %v", c.SPPercentage)
	}
	// 20M pairs: jump (S&P) then drift (Run); 40M pair: jump. Band change excluded.
	if c.Counted != 3 || c.SPTransitions != 2 {
		t.Fatalf("expected 2/3 S&P, got %+v", c)
	}
}
