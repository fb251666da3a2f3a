package analysis

import (
	"reflect"
	"testing"

	"contestlog/qso"
)

func fieldDayLog() []qso.Record {
	mk := func(timeOn int, op, station, call, band, mode string, freq float64) qso.Record {
		return qso.Normalize(qso.Record{
			Call: call, Band: band, Mode: mode,
			Freq: freq, HasFreq: freq != 0,
			TimeOn: timeOn, HasTime: true,
			Operator: op, Station: station,
			Section: "IL", Country: "United States",
		})
	}
	return []qso.Record{
		mk(180000, "K9CT", "STA-A", "W1AW", "20M", "CW", 14.0250),
		mk(180200, "K9CT", "STA-A", "K1TTT", "20M", "CW", 14.0251),
		mk(180400, "K9CT", "STA-A", "N5DX", "20M", "CW", 14.0700),
		mk(183000, "K9CT", "STA-A", "W9RE", "20M", "CW", 14.0700),
		mk(180100, "W9XYZ", "STA-B", "K3LR", "40M", "SSB", 7.2100),
		mk(180300, "W9XYZ", "STA-B", "K3LR", "40M", "SSB", 7.2100), // dupe
	}
}

func TestAnalyzeEndToEnd(t *testing.T) {
	res := Analyze(fieldDayLog(), DefaultOptions())

	if res.TotalQSOs != 6 {
		t.Fatalf("expected 6 QSOs, got %d", res.TotalQSOs)
	}
	if res.SPPercentage < 0 || res.SPPercentage > 100 {
		t.Fatalf("S&P percentage out of bounds: %v", res.SPPercentage)
	}
	if len(res.Duplicates) != 1 || res.Duplicates[0].Call != "K3LR" {
		t.Fatalf("expected one K3LR duplicate, got %+v", res.Duplicates)
	}
	if res.LogStatistics.StartTime != 180000 || res.LogStatistics.EndTime != 183000 {
		t.Fatalf("unexpected span %d-%d", res.LogStatistics.StartTime, res.LogStatistics.EndTime)
	}
	if len(res.LogStatistics.OperatorSessions) != 2 {
		t.Fatalf("expected 2 operator@station groups, got %d", len(res.LogStatistics.OperatorSessions))
	}
	// 26 minutes of silence on STA-A splits K9CT's activity in two.
	k9 := res.LogStatistics.OperatorSessions[GroupKey{Operator: "K9CT", Station: "STA-A"}]
	if k9 == nil || len(k9.Sessions) != 2 {
		t.Fatalf("expected K9CT split into 2 sessions, got %+v", k9)
	}
	if !res.LogStatistics.TimeAccounting.ReconciliationOK {
		t.Fatalf("ledger should reconcile: %+v", res.LogStatistics.TimeAccounting)
	}
	if res.DataQuality.TotalQSOs != 6 || res.DataQuality.MissingFrequency != 0 {
		t.Fatalf("unexpected quality %+v", res.DataQuality)
	}
	if got := res.LogStatistics.StationGaps["STA-A"]; len(got) != 1 {
		t.Fatalf("expected one STA-A silent period, got %+v", got)
	}
}

func TestAnalyzeIdempotent(t *testing.T) {
	records := fieldDayLog()
	a := Analyze(records, DefaultOptions())
	b := Analyze(records, DefaultOptions())
	if !reflect.DeepEqual(a, b) {
		t.Fatalf("two runs over the same records must be identical")
	}
}

func TestAnalyzeEmptyLog(t *testing.T) {
	res := Analyze(nil, DefaultOptions())
	if res.TotalQSOs != 0 || res.SPPercentage != 0.0 {
		t.Fatalf("empty log should be all zeros, got %+v", res)
	}
	if res.LogStatistics.HasSpan {
		t.Fatalf("empty log has no span")
	}
	if !res.LogStatistics.TimeAccounting.ReconciliationOK {
		t.Fatalf("empty ledger reconciles trivially")
	}
}

func TestAnalyzeSentinelOperatorFlowsThrough(t *testing.T) {
	r := qso.Normalize(qso.Record{
		Call: "W1AW", Band: "20M", Mode: "CW",
		TimeOn: 120000, HasTime: true,
		Operator: "", Station: "",
	})
	res := Analyze([]qso.Record{r}, DefaultOptions())

	if _, ok := res.OperatorStats[qso.UnknownOperator]; !ok {
		t.Fatalf("sentinel operator missing from stats: %+v", res.OperatorStats)
	}
	key := GroupKey{Operator: qso.UnknownOperator, Station: qso.DefaultStation}
	if _, ok := res.LogStatistics.OperatorSessions[key]; !ok {
		t.Fatalf("sentinel identity missing from session index")
	}
	if res.Operators[0].Key != qso.UnknownOperator {
		t.Fatalf("sentinel operator missing from tally: %+v", res.Operators)
	}
}

func TestAnalyzeUsesConfiguredGapThreshold(t *testing.T) {
	records := []qso.Record{
		opQSO(120000, "K9CT", "STA-A"),
		opQSO(121000, "K9CT", "STA-A"), // 10 minute gap
	}
	loose := Analyze(records, Options{GapThresholdMinutes: 15})
	tight := Analyze(records, Options{GapThresholdMinutes: 5})
	k := GroupKey{Operator: "K9CT", Station: "STA-A"}
	if n := len(loose.LogStatistics.OperatorSessions[k].Sessions); n != 1 {
		t.Fatalf("15 minute threshold should keep one session, got %d", n)
	}
	if n := len(tight.LogStatistics.OperatorSessions[k].Sessions); n != 2 {
		t.Fatalf("5 minute threshold should split, got %d", n)
	}
}
