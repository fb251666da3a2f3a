package analysis

import (
	"math"
	"testing"

	"contestlog/qso"
)

func TestFindSilentPeriods(t *testing.T) {
	times := []int{120000, 120500, 124500, 125000}
	gaps := FindSilentPeriods(times, 15)
	if len(gaps) != 1 {
		t.Fatalf("expected 1 gap, got %d", len(gaps))
	}
	g := gaps[0]
	if g.Start != 120500 || g.End != 124500 || g.DurationMin != 40 {
		t.Fatalf("unexpected gap %+v", g)
	}
}

func TestFindSilentPeriodsThresholdIsExclusive(t *testing.T) {
	if gaps := FindSilentPeriods([]int{120000, 121500}, 15); len(gaps) != 0 {
		t.Fatalf("exactly 15 minutes is not a silent period, got %+v", gaps)
	}
	if gaps := FindSilentPeriods([]int{120000, 121600}, 15); len(gaps) != 1 {
		t.Fatalf("16 minutes should register, got %+v", gaps)
	}
}

func TestFindSilentPeriodsRollover(t *testing.T) {
	gaps := FindSilentPeriods([]int{235000, 3000}, 15)
	if len(gaps) != 1 || gaps[0].DurationMin != 40 {
		t.Fatalf("expected 40 minute rollover gap, got %+v", gaps)
	}
}

func TestReconcileInvariant(t *testing.T) {
	records := []qso.Record{
		opQSO(120000, "K9CT", "STA-A"),
		opQSO(120500, "K9CT", "STA-A"),
		opQSO(130000, "K9CT", "STA-A"),
		opQSO(130500, "K9CT", "STA-A"),
	}
	index := BuildSessions(records, 15)
	ledger := Reconcile(records, index, 15)

	if !ledger.ReconciliationOK {
		t.Fatalf("reconciliation should hold: %+v", ledger)
	}
	sum := ledger.ActiveOperatingHours + ledger.AllGapHours
	if math.Abs(sum-ledger.TotalLogHours) >= ReconciliationToleranceHours {
		t.Fatalf("active+gap != total: %+v", ledger)
	}
	// 12:00 to 13:05 total, two 5-minute sessions active, one 55-minute long gap.
	if math.Abs(ledger.TotalLogHours-65.0/60.0) > 1e-9 {
		t.Fatalf("expected total 65 min, got %v h", ledger.TotalLogHours)
	}
	if math.Abs(ledger.ActiveOperatingHours-10.0/60.0) > 1e-9 {
		t.Fatalf("expected active 10 min, got %v h", ledger.ActiveOperatingHours)
	}
	if math.Abs(ledger.LongGapHours-55.0/60.0) > 1e-9 {
		t.Fatalf("expected long gaps 55 min, got %v h", ledger.LongGapHours)
	}
	if math.Abs(ledger.ShortGapHours-0.0) > 1e-9 {
		t.Fatalf("expected no short gap time, got %v h", ledger.ShortGapHours)
	}
}

func TestReconcileEmptyLog(t *testing.T) {
	ledger := Reconcile(nil, nil, 15)
	if !ledger.ReconciliationOK {
		t.Fatalf("empty log should reconcile trivially: %+v", ledger)
	}
	if ledger.TotalLogHours != 0 || ledger.ActiveOperatingHours != 0 {
		t.Fatalf("empty log ledger should be zero: %+v", ledger)
	}
}

func TestReconcileOverlappingIdentitiesGoNegative(t *testing.T) {
	// Two identities logging the same hour: summed active time exceeds the
	// global span and the gap goes negative. Best-effort ledger, no clamp.
	records := []qso.Record{
		opQSO(120000, "K9CT", "STA-A"),
		opQSO(125500, "K9CT", "STA-A"),
		opQSO(120000, "W9XYZ", "STA-B"),
		opQSO(125500, "W9XYZ", "STA-B"),
	}
	// A session split inside each group keeps every QSO within the hour.
	index := BuildSessions(records, 60)
	ledger := Reconcile(records, index, 15)
	if ledger.AllGapHours >= 0 {
		t.Fatalf("expected negative gap time under overlap, got %v", ledger.AllGapHours)
	}
	// The defensive identity still holds by construction.
	if !ledger.ReconciliationOK {
		t.Fatalf("identity check is arithmetic and should still pass: %+v", ledger)
	}
}
