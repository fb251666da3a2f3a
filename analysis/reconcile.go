package analysis

import (
	"math"

	"contestlog/qso"
)

// ReconciliationToleranceHours bounds the accepted drift between total time
// and the active+gap sum: 0.1 hour (six minutes).
const ReconciliationToleranceHours = 0.1

// Gap is a silent period between two consecutive logged timestamps.
type Gap struct {
	Start       int // HHMMSS of the QSO before the silence
	End         int // HHMMSS of the QSO after it
	DurationMin int
}

// TimeLedger is the reconciled view of where the log's wall-clock time went:
// active operating time plus gap time equals total elapsed time within
// tolerance. AllGapHours can go negative when distinct operator/station
// sessions overlap in wall-clock time; that violates the engine's occupancy
// assumption and is surfaced through ReconciliationOK rather than clamped.
type TimeLedger struct {
	TotalLogHours        float64
	ActiveOperatingHours float64
	AllGapHours          float64
	LongGapHours         float64
	ShortGapHours        float64
	ReconciliationOK     bool
	ReconciliationDiff   float64
}

// FindSilentPeriods scans a sorted HHMMSS sequence and returns every gap
// strictly longer than minGapMinutes, with single-day rollover handling.
func FindSilentPeriods(sortedTimes []int, minGapMinutes int) []Gap {
	var gaps []Gap
	for i := 0; i+1 < len(sortedTimes); i++ {
		gap, err := GapMinutes(sortedTimes[i], sortedTimes[i+1])
		if err != nil {
			continue
		}
		if gap > minGapMinutes {
			gaps = append(gaps, Gap{
				Start:       sortedTimes[i],
				End:         sortedTimes[i+1],
				DurationMin: gap,
			})
		}
	}
	return gaps
}

// Reconcile builds the time ledger from the global timestamp span and the
// session index. Session intervals are summed directly, not merged: distinct
// operator/station identities are assumed to occupy disjoint stretches of
// the physical timeline, so a geometric union would hide double-logging
// instead of exposing it.
func Reconcile(records []qso.Record, index map[GroupKey]*GroupSessions, gapThresholdMinutes int) TimeLedger {
	if gapThresholdMinutes <= 0 {
		gapThresholdMinutes = DefaultGapThresholdMinutes
	}

	times := sortedTimes(records)
	if len(times) == 0 {
		return TimeLedger{ReconciliationOK: true}
	}

	totalHours := DurationHours(times)

	activeMinutes := 0
	for _, gs := range index {
		for _, s := range gs.Sessions {
			span, err := GapMinutes(s.StartTime, s.EndTime)
			if err != nil {
				continue
			}
			activeMinutes += span
		}
	}
	activeHours := float64(activeMinutes) / 60.0

	allGapHours := totalHours - activeHours

	longGapMinutes := 0
	for _, g := range FindSilentPeriods(times, gapThresholdMinutes) {
		longGapMinutes += g.DurationMin
	}
	longGapHours := float64(longGapMinutes) / 60.0

	diff := math.Abs(totalHours - (activeHours + allGapHours))
	return TimeLedger{
		TotalLogHours:        totalHours,
		ActiveOperatingHours: activeHours,
		AllGapHours:          allGapHours,
		LongGapHours:         longGapHours,
		ShortGapHours:        allGapHours - longGapHours,
		ReconciliationOK:     diff < ReconciliationToleranceHours,
		ReconciliationDiff:   diff,
	}
}

// sortedTimes extracts the HHMMSS values of all timed records, ascending.
func sortedTimes(records []qso.Record) []int {
	times := make([]int, 0, len(records))
	for _, r := range timeOrdered(records) {
		times = append(times, r.TimeOn)
	}
	return times
}
