// Package analysis turns a flat set of normalized QSO records into the
// derived contest statistics: Run vs Search-&-Pounce classification,
// per-operator/per-station sessions, a reconciled time ledger, data-quality
// scoring, and the band/mode/section/country aggregates. Everything is a
// single synchronous pass over in-memory data; each call builds fresh result
// structures and shares nothing across runs.
package analysis

import "fmt"

const minutesPerDay = 24 * 60

// InvalidTimeError reports an HHMMSS value that cannot be decomposed into
// valid hour and minute digit groups.
type InvalidTimeError struct {
	Value int
}

func (e *InvalidTimeError) Error() string {
	return fmt.Sprintf("invalid HHMMSS time value: %d", e.Value)
}

// ToMinutes converts an HHMMSS timestamp to minutes since midnight. Seconds
// are intentionally dropped; the engine works at minute resolution.
func ToMinutes(hhmmss int) (int, error) {
	if hhmmss < 0 || hhmmss > 235959 {
		return 0, &InvalidTimeError{Value: hhmmss}
	}
	hours := hhmmss / 10000
	minutes := (hhmmss / 100) % 100
	if hours > 23 || minutes > 59 {
		return 0, &InvalidTimeError{Value: hhmmss}
	}
	return hours*60 + minutes, nil
}

// GapMinutes returns the non-negative gap between two HHMMSS timestamps.
// When t2 reads earlier than t1 a single day rollover is assumed. Spans of
// more than 24 hours between anchor points are out of scope and produce a
// deterministic but wrong answer.
func GapMinutes(t1, t2 int) (int, error) {
	m1, err := ToMinutes(t1)
	if err != nil {
		return 0, err
	}
	m2, err := ToMinutes(t2)
	if err != nil {
		return 0, err
	}
	if m2 < m1 {
		m2 += minutesPerDay
	}
	return m2 - m1, nil
}

// DurationHours returns the span from the first to the last timestamp in a
// sorted HHMMSS slice, in hours, with rollover handling.
func DurationHours(sortedTimes []int) float64 {
	if len(sortedTimes) < 2 {
		return 0
	}
	gap, err := GapMinutes(sortedTimes[0], sortedTimes[len(sortedTimes)-1])
	if err != nil {
		return 0
	}
	return float64(gap) / 60.0
}

// FormatTime renders an HHMMSS value as "HH:MM" for reports.
func FormatTime(hhmmss int) string {
	return fmt.Sprintf("%02d:%02d", hhmmss/10000, (hhmmss/100)%100)
}
