package analysis

import (
	"sort"

	"contestlog/qso"
)

// OperatorStats carries per-operator rate and classification figures.
// QSOCount includes untimed records; the rate math only sees timed ones.
type OperatorStats struct {
	QSOCount           int
	AvgRatePerHour     float64
	PeakRatePerHour    float64
	RunPercentage      float64
	SPPercentage       float64
	MissingFreqCount   int
	SPAnalysisReliable bool
}

// HourlyRate is the QSO count for one UTC hour of the log.
type HourlyRate struct {
	Hour     int
	QSOCount int
}

// OperatorRates computes per-operator counts, average and peak rates, and
// Run/S&P percentages. An operator with a single record is 100% Run by
// convention; zero-transition operators likewise default to Run.
func OperatorRates(records []qso.Record, spThresholdMHz float64) map[string]*OperatorStats {
	byOperator := make(map[string][]qso.Record)
	stats := make(map[string]*OperatorStats)

	for _, r := range records {
		byOperator[r.Operator] = append(byOperator[r.Operator], r)
		st := stats[r.Operator]
		if st == nil {
			st = &OperatorStats{SPAnalysisReliable: true}
			stats[r.Operator] = st
		}
		st.QSOCount++
		if !r.HasFreq {
			st.MissingFreqCount++
		}
	}

	for operator, group := range byOperator {
		st := stats[operator]

		times := sortedTimes(group)
		switch {
		case len(times) >= 2:
			if hours := DurationHours(times); hours > 0 {
				st.AvgRatePerHour = float64(st.QSOCount) / hours
			}
			st.PeakRatePerHour = peakRate(times)
		case len(times) == 1:
			st.AvgRatePerHour = 1.0
			st.PeakRatePerHour = 1.0
		}

		st.RunPercentage = 100.0
		if len(group) > 1 {
			c := ClassifyLog(group, spThresholdMHz)
			if c.Counted > 0 {
				st.SPPercentage = c.SPPercentage
				st.RunPercentage = 100.0 - c.SPPercentage
			}
		}

		if st.MissingFreqCount > 0 {
			st.SPAnalysisReliable = false
		}
	}

	return stats
}

// peakRate finds the best hour with a 60-minute sliding window over the
// sorted timestamps. Window bounds are inclusive on both ends.
func peakRate(sortedHHMMSS []int) float64 {
	minutes := make([]int, 0, len(sortedHHMMSS))
	for _, ts := range sortedHHMMSS {
		m, err := ToMinutes(ts)
		if err != nil {
			continue
		}
		minutes = append(minutes, m)
	}
	sort.Ints(minutes)

	peak := 0
	for i := range minutes {
		windowEnd := minutes[i] + 60
		count := 0
		for _, m := range minutes {
			if m >= minutes[i] && m <= windowEnd {
				count++
			}
		}
		if count > peak {
			peak = count
		}
	}
	return float64(peak)
}

// HourlyRates buckets timed records per UTC hour, ascending.
func HourlyRates(records []qso.Record) []HourlyRate {
	counts := make(map[int]int)
	for _, r := range records {
		if !r.HasTime {
			continue
		}
		counts[r.TimeOn/10000]++
	}

	hours := make([]int, 0, len(counts))
	for h := range counts {
		hours = append(hours, h)
	}
	sort.Ints(hours)

	out := make([]HourlyRate, 0, len(hours))
	for _, h := range hours {
		out = append(out, HourlyRate{Hour: h, QSOCount: counts[h]})
	}
	return out
}
