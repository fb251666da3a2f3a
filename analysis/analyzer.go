package analysis

import "contestlog/qso"

// Options are the policy knobs for one analysis run.
type Options struct {
	GapThresholdMinutes int     // session split / silent period threshold
	SPThresholdMHz      float64 // frequency jump marking an S&P transition
}

// DefaultOptions returns the standard thresholds: 15 minutes, 200 Hz.
func DefaultOptions() Options {
	return Options{
		GapThresholdMinutes: DefaultGapThresholdMinutes,
		SPThresholdMHz:      DefaultSPThresholdMHz,
	}
}

func (o Options) withDefaults() Options {
	if o.GapThresholdMinutes <= 0 {
		o.GapThresholdMinutes = DefaultGapThresholdMinutes
	}
	if o.SPThresholdMHz <= 0 {
		o.SPThresholdMHz = DefaultSPThresholdMHz
	}
	return o
}

// LogStatistics covers the whole-log time figures: span, rate, silent
// periods, hourly buckets, the session index, and the reconciled ledger.
type LogStatistics struct {
	TotalHours       float64
	OverallRate      float64
	StartTime        int // HHMMSS of the earliest timed record
	EndTime          int // HHMMSS of the latest timed record
	HasSpan          bool
	Gaps             []Gap
	HourlyRates      []HourlyRate
	OperatorSessions map[GroupKey]*GroupSessions
	StationGaps      map[string][]Gap // silent periods per logging computer
	TimeAccounting   TimeLedger
}

// Result is the full output of one analysis run. It is built once by
// Analyze and read-only afterward; no component mutates another's output.
type Result struct {
	TotalQSOs      int
	Classification Classification
	SPPercentage   float64
	OperatorStats  map[string]*OperatorStats
	DataQuality    QualityReport
	LogStatistics  LogStatistics
	BandMode       *BandModeBreakdown
	Duplicates     []DuplicateGroup
	MultiMode      MultiModeStats
	Sections       SectionSummary
	Countries      []Tally
	Operators      []Tally
	BustedSuspects []BustedCallSuspect
}

// Analyze runs the whole pipeline over normalized records: classification,
// sessions, reconciliation, quality, and aggregates. Input order does not
// matter; the run is deterministic for a given record set.
func Analyze(records []qso.Record, opts Options) *Result {
	opts = opts.withDefaults()

	classification := ClassifyLog(records, opts.SPThresholdMHz)
	sessions := BuildSessions(records, opts.GapThresholdMinutes)

	res := &Result{
		TotalQSOs:      len(records),
		Classification: classification,
		SPPercentage:   classification.SPPercentage,
		OperatorStats:  OperatorRates(records, opts.SPThresholdMHz),
		DataQuality:    AnalyzeQuality(records),
		BandMode:       BuildBandModeBreakdown(records),
		Duplicates:     FindDuplicates(records),
		MultiMode:      BuildMultiModeStats(records),
		Sections:       BuildSectionSummary(records),
		Countries:      TallyBy(records, func(r qso.Record) string { return r.Country }),
		Operators:      TallyBy(records, func(r qso.Record) string { return r.Operator }),
		BustedSuspects: FindBustedSuspects(records),
	}

	stats := LogStatistics{
		OperatorSessions: sessions,
		HourlyRates:      HourlyRates(records),
		StationGaps:      stationGaps(records, opts.GapThresholdMinutes),
		TimeAccounting:   Reconcile(records, sessions, opts.GapThresholdMinutes),
	}
	if times := sortedTimes(records); len(times) > 0 {
		stats.StartTime = times[0]
		stats.EndTime = times[len(times)-1]
		stats.HasSpan = true
		stats.TotalHours = DurationHours(times)
		stats.Gaps = FindSilentPeriods(times, opts.GapThresholdMinutes)
		if stats.TotalHours > 0 {
			stats.OverallRate = float64(len(records)) / stats.TotalHours
		}
	}
	res.LogStatistics = stats

	return res
}

// stationGaps finds silent periods independently for each logging computer.
func stationGaps(records []qso.Record, gapThresholdMinutes int) map[string][]Gap {
	byStation := make(map[string][]qso.Record)
	for _, r := range records {
		if r.HasTime {
			byStation[r.Station] = append(byStation[r.Station], r)
		}
	}
	out := make(map[string][]Gap, len(byStation))
	for station, group := range byStation {
		out[station] = FindSilentPeriods(sortedTimes(group), gapThresholdMinutes)
	}
	return out
}
