package report

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"

	"contestlog/analysis"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// jsonResult mirrors analysis.Result with JSON-safe shapes: the session
// index is keyed by structs, which JSON cannot express, so it flattens to a
// list sorted by operator then station.
type jsonResult struct {
	TotalQSOs      int                                `json:"total_qsos"`
	SPTransitions  int                                `json:"sp_transitions"`
	SPPercentage   float64                            `json:"sp_percentage"`
	OperatorStats  map[string]*analysis.OperatorStats `json:"operator_stats"`
	DataQuality    analysis.QualityReport             `json:"data_quality"`
	Statistics     jsonStatistics                     `json:"log_statistics"`
	BandMode       *analysis.BandModeBreakdown        `json:"band_mode"`
	Duplicates     []analysis.DuplicateGroup          `json:"duplicates"`
	MultiMode      analysis.MultiModeStats            `json:"multi_mode"`
	Sections       analysis.SectionSummary            `json:"sections"`
	Countries      []analysis.Tally                   `json:"countries"`
	Operators      []analysis.Tally                   `json:"operators"`
	BustedSuspects []analysis.BustedCallSuspect       `json:"busted_suspects"`
}

type jsonStatistics struct {
	TotalHours     float64                    `json:"total_hours"`
	OverallRate    float64                    `json:"overall_rate"`
	StartTime      string                     `json:"start_time,omitempty"`
	EndTime        string                     `json:"end_time,omitempty"`
	Gaps           []analysis.Gap             `json:"gaps"`
	HourlyRates    []analysis.HourlyRate      `json:"hourly_rates"`
	Sessions       []*analysis.GroupSessions  `json:"operator_sessions"`
	StationGaps    map[string][]analysis.Gap  `json:"station_gaps"`
	TimeAccounting analysis.TimeLedger        `json:"time_accounting"`
}

// WriteJSON serializes the full result to w, indented for diffing.
func WriteJSON(w io.Writer, res *analysis.Result) error {
	stats := res.LogStatistics
	out := jsonResult{
		TotalQSOs:     res.TotalQSOs,
		SPTransitions: res.Classification.SPTransitions,
		SPPercentage:  res.SPPercentage,
		OperatorStats: res.OperatorStats,
		DataQuality:   res.DataQuality,
		Statistics: jsonStatistics{
			TotalHours:     stats.TotalHours,
			OverallRate:    stats.OverallRate,
			Gaps:           stats.Gaps,
			HourlyRates:    stats.HourlyRates,
			StationGaps:    stats.StationGaps,
			TimeAccounting: stats.TimeAccounting,
		},
		BandMode:       res.BandMode,
		Duplicates:     res.Duplicates,
		MultiMode:      res.MultiMode,
		Sections:       res.Sections,
		Countries:      res.Countries,
		Operators:      res.Operators,
		BustedSuspects: res.BustedSuspects,
	}
	if stats.HasSpan {
		out.Statistics.StartTime = analysis.FormatTime(stats.StartTime)
		out.Statistics.EndTime = analysis.FormatTime(stats.EndTime)
	}
	for _, key := range analysis.SortedGroupKeys(stats.OperatorSessions) {
		out.Statistics.Sessions = append(out.Statistics.Sessions, stats.OperatorSessions[key])
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		return fmt.Errorf("report: encode json: %w", err)
	}
	return nil
}
