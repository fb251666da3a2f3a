// Package report renders an analysis.Result as the plain-text summary
// report, and as JSON for downstream tooling. Layout only; every number
// comes from the analysis package.
package report

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"

	"contestlog/analysis"
	"contestlog/qso"
)

const sectionRule = "----------------------------------------"

// Render produces the full text report.
func Render(res *analysis.Result) string {
	lines := make([]string, 0, 256)
	lines = append(lines, strings.Repeat("=", 60))
	lines = append(lines, "QSO ANALYSIS SUMMARY REPORT")
	lines = append(lines, strings.Repeat("=", 60))
	lines = append(lines, fmt.Sprintf("Total QSOs: %s", humanize.Comma(int64(res.TotalQSOs))))

	lines = append(lines, renderDuplicates(res)...)
	lines = append(lines, renderMultiMode(res)...)
	lines = append(lines, renderBustedSuspects(res)...)
	lines = append(lines, renderDataQuality(res)...)
	lines = append(lines, renderLogStatistics(res)...)
	lines = append(lines, renderBandMode(res.BandMode)...)
	lines = append(lines, renderSectionTable(res)...)
	lines = append(lines, renderCountryTable(res)...)
	lines = append(lines, renderOperatorTable(res)...)
	lines = append(lines, renderOperatorSessions(res)...)
	lines = append(lines, renderOperatorStats(res)...)
	lines = append(lines, renderStationGaps(res)...)

	return strings.Join(lines, "\n")
}

// Warnings returns the data-quality warnings a caller may want to surface
// prominently (colored on a terminal).
func Warnings(res *analysis.Result) []string {
	var warnings []string
	if !res.DataQuality.SPAnalysisReliable {
		warnings = append(warnings, "S&P analysis may be unreliable due to missing or estimated frequency data.")
	}
	if !res.LogStatistics.TimeAccounting.ReconciliationOK {
		warnings = append(warnings, fmt.Sprintf("Time discrepancy: %.1f hours", res.LogStatistics.TimeAccounting.ReconciliationDiff))
	}
	if res.LogStatistics.TimeAccounting.AllGapHours < 0 {
		warnings = append(warnings, "Gap time is negative: operator/station sessions overlap in wall-clock time.")
	}
	if len(res.Sections.Unmatched) > 0 {
		warnings = append(warnings, fmt.Sprintf("%d section value(s) not in the official ARRL list.", len(res.Sections.Unmatched)))
	}
	return warnings
}

func renderDuplicates(res *analysis.Result) []string {
	var lines []string
	if len(res.Duplicates) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Duplicate contact list (CALLSIGN on BAND/MODE):")
		for _, d := range res.Duplicates {
			times := make([]string, 0, len(d.Times))
			for _, t := range d.Times {
				times = append(times, fmt.Sprintf("%06d", t))
			}
			lines = append(lines, fmt.Sprintf("  %s on %s %s at times: %s", d.Call, d.Band, d.Mode, strings.Join(times, ", ")))
		}
	}
	lines = append(lines, fmt.Sprintf("Duplicate contacts (same callsign on same band/mode): %d", len(res.Duplicates)))
	return lines
}

func renderMultiMode(res *analysis.Result) []string {
	mm := res.MultiMode
	lines := []string{
		"",
		fmt.Sprintf("Number of unique callsigns in the entire log: %d", mm.UniqueCalls),
		"",
		"Calls worked on multiple modes per band:",
	}
	for _, row := range mm.PerBand {
		pct := 0.0
		if row.TotalCalls > 0 {
			pct = 100.0 * float64(row.MultiMode) / float64(row.TotalCalls)
		}
		lines = append(lines, fmt.Sprintf("  %s: %d of %d calls (%.1f%%)", row.Band, row.MultiMode, row.TotalCalls, pct))
	}
	pctTotal := 0.0
	if mm.UniqueCalls > 0 {
		pctTotal = 100.0 * float64(mm.MultiModeCalls) / float64(mm.UniqueCalls)
	}
	lines = append(lines, fmt.Sprintf("Total calls worked on multiple modes (any band): %d of %d unique calls (%.1f%%)",
		mm.MultiModeCalls, mm.UniqueCalls, pctTotal))
	return lines
}

func renderBustedSuspects(res *analysis.Result) []string {
	if len(res.BustedSuspects) == 0 {
		return nil
	}
	lines := []string{"", "Possible busted calls (worked once, one edit from a frequent call):"}
	for _, s := range res.BustedSuspects {
		lines = append(lines, fmt.Sprintf("  %-12s likely %s (worked %d times)", s.Call, s.Likely, s.Seen))
	}
	return lines
}

func renderDataQuality(res *analysis.Result) []string {
	q := res.DataQuality
	lines := []string{
		"",
		"DATA QUALITY ANALYSIS:",
		sectionRule,
		fmt.Sprintf("QSOs analyzed: %d", q.TotalQSOs),
		fmt.Sprintf("QSOs missing frequency: %d", q.MissingFrequency),
		fmt.Sprintf("QSOs missing band: %d", q.MissingBand),
		fmt.Sprintf("QSOs missing time: %d", q.MissingTime),
		fmt.Sprintf("Frequency coverage: %.1f%% of QSOs have frequency data", q.FreqCoverage),
		fmt.Sprintf("QSOs with estimated (band center) frequencies: %d", q.EstimatedFrequencies),
		fmt.Sprintf("Search & Pounce (S&P) percentage: %.1f%%", res.SPPercentage),
	}
	switch {
	case !q.SPAnalysisReliable:
		lines = append(lines, "WARNING: S&P analysis may be unreliable due to missing or estimated frequency data.")
	case q.FrequenciesEstimated:
		lines = append(lines, "NOTE: Many frequencies are estimated from band center; S&P analysis may be less accurate.")
	default:
		lines = append(lines, "S&P analysis is considered reliable.")
	}
	lines = append(lines, "")
	return lines
}

func renderLogStatistics(res *analysis.Result) []string {
	stats := res.LogStatistics
	lines := []string{
		"LOG STATISTICS:",
		sectionRule,
		fmt.Sprintf("Total Log Duration: %.1f hours", stats.TotalHours),
		fmt.Sprintf("Overall QSO Rate: %.1f QSOs/hour", stats.OverallRate),
	}
	if len(stats.Gaps) > 0 {
		totalSilent := 0
		for _, g := range stats.Gaps {
			totalSilent += g.DurationMin
		}
		lines = append(lines, fmt.Sprintf("Full Log Silent Periods (>15 min): %d totaling %.1f hours",
			len(stats.Gaps), float64(totalSilent)/60.0))
		for i, g := range stats.Gaps {
			lines = append(lines, fmt.Sprintf("  Gap %d: %d minutes (%s - %s)",
				i+1, g.DurationMin, analysis.FormatTime(g.Start), analysis.FormatTime(g.End)))
		}
	} else {
		lines = append(lines, "Silent Periods (>15 min): None")
	}

	acc := stats.TimeAccounting
	lines = append(lines, "")
	lines = append(lines, "TIME BREAKDOWN:")
	lines = append(lines, fmt.Sprintf("  Total Log Duration: %.1f hours", acc.TotalLogHours))
	if stats.HasSpan {
		lines = append(lines, fmt.Sprintf("  First QSO: %s", analysis.FormatTime(stats.StartTime)))
		lines = append(lines, fmt.Sprintf("  Last QSO: %s", analysis.FormatTime(stats.EndTime)))
	}
	lines = append(lines, fmt.Sprintf("  Active Operating Time: %.1f hours", acc.ActiveOperatingHours))
	lines = append(lines, fmt.Sprintf("  Silent/Gap Time: %.1f hours", acc.AllGapHours))
	lines = append(lines, fmt.Sprintf("    - Long gaps (>15 min): %.1f hours", acc.LongGapHours))
	lines = append(lines, fmt.Sprintf("    - Short gaps (<15 min): %.1f hours", acc.ShortGapHours))
	lines = append(lines, fmt.Sprintf("  Reconciliation: %.1f hours", acc.ActiveOperatingHours+acc.AllGapHours))
	if acc.ReconciliationOK {
		lines = append(lines, "  STATUS: Time accounting reconciled")
	} else {
		lines = append(lines, fmt.Sprintf("  WARNING: Time discrepancy: %.1f hours", acc.ReconciliationDiff))
	}
	lines = append(lines, "")
	return lines
}

func renderBandMode(b *analysis.BandModeBreakdown) []string {
	lines := []string{
		"",
		"BAND/MODE BREAKDOWN:",
		" Band  |   CW  |  SSB  |  Dig  | Total |  %",
		"-------|-------|-------|-------|-------|-----",
	}
	for _, band := range b.Bands {
		row := b.Counts[band]
		total := b.BandTotals[band]
		pct := 0
		if b.GrandTotal > 0 {
			pct = int(float64(total)/float64(b.GrandTotal)*100 + 0.5)
		}
		lines = append(lines, fmt.Sprintf(" %-5s | %5d | %5d | %5d | %5d | %3d",
			band, row[qso.DisplayCW], row[qso.DisplayPhone], row[qso.DisplayDig], total, pct))
	}
	lines = append(lines, "-------|-------|-------|-------|-------|-----")
	lines = append(lines, fmt.Sprintf(" Total | %5d | %5d | %5d | %5d | 100",
		b.ModeTotals[qso.DisplayCW], b.ModeTotals[qso.DisplayPhone], b.ModeTotals[qso.DisplayDig], b.GrandTotal))
	return lines
}

func renderSectionTable(res *analysis.Result) []string {
	s := res.Sections
	lines := []string{"", "Total Contacts by Section (sorted):"}
	lines = append(lines, sectionColumns(s.Tallies)...)
	worked := s.WorkedCount
	total := len(qso.ARRLSections)
	lines = append(lines, fmt.Sprintf("Unique Sections Worked: %d of %d (%.1f%%)",
		worked, total, float64(worked)/float64(total)*100))
	if len(s.Unmatched) > 0 {
		lines = append(lines, "")
		lines = append(lines, "WARNING: The following section values in the log do not match the official ARRL section list:")
		for _, sec := range s.Unmatched {
			lines = append(lines, fmt.Sprintf("  Unmatched section: '%s'", sec))
		}
		for _, r := range s.UnmatchedBy {
			timeOn := "UNKNOWN"
			if r.HasTime {
				timeOn = fmt.Sprintf("%06d", r.TimeOn)
			}
			lines = append(lines, fmt.Sprintf("    QSO: CALL=%s, SECT=%s, BAND=%s, MODE=%s, TIME_ON=%s, OPERATOR=%s, COMPUTER=%s",
				r.Call, r.Section, r.Band, r.Mode, timeOn, r.Operator, r.Station))
		}
	} else {
		lines = append(lines, "")
		lines = append(lines, "All section values in the log match the official ARRL section list.")
	}
	return lines
}

// sectionColumns lays the section table out three columns side by side.
func sectionColumns(tallies []analysis.Tally) []string {
	n := len(tallies)
	colLen := (n + 2) / 3
	cols := [3][]analysis.Tally{
		tallies[:min(colLen, n)],
		tallies[min(colLen, n):min(2*colLen, n)],
		tallies[min(2*colLen, n):],
	}

	lines := []string{
		" Section   Total   % | Section   Total   % | Section   Total   %",
		" -------   ----- --- | -------   ----- --- | -------   ----- ---",
	}
	for i := 0; i < colLen; i++ {
		parts := make([]string, 3)
		for c := 0; c < 3; c++ {
			if i < len(cols[c]) {
				t := cols[c][i]
				parts[c] = fmt.Sprintf(" %-9s %5d %3d", t.Key, t.Count, t.Percent)
			} else {
				parts[c] = ""
			}
		}
		lines = append(lines, fmt.Sprintf("%s |%s |%s", parts[0], parts[1], parts[2]))
	}
	return lines
}

func renderCountryTable(res *analysis.Result) []string {
	lines := []string{
		"",
		"Total Contacts by Country:",
		" Country                        Total      %",
		" -------                        -----    ---",
	}
	for _, t := range res.Countries {
		lines = append(lines, fmt.Sprintf(" %-28s %7d %6d", t.Key, t.Count, t.Percent))
	}
	lines = append(lines, fmt.Sprintf(" Total = %d", len(res.Countries)))
	lines = append(lines, "")
	return lines
}

func renderOperatorTable(res *analysis.Result) []string {
	lines := []string{
		"",
		"Total Contacts by Operator:",
		" Operator       Total     %",
		" --------       -----   ---",
	}
	totalContacts := 0
	for _, t := range res.Operators {
		lines = append(lines, fmt.Sprintf(" %-12s %7d %5d", t.Key, t.Count, t.Percent))
		totalContacts += t.Count
	}
	lines = append(lines, fmt.Sprintf(" Total = %d", totalContacts))
	lines = append(lines, "")
	return lines
}

func renderOperatorSessions(res *analysis.Result) []string {
	index := res.LogStatistics.OperatorSessions
	if len(index) == 0 {
		return nil
	}
	lines := []string{"", "OPERATOR SESSIONS:", sectionRule}
	for _, key := range analysis.SortedGroupKeys(index) {
		gs := index[key]
		lines = append(lines, fmt.Sprintf("Operator: %s @ Station: %s", gs.Operator, gs.Station))
		lines = append(lines, fmt.Sprintf("  Operating Time: %.1f hours (%d sessions, %d QSOs)",
			float64(gs.TotalMinutes)/60.0, gs.SessionCount, gs.QSOCount))
		lines = append(lines, fmt.Sprintf("  First QSO: %s", analysis.FormatTime(gs.FirstQSO)))
		lines = append(lines, fmt.Sprintf("  Last QSO: %s", analysis.FormatTime(gs.LastQSO)))
		if len(gs.Sessions) > 0 {
			lines = append(lines, "  Sessions:")
			for i, s := range gs.Sessions {
				lines = append(lines, fmt.Sprintf("    %d. %s - %s (%.1fh, %d QSOs)",
					i+1, analysis.FormatTime(s.StartTime), analysis.FormatTime(s.EndTime),
					float64(s.DurationMinutes)/60.0, s.QSOCount))
			}
		}
		lines = append(lines, "")
	}

	totalMinutes := 0
	totalSessions := 0
	flooredSessions := 0
	for _, gs := range index {
		totalMinutes += gs.TotalMinutes
		totalSessions += gs.SessionCount
		for _, s := range gs.Sessions {
			if s.DurationMinutes <= analysis.SessionFloorMinutes {
				flooredSessions++
			}
		}
	}
	lines = append(lines, "SUMMARY:")
	lines = append(lines, fmt.Sprintf("  Total Operator Time: %.1f hours across %d sessions",
		float64(totalMinutes)/60.0, totalSessions))
	if totalSessions > 0 && float64(flooredSessions) > float64(totalSessions)*0.3 {
		lines = append(lines, "")
		lines = append(lines, "MULTI-STATION OPERATION DETECTED:")
		lines = append(lines, fmt.Sprintf("  %d short sessions detected (likely single QSOs)", flooredSessions))
		lines = append(lines, "  This suggests a merged log from multiple logging computers.")
		lines = append(lines, "  Session times represent minimum estimates for multi-station operations.")
	}
	lines = append(lines, "")
	return lines
}

func renderOperatorStats(res *analysis.Result) []string {
	lines := []string{"", "OPERATOR STATISTICS:", sectionRule}
	operators := make([]string, 0, len(res.OperatorStats))
	for op := range res.OperatorStats {
		operators = append(operators, op)
	}
	sort.Strings(operators)
	for _, op := range operators {
		st := res.OperatorStats[op]
		contribution := 0.0
		if res.TotalQSOs > 0 {
			contribution = float64(st.QSOCount) / float64(res.TotalQSOs) * 100
		}
		lines = append(lines, fmt.Sprintf("Operator: %s", op))
		lines = append(lines, fmt.Sprintf("  QSO Count: %d (%.1f%% of total)", st.QSOCount, contribution))
		lines = append(lines, fmt.Sprintf("  Average Rate: %.1f QSOs/hour", st.AvgRatePerHour))
		lines = append(lines, fmt.Sprintf("  Peak Rate: %.0f QSOs/hour", st.PeakRatePerHour))
		lines = append(lines, fmt.Sprintf("  Run: %.1f%% | S&P: %.1f%% %s",
			st.RunPercentage, st.SPPercentage, confidenceLabel(st)))
		lines = append(lines, "")
	}
	lines = append(lines, fmt.Sprintf("Total number of operators: %d", len(res.OperatorStats)))
	return lines
}

func confidenceLabel(st *analysis.OperatorStats) string {
	switch {
	case st.MissingFreqCount == 0:
		return "(accurate - all QSOs have frequency data)"
	case st.MissingFreqCount == st.QSOCount:
		return "(unreliable - all QSOs missing frequency data)"
	default:
		pct := 100.0 * float64(st.MissingFreqCount) / float64(st.QSOCount)
		return fmt.Sprintf("(unreliable - %d QSOs missing frequency, %.1f%% of QSOs)", st.MissingFreqCount, pct)
	}
}

func renderStationGaps(res *analysis.Result) []string {
	gaps := res.LogStatistics.StationGaps
	found := false
	for _, g := range gaps {
		if len(g) > 0 {
			found = true
			break
		}
	}
	if !found {
		return []string{"", "SILENT PERIODS BY COMPUTER: None detected (no gaps > 15 min)"}
	}

	lines := []string{"", "SILENT PERIODS BY COMPUTER (>15 min):", sectionRule}
	stations := make([]string, 0, len(gaps))
	for station := range gaps {
		stations = append(stations, station)
	}
	sort.Strings(stations)
	for _, station := range stations {
		if len(gaps[station]) == 0 {
			continue
		}
		lines = append(lines, fmt.Sprintf("Computer/Station: %s", station))
		for i, g := range gaps[station] {
			lines = append(lines, fmt.Sprintf("  Gap %d: %d minutes (%s - %s)",
				i+1, g.DurationMin, analysis.FormatTime(g.Start), analysis.FormatTime(g.End)))
		}
		lines = append(lines, "")
	}
	return lines
}
