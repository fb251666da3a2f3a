package analysis

import (
	"math"

	"contestlog/qso"
)

// EstimatedFreqToleranceMHz is the proximity to a band center within which a
// logged frequency is presumed to be a defaulted estimate rather than a
// measurement. Heuristic: a real measurement sitting exactly on the band
// center is a false positive, preserved deliberately.
const EstimatedFreqToleranceMHz = 0.001

// QualityReport scores how much of the input carries real data and whether
// the S&P classification can be trusted.
type QualityReport struct {
	TotalQSOs            int
	MissingFrequency     int
	MissingBand          int
	MissingTime          int
	EstimatedFrequencies int
	FreqCoverage         float64 // percent of QSOs with a real measured frequency
	SPAnalysisReliable   bool
	FrequenciesEstimated bool // softer warning than the reliability verdict
}

// AnalyzeQuality counts missing and estimated fields across all records.
// An empty input yields an unreliable verdict by definition.
func AnalyzeQuality(records []qso.Record) QualityReport {
	q := QualityReport{TotalQSOs: len(records)}
	if len(records) == 0 {
		return q
	}

	measured := 0
	for _, r := range records {
		if r.Band == "" {
			q.MissingBand++
		}
		if !r.HasTime {
			q.MissingTime++
		}
		if !r.HasFreq {
			q.MissingFrequency++
			if _, ok := qso.BandCenter(r.Band); ok {
				q.EstimatedFrequencies++
			}
			continue
		}
		if center, ok := qso.BandCenter(r.Band); ok && math.Abs(r.Freq-center) < EstimatedFreqToleranceMHz {
			q.EstimatedFrequencies++
		} else {
			measured++
		}
	}

	total := float64(q.TotalQSOs)
	q.FreqCoverage = 100.0 * float64(measured) / total
	q.SPAnalysisReliable = q.MissingFrequency == 0 && float64(q.EstimatedFrequencies) < 0.9*total
	q.FrequenciesEstimated = float64(q.EstimatedFrequencies) > 0.5*total
	return q
}
