package analysis

import (
	"math"
	"sort"

	"contestlog/qso"
)

// DefaultSPThresholdMHz is the frequency jump between consecutive same-band
// QSOs that marks a Search-&-Pounce transition: 200 Hz.
const DefaultSPThresholdMHz = 0.0002

// Classification summarizes Run vs S&P labeling over a time-ordered record
// sequence. Counted excludes pairs on different bands and pairs where no
// frequency could be resolved on either side.
type Classification struct {
	SPTransitions int
	Counted       int
	SPPercentage  float64
}

// ClassifySequence labels each consecutive pair in an already time-ordered
// sequence. A transition is S&P when the resolved frequencies differ by more
// than thresholdMHz; otherwise it is Run. Zero counted transitions yield a
// 0.0 percentage by policy, never a division error.
func ClassifySequence(records []qso.Record, thresholdMHz float64) Classification {
	if thresholdMHz <= 0 {
		thresholdMHz = DefaultSPThresholdMHz
	}

	var c Classification
	for i := 1; i < len(records); i++ {
		prev, cur := records[i-1], records[i]
		if prev.Band != cur.Band {
			continue
		}
		prevFreq, prevOK := qso.EstimateFreq(prev)
		curFreq, curOK := qso.EstimateFreq(cur)
		if !prevOK || !curOK {
			continue
		}
		if math.Abs(curFreq-prevFreq) > thresholdMHz {
			c.SPTransitions++
		}
		c.Counted++
	}

	if c.Counted > 0 {
		c.SPPercentage = 100.0 * float64(c.SPTransitions) / float64(c.Counted)
	}
	return c
}

// ClassifyLog orders the timed records and classifies the whole log.
// Records without a timestamp are excluded from the ordering.
func ClassifyLog(records []qso.Record, thresholdMHz float64) Classification {
	return ClassifySequence(timeOrdered(records), thresholdMHz)
}

// timeOrdered filters out records missing a timestamp and returns the rest
// sorted ascending by time. The sort is stable so records logged in the same
// minute keep their wire order.
func timeOrdered(records []qso.Record) []qso.Record {
	timed := make([]qso.Record, 0, len(records))
	for _, r := range records {
		if r.HasTime {
			timed = append(timed, r)
		}
	}
	sort.SliceStable(timed, func(i, j int) bool { return timed[i].TimeOn < timed[j].TimeOn })
	return timed
}
