package analysis

import (
	"sort"

	"contestlog/qso"
)

const (
	// DefaultGapThresholdMinutes splits a session when the silence between
	// consecutive QSOs exceeds it. Policy constant, configurable per run.
	DefaultGapThresholdMinutes = 15

	// SessionFloorMinutes is assigned to sessions whose raw duration is zero
	// (single-QSO sessions): the realistic minimum for a QSO plus logging.
	SessionFloorMinutes = 2
)

// Session is one contiguous span of activity for one operator at one
// station. Never mutated after it is emitted, never shared across groups.
type Session struct {
	StartTime       int // HHMMSS of the first QSO in the session
	EndTime         int // HHMMSS of the last QSO in the session
	DurationMinutes int
	QSOCount        int
}

// GroupKey identifies an (operator, station) pairing. A struct key avoids
// the collision risk of concatenated strings when a name contains "@".
type GroupKey struct {
	Operator string
	Station  string
}

// String renders the conventional operator@station label for reports.
func (k GroupKey) String() string {
	return k.Operator + "@" + k.Station
}

// GroupSessions holds the ordered session list for one (operator, station)
// identity. Built once per analysis run, read-only afterward.
type GroupSessions struct {
	Operator     string
	Station      string
	Sessions     []Session
	FirstQSO     int
	LastQSO      int
	TotalMinutes int
	SessionCount int
	QSOCount     int
}

// BuildSessions groups timed records by (operator, station) and splits each
// group into sessions wherever the gap between consecutive QSOs exceeds the
// threshold. Records without a timestamp never enter a session. The final
// open session is always emitted; a single-record group yields one session
// raised to the duration floor.
func BuildSessions(records []qso.Record, gapThresholdMinutes int) map[GroupKey]*GroupSessions {
	if gapThresholdMinutes <= 0 {
		gapThresholdMinutes = DefaultGapThresholdMinutes
	}

	grouped := make(map[GroupKey][]qso.Record)
	for _, r := range timeOrdered(records) {
		key := GroupKey{Operator: r.Operator, Station: r.Station}
		grouped[key] = append(grouped[key], r)
	}

	out := make(map[GroupKey]*GroupSessions, len(grouped))
	for key, group := range grouped {
		gs := &GroupSessions{
			Operator: key.Operator,
			Station:  key.Station,
			FirstQSO: group[0].TimeOn,
			LastQSO:  group[len(group)-1].TimeOn,
			QSOCount: len(group),
		}

		sessionStart := group[0].TimeOn
		sessionEnd := group[0].TimeOn
		sessionQSOs := 1

		for i := 1; i < len(group); i++ {
			gap, err := GapMinutes(group[i-1].TimeOn, group[i].TimeOn)
			if err != nil {
				// Timestamps were validated on the way in; skip defensively.
				continue
			}
			if gap > gapThresholdMinutes {
				gs.emit(sessionStart, sessionEnd, sessionQSOs)
				sessionStart = group[i].TimeOn
				sessionEnd = group[i].TimeOn
				sessionQSOs = 1
				continue
			}
			sessionEnd = group[i].TimeOn
			sessionQSOs++
		}
		gs.emit(sessionStart, sessionEnd, sessionQSOs)

		out[key] = gs
	}
	return out
}

// emit closes the current session, applying the single-QSO duration floor.
func (gs *GroupSessions) emit(start, end, qsoCount int) {
	duration, err := GapMinutes(start, end)
	if err != nil {
		duration = 0
	}
	if duration == 0 {
		duration = SessionFloorMinutes
	}
	gs.Sessions = append(gs.Sessions, Session{
		StartTime:       start,
		EndTime:         end,
		DurationMinutes: duration,
		QSOCount:        qsoCount,
	})
	gs.TotalMinutes += duration
	gs.SessionCount++
}

// SortedGroupKeys returns the group keys ordered by operator then station,
// for deterministic report output. The session index itself is a mapping
// and carries no inter-group order.
func SortedGroupKeys(index map[GroupKey]*GroupSessions) []GroupKey {
	keys := make([]GroupKey, 0, len(index))
	for k := range index {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Operator != keys[j].Operator {
			return keys[i].Operator < keys[j].Operator
		}
		return keys[i].Station < keys[j].Station
	})
	return keys
}
