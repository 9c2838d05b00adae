package attendance

import (
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
)

// Matching windows around a segment, all relative to its scheduled start and
// end. Entries may arrive well before the shift; exits may run long after it.
const (
	entryWindowBefore = 120 * time.Minute
	entryWindowAfter  = 60 * time.Minute // on top of the tolerance
	exitWindowAfter   = 240 * time.Minute
	minShiftPresence  = 30 * time.Minute // earliest a punch can count as an exit
)

// dayMatch is the outcome of pairing one day's punches against its segments.
type dayMatch struct {
	WorkedHours        float64
	ExpectedHours      float64
	AnyLate            bool
	AttendanceOccurred bool
	FirstEntry         *time.Time
	LastExit           *time.Time
	LastSegmentEnd     time.Time
}

// matchDay pairs raw punch timestamps with schedule segments. Punches carry
// no direction we can trust, so entry/exit roles come from timing alone: for
// each segment in start order, the unused punch closest to the scheduled
// start becomes the entry, then the unused punch closest to the scheduled
// end (strictly after the entry) becomes the exit. A single shared used set
// keeps one punch from serving two segments of a split shift.
func matchDay(date time.Time, segments []schedule.Segment, punches []time.Time) dayMatch {
	var m dayMatch
	used := make(map[int]bool, len(punches))

	for _, seg := range segments {
		start := atClock(date, seg.StartTime)
		end := atClock(date, seg.EndTime)
		tolerance := time.Duration(seg.ToleranceMinutes) * time.Minute

		m.ExpectedHours += end.Sub(start).Hours()
		if end.After(m.LastSegmentEnd) {
			m.LastSegmentEnd = end
		}

		entryIdx := closestPunch(punches, used, start.Add(-entryWindowBefore), start.Add(tolerance+entryWindowAfter), start)
		if entryIdx < 0 {
			continue
		}
		used[entryIdx] = true
		entry := punches[entryIdx]

		m.AttendanceOccurred = true
		if m.FirstEntry == nil || entry.Before(*m.FirstEntry) {
			e := entry
			m.FirstEntry = &e
		}
		// Lateness is judged at minute granularity; seconds on the punch
		// never tip an on-time entry into late.
		if entry.Truncate(time.Minute).After(start.Add(tolerance)) {
			m.AnyLate = true
		}

		exitIdx := closestPunch(punches, used, laterOf(start.Add(minShiftPresence), entry.Add(time.Nanosecond)), end.Add(exitWindowAfter), end)
		if exitIdx < 0 {
			continue
		}
		used[exitIdx] = true
		exit := punches[exitIdx]

		m.WorkedHours += exit.Sub(entry).Hours()
		if m.LastExit == nil || exit.After(*m.LastExit) {
			x := exit
			m.LastExit = &x
		}
	}

	return m
}

// closestPunch returns the index of the unused punch inside [lo, hi] closest
// to target, or -1 when none qualifies.
func closestPunch(punches []time.Time, used map[int]bool, lo, hi, target time.Time) int {
	best := -1
	var bestDist time.Duration
	for i, p := range punches {
		if used[i] || p.Before(lo) || p.After(hi) {
			continue
		}
		dist := p.Sub(target)
		if dist < 0 {
			dist = -dist
		}
		if best < 0 || dist < bestDist {
			best = i
			bestDist = dist
		}
	}
	return best
}

// atClock anchors a time-of-day value onto a calendar date, keeping the
// date's location.
func atClock(date, clock time.Time) time.Time {
	return time.Date(date.Year(), date.Month(), date.Day(),
		clock.Hour(), clock.Minute(), clock.Second(), 0, date.Location())
}

func laterOf(a, b time.Time) time.Time {
	if a.After(b) {
		return a
	}
	return b
}
