package attendance

import (
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func splitShift() []schedule.Segment {
	return []schedule.Segment{
		{Weekday: 0, StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 10, SequenceOrder: 1},
		{Weekday: 0, StartTime: clockOf(14, 0), EndTime: clockOf(18, 0), ToleranceMinutes: 10, SequenceOrder: 2},
	}
}

func clockOf(hour, minute int) time.Time {
	return time.Date(0, 1, 1, hour, minute, 0, 0, time.UTC)
}

func dayOf(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func at(day time.Time, hour, minute int) time.Time {
	return time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, day.Location())
}

func TestMatchDayFullSplitShift(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	punches := []time.Time{
		at(day, 7, 55),
		at(day, 13, 2),
		at(day, 13, 56),
		at(day, 18, 4),
	}

	m := matchDay(day, splitShift(), punches)

	assert.Equal(t, 9.0, m.ExpectedHours)
	assert.InDelta(t, 9.25, m.WorkedHours, 0.01) // 5h07 + 4h08
	assert.False(t, m.AnyLate)
	assert.True(t, m.AttendanceOccurred)
	require.NotNil(t, m.FirstEntry)
	require.NotNil(t, m.LastExit)
	assert.Equal(t, at(day, 7, 55), *m.FirstEntry)
	assert.Equal(t, at(day, 18, 4), *m.LastExit)
	assert.Equal(t, at(day, 18, 0), m.LastSegmentEnd)
}

func TestMatchDayNearCompleteSplitShift(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{Weekday: 0, StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 15, SequenceOrder: 1},
		{Weekday: 0, StartTime: clockOf(14, 0), EndTime: clockOf(18, 0), ToleranceMinutes: 15, SequenceOrder: 2},
	}
	// Entries inside the tolerance clip the measured interval: the matched
	// total lands short of the scheduled 9h even though the day was worked.
	punches := []time.Time{
		at(day, 8, 14),
		at(day, 13, 0),
		at(day, 14, 10),
		at(day, 18, 0),
	}

	m := matchDay(day, segments, punches)

	assert.Equal(t, 9.0, m.ExpectedHours)
	assert.InDelta(t, 8.6, m.WorkedHours, 0.01) // 4h46 + 3h50
	assert.False(t, m.AnyLate)
	assert.True(t, m.AttendanceOccurred)
}

func TestMatchDayLatenessIgnoresSeconds(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 15, SequenceOrder: 1},
	}
	// 08:15:30 is still minute 15, the last on-time minute.
	entry := time.Date(day.Year(), day.Month(), day.Day(), 8, 15, 30, 0, day.Location())

	m := matchDay(day, segments, []time.Time{entry, at(day, 13, 0)})
	assert.False(t, m.AnyLate)

	m = matchDay(day, segments, []time.Time{at(day, 8, 16), at(day, 13, 0)})
	assert.True(t, m.AnyLate)
}

func TestMatchDayLateEntry(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	punches := []time.Time{
		at(day, 8, 25), // past the 10 minute tolerance
		at(day, 13, 0),
		at(day, 14, 0),
		at(day, 18, 0),
	}

	m := matchDay(day, splitShift(), punches)

	assert.True(t, m.AnyLate)
	assert.True(t, m.AttendanceOccurred)
}

func TestMatchDayEntryWithinToleranceIsNotLate(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	punches := []time.Time{at(day, 8, 9), at(day, 13, 0)}

	m := matchDay(day, splitShift(), punches)

	assert.False(t, m.AnyLate)
}

func TestMatchDayNoPunches(t *testing.T) {
	day := dayOf(2026, time.March, 2)

	m := matchDay(day, splitShift(), nil)

	assert.Equal(t, 9.0, m.ExpectedHours)
	assert.Zero(t, m.WorkedHours)
	assert.False(t, m.AttendanceOccurred)
	assert.Nil(t, m.FirstEntry)
	assert.Nil(t, m.LastExit)
}

func TestMatchDayEntryWithoutExit(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	punches := []time.Time{at(day, 7, 58)}

	m := matchDay(day, splitShift(), punches)

	assert.True(t, m.AttendanceOccurred)
	assert.Zero(t, m.WorkedHours)
	require.NotNil(t, m.FirstEntry)
	assert.Nil(t, m.LastExit)
}

func TestMatchDayPunchServesOneSegmentOnly(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	// 13:30 sits in the exit window of segment one and the entry window of
	// segment two; once consumed as an exit it must not double as an entry.
	punches := []time.Time{
		at(day, 8, 0),
		at(day, 13, 30),
	}

	m := matchDay(day, splitShift(), punches)

	assert.InDelta(t, 5.5, m.WorkedHours, 0.01)
	require.NotNil(t, m.LastExit)
	assert.Equal(t, at(day, 13, 30), *m.LastExit)
}

func TestMatchDayPicksClosestEntryToStart(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 10, SequenceOrder: 1},
	}
	punches := []time.Time{
		at(day, 6, 30), // inside the window but farther from start
		at(day, 7, 50),
		at(day, 13, 1),
	}

	m := matchDay(day, segments, punches)

	require.NotNil(t, m.FirstEntry)
	assert.Equal(t, at(day, 7, 50), *m.FirstEntry)
	assert.InDelta(t, 5.18, m.WorkedHours, 0.01)
}

func TestMatchDayExitMustFollowEntry(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{StartTime: clockOf(8, 0), EndTime: clockOf(9, 0), ToleranceMinutes: 10, SequenceOrder: 1},
	}
	// Only one punch near the end of the tiny shift. It becomes the entry;
	// no punch after it remains for the exit.
	punches := []time.Time{at(day, 8, 50)}

	m := matchDay(day, segments, punches)

	assert.True(t, m.AttendanceOccurred)
	assert.Zero(t, m.WorkedHours)
}

func TestMatchDayExitBeforeMinimumPresenceIgnored(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 10, SequenceOrder: 1},
	}
	// A second punch ten minutes in is too early to be an exit.
	punches := []time.Time{at(day, 8, 0), at(day, 8, 10)}

	m := matchDay(day, segments, punches)

	assert.True(t, m.AttendanceOccurred)
	assert.Zero(t, m.WorkedHours)
	assert.Nil(t, m.LastExit)
}

func TestMatchDayEntryWindowBounds(t *testing.T) {
	day := dayOf(2026, time.March, 2)
	segments := []schedule.Segment{
		{StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 10, SequenceOrder: 1},
	}

	t.Run("two hours early still matches", func(t *testing.T) {
		m := matchDay(day, segments, []time.Time{at(day, 6, 0)})
		assert.True(t, m.AttendanceOccurred)
	})

	t.Run("before the window never matches", func(t *testing.T) {
		m := matchDay(day, segments, []time.Time{at(day, 5, 59)})
		assert.False(t, m.AttendanceOccurred)
	})

	t.Run("tolerance plus an hour is the upper bound", func(t *testing.T) {
		m := matchDay(day, segments, []time.Time{at(day, 9, 10)})
		assert.True(t, m.AttendanceOccurred)
		assert.True(t, m.AnyLate)

		m = matchDay(day, segments, []time.Time{at(day, 9, 11)})
		assert.False(t, m.AttendanceOccurred)
	})
}
