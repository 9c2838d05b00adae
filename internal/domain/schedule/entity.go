package schedule

import "time"

type ScheduleTemplate struct {
	ID          string
	Name        string
	Description *string
	Active      bool
	CreatedAt   time.Time
	UpdatedAt   time.Time

	Segments []Segment
}

// Segment is one scheduled work interval inside a weekday of a template,
// e.g. morning 08:00-13:00 and afternoon 14:00-18:00 of a split shift.
type Segment struct {
	ID               string
	ScheduleID       string
	Weekday          int       // 0=Monday ... 6=Sunday
	StartTime        time.Time // time of day; the date part is ignored
	EndTime          time.Time
	ToleranceMinutes int
	SequenceOrder    int
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ScheduleAssignment binds an employee to a template over a date range.
// A nil ValidTo means the assignment is open-ended.
type ScheduleAssignment struct {
	ID         string
	EmployeeID string
	ScheduleID string
	ValidFrom  time.Time
	ValidTo    *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

type Holiday struct {
	ID        string
	Date      time.Time
	Name      string
	CreatedAt time.Time
}

// ResolvedDay is the weekday view of the active assignment for one
// employee-date: the snapshot schedule ID plus its ordered segments.
type ResolvedDay struct {
	ScheduleID string
	Segments   []Segment
}

// WeekdayIndex maps a date to the 0=Monday ... 6=Sunday convention used by
// segments and the matrix report.
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// Spanish single-letter day names, Monday first. The matrix report uses these
// as column headers and as the non-working-day cell marker.
var WeekdayInitials = [7]string{"L", "M", "M", "J", "V", "S", "D"}
