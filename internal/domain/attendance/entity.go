package attendance

import "time"

// Daily verdicts. Justification codes from the incidents service (VAC,
// L/S, ...) pass through as-is, so Verdict stays an open string set with
// these well-known values.
const (
	VerdictPresent       = "PRESENT"
	VerdictLate          = "LATE"
	VerdictAbsent        = "ABSENT"
	VerdictHoliday       = "HOLIDAY"
	VerdictNoSchedule    = "NO_SCHEDULE"
	VerdictNonWorkingDay = "NON_WORKING_DAY"
)

// DailyRecord is the derived attendance verdict of one employee-day. Each
// recompute replaces the row wholesale; it is a cache over punches and
// schedule, never the source of truth.
type DailyRecord struct {
	ID            string
	EmployeeID    string
	Date          time.Time
	ScheduleID    *string // schedule snapshot used for the computation
	ExpectedHours float64
	WorkedHours   float64
	Verdict       string
	Justified     bool
	FirstEntry    *time.Time
	LastExit      *time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time

	// DTO
	EmployeeName *string
}
