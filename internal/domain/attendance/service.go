package attendance

import (
	"context"
	"time"
)

// AttendanceService derives daily verdicts from punches, schedule and the
// holiday/justification context.
type AttendanceService interface {
	// ResolveDay recomputes one employee-day and persists the result as a
	// full-replace upsert. An unknown employee yields (nil, nil) so batch
	// callers can skip silently.
	ResolveDay(ctx context.Context, employeeID string, date time.Time) (*DailyRecord, error)

	// RecomputeRange drives ResolveDay over a date interval, date-major
	// employee-minor, isolating per-pair failures.
	RecomputeRange(ctx context.Context, req RecomputeRangeRequest) (RecomputeRangeResponse, error)

	// GetDailyRecord reads the persisted record without recomputing.
	GetDailyRecord(ctx context.Context, employeeID string, date time.Time) (DailyRecordResponse, error)

	// ListRange reads the persisted records of one employee over a date
	// interval, oldest first, without recomputing.
	ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecordResponse, error)
}
