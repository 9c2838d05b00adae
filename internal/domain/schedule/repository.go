package schedule

import (
	"context"
	"time"
)

type ScheduleTemplateRepository interface {
	Create(ctx context.Context, template ScheduleTemplate) (ScheduleTemplate, error)
	GetByID(ctx context.Context, id string) (ScheduleTemplate, error)
	List(ctx context.Context, activeOnly bool) ([]ScheduleTemplate, error)
	Delete(ctx context.Context, id string) error
}

type SegmentRepository interface {
	Create(ctx context.Context, segment Segment) (Segment, error)
	GetByScheduleID(ctx context.Context, scheduleID string) ([]Segment, error)

	// GetForWeekday returns the segments of one weekday ordered by start time.
	GetForWeekday(ctx context.Context, scheduleID string, weekday int) ([]Segment, error)
	Delete(ctx context.Context, id string) error
}

type ScheduleAssignmentRepository interface {
	Create(ctx context.Context, assignment ScheduleAssignment) (ScheduleAssignment, error)
	GetByEmployeeID(ctx context.Context, employeeID string) ([]ScheduleAssignment, error)

	// GetActiveAssignment returns the assignment whose validity window contains
	// date. When historical rows overlap, the latest valid_from wins.
	GetActiveAssignment(ctx context.Context, employeeID string, date time.Time) (ScheduleAssignment, error)

	// CountOverlapping reports how many existing assignments for the employee
	// intersect [validFrom, validTo]. A nil validTo means open-ended.
	CountOverlapping(ctx context.Context, employeeID string, validFrom time.Time, validTo *time.Time) (int64, error)
	Delete(ctx context.Context, id string) error
}

type HolidayRepository interface {
	Create(ctx context.Context, holiday Holiday) (Holiday, error)
	GetByDate(ctx context.Context, date time.Time) (Holiday, error)
	List(ctx context.Context, year int) ([]Holiday, error)
	Delete(ctx context.Context, id string) error
}
