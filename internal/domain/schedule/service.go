package schedule

import (
	"context"
	"time"
)

// Resolver finds the segments an employee is expected to work on a given
// date. It is the leaf the reconciliation engine and the matrix report build
// on. Implementations signal ErrNoActiveAssignment and ErrNonWorkingDay.
type Resolver interface {
	ResolveDay(ctx context.Context, employeeID string, date time.Time) (ResolvedDay, error)
}

// ScheduleService defines template, segment, assignment and holiday
// management plus day resolution.
type ScheduleService interface {
	Resolver

	CreateTemplate(ctx context.Context, req CreateTemplateRequest) (TemplateResponse, error)
	GetTemplate(ctx context.Context, id string) (TemplateResponse, error)
	ListTemplates(ctx context.Context, activeOnly bool) ([]TemplateResponse, error)
	DeleteTemplate(ctx context.Context, id string) error

	AddSegments(ctx context.Context, req CreateSegmentsRequest) ([]SegmentResponse, error)
	DeleteSegment(ctx context.Context, id string) error

	AssignSchedule(ctx context.Context, req AssignScheduleRequest) (AssignmentResponse, error)
	ListAssignments(ctx context.Context, employeeID string) ([]AssignmentResponse, error)
	DeleteAssignment(ctx context.Context, id string) error

	CreateHoliday(ctx context.Context, req CreateHolidayRequest) (HolidayResponse, error)
	ListHolidays(ctx context.Context, year int) ([]HolidayResponse, error)
	DeleteHoliday(ctx context.Context, id string) error
}
