package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
)

// ResolveDay walks assignment -> template -> weekday segments for one
// employee-date. The two sentinel outcomes are part of the contract:
// ErrNoActiveAssignment when no validity window contains the date, and
// ErrNonWorkingDay when the template has no segments on that weekday.
func (s *scheduleServiceImpl) ResolveDay(ctx context.Context, employeeID string, date time.Time) (schedule.ResolvedDay, error) {
	assignment, err := s.assignmentRepo.GetActiveAssignment(ctx, employeeID, date)
	if err != nil {
		return schedule.ResolvedDay{}, err
	}

	segments, err := s.segmentRepo.GetForWeekday(ctx, assignment.ScheduleID, schedule.WeekdayIndex(date))
	if err != nil {
		return schedule.ResolvedDay{}, fmt.Errorf("failed to load segments: %w", err)
	}

	if len(segments) == 0 {
		return schedule.ResolvedDay{}, schedule.ErrNonWorkingDay
	}

	return schedule.ResolvedDay{
		ScheduleID: assignment.ScheduleID,
		Segments:   segments,
	}, nil
}
