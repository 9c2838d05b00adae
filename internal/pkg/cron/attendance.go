package cron

import (
	"context"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
)

// AttendanceJobs owns the scheduled reconciliation work: settling yesterday's
// provisional verdicts once devices have synced their backlog.
type AttendanceJobs struct {
	attendanceSvc attendance.AttendanceService
	location      *time.Location
}

func NewAttendanceJobs(attendanceSvc attendance.AttendanceService, location *time.Location) *AttendanceJobs {
	if location == nil {
		location = time.UTC
	}
	return &AttendanceJobs{
		attendanceSvc: attendanceSvc,
		location:      location,
	}
}

func (j *AttendanceJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("recompute_previous_day", 1*time.Hour, j.RecomputePreviousDay)
}

// RecomputePreviousDay settles yesterday's records for every active employee.
// The job ticks hourly but only acts in the first hour after local midnight,
// so in-progress verdicts from the evening before become final ones.
func (j *AttendanceJobs) RecomputePreviousDay(ctx context.Context) error {
	now := time.Now().In(j.location)
	if now.Hour() != 0 {
		return nil
	}

	yesterday := now.AddDate(0, 0, -1).Format("2006-01-02")
	slog.Info("Cron: recomputing previous day", "date", yesterday)

	resp, err := j.attendanceSvc.RecomputeRange(ctx, attendance.RecomputeRangeRequest{
		StartDate: yesterday,
		EndDate:   yesterday,
	})
	if err != nil {
		return err
	}

	slog.Info("Cron: previous day recomputed",
		"date", yesterday,
		"processed", resp.Processed,
		"skipped", resp.Skipped,
	)
	return nil
}
