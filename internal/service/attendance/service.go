package attendance

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/justification"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"golang.org/x/sync/errgroup"
)

// completionRatio is the share of the scheduled hours that counts the day as
// worked. Matched hours systematically undercount real presence: lateness
// inside the tolerance and early exits both clip the measured interval, so
// demanding the full total would mark ordinarily worked days absent.
const completionRatio = 0.5

// inProgressGrace is how long past the last scheduled end a day is still
// considered ongoing for provisional verdicts.
const inProgressGrace = 2 * time.Hour

type attendanceServiceImpl struct {
	recordRepo   attendance.DailyRecordRepository
	punchRepo    punch.PunchRepository
	employeeRepo employee.EmployeeRepository
	resolver     schedule.Resolver
	holidayRepo  schedule.HolidayRepository
	oracle       justification.Oracle
	logger       *slog.Logger
	workers      int

	now func() time.Time
}

func NewAttendanceService(
	recordRepo attendance.DailyRecordRepository,
	punchRepo punch.PunchRepository,
	employeeRepo employee.EmployeeRepository,
	resolver schedule.Resolver,
	holidayRepo schedule.HolidayRepository,
	oracle justification.Oracle,
	logger *slog.Logger,
	workers int,
) attendance.AttendanceService {
	if workers < 1 {
		workers = 1
	}
	return &attendanceServiceImpl{
		recordRepo:   recordRepo,
		punchRepo:    punchRepo,
		employeeRepo: employeeRepo,
		resolver:     resolver,
		holidayRepo:  holidayRepo,
		oracle:       oracle,
		logger:       logger,
		workers:      workers,
		now:          time.Now,
	}
}

// ResolveDay recomputes the verdict of one employee-day from scratch and
// persists it as a full-replace upsert. An unknown employee yields (nil, nil)
// so device-driven batches skip punches of deprovisioned users silently.
func (s *attendanceServiceImpl) ResolveDay(ctx context.Context, employeeID string, date time.Time) (*attendance.DailyRecord, error) {
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employee.ErrEmployeeNotFound) {
			return nil, nil
		}
		return nil, err
	}

	date = truncateToDay(date)

	record := attendance.DailyRecord{
		EmployeeID: emp.ID,
		Date:       date,
	}

	isHoliday := s.isHoliday(ctx, date)

	resolved, resolveErr := s.resolver.ResolveDay(ctx, emp.ID, date)
	switch {
	case resolveErr == nil:
		if err := s.resolveWorkingDay(ctx, emp, date, resolved, isHoliday, &record); err != nil {
			return nil, err
		}

	case errors.Is(resolveErr, schedule.ErrNoActiveAssignment):
		record.Verdict = attendance.VerdictNoSchedule
		if isHoliday {
			record.Verdict = attendance.VerdictHoliday
			record.Justified = true
		}

	case errors.Is(resolveErr, schedule.ErrNonWorkingDay):
		record.Verdict = attendance.VerdictNonWorkingDay
		if isHoliday {
			record.Verdict = attendance.VerdictHoliday
			record.Justified = true
		}

	default:
		return nil, resolveErr
	}

	saved, err := s.recordRepo.Upsert(ctx, record)
	if err != nil {
		return nil, err
	}
	return &saved, nil
}

// resolveWorkingDay applies the verdict priority for a day with scheduled
// segments. A worked day wins over everything, holidays included: someone
// who clocked their shift on a holiday was present, not on leave.
func (s *attendanceServiceImpl) resolveWorkingDay(
	ctx context.Context,
	emp employee.Employee,
	date time.Time,
	resolved schedule.ResolvedDay,
	isHoliday bool,
	record *attendance.DailyRecord,
) error {
	punches, err := s.punchRepo.ListDayTimestamps(ctx, emp.DeviceUserID, date)
	if err != nil {
		return err
	}

	m := matchDay(date, resolved.Segments, punches)

	record.ScheduleID = &resolved.ScheduleID
	record.ExpectedHours = m.ExpectedHours
	record.WorkedHours = m.WorkedHours
	record.FirstEntry = m.FirstEntry
	record.LastExit = m.LastExit

	if m.WorkedHours > 0 && m.WorkedHours >= m.ExpectedHours*completionRatio {
		record.Verdict = attendance.VerdictPresent
		if m.AnyLate {
			record.Verdict = attendance.VerdictLate
		}
		return nil
	}

	// The day may simply not be over yet. With at least one entry and the
	// last segment still within its grace window, report a provisional
	// verdict; the nightly recompute settles it.
	now := s.now()
	if sameDay(now, date) && now.Before(m.LastSegmentEnd.Add(inProgressGrace)) && m.AttendanceOccurred {
		record.Verdict = attendance.VerdictPresent
		if m.AnyLate {
			record.Verdict = attendance.VerdictLate
		}
		return nil
	}

	if isHoliday {
		record.Verdict = attendance.VerdictHoliday
		record.Justified = true
		return nil
	}

	code, found, err := s.oracle.ApprovedCode(ctx, emp.ID, date)
	if err != nil {
		// A broken incidents service must not block reconciliation. The day
		// stays unjustified until the next recompute.
		s.logger.Warn("justification lookup failed",
			slog.String("employee_id", emp.ID),
			slog.String("date", date.Format("2006-01-02")),
			slog.String("error", err.Error()),
		)
	} else if found {
		record.Verdict = code
		record.Justified = true
		return nil
	}

	record.Verdict = attendance.VerdictAbsent
	return nil
}

// RecomputeRange recomputes every employee-day pair in [start, end],
// date-major then employee-minor. Pairs run on a bounded worker pool; one
// failing pair is logged and skipped, never aborting the batch. This is safe
// because each pair writes only its own row.
func (s *attendanceServiceImpl) RecomputeRange(ctx context.Context, req attendance.RecomputeRangeRequest) (attendance.RecomputeRangeResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return attendance.RecomputeRangeResponse{}, err
	}

	start, _ := time.Parse("2006-01-02", req.StartDate)
	end, _ := time.Parse("2006-01-02", req.EndDate)

	var employeeIDs []string
	if req.EmployeeID != nil {
		employeeIDs = []string{*req.EmployeeID}
	} else {
		active, err := s.employeeRepo.ListActive(ctx)
		if err != nil {
			return attendance.RecomputeRangeResponse{}, err
		}
		for _, emp := range active {
			employeeIDs = append(employeeIDs, emp.ID)
		}
	}

	type pair struct {
		employeeID string
		date       time.Time
	}
	var pairs []pair
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		for _, id := range employeeIDs {
			pairs = append(pairs, pair{employeeID: id, date: date})
		}
	}

	results := make([]*attendance.DailyRecord, len(pairs))
	var skipped int
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)

	for i, p := range pairs {
		i, p := i, p
		g.Go(func() error {
			record, err := s.ResolveDay(gctx, p.employeeID, p.date)
			if err != nil {
				s.logger.Error("recompute failed for employee-day",
					slog.String("employee_id", p.employeeID),
					slog.String("date", p.date.Format("2006-01-02")),
					slog.String("error", err.Error()),
				)
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			if record == nil {
				mu.Lock()
				skipped++
				mu.Unlock()
				return nil
			}
			results[i] = record
			return nil
		})
	}

	// Workers never return errors, so Wait only reflects context cancellation.
	if err := g.Wait(); err != nil {
		return attendance.RecomputeRangeResponse{}, err
	}

	resp := attendance.RecomputeRangeResponse{Skipped: skipped}
	for _, record := range results {
		if record == nil {
			continue
		}
		resp.Processed++
		resp.Records = append(resp.Records, toDailyRecordResponse(*record))
	}
	return resp, nil
}

func (s *attendanceServiceImpl) GetDailyRecord(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecordResponse, error) {
	record, err := s.recordRepo.GetByEmployeeAndDate(ctx, employeeID, truncateToDay(date))
	if err != nil {
		return attendance.DailyRecordResponse{}, err
	}
	return toDailyRecordResponse(record), nil
}

func (s *attendanceServiceImpl) ListRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecordResponse, error) {
	start = truncateToDay(start)
	end = truncateToDay(end)
	if end.Before(start) {
		return nil, attendance.ErrInvalidRange
	}

	if _, err := s.employeeRepo.GetByID(ctx, employeeID); err != nil {
		return nil, err
	}

	records, err := s.recordRepo.ListByRange(ctx, employeeID, start, end)
	if err != nil {
		return nil, err
	}

	responses := make([]attendance.DailyRecordResponse, 0, len(records))
	for _, record := range records {
		responses = append(responses, toDailyRecordResponse(record))
	}
	return responses, nil
}

// isHoliday treats a failed lookup as a regular day. Losing a FER cell to a
// transient error is recoverable; blocking the whole recompute is not.
func (s *attendanceServiceImpl) isHoliday(ctx context.Context, date time.Time) bool {
	_, err := s.holidayRepo.GetByDate(ctx, date)
	if err == nil {
		return true
	}
	if !errors.Is(err, schedule.ErrHolidayNotFound) {
		s.logger.Warn("holiday lookup failed",
			slog.String("date", date.Format("2006-01-02")),
			slog.String("error", err.Error()),
		)
	}
	return false
}

func toDailyRecordResponse(record attendance.DailyRecord) attendance.DailyRecordResponse {
	resp := attendance.DailyRecordResponse{
		ID:            record.ID,
		EmployeeID:    record.EmployeeID,
		EmployeeName:  record.EmployeeName,
		Date:          record.Date.Format("2006-01-02"),
		ScheduleID:    record.ScheduleID,
		ExpectedHours: record.ExpectedHours,
		WorkedHours:   record.WorkedHours,
		Verdict:       record.Verdict,
		Justified:     record.Justified,
	}
	if record.FirstEntry != nil {
		v := record.FirstEntry.Format(time.RFC3339)
		resp.FirstEntry = &v
	}
	if record.LastExit != nil {
		v := record.LastExit.Format(time.RFC3339)
		resp.LastExit = &v
	}
	return resp
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.Month() == b.Month() && a.Day() == b.Day()
}
