package report

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
)

type reportServiceImpl struct {
	recordRepo    attendance.DailyRecordRepository
	employeeRepo  employee.EmployeeRepository
	attendanceSvc attendance.AttendanceService
	resolver      schedule.Resolver
	logger        *slog.Logger

	now func() time.Time
}

func NewReportService(
	recordRepo attendance.DailyRecordRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceSvc attendance.AttendanceService,
	resolver schedule.Resolver,
	logger *slog.Logger,
) report.ReportService {
	return &reportServiceImpl{
		recordRepo:    recordRepo,
		employeeRepo:  employeeRepo,
		attendanceSvc: attendanceSvc,
		resolver:      resolver,
		logger:        logger,
		now:           time.Now,
	}
}

// MonthlyMatrix builds the employees x days attendance grid for one month.
// Cells come from persisted daily records; a missing or stale cell is
// recomputed on the spot, one cell at a time, so a single bad employee-day
// never takes the whole report down.
func (s *reportServiceImpl) MonthlyMatrix(ctx context.Context, req report.MatrixRequest) (report.MatrixReport, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return report.MatrixReport{}, err
	}

	employees, err := s.resolveEmployees(ctx, req.EmployeeIDs)
	if err != nil {
		return report.MatrixReport{}, err
	}
	if len(employees) == 0 {
		return report.MatrixReport{}, report.ErrNoEmployees
	}

	month := time.Month(req.Month)
	dayCount := daysInMonth(req.Year, month)
	today := s.today()

	columns := make([]report.DayColumn, 0, dayCount)
	for day := 1; day <= dayCount; day++ {
		date := time.Date(req.Year, month, day, 0, 0, 0, 0, time.UTC)
		weekday := schedule.WeekdayIndex(date)
		columns = append(columns, report.DayColumn{
			Day:            day,
			WeekdayInitial: schedule.WeekdayInitials[weekday],
			IsWeekend:      weekday >= 5,
		})
	}

	ids := make([]string, 0, len(employees))
	for _, emp := range employees {
		ids = append(ids, emp.ID)
	}
	records, err := s.recordRepo.ListByMonth(ctx, req.Year, month, ids)
	if err != nil {
		return report.MatrixReport{}, err
	}
	indexed := make(map[string]attendance.DailyRecord, len(records))
	for _, record := range records {
		indexed[cellKey(record.EmployeeID, record.Date.Day())] = record
	}

	rows := make([]report.MatrixRow, 0, len(employees))
	for _, emp := range employees {
		row := report.MatrixRow{
			EmployeeID:   emp.ID,
			DeviceUserID: emp.DeviceUserID,
			FullName:     emp.FullName,
			Department:   emp.Department,
			DayCodes:     make([]string, 0, dayCount),
		}

		for day := 1; day <= dayCount; day++ {
			date := time.Date(req.Year, month, day, 0, 0, 0, 0, time.UTC)

			// Future days stay empty; they are never computed ahead of time.
			if date.After(today) {
				row.DayCodes = append(row.DayCodes, "")
				continue
			}

			code := s.cellCode(ctx, emp, date, indexed)
			row.DayCodes = append(row.DayCodes, code)

			if report.IsComputable(code) {
				row.Summary.WorkedDays++
			}
			if code == "T" {
				row.Summary.Lates++
			}
			if code == "FAL" {
				row.Summary.Absences++
			}
			if report.IsLeave(code) {
				row.Summary.Leaves++
			}
		}

		rows = append(rows, row)
	}

	return report.MatrixReport{
		Meta: report.MatrixMeta{
			Month:    req.Month,
			Year:     req.Year,
			DayCount: dayCount,
			Area:     req.Area,
		},
		DayColumns: columns,
		Rows:       rows,
	}, nil
}

// cellCode resolves one employee-day cell. NO_SCHEDULE records are stale
// placeholders, usually left behind before the employee's assignment was
// configured, so they get one recompute chance like missing cells do.
func (s *reportServiceImpl) cellCode(ctx context.Context, emp employee.Employee, date time.Time, indexed map[string]attendance.DailyRecord) string {
	record, ok := indexed[cellKey(emp.ID, date.Day())]
	if ok && record.Verdict != attendance.VerdictNoSchedule {
		return displayCell(record.Verdict, date)
	}

	computed, err := s.attendanceSvc.ResolveDay(ctx, emp.ID, date)
	if err != nil {
		s.logger.Warn("matrix cell recompute failed",
			slog.String("employee_id", emp.ID),
			slog.String("date", date.Format("2006-01-02")),
			slog.String("error", err.Error()),
		)
	} else if computed != nil && computed.Verdict != attendance.VerdictNoSchedule {
		return displayCell(computed.Verdict, date)
	}

	return s.fallbackCode(ctx, emp.ID, date)
}

// fallbackCode fills cells that have no computable record at all: an absence
// mark on a scheduled working day, the weekday initial otherwise.
func (s *reportServiceImpl) fallbackCode(ctx context.Context, employeeID string, date time.Time) string {
	_, err := s.resolver.ResolveDay(ctx, employeeID, date)
	if err == nil {
		return "FAL"
	}
	return schedule.WeekdayInitials[schedule.WeekdayIndex(date)]
}

func (s *reportServiceImpl) resolveEmployees(ctx context.Context, employeeIDs []string) ([]employee.Employee, error) {
	if len(employeeIDs) == 0 {
		return s.employeeRepo.ListActive(ctx)
	}

	employees := make([]employee.Employee, 0, len(employeeIDs))
	for _, id := range employeeIDs {
		emp, err := s.employeeRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				s.logger.Warn("matrix request references unknown employee",
					slog.String("employee_id", id),
				)
				continue
			}
			return nil, err
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// displayCell maps a verdict to its short code. Non-working days render as
// the weekday initial rather than a verdict code.
func displayCell(verdict string, date time.Time) string {
	if verdict == attendance.VerdictNonWorkingDay {
		return schedule.WeekdayInitials[schedule.WeekdayIndex(date)]
	}
	return report.DisplayCode(verdict)
}

func (s *reportServiceImpl) today() time.Time {
	now := s.now()
	return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
}

func daysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func cellKey(employeeID string, day int) string {
	return fmt.Sprintf("%s|%d", employeeID, day)
}
