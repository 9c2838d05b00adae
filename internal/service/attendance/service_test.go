package attendance

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== FAKES ====================

type fakeRecordRepo struct {
	mu      sync.Mutex
	records map[string]attendance.DailyRecord // key employeeID|date
	upserts int
}

func recordKey(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeRecordRepo) Upsert(_ context.Context, record attendance.DailyRecord) (attendance.DailyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	key := recordKey(record.EmployeeID, record.Date)
	if existing, ok := f.records[key]; ok {
		record.ID = existing.ID
	} else if record.ID == "" {
		record.ID = "rec-" + key
	}
	f.records[key] = record
	f.upserts++
	return record, nil
}

func (f *fakeRecordRepo) GetByEmployeeAndDate(_ context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	record, ok := f.records[recordKey(employeeID, date)]
	if !ok {
		return attendance.DailyRecord{}, attendance.ErrRecordNotFound
	}
	return record, nil
}

func (f *fakeRecordRepo) ListByMonth(_ context.Context, year int, month time.Month, employeeIDs []string) ([]attendance.DailyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.DailyRecord
	for _, record := range f.records {
		if record.Date.Year() != year || record.Date.Month() != month {
			continue
		}
		if len(employeeIDs) > 0 && !containsString(employeeIDs, record.EmployeeID) {
			continue
		}
		out = append(out, record)
	}
	return out, nil
}

func (f *fakeRecordRepo) ListByRange(_ context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []attendance.DailyRecord
	for _, record := range f.records {
		if record.EmployeeID != employeeID || record.Date.Before(start) || record.Date.After(end) {
			continue
		}
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

func containsString(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

type fakePunchRepo struct {
	// key deviceUserID|date
	timestamps map[string][]time.Time
}

func (f *fakePunchRepo) BulkInsert(_ context.Context, _ []punch.PunchEvent) (int, error) {
	return 0, nil
}

func (f *fakePunchRepo) ListDayTimestamps(_ context.Context, deviceUserID string, date time.Time) ([]time.Time, error) {
	return f.timestamps[deviceUserID+"|"+date.Format("2006-01-02")], nil
}

func (f *fakePunchRepo) List(_ context.Context, _ punch.PunchFilter) ([]punch.PunchEvent, int64, error) {
	return nil, 0, nil
}

func (f *fakePunchRepo) add(deviceUserID string, ts ...time.Time) {
	for _, t := range ts {
		key := deviceUserID + "|" + t.Format("2006-01-02")
		f.timestamps[key] = append(f.timestamps[key], t)
	}
}

type fakeEmployeeRepo struct {
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) Create(_ context.Context, e employee.Employee) (employee.Employee, error) {
	f.employees[e.ID] = e
	return e, nil
}

func (f *fakeEmployeeRepo) GetByID(_ context.Context, id string) (employee.Employee, error) {
	e, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

func (f *fakeEmployeeRepo) GetByDeviceUserID(_ context.Context, deviceUserID string) (employee.Employee, error) {
	for _, e := range f.employees {
		if e.DeviceUserID == deviceUserID {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f *fakeEmployeeRepo) List(_ context.Context, _ employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	return nil, 0, nil
}

func (f *fakeEmployeeRepo) ListActive(_ context.Context) ([]employee.Employee, error) {
	var out []employee.Employee
	for _, e := range f.employees {
		if e.Active {
			out = append(out, e)
		}
	}
	return out, nil
}

type fakeResolver struct {
	// days maps employeeID|date to segments; an absent key means no active
	// assignment, an empty slice means a non-working day.
	days map[string][]schedule.Segment
	errs map[string]error
}

func (f *fakeResolver) ResolveDay(_ context.Context, employeeID string, date time.Time) (schedule.ResolvedDay, error) {
	key := employeeID + "|" + date.Format("2006-01-02")
	if err, ok := f.errs[key]; ok {
		return schedule.ResolvedDay{}, err
	}
	segments, ok := f.days[key]
	if !ok {
		return schedule.ResolvedDay{}, schedule.ErrNoActiveAssignment
	}
	if len(segments) == 0 {
		return schedule.ResolvedDay{}, schedule.ErrNonWorkingDay
	}
	return schedule.ResolvedDay{ScheduleID: "tpl-test", Segments: segments}, nil
}

type fakeHolidayRepo struct {
	dates map[string]schedule.Holiday
}

func (f *fakeHolidayRepo) Create(_ context.Context, h schedule.Holiday) (schedule.Holiday, error) {
	f.dates[h.Date.Format("2006-01-02")] = h
	return h, nil
}

func (f *fakeHolidayRepo) GetByDate(_ context.Context, date time.Time) (schedule.Holiday, error) {
	h, ok := f.dates[date.Format("2006-01-02")]
	if !ok {
		return schedule.Holiday{}, schedule.ErrHolidayNotFound
	}
	return h, nil
}

func (f *fakeHolidayRepo) List(_ context.Context, _ int) ([]schedule.Holiday, error) {
	return nil, nil
}

func (f *fakeHolidayRepo) Delete(_ context.Context, _ string) error { return nil }

type fakeOracle struct {
	codes map[string]string // employeeID|date -> code
	err   error
	calls int
}

func (f *fakeOracle) ApprovedCode(_ context.Context, employeeID string, date time.Time) (string, bool, error) {
	f.calls++
	if f.err != nil {
		return "", false, f.err
	}
	code, ok := f.codes[employeeID+"|"+date.Format("2006-01-02")]
	return code, ok, nil
}

// ==================== FIXTURE ====================

type engineFixture struct {
	svc       attendance.AttendanceService
	impl      *attendanceServiceImpl
	records   *fakeRecordRepo
	punches   *fakePunchRepo
	employees *fakeEmployeeRepo
	resolver  *fakeResolver
	holidays  *fakeHolidayRepo
	oracle    *fakeOracle
}

func newEngineFixture(t *testing.T) *engineFixture {
	t.Helper()

	f := &engineFixture{
		records:   &fakeRecordRepo{records: map[string]attendance.DailyRecord{}},
		punches:   &fakePunchRepo{timestamps: map[string][]time.Time{}},
		employees: &fakeEmployeeRepo{employees: map[string]employee.Employee{}},
		resolver:  &fakeResolver{days: map[string][]schedule.Segment{}, errs: map[string]error{}},
		holidays:  &fakeHolidayRepo{dates: map[string]schedule.Holiday{}},
		oracle:    &fakeOracle{codes: map[string]string{}},
	}

	f.employees.employees["emp-1"] = employee.Employee{
		ID: "emp-1", DeviceUserID: "101", FullName: "Ana Quispe", Active: true,
	}

	f.svc = NewAttendanceService(
		f.records, f.punches, f.employees, f.resolver, f.holidays, f.oracle,
		slog.New(slog.NewTextHandler(io.Discard, nil)), 4,
	)
	f.impl = f.svc.(*attendanceServiceImpl)

	return f
}

func (f *engineFixture) scheduleSplitShift(employeeID string, dates ...time.Time) {
	for _, d := range dates {
		f.resolver.days[employeeID+"|"+d.Format("2006-01-02")] = splitShift()
	}
}

// ==================== RESOLVE DAY ====================

func TestResolveDayVerdicts(t *testing.T) {
	ctx := context.Background()
	day := dayOf(2026, time.March, 2)

	t.Run("full day is present", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 7, 55), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		require.NotNil(t, record)
		assert.Equal(t, attendance.VerdictPresent, record.Verdict)
		assert.False(t, record.Justified)
		assert.Equal(t, 9.0, record.ExpectedHours)
		require.NotNil(t, record.ScheduleID)
		assert.Equal(t, "tpl-test", *record.ScheduleID)
	})

	t.Run("tolerated entries and a short interval still count as present", func(t *testing.T) {
		f := newEngineFixture(t)
		f.resolver.days["emp-1|"+day.Format("2006-01-02")] = []schedule.Segment{
			{Weekday: 0, StartTime: clockOf(8, 0), EndTime: clockOf(13, 0), ToleranceMinutes: 15, SequenceOrder: 1},
			{Weekday: 0, StartTime: clockOf(14, 0), EndTime: clockOf(18, 0), ToleranceMinutes: 15, SequenceOrder: 2},
		}
		f.punches.add("101", at(day, 8, 14), at(day, 13, 0), at(day, 14, 10), at(day, 18, 0))

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictPresent, record.Verdict)
		assert.InDelta(t, 8.6, record.WorkedHours, 0.01)
	})

	t.Run("late entry is late", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 8, 30), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictLate, record.Verdict)
	})

	t.Run("no punches on a past working day is absent", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictAbsent, record.Verdict)
		assert.False(t, record.Justified)
		assert.Equal(t, 1, f.oracle.calls)
	})

	t.Run("entry without exit on a past day is absent", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 7, 58))

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictAbsent, record.Verdict)
		require.NotNil(t, record.FirstEntry)
	})

	t.Run("holiday excuses the incomplete day", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.holidays.dates[day.Format("2006-01-02")] = schedule.Holiday{Date: day}

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictHoliday, record.Verdict)
		assert.True(t, record.Justified)
		assert.Zero(t, f.oracle.calls)
	})

	t.Run("a fully worked holiday is still present", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.holidays.dates[day.Format("2006-01-02")] = schedule.Holiday{Date: day}
		f.punches.add("101", at(day, 7, 55), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictPresent, record.Verdict)
	})

	t.Run("approved justification passes its code through", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.oracle.codes["emp-1|"+day.Format("2006-01-02")] = "VAC"

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, "VAC", record.Verdict)
		assert.True(t, record.Justified)
	})

	t.Run("oracle failure degrades to absent", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.oracle.err = errors.New("incidents service unreachable")

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictAbsent, record.Verdict)
	})

	t.Run("no assignment yields no schedule", func(t *testing.T) {
		f := newEngineFixture(t)

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictNoSchedule, record.Verdict)
		assert.Nil(t, record.ScheduleID)
	})

	t.Run("holiday wins over missing assignment", func(t *testing.T) {
		f := newEngineFixture(t)
		f.holidays.dates[day.Format("2006-01-02")] = schedule.Holiday{Date: day}

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictHoliday, record.Verdict)
	})

	t.Run("weekday without segments is a non working day", func(t *testing.T) {
		f := newEngineFixture(t)
		f.resolver.days["emp-1|"+day.Format("2006-01-02")] = []schedule.Segment{}

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictNonWorkingDay, record.Verdict)
	})

	t.Run("unknown employee is skipped silently", func(t *testing.T) {
		f := newEngineFixture(t)

		record, err := f.svc.ResolveDay(ctx, "emp-ghost", day)
		require.NoError(t, err)
		assert.Nil(t, record)
		assert.Zero(t, f.records.upserts)
	})
}

func TestResolveDayInProgress(t *testing.T) {
	ctx := context.Background()
	day := dayOf(2026, time.March, 2)

	t.Run("ongoing day with an entry is provisionally present", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 7, 58))
		f.impl.now = func() time.Time { return at(day, 11, 0) }

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictPresent, record.Verdict)
	})

	t.Run("ongoing day late entry is provisionally late", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 8, 30))
		f.impl.now = func() time.Time { return at(day, 11, 0) }

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictLate, record.Verdict)
	})

	t.Run("ongoing day without entries stays absent", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.impl.now = func() time.Time { return at(day, 11, 0) }

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictAbsent, record.Verdict)
	})

	t.Run("grace window closes two hours after the last segment", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", day)
		f.punches.add("101", at(day, 7, 58))
		f.impl.now = func() time.Time { return at(day, 20, 1) } // 18:00 + 2h + 1m

		record, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
		assert.Equal(t, attendance.VerdictAbsent, record.Verdict)
	})
}

func TestResolveDayIdempotent(t *testing.T) {
	ctx := context.Background()
	day := dayOf(2026, time.March, 2)

	f := newEngineFixture(t)
	f.scheduleSplitShift("emp-1", day)

	first, err := f.svc.ResolveDay(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.VerdictAbsent, first.Verdict)

	// Punches sync later; the recompute replaces the verdict in place.
	f.punches.add("101", at(day, 7, 55), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))

	second, err := f.svc.ResolveDay(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.VerdictPresent, second.Verdict)
	assert.Equal(t, first.ID, second.ID)
	assert.Len(t, f.records.records, 1)
}

// ==================== RECOMPUTE RANGE ====================

func TestRecomputeRange(t *testing.T) {
	ctx := context.Background()

	t.Run("covers every employee-day pair", func(t *testing.T) {
		f := newEngineFixture(t)
		f.employees.employees["emp-2"] = employee.Employee{
			ID: "emp-2", DeviceUserID: "102", FullName: "Luis Paredes", Active: true,
		}
		for d := 2; d <= 4; d++ {
			day := dayOf(2026, time.March, d)
			f.scheduleSplitShift("emp-1", day)
			f.scheduleSplitShift("emp-2", day)
		}

		resp, err := f.svc.RecomputeRange(ctx, attendance.RecomputeRangeRequest{
			StartDate: "2026-03-02",
			EndDate:   "2026-03-04",
		})
		require.NoError(t, err)
		assert.Equal(t, 6, resp.Processed)
		assert.Zero(t, resp.Skipped)
		assert.Len(t, resp.Records, 6)
		assert.Len(t, f.records.records, 6)
	})

	t.Run("single employee filter", func(t *testing.T) {
		f := newEngineFixture(t)
		day := dayOf(2026, time.March, 2)
		f.scheduleSplitShift("emp-1", day)

		empID := "emp-1"
		resp, err := f.svc.RecomputeRange(ctx, attendance.RecomputeRangeRequest{
			StartDate:  "2026-03-02",
			EndDate:    "2026-03-02",
			EmployeeID: &empID,
		})
		require.NoError(t, err)
		assert.Equal(t, 1, resp.Processed)
	})

	t.Run("a failing pair is skipped without aborting the batch", func(t *testing.T) {
		f := newEngineFixture(t)
		f.scheduleSplitShift("emp-1", dayOf(2026, time.March, 2), dayOf(2026, time.March, 4))
		f.resolver.errs["emp-1|2026-03-03"] = errors.New("segments table unavailable")

		resp, err := f.svc.RecomputeRange(ctx, attendance.RecomputeRangeRequest{
			StartDate: "2026-03-02",
			EndDate:   "2026-03-04",
		})
		require.NoError(t, err)
		assert.Equal(t, 2, resp.Processed)
		assert.Equal(t, 1, resp.Skipped)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		f := newEngineFixture(t)

		_, err := f.svc.RecomputeRange(ctx, attendance.RecomputeRangeRequest{
			StartDate: "2026-03-04",
			EndDate:   "2026-03-02",
		})
		assert.Error(t, err)
	})
}

func TestGetDailyRecord(t *testing.T) {
	ctx := context.Background()
	day := dayOf(2026, time.March, 2)

	f := newEngineFixture(t)
	f.scheduleSplitShift("emp-1", day)
	f.punches.add("101", at(day, 7, 55), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))

	_, err := f.svc.ResolveDay(ctx, "emp-1", day)
	require.NoError(t, err)

	resp, err := f.svc.GetDailyRecord(ctx, "emp-1", day)
	require.NoError(t, err)
	assert.Equal(t, "2026-03-02", resp.Date)
	assert.Equal(t, attendance.VerdictPresent, resp.Verdict)

	_, err = f.svc.GetDailyRecord(ctx, "emp-1", dayOf(2026, time.March, 3))
	assert.ErrorIs(t, err, attendance.ErrRecordNotFound)
}

func TestListRange(t *testing.T) {
	ctx := context.Background()
	monday := dayOf(2026, time.March, 2)
	tuesday := dayOf(2026, time.March, 3)
	wednesday := dayOf(2026, time.March, 4)

	f := newEngineFixture(t)
	f.scheduleSplitShift("emp-1", monday, tuesday, wednesday)
	for _, day := range []time.Time{monday, tuesday, wednesday} {
		f.punches.add("101", at(day, 7, 55), at(day, 13, 2), at(day, 13, 56), at(day, 18, 4))
		_, err := f.svc.ResolveDay(ctx, "emp-1", day)
		require.NoError(t, err)
	}

	t.Run("returns records oldest first", func(t *testing.T) {
		resp, err := f.svc.ListRange(ctx, "emp-1", monday, tuesday)
		require.NoError(t, err)
		require.Len(t, resp, 2)
		assert.Equal(t, "2026-03-02", resp[0].Date)
		assert.Equal(t, "2026-03-03", resp[1].Date)
	})

	t.Run("days without records are simply missing", func(t *testing.T) {
		resp, err := f.svc.ListRange(ctx, "emp-1", wednesday, dayOf(2026, time.March, 31))
		require.NoError(t, err)
		require.Len(t, resp, 1)
		assert.Equal(t, "2026-03-04", resp[0].Date)
	})

	t.Run("inverted range is rejected", func(t *testing.T) {
		_, err := f.svc.ListRange(ctx, "emp-1", tuesday, monday)
		assert.ErrorIs(t, err, attendance.ErrInvalidRange)
	})

	t.Run("unknown employee", func(t *testing.T) {
		_, err := f.svc.ListRange(ctx, "ghost", monday, tuesday)
		assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)
	})
}
