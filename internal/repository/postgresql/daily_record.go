package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type dailyRecordRepository struct {
	db *database.DB
}

func NewDailyRecordRepository(db *database.DB) attendance.DailyRecordRepository {
	return &dailyRecordRepository{db: db}
}

// Upsert implements attendance.DailyRecordRepository. The conflict branch
// overwrites every derived column so a recompute fully replaces the row;
// nothing from the previous computation survives.
func (r *dailyRecordRepository) Upsert(ctx context.Context, record attendance.DailyRecord) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	if record.ID == "" {
		record.ID = uuid.NewString()
	}

	query := `
		INSERT INTO daily_attendance_records (
			id, employee_id, date, schedule_id, expected_hours, worked_hours,
			verdict, justified, first_entry, last_exit
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (employee_id, date) DO UPDATE SET
			schedule_id    = EXCLUDED.schedule_id,
			expected_hours = EXCLUDED.expected_hours,
			worked_hours   = EXCLUDED.worked_hours,
			verdict        = EXCLUDED.verdict,
			justified      = EXCLUDED.justified,
			first_entry    = EXCLUDED.first_entry,
			last_exit      = EXCLUDED.last_exit,
			updated_at     = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		record.ID,
		record.EmployeeID,
		record.Date,
		record.ScheduleID,
		record.ExpectedHours,
		record.WorkedHours,
		record.Verdict,
		record.Justified,
		record.FirstEntry,
		record.LastExit,
	).Scan(&record.ID, &record.CreatedAt, &record.UpdatedAt)

	if err != nil {
		return attendance.DailyRecord{}, fmt.Errorf("failed to upsert daily record: %w", err)
	}

	return record, nil
}

// GetByEmployeeAndDate implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT d.id, d.employee_id, d.date, d.schedule_id, d.expected_hours,
			   d.worked_hours, d.verdict, d.justified, d.first_entry, d.last_exit,
			   d.created_at, d.updated_at,
			   e.full_name AS employee_name
		FROM daily_attendance_records d
		LEFT JOIN employees e ON e.id = d.employee_id
		WHERE d.employee_id = $1 AND d.date = $2
	`

	var rec attendance.DailyRecord
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ScheduleID, &rec.ExpectedHours,
		&rec.WorkedHours, &rec.Verdict, &rec.Justified, &rec.FirstEntry, &rec.LastExit,
		&rec.CreatedAt, &rec.UpdatedAt,
		&rec.EmployeeName,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.DailyRecord{}, attendance.ErrRecordNotFound
		}
		return attendance.DailyRecord{}, fmt.Errorf("failed to get daily record: %w", err)
	}

	return rec, nil
}

// ListByMonth implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) ListByMonth(ctx context.Context, year int, month time.Month, employeeIDs []string) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, schedule_id, expected_hours,
			   worked_hours, verdict, justified, first_entry, last_exit,
			   created_at, updated_at
		FROM daily_attendance_records
		WHERE EXTRACT(YEAR FROM date) = $1
		  AND EXTRACT(MONTH FROM date) = $2
	`
	args := []interface{}{year, int(month)}
	if len(employeeIDs) > 0 {
		query += " AND employee_id = ANY($3)"
		args = append(args, employeeIDs)
	}
	query += " ORDER BY employee_id, date"

	return r.queryRecords(ctx, q, query, args...)
}

// ListByRange implements attendance.DailyRecordRepository.
func (r *dailyRecordRepository) ListByRange(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.DailyRecord, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, date, schedule_id, expected_hours,
			   worked_hours, verdict, justified, first_entry, last_exit,
			   created_at, updated_at
		FROM daily_attendance_records
		WHERE employee_id = $1 AND date >= $2 AND date <= $3
		ORDER BY date
	`

	return r.queryRecords(ctx, q, query, employeeID, start, end)
}

func (r *dailyRecordRepository) queryRecords(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]attendance.DailyRecord, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily records: %w", err)
	}
	defer rows.Close()

	var records []attendance.DailyRecord
	for rows.Next() {
		var rec attendance.DailyRecord
		if err := rows.Scan(
			&rec.ID, &rec.EmployeeID, &rec.Date, &rec.ScheduleID, &rec.ExpectedHours,
			&rec.WorkedHours, &rec.Verdict, &rec.Justified, &rec.FirstEntry, &rec.LastExit,
			&rec.CreatedAt, &rec.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan daily record: %w", err)
		}
		records = append(records, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read daily records: %w", err)
	}

	return records, nil
}
