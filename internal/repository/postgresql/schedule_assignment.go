package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
)

type scheduleAssignmentRepository struct {
	db *database.DB
}

func NewScheduleAssignmentRepository(db *database.DB) schedule.ScheduleAssignmentRepository {
	return &scheduleAssignmentRepository{db: db}
}

// Create implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepository) Create(ctx context.Context, assignment schedule.ScheduleAssignment) (schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_assignments (id, employee_id, schedule_id, valid_from, valid_to)
		VALUES (uuidv7(), $1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		assignment.EmployeeID,
		assignment.ScheduleID,
		assignment.ValidFrom,
		assignment.ValidTo,
	).Scan(&assignment.ID, &assignment.CreatedAt, &assignment.UpdatedAt)

	if err != nil {
		return schedule.ScheduleAssignment{}, fmt.Errorf("failed to create schedule assignment: %w", err)
	}

	return assignment, nil
}

// GetByEmployeeID implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepository) GetByEmployeeID(ctx context.Context, employeeID string) ([]schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, schedule_id, valid_from, valid_to, created_at, updated_at
		FROM schedule_assignments
		WHERE employee_id = $1
		ORDER BY valid_from DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule assignments: %w", err)
	}
	defer rows.Close()

	var assignments []schedule.ScheduleAssignment
	for rows.Next() {
		var a schedule.ScheduleAssignment
		if err := rows.Scan(
			&a.ID, &a.EmployeeID, &a.ScheduleID, &a.ValidFrom, &a.ValidTo,
			&a.CreatedAt, &a.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule assignment: %w", err)
		}
		assignments = append(assignments, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedule assignments: %w", err)
	}

	return assignments, nil
}

// GetActiveAssignment implements schedule.ScheduleAssignmentRepository.
// Overlapping historical rows are resolved by the latest valid_from.
func (r *scheduleAssignmentRepository) GetActiveAssignment(ctx context.Context, employeeID string, date time.Time) (schedule.ScheduleAssignment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, employee_id, schedule_id, valid_from, valid_to, created_at, updated_at
		FROM schedule_assignments
		WHERE employee_id = $1
		  AND valid_from <= $2
		  AND (valid_to IS NULL OR valid_to >= $2)
		ORDER BY valid_from DESC
		LIMIT 1
	`

	var a schedule.ScheduleAssignment
	err := q.QueryRow(ctx, query, employeeID, date).Scan(
		&a.ID, &a.EmployeeID, &a.ScheduleID, &a.ValidFrom, &a.ValidTo,
		&a.CreatedAt, &a.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleAssignment{}, schedule.ErrNoActiveAssignment
		}
		return schedule.ScheduleAssignment{}, fmt.Errorf("failed to get active assignment: %w", err)
	}

	return a, nil
}

// CountOverlapping implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepository) CountOverlapping(ctx context.Context, employeeID string, validFrom time.Time, validTo *time.Time) (int64, error) {
	q := GetQuerier(ctx, r.db)

	// Two ranges [a1,a2] and [b1,b2] overlap when a1 <= b2 and b1 <= a2,
	// with NULL standing in for an open end.
	query := `
		SELECT COUNT(*)
		FROM schedule_assignments
		WHERE employee_id = $1
		  AND valid_from <= COALESCE($3::date, 'infinity'::date)
		  AND COALESCE(valid_to, 'infinity'::date) >= $2
	`

	var count int64
	if err := q.QueryRow(ctx, query, employeeID, validFrom, validTo).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overlapping assignments: %w", err)
	}

	return count, nil
}

// Delete implements schedule.ScheduleAssignmentRepository.
func (r *scheduleAssignmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_assignments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule assignment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrAssignmentNotFound
	}

	return nil
}
