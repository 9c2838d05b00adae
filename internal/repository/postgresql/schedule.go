package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type scheduleTemplateRepository struct {
	db *database.DB
}

func NewScheduleTemplateRepository(db *database.DB) schedule.ScheduleTemplateRepository {
	return &scheduleTemplateRepository{db: db}
}

// Create implements schedule.ScheduleTemplateRepository.
func (r *scheduleTemplateRepository) Create(ctx context.Context, template schedule.ScheduleTemplate) (schedule.ScheduleTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_templates (id, name, description, active)
		VALUES (uuidv7(), $1, $2, $3)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		template.Name,
		template.Description,
		template.Active,
	).Scan(&template.ID, &template.CreatedAt, &template.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.ScheduleTemplate{}, schedule.ErrScheduleNameExists
		}
		return schedule.ScheduleTemplate{}, fmt.Errorf("failed to create schedule template: %w", err)
	}

	return template, nil
}

// GetByID implements schedule.ScheduleTemplateRepository.
func (r *scheduleTemplateRepository) GetByID(ctx context.Context, id string) (schedule.ScheduleTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM schedule_templates
		WHERE id = $1
	`

	var template schedule.ScheduleTemplate
	err := q.QueryRow(ctx, query, id).Scan(
		&template.ID, &template.Name, &template.Description,
		&template.Active, &template.CreatedAt, &template.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.ScheduleTemplate{}, schedule.ErrScheduleNotFound
		}
		return schedule.ScheduleTemplate{}, fmt.Errorf("failed to get schedule template: %w", err)
	}

	return template, nil
}

// List implements schedule.ScheduleTemplateRepository.
func (r *scheduleTemplateRepository) List(ctx context.Context, activeOnly bool) ([]schedule.ScheduleTemplate, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, name, description, active, created_at, updated_at
		FROM schedule_templates
	`
	if activeOnly {
		query += " WHERE active"
	}
	query += " ORDER BY name"

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list schedule templates: %w", err)
	}
	defer rows.Close()

	var templates []schedule.ScheduleTemplate
	for rows.Next() {
		var template schedule.ScheduleTemplate
		if err := rows.Scan(
			&template.ID, &template.Name, &template.Description,
			&template.Active, &template.CreatedAt, &template.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan schedule template: %w", err)
		}
		templates = append(templates, template)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schedule templates: %w", err)
	}

	return templates, nil
}

// Delete implements schedule.ScheduleTemplateRepository.
func (r *scheduleTemplateRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_templates WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete schedule template: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrScheduleNotFound
	}

	return nil
}

type segmentRepository struct {
	db *database.DB
}

func NewSegmentRepository(db *database.DB) schedule.SegmentRepository {
	return &segmentRepository{db: db}
}

// Create implements schedule.SegmentRepository.
func (r *segmentRepository) Create(ctx context.Context, segment schedule.Segment) (schedule.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO schedule_segments (
			id, schedule_id, weekday, start_time, end_time,
			tolerance_minutes, sequence_order
		) VALUES (uuidv7(), $1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		segment.ScheduleID,
		segment.Weekday,
		segment.StartTime,
		segment.EndTime,
		segment.ToleranceMinutes,
		segment.SequenceOrder,
	).Scan(&segment.ID, &segment.CreatedAt, &segment.UpdatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.Segment{}, schedule.ErrDuplicateSegmentSlot
		}
		return schedule.Segment{}, fmt.Errorf("failed to create segment: %w", err)
	}

	return segment, nil
}

// GetByScheduleID implements schedule.SegmentRepository.
func (r *segmentRepository) GetByScheduleID(ctx context.Context, scheduleID string) ([]schedule.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, schedule_id, weekday, start_time, end_time,
			   tolerance_minutes, sequence_order, created_at, updated_at
		FROM schedule_segments
		WHERE schedule_id = $1
		ORDER BY weekday, start_time
	`

	return r.querySegments(ctx, q, query, scheduleID)
}

// GetForWeekday implements schedule.SegmentRepository.
func (r *segmentRepository) GetForWeekday(ctx context.Context, scheduleID string, weekday int) ([]schedule.Segment, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, schedule_id, weekday, start_time, end_time,
			   tolerance_minutes, sequence_order, created_at, updated_at
		FROM schedule_segments
		WHERE schedule_id = $1 AND weekday = $2
		ORDER BY start_time
	`

	return r.querySegments(ctx, q, query, scheduleID, weekday)
}

func (r *segmentRepository) querySegments(ctx context.Context, q database.Querier, query string, args ...interface{}) ([]schedule.Segment, error) {
	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query segments: %w", err)
	}
	defer rows.Close()

	var segments []schedule.Segment
	for rows.Next() {
		var seg schedule.Segment
		if err := rows.Scan(
			&seg.ID, &seg.ScheduleID, &seg.Weekday, &seg.StartTime, &seg.EndTime,
			&seg.ToleranceMinutes, &seg.SequenceOrder, &seg.CreatedAt, &seg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan segment: %w", err)
		}
		segments = append(segments, seg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read segments: %w", err)
	}

	return segments, nil
}

// Delete implements schedule.SegmentRepository.
func (r *segmentRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM schedule_segments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete segment: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrSegmentNotFound
	}

	return nil
}
