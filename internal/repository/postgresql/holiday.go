package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) schedule.HolidayRepository {
	return &holidayRepository{db: db}
}

// Create implements schedule.HolidayRepository.
func (r *holidayRepository) Create(ctx context.Context, holiday schedule.Holiday) (schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO holidays (id, date, name)
		VALUES (uuidv7(), $1, $2)
		RETURNING id, created_at
	`

	err := q.QueryRow(ctx, query, holiday.Date, holiday.Name).
		Scan(&holiday.ID, &holiday.CreatedAt)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return schedule.Holiday{}, schedule.ErrHolidayExists
		}
		return schedule.Holiday{}, fmt.Errorf("failed to create holiday: %w", err)
	}

	return holiday, nil
}

// GetByDate implements schedule.HolidayRepository.
func (r *holidayRepository) GetByDate(ctx context.Context, date time.Time) (schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE date = $1
	`

	var holiday schedule.Holiday
	err := q.QueryRow(ctx, query, date).Scan(
		&holiday.ID, &holiday.Date, &holiday.Name, &holiday.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return schedule.Holiday{}, schedule.ErrHolidayNotFound
		}
		return schedule.Holiday{}, fmt.Errorf("failed to get holiday by date: %w", err)
	}

	return holiday, nil
}

// List implements schedule.HolidayRepository.
func (r *holidayRepository) List(ctx context.Context, year int) ([]schedule.Holiday, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, date, name, created_at
		FROM holidays
		WHERE EXTRACT(YEAR FROM date) = $1
		ORDER BY date
	`

	rows, err := q.Query(ctx, query, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list holidays: %w", err)
	}
	defer rows.Close()

	var holidays []schedule.Holiday
	for rows.Next() {
		var holiday schedule.Holiday
		if err := rows.Scan(&holiday.ID, &holiday.Date, &holiday.Name, &holiday.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan holiday: %w", err)
		}
		holidays = append(holidays, holiday)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read holidays: %w", err)
	}

	return holidays, nil
}

// Delete implements schedule.HolidayRepository.
func (r *holidayRepository) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM holidays WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete holiday: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return schedule.ErrHolidayNotFound
	}

	return nil
}
