package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/database"
	"github.com/google/uuid"
)

type punchRepository struct {
	db *database.DB
}

func NewPunchRepository(db *database.DB) punch.PunchRepository {
	return &punchRepository{db: db}
}

// BulkInsert implements punch.PunchRepository. Rows whose natural key
// (device_user_id, timestamp) already exists are skipped, which makes device
// re-syncs idempotent. The whole batch goes through one transaction so a
// failed sync never leaves a partial batch behind.
func (r *punchRepository) BulkInsert(ctx context.Context, punches []punch.PunchEvent) (int, error) {
	if len(punches) == 0 {
		return 0, punch.ErrEmptyBatch
	}

	query := `
		INSERT INTO punch_events (id, device_user_id, timestamp, direction_code, synced_at)
		VALUES ($1, $2, $3, $4, NOW())
		ON CONFLICT (device_user_id, timestamp) DO NOTHING
	`

	inserted := 0
	err := WithTransaction(ctx, r.db, func(txCtx context.Context) error {
		q := GetQuerier(txCtx, r.db)
		for _, p := range punches {
			tag, err := q.Exec(txCtx, query, uuid.NewString(), p.DeviceUserID, p.Timestamp, p.DirectionCode)
			if err != nil {
				return fmt.Errorf("failed to insert punch: %w", err)
			}
			inserted += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// ListDayTimestamps implements punch.PunchRepository.
func (r *punchRepository) ListDayTimestamps(ctx context.Context, deviceUserID string, date time.Time) ([]time.Time, error) {
	q := GetQuerier(ctx, r.db)

	dayStart := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	dayEnd := dayStart.AddDate(0, 0, 1)

	query := `
		SELECT timestamp
		FROM punch_events
		WHERE device_user_id = $1
		  AND timestamp >= $2
		  AND timestamp < $3
		ORDER BY timestamp
	`

	rows, err := q.Query(ctx, query, deviceUserID, dayStart, dayEnd)
	if err != nil {
		return nil, fmt.Errorf("failed to list day punches: %w", err)
	}
	defer rows.Close()

	var times []time.Time
	for rows.Next() {
		var t time.Time
		if err := rows.Scan(&t); err != nil {
			return nil, fmt.Errorf("failed to scan punch timestamp: %w", err)
		}
		times = append(times, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read punch timestamps: %w", err)
	}

	return times, nil
}

// List implements punch.PunchRepository.
func (r *punchRepository) List(ctx context.Context, filter punch.PunchFilter) ([]punch.PunchEvent, int64, error) {
	q := GetQuerier(ctx, r.db)

	baseWhere := "1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.DeviceUserID != nil && *filter.DeviceUserID != "" {
		baseWhere += fmt.Sprintf(" AND device_user_id = $%d", argIdx)
		args = append(args, *filter.DeviceUserID)
		argIdx++
	}
	if filter.StartDate != nil && *filter.StartDate != "" {
		baseWhere += fmt.Sprintf(" AND timestamp >= $%d", argIdx)
		args = append(args, *filter.StartDate)
		argIdx++
	}
	if filter.EndDate != nil && *filter.EndDate != "" {
		baseWhere += fmt.Sprintf(" AND timestamp < ($%d::date + 1)", argIdx)
		args = append(args, *filter.EndDate)
		argIdx++
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM punch_events WHERE " + baseWhere
	if err := q.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count punches: %w", err)
	}

	query := fmt.Sprintf(`
		SELECT id, device_user_id, timestamp, direction_code, synced_at
		FROM punch_events
		WHERE %s
		ORDER BY timestamp DESC
		LIMIT $%d OFFSET $%d
	`, baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, (filter.Page-1)*filter.Limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list punches: %w", err)
	}
	defer rows.Close()

	var punches []punch.PunchEvent
	for rows.Next() {
		var p punch.PunchEvent
		if err := rows.Scan(&p.ID, &p.DeviceUserID, &p.Timestamp, &p.DirectionCode, &p.SyncedAt); err != nil {
			return nil, 0, fmt.Errorf("failed to scan punch: %w", err)
		}
		punches = append(punches, p)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("failed to read punches: %w", err)
	}

	return punches, total, nil
}
