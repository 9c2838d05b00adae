package punch

import (
	"context"
	"time"
)

type PunchRepository interface {
	// BulkInsert stores a batch of punches, silently skipping rows whose
	// (device_user_id, timestamp) key already exists. Returns how many rows
	// were actually inserted.
	BulkInsert(ctx context.Context, punches []PunchEvent) (int, error)

	// ListDayTimestamps returns the punch timestamps of one device user for
	// one calendar day, sorted ascending.
	ListDayTimestamps(ctx context.Context, deviceUserID string, date time.Time) ([]time.Time, error)

	List(ctx context.Context, filter PunchFilter) ([]PunchEvent, int64, error)
}
