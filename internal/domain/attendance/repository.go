package attendance

import (
	"context"
	"time"
)

type DailyRecordRepository interface {
	// Upsert fully replaces the record keyed by (employee_id, date). Partial
	// merges are never performed; the write is atomic per row.
	Upsert(ctx context.Context, record DailyRecord) (DailyRecord, error)

	GetByEmployeeAndDate(ctx context.Context, employeeID string, date time.Time) (DailyRecord, error)

	// ListByMonth returns every record of the given month, optionally limited
	// to a set of employee IDs.
	ListByMonth(ctx context.Context, year int, month time.Month, employeeIDs []string) ([]DailyRecord, error)

	ListByRange(ctx context.Context, employeeID string, start, end time.Time) ([]DailyRecord, error)
}
