package punch

import "context"

// PunchService handles device batch ingestion and punch queries. Ingestion is
// idempotent: devices re-send their full backlog after connectivity gaps.
type PunchService interface {
	Ingest(ctx context.Context, req IngestRequest) (IngestResponse, error)
	List(ctx context.Context, filter PunchFilter) (ListPunchResponse, error)
}
