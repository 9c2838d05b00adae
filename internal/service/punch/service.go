package punch

import (
	"context"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
)

type punchServiceImpl struct {
	punchRepo punch.PunchRepository
}

func NewPunchService(punchRepo punch.PunchRepository) punch.PunchService {
	return &punchServiceImpl{punchRepo: punchRepo}
}

// Ingest stores a device batch. Duplicate punches (same device user and
// timestamp) are dropped by the repository, so re-synced backlogs only add
// what is new.
func (s *punchServiceImpl) Ingest(ctx context.Context, req punch.IngestRequest) (punch.IngestResponse, error) {
	// Validate request
	if err := req.Validate(); err != nil {
		return punch.IngestResponse{}, err
	}

	events := make([]punch.PunchEvent, 0, len(req.Punches))
	for _, p := range req.Punches {
		ts, err := time.Parse(time.RFC3339, p.Timestamp)
		if err != nil {
			return punch.IngestResponse{}, punch.ErrInvalidTimestamp
		}
		events = append(events, punch.PunchEvent{
			DeviceUserID:  p.DeviceUserID,
			Timestamp:     ts,
			DirectionCode: p.DirectionCode,
		})
	}

	inserted, err := s.punchRepo.BulkInsert(ctx, events)
	if err != nil {
		return punch.IngestResponse{}, err
	}

	return punch.IngestResponse{
		Received: len(req.Punches),
		Inserted: inserted,
	}, nil
}

func (s *punchServiceImpl) List(ctx context.Context, filter punch.PunchFilter) (punch.ListPunchResponse, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.Limit < 1 || filter.Limit > 500 {
		filter.Limit = 50
	}

	events, total, err := s.punchRepo.List(ctx, filter)
	if err != nil {
		return punch.ListPunchResponse{}, err
	}

	resp := punch.ListPunchResponse{
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}
	for _, e := range events {
		resp.Punches = append(resp.Punches, punch.PunchResponse{
			ID:            e.ID,
			DeviceUserID:  e.DeviceUserID,
			Timestamp:     e.Timestamp.Format(time.RFC3339),
			DirectionCode: e.DirectionCode,
		})
	}
	return resp, nil
}
