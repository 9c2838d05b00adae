package http

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
)

type PunchHandler interface {
	Ingest(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type punchHandlerImpl struct {
	punchService punch.PunchService
}

func NewPunchHandler(punchService punch.PunchService) PunchHandler {
	return &punchHandlerImpl{
		punchService: punchService,
	}
}

// Ingest accepts a device batch. Devices re-send entire backlogs after
// offline periods, so the response reports received vs actually inserted.
func (h *punchHandlerImpl) Ingest(w http.ResponseWriter, r *http.Request) {
	var req punch.IngestRequest

	// Decode request body
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.punchService.Ingest(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Punch batch processed", result)
}

func (h *punchHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := punch.PunchFilter{}

	query := r.URL.Query()
	if deviceUserID := query.Get("device_user_id"); deviceUserID != "" {
		filter.DeviceUserID = &deviceUserID
	}
	if startDate := query.Get("start_date"); startDate != "" {
		filter.StartDate = &startDate
	}
	if endDate := query.Get("end_date"); endDate != "" {
		filter.EndDate = &endDate
	}
	filter.Page, _ = strconv.Atoi(query.Get("page"))
	filter.Limit, _ = strconv.Atoi(query.Get("limit"))

	result, err := h.punchService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMeta(w, result.Punches, &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		TotalItems: result.TotalCount,
	})
}
