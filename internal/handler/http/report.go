package http

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
	"github.com/clockwise-hr/timeclock-backend-go/internal/handler/http/response"
)

type ReportHandler interface {
	MonthlyMatrix(w http.ResponseWriter, r *http.Request)
}

type reportHandlerImpl struct {
	reportService report.ReportService
}

func NewReportHandler(reportService report.ReportService) ReportHandler {
	return &reportHandlerImpl{
		reportService: reportService,
	}
}

// MonthlyMatrix serves GET /reports/matrix?year=&month=&employee_ids=&area=.
// employee_ids is a comma separated list; empty means every active employee.
func (h *reportHandlerImpl) MonthlyMatrix(w http.ResponseWriter, r *http.Request) {
	year, err := strconv.Atoi(r.URL.Query().Get("year"))
	if err != nil {
		response.BadRequest(w, "year must be a number", nil)
		return
	}
	month, err := strconv.Atoi(r.URL.Query().Get("month"))
	if err != nil {
		response.BadRequest(w, "month must be a number", nil)
		return
	}

	req := report.MatrixRequest{
		Year:  year,
		Month: month,
	}

	if raw := r.URL.Query().Get("employee_ids"); raw != "" {
		for _, id := range strings.Split(raw, ",") {
			if id = strings.TrimSpace(id); id != "" {
				req.EmployeeIDs = append(req.EmployeeIDs, id)
			}
		}
	}
	if area := r.URL.Query().Get("area"); area != "" {
		req.Area = &area
	}

	result, err := h.reportService.MonthlyMatrix(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
