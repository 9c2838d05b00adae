package attendance

import (
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type RecomputeRangeRequest struct {
	StartDate  string  `json:"start_date"` // "YYYY-MM-DD"
	EndDate    string  `json:"end_date"`
	EmployeeID *string `json:"employee_id,omitempty"` // nil = every active employee
}

func (r *RecomputeRangeRequest) Validate() error {
	var errs validator.ValidationErrors

	start, okStart := validator.IsValidDate(r.StartDate)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_date",
			Message: "start_date must be YYYY-MM-DD",
		})
	}
	end, okEnd := validator.IsValidDate(r.EndDate)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must be YYYY-MM-DD",
		})
	}
	if okStart && okEnd && end.Before(start) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_date",
			Message: "end_date must not be before start_date",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type DailyRecordResponse struct {
	ID            string  `json:"id"`
	EmployeeID    string  `json:"employee_id"`
	EmployeeName  *string `json:"employee_name,omitempty"`
	Date          string  `json:"date"`
	ScheduleID    *string `json:"schedule_id,omitempty"`
	ExpectedHours float64 `json:"expected_hours"`
	WorkedHours   float64 `json:"worked_hours"`
	Verdict       string  `json:"verdict"`
	Justified     bool    `json:"justified"`
	FirstEntry    *string `json:"first_entry,omitempty"`
	LastExit      *string `json:"last_exit,omitempty"`
}

type RecomputeRangeResponse struct {
	Processed int                   `json:"processed"`
	Skipped   int                   `json:"skipped"`
	Records   []DailyRecordResponse `json:"records"`
}
