package report

import (
	"fmt"
	"time"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type MatrixRequest struct {
	Year        int      `json:"year"`
	Month       int      `json:"month"`
	EmployeeIDs []string `json:"employee_ids,omitempty"`

	// Area is carried into the report header only. It deliberately does not
	// filter the underlying query; filtering happens through EmployeeIDs.
	Area *string `json:"area,omitempty"`
}

func (r *MatrixRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.Month < 1 || r.Month > 12 {
		errs = append(errs, validator.ValidationError{
			Field:   "month",
			Message: "month must be between 1 and 12",
		})
	}

	currentYear := time.Now().Year()
	if r.Year < 2020 || r.Year > currentYear+1 {
		errs = append(errs, validator.ValidationError{
			Field:   "year",
			Message: fmt.Sprintf("year must be between 2020 and %d", currentYear+1),
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type MatrixMeta struct {
	Month    int     `json:"month"`
	Year     int     `json:"year"`
	DayCount int     `json:"day_count"`
	Area     *string `json:"area,omitempty"`
}

type DayColumn struct {
	Day            int    `json:"day"`
	WeekdayInitial string `json:"weekday_initial"`
	IsWeekend      bool   `json:"is_weekend"`
}

type MatrixSummary struct {
	WorkedDays int `json:"worked_days"`
	Lates      int `json:"lates"`
	Absences   int `json:"absences"`
	Leaves     int `json:"leaves"`
}

type MatrixRow struct {
	EmployeeID   string        `json:"employee_id"`
	DeviceUserID string        `json:"device_user_id"`
	FullName     string        `json:"full_name"`
	Department   *string       `json:"department,omitempty"`
	DayCodes     []string      `json:"day_codes"`
	Summary      MatrixSummary `json:"summary"`
}

type MatrixReport struct {
	Meta       MatrixMeta  `json:"meta"`
	DayColumns []DayColumn `json:"day_columns"`
	Rows       []MatrixRow `json:"rows"`
}
