package schedule

import (
	"fmt"

	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type CreateTemplateRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description,omitempty"`
}

func (r *CreateTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// CreateSegmentsRequest creates the same time window on one or more weekdays
// of a template, mirroring how split shifts are configured in bulk.
type CreateSegmentsRequest struct {
	ScheduleID       string `json:"schedule_id"`
	Weekdays         []int  `json:"weekdays"`
	StartTime        string `json:"start_time"` // "HH:MM"
	EndTime          string `json:"end_time"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
	SequenceOrder    int    `json:"sequence_order"`
}

func (r *CreateSegmentsRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule ID is required",
		})
	}
	if len(r.Weekdays) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "weekdays",
			Message: "at least one weekday is required",
		})
	}
	for _, d := range r.Weekdays {
		if d < 0 || d > 6 {
			errs = append(errs, validator.ValidationError{
				Field:   "weekdays",
				Message: fmt.Sprintf("weekday %d out of range 0-6", d),
			})
			break
		}
	}

	start, okStart := validator.IsValidClockTime(r.StartTime)
	if !okStart {
		errs = append(errs, validator.ValidationError{
			Field:   "start_time",
			Message: "start time must be HH:MM",
		})
	}
	end, okEnd := validator.IsValidClockTime(r.EndTime)
	if !okEnd {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must be HH:MM",
		})
	}
	if okStart && okEnd && !start.Before(end) {
		errs = append(errs, validator.ValidationError{
			Field:   "end_time",
			Message: "end time must be after start time",
		})
	}

	if r.ToleranceMinutes < 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "tolerance_minutes",
			Message: "tolerance must not be negative",
		})
	}
	if r.SequenceOrder < 1 {
		errs = append(errs, validator.ValidationError{
			Field:   "sequence_order",
			Message: "sequence order starts at 1",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type AssignScheduleRequest struct {
	EmployeeID string  `json:"employee_id"`
	ScheduleID string  `json:"schedule_id"`
	ValidFrom  string  `json:"valid_from"` // "YYYY-MM-DD"
	ValidTo    *string `json:"valid_to,omitempty"`
}

func (r *AssignScheduleRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs = append(errs, validator.ValidationError{
			Field:   "employee_id",
			Message: "employee ID is required",
		})
	}
	if validator.IsEmpty(r.ScheduleID) {
		errs = append(errs, validator.ValidationError{
			Field:   "schedule_id",
			Message: "schedule ID is required",
		})
	}

	from, okFrom := validator.IsValidDate(r.ValidFrom)
	if !okFrom {
		errs = append(errs, validator.ValidationError{
			Field:   "valid_from",
			Message: "valid_from must be YYYY-MM-DD",
		})
	}
	if r.ValidTo != nil {
		to, okTo := validator.IsValidDate(*r.ValidTo)
		if !okTo {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_to",
				Message: "valid_to must be YYYY-MM-DD",
			})
		} else if okFrom && to.Before(from) {
			errs = append(errs, validator.ValidationError{
				Field:   "valid_to",
				Message: "valid_to must not be before valid_from",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type CreateHolidayRequest struct {
	Date string `json:"date"` // "YYYY-MM-DD"
	Name string `json:"name"`
}

func (r *CreateHolidayRequest) Validate() error {
	var errs validator.ValidationErrors

	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs = append(errs, validator.ValidationError{
			Field:   "date",
			Message: "date must be YYYY-MM-DD",
		})
	}
	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TemplateResponse struct {
	ID          string            `json:"id"`
	Name        string            `json:"name"`
	Description *string           `json:"description,omitempty"`
	Active      bool              `json:"active"`
	Segments    []SegmentResponse `json:"segments,omitempty"`
}

type SegmentResponse struct {
	ID               string `json:"id"`
	ScheduleID       string `json:"schedule_id"`
	Weekday          int    `json:"weekday"`
	StartTime        string `json:"start_time"`
	EndTime          string `json:"end_time"`
	ToleranceMinutes int    `json:"tolerance_minutes"`
	SequenceOrder    int    `json:"sequence_order"`
}

type AssignmentResponse struct {
	ID         string  `json:"id"`
	EmployeeID string  `json:"employee_id"`
	ScheduleID string  `json:"schedule_id"`
	ValidFrom  string  `json:"valid_from"`
	ValidTo    *string `json:"valid_to,omitempty"`
}

type HolidayResponse struct {
	ID   string `json:"id"`
	Date string `json:"date"`
	Name string `json:"name"`
}
