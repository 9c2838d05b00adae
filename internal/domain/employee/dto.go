package employee

import (
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type CreateEmployeeRequest struct {
	DeviceUserID string  `json:"device_user_id"`
	FullName     string  `json:"full_name"`
	Department   *string `json:"department,omitempty"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FullName) {
		errs = append(errs, validator.ValidationError{
			Field:   "full_name",
			Message: "full name is required",
		})
	}
	if !validator.IsValidDeviceUserID(r.DeviceUserID) {
		errs = append(errs, validator.ValidationError{
			Field:   "device_user_id",
			Message: "device user ID must be 1-20 digits",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type EmployeeFilter struct {
	Department *string
	Active     *bool
	Page       int
	Limit      int
}

type EmployeeResponse struct {
	ID           string  `json:"id"`
	DeviceUserID string  `json:"device_user_id"`
	FullName     string  `json:"full_name"`
	Department   *string `json:"department,omitempty"`
	Active       bool    `json:"active"`
}

type ListEmployeeResponse struct {
	TotalCount int64              `json:"total_count"`
	Page       int                `json:"page"`
	Limit      int                `json:"limit"`
	Employees  []EmployeeResponse `json:"employees"`
}
