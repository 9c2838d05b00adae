package response

import (
	"errors"
	"net/http"

	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/attendance"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/auth"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/employee"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/punch"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/report"
	"github.com/clockwise-hr/timeclock-backend-go/internal/domain/schedule"
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidAPIKey):
		Unauthorized(w, "Invalid API key")
	case errors.Is(err, auth.ErrInvalidToken):
		Unauthorized(w, "Invalid or expired token")

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDeviceUserIDExists):
		Conflict(w, "Device user ID already registered")
	case errors.Is(err, employee.ErrEmployeeDeactivated):
		Conflict(w, "Employee is deactivated")
	case errors.Is(err, employee.ErrInvalidDeviceUserID):
		BadRequest(w, "Invalid device user ID", nil)

	// Schedule domain errors
	case errors.Is(err, schedule.ErrScheduleNotFound):
		NotFound(w, "Schedule template not found")
	case errors.Is(err, schedule.ErrScheduleNameExists):
		Conflict(w, "Schedule name already exists")
	case errors.Is(err, schedule.ErrSegmentNotFound):
		NotFound(w, "Schedule segment not found")
	case errors.Is(err, schedule.ErrDuplicateSegmentSlot):
		Conflict(w, "Segment slot already exists for this weekday")
	case errors.Is(err, schedule.ErrInvalidSegmentWindow):
		BadRequest(w, "Segment end time must be after start time", nil)
	case errors.Is(err, schedule.ErrAssignmentNotFound):
		NotFound(w, "Schedule assignment not found")
	case errors.Is(err, schedule.ErrOverlappingScheduleAssignment):
		Conflict(w, "Assignment overlaps an existing validity window")
	case errors.Is(err, schedule.ErrInvalidAssignmentRange):
		BadRequest(w, "Invalid assignment date range", nil)
	case errors.Is(err, schedule.ErrNoActiveAssignment):
		NotFound(w, "No active schedule assignment for this date")
	case errors.Is(err, schedule.ErrHolidayNotFound):
		NotFound(w, "Holiday not found")
	case errors.Is(err, schedule.ErrHolidayExists):
		Conflict(w, "Holiday already exists for this date")

	// Attendance domain errors
	case errors.Is(err, attendance.ErrRecordNotFound):
		NotFound(w, "Daily attendance record not found")
	case errors.Is(err, attendance.ErrInvalidRange):
		BadRequest(w, "Start date must not be after end date", nil)

	// Punch domain errors
	case errors.Is(err, punch.ErrEmptyBatch):
		BadRequest(w, "Punch batch is empty", nil)
	case errors.Is(err, punch.ErrInvalidTimestamp):
		BadRequest(w, "Punch timestamp is invalid", nil)

	// Report domain errors
	case errors.Is(err, report.ErrNoEmployees):
		NotFound(w, "No employees match the report request")

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}
