package punch

import (
	"github.com/clockwise-hr/timeclock-backend-go/internal/pkg/validator"
)

type IngestPunch struct {
	DeviceUserID  string `json:"device_user_id"`
	Timestamp     string `json:"timestamp"` // RFC3339
	DirectionCode int    `json:"direction_code"`
}

type IngestRequest struct {
	Punches []IngestPunch `json:"punches"`
}

func (r *IngestRequest) Validate() error {
	var errs validator.ValidationErrors

	if len(r.Punches) == 0 {
		errs = append(errs, validator.ValidationError{
			Field:   "punches",
			Message: "at least one punch is required",
		})
	}
	for i, p := range r.Punches {
		if !validator.IsValidDeviceUserID(p.DeviceUserID) {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].device_user_id",
				Message: "device user ID must be 1-20 digits",
			})
			continue
		}
		if _, ok := validator.IsValidDateTime(p.Timestamp); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "punches[" + validator.Itoa(i) + "].timestamp",
				Message: "timestamp must be RFC3339",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type IngestResponse struct {
	Received int `json:"received"`
	Inserted int `json:"inserted"`
}

type PunchFilter struct {
	DeviceUserID *string
	StartDate    *string
	EndDate      *string
	Page         int
	Limit        int
}

type PunchResponse struct {
	ID            string `json:"id"`
	DeviceUserID  string `json:"device_user_id"`
	Timestamp     string `json:"timestamp"`
	DirectionCode int    `json:"direction_code"`
}

type ListPunchResponse struct {
	TotalCount int64           `json:"total_count"`
	Page       int             `json:"page"`
	Limit      int             `json:"limit"`
	Punches    []PunchResponse `json:"punches"`
}
