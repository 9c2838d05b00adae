package attendance

import "errors"

var (
	ErrRecordNotFound = errors.New("daily attendance record not found")
	ErrInvalidRange   = errors.New("start date must not be after end date")
)
