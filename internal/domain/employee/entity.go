package employee

import "time"

type Employee struct {
	ID           string
	DeviceUserID string // numeric identity reported by the clock hardware
	FullName     string
	Department   *string
	Active       bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
