package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrDeviceUserIDExists  = errors.New("device user ID already registered")
	ErrEmployeeDeactivated = errors.New("employee is deactivated")
	ErrInvalidDeviceUserID = errors.New("device user ID must be numeric")
)
