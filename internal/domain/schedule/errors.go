package schedule

import "errors"

var (
	// Template errors
	ErrScheduleNotFound   = errors.New("schedule template not found")
	ErrScheduleNameExists = errors.New("schedule template with this name already exists")

	// Segment errors
	ErrSegmentNotFound      = errors.New("schedule segment not found")
	ErrInvalidSegmentWindow = errors.New("segment start time must be before end time")
	ErrDuplicateSegmentSlot = errors.New("segment order already used for this weekday")

	// Assignment errors
	ErrAssignmentNotFound            = errors.New("schedule assignment not found")
	ErrOverlappingScheduleAssignment = errors.New("overlapping schedule assignment detected")
	ErrInvalidAssignmentRange        = errors.New("assignment start date must not be after end date")

	// Resolution signals
	ErrNoActiveAssignment = errors.New("no schedule assignment covers this date")
	ErrNonWorkingDay      = errors.New("no work segments for this weekday")

	// Holiday errors
	ErrHolidayNotFound = errors.New("holiday not found")
	ErrHolidayExists   = errors.New("holiday already declared for this date")
)
