package punch

import "errors"

var (
	ErrEmptyBatch       = errors.New("punch batch is empty")
	ErrInvalidTimestamp = errors.New("punch timestamp is invalid")
)
