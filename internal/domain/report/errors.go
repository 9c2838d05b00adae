package report

import "errors"

var (
	ErrNoEmployees = errors.New("no employees match the report request")
)
