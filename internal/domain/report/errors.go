package report

import "errors"

var (
	ErrInvalidDateRange  = errors.New("date_from must not be after date_to")
	ErrUnknownDepartment = errors.New("unknown department")
)
