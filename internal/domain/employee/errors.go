package employee

import "errors"

var (
	ErrEmployeeNotFound           = errors.New("employee not found")
	ErrEmployeeCodeExists         = errors.New("employee code already exists")
	ErrEmployeeAlreadyDeactivated = errors.New("employee is already deactivated")
)
