package employee

import "errors"

var (
	ErrEmployeeNotFound    = errors.New("employee not found")
	ErrEmployeeCodeExists  = errors.New("employee code already exists")
	ErrEmailExists         = errors.New("work email already registered")
	ErrDepartmentNotFound  = errors.New("department not found")
	ErrDepartmentExists    = errors.New("department name already exists")
	ErrUnauthorized        = errors.New("unauthorized to access this employee")
	ErrInvalidStatusChange = errors.New("resigned employees cannot change status")
)
