package report

import "errors"

var (
	ErrReportNotFound = errors.New("report not found")
	ErrInvalidKind    = errors.New("report kind must be one of: attendance, leave, payroll, performance")
)
