package payroll

import "errors"

var (
	ErrPayslipNotFound      = errors.New("payslip not found")
	ErrPayslipNotEditable   = errors.New("paid or cancelled payslips cannot be modified")
	ErrInvalidPaymentChange = errors.New("payment status change not allowed from the current status")
	ErrInvalidPeriod        = errors.New("invalid payslip period")
	ErrEmployeeNotFound     = errors.New("employee not found")
	ErrUnauthorized         = errors.New("unauthorized to access this payslip")
)
