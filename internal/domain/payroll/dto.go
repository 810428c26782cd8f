package payroll

import (
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== PAYSLIP DTOs ==========

type CreatePayslipRequest struct {
	EmployeeID       string           `json:"employee_id"`
	Name             *string          `json:"name,omitempty"`
	DateFrom         string           `json:"date_from"` // YYYY-MM-DD
	DateTo           string           `json:"date_to"`   // YYYY-MM-DD
	LateDeduction    *decimal.Decimal `json:"late_deduction,omitempty"`
	Bonus            *decimal.Decimal `json:"bonus,omitempty"`
	PerformanceBonus *decimal.Decimal `json:"performance_bonus,omitempty"`
	OtherAllowances  *decimal.Decimal `json:"other_allowances,omitempty"`
	OtherDeductions  *decimal.Decimal `json:"other_deductions,omitempty"`

	// Parsed by Validate
	Period period.Range `json:"-"`
}

func (r *CreatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}

	rng, err := period.Parse(r.DateFrom, r.DateTo)
	if err != nil {
		errs.Add("period", err.Error())
	}
	r.Period = rng

	validateAmounts(&errs, map[string]*decimal.Decimal{
		"late_deduction":    r.LateDeduction,
		"bonus":             r.Bonus,
		"performance_bonus": r.PerformanceBonus,
		"other_allowances":  r.OtherAllowances,
		"other_deductions":  r.OtherDeductions,
	})

	return errs.Err()
}

type UpdatePayslipRequest struct {
	ID               string           `json:"-"`
	Name             *string          `json:"name,omitempty"`
	DateFrom         *string          `json:"date_from,omitempty"`
	DateTo           *string          `json:"date_to,omitempty"`
	LateDeduction    *decimal.Decimal `json:"late_deduction,omitempty"`
	Bonus            *decimal.Decimal `json:"bonus,omitempty"`
	PerformanceBonus *decimal.Decimal `json:"performance_bonus,omitempty"`
	OtherAllowances  *decimal.Decimal `json:"other_allowances,omitempty"`
	OtherDeductions  *decimal.Decimal `json:"other_deductions,omitempty"`
}

func (r *UpdatePayslipRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if r.DateFrom != nil {
		if _, ok := validator.IsValidDate(*r.DateFrom); !ok {
			errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
		}
	}
	if r.DateTo != nil {
		if _, ok := validator.IsValidDate(*r.DateTo); !ok {
			errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
		}
	}

	validateAmounts(&errs, map[string]*decimal.Decimal{
		"late_deduction":    r.LateDeduction,
		"bonus":             r.Bonus,
		"performance_bonus": r.PerformanceBonus,
		"other_allowances":  r.OtherAllowances,
		"other_deductions":  r.OtherDeductions,
	})

	return errs.Err()
}

type MarkPaidRequest struct {
	PaymentReference *string `json:"payment_reference,omitempty"`
}

func (r *MarkPaidRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.PaymentReference != nil && len(*r.PaymentReference) > 255 {
		errs.Add("payment_reference", "payment_reference must not exceed 255 characters")
	}

	return errs.Err()
}

// ========== FILTER DTOs ==========

type PayslipFilter struct {
	EmployeeID    *string `json:"employee_id,omitempty"`
	DepartmentID  *string `json:"department_id,omitempty"`
	PaymentStatus *string `json:"payment_status,omitempty"`
	DateFrom      *string `json:"date_from,omitempty"` // payslips ending on or after
	DateTo        *string `json:"date_to,omitempty"`   // payslips starting on or before

	pagination.Params
}

func (f *PayslipFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if f.PaymentStatus != nil && !validator.IsInSlice(*f.PaymentStatus, PaymentStatuses) {
		errs.Add("payment_status", "payment_status must be one of: draft, pending, paid, cancelled")
	}
	if f.DateFrom != nil {
		if _, ok := validator.IsValidDate(*f.DateFrom); !ok {
			errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
		}
	}
	if f.DateTo != nil {
		if _, ok := validator.IsValidDate(*f.DateTo); !ok {
			errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ListPayslipResponse struct {
	Payslips   []Payslip `json:"payslips"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	Limit      int       `json:"limit"`
	TotalPages int       `json:"total_pages"`
}

func validateAmounts(errs *validator.ValidationErrors, amounts map[string]*decimal.Decimal) {
	for field, amount := range amounts {
		if amount != nil && amount.IsNegative() {
			errs.Add(field, field+" must be non-negative")
		}
	}
}
