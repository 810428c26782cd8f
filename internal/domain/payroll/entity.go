package payroll

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

// PaymentStatus enum
type PaymentStatus string

const (
	PaymentStatusDraft     PaymentStatus = "draft"
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusPaid      PaymentStatus = "paid"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

var PaymentStatuses = []string{
	string(PaymentStatusDraft), string(PaymentStatusPending),
	string(PaymentStatusPaid), string(PaymentStatusCancelled),
}

// Payslip - one employee's pay for an inclusive date range.
// AttendanceDays, OvertimeHours, GrossSalary, TotalDeductions and NetSalary are derived.
type Payslip struct {
	ID               string          `json:"id"`
	EmployeeID       string          `json:"employee_id"`
	Name             string          `json:"name"`
	DateFrom         time.Time       `json:"date_from"`
	DateTo           time.Time       `json:"date_to"`
	AttendanceDays   float64         `json:"attendance_days"`
	OvertimeHours    float64         `json:"overtime_hours"`
	LateDeduction    decimal.Decimal `json:"late_deduction"`
	Bonus            decimal.Decimal `json:"bonus"`
	PerformanceBonus decimal.Decimal `json:"performance_bonus"`
	OtherAllowances  decimal.Decimal `json:"other_allowances"`
	OtherDeductions  decimal.Decimal `json:"other_deductions"`
	GrossSalary      decimal.Decimal `json:"gross_salary"`
	TotalDeductions  decimal.Decimal `json:"total_deductions"`
	NetSalary        decimal.Decimal `json:"net_salary"`
	PaymentStatus    PaymentStatus   `json:"payment_status"`
	PaymentDate      *time.Time      `json:"payment_date,omitempty"`
	PaymentReference *string         `json:"payment_reference,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`

	// Joined fields
	EmployeeName *string `json:"employee_name,omitempty"`
	EmployeeCode *string `json:"employee_code,omitempty"`
}

// Period returns the payslip's inclusive date range.
func (p Payslip) Period() period.Range {
	return period.New(p.DateFrom, p.DateTo)
}

// Inputs returns the calculator inputs held on the payslip. basicSalary comes from the employee.
func (p Payslip) Inputs(basicSalary decimal.Decimal) Inputs {
	return Inputs{
		BasicSalary:      basicSalary,
		AttendanceDays:   p.AttendanceDays,
		OvertimeHours:    p.OvertimeHours,
		LateDeduction:    p.LateDeduction,
		Bonus:            p.Bonus,
		PerformanceBonus: p.PerformanceBonus,
		OtherAllowances:  p.OtherAllowances,
		OtherDeductions:  p.OtherDeductions,
	}
}

// Apply copies a calculation result onto the payslip.
func (p *Payslip) Apply(r Result) {
	p.AttendanceDays = r.AttendanceDays
	p.OvertimeHours = r.OvertimeHours
	p.GrossSalary = r.GrossSalary
	p.TotalDeductions = r.TotalDeductions
	p.NetSalary = r.NetSalary
}

// IsEditable reports whether manual inputs may still change.
func (p Payslip) IsEditable() bool {
	return p.PaymentStatus == PaymentStatusDraft || p.PaymentStatus == PaymentStatusPending
}
