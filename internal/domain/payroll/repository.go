package payroll

import (
	"context"
	"time"
)

// PayslipRepository defines data access methods for payslips.
type PayslipRepository interface {
	Create(ctx context.Context, payslip Payslip) (Payslip, error)
	GetByID(ctx context.Context, id string) (Payslip, error)
	Update(ctx context.Context, payslip Payslip) error
	List(ctx context.Context, filter PayslipFilter) ([]Payslip, int64, error)

	// ListRecomputable returns the employee's payslips that are not cancelled.
	ListRecomputable(ctx context.Context, employeeID string) ([]Payslip, error)

	// ListRecomputableCovering narrows ListRecomputable to payslips whose period contains day.
	ListRecomputableCovering(ctx context.Context, employeeID string, day time.Time) ([]Payslip, error)
}
