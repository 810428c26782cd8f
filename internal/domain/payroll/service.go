package payroll

import (
	"context"
	"time"
)

type PayrollService interface {
	CreatePayslip(ctx context.Context, req CreatePayslipRequest) (Payslip, error)
	UpdatePayslip(ctx context.Context, req UpdatePayslipRequest) (Payslip, error)
	GetPayslip(ctx context.Context, id string) (Payslip, error)
	ListPayslips(ctx context.Context, filter PayslipFilter) (ListPayslipResponse, error)

	// Recompute rebuilds the derived figures from attendance and the current basic salary.
	Recompute(ctx context.Context, id string) (Payslip, error)

	MarkPending(ctx context.Context, id string) (Payslip, error)
	MarkPaid(ctx context.Context, id string, req MarkPaidRequest) (Payslip, error)
	Cancel(ctx context.Context, id string) (Payslip, error)

	// RecomputeForEmployee refreshes every non-cancelled payslip after a salary change.
	RecomputeForEmployee(ctx context.Context, employeeID string) error

	// RecomputeCovering refreshes payslips whose period contains day after an attendance write.
	RecomputeCovering(ctx context.Context, employeeID string, day time.Time) error
}
