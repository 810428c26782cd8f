package payroll

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type PayrollServiceImpl struct {
	tx             database.Transactor
	payslipRepo    payroll.PayslipRepository
	employeeRepo   employee.EmployeeRepository
	attendanceRepo attendance.AttendanceRepository
	audit          audit.Repository
	loc            *time.Location
	now            func() time.Time
}

func NewPayrollService(
	tx database.Transactor,
	payslipRepo payroll.PayslipRepository,
	employeeRepo employee.EmployeeRepository,
	attendanceRepo attendance.AttendanceRepository,
	auditRepo audit.Repository,
	loc *time.Location,
) *PayrollServiceImpl {
	if loc == nil {
		loc = time.UTC
	}
	return &PayrollServiceImpl{
		tx:             tx,
		payslipRepo:    payslipRepo,
		employeeRepo:   employeeRepo,
		attendanceRepo: attendanceRepo,
		audit:          auditRepo,
		loc:            loc,
		now:            time.Now,
	}
}

var (
	_ payroll.PayrollService        = (*PayrollServiceImpl)(nil)
	_ employee.SalaryChangeListener = (*PayrollServiceImpl)(nil)
	_ attendance.PayslipRecomputer  = (*PayrollServiceImpl)(nil)
)

func authorize(ctx context.Context, permission user.Permission) (jwt.Actor, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return jwt.Actor{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	if !user.HasPermission(actor.Role, permission) {
		return jwt.Actor{}, user.ErrInsufficientPermissions
	}
	return actor, nil
}

// actorID returns the acting user, or "" for work triggered without one.
func actorID(ctx context.Context) string {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return ""
	}
	return actor.UserID
}

func defaultPayslipName(emp employee.Employee, from time.Time) string {
	return fmt.Sprintf("SLIP/%s/%s", emp.EmployeeCode, from.Format("2006-01"))
}

func amountOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// ========== PAYSLIPS ==========

// CreatePayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) CreatePayslip(ctx context.Context, req payroll.CreatePayslipRequest) (payroll.Payslip, error) {
	if _, err := authorize(ctx, user.PermissionPayrollManage); err != nil {
		return payroll.Payslip{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Payslip{}, err
	}

	payslip := payroll.Payslip{
		EmployeeID:       req.EmployeeID,
		DateFrom:         req.Period.From,
		DateTo:           req.Period.To,
		LateDeduction:    amountOrZero(req.LateDeduction),
		Bonus:            amountOrZero(req.Bonus),
		PerformanceBonus: amountOrZero(req.PerformanceBonus),
		OtherAllowances:  amountOrZero(req.OtherAllowances),
		OtherDeductions:  amountOrZero(req.OtherDeductions),
		PaymentStatus:    payroll.PaymentStatusDraft,
	}

	var created payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		emp, err := s.employeeRepo.GetByID(ctx, req.EmployeeID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			payslip.Name = strings.TrimSpace(*req.Name)
		} else {
			payslip.Name = defaultPayslipName(emp, payslip.DateFrom)
		}

		if err := s.calculate(ctx, &payslip, emp.BasicSalary); err != nil {
			return err
		}

		created, err = s.payslipRepo.Create(ctx, payslip)
		return err
	})
	if err != nil {
		return payroll.Payslip{}, err
	}
	return created, nil
}

// UpdatePayslip implements payroll.PayrollService. Manual amounts and the
// period may change until the payslip is paid or cancelled.
func (s *PayrollServiceImpl) UpdatePayslip(ctx context.Context, req payroll.UpdatePayslipRequest) (payroll.Payslip, error) {
	if _, err := authorize(ctx, user.PermissionPayrollManage); err != nil {
		return payroll.Payslip{}, err
	}
	if err := req.Validate(); err != nil {
		return payroll.Payslip{}, err
	}

	var updated payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslip, err := s.payslipRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		if !payslip.IsEditable() {
			return payroll.ErrPayslipNotEditable
		}

		if req.Name != nil {
			payslip.Name = strings.TrimSpace(*req.Name)
		}
		if req.DateFrom != nil {
			payslip.DateFrom, _ = time.Parse(period.DateLayout, *req.DateFrom)
		}
		if req.DateTo != nil {
			payslip.DateTo, _ = time.Parse(period.DateLayout, *req.DateTo)
		}
		if req.LateDeduction != nil {
			payslip.LateDeduction = *req.LateDeduction
		}
		if req.Bonus != nil {
			payslip.Bonus = *req.Bonus
		}
		if req.PerformanceBonus != nil {
			payslip.PerformanceBonus = *req.PerformanceBonus
		}
		if req.OtherAllowances != nil {
			payslip.OtherAllowances = *req.OtherAllowances
		}
		if req.OtherDeductions != nil {
			payslip.OtherDeductions = *req.OtherDeductions
		}

		emp, err := s.employeeRepo.GetByID(ctx, payslip.EmployeeID)
		if err != nil {
			return err
		}
		if err := s.calculate(ctx, &payslip, emp.BasicSalary); err != nil {
			return err
		}
		if err := s.payslipRepo.Update(ctx, payslip); err != nil {
			return err
		}

		updated, err = s.payslipRepo.GetByID(ctx, payslip.ID)
		return err
	})
	if err != nil {
		return payroll.Payslip{}, err
	}
	return updated, nil
}

// GetPayslip implements payroll.PayrollService.
func (s *PayrollServiceImpl) GetPayslip(ctx context.Context, id string) (payroll.Payslip, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}

	payslip, err := s.payslipRepo.GetByID(ctx, id)
	if err != nil {
		return payroll.Payslip{}, err
	}
	if !actor.OwnsEmployee(payslip.EmployeeID) && !user.HasPermission(actor.Role, user.PermissionPayrollManage) {
		return payroll.Payslip{}, payroll.ErrUnauthorized
	}
	return payslip, nil
}

// ListPayslips implements payroll.PayrollService.
func (s *PayrollServiceImpl) ListPayslips(ctx context.Context, filter payroll.PayslipFilter) (payroll.ListPayslipResponse, error) {
	if err := filter.Validate(); err != nil {
		return payroll.ListPayslipResponse{}, err
	}
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return payroll.ListPayslipResponse{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}

	if !user.HasPermission(actor.Role, user.PermissionPayrollManage) {
		if actor.EmployeeID == nil {
			return payroll.ListPayslipResponse{}, user.ErrEmployeeLinkRequired
		}
		filter.EmployeeID = actor.EmployeeID
		filter.DepartmentID = nil
	}

	payslips, total, err := s.payslipRepo.List(ctx, filter)
	if err != nil {
		return payroll.ListPayslipResponse{}, err
	}

	return payroll.ListPayslipResponse{
		Payslips:   payslips,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}

// ========== RECOMPUTATION ==========

// calculate refreshes the derived figures of payslip from attendance in its period.
func (s *PayrollServiceImpl) calculate(ctx context.Context, payslip *payroll.Payslip, basicSalary decimal.Decimal) error {
	rng := payslip.Period()

	var records []attendance.Attendance
	if !rng.Inverted() {
		start, end := rng.Bounds(s.loc)
		var err error
		records, err = s.attendanceRepo.ListByEmployeeBetween(ctx, payslip.EmployeeID, start, end)
		if err != nil {
			return fmt.Errorf("failed to load attendance for payslip: %w", err)
		}
	}

	inputs := payslip.Inputs(basicSalary)
	inputs.AttendanceDays, inputs.OvertimeHours = payroll.SummarizeAttendance(records, rng, s.loc)
	payslip.Apply(payroll.Calculate(inputs))
	return nil
}

// refresh recalculates and stores payslip. Paid payslips keep their status
// but the recalculation is recorded on their trail.
func (s *PayrollServiceImpl) refresh(ctx context.Context, payslip payroll.Payslip, basicSalary decimal.Decimal) (payroll.Payslip, error) {
	before := payslip.NetSalary
	if err := s.calculate(ctx, &payslip, basicSalary); err != nil {
		return payroll.Payslip{}, err
	}
	if err := s.payslipRepo.Update(ctx, payslip); err != nil {
		return payroll.Payslip{}, err
	}

	if payslip.PaymentStatus == payroll.PaymentStatusPaid {
		status := string(payslip.PaymentStatus)
		event := audit.Transition(audit.RecordPayslip, payslip.ID, "recompute", actorID(ctx), status, status).
			With("net_before", before.StringFixed(2)).
			With("net_after", payslip.NetSalary.StringFixed(2))
		if _, err := s.audit.Append(ctx, event); err != nil {
			return payroll.Payslip{}, fmt.Errorf("failed to record payslip recompute: %w", err)
		}
	}
	return payslip, nil
}

// Recompute implements payroll.PayrollService.
func (s *PayrollServiceImpl) Recompute(ctx context.Context, id string) (payroll.Payslip, error) {
	if _, err := authorize(ctx, user.PermissionPayrollManage); err != nil {
		return payroll.Payslip{}, err
	}

	var result payroll.Payslip
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslip, err := s.payslipRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if payslip.PaymentStatus == payroll.PaymentStatusCancelled {
			return payroll.ErrPayslipNotEditable
		}
		emp, err := s.employeeRepo.GetByID(ctx, payslip.EmployeeID)
		if err != nil {
			return err
		}
		if _, err := s.refresh(ctx, payslip, emp.BasicSalary); err != nil {
			return err
		}
		result, err = s.payslipRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return payroll.Payslip{}, err
	}
	return result, nil
}

// RecomputeForEmployee implements employee.SalaryChangeListener.
func (s *PayrollServiceImpl) RecomputeForEmployee(ctx context.Context, employeeID string) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslips, err := s.payslipRepo.ListRecomputable(ctx, employeeID)
		if err != nil {
			return err
		}
		return s.refreshAll(ctx, employeeID, payslips)
	})
}

// RecomputeCovering implements attendance.PayslipRecomputer.
func (s *PayrollServiceImpl) RecomputeCovering(ctx context.Context, employeeID string, day time.Time) error {
	return s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslips, err := s.payslipRepo.ListRecomputableCovering(ctx, employeeID, day)
		if err != nil {
			return err
		}
		return s.refreshAll(ctx, employeeID, payslips)
	})
}

func (s *PayrollServiceImpl) refreshAll(ctx context.Context, employeeID string, payslips []payroll.Payslip) error {
	if len(payslips) == 0 {
		return nil
	}
	emp, err := s.employeeRepo.GetByID(ctx, employeeID)
	if err != nil {
		return err
	}
	for _, p := range payslips {
		if _, err := s.refresh(ctx, p, emp.BasicSalary); err != nil {
			return fmt.Errorf("failed to recompute payslip %s: %w", p.ID, err)
		}
	}
	return nil
}

// ========== PAYMENT STATUS ==========

// MarkPending implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPending(ctx context.Context, id string) (payroll.Payslip, error) {
	return s.changePayment(ctx, id, payroll.PaymentActionMarkPending, nil)
}

// MarkPaid implements payroll.PayrollService.
func (s *PayrollServiceImpl) MarkPaid(ctx context.Context, id string, req payroll.MarkPaidRequest) (payroll.Payslip, error) {
	if err := req.Validate(); err != nil {
		return payroll.Payslip{}, err
	}
	return s.changePayment(ctx, id, payroll.PaymentActionMarkPaid, req.PaymentReference)
}

// Cancel implements payroll.PayrollService.
func (s *PayrollServiceImpl) Cancel(ctx context.Context, id string) (payroll.Payslip, error) {
	return s.changePayment(ctx, id, payroll.PaymentActionCancel, nil)
}

func (s *PayrollServiceImpl) changePayment(ctx context.Context, id string, action payroll.PaymentAction, reference *string) (payroll.Payslip, error) {
	actor, err := authorize(ctx, user.PermissionPayrollManage)
	if err != nil {
		return payroll.Payslip{}, err
	}

	var result payroll.Payslip
	err = s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		payslip, err := s.payslipRepo.GetByID(ctx, id)
		if err != nil {
			return err
		}

		from := payslip.PaymentStatus
		to, err := payroll.NextPaymentStatus(from, action)
		if err != nil {
			return err
		}
		payslip.PaymentStatus = to

		event := audit.Transition(audit.RecordPayslip, payslip.ID, string(action), actor.UserID, string(from), string(to))
		if to == payroll.PaymentStatusPaid {
			paidOn := period.LocalDate(s.now(), s.loc)
			payslip.PaymentDate = &paidOn
			payslip.PaymentReference = reference
			if reference != nil {
				event = event.With("payment_reference", *reference)
			}
		}

		if err := s.payslipRepo.Update(ctx, payslip); err != nil {
			return err
		}
		if _, err := s.audit.Append(ctx, event); err != nil {
			return fmt.Errorf("failed to record payment change: %w", err)
		}

		result, err = s.payslipRepo.GetByID(ctx, id)
		return err
	})
	if err != nil {
		return payroll.Payslip{}, err
	}
	return result, nil
}
