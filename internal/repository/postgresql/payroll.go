package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type payslipRepositoryImpl struct {
	db *database.DB
}

func NewPayslipRepository(db *database.DB) payroll.PayslipRepository {
	return &payslipRepositoryImpl{db: db}
}

const payslipSelect = `
	SELECT p.id, p.employee_id, p.name, p.date_from, p.date_to,
		   p.attendance_days, p.overtime_hours,
		   p.late_deduction, p.bonus, p.performance_bonus, p.other_allowances, p.other_deductions,
		   p.gross_salary, p.total_deductions, p.net_salary,
		   p.payment_status, p.payment_date, p.payment_reference,
		   p.created_at, p.updated_at,
		   e.name AS employee_name,
		   e.employee_code
	FROM payslips p
	LEFT JOIN employees e ON e.id = p.employee_id
`

func scanPayslip(row pgx.Row) (payroll.Payslip, error) {
	var p payroll.Payslip
	err := row.Scan(
		&p.ID, &p.EmployeeID, &p.Name, &p.DateFrom, &p.DateTo,
		&p.AttendanceDays, &p.OvertimeHours,
		&p.LateDeduction, &p.Bonus, &p.PerformanceBonus, &p.OtherAllowances, &p.OtherDeductions,
		&p.GrossSalary, &p.TotalDeductions, &p.NetSalary,
		&p.PaymentStatus, &p.PaymentDate, &p.PaymentReference,
		&p.CreatedAt, &p.UpdatedAt,
		&p.EmployeeName,
		&p.EmployeeCode,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.Payslip{}, payroll.ErrPayslipNotFound
		}
		return payroll.Payslip{}, err
	}
	return p, nil
}

func collectPayslips(rows pgx.Rows) ([]payroll.Payslip, error) {
	defer rows.Close()

	payslips := []payroll.Payslip{}
	for rows.Next() {
		p, err := scanPayslip(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payslip: %w", err)
		}
		payslips = append(payslips, p)
	}
	return payslips, rows.Err()
}

// Create implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) Create(ctx context.Context, payslip payroll.Payslip) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("generate payslip id: %w", err)
	}

	query := `
		INSERT INTO payslips (
			id, employee_id, name, date_from, date_to, attendance_days, overtime_hours,
			late_deduction, bonus, performance_bonus, other_allowances, other_deductions,
			gross_salary, total_deductions, net_salary, payment_status, payment_date, payment_reference
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11, $12,
			$13, $14, $15, $16, $17, $18
		)
	`
	_, err = q.Exec(ctx, query,
		id.String(), payslip.EmployeeID, payslip.Name, payslip.DateFrom, payslip.DateTo,
		payslip.AttendanceDays, payslip.OvertimeHours,
		payslip.LateDeduction, payslip.Bonus, payslip.PerformanceBonus, payslip.OtherAllowances, payslip.OtherDeductions,
		payslip.GrossSalary, payslip.TotalDeductions, payslip.NetSalary,
		payslip.PaymentStatus, payslip.PaymentDate, payslip.PaymentReference,
	)
	if err != nil {
		return payroll.Payslip{}, fmt.Errorf("failed to insert payslip: %w", err)
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) GetByID(ctx context.Context, id string) (payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)
	return scanPayslip(q.QueryRow(ctx, payslipSelect+` WHERE p.id = $1`, id))
}

// Update implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) Update(ctx context.Context, payslip payroll.Payslip) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE payslips SET
			name = $2, date_from = $3, date_to = $4, attendance_days = $5, overtime_hours = $6,
			late_deduction = $7, bonus = $8, performance_bonus = $9, other_allowances = $10, other_deductions = $11,
			gross_salary = $12, total_deductions = $13, net_salary = $14,
			payment_status = $15, payment_date = $16, payment_reference = $17,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		payslip.ID, payslip.Name, payslip.DateFrom, payslip.DateTo, payslip.AttendanceDays, payslip.OvertimeHours,
		payslip.LateDeduction, payslip.Bonus, payslip.PerformanceBonus, payslip.OtherAllowances, payslip.OtherDeductions,
		payslip.GrossSalary, payslip.TotalDeductions, payslip.NetSalary,
		payslip.PaymentStatus, payslip.PaymentDate, payslip.PaymentReference,
	)
	if err != nil {
		return fmt.Errorf("failed to update payslip: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPayslipNotFound
	}
	return nil
}

// List implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) List(ctx context.Context, filter payroll.PayslipFilter) ([]payroll.Payslip, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	if filter.EmployeeID != nil {
		where.add("p.employee_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.PaymentStatus != nil {
		where.add("p.payment_status = ?", *filter.PaymentStatus)
	}
	if filter.DateFrom != nil {
		where.add("p.date_to >= ?::date", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.add("p.date_from <= ?::date", *filter.DateTo)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM payslips p LEFT JOIN employees e ON e.id = p.employee_id WHERE " + where.String()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count payslips: %w", err)
	}

	selectQuery := fmt.Sprintf("%s WHERE %s ORDER BY p.date_from DESC, e.employee_code LIMIT $%d OFFSET $%d",
		payslipSelect, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query payslips: %w", err)
	}
	payslips, err := collectPayslips(rows)
	if err != nil {
		return nil, 0, err
	}
	return payslips, total, nil
}

// ListRecomputable implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListRecomputable(ctx context.Context, employeeID string) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		payslipSelect+` WHERE p.employee_id = $1 AND p.payment_status <> 'cancelled' ORDER BY p.date_from FOR UPDATE OF p`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	return collectPayslips(rows)
}

// ListRecomputableCovering implements payroll.PayslipRepository.
func (r *payslipRepositoryImpl) ListRecomputableCovering(ctx context.Context, employeeID string, day time.Time) ([]payroll.Payslip, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		payslipSelect+`
		WHERE p.employee_id = $1 AND p.payment_status <> 'cancelled'
		  AND p.date_from <= $2::date AND p.date_to >= $2::date
		ORDER BY p.date_from
		FOR UPDATE OF p`,
		employeeID, day.Format(period.DateLayout))
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips: %w", err)
	}
	return collectPayslips(rows)
}
