package postgresql

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type reportRepositoryImpl struct {
	db *database.DB
}

func NewReportRepository(db *database.DB) report.ReportRepository {
	return &reportRepositoryImpl{db: db}
}

const reportColumns = `
	id, kind, name, date_from, date_to, employee_id, department_id, leave_type_id,
	snapshot, report_date, created_at, updated_at
`

func scanReport(row pgx.Row) (report.Report, error) {
	var rep report.Report
	var snapshot []byte
	err := row.Scan(
		&rep.ID, &rep.Kind, &rep.Name, &rep.DateFrom, &rep.DateTo, &rep.EmployeeID, &rep.DepartmentID, &rep.LeaveTypeID,
		&snapshot, &rep.ReportDate, &rep.CreatedAt, &rep.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return report.Report{}, report.ErrReportNotFound
		}
		return report.Report{}, err
	}
	rep.Snapshot = json.RawMessage(snapshot)
	return rep, nil
}

// Create implements report.ReportRepository.
func (r *reportRepositoryImpl) Create(ctx context.Context, rep report.Report) (report.Report, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return report.Report{}, fmt.Errorf("generate report id: %w", err)
	}

	query := `
		INSERT INTO reports (id, kind, name, date_from, date_to, employee_id, department_id, leave_type_id, snapshot)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9::jsonb)
		RETURNING ` + reportColumns

	return scanReport(q.QueryRow(ctx, query,
		id.String(), rep.Kind, rep.Name, rep.DateFrom, rep.DateTo,
		rep.EmployeeID, rep.DepartmentID, rep.LeaveTypeID, string(rep.Snapshot),
	))
}

// GetByID implements report.ReportRepository.
func (r *reportRepositoryImpl) GetByID(ctx context.Context, id string) (report.Report, error) {
	q := GetQuerier(ctx, r.db)
	return scanReport(q.QueryRow(ctx, `SELECT `+reportColumns+` FROM reports WHERE id = $1`, id))
}

// Update implements report.ReportRepository. A refreshed snapshot moves report_date to today.
func (r *reportRepositoryImpl) Update(ctx context.Context, rep report.Report) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE reports SET
			name = $2, date_from = $3, date_to = $4,
			employee_id = $5, department_id = $6, leave_type_id = $7,
			snapshot = $8::jsonb, report_date = CURRENT_DATE, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		rep.ID, rep.Name, rep.DateFrom, rep.DateTo,
		rep.EmployeeID, rep.DepartmentID, rep.LeaveTypeID, string(rep.Snapshot),
	)
	if err != nil {
		return fmt.Errorf("failed to update report: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return report.ErrReportNotFound
	}
	return nil
}

// List implements report.ReportRepository.
func (r *reportRepositoryImpl) List(ctx context.Context, filter report.ReportFilter) ([]report.Report, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	if filter.Kind != nil {
		where.add("kind = ?", *filter.Kind)
	}

	var total int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM reports WHERE "+where.String(), where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count reports: %w", err)
	}

	selectQuery := fmt.Sprintf("SELECT %s FROM reports WHERE %s ORDER BY report_date DESC, created_at DESC LIMIT $%d OFFSET $%d",
		reportColumns, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query reports: %w", err)
	}
	defer rows.Close()

	reports := []report.Report{}
	for rows.Next() {
		rep, err := scanReport(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan report: %w", err)
		}
		reports = append(reports, rep)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, err
	}
	return reports, total, nil
}

type reportSourceImpl struct {
	db *database.DB
}

// NewReportSource reads the rows behind report aggregations.
func NewReportSource(db *database.DB) report.Source {
	return &reportSourceImpl{db: db}
}

// scope narrows rows to one employee or one department. employeeCol is the
// qualified employee_id column of the queried table; e must join employees.
func scope(where *whereClause, f report.Filter, employeeCol string) {
	employeeID, departmentID := f.Scope()
	if employeeID != nil {
		where.add(employeeCol+" = ?", *employeeID)
	} else if departmentID != nil {
		where.add("e.department_id = ?", *departmentID)
	}
}

// AttendanceRecords implements report.Source.
func (s *reportSourceImpl) AttendanceRecords(ctx context.Context, f report.Filter, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, s.db)

	var where whereClause
	scope(&where, f, "a.employee_id")
	where.add("a.check_in >= ?", start)
	where.add("a.check_in < ?", end)

	rows, err := q.Query(ctx, attendanceSelect+" WHERE "+where.String()+" ORDER BY a.check_in", where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendance for report: %w", err)
	}
	return collectAttendances(rows)
}

// LeaveRequests implements report.Source.
func (s *reportSourceImpl) LeaveRequests(ctx context.Context, f report.Filter) ([]leave.LeaveRequest, error) {
	if f.Range.Inverted() {
		return []leave.LeaveRequest{}, nil
	}
	q := GetQuerier(ctx, s.db)

	var where whereClause
	scope(&where, f, "lr.employee_id")
	if f.LeaveTypeID != nil {
		where.add("lr.leave_type_id = ?", *f.LeaveTypeID)
	}
	where.add("lr.date_from >= ?", f.Range.From)
	where.add("lr.date_to <= ?", f.Range.To)

	rows, err := q.Query(ctx, leaveRequestSelect+" WHERE "+where.String()+" ORDER BY lr.date_from", where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave requests for report: %w", err)
	}
	return collectLeaveRequests(rows)
}

// Payslips implements report.Source.
func (s *reportSourceImpl) Payslips(ctx context.Context, f report.Filter) ([]payroll.Payslip, error) {
	if f.Range.Inverted() {
		return []payroll.Payslip{}, nil
	}
	q := GetQuerier(ctx, s.db)

	var where whereClause
	scope(&where, f, "p.employee_id")
	where.add("p.payment_status = ?", payroll.PaymentStatusPaid)
	where.add("p.date_from >= ?", f.Range.From)
	where.add("p.date_to <= ?", f.Range.To)

	rows, err := q.Query(ctx, payslipSelect+" WHERE "+where.String()+" ORDER BY p.date_from", where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query payslips for report: %w", err)
	}
	return collectPayslips(rows)
}

// Reviews implements report.Source.
func (s *reportSourceImpl) Reviews(ctx context.Context, f report.Filter) ([]performance.Review, error) {
	if f.Range.Inverted() {
		return []performance.Review{}, nil
	}
	q := GetQuerier(ctx, s.db)

	var where whereClause
	scope(&where, f, "r.employee_id")
	where.add("r.state = ?", performance.ReviewAcknowledged)
	where.add("r.review_date >= ?", f.Range.From)
	where.add("r.review_date <= ?", f.Range.To)

	rows, err := q.Query(ctx, reviewSelect+" WHERE "+where.String()+" ORDER BY r.review_date", where.args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query reviews for report: %w", err)
	}
	return collectReviews(rows)
}
