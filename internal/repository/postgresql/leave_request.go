package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type leaveRequestRepositoryImpl struct {
	db *database.DB
}

func NewLeaveRequestRepository(db *database.DB) leave.LeaveRequestRepository {
	return &leaveRequestRepositoryImpl{db: db}
}

const leaveRequestSelect = `
	SELECT lr.id, lr.employee_id, lr.leave_type_id, lr.date_from, lr.date_to, lr.reason,
		   lr.is_half_day, lr.half_day_period, lr.is_emergency, lr.attachment_url, lr.number_of_days, lr.state,
		   lr.approved_by, lr.approved_at, lr.rejected_by, lr.rejected_at, lr.rejection_reason,
		   lr.created_at, lr.updated_at,
		   lt.name AS leave_type_name,
		   e.name AS employee_name
	FROM leave_requests lr
	LEFT JOIN leave_types lt ON lt.id = lr.leave_type_id
	LEFT JOIN employees e ON e.id = lr.employee_id
`

func scanLeaveRequest(row pgx.Row) (leave.LeaveRequest, error) {
	var lr leave.LeaveRequest
	err := row.Scan(
		&lr.ID, &lr.EmployeeID, &lr.LeaveTypeID, &lr.DateFrom, &lr.DateTo, &lr.Reason,
		&lr.IsHalfDay, &lr.HalfDayPeriod, &lr.IsEmergency, &lr.AttachmentURL, &lr.NumberOfDays, &lr.State,
		&lr.ApprovedBy, &lr.ApprovedAt, &lr.RejectedBy, &lr.RejectedAt, &lr.RejectionReason,
		&lr.CreatedAt, &lr.UpdatedAt,
		&lr.LeaveTypeName,
		&lr.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveRequest{}, leave.ErrLeaveRequestNotFound
		}
		return leave.LeaveRequest{}, err
	}
	return lr, nil
}

func collectLeaveRequests(rows pgx.Rows) ([]leave.LeaveRequest, error) {
	defer rows.Close()

	requests := []leave.LeaveRequest{}
	for rows.Next() {
		lr, err := scanLeaveRequest(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave request: %w", err)
		}
		requests = append(requests, lr)
	}
	return requests, rows.Err()
}

// Create implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Create(ctx context.Context, request leave.LeaveRequest) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("generate leave request id: %w", err)
	}

	query := `
		INSERT INTO leave_requests (
			id, employee_id, leave_type_id, date_from, date_to, reason,
			is_half_day, half_day_period, is_emergency, attachment_url, number_of_days, state
		) VALUES (
			$1, $2, $3, $4, $5, $6,
			$7, $8, $9, $10, $11, $12
		)
	`
	_, err = q.Exec(ctx, query,
		id.String(), request.EmployeeID, request.LeaveTypeID, request.DateFrom, request.DateTo, request.Reason,
		request.IsHalfDay, request.HalfDayPeriod, request.IsEmergency, request.AttachmentURL, request.NumberOfDays, request.State,
	)
	if err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to insert leave request: %w", err)
	}

	return r.GetByID(ctx, id.String())
}

// GetByID implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveRequest(q.QueryRow(ctx, leaveRequestSelect+` WHERE lr.id = $1`, id))
}

// Update implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Update(ctx context.Context, request leave.LeaveRequest) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_requests SET
			leave_type_id = $2, date_from = $3, date_to = $4, reason = $5,
			is_half_day = $6, half_day_period = $7, is_emergency = $8, attachment_url = $9,
			number_of_days = $10, state = $11,
			approved_by = $12, approved_at = $13, rejected_by = $14, rejected_at = $15, rejection_reason = $16,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		request.ID, request.LeaveTypeID, request.DateFrom, request.DateTo, request.Reason,
		request.IsHalfDay, request.HalfDayPeriod, request.IsEmergency, request.AttachmentURL,
		request.NumberOfDays, request.State,
		request.ApprovedBy, request.ApprovedAt, request.RejectedBy, request.RejectedAt, request.RejectionReason,
	)
	if err != nil {
		return fmt.Errorf("failed to update leave request: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// Delete implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) Delete(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	tag, err := q.Exec(ctx, `DELETE FROM leave_requests WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveRequestNotFound
	}
	return nil
}

// List implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) List(ctx context.Context, filter leave.LeaveRequestFilter) ([]leave.LeaveRequest, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	if filter.EmployeeID != nil {
		where.add("lr.employee_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.LeaveTypeID != nil {
		where.add("lr.leave_type_id = ?", *filter.LeaveTypeID)
	}
	if filter.State != nil {
		where.add("lr.state = ?", *filter.State)
	}
	if filter.DateFrom != nil {
		where.add("lr.date_to >= ?::date", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		where.add("lr.date_from <= ?::date", *filter.DateTo)
	}

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM leave_requests lr
		LEFT JOIN employees e ON e.id = lr.employee_id
		WHERE ` + where.String()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count leave requests: %w", err)
	}

	selectQuery := fmt.Sprintf("%s WHERE %s ORDER BY lr.date_from DESC, lr.created_at DESC LIMIT $%d OFFSET $%d",
		leaveRequestSelect, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query leave requests: %w", err)
	}
	requests, err := collectLeaveRequests(rows)
	if err != nil {
		return nil, 0, err
	}
	return requests, total, nil
}

// ListActiveByEmployee implements leave.LeaveRequestRepository.
func (r *leaveRequestRepositoryImpl) ListActiveByEmployee(ctx context.Context, employeeID string) ([]leave.LeaveRequest, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx,
		leaveRequestSelect+` WHERE lr.employee_id = $1 AND lr.state IN ('confirm', 'validate1', 'validate') ORDER BY lr.date_from`,
		employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to query active leave requests: %w", err)
	}
	return collectLeaveRequests(rows)
}
