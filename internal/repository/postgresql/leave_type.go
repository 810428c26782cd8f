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

type leaveTypeRepositoryImpl struct {
	db *database.DB
}

func NewLeaveTypeRepository(db *database.DB) leave.LeaveTypeRepository {
	return &leaveTypeRepositoryImpl{db: db}
}

const leaveTypeColumns = `
	id, name, requires_attachment, max_consecutive_days, min_days_notice, allow_half_day,
	carry_forward, max_carry_forward, double_validation, active, created_at, updated_at
`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var lt leave.LeaveType
	err := row.Scan(
		&lt.ID,
		&lt.Name,
		&lt.RequiresAttachment,
		&lt.MaxConsecutiveDays,
		&lt.MinDaysNotice,
		&lt.AllowHalfDay,
		&lt.CarryForward,
		&lt.MaxCarryForward,
		&lt.DoubleValidation,
		&lt.Active,
		&lt.CreatedAt,
		&lt.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, err
	}
	return lt, nil
}

// Create implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Create(ctx context.Context, leaveType leave.LeaveType) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return leave.LeaveType{}, fmt.Errorf("generate leave type id: %w", err)
	}

	query := `
		INSERT INTO leave_types (
			id, name, requires_attachment, max_consecutive_days, min_days_notice, allow_half_day,
			carry_forward, max_carry_forward, double_validation, active
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + leaveTypeColumns

	created, err := scanLeaveType(q.QueryRow(ctx, query,
		id.String(), leaveType.Name, leaveType.RequiresAttachment, leaveType.MaxConsecutiveDays,
		leaveType.MinDaysNotice, leaveType.AllowHalfDay, leaveType.CarryForward, leaveType.MaxCarryForward,
		leaveType.DoubleValidation, leaveType.Active,
	))
	if isUniqueViolation(err, "leave_types_name_key") {
		return leave.LeaveType{}, leave.ErrLeaveTypeExists
	}
	if err != nil {
		return leave.LeaveType{}, err
	}
	return created, nil
}

// GetByID implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) GetByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)
	return scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id))
}

// List implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) List(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	q := GetQuerier(ctx, r.db)

	query := `SELECT ` + leaveTypeColumns + ` FROM leave_types`
	if activeOnly {
		query += ` WHERE active`
	}
	query += ` ORDER BY name`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query leave types: %w", err)
	}
	defer rows.Close()

	leaveTypes := []leave.LeaveType{}
	for rows.Next() {
		lt, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		leaveTypes = append(leaveTypes, lt)
	}
	return leaveTypes, rows.Err()
}

// Update implements leave.LeaveTypeRepository.
func (r *leaveTypeRepositoryImpl) Update(ctx context.Context, leaveType leave.LeaveType) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE leave_types SET
			name = $2, requires_attachment = $3, max_consecutive_days = $4, min_days_notice = $5,
			allow_half_day = $6, carry_forward = $7, max_carry_forward = $8, double_validation = $9,
			active = $10, updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		leaveType.ID, leaveType.Name, leaveType.RequiresAttachment, leaveType.MaxConsecutiveDays,
		leaveType.MinDaysNotice, leaveType.AllowHalfDay, leaveType.CarryForward, leaveType.MaxCarryForward,
		leaveType.DoubleValidation, leaveType.Active,
	)
	if isUniqueViolation(err, "leave_types_name_key") {
		return leave.ErrLeaveTypeExists
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrLeaveTypeNotFound
	}
	return nil
}
