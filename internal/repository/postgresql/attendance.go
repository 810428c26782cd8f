package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type attendanceRepository struct {
	db *database.DB
}

func NewAttendanceRepository(db *database.DB) attendance.AttendanceRepository {
	return &attendanceRepository{db: db}
}

const attendanceSelect = `
	SELECT a.id, a.employee_id, a.check_in, a.check_out, a.worked_hours, a.status,
		   a.late_minutes, a.overtime_hours,
		   a.check_in_latitude, a.check_in_longitude, a.check_out_latitude, a.check_out_longitude,
		   a.work_location, a.remarks, a.created_at, a.updated_at,
		   e.name AS employee_name
	FROM attendances a
	LEFT JOIN employees e ON e.id = a.employee_id
`

func scanAttendance(row pgx.Row) (attendance.Attendance, error) {
	var att attendance.Attendance
	err := row.Scan(
		&att.ID, &att.EmployeeID, &att.CheckIn, &att.CheckOut, &att.WorkedHours, &att.Status,
		&att.LateMinutes, &att.OvertimeHours,
		&att.CheckInLatitude, &att.CheckInLongitude, &att.CheckOutLatitude, &att.CheckOutLongitude,
		&att.WorkLocation, &att.Remarks, &att.CreatedAt, &att.UpdatedAt,
		&att.EmployeeName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return attendance.Attendance{}, attendance.ErrAttendanceNotFound
		}
		return attendance.Attendance{}, err
	}
	return att, nil
}

func collectAttendances(rows pgx.Rows) ([]attendance.Attendance, error) {
	defer rows.Close()

	attendances := []attendance.Attendance{}
	for rows.Next() {
		att, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan attendance: %w", err)
		}
		attendances = append(attendances, att)
	}
	return attendances, rows.Err()
}

// Create implements attendance.AttendanceRepository.
func (a *attendanceRepository) Create(ctx context.Context, newAttendance attendance.Attendance) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	id, err := uuid.NewV7()
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("generate attendance id: %w", err)
	}

	query := `
		INSERT INTO attendances (
			id, employee_id, check_in, check_out, worked_hours, status, late_minutes, overtime_hours,
			check_in_latitude, check_in_longitude, check_out_latitude, check_out_longitude,
			work_location, remarks
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8,
			$9, $10, $11, $12,
			$13, $14
		)
	`
	_, err = q.Exec(ctx, query,
		id.String(), newAttendance.EmployeeID, newAttendance.CheckIn, newAttendance.CheckOut,
		newAttendance.WorkedHours, newAttendance.Status, newAttendance.LateMinutes, newAttendance.OvertimeHours,
		newAttendance.CheckInLatitude, newAttendance.CheckInLongitude,
		newAttendance.CheckOutLatitude, newAttendance.CheckOutLongitude,
		newAttendance.WorkLocation, newAttendance.Remarks,
	)
	if isUniqueViolation(err, "attendances_one_open_per_employee") {
		return attendance.Attendance{}, attendance.ErrAlreadyCheckedIn
	}
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to insert attendance: %w", err)
	}

	return a.GetByID(ctx, id.String())
}

// GetByID implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetByID(ctx context.Context, id string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)
	return scanAttendance(q.QueryRow(ctx, attendanceSelect+` WHERE a.id = $1`, id))
}

// GetOpenByEmployee implements attendance.AttendanceRepository.
func (a *attendanceRepository) GetOpenByEmployee(ctx context.Context, employeeID string) (attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	att, err := scanAttendance(q.QueryRow(ctx,
		attendanceSelect+` WHERE a.employee_id = $1 AND a.check_out IS NULL FOR UPDATE OF a`, employeeID))
	if errors.Is(err, attendance.ErrAttendanceNotFound) {
		return attendance.Attendance{}, attendance.ErrNotCheckedIn
	}
	return att, err
}

// Update implements attendance.AttendanceRepository.
func (a *attendanceRepository) Update(ctx context.Context, att attendance.Attendance) error {
	q := GetQuerier(ctx, a.db)

	query := `
		UPDATE attendances SET
			check_in = $2, check_out = $3, worked_hours = $4, status = $5,
			late_minutes = $6, overtime_hours = $7,
			check_in_latitude = $8, check_in_longitude = $9,
			check_out_latitude = $10, check_out_longitude = $11,
			work_location = $12, remarks = $13,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		att.ID, att.CheckIn, att.CheckOut, att.WorkedHours, att.Status,
		att.LateMinutes, att.OvertimeHours,
		att.CheckInLatitude, att.CheckInLongitude,
		att.CheckOutLatitude, att.CheckOutLongitude,
		att.WorkLocation, att.Remarks,
	)
	if isUniqueViolation(err, "attendances_one_open_per_employee") {
		return attendance.ErrAlreadyCheckedIn
	}
	if err != nil {
		return fmt.Errorf("failed to update attendance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return attendance.ErrAttendanceNotFound
	}
	return nil
}

// List implements attendance.AttendanceRepository.
func (a *attendanceRepository) List(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	q := GetQuerier(ctx, a.db)

	var where whereClause
	if filter.EmployeeID != nil {
		where.add("a.employee_id = ?", *filter.EmployeeID)
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.From != nil {
		where.add("a.check_in >= ?", *filter.From)
	}
	if filter.To != nil {
		where.add("a.check_in < ?", *filter.To)
	}
	if filter.Status != nil {
		where.add("a.status = ?", *filter.Status)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM attendances a LEFT JOIN employees e ON e.id = a.employee_id WHERE " + where.String()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count attendances: %w", err)
	}

	selectQuery := fmt.Sprintf("%s WHERE %s ORDER BY a.check_in DESC LIMIT $%d OFFSET $%d",
		attendanceSelect, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendances: %w", err)
	}
	attendances, err := collectAttendances(rows)
	if err != nil {
		return nil, 0, err
	}
	return attendances, total, nil
}

// ListByEmployeeBetween implements attendance.AttendanceRepository.
func (a *attendanceRepository) ListByEmployeeBetween(ctx context.Context, employeeID string, start, end time.Time) ([]attendance.Attendance, error) {
	q := GetQuerier(ctx, a.db)

	rows, err := q.Query(ctx,
		attendanceSelect+` WHERE a.employee_id = $1 AND a.check_in >= $2 AND a.check_in < $3 ORDER BY a.check_in`,
		employeeID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to query attendances: %w", err)
	}
	return collectAttendances(rows)
}
