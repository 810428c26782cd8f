package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

type employeeRepositoryImpl struct {
	db *database.DB
}

func NewEmployeeRepository(db *database.DB) employee.EmployeeRepository {
	return &employeeRepositoryImpl{db: db}
}

const employeeSelect = `
	SELECT e.id, e.employee_code, e.name, e.work_email, e.phone, e.job_title, e.department_id,
		   e.date_of_joining, e.confirmation_date, e.basic_salary, e.employment_status,
		   e.probation_period_months, e.notice_period_days, e.emergency_contact, e.emergency_contact_phone,
		   e.created_at, e.updated_at,
		   d.name AS department_name
	FROM employees e
	LEFT JOIN departments d ON d.id = e.department_id
`

func scanEmployee(row pgx.Row) (employee.Employee, error) {
	var e employee.Employee
	err := row.Scan(
		&e.ID,
		&e.EmployeeCode,
		&e.Name,
		&e.WorkEmail,
		&e.Phone,
		&e.JobTitle,
		&e.DepartmentID,
		&e.DateOfJoining,
		&e.ConfirmationDate,
		&e.BasicSalary,
		&e.EmploymentStatus,
		&e.ProbationPeriodMonths,
		&e.NoticePeriodDays,
		&e.EmergencyContact,
		&e.EmergencyContactPhone,
		&e.CreatedAt,
		&e.UpdatedAt,
		&e.DepartmentName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Employee{}, employee.ErrEmployeeNotFound
		}
		return employee.Employee{}, err
	}
	return e, nil
}

func mapEmployeeWriteError(err error) error {
	switch {
	case isUniqueViolation(err, "employees_employee_code_key"):
		return employee.ErrEmployeeCodeExists
	case isUniqueViolation(err, "employees_work_email_key"):
		return employee.ErrEmailExists
	}
	return err
}

// GetByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)
	return scanEmployee(q.QueryRow(ctx, employeeSelect+` WHERE e.id = $1`, id))
}

// Create implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Create(ctx context.Context, newEmployee employee.Employee) (employee.Employee, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Employee{}, fmt.Errorf("generate employee id: %w", err)
	}

	query := `
		INSERT INTO employees (
			id, employee_code, name, work_email, phone, job_title, department_id,
			date_of_joining, confirmation_date, basic_salary, employment_status,
			probation_period_months, notice_period_days, emergency_contact, emergency_contact_phone
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7,
			$8, $9, $10, $11,
			$12, $13, $14, $15
		)
	`
	_, err = q.Exec(ctx, query,
		id.String(), newEmployee.EmployeeCode, newEmployee.Name, newEmployee.WorkEmail, newEmployee.Phone,
		newEmployee.JobTitle, newEmployee.DepartmentID,
		newEmployee.DateOfJoining, newEmployee.ConfirmationDate, newEmployee.BasicSalary, newEmployee.EmploymentStatus,
		newEmployee.ProbationPeriodMonths, newEmployee.NoticePeriodDays, newEmployee.EmergencyContact, newEmployee.EmergencyContactPhone,
	)
	if err != nil {
		return employee.Employee{}, mapEmployeeWriteError(err)
	}

	return r.GetByID(ctx, id.String())
}

// Update implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) Update(ctx context.Context, emp employee.Employee) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE employees SET
			name = $2, work_email = $3, phone = $4, job_title = $5, department_id = $6,
			date_of_joining = $7, confirmation_date = $8, basic_salary = $9, employment_status = $10,
			probation_period_months = $11, notice_period_days = $12,
			emergency_contact = $13, emergency_contact_phone = $14,
			updated_at = NOW()
		WHERE id = $1
	`
	tag, err := q.Exec(ctx, query,
		emp.ID, emp.Name, emp.WorkEmail, emp.Phone, emp.JobTitle, emp.DepartmentID,
		emp.DateOfJoining, emp.ConfirmationDate, emp.BasicSalary, emp.EmploymentStatus,
		emp.ProbationPeriodMonths, emp.NoticePeriodDays,
		emp.EmergencyContact, emp.EmergencyContactPhone,
	)
	if err != nil {
		return mapEmployeeWriteError(err)
	}
	if tag.RowsAffected() == 0 {
		return employee.ErrEmployeeNotFound
	}
	return nil
}

// List implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) List(ctx context.Context, filter employee.EmployeeFilter) ([]employee.Employee, int64, error) {
	q := GetQuerier(ctx, r.db)

	var where whereClause
	if filter.Search != nil && *filter.Search != "" {
		where.add("(e.name ILIKE ? OR e.employee_code ILIKE ?)", "%"+*filter.Search+"%")
	}
	if filter.DepartmentID != nil {
		where.add("e.department_id = ?", *filter.DepartmentID)
	}
	if filter.EmploymentStatus != nil {
		where.add("e.employment_status = ?", *filter.EmploymentStatus)
	}

	var total int64
	countQuery := "SELECT COUNT(*) FROM employees e WHERE " + where.String()
	if err := q.QueryRow(ctx, countQuery, where.args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count employees: %w", err)
	}

	selectQuery := fmt.Sprintf("%s WHERE %s ORDER BY e.employee_code LIMIT $%d OFFSET $%d",
		employeeSelect, where.String(), where.next(), where.next()+1)
	args := append(where.args, filter.Limit, filter.Offset())

	rows, err := q.Query(ctx, selectQuery, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query employees: %w", err)
	}
	defer rows.Close()

	employees := []employee.Employee{}
	for rows.Next() {
		e, err := scanEmployee(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan employee: %w", err)
		}
		employees = append(employees, e)
	}
	return employees, total, rows.Err()
}

// NextEmployeeCode implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) NextEmployeeCode(ctx context.Context) (string, error) {
	q := GetQuerier(ctx, r.db)

	var seq int64
	if err := q.QueryRow(ctx, `SELECT nextval('employee_code_seq')`).Scan(&seq); err != nil {
		return "", fmt.Errorf("failed to draw employee code: %w", err)
	}
	return employee.FormatEmployeeCode(seq), nil
}

// LockByID implements employee.EmployeeRepository.
func (r *employeeRepositoryImpl) LockByID(ctx context.Context, id string) error {
	q := GetQuerier(ctx, r.db)

	var locked string
	err := q.QueryRow(ctx, `SELECT id FROM employees WHERE id = $1 FOR UPDATE`, id).Scan(&locked)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.ErrEmployeeNotFound
		}
		return err
	}
	return nil
}
