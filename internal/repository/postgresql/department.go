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

type departmentRepositoryImpl struct {
	db *database.DB
}

func NewDepartmentRepository(db *database.DB) employee.DepartmentRepository {
	return &departmentRepositoryImpl{db: db}
}

// Create implements employee.DepartmentRepository.
func (r *departmentRepositoryImpl) Create(ctx context.Context, department employee.Department) (employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	id, err := uuid.NewV7()
	if err != nil {
		return employee.Department{}, fmt.Errorf("generate department id: %w", err)
	}

	query := `
		INSERT INTO departments (id, name)
		VALUES ($1, $2)
		RETURNING id, name, created_at, updated_at
	`

	var created employee.Department
	err = q.QueryRow(ctx, query, id.String(), department.Name).Scan(
		&created.ID,
		&created.Name,
		&created.CreatedAt,
		&created.UpdatedAt,
	)
	if isUniqueViolation(err, "departments_name_key") {
		return employee.Department{}, employee.ErrDepartmentExists
	}
	if err != nil {
		return employee.Department{}, err
	}

	return created, nil
}

// GetByID implements employee.DepartmentRepository.
func (r *departmentRepositoryImpl) GetByID(ctx context.Context, id string) (employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	var d employee.Department
	err := q.QueryRow(ctx, `SELECT id, name, created_at, updated_at FROM departments WHERE id = $1`, id).Scan(
		&d.ID,
		&d.Name,
		&d.CreatedAt,
		&d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return employee.Department{}, employee.ErrDepartmentNotFound
		}
		return employee.Department{}, err
	}
	return d, nil
}

// List implements employee.DepartmentRepository.
func (r *departmentRepositoryImpl) List(ctx context.Context) ([]employee.Department, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, `SELECT id, name, created_at, updated_at FROM departments ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	departments := []employee.Department{}
	for rows.Next() {
		var d employee.Department
		if err := rows.Scan(&d.ID, &d.Name, &d.CreatedAt, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan department: %w", err)
		}
		departments = append(departments, d)
	}
	return departments, rows.Err()
}
