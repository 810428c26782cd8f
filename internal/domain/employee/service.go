package employee

import (
	"context"
)

// EmployeeService defines business logic for employee operations
type EmployeeService interface {
	CreateDepartment(ctx context.Context, req CreateDepartmentRequest) (Department, error)
	ListDepartments(ctx context.Context) ([]Department, error)

	// GetEmployee retrieves a single employee; employees may only read their own record
	GetEmployee(ctx context.Context, id string) (Employee, error)

	// CreateEmployee creates a new employee, drawing a code from the sequence when none is given
	CreateEmployee(ctx context.Context, req CreateEmployeeRequest) (Employee, error)

	// UpdateEmployee updates an employee; a basic_salary change recomputes their payslips
	UpdateEmployee(ctx context.Context, req UpdateEmployeeRequest) (Employee, error)

	ListEmployees(ctx context.Context, filter EmployeeFilter) (ListEmployeeResponse, error)
}
