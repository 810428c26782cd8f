package employee

import "context"

type DepartmentRepository interface {
	Create(ctx context.Context, department Department) (Department, error)
	GetByID(ctx context.Context, id string) (Department, error)
	List(ctx context.Context) ([]Department, error)
}

type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	Create(ctx context.Context, newEmployee Employee) (Employee, error)
	Update(ctx context.Context, emp Employee) error
	List(ctx context.Context, filter EmployeeFilter) ([]Employee, int64, error)
	// NextEmployeeCode draws the next value of the employee code sequence.
	NextEmployeeCode(ctx context.Context) (string, error)
	// LockByID takes a row lock on the employee until the surrounding transaction ends.
	LockByID(ctx context.Context, id string) error
}

// SalaryChangeListener is notified after an employee's basic salary changes.
type SalaryChangeListener interface {
	RecomputeForEmployee(ctx context.Context, employeeID string) error
}
