package employee

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
)

type EmployeeServiceImpl struct {
	tx             database.Transactor
	employeeRepo   employee.EmployeeRepository
	departmentRepo employee.DepartmentRepository
	salaryListener employee.SalaryChangeListener
	now            func() time.Time
}

func NewEmployeeService(
	tx database.Transactor,
	employeeRepo employee.EmployeeRepository,
	departmentRepo employee.DepartmentRepository,
	salaryListener employee.SalaryChangeListener,
) employee.EmployeeService {
	return &EmployeeServiceImpl{
		tx:             tx,
		employeeRepo:   employeeRepo,
		departmentRepo: departmentRepo,
		salaryListener: salaryListener,
		now:            time.Now,
	}
}

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

// CreateDepartment implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateDepartment(ctx context.Context, req employee.CreateDepartmentRequest) (employee.Department, error) {
	if _, err := authorize(ctx, user.PermissionEmployeeManage); err != nil {
		return employee.Department{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Department{}, err
	}
	return s.departmentRepo.Create(ctx, employee.Department{Name: strings.TrimSpace(req.Name)})
}

// ListDepartments implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListDepartments(ctx context.Context) ([]employee.Department, error) {
	return s.departmentRepo.List(ctx)
}

// GetEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) GetEmployee(ctx context.Context, id string) (employee.Employee, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return employee.Employee{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	if !user.HasPermission(actor.Role, user.PermissionEmployeeViewAll) && !actor.OwnsEmployee(id) {
		return employee.Employee{}, employee.ErrUnauthorized
	}
	return s.employeeRepo.GetByID(ctx, id)
}

// CreateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) CreateEmployee(ctx context.Context, req employee.CreateEmployeeRequest) (employee.Employee, error) {
	if _, err := authorize(ctx, user.PermissionEmployeeManage); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	emp := employee.Employee{
		Name:                  strings.TrimSpace(req.Name),
		WorkEmail:             req.WorkEmail,
		Phone:                 req.Phone,
		JobTitle:              req.JobTitle,
		DepartmentID:          req.DepartmentID,
		DateOfJoining:         period.Date(s.now()),
		BasicSalary:           req.BasicSalary,
		EmploymentStatus:      employee.EmploymentStatusProbation,
		ProbationPeriodMonths: employee.DefaultProbationPeriodMonths,
		NoticePeriodDays:      employee.DefaultNoticePeriodDays,
		EmergencyContact:      req.EmergencyContact,
		EmergencyContactPhone: req.EmergencyContactPhone,
	}
	if req.JoiningDate != nil {
		emp.DateOfJoining = *req.JoiningDate
	}
	if req.EmploymentStatus != nil {
		emp.EmploymentStatus = employee.EmploymentStatus(*req.EmploymentStatus)
	}
	if emp.EmploymentStatus == employee.EmploymentStatusConfirmed {
		today := period.Date(s.now())
		emp.ConfirmationDate = &today
	}
	if req.ProbationPeriodMonths != nil {
		emp.ProbationPeriodMonths = *req.ProbationPeriodMonths
	}
	if req.NoticePeriodDays != nil {
		emp.NoticePeriodDays = *req.NoticePeriodDays
	}

	var created employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if emp.DepartmentID != nil {
			if _, err := s.departmentRepo.GetByID(ctx, *emp.DepartmentID); err != nil {
				return err
			}
		}

		if req.EmployeeCode != nil && *req.EmployeeCode != "" {
			emp.EmployeeCode = *req.EmployeeCode
		} else {
			code, err := s.employeeRepo.NextEmployeeCode(ctx)
			if err != nil {
				return err
			}
			emp.EmployeeCode = code
		}

		var err error
		created, err = s.employeeRepo.Create(ctx, emp)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return created, nil
}

// UpdateEmployee implements employee.EmployeeService.
func (s *EmployeeServiceImpl) UpdateEmployee(ctx context.Context, req employee.UpdateEmployeeRequest) (employee.Employee, error) {
	if _, err := authorize(ctx, user.PermissionEmployeeManage); err != nil {
		return employee.Employee{}, err
	}
	if err := req.Validate(); err != nil {
		return employee.Employee{}, err
	}

	var updated employee.Employee
	err := s.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := s.employeeRepo.LockByID(ctx, req.ID); err != nil {
			return err
		}
		emp, err := s.employeeRepo.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}

		if req.Name != nil {
			emp.Name = strings.TrimSpace(*req.Name)
		}
		if req.WorkEmail != nil {
			emp.WorkEmail = req.WorkEmail
		}
		if req.Phone != nil {
			emp.Phone = req.Phone
		}
		if req.JobTitle != nil {
			emp.JobTitle = req.JobTitle
		}
		if req.DepartmentID != nil {
			if _, err := s.departmentRepo.GetByID(ctx, *req.DepartmentID); err != nil {
				return err
			}
			emp.DepartmentID = req.DepartmentID
		}
		if req.EmploymentStatus != nil {
			next := employee.EmploymentStatus(*req.EmploymentStatus)
			if emp.EmploymentStatus == employee.EmploymentStatusResigned && next != employee.EmploymentStatusResigned {
				return employee.ErrInvalidStatusChange
			}
			if next == employee.EmploymentStatusConfirmed && emp.EmploymentStatus != employee.EmploymentStatusConfirmed {
				today := period.Date(s.now())
				emp.ConfirmationDate = &today
			}
			emp.EmploymentStatus = next
		}
		if req.ProbationPeriodMonths != nil {
			emp.ProbationPeriodMonths = *req.ProbationPeriodMonths
		}
		if req.NoticePeriodDays != nil {
			emp.NoticePeriodDays = *req.NoticePeriodDays
		}
		if req.EmergencyContact != nil {
			emp.EmergencyContact = req.EmergencyContact
		}
		if req.EmergencyContactPhone != nil {
			emp.EmergencyContactPhone = req.EmergencyContactPhone
		}

		salaryChanged := req.BasicSalary != nil && !req.BasicSalary.Equal(emp.BasicSalary)
		if req.BasicSalary != nil {
			emp.BasicSalary = *req.BasicSalary
		}

		if err := s.employeeRepo.Update(ctx, emp); err != nil {
			return err
		}
		if salaryChanged && s.salaryListener != nil {
			if err := s.salaryListener.RecomputeForEmployee(ctx, emp.ID); err != nil {
				return fmt.Errorf("failed to recompute payslips: %w", err)
			}
		}

		updated, err = s.employeeRepo.GetByID(ctx, emp.ID)
		return err
	})
	if err != nil {
		return employee.Employee{}, err
	}
	return updated, nil
}

// ListEmployees implements employee.EmployeeService.
func (s *EmployeeServiceImpl) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	if _, err := authorize(ctx, user.PermissionEmployeeViewAll); err != nil {
		return employee.ListEmployeeResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	employees, total, err := s.employeeRepo.List(ctx, filter)
	if err != nil {
		return employee.ListEmployeeResponse{}, err
	}

	return employee.ListEmployeeResponse{
		Employees:  employees,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}
