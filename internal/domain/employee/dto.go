package employee

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

type CreateDepartmentRequest struct {
	Name string `json:"name"`
}

func (r *CreateDepartmentRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	return errs.Err()
}

type CreateEmployeeRequest struct {
	EmployeeCode          *string         `json:"employee_code,omitempty"`
	Name                  string          `json:"name"`
	WorkEmail             *string         `json:"work_email,omitempty"`
	Phone                 *string         `json:"phone,omitempty"`
	JobTitle              *string         `json:"job_title,omitempty"`
	DepartmentID          *string         `json:"department_id,omitempty"`
	DateOfJoining         *string         `json:"date_of_joining,omitempty"` // YYYY-MM-DD, defaults to today
	BasicSalary           decimal.Decimal `json:"basic_salary"`
	EmploymentStatus      *string         `json:"employment_status,omitempty"`
	ProbationPeriodMonths *int            `json:"probation_period_months,omitempty"`
	NoticePeriodDays      *int            `json:"notice_period_days,omitempty"`
	EmergencyContact      *string         `json:"emergency_contact,omitempty"`
	EmergencyContactPhone *string         `json:"emergency_contact_phone,omitempty"`

	// Parsed by Validate
	JoiningDate *time.Time `json:"-"`
}

func (r *CreateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeCode != nil && *r.EmployeeCode != "" && !validator.IsValidEmployeeCode(*r.EmployeeCode) {
		errs.Add("employee_code", "employee_code must look like EMP00001")
	}

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}

	if r.WorkEmail != nil && !validator.IsValidEmail(*r.WorkEmail) {
		errs.Add("work_email", "work_email must be a valid email address")
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	if r.DateOfJoining != nil {
		d, ok := validator.IsValidDate(*r.DateOfJoining)
		if !ok {
			errs.Add("date_of_joining", "date_of_joining must be in YYYY-MM-DD format")
		} else {
			r.JoiningDate = &d
		}
	}

	if r.BasicSalary.IsNegative() {
		errs.Add("basic_salary", "basic_salary must not be negative")
	}

	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, EmploymentStatuses) {
		errs.Add("employment_status", "employment_status must be one of: probation, confirmed, notice, resigned")
	}

	if r.ProbationPeriodMonths != nil && *r.ProbationPeriodMonths < 0 {
		errs.Add("probation_period_months", "probation_period_months must not be negative")
	}
	if r.NoticePeriodDays != nil && *r.NoticePeriodDays < 0 {
		errs.Add("notice_period_days", "notice_period_days must not be negative")
	}

	return errs.Err()
}

type UpdateEmployeeRequest struct {
	ID                    string           `json:"-"`
	Name                  *string          `json:"name,omitempty"`
	WorkEmail             *string          `json:"work_email,omitempty"`
	Phone                 *string          `json:"phone,omitempty"`
	JobTitle              *string          `json:"job_title,omitempty"`
	DepartmentID          *string          `json:"department_id,omitempty"`
	BasicSalary           *decimal.Decimal `json:"basic_salary,omitempty"`
	EmploymentStatus      *string          `json:"employment_status,omitempty"`
	ProbationPeriodMonths *int             `json:"probation_period_months,omitempty"`
	NoticePeriodDays      *int             `json:"notice_period_days,omitempty"`
	EmergencyContact      *string          `json:"emergency_contact,omitempty"`
	EmergencyContactPhone *string          `json:"emergency_contact_phone,omitempty"`
}

func (r *UpdateEmployeeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}

	if r.WorkEmail != nil && !validator.IsValidEmail(*r.WorkEmail) {
		errs.Add("work_email", "work_email must be a valid email address")
	}

	if r.DepartmentID != nil && !validator.IsValidUUID(*r.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}

	if r.BasicSalary != nil && r.BasicSalary.IsNegative() {
		errs.Add("basic_salary", "basic_salary must not be negative")
	}

	if r.EmploymentStatus != nil && !validator.IsInSlice(*r.EmploymentStatus, EmploymentStatuses) {
		errs.Add("employment_status", "employment_status must be one of: probation, confirmed, notice, resigned")
	}

	if r.ProbationPeriodMonths != nil && *r.ProbationPeriodMonths < 0 {
		errs.Add("probation_period_months", "probation_period_months must not be negative")
	}
	if r.NoticePeriodDays != nil && *r.NoticePeriodDays < 0 {
		errs.Add("notice_period_days", "notice_period_days must not be negative")
	}

	return errs.Err()
}

type EmployeeFilter struct {
	Search           *string `json:"search,omitempty"`
	DepartmentID     *string `json:"department_id,omitempty"`
	EmploymentStatus *string `json:"employment_status,omitempty"`

	pagination.Params
}

func (f *EmployeeFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if f.EmploymentStatus != nil && !validator.IsInSlice(*f.EmploymentStatus, EmploymentStatuses) {
		errs.Add("employment_status", "employment_status must be one of: probation, confirmed, notice, resigned")
	}

	return errs.Err()
}

type ListEmployeeResponse struct {
	Employees  []Employee `json:"employees"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	Limit      int        `json:"limit"`
	TotalPages int        `json:"total_pages"`
}
