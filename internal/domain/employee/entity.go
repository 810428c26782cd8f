package employee

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

type Department struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type EmploymentStatus string

const (
	EmploymentStatusProbation EmploymentStatus = "probation"
	EmploymentStatusConfirmed EmploymentStatus = "confirmed"
	EmploymentStatusNotice    EmploymentStatus = "notice"
	EmploymentStatusResigned  EmploymentStatus = "resigned"
)

var EmploymentStatuses = []string{
	string(EmploymentStatusProbation),
	string(EmploymentStatusConfirmed),
	string(EmploymentStatusNotice),
	string(EmploymentStatusResigned),
}

const (
	DefaultProbationPeriodMonths = 3
	DefaultNoticePeriodDays      = 30
)

type Employee struct {
	ID                    string           `json:"id"`
	EmployeeCode          string           `json:"employee_code"`
	Name                  string           `json:"name"`
	WorkEmail             *string          `json:"work_email,omitempty"`
	Phone                 *string          `json:"phone,omitempty"`
	JobTitle              *string          `json:"job_title,omitempty"`
	DepartmentID          *string          `json:"department_id,omitempty"`
	DateOfJoining         time.Time        `json:"date_of_joining"`
	ConfirmationDate      *time.Time       `json:"confirmation_date,omitempty"`
	BasicSalary           decimal.Decimal  `json:"basic_salary"`
	EmploymentStatus      EmploymentStatus `json:"employment_status"`
	ProbationPeriodMonths int              `json:"probation_period_months"`
	NoticePeriodDays      int              `json:"notice_period_days"`
	EmergencyContact      *string          `json:"emergency_contact,omitempty"`
	EmergencyContactPhone *string          `json:"emergency_contact_phone,omitempty"`
	CreatedAt             time.Time        `json:"created_at"`
	UpdatedAt             time.Time        `json:"updated_at"`

	// Join
	DepartmentName *string `json:"department_name,omitempty"`
}

// ProbationEndDate is the joining date plus the probation period.
func (e Employee) ProbationEndDate() time.Time {
	return e.DateOfJoining.AddDate(0, e.ProbationPeriodMonths, 0)
}

// FormatEmployeeCode renders a sequence value as EMP00001.
func FormatEmployeeCode(seq int64) string {
	return fmt.Sprintf("EMP%05d", seq)
}
