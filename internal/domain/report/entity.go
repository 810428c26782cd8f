package report

import (
	"encoding/json"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindAttendance  Kind = "attendance"
	KindLeave       Kind = "leave"
	KindPayroll     Kind = "payroll"
	KindPerformance Kind = "performance"
)

var Kinds = []string{string(KindAttendance), string(KindLeave), string(KindPayroll), string(KindPerformance)}

// Filter is shared by every aggregation. EmployeeID wins over DepartmentID;
// LeaveTypeID only narrows the leave report.
type Filter struct {
	Range        period.Range
	EmployeeID   *string
	DepartmentID *string
	LeaveTypeID  *string
}

// Scope returns the employee or department restriction, never both.
func (f Filter) Scope() (employeeID, departmentID *string) {
	if f.EmployeeID != nil {
		return f.EmployeeID, nil
	}
	return nil, f.DepartmentID
}

type AttendanceSnapshot struct {
	TotalDays     int     `json:"total_days"`
	PresentDays   int     `json:"present_days"`
	AbsentDays    int     `json:"absent_days"`
	LateDays      int     `json:"late_days"`
	TotalHours    float64 `json:"total_hours"`
	OvertimeHours float64 `json:"overtime_hours"`
}

type LeaveSnapshot struct {
	TotalRequests    int     `json:"total_requests"`
	ApprovedRequests int     `json:"approved_requests"`
	PendingRequests  int     `json:"pending_requests"`
	RejectedRequests int     `json:"rejected_requests"`
	TotalDays        float64 `json:"total_days"`
}

type PayrollSnapshot struct {
	TotalEmployees  int             `json:"total_employees"`
	TotalGross      decimal.Decimal `json:"total_gross"`
	TotalDeductions decimal.Decimal `json:"total_deductions"`
	TotalNet        decimal.Decimal `json:"total_net"`
}

type PerformanceSnapshot struct {
	TotalReviews   int     `json:"total_reviews"`
	AverageRating  float64 `json:"average_rating"`
	ExcellentCount int     `json:"excellent_count"`
	GoodCount      int     `json:"good_count"`
	AverageCount   int     `json:"average_count"`
	PoorCount      int     `json:"poor_count"`
}

// Dashboard bundles the four snapshots for one filter.
type Dashboard struct {
	DateFrom    string              `json:"date_from"`
	DateTo      string              `json:"date_to"`
	Attendance  AttendanceSnapshot  `json:"attendance"`
	Leave       LeaveSnapshot       `json:"leave"`
	Payroll     PayrollSnapshot     `json:"payroll"`
	Performance PerformanceSnapshot `json:"performance"`
}

// Report is a saved filter with the figures computed at its last refresh.
type Report struct {
	ID           string          `json:"id"`
	Kind         Kind            `json:"kind"`
	Name         string          `json:"name"`
	DateFrom     time.Time       `json:"date_from"`
	DateTo       time.Time       `json:"date_to"`
	EmployeeID   *string         `json:"employee_id,omitempty"`
	DepartmentID *string         `json:"department_id,omitempty"`
	LeaveTypeID  *string         `json:"leave_type_id,omitempty"`
	Snapshot     json.RawMessage `json:"snapshot"`
	ReportDate   time.Time       `json:"report_date"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Filter rebuilds the aggregation filter from the saved columns.
func (r Report) Filter() Filter {
	return Filter{
		Range:        period.New(r.DateFrom, r.DateTo),
		EmployeeID:   r.EmployeeID,
		DepartmentID: r.DepartmentID,
		LeaveTypeID:  r.LeaveTypeID,
	}
}
