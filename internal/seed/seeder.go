package seed

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

var Departments = []string{"Engineering", "Product", "Design", "Human Resources", "Marketing", "Sales"}

// DefaultLeaveTypes are created by LeaveTypes when missing. Existing types
// with the same name are reactivated and left otherwise untouched.
var DefaultLeaveTypes = []leave.CreateLeaveTypeRequest{
	{Name: "Paid Leave", MaxConsecutiveDays: 15, CarryForward: true, MaxCarryForward: 5},
	{Name: "Sick Leave", RequiresAttachment: true},
	{Name: "Casual Leave", MaxConsecutiveDays: 3},
}

type Seeder struct {
	client *Client
	faker  *gofakeit.Faker
	logger *slog.Logger
	now    func() time.Time
}

func NewSeeder(client *Client, faker *gofakeit.Faker, logger *slog.Logger) *Seeder {
	if faker == nil {
		faker = gofakeit.New(0)
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Seeder{
		client: client,
		faker:  faker,
		logger: logger,
		now:    time.Now,
	}
}

// Summary counts the records created by Demo
type Summary struct {
	Departments   int
	Employees     int
	Attendances   int
	LeaveRequests int
	Payslips      int
	Reviews       int
	Skipped       int
}

// LeaveTypes makes sure every default leave type exists and is active.
func (s *Seeder) LeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	var existing []leave.LeaveType
	if err := s.client.Get(ctx, "/leave-types?active_only=false", &existing); err != nil {
		return nil, fmt.Errorf("list leave types: %w", err)
	}
	byName := make(map[string]leave.LeaveType, len(existing))
	for _, lt := range existing {
		byName[strings.ToLower(lt.Name)] = lt
	}

	result := make([]leave.LeaveType, 0, len(DefaultLeaveTypes))
	for _, req := range DefaultLeaveTypes {
		lt, ok := byName[strings.ToLower(req.Name)]
		switch {
		case !ok:
			if err := s.client.Post(ctx, "/leave-types", req, &lt); err != nil {
				return nil, fmt.Errorf("create leave type %s: %w", req.Name, err)
			}
			s.logger.Info("created leave type", "name", lt.Name)
		case !lt.Active:
			active := true
			if err := s.client.Put(ctx, "/leave-types/"+lt.ID, leave.UpdateLeaveTypeRequest{Active: &active}, &lt); err != nil {
				return nil, fmt.Errorf("reactivate leave type %s: %w", req.Name, err)
			}
			s.logger.Info("reactivated leave type", "name", lt.Name)
		}
		result = append(result, lt)
	}
	return result, nil
}

// Demo creates departments and employees, then a week of attendance, some
// leave requests, last month's payslips and a review per employee.
func (s *Seeder) Demo(ctx context.Context, employees int) (Summary, error) {
	var summary Summary

	departments, created, err := s.departments(ctx)
	if err != nil {
		return summary, err
	}
	summary.Departments = created

	leaveTypes, err := s.LeaveTypes(ctx)
	if err != nil {
		return summary, err
	}

	staff := make([]employee.Employee, 0, employees)
	for i := 0; i < employees; i++ {
		emp, err := s.employee(ctx, departments)
		if err != nil {
			return summary, err
		}
		staff = append(staff, emp)
	}
	summary.Employees = len(staff)

	today := period.Date(s.now())
	for _, emp := range staff {
		n, err := s.attendance(ctx, emp, today)
		if err != nil {
			return summary, err
		}
		summary.Attendances += n

		ok, err := s.leaveRequest(ctx, emp, leaveTypes, today)
		switch {
		case err != nil:
			return summary, err
		case ok:
			summary.LeaveRequests++
		default:
			summary.Skipped++
		}

		if err := s.payslip(ctx, emp, today); err != nil {
			return summary, err
		}
		summary.Payslips++

		if err := s.review(ctx, emp, today); err != nil {
			return summary, err
		}
		summary.Reviews++
	}

	s.logger.Info("demo data created",
		"departments", summary.Departments,
		"employees", summary.Employees,
		"attendances", summary.Attendances,
		"leave_requests", summary.LeaveRequests,
		"payslips", summary.Payslips,
		"reviews", summary.Reviews,
	)
	return summary, nil
}

// CleanLeaves removes every leave request, cancelling active ones first.
func (s *Seeder) CleanLeaves(ctx context.Context) (int, error) {
	requests, err := ListAll[leave.LeaveRequest](ctx, s.client, "/leaves", nil)
	if err != nil {
		return 0, fmt.Errorf("list leave requests: %w", err)
	}

	deleted := 0
	for _, request := range requests {
		if !request.State.CanDelete() {
			if err := s.client.Post(ctx, "/leaves/"+request.ID+"/cancel", nil, nil); err != nil {
				s.logger.Warn("could not cancel leave request", "id", request.ID, "state", request.State, "error", err)
				continue
			}
		}
		if err := s.client.Delete(ctx, "/leaves/"+request.ID); err != nil {
			s.logger.Warn("could not delete leave request", "id", request.ID, "error", err)
			continue
		}
		deleted++
	}

	s.logger.Info("leave requests removed", "deleted", deleted, "found", len(requests))
	return deleted, nil
}

func (s *Seeder) departments(ctx context.Context) (map[string]string, int, error) {
	var existing []employee.Department
	if err := s.client.Get(ctx, "/departments", &existing); err != nil {
		return nil, 0, fmt.Errorf("list departments: %w", err)
	}

	ids := make(map[string]string, len(Departments))
	for _, d := range existing {
		ids[d.Name] = d.ID
	}

	created := 0
	for _, name := range Departments {
		if _, ok := ids[name]; ok {
			continue
		}
		var d employee.Department
		if err := s.client.Post(ctx, "/departments", employee.CreateDepartmentRequest{Name: name}, &d); err != nil {
			return nil, 0, fmt.Errorf("create department %s: %w", name, err)
		}
		ids[name] = d.ID
		created++
	}
	return ids, created, nil
}

func (s *Seeder) employee(ctx context.Context, departments map[string]string) (employee.Employee, error) {
	first, last := s.faker.FirstName(), s.faker.LastName()
	email := fmt.Sprintf("%s.%s.%d@dayflow.test", emailPart(first), emailPart(last), s.faker.Number(100, 999))
	departmentID := departments[Departments[s.faker.Number(0, len(Departments)-1)]]
	joined := s.now().AddDate(0, -s.faker.Number(3, 48), 0).Format(period.DateLayout)

	req := employee.CreateEmployeeRequest{
		Name:          first + " " + last,
		WorkEmail:     &email,
		Phone:         ptr(s.faker.Phone()),
		JobTitle:      ptr(s.faker.JobTitle()),
		DepartmentID:  &departmentID,
		DateOfJoining: &joined,
		BasicSalary:   decimal.NewFromInt(int64(s.faker.Number(20, 90)) * 1000),
	}

	var emp employee.Employee
	if err := s.client.Post(ctx, "/employees", req, &emp); err != nil {
		return emp, fmt.Errorf("create employee %s: %w", req.Name, err)
	}
	return emp, nil
}

// attendance records the last seven weekdays with a 90% presence rate.
func (s *Seeder) attendance(ctx context.Context, emp employee.Employee, today time.Time) (int, error) {
	created := 0
	for offset := 1; offset <= 7; offset++ {
		day := today.AddDate(0, 0, -offset)
		if day.Weekday() == time.Saturday || day.Weekday() == time.Sunday {
			continue
		}
		if s.faker.Float64Range(0, 1) >= 0.9 {
			continue
		}

		checkIn := day.Add(8*time.Hour + time.Duration(s.faker.Number(0, 90))*time.Minute)
		checkOut := day.Add(17*time.Hour + time.Duration(s.faker.Number(0, 119))*time.Minute)
		out := checkOut.Format(time.RFC3339)
		req := attendance.CreateAttendanceRequest{
			EmployeeID: emp.ID,
			CheckIn:    checkIn.Format(time.RFC3339),
			CheckOut:   &out,
		}
		if err := s.client.Post(ctx, "/attendances", req, nil); err != nil {
			return created, fmt.Errorf("create attendance for %s: %w", emp.EmployeeCode, err)
		}
		created++
	}
	return created, nil
}

// leaveRequest files either a past approved leave or an upcoming pending one.
// Policy violations such as an overlap on a re-run are skipped.
func (s *Seeder) leaveRequest(ctx context.Context, emp employee.Employee, types []leave.LeaveType, today time.Time) (bool, error) {
	lt := types[s.faker.Number(0, len(types)-1)]
	past := s.faker.Bool()

	var from time.Time
	if past {
		from = today.AddDate(0, 0, -s.faker.Number(15, 45))
	} else {
		from = today.AddDate(0, 0, s.faker.Number(lt.MinDaysNotice+7, lt.MinDaysNotice+30))
	}
	to := from.AddDate(0, 0, s.faker.Number(0, 1))

	req := leave.CreateLeaveRequestRequest{
		EmployeeID:  &emp.ID,
		LeaveTypeID: lt.ID,
		DateFrom:    from.Format(period.DateLayout),
		DateTo:      to.Format(period.DateLayout),
		Reason:      s.faker.Sentence(6),
		IsEmergency: past,
		Submit:      true,
	}
	if lt.RequiresAttachment {
		req.AttachmentURL = ptr(s.faker.URL())
	}

	var request leave.LeaveRequest
	if err := s.client.Post(ctx, "/leaves", req, &request); err != nil {
		if IsCode(err, "POLICY_VIOLATION") {
			s.logger.Warn("skipped leave request", "employee", emp.EmployeeCode, "error", err)
			return false, nil
		}
		return false, fmt.Errorf("create leave request for %s: %w", emp.EmployeeCode, err)
	}

	// Double validation needs two approvals
	for past && request.State != leave.StateValidate {
		if err := s.client.Post(ctx, "/leaves/"+request.ID+"/approve", nil, &request); err != nil {
			return false, fmt.Errorf("approve leave request %s: %w", request.ID, err)
		}
	}
	return true, nil
}

func (s *Seeder) payslip(ctx context.Context, emp employee.Employee, today time.Time) error {
	firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	req := payroll.CreatePayslipRequest{
		EmployeeID: emp.ID,
		DateFrom:   firstOfMonth.AddDate(0, -1, 0).Format(period.DateLayout),
		DateTo:     firstOfMonth.AddDate(0, 0, -1).Format(period.DateLayout),
	}
	if s.faker.Number(1, 4) == 1 {
		bonus := decimal.NewFromInt(int64(s.faker.Number(1, 5)) * 500)
		req.Bonus = &bonus
	}

	if err := s.client.Post(ctx, "/payslips", req, nil); err != nil {
		return fmt.Errorf("create payslip for %s: %w", emp.EmployeeCode, err)
	}
	return nil
}

// review creates a submitted quarterly review for the previous quarter.
func (s *Seeder) review(ctx context.Context, emp employee.Employee, today time.Time) error {
	quarterStart := time.Date(today.Year(), time.Month((int(today.Month())-1)/3*3+1), 1, 0, 0, 0, 0, time.UTC)
	from := quarterStart.AddDate(0, -3, 0)
	to := quarterStart.AddDate(0, 0, -1)

	rating := func() int { return s.faker.Number(2, 5) }
	req := performance.CreateReviewRequest{
		EmployeeID:   emp.ID,
		ReviewPeriod: ptr(string(performance.PeriodQuarterly)),
		DateFrom:     from.Format(period.DateLayout),
		DateTo:       to.Format(period.DateLayout),
		Ratings: performance.Ratings{
			QualityOfWork: rating(),
			Productivity:  rating(),
			Communication: rating(),
			Teamwork:      rating(),
			Initiative:    rating(),
			Punctuality:   rating(),
		},
		Achievements: ptr(s.faker.Sentence(10)),
	}

	var review performance.Review
	if err := s.client.Post(ctx, "/reviews", req, &review); err != nil {
		return fmt.Errorf("create review for %s: %w", emp.EmployeeCode, err)
	}
	if err := s.client.Post(ctx, "/reviews/"+review.ID+"/submit", nil, nil); err != nil {
		return fmt.Errorf("submit review %s: %w", review.ID, err)
	}
	return nil
}

// emailPart lowercases name and drops anything but ASCII letters and digits
func emailPart(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case r >= 'A' && r <= 'Z':
			return r + 'a' - 'A'
		}
		return -1
	}, name)
}

func ptr[T any](v T) *T {
	return &v
}
