package report

import (
	"math"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/shopspring/decimal"
)

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// SummarizeAttendance counts records whose check-in falls on a local date in the range.
func SummarizeAttendance(records []attendance.Attendance, r period.Range, loc *time.Location) AttendanceSnapshot {
	if r.Inverted() {
		return AttendanceSnapshot{}
	}
	if loc == nil {
		loc = time.UTC
	}

	s := AttendanceSnapshot{TotalDays: r.Days()}
	var hours, overtime float64
	for _, rec := range records {
		if !r.ContainsInstant(rec.CheckIn, loc) {
			continue
		}
		switch rec.Status {
		case attendance.StatusPresent:
			s.PresentDays++
		case attendance.StatusLate:
			s.PresentDays++
			s.LateDays++
		}
		hours += rec.WorkedHours
		overtime += rec.OvertimeHours
	}
	s.AbsentDays = max(s.TotalDays-s.PresentDays, 0)
	s.TotalHours = round2(hours)
	s.OvertimeHours = round2(overtime)
	return s
}

// SummarizeLeave counts requests lying entirely inside the range, optionally of one leave type.
func SummarizeLeave(requests []leave.LeaveRequest, r period.Range, leaveTypeID *string) LeaveSnapshot {
	if r.Inverted() {
		return LeaveSnapshot{}
	}

	var s LeaveSnapshot
	for _, req := range requests {
		if !r.Within(req.Span()) {
			continue
		}
		if leaveTypeID != nil && req.LeaveTypeID != *leaveTypeID {
			continue
		}
		s.TotalRequests++
		switch req.State {
		case leave.StateValidate:
			s.ApprovedRequests++
			s.TotalDays += req.NumberOfDays
		case leave.StateConfirm, leave.StateValidate1:
			s.PendingRequests++
		case leave.StateRefuse:
			s.RejectedRequests++
		}
	}
	return s
}

// SummarizePayroll totals paid payslips whose period lies inside the range.
func SummarizePayroll(payslips []payroll.Payslip, r period.Range) PayrollSnapshot {
	s := PayrollSnapshot{
		TotalGross:      decimal.Zero,
		TotalDeductions: decimal.Zero,
		TotalNet:        decimal.Zero,
	}
	if r.Inverted() {
		return s
	}

	employees := make(map[string]struct{})
	for _, p := range payslips {
		if p.PaymentStatus != payroll.PaymentStatusPaid || !r.Within(p.Period()) {
			continue
		}
		employees[p.EmployeeID] = struct{}{}
		s.TotalGross = s.TotalGross.Add(p.GrossSalary)
		s.TotalDeductions = s.TotalDeductions.Add(p.TotalDeductions)
		s.TotalNet = s.TotalNet.Add(p.NetSalary)
	}
	s.TotalEmployees = len(employees)
	return s
}

// SummarizePerformance buckets acknowledged reviews dated inside the range.
func SummarizePerformance(reviews []performance.Review, r period.Range) PerformanceSnapshot {
	if r.Inverted() {
		return PerformanceSnapshot{}
	}

	var s PerformanceSnapshot
	var sum float64
	for _, rv := range reviews {
		if rv.State != performance.ReviewAcknowledged || !r.Contains(rv.ReviewDate) {
			continue
		}
		s.TotalReviews++
		sum += rv.OverallRating
		switch rv.RatingCategory {
		case performance.CategoryExcellent:
			s.ExcellentCount++
		case performance.CategoryGood:
			s.GoodCount++
		case performance.CategoryAverage:
			s.AverageCount++
		case performance.CategoryPoor:
			s.PoorCount++
		}
	}
	if s.TotalReviews > 0 {
		s.AverageRating = round2(sum / float64(s.TotalReviews))
	}
	return s
}
