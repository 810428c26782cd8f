package report

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	empA = "0190a5c4-0000-7000-8000-00000000000a"
	empB = "0190a5c4-0000-7000-8000-00000000000b"
)

type passTx struct{}

func (passTx) WithinTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

func (passTx) WithinReadOnlyTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

// fakeSource applies only the employee scope, like the SQL prefilter.
type fakeSource struct {
	mu     sync.Mutex
	scopes []*string

	attendance []attendance.Attendance
	requests   []leave.LeaveRequest
	payslips   []payroll.Payslip
	reviews    []performance.Review
	failReview bool
}

func (s *fakeSource) record(f report.Filter) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.scopes = append(s.scopes, f.EmployeeID)
}

func (s *fakeSource) AttendanceRecords(_ context.Context, f report.Filter, start, end time.Time) ([]attendance.Attendance, error) {
	s.record(f)
	var out []attendance.Attendance
	for _, a := range s.attendance {
		if (f.EmployeeID == nil || a.EmployeeID == *f.EmployeeID) && !a.CheckIn.Before(start) && a.CheckIn.Before(end) {
			out = append(out, a)
		}
	}
	return out, nil
}

func (s *fakeSource) LeaveRequests(_ context.Context, f report.Filter) ([]leave.LeaveRequest, error) {
	s.record(f)
	var out []leave.LeaveRequest
	for _, r := range s.requests {
		if f.EmployeeID == nil || r.EmployeeID == *f.EmployeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (s *fakeSource) Payslips(_ context.Context, f report.Filter) ([]payroll.Payslip, error) {
	s.record(f)
	var out []payroll.Payslip
	for _, p := range s.payslips {
		if f.EmployeeID == nil || p.EmployeeID == *f.EmployeeID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *fakeSource) Reviews(_ context.Context, f report.Filter) ([]performance.Review, error) {
	s.record(f)
	if s.failReview {
		return nil, fmt.Errorf("connection reset")
	}
	var out []performance.Review
	for _, r := range s.reviews {
		if f.EmployeeID == nil || r.EmployeeID == *f.EmployeeID {
			out = append(out, r)
		}
	}
	return out, nil
}

type fakeReportRepo struct {
	reports map[string]report.Report
}

func (r *fakeReportRepo) Create(_ context.Context, rep report.Report) (report.Report, error) {
	rep.ID = fmt.Sprintf("rep-%d", len(r.reports)+1)
	r.reports[rep.ID] = rep
	return rep, nil
}

func (r *fakeReportRepo) GetByID(_ context.Context, id string) (report.Report, error) {
	rep, ok := r.reports[id]
	if !ok {
		return report.Report{}, report.ErrReportNotFound
	}
	return rep, nil
}

func (r *fakeReportRepo) Update(_ context.Context, rep report.Report) error {
	r.reports[rep.ID] = rep
	return nil
}

func (r *fakeReportRepo) List(context.Context, report.ReportFilter) ([]report.Report, int64, error) {
	list := []report.Report{}
	for _, rep := range r.reports {
		list = append(list, rep)
	}
	return list, int64(len(list)), nil
}

func jan(d, h int) time.Time {
	return time.Date(2025, 1, d, h, 0, 0, 0, time.UTC)
}

func newSource() *fakeSource {
	return &fakeSource{
		attendance: []attendance.Attendance{
			{EmployeeID: empA, CheckIn: jan(2, 9), Status: attendance.StatusPresent, WorkedHours: 8},
			{EmployeeID: empA, CheckIn: jan(3, 10), Status: attendance.StatusLate, WorkedHours: 7},
			{EmployeeID: empB, CheckIn: jan(2, 9), Status: attendance.StatusPresent, WorkedHours: 9, OvertimeHours: 1},
		},
		requests: []leave.LeaveRequest{
			{EmployeeID: empA, State: leave.StateValidate, DateFrom: jan(6, 0), DateTo: jan(7, 0), NumberOfDays: 2},
			{EmployeeID: empB, State: leave.StateConfirm, DateFrom: jan(8, 0), DateTo: jan(8, 0), NumberOfDays: 1},
		},
		payslips: []payroll.Payslip{
			{
				EmployeeID: empA, PaymentStatus: payroll.PaymentStatusPaid, DateFrom: jan(1, 0), DateTo: jan(31, 0),
				GrossSalary: decimal.NewFromInt(1000), TotalDeductions: decimal.NewFromInt(100), NetSalary: decimal.NewFromInt(900),
			},
		},
		reviews: []performance.Review{
			{EmployeeID: empB, State: performance.ReviewAcknowledged, ReviewDate: jan(20, 0), OverallRating: 4, RatingCategory: performance.CategoryGood},
		},
	}
}

func managerCtx() context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "mgr", Role: user.RoleManager})
}

func employeeCtx(employeeID string) context.Context {
	return jwt.NewActorContext(context.Background(), jwt.Actor{UserID: "u-" + employeeID, Role: user.RoleEmployee, EmployeeID: &employeeID})
}

func january() report.FilterRequest {
	return report.FilterRequest{DateFrom: "2025-01-01", DateTo: "2025-01-31"}
}

func TestAttendance_AllEmployees(t *testing.T) {
	svc := NewReportService(passTx{}, newSource(), &fakeReportRepo{}, time.UTC)

	snap, err := svc.Attendance(managerCtx(), january())
	require.NoError(t, err)
	assert.Equal(t, 31, snap.TotalDays)
	assert.Equal(t, 3, snap.PresentDays)
	assert.Equal(t, 1, snap.LateDays)
	assert.Equal(t, 24.0, snap.TotalHours)
	assert.Equal(t, 1.0, snap.OvertimeHours)
}

func TestAttendance_EmployeeScopePinned(t *testing.T) {
	src := newSource()
	svc := NewReportService(passTx{}, src, &fakeReportRepo{}, time.UTC)

	req := january()
	other := empB
	req.EmployeeID = &other
	snap, err := svc.Attendance(employeeCtx(empA), req)
	require.NoError(t, err)
	assert.Equal(t, 2, snap.PresentDays)
	require.Len(t, src.scopes, 1)
	assert.Equal(t, empA, *src.scopes[0])
}

func TestAttendance_InvertedRangeSkipsSource(t *testing.T) {
	src := newSource()
	svc := NewReportService(passTx{}, src, &fakeReportRepo{}, time.UTC)

	snap, err := svc.Attendance(managerCtx(), report.FilterRequest{DateFrom: "2025-01-31", DateTo: "2025-01-01"})
	require.NoError(t, err)
	assert.Equal(t, report.AttendanceSnapshot{}, snap)
	assert.Empty(t, src.scopes)
}

func TestLeave_MissingDates(t *testing.T) {
	svc := NewReportService(passTx{}, newSource(), &fakeReportRepo{}, time.UTC)

	_, err := svc.Leave(managerCtx(), report.FilterRequest{DateFrom: "2025-01-01"})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestDashboard(t *testing.T) {
	svc := NewReportService(passTx{}, newSource(), &fakeReportRepo{}, time.UTC)

	dash, err := svc.Dashboard(managerCtx(), january())
	require.NoError(t, err)
	assert.Equal(t, "2025-01-01", dash.DateFrom)
	assert.Equal(t, "2025-01-31", dash.DateTo)
	assert.Equal(t, 3, dash.Attendance.PresentDays)
	assert.Equal(t, 2, dash.Leave.TotalRequests)
	assert.Equal(t, 2.0, dash.Leave.TotalDays)
	assert.Equal(t, 1, dash.Payroll.TotalEmployees)
	assert.True(t, decimal.NewFromInt(900).Equal(dash.Payroll.TotalNet))
	assert.Equal(t, 1, dash.Performance.GoodCount)
}

func TestDashboard_PropagatesFailure(t *testing.T) {
	src := newSource()
	src.failReview = true
	svc := NewReportService(passTx{}, src, &fakeReportRepo{}, time.UTC)

	_, err := svc.Dashboard(managerCtx(), january())
	assert.ErrorContains(t, err, "failed to load reviews")
}

func TestSavedReports(t *testing.T) {
	src := newSource()
	repo := &fakeReportRepo{reports: map[string]report.Report{}}
	svc := NewReportService(passTx{}, src, repo, time.UTC)

	_, err := svc.CreateReport(employeeCtx(empA), report.CreateReportRequest{Kind: "leave", FilterRequest: january()})
	assert.ErrorIs(t, err, user.ErrManagerAccessRequired)

	rep, err := svc.CreateReport(managerCtx(), report.CreateReportRequest{Kind: "leave", FilterRequest: january()})
	require.NoError(t, err)
	assert.Equal(t, "Leave Report 2025-01-01..2025-01-31", rep.Name)

	var snap report.LeaveSnapshot
	require.NoError(t, json.Unmarshal(rep.Snapshot, &snap))
	assert.Equal(t, 2, snap.TotalRequests)

	scoped := empA
	updated, err := svc.UpdateReport(managerCtx(), report.UpdateReportRequest{ID: rep.ID, EmployeeID: &scoped})
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(updated.Snapshot, &snap))
	assert.Equal(t, 1, snap.TotalRequests)
	assert.Equal(t, 1, snap.ApprovedRequests)

	cleared, err := svc.UpdateReport(managerCtx(), report.UpdateReportRequest{ID: rep.ID, ClearScope: true})
	require.NoError(t, err)
	assert.Nil(t, cleared.EmployeeID)

	attendanceRep, err := svc.CreateReport(managerCtx(), report.CreateReportRequest{Kind: "attendance", FilterRequest: january()})
	require.NoError(t, err)
	lt := "0190a5c4-0000-7000-8000-0000000000a1"
	_, err = svc.UpdateReport(managerCtx(), report.UpdateReportRequest{ID: attendanceRep.ID, LeaveTypeID: &lt})
	assert.Error(t, err)

	src.attendance = append(src.attendance, attendance.Attendance{EmployeeID: empA, CheckIn: jan(4, 9), Status: attendance.StatusPresent})
	refreshed, err := svc.RefreshReport(managerCtx(), attendanceRep.ID)
	require.NoError(t, err)
	var att report.AttendanceSnapshot
	require.NoError(t, json.Unmarshal(refreshed.Snapshot, &att))
	assert.Equal(t, 4, att.PresentDays)

	list, err := svc.ListReports(managerCtx(), report.ReportFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 2, list.TotalCount)
}
