package report

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"golang.org/x/sync/errgroup"
)

type ReportServiceImpl struct {
	tx         database.Transactor
	source     report.Source
	reportRepo report.ReportRepository
	loc        *time.Location
}

func NewReportService(
	tx database.Transactor,
	source report.Source,
	reportRepo report.ReportRepository,
	loc *time.Location,
) report.ReportService {
	if loc == nil {
		loc = time.UTC
	}
	return &ReportServiceImpl{
		tx:         tx,
		source:     source,
		reportRepo: reportRepo,
		loc:        loc,
	}
}

// scopedFilter validates req and, for callers without report access, pins
// the scope to their own employee record.
func scopedFilter(ctx context.Context, req report.FilterRequest) (report.Filter, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return report.Filter{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	f, err := req.Filter()
	if err != nil {
		return report.Filter{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionReportsView) {
		if actor.EmployeeID == nil {
			return report.Filter{}, user.ErrEmployeeLinkRequired
		}
		f.EmployeeID = actor.EmployeeID
		f.DepartmentID = nil
	}
	return f, nil
}

func requireReports(ctx context.Context) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract actor from context: %w", err)
	}
	if !user.HasPermission(actor.Role, user.PermissionReportsView) {
		return user.ErrManagerAccessRequired
	}
	return nil
}

// ========================================
// ON-DEMAND AGGREGATIONS
// ========================================

func (s *ReportServiceImpl) attendance(ctx context.Context, f report.Filter) (report.AttendanceSnapshot, error) {
	if f.Range.Inverted() {
		return report.AttendanceSnapshot{}, nil
	}
	var snap report.AttendanceSnapshot
	err := s.tx.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		start, end := f.Range.Bounds(s.loc)
		records, err := s.source.AttendanceRecords(ctx, f, start, end)
		if err != nil {
			return fmt.Errorf("failed to load attendance: %w", err)
		}
		snap = report.SummarizeAttendance(records, f.Range, s.loc)
		return nil
	})
	return snap, err
}

func (s *ReportServiceImpl) leave(ctx context.Context, f report.Filter) (report.LeaveSnapshot, error) {
	var snap report.LeaveSnapshot
	err := s.tx.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		requests, err := s.source.LeaveRequests(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load leave requests: %w", err)
		}
		snap = report.SummarizeLeave(requests, f.Range, f.LeaveTypeID)
		return nil
	})
	return snap, err
}

func (s *ReportServiceImpl) payroll(ctx context.Context, f report.Filter) (report.PayrollSnapshot, error) {
	var snap report.PayrollSnapshot
	err := s.tx.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		payslips, err := s.source.Payslips(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load payslips: %w", err)
		}
		snap = report.SummarizePayroll(payslips, f.Range)
		return nil
	})
	return snap, err
}

func (s *ReportServiceImpl) performance(ctx context.Context, f report.Filter) (report.PerformanceSnapshot, error) {
	var snap report.PerformanceSnapshot
	err := s.tx.WithinReadOnlyTransaction(ctx, func(ctx context.Context) error {
		reviews, err := s.source.Reviews(ctx, f)
		if err != nil {
			return fmt.Errorf("failed to load reviews: %w", err)
		}
		snap = report.SummarizePerformance(reviews, f.Range)
		return nil
	})
	return snap, err
}

// Attendance implements report.ReportService.
func (s *ReportServiceImpl) Attendance(ctx context.Context, req report.FilterRequest) (report.AttendanceSnapshot, error) {
	f, err := scopedFilter(ctx, req)
	if err != nil {
		return report.AttendanceSnapshot{}, err
	}
	return s.attendance(ctx, f)
}

// Leave implements report.ReportService.
func (s *ReportServiceImpl) Leave(ctx context.Context, req report.FilterRequest) (report.LeaveSnapshot, error) {
	f, err := scopedFilter(ctx, req)
	if err != nil {
		return report.LeaveSnapshot{}, err
	}
	return s.leave(ctx, f)
}

// Payroll implements report.ReportService.
func (s *ReportServiceImpl) Payroll(ctx context.Context, req report.FilterRequest) (report.PayrollSnapshot, error) {
	f, err := scopedFilter(ctx, req)
	if err != nil {
		return report.PayrollSnapshot{}, err
	}
	return s.payroll(ctx, f)
}

// Performance implements report.ReportService.
func (s *ReportServiceImpl) Performance(ctx context.Context, req report.FilterRequest) (report.PerformanceSnapshot, error) {
	f, err := scopedFilter(ctx, req)
	if err != nil {
		return report.PerformanceSnapshot{}, err
	}
	return s.performance(ctx, f)
}

// Dashboard implements report.ReportService. Each snapshot runs in its own
// read-only transaction.
func (s *ReportServiceImpl) Dashboard(ctx context.Context, req report.FilterRequest) (report.Dashboard, error) {
	f, err := scopedFilter(ctx, req)
	if err != nil {
		return report.Dashboard{}, err
	}

	dash := report.Dashboard{
		DateFrom: f.Range.From.Format(period.DateLayout),
		DateTo:   f.Range.To.Format(period.DateLayout),
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		dash.Attendance, err = s.attendance(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		dash.Leave, err = s.leave(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		dash.Payroll, err = s.payroll(gctx, f)
		return err
	})
	g.Go(func() error {
		var err error
		dash.Performance, err = s.performance(gctx, f)
		return err
	})
	if err := g.Wait(); err != nil {
		return report.Dashboard{}, err
	}
	return dash, nil
}

// ========================================
// SAVED REPORTS
// ========================================

func (s *ReportServiceImpl) snapshot(ctx context.Context, kind report.Kind, f report.Filter) (json.RawMessage, error) {
	var (
		v   any
		err error
	)
	switch kind {
	case report.KindAttendance:
		v, err = s.attendance(ctx, f)
	case report.KindLeave:
		v, err = s.leave(ctx, f)
	case report.KindPayroll:
		v, err = s.payroll(ctx, f)
	case report.KindPerformance:
		v, err = s.performance(ctx, f)
	default:
		return nil, report.ErrInvalidKind
	}
	if err != nil {
		return nil, err
	}

	raw, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to encode report snapshot: %w", err)
	}
	return raw, nil
}

func defaultReportName(kind report.Kind, r period.Range) string {
	k := string(kind)
	return fmt.Sprintf("%s Report %s", strings.ToUpper(k[:1])+k[1:], r)
}

// CreateReport implements report.ReportService.
func (s *ReportServiceImpl) CreateReport(ctx context.Context, req report.CreateReportRequest) (report.Report, error) {
	if err := requireReports(ctx); err != nil {
		return report.Report{}, err
	}
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}
	f, err := req.Filter()
	if err != nil {
		return report.Report{}, err
	}

	kind := report.Kind(req.Kind)
	rep := report.Report{
		Kind:         kind,
		Name:         defaultReportName(kind, f.Range),
		DateFrom:     f.Range.From,
		DateTo:       f.Range.To,
		EmployeeID:   f.EmployeeID,
		DepartmentID: f.DepartmentID,
		LeaveTypeID:  f.LeaveTypeID,
	}
	if req.Name != nil {
		rep.Name = strings.TrimSpace(*req.Name)
	}

	rep.Snapshot, err = s.snapshot(ctx, kind, rep.Filter())
	if err != nil {
		return report.Report{}, err
	}
	return s.reportRepo.Create(ctx, rep)
}

// UpdateReport implements report.ReportService.
func (s *ReportServiceImpl) UpdateReport(ctx context.Context, req report.UpdateReportRequest) (report.Report, error) {
	if err := requireReports(ctx); err != nil {
		return report.Report{}, err
	}
	if err := req.Validate(); err != nil {
		return report.Report{}, err
	}

	rep, err := s.reportRepo.GetByID(ctx, req.ID)
	if err != nil {
		return report.Report{}, err
	}

	if req.Name != nil {
		rep.Name = strings.TrimSpace(*req.Name)
	}
	if req.DateFrom != nil {
		rep.DateFrom, _ = time.Parse(period.DateLayout, *req.DateFrom)
	}
	if req.DateTo != nil {
		rep.DateTo, _ = time.Parse(period.DateLayout, *req.DateTo)
	}
	if req.ClearScope {
		rep.EmployeeID, rep.DepartmentID, rep.LeaveTypeID = nil, nil, nil
	}
	if req.EmployeeID != nil {
		rep.EmployeeID = req.EmployeeID
	}
	if req.DepartmentID != nil {
		rep.DepartmentID = req.DepartmentID
	}
	if req.LeaveTypeID != nil {
		if rep.Kind != report.KindLeave {
			return report.Report{}, validationError("leave_type_id", "leave_type_id only applies to leave reports")
		}
		rep.LeaveTypeID = req.LeaveTypeID
	}

	return s.store(ctx, rep)
}

// GetReport implements report.ReportService.
func (s *ReportServiceImpl) GetReport(ctx context.Context, id string) (report.Report, error) {
	if err := requireReports(ctx); err != nil {
		return report.Report{}, err
	}
	return s.reportRepo.GetByID(ctx, id)
}

// ListReports implements report.ReportService.
func (s *ReportServiceImpl) ListReports(ctx context.Context, filter report.ReportFilter) (report.ListReportResponse, error) {
	if err := requireReports(ctx); err != nil {
		return report.ListReportResponse{}, err
	}
	if err := filter.Validate(); err != nil {
		return report.ListReportResponse{}, err
	}

	reports, total, err := s.reportRepo.List(ctx, filter)
	if err != nil {
		return report.ListReportResponse{}, err
	}

	return report.ListReportResponse{
		Reports:    reports,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}

// RefreshReport implements report.ReportService.
func (s *ReportServiceImpl) RefreshReport(ctx context.Context, id string) (report.Report, error) {
	if err := requireReports(ctx); err != nil {
		return report.Report{}, err
	}
	rep, err := s.reportRepo.GetByID(ctx, id)
	if err != nil {
		return report.Report{}, err
	}
	return s.store(ctx, rep)
}

// store recomputes the snapshot and saves rep.
func (s *ReportServiceImpl) store(ctx context.Context, rep report.Report) (report.Report, error) {
	var err error
	rep.Snapshot, err = s.snapshot(ctx, rep.Kind, rep.Filter())
	if err != nil {
		return report.Report{}, err
	}
	if err := s.reportRepo.Update(ctx, rep); err != nil {
		return report.Report{}, err
	}
	return s.reportRepo.GetByID(ctx, rep.ID)
}

func validationError(field, message string) error {
	var errs validator.ValidationErrors
	errs.Add(field, message)
	return errs.Err()
}
