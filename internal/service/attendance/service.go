package attendance

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
)

type AttendanceServiceImpl struct {
	tx database.Transactor
	attendance.AttendanceRepository
	employee.EmployeeRepository
	payslips attendance.PayslipRecomputer
	loc      *time.Location
	now      func() time.Time
}

func NewAttendanceService(
	tx database.Transactor,
	attendanceRepository attendance.AttendanceRepository,
	employeeRepository employee.EmployeeRepository,
	payslips attendance.PayslipRecomputer,
	loc *time.Location,
) attendance.AttendanceService {
	if loc == nil {
		loc = time.UTC
	}
	return &AttendanceServiceImpl{
		tx:                   tx,
		AttendanceRepository: attendanceRepository,
		EmployeeRepository:   employeeRepository,
		payslips:             payslips,
		loc:                  loc,
		now:                  time.Now,
	}
}

// resolveEmployee picks the employee a check-in/out applies to. Only managers
// may act for someone else.
func resolveEmployee(actor jwt.Actor, requested *string) (string, error) {
	if requested != nil && !actor.OwnsEmployee(*requested) {
		if !user.HasPermission(actor.Role, user.PermissionAttendanceManage) {
			return "", attendance.ErrUnauthorized
		}
		return *requested, nil
	}
	if actor.EmployeeID == nil {
		return "", user.ErrEmployeeLinkRequired
	}
	return *actor.EmployeeID, nil
}

// recompute refreshes payslips covering the local dates of the given check-ins.
func (a *AttendanceServiceImpl) recompute(ctx context.Context, employeeID string, checkIns ...time.Time) error {
	if a.payslips == nil {
		return nil
	}
	seen := make(map[time.Time]bool, len(checkIns))
	for _, t := range checkIns {
		day := period.LocalDate(t, a.loc)
		if seen[day] {
			continue
		}
		seen[day] = true
		if err := a.payslips.RecomputeCovering(ctx, employeeID, day); err != nil {
			return fmt.Errorf("failed to recompute payslips: %w", err)
		}
	}
	return nil
}

// CheckIn implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	employeeID, err := resolveEmployee(actor, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	var created attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.EmployeeRepository.LockByID(ctx, employeeID); err != nil {
			return err
		}
		_, err := a.AttendanceRepository.GetOpenByEmployee(ctx, employeeID)
		if err == nil {
			return attendance.ErrAlreadyCheckedIn
		}
		if !errors.Is(err, attendance.ErrNotCheckedIn) {
			return err
		}

		record := attendance.Attendance{
			EmployeeID:       employeeID,
			CheckIn:          a.now().UTC(),
			CheckInLatitude:  req.Latitude,
			CheckInLongitude: req.Longitude,
			WorkLocation:     req.WorkLocation,
			Remarks:          req.Remarks,
		}
		if err := record.Derive(a.loc); err != nil {
			return err
		}

		created, err = a.AttendanceRepository.Create(ctx, record)
		if err != nil {
			return err
		}
		return a.recompute(ctx, employeeID, created.CheckIn)
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return created, nil
}

// CheckOut implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.Attendance, error) {
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	employeeID, err := resolveEmployee(actor, req.EmployeeID)
	if err != nil {
		return attendance.Attendance{}, err
	}

	var closed attendance.Attendance
	err = a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetOpenByEmployee(ctx, employeeID)
		if err != nil {
			return err
		}

		checkOut := a.now().UTC()
		record.CheckOut = &checkOut
		record.CheckOutLatitude = req.Latitude
		record.CheckOutLongitude = req.Longitude
		if req.Remarks != nil {
			record.Remarks = req.Remarks
		}
		if err := record.Derive(a.loc); err != nil {
			return err
		}

		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return err
		}
		if err := a.recompute(ctx, employeeID, record.CheckIn); err != nil {
			return err
		}
		closed, err = a.AttendanceRepository.GetByID(ctx, record.ID)
		return err
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return closed, nil
}

// CreateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) CreateAttendance(ctx context.Context, req attendance.CreateAttendanceRequest) (attendance.Attendance, error) {
	if err := authorizeManage(ctx); err != nil {
		return attendance.Attendance{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	record := attendance.Attendance{
		EmployeeID:   req.EmployeeID,
		CheckIn:      req.CheckInTime.UTC(),
		WorkLocation: req.WorkLocation,
		Remarks:      req.Remarks,
	}
	if req.CheckOutTime != nil {
		out := req.CheckOutTime.UTC()
		record.CheckOut = &out
	}
	if err := record.Derive(a.loc); err != nil {
		return attendance.Attendance{}, err
	}

	var created attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := a.EmployeeRepository.LockByID(ctx, record.EmployeeID); err != nil {
			return err
		}
		var err error
		created, err = a.AttendanceRepository.Create(ctx, record)
		if err != nil {
			return err
		}
		return a.recompute(ctx, record.EmployeeID, record.CheckIn)
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return created, nil
}

// UpdateAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) UpdateAttendance(ctx context.Context, req attendance.UpdateAttendanceRequest) (attendance.Attendance, error) {
	if err := authorizeManage(ctx); err != nil {
		return attendance.Attendance{}, err
	}
	if err := req.Validate(); err != nil {
		return attendance.Attendance{}, err
	}

	var updated attendance.Attendance
	err := a.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		record, err := a.AttendanceRepository.GetByID(ctx, req.ID)
		if err != nil {
			return err
		}
		previousCheckIn := record.CheckIn

		if req.CheckInTime != nil {
			record.CheckIn = req.CheckInTime.UTC()
		}
		if req.CheckOutTime != nil {
			out := req.CheckOutTime.UTC()
			record.CheckOut = &out
		}
		if req.WorkLocation != nil {
			record.WorkLocation = req.WorkLocation
		}
		if req.Remarks != nil {
			record.Remarks = req.Remarks
		}
		if err := record.Derive(a.loc); err != nil {
			return err
		}

		if err := a.AttendanceRepository.Update(ctx, record); err != nil {
			return err
		}
		if err := a.recompute(ctx, record.EmployeeID, previousCheckIn, record.CheckIn); err != nil {
			return err
		}
		updated, err = a.AttendanceRepository.GetByID(ctx, record.ID)
		return err
	})
	if err != nil {
		return attendance.Attendance{}, err
	}
	return updated, nil
}

// GetAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) GetAttendance(ctx context.Context, id string) (attendance.Attendance, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.Attendance{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}

	record, err := a.AttendanceRepository.GetByID(ctx, id)
	if err != nil {
		return attendance.Attendance{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionAttendanceViewAll) && !actor.OwnsEmployee(record.EmployeeID) {
		return attendance.Attendance{}, attendance.ErrUnauthorized
	}
	return record, nil
}

// ListAttendance implements attendance.AttendanceService.
func (a *AttendanceServiceImpl) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) (attendance.ListAttendanceResponse, error) {
	if err := filter.Validate(); err != nil {
		return attendance.ListAttendanceResponse{}, err
	}
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return attendance.ListAttendanceResponse{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}

	if !user.HasPermission(actor.Role, user.PermissionAttendanceViewAll) {
		if actor.EmployeeID == nil {
			return attendance.ListAttendanceResponse{}, user.ErrEmployeeLinkRequired
		}
		filter.EmployeeID = actor.EmployeeID
		filter.DepartmentID = nil
	}

	if filter.StartDate != nil {
		d, _ := time.Parse(period.DateLayout, *filter.StartDate)
		start, _ := period.New(d, d).Bounds(a.loc)
		filter.From = &start
	}
	if filter.EndDate != nil {
		d, _ := time.Parse(period.DateLayout, *filter.EndDate)
		_, end := period.New(d, d).Bounds(a.loc)
		filter.To = &end
	}

	records, total, err := a.AttendanceRepository.List(ctx, filter)
	if err != nil {
		return attendance.ListAttendanceResponse{}, err
	}

	return attendance.ListAttendanceResponse{
		Attendances: records,
		TotalCount:  total,
		Page:        filter.Page,
		Limit:       filter.Limit,
		TotalPages:  filter.TotalPages(total),
	}, nil
}

func authorizeManage(ctx context.Context) error {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return fmt.Errorf("failed to extract actor from context: %w", err)
	}
	if !user.HasPermission(actor.Role, user.PermissionAttendanceManage) {
		return user.ErrManagerAccessRequired
	}
	return nil
}
