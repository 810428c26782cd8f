package leave

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/database"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
)

type LeaveServiceImpl struct {
	tx database.Transactor
	leave.LeaveTypeRepository
	leave.LeaveRequestRepository
	employee.EmployeeRepository
	audit audit.Repository
	loc   *time.Location
	now   func() time.Time
}

func NewLeaveService(
	tx database.Transactor,
	leaveTypeRepository leave.LeaveTypeRepository,
	leaveRequestRepository leave.LeaveRequestRepository,
	employeeRepository employee.EmployeeRepository,
	auditRepository audit.Repository,
	loc *time.Location,
) leave.LeaveService {
	if loc == nil {
		loc = time.UTC
	}
	return &LeaveServiceImpl{
		tx:                     tx,
		LeaveTypeRepository:    leaveTypeRepository,
		LeaveRequestRepository: leaveRequestRepository,
		EmployeeRepository:     employeeRepository,
		audit:                  auditRepository,
		loc:                    loc,
		now:                    time.Now,
	}
}

func (l *LeaveServiceImpl) today() time.Time {
	return period.LocalDate(l.now(), l.loc)
}

func actorFrom(ctx context.Context) (jwt.Actor, error) {
	actor, err := jwt.ActorFromContext(ctx)
	if err != nil {
		return jwt.Actor{}, fmt.Errorf("failed to extract actor from context: %w", err)
	}
	return actor, nil
}

// canManage reports whether actor may act on request as its owner or as an approver.
func canManage(actor jwt.Actor, request leave.LeaveRequest) bool {
	return actor.OwnsEmployee(request.EmployeeID) || user.HasPermission(actor.Role, user.PermissionLeaveApprove)
}

// ========================================
// LEAVE TYPES
// ========================================

// CreateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) CreateLeaveType(ctx context.Context, req leave.CreateLeaveTypeRequest) (leave.LeaveType, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionLeaveManageTypes) {
		return leave.LeaveType{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	lt := leave.LeaveType{
		Name:               strings.TrimSpace(req.Name),
		RequiresAttachment: req.RequiresAttachment,
		MaxConsecutiveDays: req.MaxConsecutiveDays,
		MinDaysNotice:      req.MinDaysNotice,
		AllowHalfDay:       true,
		CarryForward:       req.CarryForward,
		MaxCarryForward:    req.MaxCarryForward,
		DoubleValidation:   req.DoubleValidation,
		Active:             true,
	}
	if req.AllowHalfDay != nil {
		lt.AllowHalfDay = *req.AllowHalfDay
	}

	return l.LeaveTypeRepository.Create(ctx, lt)
}

// UpdateLeaveType implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveType(ctx context.Context, req leave.UpdateLeaveTypeRequest) (leave.LeaveType, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveType{}, err
	}
	if !user.HasPermission(actor.Role, user.PermissionLeaveManageTypes) {
		return leave.LeaveType{}, user.ErrAdminPrivilegeRequired
	}
	if err := req.Validate(); err != nil {
		return leave.LeaveType{}, err
	}

	lt, err := l.LeaveTypeRepository.GetByID(ctx, req.ID)
	if err != nil {
		return leave.LeaveType{}, err
	}

	if req.Name != nil {
		lt.Name = strings.TrimSpace(*req.Name)
	}
	if req.RequiresAttachment != nil {
		lt.RequiresAttachment = *req.RequiresAttachment
	}
	if req.MaxConsecutiveDays != nil {
		lt.MaxConsecutiveDays = *req.MaxConsecutiveDays
	}
	if req.MinDaysNotice != nil {
		lt.MinDaysNotice = *req.MinDaysNotice
	}
	if req.AllowHalfDay != nil {
		lt.AllowHalfDay = *req.AllowHalfDay
	}
	if req.CarryForward != nil {
		lt.CarryForward = *req.CarryForward
	}
	if req.MaxCarryForward != nil {
		lt.MaxCarryForward = *req.MaxCarryForward
	}
	if req.DoubleValidation != nil {
		lt.DoubleValidation = *req.DoubleValidation
	}
	if req.Active != nil {
		lt.Active = *req.Active
	}

	if err := l.LeaveTypeRepository.Update(ctx, lt); err != nil {
		return leave.LeaveType{}, err
	}
	return l.LeaveTypeRepository.GetByID(ctx, lt.ID)
}

// ListLeaveTypes implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveTypes(ctx context.Context, activeOnly bool) ([]leave.LeaveType, error) {
	return l.LeaveTypeRepository.List(ctx, activeOnly)
}

// ========================================
// LEAVE REQUESTS
// ========================================

// CreateLeaveRequest implements leave.LeaveService. The request starts in
// draft; with Submit set it is submitted in the same transaction.
func (l *LeaveServiceImpl) CreateLeaveRequest(ctx context.Context, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var employeeID string
	switch {
	case req.EmployeeID != nil && !actor.OwnsEmployee(*req.EmployeeID):
		if !user.HasPermission(actor.Role, user.PermissionLeaveApprove) {
			return leave.LeaveRequest{}, leave.ErrUnauthorized
		}
		employeeID = *req.EmployeeID
	case actor.EmployeeID != nil:
		employeeID = *actor.EmployeeID
	default:
		return leave.LeaveRequest{}, user.ErrEmployeeLinkRequired
	}

	request := leave.LeaveRequest{
		EmployeeID:    employeeID,
		LeaveTypeID:   req.LeaveTypeID,
		DateFrom:      req.From,
		DateTo:        req.To,
		Reason:        strings.TrimSpace(req.Reason),
		IsHalfDay:     req.IsHalfDay,
		IsEmergency:   req.IsEmergency,
		AttachmentURL: req.AttachmentURL,
		NumberOfDays:  leave.NumberOfDays(req.From, req.To, req.IsHalfDay),
		State:         leave.StateDraft,
	}
	if req.IsHalfDay && req.HalfDayPeriod != nil {
		p := leave.HalfDayPeriod(*req.HalfDayPeriod)
		request.HalfDayPeriod = &p
	}

	var created leave.LeaveRequest
	err = l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		if err := l.EmployeeRepository.LockByID(ctx, employeeID); err != nil {
			return err
		}
		if _, err := l.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID); err != nil {
			return err
		}

		var err error
		created, err = l.LeaveRequestRepository.Create(ctx, request)
		if err != nil {
			return err
		}
		if req.Submit {
			created, err = l.apply(ctx, actor, created, leave.ActionSubmit, nil)
		}
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return created, nil
}

// UpdateLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) UpdateLeaveRequest(ctx context.Context, req leave.UpdateLeaveRequestRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var updated leave.LeaveRequest
	err = l.withLockedRequest(ctx, req.ID, func(ctx context.Context, request leave.LeaveRequest) error {
		if !canManage(actor, request) {
			return leave.ErrUnauthorized
		}
		if !request.State.CanEdit() {
			return leave.ErrNotEditable
		}

		if req.LeaveTypeID != nil && *req.LeaveTypeID != request.LeaveTypeID {
			if _, err := l.LeaveTypeRepository.GetByID(ctx, *req.LeaveTypeID); err != nil {
				return err
			}
			request.LeaveTypeID = *req.LeaveTypeID
		}
		if req.From != nil {
			request.DateFrom = *req.From
		}
		if req.To != nil {
			request.DateTo = *req.To
		}
		if request.DateTo.Before(request.DateFrom) {
			return validationError("date_to", "date_to must not be before date_from")
		}
		if req.Reason != nil {
			request.Reason = strings.TrimSpace(*req.Reason)
		}
		if req.IsHalfDay != nil {
			request.IsHalfDay = *req.IsHalfDay
		}
		if !request.IsHalfDay {
			request.HalfDayPeriod = nil
		} else if req.HalfDayPeriod != nil {
			p := leave.HalfDayPeriod(*req.HalfDayPeriod)
			request.HalfDayPeriod = &p
		}
		if req.IsEmergency != nil {
			request.IsEmergency = *req.IsEmergency
		}
		if req.AttachmentURL != nil {
			request.AttachmentURL = req.AttachmentURL
		}
		request.NumberOfDays = leave.NumberOfDays(request.DateFrom, request.DateTo, request.IsHalfDay)

		// a submitted request must keep satisfying its leave type
		if request.State.IsActive() {
			lt, err := l.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID)
			if err != nil {
				return err
			}
			if err := leave.CheckPolicy(request, lt, l.today()); err != nil {
				return err
			}
			if err := l.checkOverlap(ctx, request); err != nil {
				return err
			}
		}

		if err := l.LeaveRequestRepository.Update(ctx, request); err != nil {
			return err
		}
		var err error
		updated, err = l.LeaveRequestRepository.GetByID(ctx, request.ID)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return updated, nil
}

// GetLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) GetLeaveRequest(ctx context.Context, id string) (leave.LeaveRequest, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	request, err := l.LeaveRequestRepository.GetByID(ctx, id)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	if !actor.OwnsEmployee(request.EmployeeID) && !user.HasPermission(actor.Role, user.PermissionLeaveViewAll) {
		return leave.LeaveRequest{}, leave.ErrUnauthorized
	}
	return request, nil
}

// ListLeaveRequests implements leave.LeaveService.
func (l *LeaveServiceImpl) ListLeaveRequests(ctx context.Context, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	if !user.HasPermission(actor.Role, user.PermissionLeaveViewAll) {
		if actor.EmployeeID == nil {
			return leave.ListLeaveRequestResponse{}, user.ErrEmployeeLinkRequired
		}
		filter.EmployeeID = actor.EmployeeID
		filter.DepartmentID = nil
	}

	requests, total, err := l.LeaveRequestRepository.List(ctx, filter)
	if err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}

	return leave.ListLeaveRequestResponse{
		Requests:   requests,
		TotalCount: total,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: filter.TotalPages(total),
	}, nil
}

// DeleteLeaveRequest implements leave.LeaveService.
func (l *LeaveServiceImpl) DeleteLeaveRequest(ctx context.Context, id string) error {
	actor, err := actorFrom(ctx)
	if err != nil {
		return err
	}

	return l.withLockedRequest(ctx, id, func(ctx context.Context, request leave.LeaveRequest) error {
		if !canManage(actor, request) {
			return leave.ErrUnauthorized
		}
		if !request.State.CanDelete() {
			return leave.ErrNotDeletable
		}
		return l.LeaveRequestRepository.Delete(ctx, request.ID)
	})
}

// withLockedRequest runs fn in a transaction holding the owning employee's row
// lock, with the request re-read under that lock.
func (l *LeaveServiceImpl) withLockedRequest(ctx context.Context, id string, fn func(ctx context.Context, request leave.LeaveRequest) error) error {
	return l.tx.WithinTransaction(ctx, func(ctx context.Context) error {
		request, err := l.LeaveRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		if err := l.EmployeeRepository.LockByID(ctx, request.EmployeeID); err != nil {
			return err
		}
		request, err = l.LeaveRequestRepository.GetByID(ctx, id)
		if err != nil {
			return err
		}
		return fn(ctx, request)
	})
}

func (l *LeaveServiceImpl) checkOverlap(ctx context.Context, request leave.LeaveRequest) error {
	existing, err := l.LeaveRequestRepository.ListActiveByEmployee(ctx, request.EmployeeID)
	if err != nil {
		return fmt.Errorf("failed to load active leave requests: %w", err)
	}
	return leave.CheckOverlap(request, existing)
}
