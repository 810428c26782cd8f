package leave

import (
	"context"
	"fmt"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

func validationError(field, message string) error {
	var errs validator.ValidationErrors
	errs.Add(field, message)
	return errs.Err()
}

// Submit implements leave.LeaveService.
func (l *LeaveServiceImpl) Submit(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return l.act(ctx, id, leave.ActionSubmit, nil)
}

// Approve implements leave.LeaveService.
func (l *LeaveServiceImpl) Approve(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return l.act(ctx, id, leave.ActionApprove, nil)
}

// Refuse implements leave.LeaveService.
func (l *LeaveServiceImpl) Refuse(ctx context.Context, id string, req leave.RefuseLeaveRequest) (leave.LeaveRequest, error) {
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	return l.act(ctx, id, leave.ActionRefuse, &req.Reason)
}

// Cancel implements leave.LeaveService.
func (l *LeaveServiceImpl) Cancel(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return l.act(ctx, id, leave.ActionCancel, nil)
}

// Reset implements leave.LeaveService.
func (l *LeaveServiceImpl) Reset(ctx context.Context, id string) (leave.LeaveRequest, error) {
	return l.act(ctx, id, leave.ActionReset, nil)
}

// authorizeAction checks who may fire action. Approving and refusing need an
// approver; the rest are open to the owner as well.
func authorizeAction(actor jwt.Actor, request leave.LeaveRequest, action leave.Action) error {
	switch action {
	case leave.ActionApprove, leave.ActionRefuse:
		if !user.HasPermission(actor.Role, user.PermissionLeaveApprove) {
			return user.ErrManagerAccessRequired
		}
	default:
		if !canManage(actor, request) {
			return leave.ErrUnauthorized
		}
	}
	return nil
}

func (l *LeaveServiceImpl) act(ctx context.Context, id string, action leave.Action, reason *string) (leave.LeaveRequest, error) {
	actor, err := actorFrom(ctx)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	var result leave.LeaveRequest
	err = l.withLockedRequest(ctx, id, func(ctx context.Context, request leave.LeaveRequest) error {
		if err := authorizeAction(actor, request, action); err != nil {
			return err
		}
		var err error
		result, err = l.apply(ctx, actor, request, action, reason)
		return err
	})
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	return result, nil
}

// apply moves request through action and records the transition. It must run
// inside a transaction holding the employee lock.
func (l *LeaveServiceImpl) apply(ctx context.Context, actor jwt.Actor, request leave.LeaveRequest, action leave.Action, reason *string) (leave.LeaveRequest, error) {
	lt, err := l.LeaveTypeRepository.GetByID(ctx, request.LeaveTypeID)
	if err != nil {
		return leave.LeaveRequest{}, err
	}

	from := request.State
	to, err := leave.Transition(from, action, lt)
	if err != nil {
		return leave.LeaveRequest{}, err
	}
	request.State = to

	now := l.now().UTC()
	switch action {
	case leave.ActionSubmit:
		if err := leave.CheckPolicy(request, lt, l.today()); err != nil {
			return leave.LeaveRequest{}, err
		}
	case leave.ActionApprove:
		request.ApprovedBy = &actor.UserID
		request.ApprovedAt = &now
	case leave.ActionRefuse:
		request.RejectedBy = &actor.UserID
		request.RejectedAt = &now
		request.RejectionReason = reason
	case leave.ActionReset:
		request.ApprovedBy, request.ApprovedAt = nil, nil
		request.RejectedBy, request.RejectedAt, request.RejectionReason = nil, nil, nil
	}

	if to.IsActive() {
		if err := l.checkOverlap(ctx, request); err != nil {
			return leave.LeaveRequest{}, err
		}
	}

	if err := l.LeaveRequestRepository.Update(ctx, request); err != nil {
		return leave.LeaveRequest{}, err
	}

	event := audit.Transition(audit.RecordLeaveRequest, request.ID, string(action), actor.UserID, string(from), string(to))
	if reason != nil {
		event = event.With("reason", *reason)
	}
	if _, err := l.audit.Append(ctx, event); err != nil {
		return leave.LeaveRequest{}, fmt.Errorf("failed to record leave transition: %w", err)
	}

	return l.LeaveRequestRepository.GetByID(ctx, request.ID)
}
