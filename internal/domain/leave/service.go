package leave

import (
	"context"
)

type LeaveService interface {
	// Leave Type
	CreateLeaveType(ctx context.Context, req CreateLeaveTypeRequest) (LeaveType, error)
	UpdateLeaveType(ctx context.Context, req UpdateLeaveTypeRequest) (LeaveType, error)
	ListLeaveTypes(ctx context.Context, activeOnly bool) ([]LeaveType, error)

	// Leave Request
	CreateLeaveRequest(ctx context.Context, req CreateLeaveRequestRequest) (LeaveRequest, error)
	UpdateLeaveRequest(ctx context.Context, req UpdateLeaveRequestRequest) (LeaveRequest, error)
	GetLeaveRequest(ctx context.Context, id string) (LeaveRequest, error)
	ListLeaveRequests(ctx context.Context, filter LeaveRequestFilter) (ListLeaveRequestResponse, error)
	DeleteLeaveRequest(ctx context.Context, id string) error

	// Workflow
	Submit(ctx context.Context, id string) (LeaveRequest, error)
	Approve(ctx context.Context, id string) (LeaveRequest, error)
	Refuse(ctx context.Context, id string, req RefuseLeaveRequest) (LeaveRequest, error)
	Cancel(ctx context.Context, id string) (LeaveRequest, error)
	Reset(ctx context.Context, id string) (LeaveRequest, error)
}
