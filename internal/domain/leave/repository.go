package leave

import (
	"context"
)

// LeaveTypeRepository - interface for leave_types table
type LeaveTypeRepository interface {
	Create(ctx context.Context, leaveType LeaveType) (LeaveType, error)
	GetByID(ctx context.Context, id string) (LeaveType, error)
	List(ctx context.Context, activeOnly bool) ([]LeaveType, error)
	Update(ctx context.Context, leaveType LeaveType) error
}

// LeaveRequestRepository - interface for leave_requests table
type LeaveRequestRepository interface {
	Create(ctx context.Context, request LeaveRequest) (LeaveRequest, error)
	GetByID(ctx context.Context, id string) (LeaveRequest, error)
	List(ctx context.Context, filter LeaveRequestFilter) ([]LeaveRequest, int64, error)
	Update(ctx context.Context, request LeaveRequest) error
	Delete(ctx context.Context, id string) error

	// ListActiveByEmployee returns the employee's requests in confirm, validate1 or validate.
	ListActiveByEmployee(ctx context.Context, employeeID string) ([]LeaveRequest, error)
}
