package leave

import "errors"

var (
	ErrLeaveRequestNotFound = errors.New("leave request not found")
	ErrLeaveTypeNotFound    = errors.New("leave type not found")
	ErrLeaveTypeExists      = errors.New("leave type name already exists")
	ErrLeaveTypeInactive    = errors.New("leave type is not active")

	ErrOverlappingLeave  = errors.New("you have overlapping leave requests")
	ErrInvalidTransition = errors.New("action not allowed in the current leave state")
	ErrNotEditable       = errors.New("leave request can only be edited in draft or confirm state")
	ErrNotDeletable      = errors.New("only draft, cancelled or refused leave requests can be deleted")
	ErrUnauthorized      = errors.New("unauthorized to access this leave request")

	ErrAttachmentRequired        = errors.New("this leave type requires an attachment")
	ErrExceedsMaxConsecutiveDays = errors.New("leave exceeds the maximum consecutive days for this leave type")
	ErrInsufficientNotice        = errors.New("leave does not meet the minimum days of notice for this leave type")
	ErrHalfDayNotAllowed         = errors.New("this leave type does not allow half-day leave")
	ErrHalfDaySingleDay          = errors.New("half-day leave must start and end on the same date")
)

// IsPolicyViolation reports whether err is a rule violation rather than a failure.
func IsPolicyViolation(err error) bool {
	for _, target := range []error{
		ErrOverlappingLeave, ErrLeaveTypeInactive, ErrAttachmentRequired, ErrExceedsMaxConsecutiveDays,
		ErrInsufficientNotice, ErrHalfDayNotAllowed, ErrHalfDaySingleDay,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
