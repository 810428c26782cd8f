package leave

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
)

type Action string

const (
	ActionSubmit  Action = "submit"
	ActionApprove Action = "approve"
	ActionRefuse  Action = "refuse"
	ActionCancel  Action = "cancel"
	ActionReset   Action = "reset"
)

// Transition returns the state reached by applying action to a request in
// state from. The leave type decides whether approval passes through validate1.
func Transition(from State, action Action, lt LeaveType) (State, error) {
	switch action {
	case ActionSubmit:
		if from == StateDraft {
			return StateConfirm, nil
		}
	case ActionApprove:
		switch from {
		case StateConfirm:
			if lt.DoubleValidation {
				return StateValidate1, nil
			}
			return StateValidate, nil
		case StateValidate1:
			return StateValidate, nil
		}
	case ActionRefuse:
		if from.IsActive() {
			return StateRefuse, nil
		}
	case ActionCancel:
		if from == StateDraft || from.IsActive() {
			return StateCancel, nil
		}
	case ActionReset:
		switch from {
		case StateConfirm, StateRefuse, StateCancel:
			return StateDraft, nil
		}
	}
	return from, ErrInvalidTransition
}

// CanEdit reports whether dates, type or reason may still change.
func (s State) CanEdit() bool {
	return s == StateDraft || s == StateConfirm
}

// CanDelete reports whether the request may be removed.
func (s State) CanDelete() bool {
	return s == StateDraft || s == StateCancel || s == StateRefuse
}

// NumberOfDays is the inclusive calendar span, or 0.5 for a half-day request.
func NumberOfDays(from, to time.Time, halfDay bool) float64 {
	if halfDay {
		return 0.5
	}
	return float64(period.New(from, to).Days())
}

// Span returns the request's inclusive date range.
func (r LeaveRequest) Span() period.Range {
	return period.New(r.DateFrom, r.DateTo)
}

// Overlaps reports whether two requests share at least one date.
func (r LeaveRequest) Overlaps(other LeaveRequest) bool {
	return r.Span().Overlaps(other.Span())
}

// CheckOverlap fails when req is active and any other active request of the
// same employee intersects its range. Requests outside the active set never conflict.
func CheckOverlap(req LeaveRequest, existing []LeaveRequest) error {
	if !req.State.IsActive() {
		return nil
	}
	for _, other := range existing {
		if other.ID == req.ID || other.EmployeeID != req.EmployeeID || !other.State.IsActive() {
			continue
		}
		if req.Overlaps(other) {
			return ErrOverlappingLeave
		}
	}
	return nil
}

// CheckPolicy applies the leave type rules at submission and when an active
// request is edited. Notice is counted from today and is not required for
// emergency leave.
func CheckPolicy(req LeaveRequest, lt LeaveType, today time.Time) error {
	if !lt.Active {
		return ErrLeaveTypeInactive
	}
	if lt.RequiresAttachment && (req.AttachmentURL == nil || *req.AttachmentURL == "") {
		return ErrAttachmentRequired
	}
	if req.IsHalfDay {
		if !lt.AllowHalfDay {
			return ErrHalfDayNotAllowed
		}
		if !period.Date(req.DateFrom).Equal(period.Date(req.DateTo)) {
			return ErrHalfDaySingleDay
		}
	}
	if lt.MaxConsecutiveDays > 0 && req.Span().Days() > lt.MaxConsecutiveDays {
		return ErrExceedsMaxConsecutiveDays
	}
	if lt.MinDaysNotice > 0 && !req.IsEmergency {
		notice := period.New(today, req.DateFrom).Days() - 1
		if notice < lt.MinDaysNotice {
			return ErrInsufficientNotice
		}
	}
	return nil
}
