package performance

import "errors"

var (
	ErrReviewNotFound    = errors.New("performance review not found")
	ErrGoalNotFound      = errors.New("performance goal not found")
	ErrInvalidTransition = errors.New("action not allowed in the current review state")
	ErrNotEditable       = errors.New("review can only be edited in draft or submitted state")
	ErrNotDeletable      = errors.New("only draft or cancelled reviews can be deleted")
	ErrGoalClosed        = errors.New("completed or cancelled goals cannot be modified")
	ErrUnauthorized      = errors.New("unauthorized to access this review")
)
