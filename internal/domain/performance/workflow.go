package performance

type Action string

const (
	ActionSubmit      Action = "submit"
	ActionReview      Action = "review"
	ActionAcknowledge Action = "acknowledge"
	ActionCancel      Action = "cancel"
	ActionReset       Action = "reset"
)

// Transition returns the state reached by applying action in state from.
// Reset to draft is allowed from any state.
func Transition(from ReviewState, action Action) (ReviewState, error) {
	switch action {
	case ActionSubmit:
		if from == ReviewDraft {
			return ReviewSubmitted, nil
		}
	case ActionReview:
		if from == ReviewSubmitted {
			return ReviewReviewed, nil
		}
	case ActionAcknowledge:
		if from == ReviewReviewed {
			return ReviewAcknowledged, nil
		}
	case ActionCancel:
		switch from {
		case ReviewDraft, ReviewSubmitted, ReviewReviewed:
			return ReviewCancelled, nil
		}
	case ActionReset:
		return ReviewDraft, nil
	}
	return from, ErrInvalidTransition
}

// CanEdit reports whether ratings and comments may still change.
func (s ReviewState) CanEdit() bool {
	return s == ReviewDraft || s == ReviewSubmitted
}

// CanDelete reports whether the review may be removed.
func (s ReviewState) CanDelete() bool {
	return s == ReviewDraft || s == ReviewCancelled
}
