// Package audit keeps the append-only trail of state transitions on leave
// requests, payslips and performance reviews.
package audit

import "time"

type RecordType string

const (
	RecordLeaveRequest      RecordType = "leave_request"
	RecordPayslip           RecordType = "payslip"
	RecordPerformanceReview RecordType = "performance_review"
)

var RecordTypes = []string{string(RecordLeaveRequest), string(RecordPayslip), string(RecordPerformanceReview)}

type Event struct {
	ID         string         `json:"id"`
	RecordType RecordType     `json:"record_type"`
	RecordID   string         `json:"record_id"`
	Action     string         `json:"action"`
	ActorID    *string        `json:"actor_id,omitempty"`
	FromState  *string        `json:"from_state,omitempty"`
	ToState    *string        `json:"to_state,omitempty"`
	Payload    map[string]any `json:"payload,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
}

// Transition describes a state change made by actorID. An empty actorID is
// recorded as a system action.
func Transition(recordType RecordType, recordID, action, actorID, from, to string) Event {
	ev := Event{
		RecordType: recordType,
		RecordID:   recordID,
		Action:     action,
		FromState:  &from,
		ToState:    &to,
	}
	if actorID != "" {
		ev.ActorID = &actorID
	}
	return ev
}

// With attaches a payload entry.
func (e Event) With(key string, value any) Event {
	if e.Payload == nil {
		e.Payload = make(map[string]any)
	}
	e.Payload[key] = value
	return e
}
