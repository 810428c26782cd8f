package leave

import "time"

type LeaveType struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	RequiresAttachment bool      `json:"requires_attachment"`
	MaxConsecutiveDays int       `json:"max_consecutive_days"` // 0 means no limit
	MinDaysNotice      int       `json:"min_days_notice"`      // 0 means no restriction
	AllowHalfDay       bool      `json:"allow_half_day"`
	CarryForward       bool      `json:"carry_forward"`
	MaxCarryForward    float64   `json:"max_carry_forward"`
	DoubleValidation   bool      `json:"double_validation"`
	Active             bool      `json:"active"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type State string

const (
	StateDraft     State = "draft"
	StateConfirm   State = "confirm"
	StateValidate1 State = "validate1"
	StateValidate  State = "validate"
	StateRefuse    State = "refuse"
	StateCancel    State = "cancel"
)

var States = []string{
	string(StateDraft), string(StateConfirm), string(StateValidate1),
	string(StateValidate), string(StateRefuse), string(StateCancel),
}

// ActiveStates are the states that take part in the overlap check.
var ActiveStates = []State{StateConfirm, StateValidate1, StateValidate}

// IsActive reports whether s blocks other requests of the same employee.
func (s State) IsActive() bool {
	return s == StateConfirm || s == StateValidate1 || s == StateValidate
}

type HalfDayPeriod string

const (
	HalfDayMorning   HalfDayPeriod = "morning"
	HalfDayAfternoon HalfDayPeriod = "afternoon"
)

type LeaveRequest struct {
	ID              string         `json:"id"`
	EmployeeID      string         `json:"employee_id"`
	LeaveTypeID     string         `json:"leave_type_id"`
	DateFrom        time.Time      `json:"date_from"`
	DateTo          time.Time      `json:"date_to"`
	Reason          string         `json:"reason"`
	IsHalfDay       bool           `json:"is_half_day"`
	HalfDayPeriod   *HalfDayPeriod `json:"half_day_period,omitempty"`
	IsEmergency     bool           `json:"is_emergency"`
	AttachmentURL   *string        `json:"attachment_url,omitempty"`
	NumberOfDays    float64        `json:"number_of_days"`
	State           State          `json:"state"`
	ApprovedBy      *string        `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time     `json:"approved_at,omitempty"`
	RejectedBy      *string        `json:"rejected_by,omitempty"`
	RejectedAt      *time.Time     `json:"rejected_at,omitempty"`
	RejectionReason *string        `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	// Join
	LeaveTypeName *string `json:"leave_type_name,omitempty"`
	EmployeeName  *string `json:"employee_name,omitempty"`
}
