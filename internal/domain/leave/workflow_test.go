package leave

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func request(id string, state State, from, to string) LeaveRequest {
	return LeaveRequest{ID: id, EmployeeID: "emp-1", State: state, DateFrom: date(from), DateTo: date(to)}
}

func TestTransition(t *testing.T) {
	single := LeaveType{}
	double := LeaveType{DoubleValidation: true}

	cases := []struct {
		name   string
		from   State
		action Action
		lt     LeaveType
		want   State
		ok     bool
	}{
		{"submit draft", StateDraft, ActionSubmit, single, StateConfirm, true},
		{"submit confirm", StateConfirm, ActionSubmit, single, StateConfirm, false},
		{"approve single validation", StateConfirm, ActionApprove, single, StateValidate, true},
		{"approve first of double", StateConfirm, ActionApprove, double, StateValidate1, true},
		{"approve second of double", StateValidate1, ActionApprove, double, StateValidate, true},
		{"approve draft", StateDraft, ActionApprove, single, StateDraft, false},
		{"approve validated", StateValidate, ActionApprove, single, StateValidate, false},
		{"refuse confirm", StateConfirm, ActionRefuse, single, StateRefuse, true},
		{"refuse validate1", StateValidate1, ActionRefuse, double, StateRefuse, true},
		{"refuse validate", StateValidate, ActionRefuse, single, StateRefuse, true},
		{"refuse draft", StateDraft, ActionRefuse, single, StateDraft, false},
		{"cancel draft", StateDraft, ActionCancel, single, StateCancel, true},
		{"cancel validate", StateValidate, ActionCancel, single, StateCancel, true},
		{"cancel refused", StateRefuse, ActionCancel, single, StateRefuse, false},
		{"reset refused", StateRefuse, ActionReset, single, StateDraft, true},
		{"reset cancelled", StateCancel, ActionReset, single, StateDraft, true},
		{"reset confirm", StateConfirm, ActionReset, single, StateDraft, true},
		{"reset validated", StateValidate, ActionReset, single, StateValidate, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Transition(c.from, c.action, c.lt)
			if c.ok {
				require.NoError(t, err)
			} else {
				require.ErrorIs(t, err, ErrInvalidTransition)
			}
			assert.Equal(t, c.want, got)
		})
	}
}

func TestCheckOverlap(t *testing.T) {
	existing := []LeaveRequest{request("a", StateValidate, "2025-01-10", "2025-01-12")}

	// Touching on a shared end date is an overlap.
	req := request("b", StateConfirm, "2025-01-12", "2025-01-14")
	assert.ErrorIs(t, CheckOverlap(req, existing), ErrOverlappingLeave)

	// Adjacent ranges do not overlap.
	req = request("b", StateConfirm, "2025-01-13", "2025-01-14")
	assert.NoError(t, CheckOverlap(req, existing))

	// A draft never conflicts.
	req = request("b", StateDraft, "2025-01-10", "2025-01-12")
	assert.NoError(t, CheckOverlap(req, existing))

	// Inactive existing requests are ignored.
	refused := []LeaveRequest{request("a", StateRefuse, "2025-01-10", "2025-01-12")}
	req = request("b", StateConfirm, "2025-01-10", "2025-01-12")
	assert.NoError(t, CheckOverlap(req, refused))

	// A request does not conflict with itself.
	self := request("a", StateValidate, "2025-01-10", "2025-01-12")
	assert.NoError(t, CheckOverlap(self, existing))

	// Other employees are ignored.
	other := request("c", StateValidate, "2025-01-10", "2025-01-12")
	other.EmployeeID = "emp-2"
	req = request("b", StateConfirm, "2025-01-11", "2025-01-11")
	assert.NoError(t, CheckOverlap(req, []LeaveRequest{other}))
}

func TestCheckOverlap_ValidateOneBlocks(t *testing.T) {
	existing := []LeaveRequest{request("a", StateValidate1, "2025-02-01", "2025-02-05")}
	req := request("b", StateConfirm, "2025-01-30", "2025-02-01")
	assert.ErrorIs(t, CheckOverlap(req, existing), ErrOverlappingLeave)
}

func TestNumberOfDays(t *testing.T) {
	assert.Equal(t, 3.0, NumberOfDays(date("2025-01-10"), date("2025-01-12"), false))
	assert.Equal(t, 1.0, NumberOfDays(date("2025-01-10"), date("2025-01-10"), false))
	assert.Equal(t, 0.5, NumberOfDays(date("2025-01-10"), date("2025-01-10"), true))
	assert.Equal(t, 3652059.0, NumberOfDays(date("0001-01-01"), date("9999-12-31"), false))
}

func TestCheckPolicy(t *testing.T) {
	today := date("2025-01-01")
	base := LeaveType{Active: true, AllowHalfDay: true}
	url := "https://files.dayflow.test/cert.pdf"

	t.Run("inactive type", func(t *testing.T) {
		req := request("a", StateDraft, "2025-01-10", "2025-01-10")
		assert.ErrorIs(t, CheckPolicy(req, LeaveType{}, today), ErrLeaveTypeInactive)
	})

	t.Run("attachment required", func(t *testing.T) {
		lt := base
		lt.RequiresAttachment = true
		req := request("a", StateDraft, "2025-01-10", "2025-01-10")
		assert.ErrorIs(t, CheckPolicy(req, lt, today), ErrAttachmentRequired)

		req.AttachmentURL = &url
		assert.NoError(t, CheckPolicy(req, lt, today))
	})

	t.Run("max consecutive days", func(t *testing.T) {
		lt := base
		lt.MaxConsecutiveDays = 3
		assert.NoError(t, CheckPolicy(request("a", StateDraft, "2025-01-10", "2025-01-12"), lt, today))
		assert.ErrorIs(t, CheckPolicy(request("a", StateDraft, "2025-01-10", "2025-01-13"), lt, today), ErrExceedsMaxConsecutiveDays)
	})

	t.Run("minimum notice", func(t *testing.T) {
		lt := base
		lt.MinDaysNotice = 7
		assert.NoError(t, CheckPolicy(request("a", StateDraft, "2025-01-08", "2025-01-08"), lt, today))
		assert.ErrorIs(t, CheckPolicy(request("a", StateDraft, "2025-01-07", "2025-01-07"), lt, today), ErrInsufficientNotice)

		emergency := request("a", StateDraft, "2025-01-02", "2025-01-02")
		emergency.IsEmergency = true
		assert.NoError(t, CheckPolicy(emergency, lt, today))
	})

	t.Run("half day", func(t *testing.T) {
		req := request("a", StateDraft, "2025-01-10", "2025-01-10")
		req.IsHalfDay = true
		assert.NoError(t, CheckPolicy(req, base, today))

		noHalf := base
		noHalf.AllowHalfDay = false
		assert.ErrorIs(t, CheckPolicy(req, noHalf, today), ErrHalfDayNotAllowed)

		req.DateTo = date("2025-01-11")
		assert.ErrorIs(t, CheckPolicy(req, base, today), ErrHalfDaySingleDay)
	})
}

func TestStateHelpers(t *testing.T) {
	assert.True(t, StateDraft.CanEdit())
	assert.True(t, StateConfirm.CanEdit())
	assert.False(t, StateValidate.CanEdit())

	assert.True(t, StateDraft.CanDelete())
	assert.True(t, StateCancel.CanDelete())
	assert.True(t, StateRefuse.CanDelete())
	assert.False(t, StateConfirm.CanDelete())
	assert.False(t, StateValidate.CanDelete())
}

func TestIsPolicyViolation(t *testing.T) {
	assert.True(t, IsPolicyViolation(ErrOverlappingLeave))
	assert.True(t, IsPolicyViolation(ErrInsufficientNotice))
	assert.False(t, IsPolicyViolation(ErrLeaveRequestNotFound))
}
