package leave

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type CreateLeaveTypeRequest struct {
	Name               string  `json:"name"`
	RequiresAttachment bool    `json:"requires_attachment"`
	MaxConsecutiveDays int     `json:"max_consecutive_days"`
	MinDaysNotice      int     `json:"min_days_notice"`
	AllowHalfDay       *bool   `json:"allow_half_day,omitempty"` // defaults to true
	CarryForward       bool    `json:"carry_forward"`
	MaxCarryForward    float64 `json:"max_carry_forward"`
	DoubleValidation   bool    `json:"double_validation"`
}

func (r *CreateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs.Add("name", "name is required")
	} else if len(r.Name) > 255 {
		errs.Add("name", "name must not exceed 255 characters")
	}
	if r.MaxConsecutiveDays < 0 {
		errs.Add("max_consecutive_days", "max_consecutive_days must not be negative")
	}
	if r.MinDaysNotice < 0 {
		errs.Add("min_days_notice", "min_days_notice must not be negative")
	}
	if r.MaxCarryForward < 0 {
		errs.Add("max_carry_forward", "max_carry_forward must not be negative")
	}

	return errs.Err()
}

type UpdateLeaveTypeRequest struct {
	ID                 string   `json:"-"`
	Name               *string  `json:"name,omitempty"`
	RequiresAttachment *bool    `json:"requires_attachment,omitempty"`
	MaxConsecutiveDays *int     `json:"max_consecutive_days,omitempty"`
	MinDaysNotice      *int     `json:"min_days_notice,omitempty"`
	AllowHalfDay       *bool    `json:"allow_half_day,omitempty"`
	CarryForward       *bool    `json:"carry_forward,omitempty"`
	MaxCarryForward    *float64 `json:"max_carry_forward,omitempty"`
	DoubleValidation   *bool    `json:"double_validation,omitempty"`
	Active             *bool    `json:"active,omitempty"`
}

func (r *UpdateLeaveTypeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil {
		if validator.IsEmpty(*r.Name) {
			errs.Add("name", "name must not be empty")
		} else if len(*r.Name) > 255 {
			errs.Add("name", "name must not exceed 255 characters")
		}
	}
	if r.MaxConsecutiveDays != nil && *r.MaxConsecutiveDays < 0 {
		errs.Add("max_consecutive_days", "max_consecutive_days must not be negative")
	}
	if r.MinDaysNotice != nil && *r.MinDaysNotice < 0 {
		errs.Add("min_days_notice", "min_days_notice must not be negative")
	}
	if r.MaxCarryForward != nil && *r.MaxCarryForward < 0 {
		errs.Add("max_carry_forward", "max_carry_forward must not be negative")
	}

	return errs.Err()
}

type CreateLeaveRequestRequest struct {
	EmployeeID    *string `json:"employee_id,omitempty"` // managers only; defaults to the caller
	LeaveTypeID   string  `json:"leave_type_id"`
	DateFrom      string  `json:"date_from"` // YYYY-MM-DD
	DateTo        string  `json:"date_to"`   // YYYY-MM-DD
	Reason        string  `json:"reason"`
	IsHalfDay     bool    `json:"is_half_day"`
	HalfDayPeriod *string `json:"half_day_period,omitempty"`
	IsEmergency   bool    `json:"is_emergency"`
	AttachmentURL *string `json:"attachment_url,omitempty"`
	// Submit moves the new request straight to confirm.
	Submit bool `json:"submit"`

	// Parsed by Validate
	From time.Time `json:"-"`
	To   time.Time `json:"-"`
}

func (r *CreateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if validator.IsEmpty(r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id is required")
	} else if !validator.IsValidUUID(r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id must be a valid UUID")
	}

	from, to := validateDateSpan(&errs, r.DateFrom, r.DateTo)
	r.From, r.To = from, to

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	validateHalfDay(&errs, r.IsHalfDay, r.HalfDayPeriod)

	return errs.Err()
}

type UpdateLeaveRequestRequest struct {
	ID            string  `json:"-"`
	LeaveTypeID   *string `json:"leave_type_id,omitempty"`
	DateFrom      *string `json:"date_from,omitempty"`
	DateTo        *string `json:"date_to,omitempty"`
	Reason        *string `json:"reason,omitempty"`
	IsHalfDay     *bool   `json:"is_half_day,omitempty"`
	HalfDayPeriod *string `json:"half_day_period,omitempty"`
	IsEmergency   *bool   `json:"is_emergency,omitempty"`
	AttachmentURL *string `json:"attachment_url,omitempty"`

	// Parsed by Validate
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (r *UpdateLeaveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.LeaveTypeID != nil && !validator.IsValidUUID(*r.LeaveTypeID) {
		errs.Add("leave_type_id", "leave_type_id must be a valid UUID")
	}
	if r.DateFrom != nil {
		if d, ok := validator.IsValidDate(*r.DateFrom); ok {
			r.From = &d
		} else {
			errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
		}
	}
	if r.DateTo != nil {
		if d, ok := validator.IsValidDate(*r.DateTo); ok {
			r.To = &d
		} else {
			errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
		}
	}
	if r.Reason != nil && validator.IsEmpty(*r.Reason) {
		errs.Add("reason", "reason must not be empty")
	}
	if r.IsHalfDay != nil {
		validateHalfDay(&errs, *r.IsHalfDay, r.HalfDayPeriod)
	}

	return errs.Err()
}

type RefuseLeaveRequest struct {
	Reason string `json:"reason"`
}

func (r *RefuseLeaveRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}

	return errs.Err()
}

type LeaveRequestFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	LeaveTypeID  *string `json:"leave_type_id,omitempty"`
	State        *string `json:"state,omitempty"`
	DateFrom     *string `json:"date_from,omitempty"` // requests ending on or after
	DateTo       *string `json:"date_to,omitempty"`   // requests starting on or before

	pagination.Params
}

func (f *LeaveRequestFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.State != nil && !validator.IsInSlice(*f.State, States) {
		errs.Add("state", "state must be one of: draft, confirm, validate1, validate, refuse, cancel")
	}
	for field, id := range map[string]*string{
		"employee_id":   f.EmployeeID,
		"department_id": f.DepartmentID,
		"leave_type_id": f.LeaveTypeID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}
	if f.DateFrom != nil {
		if _, ok := validator.IsValidDate(*f.DateFrom); !ok {
			errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
		}
	}
	if f.DateTo != nil {
		if _, ok := validator.IsValidDate(*f.DateTo); !ok {
			errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ListLeaveRequestResponse struct {
	Requests   []LeaveRequest `json:"requests"`
	TotalCount int64          `json:"total_count"`
	Page       int            `json:"page"`
	Limit      int            `json:"limit"`
	TotalPages int            `json:"total_pages"`
}

func validateDateSpan(errs *validator.ValidationErrors, from, to string) (time.Time, time.Time) {
	var fromDate, toDate time.Time
	var fromOK, toOK bool

	if validator.IsEmpty(from) {
		errs.Add("date_from", "date_from is required")
	} else if fromDate, fromOK = validator.IsValidDate(from); !fromOK {
		errs.Add("date_from", "date_from must be in YYYY-MM-DD format")
	}

	if validator.IsEmpty(to) {
		errs.Add("date_to", "date_to is required")
	} else if toDate, toOK = validator.IsValidDate(to); !toOK {
		errs.Add("date_to", "date_to must be in YYYY-MM-DD format")
	}

	if fromOK && toOK && toDate.Before(fromDate) {
		errs.Add("date_to", "date_to must not be before date_from")
	}
	return fromDate, toDate
}

func validateHalfDay(errs *validator.ValidationErrors, isHalfDay bool, halfDayPeriod *string) {
	if !isHalfDay {
		return
	}
	if halfDayPeriod == nil {
		errs.Add("half_day_period", "half_day_period is required for half-day leave")
		return
	}
	if !validator.IsInSlice(*halfDayPeriod, []string{string(HalfDayMorning), string(HalfDayAfternoon)}) {
		errs.Add("half_day_period", "half_day_period must be morning or afternoon")
	}
}
