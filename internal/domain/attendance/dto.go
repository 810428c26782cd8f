package attendance

import (
	"time"

	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

type CheckInRequest struct {
	EmployeeID   *string  `json:"employee_id,omitempty"` // managers only; defaults to the caller
	Latitude     *float64 `json:"latitude,omitempty"`
	Longitude    *float64 `json:"longitude,omitempty"`
	WorkLocation *string  `json:"work_location,omitempty"`
	Remarks      *string  `json:"remarks,omitempty"`
}

func (r *CheckInRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validateCoordinates(&errs, r.Latitude, r.Longitude)

	return errs.Err()
}

type CheckOutRequest struct {
	EmployeeID *string  `json:"employee_id,omitempty"`
	Latitude   *float64 `json:"latitude,omitempty"`
	Longitude  *float64 `json:"longitude,omitempty"`
	Remarks    *string  `json:"remarks,omitempty"`
}

func (r *CheckOutRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID != nil && !validator.IsValidUUID(*r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	validateCoordinates(&errs, r.Latitude, r.Longitude)

	return errs.Err()
}

type CreateAttendanceRequest struct {
	EmployeeID   string  `json:"employee_id"`
	CheckIn      string  `json:"check_in"`            // RFC3339
	CheckOut     *string `json:"check_out,omitempty"` // RFC3339
	WorkLocation *string `json:"work_location,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`

	// Parsed by Validate
	CheckInTime  time.Time  `json:"-"`
	CheckOutTime *time.Time `json:"-"`
}

func (r *CreateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	} else if !validator.IsValidUUID(r.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}

	if validator.IsEmpty(r.CheckIn) {
		errs.Add("check_in", "check_in is required")
	} else if t, ok := validator.IsValidDateTime(r.CheckIn); !ok {
		errs.Add("check_in", "check_in must be an RFC3339 timestamp")
	} else {
		r.CheckInTime = t
	}

	if r.CheckOut != nil {
		if t, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs.Add("check_out", "check_out must be an RFC3339 timestamp")
		} else {
			r.CheckOutTime = &t
		}
	}

	if r.CheckOutTime != nil && !r.CheckInTime.IsZero() && r.CheckOutTime.Before(r.CheckInTime) {
		errs.Add("check_out", ErrCheckOutBeforeCheckIn.Error())
	}

	return errs.Err()
}

type UpdateAttendanceRequest struct {
	ID           string  `json:"-"`
	CheckIn      *string `json:"check_in,omitempty"`
	CheckOut     *string `json:"check_out,omitempty"`
	WorkLocation *string `json:"work_location,omitempty"`
	Remarks      *string `json:"remarks,omitempty"`

	// Parsed by Validate
	CheckInTime  *time.Time `json:"-"`
	CheckOutTime *time.Time `json:"-"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}

	if r.CheckIn != nil {
		if t, ok := validator.IsValidDateTime(*r.CheckIn); !ok {
			errs.Add("check_in", "check_in must be an RFC3339 timestamp")
		} else {
			r.CheckInTime = &t
		}
	}
	if r.CheckOut != nil {
		if t, ok := validator.IsValidDateTime(*r.CheckOut); !ok {
			errs.Add("check_out", "check_out must be an RFC3339 timestamp")
		} else {
			r.CheckOutTime = &t
		}
	}

	return errs.Err()
}

type AttendanceFilter struct {
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	StartDate    *string `json:"start_date,omitempty"` // YYYY-MM-DD
	EndDate      *string `json:"end_date,omitempty"`   // YYYY-MM-DD
	Status       *string `json:"status,omitempty"`

	pagination.Params

	// Resolved by the service from StartDate/EndDate and the work time zone
	From *time.Time `json:"-"`
	To   *time.Time `json:"-"`
}

func (f *AttendanceFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.Status != nil && !validator.IsInSlice(*f.Status, Statuses) {
		errs.Add("status", "status must be one of: present, late, half_day, absent")
	}
	if f.EmployeeID != nil && !validator.IsValidUUID(*f.EmployeeID) {
		errs.Add("employee_id", "employee_id must be a valid UUID")
	}
	if f.DepartmentID != nil && !validator.IsValidUUID(*f.DepartmentID) {
		errs.Add("department_id", "department_id must be a valid UUID")
	}
	if f.StartDate != nil {
		if _, ok := validator.IsValidDate(*f.StartDate); !ok {
			errs.Add("start_date", "start_date must be in YYYY-MM-DD format")
		}
	}
	if f.EndDate != nil {
		if _, ok := validator.IsValidDate(*f.EndDate); !ok {
			errs.Add("end_date", "end_date must be in YYYY-MM-DD format")
		}
	}

	return errs.Err()
}

type ListAttendanceResponse struct {
	Attendances []Attendance `json:"attendances"`
	TotalCount  int64        `json:"total_count"`
	Page        int          `json:"page"`
	Limit       int          `json:"limit"`
	TotalPages  int          `json:"total_pages"`
}

func validateCoordinates(errs *validator.ValidationErrors, lat, lng *float64) {
	if (lat == nil) != (lng == nil) {
		errs.Add("latitude", "latitude and longitude must be provided together")
		return
	}
	if lat != nil && (*lat < -90 || *lat > 90) {
		errs.Add("latitude", "latitude must be between -90 and 90")
	}
	if lng != nil && (*lng < -180 || *lng > 180) {
		errs.Add("longitude", "longitude must be between -180 and 180")
	}
}
