package attendance

import "time"

type Status string

const (
	StatusPresent Status = "present"
	StatusLate    Status = "late"
	StatusHalfDay Status = "half_day"
	StatusAbsent  Status = "absent"
)

var Statuses = []string{string(StatusPresent), string(StatusLate), string(StatusHalfDay), string(StatusAbsent)}

// Attendance is one check-in/check-out pair. WorkedHours, Status, LateMinutes
// and OvertimeHours are derived and only ever written through Derive.
type Attendance struct {
	ID                string     `json:"id"`
	EmployeeID        string     `json:"employee_id"`
	CheckIn           time.Time  `json:"check_in"`
	CheckOut          *time.Time `json:"check_out,omitempty"`
	WorkedHours       float64    `json:"worked_hours"`
	Status            Status     `json:"status"`
	LateMinutes       int        `json:"late_minutes"`
	OvertimeHours     float64    `json:"overtime_hours"`
	CheckInLatitude   *float64   `json:"check_in_latitude,omitempty"`
	CheckInLongitude  *float64   `json:"check_in_longitude,omitempty"`
	CheckOutLatitude  *float64   `json:"check_out_latitude,omitempty"`
	CheckOutLongitude *float64   `json:"check_out_longitude,omitempty"`
	WorkLocation      *string    `json:"work_location,omitempty"`
	Remarks           *string    `json:"remarks,omitempty"`
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`

	// Join
	EmployeeName *string `json:"employee_name,omitempty"`
}

// IsOpen reports whether the employee has not checked out yet.
func (a Attendance) IsOpen() bool {
	return a.CheckOut == nil
}

// Derive recomputes every derived field from the timestamps.
func (a *Attendance) Derive(loc *time.Location) error {
	if a.CheckOut != nil && a.CheckOut.Before(a.CheckIn) {
		return ErrCheckOutBeforeCheckIn
	}
	a.WorkedHours = WorkedHours(a.CheckIn, a.CheckOut)
	c := Classify(&a.CheckIn, a.WorkedHours, loc)
	a.Status = c.Status
	a.LateMinutes = c.LateMinutes
	a.OvertimeHours = c.OvertimeHours
	return nil
}
