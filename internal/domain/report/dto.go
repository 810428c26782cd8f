package report

import (
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/pagination"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/period"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
)

// ========================================
// FILTER
// ========================================

type FilterRequest struct {
	DateFrom     string  `json:"date_from"`
	DateTo       string  `json:"date_to"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	LeaveTypeID  *string `json:"leave_type_id,omitempty"`
}

func (r *FilterRequest) Validate() error {
	_, err := r.Filter()
	return err
}

// Filter validates the request and converts it. An inverted range is valid.
func (r *FilterRequest) Filter() (Filter, error) {
	var errs validator.ValidationErrors

	rng, err := period.Parse(r.DateFrom, r.DateTo)
	if err != nil {
		errs.Add("period", err.Error())
	}
	for field, id := range map[string]*string{
		"employee_id":   r.EmployeeID,
		"department_id": r.DepartmentID,
		"leave_type_id": r.LeaveTypeID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}
	if err := errs.Err(); err != nil {
		return Filter{}, err
	}

	return Filter{
		Range:        rng,
		EmployeeID:   r.EmployeeID,
		DepartmentID: r.DepartmentID,
		LeaveTypeID:  r.LeaveTypeID,
	}, nil
}

// ========================================
// SAVED REPORTS
// ========================================

type CreateReportRequest struct {
	Kind string  `json:"kind"`
	Name *string `json:"name,omitempty"`
	FilterRequest
}

func (r *CreateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if !validator.IsInSlice(r.Kind, Kinds) {
		errs.Add("kind", ErrInvalidKind.Error())
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	if err := r.FilterRequest.Validate(); err != nil {
		errs = append(errs, err.(validator.ValidationErrors)...)
	}
	if r.LeaveTypeID != nil && r.Kind != string(KindLeave) {
		errs.Add("leave_type_id", "leave_type_id only applies to leave reports")
	}

	return errs.Err()
}

type UpdateReportRequest struct {
	ID           string  `json:"-"`
	Name         *string `json:"name,omitempty"`
	DateFrom     *string `json:"date_from,omitempty"`
	DateTo       *string `json:"date_to,omitempty"`
	EmployeeID   *string `json:"employee_id,omitempty"`
	DepartmentID *string `json:"department_id,omitempty"`
	LeaveTypeID  *string `json:"leave_type_id,omitempty"`
	// ClearScope drops the employee, department and leave type restrictions before applying the ones given.
	ClearScope bool `json:"clear_scope"`
}

func (r *UpdateReportRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if r.Name != nil && validator.IsEmpty(*r.Name) {
		errs.Add("name", "name must not be empty")
	}
	for field, date := range map[string]*string{"date_from": r.DateFrom, "date_to": r.DateTo} {
		if date == nil {
			continue
		}
		if _, ok := validator.IsValidDate(*date); !ok {
			errs.Add(field, field+" must be in YYYY-MM-DD format")
		}
	}
	for field, id := range map[string]*string{
		"employee_id":   r.EmployeeID,
		"department_id": r.DepartmentID,
		"leave_type_id": r.LeaveTypeID,
	} {
		if id != nil && !validator.IsValidUUID(*id) {
			errs.Add(field, field+" must be a valid UUID")
		}
	}

	return errs.Err()
}

type ReportFilter struct {
	Kind *string `json:"kind,omitempty"`

	pagination.Params
}

func (f *ReportFilter) Validate() error {
	var errs validator.ValidationErrors

	f.Params.Normalize(&errs)

	if f.Kind != nil && !validator.IsInSlice(*f.Kind, Kinds) {
		errs.Add("kind", ErrInvalidKind.Error())
	}

	return errs.Err()
}

type ListReportResponse struct {
	Reports    []Report `json:"reports"`
	TotalCount int64    `json:"total_count"`
	Page       int      `json:"page"`
	Limit      int      `json:"limit"`
	TotalPages int      `json:"total_pages"`
}
