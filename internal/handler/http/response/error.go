package response

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/dayflow-hr/hrms-backend-go/internal/domain/attendance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/audit"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/auth"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/employee"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/leave"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/payroll"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/performance"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/report"
	"github.com/dayflow-hr/hrms-backend-go/internal/domain/user"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/jwt"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/storage"
	"github.com/dayflow-hr/hrms-backend-go/internal/pkg/validator"
	"github.com/dayflow-hr/hrms-backend-go/internal/service/file"
	"github.com/go-chi/jwtauth/v5"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Check if it's a validation error
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Leave policy violations are business-rule failures on otherwise valid input
	if leave.IsPolicyViolation(err) {
		UnprocessableEntity(w, "POLICY_VIOLATION", err.Error())
		return
	}

	switch {
	// Auth domain errors
	case errors.Is(err, auth.ErrInvalidCredentials):
		Unauthorized(w, err.Error())
	case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, jwtauth.ErrExpired):
		Unauthorized(w, "Token expired")
	case errors.Is(err, auth.ErrInvalidToken), errors.Is(err, auth.ErrUnauthenticated),
		errors.Is(err, jwt.ErrMissingClaims), errors.Is(err, jwtauth.ErrNoTokenFound), errors.Is(err, jwtauth.ErrUnauthorized):
		Unauthorized(w, "Authentication required")

	// User domain errors
	case errors.Is(err, user.ErrUserNotFound):
		NotFound(w, "User not found")
	case errors.Is(err, user.ErrUserEmailExists):
		Conflict(w, "Email already registered")
	case errors.Is(err, user.ErrEmployeeAlreadyLinked):
		Conflict(w, "Employee already has a user account")
	case errors.Is(err, user.ErrAdminPrivilegeRequired),
		errors.Is(err, user.ErrManagerAccessRequired),
		errors.Is(err, user.ErrInsufficientPermissions),
		errors.Is(err, user.ErrEmployeeLinkRequired):
		Forbidden(w, err.Error())

	// Employee domain errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrDepartmentNotFound):
		NotFound(w, "Department not found")
	case errors.Is(err, employee.ErrEmployeeCodeExists):
		Conflict(w, "Employee code already exists")
	case errors.Is(err, employee.ErrEmailExists):
		Conflict(w, "Work email already registered")
	case errors.Is(err, employee.ErrDepartmentExists):
		Conflict(w, "Department name already exists")
	case errors.Is(err, employee.ErrInvalidStatusChange):
		Conflict(w, err.Error())
	case errors.Is(err, employee.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Attendance domain errors
	case errors.Is(err, attendance.ErrAttendanceNotFound):
		NotFound(w, "Attendance record not found")
	case errors.Is(err, attendance.ErrAlreadyCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrNotCheckedIn):
		Conflict(w, err.Error())
	case errors.Is(err, attendance.ErrCheckOutBeforeCheckIn):
		UnprocessableEntity(w, "INVALID_TIMES", err.Error())
	case errors.Is(err, attendance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Leave domain errors
	case errors.Is(err, leave.ErrLeaveRequestNotFound):
		NotFound(w, "Leave request not found")
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrLeaveTypeExists):
		Conflict(w, "Leave type name already exists")
	case errors.Is(err, leave.ErrInvalidTransition),
		errors.Is(err, leave.ErrNotEditable),
		errors.Is(err, leave.ErrNotDeletable):
		Conflict(w, err.Error())
	case errors.Is(err, leave.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Payroll domain errors
	case errors.Is(err, payroll.ErrPayslipNotFound):
		NotFound(w, "Payslip not found")
	case errors.Is(err, payroll.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, payroll.ErrPayslipNotEditable),
		errors.Is(err, payroll.ErrInvalidPaymentChange):
		Conflict(w, err.Error())
	case errors.Is(err, payroll.ErrInvalidPeriod):
		BadRequest(w, err.Error(), nil)
	case errors.Is(err, payroll.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Performance domain errors
	case errors.Is(err, performance.ErrReviewNotFound):
		NotFound(w, "Performance review not found")
	case errors.Is(err, performance.ErrGoalNotFound):
		NotFound(w, "Performance goal not found")
	case errors.Is(err, performance.ErrInvalidTransition),
		errors.Is(err, performance.ErrNotEditable),
		errors.Is(err, performance.ErrNotDeletable),
		errors.Is(err, performance.ErrGoalClosed):
		Conflict(w, err.Error())
	case errors.Is(err, performance.ErrUnauthorized):
		Forbidden(w, err.Error())

	// Report and audit errors
	case errors.Is(err, report.ErrReportNotFound):
		NotFound(w, "Report not found")
	case errors.Is(err, report.ErrInvalidKind), errors.Is(err, audit.ErrInvalidRecordType):
		BadRequest(w, err.Error(), nil)

	// File errors
	case errors.Is(err, storage.ErrFileNotFound):
		NotFound(w, "File not found")
	case errors.Is(err, storage.ErrInvalidPath):
		BadRequest(w, "Invalid file path", nil)
	case errors.Is(err, file.ErrUnsupportedFileType), errors.Is(err, file.ErrEmptyFile):
		UnprocessableEntity(w, "INVALID_FILE", err.Error())
	case errors.Is(err, file.ErrFileTooLarge):
		PayloadTooLarge(w, err.Error())

	// Default
	default:
		slog.Error("unhandled error", "error", err)
		InternalServerError(w, "An unexpected error occurred")
	}
}
