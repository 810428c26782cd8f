package user

type Permission string

const (
	// Self Management
	PermissionViewOwnProfile Permission = "profile.view_own"

	// Attendance
	PermissionAttendanceViewOwn Permission = "attendance.view_own"
	PermissionAttendanceCheckIn Permission = "attendance.check_in"
	PermissionAttendanceViewAll Permission = "attendance.view_all"
	PermissionAttendanceManage  Permission = "attendance.manage"

	// Leave
	PermissionLeaveViewOwn     Permission = "leave.view_own"
	PermissionLeaveCreate      Permission = "leave.create"
	PermissionLeaveViewAll     Permission = "leave.view_all"
	PermissionLeaveApprove     Permission = "leave.approve"
	PermissionLeaveManageTypes Permission = "leave.manage_types"

	// Employees and departments
	PermissionEmployeeViewAll Permission = "employee.view_all"
	PermissionEmployeeManage  Permission = "employee.manage"

	// Payroll
	PermissionPayrollViewOwn Permission = "payroll.view_own"
	PermissionPayrollManage  Permission = "payroll.manage"

	// Performance
	PermissionPerformanceViewOwn Permission = "performance.view_own"
	PermissionPerformanceManage  Permission = "performance.manage"

	// Reports and audit trail
	PermissionReportsView Permission = "reports.view"
	PermissionAuditView   Permission = "audit.view"

	// User Management
	PermissionUserManage Permission = "user.manage"
)

var employeePermissions = []Permission{
	PermissionViewOwnProfile,
	PermissionAttendanceViewOwn,
	PermissionAttendanceCheckIn,
	PermissionLeaveViewOwn,
	PermissionLeaveCreate,
	PermissionPayrollViewOwn,
	PermissionPerformanceViewOwn,
}

var managerPermissions = append(append([]Permission{}, employeePermissions...),
	PermissionAttendanceViewAll,
	PermissionAttendanceManage,
	PermissionLeaveViewAll,
	PermissionLeaveApprove,
	PermissionEmployeeViewAll,
	PermissionPayrollManage,
	PermissionPerformanceManage,
	PermissionReportsView,
	PermissionAuditView,
)

// RolePermissions maps roles to their permissions
var RolePermissions = map[Role][]Permission{
	RoleAdmin: append(append([]Permission{}, managerPermissions...),
		PermissionLeaveManageTypes,
		PermissionEmployeeManage,
		PermissionUserManage,
	),
	RoleManager:  managerPermissions,
	RoleEmployee: employeePermissions,
}

// HasPermission checks if a role has a specific permission
func HasPermission(role Role, permission Permission) bool {
	for _, p := range RolePermissions[role] {
		if p == permission {
			return true
		}
	}
	return false
}
