package model

// Role is the persisted user role. RoleAdmin never appears on a user row;
// it exists only in token claims for the env-configured admin.
type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
	RoleHOD     Role = "hod"
	RoleAdmin   Role = "admin"
)

// ValidUserRole reports whether r can be stored on a user record.
func ValidUserRole(r Role) bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleHOD
}

// Department is an academic department. DepartmentAll is the wildcard used
// by admin-authored records and the admin identity.
type Department string

const (
	DepartmentBCA  Department = "BCA"
	DepartmentBCom Department = "BCom"
	DepartmentBA   Department = "BA"
	DepartmentAll  Department = "all"
)

// ValidDepartment reports whether d is a concrete department.
func ValidDepartment(d Department) bool {
	return d == DepartmentBCA || d == DepartmentBCom || d == DepartmentBA
}

// AccountStatus is the approval state of a registered user.
type AccountStatus string

const (
	StatusPending  AccountStatus = "pending"
	StatusApproved AccountStatus = "approved"
	StatusRejected AccountStatus = "rejected"
)

// ValidAccountStatus reports whether s is a known approval state.
func ValidAccountStatus(s AccountStatus) bool {
	return s == StatusPending || s == StatusApproved || s == StatusRejected
}

// AttendanceStatus is present or absent.
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
)

// ValidAttendanceStatus reports whether s is a known attendance state.
func ValidAttendanceStatus(s AttendanceStatus) bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// ResultStatus is the derived pass/fail state of a result.
type ResultStatus string

const (
	ResultPass ResultStatus = "pass"
	ResultFail ResultStatus = "fail"
)

// PassingMarks is the pass boundary: marks at or above it pass.
const PassingMarks = 40

// LeaveStatus is the review state of a leave request.
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// Weekdays accepted on timetable entries.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ValidWeekday reports whether day names a weekday.
func ValidWeekday(day string) bool {
	for _, d := range Weekdays {
		if d == day {
			return true
		}
	}
	return false
}
