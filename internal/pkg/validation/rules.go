package validation

import (
	"regexp"
)

// Validation rule patterns
var (
	// Email validation pattern
	EmailPattern = `^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`

	// Student identifier pattern - uppercase letters and digits, e.g. STU2024001
	StudentIDPattern = `^[A-Z0-9]{4,20}$`

	// Employee identifier pattern, e.g. EMP001
	EmployeeIDPattern = `^[A-Z0-9]{3,20}$`

	// Department code - uppercase alphanumeric, 2-10 chars
	DepartmentCodePattern = `^[A-Z0-9]{2,10}$`

	// Password min length
	PasswordMinLength = 8
)

// CompiledPatterns caches compiled regex patterns
var CompiledPatterns = struct {
	Email          *regexp.Regexp
	StudentID      *regexp.Regexp
	EmployeeID     *regexp.Regexp
	DepartmentCode *regexp.Regexp
}{
	Email:          regexp.MustCompile(EmailPattern),
	StudentID:      regexp.MustCompile(StudentIDPattern),
	EmployeeID:     regexp.MustCompile(EmployeeIDPattern),
	DepartmentCode: regexp.MustCompile(DepartmentCodePattern),
}

// IsValidEmail reports whether the value looks like an email address.
func IsValidEmail(value string) bool {
	return CompiledPatterns.Email.MatchString(value)
}

// IsValidStudentID reports whether the value is an acceptable student identifier.
func IsValidStudentID(value string) bool {
	return CompiledPatterns.StudentID.MatchString(value)
}

// IsValidEmployeeID reports whether the value is an acceptable employee identifier.
func IsValidEmployeeID(value string) bool {
	return CompiledPatterns.EmployeeID.MatchString(value)
}

// IsValidDepartmentCode reports whether the value is an acceptable department code.
func IsValidDepartmentCode(value string) bool {
	return CompiledPatterns.DepartmentCode.MatchString(value)
}
