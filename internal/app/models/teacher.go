package models

import "time"

// Qualification represents a teacher's highest qualification
type Qualification string

const (
	QualificationBSc Qualification = "BSC"
	QualificationMSc Qualification = "MSC"
	QualificationPhD Qualification = "PHD"
	QualificationBEd Qualification = "BED"
	QualificationMEd Qualification = "MED"
)

// Teacher represents a teaching staff member tied to a user account
type Teacher struct {
	ID              int64         `json:"id" db:"id"`
	UserID          int64         `json:"userId" db:"user_id"`
	EmployeeID      string        `json:"employeeId" db:"employee_id"`
	DepartmentID    int64         `json:"departmentId" db:"department_id"`
	Phone           *string       `json:"phone,omitempty" db:"phone"`
	Qualification   Qualification `json:"qualification" db:"qualification"`
	ExperienceYears int           `json:"experienceYears" db:"experience_years"`
	Salary          *float64      `json:"salary,omitempty" db:"salary"`
	HireDate        time.Time     `json:"hireDate" db:"hire_date"`
	IsActive        bool          `json:"isActive" db:"is_active"`
	CreatedAt       time.Time     `json:"createdAt" db:"created_at"`
	UpdatedAt       time.Time     `json:"updatedAt" db:"updated_at"`

	User       *User       `json:"user,omitempty"`       // Relation, no db tag
	Department *Department `json:"department,omitempty"` // Relation, no db tag

	CourseCount int64 `json:"courseCount,omitempty"` // Aggregate, filled by repository
}
