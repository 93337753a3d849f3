package models

import "time"

// Gender represents a student's gender
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// Student represents an enrolled student
type Student struct {
	ID             int64      `json:"id" db:"id"`
	StudentID      string     `json:"studentId" db:"student_id"`
	FirstName      string     `json:"firstName" db:"first_name"`
	LastName       string     `json:"lastName" db:"last_name"`
	Email          string     `json:"email" db:"email"`
	Phone          *string    `json:"phone,omitempty" db:"phone"`
	DateOfBirth    time.Time  `json:"dateOfBirth" db:"date_of_birth"`
	Gender         Gender     `json:"gender" db:"gender"`
	Address        *string    `json:"address,omitempty" db:"address"`
	DepartmentID   int64      `json:"departmentId" db:"department_id"`
	YearOfStudy    int        `json:"yearOfStudy" db:"year_of_study"`
	AdmissionDate  time.Time  `json:"admissionDate" db:"admission_date"`
	GraduationDate *time.Time `json:"graduationDate,omitempty" db:"graduation_date"`
	IsActive       bool       `json:"isActive" db:"is_active"`

	EmergencyContactName     *string `json:"emergencyContactName,omitempty" db:"emergency_contact_name"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone,omitempty" db:"emergency_contact_phone"`
	EmergencyContactRelation *string `json:"emergencyContactRelation,omitempty" db:"emergency_contact_relation"`

	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
}

// FullName returns the student's display name
func (s *Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// Age returns the exact calendar age at the given moment.
// The year difference is decremented when (month, day) has not yet
// reached the birth (month, day).
func (s *Student) Age(now time.Time) int {
	age := now.Year() - s.DateOfBirth.Year()
	if now.Month() < s.DateOfBirth.Month() ||
		(now.Month() == s.DateOfBirth.Month() && now.Day() < s.DateOfBirth.Day()) {
		age--
	}
	return age
}
