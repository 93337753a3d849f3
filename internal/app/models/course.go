package models

import "time"

// Semester represents an academic term
type Semester string

const (
	SemesterFall   Semester = "FALL"
	SemesterSpring Semester = "SPRING"
	SemesterSummer Semester = "SUMMER"
)

// Course represents a course offered in a given semester and year.
// A course code is unique per (semester, year) pair.
type Course struct {
	ID           int64     `json:"id" db:"id"`
	CourseCode   string    `json:"courseCode" db:"course_code"`
	Name         string    `json:"name" db:"name"`
	Description  *string   `json:"description,omitempty" db:"description"`
	DepartmentID int64     `json:"departmentId" db:"department_id"`
	TeacherID    int64     `json:"teacherId" db:"teacher_id"`
	Credits      int       `json:"credits" db:"credits"`
	Semester     Semester  `json:"semester" db:"semester"`
	Year         int       `json:"year" db:"year"`
	MaxStudents  int       `json:"maxStudents" db:"max_students"`
	Schedule     *string   `json:"schedule,omitempty" db:"schedule"`
	Classroom    *string   `json:"classroom,omitempty" db:"classroom"`
	IsActive     bool      `json:"isActive" db:"is_active"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`

	Department *Department `json:"department,omitempty"` // Relation, no db tag
	Teacher    *Teacher    `json:"teacher,omitempty"`    // Relation, no db tag

	EnrolledCount int64 `json:"enrolledCount" db:"-"` // Active enrollments, filled by repository
}

// AvailableSlots returns the remaining enrollment capacity, never negative.
func (c *Course) AvailableSlots() int {
	slots := c.MaxStudents - int(c.EnrolledCount)
	if slots < 0 {
		return 0
	}
	return slots
}
