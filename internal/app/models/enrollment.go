package models

import "time"

// EnrollmentStatus represents the lifecycle state of an enrollment
type EnrollmentStatus string

const (
	EnrollmentEnrolled  EnrollmentStatus = "ENROLLED"
	EnrollmentDropped   EnrollmentStatus = "DROPPED"
	EnrollmentCompleted EnrollmentStatus = "COMPLETED"
	EnrollmentFailed    EnrollmentStatus = "FAILED"
)

// Enrollment links a student to a course. A student may hold at most one
// active enrollment per course; the enrollment date is set by the database
// on insert and never updated.
type Enrollment struct {
	ID             int64            `json:"id" db:"id"`
	StudentID      int64            `json:"studentId" db:"student_id"`
	CourseID       int64            `json:"courseId" db:"course_id"`
	EnrollmentDate time.Time        `json:"enrollmentDate" db:"enrollment_date"`
	Status         EnrollmentStatus `json:"status" db:"status"`
	IsActive       bool             `json:"isActive" db:"is_active"`
	FinalGrade     *string          `json:"finalGrade,omitempty" db:"final_grade"`
	CompletionDate *time.Time       `json:"completionDate,omitempty" db:"completion_date"`
	CreatedAt      time.Time        `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time        `json:"updatedAt" db:"updated_at"`

	Student *Student `json:"student,omitempty"` // Relation, no db tag
	Course  *Course  `json:"course,omitempty"`  // Relation, no db tag
}
