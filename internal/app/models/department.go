package models

import "time"

// Department represents an academic department
type Department struct {
	ID               int64     `json:"id" db:"id"`
	Name             string    `json:"name" db:"name"`
	Code             string    `json:"code" db:"code"`
	Description      *string   `json:"description,omitempty" db:"description"`
	HeadOfDepartment *string   `json:"headOfDepartment,omitempty" db:"head_of_department"`
	CreatedAt        time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt        time.Time `json:"updatedAt" db:"updated_at"`

	// Aggregate counts filled by the repository, no db tag
	TeacherCount int64 `json:"teacherCount,omitempty"`
	StudentCount int64 `json:"studentCount,omitempty"`
	CourseCount  int64 `json:"courseCount,omitempty"`
}
