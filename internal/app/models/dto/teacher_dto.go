package dto

import (
	"time"

	"github.com/campusadmin/api/internal/app/models"
)

// TeacherResponse represents teacher information
type TeacherResponse struct {
	ID              int64    `json:"id"`
	EmployeeID      string   `json:"employeeId"`
	FirstName       string   `json:"firstName"`
	LastName        string   `json:"lastName"`
	Email           string   `json:"email"`
	Phone           *string  `json:"phone,omitempty"`
	DepartmentID    int64    `json:"departmentId"`
	DepartmentName  string   `json:"departmentName,omitempty"`
	Qualification   string   `json:"qualification"`
	ExperienceYears int      `json:"experienceYears"`
	Salary          *float64 `json:"salary,omitempty"`
	HireDate        string   `json:"hireDate"`
	IsActive        bool     `json:"isActive"`
	CourseCount     int64    `json:"courseCount"`
}

// CreateTeacherRequest represents teacher creation data.
// A user account with the TEACHER role is created alongside the record.
type CreateTeacherRequest struct {
	EmployeeID      string   `json:"employeeId" binding:"required"`
	FirstName       string   `json:"firstName" binding:"required"`
	LastName        string   `json:"lastName" binding:"required"`
	Email           string   `json:"email" binding:"required,email"`
	Password        string   `json:"password" binding:"required,min=8"`
	Phone           *string  `json:"phone,omitempty"`
	DepartmentID    int64    `json:"departmentId" binding:"required,gt=0"`
	Qualification   string   `json:"qualification" binding:"required,oneof=BSC MSC PHD BED MED"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0"`
	Salary          *float64 `json:"salary,omitempty"`
	HireDate        string   `json:"hireDate" binding:"required"` // YYYY-MM-DD
}

// UpdateTeacherRequest represents teacher update data
type UpdateTeacherRequest struct {
	FirstName       string   `json:"firstName" binding:"required"`
	LastName        string   `json:"lastName" binding:"required"`
	Phone           *string  `json:"phone,omitempty"`
	DepartmentID    int64    `json:"departmentId" binding:"required,gt=0"`
	Qualification   string   `json:"qualification" binding:"required,oneof=BSC MSC PHD BED MED"`
	ExperienceYears int      `json:"experienceYears" binding:"gte=0"`
	Salary          *float64 `json:"salary,omitempty"`
}

// TeacherListResponse represents a paginated list of teachers
type TeacherListResponse struct {
	Teachers   []TeacherResponse `json:"teachers"`
	Pagination PaginationInfo    `json:"pagination"`
}

// TeacherFilter holds list filter parameters
type TeacherFilter struct {
	DepartmentID  *int64
	Qualification string
	IsActive      *bool
	Search        string
	SortBy        string
	SortOrder     string
}

// FromTeacher converts a models.Teacher to a TeacherResponse
func FromTeacher(t *models.Teacher) TeacherResponse {
	if t == nil {
		return TeacherResponse{}
	}

	resp := TeacherResponse{
		ID:              t.ID,
		EmployeeID:      t.EmployeeID,
		Phone:           t.Phone,
		DepartmentID:    t.DepartmentID,
		Qualification:   string(t.Qualification),
		ExperienceYears: t.ExperienceYears,
		Salary:          t.Salary,
		HireDate:        t.HireDate.Format(time.DateOnly),
		IsActive:        t.IsActive,
		CourseCount:     t.CourseCount,
	}

	if t.User != nil {
		resp.FirstName = t.User.FirstName
		resp.LastName = t.User.LastName
		resp.Email = t.User.Email
	}
	if t.Department != nil {
		resp.DepartmentName = t.Department.Name
	}

	return resp
}
