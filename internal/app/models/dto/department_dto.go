package dto

import "github.com/campusadmin/api/internal/app/models"

// DepartmentResponse represents department information with aggregate counts
type DepartmentResponse struct {
	ID               int64   `json:"id"`
	Name             string  `json:"name"`
	Code             string  `json:"code"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`
	TeacherCount     int64   `json:"teacherCount"`
	StudentCount     int64   `json:"studentCount"`
	CourseCount      int64   `json:"courseCount"`
}

// CreateDepartmentRequest represents department creation data
type CreateDepartmentRequest struct {
	Name             string  `json:"name" binding:"required"`
	Code             string  `json:"code" binding:"required"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`
}

// UpdateDepartmentRequest represents department update data
type UpdateDepartmentRequest struct {
	Name             string  `json:"name" binding:"required"`
	Code             string  `json:"code" binding:"required"`
	Description      *string `json:"description,omitempty"`
	HeadOfDepartment *string `json:"headOfDepartment,omitempty"`
}

// DepartmentListResponse represents a paginated list of departments
type DepartmentListResponse struct {
	Departments []DepartmentResponse `json:"departments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// FromDepartment converts a models.Department to a DepartmentResponse
func FromDepartment(d *models.Department) DepartmentResponse {
	if d == nil {
		return DepartmentResponse{}
	}
	return DepartmentResponse{
		ID:               d.ID,
		Name:             d.Name,
		Code:             d.Code,
		Description:      d.Description,
		HeadOfDepartment: d.HeadOfDepartment,
		TeacherCount:     d.TeacherCount,
		StudentCount:     d.StudentCount,
		CourseCount:      d.CourseCount,
	}
}
