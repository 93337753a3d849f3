package dto

import (
	"time"

	"github.com/campusadmin/api/internal/app/models"
)

// EnrollmentResponse represents enrollment information
type EnrollmentResponse struct {
	ID             int64   `json:"id"`
	StudentID      int64   `json:"studentId"`
	StudentNumber  string  `json:"studentNumber,omitempty"`
	StudentName    string  `json:"studentName,omitempty"`
	CourseID       int64   `json:"courseId"`
	CourseCode     string  `json:"courseCode,omitempty"`
	CourseName     string  `json:"courseName,omitempty"`
	EnrollmentDate string  `json:"enrollmentDate"`
	Status         string  `json:"status"`
	IsActive       bool    `json:"isActive"`
	FinalGrade     *string `json:"finalGrade,omitempty"`
	CompletionDate *string `json:"completionDate,omitempty"`
}

// CreateEnrollmentRequest represents enrollment creation data
type CreateEnrollmentRequest struct {
	StudentID int64 `json:"studentId" binding:"required,gt=0"`
	CourseID  int64 `json:"courseId" binding:"required,gt=0"`
}

// UpdateEnrollmentRequest represents enrollment status update data
type UpdateEnrollmentRequest struct {
	Status     string  `json:"status" binding:"required,oneof=ENROLLED DROPPED COMPLETED FAILED"`
	FinalGrade *string `json:"finalGrade,omitempty"`
}

// EnrollmentListResponse represents a paginated list of enrollments
type EnrollmentListResponse struct {
	Enrollments []EnrollmentResponse `json:"enrollments"`
	Pagination  PaginationInfo       `json:"pagination"`
}

// EnrollmentFilter holds list filter parameters
type EnrollmentFilter struct {
	StudentID *int64
	CourseID  *int64
	Status    string
	IsActive  *bool
	SortBy    string
	SortOrder string
}

// FromEnrollment converts a models.Enrollment to an EnrollmentResponse
func FromEnrollment(e *models.Enrollment) EnrollmentResponse {
	if e == nil {
		return EnrollmentResponse{}
	}

	resp := EnrollmentResponse{
		ID:             e.ID,
		StudentID:      e.StudentID,
		CourseID:       e.CourseID,
		EnrollmentDate: e.EnrollmentDate.Format(time.DateOnly),
		Status:         string(e.Status),
		IsActive:       e.IsActive,
		FinalGrade:     e.FinalGrade,
	}

	if e.CompletionDate != nil {
		cd := e.CompletionDate.Format(time.DateOnly)
		resp.CompletionDate = &cd
	}
	if e.Student != nil {
		resp.StudentNumber = e.Student.StudentID
		resp.StudentName = e.Student.FullName()
	}
	if e.Course != nil {
		resp.CourseCode = e.Course.CourseCode
		resp.CourseName = e.Course.Name
	}

	return resp
}
