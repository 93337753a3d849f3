package dto

import (
	"time"

	"github.com/campusadmin/api/internal/app/models"
)

// StudentResponse represents student information with derived fields
type StudentResponse struct {
	ID             int64   `json:"id"`
	StudentID      string  `json:"studentId"`
	FirstName      string  `json:"firstName"`
	LastName       string  `json:"lastName"`
	FullName       string  `json:"fullName"`
	Email          string  `json:"email"`
	Phone          *string `json:"phone,omitempty"`
	DateOfBirth    string  `json:"dateOfBirth"`
	Age            int     `json:"age"`
	Gender         string  `json:"gender"`
	Address        *string `json:"address,omitempty"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName,omitempty"`
	YearOfStudy    int     `json:"yearOfStudy"`
	AdmissionDate  string  `json:"admissionDate"`
	GraduationDate *string `json:"graduationDate,omitempty"`
	IsActive       bool    `json:"isActive"`

	EmergencyContactName     *string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string `json:"emergencyContactRelation,omitempty"`
}

// CreateStudentRequest represents student creation data
type CreateStudentRequest struct {
	StudentID     string  `json:"studentId" binding:"required"`
	FirstName     string  `json:"firstName" binding:"required"`
	LastName      string  `json:"lastName" binding:"required"`
	Email         string  `json:"email" binding:"required,email"`
	Phone         *string `json:"phone,omitempty"`
	DateOfBirth   string  `json:"dateOfBirth" binding:"required"` // YYYY-MM-DD
	Gender        string  `json:"gender" binding:"required,oneof=M F O"`
	Address       *string `json:"address,omitempty"`
	DepartmentID  int64   `json:"departmentId" binding:"required,gt=0"`
	YearOfStudy   int     `json:"yearOfStudy" binding:"required,gte=1,lte=4"`
	AdmissionDate string  `json:"admissionDate" binding:"required"` // YYYY-MM-DD

	EmergencyContactName     *string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string `json:"emergencyContactRelation,omitempty"`
}

// UpdateStudentRequest represents student update data
type UpdateStudentRequest struct {
	FirstName    string  `json:"firstName" binding:"required"`
	LastName     string  `json:"lastName" binding:"required"`
	Email        string  `json:"email" binding:"required,email"`
	Phone        *string `json:"phone,omitempty"`
	Address      *string `json:"address,omitempty"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0"`
	YearOfStudy  int     `json:"yearOfStudy" binding:"required,gte=1,lte=4"`

	EmergencyContactName     *string `json:"emergencyContactName,omitempty"`
	EmergencyContactPhone    *string `json:"emergencyContactPhone,omitempty"`
	EmergencyContactRelation *string `json:"emergencyContactRelation,omitempty"`
}

// StudentListResponse represents a paginated list of students
type StudentListResponse struct {
	Students   []StudentResponse `json:"students"`
	Pagination PaginationInfo    `json:"pagination"`
}

// StudentFilter holds list filter parameters
type StudentFilter struct {
	DepartmentID   *int64
	DepartmentCode string
	YearOfStudy    *int
	Gender         string
	IsActive       *bool
	Search         string
	SortBy         string
	SortOrder      string
}

// FromStudent converts a models.Student to a StudentResponse
func FromStudent(s *models.Student) StudentResponse {
	if s == nil {
		return StudentResponse{}
	}

	resp := StudentResponse{
		ID:            s.ID,
		StudentID:     s.StudentID,
		FirstName:     s.FirstName,
		LastName:      s.LastName,
		FullName:      s.FullName(),
		Email:         s.Email,
		Phone:         s.Phone,
		DateOfBirth:   s.DateOfBirth.Format(time.DateOnly),
		Age:           s.Age(time.Now()),
		Gender:        string(s.Gender),
		Address:       s.Address,
		DepartmentID:  s.DepartmentID,
		YearOfStudy:   s.YearOfStudy,
		AdmissionDate: s.AdmissionDate.Format(time.DateOnly),
		IsActive:      s.IsActive,

		EmergencyContactName:     s.EmergencyContactName,
		EmergencyContactPhone:    s.EmergencyContactPhone,
		EmergencyContactRelation: s.EmergencyContactRelation,
	}

	if s.GraduationDate != nil {
		gd := s.GraduationDate.Format(time.DateOnly)
		resp.GraduationDate = &gd
	}
	if s.Department != nil {
		resp.DepartmentName = s.Department.Name
	}

	return resp
}
