package dto

import "github.com/campusadmin/api/internal/app/models"

// CourseResponse represents course information with capacity figures
type CourseResponse struct {
	ID             int64   `json:"id"`
	CourseCode     string  `json:"courseCode"`
	Name           string  `json:"name"`
	Description    *string `json:"description,omitempty"`
	DepartmentID   int64   `json:"departmentId"`
	DepartmentName string  `json:"departmentName,omitempty"`
	TeacherID      int64   `json:"teacherId"`
	TeacherName    string  `json:"teacherName,omitempty"`
	Credits        int     `json:"credits"`
	Semester       string  `json:"semester"`
	Year           int     `json:"year"`
	MaxStudents    int     `json:"maxStudents"`
	EnrolledCount  int64   `json:"enrolledCount"`
	AvailableSlots int     `json:"availableSlots"`
	Schedule       *string `json:"schedule,omitempty"`
	Classroom      *string `json:"classroom,omitempty"`
	IsActive       bool    `json:"isActive"`
}

// CreateCourseRequest represents course creation data
type CreateCourseRequest struct {
	CourseCode   string  `json:"courseCode" binding:"required"`
	Name         string  `json:"name" binding:"required"`
	Description  *string `json:"description,omitempty"`
	DepartmentID int64   `json:"departmentId" binding:"required,gt=0"`
	TeacherID    int64   `json:"teacherId" binding:"required,gt=0"`
	Credits      int     `json:"credits" binding:"required,gte=1,lte=6"`
	Semester     string  `json:"semester" binding:"required,oneof=FALL SPRING SUMMER"`
	Year         int     `json:"year" binding:"required,gte=2000,lte=2100"`
	MaxStudents  int     `json:"maxStudents" binding:"omitempty,gt=0"`
	Schedule     *string `json:"schedule,omitempty"`
	Classroom    *string `json:"classroom,omitempty"`
}

// UpdateCourseRequest represents course update data
type UpdateCourseRequest struct {
	Name        string  `json:"name" binding:"required"`
	Description *string `json:"description,omitempty"`
	TeacherID   int64   `json:"teacherId" binding:"required,gt=0"`
	Credits     int     `json:"credits" binding:"required,gte=1,lte=6"`
	MaxStudents int     `json:"maxStudents" binding:"required,gt=0"`
	Schedule    *string `json:"schedule,omitempty"`
	Classroom   *string `json:"classroom,omitempty"`
}

// CourseListResponse represents a paginated list of courses
type CourseListResponse struct {
	Courses    []CourseResponse `json:"courses"`
	Pagination PaginationInfo   `json:"pagination"`
}

// CourseFilter holds list filter parameters
type CourseFilter struct {
	DepartmentID *int64
	TeacherID    *int64
	Semester     string
	Year         *int
	IsActive     *bool
	Search       string
	SortBy       string
	SortOrder    string
}

// FromCourse converts a models.Course to a CourseResponse
func FromCourse(c *models.Course) CourseResponse {
	if c == nil {
		return CourseResponse{}
	}

	resp := CourseResponse{
		ID:             c.ID,
		CourseCode:     c.CourseCode,
		Name:           c.Name,
		Description:    c.Description,
		DepartmentID:   c.DepartmentID,
		TeacherID:      c.TeacherID,
		Credits:        c.Credits,
		Semester:       string(c.Semester),
		Year:           c.Year,
		MaxStudents:    c.MaxStudents,
		EnrolledCount:  c.EnrolledCount,
		AvailableSlots: c.AvailableSlots(),
		Schedule:       c.Schedule,
		Classroom:      c.Classroom,
		IsActive:       c.IsActive,
	}

	if c.Department != nil {
		resp.DepartmentName = c.Department.Name
	}
	if c.Teacher != nil && c.Teacher.User != nil {
		resp.TeacherName = c.Teacher.User.FirstName + " " + c.Teacher.User.LastName
	}

	return resp
}
