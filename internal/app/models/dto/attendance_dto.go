package dto

import (
	"time"

	"github.com/campusadmin/api/internal/app/models"
)

// AttendanceResponse represents one attendance record
type AttendanceResponse struct {
	ID           int64   `json:"id"`
	EnrollmentID int64   `json:"enrollmentId"`
	StudentName  string  `json:"studentName,omitempty"`
	CourseCode   string  `json:"courseCode,omitempty"`
	Date         string  `json:"date"`
	Status       string  `json:"status"`
	Notes        *string `json:"notes,omitempty"`
	MarkedByID   *int64  `json:"markedById,omitempty"`
}

// CreateAttendanceRequest represents attendance creation data
type CreateAttendanceRequest struct {
	EnrollmentID int64   `json:"enrollmentId" binding:"required,gt=0"`
	Date         string  `json:"date" binding:"required"` // YYYY-MM-DD
	Status       string  `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Notes        *string `json:"notes,omitempty"`
	MarkedByID   *int64  `json:"markedById,omitempty"`
}

// UpdateAttendanceRequest represents attendance update data
type UpdateAttendanceRequest struct {
	Status string  `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Notes  *string `json:"notes,omitempty"`
}

// AttendanceListResponse represents a paginated list of attendance records
type AttendanceListResponse struct {
	Records    []AttendanceResponse `json:"records"`
	Pagination PaginationInfo       `json:"pagination"`
}

// AttendanceFilter holds list filter parameters
type AttendanceFilter struct {
	EnrollmentID *int64
	CourseID     *int64
	Status       string
	DateFrom     time.Time
	DateTo       time.Time
	SortBy       string
	SortOrder    string
}

// BulkAttendanceRecord is one student entry in a bulk marking request
type BulkAttendanceRecord struct {
	StudentID int64   `json:"studentId" binding:"required,gt=0"`
	Status    string  `json:"status" binding:"required,oneof=PRESENT ABSENT LATE EXCUSED"`
	Notes     *string `json:"notes,omitempty"`
}

// BulkAttendanceRequest marks attendance for a whole course on one day
type BulkAttendanceRequest struct {
	CourseID int64                  `json:"courseId" binding:"required,gt=0"`
	Date     string                 `json:"date" binding:"required"` // YYYY-MM-DD
	MarkedBy int64                  `json:"markedBy" binding:"required,gt=0"`
	Records  []BulkAttendanceRecord `json:"records" binding:"required,min=1,dive"`
}

// BulkAttendanceOutcome is one processed entry of a bulk marking
type BulkAttendanceOutcome struct {
	StudentID int64  `json:"studentId"`
	Status    string `json:"status"`
	Created   bool   `json:"created"`
}

// BulkAttendanceResponse reports per-item outcomes of a bulk marking
type BulkAttendanceResponse struct {
	CourseID     int64                   `json:"courseId"`
	Date         string                  `json:"date"`
	CreatedCount int                     `json:"createdCount"`
	UpdatedCount int                     `json:"updatedCount"`
	Records      []BulkAttendanceOutcome `json:"records"`
	Errors       []string                `json:"errors"`
}

// FromAttendance converts a models.Attendance to an AttendanceResponse
func FromAttendance(a *models.Attendance) AttendanceResponse {
	if a == nil {
		return AttendanceResponse{}
	}

	resp := AttendanceResponse{
		ID:           a.ID,
		EnrollmentID: a.EnrollmentID,
		Date:         a.Date.Format(time.DateOnly),
		Status:       string(a.Status),
		Notes:        a.Notes,
		MarkedByID:   a.MarkedByID,
	}

	if a.Enrollment != nil {
		if a.Enrollment.Student != nil {
			resp.StudentName = a.Enrollment.Student.FullName()
		}
		if a.Enrollment.Course != nil {
			resp.CourseCode = a.Enrollment.Course.CourseCode
		}
	}

	return resp
}
