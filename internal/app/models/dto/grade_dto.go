package dto

import (
	"time"

	"github.com/campusadmin/api/internal/app/models"
)

// GradeResponse represents a scored assessment
type GradeResponse struct {
	ID             int64   `json:"id"`
	EnrollmentID   int64   `json:"enrollmentId"`
	StudentName    string  `json:"studentName,omitempty"`
	CourseCode     string  `json:"courseCode,omitempty"`
	AssessmentType string  `json:"assessmentType"`
	AssessmentName string  `json:"assessmentName"`
	PointsEarned   float64 `json:"pointsEarned"`
	PointsPossible float64 `json:"pointsPossible"`
	Percentage     float64 `json:"percentage"`
	LetterGrade    string  `json:"letterGrade"`
	AssessmentDate string  `json:"assessmentDate"`
	Comments       *string `json:"comments,omitempty"`
}

// CreateGradeRequest represents grade creation data
type CreateGradeRequest struct {
	EnrollmentID   int64   `json:"enrollmentId" binding:"required,gt=0"`
	AssessmentType string  `json:"assessmentType" binding:"required,oneof=QUIZ ASSIGNMENT MIDTERM FINAL PROJECT PRESENTATION"`
	AssessmentName string  `json:"assessmentName" binding:"required"`
	PointsEarned   float64 `json:"pointsEarned" binding:"gte=0"`
	PointsPossible float64 `json:"pointsPossible" binding:"required,gt=0"`
	AssessmentDate string  `json:"assessmentDate" binding:"required"` // YYYY-MM-DD
	Comments       *string `json:"comments,omitempty"`
}

// UpdateGradeRequest represents grade update data
type UpdateGradeRequest struct {
	AssessmentName string  `json:"assessmentName" binding:"required"`
	PointsEarned   float64 `json:"pointsEarned" binding:"gte=0"`
	PointsPossible float64 `json:"pointsPossible" binding:"required,gt=0"`
	Comments       *string `json:"comments,omitempty"`
}

// GradeListResponse represents a paginated list of grades
type GradeListResponse struct {
	Grades     []GradeResponse `json:"grades"`
	Pagination PaginationInfo  `json:"pagination"`
}

// GradeFilter holds list filter parameters
type GradeFilter struct {
	EnrollmentID   *int64
	AssessmentType string
	DateFrom       time.Time
	DateTo         time.Time
	SortBy         string
	SortOrder      string
}

// FromGrade converts a models.Grade to a GradeResponse
func FromGrade(g *models.Grade) GradeResponse {
	if g == nil {
		return GradeResponse{}
	}

	resp := GradeResponse{
		ID:             g.ID,
		EnrollmentID:   g.EnrollmentID,
		AssessmentType: string(g.AssessmentType),
		AssessmentName: g.AssessmentName,
		PointsEarned:   g.PointsEarned,
		PointsPossible: g.PointsPossible,
		Percentage:     g.Percentage,
		LetterGrade:    g.LetterGrade,
		AssessmentDate: g.AssessmentDate.Format(time.DateOnly),
		Comments:       g.Comments,
	}

	if g.Enrollment != nil {
		if g.Enrollment.Student != nil {
			resp.StudentName = g.Enrollment.Student.FullName()
		}
		if g.Enrollment.Course != nil {
			resp.CourseCode = g.Enrollment.Course.CourseCode
		}
	}

	return resp
}
