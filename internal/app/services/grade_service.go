package services

import (
	"context"
	"time"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// gradeStore is the slice of the grade repository this service needs
type gradeStore interface {
	Create(ctx context.Context, grade *models.Grade) error
	GetByID(ctx context.Context, id int64) (*models.Grade, error)
	GetAll(ctx context.Context, page, pageSize int, filter dto.GradeFilter) ([]*models.Grade, int64, error)
	Update(ctx context.Context, grade *models.Grade) error
	Delete(ctx context.Context, id int64) error
}

// enrollmentReader provides enrollment lookups
type enrollmentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
}

// GradeService handles grade operations
type GradeService struct {
	gradeRepo      gradeStore
	enrollmentRepo enrollmentReader
}

// NewGradeService creates a new grade service
func NewGradeService(gradeRepo gradeStore, enrollmentRepo enrollmentReader) *GradeService {
	return &GradeService{
		gradeRepo:      gradeRepo,
		enrollmentRepo: enrollmentRepo,
	}
}

func validatePoints(earned, possible float64) error {
	if possible <= 0 {
		return apperrors.NewValidationError("points possible must be greater than zero")
	}
	if earned < 0 {
		return apperrors.NewValidationError("points earned cannot be negative")
	}
	if earned > possible {
		return apperrors.ErrInvalidPoints
	}
	return nil
}

// CreateGrade records a new assessment score. The stored percentage and
// letter grade are recomputed before the insert.
func (s *GradeService) CreateGrade(ctx context.Context, req dto.CreateGradeRequest) (*models.Grade, error) {
	if err := validatePoints(req.PointsEarned, req.PointsPossible); err != nil {
		return nil, err
	}

	assessmentDate, err := time.Parse(time.DateOnly, req.AssessmentDate)
	if err != nil {
		return nil, apperrors.NewValidationError("assessment date must be in YYYY-MM-DD format")
	}

	if _, err := s.enrollmentRepo.GetByID(ctx, req.EnrollmentID); err != nil {
		return nil, err
	}

	grade := &models.Grade{
		EnrollmentID:   req.EnrollmentID,
		AssessmentType: models.AssessmentType(req.AssessmentType),
		AssessmentName: req.AssessmentName,
		PointsEarned:   req.PointsEarned,
		PointsPossible: req.PointsPossible,
		AssessmentDate: assessmentDate,
		Comments:       req.Comments,
	}
	grade.Recalculate()

	if err := s.gradeRepo.Create(ctx, grade); err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByID(ctx, grade.ID)
}

// GetGradeByID retrieves a grade by ID
func (s *GradeService) GetGradeByID(ctx context.Context, id int64) (*models.Grade, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid grade ID")
	}

	return s.gradeRepo.GetByID(ctx, id)
}

// GetAllGrades retrieves grades with pagination and filtering
func (s *GradeService) GetAllGrades(ctx context.Context, page, pageSize int, filter dto.GradeFilter) ([]*models.Grade, int64, error) {
	return s.gradeRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateGrade rewrites a grade's points; derived fields are recomputed
// and persisted in the same statement
func (s *GradeService) UpdateGrade(ctx context.Context, id int64, req dto.UpdateGradeRequest) (*models.Grade, error) {
	if err := validatePoints(req.PointsEarned, req.PointsPossible); err != nil {
		return nil, err
	}

	grade, err := s.gradeRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	grade.AssessmentName = req.AssessmentName
	grade.PointsEarned = req.PointsEarned
	grade.PointsPossible = req.PointsPossible
	grade.Comments = req.Comments
	grade.Recalculate()

	if err := s.gradeRepo.Update(ctx, grade); err != nil {
		return nil, err
	}

	return s.gradeRepo.GetByID(ctx, id)
}

// DeleteGrade removes a grade permanently
func (s *GradeService) DeleteGrade(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid grade ID")
	}

	return s.gradeRepo.Delete(ctx, id)
}
