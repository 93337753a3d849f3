package services

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/db"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// enrollmentStore is the slice of the enrollment repository this service
// needs. Narrow so tests can substitute a fake.
type enrollmentStore interface {
	CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetAll(ctx context.Context, page, pageSize int, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error)
	ExistsActive(ctx context.Context, studentID, courseID int64) (bool, error)
	UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error
	Delete(ctx context.Context, id int64) error
}

// courseReader provides course lookups with live enrollment counts
type courseReader interface {
	GetByID(ctx context.Context, id int64) (*models.Course, error)
}

// studentReader provides student lookups
type studentReader interface {
	GetByID(ctx context.Context, id int64) (*models.Student, error)
}

// transactor runs a function inside a database transaction
type transactor interface {
	WithTransaction(ctx context.Context, fn db.TransactionFn) error
}

// EnrollmentService handles enrollment operations
type EnrollmentService struct {
	database       transactor
	enrollmentRepo enrollmentStore
	courseRepo     courseReader
	studentRepo    studentReader
}

// NewEnrollmentService creates a new enrollment service
func NewEnrollmentService(database transactor, enrollmentRepo enrollmentStore, courseRepo courseReader, studentRepo studentReader) *EnrollmentService {
	return &EnrollmentService{
		database:       database,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		studentRepo:    studentRepo,
	}
}

// EnrollStudent enrolls a student in a course. Rejects duplicates and
// full courses; the partial unique index on active (student, course)
// settles races the pre-checks cannot see.
func (s *EnrollmentService) EnrollStudent(ctx context.Context, req dto.CreateEnrollmentRequest) (*models.Enrollment, error) {
	student, err := s.studentRepo.GetByID(ctx, req.StudentID)
	if err != nil {
		return nil, err
	}
	if !student.IsActive {
		return nil, apperrors.NewValidationError("student is not active")
	}

	course, err := s.courseRepo.GetByID(ctx, req.CourseID)
	if err != nil {
		return nil, err
	}
	if !course.IsActive {
		return nil, apperrors.NewValidationError("course is not active")
	}

	exists, err := s.enrollmentRepo.ExistsActive(ctx, req.StudentID, req.CourseID)
	if err != nil {
		return nil, fmt.Errorf("error checking enrollment: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAlreadyEnrolled
	}

	if course.AvailableSlots() <= 0 {
		return nil, apperrors.ErrCourseFull
	}

	enrollment := &models.Enrollment{
		StudentID: req.StudentID,
		CourseID:  req.CourseID,
		Status:    models.EnrollmentEnrolled,
		IsActive:  true,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		return s.enrollmentRepo.CreateTx(ctx, tx, enrollment)
	})
	if err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetByID(ctx, enrollment.ID)
}

// GetEnrollmentByID retrieves an enrollment by ID
func (s *EnrollmentService) GetEnrollmentByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid enrollment ID")
	}

	return s.enrollmentRepo.GetByID(ctx, id)
}

// GetAllEnrollments retrieves enrollments with pagination and filtering
func (s *EnrollmentService) GetAllEnrollments(ctx context.Context, page, pageSize int, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	return s.enrollmentRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateEnrollmentStatus transitions an enrollment to a new status
func (s *EnrollmentService) UpdateEnrollmentStatus(ctx context.Context, id int64, req dto.UpdateEnrollmentRequest) (*models.Enrollment, error) {
	if _, err := s.enrollmentRepo.GetByID(ctx, id); err != nil {
		return nil, err
	}

	if err := s.enrollmentRepo.UpdateStatus(ctx, id, models.EnrollmentStatus(req.Status), req.FinalGrade); err != nil {
		return nil, err
	}

	return s.enrollmentRepo.GetByID(ctx, id)
}

// DeleteEnrollment removes an enrollment and its dependent records
func (s *EnrollmentService) DeleteEnrollment(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid enrollment ID")
	}

	return s.enrollmentRepo.Delete(ctx, id)
}
