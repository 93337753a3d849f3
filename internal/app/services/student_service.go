package services

import (
	"context"
	"time"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/validation"
)

// StudentService handles student operations
type StudentService struct {
	studentRepo    *repositories.StudentRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewStudentService creates a new student service
func NewStudentService(studentRepo *repositories.StudentRepository, departmentRepo *repositories.DepartmentRepository) *StudentService {
	return &StudentService{
		studentRepo:    studentRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateStudent creates a new student record
func (s *StudentService) CreateStudent(ctx context.Context, req dto.CreateStudentRequest) (*models.Student, error) {
	if !validation.IsValidStudentID(req.StudentID) {
		return nil, apperrors.NewValidationError("student ID must be 4-20 uppercase alphanumeric characters")
	}
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}

	dateOfBirth, err := time.Parse(time.DateOnly, req.DateOfBirth)
	if err != nil {
		return nil, apperrors.NewValidationError("date of birth must be in YYYY-MM-DD format")
	}

	admissionDate, err := time.Parse(time.DateOnly, req.AdmissionDate)
	if err != nil {
		return nil, apperrors.NewValidationError("admission date must be in YYYY-MM-DD format")
	}

	if dateOfBirth.After(time.Now()) {
		return nil, apperrors.NewValidationError("date of birth cannot be in the future")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	student := &models.Student{
		StudentID:     req.StudentID,
		FirstName:     req.FirstName,
		LastName:      req.LastName,
		Email:         req.Email,
		Phone:         req.Phone,
		DateOfBirth:   dateOfBirth,
		Gender:        models.Gender(req.Gender),
		Address:       req.Address,
		DepartmentID:  req.DepartmentID,
		YearOfStudy:   req.YearOfStudy,
		AdmissionDate: admissionDate,
		IsActive:      true,

		EmergencyContactName:     req.EmergencyContactName,
		EmergencyContactPhone:    req.EmergencyContactPhone,
		EmergencyContactRelation: req.EmergencyContactRelation,
	}

	if err := s.studentRepo.Create(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, student.ID)
}

// GetStudentByID retrieves a student by ID
func (s *StudentService) GetStudentByID(ctx context.Context, id int64) (*models.Student, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	return s.studentRepo.GetByID(ctx, id)
}

// GetAllStudents retrieves students with pagination and filtering
func (s *StudentService) GetAllStudents(ctx context.Context, page, pageSize int, filter dto.StudentFilter) ([]*models.Student, int64, error) {
	return s.studentRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateStudent updates a student's mutable fields
func (s *StudentService) UpdateStudent(ctx context.Context, id int64, req dto.UpdateStudentRequest) (*models.Student, error) {
	if !validation.IsValidEmail(req.Email) {
		return nil, apperrors.NewValidationError("invalid email address")
	}

	student, err := s.studentRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	student.FirstName = req.FirstName
	student.LastName = req.LastName
	student.Email = req.Email
	student.Phone = req.Phone
	student.Address = req.Address
	student.DepartmentID = req.DepartmentID
	student.YearOfStudy = req.YearOfStudy
	student.EmergencyContactName = req.EmergencyContactName
	student.EmergencyContactPhone = req.EmergencyContactPhone
	student.EmergencyContactRelation = req.EmergencyContactRelation

	if err := s.studentRepo.Update(ctx, student); err != nil {
		return nil, err
	}

	return s.studentRepo.GetByID(ctx, id)
}

// DeleteStudent marks a student inactive
func (s *StudentService) DeleteStudent(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid student ID")
	}

	return s.studentRepo.SoftDelete(ctx, id)
}
