package services

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/db"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/auth"
	"github.com/campusadmin/api/internal/pkg/validation"
)

// TeacherService handles teacher operations
type TeacherService struct {
	database       *db.PostgresDB
	teacherRepo    *repositories.TeacherRepository
	userRepo       *repositories.UserRepository
	departmentRepo *repositories.DepartmentRepository
}

// NewTeacherService creates a new teacher service
func NewTeacherService(database *db.PostgresDB, teacherRepo *repositories.TeacherRepository, userRepo *repositories.UserRepository, departmentRepo *repositories.DepartmentRepository) *TeacherService {
	return &TeacherService{
		database:       database,
		teacherRepo:    teacherRepo,
		userRepo:       userRepo,
		departmentRepo: departmentRepo,
	}
}

// CreateTeacher creates a teacher together with its user account in one
// transaction
func (s *TeacherService) CreateTeacher(ctx context.Context, req dto.CreateTeacherRequest) (*models.Teacher, error) {
	if !validation.IsValidEmployeeID(req.EmployeeID) {
		return nil, apperrors.NewValidationError("employee ID must be 3-20 uppercase alphanumeric characters")
	}

	hireDate, err := time.Parse(time.DateOnly, req.HireDate)
	if err != nil {
		return nil, apperrors.NewValidationError("hire date must be in YYYY-MM-DD format")
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	exists, err := s.teacherRepo.ExistsByEmployeeID(ctx, req.EmployeeID)
	if err != nil {
		return nil, fmt.Errorf("error checking employee ID: %w", err)
	}
	if exists {
		return nil, apperrors.ErrEmployeeIDAlreadyExists
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Email:     req.Email,
		Password:  hashedPassword,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Role:      models.RoleTeacher,
		IsActive:  true,
	}

	teacher := &models.Teacher{
		EmployeeID:      req.EmployeeID,
		DepartmentID:    req.DepartmentID,
		Phone:           req.Phone,
		Qualification:   models.Qualification(req.Qualification),
		ExperienceYears: req.ExperienceYears,
		Salary:          req.Salary,
		HireDate:        hireDate,
		IsActive:        true,
	}

	err = s.database.WithTransaction(ctx, func(ctx context.Context, tx pgx.Tx) error {
		if err := s.userRepo.CreateTx(ctx, tx, user); err != nil {
			return err
		}
		teacher.UserID = user.ID
		return s.teacherRepo.CreateTx(ctx, tx, teacher)
	})
	if err != nil {
		return nil, err
	}

	teacher.User = user
	return teacher, nil
}

// GetTeacherByID retrieves a teacher by ID
func (s *TeacherService) GetTeacherByID(ctx context.Context, id int64) (*models.Teacher, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid teacher ID")
	}

	return s.teacherRepo.GetByID(ctx, id)
}

// GetTeacherByUserID retrieves the teacher record tied to a user account
func (s *TeacherService) GetTeacherByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	return s.teacherRepo.GetByUserID(ctx, userID)
}

// GetAllTeachers retrieves teachers with pagination and filtering
func (s *TeacherService) GetAllTeachers(ctx context.Context, page, pageSize int, filter dto.TeacherFilter) ([]*models.Teacher, int64, error) {
	return s.teacherRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateTeacher updates a teacher's mutable fields
func (s *TeacherService) UpdateTeacher(ctx context.Context, id int64, req dto.UpdateTeacherRequest) (*models.Teacher, error) {
	teacher, err := s.teacherRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	teacher.DepartmentID = req.DepartmentID
	teacher.Phone = req.Phone
	teacher.Qualification = models.Qualification(req.Qualification)
	teacher.ExperienceYears = req.ExperienceYears
	teacher.Salary = req.Salary

	if err := s.teacherRepo.Update(ctx, teacher); err != nil {
		return nil, err
	}

	if err := s.userRepo.UpdateName(ctx, teacher.UserID, req.FirstName, req.LastName); err != nil {
		return nil, err
	}

	return s.teacherRepo.GetByID(ctx, id)
}

// DeleteTeacher marks a teacher and its user account inactive
func (s *TeacherService) DeleteTeacher(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid teacher ID")
	}

	return s.teacherRepo.SoftDelete(ctx, id)
}
