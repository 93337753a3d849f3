package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/validation"
)

// DepartmentService handles department operations
type DepartmentService struct {
	departmentRepo *repositories.DepartmentRepository
}

// NewDepartmentService creates a new department service
func NewDepartmentService(departmentRepo *repositories.DepartmentRepository) *DepartmentService {
	return &DepartmentService{
		departmentRepo: departmentRepo,
	}
}

func (s *DepartmentService) validateDepartment(department *models.Department) error {
	if strings.TrimSpace(department.Name) == "" {
		return apperrors.NewValidationError("department name cannot be empty")
	}
	if !validation.IsValidDepartmentCode(department.Code) {
		return apperrors.NewValidationError("department code must be 2-10 uppercase alphanumeric characters")
	}
	return nil
}

// CreateDepartment creates a new department
func (s *DepartmentService) CreateDepartment(ctx context.Context, department *models.Department) error {
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	return s.departmentRepo.Create(ctx, department)
}

// GetDepartmentByID retrieves a department by ID
func (s *DepartmentService) GetDepartmentByID(ctx context.Context, id int64) (*models.Department, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid department ID")
	}

	return s.departmentRepo.GetByID(ctx, id)
}

// GetAllDepartments retrieves departments with pagination and search
func (s *DepartmentService) GetAllDepartments(ctx context.Context, page, pageSize int, search string) ([]*models.Department, int64, error) {
	return s.departmentRepo.GetAll(ctx, page, pageSize, search)
}

// UpdateDepartment updates an existing department
func (s *DepartmentService) UpdateDepartment(ctx context.Context, department *models.Department) error {
	if department.ID <= 0 {
		return apperrors.NewValidationError("invalid department ID")
	}
	if err := s.validateDepartment(department); err != nil {
		return err
	}

	exists, err := s.departmentRepo.ExistsByNameOrCode(ctx, department.Name, department.Code, department.ID)
	if err != nil {
		return fmt.Errorf("error checking department uniqueness: %w", err)
	}
	if exists {
		return apperrors.ErrDepartmentAlreadyExists
	}

	return s.departmentRepo.Update(ctx, department)
}

// DeleteDepartment deletes a department. Deletion is refused while the
// department still owns teachers, students or courses.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid department ID")
	}

	hasRelations, err := s.departmentRepo.HasRelations(ctx, id)
	if err != nil {
		return fmt.Errorf("error checking department relations: %w", err)
	}
	if hasRelations {
		return apperrors.ErrDepartmentHasRelations
	}

	return s.departmentRepo.Delete(ctx, id)
}
