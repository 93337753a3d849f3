package services

import (
	"context"
	"errors"

	"github.com/campusadmin/api/internal/app/auth"
	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// PrincipalService maps authenticated JWT claims onto an access-control
// principal, resolving the teacher or student record behind the account
type PrincipalService struct {
	teacherRepo *repositories.TeacherRepository
	studentRepo *repositories.StudentRepository
}

// NewPrincipalService creates a new principal service
func NewPrincipalService(teacherRepo *repositories.TeacherRepository, studentRepo *repositories.StudentRepository) *PrincipalService {
	return &PrincipalService{
		teacherRepo: teacherRepo,
		studentRepo: studentRepo,
	}
}

// Resolve builds the principal for a logged-in user
func (s *PrincipalService) Resolve(ctx context.Context, userID int64, email string, role models.RoleType) (auth.Principal, error) {
	switch role {
	case models.RoleSuperuser:
		return auth.Superuser(userID), nil

	case models.RoleTeacher:
		teacher, err := s.teacherRepo.GetByUserID(ctx, userID)
		if err != nil {
			if errors.Is(err, apperrors.ErrTeacherNotFound) {
				return auth.Anonymous(), apperrors.ErrPermissionDenied
			}
			return auth.Anonymous(), err
		}
		return auth.TeacherPrincipal(userID, teacher.ID, teacher.DepartmentID), nil

	case models.RoleStudent:
		student, err := s.studentRepo.GetByEmail(ctx, email)
		if err != nil {
			if errors.Is(err, apperrors.ErrStudentNotFound) {
				// Credential exists without a student record; reads only
				return auth.StudentPrincipal(userID, 0), nil
			}
			return auth.Anonymous(), err
		}
		return auth.StudentPrincipal(userID, student.ID), nil

	default:
		return auth.Anonymous(), apperrors.ErrPermissionDenied
	}
}
