package services

import (
	"context"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// DefaultMaxStudents is the course capacity used when none is given
const DefaultMaxStudents = 30

// CourseService handles course operations
type CourseService struct {
	courseRepo     *repositories.CourseRepository
	departmentRepo *repositories.DepartmentRepository
	teacherRepo    *repositories.TeacherRepository
}

// NewCourseService creates a new course service
func NewCourseService(courseRepo *repositories.CourseRepository, departmentRepo *repositories.DepartmentRepository, teacherRepo *repositories.TeacherRepository) *CourseService {
	return &CourseService{
		courseRepo:     courseRepo,
		departmentRepo: departmentRepo,
		teacherRepo:    teacherRepo,
	}
}

// CreateCourse creates a new course
func (s *CourseService) CreateCourse(ctx context.Context, req dto.CreateCourseRequest) (*models.Course, error) {
	if _, err := s.departmentRepo.GetByID(ctx, req.DepartmentID); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.IsActive {
		return nil, apperrors.NewValidationError("assigned teacher is not active")
	}

	maxStudents := req.MaxStudents
	if maxStudents <= 0 {
		maxStudents = DefaultMaxStudents
	}

	course := &models.Course{
		CourseCode:   req.CourseCode,
		Name:         req.Name,
		Description:  req.Description,
		DepartmentID: req.DepartmentID,
		TeacherID:    req.TeacherID,
		Credits:      req.Credits,
		Semester:     models.Semester(req.Semester),
		Year:         req.Year,
		MaxStudents:  maxStudents,
		Schedule:     req.Schedule,
		Classroom:    req.Classroom,
		IsActive:     true,
	}

	if err := s.courseRepo.Create(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, course.ID)
}

// GetCourseByID retrieves a course by ID
func (s *CourseService) GetCourseByID(ctx context.Context, id int64) (*models.Course, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid course ID")
	}

	return s.courseRepo.GetByID(ctx, id)
}

// GetAllCourses retrieves courses with pagination and filtering
func (s *CourseService) GetAllCourses(ctx context.Context, page, pageSize int, filter dto.CourseFilter) ([]*models.Course, int64, error) {
	return s.courseRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateCourse updates a course's mutable fields
func (s *CourseService) UpdateCourse(ctx context.Context, id int64, req dto.UpdateCourseRequest) (*models.Course, error) {
	course, err := s.courseRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, req.TeacherID)
	if err != nil {
		return nil, err
	}
	if !teacher.IsActive {
		return nil, apperrors.NewValidationError("assigned teacher is not active")
	}

	// Capacity cannot drop below current active enrollments
	if int64(req.MaxStudents) < course.EnrolledCount {
		return nil, apperrors.NewValidationError("max students cannot be lower than current enrollment count")
	}

	course.Name = req.Name
	course.Description = req.Description
	course.TeacherID = req.TeacherID
	course.Credits = req.Credits
	course.MaxStudents = req.MaxStudents
	course.Schedule = req.Schedule
	course.Classroom = req.Classroom

	if err := s.courseRepo.Update(ctx, course); err != nil {
		return nil, err
	}

	return s.courseRepo.GetByID(ctx, id)
}

// DeleteCourse marks a course inactive
func (s *CourseService) DeleteCourse(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid course ID")
	}

	return s.courseRepo.SoftDelete(ctx, id)
}
