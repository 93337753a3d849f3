package services

import (
	"context"
	"fmt"
	"time"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// attendanceStore is the slice of the attendance repository this service needs
type attendanceStore interface {
	Create(ctx context.Context, attendance *models.Attendance) error
	Upsert(ctx context.Context, attendance *models.Attendance) (created bool, err error)
	GetByID(ctx context.Context, id int64) (*models.Attendance, error)
	GetAll(ctx context.Context, page, pageSize int, filter dto.AttendanceFilter) ([]*models.Attendance, int64, error)
	ExistsByEnrollmentAndDate(ctx context.Context, enrollmentID int64, date time.Time) (bool, error)
	Update(ctx context.Context, attendance *models.Attendance) error
	Delete(ctx context.Context, id int64) error
}

// enrollmentResolver resolves enrollments for attendance marking
type enrollmentResolver interface {
	GetByID(ctx context.Context, id int64) (*models.Enrollment, error)
	GetActiveByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error)
}

// teacherReader provides teacher lookups
type teacherReader interface {
	GetByID(ctx context.Context, id int64) (*models.Teacher, error)
}

// AttendanceService handles attendance operations
type AttendanceService struct {
	attendanceRepo attendanceStore
	enrollmentRepo enrollmentResolver
	courseRepo     courseReader
	teacherRepo    teacherReader
}

// NewAttendanceService creates a new attendance service
func NewAttendanceService(attendanceRepo attendanceStore, enrollmentRepo enrollmentResolver, courseRepo courseReader, teacherRepo teacherReader) *AttendanceService {
	return &AttendanceService{
		attendanceRepo: attendanceRepo,
		enrollmentRepo: enrollmentRepo,
		courseRepo:     courseRepo,
		teacherRepo:    teacherRepo,
	}
}

// MarkAttendance records attendance for one enrollment on one day
func (s *AttendanceService) MarkAttendance(ctx context.Context, req dto.CreateAttendanceRequest) (*models.Attendance, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	if _, err := s.enrollmentRepo.GetByID(ctx, req.EnrollmentID); err != nil {
		return nil, err
	}

	exists, err := s.attendanceRepo.ExistsByEnrollmentAndDate(ctx, req.EnrollmentID, date)
	if err != nil {
		return nil, fmt.Errorf("error checking attendance: %w", err)
	}
	if exists {
		return nil, apperrors.ErrAttendanceExists
	}

	attendance := &models.Attendance{
		EnrollmentID: req.EnrollmentID,
		Date:         date,
		Status:       models.AttendanceStatus(req.Status),
		Notes:        req.Notes,
		MarkedByID:   req.MarkedByID,
	}

	if err := s.attendanceRepo.Create(ctx, attendance); err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetByID(ctx, attendance.ID)
}

// BulkMarkAttendance marks a whole course for one day. Each record is
// processed independently; failures are collected as error strings and
// never abort the batch.
func (s *AttendanceService) BulkMarkAttendance(ctx context.Context, req dto.BulkAttendanceRequest) (*dto.BulkAttendanceResponse, error) {
	date, err := time.Parse(time.DateOnly, req.Date)
	if err != nil {
		return nil, apperrors.NewValidationError("date must be in YYYY-MM-DD format")
	}

	if _, err := s.courseRepo.GetByID(ctx, req.CourseID); err != nil {
		return nil, err
	}

	teacher, err := s.teacherRepo.GetByID(ctx, req.MarkedBy)
	if err != nil {
		return nil, err
	}

	result := &dto.BulkAttendanceResponse{
		CourseID: req.CourseID,
		Date:     req.Date,
		Records:  []dto.BulkAttendanceOutcome{},
		Errors:   []string{},
	}

	for _, record := range req.Records {
		enrollment, err := s.enrollmentRepo.GetActiveByStudentAndCourse(ctx, record.StudentID, req.CourseID)
		if err != nil {
			result.Errors = append(result.Errors,
				fmt.Sprintf("student %d: no active enrollment in course %d", record.StudentID, req.CourseID))
			continue
		}

		attendance := &models.Attendance{
			EnrollmentID: enrollment.ID,
			Date:         date,
			Status:       models.AttendanceStatus(record.Status),
			Notes:        record.Notes,
			MarkedByID:   &teacher.ID,
		}

		created, err := s.attendanceRepo.Upsert(ctx, attendance)
		if err != nil {
			logger.Error().Err(err).Int64("studentId", record.StudentID).Msg("Failed to mark attendance")
			result.Errors = append(result.Errors,
				fmt.Sprintf("student %d: %v", record.StudentID, err))
			continue
		}

		if created {
			result.CreatedCount++
		} else {
			result.UpdatedCount++
		}
		result.Records = append(result.Records, dto.BulkAttendanceOutcome{
			StudentID: record.StudentID,
			Status:    record.Status,
			Created:   created,
		})
	}

	return result, nil
}

// GetAttendanceByID retrieves an attendance record by ID
func (s *AttendanceService) GetAttendanceByID(ctx context.Context, id int64) (*models.Attendance, error) {
	if id <= 0 {
		return nil, apperrors.NewValidationError("invalid attendance ID")
	}

	return s.attendanceRepo.GetByID(ctx, id)
}

// GetAllAttendance retrieves attendance records with pagination and filtering
func (s *AttendanceService) GetAllAttendance(ctx context.Context, page, pageSize int, filter dto.AttendanceFilter) ([]*models.Attendance, int64, error) {
	return s.attendanceRepo.GetAll(ctx, page, pageSize, filter)
}

// UpdateAttendance changes the status and notes of a record
func (s *AttendanceService) UpdateAttendance(ctx context.Context, id int64, req dto.UpdateAttendanceRequest) (*models.Attendance, error) {
	attendance, err := s.attendanceRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	attendance.Status = models.AttendanceStatus(req.Status)
	attendance.Notes = req.Notes

	if err := s.attendanceRepo.Update(ctx, attendance); err != nil {
		return nil, err
	}

	return s.attendanceRepo.GetByID(ctx, id)
}

// DeleteAttendance removes an attendance record permanently
func (s *AttendanceService) DeleteAttendance(ctx context.Context, id int64) error {
	if id <= 0 {
		return apperrors.NewValidationError("invalid attendance ID")
	}

	return s.attendanceRepo.Delete(ctx, id)
}
