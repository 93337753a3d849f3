package services

import (
	"context"
	"time"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/repositories"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// topCourseLimit caps the dashboard course ranking
const topCourseLimit = 10

// analyticsStore is the slice of the analytics repository this service
// needs. Narrow so tests can substitute a fake.
type analyticsStore interface {
	CountActive(ctx context.Context) (students, teachers, courses, departments, recentEnrollments int64, err error)
	StudentsPerDepartment(ctx context.Context) ([]dto.DepartmentStudentCount, error)
	StudentsPerYear(ctx context.Context) ([]dto.YearOfStudyCount, error)
	TopCoursesByEnrollment(ctx context.Context, limit int) ([]dto.CourseEnrollmentStat, error)
	GradeDistribution(ctx context.Context) ([]dto.LetterGradeCount, error)
	GlobalAttendanceRate(ctx context.Context) (float64, error)
	StudentEnrollmentPerformance(ctx context.Context, studentID int64) ([]repositories.EnrollmentPerformance, error)
}

// AnalyticsService assembles the dashboard and per-student reports
type AnalyticsService struct {
	analyticsRepo analyticsStore
	studentRepo   studentReader
}

// NewAnalyticsService creates a new analytics service
func NewAnalyticsService(analyticsRepo analyticsStore, studentRepo studentReader) *AnalyticsService {
	return &AnalyticsService{
		analyticsRepo: analyticsRepo,
		studentRepo:   studentRepo,
	}
}

// GetDashboard collects the aggregate figures for the admin dashboard
func (s *AnalyticsService) GetDashboard(ctx context.Context) (*dto.DashboardResponse, error) {
	students, teachers, courses, departments, recent, err := s.analyticsRepo.CountActive(ctx)
	if err != nil {
		return nil, err
	}

	perDepartment, err := s.analyticsRepo.StudentsPerDepartment(ctx)
	if err != nil {
		return nil, err
	}

	perYear, err := s.analyticsRepo.StudentsPerYear(ctx)
	if err != nil {
		return nil, err
	}

	topCourses, err := s.analyticsRepo.TopCoursesByEnrollment(ctx, topCourseLimit)
	if err != nil {
		return nil, err
	}

	distribution, err := s.analyticsRepo.GradeDistribution(ctx)
	if err != nil {
		return nil, err
	}

	attendanceRate, err := s.analyticsRepo.GlobalAttendanceRate(ctx)
	if err != nil {
		return nil, err
	}

	return &dto.DashboardResponse{
		ActiveStudents:        students,
		ActiveTeachers:        teachers,
		ActiveCourses:         courses,
		Departments:           departments,
		RecentEnrollments:     recent,
		StudentsPerDepartment: perDepartment,
		StudentsPerYear:       perYear,
		TopCourses:            topCourses,
		GradeDistribution:     distribution,
		AverageAttendance:     attendanceRate,
		GeneratedAt:           time.Now(),
	}, nil
}

// ComputeGPA returns the credit-weighted grade point average over the
// given enrollments. Enrollments without any recorded grade (average
// exactly zero) are excluded from both numerator and denominator.
func ComputeGPA(enrollments []repositories.EnrollmentPerformance) float64 {
	var weightedSum float64
	var creditSum int

	for _, e := range enrollments {
		if e.AverageGrade == 0 {
			continue
		}
		weightedSum += e.AverageGrade * float64(e.Credits)
		creditSum += e.Credits
	}

	if creditSum == 0 {
		return 0
	}
	return weightedSum / float64(creditSum)
}

// GetStudentPerformance builds the per-student performance report
func (s *AnalyticsService) GetStudentPerformance(ctx context.Context, studentID int64) (*dto.PerformanceReportResponse, error) {
	if studentID <= 0 {
		return nil, apperrors.NewValidationError("invalid student ID")
	}

	student, err := s.studentRepo.GetByID(ctx, studentID)
	if err != nil {
		return nil, err
	}

	enrollments, err := s.analyticsRepo.StudentEnrollmentPerformance(ctx, studentID)
	if err != nil {
		return nil, err
	}

	report := &dto.PerformanceReportResponse{
		StudentID:     student.ID,
		StudentNumber: student.StudentID,
		StudentName:   student.FullName(),
		YearOfStudy:   student.YearOfStudy,
		Courses:       make([]dto.CoursePerformance, 0, len(enrollments)),
	}
	if student.Department != nil {
		report.Department = student.Department.Name
	}

	var attendedTotal, attendanceTotal int64
	for _, e := range enrollments {
		report.Courses = append(report.Courses, dto.CoursePerformance{
			EnrollmentID:   e.EnrollmentID,
			CourseCode:     e.CourseCode,
			CourseName:     e.CourseName,
			Credits:        e.Credits,
			Status:         e.Status,
			FinalGrade:     e.FinalGrade,
			AverageGrade:   e.AverageGrade,
			GradeCount:     e.GradeCount,
			AttendanceRate: models.AttendancePercentage(e.AttendedCount, e.AttendanceRows),
			EnrollmentDate: e.EnrollmentDate,
		})

		attendedTotal += e.AttendedCount
		attendanceTotal += e.AttendanceRows

		report.TotalEnrollments++
		switch models.EnrollmentStatus(e.Status) {
		case models.EnrollmentEnrolled:
			report.ActiveEnrollments++
		case models.EnrollmentCompleted:
			report.CompletedEnrollments++
		}

		// Mirrors the GPA denominator: an enrollment's credits count
		// once it carries any recorded grade, regardless of status
		if e.AverageGrade > 0 {
			report.TotalCredits += e.Credits
		}
	}

	report.GPA = ComputeGPA(enrollments)
	report.OverallAttendance = models.AttendancePercentage(attendedTotal, attendanceTotal)

	return report, nil
}
