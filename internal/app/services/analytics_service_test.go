package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/repositories"
)

func TestComputeGPA(t *testing.T) {
	tests := []struct {
		name        string
		enrollments []repositories.EnrollmentPerformance
		want        float64
	}{
		{
			name: "credit weighted",
			enrollments: []repositories.EnrollmentPerformance{
				{Credits: 3, AverageGrade: 90},
				{Credits: 1, AverageGrade: 70},
			},
			// (90*3 + 70*1) / 4
			want: 85,
		},
		{
			name: "ungraded enrollments excluded entirely",
			enrollments: []repositories.EnrollmentPerformance{
				{Credits: 3, AverageGrade: 80},
				{Credits: 6, AverageGrade: 0},
			},
			want: 80,
		},
		{
			name:        "no enrollments",
			enrollments: nil,
			want:        0,
		},
		{
			name: "all ungraded",
			enrollments: []repositories.EnrollmentPerformance{
				{Credits: 3, AverageGrade: 0},
			},
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, ComputeGPA(tt.enrollments), 0.0001)
		})
	}
}

type fakeAnalyticsStore struct {
	performance map[int64][]repositories.EnrollmentPerformance
}

func (f *fakeAnalyticsStore) CountActive(_ context.Context) (students, teachers, courses, departments, recentEnrollments int64, err error) {
	return 0, 0, 0, 0, 0, nil
}

func (f *fakeAnalyticsStore) StudentsPerDepartment(_ context.Context) ([]dto.DepartmentStudentCount, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) StudentsPerYear(_ context.Context) ([]dto.YearOfStudyCount, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) TopCoursesByEnrollment(_ context.Context, _ int) ([]dto.CourseEnrollmentStat, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) GradeDistribution(_ context.Context) ([]dto.LetterGradeCount, error) {
	return nil, nil
}

func (f *fakeAnalyticsStore) GlobalAttendanceRate(_ context.Context) (float64, error) {
	return 0, nil
}

func (f *fakeAnalyticsStore) StudentEnrollmentPerformance(_ context.Context, studentID int64) ([]repositories.EnrollmentPerformance, error) {
	return f.performance[studentID], nil
}

func TestGetStudentPerformanceTotals(t *testing.T) {
	store := &fakeAnalyticsStore{
		performance: map[int64][]repositories.EnrollmentPerformance{
			7: {
				{EnrollmentID: 1, CourseCode: "CS101", Credits: 3, Status: "ENROLLED",
					AverageGrade: 85, GradeCount: 4, AttendedCount: 8, AttendanceRows: 10},
				{EnrollmentID: 2, CourseCode: "CS200", Credits: 4, Status: "COMPLETED",
					AverageGrade: 90, GradeCount: 6, AttendedCount: 10, AttendanceRows: 10},
				{EnrollmentID: 3, CourseCode: "MATH110", Credits: 2, Status: "ENROLLED",
					AverageGrade: 0, GradeCount: 0},
			},
		},
	}
	students := &fakeStudentReader{
		students: map[int64]*models.Student{
			7: {ID: 7, StudentID: "2021000001", FirstName: "Ada", LastName: "Smith", YearOfStudy: 2},
		},
	}
	svc := NewAnalyticsService(store, students)

	report, err := svc.GetStudentPerformance(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, 3, report.TotalEnrollments)
	assert.Equal(t, 2, report.ActiveEnrollments)
	assert.Equal(t, 1, report.CompletedEnrollments)

	// Credits follow the GPA denominator: every graded enrollment
	// contributes, including the still-enrolled CS101; the ungraded
	// MATH110 does not
	assert.Equal(t, 7, report.TotalCredits)
	assert.InDelta(t, (85*3+90*4)/7.0, report.GPA, 0.0001)

	assert.InDelta(t, 90, report.OverallAttendance, 0.0001)
	require.Len(t, report.Courses, 3)
	assert.InDelta(t, 80, report.Courses[0].AttendanceRate, 0.0001)
}
