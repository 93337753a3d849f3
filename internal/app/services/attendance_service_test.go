package services

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

type fakeAttendanceStore struct {
	records map[int64]*models.Attendance
	byDay   map[string]int64 // "enrollmentID|date" -> record ID
	nextID  int64
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		records: make(map[int64]*models.Attendance),
		byDay:   make(map[string]int64),
		nextID:  1,
	}
}

func dayKey(enrollmentID int64, date time.Time) string {
	return fmt.Sprintf("%d|%s", enrollmentID, date.Format(time.DateOnly))
}

func (f *fakeAttendanceStore) Create(_ context.Context, a *models.Attendance) error {
	key := dayKey(a.EnrollmentID, a.Date)
	if _, ok := f.byDay[key]; ok {
		return apperrors.ErrAttendanceExists
	}
	a.ID = f.nextID
	f.nextID++
	f.records[a.ID] = a
	f.byDay[key] = a.ID
	return nil
}

func (f *fakeAttendanceStore) Upsert(_ context.Context, a *models.Attendance) (bool, error) {
	key := dayKey(a.EnrollmentID, a.Date)
	if existingID, ok := f.byDay[key]; ok {
		a.ID = existingID
		// COALESCE semantics of the SQL upsert
		if a.Notes == nil {
			a.Notes = f.records[existingID].Notes
		}
		f.records[existingID] = a
		return false, nil
	}
	a.ID = f.nextID
	f.nextID++
	f.records[a.ID] = a
	f.byDay[key] = a.ID
	return true, nil
}

func (f *fakeAttendanceStore) GetByID(_ context.Context, id int64) (*models.Attendance, error) {
	a, ok := f.records[id]
	if !ok {
		return nil, apperrors.ErrAttendanceNotFound
	}
	return a, nil
}

func (f *fakeAttendanceStore) GetAll(_ context.Context, _, _ int, _ dto.AttendanceFilter) ([]*models.Attendance, int64, error) {
	var result []*models.Attendance
	for _, a := range f.records {
		result = append(result, a)
	}
	return result, int64(len(result)), nil
}

func (f *fakeAttendanceStore) ExistsByEnrollmentAndDate(_ context.Context, enrollmentID int64, date time.Time) (bool, error) {
	_, ok := f.byDay[dayKey(enrollmentID, date)]
	return ok, nil
}

func (f *fakeAttendanceStore) Update(_ context.Context, a *models.Attendance) error {
	if _, ok := f.records[a.ID]; !ok {
		return apperrors.ErrAttendanceNotFound
	}
	f.records[a.ID] = a
	return nil
}

func (f *fakeAttendanceStore) Delete(_ context.Context, id int64) error {
	a, ok := f.records[id]
	if !ok {
		return apperrors.ErrAttendanceNotFound
	}
	delete(f.byDay, dayKey(a.EnrollmentID, a.Date))
	delete(f.records, id)
	return nil
}

type fakeEnrollmentResolver struct {
	enrollments map[int64]*models.Enrollment
	activeByKey map[[2]int64]*models.Enrollment // (studentID, courseID)
}

func (f *fakeEnrollmentResolver) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentResolver) GetActiveByStudentAndCourse(_ context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	e, ok := f.activeByKey[[2]int64{studentID, courseID}]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

type fakeTeacherReader struct {
	teachers map[int64]*models.Teacher
}

func (f *fakeTeacherReader) GetByID(_ context.Context, id int64) (*models.Teacher, error) {
	t, ok := f.teachers[id]
	if !ok {
		return nil, apperrors.ErrTeacherNotFound
	}
	return t, nil
}

type staticCourseReader struct {
	courses map[int64]*models.Course
}

func (f *staticCourseReader) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	return c, nil
}

func newAttendanceFixture() (*AttendanceService, *fakeAttendanceStore) {
	store := newFakeAttendanceStore()

	e1 := &models.Enrollment{ID: 1, StudentID: 1, CourseID: 1, IsActive: true}
	e2 := &models.Enrollment{ID: 2, StudentID: 2, CourseID: 1, IsActive: true}

	enrollments := &fakeEnrollmentResolver{
		enrollments: map[int64]*models.Enrollment{1: e1, 2: e2},
		activeByKey: map[[2]int64]*models.Enrollment{
			{1, 1}: e1,
			{2, 1}: e2,
		},
	}
	courses := &staticCourseReader{
		courses: map[int64]*models.Course{1: {ID: 1, CourseCode: "CS101", IsActive: true}},
	}
	teachers := &fakeTeacherReader{
		teachers: map[int64]*models.Teacher{10: {ID: 10, IsActive: true}},
	}

	return NewAttendanceService(store, enrollments, courses, teachers), store
}

func TestMarkAttendanceDuplicateDay(t *testing.T) {
	svc, _ := newAttendanceFixture()
	ctx := context.Background()

	_, err := svc.MarkAttendance(ctx, dto.CreateAttendanceRequest{
		EnrollmentID: 1, Date: "2025-03-10", Status: "PRESENT",
	})
	require.NoError(t, err)

	_, err = svc.MarkAttendance(ctx, dto.CreateAttendanceRequest{
		EnrollmentID: 1, Date: "2025-03-10", Status: "ABSENT",
	})
	assert.True(t, errors.Is(err, apperrors.ErrAttendanceExists))
}

func TestBulkMarkAttendancePartialFailure(t *testing.T) {
	svc, store := newAttendanceFixture()

	// Student 3 holds no active enrollment in the course
	result, err := svc.BulkMarkAttendance(context.Background(), dto.BulkAttendanceRequest{
		CourseID: 1,
		Date:     "2025-03-10",
		MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{
			{StudentID: 1, Status: "PRESENT"},
			{StudentID: 2, Status: "LATE"},
			{StudentID: 3, Status: "PRESENT"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 2, result.CreatedCount)
	assert.Equal(t, 0, result.UpdatedCount)
	require.Len(t, result.Records, 2)
	assert.True(t, result.Records[0].Created)
	require.Len(t, result.Errors, 1)
	assert.Contains(t, result.Errors[0], "student 3")
	assert.Len(t, store.records, 2)
}

func TestBulkMarkAttendanceUpsertsExistingDay(t *testing.T) {
	svc, store := newAttendanceFixture()
	ctx := context.Background()

	_, err := svc.BulkMarkAttendance(ctx, dto.BulkAttendanceRequest{
		CourseID: 1, Date: "2025-03-10", MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "ABSENT"}},
	})
	require.NoError(t, err)

	// Re-marking the same day overwrites instead of failing
	result, err := svc.BulkMarkAttendance(ctx, dto.BulkAttendanceRequest{
		CourseID: 1, Date: "2025-03-10", MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "PRESENT"}},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, result.CreatedCount)
	assert.Equal(t, 1, result.UpdatedCount)
	require.Len(t, result.Records, 1)
	assert.False(t, result.Records[0].Created)
	assert.Empty(t, result.Errors)

	require.Len(t, store.records, 1)
	for _, a := range store.records {
		assert.Equal(t, models.AttendancePresent, a.Status)
	}
}

func TestBulkMarkAttendanceKeepsNotesOnRemark(t *testing.T) {
	svc, store := newAttendanceFixture()
	ctx := context.Background()

	notes := "left early"
	_, err := svc.BulkMarkAttendance(ctx, dto.BulkAttendanceRequest{
		CourseID: 1, Date: "2025-03-10", MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "LATE", Notes: &notes}},
	})
	require.NoError(t, err)

	// Re-marking without notes keeps the earlier notes
	_, err = svc.BulkMarkAttendance(ctx, dto.BulkAttendanceRequest{
		CourseID: 1, Date: "2025-03-10", MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "PRESENT"}},
	})
	require.NoError(t, err)

	require.Len(t, store.records, 1)
	for _, a := range store.records {
		assert.Equal(t, models.AttendancePresent, a.Status)
		require.NotNil(t, a.Notes)
		assert.Equal(t, "left early", *a.Notes)
	}
}

func TestBulkMarkAttendanceUnknownCourse(t *testing.T) {
	svc, _ := newAttendanceFixture()

	_, err := svc.BulkMarkAttendance(context.Background(), dto.BulkAttendanceRequest{
		CourseID: 99, Date: "2025-03-10", MarkedBy: 10,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "PRESENT"}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrCourseNotFound))
}

func TestBulkMarkAttendanceUnknownTeacher(t *testing.T) {
	svc, _ := newAttendanceFixture()

	_, err := svc.BulkMarkAttendance(context.Background(), dto.BulkAttendanceRequest{
		CourseID: 1, Date: "2025-03-10", MarkedBy: 99,
		Records: []dto.BulkAttendanceRecord{{StudentID: 1, Status: "PRESENT"}},
	})
	assert.True(t, errors.Is(err, apperrors.ErrTeacherNotFound))
}
