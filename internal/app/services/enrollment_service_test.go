package services

import (
	"context"
	"errors"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/db"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

type fakeTransactor struct{}

func (fakeTransactor) WithTransaction(ctx context.Context, fn db.TransactionFn) error {
	return fn(ctx, nil)
}

type fakeEnrollmentStore struct {
	enrollments map[int64]*models.Enrollment
	active      map[[2]int64]bool // (studentID, courseID)
	nextID      int64
}

func newFakeEnrollmentStore() *fakeEnrollmentStore {
	return &fakeEnrollmentStore{
		enrollments: make(map[int64]*models.Enrollment),
		active:      make(map[[2]int64]bool),
		nextID:      1,
	}
}

func (f *fakeEnrollmentStore) CreateTx(_ context.Context, _ pgx.Tx, e *models.Enrollment) error {
	key := [2]int64{e.StudentID, e.CourseID}
	if f.active[key] {
		return apperrors.ErrAlreadyEnrolled
	}
	e.ID = f.nextID
	f.nextID++
	f.enrollments[e.ID] = e
	f.active[key] = true
	return nil
}

func (f *fakeEnrollmentStore) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

func (f *fakeEnrollmentStore) GetAll(_ context.Context, _, _ int, _ dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	var result []*models.Enrollment
	for _, e := range f.enrollments {
		result = append(result, e)
	}
	return result, int64(len(result)), nil
}

func (f *fakeEnrollmentStore) ExistsActive(_ context.Context, studentID, courseID int64) (bool, error) {
	return f.active[[2]int64{studentID, courseID}], nil
}

func (f *fakeEnrollmentStore) UpdateStatus(_ context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error {
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	e.Status = status
	e.IsActive = status == models.EnrollmentEnrolled
	e.FinalGrade = finalGrade
	if !e.IsActive {
		delete(f.active, [2]int64{e.StudentID, e.CourseID})
	}
	return nil
}

func (f *fakeEnrollmentStore) Delete(_ context.Context, id int64) error {
	e, ok := f.enrollments[id]
	if !ok {
		return apperrors.ErrEnrollmentNotFound
	}
	delete(f.active, [2]int64{e.StudentID, e.CourseID})
	delete(f.enrollments, id)
	return nil
}

type fakeCourseReader struct {
	courses map[int64]*models.Course
	store   *fakeEnrollmentStore
}

func (f *fakeCourseReader) GetByID(_ context.Context, id int64) (*models.Course, error) {
	c, ok := f.courses[id]
	if !ok {
		return nil, apperrors.ErrCourseNotFound
	}
	// Live count, as the SQL subselect would report
	var count int64
	for key, active := range f.store.active {
		if key[1] == id && active {
			count++
		}
	}
	c.EnrolledCount = count
	return c, nil
}

type fakeStudentReader struct {
	students map[int64]*models.Student
}

func (f *fakeStudentReader) GetByID(_ context.Context, id int64) (*models.Student, error) {
	s, ok := f.students[id]
	if !ok {
		return nil, apperrors.ErrStudentNotFound
	}
	return s, nil
}

func newEnrollmentFixture() (*EnrollmentService, *fakeEnrollmentStore) {
	store := newFakeEnrollmentStore()
	courses := &fakeCourseReader{
		courses: map[int64]*models.Course{
			1: {ID: 1, CourseCode: "CS101", MaxStudents: 2, IsActive: true},
		},
		store: store,
	}
	students := &fakeStudentReader{
		students: map[int64]*models.Student{
			1: {ID: 1, IsActive: true},
			2: {ID: 2, IsActive: true},
			3: {ID: 3, IsActive: true},
			4: {ID: 4, IsActive: false},
		},
	}
	return NewEnrollmentService(fakeTransactor{}, store, courses, students), store
}

func TestEnrollStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	enrollment, err := svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	assert.Equal(t, models.EnrollmentEnrolled, enrollment.Status)
	assert.True(t, enrollment.IsActive)
}

func TestEnrollStudentDuplicate(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	_, err := svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)

	_, err = svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrAlreadyEnrolled))
}

func TestEnrollStudentCapacityExhausted(t *testing.T) {
	svc, _ := newEnrollmentFixture()
	ctx := context.Background()

	// Capacity is 2
	_, err := svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	_, err = svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 2, CourseID: 1})
	require.NoError(t, err)

	_, err = svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 3, CourseID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrCourseFull))
}

func TestEnrollStudentFreesSlotAfterDrop(t *testing.T) {
	svc, store := newEnrollmentFixture()
	ctx := context.Background()

	first, err := svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 1, CourseID: 1})
	require.NoError(t, err)
	_, err = svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 2, CourseID: 1})
	require.NoError(t, err)

	require.NoError(t, store.UpdateStatus(ctx, first.ID, models.EnrollmentDropped, nil))

	// Dropping frees the slot for a new student
	_, err = svc.EnrollStudent(ctx, dto.CreateEnrollmentRequest{StudentID: 3, CourseID: 1})
	assert.NoError(t, err)
}

func TestEnrollInactiveStudent(t *testing.T) {
	svc, _ := newEnrollmentFixture()

	_, err := svc.EnrollStudent(context.Background(), dto.CreateEnrollmentRequest{StudentID: 4, CourseID: 1})
	assert.True(t, errors.Is(err, apperrors.ErrValidationFailed))
}
