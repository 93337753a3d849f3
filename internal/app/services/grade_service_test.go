package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

type fakeGradeStore struct {
	grades map[int64]*models.Grade
	nextID int64
}

func newFakeGradeStore() *fakeGradeStore {
	return &fakeGradeStore{grades: make(map[int64]*models.Grade), nextID: 1}
}

func (f *fakeGradeStore) Create(_ context.Context, g *models.Grade) error {
	g.ID = f.nextID
	f.nextID++
	stored := *g
	f.grades[g.ID] = &stored
	return nil
}

func (f *fakeGradeStore) GetByID(_ context.Context, id int64) (*models.Grade, error) {
	g, ok := f.grades[id]
	if !ok {
		return nil, apperrors.ErrGradeNotFound
	}
	clone := *g
	return &clone, nil
}

func (f *fakeGradeStore) GetAll(_ context.Context, _, _ int, _ dto.GradeFilter) ([]*models.Grade, int64, error) {
	var result []*models.Grade
	for _, g := range f.grades {
		result = append(result, g)
	}
	return result, int64(len(result)), nil
}

func (f *fakeGradeStore) Update(_ context.Context, g *models.Grade) error {
	if _, ok := f.grades[g.ID]; !ok {
		return apperrors.ErrGradeNotFound
	}
	stored := *g
	f.grades[g.ID] = &stored
	return nil
}

func (f *fakeGradeStore) Delete(_ context.Context, id int64) error {
	if _, ok := f.grades[id]; !ok {
		return apperrors.ErrGradeNotFound
	}
	delete(f.grades, id)
	return nil
}

type fakeEnrollmentReader struct {
	enrollments map[int64]*models.Enrollment
}

func (f *fakeEnrollmentReader) GetByID(_ context.Context, id int64) (*models.Enrollment, error) {
	e, ok := f.enrollments[id]
	if !ok {
		return nil, apperrors.ErrEnrollmentNotFound
	}
	return e, nil
}

func newGradeFixture() *GradeService {
	enrollments := &fakeEnrollmentReader{
		enrollments: map[int64]*models.Enrollment{
			1: {ID: 1, StudentID: 1, CourseID: 1, IsActive: true},
		},
	}
	return NewGradeService(newFakeGradeStore(), enrollments)
}

func TestCreateGradeComputesDerivedFields(t *testing.T) {
	svc := newGradeFixture()

	grade, err := svc.CreateGrade(context.Background(), dto.CreateGradeRequest{
		EnrollmentID:   1,
		AssessmentType: "MIDTERM",
		AssessmentName: "Midterm Exam",
		PointsEarned:   85,
		PointsPossible: 100,
		AssessmentDate: "2025-03-14",
	})
	require.NoError(t, err)

	assert.InDelta(t, 85.0, grade.Percentage, 0.0001)
	assert.Equal(t, "B", grade.LetterGrade)
}

func TestCreateGradeRejectsInvalidPoints(t *testing.T) {
	svc := newGradeFixture()
	ctx := context.Background()

	tests := []struct {
		name     string
		earned   float64
		possible float64
	}{
		{"earned exceeds possible", 110, 100},
		{"negative earned", -5, 100},
		{"zero possible", 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateGrade(ctx, dto.CreateGradeRequest{
				EnrollmentID:   1,
				AssessmentType: "QUIZ",
				AssessmentName: "Quiz 1",
				PointsEarned:   tt.earned,
				PointsPossible: tt.possible,
				AssessmentDate: "2025-03-14",
			})
			assert.Error(t, err)
			assert.True(t,
				errors.Is(err, apperrors.ErrValidationFailed) || errors.Is(err, apperrors.ErrInvalidPoints))
		})
	}
}

func TestUpdateGradeRecomputesLetter(t *testing.T) {
	svc := newGradeFixture()
	ctx := context.Background()

	grade, err := svc.CreateGrade(ctx, dto.CreateGradeRequest{
		EnrollmentID:   1,
		AssessmentType: "FINAL",
		AssessmentName: "Final Exam",
		PointsEarned:   89.99,
		PointsPossible: 100,
		AssessmentDate: "2025-06-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "B", grade.LetterGrade)

	updated, err := svc.UpdateGrade(ctx, grade.ID, dto.UpdateGradeRequest{
		AssessmentName: "Final Exam",
		PointsEarned:   90,
		PointsPossible: 100,
	})
	require.NoError(t, err)
	assert.Equal(t, "A", updated.LetterGrade)
}

func TestCreateGradeUnknownEnrollment(t *testing.T) {
	svc := newGradeFixture()

	_, err := svc.CreateGrade(context.Background(), dto.CreateGradeRequest{
		EnrollmentID:   99,
		AssessmentType: "QUIZ",
		AssessmentName: "Quiz 1",
		PointsEarned:   5,
		PointsPossible: 10,
		AssessmentDate: "2025-03-14",
	})
	assert.True(t, errors.Is(err, apperrors.ErrEnrollmentNotFound))
}
