package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// GradeRepository handles database operations for grades
type GradeRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewGradeRepository creates a new grade repository
func NewGradeRepository(db *pgxpool.Pool) *GradeRepository {
	return &GradeRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a grade. The caller recalculates the stored percentage
// and letter grade first.
func (r *GradeRepository) Create(ctx context.Context, grade *models.Grade) error {
	query := `
		INSERT INTO grades (enrollment_id, assessment_type, assessment_name,
			points_earned, points_possible, percentage, letter_grade,
			assessment_date, comments)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		grade.EnrollmentID, grade.AssessmentType, grade.AssessmentName,
		grade.PointsEarned, grade.PointsPossible, grade.Percentage,
		grade.LetterGrade, grade.AssessmentDate, grade.Comments,
	).Scan(&grade.ID, &grade.CreatedAt, &grade.UpdatedAt)
	if err != nil {
		return fmt.Errorf("error creating grade: %w", err)
	}

	return nil
}

func (r *GradeRepository) gradeSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"g.id", "g.enrollment_id", "g.assessment_type", "g.assessment_name",
		"g.points_earned", "g.points_possible", "g.percentage", "g.letter_grade",
		"g.assessment_date", "g.comments", "g.created_at", "g.updated_at",
		"s.first_name", "s.last_name", "c.course_code", "c.teacher_id",
	).
		From("grades g").
		Join("enrollments e ON g.enrollment_id = e.id").
		Join("students s ON e.student_id = s.id").
		Join("courses c ON e.course_id = c.id")
}

func scanGrade(row pgx.Row) (*models.Grade, error) {
	var g models.Grade
	var student models.Student
	var course models.Course

	err := row.Scan(
		&g.ID, &g.EnrollmentID, &g.AssessmentType, &g.AssessmentName,
		&g.PointsEarned, &g.PointsPossible, &g.Percentage, &g.LetterGrade,
		&g.AssessmentDate, &g.Comments, &g.CreatedAt, &g.UpdatedAt,
		&student.FirstName, &student.LastName, &course.CourseCode, &course.TeacherID,
	)
	if err != nil {
		return nil, err
	}

	g.Enrollment = &models.Enrollment{
		ID:      g.EnrollmentID,
		Student: &student,
		Course:  &course,
	}
	return &g, nil
}

// GetByID retrieves a grade with enrollment context
func (r *GradeRepository) GetByID(ctx context.Context, id int64) (*models.Grade, error) {
	querySql, args, err := r.gradeSelect().Where(squirrel.Eq{"g.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build grade query: %w", err)
	}

	grade, err := scanGrade(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrGradeNotFound
		}
		return nil, fmt.Errorf("error retrieving grade: %w", err)
	}

	return grade, nil
}

var gradeSortColumns = map[string]string{
	"assessmentDate": "g.assessment_date",
	"percentage":     "g.percentage",
	"createdAt":      "g.created_at",
}

// GetAll retrieves grades with pagination, filtering and sorting
func (r *GradeRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.GradeFilter) ([]*models.Grade, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.gradeSelect()
	countSelect := r.sb.Select("COUNT(*)").
		From("grades g").
		Join("enrollments e ON g.enrollment_id = e.id")

	where := squirrel.And{}
	if filter.EnrollmentID != nil {
		where = append(where, squirrel.Eq{"g.enrollment_id": *filter.EnrollmentID})
	}
	if filter.AssessmentType != "" {
		where = append(where, squirrel.Eq{"g.assessment_type": filter.AssessmentType})
	}
	if !filter.DateFrom.IsZero() {
		where = append(where, squirrel.GtOrEq{"g.assessment_date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		where = append(where, squirrel.LtOrEq{"g.assessment_date": filter.DateTo})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count grades query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting grades")
		return nil, 0, fmt.Errorf("failed to count grades: %w", err)
	}

	if totalItems == 0 {
		return []*models.Grade{}, 0, nil
	}

	orderBy := orderClause(gradeSortColumns, filter.SortBy, filter.SortOrder, "g.assessment_date DESC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build grades query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query grades: %w", err)
	}
	defer rows.Close()

	var grades []*models.Grade
	for rows.Next() {
		grade, err := scanGrade(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan grade row: %w", err)
		}
		grades = append(grades, grade)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return grades, totalItems, nil
}

// Update rewrites a grade's points and the recomputed derived fields in
// a single statement
func (r *GradeRepository) Update(ctx context.Context, grade *models.Grade) error {
	query := `
		UPDATE grades
		SET assessment_name = $1, points_earned = $2, points_possible = $3,
			percentage = $4, letter_grade = $5, comments = $6, updated_at = NOW()
		WHERE id = $7
	`

	cmdTag, err := r.db.Exec(ctx, query,
		grade.AssessmentName, grade.PointsEarned, grade.PointsPossible,
		grade.Percentage, grade.LetterGrade, grade.Comments, grade.ID)
	if err != nil {
		return fmt.Errorf("error updating grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}

// Delete removes a grade permanently
func (r *GradeRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM grades WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting grade: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrGradeNotFound
	}

	return nil
}
