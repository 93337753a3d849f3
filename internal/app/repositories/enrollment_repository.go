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
	"github.com/campusadmin/api/internal/pkg/dberrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// EnrollmentRepository handles database operations for enrollments
type EnrollmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewEnrollmentRepository creates a new enrollment repository
func NewEnrollmentRepository(db *pgxpool.Pool) *EnrollmentRepository {
	return &EnrollmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts an enrollment within an existing transaction.
// The enrollment date is set by the database. The partial unique index on
// active (student_id, course_id) is the final arbiter under concurrency.
func (r *EnrollmentRepository) CreateTx(ctx context.Context, tx pgx.Tx, enrollment *models.Enrollment) error {
	query := `
		INSERT INTO enrollments (student_id, course_id, status, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, enrollment_date, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		enrollment.StudentID, enrollment.CourseID, enrollment.Status, enrollment.IsActive,
	).Scan(&enrollment.ID, &enrollment.EnrollmentDate, &enrollment.CreatedAt, &enrollment.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAlreadyEnrolled
		}
		return fmt.Errorf("error creating enrollment: %w", err)
	}

	return nil
}

func (r *EnrollmentRepository) enrollmentSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"e.id", "e.student_id", "e.course_id", "e.enrollment_date", "e.status",
		"e.is_active", "e.final_grade", "e.completion_date", "e.created_at", "e.updated_at",
		"s.student_id AS student_number", "s.first_name", "s.last_name",
		"c.course_code", "c.name AS course_name", "c.credits", "c.teacher_id",
	).
		From("enrollments e").
		Join("students s ON e.student_id = s.id").
		Join("courses c ON e.course_id = c.id")
}

func scanEnrollment(row pgx.Row) (*models.Enrollment, error) {
	var e models.Enrollment
	var student models.Student
	var course models.Course

	err := row.Scan(
		&e.ID, &e.StudentID, &e.CourseID, &e.EnrollmentDate, &e.Status,
		&e.IsActive, &e.FinalGrade, &e.CompletionDate, &e.CreatedAt, &e.UpdatedAt,
		&student.StudentID, &student.FirstName, &student.LastName,
		&course.CourseCode, &course.Name, &course.Credits, &course.TeacherID,
	)
	if err != nil {
		return nil, err
	}

	student.ID = e.StudentID
	course.ID = e.CourseID
	e.Student = &student
	e.Course = &course
	return &e, nil
}

// GetByID retrieves an enrollment with student and course details
func (r *EnrollmentRepository) GetByID(ctx context.Context, id int64) (*models.Enrollment, error) {
	querySql, args, err := r.enrollmentSelect().Where(squirrel.Eq{"e.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// GetActiveByStudentAndCourse finds the student's active enrollment in a course
func (r *EnrollmentRepository) GetActiveByStudentAndCourse(ctx context.Context, studentID, courseID int64) (*models.Enrollment, error) {
	querySql, args, err := r.enrollmentSelect().
		Where(squirrel.Eq{"e.student_id": studentID, "e.course_id": courseID, "e.is_active": true}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build enrollment query: %w", err)
	}

	enrollment, err := scanEnrollment(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrEnrollmentNotFound
		}
		return nil, fmt.Errorf("error retrieving enrollment: %w", err)
	}

	return enrollment, nil
}

// ExistsActive checks for an active enrollment of the student in the course
func (r *EnrollmentRepository) ExistsActive(ctx context.Context, studentID, courseID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM enrollments
			WHERE student_id = $1 AND course_id = $2 AND is_active)`,
		studentID, courseID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking enrollment existence: %w", err)
	}
	return exists, nil
}

var enrollmentSortColumns = map[string]string{
	"enrollmentDate": "e.enrollment_date",
	"status":         "e.status",
	"createdAt":      "e.created_at",
}

// GetAll retrieves enrollments with pagination, filtering and sorting
func (r *EnrollmentRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.EnrollmentFilter) ([]*models.Enrollment, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.enrollmentSelect()
	countSelect := r.sb.Select("COUNT(*)").From("enrollments e")

	where := squirrel.And{}
	if filter.StudentID != nil {
		where = append(where, squirrel.Eq{"e.student_id": *filter.StudentID})
	}
	if filter.CourseID != nil {
		where = append(where, squirrel.Eq{"e.course_id": *filter.CourseID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"e.status": filter.Status})
	}
	if filter.IsActive != nil {
		where = append(where, squirrel.Eq{"e.is_active": *filter.IsActive})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count enrollments query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting enrollments")
		return nil, 0, fmt.Errorf("failed to count enrollments: %w", err)
	}

	if totalItems == 0 {
		return []*models.Enrollment{}, 0, nil
	}

	orderBy := orderClause(enrollmentSortColumns, filter.SortBy, filter.SortOrder, "e.enrollment_date DESC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build enrollments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query enrollments: %w", err)
	}
	defer rows.Close()

	var enrollments []*models.Enrollment
	for rows.Next() {
		enrollment, err := scanEnrollment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan enrollment row: %w", err)
		}
		enrollments = append(enrollments, enrollment)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return enrollments, totalItems, nil
}

// UpdateStatus transitions an enrollment to a new status. Terminal
// statuses clear the active flag; COMPLETED and FAILED also stamp the
// completion date.
func (r *EnrollmentRepository) UpdateStatus(ctx context.Context, id int64, status models.EnrollmentStatus, finalGrade *string) error {
	isActive := status == models.EnrollmentEnrolled

	query := `
		UPDATE enrollments
		SET status = $1, is_active = $2, final_grade = $3,
			completion_date = CASE WHEN $1 IN ('COMPLETED', 'FAILED') THEN NOW() ELSE completion_date END,
			updated_at = NOW()
		WHERE id = $4
	`

	cmdTag, err := r.db.Exec(ctx, query, status, isActive, finalGrade, id)
	if err != nil {
		return fmt.Errorf("error updating enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}

// Delete removes an enrollment and, through cascades, its grades and
// attendance records
func (r *EnrollmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM enrollments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting enrollment: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrEnrollmentNotFound
	}

	return nil
}
