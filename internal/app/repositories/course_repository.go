package repositories

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/dberrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// CourseRepository handles database operations for courses
type CourseRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new course
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	query := `
		INSERT INTO courses (course_code, name, description, department_id, teacher_id,
			credits, semester, year, max_students, schedule, classroom, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		course.CourseCode, course.Name, course.Description, course.DepartmentID,
		course.TeacherID, course.Credits, course.Semester, course.Year,
		course.MaxStudents, course.Schedule, course.Classroom, course.IsActive,
	).Scan(&course.ID, &course.CreatedAt, &course.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrCourseAlreadyExists
		}
		return fmt.Errorf("error creating course: %w", err)
	}

	return nil
}

func (r *CourseRepository) courseSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"c.id", "c.course_code", "c.name", "c.description", "c.department_id",
		"c.teacher_id", "c.credits", "c.semester", "c.year", "c.max_students",
		"c.schedule", "c.classroom", "c.is_active", "c.created_at", "c.updated_at",
		"d.name AS department_name",
		"COALESCE(u.first_name || ' ' || u.last_name, '') AS teacher_name",
		"(SELECT COUNT(*) FROM enrollments e WHERE e.course_id = c.id AND e.is_active) AS enrolled_count",
	).
		From("courses c").
		Join("departments d ON c.department_id = d.id").
		Join("teachers t ON c.teacher_id = t.id").
		Join("users u ON t.user_id = u.id")
}

func scanCourse(row pgx.Row) (*models.Course, error) {
	var c models.Course
	var departmentName, teacherName string

	err := row.Scan(
		&c.ID, &c.CourseCode, &c.Name, &c.Description, &c.DepartmentID,
		&c.TeacherID, &c.Credits, &c.Semester, &c.Year, &c.MaxStudents,
		&c.Schedule, &c.Classroom, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
		&departmentName, &teacherName, &c.EnrolledCount,
	)
	if err != nil {
		return nil, err
	}

	c.Department = &models.Department{ID: c.DepartmentID, Name: departmentName}

	names := strings.SplitN(teacherName, " ", 2)
	teacherUser := &models.User{FirstName: names[0]}
	if len(names) > 1 {
		teacherUser.LastName = names[1]
	}
	c.Teacher = &models.Teacher{ID: c.TeacherID, User: teacherUser}

	return &c, nil
}

// GetByID retrieves a course with its live enrollment count
func (r *CourseRepository) GetByID(ctx context.Context, id int64) (*models.Course, error) {
	querySql, args, err := r.courseSelect().Where(squirrel.Eq{"c.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build course query: %w", err)
	}

	course, err := scanCourse(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrCourseNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}

	return course, nil
}

var courseSortColumns = map[string]string{
	"courseCode": "c.course_code",
	"name":       "c.name",
	"credits":    "c.credits",
	"year":       "c.year",
	"createdAt":  "c.created_at",
}

// GetAll retrieves courses with pagination, filtering and sorting
func (r *CourseRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.CourseFilter) ([]*models.Course, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.courseSelect()
	countSelect := r.sb.Select("COUNT(*)").From("courses c")

	where := squirrel.And{}
	if filter.DepartmentID != nil {
		where = append(where, squirrel.Eq{"c.department_id": *filter.DepartmentID})
	}
	if filter.TeacherID != nil {
		where = append(where, squirrel.Eq{"c.teacher_id": *filter.TeacherID})
	}
	if filter.Semester != "" {
		where = append(where, squirrel.Eq{"c.semester": filter.Semester})
	}
	if filter.Year != nil {
		where = append(where, squirrel.Eq{"c.year": *filter.Year})
	}
	if filter.IsActive != nil {
		where = append(where, squirrel.Eq{"c.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"c.course_code": pattern},
			squirrel.ILike{"c.name": pattern},
		})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count courses query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting courses")
		return nil, 0, fmt.Errorf("failed to count courses: %w", err)
	}

	if totalItems == 0 {
		return []*models.Course{}, 0, nil
	}

	orderBy := orderClause(courseSortColumns, filter.SortBy, filter.SortOrder, "c.course_code ASC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build courses query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query courses: %w", err)
	}
	defer rows.Close()

	var courses []*models.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan course row: %w", err)
		}
		courses = append(courses, course)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return courses, totalItems, nil
}

// Update updates a course's mutable fields
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	query := `
		UPDATE courses
		SET name = $1, description = $2, teacher_id = $3, credits = $4,
			max_students = $5, schedule = $6, classroom = $7, updated_at = NOW()
		WHERE id = $8
	`

	cmdTag, err := r.db.Exec(ctx, query,
		course.Name, course.Description, course.TeacherID, course.Credits,
		course.MaxStudents, course.Schedule, course.Classroom, course.ID)
	if err != nil {
		return fmt.Errorf("error updating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// SoftDelete marks a course inactive
func (r *CourseRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE courses SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating course: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrCourseNotFound
	}

	return nil
}

// CountActiveEnrollments returns the current number of active enrollments
func (r *CourseRepository) CountActiveEnrollments(ctx context.Context, courseID int64) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, `
		SELECT COUNT(*) FROM enrollments WHERE course_id = $1 AND is_active`,
		courseID).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("error counting enrollments: %w", err)
	}
	return count, nil
}
