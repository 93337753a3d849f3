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

// TeacherRepository handles database operations for teachers
type TeacherRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewTeacherRepository creates a new teacher repository
func NewTeacherRepository(db *pgxpool.Pool) *TeacherRepository {
	return &TeacherRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// CreateTx inserts a teacher within an existing transaction. The caller
// creates the user account in the same transaction first.
func (r *TeacherRepository) CreateTx(ctx context.Context, tx pgx.Tx, teacher *models.Teacher) error {
	query := `
		INSERT INTO teachers (user_id, employee_id, department_id, phone, qualification,
			experience_years, salary, hire_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at
	`

	err := tx.QueryRow(ctx, query,
		teacher.UserID, teacher.EmployeeID, teacher.DepartmentID, teacher.Phone,
		teacher.Qualification, teacher.ExperienceYears, teacher.Salary,
		teacher.HireDate, teacher.IsActive,
	).Scan(&teacher.ID, &teacher.CreatedAt, &teacher.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "teachers_employee_id_key") {
			return apperrors.ErrEmployeeIDAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error creating teacher: %w", err)
	}

	return nil
}

func (r *TeacherRepository) teacherSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"t.id", "t.user_id", "t.employee_id", "t.department_id", "t.phone",
		"t.qualification", "t.experience_years", "t.salary", "t.hire_date",
		"t.is_active", "t.created_at", "t.updated_at",
		"u.email", "u.first_name", "u.last_name",
		"d.name AS department_name",
		"(SELECT COUNT(*) FROM courses c WHERE c.teacher_id = t.id AND c.is_active) AS course_count",
	).
		From("teachers t").
		Join("users u ON t.user_id = u.id").
		Join("departments d ON t.department_id = d.id")
}

func scanTeacher(row pgx.Row) (*models.Teacher, error) {
	var t models.Teacher
	var user models.User
	var departmentName string

	err := row.Scan(
		&t.ID, &t.UserID, &t.EmployeeID, &t.DepartmentID, &t.Phone,
		&t.Qualification, &t.ExperienceYears, &t.Salary, &t.HireDate,
		&t.IsActive, &t.CreatedAt, &t.UpdatedAt,
		&user.Email, &user.FirstName, &user.LastName,
		&departmentName,
		&t.CourseCount,
	)
	if err != nil {
		return nil, err
	}

	user.ID = t.UserID
	t.User = &user
	t.Department = &models.Department{ID: t.DepartmentID, Name: departmentName}
	return &t, nil
}

// GetByID retrieves a teacher with user and department details
func (r *TeacherRepository) GetByID(ctx context.Context, id int64) (*models.Teacher, error) {
	querySql, args, err := r.teacherSelect().Where(squirrel.Eq{"t.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

// GetByUserID retrieves the teacher record tied to a user account
func (r *TeacherRepository) GetByUserID(ctx context.Context, userID int64) (*models.Teacher, error) {
	querySql, args, err := r.teacherSelect().Where(squirrel.Eq{"t.user_id": userID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build teacher query: %w", err)
	}

	teacher, err := scanTeacher(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrTeacherNotFound
		}
		return nil, fmt.Errorf("error retrieving teacher: %w", err)
	}

	return teacher, nil
}

var teacherSortColumns = map[string]string{
	"employeeId":      "t.employee_id",
	"hireDate":        "t.hire_date",
	"experienceYears": "t.experience_years",
	"lastName":        "u.last_name",
	"createdAt":       "t.created_at",
}

// GetAll retrieves teachers with pagination, filtering and sorting
func (r *TeacherRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.TeacherFilter) ([]*models.Teacher, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.teacherSelect()
	countSelect := r.sb.Select("COUNT(*)").
		From("teachers t").
		Join("users u ON t.user_id = u.id").
		Join("departments d ON t.department_id = d.id")

	where := squirrel.And{}
	if filter.DepartmentID != nil {
		where = append(where, squirrel.Eq{"t.department_id": *filter.DepartmentID})
	}
	if filter.Qualification != "" {
		where = append(where, squirrel.Eq{"t.qualification": filter.Qualification})
	}
	if filter.IsActive != nil {
		where = append(where, squirrel.Eq{"t.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"t.employee_id": pattern},
			squirrel.Expr("u.first_name || ' ' || u.last_name ILIKE ?", pattern),
			squirrel.ILike{"u.email": pattern},
		})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count teachers query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting teachers")
		return nil, 0, fmt.Errorf("failed to count teachers: %w", err)
	}

	if totalItems == 0 {
		return []*models.Teacher{}, 0, nil
	}

	orderBy := orderClause(teacherSortColumns, filter.SortBy, filter.SortOrder, "t.created_at DESC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build teachers query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query teachers: %w", err)
	}
	defer rows.Close()

	var teachers []*models.Teacher
	for rows.Next() {
		teacher, err := scanTeacher(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan teacher row: %w", err)
		}
		teachers = append(teachers, teacher)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return teachers, totalItems, nil
}

// Update updates a teacher's mutable fields
func (r *TeacherRepository) Update(ctx context.Context, teacher *models.Teacher) error {
	query := `
		UPDATE teachers
		SET department_id = $1, phone = $2, qualification = $3,
			experience_years = $4, salary = $5, updated_at = NOW()
		WHERE id = $6
	`

	cmdTag, err := r.db.Exec(ctx, query,
		teacher.DepartmentID, teacher.Phone, teacher.Qualification,
		teacher.ExperienceYears, teacher.Salary, teacher.ID)
	if err != nil {
		return fmt.Errorf("error updating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	return nil
}

// SoftDelete marks a teacher (and the backing user account) inactive
func (r *TeacherRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE teachers SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating teacher: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrTeacherNotFound
	}

	_, err = r.db.Exec(ctx, `
		UPDATE users SET is_active = FALSE, updated_at = NOW()
		WHERE id = (SELECT user_id FROM teachers WHERE id = $1)`, id)
	if err != nil {
		return fmt.Errorf("error deactivating teacher account: %w", err)
	}

	return nil
}

// ExistsByEmployeeID checks whether the employee ID is already in use
func (r *TeacherRepository) ExistsByEmployeeID(ctx context.Context, employeeID string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM teachers WHERE employee_id = $1)`, employeeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking employee ID: %w", err)
	}
	return exists, nil
}
