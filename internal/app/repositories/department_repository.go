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
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/dberrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// DepartmentRepository handles database operations for departments
type DepartmentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewDepartmentRepository creates a new department repository
func NewDepartmentRepository(db *pgxpool.Pool) *DepartmentRepository {
	return &DepartmentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create creates a new department
func (r *DepartmentRepository) Create(ctx context.Context, department *models.Department) error {
	query := `
		INSERT INTO departments (name, code, description, head_of_department)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		department.Name, department.Code, department.Description, department.HeadOfDepartment,
	).Scan(&department.ID, &department.CreatedAt, &department.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error creating department: %w", err)
	}

	return nil
}

// departmentSelect builds the joined select with aggregate counts
func (r *DepartmentRepository) departmentSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"d.id", "d.name", "d.code", "d.description", "d.head_of_department",
		"d.created_at", "d.updated_at",
		"(SELECT COUNT(*) FROM teachers t WHERE t.department_id = d.id AND t.is_active) AS teacher_count",
		"(SELECT COUNT(*) FROM students s WHERE s.department_id = d.id AND s.is_active) AS student_count",
		"(SELECT COUNT(*) FROM courses c WHERE c.department_id = d.id AND c.is_active) AS course_count",
	).From("departments d")
}

func scanDepartment(row pgx.Row) (*models.Department, error) {
	var d models.Department
	err := row.Scan(
		&d.ID, &d.Name, &d.Code, &d.Description, &d.HeadOfDepartment,
		&d.CreatedAt, &d.UpdatedAt,
		&d.TeacherCount, &d.StudentCount, &d.CourseCount,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// GetByID retrieves a department with its aggregate counts
func (r *DepartmentRepository) GetByID(ctx context.Context, id int64) (*models.Department, error) {
	querySql, args, err := r.departmentSelect().Where(squirrel.Eq{"d.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build department query: %w", err)
	}

	department, err := scanDepartment(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrDepartmentNotFound
		}
		return nil, fmt.Errorf("error retrieving department: %w", err)
	}

	return department, nil
}

// GetAll retrieves departments with pagination and optional search
func (r *DepartmentRepository) GetAll(ctx context.Context, page, pageSize int, search string) ([]*models.Department, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.departmentSelect()
	countSelect := r.sb.Select("COUNT(*)").From("departments d")

	if search != "" {
		pattern := "%" + strings.TrimSpace(search) + "%"
		condition := squirrel.Or{
			squirrel.ILike{"d.name": pattern},
			squirrel.ILike{"d.code": pattern},
		}
		baseSelect = baseSelect.Where(condition)
		countSelect = countSelect.Where(condition)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count departments query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting departments")
		return nil, 0, fmt.Errorf("failed to count departments: %w", err)
	}

	if totalItems == 0 {
		return []*models.Department{}, 0, nil
	}

	querySql, args, err := baseSelect.
		OrderBy("d.name ASC").
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build departments query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query departments: %w", err)
	}
	defer rows.Close()

	var departments []*models.Department
	for rows.Next() {
		department, err := scanDepartment(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan department row: %w", err)
		}
		departments = append(departments, department)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return departments, totalItems, nil
}

// ExistsByNameOrCode checks if another department uses the name or code
func (r *DepartmentRepository) ExistsByNameOrCode(ctx context.Context, name, code string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM departments WHERE (name = $1 OR code = $2) AND id != $3)`,
		name, code, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking department existence: %w", err)
	}
	return exists, nil
}

// Update updates an existing department
func (r *DepartmentRepository) Update(ctx context.Context, department *models.Department) error {
	query := `
		UPDATE departments
		SET name = $1, code = $2, description = $3, head_of_department = $4, updated_at = NOW()
		WHERE id = $5
	`

	cmdTag, err := r.db.Exec(ctx, query,
		department.Name, department.Code, department.Description,
		department.HeadOfDepartment, department.ID)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDepartmentAlreadyExists
		}
		return fmt.Errorf("error updating department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}

// HasRelations reports whether the department still owns teachers,
// students or courses. Deletion is refused while it does.
func (r *DepartmentRepository) HasRelations(ctx context.Context, id int64) (bool, error) {
	var hasRelations bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM teachers WHERE department_id = $1)
			OR EXISTS(SELECT 1 FROM students WHERE department_id = $1)
			OR EXISTS(SELECT 1 FROM courses WHERE department_id = $1)`,
		id).Scan(&hasRelations)
	if err != nil {
		return false, fmt.Errorf("error checking department relations: %w", err)
	}
	return hasRelations, nil
}

// Delete removes a department by ID
func (r *DepartmentRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM departments WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting department: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrDepartmentNotFound
	}

	return nil
}
