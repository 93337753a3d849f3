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

// StudentRepository handles database operations for students
type StudentRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a new student
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) error {
	query := `
		INSERT INTO students (student_id, first_name, last_name, email, phone,
			date_of_birth, gender, address, department_id, year_of_study,
			admission_date, is_active,
			emergency_contact_name, emergency_contact_phone, emergency_contact_relation)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		student.StudentID, student.FirstName, student.LastName, student.Email,
		student.Phone, student.DateOfBirth, student.Gender, student.Address,
		student.DepartmentID, student.YearOfStudy, student.AdmissionDate,
		student.IsActive,
		student.EmergencyContactName, student.EmergencyContactPhone, student.EmergencyContactRelation,
	).Scan(&student.ID, &student.CreatedAt, &student.UpdatedAt)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_student_id_key") {
			return apperrors.ErrStudentIDAlreadyExists
		}
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("error creating student: %w", err)
	}

	return nil
}

func (r *StudentRepository) studentSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"s.id", "s.student_id", "s.first_name", "s.last_name", "s.email", "s.phone",
		"s.date_of_birth", "s.gender", "s.address", "s.department_id", "s.year_of_study",
		"s.admission_date", "s.graduation_date", "s.is_active",
		"s.emergency_contact_name", "s.emergency_contact_phone", "s.emergency_contact_relation",
		"s.created_at", "s.updated_at",
		"d.name AS department_name", "d.code AS department_code",
	).
		From("students s").
		Join("departments d ON s.department_id = d.id")
}

func scanStudent(row pgx.Row) (*models.Student, error) {
	var s models.Student
	var departmentName, departmentCode string

	err := row.Scan(
		&s.ID, &s.StudentID, &s.FirstName, &s.LastName, &s.Email, &s.Phone,
		&s.DateOfBirth, &s.Gender, &s.Address, &s.DepartmentID, &s.YearOfStudy,
		&s.AdmissionDate, &s.GraduationDate, &s.IsActive,
		&s.EmergencyContactName, &s.EmergencyContactPhone, &s.EmergencyContactRelation,
		&s.CreatedAt, &s.UpdatedAt,
		&departmentName, &departmentCode,
	)
	if err != nil {
		return nil, err
	}

	s.Department = &models.Department{ID: s.DepartmentID, Name: departmentName, Code: departmentCode}
	return &s, nil
}

// GetByID retrieves a student with department details
func (r *StudentRepository) GetByID(ctx context.Context, id int64) (*models.Student, error) {
	querySql, args, err := r.studentSelect().Where(squirrel.Eq{"s.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByStudentID retrieves a student by the external student identifier
func (r *StudentRepository) GetByStudentID(ctx context.Context, studentID string) (*models.Student, error) {
	querySql, args, err := r.studentSelect().Where(squirrel.Eq{"s.student_id": studentID}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

// GetByEmail retrieves a student by email address
func (r *StudentRepository) GetByEmail(ctx context.Context, email string) (*models.Student, error) {
	querySql, args, err := r.studentSelect().Where(squirrel.Eq{"s.email": email}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build student query: %w", err)
	}

	student, err := scanStudent(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrStudentNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}

	return student, nil
}

var studentSortColumns = map[string]string{
	"studentId":     "s.student_id",
	"lastName":      "s.last_name",
	"admissionDate": "s.admission_date",
	"yearOfStudy":   "s.year_of_study",
	"createdAt":     "s.created_at",
}

// GetAll retrieves students with pagination, filtering and sorting
func (r *StudentRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.StudentFilter) ([]*models.Student, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.studentSelect()
	countSelect := r.sb.Select("COUNT(*)").
		From("students s").
		Join("departments d ON s.department_id = d.id")

	where := squirrel.And{}
	if filter.DepartmentID != nil {
		where = append(where, squirrel.Eq{"s.department_id": *filter.DepartmentID})
	}
	if filter.DepartmentCode != "" {
		where = append(where, squirrel.Eq{"d.code": filter.DepartmentCode})
	}
	if filter.YearOfStudy != nil {
		where = append(where, squirrel.Eq{"s.year_of_study": *filter.YearOfStudy})
	}
	if filter.Gender != "" {
		where = append(where, squirrel.Eq{"s.gender": filter.Gender})
	}
	if filter.IsActive != nil {
		where = append(where, squirrel.Eq{"s.is_active": *filter.IsActive})
	}
	if filter.Search != "" {
		pattern := "%" + strings.TrimSpace(filter.Search) + "%"
		where = append(where, squirrel.Or{
			squirrel.ILike{"s.student_id": pattern},
			squirrel.Expr("s.first_name || ' ' || s.last_name ILIKE ?", pattern),
			squirrel.ILike{"s.email": pattern},
		})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count students query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting students")
		return nil, 0, fmt.Errorf("failed to count students: %w", err)
	}

	if totalItems == 0 {
		return []*models.Student{}, 0, nil
	}

	orderBy := orderClause(studentSortColumns, filter.SortBy, filter.SortOrder, "s.created_at DESC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build students query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query students: %w", err)
	}
	defer rows.Close()

	var students []*models.Student
	for rows.Next() {
		student, err := scanStudent(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan student row: %w", err)
		}
		students = append(students, student)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return students, totalItems, nil
}

// Update updates a student's mutable fields
func (r *StudentRepository) Update(ctx context.Context, student *models.Student) error {
	query := `
		UPDATE students
		SET first_name = $1, last_name = $2, email = $3, phone = $4, address = $5,
			department_id = $6, year_of_study = $7,
			emergency_contact_name = $8, emergency_contact_phone = $9,
			emergency_contact_relation = $10, updated_at = NOW()
		WHERE id = $11
	`

	cmdTag, err := r.db.Exec(ctx, query,
		student.FirstName, student.LastName, student.Email, student.Phone,
		student.Address, student.DepartmentID, student.YearOfStudy,
		student.EmergencyContactName, student.EmergencyContactPhone,
		student.EmergencyContactRelation, student.ID)
	if err != nil {
		if dberrors.IsDuplicateConstraintError(err, "students_email_key") {
			return apperrors.ErrEmailAlreadyExists
		}
		return fmt.Errorf("error updating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}

// SoftDelete marks a student inactive
func (r *StudentRepository) SoftDelete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `
		UPDATE students SET is_active = FALSE, updated_at = NOW() WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deactivating student: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrStudentNotFound
	}

	return nil
}
