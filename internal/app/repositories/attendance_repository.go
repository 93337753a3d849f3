package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/pkg/apperrors"
	"github.com/campusadmin/api/internal/pkg/dberrors"
	"github.com/campusadmin/api/internal/pkg/logger"
)

// AttendanceRepository handles database operations for attendance records
type AttendanceRepository struct {
	db *pgxpool.Pool
	sb squirrel.StatementBuilderType
}

// NewAttendanceRepository creates a new attendance repository
func NewAttendanceRepository(db *pgxpool.Pool) *AttendanceRepository {
	return &AttendanceRepository{
		db: db,
		sb: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
}

// Create inserts a single attendance record
func (r *AttendanceRepository) Create(ctx context.Context, attendance *models.Attendance) error {
	query := `
		INSERT INTO attendance (enrollment_id, date, status, notes, marked_by_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(ctx, query,
		attendance.EnrollmentID, attendance.Date, attendance.Status,
		attendance.Notes, attendance.MarkedByID,
	).Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return apperrors.ErrAttendanceExists
		}
		return fmt.Errorf("error creating attendance record: %w", err)
	}

	return nil
}

// Upsert inserts or updates the record for (enrollment, date) and reports
// whether a new row was created. Used by bulk marking so re-marking a day
// overwrites the earlier status; a re-mark without notes keeps the
// existing notes.
func (r *AttendanceRepository) Upsert(ctx context.Context, attendance *models.Attendance) (bool, error) {
	query := `
		INSERT INTO attendance (enrollment_id, date, status, notes, marked_by_id)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (enrollment_id, date)
		DO UPDATE SET status = EXCLUDED.status,
			notes = COALESCE(EXCLUDED.notes, attendance.notes),
			marked_by_id = EXCLUDED.marked_by_id, updated_at = NOW()
		RETURNING id, created_at, updated_at, (xmax = 0)
	`

	var created bool
	err := r.db.QueryRow(ctx, query,
		attendance.EnrollmentID, attendance.Date, attendance.Status,
		attendance.Notes, attendance.MarkedByID,
	).Scan(&attendance.ID, &attendance.CreatedAt, &attendance.UpdatedAt, &created)
	if err != nil {
		return false, fmt.Errorf("error upserting attendance record: %w", err)
	}

	return created, nil
}

func (r *AttendanceRepository) attendanceSelect() squirrel.SelectBuilder {
	return r.sb.Select(
		"a.id", "a.enrollment_id", "a.date", "a.status", "a.notes", "a.marked_by_id",
		"a.created_at", "a.updated_at",
		"s.first_name", "s.last_name", "c.course_code", "c.teacher_id",
	).
		From("attendance a").
		Join("enrollments e ON a.enrollment_id = e.id").
		Join("students s ON e.student_id = s.id").
		Join("courses c ON e.course_id = c.id")
}

func scanAttendance(row pgx.Row) (*models.Attendance, error) {
	var a models.Attendance
	var student models.Student
	var course models.Course

	err := row.Scan(
		&a.ID, &a.EnrollmentID, &a.Date, &a.Status, &a.Notes, &a.MarkedByID,
		&a.CreatedAt, &a.UpdatedAt,
		&student.FirstName, &student.LastName, &course.CourseCode, &course.TeacherID,
	)
	if err != nil {
		return nil, err
	}

	a.Enrollment = &models.Enrollment{
		ID:      a.EnrollmentID,
		Student: &student,
		Course:  &course,
	}
	return &a, nil
}

// GetByID retrieves an attendance record with enrollment context
func (r *AttendanceRepository) GetByID(ctx context.Context, id int64) (*models.Attendance, error) {
	querySql, args, err := r.attendanceSelect().Where(squirrel.Eq{"a.id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("failed to build attendance query: %w", err)
	}

	attendance, err := scanAttendance(r.db.QueryRow(ctx, querySql, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrAttendanceNotFound
		}
		return nil, fmt.Errorf("error retrieving attendance record: %w", err)
	}

	return attendance, nil
}

// ExistsByEnrollmentAndDate checks for an existing record on the day
func (r *AttendanceRepository) ExistsByEnrollmentAndDate(ctx context.Context, enrollmentID int64, date time.Time) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM attendance WHERE enrollment_id = $1 AND date = $2)`,
		enrollmentID, date).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking attendance existence: %w", err)
	}
	return exists, nil
}

var attendanceSortColumns = map[string]string{
	"date":      "a.date",
	"status":    "a.status",
	"createdAt": "a.created_at",
}

// GetAll retrieves attendance records with pagination, filtering and sorting
func (r *AttendanceRepository) GetAll(ctx context.Context, page, pageSize int, filter dto.AttendanceFilter) ([]*models.Attendance, int64, error) {
	offset := uint64((page - 1) * pageSize)

	baseSelect := r.attendanceSelect()
	countSelect := r.sb.Select("COUNT(*)").
		From("attendance a").
		Join("enrollments e ON a.enrollment_id = e.id")

	where := squirrel.And{}
	if filter.EnrollmentID != nil {
		where = append(where, squirrel.Eq{"a.enrollment_id": *filter.EnrollmentID})
	}
	if filter.CourseID != nil {
		where = append(where, squirrel.Eq{"e.course_id": *filter.CourseID})
	}
	if filter.Status != "" {
		where = append(where, squirrel.Eq{"a.status": filter.Status})
	}
	if !filter.DateFrom.IsZero() {
		where = append(where, squirrel.GtOrEq{"a.date": filter.DateFrom})
	}
	if !filter.DateTo.IsZero() {
		where = append(where, squirrel.LtOrEq{"a.date": filter.DateTo})
	}

	if len(where) > 0 {
		baseSelect = baseSelect.Where(where)
		countSelect = countSelect.Where(where)
	}

	countSql, countArgs, err := countSelect.ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build count attendance query: %w", err)
	}

	var totalItems int64
	if err := r.db.QueryRow(ctx, countSql, countArgs...).Scan(&totalItems); err != nil {
		logger.Error().Err(err).Msg("Error counting attendance records")
		return nil, 0, fmt.Errorf("failed to count attendance records: %w", err)
	}

	if totalItems == 0 {
		return []*models.Attendance{}, 0, nil
	}

	orderBy := orderClause(attendanceSortColumns, filter.SortBy, filter.SortOrder, "a.date DESC")

	querySql, args, err := baseSelect.
		OrderBy(orderBy).
		Limit(uint64(pageSize)).
		Offset(offset).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("failed to build attendance query: %w", err)
	}

	rows, err := r.db.Query(ctx, querySql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query attendance records: %w", err)
	}
	defer rows.Close()

	var records []*models.Attendance
	for rows.Next() {
		attendance, err := scanAttendance(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan attendance row: %w", err)
		}
		records = append(records, attendance)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, err
	}

	return records, totalItems, nil
}

// Update changes the status and notes of a record
func (r *AttendanceRepository) Update(ctx context.Context, attendance *models.Attendance) error {
	query := `
		UPDATE attendance
		SET status = $1, notes = $2, updated_at = NOW()
		WHERE id = $3
	`

	cmdTag, err := r.db.Exec(ctx, query, attendance.Status, attendance.Notes, attendance.ID)
	if err != nil {
		return fmt.Errorf("error updating attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}

// Delete removes an attendance record permanently
func (r *AttendanceRepository) Delete(ctx context.Context, id int64) error {
	cmdTag, err := r.db.Exec(ctx, `DELETE FROM attendance WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("error deleting attendance record: %w", err)
	}

	if cmdTag.RowsAffected() == 0 {
		return apperrors.ErrAttendanceNotFound
	}

	return nil
}
