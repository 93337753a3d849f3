package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/campusadmin/api/internal/app/models/dto"
)

// AnalyticsRepository runs the aggregate queries behind the dashboard
// and the per-student performance report
type AnalyticsRepository struct {
	db *pgxpool.Pool
}

// NewAnalyticsRepository creates a new analytics repository
func NewAnalyticsRepository(db *pgxpool.Pool) *AnalyticsRepository {
	return &AnalyticsRepository{
		db: db,
	}
}

// CountActive returns the headline dashboard counters in one round trip
func (r *AnalyticsRepository) CountActive(ctx context.Context) (students, teachers, courses, departments, recentEnrollments int64, err error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM students WHERE is_active),
			(SELECT COUNT(*) FROM teachers WHERE is_active),
			(SELECT COUNT(*) FROM courses WHERE is_active),
			(SELECT COUNT(*) FROM departments),
			(SELECT COUNT(*) FROM enrollments WHERE enrollment_date >= NOW() - INTERVAL '30 days')
	`

	err = r.db.QueryRow(ctx, query).Scan(&students, &teachers, &courses, &departments, &recentEnrollments)
	if err != nil {
		err = fmt.Errorf("error counting dashboard totals: %w", err)
	}
	return
}

// StudentsPerDepartment returns active student counts grouped by department
func (r *AnalyticsRepository) StudentsPerDepartment(ctx context.Context) ([]dto.DepartmentStudentCount, error) {
	query := `
		SELECT d.id, d.name, COUNT(s.id)
		FROM departments d
		LEFT JOIN students s ON s.department_id = d.id AND s.is_active
		GROUP BY d.id, d.name
		ORDER BY COUNT(s.id) DESC, d.name ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying students per department: %w", err)
	}
	defer rows.Close()

	var counts []dto.DepartmentStudentCount
	for rows.Next() {
		var c dto.DepartmentStudentCount
		if err := rows.Scan(&c.DepartmentID, &c.DepartmentName, &c.StudentCount); err != nil {
			return nil, fmt.Errorf("error scanning department count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// StudentsPerYear returns active student counts grouped by year of study
func (r *AnalyticsRepository) StudentsPerYear(ctx context.Context) ([]dto.YearOfStudyCount, error) {
	query := `
		SELECT year_of_study, COUNT(*)
		FROM students
		WHERE is_active
		GROUP BY year_of_study
		ORDER BY year_of_study ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying students per year: %w", err)
	}
	defer rows.Close()

	var counts []dto.YearOfStudyCount
	for rows.Next() {
		var c dto.YearOfStudyCount
		if err := rows.Scan(&c.YearOfStudy, &c.StudentCount); err != nil {
			return nil, fmt.Errorf("error scanning year count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// TopCoursesByEnrollment returns the most enrolled active courses
func (r *AnalyticsRepository) TopCoursesByEnrollment(ctx context.Context, limit int) ([]dto.CourseEnrollmentStat, error) {
	query := `
		SELECT c.id, c.course_code, c.name, c.max_students, COUNT(e.id)
		FROM courses c
		LEFT JOIN enrollments e ON e.course_id = c.id AND e.is_active
		WHERE c.is_active
		GROUP BY c.id, c.course_code, c.name, c.max_students
		ORDER BY COUNT(e.id) DESC, c.course_code ASC
		LIMIT $1
	`

	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("error querying top courses: %w", err)
	}
	defer rows.Close()

	var stats []dto.CourseEnrollmentStat
	for rows.Next() {
		var s dto.CourseEnrollmentStat
		if err := rows.Scan(&s.CourseID, &s.CourseCode, &s.CourseName, &s.MaxStudents, &s.EnrolledCount); err != nil {
			return nil, fmt.Errorf("error scanning course stat: %w", err)
		}
		stats = append(stats, s)
	}

	return stats, rows.Err()
}

// GradeDistribution returns how many grades were awarded per letter
func (r *AnalyticsRepository) GradeDistribution(ctx context.Context) ([]dto.LetterGradeCount, error) {
	query := `
		SELECT letter_grade, COUNT(*)
		FROM grades
		GROUP BY letter_grade
		ORDER BY letter_grade ASC
	`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying grade distribution: %w", err)
	}
	defer rows.Close()

	var counts []dto.LetterGradeCount
	for rows.Next() {
		var c dto.LetterGradeCount
		if err := rows.Scan(&c.LetterGrade, &c.Count); err != nil {
			return nil, fmt.Errorf("error scanning grade count: %w", err)
		}
		counts = append(counts, c)
	}

	return counts, rows.Err()
}

// GlobalAttendanceRate returns the overall attended/total percentage.
// PRESENT and LATE both count as attended; zero records yield 0.
func (r *AnalyticsRepository) GlobalAttendanceRate(ctx context.Context) (float64, error) {
	query := `
		SELECT COUNT(*) FILTER (WHERE status IN ('PRESENT', 'LATE')), COUNT(*)
		FROM attendance
	`

	var attended, total int64
	if err := r.db.QueryRow(ctx, query).Scan(&attended, &total); err != nil {
		return 0, fmt.Errorf("error querying attendance rate: %w", err)
	}

	if total == 0 {
		return 0, nil
	}
	return float64(attended) / float64(total) * 100, nil
}

// EnrollmentPerformance is one enrollment's aggregates for the report
type EnrollmentPerformance struct {
	EnrollmentID   int64
	CourseCode     string
	CourseName     string
	Credits        int
	Status         string
	FinalGrade     *string
	EnrollmentDate string
	AverageGrade   float64
	GradeCount     int64
	AttendedCount  int64
	AttendanceRows int64
}

// StudentEnrollmentPerformance fetches per-enrollment grade and
// attendance aggregates for one student
func (r *AnalyticsRepository) StudentEnrollmentPerformance(ctx context.Context, studentID int64) ([]EnrollmentPerformance, error) {
	query := `
		SELECT e.id, c.course_code, c.name, c.credits, e.status, e.final_grade,
			TO_CHAR(e.enrollment_date, 'YYYY-MM-DD'),
			COALESCE((SELECT AVG(g.percentage) FROM grades g WHERE g.enrollment_id = e.id), 0),
			(SELECT COUNT(*) FROM grades g WHERE g.enrollment_id = e.id),
			(SELECT COUNT(*) FROM attendance a WHERE a.enrollment_id = e.id AND a.status IN ('PRESENT', 'LATE')),
			(SELECT COUNT(*) FROM attendance a WHERE a.enrollment_id = e.id)
		FROM enrollments e
		JOIN courses c ON e.course_id = c.id
		WHERE e.student_id = $1
		ORDER BY e.enrollment_date DESC
	`

	rows, err := r.db.Query(ctx, query, studentID)
	if err != nil {
		return nil, fmt.Errorf("error querying student performance: %w", err)
	}
	defer rows.Close()

	var results []EnrollmentPerformance
	for rows.Next() {
		var p EnrollmentPerformance
		if err := rows.Scan(
			&p.EnrollmentID, &p.CourseCode, &p.CourseName, &p.Credits, &p.Status,
			&p.FinalGrade, &p.EnrollmentDate, &p.AverageGrade, &p.GradeCount,
			&p.AttendedCount, &p.AttendanceRows,
		); err != nil {
			return nil, fmt.Errorf("error scanning performance row: %w", err)
		}
		results = append(results, p)
	}

	return results, rows.Err()
}
