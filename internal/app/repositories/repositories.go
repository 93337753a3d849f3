package repositories

import (
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories holds all the repository instances
type Repositories struct {
	UserRepository       *UserRepository
	TokenRepository      *TokenRepository
	DepartmentRepository *DepartmentRepository
	TeacherRepository    *TeacherRepository
	StudentRepository    *StudentRepository
	CourseRepository     *CourseRepository
	EnrollmentRepository *EnrollmentRepository
	GradeRepository      *GradeRepository
	AttendanceRepository *AttendanceRepository
	AnalyticsRepository  *AnalyticsRepository
}

// NewRepositories initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		UserRepository:       NewUserRepository(db),
		TokenRepository:      NewTokenRepository(db),
		DepartmentRepository: NewDepartmentRepository(db),
		TeacherRepository:    NewTeacherRepository(db),
		StudentRepository:    NewStudentRepository(db),
		CourseRepository:     NewCourseRepository(db),
		EnrollmentRepository: NewEnrollmentRepository(db),
		GradeRepository:      NewGradeRepository(db),
		AttendanceRepository: NewAttendanceRepository(db),
		AnalyticsRepository:  NewAnalyticsRepository(db),
	}
}

// orderClause resolves a requested sort field against a whitelist and
// returns an ORDER BY expression, falling back to the default clause.
func orderClause(columns map[string]string, sortBy, sortOrder, fallback string) string {
	column, ok := columns[sortBy]
	if !ok {
		return fallback
	}

	order := "ASC"
	if strings.EqualFold(sortOrder, "DESC") {
		order = "DESC"
	}

	return fmt.Sprintf("%s %s", column, order)
}
