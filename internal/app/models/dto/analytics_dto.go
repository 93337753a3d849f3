package dto

import "time"

// DepartmentStudentCount holds the number of students in one department
type DepartmentStudentCount struct {
	DepartmentID   int64  `json:"departmentId"`
	DepartmentName string `json:"departmentName"`
	StudentCount   int64  `json:"studentCount"`
}

// YearOfStudyCount holds the number of students in one study year
type YearOfStudyCount struct {
	YearOfStudy  int   `json:"yearOfStudy"`
	StudentCount int64 `json:"studentCount"`
}

// CourseEnrollmentStat summarizes enrollment for one course
type CourseEnrollmentStat struct {
	CourseID      int64  `json:"courseId"`
	CourseCode    string `json:"courseCode"`
	CourseName    string `json:"courseName"`
	MaxStudents   int    `json:"maxStudents"`
	EnrolledCount int64  `json:"enrolledCount"`
}

// LetterGradeCount holds the number of grades awarded per letter
type LetterGradeCount struct {
	LetterGrade string `json:"letterGrade"`
	Count       int64  `json:"count"`
}

// DashboardResponse is the aggregated analytics payload
type DashboardResponse struct {
	ActiveStudents    int64 `json:"activeStudents"`
	ActiveTeachers    int64 `json:"activeTeachers"`
	ActiveCourses     int64 `json:"activeCourses"`
	Departments       int64 `json:"departments"`
	RecentEnrollments int64 `json:"recentEnrollments"` // trailing 30 days

	StudentsPerDepartment []DepartmentStudentCount `json:"studentsPerDepartment"`
	StudentsPerYear       []YearOfStudyCount       `json:"studentsPerYear"`
	TopCourses            []CourseEnrollmentStat   `json:"topCourses"`
	GradeDistribution     []LetterGradeCount       `json:"gradeDistribution"`

	AverageAttendance float64   `json:"averageAttendance"`
	GeneratedAt       time.Time `json:"generatedAt"`
}
