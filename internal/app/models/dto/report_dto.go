package dto

// CoursePerformance summarizes one enrollment in a student report
type CoursePerformance struct {
	EnrollmentID    int64   `json:"enrollmentId"`
	CourseCode      string  `json:"courseCode"`
	CourseName      string  `json:"courseName"`
	Credits         int     `json:"credits"`
	Status          string  `json:"status"`
	FinalGrade      *string `json:"finalGrade,omitempty"`
	AverageGrade    float64 `json:"averageGrade"`
	GradeCount      int64   `json:"gradeCount"`
	AttendanceRate  float64 `json:"attendanceRate"`
	EnrollmentDate  string  `json:"enrollmentDate"`
}

// PerformanceReportResponse is the full per-student report
type PerformanceReportResponse struct {
	StudentID     int64  `json:"studentId"`
	StudentNumber string `json:"studentNumber"`
	StudentName   string `json:"studentName"`
	Department    string `json:"department"`
	YearOfStudy   int    `json:"yearOfStudy"`

	Courses []CoursePerformance `json:"courses"`

	GPA                   float64 `json:"gpa"`
	OverallAttendance     float64 `json:"overallAttendance"`
	TotalEnrollments      int     `json:"totalEnrollments"`
	ActiveEnrollments     int     `json:"activeEnrollments"`
	CompletedEnrollments  int     `json:"completedEnrollments"`
	TotalCredits          int     `json:"totalCredits"`
}
