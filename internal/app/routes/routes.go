package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/campusadmin/api/internal/app/controllers"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/middleware"
)

// SetupRouter configures all application routes
func SetupRouter(
	router *gin.Engine,
	authController *controllers.AuthController,
	departmentController *controllers.DepartmentController,
	teacherController *controllers.TeacherController,
	studentController *controllers.StudentController,
	courseController *controllers.CourseController,
	enrollmentController *controllers.EnrollmentController,
	gradeController *controllers.GradeController,
	attendanceController *controllers.AttendanceController,
	analyticsController *controllers.AnalyticsController,
	authMiddleware *middleware.AuthMiddleware,
) {
	// API version group
	v1 := router.Group("/api/v1")

	// --- Public Auth routes ---
	auth := v1.Group("/auth")
	{
		auth.POST("/login", authController.Login)
		auth.POST("/refresh", authController.RefreshToken)
	}

	// --- Authenticated Routes Group ---
	// Reads are open to any authenticated caller; the controllers enforce
	// the finer-grained write policy per resource.
	authenticated := v1.Group("")
	authenticated.Use(authMiddleware.JWTAuth())
	{
		authenticated.POST("/auth/logout", authController.Logout)

		departments := authenticated.Group("/departments")
		{
			departments.GET("", departmentController.GetAllDepartments)
			departments.GET("/:id", departmentController.GetDepartmentByID)
			departments.POST("", departmentController.CreateDepartment)
			departments.PUT("/:id", departmentController.UpdateDepartment)
			departments.DELETE("/:id", departmentController.DeleteDepartment)
		}

		teachers := authenticated.Group("/teachers")
		{
			teachers.GET("", teacherController.GetAllTeachers)
			teachers.GET("/:id", teacherController.GetTeacherByID)
			teachers.POST("", teacherController.CreateTeacher)
			teachers.PUT("/:id", teacherController.UpdateTeacher)
			teachers.DELETE("/:id", teacherController.DeleteTeacher)
		}

		students := authenticated.Group("/students")
		{
			students.GET("", studentController.GetAllStudents)
			students.GET("/:id", studentController.GetStudentByID)
			students.GET("/:id/performance", analyticsController.GetStudentPerformance)
			students.POST("", studentController.CreateStudent)
			students.PUT("/:id", studentController.UpdateStudent)
			students.DELETE("/:id", studentController.DeleteStudent)
		}

		courses := authenticated.Group("/courses")
		{
			courses.GET("", courseController.GetAllCourses)
			courses.GET("/:id", courseController.GetCourseByID)
			courses.POST("", courseController.CreateCourse)
			courses.PUT("/:id", courseController.UpdateCourse)
			courses.DELETE("/:id", courseController.DeleteCourse)
		}

		enrollments := authenticated.Group("/enrollments")
		{
			enrollments.GET("", enrollmentController.GetAllEnrollments)
			enrollments.GET("/:id", enrollmentController.GetEnrollmentByID)
			enrollments.POST("", enrollmentController.EnrollStudent)
			enrollments.PUT("/:id", enrollmentController.UpdateEnrollmentStatus)
			enrollments.DELETE("/:id", enrollmentController.DeleteEnrollment)
		}

		grades := authenticated.Group("/grades")
		{
			grades.GET("", gradeController.GetAllGrades)
			grades.GET("/:id", gradeController.GetGradeByID)
			grades.POST("", gradeController.CreateGrade)
			grades.PUT("/:id", gradeController.UpdateGrade)
			grades.DELETE("/:id", gradeController.DeleteGrade)
		}

		attendance := authenticated.Group("/attendance")
		{
			attendance.GET("", attendanceController.GetAllAttendance)
			attendance.GET("/:id", attendanceController.GetAttendanceByID)
			attendance.POST("", attendanceController.MarkAttendance)
			attendance.POST("/bulk-mark", attendanceController.BulkMarkAttendance)
			attendance.PUT("/:id", attendanceController.UpdateAttendance)
			attendance.DELETE("/:id", attendanceController.DeleteAttendance)
		}

		analytics := authenticated.Group("/analytics")
		{
			analytics.GET("/dashboard", analyticsController.GetDashboard)
		}
	}

	// Health check endpoint (public)
	v1.GET("/health", func(c *gin.Context) {
		c.JSON(200, dto.NewSuccessResponse(gin.H{"status": "ok"}))
	})

	// Swagger routes are registered separately via SetupSwagger
}
