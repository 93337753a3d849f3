package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusadmin/api/internal/app/auth"
	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/services"
	"github.com/campusadmin/api/internal/middleware"
	"github.com/campusadmin/api/internal/pkg/helpers"
)

// AttendanceController handles attendance operations
type AttendanceController struct {
	attendanceService *services.AttendanceService
	enrollmentService *services.EnrollmentService
	courseService     *services.CourseService
	principalService  *services.PrincipalService
}

// NewAttendanceController creates a new AttendanceController
func NewAttendanceController(attendanceService *services.AttendanceService, enrollmentService *services.EnrollmentService, courseService *services.CourseService, principalService *services.PrincipalService) *AttendanceController {
	return &AttendanceController{
		attendanceService: attendanceService,
		enrollmentService: enrollmentService,
		courseService:     courseService,
		principalService:  principalService,
	}
}

// attendanceResource builds the access-control target for an attendance
// record, carrying the teacher of record on the enrollment's course
func attendanceResource(a *models.Attendance) auth.Resource {
	res := auth.Resource{Kind: auth.ResourceAttendance}
	if a != nil && a.Enrollment != nil && a.Enrollment.Course != nil {
		res.CourseTeacherID = a.Enrollment.Course.TeacherID
	}
	return res
}

// MarkAttendance records attendance for one enrollment on one day
// @Summary Mark attendance
// @Description Records attendance for a single enrollment and date
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateAttendanceRequest true "Attendance information"
// @Success 201 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance marked successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 409 {object} dto.ErrorResponse "Attendance already marked for this date"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [post]
func (c *AttendanceController) MarkAttendance(ctx *gin.Context) {
	var req dto.CreateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, req.EnrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	res := auth.Resource{Kind: auth.ResourceAttendance}
	if enrollment.Course != nil {
		res.CourseTeacherID = enrollment.Course.TeacherID
	}
	if !authorize(ctx, c.principalService, auth.ActionCreate, res) {
		return
	}

	attendance, err := c.attendanceService.MarkAttendance(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromAttendance(attendance)))
}

// BulkMarkAttendance marks a whole course for one day
// @Summary Bulk mark attendance
// @Description Marks attendance for many students of a course on one date. Individual failures are reported per student and do not abort the batch.
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.BulkAttendanceRequest true "Bulk attendance information"
// @Success 200 {object} dto.APIResponse{data=dto.BulkAttendanceResponse} "Batch processed"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Course or teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/bulk-mark [post]
func (c *AttendanceController) BulkMarkAttendance(ctx *gin.Context) {
	var req dto.BulkAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid bulk attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, req.CourseID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionCreate, auth.Resource{Kind: auth.ResourceAttendance, CourseTeacherID: course.TeacherID}) {
		return
	}

	result, err := c.attendanceService.BulkMarkAttendance(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetAttendanceByID retrieves an attendance record by ID
// @Summary Get attendance by ID
// @Description Retrieves a specific attendance record with enrollment context
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [get]
func (c *AttendanceController) GetAttendanceByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "attendance")
	if !ok {
		return
	}

	attendance, err := c.attendanceService.GetAttendanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAttendance(attendance)))
}

// GetAllAttendance retrieves attendance records with pagination and filtering
// @Summary List attendance records
// @Description Retrieves a paginated list of attendance records with optional filters
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param enrollmentId query int false "Filter by enrollment ID"
// @Param courseId query int false "Filter by course ID"
// @Param status query string false "Filter by status" Enums(PRESENT, ABSENT, LATE, EXCUSED)
// @Param dateFrom query string false "Date lower bound (YYYY-MM-DD)"
// @Param dateTo query string false "Date upper bound (YYYY-MM-DD)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceListResponse} "Attendance records retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance [get]
func (c *AttendanceController) GetAllAttendance(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.AttendanceFilter{
		EnrollmentID: queryInt64(ctx, "enrollmentId"),
		CourseID:     queryInt64(ctx, "courseId"),
		Status:       ctx.Query("status"),
		DateFrom:     helpers.ParseDateParam(ctx.Query("dateFrom")),
		DateTo:       helpers.ParseDateParam(ctx.Query("dateTo")),
		SortBy:       ctx.Query("sortBy"),
		SortOrder:    ctx.Query("sortOrder"),
	}

	records, totalItems, err := c.attendanceService.GetAllAttendance(ctx, page, size, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.AttendanceListResponse{
		Records:    make([]dto.AttendanceResponse, 0, len(records)),
		Pagination: helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, record := range records {
		response.Records = append(response.Records, dto.FromAttendance(record))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateAttendance changes the status and notes of a record
// @Summary Update an attendance record
// @Description Changes the status and notes of an existing attendance record
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Param request body dto.UpdateAttendanceRequest true "Updated attendance information"
// @Success 200 {object} dto.APIResponse{data=dto.AttendanceResponse} "Attendance updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [put]
func (c *AttendanceController) UpdateAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "attendance")
	if !ok {
		return
	}

	var req dto.UpdateAttendanceRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid attendance data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	existing, err := c.attendanceService.GetAttendanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, attendanceResource(existing)) {
		return
	}

	attendance, err := c.attendanceService.UpdateAttendance(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromAttendance(attendance)))
}

// DeleteAttendance removes an attendance record
// @Summary Delete an attendance record
// @Description Removes an attendance record permanently
// @Tags attendance
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Attendance ID"
// @Success 204 "Attendance deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid attendance ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Attendance record not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /attendance/{id} [delete]
func (c *AttendanceController) DeleteAttendance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "attendance")
	if !ok {
		return
	}

	existing, err := c.attendanceService.GetAttendanceByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, attendanceResource(existing)) {
		return
	}

	if err := c.attendanceService.DeleteAttendance(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
