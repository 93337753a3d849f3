package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusadmin/api/internal/app/auth"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/services"
	"github.com/campusadmin/api/internal/middleware"
	"github.com/campusadmin/api/internal/pkg/helpers"
)

// EnrollmentController handles enrollment operations
type EnrollmentController struct {
	enrollmentService *services.EnrollmentService
	principalService  *services.PrincipalService
}

// NewEnrollmentController creates a new EnrollmentController
func NewEnrollmentController(enrollmentService *services.EnrollmentService, principalService *services.PrincipalService) *EnrollmentController {
	return &EnrollmentController{
		enrollmentService: enrollmentService,
		principalService:  principalService,
	}
}

// EnrollStudent enrolls a student in a course
// @Summary Enroll a student
// @Description Enrolls a student in a course, enforcing capacity and uniqueness
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateEnrollmentRequest true "Enrollment information"
// @Success 201 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or inactive student/course"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Student or course not found"
// @Failure 409 {object} dto.ErrorResponse "Already enrolled or course full"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [post]
func (c *EnrollmentController) EnrollStudent(ctx *gin.Context) {
	var req dto.CreateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionCreate, auth.Resource{Kind: auth.ResourceEnrollment}) {
		return
	}

	enrollment, err := c.enrollmentService.EnrollStudent(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// GetEnrollmentByID retrieves an enrollment by ID
// @Summary Get enrollment by ID
// @Description Retrieves a specific enrollment with student and course details
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [get]
func (c *EnrollmentController) GetEnrollmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// GetAllEnrollments retrieves enrollments with pagination and filtering
// @Summary List enrollments
// @Description Retrieves a paginated list of enrollments with optional filters
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param studentId query int false "Filter by student ID"
// @Param courseId query int false "Filter by course ID"
// @Param status query string false "Filter by status" Enums(ENROLLED, DROPPED, COMPLETED, FAILED)
// @Param isActive query bool false "Filter by active flag"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentListResponse} "Enrollments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments [get]
func (c *EnrollmentController) GetAllEnrollments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.EnrollmentFilter{
		StudentID: queryInt64(ctx, "studentId"),
		CourseID:  queryInt64(ctx, "courseId"),
		Status:    ctx.Query("status"),
		IsActive:  queryBool(ctx, "isActive"),
		SortBy:    ctx.Query("sortBy"),
		SortOrder: ctx.Query("sortOrder"),
	}

	enrollments, totalItems, err := c.enrollmentService.GetAllEnrollments(ctx, page, size, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.EnrollmentListResponse{
		Enrollments: make([]dto.EnrollmentResponse, 0, len(enrollments)),
		Pagination:  helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, enrollment := range enrollments {
		response.Enrollments = append(response.Enrollments, dto.FromEnrollment(enrollment))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateEnrollmentStatus transitions an enrollment to a new status
// @Summary Update enrollment status
// @Description Transitions an enrollment; terminal statuses free the course slot
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Param request body dto.UpdateEnrollmentRequest true "New status and optional final grade"
// @Success 200 {object} dto.APIResponse{data=dto.EnrollmentResponse} "Enrollment updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [put]
func (c *EnrollmentController) UpdateEnrollmentStatus(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}

	var req dto.UpdateEnrollmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid enrollment data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceEnrollment}) {
		return
	}

	enrollment, err := c.enrollmentService.UpdateEnrollmentStatus(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromEnrollment(enrollment)))
}

// DeleteEnrollment removes an enrollment
// @Summary Delete an enrollment
// @Description Removes an enrollment and, through cascades, its grades and attendance
// @Tags enrollments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Enrollment ID"
// @Success 204 "Enrollment deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid enrollment ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /enrollments/{id} [delete]
func (c *EnrollmentController) DeleteEnrollment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "enrollment")
	if !ok {
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, auth.Resource{Kind: auth.ResourceEnrollment}) {
		return
	}

	if err := c.enrollmentService.DeleteEnrollment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
