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

// GradeController handles grade operations
type GradeController struct {
	gradeService      *services.GradeService
	enrollmentService *services.EnrollmentService
	principalService  *services.PrincipalService
}

// NewGradeController creates a new GradeController
func NewGradeController(gradeService *services.GradeService, enrollmentService *services.EnrollmentService, principalService *services.PrincipalService) *GradeController {
	return &GradeController{
		gradeService:      gradeService,
		enrollmentService: enrollmentService,
		principalService:  principalService,
	}
}

// gradeResource builds the access-control target for a grade, carrying
// the teacher of record on the enrollment's course
func gradeResource(g *models.Grade) auth.Resource {
	res := auth.Resource{Kind: auth.ResourceGrade}
	if g != nil && g.Enrollment != nil && g.Enrollment.Course != nil {
		res.CourseTeacherID = g.Enrollment.Course.TeacherID
	}
	return res
}

// CreateGrade records a new assessment score
// @Summary Create a grade
// @Description Records a scored assessment; percentage and letter grade are derived server side
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateGradeRequest true "Grade information"
// @Success 201 {object} dto.APIResponse{data=dto.GradeResponse} "Grade created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data or points"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Enrollment not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [post]
func (c *GradeController) CreateGrade(ctx *gin.Context) {
	var req dto.CreateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	enrollment, err := c.enrollmentService.GetEnrollmentByID(ctx, req.EnrollmentID)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	res := auth.Resource{Kind: auth.ResourceGrade}
	if enrollment.Course != nil {
		res.CourseTeacherID = enrollment.Course.TeacherID
	}
	if !authorize(ctx, c.principalService, auth.ActionCreate, res) {
		return
	}

	grade, err := c.gradeService.CreateGrade(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromGrade(grade)))
}

// GetGradeByID retrieves a grade by ID
// @Summary Get grade by ID
// @Description Retrieves a specific grade with enrollment context
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [get]
func (c *GradeController) GetGradeByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "grade")
	if !ok {
		return
	}

	grade, err := c.gradeService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrade(grade)))
}

// GetAllGrades retrieves grades with pagination and filtering
// @Summary List grades
// @Description Retrieves a paginated list of grades with optional filters
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param enrollmentId query int false "Filter by enrollment ID"
// @Param assessmentType query string false "Filter by assessment type" Enums(QUIZ, ASSIGNMENT, MIDTERM, FINAL, PROJECT, PRESENTATION)
// @Param dateFrom query string false "Assessment date lower bound (YYYY-MM-DD)"
// @Param dateTo query string false "Assessment date upper bound (YYYY-MM-DD)"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.GradeListResponse} "Grades retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades [get]
func (c *GradeController) GetAllGrades(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.GradeFilter{
		EnrollmentID:   queryInt64(ctx, "enrollmentId"),
		AssessmentType: ctx.Query("assessmentType"),
		DateFrom:       helpers.ParseDateParam(ctx.Query("dateFrom")),
		DateTo:         helpers.ParseDateParam(ctx.Query("dateTo")),
		SortBy:         ctx.Query("sortBy"),
		SortOrder:      ctx.Query("sortOrder"),
	}

	grades, totalItems, err := c.gradeService.GetAllGrades(ctx, page, size, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.GradeListResponse{
		Grades:     make([]dto.GradeResponse, 0, len(grades)),
		Pagination: helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, grade := range grades {
		response.Grades = append(response.Grades, dto.FromGrade(grade))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateGrade rewrites a grade's points
// @Summary Update a grade
// @Description Updates a grade's points; derived fields are recomputed
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Param request body dto.UpdateGradeRequest true "Updated grade information"
// @Success 200 {object} dto.APIResponse{data=dto.GradeResponse} "Grade updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format or points"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [put]
func (c *GradeController) UpdateGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "grade")
	if !ok {
		return
	}

	var req dto.UpdateGradeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid grade data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	existing, err := c.gradeService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, gradeResource(existing)) {
		return
	}

	grade, err := c.gradeService.UpdateGrade(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromGrade(grade)))
}

// DeleteGrade removes a grade
// @Summary Delete a grade
// @Description Removes a grade permanently
// @Tags grades
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Grade ID"
// @Success 204 "Grade deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid grade ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - Not the course teacher"
// @Failure 404 {object} dto.ErrorResponse "Grade not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /grades/{id} [delete]
func (c *GradeController) DeleteGrade(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "grade")
	if !ok {
		return
	}

	existing, err := c.gradeService.GetGradeByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, gradeResource(existing)) {
		return
	}

	if err := c.gradeService.DeleteGrade(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
