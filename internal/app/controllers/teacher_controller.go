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

// TeacherController handles teacher operations
type TeacherController struct {
	teacherService   *services.TeacherService
	principalService *services.PrincipalService
}

// NewTeacherController creates a new TeacherController
func NewTeacherController(teacherService *services.TeacherService, principalService *services.PrincipalService) *TeacherController {
	return &TeacherController{
		teacherService:   teacherService,
		principalService: principalService,
	}
}

// CreateTeacher handles teacher creation
// @Summary Create a new teacher
// @Description Creates a teacher together with its user account
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateTeacherRequest true "Teacher information"
// @Success 201 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Employee ID or email already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers [post]
func (c *TeacherController) CreateTeacher(ctx *gin.Context) {
	var req dto.CreateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid teacher data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionCreate, auth.Resource{Kind: auth.ResourceTeacher, DepartmentID: req.DepartmentID}) {
		return
	}

	teacher, err := c.teacherService.CreateTeacher(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromTeacher(teacher)))
}

// GetTeacherByID retrieves a teacher by ID
// @Summary Get teacher by ID
// @Description Retrieves a specific teacher with its user and department details
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{id} [get]
func (c *TeacherController) GetTeacherByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "teacher")
	if !ok {
		return
	}

	teacher, err := c.teacherService.GetTeacherByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTeacher(teacher)))
}

// GetAllTeachers retrieves teachers with pagination and filtering
// @Summary List teachers
// @Description Retrieves a paginated list of teachers with optional filters
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param departmentId query int false "Filter by department ID"
// @Param qualification query string false "Filter by qualification" Enums(BSC, MSC, PHD, BED, MED)
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Search in name, email and employee ID"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.TeacherListResponse} "Teachers retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers [get]
func (c *TeacherController) GetAllTeachers(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.TeacherFilter{
		DepartmentID:  queryInt64(ctx, "departmentId"),
		Qualification: ctx.Query("qualification"),
		IsActive:      queryBool(ctx, "isActive"),
		Search:        ctx.Query("search"),
		SortBy:        ctx.Query("sortBy"),
		SortOrder:     ctx.Query("sortOrder"),
	}

	teachers, totalItems, err := c.teacherService.GetAllTeachers(ctx, page, size, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.TeacherListResponse{
		Teachers:   make([]dto.TeacherResponse, 0, len(teachers)),
		Pagination: helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, teacher := range teachers {
		response.Teachers = append(response.Teachers, dto.FromTeacher(teacher))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateTeacher updates an existing teacher
// @Summary Update a teacher
// @Description Updates a teacher's mutable fields and the linked user name
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Param request body dto.UpdateTeacherRequest true "Updated teacher information"
// @Success 200 {object} dto.APIResponse{data=dto.TeacherResponse} "Teacher updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher or department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{id} [put]
func (c *TeacherController) UpdateTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "teacher")
	if !ok {
		return
	}

	var req dto.UpdateTeacherRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid teacher data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	existing, err := c.teacherService.GetTeacherByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceTeacher, DepartmentID: existing.DepartmentID}) {
		return
	}

	teacher, err := c.teacherService.UpdateTeacher(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromTeacher(teacher)))
}

// DeleteTeacher deactivates a teacher
// @Summary Delete a teacher
// @Description Marks a teacher and its user account inactive
// @Tags teachers
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Teacher ID"
// @Success 204 "Teacher deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid teacher ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /teachers/{id} [delete]
func (c *TeacherController) DeleteTeacher(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "teacher")
	if !ok {
		return
	}

	existing, err := c.teacherService.GetTeacherByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, auth.Resource{Kind: auth.ResourceTeacher, DepartmentID: existing.DepartmentID}) {
		return
	}

	if err := c.teacherService.DeleteTeacher(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
