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

// DepartmentController handles department operations
type DepartmentController struct {
	departmentService *services.DepartmentService
	principalService  *services.PrincipalService
}

// NewDepartmentController creates a new DepartmentController
func NewDepartmentController(departmentService *services.DepartmentService, principalService *services.PrincipalService) *DepartmentController {
	return &DepartmentController{
		departmentService: departmentService,
		principalService:  principalService,
	}
}

// CreateDepartment handles department creation
// @Summary Create a new department
// @Description Creates a new department with the provided information
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateDepartmentRequest true "Department information"
// @Success 201 {object} dto.APIResponse{data=dto.DepartmentResponse} "Department created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 409 {object} dto.ErrorResponse "Department already exists"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [post]
func (c *DepartmentController) CreateDepartment(ctx *gin.Context) {
	var req dto.CreateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionCreate, auth.Resource{Kind: auth.ResourceDepartment}) {
		return
	}

	department := &models.Department{
		Name:             req.Name,
		Code:             req.Code,
		Description:      req.Description,
		HeadOfDepartment: req.HeadOfDepartment,
	}

	if err := c.departmentService.CreateDepartment(ctx, department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromDepartment(department)))
}

// GetDepartmentByID retrieves a department by ID
// @Summary Get department by ID
// @Description Retrieves a specific department with its aggregate counts
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse} "Department retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [get]
func (c *DepartmentController) GetDepartmentByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	department, err := c.departmentService.GetDepartmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDepartment(department)))
}

// GetAllDepartments retrieves departments with pagination
// @Summary List departments
// @Description Retrieves a paginated list of departments, optionally filtered by a search term
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param search query string false "Search in name and code"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentListResponse} "Departments retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments [get]
func (c *DepartmentController) GetAllDepartments(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)
	search := ctx.Query("search")

	departments, totalItems, err := c.departmentService.GetAllDepartments(ctx, page, size, search)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.DepartmentListResponse{
		Departments: make([]dto.DepartmentResponse, 0, len(departments)),
		Pagination:  helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, department := range departments {
		response.Departments = append(response.Departments, dto.FromDepartment(department))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateDepartment updates an existing department
// @Summary Update a department
// @Description Updates an existing department with the provided information
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Param request body dto.UpdateDepartmentRequest true "Updated department information"
// @Success 200 {object} dto.APIResponse{data=dto.DepartmentResponse} "Department updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department name or code already taken"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [put]
func (c *DepartmentController) UpdateDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	var req dto.UpdateDepartmentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid department data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceDepartment, DepartmentID: id}) {
		return
	}

	department := &models.Department{
		ID:               id,
		Name:             req.Name,
		Code:             req.Code,
		Description:      req.Description,
		HeadOfDepartment: req.HeadOfDepartment,
	}

	if err := c.departmentService.UpdateDepartment(ctx, department); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	updated, err := c.departmentService.GetDepartmentByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromDepartment(updated)))
}

// DeleteDepartment deletes a department
// @Summary Delete a department
// @Description Deletes a department that has no associated teachers, students or courses
// @Tags departments
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Department ID"
// @Success 204 "Department deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid department ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Department not found"
// @Failure 409 {object} dto.ErrorResponse "Department still has related records"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /departments/{id} [delete]
func (c *DepartmentController) DeleteDepartment(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "department")
	if !ok {
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, auth.Resource{Kind: auth.ResourceDepartment, DepartmentID: id}) {
		return
	}

	if err := c.departmentService.DeleteDepartment(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
