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

// CourseController handles course operations
type CourseController struct {
	courseService    *services.CourseService
	principalService *services.PrincipalService
}

// NewCourseController creates a new CourseController
func NewCourseController(courseService *services.CourseService, principalService *services.PrincipalService) *CourseController {
	return &CourseController{
		courseService:    courseService,
		principalService: principalService,
	}
}

// CreateCourse handles course creation
// @Summary Create a new course
// @Description Creates a course offering for a semester and year
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreateCourseRequest true "Course information"
// @Success 201 {object} dto.APIResponse{data=dto.CourseResponse} "Course created successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request data"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 403 {object} dto.ErrorResponse "Forbidden - User does not have permission"
// @Failure 404 {object} dto.ErrorResponse "Department or teacher not found"
// @Failure 409 {object} dto.ErrorResponse "Course already exists for the semester and year"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [post]
func (c *CourseController) CreateCourse(ctx *gin.Context) {
	var req dto.CreateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionCreate, auth.Resource{Kind: auth.ResourceCourse, DepartmentID: req.DepartmentID}) {
		return
	}

	course, err := c.courseService.CreateCourse(ctx, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusCreated, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// GetCourseByID retrieves a course by ID
// @Summary Get course by ID
// @Description Retrieves a specific course with capacity figures
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [get]
func (c *CourseController) GetCourseByID(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	course, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// GetAllCourses retrieves courses with pagination and filtering
// @Summary List courses
// @Description Retrieves a paginated list of courses with optional filters
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number (1-based)" default(1)
// @Param size query int false "Page size" default(20)
// @Param departmentId query int false "Filter by department ID"
// @Param teacherId query int false "Filter by teacher ID"
// @Param semester query string false "Filter by semester" Enums(FALL, SPRING, SUMMER)
// @Param year query int false "Filter by year"
// @Param isActive query bool false "Filter by active flag"
// @Param search query string false "Search in course code and name"
// @Param sortBy query string false "Sort field"
// @Param sortOrder query string false "Sort direction" Enums(asc, desc)
// @Success 200 {object} dto.APIResponse{data=dto.CourseListResponse} "Courses retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses [get]
func (c *CourseController) GetAllCourses(ctx *gin.Context) {
	page, size := helpers.ParsePaginationParams(ctx)

	filter := dto.CourseFilter{
		DepartmentID: queryInt64(ctx, "departmentId"),
		TeacherID:    queryInt64(ctx, "teacherId"),
		Semester:     ctx.Query("semester"),
		Year:         queryInt(ctx, "year"),
		IsActive:     queryBool(ctx, "isActive"),
		Search:       ctx.Query("search"),
		SortBy:       ctx.Query("sortBy"),
		SortOrder:    ctx.Query("sortOrder"),
	}

	courses, totalItems, err := c.courseService.GetAllCourses(ctx, page, size, filter)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	response := dto.CourseListResponse{
		Courses:    make([]dto.CourseResponse, 0, len(courses)),
		Pagination: helpers.NewPaginationInfo(totalItems, page, size),
	}
	for _, course := range courses {
		response.Courses = append(response.Courses, dto.FromCourse(course))
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}

// UpdateCourse updates an existing course
// @Summary Update a course
// @Description Updates a course's mutable fields; capacity cannot drop below current enrollment
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Param request body dto.UpdateCourseRequest true "Updated course information"
// @Success 200 {object} dto.APIResponse{data=dto.CourseResponse} "Course updated successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid request format"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course or teacher not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [put]
func (c *CourseController) UpdateCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	var req dto.UpdateCourseRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid course data")
		errorDetail = errorDetail.WithDetails(err.Error())
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return
	}

	existing, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionUpdate, auth.Resource{Kind: auth.ResourceCourse, DepartmentID: existing.DepartmentID}) {
		return
	}

	course, err := c.courseService.UpdateCourse(ctx, id, req)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dto.FromCourse(course)))
}

// DeleteCourse deactivates a course
// @Summary Delete a course
// @Description Marks a course inactive, preserving enrollment history
// @Tags courses
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Course ID"
// @Success 204 "Course deleted successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid course ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized"
// @Failure 403 {object} dto.ErrorResponse "Forbidden"
// @Failure 404 {object} dto.ErrorResponse "Course not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /courses/{id} [delete]
func (c *CourseController) DeleteCourse(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "course")
	if !ok {
		return
	}

	existing, err := c.courseService.GetCourseByID(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	if !authorize(ctx, c.principalService, auth.ActionDelete, auth.Resource{Kind: auth.ResourceCourse, DepartmentID: existing.DepartmentID}) {
		return
	}

	if err := c.courseService.DeleteCourse(ctx, id); err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.Status(http.StatusNoContent)
}
