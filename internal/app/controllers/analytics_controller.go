package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/services"
	"github.com/campusadmin/api/internal/middleware"
)

// AnalyticsController serves the dashboard and per-student reports
type AnalyticsController struct {
	analyticsService *services.AnalyticsService
}

// NewAnalyticsController creates a new AnalyticsController
func NewAnalyticsController(analyticsService *services.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{
		analyticsService: analyticsService,
	}
}

// GetDashboard returns the aggregate dashboard figures
// @Summary Dashboard analytics
// @Description Returns active entity counts, distribution breakdowns, top courses and the global attendance rate
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.APIResponse{data=dto.DashboardResponse} "Dashboard retrieved successfully"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /analytics/dashboard [get]
func (c *AnalyticsController) GetDashboard(ctx *gin.Context) {
	dashboard, err := c.analyticsService.GetDashboard(ctx)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(dashboard))
}

// GetStudentPerformance returns the per-student performance report
// @Summary Student performance report
// @Description Returns per-course averages, attendance rates, GPA and enrollment totals for a student
// @Tags analytics
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "Student ID"
// @Success 200 {object} dto.APIResponse{data=dto.PerformanceReportResponse} "Report retrieved successfully"
// @Failure 400 {object} dto.ErrorResponse "Invalid student ID"
// @Failure 401 {object} dto.ErrorResponse "Unauthorized - Invalid or missing token"
// @Failure 404 {object} dto.ErrorResponse "Student not found"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /students/{id}/performance [get]
func (c *AnalyticsController) GetStudentPerformance(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "student")
	if !ok {
		return
	}

	report, err := c.analyticsService.GetStudentPerformance(ctx, id)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, dto.NewSuccessResponse(report))
}
