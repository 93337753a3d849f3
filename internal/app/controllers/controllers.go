package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/campusadmin/api/internal/app/auth"
	"github.com/campusadmin/api/internal/app/models"
	"github.com/campusadmin/api/internal/app/models/dto"
	"github.com/campusadmin/api/internal/app/services"
	"github.com/campusadmin/api/internal/middleware"
	"github.com/campusadmin/api/internal/pkg/apperrors"
)

// parseIDParam parses a path parameter as an int64 ID. On failure it
// writes the 400 response itself and reports false.
func parseIDParam(ctx *gin.Context, name, label string) (int64, bool) {
	idStr := ctx.Param(name)
	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || id <= 0 {
		errorDetail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid "+label+" ID")
		errorDetail = errorDetail.WithDetails(label + " ID must be a positive number")
		ctx.JSON(http.StatusBadRequest, dto.NewErrorResponse(errorDetail))
		return 0, false
	}
	return id, true
}

// principalFromContext resolves the identity the JWT middleware stored in
// the request context into an access-control principal
func principalFromContext(ctx *gin.Context, principals *services.PrincipalService) (auth.Principal, error) {
	userID := ctx.GetInt64(middleware.ContextUserID)
	if userID <= 0 {
		return auth.Anonymous(), apperrors.ErrPermissionDenied
	}

	email := ctx.GetString(middleware.ContextEmail)
	role := ctx.GetString(middleware.ContextRole)

	return principals.Resolve(ctx, userID, email, models.RoleType(role))
}

// authorize checks the caller against the access policy. On failure it
// writes the error response and reports false.
func authorize(ctx *gin.Context, principals *services.PrincipalService, action auth.Action, res auth.Resource) bool {
	principal, err := principalFromContext(ctx, principals)
	if err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}

	if err := auth.Authorize(principal, action, res); err != nil {
		middleware.HandleAPIError(ctx, err)
		return false
	}

	return true
}

// Optional query parameter parsers used by the list endpoints. Malformed
// values are treated as absent.

func queryInt64(ctx *gin.Context, name string) *int64 {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryInt(ctx *gin.Context, name string) *int {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil
	}
	return &parsed
}

func queryBool(ctx *gin.Context, name string) *bool {
	value := ctx.Query(name)
	if value == "" {
		return nil
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return nil
	}
	return &parsed
}
