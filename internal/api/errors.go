package api

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/logger"
	"alcyxob/marathon-planner/internal/service"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// abortWithServiceError maps service and engine errors to HTTP status codes.
// Unknown errors are logged and hidden behind fallback.
func abortWithServiceError(c *gin.Context, err error, fallback string) {
	switch {
	case domain.IsUserCorrectable(err):
		abortWithError(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrPlanNotFound):
		abortWithError(c, http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrPlanAccessDenied):
		abortWithError(c, http.StatusForbidden, err.Error())
	case errors.Is(err, service.ErrTimelineNotViable):
		abortWithError(c, http.StatusUnprocessableEntity, err.Error())
	case errors.Is(err, service.ErrOwnerRequired):
		abortWithError(c, http.StatusUnauthorized, err.Error())
	default:
		logger.Error("%s: %v", fallback, err)
		abortWithError(c, http.StatusInternalServerError, fallback)
	}
}
