package api

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/service"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// TemplateHandler serves week overrides and rest days.
type TemplateHandler struct {
	templateService service.TemplateService
}

// NewTemplateHandler creates a new TemplateHandler.
func NewTemplateHandler(templateService service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

// --- DTOs ---

type WeekPatternRequest struct {
	Pattern     []domain.DayPattern          `json:"pattern" binding:"required"`
	Preferences domain.AssignmentPreferences `json:"preferences"`
}

type RestDaysRequest struct {
	RestDays    []int                        `json:"restDays"`    // empty clears
	WorkoutDays []int                        `json:"workoutDays"` // optional, enables conflicts and recommendations
	Preferences domain.AssignmentPreferences `json:"preferences"`
}

// --- Handlers ---

// GetTemplates returns the runner's overrides and rest days.
func (h *TemplateHandler) GetTemplates(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	set, err := h.templateService.Get(c.Request.Context(), ownerID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve templates.")
		return
	}
	c.JSON(http.StatusOK, set)
}

// SetWeekPattern godoc
// @Summary Override the workout pattern of one plan week
// @Tags Templates
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param week path int true "Plan week 1-14"
// @Param weekPatternRequest body WeekPatternRequest true "Day to workout type pattern"
// @Success 200 {object} domain.WeekAssignment "Quality analysis of the saved pattern"
// @Failure 400 {object} gin.H "Invalid week or pattern"
// @Router /templates/weeks/{week} [put]
func (h *TemplateHandler) SetWeekPattern(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}
	var req WeekPatternRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	analysis, err := h.templateService.SetWeek(c.Request.Context(), ownerID, week, req.Pattern, req.Preferences)
	if err != nil {
		abortWithServiceError(c, err, "Failed to save week template.")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

func (h *TemplateHandler) ClearWeekPattern(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	week, ok := weekParam(c)
	if !ok {
		return
	}
	if err := h.templateService.ClearWeek(c.Request.Context(), ownerID, week); err != nil {
		abortWithServiceError(c, err, "Failed to clear week template.")
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *TemplateHandler) SetRestDays(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	var req RestDaysRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	report, err := h.templateService.SetRestDays(c.Request.Context(), ownerID, req.RestDays, req.WorkoutDays, req.Preferences)
	if err != nil {
		abortWithServiceError(c, err, "Failed to save rest days.")
		return
	}
	c.JSON(http.StatusOK, report)
}

func weekParam(c *gin.Context) (int, bool) {
	week, err := strconv.Atoi(c.Param("week"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Week must be a number.")
		return 0, false
	}
	return week, true
}
