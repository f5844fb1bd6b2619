package api

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/service"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// dateLayout is the calendar-date format used by every request DTO.
const dateLayout = "2006-01-02"

type PlanHandler struct {
	planService service.PlanService
}

func NewPlanHandler(planService service.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// --- DTOs ---

// PlanRequest is the body of the preview and create endpoints.
type PlanRequest struct {
	Name        string                     `json:"name"`
	GoalTime    string                     `json:"goalTime" binding:"required"` // "H:MM:SS"
	RaceDate    string                     `json:"raceDate" binding:"required"` // "2006-01-02"
	StartDate   string                     `json:"startDate"`                   // optional, defaults to today
	Preferences domain.TrainingPreferences `json:"preferences"`
}

func (r PlanRequest) toInput() (service.PlanInput, error) {
	race, err := parseDate("raceDate", r.RaceDate)
	if err != nil {
		return service.PlanInput{}, err
	}
	var start time.Time
	if r.StartDate != "" {
		if start, err = parseDate("startDate", r.StartDate); err != nil {
			return service.PlanInput{}, err
		}
	}
	return service.PlanInput{
		Name:        r.Name,
		GoalTime:    r.GoalTime,
		RaceDate:    race,
		StartDate:   start,
		Preferences: r.Preferences,
	}, nil
}

// PlanResponse pairs a stored plan with its workouts.
type PlanResponse struct {
	Plan     *domain.TrainingPlan `json:"plan"`
	Workouts []domain.Workout     `json:"workouts"`
}

type PacesRequest struct {
	GoalTime    string                     `json:"goalTime" binding:"required"`
	Preferences domain.TrainingPreferences `json:"preferences"`
}

type AssessRequest struct {
	StartDate string `json:"startDate"`
	RaceDate  string `json:"raceDate" binding:"required"`
}

type AnalyzeRequest struct {
	WorkoutDays []int                        `json:"workoutDays" binding:"required"`
	Week        int                          `json:"week" binding:"required"`
	Preferences domain.AssignmentPreferences `json:"preferences"`
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, domain.NewValidationError(field, "%q is not a date in YYYY-MM-DD format", value)
	}
	return t, nil
}

// --- Handlers ---

// PreviewPlan godoc
// @Summary Generate a plan without saving it
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planRequest body PlanRequest true "Goal, race date and preferences"
// @Success 200 {object} domain.AdaptedWorkoutPlan
// @Failure 400 {object} gin.H "Invalid input"
// @Router /plans/preview [post]
func (h *PlanHandler) PreviewPlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, err := h.planService.Preview(c.Request.Context(), ownerID, in)
	if err != nil {
		abortWithServiceError(c, err, "Failed to generate plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

// CreatePlan godoc
// @Summary Generate and save a plan
// @Tags Plans
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param planRequest body PlanRequest true "Goal, race date and preferences"
// @Success 201 {object} PlanResponse
// @Failure 400 {object} gin.H "Invalid input"
// @Failure 422 {object} gin.H "Race is too close for a plan"
// @Router /plans [post]
func (h *PlanHandler) CreatePlan(c *gin.Context) {
	var req PlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	in, err := req.toInput()
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}

	plan, workouts, err := h.planService.Create(c.Request.Context(), ownerID, in)
	if err != nil {
		abortWithServiceError(c, err, "Failed to create plan.")
		return
	}
	c.JSON(http.StatusCreated, PlanResponse{Plan: plan, Workouts: workouts})
}

// ListPlans returns the runner's plans, newest first.
func (h *PlanHandler) ListPlans(c *gin.Context) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return
	}
	plans, err := h.planService.List(c.Request.Context(), ownerID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve plans.")
		return
	}
	if plans == nil {
		c.JSON(http.StatusOK, []domain.TrainingPlan{}) // Return empty JSON array, not null
		return
	}
	c.JSON(http.StatusOK, plans)
}

func (h *PlanHandler) GetPlan(c *gin.Context) {
	ownerID, planID, ok := h.ownerAndPlanID(c)
	if !ok {
		return
	}
	plan, err := h.planService.Get(c.Request.Context(), ownerID, planID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve plan.")
		return
	}
	c.JSON(http.StatusOK, plan)
}

func (h *PlanHandler) GetPlanWorkouts(c *gin.Context) {
	ownerID, planID, ok := h.ownerAndPlanID(c)
	if !ok {
		return
	}
	workouts, err := h.planService.Workouts(c.Request.Context(), ownerID, planID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to retrieve workouts.")
		return
	}
	if workouts == nil {
		workouts = []domain.Workout{}
	}
	c.JSON(http.StatusOK, workouts)
}

func (h *PlanHandler) DeletePlan(c *gin.Context) {
	ownerID, planID, ok := h.ownerAndPlanID(c)
	if !ok {
		return
	}
	if err := h.planService.Delete(c.Request.Context(), ownerID, planID); err != nil {
		abortWithServiceError(c, err, "Failed to delete plan.")
		return
	}
	c.Status(http.StatusNoContent)
}

// ExportPlan godoc
// @Summary Export a plan as JSON to object storage
// @Description Uploads the plan and its workouts and returns a temporary download URL.
// @Tags Plans
// @Produce json
// @Security BearerAuth
// @Param planId path string true "Plan ID"
// @Success 201 {object} service.ExportResult
// @Failure 404 {object} gin.H "Plan not found"
// @Router /plans/{planId}/export [post]
func (h *PlanHandler) ExportPlan(c *gin.Context) {
	ownerID, planID, ok := h.ownerAndPlanID(c)
	if !ok {
		return
	}
	res, err := h.planService.Export(c.Request.Context(), ownerID, planID)
	if err != nil {
		abortWithServiceError(c, err, "Failed to export plan.")
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (h *PlanHandler) CalculatePaces(c *gin.Context) {
	var req PacesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	report, err := h.planService.Paces(req.GoalTime, req.Preferences)
	if err != nil {
		abortWithServiceError(c, err, "Failed to calculate paces.")
		return
	}
	c.JSON(http.StatusOK, report)
}

func (h *PlanHandler) AssessTimeline(c *gin.Context) {
	var req AssessRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	race, err := parseDate("raceDate", req.RaceDate)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, err.Error())
		return
	}
	var start time.Time
	if req.StartDate != "" {
		if start, err = parseDate("startDate", req.StartDate); err != nil {
			abortWithError(c, http.StatusBadRequest, err.Error())
			return
		}
	}
	c.JSON(http.StatusOK, h.planService.AssessTimeline(start, race))
}

func (h *PlanHandler) AnalyzeAssignment(c *gin.Context) {
	var req AnalyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}
	analysis, err := h.planService.AnalyzeAssignment(req.WorkoutDays, req.Week, req.Preferences)
	if err != nil {
		abortWithServiceError(c, err, "Failed to analyze workout days.")
		return
	}
	c.JSON(http.StatusOK, analysis)
}

// ownerAndPlanID reads the token subject and the :planId path parameter,
// aborting the request when either is unusable.
func (h *PlanHandler) ownerAndPlanID(c *gin.Context) (string, primitive.ObjectID, bool) {
	ownerID, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify runner from token.")
		return "", primitive.NilObjectID, false
	}
	planID, err := primitive.ObjectIDFromHex(c.Param("planId"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid plan ID format in URL path.")
		return "", primitive.NilObjectID, false
	}
	return ownerID, planID, true
}
