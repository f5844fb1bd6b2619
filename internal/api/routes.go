package api

import (
	"alcyxob/marathon-planner/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	planService service.PlanService,
	templateService service.TemplateService,
) {
	planHandler := NewPlanHandler(planService)
	templateHandler := NewTemplateHandler(templateService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr})
		})

		// --- Plan Routes ---
		planGroup := protected.Group("/plans")
		{
			planGroup.POST("/preview", planHandler.PreviewPlan)
			planGroup.POST("", planHandler.CreatePlan)
			planGroup.GET("", planHandler.ListPlans)
			planGroup.GET("/:planId", planHandler.GetPlan)
			planGroup.GET("/:planId/workouts", planHandler.GetPlanWorkouts)
			planGroup.DELETE("/:planId", planHandler.DeletePlan)
			planGroup.POST("/:planId/export", planHandler.ExportPlan)
		}

		// --- Engine Routes (nothing stored) ---
		protected.POST("/paces", planHandler.CalculatePaces)
		protected.POST("/timeline/assess", planHandler.AssessTimeline)
		protected.POST("/assignments/analyze", planHandler.AnalyzeAssignment)

		// --- Template Routes ---
		templateGroup := protected.Group("/templates")
		{
			templateGroup.GET("", templateHandler.GetTemplates)
			templateGroup.PUT("/weeks/:week", templateHandler.SetWeekPattern)
			templateGroup.DELETE("/weeks/:week", templateHandler.ClearWeekPattern)
			templateGroup.PUT("/rest-days", templateHandler.SetRestDays)
		}
	}
}
