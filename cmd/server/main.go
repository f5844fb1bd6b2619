package main

import (
	"alcyxob/marathon-planner/internal/api"
	"alcyxob/marathon-planner/internal/config"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/logger"
	"alcyxob/marathon-planner/internal/repository/mongo"
	"alcyxob/marathon-planner/internal/service"
	"alcyxob/marathon-planner/internal/storage"
	"alcyxob/marathon-planner/internal/template"
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
)

// @title Marathon Planner API
// @version 1.0
// @description Generates, stores and exports 14-week marathon training plans.
// @BasePath /api/v1
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	logger.Info("Starting Marathon Planner Server...")

	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		logger.Error("Could not load config: %v", err)
		os.Exit(1)
	}
	logger.SetDebug(cfg.Log.Debug)
	if cfg.JWT.Secret == "" {
		logger.Error("jwt.secret (JWT_SECRET) must be set")
		os.Exit(1)
	}
	logger.Info("Configuration loaded.")

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(cfg.Database.URI)
	if err != nil {
		logger.Error("Could not connect to MongoDB: %v", err)
		os.Exit(1)
	}
	defer func() {
		logger.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(dbClient); err != nil {
			logger.Error("Failed to disconnect MongoDB: %v", err)
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	logger.Info("Database connection established.")

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		mongo.EnsureIndexes(ctx, appDB)
		logger.Info("Index creation process completed.")
	}()

	// --- Initialize Storage ---
	storageCtx, storageCancel := context.WithTimeout(context.Background(), 10*time.Second)
	fileStorage, err := storage.NewS3Storage(storageCtx, cfg.S3)
	storageCancel()
	if err != nil {
		logger.Error("Failed to initialize S3 storage: %v", err)
		os.Exit(1)
	}

	// --- Initialize Repositories ---
	trainingPlanRepo := mongo.NewMongoTrainingPlanRepository(appDB)
	workoutRepo := mongo.NewMongoWorkoutRepository(appDB)
	planExportRepo := mongo.NewMongoPlanExportRepository(appDB)
	weekTemplateRepo := mongo.NewMongoWeekTemplateRepository(appDB)

	// --- Initialize Services ---
	templateService := service.NewTemplateService(weekTemplateRepo)
	planService := service.NewPlanService(
		trainingPlanRepo,
		workoutRepo,
		planExportRepo,
		template.NewWeekTemplateManager(weekTemplateRepo),
		fileStorage,
		plannerDefaults(cfg.Planner),
	)

	// --- Initialize Gin Engine ---
	if !cfg.Log.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery(), api.RequestLogger())
	api.SetupRoutes(router, cfg.JWT.Secret, planService, templateService)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second, // exports upload to S3 inside the request
		IdleTimeout:  120 * time.Second,
	}

	logger.Info("Server starting on %s", cfg.Server.Address)

	// --- Graceful Shutdown ---
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("ListenAndServe error: %v", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("Server forced to shutdown: %v", err)
		return
	}

	logger.Info("Server exiting.")
}

func plannerDefaults(cfg config.PlannerConfig) service.PlanDefaults {
	return service.PlanDefaults{
		DistanceUnit:    domain.DistanceUnit(cfg.DistanceUnit),
		RaceStartTime:   cfg.RaceStartTime,
		WorkoutDays:     cfg.DefaultWorkoutDays,
		ExportURLExpiry: cfg.ExportURLExpiry,
	}
}
