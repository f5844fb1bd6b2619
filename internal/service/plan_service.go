package service

import (
	"alcyxob/marathon-planner/internal/assignment"
	"alcyxob/marathon-planner/internal/calendar"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/logger"
	"alcyxob/marathon-planner/internal/pace"
	"alcyxob/marathon-planner/internal/repository"
	"alcyxob/marathon-planner/internal/storage"
	"alcyxob/marathon-planner/internal/template"
	"alcyxob/marathon-planner/internal/timeline"
	"alcyxob/marathon-planner/internal/workout"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// --- Error Definitions ---
var (
	ErrPlanNotFound      = errors.New("training plan not found")
	ErrPlanAccessDenied  = errors.New("access denied to this training plan")
	ErrTimelineNotViable = errors.New("not enough time before race day for a training plan")
	ErrExportFailed      = errors.New("plan export failed")
	ErrOwnerRequired     = errors.New("owner ID is required")
)

const (
	exportContentType     = "application/json"
	defaultRaceStartClock = "07:00"
)

// PlanDefaults fill in what a plan request leaves out.
type PlanDefaults struct {
	DistanceUnit    domain.DistanceUnit
	RaceStartTime   string
	WorkoutDays     []int
	ExportURLExpiry time.Duration
}

// PlanInput is a request to build a plan.
type PlanInput struct {
	Name        string
	GoalTime    string    // "H:MM:SS"
	RaceDate    time.Time // required
	StartDate   time.Time // zero means today
	Preferences domain.TrainingPreferences
}

// PaceReport is a pace set plus its display strings in the runner's unit.
type PaceReport struct {
	GoalTime  domain.MarathonTime `json:"goalTime"`
	Paces     domain.PaceSet      `json:"paces"`
	Formatted map[string]string   `json:"formatted"`
}

// ExportResult describes an uploaded export.
type ExportResult struct {
	Export      domain.PlanExport `json:"export"`
	DownloadURL string            `json:"downloadUrl"`
	ExpiresAt   time.Time         `json:"expiresAt"`
}

// planExportDocument is the JSON written to object storage.
type planExportDocument struct {
	Plan       domain.TrainingPlan `json:"plan"`
	Workouts   []domain.Workout    `json:"workouts"`
	ExportedAt time.Time           `json:"exportedAt"`
}

// --- Service Interface ---
type PlanService interface {
	// Engine only, nothing is stored.
	Preview(ctx context.Context, ownerID string, in PlanInput) (*domain.AdaptedWorkoutPlan, error)
	Paces(goalTime string, prefs domain.TrainingPreferences) (*PaceReport, error)
	AssessTimeline(start, race time.Time) domain.TimelineAssessment
	AnalyzeAssignment(days []int, week int, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error)

	// Stored plans
	Create(ctx context.Context, ownerID string, in PlanInput) (*domain.TrainingPlan, []domain.Workout, error)
	List(ctx context.Context, ownerID string) ([]domain.TrainingPlan, error)
	Get(ctx context.Context, ownerID string, planID primitive.ObjectID) (*domain.TrainingPlan, error)
	Workouts(ctx context.Context, ownerID string, planID primitive.ObjectID) ([]domain.Workout, error)
	Delete(ctx context.Context, ownerID string, planID primitive.ObjectID) error
	Export(ctx context.Context, ownerID string, planID primitive.ObjectID) (*ExportResult, error)
}

// --- Service Implementation ---

// planService implements the PlanService interface.
type planService struct {
	planRepo    repository.TrainingPlanRepository
	workoutRepo repository.WorkoutRepository
	exportRepo  repository.PlanExportRepository
	templates   *template.WeekTemplateManager
	fileStorage storage.FileStorage
	defaults    PlanDefaults
	now         func() time.Time
}

// NewPlanService creates a new instance of planService.
func NewPlanService(
	planRepo repository.TrainingPlanRepository,
	workoutRepo repository.WorkoutRepository,
	exportRepo repository.PlanExportRepository,
	templates *template.WeekTemplateManager,
	fileStorage storage.FileStorage,
	defaults PlanDefaults,
) PlanService {
	return &planService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		exportRepo:  exportRepo,
		templates:   templates,
		fileStorage: fileStorage,
		defaults:    defaults,
		now:         time.Now,
	}
}

// applyDefaults fills unit, workout days and race start time from config.
func (s *planService) applyDefaults(prefs domain.TrainingPreferences) domain.TrainingPreferences {
	if prefs.DistanceUnit == "" {
		prefs.DistanceUnit = s.defaults.DistanceUnit
	}
	if len(prefs.WorkoutDays) == 0 {
		prefs.WorkoutDays = append([]int(nil), s.defaults.WorkoutDays...)
	}
	if prefs.RaceStartTime == "" {
		prefs.RaceStartTime = s.defaults.RaceStartTime
		if prefs.RaceStartTime == "" {
			prefs.RaceStartTime = defaultRaceStartClock
		}
	}
	return prefs
}

// Preview builds the plan for the request without storing it. The owner's
// week templates apply when the window fits the full plan.
func (s *planService) Preview(ctx context.Context, ownerID string, in PlanInput) (*domain.AdaptedWorkoutPlan, error) {
	if in.RaceDate.IsZero() {
		return nil, domain.NewValidationError("raceDate", "race date is required")
	}
	prefs := s.applyDefaults(in.Preferences)
	start := in.StartDate
	if start.IsZero() {
		start = s.now()
	}

	var overrides map[int][]domain.DayPattern
	if ownerID != "" && s.templates != nil {
		var err error
		if overrides, err = s.templates.Overrides(ctx, ownerID); err != nil {
			return nil, err
		}
	}

	plan, err := timeline.Adapt(timeline.Params{
		StartDate:   calendar.DateOnly(start),
		RaceDate:    calendar.DateOnly(in.RaceDate),
		WorkoutDays: prefs.WorkoutDays,
		GoalTime:    in.GoalTime,
		Preferences: &prefs,
		Overrides:   overrides,
	})
	if err != nil {
		return nil, err
	}
	logger.Debug("Built %s plan for %s: %d workouts over %d weeks", plan.Strategy, ownerID, len(plan.Workouts), plan.Weeks)
	return &plan, nil
}

// Paces calculates the pace set for a goal time.
func (s *planService) Paces(goalTime string, prefs domain.TrainingPreferences) (*PaceReport, error) {
	prefs = s.applyDefaults(prefs)
	goal, err := pace.ParseMarathonTime(goalTime)
	if err != nil {
		return nil, err
	}
	paces, err := pace.Calculate(goal, &prefs)
	if err != nil {
		return nil, err
	}
	unit, format := prefs.Unit(), prefs.PaceFormat
	return &PaceReport{
		GoalTime: goal,
		Paces:    paces,
		Formatted: map[string]string{
			"marathon":    pace.FormatPaceAs(paces.MarathonPace, unit, format),
			"tempo":       pace.FormatPaceAs(paces.TempoPace, unit, format),
			"interval":    pace.FormatPaceAs(paces.IntervalPace, unit, format),
			"intervalRep": paces.IntervalRepTime.String() + " per 800m",
			"recovery":    paces.RecoveryTime.String(),
			"easy":        pace.FormatPaceAs(paces.EasyPace, unit, format),
			"longRun":     pace.FormatPaceAs(paces.LongRunPace, unit, format),
		},
	}, nil
}

// AssessTimeline reports the strategy for a window.
func (s *planService) AssessTimeline(start, race time.Time) domain.TimelineAssessment {
	if start.IsZero() {
		start = s.now()
	}
	return timeline.AssessWindow(start, race)
}

// AnalyzeAssignment assigns and scores one week for a weekday set.
func (s *planService) AnalyzeAssignment(days []int, week int, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error) {
	if err := workout.ValidateWeek(week); err != nil {
		return domain.WeekAssignment{}, err
	}
	return assignment.AssignWeek(days, week, prefs)
}

// Create builds the plan and stores its header and workouts.
func (s *planService) Create(ctx context.Context, ownerID string, in PlanInput) (*domain.TrainingPlan, []domain.Workout, error) {
	if ownerID == "" {
		return nil, nil, ErrOwnerRequired
	}
	built, err := s.Preview(ctx, ownerID, in)
	if err != nil {
		return nil, nil, err
	}
	if built.Strategy == domain.StrategyDefer || len(built.Workouts) == 0 {
		return nil, nil, ErrTimelineNotViable
	}

	goal, err := pace.ParseMarathonTime(in.GoalTime)
	if err != nil {
		return nil, nil, err
	}
	prefs := s.applyDefaults(in.Preferences)
	raceDate := calendar.DateOnly(in.RaceDate)
	name := in.Name
	if name == "" {
		name = fmt.Sprintf("Marathon %s - %s", raceDate.Format("2006-01-02"), goal)
	}

	plan := &domain.TrainingPlan{
		OwnerID:         ownerID,
		Name:            name,
		GoalTime:        goal,
		RaceDate:        raceDate,
		StartDate:       built.StartDate,
		EndDate:         built.Workouts[len(built.Workouts)-1].Date,
		TotalWeeks:      len(built.CurriculumWeeks),
		Strategy:        built.Strategy,
		Preferences:     prefs,
		Paces:           built.Paces,
		Summary:         built.Summary,
		Warnings:        built.Warnings,
		Recommendations: built.Recommendations,
	}
	planID, err := s.planRepo.Create(ctx, plan)
	if err != nil {
		return nil, nil, err
	}

	workouts := make([]domain.Workout, 0, len(built.Workouts))
	for i, sw := range built.Workouts {
		w := domain.FlattenWorkout(sw, i+1)
		w.TrainingPlanID = planID
		w.OwnerID = ownerID
		workouts = append(workouts, w)
	}
	if err := s.workoutRepo.CreateMany(ctx, workouts); err != nil {
		// Roll back the header.
		if delErr := s.planRepo.Delete(ctx, planID, ownerID); delErr != nil {
			logger.Error("Failed to remove plan %s after workout insert error: %v", planID.Hex(), delErr)
		}
		return nil, nil, fmt.Errorf("storing workouts: %w", err)
	}

	logger.Info("Created plan %s (%s, %d workouts) for %s", planID.Hex(), plan.Strategy, len(workouts), ownerID)
	return plan, workouts, nil
}

// List returns the owner's plans, newest first.
func (s *planService) List(ctx context.Context, ownerID string) ([]domain.TrainingPlan, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.planRepo.GetByOwner(ctx, ownerID)
}

// Get returns a plan header owned by ownerID.
func (s *planService) Get(ctx context.Context, ownerID string, planID primitive.ObjectID) (*domain.TrainingPlan, error) {
	plan, err := s.planRepo.GetByID(ctx, planID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if plan.OwnerID != ownerID {
		return nil, ErrPlanAccessDenied
	}
	return plan, nil
}

// Workouts returns the stored workouts of an owned plan.
func (s *planService) Workouts(ctx context.Context, ownerID string, planID primitive.ObjectID) ([]domain.Workout, error) {
	if _, err := s.Get(ctx, ownerID, planID); err != nil {
		return nil, err
	}
	return s.workoutRepo.GetByPlanID(ctx, planID)
}

// Delete removes a plan with its workouts and exports.
func (s *planService) Delete(ctx context.Context, ownerID string, planID primitive.ObjectID) error {
	if _, err := s.Get(ctx, ownerID, planID); err != nil {
		return err
	}

	exports, err := s.exportRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	for _, e := range exports {
		if err := s.fileStorage.DeleteObject(ctx, e.ObjectKey); err != nil {
			// Metadata is removed even when the object is not.
			logger.Warn("Could not delete export object %s: %v", e.ObjectKey, err)
		}
	}
	if err := s.exportRepo.DeleteByPlanID(ctx, planID); err != nil {
		return err
	}

	removed, err := s.workoutRepo.DeleteByPlanID(ctx, planID)
	if err != nil {
		return err
	}
	if err := s.planRepo.Delete(ctx, planID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrPlanNotFound
		}
		return err
	}
	logger.Info("Deleted plan %s with %d workouts and %d exports", planID.Hex(), removed, len(exports))
	return nil
}

// Export uploads the plan and its workouts as JSON and returns a temporary
// download link.
func (s *planService) Export(ctx context.Context, ownerID string, planID primitive.ObjectID) (*ExportResult, error) {
	plan, err := s.Get(ctx, ownerID, planID)
	if err != nil {
		return nil, err
	}
	workouts, err := s.workoutRepo.GetByPlanID(ctx, planID)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	body, err := json.MarshalIndent(planExportDocument{Plan: *plan, Workouts: workouts, ExportedAt: now}, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	objectKey := path.Join("exports", ownerID, planID.Hex(), uuid.NewString()+".json")
	if err := s.fileStorage.UploadObject(ctx, objectKey, exportContentType, body); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}

	export := domain.PlanExport{
		TrainingPlanID: planID,
		OwnerID:        ownerID,
		ObjectKey:      objectKey,
		ContentType:    exportContentType,
		Size:           int64(len(body)),
	}
	if _, err := s.exportRepo.Create(ctx, &export); err != nil {
		return nil, err
	}

	expiry := s.defaults.ExportURLExpiry
	if expiry <= 0 {
		expiry = storage.DefaultPresignedURLExpiry
	}
	url, err := s.fileStorage.GeneratePresignedDownloadURL(ctx, objectKey, expiry)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrExportFailed, err)
	}
	return &ExportResult{Export: export, DownloadURL: url, ExpiresAt: now.Add(expiry)}, nil
}
