// internal/domain/training_plan.go
package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlanSummary counts the workouts of a plan.
type PlanSummary struct {
	TotalWorkouts int     `bson:"totalWorkouts" json:"totalWorkouts"`
	EasyRuns      int     `bson:"easyRuns" json:"easyRuns"`
	TempoRuns     int     `bson:"tempoRuns" json:"tempoRuns"`
	IntervalRuns  int     `bson:"intervalRuns" json:"intervalRuns"`
	LongRuns      int     `bson:"longRuns" json:"longRuns"`
	RecoveryRuns  int     `bson:"recoveryRuns" json:"recoveryRuns"`
	RaceDays      int     `bson:"raceDays" json:"raceDays"`
	TotalDistance float64 `bson:"totalDistance" json:"totalDistance"` // miles
}

// Add counts one workout.
func (s *PlanSummary) Add(t WorkoutType, distance float64) {
	s.TotalWorkouts++
	s.TotalDistance += distance
	switch t {
	case WorkoutEasyRun:
		s.EasyRuns++
	case WorkoutTempoRun:
		s.TempoRuns++
	case WorkoutInterval800m:
		s.IntervalRuns++
	case WorkoutLongRun:
		s.LongRuns++
	case WorkoutRecoveryRun:
		s.RecoveryRuns++
	case WorkoutMarathonRace:
		s.RaceDays++
	}
}

// Count returns the number of workouts of type t.
func (s PlanSummary) Count(t WorkoutType) int {
	switch t {
	case WorkoutEasyRun:
		return s.EasyRuns
	case WorkoutTempoRun:
		return s.TempoRuns
	case WorkoutInterval800m:
		return s.IntervalRuns
	case WorkoutLongRun:
		return s.LongRuns
	case WorkoutRecoveryRun:
		return s.RecoveryRuns
	case WorkoutMarathonRace:
		return s.RaceDays
	}
	return 0
}

// ScheduledTrainingPlan is the full 14-week output of the scheduler.
type ScheduledTrainingPlan struct {
	StartDate  time.Time          `json:"startDate"`
	EndDate    time.Time          `json:"endDate"`
	TotalWeeks int                `json:"totalWeeks"`
	Paces      PaceSet            `json:"paces"`
	Workouts   []ScheduledWorkout `json:"workouts"`
	Summary    PlanSummary        `json:"summary"`
}

// TimelineStrategy is how a short window is handled.
type TimelineStrategy string

const (
	StrategyDefer      TimelineStrategy = "defer"
	StrategyMinimal    TimelineStrategy = "minimal"
	StrategyPrioritize TimelineStrategy = "prioritize"
	StrategyCompress   TimelineStrategy = "compress"
	StrategyFull       TimelineStrategy = "full"
)

// TimelineAssessment is the viability verdict for a window.
type TimelineAssessment struct {
	AvailableWeeks int              `json:"availableWeeks"`
	IsViable       bool             `json:"isViable"`
	Strategy       TimelineStrategy `json:"strategy"`
	Warnings       []string         `json:"warnings"`
}

// AdaptedWorkoutPlan is the short-timeline output.
type AdaptedWorkoutPlan struct {
	Weeks           int                `json:"weeks"`
	Strategy        TimelineStrategy   `json:"strategy"`
	StartDate       time.Time          `json:"startDate"`
	Paces           PaceSet            `json:"paces"`
	CurriculumWeeks []int              `json:"curriculumWeeks"` // curriculum week fed to the generators, per plan week
	Workouts        []ScheduledWorkout `json:"workouts"`
	Summary         PlanSummary        `json:"summary"`
	Warnings        []string           `json:"warnings"`
	Recommendations []string           `json:"recommendations"`
}

// TrainingPlan is the stored header of a generated plan. Its workouts live in
// the workouts collection.
type TrainingPlan struct {
	ID              primitive.ObjectID  `bson:"_id,omitempty" json:"id"`
	OwnerID         string              `bson:"ownerId" json:"ownerId"` // token subject of the runner
	Name            string              `bson:"name" json:"name"`       // e.g., "Boston 2027 - 3:15:00"
	GoalTime        MarathonTime        `bson:"goalTime" json:"goalTime"`
	RaceDate        time.Time           `bson:"raceDate" json:"raceDate"`
	StartDate       time.Time           `bson:"startDate" json:"startDate"`
	EndDate         time.Time           `bson:"endDate" json:"endDate"`
	TotalWeeks      int                 `bson:"totalWeeks" json:"totalWeeks"`
	Strategy        TimelineStrategy    `bson:"strategy" json:"strategy"`
	Preferences     TrainingPreferences `bson:"preferences" json:"preferences"`
	Paces           PaceSet             `bson:"paces" json:"paces"`
	Summary         PlanSummary         `bson:"summary" json:"summary"`
	Warnings        []string            `bson:"warnings,omitempty" json:"warnings,omitempty"`
	Recommendations []string            `bson:"recommendations,omitempty" json:"recommendations,omitempty"`
	CreatedAt       time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt       time.Time           `bson:"updatedAt" json:"updatedAt"`
}
