package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// WorkoutType is the closed set of sessions the engine can schedule.
type WorkoutType string

const (
	WorkoutEasyRun      WorkoutType = "easy_run"
	WorkoutTempoRun     WorkoutType = "tempo_run"
	WorkoutInterval800m WorkoutType = "interval_800m"
	WorkoutLongRun      WorkoutType = "long_run"
	WorkoutRecoveryRun  WorkoutType = "recovery_run"
	WorkoutMarathonRace WorkoutType = "marathon_race"
)

// AllWorkoutTypes lists every WorkoutType in summary order.
var AllWorkoutTypes = []WorkoutType{
	WorkoutEasyRun, WorkoutTempoRun, WorkoutInterval800m,
	WorkoutLongRun, WorkoutRecoveryRun, WorkoutMarathonRace,
}

// Valid reports whether t is one of the known workout types.
func (t WorkoutType) Valid() bool {
	for _, known := range AllWorkoutTypes {
		if t == known {
			return true
		}
	}
	return false
}

// IsHard reports whether the session is high intensity or high volume.
func (t WorkoutType) IsHard() bool {
	switch t {
	case WorkoutTempoRun, WorkoutInterval800m, WorkoutLongRun, WorkoutMarathonRace:
		return true
	}
	return false
}

// DisplayName is the human-readable label, e.g. "Tempo Run".
func (t WorkoutType) DisplayName() string {
	switch t {
	case WorkoutEasyRun:
		return "Easy Run"
	case WorkoutTempoRun:
		return "Tempo Run"
	case WorkoutInterval800m:
		return "800m Intervals"
	case WorkoutLongRun:
		return "Long Run"
	case WorkoutRecoveryRun:
		return "Recovery Run"
	case WorkoutMarathonRace:
		return "Marathon Race"
	}
	return string(t)
}

// Segment is one part of a workout (warm-up, main set, cool-down, ...).
// Distance is in miles.
type Segment struct {
	Name     string   `bson:"name" json:"name"`
	Distance float64  `bson:"distance" json:"distance"`
	Pace     PaceTime `bson:"pace" json:"pace"`
}

// TempoDetails is the tempo-run payload.
type TempoDetails struct {
	WarmUp        Segment  `bson:"warmUp" json:"warmUp"`
	TempoDistance float64  `bson:"tempoDistance" json:"tempoDistance"`
	TempoPace     PaceTime `bson:"tempoPace" json:"tempoPace"`
	CoolDown      Segment  `bson:"coolDown" json:"coolDown"`
}

// IntervalSet describes the repeated 800m block.
type IntervalSet struct {
	Repetitions    int      `bson:"repetitions" json:"repetitions"`
	DistanceMeters int      `bson:"distanceMeters" json:"distanceMeters"`
	RepTime        PaceTime `bson:"repTime" json:"repTime"`
	Recovery       PaceTime `bson:"recovery" json:"recovery"`
	Pace           PaceTime `bson:"pace" json:"pace"` // mile-equivalent pace of a repetition
}

// IntervalDetails is the 800m-interval payload.
type IntervalDetails struct {
	WarmUp   Segment     `bson:"warmUp" json:"warmUp"`
	Set      IntervalSet `bson:"set" json:"set"`
	CoolDown Segment     `bson:"coolDown" json:"coolDown"`
}

// LongRunDetails is the long-run payload. Week 14 carries the race instead.
type LongRunDetails struct {
	EasyMinutes          int      `bson:"easyMinutes" json:"easyMinutes"`
	EasyDistance         float64  `bson:"easyDistance" json:"easyDistance"`
	EasyPace             PaceTime `bson:"easyPace" json:"easyPace"`
	MarathonPaceDistance float64  `bson:"marathonPaceDistance" json:"marathonPaceDistance"`
	MarathonPace         PaceTime `bson:"marathonPace" json:"marathonPace"`
	IsRaceDay            bool     `bson:"isRaceDay" json:"isRaceDay"`
}

// EasyDetails is the payload for easy and recovery runs.
type EasyDetails struct {
	Distance float64  `bson:"distance" json:"distance"`
	Pace     PaceTime `bson:"pace" json:"pace"`
}

// WorkoutContent is a tagged union: Type selects which detail pointer is set.
// Tempo for TempoRun, Intervals for Interval800m, LongRun for LongRun and
// MarathonRace, Easy for EasyRun and RecoveryRun.
type WorkoutContent struct {
	Type          WorkoutType      `bson:"type" json:"type"`
	Week          int              `bson:"week" json:"week"`
	Name          string           `bson:"name" json:"name"`
	Description   string           `bson:"description" json:"description"`
	TotalDistance float64          `bson:"totalDistance" json:"totalDistance"` // miles
	Duration      int              `bson:"duration" json:"duration"`           // estimated minutes
	TargetPace    PaceTime         `bson:"targetPace" json:"targetPace"`
	Instructions  []string         `bson:"instructions" json:"instructions"`
	Structure     string           `bson:"structure" json:"structure"`
	Tempo         *TempoDetails    `bson:"tempo,omitempty" json:"tempo,omitempty"`
	Intervals     *IntervalDetails `bson:"intervals,omitempty" json:"intervals,omitempty"`
	LongRun       *LongRunDetails  `bson:"longRun,omitempty" json:"longRun,omitempty"`
	Easy          *EasyDetails     `bson:"easy,omitempty" json:"easy,omitempty"`
}

// WorkoutSchedule places a workout type on a calendar date before content exists.
type WorkoutSchedule struct {
	Date        time.Time   `bson:"date" json:"date"`
	Week        int         `bson:"week" json:"week"`
	DayOfWeek   int         `bson:"dayOfWeek" json:"dayOfWeek"`
	WorkoutType WorkoutType `bson:"workoutType" json:"workoutType"`
}

// RaceDetails is attached only to the final week's race.
type RaceDetails struct {
	StartTime    string   `bson:"startTime" json:"startTime"`
	Location     string   `bson:"location,omitempty" json:"location,omitempty"`
	Instructions []string `bson:"instructions" json:"instructions"`
}

// ScheduledWorkout is a dated workout with its full content.
type ScheduledWorkout struct {
	WorkoutSchedule `bson:",inline"`
	Content         WorkoutContent `bson:"content" json:"content"`
	IsRaceDay       bool           `bson:"isRaceDay" json:"isRaceDay"`
	RaceDetails     *RaceDetails   `bson:"raceDetails,omitempty" json:"raceDetails,omitempty"`
}

// Workout is the flat persistence shape of one scheduled workout.
type Workout struct {
	ID             primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	TrainingPlanID primitive.ObjectID `bson:"trainingPlanId" json:"trainingPlanId"` // Link back to the plan
	OwnerID        string             `bson:"ownerId" json:"ownerId"`               // Denormalized for easier query/auth
	Sequence       int                `bson:"sequence" json:"sequence"`             // Order within the plan
	Name           string             `bson:"name" json:"name"`
	Description    string             `bson:"description" json:"description"`
	Type           WorkoutType        `bson:"type" json:"type"`
	Week           int                `bson:"week" json:"week"`
	DayOfWeek      int                `bson:"dayOfWeek" json:"dayOfWeek"`
	Date           time.Time          `bson:"date" json:"date"`
	Distance       float64            `bson:"distance" json:"distance"` // miles
	Duration       int                `bson:"duration" json:"duration"` // minutes
	Pace           PaceTime           `bson:"pace" json:"pace"`
	Structure      string             `bson:"structure,omitempty" json:"structure,omitempty"`
	Instructions   []string           `bson:"instructions,omitempty" json:"instructions,omitempty"`
	IntervalSet    *IntervalSet       `bson:"intervalSet,omitempty" json:"intervalSet,omitempty"`
	IsRaceDay      bool               `bson:"isRaceDay" json:"isRaceDay"`
	RaceDetails    *RaceDetails       `bson:"raceDetails,omitempty" json:"raceDetails,omitempty"`
	CreatedAt      time.Time          `bson:"createdAt" json:"createdAt"`
}

// FlattenWorkout converts a scheduled workout into its persistence shape.
func FlattenWorkout(sw ScheduledWorkout, sequence int) Workout {
	w := Workout{
		Sequence:     sequence,
		Name:         sw.Content.Name,
		Description:  sw.Content.Description,
		Type:         sw.WorkoutType,
		Week:         sw.Week,
		DayOfWeek:    sw.DayOfWeek,
		Date:         sw.Date,
		Distance:     sw.Content.TotalDistance,
		Duration:     sw.Content.Duration,
		Pace:         sw.Content.TargetPace,
		Structure:    sw.Content.Structure,
		Instructions: sw.Content.Instructions,
		IsRaceDay:    sw.IsRaceDay,
		RaceDetails:  sw.RaceDetails,
	}
	if sw.Content.Intervals != nil {
		set := sw.Content.Intervals.Set
		w.IntervalSet = &set
	}
	return w
}
