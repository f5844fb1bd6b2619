package domain

import "sort"

// AssignmentPreferences steer which weekday gets which workout role.
// Zero values mean "no preference".
type AssignmentPreferences struct {
	PreferredLongRunDay  int   `bson:"preferredLongRunDay,omitempty" json:"preferredLongRunDay,omitempty"`
	PreferredTempoDay    int   `bson:"preferredTempoDay,omitempty" json:"preferredTempoDay,omitempty"`
	PreferredIntervalDay int   `bson:"preferredIntervalDay,omitempty" json:"preferredIntervalDay,omitempty"`
	RestDays             []int `bson:"restDays,omitempty" json:"restDays,omitempty"`
	AvoidBackToBackHard  bool  `bson:"avoidBackToBackHard" json:"avoidBackToBackHard"`
	PreferWeekendLongRun bool  `bson:"preferWeekendLongRun" json:"preferWeekendLongRun"`
}

// TrainingPreferences is everything about the runner besides the goal time and
// the calendar window.
type TrainingPreferences struct {
	DistanceUnit  DistanceUnit          `bson:"distanceUnit" json:"distanceUnit"`
	PaceFormat    PaceFormat            `bson:"paceFormat,omitempty" json:"paceFormat,omitempty"`
	WorkoutDays   []int                 `bson:"workoutDays" json:"workoutDays"` // 1 = Monday ... 7 = Sunday
	Assignment    AssignmentPreferences `bson:"assignment" json:"assignment"`
	RaceStartTime string                `bson:"raceStartTime,omitempty" json:"raceStartTime,omitempty"` // "07:00"
	RaceLocation  string                `bson:"raceLocation,omitempty" json:"raceLocation,omitempty"`
}

// Validate checks the shape of the preferences. Missing unit defaults are
// the caller's job; an unknown unit is an error.
func (p *TrainingPreferences) Validate() error {
	if p == nil {
		return NewValidationError("preferences", "training preferences are required")
	}
	if p.DistanceUnit != "" && !p.DistanceUnit.Valid() {
		return NewValidationError("distanceUnit", "unsupported distance unit %q", p.DistanceUnit)
	}
	if p.PaceFormat != "" && p.PaceFormat != PaceFormatMinutesPerUnit && p.PaceFormat != PaceFormatDecimal {
		return NewValidationError("paceFormat", "unsupported pace format %q", p.PaceFormat)
	}
	return ValidateWorkoutDays(p.WorkoutDays)
}

// Unit returns the display unit, defaulting to miles.
func (p *TrainingPreferences) Unit() DistanceUnit {
	if p == nil || p.DistanceUnit == "" {
		return UnitMiles
	}
	return p.DistanceUnit
}

// ValidateWorkoutDays enforces a non-empty set of weekday numbers in [1,7]
// without duplicates.
func ValidateWorkoutDays(days []int) error {
	if len(days) == 0 {
		return NewValidationError("workoutDays", "at least one workout day is required")
	}
	seen := make(map[int]bool, len(days))
	for _, d := range days {
		if d < 1 || d > 7 {
			return NewValidationError("workoutDays", "day %d is out of range, expected 1 (Monday) to 7 (Sunday)", d)
		}
		if seen[d] {
			return NewValidationError("workoutDays", "day %d is listed more than once", d)
		}
		seen[d] = true
	}
	return nil
}

// SortedDays returns a sorted copy of days.
func SortedDays(days []int) []int {
	out := make([]int, len(days))
	copy(out, days)
	sort.Ints(out)
	return out
}

var weekdayNames = [...]string{"", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// WeekdayName returns the English name of an ISO weekday number.
func WeekdayName(day int) string {
	if day < 1 || day > 7 {
		return "Unknown"
	}
	return weekdayNames[day]
}
