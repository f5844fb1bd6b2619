package domain

// WorkoutAssignment is the role the assignment engine gave one weekday.
type WorkoutAssignment struct {
	DayOfWeek   int         `bson:"dayOfWeek" json:"dayOfWeek"`
	WorkoutType WorkoutType `bson:"workoutType" json:"workoutType"`
	Priority    int         `bson:"priority" json:"priority"` // 1 = highest
	IsOptimal   bool        `bson:"isOptimal" json:"isOptimal"`
	Conflicts   []string    `bson:"conflicts" json:"conflicts"` // advisory only
}

// WeekAssignment is the full result for one week: per-day roles plus the
// quality analysis of the resulting pattern.
type WeekAssignment struct {
	Week         int                 `bson:"week" json:"week"`
	Assignments  []WorkoutAssignment `bson:"assignments" json:"assignments"`
	QualityScore int                 `bson:"qualityScore" json:"qualityScore"` // 0..100
	Suggestions  []string            `bson:"suggestions" json:"suggestions"`
}

// TypeOn returns the workout type assigned to day, if any.
func (w WeekAssignment) TypeOn(day int) (WorkoutType, bool) {
	for _, a := range w.Assignments {
		if a.DayOfWeek == day {
			return a.WorkoutType, true
		}
	}
	return "", false
}

// Pattern reduces the week to its day -> type choices, in day order.
func (w WeekAssignment) Pattern() []DayPattern {
	out := make([]DayPattern, 0, len(w.Assignments))
	for _, a := range w.Assignments {
		out = append(out, DayPattern{DayOfWeek: a.DayOfWeek, WorkoutType: a.WorkoutType})
	}
	return out
}

// DayPattern is an explicit day -> workout type choice made by a runner.
type DayPattern struct {
	DayOfWeek   int         `bson:"dayOfWeek" json:"dayOfWeek"`
	WorkoutType WorkoutType `bson:"workoutType" json:"workoutType"`
}
