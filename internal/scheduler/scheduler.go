// Package scheduler turns a goal time, a start date and training weekdays into
// a dated 14-week plan.
package scheduler

import (
	"math"
	"sort"
	"time"

	"alcyxob/marathon-planner/internal/assignment"
	"alcyxob/marathon-planner/internal/calendar"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/pace"
	"alcyxob/marathon-planner/internal/workout"
)

// DefaultRaceStartTime is used when the preferences carry no start time.
const DefaultRaceStartTime = "07:00"

// Params is the input of Generate.
type Params struct {
	StartDate   time.Time
	WorkoutDays []int
	GoalTime    string // "H:MM:SS"
	Preferences *domain.TrainingPreferences
	// RaceDate is optional. When nil the race is the long-run slot of the
	// final week.
	RaceDate *time.Time
	// Overrides replace the automatic pattern of individual weeks.
	Overrides map[int][]domain.DayPattern
}

func (p Params) validate() (domain.MarathonTime, error) {
	if p.StartDate.IsZero() {
		return domain.MarathonTime{}, domain.NewValidationError("startDate", "start date is required")
	}
	if err := domain.ValidateWorkoutDays(p.WorkoutDays); err != nil {
		return domain.MarathonTime{}, err
	}
	if p.Preferences == nil {
		return domain.MarathonTime{}, domain.NewValidationError("preferences", "training preferences are required")
	}
	if err := p.Preferences.Validate(); err != nil {
		return domain.MarathonTime{}, err
	}
	for week := range p.Overrides {
		if err := workout.ValidateWeek(week); err != nil {
			return domain.MarathonTime{}, err
		}
	}
	return pace.ParseMarathonTime(p.GoalTime)
}

// Generate builds the full plan. A race date before the start date is not an
// error: the plan comes back with a negative week count and no workouts.
func Generate(p Params) (domain.ScheduledTrainingPlan, error) {
	goal, err := p.validate()
	if err != nil {
		return domain.ScheduledTrainingPlan{}, err
	}
	start := calendar.WeekStart(p.StartDate)

	if p.RaceDate != nil && calendar.DateOnly(*p.RaceDate).Before(calendar.DateOnly(p.StartDate)) {
		paces, err := pace.Calculate(goal, p.Preferences)
		if err != nil {
			return domain.ScheduledTrainingPlan{}, err
		}
		return domain.ScheduledTrainingPlan{
			StartDate:  start,
			EndDate:    calendar.DateOnly(*p.RaceDate),
			TotalWeeks: calendar.WeeksBetween(p.StartDate, *p.RaceDate),
			Paces:      paces,
			Workouts:   []domain.ScheduledWorkout{},
		}, nil
	}

	gen, err := workout.New(goal, p.Preferences)
	if err != nil {
		return domain.ScheduledTrainingPlan{}, err
	}

	workouts := make([]domain.ScheduledWorkout, 0, calendar.PlanWeeks*len(p.WorkoutDays))
	for week := 1; week <= calendar.PlanWeeks; week++ {
		pattern, err := weekPattern(week, p)
		if err != nil {
			return domain.ScheduledTrainingPlan{}, err
		}
		built, err := BuildWeek(gen, start, week, week, pattern)
		if err != nil {
			return domain.ScheduledTrainingPlan{}, err
		}
		if week == calendar.PlanWeeks {
			built, err = FinishRaceWeek(gen, built, p.RaceDate, p.Preferences)
			if err != nil {
				return domain.ScheduledTrainingPlan{}, err
			}
		}
		workouts = append(workouts, built...)
	}

	plan := domain.ScheduledTrainingPlan{
		StartDate:  start,
		EndDate:    calendar.PlanEndDate(start, calendar.PlanWeeks),
		TotalWeeks: calendar.PlanWeeks,
		Paces:      gen.Paces(),
		Workouts:   workouts,
		Summary:    Summarize(workouts),
	}
	if n := len(workouts); n > 0 {
		plan.EndDate = workouts[n-1].Date
	}
	return plan, nil
}

func weekPattern(week int, p Params) ([]domain.DayPattern, error) {
	if override, ok := p.Overrides[week]; ok {
		if _, err := assignment.AnalyzePattern(week, override, p.Preferences.Assignment); err != nil {
			return nil, err
		}
		return override, nil
	}
	result, err := assignment.AssignWeek(p.WorkoutDays, week, p.Preferences.Assignment)
	if err != nil {
		return nil, err
	}
	return result.Pattern(), nil
}

// BuildWeek dates the pattern inside planWeek and generates its content from
// curriculumWeek. The two differ only for shortened plans.
func BuildWeek(gen *workout.Generator, start time.Time, planWeek, curriculumWeek int, pattern []domain.DayPattern) ([]domain.ScheduledWorkout, error) {
	sorted := make([]domain.DayPattern, len(pattern))
	copy(sorted, pattern)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].DayOfWeek < sorted[j].DayOfWeek })

	out := make([]domain.ScheduledWorkout, 0, len(sorted))
	for _, dp := range sorted {
		content, err := gen.Generate(dp.WorkoutType, curriculumWeek)
		if err != nil {
			return nil, err
		}
		out = append(out, domain.ScheduledWorkout{
			WorkoutSchedule: domain.WorkoutSchedule{
				Date:        calendar.DateFor(start, planWeek, dp.DayOfWeek),
				Week:        planWeek,
				DayOfWeek:   dp.DayOfWeek,
				WorkoutType: dp.WorkoutType,
			},
			Content: content,
		})
	}
	return out, nil
}

// FinishRaceWeek places the race in the final week. The race is anchored on
// the last workout day of the week on or before raceDate, so a race on a
// non-workout day right after the week boundary still lands in this week.
// Later workouts are dropped, the anchor becomes the marathon and any other
// long-run slot turns into an easy shakeout. With a nil raceDate the race goes
// on the week's long-run slot.
func FinishRaceWeek(gen *workout.Generator, week []domain.ScheduledWorkout, raceDate *time.Time, prefs *domain.TrainingPreferences) ([]domain.ScheduledWorkout, error) {
	if len(week) == 0 {
		return nil, domain.NewSchedulingError("the race week has no workout days")
	}
	race := defaultRaceDate(week)
	if raceDate != nil {
		final, err := calendar.FinalWorkoutDate(*raceDate, weekdaysOf(week))
		if err != nil {
			return nil, err
		}
		monday := calendar.WeekStart(week[0].Date)
		if final.Before(monday) || !final.Before(monday.AddDate(0, 0, 7)) {
			return nil, domain.NewSchedulingError("final workout before race date %s does not fall in the final plan week starting %s",
				calendar.DateOnly(*raceDate).Format("2006-01-02"), monday.Format("2006-01-02"))
		}
		race = final
	}

	kept := make([]domain.ScheduledWorkout, 0, len(week))
	for _, sw := range week {
		if !sw.Date.After(race) {
			kept = append(kept, sw)
		}
	}
	if len(kept) == 0 {
		return nil, domain.NewSchedulingError("no workout day on or before race date %s", race.Format("2006-01-02"))
	}

	curriculumWeek := kept[0].Content.Week
	last := len(kept) - 1
	for i := range kept {
		sw := &kept[i]
		if i == last {
			content, err := gen.Generate(domain.WorkoutMarathonRace, curriculumWeek)
			if err != nil {
				return nil, err
			}
			sw.WorkoutType = domain.WorkoutMarathonRace
			sw.Content = content
			sw.IsRaceDay = true
			sw.RaceDetails = raceDetails(prefs)
			continue
		}
		if sw.WorkoutType == domain.WorkoutLongRun || sw.WorkoutType == domain.WorkoutMarathonRace {
			content, err := gen.EasyRun(curriculumWeek)
			if err != nil {
				return nil, err
			}
			content.Name = "Shakeout - " + content.Name
			sw.WorkoutType = domain.WorkoutEasyRun
			sw.Content = content
		}
	}
	return kept, nil
}

func weekdaysOf(week []domain.ScheduledWorkout) []int {
	seen := make(map[int]bool, len(week))
	days := make([]int, 0, len(week))
	for _, sw := range week {
		if d := calendar.ISOWeekday(sw.Date); !seen[d] {
			seen[d] = true
			days = append(days, d)
		}
	}
	return days
}

func defaultRaceDate(week []domain.ScheduledWorkout) time.Time {
	for _, sw := range week {
		if sw.WorkoutType == domain.WorkoutMarathonRace || sw.WorkoutType == domain.WorkoutLongRun {
			return sw.Date
		}
	}
	return week[len(week)-1].Date
}

func raceDetails(prefs *domain.TrainingPreferences) *domain.RaceDetails {
	d := &domain.RaceDetails{
		StartTime: DefaultRaceStartTime,
		Instructions: []string{
			"Lay out your kit and race bib the night before.",
			"Eat a familiar breakfast about three hours before the start.",
			"Arrive early enough to warm up with a few minutes of easy jogging.",
			"Line up in the corral that matches your goal pace.",
		},
	}
	if prefs != nil {
		if prefs.RaceStartTime != "" {
			d.StartTime = prefs.RaceStartTime
		}
		d.Location = prefs.RaceLocation
	}
	return d
}

// Summarize counts the workouts per type and totals the miles.
func Summarize(workouts []domain.ScheduledWorkout) domain.PlanSummary {
	var s domain.PlanSummary
	for _, sw := range workouts {
		s.Add(sw.WorkoutType, sw.Content.TotalDistance)
	}
	s.TotalDistance = math.Round(s.TotalDistance*10) / 10
	return s
}
