// Package timeline fits the 14-week curriculum into the window that is
// actually left before race day.
package timeline

import (
	"fmt"
	"time"

	"alcyxob/marathon-planner/internal/assignment"
	"alcyxob/marathon-planner/internal/calendar"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/pace"
	"alcyxob/marathon-planner/internal/scheduler"
	"alcyxob/marathon-planner/internal/workout"
)

// Window thresholds in weeks.
const (
	minViableWeeks     = 4
	lowInjuryRiskWeeks = 6
	prioritizeWeeks    = 6
	compressWeeks      = 10
)

// Curriculum weeks kept by each strategy. The lists are hand-picked.
var (
	minimalCurriculum       = []int{7, 9, 12, 14}
	prioritizeLong          = []int{3, 5, 7, 8, 9, 10, 12, 14} // 8-9 weeks
	prioritizeShort         = []int{5, 7, 9, 10, 12, 14}       // 6-7 weeks
	compressDropsTwelvePlus = []int{2, 4}                      // 12-13 weeks
	compressDropsTenPlus    = []int{1, 2, 4, 6}                // 10-11 weeks
)

// Params is the input of Adapt.
type Params struct {
	StartDate   time.Time
	RaceDate    time.Time
	WorkoutDays []int
	GoalTime    string
	Preferences *domain.TrainingPreferences
	// Overrides only apply when the window fits the full 14-week schedule.
	Overrides map[int][]domain.DayPattern
}

// AssessTimelineViability picks the strategy for a window of weeks.
func AssessTimelineViability(weeks int) domain.TimelineAssessment {
	a := domain.TimelineAssessment{
		AvailableWeeks: weeks,
		IsViable:       weeks >= minViableWeeks,
		Strategy:       strategyFor(weeks),
		Warnings:       []string{},
	}
	if !a.IsViable {
		a.Warnings = append(a.Warnings, fmt.Sprintf(
			"Only %d week(s) until race day. That is not enough time to prepare safely; consider deferring to a later race.", max(weeks, 0)))
		return a
	}
	if weeks < lowInjuryRiskWeeks {
		a.Warnings = append(a.Warnings, "Fewer than 6 weeks of preparation carries an elevated injury risk.")
	}
	if weeks < compressWeeks {
		a.Warnings = append(a.Warnings, "The build-up is compressed: long-run volume rises faster than in the full plan.")
	}
	if weeks < calendar.PlanWeeks {
		a.Warnings = append(a.Warnings, fmt.Sprintf("The %d-week curriculum has been compressed into %d weeks.", calendar.PlanWeeks, weeks))
	}
	return a
}

// AssessWindow assesses the weeks between start and race.
func AssessWindow(start, race time.Time) domain.TimelineAssessment {
	return AssessTimelineViability(calendar.WeeksBetween(start, race))
}

func strategyFor(weeks int) domain.TimelineStrategy {
	switch {
	case weeks < minViableWeeks:
		return domain.StrategyDefer
	case weeks < prioritizeWeeks:
		return domain.StrategyMinimal
	case weeks < compressWeeks:
		return domain.StrategyPrioritize
	case weeks < calendar.PlanWeeks:
		return domain.StrategyCompress
	}
	return domain.StrategyFull
}

// CurriculumWeeks maps every plan week to the curriculum week whose content it
// runs. 0 marks a plan week without structured workouts. The last plan week
// always runs curriculum week 14.
func CurriculumWeeks(strategy domain.TimelineStrategy, weeks int) []int {
	var list []int
	switch strategy {
	case domain.StrategyDefer:
		return []int{}
	case domain.StrategyMinimal:
		list = minimalCurriculum
	case domain.StrategyPrioritize:
		list = prioritizeShort
		if weeks >= 8 {
			list = prioritizeLong
		}
	case domain.StrategyCompress:
		drops := compressDropsTenPlus
		if weeks >= 12 {
			drops = compressDropsTwelvePlus
		}
		list = curriculumWithout(drops)
	default:
		list = curriculumWithout(nil)
		weeks = calendar.PlanWeeks
	}
	if len(list) > weeks {
		list = list[len(list)-weeks:]
	}
	out := make([]int, weeks)
	copy(out[weeks-len(list):], list)
	return out
}

func curriculumWithout(drops []int) []int {
	dropped := make(map[int]bool, len(drops))
	for _, d := range drops {
		dropped[d] = true
	}
	out := make([]int, 0, workout.TotalWeeks)
	for w := 1; w <= workout.TotalWeeks; w++ {
		if !dropped[w] {
			out = append(out, w)
		}
	}
	return out
}

// Adapt builds the plan for the window between StartDate and RaceDate. Windows
// of 14 weeks or more get the full schedule anchored on the race date.
// The window ends in the week of the last workout day on or before the race.
func Adapt(p Params) (domain.AdaptedWorkoutPlan, error) {
	goal, err := validate(p)
	if err != nil {
		return domain.AdaptedWorkoutPlan{}, err
	}
	final, err := calendar.FinalWorkoutDate(p.RaceDate, p.WorkoutDays)
	if err != nil {
		return domain.AdaptedWorkoutPlan{}, err
	}
	assessment := AssessWindow(p.StartDate, final)
	plan := domain.AdaptedWorkoutPlan{
		Weeks:           assessment.AvailableWeeks,
		Strategy:        assessment.Strategy,
		StartDate:       calendar.WeekStart(p.StartDate),
		CurriculumWeeks: CurriculumWeeks(assessment.Strategy, assessment.AvailableWeeks),
		Workouts:        []domain.ScheduledWorkout{},
		Warnings:        assessment.Warnings,
		Recommendations: recommendations(assessment.Strategy),
	}
	paces, err := pace.Calculate(goal, p.Preferences)
	if err != nil {
		return domain.AdaptedWorkoutPlan{}, err
	}
	plan.Paces = paces

	switch assessment.Strategy {
	case domain.StrategyDefer:
		return plan, nil
	case domain.StrategyFull:
		return adaptFull(p, plan)
	}

	gen := workout.NewWithPaces(goal, paces, p.Preferences)
	start := calendar.DateOnly(p.StartDate)
	lastWeek := len(plan.CurriculumWeeks)
	empty := 0
	for i, curriculumWeek := range plan.CurriculumWeeks {
		planWeek := i + 1
		if curriculumWeek == 0 {
			empty++
			continue
		}
		raceDay := 0
		if planWeek == lastWeek {
			raceDay = calendar.ISOWeekday(final)
		}
		pattern, err := weekPattern(assessment.Strategy, p.WorkoutDays, curriculumWeek, raceDay, p.Preferences.Assignment)
		if err != nil {
			return domain.AdaptedWorkoutPlan{}, err
		}
		built, err := scheduler.BuildWeek(gen, plan.StartDate, planWeek, curriculumWeek, pattern)
		if err != nil {
			return domain.AdaptedWorkoutPlan{}, err
		}
		if planWeek == lastWeek {
			race := p.RaceDate
			if built, err = scheduler.FinishRaceWeek(gen, built, &race, p.Preferences); err != nil {
				return domain.AdaptedWorkoutPlan{}, err
			}
		}
		for _, sw := range built {
			if !sw.Date.Before(start) {
				plan.Workouts = append(plan.Workouts, sw)
			}
		}
	}
	if empty > 0 {
		plan.Recommendations = append(plan.Recommendations,
			fmt.Sprintf("Use the first %d week(s) for easy base running before the structured workouts begin.", empty))
	}
	plan.Summary = scheduler.Summarize(plan.Workouts)
	return plan, nil
}

func adaptFull(p Params, plan domain.AdaptedWorkoutPlan) (domain.AdaptedWorkoutPlan, error) {
	start, err := calendar.CalculateStartDateFromRaceDate(p.RaceDate, p.WorkoutDays)
	if err != nil {
		return domain.AdaptedWorkoutPlan{}, err
	}
	race := p.RaceDate
	full, err := scheduler.Generate(scheduler.Params{
		StartDate:   start,
		WorkoutDays: p.WorkoutDays,
		GoalTime:    p.GoalTime,
		Preferences: p.Preferences,
		RaceDate:    &race,
		Overrides:   p.Overrides,
	})
	if err != nil {
		return domain.AdaptedWorkoutPlan{}, err
	}
	plan.StartDate = full.StartDate
	plan.Workouts = full.Workouts
	plan.Summary = full.Summary
	if lead := calendar.WeeksBetween(p.StartDate, start) - 1; lead > 0 {
		plan.Recommendations = append(plan.Recommendations,
			fmt.Sprintf("The plan starts on %s. Use the %d week(s) before it for easy base running.", start.Format("2006-01-02"), lead))
	}
	return plan, nil
}

// weekPattern chooses the sessions of one week for the strategy. raceDay is
// the weekday of the race in the final week and 0 otherwise.
func weekPattern(strategy domain.TimelineStrategy, days []int, curriculumWeek, raceDay int, prefs domain.AssignmentPreferences) ([]domain.DayPattern, error) {
	if strategy == domain.StrategyMinimal {
		longType := domain.WorkoutLongRun
		if curriculumWeek == workout.TotalWeeks {
			longType = domain.WorkoutMarathonRace
		}
		day := assignment.LongRunDay(domain.SortedDays(days), prefs)
		if raceDay != 0 {
			day = raceDay
		}
		return []domain.DayPattern{{DayOfWeek: day, WorkoutType: longType}}, nil
	}

	result, err := assignment.AssignWeek(days, curriculumWeek, prefs)
	if err != nil {
		return nil, err
	}
	full := result.Pattern()
	if strategy == domain.StrategyCompress {
		return full, nil
	}

	out := make([]domain.DayPattern, 0, 3)
	for _, dp := range full {
		switch dp.WorkoutType {
		case domain.WorkoutLongRun, domain.WorkoutMarathonRace, domain.WorkoutTempoRun:
			out = append(out, dp)
		case domain.WorkoutInterval800m:
			if len(days) >= 3 {
				out = append(out, dp)
			} else {
				out = append(out, domain.DayPattern{DayOfWeek: dp.DayOfWeek, WorkoutType: domain.WorkoutTempoRun})
			}
		}
	}
	return out, nil
}

func recommendations(strategy domain.TimelineStrategy) []string {
	switch strategy {
	case domain.StrategyDefer:
		return []string{
			"Pick a race at least 14 weeks away for the full plan.",
			"Until then, build an aerobic base with three to four easy runs per week.",
		}
	case domain.StrategyMinimal:
		return []string{
			"Treat the goal time as a guide and aim to finish comfortably.",
			"Run easy on other days only if you recover well from the long runs.",
			"Consider a half marathon instead if the long runs feel too hard.",
		}
	case domain.StrategyPrioritize:
		return []string{
			"Long runs come first: skip a quality session before skipping a long run.",
			"Keep every other run easy to absorb the faster build-up.",
		}
	case domain.StrategyCompress:
		return []string{
			"Keep easy days truly easy; the progression moves faster than usual.",
		}
	}
	return []string{}
}

func validate(p Params) (domain.MarathonTime, error) {
	if p.StartDate.IsZero() {
		return domain.MarathonTime{}, domain.NewValidationError("startDate", "start date is required")
	}
	if p.RaceDate.IsZero() {
		return domain.MarathonTime{}, domain.NewValidationError("raceDate", "race date is required")
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
	return pace.ParseMarathonTime(p.GoalTime)
}
