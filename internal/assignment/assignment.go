// Package assignment decides which workout type goes on which weekday and
// scores the resulting weekly pattern.
package assignment

import (
	"fmt"
	"math"
	"sort"

	"alcyxob/marathon-planner/internal/domain"
)

// Priority per workout type, 1 = highest.
const (
	priorityLongRun  = 1
	priorityTempo    = 2
	priorityInterval = 3
	priorityRecovery = 4
	priorityEasy     = 5
)

// Scoring weights.
const (
	baseScore           = 100
	adjacentHardPenalty = 15
	longRunDayPenalty   = 10
	fewRestDaysPenalty  = 20
	optimalBonus        = 10
	minRestDays         = 2
	raceWeek            = 14
)

const longRunAdjacentConflict = "Long run scheduled adjacent to other workouts"

// AssignWeek assigns a workout type to every selected weekday of one week and
// returns the assignments with their quality analysis.
//
// Day-count policy:
//   - 1 day: long run only.
//   - 2 days: long run plus one quality session, interval on even weeks and
//     tempo on odd weeks.
//   - 3 days: long run, tempo, interval.
//   - 4 days: as 3 plus an easy run.
//   - 5+ days: as 3 plus a recovery run the first free day after the long
//     run, easy runs on the rest.
func AssignWeek(days []int, week int, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error) {
	if err := domain.ValidateWorkoutDays(days); err != nil {
		return domain.WeekAssignment{}, err
	}
	sorted := domain.SortedDays(days)
	roles := make(map[int]domain.WorkoutType, len(sorted))

	long := LongRunDay(sorted, prefs)
	roles[long] = longRunType(week)
	remaining := without(sorted, long)

	switch {
	case len(remaining) == 0:
	case len(sorted) == 2:
		if week%2 == 0 {
			roles[remaining[0]] = domain.WorkoutInterval800m
		} else {
			roles[remaining[0]] = domain.WorkoutTempoRun
		}
	default:
		tempo, interval := qualityDays(remaining, long, prefs)
		roles[tempo] = domain.WorkoutTempoRun
		roles[interval] = domain.WorkoutInterval800m
		leftovers := without(without(remaining, tempo), interval)
		if len(sorted) >= 5 && len(leftovers) > 0 {
			recovery := firstDayAfter(long, leftovers)
			roles[recovery] = domain.WorkoutRecoveryRun
			leftovers = without(leftovers, recovery)
		}
		for _, d := range leftovers {
			roles[d] = domain.WorkoutEasyRun
		}
	}

	return analyze(week, roles, prefs), nil
}

// LongRunDay picks the long-run weekday: an explicit preference if it is
// selected, else the latest weekend day when weekend long runs are preferred,
// else the last selected day. days must be sorted.
func LongRunDay(days []int, prefs domain.AssignmentPreferences) int {
	if contains(days, prefs.PreferredLongRunDay) {
		return prefs.PreferredLongRunDay
	}
	if prefs.PreferWeekendLongRun {
		for _, d := range []int{7, 6} {
			if contains(days, d) {
				return d
			}
		}
	}
	return days[len(days)-1]
}

// qualityDays picks tempo and interval days from remaining (sorted, at least two).
func qualityDays(remaining []int, long int, prefs domain.AssignmentPreferences) (tempo, interval int) {
	if contains(remaining, prefs.PreferredTempoDay) {
		tempo = prefs.PreferredTempoDay
	}
	if contains(remaining, prefs.PreferredIntervalDay) && prefs.PreferredIntervalDay != tempo {
		interval = prefs.PreferredIntervalDay
	}
	if tempo == 0 && interval == 0 && prefs.AvoidBackToBackHard {
		for i := 0; i < len(remaining); i++ {
			for j := i + 1; j < len(remaining); j++ {
				a, b := remaining[i], remaining[j]
				if !Adjacent(a, b) && !Adjacent(a, long) && !Adjacent(b, long) {
					return a, b
				}
			}
		}
	}
	free := without(without(remaining, tempo), interval)
	if tempo == 0 {
		tempo, free = free[0], free[1:]
	}
	if interval == 0 {
		interval = free[0]
	}
	return tempo, interval
}

// AnalyzePattern scores an explicit day -> type pattern with the same rules
// AssignWeek uses. At most one long run or race is allowed.
func AnalyzePattern(week int, pattern []domain.DayPattern, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error) {
	if week < 1 || week > raceWeek {
		return domain.WeekAssignment{}, domain.NewValidationError("week", "week %d is outside 1..%d", week, raceWeek)
	}
	days := make([]int, 0, len(pattern))
	roles := make(map[int]domain.WorkoutType, len(pattern))
	longRuns := 0
	for _, p := range pattern {
		if !p.WorkoutType.Valid() {
			return domain.WeekAssignment{}, domain.NewValidationError("workoutType", "unknown workout type %q on %s", p.WorkoutType, domain.WeekdayName(p.DayOfWeek))
		}
		if p.WorkoutType == domain.WorkoutMarathonRace && week != raceWeek {
			return domain.WeekAssignment{}, domain.NewValidationError("workoutType", "%s is only allowed in week %d, got week %d", p.WorkoutType, raceWeek, week)
		}
		if p.WorkoutType == domain.WorkoutLongRun || p.WorkoutType == domain.WorkoutMarathonRace {
			longRuns++
		}
		days = append(days, p.DayOfWeek)
		roles[p.DayOfWeek] = p.WorkoutType
	}
	if err := domain.ValidateWorkoutDays(days); err != nil {
		return domain.WeekAssignment{}, err
	}
	if longRuns > 1 {
		return domain.WeekAssignment{}, domain.NewValidationError("pattern", "only one long run per week is allowed, got %d", longRuns)
	}
	return analyze(week, roles, prefs), nil
}

func analyze(week int, roles map[int]domain.WorkoutType, prefs domain.AssignmentPreferences) domain.WeekAssignment {
	days := make([]int, 0, len(roles))
	for d := range roles {
		days = append(days, d)
	}
	sort.Ints(days)

	restDays := make(map[int]bool, len(prefs.RestDays))
	for _, d := range prefs.RestDays {
		restDays[d] = true
	}

	adjacentPairs := 0
	for i := 0; i < len(days); i++ {
		for j := i + 1; j < len(days); j++ {
			if roles[days[i]].IsHard() && roles[days[j]].IsHard() && Adjacent(days[i], days[j]) {
				adjacentPairs++
			}
		}
	}

	longRunFound, longRunOptimal := false, true
	restConflicts := false
	optimal := 0
	assignments := make([]domain.WorkoutAssignment, 0, len(days))
	for _, d := range days {
		t := roles[d]
		a := domain.WorkoutAssignment{DayOfWeek: d, WorkoutType: t, Priority: priorityOf(t), Conflicts: []string{}}

		hardNeighbours := neighboursMatching(d, days, roles, func(other domain.WorkoutType) bool { return other.IsHard() })
		switch t {
		case domain.WorkoutLongRun, domain.WorkoutMarathonRace:
			longRunFound = true
			longRunOptimal = d >= 6 || d == prefs.PreferredLongRunDay
			if len(hardNeighbours) > 0 {
				a.Conflicts = append(a.Conflicts, longRunAdjacentConflict)
			}
			a.IsOptimal = longRunOptimal
		case domain.WorkoutTempoRun, domain.WorkoutInterval800m:
			for _, n := range hardNeighbours {
				a.Conflicts = append(a.Conflicts, fmt.Sprintf("Back-to-back hard days: %s on %s", roles[n].DisplayName(), domain.WeekdayName(n)))
			}
			a.IsOptimal = len(hardNeighbours) == 0
		case domain.WorkoutRecoveryRun:
			a.IsOptimal = roles[previousDay(d)].IsHard()
		default:
			a.IsOptimal = true
		}
		if restDays[d] {
			restConflicts = true
			a.Conflicts = append(a.Conflicts, fmt.Sprintf("Scheduled on a preferred rest day (%s)", domain.WeekdayName(d)))
			a.IsOptimal = false
		}
		if a.IsOptimal {
			optimal++
		}
		assignments = append(assignments, a)
	}

	score := baseScore - adjacentHardPenalty*adjacentPairs
	suggestions := []string{}
	if adjacentPairs > 0 {
		suggestions = append(suggestions, "Separate hard workouts with an easy or rest day to reduce injury risk.")
	}
	if longRunFound && !longRunOptimal {
		score -= longRunDayPenalty
		suggestions = append(suggestions, "Move the long run to Saturday or Sunday when your schedule allows.")
	}
	if rest := 7 - len(days); rest < minRestDays {
		score -= fewRestDaysPenalty
		suggestions = append(suggestions, fmt.Sprintf("Keep at least %d rest days per week; this pattern leaves %d.", minRestDays, rest))
	}
	if restConflicts {
		suggestions = append(suggestions, "Some workouts fall on your preferred rest days.")
	}
	if len(days) > 0 {
		score += int(math.Round(optimalBonus * float64(optimal) / float64(len(days))))
	}

	return domain.WeekAssignment{
		Week:         week,
		Assignments:  assignments,
		QualityScore: clamp(score, 0, 100),
		Suggestions:  suggestions,
	}
}

// Adjacent reports whether two weekdays are consecutive, treating Sunday and
// Monday as neighbours.
func Adjacent(a, b int) bool {
	diff := a - b
	if diff < 0 {
		diff = -diff
	}
	return diff == 1 || diff == 6
}

func longRunType(week int) domain.WorkoutType {
	if week == raceWeek {
		return domain.WorkoutMarathonRace
	}
	return domain.WorkoutLongRun
}

func priorityOf(t domain.WorkoutType) int {
	switch t {
	case domain.WorkoutLongRun, domain.WorkoutMarathonRace:
		return priorityLongRun
	case domain.WorkoutTempoRun:
		return priorityTempo
	case domain.WorkoutInterval800m:
		return priorityInterval
	case domain.WorkoutRecoveryRun:
		return priorityRecovery
	}
	return priorityEasy
}

func neighboursMatching(day int, days []int, roles map[int]domain.WorkoutType, match func(domain.WorkoutType) bool) []int {
	var out []int
	for _, other := range days {
		if other != day && Adjacent(day, other) && match(roles[other]) {
			out = append(out, other)
		}
	}
	return out
}

func firstDayAfter(day int, candidates []int) int {
	for offset := 1; offset < 7; offset++ {
		next := (day-1+offset)%7 + 1
		if contains(candidates, next) {
			return next
		}
	}
	return candidates[0]
}

func previousDay(day int) int {
	if day == 1 {
		return 7
	}
	return day - 1
}

func contains(days []int, day int) bool {
	for _, d := range days {
		if d == day {
			return true
		}
	}
	return false
}

func without(days []int, day int) []int {
	out := make([]int, 0, len(days))
	for _, d := range days {
		if d != day {
			out = append(out, d)
		}
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
