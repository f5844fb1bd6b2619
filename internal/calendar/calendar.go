// Package calendar maps training weeks and weekdays onto civil dates.
//
// Dates are handled as midnight UTC. Weeks always start on Monday, whatever
// days the runner trains on.
package calendar

import (
	"math"
	"time"

	"alcyxob/marathon-planner/internal/domain"
)

// PlanWeeks is the length of a full plan.
const PlanWeeks = 14

const maxLookback = 7

// DateOnly drops the clock and location, keeping the calendar date.
func DateOnly(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ISOWeekday returns 1 for Monday through 7 for Sunday.
func ISOWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 7
	}
	return wd
}

// WeekStart returns the Monday of the week containing t.
func WeekStart(t time.Time) time.Time {
	d := DateOnly(t)
	return d.AddDate(0, 0, -(ISOWeekday(d) - 1))
}

// DateFor returns the date of weekday (1..7) in plan week (1-based) for a
// plan whose first week contains start.
func DateFor(start time.Time, week, weekday int) time.Time {
	return WeekStart(start).AddDate(0, 0, (week-1)*7+weekday-1)
}

// FinalWorkoutDate is the race date if it falls on a selected weekday,
// otherwise the most recent selected weekday before it.
func FinalWorkoutDate(raceDate time.Time, workoutDays []int) (time.Time, error) {
	if err := domain.ValidateWorkoutDays(workoutDays); err != nil {
		return time.Time{}, domain.NewSchedulingError("cannot place the race: %v", err)
	}
	selected := make(map[int]bool, len(workoutDays))
	for _, d := range workoutDays {
		selected[d] = true
	}
	day := DateOnly(raceDate)
	for i := 0; i < maxLookback; i++ {
		if selected[ISOWeekday(day)] {
			return day, nil
		}
		day = day.AddDate(0, 0, -1)
	}
	return time.Time{}, domain.NewSchedulingError("no workout day within %d days before race date %s", maxLookback, raceDate.Format("2006-01-02"))
}

// CalculateStartDateFromRaceDate returns the Monday that starts a 14-week
// plan whose final week contains the last workout day on or before the race.
func CalculateStartDateFromRaceDate(raceDate time.Time, workoutDays []int) (time.Time, error) {
	final, err := FinalWorkoutDate(raceDate, workoutDays)
	if err != nil {
		return time.Time{}, err
	}
	return WeekStart(final).AddDate(0, 0, -(PlanWeeks-1)*7), nil
}

// GenerateSchedule enumerates every selected weekday of every plan week,
// ordered by date. WorkoutType is left empty for the assignment step.
func GenerateSchedule(startDate time.Time, workoutDays []int) ([]domain.WorkoutSchedule, error) {
	return GenerateWeeks(startDate, workoutDays, PlanWeeks)
}

// GenerateWeeks is GenerateSchedule for an arbitrary number of weeks.
func GenerateWeeks(startDate time.Time, workoutDays []int, weeks int) ([]domain.WorkoutSchedule, error) {
	if err := domain.ValidateWorkoutDays(workoutDays); err != nil {
		return nil, err
	}
	if weeks <= 0 {
		return []domain.WorkoutSchedule{}, nil
	}
	days := domain.SortedDays(workoutDays)
	out := make([]domain.WorkoutSchedule, 0, weeks*len(days))
	for week := 1; week <= weeks; week++ {
		for _, day := range days {
			out = append(out, domain.WorkoutSchedule{
				Date:      DateFor(startDate, week, day),
				Week:      week,
				DayOfWeek: day,
			})
		}
	}
	return out, nil
}

// WeeksBetween counts Monday-aligned weeks from the start date's week through
// the race date's week, inclusive. A race before the start yields a negative
// count rather than an error.
func WeeksBetween(startDate, raceDate time.Time) int {
	start := DateOnly(startDate)
	race := DateOnly(raceDate)
	if race.Before(start) {
		days := race.Sub(start).Hours() / 24
		return int(math.Floor(days / 7))
	}
	days := WeekStart(race).Sub(WeekStart(start)).Hours() / 24
	return int(math.Round(days/7)) + 1
}

// PlanEndDate is the Sunday closing the given plan week.
func PlanEndDate(startDate time.Time, weeks int) time.Time {
	return WeekStart(startDate).AddDate(0, 0, weeks*7-1)
}
