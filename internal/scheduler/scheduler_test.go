package scheduler

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"alcyxob/marathon-planner/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func baseParams() Params {
	days := []int{1, 3, 6}
	return Params{
		StartDate:   date(2027, time.January, 11), // Monday
		WorkoutDays: days,
		GoalTime:    "3:30:00",
		Preferences: &domain.TrainingPreferences{DistanceUnit: domain.UnitMiles, WorkoutDays: days},
	}
}

func TestGenerate_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(p *Params)
	}{
		{"missing start date", func(p *Params) { p.StartDate = time.Time{} }},
		{"no workout days", func(p *Params) { p.WorkoutDays = nil }},
		{"day out of range", func(p *Params) { p.WorkoutDays = []int{0, 3} }},
		{"missing preferences", func(p *Params) { p.Preferences = nil }},
		{"malformed goal", func(p *Params) { p.GoalTime = "3:30" }},
		{"override outside plan", func(p *Params) {
			p.Overrides = map[int][]domain.DayPattern{15: {{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun}}}
		}},
		{"race override before race week", func(p *Params) {
			p.Overrides = map[int][]domain.DayPattern{5: {{DayOfWeek: 6, WorkoutType: domain.WorkoutMarathonRace}}}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := baseParams()
			tt.mutate(&p)
			if _, err := Generate(p); !errors.Is(err, domain.ErrValidation) {
				t.Errorf("Generate error = %v, want validation error", err)
			}
		})
	}
}

func TestGenerate_ThreeDayPlan(t *testing.T) {
	plan, err := Generate(baseParams())
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if plan.TotalWeeks != 14 || len(plan.Workouts) != 42 {
		t.Fatalf("TotalWeeks = %d, workouts = %d, want 14 and 42", plan.TotalWeeks, len(plan.Workouts))
	}
	s := plan.Summary
	if s.TotalWorkouts != 42 || s.LongRuns != 13 || s.RaceDays != 1 || s.TempoRuns != 14 || s.IntervalRuns != 14 {
		t.Errorf("Summary = %+v", s)
	}

	for i := 1; i < len(plan.Workouts); i++ {
		if !plan.Workouts[i].Date.After(plan.Workouts[i-1].Date) {
			t.Fatalf("workout %d on %s is not after %s", i, plan.Workouts[i].Date, plan.Workouts[i-1].Date)
		}
	}
	for _, sw := range plan.Workouts {
		if sw.Content.Week != sw.Week {
			t.Errorf("workout on %s: content week %d, plan week %d", sw.Date.Format("2006-01-02"), sw.Content.Week, sw.Week)
		}
		if sw.Content.Type != sw.WorkoutType {
			t.Errorf("workout on %s: content type %q, scheduled %q", sw.Date.Format("2006-01-02"), sw.Content.Type, sw.WorkoutType)
		}
	}

	last := plan.Workouts[len(plan.Workouts)-1]
	if !last.IsRaceDay || last.WorkoutType != domain.WorkoutMarathonRace {
		t.Fatalf("last workout = %+v, want the race", last.WorkoutSchedule)
	}
	if want := date(2027, time.April, 17); !last.Date.Equal(want) || !plan.EndDate.Equal(want) {
		t.Errorf("race on %s, end %s, want %s", last.Date, plan.EndDate, want)
	}
	if last.RaceDetails == nil || last.RaceDetails.StartTime != DefaultRaceStartTime {
		t.Errorf("RaceDetails = %+v", last.RaceDetails)
	}
}

func TestGenerate_Idempotent(t *testing.T) {
	p := baseParams()
	p.Preferences.RaceLocation = "Boston"
	first, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	second, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	a, _ := json.Marshal(first)
	b, _ := json.Marshal(second)
	if !bytes.Equal(a, b) {
		t.Error("two runs with identical input produced different output")
	}
}

func TestGenerate_RaceDateTrimsFinalWeek(t *testing.T) {
	p := baseParams()
	race := date(2027, time.April, 15) // Thursday of week 14
	p.RaceDate = &race
	plan, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(plan.Workouts) != 41 {
		t.Fatalf("workouts = %d, want 41", len(plan.Workouts))
	}
	last := plan.Workouts[len(plan.Workouts)-1]
	if want := date(2027, time.April, 14); !last.Date.Equal(want) || last.WorkoutType != domain.WorkoutMarathonRace {
		t.Errorf("last workout %s on %s, want race on %s", last.WorkoutType, last.Date, want)
	}
	if plan.Summary.RaceDays != 1 || plan.Summary.IntervalRuns != 13 {
		t.Errorf("Summary = %+v", plan.Summary)
	}
}

func TestGenerate_ShakeoutBeforeSundayRace(t *testing.T) {
	days := []int{1, 3, 6, 7}
	p := baseParams()
	p.WorkoutDays = days
	p.Preferences = &domain.TrainingPreferences{
		WorkoutDays: days,
		Assignment:  domain.AssignmentPreferences{PreferredLongRunDay: 6},
	}
	race := date(2027, time.April, 18)
	p.RaceDate = &race

	plan, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(plan.Workouts) != 56 {
		t.Fatalf("workouts = %d, want 56", len(plan.Workouts))
	}
	n := len(plan.Workouts)
	saturday, sunday := plan.Workouts[n-2], plan.Workouts[n-1]
	if saturday.WorkoutType != domain.WorkoutEasyRun || saturday.IsRaceDay {
		t.Errorf("Saturday = %s, want easy shakeout", saturday.WorkoutType)
	}
	if sunday.WorkoutType != domain.WorkoutMarathonRace || !sunday.IsRaceDay {
		t.Errorf("Sunday = %s, want race", sunday.WorkoutType)
	}
	if plan.Summary.RaceDays != 1 || plan.Summary.LongRuns != 13 || plan.Summary.EasyRuns != 14 {
		t.Errorf("Summary = %+v", plan.Summary)
	}
}

func TestGenerate_RaceBeforeStartIsEmpty(t *testing.T) {
	p := baseParams()
	race := date(2027, time.January, 1)
	p.RaceDate = &race
	plan, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if plan.TotalWeeks >= 0 || len(plan.Workouts) != 0 {
		t.Errorf("TotalWeeks = %d, workouts = %d, want negative and empty", plan.TotalWeeks, len(plan.Workouts))
	}
}

func TestGenerate_MondayRaceAfterWeekBoundary(t *testing.T) {
	days := []int{2, 4, 7}
	race := date(2026, time.April, 20) // Monday
	p := Params{
		StartDate:   date(2026, time.January, 12),
		WorkoutDays: days,
		GoalTime:    "3:30:00",
		Preferences: &domain.TrainingPreferences{DistanceUnit: domain.UnitMiles, WorkoutDays: days},
		RaceDate:    &race,
	}
	plan, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(plan.Workouts) != 42 {
		t.Fatalf("workouts = %d, want 42", len(plan.Workouts))
	}
	last := plan.Workouts[len(plan.Workouts)-1]
	if want := date(2026, time.April, 19); !last.Date.Equal(want) || !last.IsRaceDay || last.Week != 14 {
		t.Errorf("last workout %s in week %d on %s, want race in week 14 on %s", last.WorkoutType, last.Week, last.Date, want)
	}
	if plan.Summary.RaceDays != 1 {
		t.Errorf("Summary = %+v", plan.Summary)
	}
}

func TestGenerate_RaceOutsideFinalWeek(t *testing.T) {
	p := baseParams()
	race := date(2027, time.May, 1)
	p.RaceDate = &race
	if _, err := Generate(p); !errors.Is(err, domain.ErrScheduling) {
		t.Errorf("Generate error = %v, want scheduling error", err)
	}
}

func TestGenerate_WeekOverride(t *testing.T) {
	p := baseParams()
	p.Overrides = map[int][]domain.DayPattern{
		3: {
			{DayOfWeek: 7, WorkoutType: domain.WorkoutLongRun},
			{DayOfWeek: 2, WorkoutType: domain.WorkoutTempoRun},
		},
	}
	plan, err := Generate(p)
	if err != nil {
		t.Fatalf("Generate error: %v", err)
	}
	if len(plan.Workouts) != 41 {
		t.Fatalf("workouts = %d, want 41", len(plan.Workouts))
	}
	var week3 []domain.ScheduledWorkout
	for _, sw := range plan.Workouts {
		if sw.Week == 3 {
			week3 = append(week3, sw)
		}
	}
	if len(week3) != 2 || week3[0].DayOfWeek != 2 || week3[1].DayOfWeek != 7 {
		t.Fatalf("week 3 = %+v", week3)
	}
	if want := date(2027, time.January, 31); !week3[1].Date.Equal(want) {
		t.Errorf("week 3 long run on %s, want %s", week3[1].Date, want)
	}
}

func TestSummarize(t *testing.T) {
	workouts := []domain.ScheduledWorkout{
		{WorkoutSchedule: domain.WorkoutSchedule{WorkoutType: domain.WorkoutEasyRun}, Content: domain.WorkoutContent{TotalDistance: 5}},
		{WorkoutSchedule: domain.WorkoutSchedule{WorkoutType: domain.WorkoutTempoRun}, Content: domain.WorkoutContent{TotalDistance: 4.5}},
	}
	s := Summarize(workouts)
	if s.TotalWorkouts != 2 || s.EasyRuns != 1 || s.TempoRuns != 1 || s.TotalDistance != 9.5 {
		t.Errorf("Summarize = %+v", s)
	}
}
