package assignment

import (
	"errors"
	"strings"
	"testing"

	"alcyxob/marathon-planner/internal/domain"
)

func typesByDay(w domain.WeekAssignment) map[int]domain.WorkoutType {
	out := make(map[int]domain.WorkoutType, len(w.Assignments))
	for _, a := range w.Assignments {
		out[a.DayOfWeek] = a.WorkoutType
	}
	return out
}

func TestAssignWeek_ThreeDaysCanonicalPattern(t *testing.T) {
	for week := 1; week <= 14; week++ {
		result, err := AssignWeek([]int{7, 2, 4}, week, domain.AssignmentPreferences{})
		if err != nil {
			t.Fatalf("week %d: AssignWeek error: %v", week, err)
		}
		counts := map[domain.WorkoutType]int{}
		for _, a := range result.Assignments {
			counts[a.WorkoutType]++
		}
		if counts[domain.WorkoutLongRun]+counts[domain.WorkoutMarathonRace] != 1 {
			t.Errorf("week %d: long runs = %v, want exactly one", week, counts)
		}
		if counts[domain.WorkoutTempoRun] != 1 || counts[domain.WorkoutInterval800m] != 1 {
			t.Errorf("week %d: counts = %v, want one tempo and one interval", week, counts)
		}
	}
}

func TestAssignWeek_ThreeDaysPlacement(t *testing.T) {
	result, err := AssignWeek([]int{2, 4, 7}, 3, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	got := typesByDay(result)
	want := map[int]domain.WorkoutType{2: domain.WorkoutTempoRun, 4: domain.WorkoutInterval800m, 7: domain.WorkoutLongRun}
	for day, wantType := range want {
		if got[day] != wantType {
			t.Errorf("day %d = %q, want %q", day, got[day], wantType)
		}
	}
	if result.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", result.QualityScore)
	}
	if len(result.Suggestions) != 0 {
		t.Errorf("Suggestions = %v, want none", result.Suggestions)
	}
	if result.Assignments[0].Priority != priorityTempo || result.Assignments[2].Priority != priorityLongRun {
		t.Errorf("priorities = %+v", result.Assignments)
	}
}

func TestAssignWeek_RaceWeek(t *testing.T) {
	result, err := AssignWeek([]int{2, 4, 7}, 14, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	if got := typesByDay(result)[7]; got != domain.WorkoutMarathonRace {
		t.Errorf("Sunday = %q, want marathon_race", got)
	}
}

func TestAssignWeek_TwoDaysAlternate(t *testing.T) {
	tests := []struct {
		week int
		want domain.WorkoutType
	}{
		{1, domain.WorkoutTempoRun},
		{2, domain.WorkoutInterval800m},
		{7, domain.WorkoutTempoRun},
		{10, domain.WorkoutInterval800m},
	}
	for _, tt := range tests {
		result, err := AssignWeek([]int{3, 6}, tt.week, domain.AssignmentPreferences{})
		if err != nil {
			t.Fatalf("AssignWeek error: %v", err)
		}
		got := typesByDay(result)
		if got[6] != domain.WorkoutLongRun {
			t.Errorf("week %d: Saturday = %q, want long run", tt.week, got[6])
		}
		if got[3] != tt.want {
			t.Errorf("week %d: Wednesday = %q, want %q", tt.week, got[3], tt.want)
		}
	}
}

func TestAssignWeek_LongRunPreference(t *testing.T) {
	tests := []struct {
		name  string
		days  []int
		prefs domain.AssignmentPreferences
		want  int
	}{
		{"explicit preference", []int{2, 4, 6}, domain.AssignmentPreferences{PreferredLongRunDay: 2}, 2},
		{"preference not selected falls back to last", []int{2, 4, 6}, domain.AssignmentPreferences{PreferredLongRunDay: 7}, 6},
		{"weekend prefers sunday", []int{1, 6, 7}, domain.AssignmentPreferences{PreferWeekendLongRun: true}, 7},
		{"weekend without weekend days", []int{1, 3, 5}, domain.AssignmentPreferences{PreferWeekendLongRun: true}, 5},
		{"default last day", []int{1, 3, 5}, domain.AssignmentPreferences{}, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LongRunDay(tt.days, tt.prefs); got != tt.want {
				t.Errorf("LongRunDay = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestAssignWeek_QualityDayPreferences(t *testing.T) {
	prefs := domain.AssignmentPreferences{PreferredTempoDay: 4, PreferredIntervalDay: 2}
	result, err := AssignWeek([]int{2, 4, 5, 7}, 5, prefs)
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	got := typesByDay(result)
	if got[4] != domain.WorkoutTempoRun || got[2] != domain.WorkoutInterval800m {
		t.Errorf("pattern = %v, want tempo Thursday and interval Tuesday", got)
	}
	if got[5] != domain.WorkoutEasyRun {
		t.Errorf("Friday = %q, want easy run", got[5])
	}
}

func TestAssignWeek_FiveDays(t *testing.T) {
	result, err := AssignWeek([]int{1, 2, 4, 6, 7}, 5, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	got := typesByDay(result)
	want := map[int]domain.WorkoutType{
		1: domain.WorkoutTempoRun,
		2: domain.WorkoutInterval800m,
		4: domain.WorkoutRecoveryRun,
		6: domain.WorkoutEasyRun,
		7: domain.WorkoutLongRun,
	}
	for day, wantType := range want {
		if got[day] != wantType {
			t.Errorf("day %d = %q, want %q", day, got[day], wantType)
		}
	}
	if result.QualityScore != 74 {
		t.Errorf("QualityScore = %d, want 74", result.QualityScore)
	}
}

func TestAssignWeek_AvoidBackToBackHard(t *testing.T) {
	prefs := domain.AssignmentPreferences{AvoidBackToBackHard: true}
	result, err := AssignWeek([]int{1, 2, 4, 6, 7}, 5, prefs)
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	got := typesByDay(result)
	if got[2] != domain.WorkoutTempoRun || got[4] != domain.WorkoutInterval800m {
		t.Errorf("pattern = %v, want tempo Tuesday and interval Thursday", got)
	}
	if got[1] != domain.WorkoutRecoveryRun {
		t.Errorf("Monday = %q, want recovery after the Sunday long run", got[1])
	}
	if result.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", result.QualityScore)
	}
	for _, a := range result.Assignments {
		if len(a.Conflicts) != 0 {
			t.Errorf("day %d conflicts = %v, want none", a.DayOfWeek, a.Conflicts)
		}
	}
}

func TestAssignWeek_ScoringPenalties(t *testing.T) {
	result, err := AssignWeek([]int{1, 2, 3}, 3, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	// two adjacent hard pairs (-30), long run on Wednesday (-10), no optimal bonus
	if result.QualityScore != 60 {
		t.Errorf("QualityScore = %d, want 60", result.QualityScore)
	}
	long := result.Assignments[2]
	if long.WorkoutType != domain.WorkoutLongRun || long.IsOptimal {
		t.Errorf("long run assignment = %+v, want non-optimal long run", long)
	}
	if len(long.Conflicts) != 1 || long.Conflicts[0] != longRunAdjacentConflict {
		t.Errorf("long run conflicts = %v", long.Conflicts)
	}
	if len(result.Suggestions) != 2 {
		t.Errorf("Suggestions = %v, want 2", result.Suggestions)
	}
}

func TestAssignWeek_FewRestDays(t *testing.T) {
	result, err := AssignWeek([]int{1, 2, 3, 4, 5, 6, 7}, 4, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	if result.QualityScore > 80 {
		t.Errorf("QualityScore = %d, want the rest-day penalty applied", result.QualityScore)
	}
	found := false
	for _, s := range result.Suggestions {
		if strings.Contains(s, "rest days") {
			found = true
		}
	}
	if !found {
		t.Errorf("Suggestions = %v, want rest-day suggestion", result.Suggestions)
	}
}

func TestAssignWeek_RestDayConflict(t *testing.T) {
	prefs := domain.AssignmentPreferences{RestDays: []int{4}}
	result, err := AssignWeek([]int{2, 4, 7}, 2, prefs)
	if err != nil {
		t.Fatalf("AssignWeek error: %v", err)
	}
	for _, a := range result.Assignments {
		if a.DayOfWeek == 4 {
			if a.IsOptimal || len(a.Conflicts) != 1 {
				t.Errorf("Thursday = %+v, want rest-day conflict", a)
			}
		}
	}
}

func TestAssignWeek_InvalidDays(t *testing.T) {
	for _, days := range [][]int{{}, {0, 3}, {3, 3}, {2, 9}} {
		if _, err := AssignWeek(days, 1, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("days %v: error = %v, want validation error", days, err)
		}
	}
}

func TestAnalyzePattern(t *testing.T) {
	pattern := []domain.DayPattern{
		{DayOfWeek: 1, WorkoutType: domain.WorkoutInterval800m},
		{DayOfWeek: 3, WorkoutType: domain.WorkoutTempoRun},
		{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun},
	}
	result, err := AnalyzePattern(5, pattern, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("AnalyzePattern error: %v", err)
	}
	if result.QualityScore != 100 || len(result.Assignments) != 3 {
		t.Errorf("result = %+v, want 3 assignments scoring 100", result)
	}

	twoLong := append(pattern, domain.DayPattern{DayOfWeek: 7, WorkoutType: domain.WorkoutLongRun})
	if _, err := AnalyzePattern(5, twoLong, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("two long runs error = %v, want validation error", err)
	}
	bad := []domain.DayPattern{{DayOfWeek: 2, WorkoutType: "yoga"}}
	if _, err := AnalyzePattern(5, bad, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("unknown type error = %v, want validation error", err)
	}
	if _, err := AnalyzePattern(15, pattern, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("week 15 error = %v, want validation error", err)
	}
}

func TestAnalyzePattern_MarathonRaceOnlyInRaceWeek(t *testing.T) {
	race := []domain.DayPattern{
		{DayOfWeek: 3, WorkoutType: domain.WorkoutTempoRun},
		{DayOfWeek: 6, WorkoutType: domain.WorkoutMarathonRace},
	}
	for _, week := range []int{1, 5, 13} {
		if _, err := AnalyzePattern(week, race, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
			t.Errorf("week %d: error = %v, want validation error", week, err)
		}
	}
	result, err := AnalyzePattern(14, race, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("week 14: AnalyzePattern error: %v", err)
	}
	if len(result.Assignments) != 2 {
		t.Errorf("week 14: assignments = %d, want 2", len(result.Assignments))
	}
}

func TestAdjacent(t *testing.T) {
	tests := []struct {
		a, b int
		want bool
	}{
		{1, 2, true},
		{2, 1, true},
		{7, 1, true},
		{1, 3, false},
		{6, 7, true},
		{4, 4, false},
	}
	for _, tt := range tests {
		if got := Adjacent(tt.a, tt.b); got != tt.want {
			t.Errorf("Adjacent(%d, %d) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
