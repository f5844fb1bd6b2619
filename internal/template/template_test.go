package template

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"alcyxob/marathon-planner/internal/domain"
)

const owner = "runner-1"

func TestMemoryStore_LoadUnknownOwner(t *testing.T) {
	set, err := NewMemoryStore().Load(context.Background(), owner)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if set.OwnerID != owner || len(set.Weeks) != 0 {
		t.Errorf("Load = %+v, want empty set for %s", set, owner)
	}
}

func TestMemoryStore_ReturnsCopies(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	saved := &domain.WeekTemplateSet{
		OwnerID:  owner,
		Weeks:    []domain.WeekTemplate{{Week: 2, Pattern: []domain.DayPattern{{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun}}}},
		RestDays: []int{1},
	}
	if err := store.Save(ctx, saved); err != nil {
		t.Fatalf("Save error: %v", err)
	}
	saved.RestDays[0] = 5

	loaded, err := store.Load(ctx, owner)
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	loaded.Weeks[0].Pattern[0].DayOfWeek = 7

	again, _ := store.Load(ctx, owner)
	if again.RestDays[0] != 1 || again.Weeks[0].Pattern[0].DayOfWeek != 6 {
		t.Errorf("store state leaked through a caller's slice: %+v", again)
	}
}

func TestWeekTemplateManager_SetAndClear(t *testing.T) {
	ctx := context.Background()
	m := NewWeekTemplateManager(NewMemoryStore())

	pattern := []domain.DayPattern{
		{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun},
		{DayOfWeek: 2, WorkoutType: domain.WorkoutTempoRun},
		{DayOfWeek: 4, WorkoutType: domain.WorkoutInterval800m},
	}
	analysis, err := m.SetWeekPattern(ctx, owner, 3, pattern, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("SetWeekPattern error: %v", err)
	}
	if analysis.QualityScore != 100 {
		t.Errorf("QualityScore = %d, want 100", analysis.QualityScore)
	}

	overrides, err := m.Overrides(ctx, owner)
	if err != nil {
		t.Fatalf("Overrides error: %v", err)
	}
	want := []domain.DayPattern{
		{DayOfWeek: 2, WorkoutType: domain.WorkoutTempoRun},
		{DayOfWeek: 4, WorkoutType: domain.WorkoutInterval800m},
		{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun},
	}
	if !reflect.DeepEqual(overrides[3], want) {
		t.Errorf("week 3 override = %+v, want %+v", overrides[3], want)
	}

	replacement := []domain.DayPattern{{DayOfWeek: 7, WorkoutType: domain.WorkoutLongRun}}
	if _, err := m.SetWeekPattern(ctx, owner, 3, replacement, domain.AssignmentPreferences{}); err != nil {
		t.Fatalf("SetWeekPattern error: %v", err)
	}
	set, _ := m.Get(ctx, owner)
	if len(set.Weeks) != 1 || len(set.Weeks[0].Pattern) != 1 {
		t.Errorf("weeks after replace = %+v, want one single-day week", set.Weeks)
	}

	if err := m.ClearWeek(ctx, owner, 3); err != nil {
		t.Fatalf("ClearWeek error: %v", err)
	}
	overrides, _ = m.Overrides(ctx, owner)
	if len(overrides) != 0 {
		t.Errorf("overrides after clear = %v, want none", overrides)
	}
}

func TestWeekTemplateManager_RejectsInvalidPatterns(t *testing.T) {
	ctx := context.Background()
	m := NewWeekTemplateManager(NewMemoryStore())

	twoLong := []domain.DayPattern{
		{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun},
		{DayOfWeek: 7, WorkoutType: domain.WorkoutLongRun},
	}
	if _, err := m.SetWeekPattern(ctx, owner, 3, twoLong, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("two long runs error = %v, want validation error", err)
	}
	single := []domain.DayPattern{{DayOfWeek: 6, WorkoutType: domain.WorkoutLongRun}}
	if _, err := m.SetWeekPattern(ctx, owner, 15, single, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("week 15 error = %v, want validation error", err)
	}
	if err := m.ClearWeek(ctx, owner, 0); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("ClearWeek(0) error = %v, want validation error", err)
	}
	overrides, _ := m.Overrides(ctx, owner)
	if len(overrides) != 0 {
		t.Errorf("invalid patterns were saved: %v", overrides)
	}
}

func TestWeekTemplateManager_UsesSavedRestDays(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	rest := NewRestDayManager(store)
	weeks := NewWeekTemplateManager(store)

	if _, err := rest.SetRestDays(ctx, owner, []int{4}, nil, domain.AssignmentPreferences{}); err != nil {
		t.Fatalf("SetRestDays error: %v", err)
	}
	pattern := []domain.DayPattern{
		{DayOfWeek: 2, WorkoutType: domain.WorkoutTempoRun},
		{DayOfWeek: 4, WorkoutType: domain.WorkoutEasyRun},
		{DayOfWeek: 7, WorkoutType: domain.WorkoutLongRun},
	}
	analysis, err := weeks.SetWeekPattern(ctx, owner, 5, pattern, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("SetWeekPattern error: %v", err)
	}
	thursday := analysis.Assignments[1]
	if thursday.IsOptimal || len(thursday.Conflicts) != 1 {
		t.Errorf("Thursday = %+v, want a rest-day conflict", thursday)
	}
}

func TestRestDayManager_SetRestDays(t *testing.T) {
	ctx := context.Background()
	m := NewRestDayManager(NewMemoryStore())

	report, err := m.SetRestDays(ctx, owner, []int{5, 3}, []int{1, 3, 6}, domain.AssignmentPreferences{})
	if err != nil {
		t.Fatalf("SetRestDays error: %v", err)
	}
	if !reflect.DeepEqual(report.RestDays, []int{3, 5}) {
		t.Errorf("RestDays = %v, want [3 5]", report.RestDays)
	}
	if len(report.Conflicts) != 1 {
		t.Errorf("Conflicts = %v, want Wednesday overlap", report.Conflicts)
	}
	if !reflect.DeepEqual(report.Recommended, []int{7, 2, 4, 5}) {
		t.Errorf("Recommended = %v, want [7 2 4 5]", report.Recommended)
	}

	if _, err := m.SetRestDays(ctx, owner, []int{8}, nil, domain.AssignmentPreferences{}); !errors.Is(err, domain.ErrValidation) {
		t.Errorf("invalid rest day error = %v, want validation error", err)
	}
}

func TestRecommendRestDays(t *testing.T) {
	tests := []struct {
		name  string
		days  []int
		prefs domain.AssignmentPreferences
		want  []int
	}{
		{"sunday long run", []int{2, 4, 7}, domain.AssignmentPreferences{}, []int{1, 3, 5, 6}},
		{"saturday long run", []int{1, 3, 6}, domain.AssignmentPreferences{}, []int{7, 2, 4, 5}},
		{"preferred long run day", []int{2, 3, 6, 7}, domain.AssignmentPreferences{PreferredLongRunDay: 3}, []int{4, 1, 5}},
		{"every day", []int{1, 2, 3, 4, 5, 6, 7}, domain.AssignmentPreferences{}, []int{1}},
		{"invalid", []int{}, domain.AssignmentPreferences{}, []int{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RecommendRestDays(tt.days, tt.prefs); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("RecommendRestDays = %v, want %v", got, tt.want)
			}
		})
	}
}
