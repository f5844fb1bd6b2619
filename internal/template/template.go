// Package template lets a runner override the automatic pattern of single
// weeks and choose rest days. State lives in an injected Store.
package template

import (
	"context"
	"fmt"
	"sort"
	"time"

	"alcyxob/marathon-planner/internal/assignment"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/workout"
)

// WeekTemplateManager edits per-week pattern overrides.
type WeekTemplateManager struct {
	store Store
}

func NewWeekTemplateManager(store Store) *WeekTemplateManager {
	return &WeekTemplateManager{store: store}
}

// Get returns the owner's template set.
func (m *WeekTemplateManager) Get(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error) {
	return m.store.Load(ctx, ownerID)
}

// SetWeekPattern validates and stores the pattern for week, replacing any
// earlier override, and returns its quality analysis. The owner's saved rest
// days apply when prefs names none.
func (m *WeekTemplateManager) SetWeekPattern(ctx context.Context, ownerID string, week int, pattern []domain.DayPattern, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error) {
	set, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return domain.WeekAssignment{}, err
	}
	if len(prefs.RestDays) == 0 {
		prefs.RestDays = set.RestDays
	}
	analysis, err := assignment.AnalyzePattern(week, pattern, prefs)
	if err != nil {
		return domain.WeekAssignment{}, err
	}

	stored := analysis.Pattern()
	replaced := false
	for i := range set.Weeks {
		if set.Weeks[i].Week == week {
			set.Weeks[i].Pattern = stored
			replaced = true
		}
	}
	if !replaced {
		set.Weeks = append(set.Weeks, domain.WeekTemplate{Week: week, Pattern: stored})
		sort.Slice(set.Weeks, func(i, j int) bool { return set.Weeks[i].Week < set.Weeks[j].Week })
	}
	set.UpdatedAt = time.Now().UTC()

	if err := m.store.Save(ctx, set); err != nil {
		return domain.WeekAssignment{}, err
	}
	return analysis, nil
}

// ClearWeek drops the override for week. Clearing a week without an
// override is not an error.
func (m *WeekTemplateManager) ClearWeek(ctx context.Context, ownerID string, week int) error {
	if err := workout.ValidateWeek(week); err != nil {
		return err
	}
	set, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return err
	}
	kept := set.Weeks[:0]
	for _, w := range set.Weeks {
		if w.Week != week {
			kept = append(kept, w)
		}
	}
	set.Weeks = kept
	set.UpdatedAt = time.Now().UTC()
	return m.store.Save(ctx, set)
}

// Overrides returns the owner's week patterns keyed by week.
func (m *WeekTemplateManager) Overrides(ctx context.Context, ownerID string) (map[int][]domain.DayPattern, error) {
	set, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	return set.Overrides(), nil
}

// RestDayReport is the result of saving rest days.
type RestDayReport struct {
	RestDays    []int    `json:"restDays"`
	Conflicts   []string `json:"conflicts"`
	Recommended []int    `json:"recommended"`
}

// RestDayManager edits the rest-day preference of a runner.
type RestDayManager struct {
	store Store
}

func NewRestDayManager(store Store) *RestDayManager {
	return &RestDayManager{store: store}
}

// SetRestDays stores restDays. An empty list clears them. Overlaps with
// workoutDays are reported, not rejected.
func (m *RestDayManager) SetRestDays(ctx context.Context, ownerID string, restDays, workoutDays []int, prefs domain.AssignmentPreferences) (RestDayReport, error) {
	if len(restDays) > 0 {
		if err := domain.ValidateWorkoutDays(restDays); err != nil {
			return RestDayReport{}, domain.NewValidationError("restDays", "rest days must be distinct weekdays 1 (Monday) to 7 (Sunday), got %v", restDays)
		}
	}
	if len(workoutDays) > 0 {
		if err := domain.ValidateWorkoutDays(workoutDays); err != nil {
			return RestDayReport{}, err
		}
	}

	set, err := m.store.Load(ctx, ownerID)
	if err != nil {
		return RestDayReport{}, err
	}
	set.RestDays = domain.SortedDays(restDays)
	set.UpdatedAt = time.Now().UTC()
	if err := m.store.Save(ctx, set); err != nil {
		return RestDayReport{}, err
	}

	report := RestDayReport{RestDays: set.RestDays, Conflicts: []string{}, Recommended: []int{}}
	training := make(map[int]bool, len(workoutDays))
	for _, d := range workoutDays {
		training[d] = true
	}
	for _, d := range set.RestDays {
		if training[d] {
			report.Conflicts = append(report.Conflicts, fmt.Sprintf("%s is both a workout day and a rest day", domain.WeekdayName(d)))
		}
	}
	if len(workoutDays) > 0 {
		report.Recommended = RecommendRestDays(workoutDays, prefs)
	}
	return report, nil
}

// RecommendRestDays suggests rest days for a training week: the day after the
// long run first, then the remaining free days in weekday order. When every
// day is a workout day only the day after the long run is suggested.
func RecommendRestDays(workoutDays []int, prefs domain.AssignmentPreferences) []int {
	if domain.ValidateWorkoutDays(workoutDays) != nil {
		return []int{}
	}
	sorted := domain.SortedDays(workoutDays)
	training := make(map[int]bool, len(sorted))
	for _, d := range sorted {
		training[d] = true
	}
	afterLong := assignment.LongRunDay(sorted, prefs)%7 + 1

	if len(sorted) == 7 {
		return []int{afterLong}
	}
	out := make([]int, 0, 7-len(sorted))
	if !training[afterLong] {
		out = append(out, afterLong)
	}
	for d := 1; d <= 7; d++ {
		if !training[d] && d != afterLong {
			out = append(out, d)
		}
	}
	return out
}
