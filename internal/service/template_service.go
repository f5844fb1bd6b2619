package service

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/logger"
	"alcyxob/marathon-planner/internal/template"
	"context"
)

// TemplateService manages a runner's week overrides and rest days.
type TemplateService interface {
	Get(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error)
	SetWeek(ctx context.Context, ownerID string, week int, pattern []domain.DayPattern, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error)
	ClearWeek(ctx context.Context, ownerID string, week int) error
	SetRestDays(ctx context.Context, ownerID string, restDays, workoutDays []int, prefs domain.AssignmentPreferences) (template.RestDayReport, error)
	RecommendRestDays(workoutDays []int, prefs domain.AssignmentPreferences) []int
}

type templateService struct {
	weeks    *template.WeekTemplateManager
	restDays *template.RestDayManager
}

// NewTemplateService builds both managers over one store. The Mongo week
// template repository and template.MemoryStore both satisfy template.Store.
func NewTemplateService(store template.Store) TemplateService {
	return &templateService{
		weeks:    template.NewWeekTemplateManager(store),
		restDays: template.NewRestDayManager(store),
	}
}

func (s *templateService) Get(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error) {
	if ownerID == "" {
		return nil, ErrOwnerRequired
	}
	return s.weeks.Get(ctx, ownerID)
}

func (s *templateService) SetWeek(ctx context.Context, ownerID string, week int, pattern []domain.DayPattern, prefs domain.AssignmentPreferences) (domain.WeekAssignment, error) {
	if ownerID == "" {
		return domain.WeekAssignment{}, ErrOwnerRequired
	}
	analysis, err := s.weeks.SetWeekPattern(ctx, ownerID, week, pattern, prefs)
	if err != nil {
		return domain.WeekAssignment{}, err
	}
	logger.Info("Saved week %d template for %s (score %d)", week, ownerID, analysis.QualityScore)
	return analysis, nil
}

func (s *templateService) ClearWeek(ctx context.Context, ownerID string, week int) error {
	if ownerID == "" {
		return ErrOwnerRequired
	}
	return s.weeks.ClearWeek(ctx, ownerID, week)
}

func (s *templateService) SetRestDays(ctx context.Context, ownerID string, restDays, workoutDays []int, prefs domain.AssignmentPreferences) (template.RestDayReport, error) {
	if ownerID == "" {
		return template.RestDayReport{}, ErrOwnerRequired
	}
	return s.restDays.SetRestDays(ctx, ownerID, restDays, workoutDays, prefs)
}

func (s *templateService) RecommendRestDays(workoutDays []int, prefs domain.AssignmentPreferences) []int {
	return template.RecommendRestDays(workoutDays, prefs)
}
