package template

import (
	"context"
	"sync"

	"alcyxob/marathon-planner/internal/domain"
)

// Store loads and saves a runner's template set. Load returns an empty set
// for an owner that has saved nothing yet.
type Store interface {
	Load(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error)
	Save(ctx context.Context, set *domain.WeekTemplateSet) error
}

// MemoryStore keeps template sets in process memory. Used by the CLI and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	sets map[string]domain.WeekTemplateSet // ownerID -> set
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{sets: make(map[string]domain.WeekTemplateSet)}
}

func (s *MemoryStore) Load(ctx context.Context, ownerID string) (*domain.WeekTemplateSet, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	set, exists := s.sets[ownerID]
	if !exists {
		return &domain.WeekTemplateSet{OwnerID: ownerID, Weeks: []domain.WeekTemplate{}}, nil
	}
	out := cloneSet(set)
	return &out, nil
}

func (s *MemoryStore) Save(ctx context.Context, set *domain.WeekTemplateSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sets[set.OwnerID] = cloneSet(*set)
	return nil
}

// cloneSet copies the slices so callers never share state with the store.
func cloneSet(set domain.WeekTemplateSet) domain.WeekTemplateSet {
	out := set
	out.Weeks = make([]domain.WeekTemplate, len(set.Weeks))
	for i, w := range set.Weeks {
		out.Weeks[i] = domain.WeekTemplate{Week: w.Week, Pattern: append([]domain.DayPattern(nil), w.Pattern...)}
	}
	out.RestDays = append([]int(nil), set.RestDays...)
	return out
}
