package domain

import "time"

// WeekTemplate overrides the automatic pattern of one plan week.
type WeekTemplate struct {
	Week    int          `bson:"week" json:"week"`
	Pattern []DayPattern `bson:"pattern" json:"pattern"`
}

// WeekTemplateSet is everything a runner has customised: week overrides and
// rest-day preferences. It is owned by the caller and passed to a store.
type WeekTemplateSet struct {
	OwnerID   string         `bson:"ownerId" json:"ownerId"`
	Weeks     []WeekTemplate `bson:"weeks" json:"weeks"`
	RestDays  []int          `bson:"restDays,omitempty" json:"restDays,omitempty"`
	UpdatedAt time.Time      `bson:"updatedAt" json:"updatedAt"`
}

// Overrides returns the week templates keyed by week number.
func (s WeekTemplateSet) Overrides() map[int][]DayPattern {
	out := make(map[int][]DayPattern, len(s.Weeks))
	for _, w := range s.Weeks {
		out[w.Week] = w.Pattern
	}
	return out
}
