package calendar

import (
	"errors"
	"testing"
	"time"

	"alcyxob/marathon-planner/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestISOWeekdayAndWeekStart(t *testing.T) {
	tests := []struct {
		name      string
		in        time.Time
		weekday   int
		wantStart time.Time
	}{
		{"monday", date(2026, time.October, 12), 1, date(2026, time.October, 12)},
		{"wednesday", date(2026, time.October, 14), 3, date(2026, time.October, 12)},
		{"sunday", date(2026, time.October, 18), 7, date(2026, time.October, 12)},
		{"with clock", time.Date(2026, time.October, 17, 23, 30, 0, 0, time.UTC), 6, date(2026, time.October, 12)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ISOWeekday(tt.in); got != tt.weekday {
				t.Errorf("ISOWeekday = %d, want %d", got, tt.weekday)
			}
			if got := WeekStart(tt.in); !got.Equal(tt.wantStart) {
				t.Errorf("WeekStart = %s, want %s", got, tt.wantStart)
			}
		})
	}
}

func TestCalculateStartDateFromRaceDate_SaturdayRace(t *testing.T) {
	race := date(2027, time.April, 17) // Saturday
	start, err := CalculateStartDateFromRaceDate(race, []int{1, 3, 6})
	if err != nil {
		t.Fatalf("CalculateStartDateFromRaceDate error: %v", err)
	}
	raceMonday := date(2027, time.April, 12)
	if want := raceMonday.AddDate(0, 0, -13*7); !start.Equal(want) {
		t.Fatalf("start = %s, want %s", start.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if ISOWeekday(start) != 1 {
		t.Errorf("start weekday = %d, want Monday", ISOWeekday(start))
	}
}

func TestFinalWorkoutDate_WalksBack(t *testing.T) {
	race := date(2027, time.April, 18) // Sunday
	final, err := FinalWorkoutDate(race, []int{2, 4})
	if err != nil {
		t.Fatalf("FinalWorkoutDate error: %v", err)
	}
	if want := date(2027, time.April, 15); !final.Equal(want) { // Thursday
		t.Errorf("final = %s, want %s", final.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestCalculateStartDateFromRaceDate_MondayRace(t *testing.T) {
	race := date(2026, time.April, 20) // Monday, not a workout day
	days := []int{2, 4, 7}
	final, err := FinalWorkoutDate(race, days)
	if err != nil {
		t.Fatalf("FinalWorkoutDate error: %v", err)
	}
	if want := date(2026, time.April, 19); !final.Equal(want) {
		t.Errorf("final = %s, want %s", final.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	start, err := CalculateStartDateFromRaceDate(race, days)
	if err != nil {
		t.Fatalf("CalculateStartDateFromRaceDate error: %v", err)
	}
	if want := date(2026, time.January, 12); !start.Equal(want) {
		t.Errorf("start = %s, want %s", start.Format("2006-01-02"), want.Format("2006-01-02"))
	}
	if got := PlanEndDate(start, PlanWeeks); !got.Equal(final) {
		t.Errorf("week %d ends %s, want the final workout %s", PlanWeeks, got.Format("2006-01-02"), final.Format("2006-01-02"))
	}
}

func TestFinalWorkoutDate_SchedulingErrors(t *testing.T) {
	for _, days := range [][]int{nil, {}, {0}, {8}} {
		if _, err := FinalWorkoutDate(date(2027, time.April, 18), days); !errors.Is(err, domain.ErrScheduling) {
			t.Errorf("days %v: error = %v, want scheduling error", days, err)
		}
	}
}

func TestGenerateSchedule(t *testing.T) {
	start := date(2027, time.January, 4) // Monday
	schedule, err := GenerateSchedule(start, []int{6, 1, 3})
	if err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}
	if len(schedule) != 42 {
		t.Fatalf("len = %d, want 42", len(schedule))
	}
	first := schedule[0]
	if first.Week != 1 || first.DayOfWeek != 1 || !first.Date.Equal(start) {
		t.Errorf("first = %+v, want week 1 Monday %s", first, start)
	}
	last := schedule[len(schedule)-1]
	if last.Week != 14 || last.DayOfWeek != 6 || !last.Date.Equal(date(2027, time.April, 10)) {
		t.Errorf("last = %+v, want week 14 Saturday 2027-04-10", last)
	}
	for i := 1; i < len(schedule); i++ {
		if !schedule[i].Date.After(schedule[i-1].Date) {
			t.Fatalf("schedule not strictly ordered at %d", i)
		}
		if ISOWeekday(schedule[i].Date) != schedule[i].DayOfWeek {
			t.Fatalf("entry %d: date weekday %d != DayOfWeek %d", i, ISOWeekday(schedule[i].Date), schedule[i].DayOfWeek)
		}
	}
}

func TestGenerateSchedule_MidWeekStartUsesMonday(t *testing.T) {
	start := date(2027, time.January, 6) // Wednesday
	schedule, err := GenerateSchedule(start, []int{2})
	if err != nil {
		t.Fatalf("GenerateSchedule error: %v", err)
	}
	if want := date(2027, time.January, 5); !schedule[0].Date.Equal(want) {
		t.Errorf("first date = %s, want %s", schedule[0].Date.Format("2006-01-02"), want.Format("2006-01-02"))
	}
}

func TestGenerateSchedule_InvalidDays(t *testing.T) {
	if _, err := GenerateSchedule(date(2027, time.January, 4), []int{1, 1}); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("duplicate days error = %v, want validation error", err)
	}
}

func TestWeeksBetween(t *testing.T) {
	start := date(2027, time.January, 4) // Monday
	tests := []struct {
		name string
		race time.Time
		want int
	}{
		{"same week", date(2027, time.January, 9), 1},
		{"three weeks", date(2027, time.January, 24), 3},
		{"fourteen weeks", date(2027, time.April, 11), 14},
		{"race one day before start", date(2027, time.January, 3), -1},
		{"race two weeks before start", date(2026, time.December, 20), -3},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeeksBetween(start, tt.race); got != tt.want {
				t.Errorf("WeeksBetween = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestPlanEndDate(t *testing.T) {
	if got := PlanEndDate(date(2027, time.January, 4), 14); !got.Equal(date(2027, time.April, 11)) {
		t.Errorf("PlanEndDate = %s, want 2027-04-11", got.Format("2006-01-02"))
	}
}
