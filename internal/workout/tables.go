package workout

import "fmt"

// TotalWeeks is the length of the canonical curriculum.
const TotalWeeks = 14

// Progression tables, index 0 = week 1. Values are hand-tuned; the taper is
// deliberately non-monotonic so these are data rather than formulas.
var (
	tempoMiles = [TotalWeeks]float64{3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 10, 8, 6, 4}

	intervalReps = [TotalWeeks]int{2, 3, 4, 5, 6, 7, 8, 9, 10, 10, 8, 6, 4, 2}

	// Minutes of easy running before the marathon-pace finish. Week 14 is race day.
	longRunEasyMinutes = [TotalWeeks]int{60, 70, 80, 90, 100, 110, 120, 120, 120, 100, 80, 60, 0, 0}

	// Marathon-pace miles that finish the long run. Week 14 is race day.
	longRunMarathonMiles = [TotalWeeks]float64{1, 2, 3, 4, 5, 6, 6, 6, 6, 6, 6, 6, 6, 0}

	easyRunMiles = [TotalWeeks]float64{5, 5, 6, 6, 7, 8, 9, 10, 10, 9, 8, 7, 6, 5}

	recoveryRunMiles = [TotalWeeks]float64{3, 3, 3, 3, 4, 4, 4, 4, 4, 4, 4, 3, 3, 2}
)

func init() {
	if err := validateTables(); err != nil {
		panic(err)
	}
}

func validateTables() error {
	for i := 0; i < TotalWeeks; i++ {
		week := i + 1
		if tempoMiles[i] <= 0 {
			return fmt.Errorf("tempo table: week %d has no distance", week)
		}
		if intervalReps[i] < 1 {
			return fmt.Errorf("interval table: week %d has no repetitions", week)
		}
		if week < TotalWeeks && longRunEasyMinutes[i]+int(longRunMarathonMiles[i]) == 0 {
			return fmt.Errorf("long run table: week %d is empty", week)
		}
		if easyRunMiles[i] <= 0 || recoveryRunMiles[i] <= 0 {
			return fmt.Errorf("easy/recovery table: week %d has no distance", week)
		}
	}
	return nil
}

// TempoMiles returns the tempo distance for a week (1-based).
func TempoMiles(week int) float64 { return tempoMiles[week-1] }

// IntervalRepetitions returns the number of 800m repeats for a week (1-based).
func IntervalRepetitions(week int) int { return intervalReps[week-1] }

// LongRunEasyMinutes returns the easy-running minutes of the long run for a week (1-based).
func LongRunEasyMinutes(week int) int { return longRunEasyMinutes[week-1] }

// LongRunMarathonMiles returns the marathon-pace miles of the long run for a week (1-based).
func LongRunMarathonMiles(week int) float64 { return longRunMarathonMiles[week-1] }
