// Package pace derives every training pace of a plan from the goal finish time.
//
// Paces are stored per mile. Conversion to kilometers happens only in the
// Format* helpers so rounding never compounds through the arithmetic.
package pace

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"alcyxob/marathon-planner/internal/domain"
)

const (
	MarathonDistanceMiles = 26.2188
	KilometersPerMile     = 1.609344

	tempoOffsetSeconds = 12  // tempo is this much faster than marathon pace
	tempoFloorSeconds  = 180 // 3:00/mi
	easyOffsetSeconds  = 60  // easy is this much slower than marathon pace
	easyFloorSeconds   = 540 // 9:00/mi, easy running is never faster

	minGoalSeconds = 90 * 60
	maxGoalSeconds = 10*3600 - 1
)

// ParseMarathonTime parses "H:MM:SS". Exactly three segments of ASCII digits
// are required; signs are rejected. Minutes and seconds must be below 60.
func ParseMarathonTime(s string) (domain.MarathonTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 3 {
		return domain.MarathonTime{}, domain.NewValidationError("goalTime", "%q must be in H:MM:SS format", s)
	}
	values := make([]int, 3)
	for i, part := range parts {
		if !isDigits(part) {
			return domain.MarathonTime{}, domain.NewValidationError("goalTime", "%q has a non-numeric segment %q", s, part)
		}
		v, err := strconv.Atoi(part)
		if err != nil {
			return domain.MarathonTime{}, domain.NewValidationError("goalTime", "%q has an out-of-range segment %q", s, part)
		}
		values[i] = v
	}
	goal := domain.MarathonTime{Hours: values[0], Minutes: values[1], Seconds: values[2]}
	if err := ValidateMarathonTime(goal); err != nil {
		return domain.MarathonTime{}, err
	}
	return goal, nil
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// ValidateMarathonTime checks field ranges and that the goal is a plausible
// marathon time (1:30:00 to 9:59:59).
func ValidateMarathonTime(goal domain.MarathonTime) error {
	if goal.Hours < 0 || goal.Minutes < 0 || goal.Minutes > 59 || goal.Seconds < 0 || goal.Seconds > 59 {
		return domain.NewValidationError("goalTime", "%s has out-of-range minutes or seconds", goal)
	}
	total := goal.TotalSeconds()
	if total < minGoalSeconds || total > maxGoalSeconds {
		return domain.NewValidationError("goalTime", "%s is outside the supported range 1:30:00 to 9:59:59", goal)
	}
	return nil
}

// SecondsToPaceTime rounds s to the nearest second and normalizes it.
// Negative input is treated as zero.
func SecondsToPaceTime(s float64) domain.PaceTime {
	if s < 0 || math.IsNaN(s) {
		s = 0
	}
	total := int(math.Round(s))
	return domain.PaceTime{Minutes: total / 60, Seconds: total % 60}
}

// PaceTimeToSeconds is the inverse of SecondsToPaceTime.
func PaceTimeToSeconds(p domain.PaceTime) int {
	return p.TotalSeconds()
}

// MarathonPaceSeconds is the unrounded per-mile marathon pace.
func MarathonPaceSeconds(goal domain.MarathonTime) float64 {
	return float64(goal.TotalSeconds()) / MarathonDistanceMiles
}

// IntervalRepSeconds applies the unit-shift rule: a goal of H hours M minutes
// gives an 800m repetition of H minutes M seconds.
func IntervalRepSeconds(goal domain.MarathonTime) int {
	return goal.Hours*60 + goal.Minutes
}

// Calculate derives the full pace set for a goal time.
func Calculate(goal domain.MarathonTime, prefs *domain.TrainingPreferences) (domain.PaceSet, error) {
	if err := ValidateMarathonTime(goal); err != nil {
		return domain.PaceSet{}, err
	}
	if prefs != nil && prefs.DistanceUnit != "" && !prefs.DistanceUnit.Valid() {
		return domain.PaceSet{}, domain.NewValidationError("distanceUnit", "unsupported distance unit %q", prefs.DistanceUnit)
	}

	marathon := MarathonPaceSeconds(goal)
	tempo := math.Max(marathon-tempoOffsetSeconds, tempoFloorSeconds)
	easy := math.Max(marathon+easyOffsetSeconds, easyFloorSeconds)
	rep := IntervalRepSeconds(goal)

	return domain.PaceSet{
		MarathonPace:    SecondsToPaceTime(marathon),
		TempoPace:       SecondsToPaceTime(tempo),
		IntervalPace:    SecondsToPaceTime(float64(rep * 2)),
		IntervalRepTime: SecondsToPaceTime(float64(rep)),
		RecoveryTime:    SecondsToPaceTime(float64(rep)),
		EasyPace:        SecondsToPaceTime(easy),
		LongRunPace:     SecondsToPaceTime(easy),
	}, nil
}

// CalculateFromString parses the goal and derives the pace set.
func CalculateFromString(goal string, prefs *domain.TrainingPreferences) (domain.PaceSet, error) {
	parsed, err := ParseMarathonTime(goal)
	if err != nil {
		return domain.PaceSet{}, err
	}
	return Calculate(parsed, prefs)
}

// Offset returns p shifted by delta seconds, never below zero.
func Offset(p domain.PaceTime, delta int) domain.PaceTime {
	return SecondsToPaceTime(float64(p.TotalSeconds() + delta))
}

// SegmentMinutes is the time to cover miles at p, in fractional minutes.
func SegmentMinutes(miles float64, p domain.PaceTime) float64 {
	return miles * float64(p.TotalSeconds()) / 60
}

// FormatPace renders a per-mile pace in the runner's unit, e.g. "7:26/mi"
// or "4:37/km".
func FormatPace(p domain.PaceTime, unit domain.DistanceUnit) string {
	return FormatPaceAs(p, unit, domain.PaceFormatMinutesPerUnit)
}

// FormatPaceAs is FormatPace with an explicit pace format.
func FormatPaceAs(p domain.PaceTime, unit domain.DistanceUnit, format domain.PaceFormat) string {
	seconds := float64(p.TotalSeconds())
	if unit == domain.UnitKilometers {
		seconds /= KilometersPerMile
	}
	if format == domain.PaceFormatDecimal {
		return fmt.Sprintf("%.2f min/%s", seconds/60, unit.Short())
	}
	return fmt.Sprintf("%s/%s", SecondsToPaceTime(seconds), unit.Short())
}

// ConvertDistance turns miles into the display unit, rounded to 0.1.
func ConvertDistance(miles float64, unit domain.DistanceUnit) float64 {
	if unit == domain.UnitKilometers {
		miles *= KilometersPerMile
	}
	return math.Round(miles*10) / 10
}

// FormatDistance renders miles in the display unit, e.g. "3 mi" or "4.8 km".
func FormatDistance(miles float64, unit domain.DistanceUnit) string {
	return strconv.FormatFloat(ConvertDistance(miles, unit), 'f', -1, 64) + " " + unit.Short()
}
