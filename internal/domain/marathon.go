package domain

import "fmt"

// MarathonTime is a goal finish time. Parse it from "H:MM:SS" with pace.ParseMarathonTime.
type MarathonTime struct {
	Hours   int `bson:"hours" json:"hours"`
	Minutes int `bson:"minutes" json:"minutes"`
	Seconds int `bson:"seconds" json:"seconds"`
}

// TotalSeconds returns the goal time in seconds.
func (m MarathonTime) TotalSeconds() int {
	return m.Hours*3600 + m.Minutes*60 + m.Seconds
}

func (m MarathonTime) String() string {
	return fmt.Sprintf("%d:%02d:%02d", m.Hours, m.Minutes, m.Seconds)
}

// PaceTime is minutes:seconds per distance unit. Seconds is always in [0,60).
type PaceTime struct {
	Minutes int `bson:"minutes" json:"minutes"`
	Seconds int `bson:"seconds" json:"seconds"`
}

// TotalSeconds returns the pace as whole seconds.
func (p PaceTime) TotalSeconds() int {
	return p.Minutes*60 + p.Seconds
}

// String renders the pace without a unit, e.g. "7:26".
func (p PaceTime) String() string {
	return fmt.Sprintf("%d:%02d", p.Minutes, p.Seconds)
}

// DistanceUnit is the unit a runner wants distances and paces displayed in.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "miles"
	UnitKilometers DistanceUnit = "kilometers"
)

// Valid reports whether the unit is supported.
func (u DistanceUnit) Valid() bool {
	return u == UnitMiles || u == UnitKilometers
}

// Short returns the abbreviation used in formatted output ("mi" or "km").
func (u DistanceUnit) Short() string {
	if u == UnitKilometers {
		return "km"
	}
	return "mi"
}

// PaceFormat selects how paces are rendered for display.
type PaceFormat string

const (
	PaceFormatMinutesPerUnit PaceFormat = "min_per_unit" // "7:26/mi"
	PaceFormatDecimal        PaceFormat = "decimal"      // "7.43 min/mi"
)

// PaceSet holds every target pace for one plan. All values are per mile;
// conversion to the runner's unit happens only when formatting.
type PaceSet struct {
	MarathonPace    PaceTime `bson:"marathonPace" json:"marathonPace"`
	TempoPace       PaceTime `bson:"tempoPace" json:"tempoPace"`
	IntervalPace    PaceTime `bson:"intervalPace" json:"intervalPace"`       // mile-equivalent of the 800m rep time
	IntervalRepTime PaceTime `bson:"intervalRepTime" json:"intervalRepTime"` // time for one 800m repetition
	RecoveryTime    PaceTime `bson:"recoveryTime" json:"recoveryTime"`       // jog between repetitions
	EasyPace        PaceTime `bson:"easyPace" json:"easyPace"`
	LongRunPace     PaceTime `bson:"longRunPace" json:"longRunPace"`
}
