package pace

import (
	"errors"
	"math"
	"testing"

	"alcyxob/marathon-planner/internal/domain"
)

func TestParseMarathonTime(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    domain.MarathonTime
		wantErr bool
	}{
		{"standard", "3:30:00", domain.MarathonTime{Hours: 3, Minutes: 30}, false},
		{"with seconds", "2:59:59", domain.MarathonTime{Hours: 2, Minutes: 59, Seconds: 59}, false},
		{"surrounding spaces", " 4:05:30 ", domain.MarathonTime{Hours: 4, Minutes: 5, Seconds: 30}, false},
		{"two segments", "3:30", domain.MarathonTime{}, true},
		{"four segments", "0:3:30:00", domain.MarathonTime{}, true},
		{"non-numeric", "3:xx:00", domain.MarathonTime{}, true},
		{"empty", "", domain.MarathonTime{}, true},
		{"minutes out of range", "3:75:00", domain.MarathonTime{}, true},
		{"too fast", "1:00:00", domain.MarathonTime{}, true},
		{"negative segment", "3:-1:00", domain.MarathonTime{}, true},
		{"plus signs", "+3:+30:00", domain.MarathonTime{}, true},
		{"plus sign on minutes", "3:+30:00", domain.MarathonTime{}, true},
		{"negative hours", "-3:30:00", domain.MarathonTime{}, true},
		{"empty segment", "3::00", domain.MarathonTime{}, true},
		{"inner space", "3: 30:00", domain.MarathonTime{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseMarathonTime(tt.input)
			if tt.wantErr {
				if !errors.Is(err, domain.ErrValidation) {
					t.Fatalf("ParseMarathonTime(%q) error = %v, want validation error", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMarathonTime(%q) error = %v", tt.input, err)
			}
			if got != tt.want {
				t.Errorf("ParseMarathonTime(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestCalculate_KnownGoal(t *testing.T) {
	paces, err := CalculateFromString("3:15:00", nil)
	if err != nil {
		t.Fatalf("CalculateFromString error: %v", err)
	}
	// 11700s / 26.2188 = 446.25 -> 7:26
	if got := paces.MarathonPace; got != (domain.PaceTime{Minutes: 7, Seconds: 26}) {
		t.Errorf("MarathonPace = %s, want 7:26", got)
	}
	if got := paces.TempoPace; got != (domain.PaceTime{Minutes: 7, Seconds: 14}) {
		t.Errorf("TempoPace = %s, want 7:14", got)
	}
	if got := paces.IntervalRepTime; got != (domain.PaceTime{Minutes: 3, Seconds: 15}) {
		t.Errorf("IntervalRepTime = %s, want 3:15", got)
	}
	if got := paces.IntervalPace; got != (domain.PaceTime{Minutes: 6, Seconds: 30}) {
		t.Errorf("IntervalPace = %s, want 6:30", got)
	}
	if paces.RecoveryTime != paces.IntervalRepTime {
		t.Errorf("RecoveryTime = %s, want rep time %s", paces.RecoveryTime, paces.IntervalRepTime)
	}
	if got := paces.EasyPace; got != (domain.PaceTime{Minutes: 9, Seconds: 0}) {
		t.Errorf("EasyPace = %s, want 9:00 floor", got)
	}
}

func TestCalculate_SlowGoalEasyPaceAboveFloor(t *testing.T) {
	paces, err := CalculateFromString("5:00:00", nil)
	if err != nil {
		t.Fatalf("CalculateFromString error: %v", err)
	}
	// 18000 / 26.2188 = 686.53 -> +60 = 746.53 -> 12:27
	if got := paces.EasyPace; got != (domain.PaceTime{Minutes: 12, Seconds: 27}) {
		t.Errorf("EasyPace = %s, want 12:27", got)
	}
	if paces.LongRunPace != paces.EasyPace {
		t.Errorf("LongRunPace = %s, want easy pace %s", paces.LongRunPace, paces.EasyPace)
	}
}

func TestCalculate_PaceHierarchy(t *testing.T) {
	for total := minGoalSeconds; total <= maxGoalSeconds; total += 97 {
		goal := domain.MarathonTime{Hours: total / 3600, Minutes: (total % 3600) / 60, Seconds: total % 60}
		paces, err := Calculate(goal, nil)
		if err != nil {
			t.Fatalf("Calculate(%s) error: %v", goal, err)
		}
		marathon := paces.MarathonPace.TotalSeconds()
		if paces.EasyPace.TotalSeconds() < marathon {
			t.Fatalf("%s: easy %s faster than marathon %s", goal, paces.EasyPace, paces.MarathonPace)
		}
		if paces.TempoPace.TotalSeconds() > marathon {
			t.Fatalf("%s: tempo %s slower than marathon %s", goal, paces.TempoPace, paces.MarathonPace)
		}
		if paces.IntervalPace.TotalSeconds() >= paces.TempoPace.TotalSeconds() {
			t.Fatalf("%s: interval %s not faster than tempo %s", goal, paces.IntervalPace, paces.TempoPace)
		}
		if paces.EasyPace.TotalSeconds() < easyFloorSeconds {
			t.Fatalf("%s: easy pace %s faster than 9:00/mi", goal, paces.EasyPace)
		}
	}
}

func TestCalculate_RejectsInvalidInput(t *testing.T) {
	if _, err := Calculate(domain.MarathonTime{}, nil); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("zero goal error = %v, want validation error", err)
	}
	prefs := &domain.TrainingPreferences{DistanceUnit: "furlongs"}
	if _, err := Calculate(domain.MarathonTime{Hours: 3}, prefs); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("bad unit error = %v, want validation error", err)
	}
}

func TestPaceTimeRoundTrip(t *testing.T) {
	for _, s := range []float64{0, 0.4, 0.5, 59.49, 59.5, 60, 179.9, 446.25, 540, 3599.6, 12345.678} {
		got := PaceTimeToSeconds(SecondsToPaceTime(s))
		if got != int(math.Round(s)) {
			t.Errorf("round trip of %v = %d, want %d", s, got, int(math.Round(s)))
		}
		p := SecondsToPaceTime(s)
		if p.Seconds < 0 || p.Seconds >= 60 {
			t.Errorf("SecondsToPaceTime(%v) = %+v, seconds not normalized", s, p)
		}
	}
}

func TestFormatPace(t *testing.T) {
	p := domain.PaceTime{Minutes: 8, Seconds: 5}
	tests := []struct {
		name   string
		unit   domain.DistanceUnit
		format domain.PaceFormat
		want   string
	}{
		{"miles", domain.UnitMiles, domain.PaceFormatMinutesPerUnit, "8:05/mi"},
		{"kilometers", domain.UnitKilometers, domain.PaceFormatMinutesPerUnit, "5:01/km"}, // 485 / 1.609344 = 301.4
		{"decimal miles", domain.UnitMiles, domain.PaceFormatDecimal, "8.08 min/mi"},
		{"empty unit defaults to miles", "", domain.PaceFormatMinutesPerUnit, "8:05/mi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := FormatPaceAs(p, tt.unit, tt.format); got != tt.want {
				t.Errorf("FormatPaceAs() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatDistance(t *testing.T) {
	if got := FormatDistance(3, domain.UnitMiles); got != "3 mi" {
		t.Errorf("FormatDistance(3, mi) = %q", got)
	}
	if got := FormatDistance(3, domain.UnitKilometers); got != "4.8 km" {
		t.Errorf("FormatDistance(3, km) = %q", got)
	}
	if got := FormatDistance(MarathonDistanceMiles, domain.UnitKilometers); got != "42.2 km" {
		t.Errorf("FormatDistance(marathon, km) = %q", got)
	}
}
