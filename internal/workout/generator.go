// Package workout builds the content of each workout type for a given
// curriculum week. Generators are pure: the same week, paces and preferences
// always yield the same content.
package workout

import (
	"fmt"
	"math"

	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/pace"
)

const (
	tempoWarmUpMiles     = 1.0
	tempoCoolDownMiles   = 1.0
	intervalWarmUpMiles  = 2.0
	intervalCoolDownMile = 1.0
	intervalRepMiles     = 0.5 // 800m, canonical half mile
	intervalRepMeters    = 800
	recoveryOffset       = 30 // recovery runs are this many s/mi slower than easy
)

// Generator builds workout content from a precomputed pace set.
type Generator struct {
	paces  domain.PaceSet
	goal   domain.MarathonTime
	unit   domain.DistanceUnit
	format domain.PaceFormat
}

// New calculates the pace set for goal and returns a generator for it.
func New(goal domain.MarathonTime, prefs *domain.TrainingPreferences) (*Generator, error) {
	paces, err := pace.Calculate(goal, prefs)
	if err != nil {
		return nil, err
	}
	return NewWithPaces(goal, paces, prefs), nil
}

// NewWithPaces returns a generator that reuses an already calculated pace set.
func NewWithPaces(goal domain.MarathonTime, paces domain.PaceSet, prefs *domain.TrainingPreferences) *Generator {
	g := &Generator{paces: paces, goal: goal, unit: domain.UnitMiles, format: domain.PaceFormatMinutesPerUnit}
	if prefs != nil {
		g.unit = prefs.Unit()
		if prefs.PaceFormat != "" {
			g.format = prefs.PaceFormat
		}
	}
	return g
}

// Paces returns the pace set the generator uses.
func (g *Generator) Paces() domain.PaceSet { return g.paces }

// Generate dispatches on the workout type. A long run in week 14 becomes the race.
func (g *Generator) Generate(t domain.WorkoutType, week int) (domain.WorkoutContent, error) {
	switch t {
	case domain.WorkoutTempoRun:
		return g.TempoRun(week)
	case domain.WorkoutInterval800m:
		return g.IntervalRun(week)
	case domain.WorkoutLongRun:
		return g.LongRun(week)
	case domain.WorkoutMarathonRace:
		if err := ValidateWeek(week); err != nil {
			return domain.WorkoutContent{}, err
		}
		return g.race(week), nil
	case domain.WorkoutEasyRun:
		return g.EasyRun(week)
	case domain.WorkoutRecoveryRun:
		return g.RecoveryRun(week)
	}
	return domain.WorkoutContent{}, domain.NewValidationError("workoutType", "unknown workout type %q", t)
}

// ValidateWeek rejects weeks outside the 14-week curriculum.
func ValidateWeek(week int) error {
	if week < 1 || week > TotalWeeks {
		return domain.NewValidationError("week", "week %d is outside 1..%d", week, TotalWeeks)
	}
	return nil
}

// TempoRun: easy warm-up, sustained tempo block, easy cool-down.
func (g *Generator) TempoRun(week int) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	miles := TempoMiles(week)
	warmUp := domain.Segment{Name: "Warm-up", Distance: tempoWarmUpMiles, Pace: g.paces.EasyPace}
	block := domain.Segment{Name: "Tempo", Distance: miles, Pace: g.paces.TempoPace}
	coolDown := domain.Segment{Name: "Cool-down", Distance: tempoCoolDownMiles, Pace: g.paces.EasyPace}

	minutes := pace.SegmentMinutes(warmUp.Distance, warmUp.Pace) +
		pace.SegmentMinutes(block.Distance, block.Pace) +
		pace.SegmentMinutes(coolDown.Distance, coolDown.Pace)

	return domain.WorkoutContent{
		Type:          domain.WorkoutTempoRun,
		Week:          week,
		Name:          fmt.Sprintf("Tempo Run - %s", g.distance(miles)),
		Description:   fmt.Sprintf("%s at tempo pace (%s) between an easy warm-up and cool-down.", g.distance(miles), g.pace(block.Pace)),
		TotalDistance: warmUp.Distance + block.Distance + coolDown.Distance,
		Duration:      int(math.Round(minutes)),
		TargetPace:    g.paces.TempoPace,
		Instructions: []string{
			fmt.Sprintf("Warm up with %s of easy running at %s.", g.distance(warmUp.Distance), g.pace(warmUp.Pace)),
			fmt.Sprintf("Run %s at tempo pace, %s. This should feel comfortably hard: you can speak in short phrases.", g.distance(miles), g.pace(block.Pace)),
			"Hold an even effort. If the pace slips late, ease off rather than surge.",
			fmt.Sprintf("Cool down with %s of easy running at %s.", g.distance(coolDown.Distance), g.pace(coolDown.Pace)),
		},
		Structure: g.structure(warmUp, block, coolDown),
		Tempo: &domain.TempoDetails{
			WarmUp:        warmUp,
			TempoDistance: miles,
			TempoPace:     g.paces.TempoPace,
			CoolDown:      coolDown,
		},
	}, nil
}

// IntervalRun: easy warm-up, 800m repeats with equal-time recovery jogs, easy cool-down.
func (g *Generator) IntervalRun(week int) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	reps := IntervalRepetitions(week)
	warmUp := domain.Segment{Name: "Warm-up", Distance: intervalWarmUpMiles, Pace: g.paces.EasyPace}
	coolDown := domain.Segment{Name: "Cool-down", Distance: intervalCoolDownMile, Pace: g.paces.EasyPace}
	set := domain.IntervalSet{
		Repetitions:    reps,
		DistanceMeters: intervalRepMeters,
		RepTime:        g.paces.IntervalRepTime,
		Recovery:       g.paces.RecoveryTime,
		Pace:           g.paces.IntervalPace,
	}

	seconds := float64(reps*set.RepTime.TotalSeconds() + (reps-1)*set.Recovery.TotalSeconds())
	minutes := pace.SegmentMinutes(warmUp.Distance, warmUp.Pace) +
		seconds/60 +
		pace.SegmentMinutes(coolDown.Distance, coolDown.Pace)

	return domain.WorkoutContent{
		Type:          domain.WorkoutInterval800m,
		Week:          week,
		Name:          fmt.Sprintf("800m Intervals - %d x 800m", reps),
		Description:   fmt.Sprintf("%d x 800m in %s each with %s recovery jogs.", reps, set.RepTime, set.Recovery),
		TotalDistance: warmUp.Distance + float64(reps)*intervalRepMiles + coolDown.Distance,
		Duration:      int(math.Round(minutes)),
		TargetPace:    g.paces.IntervalPace,
		Instructions: []string{
			fmt.Sprintf("Warm up with %s of easy running at %s.", g.distance(warmUp.Distance), g.pace(warmUp.Pace)),
			fmt.Sprintf("Run %d repetitions of 800m, each in %s (%s).", reps, set.RepTime, g.pace(set.Pace)),
			fmt.Sprintf("Jog slowly for %s between repetitions.", set.Recovery),
			"Aim for even splits. The last repetition should match the first.",
			fmt.Sprintf("Cool down with %s of easy running at %s.", g.distance(coolDown.Distance), g.pace(coolDown.Pace)),
		},
		Structure: fmt.Sprintf("%s → %d × 800m at %s with %s recovery → %s",
			g.segment(warmUp), reps, set.RepTime, set.Recovery, g.segment(coolDown)),
		Intervals: &domain.IntervalDetails{WarmUp: warmUp, Set: set, CoolDown: coolDown},
	}, nil
}

// LongRun: time-based easy running followed by marathon-pace miles. Week 14
// returns the race itself.
func (g *Generator) LongRun(week int) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	if week == TotalWeeks {
		return g.race(week), nil
	}

	easyMinutes := LongRunEasyMinutes(week)
	mpMiles := LongRunMarathonMiles(week)
	easyMiles := roundTenth(float64(easyMinutes*60) / float64(g.paces.LongRunPace.TotalSeconds()))

	var segments []domain.Segment
	if easyMiles > 0 {
		segments = append(segments, domain.Segment{Name: "Easy", Distance: easyMiles, Pace: g.paces.LongRunPace})
	}
	segments = append(segments, domain.Segment{Name: "Marathon pace", Distance: mpMiles, Pace: g.paces.MarathonPace})

	target := g.paces.LongRunPace
	instructions := []string{}
	if easyMinutes > 0 {
		instructions = append(instructions,
			fmt.Sprintf("Run %d minutes (about %s) at an easy, conversational %s.", easyMinutes, g.distance(easyMiles), g.pace(g.paces.LongRunPace)))
	} else {
		target = g.paces.MarathonPace
		instructions = append(instructions, "Start with a few minutes of easy jogging to loosen up.")
	}
	instructions = append(instructions,
		fmt.Sprintf("Finish with %s at marathon pace, %s.", g.distance(mpMiles), g.pace(g.paces.MarathonPace)),
		"Practice race-day fueling: take fluids and a gel every 30 to 45 minutes.",
		"Walk briefly afterwards and refuel within an hour.",
	)

	return domain.WorkoutContent{
		Type:          domain.WorkoutLongRun,
		Week:          week,
		Name:          fmt.Sprintf("Long Run - %s", g.distance(easyMiles+mpMiles)),
		Description:   fmt.Sprintf("%d minutes easy, then %s at marathon pace.", easyMinutes, g.distance(mpMiles)),
		TotalDistance: roundTenth(easyMiles + mpMiles),
		Duration:      easyMinutes + int(math.Round(pace.SegmentMinutes(mpMiles, g.paces.MarathonPace))),
		TargetPace:    target,
		Instructions:  instructions,
		Structure:     g.structure(segments...),
		LongRun: &domain.LongRunDetails{
			EasyMinutes:          easyMinutes,
			EasyDistance:         easyMiles,
			EasyPace:             g.paces.LongRunPace,
			MarathonPaceDistance: mpMiles,
			MarathonPace:         g.paces.MarathonPace,
		},
	}, nil
}

func (g *Generator) race(week int) domain.WorkoutContent {
	race := domain.Segment{Name: "Race", Distance: pace.MarathonDistanceMiles, Pace: g.paces.MarathonPace}
	return domain.WorkoutContent{
		Type:          domain.WorkoutMarathonRace,
		Week:          week,
		Name:          "Marathon Race Day",
		Description:   fmt.Sprintf("Race the full marathon at goal pace, %s, for a %s finish.", g.pace(g.paces.MarathonPace), g.goal),
		TotalDistance: pace.MarathonDistanceMiles,
		Duration:      int(math.Round(float64(g.goal.TotalSeconds()) / 60)),
		TargetPace:    g.paces.MarathonPace,
		Instructions: []string{
			"Start conservatively: the first miles should feel easy at goal pace.",
			fmt.Sprintf("Settle into %s and run by effort on hills.", g.pace(g.paces.MarathonPace)),
			"Fuel early and on schedule, exactly as practiced in your long runs.",
			"If you feel strong after 20 miles, gradually pick it up.",
		},
		Structure: g.structure(race),
		LongRun: &domain.LongRunDetails{
			MarathonPaceDistance: pace.MarathonDistanceMiles,
			MarathonPace:         g.paces.MarathonPace,
			IsRaceDay:            true,
		},
	}
}

// EasyRun is a steady aerobic run at the calculated easy pace.
func (g *Generator) EasyRun(week int) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	miles := easyRunMiles[week-1]
	return g.singleSegment(domain.WorkoutEasyRun, week, "Easy", miles, g.paces.EasyPace, []string{
		fmt.Sprintf("Run %s at an easy, conversational %s.", g.distance(miles), g.pace(g.paces.EasyPace)),
		"Keep the effort relaxed. Slower is fine; faster is not.",
	}), nil
}

// RecoveryRun is a short run slower than easy pace, usually after the long run.
func (g *Generator) RecoveryRun(week int) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	miles := recoveryRunMiles[week-1]
	p := pace.Offset(g.paces.EasyPace, recoveryOffset)
	return g.singleSegment(domain.WorkoutRecoveryRun, week, "Recovery", miles, p, []string{
		fmt.Sprintf("Jog %s very gently at %s or slower.", g.distance(miles), g.pace(p)),
		"The goal is blood flow, not fitness. Skip it if anything hurts.",
	}), nil
}

func (g *Generator) singleSegment(t domain.WorkoutType, week int, name string, miles float64, p domain.PaceTime, instructions []string) domain.WorkoutContent {
	seg := domain.Segment{Name: name, Distance: miles, Pace: p}
	return domain.WorkoutContent{
		Type:          t,
		Week:          week,
		Name:          fmt.Sprintf("%s - %s", t.DisplayName(), g.distance(miles)),
		Description:   fmt.Sprintf("%s at %s.", g.distance(miles), g.pace(p)),
		TotalDistance: miles,
		Duration:      int(math.Round(pace.SegmentMinutes(miles, p))),
		TargetPace:    p,
		Instructions:  instructions,
		Structure:     g.structure(seg),
		Easy:          &domain.EasyDetails{Distance: miles, Pace: p},
	}
}

func (g *Generator) pace(p domain.PaceTime) string {
	return pace.FormatPaceAs(p, g.unit, g.format)
}

func (g *Generator) distance(miles float64) string {
	return pace.FormatDistance(miles, g.unit)
}

func (g *Generator) segment(s domain.Segment) string {
	return fmt.Sprintf("%s (%s at %s)", s.Name, g.distance(s.Distance), g.pace(s.Pace))
}

func (g *Generator) structure(segments ...domain.Segment) string {
	out := ""
	for i, s := range segments {
		if i > 0 {
			out += " → "
		}
		out += g.segment(s)
	}
	return out
}

func roundTenth(v float64) float64 {
	return math.Round(v*10) / 10
}

// GenerateTempoRun builds a tempo run for week from a goal time.
func GenerateTempoRun(week int, goal domain.MarathonTime, prefs *domain.TrainingPreferences) (domain.WorkoutContent, error) {
	return generate(domain.WorkoutTempoRun, week, goal, prefs)
}

// GenerateIntervalRun builds an 800m interval session for week from a goal time.
func GenerateIntervalRun(week int, goal domain.MarathonTime, prefs *domain.TrainingPreferences) (domain.WorkoutContent, error) {
	return generate(domain.WorkoutInterval800m, week, goal, prefs)
}

// GenerateLongRun builds the long run (or race, in week 14) from a goal time.
func GenerateLongRun(week int, goal domain.MarathonTime, prefs *domain.TrainingPreferences) (domain.WorkoutContent, error) {
	return generate(domain.WorkoutLongRun, week, goal, prefs)
}

func generate(t domain.WorkoutType, week int, goal domain.MarathonTime, prefs *domain.TrainingPreferences) (domain.WorkoutContent, error) {
	if err := ValidateWeek(week); err != nil {
		return domain.WorkoutContent{}, err
	}
	g, err := New(goal, prefs)
	if err != nil {
		return domain.WorkoutContent{}, err
	}
	return g.Generate(t, week)
}
