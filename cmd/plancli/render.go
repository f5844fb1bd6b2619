package main

import (
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/pace"
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	weekColumnWidth     = 5
	dateColumnWidth     = 11
	dayColumnWidth      = 10
	workoutColumnWidth  = 34
	distanceColumnWidth = 9
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("12"))

	headerStyle = lipgloss.NewStyle().
			Bold(true)

	separatorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240"))

	raceStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("9"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("11"))
)

func renderPlan(plan domain.AdaptedWorkoutPlan, prefs domain.TrainingPreferences) string {
	var b strings.Builder
	unit := prefs.Unit()

	b.WriteString(titleStyle.Render(fmt.Sprintf(
		"%s plan: %d workouts from %s (%d weeks available)",
		plan.Strategy, plan.Summary.TotalWorkouts, plan.StartDate.Format(dateLayout), plan.Weeks,
	)))
	b.WriteString("\n")
	for _, w := range plan.Warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteString("\n")
	}
	for _, r := range plan.Recommendations {
		b.WriteString("- " + r + "\n")
	}
	b.WriteString("\n")

	if len(plan.Workouts) == 0 {
		b.WriteString("No workouts scheduled.\n")
		return b.String()
	}

	headers := []string{
		padRight("Week", weekColumnWidth),
		padRight("Date", dateColumnWidth),
		padRight("Day", dayColumnWidth),
		padRight("Workout", workoutColumnWidth),
		padRight("Distance", distanceColumnWidth),
		"Pace",
	}
	b.WriteString(headerStyle.Render(strings.Join(headers, "  ")))
	b.WriteString("\n")
	b.WriteString(separatorStyle.Render(strings.Repeat("-", weekColumnWidth+dateColumnWidth+dayColumnWidth+workoutColumnWidth+distanceColumnWidth+20)))
	b.WriteString("\n")

	for _, sw := range plan.Workouts {
		line := fmt.Sprintf("%s  %s  %s  %s  %s  %s",
			padRight(fmt.Sprint(sw.Week), weekColumnWidth),
			padRight(sw.Date.Format(dateLayout), dateColumnWidth),
			padRight(domain.WeekdayName(sw.DayOfWeek), dayColumnWidth),
			padRight(truncate(sw.Content.Name, workoutColumnWidth), workoutColumnWidth),
			padRight(pace.FormatDistance(sw.Content.TotalDistance, unit), distanceColumnWidth),
			pace.FormatPaceAs(sw.Content.TargetPace, unit, prefs.PaceFormat),
		)
		if sw.IsRaceDay {
			line = raceStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headerStyle.Render(fmt.Sprintf(
		"Total %s: %d tempo, %d intervals, %d long, %d easy, %d recovery",
		pace.FormatDistance(plan.Summary.TotalDistance, unit),
		plan.Summary.TempoRuns, plan.Summary.IntervalRuns, plan.Summary.LongRuns,
		plan.Summary.EasyRuns, plan.Summary.RecoveryRuns,
	)))
	b.WriteString("\n")
	return b.String()
}

func renderPaces(goal domain.MarathonTime, paces domain.PaceSet, prefs domain.TrainingPreferences) string {
	unit, format := prefs.Unit(), prefs.PaceFormat
	rows := [][2]string{
		{"Marathon", pace.FormatPaceAs(paces.MarathonPace, unit, format)},
		{"Tempo", pace.FormatPaceAs(paces.TempoPace, unit, format)},
		{"800m repeat", paces.IntervalRepTime.String()},
		{"Interval", pace.FormatPaceAs(paces.IntervalPace, unit, format)},
		{"Recovery jog", paces.RecoveryTime.String()},
		{"Easy", pace.FormatPaceAs(paces.EasyPace, unit, format)},
		{"Long run", pace.FormatPaceAs(paces.LongRunPace, unit, format)},
	}
	var b strings.Builder
	b.WriteString(titleStyle.Render("Paces for " + goal.String()))
	b.WriteString("\n")
	for _, r := range rows {
		b.WriteString(padRight(r[0], 14) + r[1] + "\n")
	}
	return b.String()
}

func renderAssessment(a domain.TimelineAssessment) string {
	var b strings.Builder
	verdict := "viable"
	if !a.IsViable {
		verdict = "not viable"
	}
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d weeks available: %s, strategy %s", a.AvailableWeeks, verdict, a.Strategy)))
	b.WriteString("\n")
	for _, w := range a.Warnings {
		b.WriteString(warningStyle.Render("! " + w))
		b.WriteString("\n")
	}
	return b.String()
}

func renderAssignment(w domain.WeekAssignment) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("Week %d, quality score %d", w.Week, w.QualityScore)))
	b.WriteString("\n")
	for _, a := range w.Assignments {
		mark := " "
		if a.IsOptimal {
			mark = "*"
		}
		b.WriteString(fmt.Sprintf("%s %s%s\n", mark, padRight(domain.WeekdayName(a.DayOfWeek), dayColumnWidth+2), a.WorkoutType.DisplayName()))
		for _, c := range a.Conflicts {
			b.WriteString(warningStyle.Render("    ! " + c))
			b.WriteString("\n")
		}
	}
	for _, s := range w.Suggestions {
		b.WriteString("- " + s + "\n")
	}
	return b.String()
}

func renderSchedule(slots []domain.WorkoutSchedule) string {
	var b strings.Builder
	week := 0
	for _, s := range slots {
		if s.Week != week {
			week = s.Week
			b.WriteString(headerStyle.Render(fmt.Sprintf("Week %d", week)))
			b.WriteString("\n")
		}
		b.WriteString(fmt.Sprintf("  %s  %s%s\n",
			s.Date.Format(dateLayout),
			padRight(domain.WeekdayName(s.DayOfWeek), dayColumnWidth),
			s.WorkoutType.DisplayName(),
		))
	}
	return b.String()
}

// padRight pads a string to the specified width.
func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}

// truncate shortens s to width with an ellipsis.
func truncate(s string, width int) string {
	if len(s) <= width {
		return s
	}
	if width <= 3 {
		return s[:width]
	}
	return s[:width-3] + "..."
}
