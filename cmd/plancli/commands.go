package main

import (
	"alcyxob/marathon-planner/internal/api"
	"alcyxob/marathon-planner/internal/assignment"
	"alcyxob/marathon-planner/internal/calendar"
	"alcyxob/marathon-planner/internal/config"
	"alcyxob/marathon-planner/internal/domain"
	"alcyxob/marathon-planner/internal/logger"
	"alcyxob/marathon-planner/internal/pace"
	"alcyxob/marathon-planner/internal/template"
	"alcyxob/marathon-planner/internal/timeline"
	"alcyxob/marathon-planner/internal/workout"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"
)

const (
	dateLayout = "2006-01-02"
	cliOwner   = "plancli"
)

// prefFlags are the runner preferences shared by several commands.
type prefFlags struct {
	days          []int
	unit          string
	paceFormat    string
	longRunDay    int
	tempoDay      int
	intervalDay   int
	restDays      []int
	weekendLong   bool
	avoidAdjacent bool
	raceStartTime string
	raceLocation  string
}

func (f *prefFlags) register(cmd *cobra.Command) {
	fs := cmd.Flags()
	fs.IntSliceVar(&f.days, "days", nil, "workout weekdays, 1=Monday ... 7=Sunday (default from config)")
	fs.StringVar(&f.unit, "unit", "", "distance unit: miles or kilometers (default from config)")
	fs.StringVar(&f.paceFormat, "pace-format", "", "pace format: min_per_unit or decimal")
	fs.IntVar(&f.longRunDay, "long-day", 0, "preferred long-run weekday")
	fs.IntVar(&f.tempoDay, "tempo-day", 0, "preferred tempo weekday")
	fs.IntVar(&f.intervalDay, "interval-day", 0, "preferred interval weekday")
	fs.IntSliceVar(&f.restDays, "rest-days", nil, "preferred rest weekdays")
	fs.BoolVar(&f.weekendLong, "weekend-long", true, "prefer a weekend long run")
	fs.BoolVar(&f.avoidAdjacent, "avoid-adjacent", false, "keep hard workouts off consecutive days")
	fs.StringVar(&f.raceStartTime, "race-start", "", "race start time, HH:MM (default from config)")
	fs.StringVar(&f.raceLocation, "race-location", "", "race location")
}

func (f *prefFlags) preferences(cfg *config.Config) domain.TrainingPreferences {
	prefs := domain.TrainingPreferences{
		DistanceUnit:  domain.DistanceUnit(f.unit),
		PaceFormat:    domain.PaceFormat(f.paceFormat),
		WorkoutDays:   f.days,
		RaceStartTime: f.raceStartTime,
		RaceLocation:  f.raceLocation,
		Assignment: domain.AssignmentPreferences{
			PreferredLongRunDay:  f.longRunDay,
			PreferredTempoDay:    f.tempoDay,
			PreferredIntervalDay: f.intervalDay,
			RestDays:             f.restDays,
			AvoidBackToBackHard:  f.avoidAdjacent,
			PreferWeekendLongRun: f.weekendLong,
		},
	}
	if prefs.DistanceUnit == "" {
		prefs.DistanceUnit = domain.DistanceUnit(cfg.Planner.DistanceUnit)
	}
	if len(prefs.WorkoutDays) == 0 {
		prefs.WorkoutDays = cfg.Planner.DefaultWorkoutDays
	}
	if prefs.RaceStartTime == "" {
		prefs.RaceStartTime = cfg.Planner.RaceStartTime
	}
	return prefs
}

func newPlanCmd(opts *rootOptions) *cobra.Command {
	var (
		prefs     prefFlags
		goal      string
		race      string
		start     string
		overrides []string
		asJSON    bool
	)
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Generate a training plan for a goal time and race date",
		Example: `  plancli plan --goal 3:30:00 --race 2027-04-18 --days 2,4,7
  plancli plan --goal 4:00:00 --race 2027-04-18 --week 3:2=tempo_run,7=long_run --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			raceDate, err := parseDate("race", race)
			if err != nil {
				return err
			}
			startDate := calendar.DateOnly(time.Now())
			if start != "" {
				if startDate, err = parseDate("start", start); err != nil {
					return err
				}
			}
			p := prefs.preferences(opts.cfg)
			weeks, err := loadOverrides(cmd.Context(), overrides, p.Assignment)
			if err != nil {
				return err
			}

			plan, err := timeline.Adapt(timeline.Params{
				StartDate:   startDate,
				RaceDate:    raceDate,
				WorkoutDays: p.WorkoutDays,
				GoalTime:    goal,
				Preferences: &p,
				Overrides:   weeks,
			})
			if err != nil {
				return err
			}
			logger.Debug("Strategy %s, %d workouts", plan.Strategy, len(plan.Workouts))
			if asJSON {
				return writeJSON(cmd.OutOrStdout(), plan)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPlan(plan, p))
			return nil
		},
	}
	prefs.register(cmd)
	cmd.Flags().StringVar(&goal, "goal", "", "goal finish time, H:MM:SS")
	cmd.Flags().StringVar(&race, "race", "", "race date, YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "first possible training day, YYYY-MM-DD (default today)")
	cmd.Flags().StringArrayVar(&overrides, "week", nil, "week override WEEK:DAY=TYPE,DAY=TYPE (repeatable)")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the plan as JSON")
	_ = cmd.MarkFlagRequired("goal")
	_ = cmd.MarkFlagRequired("race")
	return cmd
}

func newPacesCmd(opts *rootOptions) *cobra.Command {
	var (
		prefs prefFlags
		goal  string
	)
	cmd := &cobra.Command{
		Use:   "paces",
		Short: "Show the training paces for a goal time",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prefs.preferences(opts.cfg)
			parsed, err := pace.ParseMarathonTime(goal)
			if err != nil {
				return err
			}
			paces, err := pace.Calculate(parsed, &p)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderPaces(parsed, paces, p))
			return nil
		},
	}
	prefs.register(cmd)
	cmd.Flags().StringVar(&goal, "goal", "", "goal finish time, H:MM:SS")
	_ = cmd.MarkFlagRequired("goal")
	return cmd
}

func newAssessCmd(opts *rootOptions) *cobra.Command {
	var race, start string
	cmd := &cobra.Command{
		Use:   "assess",
		Short: "Check whether there is enough time before a race",
		RunE: func(cmd *cobra.Command, args []string) error {
			raceDate, err := parseDate("race", race)
			if err != nil {
				return err
			}
			startDate := calendar.DateOnly(time.Now())
			if start != "" {
				if startDate, err = parseDate("start", start); err != nil {
					return err
				}
			}
			fmt.Fprint(cmd.OutOrStdout(), renderAssessment(timeline.AssessWindow(startDate, raceDate)))
			return nil
		},
	}
	cmd.Flags().StringVar(&race, "race", "", "race date, YYYY-MM-DD")
	cmd.Flags().StringVar(&start, "start", "", "first possible training day, YYYY-MM-DD (default today)")
	_ = cmd.MarkFlagRequired("race")
	return cmd
}

func newAssignCmd(opts *rootOptions) *cobra.Command {
	var (
		prefs prefFlags
		week  int
	)
	cmd := &cobra.Command{
		Use:   "assign",
		Short: "Assign workout types to weekdays and score the pattern",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := workout.ValidateWeek(week); err != nil {
				return err
			}
			p := prefs.preferences(opts.cfg)
			analysis, err := assignment.AssignWeek(p.WorkoutDays, week, p.Assignment)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), renderAssignment(analysis))
			return nil
		},
	}
	prefs.register(cmd)
	cmd.Flags().IntVar(&week, "week", 1, "plan week 1-14")
	return cmd
}

func newScheduleCmd(opts *rootOptions) *cobra.Command {
	var (
		prefs prefFlags
		start string
	)
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "List the dated workout slots of a 14-week plan",
		RunE: func(cmd *cobra.Command, args []string) error {
			startDate, err := parseDate("start", start)
			if err != nil {
				return err
			}
			p := prefs.preferences(opts.cfg)
			slots, err := calendar.GenerateSchedule(calendar.WeekStart(startDate), p.WorkoutDays)
			if err != nil {
				return err
			}
			byWeek := make(map[int]domain.WeekAssignment, calendar.PlanWeeks)
			for i := range slots {
				week := slots[i].Week
				analysis, ok := byWeek[week]
				if !ok {
					if analysis, err = assignment.AssignWeek(p.WorkoutDays, week, p.Assignment); err != nil {
						return err
					}
					byWeek[week] = analysis
				}
				slots[i].WorkoutType, _ = analysis.TypeOn(slots[i].DayOfWeek)
			}
			fmt.Fprint(cmd.OutOrStdout(), renderSchedule(slots))
			return nil
		},
	}
	prefs.register(cmd)
	cmd.Flags().StringVar(&start, "start", "", "plan start, YYYY-MM-DD (moved back to its Monday)")
	_ = cmd.MarkFlagRequired("start")
	return cmd
}

func newRestDaysCmd(opts *rootOptions) *cobra.Command {
	var prefs prefFlags
	cmd := &cobra.Command{
		Use:   "rest-days",
		Short: "Recommend rest days for a set of workout days",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := prefs.preferences(opts.cfg)
			if err := domain.ValidateWorkoutDays(p.WorkoutDays); err != nil {
				return err
			}
			names := []string{}
			for _, d := range template.RecommendRestDays(p.WorkoutDays, p.Assignment) {
				names = append(names, domain.WeekdayName(d))
			}
			fmt.Fprintln(cmd.OutOrStdout(), titleStyle.Render("Recommended rest days"))
			fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, ", "))
			return nil
		},
	}
	prefs.register(cmd)
	return cmd
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	var (
		user string
		ttl  time.Duration
	)
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a development bearer token for the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			if ttl <= 0 {
				ttl = opts.cfg.JWT.Expiration
			}
			token, err := api.NewToken(opts.cfg.JWT.Secret, user, ttl)
			if err != nil {
				return fmt.Errorf("minting token: %w (set jwt.secret or JWT_SECRET)", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().StringVar(&user, "user", "dev-runner", "token subject (owner ID)")
	cmd.Flags().DurationVar(&ttl, "ttl", 0, "token lifetime (default jwt.expiration)")
	return cmd
}

// loadOverrides validates each week override through the template manager and
// returns them keyed by week.
func loadOverrides(ctx context.Context, specs []string, prefs domain.AssignmentPreferences) (map[int][]domain.DayPattern, error) {
	if len(specs) == 0 {
		return nil, nil
	}
	manager := template.NewWeekTemplateManager(template.NewMemoryStore())
	for _, raw := range specs {
		week, pattern, err := parseWeekOverride(raw)
		if err != nil {
			return nil, err
		}
		analysis, err := manager.SetWeekPattern(ctx, cliOwner, week, pattern, prefs)
		if err != nil {
			return nil, err
		}
		if len(analysis.Suggestions) > 0 {
			logger.Warn("Week %d override scores %d: %s", week, analysis.QualityScore, strings.Join(analysis.Suggestions, " "))
		}
	}
	return manager.Overrides(ctx, cliOwner)
}

// parseWeekOverride parses "3:2=tempo_run,7=long_run".
func parseWeekOverride(raw string) (int, []domain.DayPattern, error) {
	weekPart, daysPart, ok := strings.Cut(raw, ":")
	if !ok {
		return 0, nil, fmt.Errorf("week override %q: expected WEEK:DAY=TYPE,...", raw)
	}
	week, err := strconv.Atoi(strings.TrimSpace(weekPart))
	if err != nil {
		return 0, nil, fmt.Errorf("week override %q: week %q is not a number", raw, weekPart)
	}
	var pattern []domain.DayPattern
	for _, item := range strings.Split(daysPart, ",") {
		dayPart, typePart, ok := strings.Cut(item, "=")
		if !ok {
			return 0, nil, fmt.Errorf("week override %q: %q is not DAY=TYPE", raw, item)
		}
		day, err := strconv.Atoi(strings.TrimSpace(dayPart))
		if err != nil {
			return 0, nil, fmt.Errorf("week override %q: day %q is not a number", raw, dayPart)
		}
		pattern = append(pattern, domain.DayPattern{
			DayOfWeek:   day,
			WorkoutType: domain.WorkoutType(strings.TrimSpace(typePart)),
		})
	}
	return week, pattern, nil
}

func parseDate(flag, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("--%s %q: expected YYYY-MM-DD", flag, value)
	}
	return t, nil
}

func writeJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
