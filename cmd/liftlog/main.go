package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"time"

	"github.com/liftlog/liftlog/internal/analytics"
	"github.com/liftlog/liftlog/internal/config"
	"github.com/liftlog/liftlog/internal/models"
	"github.com/liftlog/liftlog/internal/pr"
	"github.com/liftlog/liftlog/internal/storage"
	"github.com/liftlog/liftlog/internal/timer"
	"github.com/liftlog/liftlog/internal/workout"
)

// Version is set at build time via -ldflags.
var Version = "dev"

const usage = `Usage: liftlog [-config path] <command> [args]

Commands:
  exercises [query]        list the exercise catalog
  start <type>             start a workout (Push, Pull, Legs, Upper, Lower, "Full Body", Custom)
  log <exercise> <weight> <reps> [-rpe N]
                           log a set in the active workout
  current                  show the in-progress workout
  finish                   finish the active workout
  history [-limit N]       show past workouts, grouped by date
  prs [exercise]           show personal records
  suggest                  suggest the next workout type
  timer [seconds]          run a rest timer (default from config)
`

func main() {
	configPath := flag.String("config", defaultConfigPath(), "path to config file")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	args := flag.Args()
	if len(args) == 0 {
		flag.Usage()
		os.Exit(1)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		log.Error("failed to create data directory", "error", err)
		os.Exit(1)
	}

	db, err := storage.Open(cfg.Database.Path)
	if err != nil {
		log.Error("failed to open database", "error", err)
		os.Exit(1)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Error("migration failed", "error", err)
		os.Exit(1)
	}

	ctx := context.Background()
	if n, err := db.SeedDefaultExercises(ctx); err != nil {
		log.Error("seeding exercise catalog failed", "error", err)
		os.Exit(1)
	} else if n > 0 {
		log.Info("seeded exercise catalog", "count", n)
	}

	a := &app{cfg: cfg, db: db, svc: workout.New(db, cfg.Units.Weight, log), log: log}

	if err := a.run(ctx, args[0], args[1:]); err != nil {
		var verr *models.ValidationError
		if errors.As(err, &verr) {
			fmt.Fprintln(os.Stderr, "error:", verr)
			os.Exit(2)
		}
		log.Error("command failed", "command", args[0], "error", err)
		os.Exit(1)
	}
}

type app struct {
	cfg *config.Config
	db  *storage.DB
	svc *workout.Service
	log *slog.Logger
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "exercises":
		return a.cmdExercises(ctx, args)
	case "start":
		return a.cmdStart(ctx, args)
	case "log":
		return a.cmdLog(ctx, args)
	case "current":
		return a.cmdCurrent(ctx)
	case "finish":
		return a.cmdFinish(ctx)
	case "history":
		return a.cmdHistory(ctx, args)
	case "prs":
		return a.cmdPRs(ctx, args)
	case "suggest":
		return a.cmdSuggest(ctx)
	case "timer":
		return a.cmdTimer(args)
	default:
		flag.Usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *app) cmdExercises(ctx context.Context, args []string) error {
	filter := storage.ExerciseFilter{}
	if len(args) > 0 {
		filter.NameContains = args[0]
	}

	exercises, err := a.db.ListExercises(ctx, filter)
	if err != nil {
		return err
	}
	for _, e := range exercises {
		marker := " "
		if e.IsFavorite {
			marker = "*"
		}
		fmt.Printf("%s %-32s %-12s %s\n", marker, e.Name, e.MuscleGroup, e.Category)
	}
	return nil
}

func (a *app) cmdStart(ctx context.Context, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: liftlog start <type>")
	}
	workoutType, err := models.ParseWorkoutType(args[0])
	if err != nil {
		return err
	}

	if active, err := a.svc.ActiveSession(ctx); err != nil {
		return err
	} else if active != nil {
		return fmt.Errorf("a %s workout from %s is still in progress; finish it first",
			active.WorkoutType, active.StartTime.Local().Format("3:04 PM"))
	}

	sess, err := a.svc.StartWorkout(ctx, workoutType, nil)
	if err != nil {
		return err
	}
	fmt.Printf("Started %s workout.\n", sess.WorkoutType)
	return nil
}

func (a *app) cmdLog(ctx context.Context, args []string) error {
	if len(args) < 3 {
		return fmt.Errorf("usage: liftlog log <exercise> <weight> <reps> [-rpe N]")
	}

	// Flags trail the positionals, so they must be parsed from args[3:];
	// flag.Parse would stop at the exercise name and drop them.
	fs := flag.NewFlagSet("log", flag.ContinueOnError)
	rpeFlag := fs.Float64("rpe", 0, "exertion rating 1-10")
	if err := fs.Parse(args[3:]); err != nil {
		return err
	}
	if extra := fs.Args(); len(extra) > 0 {
		return fmt.Errorf("unexpected argument %q", extra[0])
	}

	weight, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return &models.ValidationError{Field: "weight", Reason: "must be a number"}
	}
	reps, err := strconv.Atoi(args[2])
	if err != nil {
		return &models.ValidationError{Field: "reps", Reason: "must be an integer"}
	}
	var rpe *float64
	if *rpeFlag != 0 {
		rpe = rpeFlag
	}

	active, err := a.svc.ActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no workout in progress; run 'liftlog start <type>' first")
	}

	exercise, err := a.findExercise(ctx, args[0])
	if err != nil {
		return err
	}

	result, err := a.svc.LogSet(ctx, active.ID, exercise.ID, weight, reps, rpe)
	if err != nil {
		return err
	}

	fmt.Printf("Set %d: %s — %s\n", result.Set.SetNumber, exercise.Name, result.Set.FormatSet(a.cfg.Units.Weight))
	if result.IsNewPR {
		fmt.Println(result.Message)
	}
	return nil
}

// cmdCurrent prints the in-progress workout, sets grouped per exercise.
func (a *app) cmdCurrent(ctx context.Context) error {
	active, err := a.svc.ActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		fmt.Println("No workout in progress.")
		return nil
	}

	sets, err := a.db.ListSessionSets(ctx, active.ID)
	if err != nil {
		return err
	}
	fmt.Printf("%s workout, started %s (%d sets)\n",
		active.WorkoutType, active.StartTime.Local().Format("3:04 PM"), len(sets))

	for _, group := range analytics.GroupSetsByExercise(sets) {
		name := "(deleted exercise)"
		switch e, err := a.db.GetExercise(ctx, group.ExerciseID); {
		case err == nil:
			name = e.Name
		case !errors.Is(err, storage.ErrNotFound):
			return err
		}
		fmt.Printf("  %s — %s volume\n", name, models.FormatVolume(group.Volume(), a.cfg.Units.Weight))
		for _, set := range group.Sets {
			marker := ""
			if set.IsPR {
				marker = "  PR!"
			}
			fmt.Printf("    %d. %s%s\n", set.SetNumber, set.FormatSet(a.cfg.Units.Weight), marker)
		}
	}
	return nil
}

func (a *app) cmdFinish(ctx context.Context) error {
	active, err := a.svc.ActiveSession(ctx)
	if err != nil {
		return err
	}
	if active == nil {
		return fmt.Errorf("no workout in progress")
	}

	if err := a.svc.Finish(ctx, active.ID); err != nil {
		return err
	}
	summary, err := a.svc.SessionSummary(ctx, active.ID)
	if err != nil {
		return err
	}
	fmt.Printf("Finished %s workout: %s\n", active.WorkoutType, summary)
	return nil
}

func (a *app) cmdHistory(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	limit := fs.Int("limit", 30, "number of workouts to show")
	if err := fs.Parse(args); err != nil {
		return err
	}

	sessions, err := a.db.ListSessions(ctx, *limit, nil)
	if err != nil {
		return err
	}
	if len(sessions) == 0 {
		fmt.Println("No workouts yet.")
		return nil
	}

	now := time.Now()
	for _, group := range analytics.GroupSessions(sessions, now) {
		fmt.Printf("%s\n", group.Label)
		for _, sess := range group.Sessions {
			sets, err := a.db.ListSessionSets(ctx, sess.ID)
			if err != nil {
				return err
			}
			fmt.Printf("  %-10s %-9s %d sets, %s volume\n",
				sess.Date.Local().Format("Jan 2"), sess.WorkoutType, len(sets),
				models.FormatVolume(analytics.TotalVolume(sets), a.cfg.Units.Weight))
		}
	}
	fmt.Printf("\n%d workouts this week, %.1f/week on average\n",
		analytics.WorkoutsThisWeek(sessions, now), analytics.AveragePerWeek(sessions, now))
	return nil
}

func (a *app) cmdPRs(ctx context.Context, args []string) error {
	if len(args) > 0 {
		exercise, err := a.findExercise(ctx, args[0])
		if err != nil {
			return err
		}
		prs, err := a.db.ListPRs(ctx, exercise.ID)
		if err != nil {
			return err
		}
		fmt.Printf("%s\n", exercise.Name)
		for _, record := range prs {
			fmt.Printf("  %-14s %-10s ×%-3d %s\n",
				record.Category.DisplayName(),
				models.FormatWeight(record.Value, a.cfg.Units.Weight),
				record.Reps,
				models.SmartDate(record.AchievedAt.Local(), time.Now()))
		}
		if rate := pr.ImprovementRate(prs); rate != nil {
			fmt.Printf("  Est. 1RM improving %.1f %s/week\n", *rate, a.cfg.Units.Weight)
		}
		return nil
	}

	exercises, err := a.db.ListExercisesWithPRs(ctx)
	if err != nil {
		return err
	}
	if len(exercises) == 0 {
		fmt.Println("No PRs yet. Go lift something heavy.")
		return nil
	}
	for _, e := range exercises {
		current, err := a.db.CurrentPR(ctx, e.ID, models.PRMaxWeight)
		if err != nil {
			return err
		}
		if current == nil {
			continue
		}
		fmt.Printf("%-32s %s × %d\n", e.Name,
			models.FormatWeight(current.Value, a.cfg.Units.Weight), current.Reps)
	}
	return nil
}

func (a *app) cmdSuggest(ctx context.Context) error {
	var last *models.WorkoutType
	sess, err := a.db.MostRecentSession(ctx)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		return err
	default:
		last = &sess.WorkoutType
	}

	suggestion := analytics.SuggestNext(last)
	if last != nil {
		fmt.Printf("Last workout: %s. Suggested next: %s\n", *last, suggestion)
	} else {
		fmt.Printf("No history yet. Suggested: %s\n", suggestion)
	}
	return nil
}

// cmdTimer runs a rest timer in the foreground, printing the countdown and
// ringing the terminal bell on expiry.
func (a *app) cmdTimer(args []string) error {
	seconds := a.cfg.Timer.DefaultRestSeconds
	if len(args) > 0 {
		var err error
		seconds, err = strconv.Atoi(args[0])
		if err != nil || seconds <= 0 {
			return fmt.Errorf("usage: liftlog timer [seconds]")
		}
	}

	done := make(chan struct{})
	t := timer.New(timer.NopNotifier{}, func() {
		fmt.Print("\r0:00 — rest over\a\n")
		close(done)
	}, a.log)
	t.Start(time.Duration(seconds) * time.Second)
	fmt.Printf("Rest timer: %s\n", models.FormatTimerDuration(seconds))

	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, syscall.SIGINT, syscall.SIGTERM)

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return nil
		case <-interrupt:
			t.Stop()
			fmt.Println("\rTimer stopped.")
			return nil
		case <-ticker.C:
			fmt.Printf("\r%s ", t.FormatRemaining())
		}
	}
}

// findExercise resolves a user-typed name to a catalog entry, preferring an
// exact match and otherwise requiring the substring match to be unique.
func (a *app) findExercise(ctx context.Context, name string) (*models.Exercise, error) {
	matches, err := a.db.ListExercises(ctx, storage.ExerciseFilter{NameContains: name})
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no exercise matches %q (see 'liftlog exercises')", name)
	}
	for i := range matches {
		if strings.EqualFold(matches[i].Name, name) {
			return &matches[i], nil
		}
	}
	if len(matches) > 1 {
		return nil, fmt.Errorf("%q matches %d exercises; be more specific", name, len(matches))
	}
	return &matches[0], nil
}

func defaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(home, ".liftlog", "config.yaml")
}
