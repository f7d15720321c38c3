package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"fightcamp/internal/config"
	"fightcamp/internal/service"
	"fightcamp/internal/store"
)

const dayFormat = "2006-01-02"

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	verbose := flag.Bool("v", false, "verbose logging")
	date := flag.String("date", "", "reference date (YYYY-MM-DD, default today)")
	flag.Usage = usage
	flag.Parse()

	log.SetLevel(log.WarnLevel)
	if *verbose {
		log.SetLevel(log.DebugLevel)
	}

	// Load configuration
	cfg, err := config.Load()
	if errors.Is(err, config.ErrNoConfig) {
		fmt.Println("No config file found. Creating example config...")
		if err := config.CreateExample(); err != nil {
			return fmt.Errorf("creating example config: %w", err)
		}
		configDir, _ := config.GetConfigDir()
		fmt.Printf("\nPlease edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		configDir, _ := config.GetConfigDir()
		fmt.Printf("Config validation failed: %v\n\n", err)
		fmt.Printf("Please edit the config file at:\n  %s/config.json\n", configDir)
		return nil
	}

	refDate, err := parseRefDate(*date)
	if err != nil {
		return err
	}

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		dbPath, err = store.DefaultPath()
		if err != nil {
			return fmt.Errorf("resolving database path: %w", err)
		}
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer st.Close()

	svc := service.New(st, service.Profile{
		WeeklyFrequency: cfg.Athlete.WeeklyFrequency,
		ActivityLevel:   cfg.Athlete.ActivityLevel,
		TDEE:            cfg.Athlete.TDEE,
	})

	switch flag.Arg(0) {
	case "", "metrics":
		return printMetrics(svc, cfg.Athlete.ID, refDate)
	case "session":
		return logSession(svc, cfg.Athlete.ID, refDate, flag.Args()[1:])
	case "checkin":
		return submitCheckIn(svc, cfg.Athlete.ID, refDate, flag.Args()[1:])
	case "nutrition":
		return logNutrition(svc, cfg.Athlete.ID, refDate, flag.Args()[1:])
	case "baseline":
		return printBaseline(svc, cfg.Athlete.ID, refDate)
	default:
		usage()
		return fmt.Errorf("unknown command %q", flag.Arg(0))
	}
}

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: fightcamp [flags] <command>

Commands:
  metrics     compute and print today's full metrics bundle (default)
  session     log a training or rest session
  checkin     submit the daily wellness check-in
  nutrition   log caloric intake for the day
  baseline    recompute and print the personal baseline

Flags:
`)
	flag.PrintDefaults()
}

func parseRefDate(s string) (time.Time, error) {
	if s == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	d, err := time.Parse(dayFormat, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing -date: %w", err)
	}
	return d, nil
}

func printMetrics(svc *service.Service, athleteID string, refDate time.Time) error {
	m, err := svc.DailyMetrics(athleteID, refDate)
	if err != nil {
		return err
	}
	return printJSON(m)
}

func logSession(svc *service.Service, athleteID string, refDate time.Time, args []string) error {
	fs := flag.NewFlagSet("session", flag.ExitOnError)
	sessionType := fs.String("type", "", "session type (e.g. Sparring, Strength, Rest)")
	duration := fs.Int("minutes", 0, "duration in minutes")
	rpe := fs.Float64("rpe", 0, "perceived exertion 0-10")
	intensity := fs.Int("intensity", 0, "intensity level 1-5")
	soreness := fs.Float64("soreness", 0, "soreness 0-10")
	sleep := fs.Float64("sleep", 0, "last night's sleep hours")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *sessionType == "" {
		return errors.New("session: -type is required")
	}

	rec := &store.SessionRecord{
		AthleteID:       athleteID,
		Date:            refDate,
		Type:            *sessionType,
		DurationMinutes: *duration,
		RPE:             *rpe,
		SorenessLevel:   *soreness,
		SleepHours:      *sleep,
	}
	if *intensity > 0 {
		rec.IntensityLevel = intensity
	}
	id, err := svc.LogSession(rec)
	if err != nil {
		return err
	}
	fmt.Printf("Logged session %d (%s, %s)\n", id, rec.Type, refDate.Format(dayFormat))
	return nil
}

func submitCheckIn(svc *service.Service, athleteID string, refDate time.Time, args []string) error {
	fs := flag.NewFlagSet("checkin", flag.ExitOnError)
	sleepQuality := fs.Int("sleep-quality", 4, "sleep quality 1-7 (higher is better)")
	stress := fs.Int("stress", 4, "stress 1-7 (higher is worse)")
	fatigue := fs.Int("fatigue", 4, "fatigue 1-7 (higher is worse)")
	soreness := fs.Int("soreness", 4, "soreness 1-7 (higher is worse)")
	sleepHours := fs.Float64("sleep-hours", 0, "last night's sleep hours")
	hydration := fs.Int("hydration", 0, "hydration feeling 1-5")
	if err := fs.Parse(args); err != nil {
		return err
	}

	c := &store.WellnessCheckIn{
		AthleteID:     athleteID,
		Date:          refDate,
		SleepQuality:  *sleepQuality,
		StressLevel:   *stress,
		FatigueLevel:  *fatigue,
		SorenessLevel: *soreness,
	}
	if *sleepHours > 0 {
		c.SleepHours = sleepHours
	}
	if *hydration > 0 {
		c.Hydration = hydration
	}
	if err := svc.SubmitCheckIn(c); err != nil {
		return err
	}
	fmt.Printf("Check-in saved for %s (Hooper index %d)\n", refDate.Format(dayFormat), c.HooperIndex)
	return nil
}

func logNutrition(svc *service.Service, athleteID string, refDate time.Time, args []string) error {
	fs := flag.NewFlagSet("nutrition", flag.ExitOnError)
	calories := fs.Float64("calories", 0, "calories consumed")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *calories <= 0 {
		return errors.New("nutrition: -calories must be positive")
	}
	if err := svc.LogNutrition(athleteID, refDate, *calories); err != nil {
		return err
	}
	fmt.Printf("Logged %.0f kcal for %s\n", *calories, refDate.Format(dayFormat))
	return nil
}

func printBaseline(svc *service.Service, athleteID string, refDate time.Time) error {
	b, err := svc.RecomputeBaseline(athleteID, refDate)
	if err != nil {
		return err
	}
	if b == nil {
		fmt.Println("Not enough check-in history to compute a baseline yet (need 3+).")
		return nil
	}
	return printJSON(b)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
