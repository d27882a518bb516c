package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"

	"github.com/claude/paceplan/internal/config"
	"github.com/claude/paceplan/internal/dates"
	"github.com/claude/paceplan/internal/pace"
	"github.com/claude/paceplan/internal/schedule"
)

// Version is set at build time via -ldflags.
var Version = "dev"

func main() {
	requestPath := flag.String("request", "request.yaml", "path to request file")
	raceDate := flag.String("race-date", "", "race date (YYYY-MM-DD), overrides the request file")
	startNow := flag.Bool("start-now", false, "start the plan today, mid-week")
	format := flag.String("format", "json", "output format: json or ics")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	log.Info("paceplan starting", "version", Version)

	f, err := config.Load(*requestPath)
	if err != nil {
		log.Error("failed to load request", "error", err)
		os.Exit(1)
	}

	policy, err := loadPolicy(f.Policy)
	if err != nil {
		log.Error("failed to load policy", "error", err)
		os.Exit(1)
	}

	calc := pace.NewCalculator(pace.NewCache(256))
	builder := schedule.NewBuilder(policy, calc, log)

	plan, err := builder.BuildPlan(&f.Request)
	if err != nil {
		log.Error("failed to build plan", "error", err)
		os.Exit(1)
	}
	plan.ID = uuid.NewString()

	opts, err := dateOptions(f, *raceDate, *startNow)
	if err != nil {
		log.Error("bad date anchors", "error", err)
		os.Exit(1)
	}
	dated := dates.Assign(plan, opts)

	switch *format {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(dated); err != nil {
			log.Error("failed to encode plan", "error", err)
			os.Exit(1)
		}
	case "ics":
		fmt.Print(dates.RenderICS(dated))
	default:
		log.Error("unknown output format", "format", *format)
		os.Exit(1)
	}

	log.Info("plan written", "id", dated.ID, "weeks", dated.Weeks)
}

func loadPolicy(path string) (*schedule.Policy, error) {
	if path == "" {
		return schedule.DefaultPolicy()
	}
	return schedule.LoadPolicy(path)
}

func dateOptions(f *config.File, raceDate string, startNow bool) (dates.Options, error) {
	opts := dates.Options{StartNow: f.StartNow || startNow}

	endStr := f.EndDate
	if raceDate != "" {
		endStr = raceDate
	}
	if endStr != "" {
		end, err := dates.ParseDay(endStr)
		if err != nil {
			return opts, err
		}
		opts.End = &end
	}
	if f.StartDate != "" {
		start, err := dates.ParseDay(f.StartDate)
		if err != nil {
			return opts, err
		}
		opts.Start = &start
	}
	if opts.StartNow && opts.Start == nil {
		today := time.Now()
		opts.Start = &today
	}

	return opts, nil
}
