// Package schedule turns a training request into a complete week-by-week
// plan: periodization phases, weekly volume targets, and concrete runs.
package schedule

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/claude/paceplan/internal/models"
)

//go:embed policy.yaml
var defaultPolicyYAML []byte

// LevelPolicy holds the volume and long-run band for one training level
// within one race type. Multipliers and percentages apply to the race
// distance.
type LevelPolicy struct {
	VolumeStart  float64 `yaml:"volume_start"`
	VolumePeak   float64 `yaml:"volume_peak"`
	LongStartPct float64 `yaml:"long_start_pct"`
	LongPeakPct  float64 `yaml:"long_peak_pct"`
}

// RacePolicy holds per-level bands and the fixed taper distances for one
// race type. The taper slices are ordered by taper week: index 0 is the
// first reduced week, index 1 the last training week before the race.
type RacePolicy struct {
	Levels        map[models.TrainingLevel]LevelPolicy `yaml:"levels"`
	TaperLongRuns []float64                            `yaml:"taper_long_runs"`
	TaperEasy     []float64                            `yaml:"taper_easy"`
	TaperTempo    []float64                            `yaml:"taper_tempo"`
}

// Splits is the weekly volume distribution.
type Splits struct {
	EasyShare       float64 `yaml:"easy_share"`
	TempoShare      float64 `yaml:"tempo_share"`
	LongRunMaxShare float64 `yaml:"long_run_max_share"`
}

// Cutback holds the scheduled-recovery reduction factors.
type Cutback struct {
	EasyTempoFactor float64 `yaml:"easy_tempo_factor"`
	LongFactor      float64 `yaml:"long_factor"`
}

// EasyCap bounds a single easy run's distance, with a tighter limit for
// the first few weeks of a plan.
type EasyCap struct {
	Early float64 `yaml:"early"`
	Late  float64 `yaml:"late"`
}

// PhaseSplit is the share of progress weeks given to Base and Build; Peak
// takes the remainder.
type PhaseSplit struct {
	Base  float64 `yaml:"base"`
	Build float64 `yaml:"build"`
}

// IntervalWorkout is one entry of the rotating interval library.
type IntervalWorkout struct {
	Name      string  `yaml:"name"`
	Reps      int     `yaml:"reps"`
	RepMeters float64 `yaml:"rep_meters"`
}

// Policy is the full periodization heuristic table, kept as one versioned
// document so the numbers are tunable and testable without code changes.
type Policy struct {
	Version          int                              `yaml:"version"`
	MarathonMinMiles float64                          `yaml:"marathon_min_miles"`
	Races            map[string]RacePolicy            `yaml:"races"`
	Splits           Splits                           `yaml:"splits"`
	Cutback          Cutback                          `yaml:"cutback"`
	EasyCaps         map[models.TrainingLevel]EasyCap `yaml:"easy_caps"`
	EarlyWeeks       int                              `yaml:"early_weeks"`
	PhaseSplit       PhaseSplit                       `yaml:"phase_split"`
	TaperWeeks       int                              `yaml:"taper_weeks"`
	CutbackEvery     int                              `yaml:"cutback_every"`
	Workouts         []IntervalWorkout                `yaml:"workouts"`
	Days             map[string]string                `yaml:"days"`
}

// DefaultPolicy parses the embedded policy table.
func DefaultPolicy() (*Policy, error) {
	return parsePolicy(defaultPolicyYAML)
}

// LoadPolicy reads a policy override from a YAML file.
func LoadPolicy(path string) (*Policy, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading policy file: %w", err)
	}
	return parsePolicy(data)
}

func parsePolicy(data []byte) (*Policy, error) {
	p := &Policy{}
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("parsing policy: %w", err)
	}
	if err := p.validate(); err != nil {
		return nil, fmt.Errorf("policy validation: %w", err)
	}
	return p, nil
}

func (p *Policy) validate() error {
	for _, race := range []string{"marathon", "half"} {
		rp, ok := p.Races[race]
		if !ok {
			return fmt.Errorf("races.%s is required", race)
		}
		for _, level := range []models.TrainingLevel{models.LevelBeginner, models.LevelIntermediate, models.LevelAdvanced} {
			lp, ok := rp.Levels[level]
			if !ok {
				return fmt.Errorf("races.%s.levels.%s is required", race, level)
			}
			if lp.VolumeStart <= 0 || lp.VolumePeak < lp.VolumeStart {
				return fmt.Errorf("races.%s.levels.%s: volume band must be positive and non-decreasing", race, level)
			}
			if lp.LongStartPct <= 0 || lp.LongPeakPct < lp.LongStartPct {
				return fmt.Errorf("races.%s.levels.%s: long-run band must be positive and non-decreasing", race, level)
			}
		}
		if len(rp.TaperLongRuns) != 2 || len(rp.TaperEasy) != 2 || len(rp.TaperTempo) != 2 {
			return fmt.Errorf("races.%s: taper distances must list exactly the two reduced weeks", race)
		}
	}
	if p.Splits.EasyShare <= 0 || p.Splits.TempoShare <= 0 || p.Splits.EasyShare+p.Splits.TempoShare >= 1 {
		return fmt.Errorf("splits: easy and tempo shares must be positive and sum below 1")
	}
	if p.Splits.LongRunMaxShare <= 0 || p.Splits.LongRunMaxShare >= 1 {
		return fmt.Errorf("splits.long_run_max_share must be in (0, 1)")
	}
	if p.Cutback.EasyTempoFactor <= 0 || p.Cutback.EasyTempoFactor >= 1 ||
		p.Cutback.LongFactor <= 0 || p.Cutback.LongFactor >= 1 {
		return fmt.Errorf("cutback factors must be in (0, 1)")
	}
	if len(p.EasyCaps) == 0 {
		return fmt.Errorf("easy_caps is required")
	}
	if p.TaperWeeks < 3 {
		return fmt.Errorf("taper_weeks must be at least 3 (two reduced weeks plus the race week)")
	}
	if p.CutbackEvery < 2 {
		return fmt.Errorf("cutback_every must be at least 2")
	}
	if len(p.Workouts) == 0 {
		return fmt.Errorf("workouts: at least one interval workout is required")
	}
	for i, w := range p.Workouts {
		if w.Reps <= 0 || w.RepMeters <= 0 {
			return fmt.Errorf("workouts[%d]: reps and rep_meters must be positive", i)
		}
	}
	for _, day := range []string{"easy", "interval", "tempo", "easy_second", "long", "race"} {
		if _, err := p.weekday(day); err != nil {
			return err
		}
	}
	return nil
}

// raceKey classifies a distance into a policy race band.
func (p *Policy) raceKey(distance float64, unit models.DistanceUnit) string {
	miles := distance * unit.Meters() / models.UnitMiles.Meters()
	if miles >= p.MarathonMinMiles {
		return "marathon"
	}
	return "half"
}

var weekdays = map[string]time.Weekday{
	"Sunday":    time.Sunday,
	"Monday":    time.Monday,
	"Tuesday":   time.Tuesday,
	"Wednesday": time.Wednesday,
	"Thursday":  time.Thursday,
	"Friday":    time.Friday,
	"Saturday":  time.Saturday,
}

// weekday resolves a days table entry to a time.Weekday.
func (p *Policy) weekday(slot string) (time.Weekday, error) {
	name, ok := p.Days[slot]
	if !ok {
		return 0, fmt.Errorf("days.%s is required", slot)
	}
	d, ok := weekdays[name]
	if !ok {
		return 0, fmt.Errorf("days.%s: unknown weekday %q", slot, name)
	}
	return d, nil
}
