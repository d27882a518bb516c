package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/claude/paceplan/internal/models"
)

// File is a plan request file: the training request plus its calendar
// anchors and an optional policy override path.
type File struct {
	Request   models.TrainingRequest `yaml:"request"`
	StartDate string                 `yaml:"start_date"` // YYYY-MM-DD, optional
	EndDate   string                 `yaml:"end_date"`   // YYYY-MM-DD, optional
	StartNow  bool                   `yaml:"start_now"`
	Policy    string                 `yaml:"policy"` // path to a policy override, optional
}

// Load reads a request file from YAML, then applies environment variable
// overrides. Env vars use the prefix PACEPLAN_:
//
//	PACEPLAN_WEEKS, PACEPLAN_DISTANCE, PACEPLAN_UNIT, PACEPLAN_LEVEL,
//	PACEPLAN_FITNESS_SCORE, PACEPLAN_GOAL_PACE,
//	PACEPLAN_START_DATE, PACEPLAN_END_DATE
func Load(path string) (*File, error) {
	f := &File{}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading request file: %w", err)
	}
	if err := yaml.Unmarshal(data, f); err != nil {
		return nil, fmt.Errorf("parsing request file: %w", err)
	}

	applyEnvOverrides(f)

	if err := f.Request.Validate(); err != nil {
		return nil, fmt.Errorf("request validation: %w", err)
	}

	return f, nil
}

func applyEnvOverrides(f *File) {
	if v := os.Getenv("PACEPLAN_WEEKS"); v != "" {
		if weeks, err := strconv.Atoi(v); err == nil {
			f.Request.Weeks = weeks
		}
	}
	if v := os.Getenv("PACEPLAN_DISTANCE"); v != "" {
		if d, err := strconv.ParseFloat(v, 64); err == nil {
			f.Request.TargetDistance = d
		}
	}
	if v := os.Getenv("PACEPLAN_UNIT"); v != "" {
		f.Request.Unit = models.DistanceUnit(v)
	}
	if v := os.Getenv("PACEPLAN_LEVEL"); v != "" {
		f.Request.Level = models.TrainingLevel(v)
	}
	if v := os.Getenv("PACEPLAN_FITNESS_SCORE"); v != "" {
		if s, err := strconv.ParseFloat(v, 64); err == nil {
			f.Request.FitnessScore = s
		}
	}
	if v := os.Getenv("PACEPLAN_GOAL_PACE"); v != "" {
		f.Request.GoalPace = v
	}
	if v := os.Getenv("PACEPLAN_START_DATE"); v != "" {
		f.StartDate = v
	}
	if v := os.Getenv("PACEPLAN_END_DATE"); v != "" {
		f.EndDate = v
	}
}
