package models

import "time"

// DistanceUnit is the unit every distance in a request and its resulting
// plan is expressed in. A plan never mixes units.
type DistanceUnit string

const (
	UnitMiles      DistanceUnit = "miles"
	UnitKilometers DistanceUnit = "kilometers"
)

// Meters returns the length of one distance unit in meters.
func (u DistanceUnit) Meters() float64 {
	if u == UnitKilometers {
		return 1000
	}
	return 1609.344
}

// Valid reports whether the unit is one of the supported values.
func (u DistanceUnit) Valid() bool {
	return u == UnitMiles || u == UnitKilometers
}

// TrainingLevel selects the volume and long-run policy band for a runner.
type TrainingLevel string

const (
	LevelBeginner     TrainingLevel = "beginner"
	LevelIntermediate TrainingLevel = "intermediate"
	LevelAdvanced     TrainingLevel = "advanced"
)

// Valid reports whether the level is one of the supported values.
func (l TrainingLevel) Valid() bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// RunType classifies a planned run.
type RunType string

const (
	RunEasy     RunType = "easy"
	RunTempo    RunType = "tempo"
	RunInterval RunType = "interval"
	RunLong     RunType = "long"
	RunRace     RunType = "race"
	RunCross    RunType = "cross"
)

// Phase is the periodization phase a week belongs to.
type Phase string

const (
	PhaseBase  Phase = "base"
	PhaseBuild Phase = "build"
	PhasePeak  Phase = "peak"
	PhaseTaper Phase = "taper"
)

const (
	// MinPlanWeeks is the shortest plan the builder will produce.
	MinPlanWeeks = 8

	// MinRaceDistance is the shortest supported race, in the request's
	// distance unit. The generator covers half and full marathons only.
	MinRaceDistance = 13.0
)

// TrainingRequest is the single input to the plan builder. It is constructed
// once by the caller and consumed once; the builder never mutates it.
type TrainingRequest struct {
	Weeks                int                      `json:"weeks" yaml:"weeks"`
	TargetDistance       float64                  `json:"targetDistance" yaml:"target_distance"`
	Unit                 DistanceUnit             `json:"unit" yaml:"unit"`
	Level                TrainingLevel            `json:"trainingLevel" yaml:"training_level"`
	FitnessScore         float64                  `json:"currentFitnessScore" yaml:"fitness_score"`
	StartingWeeklyVolume float64                  `json:"startingWeeklyVolume" yaml:"starting_weekly_volume"`
	GoalPace             string                   `json:"goalPace,omitempty" yaml:"goal_pace"`
	GoalTotalTime        string                   `json:"goalTotalTime,omitempty" yaml:"goal_total_time"`
	DayOverrides         map[RunType]time.Weekday `json:"dayOverrides,omitempty" yaml:"day_overrides"`
}

// Validate checks the request shape. Failures carry a machine-checkable
// code; the builder rejects a bad request before any computation.
func (r *TrainingRequest) Validate() error {
	if r.Weeks < MinPlanWeeks {
		return &RequestError{
			Code:    ErrTooFewWeeks,
			Message: "plan must be at least 8 weeks",
		}
	}
	if r.TargetDistance <= 0 {
		return &RequestError{
			Code:    ErrNonPositiveDistance,
			Message: "target distance must be positive",
		}
	}
	if r.TargetDistance < MinRaceDistance {
		return &RequestError{
			Code:    ErrBelowHalfMarathon,
			Message: "this generator covers half and full marathons only (distance >= 13)",
		}
	}
	if !r.Unit.Valid() {
		return &RequestError{
			Code:    ErrInvalidUnit,
			Message: "distance unit must be miles or kilometers",
		}
	}
	if !r.Level.Valid() {
		return &RequestError{
			Code:    ErrInvalidLevel,
			Message: "training level must be beginner, intermediate, or advanced",
		}
	}
	return nil
}

// PaceZoneSet holds the four training paces for one week of a plan, each
// formatted as time per distance unit ("m:ss"). Invariant: interval is
// faster than tempo, tempo faster than marathon, marathon faster than easy.
// A violation is a data-quality error, never silently corrected.
type PaceZoneSet struct {
	Easy     string `json:"easy"`
	Marathon string `json:"marathon"`
	Tempo    string `json:"tempo"`
	Interval string `json:"interval"`
}

// ProgressionState is the per-week periodization outcome, derived once per
// plan before any runs are synthesized.
type ProgressionState struct {
	WeekNumber          int     `json:"weekNumber"`
	WeeklyMileageTarget float64 `json:"weeklyMileageTarget"`
	Phase               Phase   `json:"phase"`
	Cutback             bool    `json:"cutback"`
}

// PlannedRun is a single workout within a week. Date is populated by
// calendar alignment; Done is toggled by downstream collaborators.
type PlannedRun struct {
	Type       RunType      `json:"type"`
	Distance   float64      `json:"distance"`
	Unit       DistanceUnit `json:"unit"`
	TargetPace string       `json:"targetPace"`
	Day        time.Weekday `json:"day"`
	Notes      string       `json:"notes,omitempty"`
	Date       *time.Time   `json:"date,omitempty"`
	Done       bool         `json:"done"`
}

// WeekPlan is one week of the schedule. WeeklyMileage is always the sum of
// the week's run distances.
type WeekPlan struct {
	WeekNumber    int          `json:"weekNumber"`
	WeeklyMileage float64      `json:"weeklyMileage"`
	Unit          DistanceUnit `json:"unit"`
	Runs          []PlannedRun `json:"runs"`
	Phase         Phase        `json:"phase"`
	Notes         string       `json:"notes,omitempty"`
	StartDate     *time.Time   `json:"startDate,omitempty"`
}

// Done reports whether every run in the week is done.
func (w *WeekPlan) Done() bool {
	for i := range w.Runs {
		if !w.Runs[i].Done {
			return false
		}
	}
	return len(w.Runs) > 0
}

// TrainingPlan is the full schedule document handed to collaborators.
// ID is stamped by callers (never inside the deterministic builder).
type TrainingPlan struct {
	ID        string     `json:"id,omitempty"`
	Weeks     int        `json:"weeks"`
	Schedule  []WeekPlan `json:"schedule"`
	Notes     string     `json:"notes,omitempty"`
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`
}

// Clone returns a deep copy of the plan. Calendar alignment works on a
// clone so its input is never mutated.
func (p *TrainingPlan) Clone() *TrainingPlan {
	out := *p
	out.StartDate = copyTime(p.StartDate)
	out.EndDate = copyTime(p.EndDate)
	out.Schedule = make([]WeekPlan, len(p.Schedule))
	for i := range p.Schedule {
		w := p.Schedule[i]
		w.StartDate = copyTime(w.StartDate)
		w.Runs = make([]PlannedRun, len(p.Schedule[i].Runs))
		copy(w.Runs, p.Schedule[i].Runs)
		for j := range w.Runs {
			w.Runs[j].Date = copyTime(p.Schedule[i].Runs[j].Date)
		}
		out.Schedule[i] = w
	}
	return &out
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
