package schedule

import (
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/claude/paceplan/internal/models"
	"github.com/claude/paceplan/internal/pace"
	"github.com/claude/paceplan/internal/zones"
)

// Builder synthesizes training plans under a periodization policy.
type Builder struct {
	policy *Policy
	calc   *pace.Calculator
	log    *slog.Logger
}

// NewBuilder returns a Builder. A nil logger discards diagnostics; log
// events are narration only and never affect the plan.
func NewBuilder(policy *Policy, calc *pace.Calculator, log *slog.Logger) *Builder {
	if log == nil {
		log = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Builder{policy: policy, calc: calc, log: log}
}

// BuildPlan computes a full training plan for the request. The request is
// validated first and never mutated; the result carries no dates (see the
// dates package).
//
// When a goal pace (or total time) is present, goal-oriented zones are
// always used, even when ValidateGoal would report the goal infeasible.
// The fitness-relative per-zone ceilings are the only guard; feasibility
// results are advisory and left to callers.
func (b *Builder) BuildPlan(req *models.TrainingRequest) (*models.TrainingPlan, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	goalPace, err := b.resolveGoalPace(req)
	if err != nil {
		return nil, err
	}

	days, err := b.resolveDays(req)
	if err != nil {
		return nil, err
	}

	targets := b.progression(req)
	b.log.Info("building plan",
		"weeks", req.Weeks,
		"distance", req.TargetDistance,
		"unit", req.Unit,
		"level", req.Level,
		"goal_pace", goalPace,
	)

	// The dual-stress rules are a left-to-right fold: each week's
	// decision depends on the previous week's realized pace and long-run
	// distance, so weeks cannot be computed independently.
	var (
		prevMarathonSec float64
		prevLong        float64
		prevWeek        *zones.Result
		idealLongTotal  float64
		realLongTotal   float64
	)

	schedule := make([]models.WeekPlan, 0, req.Weeks)
	for _, t := range targets {
		week := t.WeekNumber
		z, err := zones.Progressive(b.calc, req.FitnessScore, goalPace, req.Weeks, week, req.TargetDistance, req.Unit)
		if err != nil {
			return nil, fmt.Errorf("deriving week %d zones: %w", week, err)
		}

		marathonSec, err := pace.ParsePace(z.Zones.Marathon)
		if err != nil {
			return nil, fmt.Errorf("deriving week %d zones: %w", week, err)
		}

		// If realized long-run distance has fallen a full unit behind
		// its trajectory, hold pace for a week so distance catches up.
		paceHeld := false
		if week > 1 && prevWeek != nil && idealLongTotal-realLongTotal >= 1.0 {
			b.log.Debug("holding pace while distance catches up",
				"week", week, "lag", idealLongTotal-realLongTotal)
			z = prevWeek
			marathonSec = prevMarathonSec
			paceHeld = true
		}

		// Never add volume and intensity stress in the same week: when
		// pace is progressing, a long-run increase of half a unit or
		// more is deferred.
		longRun := t.LongRun
		if week > 1 && !t.RaceWeek && prevLong > 0 &&
			marathonSec != prevMarathonSec && longRun >= prevLong+0.5 {
			b.log.Debug("dual-stress: holding long run at previous distance",
				"week", week, "computed", longRun, "held", prevLong)
			longRun = prevLong
		}
		idealLongTotal += t.LongRun
		realLongTotal += longRun
		if paceHeld {
			// A catch-up week runs the long run at its full target,
			// which restores the trajectory for the following week.
			realLongTotal = idealLongTotal
		}

		var wp models.WeekPlan
		if t.RaceWeek {
			wp = b.raceWeek(req, t, z, days)
		} else {
			wp = b.trainingWeek(req, t, z, longRun, days)
		}
		schedule = append(schedule, wp)

		prevMarathonSec = marathonSec
		prevWeek = z
		if !t.RaceWeek {
			prevLong = longRun
		}
	}

	plan := &models.TrainingPlan{
		Weeks:    req.Weeks,
		Schedule: schedule,
		Notes: fmt.Sprintf("%d-week %s plan for %.1f %s",
			req.Weeks, req.Level, req.TargetDistance, req.Unit),
	}
	b.log.Info("plan built", "weeks", len(plan.Schedule))
	return plan, nil
}

// resolveGoalPace returns the per-unit goal pace string, deriving it from
// the goal total time when only that is given. Empty when no goal is set.
func (b *Builder) resolveGoalPace(req *models.TrainingRequest) (string, error) {
	if req.GoalPace != "" {
		if _, err := pace.ParsePace(req.GoalPace); err != nil {
			return "", fmt.Errorf("goal pace: %w", err)
		}
		return req.GoalPace, nil
	}
	if req.GoalTotalTime != "" {
		total, err := pace.ParseDuration(req.GoalTotalTime)
		if err != nil {
			return "", fmt.Errorf("goal total time: %w", err)
		}
		per := pace.FormatPace(total / req.TargetDistance)
		if _, err := pace.ParsePace(per); err != nil {
			return "", fmt.Errorf("goal total time: %w", err)
		}
		return per, nil
	}
	return "", nil
}

// resolveDays merges the policy's default weekday table with the request's
// per-run-type overrides.
func (b *Builder) resolveDays(req *models.TrainingRequest) (map[string]time.Weekday, error) {
	days := make(map[string]time.Weekday, 6)
	for _, slot := range []string{"easy", "interval", "tempo", "easy_second", "long", "race"} {
		d, err := b.policy.weekday(slot)
		if err != nil {
			return nil, err
		}
		days[slot] = d
	}
	for runType, day := range req.DayOverrides {
		days[string(runType)] = day
	}
	return days, nil
}

// trainingWeek synthesizes the runs for a non-race week.
func (b *Builder) trainingWeek(req *models.TrainingRequest, t weekTarget, z *zones.Result, longRun float64, days map[string]time.Weekday) models.WeekPlan {
	p := b.policy
	var runs []models.PlannedRun

	if t.TaperIndex >= 0 {
		// Taper: fixed short distances, no interval work.
		race := p.Races[p.raceKey(req.TargetDistance, req.Unit)]
		runs = append(runs,
			b.run(req, models.RunEasy, race.TaperEasy[t.TaperIndex], z.Zones.Easy, days["easy"], ""),
			b.run(req, models.RunTempo, race.TaperTempo[t.TaperIndex], z.Zones.Tempo, days["tempo"], ""),
			b.run(req, models.RunLong, longRun, z.Zones.Easy, days["long"], "Long run"),
		)
	} else {
		vol := t.WeeklyMileageTarget

		// The long run never exceeds its share of the week; scale the
		// week up rather than shrink the long run.
		if longRun > p.Splits.LongRunMaxShare*vol {
			vol = round1(longRun / p.Splits.LongRunMaxShare)
			b.log.Debug("scaling weekly volume to bound long-run share",
				"week", t.WeekNumber, "volume", vol)
		}

		workout := p.Workouts[(t.WeekNumber-1)%len(p.Workouts)]
		intervalDist := round1(float64(workout.Reps) * workout.RepMeters / req.Unit.Meters())

		remainder := vol - longRun - intervalDist
		if remainder < 0 {
			remainder = 0
		}
		easy := p.Splits.EasyShare * vol
		tempo := p.Splits.TempoShare * vol
		if sum := easy + tempo; sum > remainder && sum > 0 {
			scale := remainder / sum
			easy *= scale
			tempo *= scale
		}
		easy = round1(easy)
		tempo = round1(tempo)

		easyCap := p.EasyCaps[req.Level].Late
		if t.WeekNumber <= p.EarlyWeeks {
			easyCap = p.EasyCaps[req.Level].Early
		}

		if easy > easyCap {
			// Two easy runs instead of one oversized one.
			half := round1(easy / 2)
			if half > easyCap {
				half = easyCap
			}
			runs = append(runs,
				b.run(req, models.RunEasy, half, z.Zones.Easy, days["easy"], ""),
				b.run(req, models.RunEasy, half, z.Zones.Easy, days["easy_second"], ""),
			)
		} else if easy >= 1 {
			runs = append(runs, b.run(req, models.RunEasy, easy, z.Zones.Easy, days["easy"], ""))
		}

		runs = append(runs, b.run(req, models.RunInterval, intervalDist, z.Zones.Interval, days["interval"],
			fmt.Sprintf("%s at interval pace", workout.Name)))

		if tempo >= 1 {
			runs = append(runs, b.run(req, models.RunTempo, tempo, z.Zones.Tempo, days["tempo"], ""))
		}

		runs = append(runs, b.run(req, models.RunLong, longRun, z.Zones.Easy, days["long"], "Long run"))
	}

	notes := ""
	if t.Cutback {
		notes = "Cutback week: reduced volume for recovery"
	}

	var total float64
	for _, r := range runs {
		total += r.Distance
	}

	return models.WeekPlan{
		WeekNumber:    t.WeekNumber,
		WeeklyMileage: round1(total),
		Unit:          req.Unit,
		Runs:          runs,
		Phase:         t.Phase,
		Notes:         notes,
	}
}

// raceWeek is the final week: a single race-distance run at marathon-zone
// pace.
func (b *Builder) raceWeek(req *models.TrainingRequest, t weekTarget, z *zones.Result, days map[string]time.Weekday) models.WeekPlan {
	race := b.run(req, models.RunRace, req.TargetDistance, z.Zones.Marathon, days["race"], "Race day")
	return models.WeekPlan{
		WeekNumber:    t.WeekNumber,
		WeeklyMileage: req.TargetDistance,
		Unit:          req.Unit,
		Runs:          []models.PlannedRun{race},
		Phase:         t.Phase,
		Notes:         "Race week",
	}
}

func (b *Builder) run(req *models.TrainingRequest, typ models.RunType, distance float64, targetPace string, day time.Weekday, notes string) models.PlannedRun {
	return models.PlannedRun{
		Type:       typ,
		Distance:   distance,
		Unit:       req.Unit,
		TargetPace: targetPace,
		Day:        day,
		Notes:      notes,
	}
}
