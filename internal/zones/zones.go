// Package zones derives per-week training pace zones, blending from a
// runner's current fitness toward an optional goal pace as a plan
// progresses.
package zones

import (
	"github.com/claude/paceplan/internal/models"
	"github.com/claude/paceplan/internal/pace"
)

const (
	// Projected fitness-score improvement accrues at 1.4 points per
	// 4-week block, hard-capped at 6 points over any plan length.
	improvementPerBlock = 1.4
	improvementCap      = 6.0

	// Goal-oriented zone offsets, in seconds relative to the goal pace.
	goalEasyOffset     = 105
	goalTempoOffset    = -22
	goalIntervalOffset = -30 // relative to the goal tempo zone

	// Ceiling on how far each goal-oriented zone may leap ahead of the
	// current-fitness zone, in seconds.
	easyCeiling     = 30
	tempoCeiling    = 45
	intervalCeiling = 60
)

// Result is the outcome of a progressive zone derivation.
type Result struct {
	Zones models.PaceZoneSet
	// TrainingScore is the fitness score in effect for the requested
	// week, after the capped linear improvement projection.
	TrainingScore float64
}

// projectedImprovement returns the capped fitness-score gain expected over
// a plan of the given length.
func projectedImprovement(totalWeeks int) float64 {
	gain := improvementPerBlock * float64(totalWeeks) / 4
	if gain > improvementCap {
		gain = improvementCap
	}
	return gain
}

// progressionFactor returns currentWeek/totalWeeks clamped to [0, 1].
func progressionFactor(currentWeek, totalWeeks int) float64 {
	if totalWeeks <= 0 {
		return 0
	}
	f := float64(currentWeek) / float64(totalWeeks)
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}

// fitnessZones derives the four zone paces, in seconds per unit, straight
// from a fitness score.
func fitnessZones(calc *pace.Calculator, distance float64, unit models.DistanceUnit, score float64) (easy, marathon, tempo, interval float64) {
	easy = mustSeconds(calc.ForFitness(distance, unit, score, pace.ZoneEasy))
	marathon = mustSeconds(calc.ForFitness(distance, unit, score, pace.ZoneMarathon))
	tempo = mustSeconds(calc.ForFitness(distance, unit, score, pace.ZoneThreshold))
	interval = mustSeconds(calc.ForFitness(distance, unit, score, pace.ZoneInterval))
	return
}

// mustSeconds parses a pace the Calculator itself formatted. Such strings
// are always well-formed, so a parse failure here is a programming error.
func mustSeconds(p string) float64 {
	s, err := pace.ParsePace(p)
	if err != nil {
		panic("pace: calculator produced unparseable pace " + p)
	}
	return s
}

// Progressive produces the pace zone set for one week of a plan.
//
// Without a goal pace the zones are the current-fitness zones at the
// in-training score (current score plus the capped improvement, weighted by
// plan progress). With a goal pace, goal-oriented zones are built by
// offsetting the goal, capped so no zone leaps further ahead of current
// ability than its fixed ceiling, then blended with the current-fitness
// zones: early weeks weighted toward current fitness, late weeks toward
// the goal.
//
// goalPace may be empty. The ordering invariant is validated on the
// fitness-derived zones and a violation is returned as a
// *models.ZoneOrderError: it signals that the fitness score and zone
// factors are physiologically inconsistent, and is never corrected here.
// Goal-oriented zones are bounded by the ceilings instead, so an
// over-ambitious goal still yields zones (its feasibility is advisory,
// reported separately by ValidateGoal).
func Progressive(calc *pace.Calculator, score float64, goalPace string, totalWeeks, currentWeek int, distance float64, unit models.DistanceUnit) (*Result, error) {
	factor := progressionFactor(currentWeek, totalWeeks)
	trainingScore := score + projectedImprovement(totalWeeks)*factor

	var easy, marathon, tempo, interval float64
	if goalPace == "" {
		easy, marathon, tempo, interval = fitnessZones(calc, distance, unit, trainingScore)
		if err := checkOrdering(easy, marathon, tempo, interval, trainingScore); err != nil {
			return nil, err
		}
	} else {
		goal, err := pace.ParsePace(goalPace)
		if err != nil {
			return nil, err
		}

		// Current ability, not progressed: both the ceilings and the
		// blend are measured against where the runner is today.
		curEasy, curMarathon, curTempo, curInterval := fitnessZones(calc, distance, unit, score)
		if err := checkOrdering(curEasy, curMarathon, curTempo, curInterval, score); err != nil {
			return nil, err
		}

		goalEasy := capAhead(goal+goalEasyOffset, curEasy, easyCeiling)
		goalTempo := capAhead(goal+goalTempoOffset, curTempo, tempoCeiling)
		goalInterval := capAhead(goalTempo+goalIntervalOffset, curInterval, intervalCeiling)
		goalMarathon := goal

		easy = blend(curEasy, goalEasy, factor)
		marathon = blend(curMarathon, goalMarathon, factor)
		tempo = blend(curTempo, goalTempo, factor)
		interval = blend(curInterval, goalInterval, factor)
	}

	return &Result{
		Zones: models.PaceZoneSet{
			Easy:     pace.FormatPace(easy),
			Marathon: pace.FormatPace(marathon),
			Tempo:    pace.FormatPace(tempo),
			Interval: pace.FormatPace(interval),
		},
		TrainingScore: trainingScore,
	}, nil
}

// capAhead limits how far a goal-oriented zone (seconds) may sit ahead of
// the current-fitness zone: never more than ceiling seconds faster.
func capAhead(goal, current, ceiling float64) float64 {
	if floor := current - ceiling; goal < floor {
		return floor
	}
	return goal
}

// blend interpolates between the current-fitness and goal-oriented paces by
// plan progress.
func blend(current, goal, factor float64) float64 {
	return current*(1-factor) + goal*factor
}

// checkOrdering enforces the strict interval < tempo < marathon < easy
// invariant on paces in seconds.
func checkOrdering(easy, marathon, tempo, interval, score float64) error {
	if tempo >= easy {
		return &models.ZoneOrderError{Pair: "tempo-vs-easy", FitnessScore: score}
	}
	if tempo >= marathon {
		return &models.ZoneOrderError{Pair: "tempo-vs-marathon", FitnessScore: score}
	}
	if interval >= tempo {
		return &models.ZoneOrderError{Pair: "interval-vs-tempo", FitnessScore: score}
	}
	return nil
}
