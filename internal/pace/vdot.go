// Package pace implements the VDOT pace model: a velocity/VO2max formula
// evaluated forward to score a race performance, and inverted by bisection
// to derive training paces from a fitness score.
package pace

import (
	"math"

	"github.com/claude/paceplan/internal/models"
)

// Zone is a training intensity, expressed as the fraction of the fitness
// score a runner sustains in that zone.
type Zone float64

const (
	ZoneEasy       Zone = 0.70
	ZoneMarathon   Zone = 0.88
	ZoneThreshold  Zone = 0.95
	ZoneInterval   Zone = 1.02
	ZoneRepetition Zone = 1.08
)

const (
	// Fitness scores are clamped to this range when derived from a
	// performance.
	minScore = 20
	maxScore = 100

	// The inversion runs a fixed iteration budget and stops early only
	// once the implied score is within tolerance of the target.
	searchIterations = 50
	searchTolerance  = 0.1
)

// vo2AtVelocity returns the oxygen cost of running at the given velocity
// (meters per minute).
func vo2AtVelocity(v float64) float64 {
	return -4.6 + 0.182258*v + 0.000104*v*v
}

// percentOfMax returns the fraction of VO2max sustainable for a race
// lasting the given number of minutes.
func percentOfMax(minutes float64) float64 {
	return 0.8 + 0.1894393*math.Exp(-0.012778*minutes) + 0.2989558*math.Exp(-0.1932605*minutes)
}

// impliedScore returns the unclamped fitness score implied by covering
// meters in seconds.
func impliedScore(meters, seconds float64) float64 {
	minutes := seconds / 60
	velocity := meters / minutes
	return vo2AtVelocity(velocity) / percentOfMax(minutes)
}

// Calculator derives paces and fitness scores. The zero value works; an
// attached Cache memoizes inversion results as an optimization only.
type Calculator struct {
	cache *Cache
}

// NewCalculator returns a Calculator using the given cache. A nil cache
// disables memoization; outputs are identical either way.
func NewCalculator(cache *Cache) *Calculator {
	return &Calculator{cache: cache}
}

// raceTime locates, by bisection, the race time in seconds over meters
// whose implied fitness score is within tolerance of target. The domain
// [meters/10, meters] brackets velocities of 1-10 m/s, the physiological
// running range.
func raceTime(meters, target float64) float64 {
	lo := meters / 10
	hi := meters
	t := (lo + hi) / 2
	for i := 0; i < searchIterations; i++ {
		t = (lo + hi) / 2
		implied := impliedScore(meters, t)
		if math.Abs(implied-target) <= searchTolerance {
			break
		}
		if implied > target {
			// Candidate is too fast for the target demand; slow down.
			lo = t
		} else {
			hi = t
		}
	}
	return t
}

// ForFitness returns the training pace ("m:ss" per distance unit) for a
// runner of the given fitness score at the given zone intensity, for a race
// of the given distance.
func (c *Calculator) ForFitness(distance float64, unit models.DistanceUnit, score float64, zone Zone) string {
	key := cacheKey{op: opZonePace, distance: distance, unit: unit, score: score, zone: zone}
	if v, ok := c.cache.get(key); ok {
		return v
	}
	meters := distance * unit.Meters()
	t := raceTime(meters, score*float64(zone))
	p := FormatPace(t / distance)
	c.cache.put(key, p)
	return p
}

// GoalPace returns the race pace ("m:ss" per distance unit) the given
// fitness score predicts for the distance: the same inversion as ForFitness
// with no zone multiplier.
func (c *Calculator) GoalPace(distance float64, unit models.DistanceUnit, score float64) string {
	key := cacheKey{op: opGoalPace, distance: distance, unit: unit, score: score}
	if v, ok := c.cache.get(key); ok {
		return v
	}
	meters := distance * unit.Meters()
	t := raceTime(meters, score)
	p := FormatPace(t / distance)
	c.cache.put(key, p)
	return p
}

// FitnessFromPerformance scores a race performance: distance in the given
// unit, finishing time in seconds. The result is clamped to [20, 100].
func (c *Calculator) FitnessFromPerformance(distance float64, unit models.DistanceUnit, seconds float64) float64 {
	score := impliedScore(distance*unit.Meters(), seconds)
	return math.Min(maxScore, math.Max(minScore, score))
}
