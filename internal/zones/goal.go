package zones

import (
	"fmt"

	"github.com/claude/paceplan/internal/models"
	"github.com/claude/paceplan/internal/pace"
)

// GoalValidation is the structured, non-throwing outcome of a feasibility
// check. An infeasible goal is advisory: callers decide whether to adopt
// the suggested pace, and plan building proceeds either way with the
// per-zone ceilings as the only guard.
type GoalValidation struct {
	IsValid               bool    `json:"isValid"`
	ProjectedFitnessScore float64 `json:"projectedFitnessScore"`
	Message               string  `json:"message"`
}

// ValidateGoal's conversion from fitness scores back to paces needs a race
// distance, which the call carries no hint of; the generator is half/full
// marathon specific, so the marathon is the fixed reference.
const referenceDistance = 26.2

// ValidateGoal compares the improvement a goal pace demands over the
// runner's current pace against the improvement achievable under the
// capped fitness-score projection. Malformed pace strings return a coded
// *models.PaceError; an infeasible goal is not an error.
func ValidateGoal(calc *pace.Calculator, goalPace, currentPace string, score float64, totalWeeks int) (*GoalValidation, error) {
	goalSec, err := pace.ParsePace(goalPace)
	if err != nil {
		return nil, fmt.Errorf("parsing goal pace: %w", err)
	}
	curSec, err := pace.ParsePace(currentPace)
	if err != nil {
		return nil, fmt.Errorf("parsing current pace: %w", err)
	}

	projected := score + projectedImprovement(totalWeeks)

	if goalSec >= curSec {
		return &GoalValidation{
			IsValid:               true,
			ProjectedFitnessScore: projected,
			Message:               "goal pace is no faster than your current pace",
		}, nil
	}

	goalPct := (curSec - goalSec) / curSec * 100

	// Achievable improvement, measured on the model's own predicted
	// paces at the reference distance.
	curModel := mustSeconds(calc.GoalPace(referenceDistance, models.UnitMiles, score))
	projModel := mustSeconds(calc.GoalPace(referenceDistance, models.UnitMiles, projected))
	achievablePct := (curModel - projModel) / curModel * 100
	if achievablePct < 0 {
		achievablePct = 0
	}

	if goalPct <= achievablePct {
		return &GoalValidation{
			IsValid:               true,
			ProjectedFitnessScore: projected,
			Message: fmt.Sprintf("goal pace %s is achievable: it needs a %.1f%% improvement and about %.1f%% is projected over %d weeks",
				pace.FormatPace(goalSec), goalPct, achievablePct, totalWeeks),
		}, nil
	}

	suggested := curSec * (1 - achievablePct/100)
	return &GoalValidation{
		IsValid:               false,
		ProjectedFitnessScore: projected,
		Message: fmt.Sprintf("goal pace %s needs a %.1f%% improvement but only about %.1f%% is projected over %d weeks; a goal near %s per unit is more realistic",
			pace.FormatPace(goalSec), goalPct, achievablePct, totalWeeks, pace.FormatPace(suggested)),
	}, nil
}
