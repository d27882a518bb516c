package schedule

import (
	"math"

	"github.com/claude/paceplan/internal/models"
)

// weekTarget is the periodization outcome for one week, computed before any
// runs are synthesized. Cutback reductions are already applied to Volume
// and LongRun; LongRun is zero for the race week.
type weekTarget struct {
	models.ProgressionState
	LongRun    float64
	TaperIndex int // 0-based index among the reduced taper weeks, -1 otherwise
	RaceWeek   bool
}

// phaseCounts splits the progress weeks (everything before the taper block)
// into Base/Build/Peak, each at least one week.
func phaseCounts(progress int, split PhaseSplit) (base, build, peak int) {
	base = int(math.Round(split.Base * float64(progress)))
	build = int(math.Round(split.Build * float64(progress)))
	if base < 1 {
		base = 1
	}
	if build < 1 {
		build = 1
	}
	peak = progress - base - build
	for peak < 1 {
		if build > 1 {
			build--
		} else if base > 1 {
			base--
		} else {
			break
		}
		peak = progress - base - build
	}
	return base, build, peak
}

// startVolume picks the week-1 volume: the runner's actual current volume
// when it is meaningfully established, never below 70% of the level's start
// point and never above it.
func startVolume(current, policyStart float64) float64 {
	floor := 0.7 * policyStart
	if current <= 0 {
		return policyStart
	}
	v := math.Max(current, floor)
	return math.Min(v, policyStart)
}

// progression derives every week's phase, target volume, long-run distance,
// and cutback flag. The taper block is the final TaperWeeks weeks: the
// reduced weeks then the race week.
func (b *Builder) progression(req *models.TrainingRequest) []weekTarget {
	p := b.policy
	race := p.Races[p.raceKey(req.TargetDistance, req.Unit)]
	level := race.Levels[req.Level]
	d := req.TargetDistance

	progress := req.Weeks - p.TaperWeeks
	base, build, _ := phaseCounts(progress, p.PhaseSplit)

	volStart := startVolume(req.StartingWeeklyVolume, level.VolumeStart*d)
	volPeak := level.VolumePeak * d
	longStart := level.LongStartPct * d
	longPeak := level.LongPeakPct * d

	targets := make([]weekTarget, 0, req.Weeks)
	for week := 1; week <= req.Weeks; week++ {
		t := weekTarget{TaperIndex: -1}
		t.WeekNumber = week

		switch {
		case week > req.Weeks-1:
			t.Phase = models.PhaseTaper
			t.RaceWeek = true
			t.WeeklyMileageTarget = d
		case week > progress:
			t.Phase = models.PhaseTaper
			t.TaperIndex = week - progress - 1
			// Volume steps back down toward race week.
			t.WeeklyMileageTarget = round1(volPeak * (0.6 - 0.2*float64(t.TaperIndex)))
			t.LongRun = race.TaperLongRuns[t.TaperIndex]
		default:
			switch {
			case week <= base:
				t.Phase = models.PhaseBase
			case week <= base+build:
				t.Phase = models.PhaseBuild
			default:
				t.Phase = models.PhasePeak
			}
			frac := 0.0
			if progress > 1 {
				frac = float64(week-1) / float64(progress-1)
			}
			vol := volStart + (volPeak-volStart)*frac
			long := longStart + (longPeak-longStart)*frac
			if week%p.CutbackEvery == 0 {
				t.Cutback = true
				vol *= p.Cutback.EasyTempoFactor
				long *= p.Cutback.LongFactor
			}
			t.WeeklyMileageTarget = round1(vol)
			t.LongRun = round1(long)
		}
		targets = append(targets, t)
	}
	return targets
}

// round1 rounds a distance to one decimal place.
func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
