package dates

import (
	"time"

	"github.com/claude/paceplan/internal/models"
)

// Options control how a plan is anchored to the calendar.
type Options struct {
	// Start and End are the plan anchor dates; either or both may be
	// nil. When both are nil the plan starts on the next Sunday.
	Start *time.Time
	End   *time.Time

	// StartNow marks a plan beginning mid-week today. Thursday-Saturday
	// anchors get a long first week (absorbing the trailing days) so
	// week 2 still opens on a Sunday; Sunday-Wednesday anchors use the
	// preceding Sunday as the effective first-week start.
	StartNow bool

	// Today overrides the current day for clamping; zero means now.
	// Plans cannot retroactively start before today.
	Today time.Time
}

// Assign maps the plan's weeks onto concrete dates and returns a new plan;
// the input is never mutated. Week boundaries after the first are Sundays
// exactly seven days apart by construction. The race run of the final week
// is pinned to the exact end date regardless of its weekday.
func Assign(plan *models.TrainingPlan, opts Options) *models.TrainingPlan {
	out := plan.Clone()
	weeks := len(out.Schedule)
	if weeks == 0 {
		return out
	}

	today := opts.Today
	if today.IsZero() {
		today = time.Now()
	}
	today = Midnight(today)

	var start, end time.Time
	switch {
	case opts.Start == nil && opts.End == nil:
		start = NextSunday(today)
		end = start.AddDate(0, 0, weeks*7)
	case opts.Start != nil && opts.End == nil:
		start = Midnight(*opts.Start)
		end = start.AddDate(0, 0, weeks*7)
	case opts.Start == nil && opts.End != nil:
		// Race anchoring: work backward from the Sunday-aligned week
		// containing the race so every boundary is a Sunday and the
		// race lands in the final week.
		end = Midnight(*opts.End)
		start = PrevSunday(end).AddDate(0, 0, -7*(weeks-1))
	default:
		start = Midnight(*opts.Start)
		end = Midnight(*opts.End)
	}

	if start.Before(today) {
		start = today
		end = start.AddDate(0, 0, weeks*7)
	}

	effSunday := PrevSunday(start)
	firstStart := start
	skip := 0
	if opts.StartNow {
		if start.Weekday() >= time.Thursday {
			skip = 1
		} else {
			firstStart = effSunday
		}
	}

	for i := range out.Schedule {
		week := &out.Schedule[i]
		if i == 0 {
			week.StartDate = timePtr(firstStart)
			assignFirstWeekRuns(week, firstStart)
			continue
		}
		ws := effSunday.AddDate(0, 0, (i+skip)*7)
		week.StartDate = timePtr(ws)
		for j := range week.Runs {
			week.Runs[j].Date = timePtr(ws.AddDate(0, 0, int(week.Runs[j].Day)))
		}
	}

	// The race is run on race day, wherever in the week that falls.
	final := &out.Schedule[weeks-1]
	for j := range final.Runs {
		if final.Runs[j].Type == models.RunRace {
			final.Runs[j].Date = timePtr(end)
		}
	}

	out.StartDate = timePtr(firstStart)
	out.EndDate = timePtr(end)
	return out
}

// assignFirstWeekRuns dates week-one runs relative to the (possibly
// mid-week) anchor instead of a Sunday boundary.
func assignFirstWeekRuns(week *models.WeekPlan, anchor time.Time) {
	anchorDay := int(anchor.Weekday())
	for j := range week.Runs {
		offset := (int(week.Runs[j].Day) - anchorDay + 7) % 7
		week.Runs[j].Date = timePtr(anchor.AddDate(0, 0, offset))
	}
}

// Strip is the exact inverse projection of Assign: it returns a new plan
// with every date field removed, ready for re-anchoring.
func Strip(plan *models.TrainingPlan) *models.TrainingPlan {
	out := plan.Clone()
	out.StartDate = nil
	out.EndDate = nil
	for i := range out.Schedule {
		out.Schedule[i].StartDate = nil
		for j := range out.Schedule[i].Runs {
			out.Schedule[i].Runs[j].Date = nil
		}
	}
	return out
}

func timePtr(t time.Time) *time.Time {
	return &t
}
