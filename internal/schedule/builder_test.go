package schedule

import (
	"errors"
	"testing"
	"time"

	"github.com/claude/paceplan/internal/models"
	"github.com/claude/paceplan/internal/pace"
)

func testCalc() *pace.Calculator {
	return pace.NewCalculator(pace.NewCache(512))
}

func marathonRequest() *models.TrainingRequest {
	return &models.TrainingRequest{
		Weeks:                16,
		TargetDistance:       26.2,
		Unit:                 models.UnitMiles,
		Level:                models.LevelBeginner,
		FitnessScore:         30,
		StartingWeeklyVolume: 20,
	}
}

func runOfType(t *testing.T, week models.WeekPlan, typ models.RunType) models.PlannedRun {
	t.Helper()
	for _, r := range week.Runs {
		if r.Type == typ {
			return r
		}
	}
	t.Fatalf("week %d has no %s run", week.WeekNumber, typ)
	return models.PlannedRun{}
}

// TestBuildPlanShape verifies the overall shape of a 16-week beginner
// marathon plan: week count, the race week, mileage bookkeeping, and the
// policy's weekday assignments.
func TestBuildPlanShape(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if plan.Weeks != 16 || len(plan.Schedule) != 16 {
		t.Fatalf("weeks = %d, schedule = %d, want 16", plan.Weeks, len(plan.Schedule))
	}
	if plan.ID != "" {
		t.Error("the builder must not stamp an ID")
	}

	for i, week := range plan.Schedule {
		if week.WeekNumber != i+1 {
			t.Errorf("schedule[%d].WeekNumber = %d", i, week.WeekNumber)
		}
		var sum float64
		for _, r := range week.Runs {
			sum += r.Distance
			if r.Distance <= 0 {
				t.Errorf("week %d: %s run with distance %v", week.WeekNumber, r.Type, r.Distance)
			}
			if r.Date != nil {
				t.Errorf("week %d: run carries a date before calendar alignment", week.WeekNumber)
			}
		}
		if got := round1(sum); got != week.WeeklyMileage {
			t.Errorf("week %d mileage %v != run sum %v", week.WeekNumber, week.WeeklyMileage, got)
		}
	}

	race := plan.Schedule[15]
	if len(race.Runs) != 1 {
		t.Fatalf("race week has %d runs, want 1", len(race.Runs))
	}
	if r := race.Runs[0]; r.Type != models.RunRace || r.Distance != 26.2 || r.Day != time.Sunday {
		t.Errorf("race run = %s %v on %s, want race 26.2 on Sunday", r.Type, r.Distance, r.Day)
	}
	if race.WeeklyMileage != 26.2 || race.Phase != models.PhaseTaper {
		t.Errorf("race week mileage %v phase %s, want 26.2 taper", race.WeeklyMileage, race.Phase)
	}

	long := runOfType(t, plan.Schedule[0], models.RunLong)
	if long.Day != time.Saturday || long.Distance != 11.8 {
		t.Errorf("week 1 long run = %v on %s, want 11.8 on Saturday", long.Distance, long.Day)
	}
	if iv := runOfType(t, plan.Schedule[0], models.RunInterval); iv.Day != time.Wednesday {
		t.Errorf("interval day = %s, want Wednesday", iv.Day)
	}
}

// TestBuildPlanFirstWeek verifies week one run by run: the easy volume is
// split into two capped runs, the rotating interval workout opens with
// 8 x 400m, and the week is scaled up so the long run stays within its
// 40% share.
func TestBuildPlanFirstWeek(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	week := plan.Schedule[0]
	if len(week.Runs) != 5 {
		t.Fatalf("week 1 has %d runs, want 5", len(week.Runs))
	}
	if week.WeeklyMileage != 24.7 {
		t.Errorf("week 1 mileage = %v, want 24.7", week.WeeklyMileage)
	}

	var easies []models.PlannedRun
	for _, r := range week.Runs {
		if r.Type == models.RunEasy {
			easies = append(easies, r)
		}
	}
	if len(easies) != 2 {
		t.Fatalf("%d easy runs, want the split pair", len(easies))
	}
	for _, r := range easies {
		if r.Distance != 4 {
			t.Errorf("easy run = %v, want the early-week cap of 4", r.Distance)
		}
	}
	if easies[0].Day != time.Monday || easies[1].Day != time.Friday {
		t.Errorf("easy days = %s, %s; want Monday, Friday", easies[0].Day, easies[1].Day)
	}

	iv := runOfType(t, week, models.RunInterval)
	if iv.Distance != 2.0 {
		t.Errorf("interval distance = %v, want 2.0 (8 x 400m in miles)", iv.Distance)
	}
	if iv.Notes != "8 x 400m at interval pace" {
		t.Errorf("interval notes = %q", iv.Notes)
	}
	if tempo := runOfType(t, week, models.RunTempo); tempo.Distance != 2.9 {
		t.Errorf("tempo distance = %v, want 2.9", tempo.Distance)
	}
}

// TestBuildPlanPaceZonesPerWeek verifies that each run carries the pace of
// its zone and that the long run uses the easy zone.
func TestBuildPlanPaceZonesPerWeek(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	week := plan.Schedule[0]
	easy := runOfType(t, week, models.RunEasy)
	long := runOfType(t, week, models.RunLong)
	iv := runOfType(t, week, models.RunInterval)

	if easy.TargetPace != "14:23" {
		t.Errorf("week 1 easy pace = %q, want 14:23", easy.TargetPace)
	}
	if long.TargetPace != easy.TargetPace {
		t.Errorf("long pace %q should match easy pace %q", long.TargetPace, easy.TargetPace)
	}
	if iv.TargetPace != "10:48" {
		t.Errorf("week 1 interval pace = %q, want 10:48", iv.TargetPace)
	}
	if r := plan.Schedule[15].Runs[0]; r.TargetPace != "10:42" {
		t.Errorf("race pace = %q, want the final marathon zone 10:42", r.TargetPace)
	}
}

// TestBuildPlanCutbackWeeks verifies that every fourth week is annotated as
// a cutback and carries less volume than the weeks around it.
func TestBuildPlanCutbackWeeks(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for _, weekNum := range []int{4, 8, 12} {
		week := plan.Schedule[weekNum-1]
		if week.Notes != "Cutback week: reduced volume for recovery" {
			t.Errorf("week %d notes = %q, want the cutback note", weekNum, week.Notes)
		}
		if prev := plan.Schedule[weekNum-2]; week.WeeklyMileage >= prev.WeeklyMileage {
			t.Errorf("cutback week %d mileage %v not below week %d's %v",
				weekNum, week.WeeklyMileage, weekNum-1, prev.WeeklyMileage)
		}
	}
	if plan.Schedule[0].Notes != "" {
		t.Errorf("week 1 notes = %q, want none", plan.Schedule[0].Notes)
	}
}

// TestBuildPlanDualStressRules verifies the two stress rules against known
// points of the fixture: the week-2 long run is held at week 1's distance
// while pace improves, and week 4 holds pace at week 3's zones once the
// long-run deficit passes a full unit.
func TestBuildPlanDualStressRules(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	long1 := runOfType(t, plan.Schedule[0], models.RunLong)
	long2 := runOfType(t, plan.Schedule[1], models.RunLong)
	easy1 := runOfType(t, plan.Schedule[0], models.RunEasy)
	easy2 := runOfType(t, plan.Schedule[1], models.RunEasy)
	if long2.Distance != long1.Distance {
		t.Errorf("week 2 long run %v should be held at week 1's %v", long2.Distance, long1.Distance)
	}
	if easy2.TargetPace == easy1.TargetPace {
		t.Error("week 2 pace should progress while the long run holds")
	}

	easy3 := runOfType(t, plan.Schedule[2], models.RunEasy)
	easy4 := runOfType(t, plan.Schedule[3], models.RunEasy)
	if easy3.TargetPace == easy2.TargetPace {
		t.Error("week 3 pace should still progress")
	}
	if easy4.TargetPace != easy3.TargetPace {
		t.Errorf("week 4 pace %q should be held at week 3's %q", easy4.TargetPace, easy3.TargetPace)
	}

	// After the catch-up week pace moves again.
	easy5 := runOfType(t, plan.Schedule[4], models.RunEasy)
	if easy5.TargetPace == easy4.TargetPace {
		t.Error("week 5 pace should resume progressing")
	}

	// No week both raises the long run by half a unit and changes pace.
	for i := 1; i < 13; i++ {
		prevLong := runOfType(t, plan.Schedule[i-1], models.RunLong)
		long := runOfType(t, plan.Schedule[i], models.RunLong)
		prevEasy := runOfType(t, plan.Schedule[i-1], models.RunEasy)
		easy := runOfType(t, plan.Schedule[i], models.RunEasy)
		if long.Distance >= prevLong.Distance+0.5 && easy.TargetPace != prevEasy.TargetPace {
			t.Errorf("week %d adds both distance (%v -> %v) and pace (%s -> %s)",
				i+1, prevLong.Distance, long.Distance, prevEasy.TargetPace, easy.TargetPace)
		}
	}
}

// TestBuildPlanTaperWeeks verifies the reduced taper weeks: fixed short
// distances, no interval work, and the policy's long runs of 10 and 8.
func TestBuildPlanTaperWeeks(t *testing.T) {
	plan, err := testBuilder(t).BuildPlan(marathonRequest())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	wantLongs := map[int]float64{14: 10, 15: 8}
	for weekNum, wantLong := range wantLongs {
		week := plan.Schedule[weekNum-1]
		if week.Phase != models.PhaseTaper {
			t.Errorf("week %d phase = %s, want taper", weekNum, week.Phase)
		}
		if len(week.Runs) != 3 {
			t.Errorf("week %d has %d runs, want easy/tempo/long", weekNum, len(week.Runs))
		}
		for _, r := range week.Runs {
			if r.Type == models.RunInterval {
				t.Errorf("week %d: no interval work belongs in the taper", weekNum)
			}
		}
		if long := runOfType(t, week, models.RunLong); long.Distance != wantLong {
			t.Errorf("week %d long run = %v, want %v", weekNum, long.Distance, wantLong)
		}
	}
}

// TestBuildPlanGoalTotalTime verifies that a goal given as a finishing time
// is converted to a per-unit pace and steers the final-week zones.
func TestBuildPlanGoalTotalTime(t *testing.T) {
	req := marathonRequest()
	req.FitnessScore = 40
	req.GoalTotalTime = "3:29:36" // 12576s / 26.2 = exactly 8:00 per mile
	plan, err := testBuilder(t).BuildPlan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := plan.Schedule[15].Runs[0]; r.TargetPace != "8:00" {
		t.Errorf("race pace = %q, want the 8:00 goal", r.TargetPace)
	}
}

// TestBuildPlanGoalPaceWins verifies that an explicit goal pace takes
// precedence over a goal total time.
func TestBuildPlanGoalPaceWins(t *testing.T) {
	req := marathonRequest()
	req.FitnessScore = 40
	req.GoalPace = "8:00"
	req.GoalTotalTime = "5:00:00"
	plan, err := testBuilder(t).BuildPlan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if r := plan.Schedule[15].Runs[0]; r.TargetPace != "8:00" {
		t.Errorf("race pace = %q, want the explicit 8:00 goal", r.TargetPace)
	}
}

// TestBuildPlanDayOverrides verifies per-run-type weekday overrides.
func TestBuildPlanDayOverrides(t *testing.T) {
	req := marathonRequest()
	req.DayOverrides = map[models.RunType]time.Weekday{
		models.RunLong: time.Sunday,
		models.RunRace: time.Saturday,
	}
	plan, err := testBuilder(t).BuildPlan(req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if long := runOfType(t, plan.Schedule[0], models.RunLong); long.Day != time.Sunday {
		t.Errorf("long day = %s, want the Sunday override", long.Day)
	}
	if race := plan.Schedule[15].Runs[0]; race.Day != time.Saturday {
		t.Errorf("race day = %s, want the Saturday override", race.Day)
	}
}

// TestBuildPlanRejectsBadRequests verifies that validation failures surface
// with their codes and no plan is produced.
func TestBuildPlanRejectsBadRequests(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*models.TrainingRequest)
		code   models.ErrorCode
	}{
		{"too few weeks", func(r *models.TrainingRequest) { r.Weeks = 6 }, models.ErrTooFewWeeks},
		{"short race", func(r *models.TrainingRequest) { r.TargetDistance = 10 }, models.ErrBelowHalfMarathon},
		{"bad level", func(r *models.TrainingRequest) { r.Level = "pro" }, models.ErrInvalidLevel},
	}
	b := testBuilder(t)
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := marathonRequest()
			tc.mutate(req)
			plan, err := b.BuildPlan(req)
			if plan != nil {
				t.Error("no plan should be returned")
			}
			var reqErr *models.RequestError
			if !errors.As(err, &reqErr) || reqErr.Code != tc.code {
				t.Errorf("expected code %q, got %v", tc.code, err)
			}
		})
	}

	req := marathonRequest()
	req.GoalPace = "8:5"
	_, err := b.BuildPlan(req)
	var paceErr *models.PaceError
	if !errors.As(err, &paceErr) || paceErr.Code != models.ErrPaceMalformed {
		t.Errorf("expected a malformed goal pace error, got %v", err)
	}
}

// TestBuildPlanDeterministic verifies that two builds of the same request
// are identical week for week.
func TestBuildPlanDeterministic(t *testing.T) {
	b := testBuilder(t)
	req := marathonRequest()
	a, err := b.BuildPlan(req)
	if err != nil {
		t.Fatal(err)
	}
	c, err := b.BuildPlan(req)
	if err != nil {
		t.Fatal(err)
	}
	for i := range a.Schedule {
		wa, wc := a.Schedule[i], c.Schedule[i]
		if wa.WeeklyMileage != wc.WeeklyMileage || len(wa.Runs) != len(wc.Runs) {
			t.Fatalf("week %d differs between builds", i+1)
		}
		for j := range wa.Runs {
			if wa.Runs[j] != wc.Runs[j] {
				t.Errorf("week %d run %d differs: %+v vs %+v", i+1, j, wa.Runs[j], wc.Runs[j])
			}
		}
	}
}
