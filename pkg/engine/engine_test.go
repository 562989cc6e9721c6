package engine

import (
	"context"
	"testing"
	"time"

	"github.com/paiyou/paiyou/pkg/errors"
	"github.com/paiyou/paiyou/pkg/history"
	"github.com/paiyou/paiyou/pkg/model"
)

func testStaff() []model.StaffProfile {
	return []model.StaffProfile{
		{
			StaffID:         "s1",
			Department:      "kitchen",
			Skills:          []string{"cooking"},
			PreferredShift:  model.BandMorning,
			MaxHoursPerWeek: 40,
			HourlyRate:      20,
			Availability:    model.NewFullAvailability(),
		},
		{
			StaffID:         "s2",
			Department:      "kitchen",
			Skills:          []string{"serving"},
			PreferredShift:  model.BandAfternoon,
			MaxHoursPerWeek: 40,
			HourlyRate:      15,
			Availability:    model.NewFullAvailability(),
		},
	}
}

func testShifts() []model.ShiftRequirement {
	morning := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	afternoon := time.Date(2026, 8, 25, 13, 0, 0, 0, time.UTC)
	return []model.ShiftRequirement{
		{
			ShiftID:        "sh1",
			Department:     "kitchen",
			RequiredSkills: []string{"cooking"},
			StartTime:      morning,
			EndTime:        morning.Add(8 * time.Hour),
		},
		{
			ShiftID:        "sh2",
			Department:     "kitchen",
			RequiredSkills: []string{"serving"},
			StartTime:      afternoon,
			EndTime:        afternoon.Add(8 * time.Hour),
		},
	}
}

func TestOptimizeScheduleSuccess(t *testing.T) {
	eng := New(Options{})
	ctx := context.Background()

	result, err := eng.OptimizeSchedule(ctx, testStaff(), testShifts(), model.DefaultConstraints(), model.StrategyEfficiency)
	if err != nil {
		t.Fatal(err)
	}

	if result.Status != model.StatusSuccess {
		t.Errorf("Status = %s, want success (violations: %v)", result.Status, result.ConstraintViolations)
	}
	if len(result.Assignments) != 2 {
		t.Errorf("Expected 2 assignments, got %d", len(result.Assignments))
	}
	if result.Metrics["coverage_percentage"] != 100 {
		t.Errorf("Coverage = %f, want 100", result.Metrics["coverage_percentage"])
	}
	if result.OptimizationID == "" {
		t.Error("Missing optimization ID")
	}

	// 技能互补：s1 做 cooking 班，s2 做 serving 班
	for _, a := range result.Assignments {
		if a.StaffIndex == 0 && a.ShiftIndex != 0 {
			t.Errorf("s1 assigned to shift %d, want 0", a.ShiftIndex)
		}
	}

	// 结果落入历史
	count, _ := eng.History().Count(ctx)
	if count != 1 {
		t.Errorf("History count = %d, want 1", count)
	}
}

func TestOptimizeScheduleEmptyInputs(t *testing.T) {
	eng := New(Options{})

	result, err := eng.OptimizeSchedule(context.Background(), nil, nil, model.DefaultConstraints(), model.StrategyBalanced)
	if err != nil {
		t.Fatalf("Empty inputs should not error, got %v", err)
	}
	if result.Status != model.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}
	if result.Metrics["coverage_percentage"] != 0 {
		t.Errorf("Coverage = %f, want 0", result.Metrics["coverage_percentage"])
	}
}

func TestOptimizeScheduleInvalidInput(t *testing.T) {
	eng := New(Options{})

	bad := model.DefaultConstraints()
	bad.SkillMatchThreshold = 2.0

	_, err := eng.OptimizeSchedule(context.Background(), testStaff(), testShifts(), bad, model.StrategyBalanced)
	if err == nil {
		t.Fatal("Invalid constraints should fail fast")
	}
	if !errors.Is(err, errors.CodeInvalidInput) {
		t.Errorf("Expected INVALID_INPUT, got %s", errors.GetCode(err))
	}
}

func TestOptimizeSchedulePartialOnRejection(t *testing.T) {
	eng := New(Options{})

	// 员工已无可用工时：所有分配被过滤
	staff := testStaff()
	staff[0].CurrentWorkload = 40
	staff[1].CurrentWorkload = 40

	result, err := eng.OptimizeSchedule(context.Background(), staff, testShifts(), model.DefaultConstraints(), model.StrategyEfficiency)
	if err != nil {
		t.Fatal(err)
	}
	if result.Status != model.StatusPartial {
		t.Errorf("Status = %s, want partial", result.Status)
	}
	if len(result.Assignments) != 0 {
		t.Errorf("Expected no assignments, got %d", len(result.Assignments))
	}
	if len(result.ConstraintViolations) == 0 {
		t.Error("Expected constraint violations to be reported")
	}
}

func TestOptimizeScheduleAllStrategies(t *testing.T) {
	eng := New(Options{})
	ctx := context.Background()

	for _, strategy := range []model.Strategy{
		model.StrategyEfficiency,
		model.StrategyFairness,
		model.StrategyCost,
		model.StrategyBalanced,
	} {
		result, err := eng.OptimizeSchedule(ctx, testStaff(), testShifts(), model.DefaultConstraints(), strategy)
		if err != nil {
			t.Fatalf("Strategy %s errored: %v", strategy, err)
		}
		if result.Status != model.StatusSuccess {
			t.Errorf("Strategy %s status = %s, want success", strategy, result.Status)
		}
	}
}

func TestBalanceWorkload(t *testing.T) {
	eng := New(Options{})

	staff := testStaff()
	tasks := []model.ScheduledTask{
		{StaffID: "s1", TaskID: "t1", DurationHours: 38, PriorityScore: 0.5},
		{StaffID: "s1", TaskID: "t2", DurationHours: 2, PriorityScore: 0.1},
	}

	result := eng.BalanceWorkload(context.Background(), staff, tasks, "weekly")

	if result.BalanceID == "" {
		t.Error("Missing balance ID")
	}
	if result.ImbalanceScore < 0 || result.ImbalanceScore > 1 {
		t.Errorf("Imbalance = %f outside [0,1]", result.ImbalanceScore)
	}
	if len(result.StaffDistribution) != 2 {
		t.Errorf("Expected distribution for 2 staff, got %d", len(result.StaffDistribution))
	}
	for id, risk := range result.PredictedBurnoutRisk {
		if risk < 0 || risk > 1 {
			t.Errorf("Burnout risk for %s = %f outside [0,1]", id, risk)
		}
	}
	if len(result.ImprovementSuggestions) == 0 {
		t.Error("Expected improvement suggestions")
	}
}

func TestPredictPerformance(t *testing.T) {
	eng := New(Options{})

	prediction := eng.PredictPerformance(context.Background(), "s1",
		model.PerformanceHistory{Scores: []float64{0.7, 0.8, 0.9}}, nil)

	if prediction.StaffID != "s1" {
		t.Errorf("StaffID = %s, want s1", prediction.StaffID)
	}
	if prediction.PredictedPerformance <= 0 || prediction.PredictedPerformance > 1 {
		t.Errorf("Prediction = %f outside (0,1]", prediction.PredictedPerformance)
	}
}

func TestOptimizeShiftSwapsEmpty(t *testing.T) {
	eng := New(Options{})

	result := eng.OptimizeShiftSwaps(context.Background(), nil, nil, nil, model.DefaultConstraints())
	if len(result.Chains) != 0 {
		t.Errorf("Expected no chains, got %d", len(result.Chains))
	}
}

func TestBatchOptimize(t *testing.T) {
	eng := New(Options{History: history.NewMemoryStore(100)})

	requests := []OptimizeRequest{
		{Staff: testStaff(), Shifts: testShifts(), Constraints: model.DefaultConstraints(), Strategy: model.StrategyEfficiency},
		{Staff: nil, Shifts: nil, Constraints: model.DefaultConstraints(), Strategy: model.StrategyBalanced},
		{Staff: testStaff(), Shifts: testShifts(), Constraints: model.DefaultConstraints(), Strategy: model.StrategyFairness},
	}

	results := eng.BatchOptimize(context.Background(), requests, 2)

	if len(results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(results))
	}
	// 结果按请求顺序返回
	for i, r := range results {
		if r.Index != i {
			t.Errorf("Result %d has index %d", i, r.Index)
		}
		if r.Err != nil {
			t.Errorf("Request %d errored: %v", i, r.Err)
		}
	}
	if results[0].Result.Status != model.StatusSuccess {
		t.Errorf("First request status = %s, want success", results[0].Result.Status)
	}
	if results[1].Result.Status != model.StatusPartial {
		t.Errorf("Empty request status = %s, want partial", results[1].Result.Status)
	}

	count, _ := eng.History().Count(context.Background())
	if count != 3 {
		t.Errorf("History count = %d, want 3", count)
	}
}
