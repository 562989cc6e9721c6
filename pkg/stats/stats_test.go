package stats

import (
	"math"
	"testing"
	"time"

	"github.com/paiyou/paiyou/pkg/model"
)

func TestGini(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		want   float64
	}{
		{"empty", nil, 0},
		{"all equal", []float64{10, 10, 10}, 0},
		{"zero mean", []float64{0, 0}, 0},
		// 两两绝对差 (0+10+10+0)/4 = 5, 均值 5, gini = 0.5
		{"two values", []float64{0, 10}, 0.5},
		{"single value", []float64{7}, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Gini(tt.values)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Gini(%v) = %f, want %f", tt.values, got, tt.want)
			}
		})
	}
}

func TestGiniBounds(t *testing.T) {
	inputs := [][]float64{
		{1, 2, 3, 4, 5},
		{100, 0, 0, 0},
		{3.5, 3.5, 7.0},
	}
	for _, values := range inputs {
		g := Gini(values)
		if g < 0 || g > 1 {
			t.Errorf("Gini(%v) = %f outside [0,1]", values, g)
		}
	}
}

func metricKeys() []string {
	return []string{
		"coverage_percentage",
		"avg_suitability_score",
		"workload_fairness",
		"skill_utilization_percentage",
		"preference_satisfaction",
		"total_assignments",
		"unassigned_shifts",
		"avg_hours_per_staff",
		"workload_std_dev",
	}
}

func TestAnalyzeEmptyAssignments(t *testing.T) {
	analyzer := NewAnalyzer()

	shifts := []model.ShiftRequirement{{ShiftID: "sh1"}}
	metrics := analyzer.Analyze(nil, nil, shifts)

	// 所有指标键必须存在且为零（除未分配计数）
	for _, key := range metricKeys() {
		if _, ok := metrics[key]; !ok {
			t.Errorf("Missing metric key %q", key)
		}
	}
	if metrics["coverage_percentage"] != 0 {
		t.Errorf("coverage = %f, want 0", metrics["coverage_percentage"])
	}
	if metrics["unassigned_shifts"] != 1 {
		t.Errorf("unassigned_shifts = %f, want 1", metrics["unassigned_shifts"])
	}
}

func TestAnalyzeFullCoverage(t *testing.T) {
	analyzer := NewAnalyzer()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	staff := []model.StaffProfile{
		{StaffID: "s1", Skills: []string{"cooking"}, MaxHoursPerWeek: 40, PreferredShift: model.BandMorning},
		{StaffID: "s2", Skills: []string{"serving"}, MaxHoursPerWeek: 40, PreferredShift: model.BandMorning},
	}
	shifts := []model.ShiftRequirement{
		{ShiftID: "sh1", RequiredSkills: []string{"cooking"}, StartTime: start, EndTime: start.Add(8 * time.Hour)},
		{ShiftID: "sh2", RequiredSkills: []string{"serving"}, StartTime: start.Add(24 * time.Hour), EndTime: start.Add(32 * time.Hour)},
	}
	assignments := []model.Assignment{
		{StaffIndex: 0, ShiftIndex: 0, Cost: 0.1},
		{StaffIndex: 1, ShiftIndex: 1, Cost: 0.3},
	}

	metrics := analyzer.Analyze(assignments, staff, shifts)

	if metrics["coverage_percentage"] != 100 {
		t.Errorf("coverage = %f, want 100", metrics["coverage_percentage"])
	}
	// 平均适配度 (0.9+0.7)/2 = 0.8 → 80
	if math.Abs(metrics["avg_suitability_score"]-80) > 1e-9 {
		t.Errorf("avg_suitability = %f, want 80", metrics["avg_suitability_score"])
	}
	// 工时完全均衡：公平性 100
	if math.Abs(metrics["workload_fairness"]-100) > 1e-9 {
		t.Errorf("fairness = %f, want 100", metrics["workload_fairness"])
	}
	// 技能要求 2 项全部命中
	if metrics["skill_utilization_percentage"] != 100 {
		t.Errorf("skill utilization = %f, want 100", metrics["skill_utilization_percentage"])
	}
	// 两个早班偏好全部满足
	if metrics["preference_satisfaction"] != 100 {
		t.Errorf("preference = %f, want 100", metrics["preference_satisfaction"])
	}
	if metrics["avg_hours_per_staff"] != 8 {
		t.Errorf("avg hours = %f, want 8", metrics["avg_hours_per_staff"])
	}
	if metrics["workload_std_dev"] != 0 {
		t.Errorf("std dev = %f, want 0", metrics["workload_std_dev"])
	}
}

func TestRecommend(t *testing.T) {
	analyzer := NewAnalyzer()

	tests := []struct {
		name        string
		metrics     map[string]float64
		assignments []model.Assignment
		wantCount   int
	}{
		{
			"all good",
			map[string]float64{
				"coverage_percentage":          95,
				"workload_fairness":            90,
				"skill_utilization_percentage": 80,
				"preference_satisfaction":      85,
			},
			[]model.Assignment{{}},
			1, // 仅优化确认
		},
		{
			"everything low",
			map[string]float64{
				"coverage_percentage":          50,
				"workload_fairness":            40,
				"skill_utilization_percentage": 30,
				"preference_satisfaction":      20,
			},
			[]model.Assignment{{}},
			5,
		},
		{
			"empty assignments no ack",
			map[string]float64{
				"coverage_percentage": 0,
			},
			nil,
			4,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := analyzer.Recommend(tt.metrics, tt.assignments)
			if len(got) != tt.wantCount {
				t.Errorf("Expected %d recommendations, got %d: %v", tt.wantCount, len(got), got)
			}
		})
	}
}
