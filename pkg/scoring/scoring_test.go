package scoring

import (
	"math"
	"testing"
	"time"

	"github.com/paiyou/paiyou/pkg/model"
)

func TestSkillMatch(t *testing.T) {
	tests := []struct {
		name     string
		staff    []string
		required []string
		want     float64
	}{
		{"no required skills", []string{"cooking"}, nil, 1.0},
		{"exact match", []string{"cooking"}, []string{"cooking"}, 1.0},
		{"no overlap", []string{"cooking"}, []string{"nursing"}, 0.0},
		// 交集 {b}，并集 {a,b,c}
		{"partial overlap", []string{"a", "b"}, []string{"b", "c"}, 1.0 / 3.0},
		{"no skills at all", nil, []string{"x"}, 0.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := SkillMatch(tt.staff, tt.required)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("SkillMatch = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSkillIntersection(t *testing.T) {
	// 重复要求只计一次
	got := SkillIntersection([]string{"a", "b"}, []string{"a", "a", "c"})
	if got != 1 {
		t.Errorf("SkillIntersection = %d, want 1", got)
	}
}

func TestPreferenceScore(t *testing.T) {
	morning := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	night := time.Date(2026, 8, 24, 23, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		preferred model.ShiftBand
		start     time.Time
		want      float64
	}{
		{"preferred hit", model.BandMorning, morning, 1.0},
		{"preferred miss", model.BandMorning, night, 0.3},
		{"flexible", model.BandFlexible, morning, 0.8},
		{"night wrap", model.BandNight, night, 1.0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			staff := &model.StaffProfile{PreferredShift: tt.preferred}
			shift := &model.ShiftRequirement{StartTime: tt.start}
			if got := PreferenceScore(staff, shift); got != tt.want {
				t.Errorf("PreferenceScore = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestSuitabilityPerfectMatch(t *testing.T) {
	engine := NewEngine()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC) // 周一早8点
	staff := &model.StaffProfile{
		StaffID:         "s1",
		Department:      "kitchen",
		Skills:          []string{"cooking"},
		PreferredShift:  model.BandMorning,
		MaxHoursPerWeek: 40,
		Availability:    model.NewFullAvailability(),
	}
	shift := &model.ShiftRequirement{
		ShiftID:        "sh1",
		Department:     "kitchen",
		RequiredSkills: []string{"cooking"},
		StartTime:      start,
		EndTime:        start.Add(8 * time.Hour),
	}

	// 技能1.0×0.30 + 可用1.0×0.25 + 偏好1.0×0.20 + 部门1.0×0.15 - 无惩罚
	want := 0.90
	got := engine.Suitability(staff, shift)
	if math.Abs(got-want) > 1e-9 {
		t.Errorf("Suitability = %f, want %f", got, want)
	}
}

func TestSuitabilityWorkloadPenalty(t *testing.T) {
	engine := NewEngine()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	shift := &model.ShiftRequirement{StartTime: start, EndTime: start.Add(8 * time.Hour)}

	fresh := &model.StaffProfile{MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()}
	loaded := &model.StaffProfile{MaxHoursPerWeek: 40, CurrentWorkload: 36, Availability: model.NewFullAvailability()}

	// 36h 超出 40×0.8=32h 共 4h，惩罚 4×0.10=0.4
	diff := engine.Suitability(fresh, shift) - engine.Suitability(loaded, shift)
	if math.Abs(diff-0.4) > 1e-9 {
		t.Errorf("Workload penalty difference = %f, want 0.4", diff)
	}
}

func TestCostMatrix(t *testing.T) {
	engine := NewEngine()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	staff := []model.StaffProfile{
		{StaffID: "s1", MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()},
		{StaffID: "s2", MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()},
	}
	shifts := []model.ShiftRequirement{
		{ShiftID: "sh1", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		{ShiftID: "sh2", StartTime: start.Add(24 * time.Hour), EndTime: start.Add(32 * time.Hour)},
		{ShiftID: "sh3", StartTime: start.Add(48 * time.Hour), EndTime: start.Add(56 * time.Hour)},
	}

	matrix := engine.CostMatrix(staff, shifts)

	if len(matrix) != 2 || len(matrix[0]) != 3 {
		t.Fatalf("Matrix dimensions = %dx%d, want 2x3", len(matrix), len(matrix[0]))
	}
	for i := range staff {
		for j := range shifts {
			want := 1 - engine.Suitability(&staff[i], &shifts[j])
			if math.Abs(matrix[i][j]-want) > 1e-9 {
				t.Errorf("matrix[%d][%d] = %f, want %f", i, j, matrix[i][j], want)
			}
		}
	}
}
