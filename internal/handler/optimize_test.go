package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/paiyou/paiyou/pkg/engine"
	"github.com/paiyou/paiyou/pkg/model"
)

func newTestHandler() *OptimizeHandler {
	return NewOptimizeHandler(engine.New(engine.Options{}), 5*time.Second)
}

func postJSON(t *testing.T, handlerFunc http.HandlerFunc, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatal(err)
	}
	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader(payload))
	rec := httptest.NewRecorder()
	handlerFunc(rec, req)
	return rec
}

func TestOptimizeScheduleEndpoint(t *testing.T) {
	h := newTestHandler()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	req := ScheduleRequest{
		Staff: []model.StaffProfile{
			{StaffID: "s1", MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()},
		},
		Shifts: []model.ShiftRequirement{
			{ShiftID: "sh1", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		},
		Strategy: "efficiency",
	}

	rec := postJSON(t, h.OptimizeSchedule, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var result model.ScheduleOptimizationResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if result.Status != model.StatusSuccess {
		t.Errorf("Result status = %s, want success", result.Status)
	}
	if len(result.Assignments) != 1 {
		t.Errorf("Expected 1 assignment, got %d", len(result.Assignments))
	}
}

func TestOptimizeScheduleRejectsGet(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	h.OptimizeSchedule(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestOptimizeScheduleBadJSON(t *testing.T) {
	h := newTestHandler()

	req := httptest.NewRequest(http.MethodPost, "/", bytes.NewReader([]byte("{not json")))
	rec := httptest.NewRecorder()
	h.OptimizeSchedule(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400", rec.Code)
	}
}

func TestOptimizeScheduleInvalidConstraints(t *testing.T) {
	h := newTestHandler()

	bad := model.DefaultConstraints()
	bad.SkillMatchThreshold = 5

	req := ScheduleRequest{
		Staff:       []model.StaffProfile{{StaffID: "s1", MaxHoursPerWeek: 40}},
		Constraints: &bad,
	}
	rec := postJSON(t, h.OptimizeSchedule, req)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("Status = %d, want 400 (body: %s)", rec.Code, rec.Body.String())
	}
}

func TestBalanceWorkloadEndpoint(t *testing.T) {
	h := newTestHandler()

	req := WorkloadRequest{
		Staff: []model.StaffProfile{
			{StaffID: "s1", MaxHoursPerWeek: 40},
			{StaffID: "s2", MaxHoursPerWeek: 40},
		},
		Tasks: []model.ScheduledTask{
			{StaffID: "s1", TaskID: "t1", DurationHours: 30},
		},
		Period: "weekly",
	}
	rec := postJSON(t, h.BalanceWorkload, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var result model.WorkloadBalancingResult
	if err := json.Unmarshal(rec.Body.Bytes(), &result); err != nil {
		t.Fatal(err)
	}
	if len(result.StaffDistribution) != 2 {
		t.Errorf("Expected 2 distribution entries, got %d", len(result.StaffDistribution))
	}
}

func TestPredictPerformanceEndpoint(t *testing.T) {
	h := newTestHandler()

	rec := postJSON(t, h.PredictPerformance, PredictRequest{
		StaffID: "s1",
		History: model.PerformanceHistory{Scores: []float64{0.8, 0.8}},
	})
	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	// 缺少 staff_id 拒绝
	rec = postJSON(t, h.PredictPerformance, PredictRequest{})
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Missing staff_id status = %d, want 400", rec.Code)
	}
}

func TestHistoryEndpoint(t *testing.T) {
	h := newTestHandler()

	// 先产生一条历史
	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	postJSON(t, h.OptimizeSchedule, ScheduleRequest{
		Staff: []model.StaffProfile{
			{StaffID: "s1", MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()},
		},
		Shifts: []model.ShiftRequirement{
			{ShiftID: "sh1", StartTime: start, EndTime: start.Add(8 * time.Hour)},
		},
	})

	req := httptest.NewRequest(http.MethodGet, "/?limit=5", nil)
	rec := httptest.NewRecorder()
	h.History(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200 (body: %s)", rec.Code, rec.Body.String())
	}

	var resp HistoryResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if resp.Total != 1 || len(resp.Results) != 1 {
		t.Errorf("Total = %d, results = %d, want 1/1", resp.Total, len(resp.Results))
	}

	// 非法 limit 拒绝
	req = httptest.NewRequest(http.MethodGet, "/?limit=abc", nil)
	rec = httptest.NewRecorder()
	h.History(rec, req)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("Invalid limit status = %d, want 400", rec.Code)
	}
}

func TestBatchOptimizeEndpoint(t *testing.T) {
	h := newTestHandler()

	start := time.Date(2026, 8, 24, 8, 0, 0, 0, time.UTC)
	req := BatchScheduleRequest{
		Requests: []engine.OptimizeRequest{
			{
				Staff: []model.StaffProfile{
					{StaffID: "s1", MaxHoursPerWeek: 40, Availability: model.NewFullAvailability()},
				},
				Shifts: []model.ShiftRequirement{
					{ShiftID: "sh1", StartTime: start, EndTime: start.Add(8 * time.Hour)},
				},
				Constraints: model.DefaultConstraints(),
				Strategy:    model.StrategyEfficiency,
			},
			{Constraints: model.DefaultConstraints(), Strategy: model.StrategyBalanced},
		},
		Workers: 2,
	}
	rec := postJSON(t, h.BatchOptimize, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Status = %d, want 200", rec.Code)
	}

	var resp BatchScheduleResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}
	if len(resp.Results) != 2 {
		t.Errorf("Expected 2 results, got %d", len(resp.Results))
	}
}
