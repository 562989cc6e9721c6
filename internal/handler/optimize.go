// Package handler 提供HTTP请求处理器
package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	stderrors "errors"

	"github.com/paiyou/paiyou/internal/metrics"
	"github.com/paiyou/paiyou/pkg/engine"
	"github.com/paiyou/paiyou/pkg/errors"
	"github.com/paiyou/paiyou/pkg/model"
)

// OptimizeHandler 优化接口处理器
type OptimizeHandler struct {
	engine  *engine.Engine
	timeout time.Duration
}

// NewOptimizeHandler 创建优化接口处理器
func NewOptimizeHandler(eng *engine.Engine, timeout time.Duration) *OptimizeHandler {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	return &OptimizeHandler{engine: eng, timeout: timeout}
}

// ScheduleRequest 排班优化请求
type ScheduleRequest struct {
	Staff       []model.StaffProfile           `json:"staff_profiles"`
	Shifts      []model.ShiftRequirement       `json:"shift_requirements"`
	Constraints *model.OptimizationConstraints `json:"constraints,omitempty"`
	Strategy    string                         `json:"optimization_goal,omitempty"`
}

// OptimizeSchedule 排班优化 API
func (h *OptimizeHandler) OptimizeSchedule(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req ScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	constraints := model.DefaultConstraints()
	if req.Constraints != nil {
		constraints = *req.Constraints
	}
	strategy := model.ParseStrategy(req.Strategy)

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	start := time.Now()
	result, err := h.engine.OptimizeSchedule(ctx, req.Staff, req.Shifts, constraints, strategy)
	if err != nil {
		respondError(w, asAppError(err))
		return
	}

	metrics.RecordOptimization(string(strategy), string(result.Status),
		time.Since(start), len(result.ConstraintViolations))
	metrics.RecordOptimizationQuality(string(strategy),
		result.Metrics["coverage_percentage"], result.Metrics["workload_fairness"])

	respondJSON(w, http.StatusOK, result)
}

// BatchScheduleRequest 批量排班优化请求
type BatchScheduleRequest struct {
	Requests []engine.OptimizeRequest `json:"requests"`
	Workers  int                      `json:"workers,omitempty"`
}

// BatchScheduleResponse 批量排班优化响应
type BatchScheduleResponse struct {
	Results []*model.ScheduleOptimizationResult `json:"results"`
	Errors  []string                            `json:"errors,omitempty"`
}

// BatchOptimize 批量排班优化 API
func (h *OptimizeHandler) BatchOptimize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req BatchScheduleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	batch := h.engine.BatchOptimize(ctx, req.Requests, req.Workers)

	resp := BatchScheduleResponse{
		Results: make([]*model.ScheduleOptimizationResult, len(batch)),
	}
	for i, item := range batch {
		resp.Results[i] = item.Result
		if item.Err != nil {
			resp.Errors = append(resp.Errors, item.Err.Error())
		}
	}

	respondJSON(w, http.StatusOK, resp)
}

// WorkloadRequest 工作量均衡请求
type WorkloadRequest struct {
	Staff  []model.StaffProfile  `json:"staff_profiles"`
	Tasks  []model.ScheduledTask `json:"current_tasks"`
	Period string                `json:"balancing_period,omitempty"`
}

// BalanceWorkload 工作量均衡 API
func (h *OptimizeHandler) BalanceWorkload(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req WorkloadRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	result := h.engine.BalanceWorkload(r.Context(), req.Staff, req.Tasks, req.Period)
	metrics.SetImbalance(result.ImbalanceScore)

	respondJSON(w, http.StatusOK, result)
}

// PredictRequest 绩效预测请求
type PredictRequest struct {
	StaffID  string                   `json:"staff_id"`
	History  model.PerformanceHistory `json:"historical_data"`
	Upcoming []model.UpcomingTask     `json:"upcoming_tasks"`
}

// PredictPerformance 绩效预测 API
func (h *OptimizeHandler) PredictPerformance(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req PredictRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}
	if req.StaffID == "" {
		respondError(w, errors.InvalidInput("staff_id", "不能为空"))
		return
	}

	result := h.engine.PredictPerformance(r.Context(), req.StaffID, req.History, req.Upcoming)
	respondJSON(w, http.StatusOK, result)
}

// SwapRequest 换班优化请求
type SwapRequest struct {
	Requests    []model.SwapRequest            `json:"swap_requests"`
	Staff       []model.StaffProfile           `json:"staff_profiles"`
	Schedule    []model.ScheduledShift         `json:"current_schedule"`
	Constraints *model.OptimizationConstraints `json:"constraints,omitempty"`
}

// OptimizeSwaps 换班优化 API
func (h *OptimizeHandler) OptimizeSwaps(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持POST方法"))
		return
	}

	var req SwapRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, errors.Wrap(err, errors.CodeInvalidInput, "解析请求失败"))
		return
	}

	constraints := model.DefaultConstraints()
	if req.Constraints != nil {
		constraints = *req.Constraints
	}

	result := h.engine.OptimizeShiftSwaps(r.Context(), req.Requests, req.Staff, req.Schedule, constraints)
	metrics.RecordSwapChains(len(result.Chains))

	respondJSON(w, http.StatusOK, result)
}

// HistoryResponse 优化历史响应
type HistoryResponse struct {
	Total   int                                 `json:"total"`
	Results []*model.ScheduleOptimizationResult `json:"results"`
}

// History 优化历史查询 API
func (h *OptimizeHandler) History(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		respondError(w, errors.New(errors.CodeInvalidInput, "仅支持GET方法"))
		return
	}

	limit := 10
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			respondError(w, errors.InvalidInput("limit", "必须为正整数"))
			return
		}
		limit = n
	}

	store := h.engine.History()
	results, err := store.Recent(r.Context(), limit)
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "查询优化历史失败"))
		return
	}
	total, err := store.Count(r.Context())
	if err != nil {
		respondError(w, errors.Wrap(err, errors.CodeDatabaseError, "统计优化历史失败"))
		return
	}
	metrics.SetHistoryEntries(total)

	if results == nil {
		results = []*model.ScheduleOptimizationResult{}
	}
	respondJSON(w, http.StatusOK, HistoryResponse{Total: total, Results: results})
}

// respondJSON 返回JSON响应
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError 返回错误响应
func respondError(w http.ResponseWriter, err *errors.AppError) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(err.HTTPStatus)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"error":   true,
		"code":    err.Code,
		"message": err.Message,
		"details": err.Details,
	})
}

// asAppError 将任意错误转换为 AppError
func asAppError(err error) *errors.AppError {
	var appErr *errors.AppError
	if stderrors.As(err, &appErr) {
		return appErr
	}
	return errors.Wrap(err, errors.CodeInternal, "内部错误")
}
