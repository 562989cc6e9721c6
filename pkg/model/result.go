package model

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Strategy 求解策略
type Strategy string

const (
	StrategyEfficiency Strategy = "efficiency" // 全局最优分配
	StrategyFairness   Strategy = "fairness"   // 按行归一化后的公平分配
	StrategyCost       Strategy = "cost"       // 人力成本加权分配
	StrategyBalanced   Strategy = "balanced"   // 效率与公平的贪心合并（默认）
)

// ParseStrategy 解析策略名，未知值回落到 balanced
func ParseStrategy(s string) Strategy {
	switch Strategy(s) {
	case StrategyEfficiency, StrategyFairness, StrategyCost, StrategyBalanced:
		return Strategy(s)
	default:
		return StrategyBalanced
	}
}

// Status 优化结果状态
type Status string

const (
	StatusSuccess Status = "success"
	StatusPartial Status = "partial"
	StatusFailed  Status = "failed"
)

// Assignment (员工, 班次) 分配对
// 通过位置索引引用输入切片，由调用方解析为标识符
type Assignment struct {
	StaffIndex  int     `json:"staff_index"`
	ShiftIndex  int     `json:"shift_index"`
	Cost        float64 `json:"assignment_cost"` // 1 - suitability
	Suitability float64 `json:"suitability"`
}

// ScheduleOptimizationResult 排班优化结果
// 单次优化调用生成一次，之后不可变
type ScheduleOptimizationResult struct {
	OptimizationID       string             `json:"optimization_id"`
	Status               Status             `json:"status"`
	Assignments          []Assignment       `json:"assignments"`
	Metrics              map[string]float64 `json:"metrics"`
	ConstraintViolations []string           `json:"constraints_violations"`
	Recommendations      []string           `json:"recommendations"`
	GeneratedAt          time.Time          `json:"generated_at"`
}

// RedistributionStep 任务再分配建议
type RedistributionStep struct {
	FromStaffID         string  `json:"from_staff_id"`
	ToStaffID           string  `json:"to_staff_id"`
	TaskID              string  `json:"task_id"`
	ExpectedHoursChange float64 `json:"expected_workload_change"`
	Reason              string  `json:"reason"`
	Priority            string  `json:"priority"`
}

// WorkloadBalancingResult 工作量均衡结果
type WorkloadBalancingResult struct {
	BalanceID              string               `json:"balance_id"`
	StaffDistribution      map[string]float64   `json:"staff_distribution"` // 每人利用率（百分比）
	ImbalanceScore         float64              `json:"imbalance_score"`    // 0=完全均衡, 1=最大失衡
	RedistributionPlan     []RedistributionStep `json:"redistribution_plan"`
	PredictedBurnoutRisk   map[string]float64   `json:"predicted_burnout_risk"`
	ImprovementSuggestions []string             `json:"improvement_suggestions"`
}

// SwapMove 换班链中的一步：员工从一个班次移到另一个班次
type SwapMove struct {
	StaffID     string `json:"staff_id"`
	FromShiftID string `json:"from_shift_id"`
	ToShiftID   string `json:"to_shift_id"`
}

// SwapChain 一条完整的换班链
type SwapChain struct {
	Moves   []SwapMove `json:"moves"`
	Benefit float64    `json:"benefit_score"` // 链内适配度提升之和
}

// SwapOptimizationResult 换班优化结果
type SwapOptimizationResult struct {
	Chains                  []SwapChain `json:"optimal_chains"`
	TotalBenefit            float64     `json:"total_benefit"`
	ApprovalRecommendations []string    `json:"approval_recommendations"`
}

// TaskPrediction 单个任务的完成度预测
type TaskPrediction struct {
	TaskID               string  `json:"task_id"`
	CompletionLikelihood float64 `json:"completion_likelihood"` // 0-1
}

// PerformancePrediction 绩效预测结果
type PerformancePrediction struct {
	StaffID              string           `json:"staff_id"`
	PredictedPerformance float64          `json:"predicted_performance"`
	TaskPredictions      []TaskPrediction `json:"task_predictions"`
	Risks                []string         `json:"risk_assessment"`
	Confidence           float64          `json:"confidence_score"`
	Recommendations      []string         `json:"recommendations"`
}

// PerformanceHistory 员工历史绩效数据
type PerformanceHistory struct {
	Scores         []float64 `json:"performance_scores"` // 按时间升序
	AttendanceRate float64   `json:"attendance_rate"`    // 0-1
	CompletedTasks int       `json:"completed_tasks"`
	OvertimeHours  float64   `json:"overtime_hours"`
}

// UpcomingTask 待分配任务
type UpcomingTask struct {
	TaskID          string  `json:"task_id"`
	ComplexityScore float64 `json:"complexity_score"`
	DurationHours   float64 `json:"duration_hours"`
}

// NewOptimizationID 生成优化结果标识
func NewOptimizationID(prefix string) string {
	return fmt.Sprintf("%s-%s-%s",
		prefix,
		time.Now().Format("20060102-150405"),
		uuid.NewString()[:8],
	)
}
