// Package engine 暴露人员排班优化的四个顶层操作
//
// 每个操作都是对调用方快照的自包含纯计算：无共享可变状态、
// 无 I/O、无外部调用。内部异常一律转换为 failed 状态结果，
// 绝不越过公共边界传播
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/paiyou/paiyou/pkg/balancer"
	"github.com/paiyou/paiyou/pkg/errors"
	"github.com/paiyou/paiyou/pkg/history"
	"github.com/paiyou/paiyou/pkg/logger"
	"github.com/paiyou/paiyou/pkg/model"
	"github.com/paiyou/paiyou/pkg/performance"
	"github.com/paiyou/paiyou/pkg/scoring"
	"github.com/paiyou/paiyou/pkg/solver"
	"github.com/paiyou/paiyou/pkg/stats"
	"github.com/paiyou/paiyou/pkg/swap"
	"github.com/paiyou/paiyou/pkg/validator"
)

// Options 引擎参数
type Options struct {
	CostWeight float64       // cost 策略的人力成本权重
	Swap       swap.Options  // 换班链搜索参数
	History    history.Store // 注入的追加式历史存储
}

// Engine 排班优化引擎
type Engine struct {
	scorer    *scoring.Engine
	validator *validator.Validator
	analyzer  *stats.Analyzer
	balancer  *balancer.Balancer
	predictor *performance.Predictor
	swapper   *swap.Optimizer
	hist      history.Store
	costW     float64
	log       *logger.OptimizerLogger
}

// New 创建优化引擎
func New(opts Options) *Engine {
	hist := opts.History
	if hist == nil {
		hist = history.NewMemoryStore(0)
	}
	return &Engine{
		scorer:    scoring.NewEngine(),
		validator: validator.New(),
		analyzer:  stats.NewAnalyzer(),
		balancer:  balancer.New(),
		predictor: performance.NewPredictor(),
		swapper:   swap.New(opts.Swap),
		hist:      hist,
		costW:     opts.CostWeight,
		log:       logger.NewOptimizerLogger(),
	}
}

// History 返回注入的历史存储
func (e *Engine) History() history.Store {
	return e.hist
}

// OptimizeSchedule 排班优化
//
// 输入错误在边界快速失败并返回 error；求解过程中的内部错误
// 转换为 failed 状态结果（附带回退建议），不返回 error。
// 空输入产生 partial 状态、覆盖率为 0 的结果，不报错
func (e *Engine) OptimizeSchedule(
	ctx context.Context,
	staff []model.StaffProfile,
	shifts []model.ShiftRequirement,
	constraints model.OptimizationConstraints,
	strategy model.Strategy,
) (result *model.ScheduleOptimizationResult, err error) {
	optID := model.NewOptimizationID("opt")
	start := time.Now()

	// 边界校验：畸形输入在进入求解器前拒绝
	if verr := e.validateInputs(staff, shifts, constraints); verr != nil {
		return nil, verr
	}

	defer func() {
		if r := recover(); r != nil {
			cause := fmt.Errorf("%v", r)
			e.log.OptimizationFailed(optID, cause)
			result = e.failedResult(optID, cause)
			err = nil
			e.appendHistory(ctx, result)
		}
	}()

	e.log.StartOptimization(optID, string(strategy), len(staff), len(shifts))

	// 1. 评分：构建成本矩阵
	cost := e.scorer.CostMatrix(staff, shifts)

	// 2. 求解：按策略分配
	rates := make([]float64, len(staff))
	for i := range staff {
		rates[i] = staff[i].HourlyRate
	}
	hours := make([]float64, len(shifts))
	for j := range shifts {
		hours[j] = shifts[j].Duration()
	}
	s := solver.New(solver.Options{
		CostWeight:  e.costW,
		HourlyRates: rates,
		ShiftHours:  hours,
	})
	raw, solveErr := s.Solve(cost, strategy)
	if solveErr != nil {
		e.log.OptimizationFailed(optID, solveErr)
		result = e.failedResult(optID, solveErr)
		e.appendHistory(ctx, result)
		return result, nil
	}

	// 3. 约束过滤
	validated, violations := e.validator.Validate(raw, staff, shifts, constraints)

	// 4. 指标与建议
	metrics := e.analyzer.Analyze(validated, staff, shifts)
	recommendations := e.analyzer.Recommend(metrics, validated)

	status := model.StatusPartial
	if len(validated) > 0 {
		status = model.StatusSuccess
	}

	result = &model.ScheduleOptimizationResult{
		OptimizationID:       optID,
		Status:               status,
		Assignments:          validated,
		Metrics:              metrics,
		ConstraintViolations: violations,
		Recommendations:      recommendations,
		GeneratedAt:          time.Now(),
	}

	e.appendHistory(ctx, result)
	e.log.OptimizationComplete(optID, time.Since(start), len(validated), len(raw)-len(validated))
	return result, nil
}

// BalanceWorkload 工作量均衡
func (e *Engine) BalanceWorkload(
	ctx context.Context,
	staff []model.StaffProfile,
	tasks []model.ScheduledTask,
	period string,
) (result *model.WorkloadBalancingResult) {
	balanceID := model.NewOptimizationID("balance")

	defer func() {
		if r := recover(); r != nil {
			e.log.OptimizationFailed(balanceID, fmt.Errorf("%v", r))
			result = &model.WorkloadBalancingResult{
				BalanceID:              balanceID,
				StaffDistribution:      map[string]float64{},
				ImbalanceScore:         1.0,
				RedistributionPlan:     []model.RedistributionStep{},
				PredictedBurnoutRisk:   map[string]float64{},
				ImprovementSuggestions: []string{"Fallback to manual balancing"},
			}
		}
	}()

	distribution := e.balancer.Distribution(staff, tasks)
	burnout := e.balancer.PredictBurnoutRisk(staff, tasks)

	return &model.WorkloadBalancingResult{
		BalanceID:              balanceID,
		StaffDistribution:      distribution,
		ImbalanceScore:         e.balancer.ImbalanceScore(distribution),
		RedistributionPlan:     e.balancer.RedistributionPlan(staff, tasks, distribution),
		PredictedBurnoutRisk:   burnout,
		ImprovementSuggestions: e.balancer.Suggestions(distribution, burnout),
	}
}

// PredictPerformance 绩效预测
func (e *Engine) PredictPerformance(
	ctx context.Context,
	staffID string,
	hist model.PerformanceHistory,
	upcoming []model.UpcomingTask,
) (result model.PerformancePrediction) {
	defer func() {
		if r := recover(); r != nil {
			e.log.OptimizationFailed(staffID, fmt.Errorf("%v", r))
			result = model.PerformancePrediction{
				StaffID:         staffID,
				Recommendations: []string{"Monitor performance manually"},
			}
		}
	}()

	return e.predictor.Predict(staffID, hist, upcoming)
}

// OptimizeShiftSwaps 换班优化
func (e *Engine) OptimizeShiftSwaps(
	ctx context.Context,
	requests []model.SwapRequest,
	staff []model.StaffProfile,
	schedule []model.ScheduledShift,
	constraints model.OptimizationConstraints,
) (result model.SwapOptimizationResult) {
	defer func() {
		if r := recover(); r != nil {
			e.log.OptimizationFailed("swap", fmt.Errorf("%v", r))
			result = model.SwapOptimizationResult{
				Chains:                  []model.SwapChain{},
				ApprovalRecommendations: []string{"Process swaps manually"},
			}
		}
	}()

	return e.swapper.Optimize(requests, staff, schedule, constraints)
}

// validateInputs 边界输入校验
func (e *Engine) validateInputs(
	staff []model.StaffProfile,
	shifts []model.ShiftRequirement,
	constraints model.OptimizationConstraints,
) error {
	if err := constraints.Validate(); err != nil {
		return errors.InvalidInput("constraints", err.Error())
	}
	for i := range staff {
		if err := staff[i].Validate(); err != nil {
			return errors.InvalidInput("staff_profiles", err.Error())
		}
	}
	for i := range shifts {
		if err := shifts[i].Validate(); err != nil {
			return errors.InvalidInput("shift_requirements", err.Error())
		}
	}
	return nil
}

// failedResult 构造失败结果
func (e *Engine) failedResult(optID string, cause error) *model.ScheduleOptimizationResult {
	return &model.ScheduleOptimizationResult{
		OptimizationID:       optID,
		Status:               model.StatusFailed,
		Assignments:          []model.Assignment{},
		Metrics:              map[string]float64{},
		ConstraintViolations: []string{cause.Error()},
		Recommendations:      []string{"Fallback to manual scheduling"},
		GeneratedAt:          time.Now(),
	}
}

// appendHistory 追加历史，失败只记日志
func (e *Engine) appendHistory(ctx context.Context, result *model.ScheduleOptimizationResult) {
	if err := e.hist.Append(ctx, result); err != nil {
		logger.WithError(err).Str("optimization_id", result.OptimizationID).Msg("写入优化历史失败")
	}
}
