// Package swap 基于请求图搜索有收益的换班链并做约束复验
package swap

import (
	"fmt"
	"sort"

	"github.com/paiyou/paiyou/pkg/logger"
	"github.com/paiyou/paiyou/pkg/model"
	"github.com/paiyou/paiyou/pkg/scoring"
	"github.com/paiyou/paiyou/pkg/validator"
)

// Options 换班优化参数
// 链的目标函数是显式参数：收益 = 链内各步适配度提升之和，
// 低于 MinChainBenefit 的链直接丢弃
type Options struct {
	MaxChainLength  int     // 链的最大步数
	MinChainBenefit float64 // 链的最小总收益
}

// DefaultOptions 返回默认换班参数
func DefaultOptions() Options {
	return Options{
		MaxChainLength:  3,
		MinChainBenefit: 0,
	}
}

// Optimizer 换班优化器
type Optimizer struct {
	opts      Options
	scorer    *scoring.Engine
	validator *validator.Validator
	log       *logger.OptimizerLogger
}

// New 创建换班优化器
func New(opts Options) *Optimizer {
	if opts.MaxChainLength <= 0 {
		opts.MaxChainLength = DefaultOptions().MaxChainLength
	}
	return &Optimizer{
		opts:      opts,
		scorer:    scoring.NewEngine(),
		validator: validator.New(),
		log:       logger.NewOptimizerLogger(),
	}
}

// Optimize 求解换班请求
//
// 请求构成有向图：节点为 (员工, 班次)，边为期望的交换。沿期望班次
// 追踪形成链或环；每条候选链按总适配度提升评估，收益为正且通过
// 约束复验的链保留，复验失败的链整体丢弃、绝不部分应用
func (o *Optimizer) Optimize(
	requests []model.SwapRequest,
	staff []model.StaffProfile,
	schedule []model.ScheduledShift,
	constraints model.OptimizationConstraints,
) model.SwapOptimizationResult {
	result := model.SwapOptimizationResult{
		Chains:                  []model.SwapChain{},
		ApprovalRecommendations: []string{},
	}
	if len(requests) == 0 || len(schedule) == 0 {
		return result
	}

	staffByID := make(map[string]*model.StaffProfile, len(staff))
	for i := range staff {
		staffByID[staff[i].StaffID] = &staff[i]
	}
	shiftByID := make(map[string]*model.ShiftRequirement, len(schedule))
	holder := make(map[string]string, len(schedule)) // shiftID -> staffID
	for i := range schedule {
		shiftByID[schedule[i].Shift.ShiftID] = &schedule[i].Shift
		holder[schedule[i].Shift.ShiftID] = schedule[i].StaffID
	}
	// 每个班次至多取第一条请求作为出边
	requestByShift := make(map[string]*model.SwapRequest, len(requests))
	for i := range requests {
		r := &requests[i]
		if _, exists := requestByShift[r.ShiftID]; !exists && holder[r.ShiftID] == r.StaffID {
			requestByShift[r.ShiftID] = r
		}
	}

	consumed := make(map[string]bool) // 已进入某条链的班次

	var candidates []model.SwapChain
	for i := range requests {
		start := &requests[i]
		if consumed[start.ShiftID] || requestByShift[start.ShiftID] != start {
			continue
		}

		chain, ok := o.traceChain(start, requestByShift, holder, staffByID, shiftByID)
		if !ok || chain.Benefit < o.opts.MinChainBenefit || chain.Benefit <= 0 {
			continue
		}

		candidates = append(candidates, chain)
		for _, move := range chain.Moves {
			consumed[move.FromShiftID] = true
			consumed[move.ToShiftID] = true
		}
	}

	// 收益高的链优先复验
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Benefit > candidates[j].Benefit
	})

	for _, chain := range candidates {
		if !o.revalidate(chain, staff, schedule, constraints) {
			o.log.ConstraintRejection(chain.Moves[0].StaffID, "swap chain failed revalidation")
			continue
		}
		result.Chains = append(result.Chains, chain)
		result.TotalBenefit += chain.Benefit
	}

	for i, chain := range result.Chains {
		result.ApprovalRecommendations = append(result.ApprovalRecommendations,
			fmt.Sprintf("Approve chain %d: %d move(s), benefit %.3f",
				i+1, len(chain.Moves), chain.Benefit))
	}

	return result
}

// traceChain 从一条请求出发沿期望班次追踪换班链
// 期望班次空闲时形成开链；追回起点班次时闭环；
// 中途遇到无请求的占用者则链不可行
func (o *Optimizer) traceChain(
	start *model.SwapRequest,
	requestByShift map[string]*model.SwapRequest,
	holder map[string]string,
	staffByID map[string]*model.StaffProfile,
	shiftByID map[string]*model.ShiftRequirement,
) (model.SwapChain, bool) {
	var chain model.SwapChain
	visited := map[string]bool{start.ShiftID: true}
	current := start

	for step := 0; step < o.opts.MaxChainLength; step++ {
		member := staffByID[current.StaffID]
		from := shiftByID[current.ShiftID]
		to := shiftByID[current.DesiredShiftID]
		if member == nil || from == nil {
			return chain, false
		}
		if to == nil {
			// 期望班次不在当前排班内
			return chain, false
		}

		chain.Moves = append(chain.Moves, model.SwapMove{
			StaffID:     current.StaffID,
			FromShiftID: current.ShiftID,
			ToShiftID:   current.DesiredShiftID,
		})
		chain.Benefit += o.scorer.Suitability(member, to) - o.scorer.Suitability(member, from)

		next := holder[current.DesiredShiftID]
		if next == "" {
			// 开链：目标班次无人占用
			return chain, true
		}
		if current.DesiredShiftID == start.ShiftID {
			// 闭环回到起点
			return chain, true
		}
		if visited[current.DesiredShiftID] {
			return chain, false
		}
		visited[current.DesiredShiftID] = true

		nextRequest := requestByShift[current.DesiredShiftID]
		if nextRequest == nil {
			// 占用者没有换出意愿，无法继续
			return chain, false
		}
		current = nextRequest
	}

	return chain, false
}

// revalidate 将链应用到排班快照后整体复验约束
// 链内任一移动被验证器丢弃即判定失败
func (o *Optimizer) revalidate(
	chain model.SwapChain,
	staff []model.StaffProfile,
	schedule []model.ScheduledShift,
	constraints model.OptimizationConstraints,
) bool {
	// 应用链得到新的班次归属
	newHolder := make(map[string]string, len(schedule))
	for _, s := range schedule {
		newHolder[s.Shift.ShiftID] = s.StaffID
	}
	moved := make(map[string]string, len(chain.Moves)) // shiftID -> 新员工
	for _, move := range chain.Moves {
		if newHolder[move.FromShiftID] == move.StaffID {
			newHolder[move.FromShiftID] = ""
		}
		newHolder[move.ToShiftID] = move.StaffID
		moved[move.ToShiftID] = move.StaffID
	}

	staffIndex := make(map[string]int, len(staff))
	for i := range staff {
		staffIndex[staff[i].StaffID] = i
	}

	shifts := make([]model.ShiftRequirement, 0, len(schedule))
	assignments := make([]model.Assignment, 0, len(schedule))
	for _, s := range schedule {
		owner := newHolder[s.Shift.ShiftID]
		if owner == "" {
			continue
		}
		idx, ok := staffIndex[owner]
		if !ok {
			return false
		}
		shifts = append(shifts, s.Shift)
		assignments = append(assignments, model.Assignment{
			StaffIndex: idx,
			ShiftIndex: len(shifts) - 1,
		})
	}

	validated, _ := o.validator.Validate(assignments, staff, shifts, constraints)

	// 所有被移动的分配必须原样通过
	surviving := make(map[string]string, len(validated))
	for _, a := range validated {
		surviving[shifts[a.ShiftIndex].ShiftID] = staff[a.StaffIndex].StaffID
	}
	for shiftID, staffID := range moved {
		if surviving[shiftID] != staffID {
			return false
		}
	}
	return true
}
