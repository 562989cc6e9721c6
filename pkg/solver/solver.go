// Package solver 提供基于最小成本二分图匹配的分配求解器
package solver

import (
	"sort"

	"github.com/paiyou/paiyou/pkg/errors"
	"github.com/paiyou/paiyou/pkg/model"
)

// Options 求解器参数
type Options struct {
	// CostWeight 为 cost 策略中人力成本项的权重 w：
	// adjusted = (1-w)*cost + w*laborCost/maxLaborCost
	CostWeight float64

	// HourlyRates 每个员工的时薪（与成本矩阵行对应）
	HourlyRates []float64

	// ShiftHours 每个班次的时长（与成本矩阵列对应）
	ShiftHours []float64
}

// DefaultOptions 返回默认求解参数
func DefaultOptions() Options {
	return Options{CostWeight: 0.5}
}

// Solver 分配求解器
// 四种策略共用同一个成本矩阵和同一个精确匹配算法
type Solver struct {
	opts Options
}

// New 创建求解器
func New(opts Options) *Solver {
	if opts.CostWeight <= 0 || opts.CostWeight > 1 {
		opts.CostWeight = DefaultOptions().CostWeight
	}
	return &Solver{opts: opts}
}

// Solve 按策略求解成本矩阵
func (s *Solver) Solve(cost [][]float64, strategy model.Strategy) ([]model.Assignment, error) {
	if len(cost) == 0 || len(cost[0]) == 0 {
		return nil, nil
	}
	width := len(cost[0])
	for _, row := range cost {
		if len(row) != width {
			return nil, errors.InvalidMatrix("行长度不一致")
		}
	}

	switch strategy {
	case model.StrategyEfficiency:
		return s.solveEfficiency(cost), nil
	case model.StrategyFairness:
		return s.solveFairness(cost), nil
	case model.StrategyCost:
		return s.solveCost(cost), nil
	case model.StrategyBalanced:
		return s.solveBalanced(cost), nil
	default:
		return nil, errors.New(errors.CodeInvalidStrategy, "未知的求解策略: "+string(strategy))
	}
}

// solveEfficiency 精确最小成本一对一分配
func (s *Solver) solveEfficiency(cost [][]float64) []model.Assignment {
	return toAssignments(assign(cost), cost)
}

// solveFairness 按行 min-max 归一化后再精确分配
// 消除绝对量级偏差，避免某个员工的整体低适配度主导目标函数
func (s *Solver) solveFairness(cost [][]float64) []model.Assignment {
	normalized := normalizeRows(cost)
	return toAssignments(assign(normalized), normalized)
}

// solveCost 最小化人力成本加权目标
// 缺少时薪/时长数据时回落到 efficiency 策略
func (s *Solver) solveCost(cost [][]float64) []model.Assignment {
	n := len(cost)
	m := len(cost[0])
	if len(s.opts.HourlyRates) != n || len(s.opts.ShiftHours) != m {
		return s.solveEfficiency(cost)
	}

	maxLabor := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			labor := s.opts.HourlyRates[i] * s.opts.ShiftHours[j]
			if labor > maxLabor {
				maxLabor = labor
			}
		}
	}
	if maxLabor <= 0 {
		return s.solveEfficiency(cost)
	}

	w := s.opts.CostWeight
	adjusted := make([][]float64, n)
	for i := 0; i < n; i++ {
		adjusted[i] = make([]float64, m)
		for j := 0; j < m; j++ {
			labor := s.opts.HourlyRates[i] * s.opts.ShiftHours[j]
			adjusted[i][j] = (1-w)*cost[i][j] + w*labor/maxLabor
		}
	}
	return toAssignments(assign(adjusted), adjusted)
}

// solveBalanced 效率解与公平解的贪心合并
// 并非联合重优化：合并候选按适配度降序稳定排序，
// 贪心接受员工与班次均未被占用的分配对，平局时保留排序靠前者
func (s *Solver) solveBalanced(cost [][]float64) []model.Assignment {
	candidates := append(s.solveEfficiency(cost), s.solveFairness(cost)...)

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Suitability > candidates[j].Suitability
	})

	claimedStaff := make(map[int]bool)
	claimedShift := make(map[int]bool)
	merged := make([]model.Assignment, 0, len(candidates))

	for _, a := range candidates {
		if claimedStaff[a.StaffIndex] || claimedShift[a.ShiftIndex] {
			continue
		}
		merged = append(merged, a)
		claimedStaff[a.StaffIndex] = true
		claimedShift[a.ShiftIndex] = true
	}

	return merged
}

// TotalCost 计算一组分配的总成本
func TotalCost(assignments []model.Assignment) float64 {
	total := 0.0
	for _, a := range assignments {
		total += a.Cost
	}
	return total
}

// normalizeRows 对每行独立做 min-max 归一化到 [0,1]
func normalizeRows(cost [][]float64) [][]float64 {
	normalized := make([][]float64, len(cost))
	for i, row := range cost {
		normalized[i] = make([]float64, len(row))
		copy(normalized[i], row)

		min, max := row[0], row[0]
		for _, v := range row[1:] {
			if v < min {
				min = v
			}
			if v > max {
				max = v
			}
		}
		if max > min {
			for j, v := range row {
				normalized[i][j] = (v - min) / (max - min)
			}
		}
	}
	return normalized
}

// toAssignments 将 (行, 列) 匹配对转换为分配记录
func toAssignments(pairs [][2]int, cost [][]float64) []model.Assignment {
	assignments := make([]model.Assignment, 0, len(pairs))
	for _, p := range pairs {
		i, j := p[0], p[1]
		assignments = append(assignments, model.Assignment{
			StaffIndex:  i,
			ShiftIndex:  j,
			Cost:        cost[i][j],
			Suitability: 1 - cost[i][j],
		})
	}
	return assignments
}
