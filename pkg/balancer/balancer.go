// Package balancer 提供工作量均衡分析与任务再分配建议
package balancer

import (
	"fmt"
	"math"

	"github.com/paiyou/paiyou/pkg/model"
)

// Balancer 工作量均衡器
type Balancer struct{}

// New 创建工作量均衡器
func New() *Balancer {
	return &Balancer{}
}

// Distribution 计算每人利用率（百分比）
// 利用率 = 已分配工时 / 最大周工时 × 100
func (b *Balancer) Distribution(staff []model.StaffProfile, tasks []model.ScheduledTask) map[string]float64 {
	assigned := make(map[string]float64, len(staff))
	for _, t := range tasks {
		assigned[t.StaffID] += t.DurationHours
	}

	distribution := make(map[string]float64, len(staff))
	for _, s := range staff {
		utilization := 0.0
		if s.MaxHoursPerWeek > 0 {
			utilization = assigned[s.StaffID] / s.MaxHoursPerWeek
		}
		distribution[s.StaffID] = utilization * 100
	}
	return distribution
}

// ImbalanceScore 计算失衡分数：利用率的变异系数，上限 1.0
// 无数据或均值为 0 时返回 1.0
func (b *Balancer) ImbalanceScore(distribution map[string]float64) float64 {
	if len(distribution) == 0 {
		return 1.0
	}

	values := make([]float64, 0, len(distribution))
	sum := 0.0
	for _, v := range distribution {
		values = append(values, v)
		sum += v
	}
	mean := sum / float64(len(values))
	if mean == 0 {
		return 1.0
	}

	sumSquares := 0.0
	for _, v := range values {
		diff := v - mean
		sumSquares += diff * diff
	}
	cv := math.Sqrt(sumSquares/float64(len(values))) / mean

	return math.Min(cv, 1.0)
}

// RedistributionPlan 生成任务再分配建议
//
// 利用率聚成至多 3 簇（质心升序：低利用、均衡、高利用）。对每个
// 高利用员工，取其优先级最低的任务，提议移交给第一个匹配到的
// 低利用员工——首次匹配策略，不保证全局最优
func (b *Balancer) RedistributionPlan(
	staff []model.StaffProfile,
	tasks []model.ScheduledTask,
	distribution map[string]float64,
) []model.RedistributionStep {
	if len(staff) < 2 {
		return nil
	}

	utilizations := make([]float64, len(staff))
	for i, s := range staff {
		utilizations[i] = distribution[s.StaffID]
	}

	k := distinctCount(utilizations)
	if k > 3 {
		k = 3
	}
	labels, _ := kmeans1D(utilizations, k)
	if labels == nil {
		return nil
	}
	underCluster := 0
	overCluster := k - 1
	if underCluster == overCluster {
		return nil
	}

	tasksByStaff := make(map[string][]model.ScheduledTask)
	for _, t := range tasks {
		tasksByStaff[t.StaffID] = append(tasksByStaff[t.StaffID], t)
	}

	var plan []model.RedistributionStep
	for i, s := range staff {
		if labels[i] != overCluster {
			continue
		}

		ownTasks := tasksByStaff[s.StaffID]
		if len(ownTasks) == 0 {
			continue
		}

		// 选优先级最低的任务外移
		lowest := ownTasks[0]
		for _, t := range ownTasks[1:] {
			if t.PriorityScore < lowest.PriorityScore {
				lowest = t
			}
		}

		// 首个低利用员工接收
		for j, candidate := range staff {
			if labels[j] != underCluster {
				continue
			}
			plan = append(plan, model.RedistributionStep{
				FromStaffID:         s.StaffID,
				ToStaffID:           candidate.StaffID,
				TaskID:              lowest.TaskID,
				ExpectedHoursChange: -lowest.DurationHours,
				Reason:              "Workload balancing",
				Priority:            "medium",
			})
			break
		}
	}

	return plan
}

// Suggestions 生成工作量改进建议
func (b *Balancer) Suggestions(distribution map[string]float64, burnoutRisk map[string]float64) []string {
	var suggestions []string

	overworked := 0
	underutilized := 0
	for _, utilization := range distribution {
		if utilization > 90 {
			overworked++
		}
		if utilization < 50 {
			underutilized++
		}
	}
	highRisk := 0
	for _, risk := range burnoutRisk {
		if risk > 0.7 {
			highRisk++
		}
	}

	if overworked > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Reduce workload for %d overworked staff members", overworked))
	}
	if highRisk > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Monitor %d staff members for burnout risk", highRisk))
	}
	if underutilized > 0 {
		suggestions = append(suggestions,
			fmt.Sprintf("Better utilize %d underutilized staff members", underutilized))
	}
	if len(suggestions) == 0 {
		suggestions = append(suggestions, "Workload distribution is well balanced")
	}

	return suggestions
}
