// Package stats 提供排班结果的统计分析
package stats

import (
	"math"

	"github.com/paiyou/paiyou/pkg/model"
	"github.com/paiyou/paiyou/pkg/scoring"
)

// Analyzer 指标分析器
type Analyzer struct{}

// NewAnalyzer 创建指标分析器
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Analyze 基于验证后的分配集合计算优化指标
// 空分配集合返回全零指标，不报错
func (a *Analyzer) Analyze(
	assignments []model.Assignment,
	staff []model.StaffProfile,
	shifts []model.ShiftRequirement,
) map[string]float64 {
	metrics := map[string]float64{
		"coverage_percentage":          0,
		"avg_suitability_score":        0,
		"workload_fairness":            0,
		"skill_utilization_percentage": 0,
		"preference_satisfaction":      0,
		"total_assignments":            float64(len(assignments)),
		"unassigned_shifts":            float64(len(shifts) - len(assignments)),
		"avg_hours_per_staff":          0,
		"workload_std_dev":             0,
	}
	if len(assignments) == 0 {
		return metrics
	}

	// 覆盖率
	if len(shifts) > 0 {
		metrics["coverage_percentage"] = float64(len(assignments)) / float64(len(shifts)) * 100
	}

	// 平均适配度
	suitabilitySum := 0.0
	for _, as := range assignments {
		suitabilitySum += 1 - as.Cost
	}
	metrics["avg_suitability_score"] = suitabilitySum / float64(len(assignments)) * 100

	// 每人工时分布
	hours := make([]float64, len(staff))
	for _, as := range assignments {
		if as.StaffIndex >= 0 && as.StaffIndex < len(staff) &&
			as.ShiftIndex >= 0 && as.ShiftIndex < len(shifts) {
			hours[as.StaffIndex] += shifts[as.ShiftIndex].Duration()
		}
	}
	metrics["workload_fairness"] = (1 - Gini(hours)) * 100
	metrics["avg_hours_per_staff"] = mean(hours)
	metrics["workload_std_dev"] = stdDev(hours)

	// 技能利用率
	totalRequired := 0
	for _, s := range shifts {
		totalRequired += len(s.RequiredSkills)
	}
	matched := 0
	for _, as := range assignments {
		if as.StaffIndex >= 0 && as.StaffIndex < len(staff) &&
			as.ShiftIndex >= 0 && as.ShiftIndex < len(shifts) {
			matched += scoring.SkillIntersection(
				staff[as.StaffIndex].Skills,
				shifts[as.ShiftIndex].RequiredSkills,
			)
		}
	}
	if totalRequired > 0 {
		metrics["skill_utilization_percentage"] = float64(matched) / float64(totalRequired) * 100
	}

	// 偏好满足度
	preferenceSum := 0.0
	for _, as := range assignments {
		if as.StaffIndex >= 0 && as.StaffIndex < len(staff) &&
			as.ShiftIndex >= 0 && as.ShiftIndex < len(shifts) {
			preferenceSum += scoring.PreferenceScore(&staff[as.StaffIndex], &shifts[as.ShiftIndex])
		}
	}
	metrics["preference_satisfaction"] = preferenceSum / float64(len(assignments)) * 100

	return metrics
}

// Recommend 根据指标生成改进建议
// 规则彼此独立、保持顺序，命中的全部输出
func (a *Analyzer) Recommend(metrics map[string]float64, assignments []model.Assignment) []string {
	var recommendations []string

	if metrics["coverage_percentage"] < 90 {
		recommendations = append(recommendations,
			"Increase hiring or offer overtime to cover all shifts")
	}
	if metrics["workload_fairness"] < 80 {
		recommendations = append(recommendations,
			"Redistribute workload for better fairness among staff")
	}
	if metrics["skill_utilization_percentage"] < 70 {
		recommendations = append(recommendations,
			"Provide cross-training to improve skill matching")
	}
	if metrics["preference_satisfaction"] < 75 {
		recommendations = append(recommendations,
			"Consider staff preferences more in scheduling")
	}
	if len(assignments) > 0 {
		recommendations = append(recommendations,
			"Schedule is optimized with current constraints")
	}

	return recommendations
}

// Gini 计算基尼系数：平均绝对两两差除以均值的一半
// 均值为 0 时返回 0
func Gini(values []float64) float64 {
	n := len(values)
	if n == 0 {
		return 0
	}

	m := mean(values)
	if m == 0 {
		return 0
	}

	// 平均绝对两两差（含自身配对，与 n² 个组合一致）
	sumAbsDiff := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			sumAbsDiff += math.Abs(values[i] - values[j])
		}
	}
	mad := sumAbsDiff / float64(n*n)

	return 0.5 * mad / m
}

// mean 计算平均值
func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// stdDev 计算总体标准差
func stdDev(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	return math.Sqrt(sumSquares / float64(len(values)))
}
