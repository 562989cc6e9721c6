// Package scoring 计算 (员工, 班次) 适配度并生成成本矩阵
package scoring

import (
	"github.com/paiyou/paiyou/pkg/model"
)

// 适配度加权系数
const (
	weightSkill      = 0.30
	weightAvail      = 0.25
	weightPreference = 0.20
	weightDepartment = 0.15
	weightWorkload   = 0.10
)

// Engine 评分引擎
type Engine struct{}

// NewEngine 创建评分引擎
func NewEngine() *Engine {
	return &Engine{}
}

// CostMatrix 生成 N×M 成本矩阵，cost[i][j] = 1 - suitability(员工i, 班次j)
// 适配度不做截断：成本可为负（极佳匹配）或大于1（极差匹配），
// 仅作为相对排序信号使用
func (e *Engine) CostMatrix(staff []model.StaffProfile, shifts []model.ShiftRequirement) [][]float64 {
	matrix := make([][]float64, len(staff))
	for i := range staff {
		row := make([]float64, len(shifts))
		for j := range shifts {
			row[j] = 1 - e.Suitability(&staff[i], &shifts[j])
		}
		matrix[i] = row
	}
	return matrix
}

// Suitability 计算员工对班次的适配度
func (e *Engine) Suitability(staff *model.StaffProfile, shift *model.ShiftRequirement) float64 {
	return weightSkill*SkillMatch(staff.Skills, shift.RequiredSkills) +
		weightAvail*e.availability(staff, shift) +
		weightPreference*PreferenceScore(staff, shift) +
		weightDepartment*e.departmentMatch(staff, shift) -
		weightWorkload*e.workloadPenalty(staff)
}

// SkillMatch 计算技能匹配度（Jaccard 相似度）
// 班次不要求技能时视为完全匹配
func SkillMatch(staffSkills, requiredSkills []string) float64 {
	if len(requiredSkills) == 0 {
		return 1.0
	}

	staffSet := make(map[string]struct{}, len(staffSkills))
	for _, s := range staffSkills {
		staffSet[s] = struct{}{}
	}
	requiredSet := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		requiredSet[s] = struct{}{}
	}

	intersection := 0
	for s := range requiredSet {
		if _, ok := staffSet[s]; ok {
			intersection++
		}
	}
	union := len(staffSet)
	for s := range requiredSet {
		if _, ok := staffSet[s]; !ok {
			union++
		}
	}

	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// SkillIntersection 返回员工技能与班次要求技能的交集数量
func SkillIntersection(staffSkills, requiredSkills []string) int {
	staffSet := make(map[string]struct{}, len(staffSkills))
	for _, s := range staffSkills {
		staffSet[s] = struct{}{}
	}
	count := 0
	seen := make(map[string]struct{}, len(requiredSkills))
	for _, s := range requiredSkills {
		if _, dup := seen[s]; dup {
			continue
		}
		seen[s] = struct{}{}
		if _, ok := staffSet[s]; ok {
			count++
		}
	}
	return count
}

// availability 按班次开始时刻查询可用性矩阵
func (e *Engine) availability(staff *model.StaffProfile, shift *model.ShiftRequirement) float64 {
	hour := shift.StartTime.Hour()
	weekday := model.WeekdayIndex(shift.StartTime)
	if staff.Availability.IsAvailable(hour, weekday) {
		return 1.0
	}
	return 0.0
}

// PreferenceScore 计算偏好满足度
// 命中偏好时段 1.0，灵活偏好 0.8，其余 0.3
func PreferenceScore(staff *model.StaffProfile, shift *model.ShiftRequirement) float64 {
	if staff.PreferredShift == model.BandFlexible {
		return 0.8
	}
	if staff.PreferredShift.Contains(shift.StartTime.Hour()) {
		return 1.0
	}
	return 0.3
}

// departmentMatch 部门匹配：同部门 1.0，跨部门 0.5
func (e *Engine) departmentMatch(staff *model.StaffProfile, shift *model.ShiftRequirement) float64 {
	if staff.Department == shift.Department {
		return 1.0
	}
	return 0.5
}

// workloadPenalty 工作量惩罚：超出最大工时80%的部分
func (e *Engine) workloadPenalty(staff *model.StaffProfile) float64 {
	over := staff.CurrentWorkload - staff.MaxHoursPerWeek*0.8
	if over < 0 {
		return 0
	}
	return over
}
