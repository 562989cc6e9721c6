package model

import "fmt"

// OptimizationConstraints 排班优化约束
// 工时上限与最小休息为硬过滤条件，不是软惩罚
type OptimizationConstraints struct {
	MaxHoursPerWeek       float64        `json:"max_hours_per_week"`
	MinRestBetweenShifts  float64        `json:"min_rest_between_shifts"` // 小时
	MaxConsecutiveDays    int            `json:"max_consecutive_days"`
	MaxOvertimePerWeek    float64        `json:"max_overtime_per_week"`
	MinStaffPerDepartment map[string]int `json:"min_staff_per_shift,omitempty"`
	SkillMatchThreshold   float64        `json:"skill_match_threshold"`
	FairnessWeight        float64        `json:"fairness_weight"`
}

// DefaultConstraints 返回默认约束（奥地利劳动法标准）
func DefaultConstraints() OptimizationConstraints {
	return OptimizationConstraints{
		MaxHoursPerWeek:      38,
		MinRestBetweenShifts: 11,
		MaxConsecutiveDays:   6,
		MaxOvertimePerWeek:   10,
		SkillMatchThreshold:  0.7,
		FairnessWeight:       0.4,
	}
}

// Validate 校验约束参数
func (c *OptimizationConstraints) Validate() error {
	if c.MaxHoursPerWeek < 0 {
		return fmt.Errorf("max_hours_per_week 不能为负数")
	}
	if c.MinRestBetweenShifts < 0 {
		return fmt.Errorf("min_rest_between_shifts 不能为负数")
	}
	if c.MaxConsecutiveDays < 0 {
		return fmt.Errorf("max_consecutive_days 不能为负数")
	}
	if c.MaxOvertimePerWeek < 0 {
		return fmt.Errorf("max_overtime_per_week 不能为负数")
	}
	if c.SkillMatchThreshold < 0 || c.SkillMatchThreshold > 1 {
		return fmt.Errorf("skill_match_threshold 必须在 [0,1] 内")
	}
	if c.FairnessWeight < 0 || c.FairnessWeight > 1 {
		return fmt.Errorf("fairness_weight 必须在 [0,1] 内")
	}
	return nil
}
