// Package model 定义人员排班优化引擎的核心数据模型
package model

import (
	"fmt"
	"time"
)

// ExperienceLevel 经验等级
type ExperienceLevel string

const (
	ExperienceBeginner     ExperienceLevel = "beginner"     // 初级
	ExperienceIntermediate ExperienceLevel = "intermediate" // 中级
	ExperienceAdvanced     ExperienceLevel = "advanced"     // 高级
	ExperienceExpert       ExperienceLevel = "expert"       // 专家
)

// Score 将经验等级编码为数值
func (l ExperienceLevel) Score() float64 {
	switch l {
	case ExperienceBeginner:
		return 0.3
	case ExperienceIntermediate:
		return 0.6
	case ExperienceAdvanced:
		return 0.9
	case ExperienceExpert:
		return 1.0
	default:
		return 0.5
	}
}

// ShiftBand 班次时段偏好
type ShiftBand string

const (
	BandMorning   ShiftBand = "morning"   // 早班 6-12
	BandAfternoon ShiftBand = "afternoon" // 午班 12-18
	BandEvening   ShiftBand = "evening"   // 晚班 18-22
	BandNight     ShiftBand = "night"     // 夜班 22-6（跨午夜）
	BandFlexible  ShiftBand = "flexible"  // 灵活
)

// Contains 判断小时是否落在时段内
func (b ShiftBand) Contains(hour int) bool {
	switch b {
	case BandMorning:
		return hour >= 6 && hour < 12
	case BandAfternoon:
		return hour >= 12 && hour < 18
	case BandEvening:
		return hour >= 18 && hour < 22
	case BandNight:
		return hour >= 22 || hour < 6
	default:
		return false
	}
}

// AvailabilityMatrix 可用性矩阵：24小时 × 7天（周一为第0列）
type AvailabilityMatrix [][]bool

// NewFullAvailability 创建全可用矩阵
func NewFullAvailability() AvailabilityMatrix {
	m := make(AvailabilityMatrix, 24)
	for h := range m {
		m[h] = make([]bool, 7)
		for d := range m[h] {
			m[h][d] = true
		}
	}
	return m
}

// IsAvailable 查询某小时某天是否可用，越界返回 false
func (m AvailabilityMatrix) IsAvailable(hour, weekday int) bool {
	if hour < 0 || hour >= len(m) {
		return false
	}
	row := m[hour]
	if weekday < 0 || weekday >= len(row) {
		return false
	}
	return row[weekday]
}

// WeekdayIndex 将时间转换为周一为0的星期索引
func WeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

// StaffProfile 员工画像
// 调用方提供的不可变快照，单次优化期间不会被修改
type StaffProfile struct {
	StaffID          string             `json:"staff_id"`
	Name             string             `json:"name"`
	Department       string             `json:"department"`
	Skills           []string           `json:"skills"`
	Experience       ExperienceLevel    `json:"experience_level"`
	PreferredShift   ShiftBand          `json:"preferred_shift"`
	MaxHoursPerWeek  float64            `json:"max_hours_per_week"`
	HourlyRate       float64            `json:"hourly_rate"`
	PerformanceScore float64            `json:"performance_score"`
	Availability     AvailabilityMatrix `json:"availability_matrix,omitempty"`
	CurrentWorkload  float64            `json:"current_workload"` // 本周已承诺工时
	FatigueLevel     float64            `json:"fatigue_level"`    // 0-1
}

// HasSkill 检查员工是否具备某技能
func (s *StaffProfile) HasSkill(skill string) bool {
	for _, have := range s.Skills {
		if have == skill {
			return true
		}
	}
	return false
}

// Validate 校验员工画像
func (s *StaffProfile) Validate() error {
	if s.StaffID == "" {
		return fmt.Errorf("staff_id 不能为空")
	}
	if s.MaxHoursPerWeek <= 0 {
		return fmt.Errorf("员工 %s 的 max_hours_per_week 必须为正数", s.StaffID)
	}
	if s.FatigueLevel < 0 || s.FatigueLevel > 1 {
		return fmt.Errorf("员工 %s 的 fatigue_level 必须在 [0,1] 内", s.StaffID)
	}
	return nil
}
