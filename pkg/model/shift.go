package model

import (
	"fmt"
	"time"
)

// Priority 班次优先级
type Priority string

const (
	PriorityLow      Priority = "low"
	PriorityMedium   Priority = "medium"
	PriorityHigh     Priority = "high"
	PriorityCritical Priority = "critical"
)

// Score 将优先级编码为数值
func (p Priority) Score() float64 {
	switch p {
	case PriorityLow:
		return 0.2
	case PriorityMedium:
		return 0.5
	case PriorityHigh:
		return 0.8
	case PriorityCritical:
		return 1.0
	default:
		return 0.5
	}
}

// ShiftRequirement 班次需求
type ShiftRequirement struct {
	ShiftID         string    `json:"shift_id"`
	Department      string    `json:"department"`
	RequiredSkills  []string  `json:"required_skills"`
	StartTime       time.Time `json:"start_time"`
	EndTime         time.Time `json:"end_time"`
	DurationHours   float64   `json:"duration_hours"`
	MinStaff        int       `json:"min_staff"`
	OptimalStaff    int       `json:"optimal_staff"`
	Priority        Priority  `json:"priority"`
	Location        string    `json:"location"`
	ComplexityScore float64   `json:"complexity_score"` // 1.0 = 标准难度
}

// Duration 返回班次时长（小时）；未显式给出时由起止时间推导
func (s *ShiftRequirement) Duration() float64 {
	if s.DurationHours > 0 {
		return s.DurationHours
	}
	return s.EndTime.Sub(s.StartTime).Hours()
}

// Validate 校验班次需求
func (s *ShiftRequirement) Validate() error {
	if s.ShiftID == "" {
		return fmt.Errorf("shift_id 不能为空")
	}
	if !s.EndTime.After(s.StartTime) {
		return fmt.Errorf("班次 %s 的结束时间必须晚于开始时间", s.ShiftID)
	}
	return nil
}

// ScheduledTask 已分配任务（工作量均衡的输入）
type ScheduledTask struct {
	StaffID       string  `json:"staff_id"`
	TaskID        string  `json:"task_id"`
	DurationHours float64 `json:"duration_hours"`
	PriorityScore float64 `json:"priority_score"`
}

// ScheduledShift 已排定班次（换班优化的输入）
type ScheduledShift struct {
	StaffID string           `json:"staff_id"`
	Shift   ShiftRequirement `json:"shift"`
}

// SwapRequest 换班请求
// 员工希望把自己排定的班次换成另一个班次
type SwapRequest struct {
	RequestID      string `json:"request_id"`
	StaffID        string `json:"staff_id"`
	ShiftID        string `json:"shift_id"`         // 当前排定班次
	DesiredShiftID string `json:"desired_shift_id"` // 期望换到的班次
}
