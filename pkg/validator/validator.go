// Package validator 按时间顺序重放分配并执行硬约束过滤
package validator

import (
	"fmt"
	"sort"
	"time"

	"github.com/paiyou/paiyou/pkg/logger"
	"github.com/paiyou/paiyou/pkg/model"
	"github.com/paiyou/paiyou/pkg/scoring"
)

// Validator 约束验证器
// 纯过滤器：不重排、不重试、不生成新的候选分配
type Validator struct {
	log *logger.OptimizerLogger
}

// New 创建约束验证器
func New() *Validator {
	return &Validator{log: logger.NewOptimizerLogger()}
}

// timedAssignment 补充了班次时间信息的分配
type timedAssignment struct {
	model.Assignment
	start    time.Time
	end      time.Time
	duration float64
}

// Validate 验证一组分配，返回通过的分配与违规描述
//
// 每个员工维护一个状态机：累计周工时（以已承诺工时起算）与最近
// 接受班次的结束时间。分配先按班次开始时间升序排序——休息间隔
// 与工时上限检查本质上是顺序性的。违规的分配被静默丢弃，
// 对应描述记录在返回的违规列表中
func (v *Validator) Validate(
	assignments []model.Assignment,
	staff []model.StaffProfile,
	shifts []model.ShiftRequirement,
	constraints model.OptimizationConstraints,
) ([]model.Assignment, []string) {
	if len(assignments) == 0 {
		return []model.Assignment{}, nil
	}

	// 补充班次时间并按开始时间排序
	timed := make([]timedAssignment, 0, len(assignments))
	for _, a := range assignments {
		if a.StaffIndex < 0 || a.StaffIndex >= len(staff) {
			continue
		}
		if a.ShiftIndex < 0 || a.ShiftIndex >= len(shifts) {
			continue
		}
		shift := shifts[a.ShiftIndex]
		timed = append(timed, timedAssignment{
			Assignment: a,
			start:      shift.StartTime,
			end:        shift.EndTime,
			duration:   shift.Duration(),
		})
	}
	sort.SliceStable(timed, func(i, j int) bool {
		return timed[i].start.Before(timed[j].start)
	})

	// 每个员工的状态：累计工时（含已承诺工时）与最近班次结束时间
	accumulated := make(map[int]float64, len(staff))
	lastEnd := make(map[int]time.Time, len(staff))
	for i := range staff {
		accumulated[i] = staff[i].CurrentWorkload
	}

	validated := make([]model.Assignment, 0, len(timed))
	var violations []string

	for _, a := range timed {
		member := &staff[a.StaffIndex]
		shift := &shifts[a.ShiftIndex]

		// 1. 周工时上限
		if accumulated[a.StaffIndex]+a.duration > member.MaxHoursPerWeek {
			reason := fmt.Sprintf(
				"Exceeds max hours: staff %s %.1fh > %.1fh",
				member.StaffID,
				accumulated[a.StaffIndex]+a.duration,
				member.MaxHoursPerWeek,
			)
			violations = append(violations, reason)
			v.log.ConstraintRejection(member.StaffID, reason)
			continue
		}

		// 2. 班次间最小休息
		if prev, ok := lastEnd[a.StaffIndex]; ok {
			rest := a.start.Sub(prev).Hours()
			if rest < constraints.MinRestBetweenShifts {
				reason := fmt.Sprintf(
					"Insufficient rest: staff %s %.1fh < %.1fh",
					member.StaffID, rest, constraints.MinRestBetweenShifts,
				)
				violations = append(violations, reason)
				v.log.ConstraintRejection(member.StaffID, reason)
				continue
			}
		}

		// 3. 技能匹配阈值
		match := scoring.SkillMatch(member.Skills, shift.RequiredSkills)
		if match < constraints.SkillMatchThreshold {
			reason := fmt.Sprintf(
				"Insufficient skills: staff %s %.2f < %.2f",
				member.StaffID, match, constraints.SkillMatchThreshold,
			)
			violations = append(violations, reason)
			v.log.ConstraintRejection(member.StaffID, reason)
			continue
		}

		validated = append(validated, a.Assignment)
		accumulated[a.StaffIndex] += a.duration
		lastEnd[a.StaffIndex] = a.end
	}

	return validated, violations
}
