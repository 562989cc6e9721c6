package balancer

import (
	"math"

	"github.com/paiyou/paiyou/pkg/model"
)

// 倦怠风险模型参数
// 确定性的可解释启发式，不是训练模型：相同输入必须产生相同输出
const (
	burnoutUtilizationCap = 0.4  // 工作量因子上限
	burnoutFatigueWeight  = 0.3  // 疲劳因子权重
	burnoutOvertimeCap    = 0.2  // 加班因子上限
	burnoutOvertimeRate   = 0.01 // 每小时加班的风险增量
	burnoutBaseline       = 0.10 // 固定基线项
	standardWeeklyHours   = 38.5 // 奥地利标准周工时
)

// PredictBurnoutRisk 预测每个员工的倦怠风险 [0,1]
func (b *Balancer) PredictBurnoutRisk(staff []model.StaffProfile, tasks []model.ScheduledTask) map[string]float64 {
	assigned := make(map[string]float64, len(staff))
	for _, t := range tasks {
		assigned[t.StaffID] += t.DurationHours
	}

	risks := make(map[string]float64, len(staff))
	for _, s := range staff {
		hours := assigned[s.StaffID]

		utilization := 0.0
		if s.MaxHoursPerWeek > 0 {
			utilization = hours / s.MaxHoursPerWeek
		}

		risk := math.Min(utilization*burnoutUtilizationCap, burnoutUtilizationCap)
		risk += s.FatigueLevel * burnoutFatigueWeight
		risk += math.Min(math.Max(0, hours-standardWeeklyHours)*burnoutOvertimeRate, burnoutOvertimeCap)
		risk += burnoutBaseline

		risks[s.StaffID] = math.Min(risk, 1.0)
	}
	return risks
}
