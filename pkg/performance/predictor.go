// Package performance 提供员工绩效的确定性启发式预测
package performance

import (
	"fmt"
	"math"

	"github.com/paiyou/paiyou/pkg/model"
)

// Predictor 绩效预测器
// 基于历史分数的线性趋势外推，非训练模型，输出可复现
type Predictor struct {
	// Horizon 趋势外推的步数（一个历史采样周期为一步）
	Horizon float64
}

// NewPredictor 创建绩效预测器
func NewPredictor() *Predictor {
	return &Predictor{Horizon: 1}
}

// Predict 预测员工绩效与任务完成度
func (p *Predictor) Predict(
	staffID string,
	history model.PerformanceHistory,
	upcoming []model.UpcomingTask,
) model.PerformancePrediction {
	prediction := model.PerformancePrediction{
		StaffID:         staffID,
		TaskPredictions: make([]model.TaskPrediction, 0, len(upcoming)),
	}

	if len(history.Scores) == 0 {
		prediction.PredictedPerformance = 0.5
		prediction.Confidence = 0
		prediction.Risks = append(prediction.Risks, "No historical data available")
		prediction.Recommendations = append(prediction.Recommendations,
			"Monitor performance manually")
		return prediction
	}

	m := mean(history.Scores)
	slope := trendSlope(history.Scores)
	prediction.PredictedPerformance = clamp01(m + slope*p.Horizon)

	// 任务完成度：预测绩效对复杂度折减
	for _, task := range upcoming {
		complexity := task.ComplexityScore
		if complexity < 1 {
			complexity = 1
		}
		prediction.TaskPredictions = append(prediction.TaskPredictions, model.TaskPrediction{
			TaskID:               task.TaskID,
			CompletionLikelihood: clamp01(prediction.PredictedPerformance / complexity),
		})
	}

	// 风险识别
	if slope < -0.02 {
		prediction.Risks = append(prediction.Risks,
			fmt.Sprintf("Declining performance trend: %.3f per period", slope))
	}
	if history.AttendanceRate > 0 && history.AttendanceRate < 0.9 {
		prediction.Risks = append(prediction.Risks,
			fmt.Sprintf("Low attendance rate: %.0f%%", history.AttendanceRate*100))
	}
	if history.OvertimeHours > 10 {
		prediction.Risks = append(prediction.Risks,
			fmt.Sprintf("High overtime load: %.1fh", history.OvertimeHours))
	}

	// 置信度：样本量越大、方差越小越可信
	sampleFactor := math.Min(float64(len(history.Scores))/10.0, 1.0)
	variancePenalty := math.Min(variance(history.Scores)*2, 0.5)
	prediction.Confidence = clamp01(sampleFactor * (1 - variancePenalty))

	// 建议
	if slope < -0.02 {
		prediction.Recommendations = append(prediction.Recommendations,
			"Schedule a performance review and identify blockers")
	}
	if prediction.PredictedPerformance >= 0.8 {
		prediction.Recommendations = append(prediction.Recommendations,
			"Consider assigning higher-complexity tasks")
	}
	if len(prediction.Recommendations) == 0 {
		prediction.Recommendations = append(prediction.Recommendations,
			"Maintain current task allocation")
	}

	return prediction
}

// trendSlope 最小二乘拟合历史分数的斜率
func trendSlope(scores []float64) float64 {
	n := len(scores)
	if n < 2 {
		return 0
	}

	// x 取 0..n-1
	meanX := float64(n-1) / 2
	meanY := mean(scores)

	num := 0.0
	den := 0.0
	for i, y := range scores {
		dx := float64(i) - meanX
		num += dx * (y - meanY)
		den += dx * dx
	}
	if den == 0 {
		return 0
	}
	return num / den
}

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

func variance(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	m := mean(values)
	sumSquares := 0.0
	for _, v := range values {
		diff := v - m
		sumSquares += diff * diff
	}
	return sumSquares / float64(len(values))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
