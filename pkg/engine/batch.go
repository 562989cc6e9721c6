package engine

import (
	"context"
	"sync"

	"github.com/paiyou/paiyou/pkg/model"
)

// OptimizeRequest 一次独立的排班优化请求
type OptimizeRequest struct {
	Staff       []model.StaffProfile          `json:"staff_profiles"`
	Shifts      []model.ShiftRequirement      `json:"shift_requirements"`
	Constraints model.OptimizationConstraints `json:"constraints"`
	Strategy    model.Strategy                `json:"optimization_goal"`
}

// BatchResult 批量优化中单个请求的结果
type BatchResult struct {
	Index  int
	Result *model.ScheduleOptimizationResult
	Err    error
}

// BatchOptimize 在有界工作池上并行处理互相独立的优化请求
// 结果按请求顺序返回；上下文取消后未开始的请求不再执行
func (e *Engine) BatchOptimize(ctx context.Context, requests []OptimizeRequest, workers int) []BatchResult {
	if len(requests) == 0 {
		return nil
	}
	if workers <= 0 {
		workers = 4
	}
	if workers > len(requests) {
		workers = len(requests)
	}

	jobChan := make(chan int, len(requests))
	resultChan := make(chan BatchResult, len(requests))

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobChan {
				select {
				case <-ctx.Done():
					resultChan <- BatchResult{Index: idx, Err: ctx.Err()}
				default:
					req := requests[idx]
					result, err := e.OptimizeSchedule(ctx, req.Staff, req.Shifts, req.Constraints, req.Strategy)
					resultChan <- BatchResult{Index: idx, Result: result, Err: err}
				}
			}
		}()
	}

	go func() {
		for i := range requests {
			jobChan <- i
		}
		close(jobChan)
	}()

	go func() {
		wg.Wait()
		close(resultChan)
	}()

	results := make([]BatchResult, len(requests))
	for result := range resultChan {
		results[result.Index] = result
	}
	return results
}
