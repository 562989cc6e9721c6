// Package history 提供优化结果的追加式审计存储
package history

import (
	"context"
	"sync"

	"github.com/paiyou/paiyou/pkg/model"
)

// Store 追加式历史存储接口
// 实现必须支持并发追加且不破坏已有条目
type Store interface {
	// Append 追加一条优化结果
	Append(ctx context.Context, result *model.ScheduleOptimizationResult) error

	// Recent 返回最近的至多 n 条结果，新者在前
	Recent(ctx context.Context, n int) ([]*model.ScheduleOptimizationResult, error)

	// Count 返回已记录的结果总数
	Count(ctx context.Context) (int, error)
}

// MemoryStore 内存环形缓冲实现
// 进程生命周期内有效，容量满后覆盖最旧条目
type MemoryStore struct {
	mu       sync.RWMutex
	entries  []*model.ScheduleOptimizationResult
	capacity int
	next     int
	total    int
}

// NewMemoryStore 创建内存历史存储
func NewMemoryStore(capacity int) *MemoryStore {
	if capacity <= 0 {
		capacity = 1000
	}
	return &MemoryStore{
		entries:  make([]*model.ScheduleOptimizationResult, capacity),
		capacity: capacity,
	}
}

// Append 追加一条优化结果
func (s *MemoryStore) Append(_ context.Context, result *model.ScheduleOptimizationResult) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[s.next] = result
	s.next = (s.next + 1) % s.capacity
	s.total++
	return nil
}

// Recent 返回最近的至多 n 条结果，新者在前
func (s *MemoryStore) Recent(_ context.Context, n int) ([]*model.ScheduleOptimizationResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.total
	if stored > s.capacity {
		stored = s.capacity
	}
	if n > stored {
		n = stored
	}
	if n <= 0 {
		return nil, nil
	}

	results := make([]*model.ScheduleOptimizationResult, 0, n)
	for i := 1; i <= n; i++ {
		idx := (s.next - i + s.capacity*2) % s.capacity
		results = append(results, s.entries[idx])
	}
	return results, nil
}

// Count 返回已记录的结果总数
func (s *MemoryStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.total, nil
}
