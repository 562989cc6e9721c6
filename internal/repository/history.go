// Package repository 提供数据访问层
package repository

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/paiyou/paiyou/pkg/model"
)

// DB 数据库接口
type DB interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row
}

// HistoryRepository 优化历史仓储
// 实现 history.Store，结果整体以 JSONB 存储，表为纯追加
type HistoryRepository struct {
	db DB
}

// NewHistoryRepository 创建优化历史仓储
func NewHistoryRepository(db DB) *HistoryRepository {
	return &HistoryRepository{db: db}
}

// EnsureSchema 创建历史表
func (r *HistoryRepository) EnsureSchema(ctx context.Context) error {
	query := `
		CREATE TABLE IF NOT EXISTS optimization_history (
			id UUID PRIMARY KEY,
			optimization_id TEXT NOT NULL,
			status TEXT NOT NULL,
			result JSONB NOT NULL,
			generated_at TIMESTAMPTZ NOT NULL,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.db.ExecContext(ctx, query); err != nil {
		return fmt.Errorf("创建优化历史表失败: %w", err)
	}
	return nil
}

// Append 追加一条优化结果
func (r *HistoryRepository) Append(ctx context.Context, result *model.ScheduleOptimizationResult) error {
	payload, err := json.Marshal(result)
	if err != nil {
		return fmt.Errorf("序列化优化结果失败: %w", err)
	}

	query := `
		INSERT INTO optimization_history (id, optimization_id, status, result, generated_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err = r.db.ExecContext(ctx, query,
		uuid.New(), result.OptimizationID, string(result.Status), payload,
		result.GeneratedAt, time.Now(),
	)
	if err != nil {
		return fmt.Errorf("写入优化历史失败: %w", err)
	}
	return nil
}

// Recent 返回最近的至多 n 条结果，新者在前
func (r *HistoryRepository) Recent(ctx context.Context, n int) ([]*model.ScheduleOptimizationResult, error) {
	if n <= 0 {
		return nil, nil
	}

	query := `
		SELECT result FROM optimization_history
		ORDER BY created_at DESC
		LIMIT $1
	`
	rows, err := r.db.QueryContext(ctx, query, n)
	if err != nil {
		return nil, fmt.Errorf("查询优化历史失败: %w", err)
	}
	defer rows.Close()

	var results []*model.ScheduleOptimizationResult
	for rows.Next() {
		var payload []byte
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("扫描优化历史行失败: %w", err)
		}
		var result model.ScheduleOptimizationResult
		if err := json.Unmarshal(payload, &result); err != nil {
			return nil, fmt.Errorf("反序列化优化结果失败: %w", err)
		}
		results = append(results, &result)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("遍历优化历史失败: %w", err)
	}
	return results, nil
}

// Count 返回已记录的结果总数
func (r *HistoryRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM optimization_history`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("统计优化历史失败: %w", err)
	}
	return count, nil
}
