// Package database 提供数据库连接和管理
package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/paiyou/paiyou/internal/config"
	"github.com/paiyou/paiyou/pkg/logger"

	_ "github.com/lib/pq" // PostgreSQL 驱动
)

// 超过该耗时的 SQL 记入慢查询日志
const defaultSlowQueryThreshold = 100 * time.Millisecond

// DB 数据库连接封装
// 历史仓储唯一的持久化后端；连接失败时调用方退回内存存储
type DB struct {
	*sql.DB
	cfg       *config.DatabaseConfig
	slowQuery time.Duration
}

// New 创建新的数据库连接
func New(cfg *config.DatabaseConfig) (*DB, error) {
	db, err := sql.Open("postgres", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("打开数据库连接失败: %w", err)
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("数据库连接测试失败: %w", err)
	}

	logger.Info().
		Str("host", cfg.Host).
		Int("port", cfg.Port).
		Str("database", cfg.Name).
		Int("max_open_conns", cfg.MaxOpenConns).
		Msg("数据库连接成功")

	return &DB{DB: db, cfg: cfg, slowQuery: defaultSlowQueryThreshold}, nil
}

// Close 关闭数据库连接
func (db *DB) Close() error {
	if db.DB != nil {
		logger.Info().Msg("关闭数据库连接")
		return db.DB.Close()
	}
	return nil
}

// Health 健康检查
func (db *DB) Health(ctx context.Context) error {
	return db.PingContext(ctx)
}

// ExecContext 执行SQL语句，超阈值记慢查询
func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	start := time.Now()
	result, err := db.DB.ExecContext(ctx, query, args...)
	db.observeQuery(query, time.Since(start))
	return result, err
}

// QueryContext 执行查询，超阈值记慢查询
func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	start := time.Now()
	rows, err := db.DB.QueryContext(ctx, query, args...)
	db.observeQuery(query, time.Since(start))
	return rows, err
}

// QueryRowContext 执行单行查询
func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	return db.DB.QueryRowContext(ctx, query, args...)
}

// observeQuery 记录慢 SQL
func (db *DB) observeQuery(query string, duration time.Duration) {
	if duration <= db.slowQuery {
		return
	}
	logger.Warn().
		Str("query", truncateQuery(query)).
		Dur("duration", duration).
		Msg("慢SQL查询")
}

// truncateQuery 截断长查询
func truncateQuery(query string) string {
	if len(query) > 200 {
		return query[:200] + "..."
	}
	return query
}
