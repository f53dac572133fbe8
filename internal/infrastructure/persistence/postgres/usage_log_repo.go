// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
)

// UsageLogRepository 用量日志仓储实现
type UsageLogRepository struct {
	client *Client
}

// NewUsageLogRepository 创建用量日志仓储
func NewUsageLogRepository(client *Client) *UsageLogRepository {
	return &UsageLogRepository{client: client}
}

// Create 追加一条用量日志
func (r *UsageLogRepository) Create(ctx context.Context, entry *entity.UsageLogEntry) error {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(entry).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create usage log entry: %w", err)
	}
	return nil
}

const usageSummarySelect = `
COALESCE(SUM(prompt_tokens),0)     AS prompt_tokens,
COALESCE(SUM(completion_tokens),0) AS completion_tokens,
COALESCE(SUM(total_tokens),0)      AS total_tokens,
COUNT(*)                           AS call_count,
COALESCE(SUM(CASE WHEN success THEN 1 ELSE 0 END),0) AS success_count,
COALESCE(SUM(CASE WHEN success THEN 0 ELSE 1 END),0) AS error_count`

// Aggregate 聚合时间窗口内的用量
func (r *UsageLogRepository) Aggregate(ctx context.Context, tenantID string, start, end time.Time, filter repository.UsageFilter) (*repository.UsageSummary, error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.Aggregate")
	defer span.End()

	db := getDB(ctx, r.client.db)
	q := db.Model(&entity.UsageLogEntry{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end)
	if filter.AgentName != "" {
		q = q.Where("agent_name = ?", filter.AgentName)
	}
	if filter.Provider != "" {
		q = q.Where("provider = ?", filter.Provider)
	}
	if filter.Model != "" {
		q = q.Where("model = ?", filter.Model)
	}

	var summary repository.UsageSummary
	if err := q.Select(usageSummarySelect).Scan(&summary).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to aggregate usage: %w", err)
	}
	return &summary, nil
}

// AggregateByAgent 按智能体分组聚合
func (r *UsageLogRepository) AggregateByAgent(ctx context.Context, tenantID string, start, end time.Time) ([]*repository.AgentUsage, error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.AggregateByAgent")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []*repository.AgentUsage
	if err := db.Model(&entity.UsageLogEntry{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end).
		Select("agent_name, " + usageSummarySelect).
		Group("agent_name").
		Order("total_tokens DESC").
		Scan(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to aggregate usage by agent: %w", err)
	}
	return rows, nil
}

// Timeline 按天聚合时间线
func (r *UsageLogRepository) Timeline(ctx context.Context, tenantID string, start, end time.Time) ([]*repository.UsageBucket, error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.Timeline")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var rows []*repository.UsageBucket
	if err := db.Model(&entity.UsageLogEntry{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end).
		Select("to_char(created_at, 'YYYY-MM-DD') AS date, " + usageSummarySelect).
		Group("date").
		Order("date ASC").
		Scan(&rows).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to aggregate usage timeline: %w", err)
	}
	return rows, nil
}

// List 分页查询明细
func (r *UsageLogRepository) List(ctx context.Context, tenantID string, start, end time.Time, pagination repository.Pagination) (*repository.PagedResult[*entity.UsageLogEntry], error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	base := db.Model(&entity.UsageLogEntry{}).
		Where("tenant_id = ? AND created_at >= ? AND created_at < ?", tenantID, start, end)

	var total int64
	if err := base.Count(&total).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to count usage log entries: %w", err)
	}

	var entries []*entity.UsageLogEntry
	if err := base.Order("created_at DESC").
		Offset(pagination.Offset()).
		Limit(pagination.Limit()).
		Find(&entries).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list usage log entries: %w", err)
	}
	return repository.NewPagedResult(entries, total, pagination), nil
}

// PurgeBefore 删除指定时间之前的日志
func (r *UsageLogRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, span := tracer.Start(ctx, "postgres.UsageLogRepository.PurgeBefore")
	defer span.End()

	db := getDB(ctx, r.client.db)
	res := db.Delete(&entity.UsageLogEntry{}, "created_at < ?", cutoff)
	if res.Error != nil {
		span.RecordError(res.Error)
		return 0, fmt.Errorf("failed to purge usage log entries: %w", res.Error)
	}
	return res.RowsAffected, nil
}
