// Package usage 提供 LLM 用量记录与查询
package usage

import (
	"context"
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

// Report 用量查询结果
type Report struct {
	Start   time.Time                 `json:"start"`
	End     time.Time                 `json:"end"`
	Summary *repository.UsageSummary  `json:"summary"`
	ByAgent []*repository.AgentUsage  `json:"by_agent,omitempty"`
	Daily   []*repository.UsageBucket `json:"daily,omitempty"`
}

// QueryOptions 用量查询选项
type QueryOptions struct {
	Filter  repository.UsageFilter
	ByAgent bool
	Daily   bool
}

// Query 用量查询与留存管理
type Query struct {
	usageRepo repository.UsageLogRepository
	retention time.Duration
}

// NewQuery 创建用量查询服务
func NewQuery(usageRepo repository.UsageLogRepository, retention time.Duration) *Query {
	return &Query{usageRepo: usageRepo, retention: retention}
}

// GetUsage 聚合时间窗口内的用量
func (q *Query) GetUsage(ctx context.Context, tenantID string, start, end time.Time, opts QueryOptions) (*Report, error) {
	ctx, span := tracer.Start(ctx, "usage.Query.GetUsage")
	defer span.End()

	if !end.After(start) {
		return nil, errors.ErrInvalidParam.WithDetail("end must be after start")
	}

	summary, err := q.usageRepo.Aggregate(ctx, tenantID, start, end, opts.Filter)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to aggregate usage")
	}

	report := &Report{Start: start, End: end, Summary: summary}

	if opts.ByAgent {
		report.ByAgent, err = q.usageRepo.AggregateByAgent(ctx, tenantID, start, end)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to aggregate usage by agent")
		}
	}
	if opts.Daily {
		report.Daily, err = q.usageRepo.Timeline(ctx, tenantID, start, end)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to aggregate usage timeline")
		}
	}
	return report, nil
}

// ListEntries 分页查询明细
func (q *Query) ListEntries(ctx context.Context, tenantID string, start, end time.Time, pagination repository.Pagination) (*repository.PagedResult[*entity.UsageLogEntry], error) {
	return q.usageRepo.List(ctx, tenantID, start, end, pagination)
}

// PurgeExpired 删除超出保留期的日志
func (q *Query) PurgeExpired(ctx context.Context) (int64, error) {
	if q.retention <= 0 {
		return 0, nil
	}
	cutoff := time.Now().Add(-q.retention)
	deleted, err := q.usageRepo.PurgeBefore(ctx, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, errors.CodeDatabaseError, "failed to purge usage logs")
	}
	if deleted > 0 {
		logger.Info(ctx, "purged expired usage logs", "deleted", deleted, "cutoff", cutoff)
	}
	return deleted, nil
}
