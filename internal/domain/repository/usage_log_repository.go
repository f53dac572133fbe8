// Package repository 定义数据访问层接口
package repository

import (
	"context"
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// UsageFilter 用量查询过滤条件
type UsageFilter struct {
	AgentName string
	Provider  string
	Model     string
}

// UsageSummary 时间窗口内的用量聚合
type UsageSummary struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
	TotalTokens      int64 `json:"total_tokens"`
	CallCount        int64 `json:"call_count"`
	SuccessCount     int64 `json:"success_count"`
	ErrorCount       int64 `json:"error_count"`
}

// AgentUsage 按智能体分组的用量聚合
type AgentUsage struct {
	AgentName string `json:"agent_name"`
	UsageSummary
}

// UsageBucket 时间线上的单个聚合桶
type UsageBucket struct {
	Date string `json:"date"` // YYYY-MM-DD
	UsageSummary
}

// UsageLogRepository 用量日志仓储接口
type UsageLogRepository interface {
	// Create 追加一条用量日志
	Create(ctx context.Context, entry *entity.UsageLogEntry) error

	// Aggregate 聚合时间窗口内的用量
	Aggregate(ctx context.Context, tenantID string, start, end time.Time, filter UsageFilter) (*UsageSummary, error)

	// AggregateByAgent 按智能体分组聚合
	AggregateByAgent(ctx context.Context, tenantID string, start, end time.Time) ([]*AgentUsage, error)

	// Timeline 按天聚合时间线
	Timeline(ctx context.Context, tenantID string, start, end time.Time) ([]*UsageBucket, error)

	// List 分页查询明细
	List(ctx context.Context, tenantID string, start, end time.Time, pagination Pagination) (*PagedResult[*entity.UsageLogEntry], error)

	// PurgeBefore 删除指定时间之前的日志，返回删除行数
	PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error)
}
