package usage

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/tokenizer"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/service"
)

type stubUsageRepo struct {
	entries   []*entity.UsageLogEntry
	createErr error

	summary *repository.UsageSummary
	byAgent []*repository.AgentUsage
	daily   []*repository.UsageBucket
	purged  int64
}

func (s *stubUsageRepo) Create(ctx context.Context, entry *entity.UsageLogEntry) error {
	if s.createErr != nil {
		return s.createErr
	}
	s.entries = append(s.entries, entry)
	return nil
}

func (s *stubUsageRepo) Aggregate(ctx context.Context, tenantID string, start, end time.Time, filter repository.UsageFilter) (*repository.UsageSummary, error) {
	if s.summary == nil {
		return &repository.UsageSummary{}, nil
	}
	return s.summary, nil
}

func (s *stubUsageRepo) AggregateByAgent(ctx context.Context, tenantID string, start, end time.Time) ([]*repository.AgentUsage, error) {
	return s.byAgent, nil
}

func (s *stubUsageRepo) Timeline(ctx context.Context, tenantID string, start, end time.Time) ([]*repository.UsageBucket, error) {
	return s.daily, nil
}

func (s *stubUsageRepo) List(ctx context.Context, tenantID string, start, end time.Time, pagination repository.Pagination) (*repository.PagedResult[*entity.UsageLogEntry], error) {
	return repository.NewPagedResult(s.entries, int64(len(s.entries)), pagination), nil
}

func (s *stubUsageRepo) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	return s.purged, nil
}

var _ repository.UsageLogRepository = (*stubUsageRepo)(nil)

func startInfo() service.UsageStart {
	return service.UsageStart{
		TenantID:  "t1",
		AgentName: "writer",
		Provider:  "openai",
		Model:     "gpt-4o",
		Prompt:    "write a short story about a lighthouse keeper",
	}
}

func TestRecorderProviderUsagePreferred(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnSuccess(ctx, "c1", &service.ProviderUsage{PromptTokens: 100, CompletionTokens: 50, TotalTokens: 150}, "ignored output")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.True(t, entry.Success)
	assert.False(t, entry.Estimated)
	assert.Equal(t, 100, entry.PromptTokens)
	assert.Equal(t, 50, entry.CompletionTokens)
	assert.Equal(t, 150, entry.TotalTokens)
	assert.Equal(t, "t1", entry.TenantID)
	assert.Equal(t, "writer", entry.AgentName)
}

func TestRecorderProviderTotalDerived(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnSuccess(ctx, "c1", &service.ProviderUsage{PromptTokens: 100, CompletionTokens: 50}, "")

	require.Len(t, repo.entries, 1)
	assert.Equal(t, 150, repo.entries[0].TotalTokens)
}

func TestRecorderEstimateFallback(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnSuccess(ctx, "c1", nil, "once upon a time there was a keeper")

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.True(t, entry.Estimated)
	assert.Greater(t, entry.PromptTokens, 0)
	assert.Greater(t, entry.CompletionTokens, 0)
	assert.Equal(t, entry.PromptTokens+entry.CompletionTokens, entry.TotalTokens)
}

func TestRecorderZeroProviderUsageFallsBack(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	// 全零的提供商用量视同缺失
	rec.OnStart(ctx, "c1", startInfo())
	rec.OnSuccess(ctx, "c1", &service.ProviderUsage{}, "some output")

	require.Len(t, repo.entries, 1)
	assert.True(t, repo.entries[0].Estimated)
}

func TestRecorderStreamChunksUsedForEstimate(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnStreamChunk("c1", "first chunk of the streamed answer ")
	rec.OnStreamChunk("c1", "and the second chunk")
	rec.OnSuccess(ctx, "c1", nil, "")

	require.Len(t, repo.entries, 1)
	assert.Greater(t, repo.entries[0].CompletionTokens, 0)
}

func TestRecorderOnError(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnError(ctx, "c1", errors.New("rate limited"))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.False(t, entry.Success)
	assert.Equal(t, "rate limited", entry.ErrorMessage)
	assert.True(t, entry.Estimated)
	assert.Equal(t, 0, entry.CompletionTokens)
	assert.Equal(t, entry.PromptTokens, entry.TotalTokens)
}

func TestRecorderOnErrorCountsStreamedChunks(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	// 中途失败前已产出的流式文本同样计费
	rec.OnStart(ctx, "c1", startInfo())
	rec.OnStreamChunk("c1", "partial answer before the ")
	rec.OnStreamChunk("c1", "connection dropped")
	rec.OnError(ctx, "c1", errors.New("stream aborted"))

	require.Len(t, repo.entries, 1)
	entry := repo.entries[0]
	assert.False(t, entry.Success)
	assert.True(t, entry.Estimated)
	assert.Greater(t, entry.CompletionTokens, 0)
	assert.Equal(t, entry.PromptTokens+entry.CompletionTokens, entry.TotalTokens)
}

func TestRecorderUnknownCorrelationID(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnSuccess(ctx, "never-started", nil, "output")
	rec.OnError(ctx, "never-started", errors.New("boom"))

	assert.Empty(t, repo.entries)
}

func TestRecorderTerminalHookFiresOnce(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	rec.OnSuccess(ctx, "c1", nil, "output")
	rec.OnSuccess(ctx, "c1", nil, "output again")
	rec.OnError(ctx, "c1", errors.New("late error"))

	assert.Len(t, repo.entries, 1)
}

func TestRecorderSwallowsPersistFailure(t *testing.T) {
	repo := &stubUsageRepo{createErr: errors.New("db down")}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "c1", startInfo())
	// 落库失败不得 panic 或上抛
	rec.OnSuccess(ctx, "c1", nil, "output")
	assert.Empty(t, repo.entries)
}

func TestRecorderEmptyCorrelationIDIgnored(t *testing.T) {
	repo := &stubUsageRepo{}
	rec := NewRecorder(repo, tokenizer.NewEstimator())
	ctx := context.Background()

	rec.OnStart(ctx, "", startInfo())
	rec.OnSuccess(ctx, "", nil, "output")

	assert.Empty(t, repo.entries)
}

func TestQueryWindowValidation(t *testing.T) {
	q := NewQuery(&stubUsageRepo{}, 0)
	now := time.Now()

	_, err := q.GetUsage(context.Background(), "t1", now, now, QueryOptions{})
	assert.Error(t, err)
}

func TestQueryOptionalBreakdowns(t *testing.T) {
	repo := &stubUsageRepo{
		summary: &repository.UsageSummary{TotalTokens: 42, CallCount: 3},
		byAgent: []*repository.AgentUsage{{AgentName: "writer"}},
		daily:   []*repository.UsageBucket{{Date: "2026-08-28"}},
	}
	q := NewQuery(repo, 0)
	ctx := context.Background()
	start := time.Now().Add(-time.Hour)
	end := time.Now()

	report, err := q.GetUsage(ctx, "t1", start, end, QueryOptions{})
	require.NoError(t, err)
	assert.Equal(t, int64(42), report.Summary.TotalTokens)
	assert.Nil(t, report.ByAgent)
	assert.Nil(t, report.Daily)

	report, err = q.GetUsage(ctx, "t1", start, end, QueryOptions{ByAgent: true, Daily: true})
	require.NoError(t, err)
	assert.Len(t, report.ByAgent, 1)
	assert.Len(t, report.Daily, 1)
}

func TestPurgeExpiredDisabledWithoutRetention(t *testing.T) {
	repo := &stubUsageRepo{purged: 99}
	q := NewQuery(repo, 0)

	deleted, err := q.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(0), deleted)

	q = NewQuery(repo, time.Hour)
	deleted, err = q.PurgeExpired(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(99), deleted)
}
