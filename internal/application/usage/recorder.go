// Package usage 提供 LLM 用量记录与查询
package usage

import (
	"context"
	"strings"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/tokenizer"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/service"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/metrics"
)

var tracer = otel.Tracer("usage")

// flight 一次进行中调用的状态
type flight struct {
	startedAt      time.Time
	info           service.UsageStart
	promptEstimate int
	chunks         strings.Builder
}

// Recorder 按关联 ID 记录调用生命周期并落库
type Recorder struct {
	usageRepo repository.UsageLogRepository
	estimator *tokenizer.Estimator

	mu       sync.Mutex
	inflight map[string]*flight
}

// NewRecorder 创建用量记录器
func NewRecorder(usageRepo repository.UsageLogRepository, estimator *tokenizer.Estimator) *Recorder {
	return &Recorder{
		usageRepo: usageRepo,
		estimator: estimator,
		inflight:  make(map[string]*flight),
	}
}

// OnStart 调用开始，记录起始时间与输入估算
func (r *Recorder) OnStart(ctx context.Context, correlationID string, in service.UsageStart) {
	if correlationID == "" {
		return
	}

	f := &flight{
		startedAt:      time.Now(),
		info:           in,
		promptEstimate: r.estimator.Estimate(in.Prompt, in.Model),
	}

	r.mu.Lock()
	r.inflight[correlationID] = f
	r.mu.Unlock()
}

// OnStreamChunk 累积流式输出，供本地估算使用
func (r *Recorder) OnStreamChunk(correlationID, chunk string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if f, ok := r.inflight[correlationID]; ok {
		f.chunks.WriteString(chunk)
	}
}

// OnSuccess 调用成功结束，落一条成功流水
// 提供商用量优先，缺失时用本地估算并标记 Estimated
func (r *Recorder) OnSuccess(ctx context.Context, correlationID string, usage *service.ProviderUsage, outputText string) {
	f := r.pop(ctx, correlationID)
	if f == nil {
		return
	}

	entry := r.baseEntry(correlationID, f)
	entry.Success = true

	if usage != nil && usage.TotalTokens+usage.PromptTokens+usage.CompletionTokens > 0 {
		entry.PromptTokens = usage.PromptTokens
		entry.CompletionTokens = usage.CompletionTokens
		entry.TotalTokens = usage.TotalTokens
		if entry.TotalTokens == 0 {
			entry.TotalTokens = usage.PromptTokens + usage.CompletionTokens
		}
	} else {
		output := outputText
		if output == "" {
			output = f.chunks.String()
		}
		entry.PromptTokens = f.promptEstimate
		entry.CompletionTokens = r.estimator.Estimate(output, f.info.Model)
		entry.TotalTokens = entry.PromptTokens + entry.CompletionTokens
		entry.Estimated = true
	}

	r.persist(ctx, entry, f)
}

// OnError 调用失败结束，落一条失败流水
func (r *Recorder) OnError(ctx context.Context, correlationID string, callErr error) {
	f := r.pop(ctx, correlationID)
	if f == nil {
		return
	}

	entry := r.baseEntry(correlationID, f)
	entry.Success = false
	if callErr != nil {
		entry.ErrorMessage = callErr.Error()
	}
	entry.PromptTokens = f.promptEstimate
	// 中途失败的流式调用已产出的文本同样计费
	if partial := f.chunks.String(); partial != "" {
		entry.CompletionTokens = r.estimator.Estimate(partial, f.info.Model)
	}
	entry.TotalTokens = entry.PromptTokens + entry.CompletionTokens
	entry.Estimated = true

	r.persist(ctx, entry, f)
}

// pop 取出并移除进行中状态，未知关联 ID 记告警
func (r *Recorder) pop(ctx context.Context, correlationID string) *flight {
	r.mu.Lock()
	f, ok := r.inflight[correlationID]
	if ok {
		delete(r.inflight, correlationID)
	}
	r.mu.Unlock()

	if !ok {
		logger.Warn(ctx, "terminal usage hook for unknown correlation id", "correlation_id", correlationID)
		return nil
	}
	return f
}

func (r *Recorder) baseEntry(correlationID string, f *flight) *entity.UsageLogEntry {
	return &entity.UsageLogEntry{
		TenantID:      f.info.TenantID,
		CorrelationID: correlationID,
		AgentName:     f.info.AgentName,
		Provider:      f.info.Provider,
		PlatformID:    f.info.PlatformID,
		Model:         f.info.Model,
		LatencyMs:     int(time.Since(f.startedAt).Milliseconds()),
	}
}

// persist 落库为 best-effort，失败记日志后吞掉
func (r *Recorder) persist(ctx context.Context, entry *entity.UsageLogEntry, f *flight) {
	ctx, span := tracer.Start(ctx, "usage.Recorder.persist")
	defer span.End()

	status := "success"
	if !entry.Success {
		status = "error"
	}
	metrics.LLMCallTotal.WithLabelValues(entry.Provider, entry.Model, status).Inc()
	metrics.LLMCallDuration.WithLabelValues(entry.Provider, entry.Model).
		Observe(float64(entry.LatencyMs) / 1000)
	metrics.LLMTokensUsed.WithLabelValues(entry.Provider, entry.Model, "prompt").Add(float64(entry.PromptTokens))
	metrics.LLMTokensUsed.WithLabelValues(entry.Provider, entry.Model, "completion").Add(float64(entry.CompletionTokens))

	if err := r.usageRepo.Create(ctx, entry); err != nil {
		span.RecordError(err)
		metrics.UsageLogWrites.WithLabelValues("error").Inc()
		logger.Error(ctx, "failed to persist usage log entry", err,
			"correlation_id", entry.CorrelationID,
			"tenant_id", entry.TenantID,
		)
		return
	}
	metrics.UsageLogWrites.WithLabelValues("ok").Inc()
}
