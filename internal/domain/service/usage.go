// Package service 定义跨层稳定契约
package service

import "context"

// UsageStart 一次 LLM 调用开始时的元数据
type UsageStart struct {
	TenantID   string
	AgentName  string
	Provider   string
	PlatformID string
	Model      string

	// Prompt 输入文本，用于提供商未返回用量时的本地估算
	Prompt string
}

// ProviderUsage 提供商返回的真实用量
type ProviderUsage struct {
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// UsageRecorder 按关联 ID 记录一次 LLM 调用生命周期
// 约定：实现为 best-effort，终态钩子恰好落一条流水，持久化失败不得上抛
type UsageRecorder interface {
	// OnStart 调用开始
	OnStart(ctx context.Context, correlationID string, in UsageStart)

	// OnStreamChunk 流式输出片段
	OnStreamChunk(correlationID, chunk string)

	// OnSuccess 调用成功结束，usage 为 nil 时使用本地估算
	OnSuccess(ctx context.Context, correlationID string, usage *ProviderUsage, outputText string)

	// OnError 调用失败结束
	OnError(ctx context.Context, correlationID string, callErr error)
}
