// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/usage"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/service"
)

// UsageQueryRequest 用量查询参数
type UsageQueryRequest struct {
	Start    string `form:"start"`
	End      string `form:"end"`
	Agent    string `form:"agent"`
	Provider string `form:"provider"`
	Model    string `form:"model"`
	ByAgent  bool   `form:"by_agent"`
	Daily    bool   `form:"daily"`
}

// Window 解析时间窗口，缺省为最近 30 天
func (r *UsageQueryRequest) Window() (time.Time, time.Time, error) {
	end := time.Now()
	start := end.AddDate(0, 0, -30)

	if r.Start != "" {
		t, err := time.Parse(time.RFC3339, r.Start)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		start = t
	}
	if r.End != "" {
		t, err := time.Parse(time.RFC3339, r.End)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		end = t
	}
	return start, end, nil
}

// ToOptions 请求转换为查询选项
func (r *UsageQueryRequest) ToOptions() usage.QueryOptions {
	return usage.QueryOptions{
		Filter: repository.UsageFilter{
			AgentName: r.Agent,
			Provider:  r.Provider,
			Model:     r.Model,
		},
		ByAgent: r.ByAgent,
		Daily:   r.Daily,
	}
}

// UsageEventRequest 用量上报请求
// 外部调用方完成一次 LLM 调用后上报结果
type UsageEventRequest struct {
	CorrelationID string `json:"correlation_id" binding:"required,max=64"`
	AgentName     string `json:"agent_name,omitempty" binding:"omitempty,max=128"`
	Provider      string `json:"provider" binding:"required,max=32"`
	PlatformID    string `json:"platform_id,omitempty"`
	Model         string `json:"model" binding:"required,max=128"`

	Prompt     string `json:"prompt,omitempty"`
	OutputText string `json:"output_text,omitempty"`

	PromptTokens     int    `json:"prompt_tokens,omitempty"`
	CompletionTokens int    `json:"completion_tokens,omitempty"`
	TotalTokens      int    `json:"total_tokens,omitempty"`
	Error            string `json:"error,omitempty"`
}

// ToStart 请求转换为调用开始元数据
func (r *UsageEventRequest) ToStart(tenantID string) service.UsageStart {
	return service.UsageStart{
		TenantID:   tenantID,
		AgentName:  r.AgentName,
		Provider:   r.Provider,
		PlatformID: r.PlatformID,
		Model:      r.Model,
		Prompt:     r.Prompt,
	}
}

// ProviderUsage 提取提供商返回的真实用量，未上报时为 nil
func (r *UsageEventRequest) ProviderUsage() *service.ProviderUsage {
	if r.PromptTokens == 0 && r.CompletionTokens == 0 && r.TotalTokens == 0 {
		return nil
	}
	return &service.ProviderUsage{
		PromptTokens:     r.PromptTokens,
		CompletionTokens: r.CompletionTokens,
		TotalTokens:      r.TotalTokens,
	}
}
