// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/routing"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// ResolveRequest 路由解析请求
// 三种形态任取其一：槽位名 / 显式平台+模型 / 智能体名
type ResolveRequest struct {
	Slot       string         `json:"slot,omitempty" binding:"omitempty,max=64"`
	PlatformID string         `json:"platform_id,omitempty"`
	ModelID    string         `json:"model_id,omitempty"`
	Agent      string         `json:"agent,omitempty" binding:"omitempty,max=128"`
	Capability string         `json:"capability,omitempty" binding:"omitempty,max=32"`
	Params     map[string]any `json:"params,omitempty"`
}

// ToIntent 请求转换为路由意图
func (r *ResolveRequest) ToIntent() routing.Intent {
	return routing.Intent{
		Slot:       r.Slot,
		PlatformID: r.PlatformID,
		ModelID:    r.ModelID,
		Agent:      r.Agent,
		Capability: entity.ModelCapability(r.Capability),
		Params:     r.Params,
	}
}

// Valid 请求恰好给出一种意图形态
func (r *ResolveRequest) Valid() bool {
	forms := 0
	if r.Slot != "" {
		forms++
	}
	if r.Agent != "" {
		forms++
	}
	if r.PlatformID != "" || r.ModelID != "" {
		if r.PlatformID == "" || r.ModelID == "" {
			return false
		}
		forms++
	}
	return forms == 1
}

// ResolvedCredential 解析出的凭证
type ResolvedCredential struct {
	APIKey       string `json:"api_key"`
	BaseURL      string `json:"base_url,omitempty"`
	FromOverride bool   `json:"from_override"`
}

// ResolveResponse 路由解析响应
type ResolveResponse struct {
	PlatformID string             `json:"platform_id"`
	Platform   string             `json:"platform"`
	Provider   string             `json:"provider"`
	ModelID    string             `json:"model_id"`
	Model      string             `json:"model"`
	MaxTokens  int                `json:"max_tokens,omitempty"`
	Credential ResolvedCredential `json:"credential"`
	Params     map[string]any     `json:"params,omitempty"`
	SlotName   string             `json:"slot_name,omitempty"`
	Repaired   bool               `json:"repaired"`
}

// ToResolveResponse 解析结果转换为响应
func ToResolveResponse(t *routing.Target) *ResolveResponse {
	if t == nil {
		return nil
	}
	return &ResolveResponse{
		PlatformID: t.Platform.ID,
		Platform:   t.Platform.Name,
		Provider:   t.Platform.Provider,
		ModelID:    t.Model.ID,
		Model:      t.Model.Name,
		MaxTokens:  t.Model.MaxTokens,
		Credential: ResolvedCredential{
			APIKey:       t.Credential.APIKey,
			BaseURL:      t.Credential.BaseURL,
			FromOverride: t.Credential.FromOverride,
		},
		Params:   t.Params,
		SlotName: t.SlotName,
		Repaired: t.Repaired,
	}
}
