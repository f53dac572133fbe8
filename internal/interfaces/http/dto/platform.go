// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CreatePlatformRequest 创建平台请求
type CreatePlatformRequest struct {
	Name     string         `json:"name" binding:"required,max=128"`
	Provider string         `json:"provider" binding:"required,max=64"`
	BaseURL  string         `json:"base_url" binding:"omitempty,max=512"`
	APIKey   string         `json:"api_key,omitempty"`
	Enabled  *bool          `json:"enabled,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// ToPlatform 请求转换为实体
func (r *CreatePlatformRequest) ToPlatform(tenantID string) *entity.Platform {
	return &entity.Platform{
		TenantID: tenantID,
		Name:     r.Name,
		Provider: r.Provider,
		BaseURL:  r.BaseURL,
		APIKey:   r.APIKey,
		Enabled:  r.Enabled == nil || *r.Enabled,
		Extra:    r.Extra,
	}
}

// UpdatePlatformRequest 更新平台请求
// APIKey 为空表示保留原值
type UpdatePlatformRequest struct {
	Name     string         `json:"name" binding:"required,max=128"`
	Provider string         `json:"provider" binding:"required,max=64"`
	BaseURL  string         `json:"base_url" binding:"omitempty,max=512"`
	APIKey   string         `json:"api_key,omitempty"`
	Enabled  *bool          `json:"enabled,omitempty"`
	Extra    map[string]any `json:"extra,omitempty"`
}

// SetEnabledRequest 启停请求
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" binding:"required"`
}

// ReorderRequest 重排请求
type ReorderRequest struct {
	OrderedIDs []string `json:"ordered_ids" binding:"required,min=1"`
}

// PlatformResponse 平台响应，密钥只暴露是否已配置
type PlatformResponse struct {
	ID           string         `json:"id"`
	TenantID     string         `json:"tenant_id"`
	Name         string         `json:"name"`
	Provider     string         `json:"provider"`
	BaseURL      string         `json:"base_url,omitempty"`
	HasAPIKey    bool           `json:"has_api_key"`
	Enabled      bool           `json:"enabled"`
	DisplayOrder int            `json:"display_order"`
	Extra        map[string]any `json:"extra,omitempty"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`
}

// ToPlatformResponse 实体转换为响应
func ToPlatformResponse(p *entity.Platform) *PlatformResponse {
	if p == nil {
		return nil
	}
	return &PlatformResponse{
		ID:           p.ID,
		TenantID:     p.TenantID,
		Name:         p.Name,
		Provider:     p.Provider,
		BaseURL:      p.BaseURL,
		HasAPIKey:    p.APIKey != "",
		Enabled:      p.Enabled,
		DisplayOrder: p.DisplayOrder,
		Extra:        p.Extra,
		CreatedAt:    p.CreatedAt,
		UpdatedAt:    p.UpdatedAt,
	}
}

// ToPlatformResponses 实体列表转换为响应列表
func ToPlatformResponses(platforms []*entity.Platform) []*PlatformResponse {
	out := make([]*PlatformResponse, 0, len(platforms))
	for _, p := range platforms {
		out = append(out, ToPlatformResponse(p))
	}
	return out
}
