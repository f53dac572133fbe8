// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// UpsertCredentialRequest 写入租户凭证覆盖请求
// APIKey 为空表示保留原值
type UpsertCredentialRequest struct {
	APIKey  string `json:"api_key,omitempty"`
	BaseURL string `json:"base_url" binding:"omitempty,max=512"`
	Enabled *bool  `json:"enabled,omitempty"`
	Hidden  *bool  `json:"hidden,omitempty"`
}

// ToCredential 请求转换为实体
func (r *UpsertCredentialRequest) ToCredential(tenantID, platformID string) *entity.TenantCredentialOverride {
	return &entity.TenantCredentialOverride{
		TenantID:   tenantID,
		PlatformID: platformID,
		APIKey:     r.APIKey,
		BaseURL:    entity.NormalizeBaseURL(r.BaseURL),
		Enabled:    r.Enabled == nil || *r.Enabled,
		Hidden:     r.Hidden != nil && *r.Hidden,
	}
}

// CredentialResponse 凭证覆盖响应，密钥只暴露是否已配置
type CredentialResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	PlatformID string    `json:"platform_id"`
	HasAPIKey  bool      `json:"has_api_key"`
	BaseURL    string    `json:"base_url,omitempty"`
	Enabled    bool      `json:"enabled"`
	Hidden     bool      `json:"hidden"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToCredentialResponse 实体转换为响应
func ToCredentialResponse(c *entity.TenantCredentialOverride) *CredentialResponse {
	if c == nil {
		return nil
	}
	return &CredentialResponse{
		ID:         c.ID,
		TenantID:   c.TenantID,
		PlatformID: c.PlatformID,
		HasAPIKey:  c.APIKey != "",
		BaseURL:    c.BaseURL,
		Enabled:    c.Enabled,
		Hidden:     c.Hidden,
		CreatedAt:  c.CreatedAt,
		UpdatedAt:  c.UpdatedAt,
	}
}

// ToCredentialResponses 实体列表转换为响应列表
func ToCredentialResponses(creds []*entity.TenantCredentialOverride) []*CredentialResponse {
	out := make([]*CredentialResponse, 0, len(creds))
	for _, c := range creds {
		out = append(out, ToCredentialResponse(c))
	}
	return out
}
