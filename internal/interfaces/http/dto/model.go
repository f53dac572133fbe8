// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CreateModelRequest 创建模型请求
type CreateModelRequest struct {
	Name          string         `json:"name" binding:"required,max=128"`
	DisplayName   string         `json:"display_name" binding:"omitempty,max=128"`
	Capabilities  []string       `json:"capabilities,omitempty"`
	Enabled       *bool          `json:"enabled,omitempty"`
	MaxTokens     int            `json:"max_tokens" binding:"omitempty,min=0"`
	DefaultParams map[string]any `json:"default_params,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// ToModel 请求转换为实体
func (r *CreateModelRequest) ToModel(tenantID, platformID string) *entity.Model {
	return &entity.Model{
		PlatformID:    platformID,
		TenantID:      tenantID,
		Name:          r.Name,
		DisplayName:   r.DisplayName,
		Capabilities:  r.Capabilities,
		Enabled:       r.Enabled == nil || *r.Enabled,
		MaxTokens:     r.MaxTokens,
		DefaultParams: r.DefaultParams,
		Extra:         r.Extra,
	}
}

// UpdateModelRequest 更新模型请求
type UpdateModelRequest struct {
	Name          string         `json:"name" binding:"required,max=128"`
	DisplayName   string         `json:"display_name" binding:"omitempty,max=128"`
	Capabilities  []string       `json:"capabilities,omitempty"`
	Enabled       *bool          `json:"enabled,omitempty"`
	MaxTokens     int            `json:"max_tokens" binding:"omitempty,min=0"`
	DefaultParams map[string]any `json:"default_params,omitempty"`
	Extra         map[string]any `json:"extra,omitempty"`
}

// ModelResponse 模型响应
type ModelResponse struct {
	ID            string         `json:"id"`
	PlatformID    string         `json:"platform_id"`
	Name          string         `json:"name"`
	DisplayName   string         `json:"display_name,omitempty"`
	Capabilities  []string       `json:"capabilities,omitempty"`
	Enabled       bool           `json:"enabled"`
	DisplayOrder  int            `json:"display_order"`
	MaxTokens     int            `json:"max_tokens"`
	DefaultParams map[string]any `json:"default_params,omitempty"`
	CreatedAt     time.Time      `json:"created_at"`
	UpdatedAt     time.Time      `json:"updated_at"`
}

// ToModelResponse 实体转换为响应
func ToModelResponse(m *entity.Model) *ModelResponse {
	if m == nil {
		return nil
	}
	return &ModelResponse{
		ID:            m.ID,
		PlatformID:    m.PlatformID,
		Name:          m.Name,
		DisplayName:   m.DisplayName,
		Capabilities:  m.Capabilities,
		Enabled:       m.Enabled,
		DisplayOrder:  m.DisplayOrder,
		MaxTokens:     m.MaxTokens,
		DefaultParams: m.DefaultParams,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToModelResponses 实体列表转换为响应列表
func ToModelResponses(models []*entity.Model) []*ModelResponse {
	out := make([]*ModelResponse, 0, len(models))
	for _, m := range models {
		out = append(out, ToModelResponse(m))
	}
	return out
}
