// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// BindAgentRequest 绑定智能体请求
// 槽位引用 (slot_name) 与直接指定 (platform_id + model_id) 二选一
type BindAgentRequest struct {
	SlotName   string `json:"slot_name,omitempty" binding:"omitempty,max=64"`
	PlatformID string `json:"platform_id,omitempty"`
	ModelID    string `json:"model_id,omitempty"`
}

// ToBinding 请求转换为实体
func (r *BindAgentRequest) ToBinding(tenantID, agentName string) *entity.AgentBinding {
	return &entity.AgentBinding{
		TenantID:   tenantID,
		AgentName:  agentName,
		SlotName:   r.SlotName,
		PlatformID: r.PlatformID,
		ModelID:    r.ModelID,
	}
}

// AgentBindingResponse 绑定响应
type AgentBindingResponse struct {
	ID         string    `json:"id"`
	TenantID   string    `json:"tenant_id"`
	AgentName  string    `json:"agent_name"`
	SlotName   string    `json:"slot_name,omitempty"`
	PlatformID string    `json:"platform_id,omitempty"`
	ModelID    string    `json:"model_id,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ToAgentBindingResponse 实体转换为响应
func ToAgentBindingResponse(b *entity.AgentBinding) *AgentBindingResponse {
	if b == nil {
		return nil
	}
	return &AgentBindingResponse{
		ID:         b.ID,
		TenantID:   b.TenantID,
		AgentName:  b.AgentName,
		SlotName:   b.SlotName,
		PlatformID: b.PlatformID,
		ModelID:    b.ModelID,
		CreatedAt:  b.CreatedAt,
		UpdatedAt:  b.UpdatedAt,
	}
}

// ToAgentBindingResponses 实体列表转换为响应列表
func ToAgentBindingResponses(bindings []*entity.AgentBinding) []*AgentBindingResponse {
	out := make([]*AgentBindingResponse, 0, len(bindings))
	for _, b := range bindings {
		out = append(out, ToAgentBindingResponse(b))
	}
	return out
}
