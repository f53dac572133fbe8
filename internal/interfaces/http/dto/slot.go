// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CreateSlotRequest 创建自定义槽位请求
type CreateSlotRequest struct {
	Name        string  `json:"name" binding:"required,max=64"`
	DisplayName string  `json:"display_name" binding:"omitempty,max=128"`
	PlatformID  *string `json:"platform_id,omitempty"`
	ModelID     *string `json:"model_id,omitempty"`
}

// ToSlot 请求转换为实体
func (r *CreateSlotRequest) ToSlot(tenantID string) *entity.UsagePolicySlot {
	return &entity.UsagePolicySlot{
		TenantID:    tenantID,
		Name:        r.Name,
		DisplayName: r.DisplayName,
		PlatformID:  r.PlatformID,
		ModelID:     r.ModelID,
	}
}

// SetSlotTargetRequest 设置槽位指向请求
// 平台与模型须同时给出，或同时为空表示清空指向
type SetSlotTargetRequest struct {
	PlatformID *string `json:"platform_id,omitempty"`
	ModelID    *string `json:"model_id,omitempty"`
}

// SlotResponse 槽位响应
type SlotResponse struct {
	ID          string    `json:"id"`
	TenantID    string    `json:"tenant_id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name,omitempty"`
	PlatformID  *string   `json:"platform_id,omitempty"`
	ModelID     *string   `json:"model_id,omitempty"`
	Builtin     bool      `json:"builtin"`
	HasTarget   bool      `json:"has_target"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ToSlotResponse 实体转换为响应
func ToSlotResponse(s *entity.UsagePolicySlot) *SlotResponse {
	if s == nil {
		return nil
	}
	return &SlotResponse{
		ID:          s.ID,
		TenantID:    s.TenantID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		PlatformID:  s.PlatformID,
		ModelID:     s.ModelID,
		Builtin:     s.Builtin,
		HasTarget:   s.HasTarget(),
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

// ToSlotResponses 实体列表转换为响应列表
func ToSlotResponses(slots []*entity.UsagePolicySlot) []*SlotResponse {
	out := make([]*SlotResponse, 0, len(slots))
	for _, s := range slots {
		out = append(out, ToSlotResponse(s))
	}
	return out
}
