// Package dto 提供 HTTP 层数据传输对象
package dto

import (
	"time"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CreateTenantRequest 创建租户请求
type CreateTenantRequest struct {
	ID   string `json:"id" binding:"required,max=64"`
	Name string `json:"name" binding:"required,max=128"`
	Slug string `json:"slug" binding:"required,max=64"`
}

// UpdateTenantRequest 更新租户请求
type UpdateTenantRequest struct {
	Name *string `json:"name"`
}

// TenantResponse 租户响应
type TenantResponse struct {
	ID        string              `json:"id"`
	Name      string              `json:"name"`
	Slug      string              `json:"slug"`
	Status    entity.TenantStatus `json:"status"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// ToTenantResponse 实体转换为响应
func ToTenantResponse(t *entity.Tenant) *TenantResponse {
	if t == nil {
		return nil
	}
	return &TenantResponse{
		ID:        t.ID,
		Name:      t.Name,
		Slug:      t.Slug,
		Status:    t.Status,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
	}
}

// ToTenantResponses 实体列表转换为响应列表
func ToTenantResponses(tenants []*entity.Tenant) []*TenantResponse {
	out := make([]*TenantResponse, 0, len(tenants))
	for _, t := range tenants {
		out = append(out, ToTenantResponse(t))
	}
	return out
}

// ApplyToTenant 更新实体
func (r *UpdateTenantRequest) ApplyToTenant(t *entity.Tenant) {
	if r.Name != nil {
		t.Name = *r.Name
	}
	t.UpdatedAt = time.Now()
}
