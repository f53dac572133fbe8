// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// SlotRepository 用途槽位仓储接口
type SlotRepository interface {
	// Create 创建槽位
	Create(ctx context.Context, slot *entity.UsagePolicySlot) error

	// Upsert 按 (租户, 名称) 写入或更新槽位，引导种子数据使用
	Upsert(ctx context.Context, slot *entity.UsagePolicySlot) error

	// GetByName 根据租户与名称获取槽位，不存在时返回 (nil, nil)
	GetByName(ctx context.Context, tenantID, name string) (*entity.UsagePolicySlot, error)

	// List 获取租户的全部槽位
	List(ctx context.Context, tenantID string) ([]*entity.UsagePolicySlot, error)

	// SetTarget 更新槽位指向的平台与模型
	SetTarget(ctx context.Context, id string, platformID, modelID *string) error

	// Delete 删除槽位
	Delete(ctx context.Context, tenantID, id string) error
}
