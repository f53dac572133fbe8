// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// PlatformRepository 平台仓储接口
type PlatformRepository interface {
	// Create 创建平台
	Create(ctx context.Context, platform *entity.Platform) error

	// Update 更新平台
	Update(ctx context.Context, platform *entity.Platform) error

	// Delete 删除平台
	Delete(ctx context.Context, tenantID, id string) error

	// GetByID 根据 ID 获取平台
	GetByID(ctx context.Context, id string) (*entity.Platform, error)

	// GetByName 根据租户与名称获取平台
	GetByName(ctx context.Context, tenantID, name string) (*entity.Platform, error)

	// List 获取租户的全部平台，按展示顺序排列
	List(ctx context.Context, tenantID string) ([]*entity.Platform, error)

	// ListEnabled 获取租户已启用的平台，按展示顺序排列
	ListEnabled(ctx context.Context, tenantID string) ([]*entity.Platform, error)

	// SetEnabled 启用/停用平台
	SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error

	// Reorder 按给定 ID 顺序重排展示顺序
	Reorder(ctx context.Context, tenantID string, orderedIDs []string) error
}
