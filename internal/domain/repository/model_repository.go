// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// ModelRepository 模型仓储接口
type ModelRepository interface {
	// Create 创建模型
	Create(ctx context.Context, model *entity.Model) error

	// Update 更新模型
	Update(ctx context.Context, model *entity.Model) error

	// Delete 删除模型
	Delete(ctx context.Context, tenantID, id string) error

	// GetByID 根据 ID 获取模型
	GetByID(ctx context.Context, id string) (*entity.Model, error)

	// GetByName 根据平台与名称获取模型
	GetByName(ctx context.Context, platformID, name string) (*entity.Model, error)

	// ListByPlatform 获取平台下全部模型，按展示顺序排列
	ListByPlatform(ctx context.Context, platformID string) ([]*entity.Model, error)

	// ListEnabledByPlatforms 批量获取多个平台下已启用的模型
	ListEnabledByPlatforms(ctx context.Context, platformIDs []string) ([]*entity.Model, error)

	// SetEnabled 启用/停用模型
	SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error
}
