// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// AgentBindingRepository 智能体绑定仓储接口
type AgentBindingRepository interface {
	// Upsert 按 (租户, 智能体名) 写入或更新绑定
	Upsert(ctx context.Context, binding *entity.AgentBinding) error

	// GetByName 根据租户与智能体名获取绑定，不存在时返回 (nil, nil)
	GetByName(ctx context.Context, tenantID, agentName string) (*entity.AgentBinding, error)

	// List 获取租户的全部绑定
	List(ctx context.Context, tenantID string) ([]*entity.AgentBinding, error)

	// Delete 删除绑定
	Delete(ctx context.Context, tenantID, agentName string) error
}
