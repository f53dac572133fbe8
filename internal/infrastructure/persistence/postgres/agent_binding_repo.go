// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// AgentBindingRepository 智能体绑定仓储实现
type AgentBindingRepository struct {
	client *Client
}

// NewAgentBindingRepository 创建智能体绑定仓储
func NewAgentBindingRepository(client *Client) *AgentBindingRepository {
	return &AgentBindingRepository{client: client}
}

// Upsert 按 (租户, 智能体名) 写入或更新绑定
func (r *AgentBindingRepository) Upsert(ctx context.Context, binding *entity.AgentBinding) error {
	ctx, span := tracer.Start(ctx, "postgres.AgentBindingRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "agent_name"}},
		DoUpdates: clause.AssignmentColumns([]string{"slot_name", "platform_id", "model_id", "updated_at"}),
	}).Create(binding).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert agent binding: %w", err)
	}
	return nil
}

// GetByName 根据租户与智能体名获取绑定
func (r *AgentBindingRepository) GetByName(ctx context.Context, tenantID, agentName string) (*entity.AgentBinding, error) {
	ctx, span := tracer.Start(ctx, "postgres.AgentBindingRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var binding entity.AgentBinding
	if err := db.First(&binding, "tenant_id = ? AND agent_name = ?", tenantID, agentName).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get agent binding: %w", err)
	}
	return &binding, nil
}

// List 获取租户的全部绑定
func (r *AgentBindingRepository) List(ctx context.Context, tenantID string) ([]*entity.AgentBinding, error) {
	ctx, span := tracer.Start(ctx, "postgres.AgentBindingRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var bindings []*entity.AgentBinding
	if err := db.Where("tenant_id = ?", tenantID).
		Order("agent_name ASC").
		Find(&bindings).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list agent bindings: %w", err)
	}
	return bindings, nil
}

// Delete 删除绑定
func (r *AgentBindingRepository) Delete(ctx context.Context, tenantID, agentName string) error {
	ctx, span := tracer.Start(ctx, "postgres.AgentBindingRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.AgentBinding{},
		"tenant_id = ? AND agent_name = ?", tenantID, agentName).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete agent binding: %w", err)
	}
	return nil
}
