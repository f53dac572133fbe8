// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// ModelRepository 模型仓储实现
type ModelRepository struct {
	client *Client
}

// NewModelRepository 创建模型仓储
func NewModelRepository(client *Client) *ModelRepository {
	return &ModelRepository{client: client}
}

// Create 创建模型
func (r *ModelRepository) Create(ctx context.Context, model *entity.Model) error {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(model).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create model: %w", err)
	}
	return nil
}

// Update 更新模型
func (r *ModelRepository) Update(ctx context.Context, model *entity.Model) error {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(model).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update model: %w", err)
	}
	return nil
}

// Delete 删除模型
func (r *ModelRepository) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Model{}, "tenant_id = ? AND id = ?", tenantID, id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete model: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取模型
func (r *ModelRepository) GetByID(ctx context.Context, id string) (*entity.Model, error) {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var model entity.Model
	if err := db.First(&model, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get model: %w", err)
	}
	return &model, nil
}

// GetByName 根据平台与名称获取模型
func (r *ModelRepository) GetByName(ctx context.Context, platformID, name string) (*entity.Model, error) {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var model entity.Model
	if err := db.First(&model, "platform_id = ? AND name = ?", platformID, name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get model by name: %w", err)
	}
	return &model, nil
}

// ListByPlatform 获取平台下全部模型
func (r *ModelRepository) ListByPlatform(ctx context.Context, platformID string) ([]*entity.Model, error) {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.ListByPlatform")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var models []*entity.Model
	if err := db.Where("platform_id = ?", platformID).
		Order("display_order ASC, name ASC").
		Find(&models).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list models: %w", err)
	}
	return models, nil
}

// ListEnabledByPlatforms 批量获取多个平台下已启用的模型
func (r *ModelRepository) ListEnabledByPlatforms(ctx context.Context, platformIDs []string) ([]*entity.Model, error) {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.ListEnabledByPlatforms")
	defer span.End()

	if len(platformIDs) == 0 {
		return nil, nil
	}

	db := getDB(ctx, r.client.db)
	var models []*entity.Model
	if err := db.Where("platform_id IN ? AND enabled = TRUE", platformIDs).
		Order("display_order ASC, name ASC").
		Find(&models).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list enabled models: %w", err)
	}
	return models, nil
}

// SetEnabled 启用/停用模型
func (r *ModelRepository) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	ctx, span := tracer.Start(ctx, "postgres.ModelRepository.SetEnabled")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Model{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set model enabled: %w", err)
	}
	return nil
}
