// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// PlatformRepository 平台仓储实现
type PlatformRepository struct {
	client *Client
}

// NewPlatformRepository 创建平台仓储
func NewPlatformRepository(client *Client) *PlatformRepository {
	return &PlatformRepository{client: client}
}

// Create 创建平台
func (r *PlatformRepository) Create(ctx context.Context, platform *entity.Platform) error {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(platform).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create platform: %w", err)
	}
	return nil
}

// Update 更新平台
func (r *PlatformRepository) Update(ctx context.Context, platform *entity.Platform) error {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.Update")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Save(platform).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to update platform: %w", err)
	}
	return nil
}

// Delete 删除平台
func (r *PlatformRepository) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.Platform{}, "tenant_id = ? AND id = ?", tenantID, id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete platform: %w", err)
	}
	return nil
}

// GetByID 根据 ID 获取平台
func (r *PlatformRepository) GetByID(ctx context.Context, id string) (*entity.Platform, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.GetByID")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var platform entity.Platform
	if err := db.First(&platform, "id = ?", id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get platform: %w", err)
	}
	return &platform, nil
}

// GetByName 根据租户与名称获取平台
func (r *PlatformRepository) GetByName(ctx context.Context, tenantID, name string) (*entity.Platform, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var platform entity.Platform
	if err := db.First(&platform, "tenant_id = ? AND name = ?", tenantID, name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get platform by name: %w", err)
	}
	return &platform, nil
}

// List 获取租户的全部平台
func (r *PlatformRepository) List(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var platforms []*entity.Platform
	if err := db.Where("tenant_id = ?", tenantID).
		Order("display_order ASC, name ASC").
		Find(&platforms).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list platforms: %w", err)
	}
	return platforms, nil
}

// ListEnabled 获取租户已启用的平台
func (r *PlatformRepository) ListEnabled(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.ListEnabled")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var platforms []*entity.Platform
	if err := db.Where("tenant_id = ? AND enabled = TRUE", tenantID).
		Order("display_order ASC, name ASC").
		Find(&platforms).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list enabled platforms: %w", err)
	}
	return platforms, nil
}

// SetEnabled 启用/停用平台
func (r *PlatformRepository) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.SetEnabled")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.Platform{}).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		Update("enabled", enabled).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set platform enabled: %w", err)
	}
	return nil
}

// Reorder 按给定 ID 顺序重排展示顺序
func (r *PlatformRepository) Reorder(ctx context.Context, tenantID string, orderedIDs []string) error {
	ctx, span := tracer.Start(ctx, "postgres.PlatformRepository.Reorder")
	defer span.End()

	db := getDB(ctx, r.client.db)
	return db.Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			if err := tx.Model(&entity.Platform{}).
				Where("tenant_id = ? AND id = ?", tenantID, id).
				Update("display_order", i).Error; err != nil {
				span.RecordError(err)
				return fmt.Errorf("failed to reorder platform %s: %w", id, err)
			}
		}
		return nil
	})
}
