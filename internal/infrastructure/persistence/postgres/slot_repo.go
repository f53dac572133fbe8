// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// SlotRepository 用途槽位仓储实现
type SlotRepository struct {
	client *Client
}

// NewSlotRepository 创建槽位仓储
func NewSlotRepository(client *Client) *SlotRepository {
	return &SlotRepository{client: client}
}

// Create 创建槽位
func (r *SlotRepository) Create(ctx context.Context, slot *entity.UsagePolicySlot) error {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.Create")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Create(slot).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to create slot: %w", err)
	}
	return nil
}

// Upsert 按 (租户, 名称) 写入或更新槽位
func (r *SlotRepository) Upsert(ctx context.Context, slot *entity.UsagePolicySlot) error {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(slot).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert slot: %w", err)
	}
	return nil
}

// GetByName 根据租户与名称获取槽位
func (r *SlotRepository) GetByName(ctx context.Context, tenantID, name string) (*entity.UsagePolicySlot, error) {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.GetByName")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var slot entity.UsagePolicySlot
	if err := db.First(&slot, "tenant_id = ? AND name = ?", tenantID, name).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get slot: %w", err)
	}
	return &slot, nil
}

// List 获取租户的全部槽位
func (r *SlotRepository) List(ctx context.Context, tenantID string) ([]*entity.UsagePolicySlot, error) {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.List")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var slots []*entity.UsagePolicySlot
	if err := db.Where("tenant_id = ?", tenantID).
		Order("builtin DESC, name ASC").
		Find(&slots).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list slots: %w", err)
	}
	return slots, nil
}

// SetTarget 更新槽位指向的平台与模型
func (r *SlotRepository) SetTarget(ctx context.Context, id string, platformID, modelID *string) error {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.SetTarget")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Model(&entity.UsagePolicySlot{}).
		Where("id = ?", id).
		Updates(map[string]any{
			"platform_id": platformID,
			"model_id":    modelID,
		}).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to set slot target: %w", err)
	}
	return nil
}

// Delete 删除槽位
func (r *SlotRepository) Delete(ctx context.Context, tenantID, id string) error {
	ctx, span := tracer.Start(ctx, "postgres.SlotRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.UsagePolicySlot{}, "tenant_id = ? AND id = ?", tenantID, id).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete slot: %w", err)
	}
	return nil
}
