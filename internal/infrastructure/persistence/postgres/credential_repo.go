// Package postgres 提供 PostgreSQL Repository 实现
package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CredentialRepository 租户凭证覆盖仓储实现
type CredentialRepository struct {
	client *Client
}

// NewCredentialRepository 创建凭证覆盖仓储
func NewCredentialRepository(client *Client) *CredentialRepository {
	return &CredentialRepository{client: client}
}

// Upsert 写入或更新租户对平台的凭证覆盖
func (r *CredentialRepository) Upsert(ctx context.Context, cred *entity.TenantCredentialOverride) error {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.Upsert")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "tenant_id"}, {Name: "platform_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"api_key", "base_url", "enabled", "hidden", "updated_at"}),
	}).Create(cred).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to upsert credential override: %w", err)
	}
	return nil
}

// Get 获取租户对平台的凭证覆盖
func (r *CredentialRepository) Get(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.Get")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var cred entity.TenantCredentialOverride
	if err := db.First(&cred, "tenant_id = ? AND platform_id = ?", tenantID, platformID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil
		}
		span.RecordError(err)
		return nil, fmt.Errorf("failed to get credential override: %w", err)
	}
	return &cred, nil
}

// ListByTenant 获取租户的全部凭证覆盖
func (r *CredentialRepository) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantCredentialOverride, error) {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.ListByTenant")
	defer span.End()

	db := getDB(ctx, r.client.db)
	var creds []*entity.TenantCredentialOverride
	if err := db.Where("tenant_id = ?", tenantID).Find(&creds).Error; err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("failed to list credential overrides: %w", err)
	}
	return creds, nil
}

// Delete 删除租户对平台的凭证覆盖
func (r *CredentialRepository) Delete(ctx context.Context, tenantID, platformID string) error {
	ctx, span := tracer.Start(ctx, "postgres.CredentialRepository.Delete")
	defer span.End()

	db := getDB(ctx, r.client.db)
	if err := db.Delete(&entity.TenantCredentialOverride{},
		"tenant_id = ? AND platform_id = ?", tenantID, platformID).Error; err != nil {
		span.RecordError(err)
		return fmt.Errorf("failed to delete credential override: %w", err)
	}
	return nil
}
