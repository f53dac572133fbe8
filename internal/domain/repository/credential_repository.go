// Package repository 定义数据访问层接口
package repository

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

// CredentialRepository 租户凭证覆盖仓储接口
type CredentialRepository interface {
	// Upsert 写入或更新租户对平台的凭证覆盖
	Upsert(ctx context.Context, cred *entity.TenantCredentialOverride) error

	// Get 获取租户对平台的凭证覆盖，不存在时返回 (nil, nil)
	Get(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error)

	// ListByTenant 获取租户的全部凭证覆盖
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantCredentialOverride, error)

	// Delete 删除租户对平台的凭证覆盖
	Delete(ctx context.Context, tenantID, platformID string) error
}
