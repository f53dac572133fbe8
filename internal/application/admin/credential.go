package admin

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

// CredentialService 租户凭证覆盖管理服务
type CredentialService struct {
	platformRepo repository.PlatformRepository
	credRepo     repository.CredentialRepository
	cipher       *secret.Cipher
	invalidator  *catalog.Invalidator
}

// NewCredentialService 创建凭证覆盖管理服务
func NewCredentialService(platformRepo repository.PlatformRepository, credRepo repository.CredentialRepository, cipher *secret.Cipher, invalidator *catalog.Invalidator) *CredentialService {
	return &CredentialService{
		platformRepo: platformRepo,
		credRepo:     credRepo,
		cipher:       cipher,
		invalidator:  invalidator,
	}
}

// Upsert 写入或更新租户对平台的凭证覆盖
// 空密钥表示保留原值，明文密钥在落库前加密
func (s *CredentialService) Upsert(ctx context.Context, cred *entity.TenantCredentialOverride) error {
	ctx, span := tracer.Start(ctx, "admin.CredentialService.Upsert")
	defer span.End()

	platform, err := s.platformRepo.GetByID(ctx, cred.PlatformID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil || (platform.TenantID != cred.TenantID && !platform.IsSystem()) {
		return errors.ErrPlatformNotFound.WithDetail(cred.PlatformID)
	}

	if cred.APIKey == "" {
		current, err := s.credRepo.Get(ctx, cred.TenantID, cred.PlatformID)
		if err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to load credential override")
		}
		if current != nil {
			cred.APIKey = current.APIKey
		}
	} else if !secret.IsEncrypted(cred.APIKey) && !secret.IsPlaceholder(cred.APIKey) {
		sealed, err := s.cipher.Encrypt(cred.APIKey)
		if err != nil {
			return err
		}
		cred.APIKey = sealed
	}

	if err := s.credRepo.Upsert(ctx, cred); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to upsert credential override")
	}

	s.invalidator.Invalidate(ctx, cred.TenantID, "credential override changed")
	return nil
}

// Get 获取租户对平台的凭证覆盖，不存在时返回 (nil, nil)
func (s *CredentialService) Get(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error) {
	cred, err := s.credRepo.Get(ctx, tenantID, platformID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load credential override")
	}
	return cred, nil
}

// List 获取租户的全部凭证覆盖
func (s *CredentialService) List(ctx context.Context, tenantID string) ([]*entity.TenantCredentialOverride, error) {
	creds, err := s.credRepo.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list credential overrides")
	}
	return creds, nil
}

// Delete 删除租户对平台的凭证覆盖
func (s *CredentialService) Delete(ctx context.Context, tenantID, platformID string) error {
	if err := s.credRepo.Delete(ctx, tenantID, platformID); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete credential override")
	}
	s.invalidator.Invalidate(ctx, tenantID, "credential override deleted")
	return nil
}
