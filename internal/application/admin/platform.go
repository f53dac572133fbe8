// Package admin 提供平台目录的管理服务
package admin

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

var tracer = otel.Tracer("admin")

// PlatformService 平台管理服务
type PlatformService struct {
	platformRepo repository.PlatformRepository
	cipher       *secret.Cipher
	invalidator  *catalog.Invalidator
}

// NewPlatformService 创建平台管理服务
func NewPlatformService(platformRepo repository.PlatformRepository, cipher *secret.Cipher, invalidator *catalog.Invalidator) *PlatformService {
	return &PlatformService{
		platformRepo: platformRepo,
		cipher:       cipher,
		invalidator:  invalidator,
	}
}

// Create 创建平台，明文密钥在落库前加密
func (s *PlatformService) Create(ctx context.Context, platform *entity.Platform) error {
	ctx, span := tracer.Start(ctx, "admin.PlatformService.Create")
	defer span.End()

	if err := s.normalize(platform); err != nil {
		return err
	}

	existing, err := s.platformRepo.GetByName(ctx, platform.TenantID, platform.Name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to check platform name")
	}
	if existing != nil {
		return errors.ErrConflict.WithDetail(platform.Name)
	}

	if err := s.sealKey(platform); err != nil {
		return err
	}
	if err := s.platformRepo.Create(ctx, platform); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to create platform")
	}

	s.invalidator.Invalidate(ctx, platform.TenantID, "platform created")
	return nil
}

// Update 更新平台
// 空密钥表示保留原值，明文密钥在落库前加密
func (s *PlatformService) Update(ctx context.Context, platform *entity.Platform) error {
	ctx, span := tracer.Start(ctx, "admin.PlatformService.Update")
	defer span.End()

	current, err := s.platformRepo.GetByID(ctx, platform.ID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if current == nil || current.TenantID != platform.TenantID {
		return errors.ErrPlatformNotFound.WithDetail(platform.ID)
	}

	if err := s.normalize(platform); err != nil {
		return err
	}
	if platform.APIKey == "" {
		platform.APIKey = current.APIKey
	} else if err := s.sealKey(platform); err != nil {
		return err
	}

	if err := s.platformRepo.Update(ctx, platform); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to update platform")
	}

	s.invalidator.Invalidate(ctx, platform.TenantID, "platform updated")
	return nil
}

// SetEnabled 启用/停用平台
func (s *PlatformService) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	if err := s.platformRepo.SetEnabled(ctx, tenantID, id, enabled); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to set platform enabled")
	}
	s.invalidator.Invalidate(ctx, tenantID, "platform enabled changed")
	return nil
}

// Reorder 重排平台展示顺序
func (s *PlatformService) Reorder(ctx context.Context, tenantID string, orderedIDs []string) error {
	if err := s.platformRepo.Reorder(ctx, tenantID, orderedIDs); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to reorder platforms")
	}
	s.invalidator.Invalidate(ctx, tenantID, "platforms reordered")
	return nil
}

// Delete 删除平台
func (s *PlatformService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.platformRepo.Delete(ctx, tenantID, id); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete platform")
	}
	s.invalidator.Invalidate(ctx, tenantID, "platform deleted")
	return nil
}

// Get 获取平台
func (s *PlatformService) Get(ctx context.Context, tenantID, id string) (*entity.Platform, error) {
	platform, err := s.platformRepo.GetByID(ctx, id)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil || (platform.TenantID != tenantID && !platform.IsSystem()) {
		return nil, errors.ErrPlatformNotFound.WithDetail(id)
	}
	return platform, nil
}

// List 获取租户的全部平台
func (s *PlatformService) List(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	platforms, err := s.platformRepo.List(ctx, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list platforms")
	}
	return platforms, nil
}

// normalize 清洗并校验平台字段
func (s *PlatformService) normalize(platform *entity.Platform) error {
	platform.Name = strings.TrimSpace(platform.Name)
	platform.Provider = strings.ToLower(strings.TrimSpace(platform.Provider))
	platform.BaseURL = entity.NormalizeBaseURL(platform.BaseURL)

	if platform.Name == "" {
		return errors.ErrInvalidParam.WithDetail("platform name required")
	}
	if platform.Provider == "" {
		return errors.ErrInvalidParam.WithDetail("provider required")
	}
	if platform.BaseURL != "" &&
		!strings.HasPrefix(platform.BaseURL, "http://") &&
		!strings.HasPrefix(platform.BaseURL, "https://") {
		return errors.ErrInvalidParam.WithDetail("base_url must be absolute http(s)")
	}
	return nil
}

// sealKey 加密明文密钥；占位符与既有密文原样保留
func (s *PlatformService) sealKey(platform *entity.Platform) error {
	if platform.APIKey == "" || secret.IsEncrypted(platform.APIKey) || secret.IsPlaceholder(platform.APIKey) {
		return nil
	}
	sealed, err := s.cipher.Encrypt(platform.APIKey)
	if err != nil {
		return err
	}
	platform.APIKey = sealed
	return nil
}
