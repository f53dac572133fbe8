package admin

import (
	"context"
	"strings"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

// ModelService 模型管理服务
type ModelService struct {
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	invalidator  *catalog.Invalidator
}

// NewModelService 创建模型管理服务
func NewModelService(platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository, invalidator *catalog.Invalidator) *ModelService {
	return &ModelService{
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		invalidator:  invalidator,
	}
}

// Create 在平台下创建模型
func (s *ModelService) Create(ctx context.Context, model *entity.Model) error {
	ctx, span := tracer.Start(ctx, "admin.ModelService.Create")
	defer span.End()

	model.Name = strings.TrimSpace(model.Name)
	if model.Name == "" {
		return errors.ErrInvalidParam.WithDetail("model name required")
	}

	platform, err := s.platformRepo.GetByID(ctx, model.PlatformID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil || platform.TenantID != model.TenantID {
		return errors.ErrPlatformNotFound.WithDetail(model.PlatformID)
	}

	existing, err := s.modelRepo.GetByName(ctx, model.PlatformID, model.Name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to check model name")
	}
	if existing != nil {
		return errors.ErrConflict.WithDetail(model.Name)
	}

	if err := s.modelRepo.Create(ctx, model); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to create model")
	}

	s.invalidator.Invalidate(ctx, model.TenantID, "model created")
	return nil
}

// Update 更新模型
func (s *ModelService) Update(ctx context.Context, model *entity.Model) error {
	ctx, span := tracer.Start(ctx, "admin.ModelService.Update")
	defer span.End()

	current, err := s.modelRepo.GetByID(ctx, model.ID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load model")
	}
	if current == nil || current.TenantID != model.TenantID {
		return errors.ErrModelNotFound.WithDetail(model.ID)
	}

	// 模型不可跨平台迁移
	model.PlatformID = current.PlatformID
	if err := s.modelRepo.Update(ctx, model); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to update model")
	}

	s.invalidator.Invalidate(ctx, model.TenantID, "model updated")
	return nil
}

// SetEnabled 启用/停用模型
func (s *ModelService) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	if err := s.modelRepo.SetEnabled(ctx, tenantID, id, enabled); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to set model enabled")
	}
	s.invalidator.Invalidate(ctx, tenantID, "model enabled changed")
	return nil
}

// Delete 删除模型
func (s *ModelService) Delete(ctx context.Context, tenantID, id string) error {
	if err := s.modelRepo.Delete(ctx, tenantID, id); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete model")
	}
	s.invalidator.Invalidate(ctx, tenantID, "model deleted")
	return nil
}

// ListByPlatform 获取平台下全部模型
func (s *ModelService) ListByPlatform(ctx context.Context, tenantID, platformID string) ([]*entity.Model, error) {
	platform, err := s.platformRepo.GetByID(ctx, platformID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil || (platform.TenantID != tenantID && !platform.IsSystem()) {
		return nil, errors.ErrPlatformNotFound.WithDetail(platformID)
	}

	models, err := s.modelRepo.ListByPlatform(ctx, platformID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list models")
	}
	return models, nil
}
