package admin

import (
	"context"
	"strings"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

// SlotService 用途槽位管理服务
type SlotService struct {
	slotRepo     repository.SlotRepository
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	invalidator  *catalog.Invalidator
}

// NewSlotService 创建槽位管理服务
func NewSlotService(slotRepo repository.SlotRepository, platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository, invalidator *catalog.Invalidator) *SlotService {
	return &SlotService{
		slotRepo:     slotRepo,
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		invalidator:  invalidator,
	}
}

// Create 创建自定义槽位
func (s *SlotService) Create(ctx context.Context, slot *entity.UsagePolicySlot) error {
	ctx, span := tracer.Start(ctx, "admin.SlotService.Create")
	defer span.End()

	slot.Name = strings.TrimSpace(slot.Name)
	if slot.Name == "" {
		return errors.ErrInvalidParam.WithDetail("slot name required")
	}
	slot.Builtin = false

	existing, err := s.slotRepo.GetByName(ctx, slot.TenantID, slot.Name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to check slot name")
	}
	if existing != nil {
		return errors.ErrConflict.WithDetail(slot.Name)
	}

	if slot.HasTarget() {
		if err := s.validateTarget(ctx, slot.TenantID, *slot.PlatformID, *slot.ModelID); err != nil {
			return err
		}
	}

	if err := s.slotRepo.Create(ctx, slot); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to create slot")
	}

	s.invalidator.Invalidate(ctx, slot.TenantID, "slot created")
	return nil
}

// SetTarget 更新槽位指向
// 平台与模型须同时给出或同时清空
func (s *SlotService) SetTarget(ctx context.Context, tenantID, name string, platformID, modelID *string) error {
	ctx, span := tracer.Start(ctx, "admin.SlotService.SetTarget")
	defer span.End()

	slot, err := s.slotRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
	}
	if slot == nil {
		return errors.ErrSlotNotFound.WithDetail(name)
	}

	hasPlatform := platformID != nil && *platformID != ""
	hasModel := modelID != nil && *modelID != ""
	if hasPlatform != hasModel {
		return errors.ErrInvalidParam.WithDetail("platform_id and model_id must be set together")
	}
	if hasPlatform {
		if err := s.validateTarget(ctx, tenantID, *platformID, *modelID); err != nil {
			return err
		}
	}

	if err := s.slotRepo.SetTarget(ctx, slot.ID, platformID, modelID); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to set slot target")
	}

	s.invalidator.Invalidate(ctx, tenantID, "slot target changed")
	return nil
}

// Delete 删除自定义槽位，内置槽位受保护不可删除
func (s *SlotService) Delete(ctx context.Context, tenantID, name string) error {
	slot, err := s.slotRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
	}
	if slot == nil {
		return errors.ErrSlotNotFound.WithDetail(name)
	}
	if slot.Builtin {
		return errors.ErrSlotProtected.WithDetail(name)
	}

	if err := s.slotRepo.Delete(ctx, tenantID, slot.ID); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete slot")
	}

	s.invalidator.Invalidate(ctx, tenantID, "slot deleted")
	return nil
}

// Get 按名称获取槽位，租户自有槽位优先，回落到系统槽位
func (s *SlotService) Get(ctx context.Context, tenantID, name string) (*entity.UsagePolicySlot, error) {
	slot, err := s.slotRepo.GetByName(ctx, tenantID, name)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
	}
	if slot == nil && tenantID != entity.SystemTenantID {
		slot, err = s.slotRepo.GetByName(ctx, entity.SystemTenantID, name)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load system slot")
		}
	}
	if slot == nil {
		return nil, errors.ErrSlotNotFound.WithDetail(name)
	}
	return slot, nil
}

// List 获取租户可见的槽位，系统内置槽位始终包含
func (s *SlotService) List(ctx context.Context, tenantID string) ([]*entity.UsagePolicySlot, error) {
	slots, err := s.slotRepo.List(ctx, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list slots")
	}
	if tenantID == entity.SystemTenantID {
		return slots, nil
	}

	systemSlots, err := s.slotRepo.List(ctx, entity.SystemTenantID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list system slots")
	}

	// 租户同名槽位遮蔽系统槽位
	seen := make(map[string]struct{}, len(slots))
	for _, slot := range slots {
		seen[slot.Name] = struct{}{}
	}
	for _, slot := range systemSlots {
		if _, ok := seen[slot.Name]; !ok {
			slots = append(slots, slot)
		}
	}
	return slots, nil
}

// validateTarget 校验槽位指向的平台与模型存在、归属一致且可见
func (s *SlotService) validateTarget(ctx context.Context, tenantID, platformID, modelID string) error {
	platform, err := s.platformRepo.GetByID(ctx, platformID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil || (platform.TenantID != tenantID && !platform.IsSystem()) {
		return errors.ErrPlatformNotFound.WithDetail(platformID)
	}

	model, err := s.modelRepo.GetByID(ctx, modelID)
	if err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to load model")
	}
	if model == nil || model.PlatformID != platformID {
		return errors.ErrModelNotFound.WithDetail(modelID)
	}
	return nil
}
