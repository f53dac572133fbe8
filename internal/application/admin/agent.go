package admin

import (
	"context"
	"strings"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

// AgentService 智能体绑定管理服务
type AgentService struct {
	agentRepo    repository.AgentBindingRepository
	slotRepo     repository.SlotRepository
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	invalidator  *catalog.Invalidator
}

// NewAgentService 创建绑定管理服务
func NewAgentService(agentRepo repository.AgentBindingRepository, slotRepo repository.SlotRepository, platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository, invalidator *catalog.Invalidator) *AgentService {
	return &AgentService{
		agentRepo:    agentRepo,
		slotRepo:     slotRepo,
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		invalidator:  invalidator,
	}
}

// Bind 写入或更新智能体绑定
func (s *AgentService) Bind(ctx context.Context, binding *entity.AgentBinding) error {
	ctx, span := tracer.Start(ctx, "admin.AgentService.Bind")
	defer span.End()

	binding.AgentName = strings.TrimSpace(binding.AgentName)
	if binding.AgentName == "" {
		return errors.ErrInvalidParam.WithDetail("agent name required")
	}
	if !binding.Valid() {
		return errors.ErrInvalidParam.WithDetail("binding must reference a slot or a platform/model pair")
	}

	if binding.IsSlotRef() {
		slot, err := s.slotRepo.GetByName(ctx, binding.TenantID, binding.SlotName)
		if err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
		}
		if slot == nil {
			slot, err = s.slotRepo.GetByName(ctx, entity.SystemTenantID, binding.SlotName)
			if err != nil {
				return errors.Wrap(err, errors.CodeDatabaseError, "failed to load system slot")
			}
		}
		if slot == nil {
			return errors.ErrSlotNotFound.WithDetail(binding.SlotName)
		}
	} else {
		platform, err := s.platformRepo.GetByID(ctx, binding.PlatformID)
		if err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
		}
		if platform == nil || (platform.TenantID != binding.TenantID && !platform.IsSystem()) {
			return errors.ErrPlatformNotFound.WithDetail(binding.PlatformID)
		}
		model, err := s.modelRepo.GetByID(ctx, binding.ModelID)
		if err != nil {
			return errors.Wrap(err, errors.CodeDatabaseError, "failed to load model")
		}
		if model == nil || model.PlatformID != binding.PlatformID {
			return errors.ErrModelNotFound.WithDetail(binding.ModelID)
		}
	}

	if err := s.agentRepo.Upsert(ctx, binding); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to upsert agent binding")
	}

	s.invalidator.Invalidate(ctx, binding.TenantID, "agent binding changed")
	return nil
}

// Get 获取智能体绑定，不存在时返回 (nil, nil)
func (s *AgentService) Get(ctx context.Context, tenantID, agentName string) (*entity.AgentBinding, error) {
	binding, err := s.agentRepo.GetByName(ctx, tenantID, agentName)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load agent binding")
	}
	return binding, nil
}

// List 获取租户的全部绑定
func (s *AgentService) List(ctx context.Context, tenantID string) ([]*entity.AgentBinding, error) {
	bindings, err := s.agentRepo.List(ctx, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to list agent bindings")
	}
	return bindings, nil
}

// Unbind 删除智能体绑定
func (s *AgentService) Unbind(ctx context.Context, tenantID, agentName string) error {
	if err := s.agentRepo.Delete(ctx, tenantID, agentName); err != nil {
		return errors.Wrap(err, errors.CodeDatabaseError, "failed to delete agent binding")
	}
	s.invalidator.Invalidate(ctx, tenantID, "agent binding deleted")
	return nil
}
