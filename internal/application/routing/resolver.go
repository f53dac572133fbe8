// Package routing 提供租户请求意图到具体平台/模型/凭证的解析
package routing

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/metrics"
)

var tracer = otel.Tracer("routing")

// Intent 路由意图，三种形态任取其一：槽位名 / 显式平台+模型 / 智能体名
type Intent struct {
	Slot       string
	PlatformID string
	ModelID    string
	Agent      string

	// Capability 要求模型具备的能力，为空按对话类请求处理
	Capability entity.ModelCapability
	// Params 调用方参数，解析时与模型默认参数合并（调用方优先）
	Params map[string]any
}

// Kind 意图形态
func (it Intent) Kind() string {
	switch {
	case it.Slot != "":
		return "slot"
	case it.Agent != "":
		return "agent"
	default:
		return "explicit"
	}
}

// SlotIntent 构造槽位意图
func SlotIntent(name string) Intent {
	return Intent{Slot: name}
}

// ExplicitIntent 构造显式意图
func ExplicitIntent(platformID, modelID string) Intent {
	return Intent{PlatformID: platformID, ModelID: modelID}
}

// AgentIntent 构造智能体意图
func AgentIntent(name string) Intent {
	return Intent{Agent: name}
}

// Credential 解析出的有效凭证
type Credential struct {
	APIKey       string
	BaseURL      string
	FromOverride bool
}

// Target 解析结果
type Target struct {
	Platform   *entity.Platform
	Model      *entity.Model
	Credential Credential
	Params     map[string]any
	SlotName   string
	Repaired   bool
}

// Resolver 路由解析器
type Resolver struct {
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	slotRepo     repository.SlotRepository
	bindingRepo  repository.AgentBindingRepository
	credRepo     repository.CredentialRepository
	catalog      *catalog.Cache
	cipher       *secret.Cipher
}

// NewResolver 创建路由解析器
func NewResolver(
	platformRepo repository.PlatformRepository,
	modelRepo repository.ModelRepository,
	slotRepo repository.SlotRepository,
	bindingRepo repository.AgentBindingRepository,
	credRepo repository.CredentialRepository,
	catalogCache *catalog.Cache,
	cipher *secret.Cipher,
) *Resolver {
	return &Resolver{
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		slotRepo:     slotRepo,
		bindingRepo:  bindingRepo,
		credRepo:     credRepo,
		catalog:      catalogCache,
		cipher:       cipher,
	}
}

// Resolve 将意图解析为具体调用目标
func (r *Resolver) Resolve(ctx context.Context, tenantID string, intent Intent) (*Target, error) {
	kind := intent.Kind()
	ctx, span := tracer.Start(ctx, "routing.Resolver.Resolve")
	span.SetAttributes(
		attribute.String("resolve.intent", kind),
		attribute.String("tenant_id", tenantID),
	)
	defer span.End()

	start := time.Now()
	target, err := r.resolve(ctx, tenantID, intent)
	metrics.ResolveDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())

	if err != nil {
		span.RecordError(err)
		metrics.ResolveTotal.WithLabelValues(kind, "error").Inc()
		return nil, err
	}

	metrics.ResolveTotal.WithLabelValues(kind, "ok").Inc()
	span.SetAttributes(
		attribute.String("resolve.platform", target.Platform.Name),
		attribute.String("resolve.model", target.Model.Name),
		attribute.Bool("resolve.repaired", target.Repaired),
	)
	return target, nil
}

func (r *Resolver) resolve(ctx context.Context, tenantID string, intent Intent) (*Target, error) {
	switch intent.Kind() {
	case "slot":
		return r.resolveSlot(ctx, tenantID, intent.Slot, intent, true)
	case "agent":
		return r.resolveAgent(ctx, tenantID, intent)
	default:
		return r.resolveExplicit(ctx, tenantID, intent.PlatformID, intent.ModelID, intent)
	}
}

// resolveAgent 智能体意图：查绑定后递归到槽位或显式形态
// 未知智能体回退到 main 槽位；经由绑定的槽位解析不回写修复结果
func (r *Resolver) resolveAgent(ctx context.Context, tenantID string, intent Intent) (*Target, error) {
	binding, err := r.bindingRepo.GetByName(ctx, tenantID, intent.Agent)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load agent binding")
	}

	if binding == nil {
		logger.Debug(ctx, "no binding for agent, falling back to main slot", "agent", intent.Agent)
		return r.resolveSlot(ctx, tenantID, entity.SlotMain, intent, false)
	}

	if binding.IsDirect() {
		return r.resolveExplicit(ctx, tenantID, binding.PlatformID, binding.ModelID, intent)
	}
	return r.resolveSlot(ctx, tenantID, binding.SlotName, intent, false)
}

// resolveSlot 槽位意图：租户槽位优先，系统内置兜底
// persistRepair 仅在槽位直发意图时为 true，修复结果才会回写槽位
func (r *Resolver) resolveSlot(ctx context.Context, tenantID, slotName string, intent Intent, persistRepair bool) (*Target, error) {
	slot, err := r.slotRepo.GetByName(ctx, tenantID, slotName)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
	}
	if slot == nil && tenantID != entity.SystemTenantID {
		slot, err = r.slotRepo.GetByName(ctx, entity.SystemTenantID, slotName)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load slot")
		}
	}
	if slot == nil {
		return nil, errors.ErrSlotNotFound.WithDetail(slotName)
	}

	// 槽位已有目标且目标可用时直接使用
	if slot.HasTarget() {
		target, err := r.buildValidated(ctx, tenantID, *slot.PlatformID, *slot.ModelID, intent)
		if err == nil {
			target.SlotName = slotName
			return target, nil
		}
		// 目标本身有效只是缺凭证时不做修复，静默换平台会掩盖配置问题
		if errors.AsAppError(err).Code == errors.CodeMissingCredential {
			return nil, err
		}
		logger.Warn(ctx, "slot target unusable, attempting repair",
			"slot", slotName, "reason", err.Error())
	}

	// 自动修复：回退到目录中首个可用的系统平台+模型
	platform, model, err := r.pickFallback(ctx, tenantID, intent.Capability)
	if err != nil {
		return nil, err
	}

	if persistRepair {
		if err := r.slotRepo.SetTarget(ctx, slot.ID, &platform.ID, &model.ID); err != nil {
			// 回写失败只影响下次解析速度，不影响本次结果
			logger.Warn(ctx, "failed to persist slot repair", "slot", slotName, "error", err.Error())
		}
		metrics.ResolveRepairTotal.WithLabelValues(slotName).Inc()
	}

	override, err := r.overrideFor(ctx, tenantID, platform.ID)
	if err != nil {
		return nil, err
	}
	target, err := r.buildTarget(ctx, platform, model, override, intent)
	if err != nil {
		return nil, err
	}
	target.SlotName = slotName
	target.Repaired = true
	return target, nil
}

// resolveExplicit 显式意图：校验归属与启用状态，不做自动修复
func (r *Resolver) resolveExplicit(ctx context.Context, tenantID, platformID, modelID string, intent Intent) (*Target, error) {
	return r.buildValidated(ctx, tenantID, platformID, modelID, intent)
}

// buildValidated 加载并校验平台与模型后构建目标
func (r *Resolver) buildValidated(ctx context.Context, tenantID, platformID, modelID string, intent Intent) (*Target, error) {
	platform, err := r.platformRepo.GetByID(ctx, platformID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load platform")
	}
	if platform == nil {
		return nil, errors.ErrPlatformNotFound.WithDetail(platformID)
	}

	// 只允许访问本租户或系统级平台
	if platform.TenantID != tenantID && !platform.IsSystem() {
		return nil, errors.New(errors.CodePermissionDenied, "platform belongs to another tenant")
	}
	// 软停用即最终裁决，直接引用也不放行
	if !platform.Enabled {
		return nil, errors.ErrPlatformDisabled.WithDetail(platform.Name)
	}

	override, err := r.overrideFor(ctx, tenantID, platform.ID)
	if err != nil {
		return nil, err
	}
	// 租户隐藏的平台等同于不存在
	if override != nil && override.Hidden {
		return nil, errors.ErrPlatformNotFound.WithDetail(platformID)
	}

	model, err := r.modelRepo.GetByID(ctx, modelID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load model")
	}
	if model == nil || model.PlatformID != platform.ID {
		return nil, errors.ErrModelNotFound.WithDetail(modelID)
	}
	if !model.Enabled {
		return nil, errors.ErrModelDisabled.WithDetail(model.Name)
	}
	if intent.Capability != "" {
		if !model.HasCapability(intent.Capability) {
			return nil, errors.ErrCapabilityMissing.WithDetail(string(intent.Capability))
		}
	} else if model.IsEmbeddingOnly() {
		// 未声明能力按对话处理，纯向量化模型不可用
		return nil, errors.ErrCapabilityMissing.WithDetail(string(entity.CapabilityChat))
	}

	return r.buildTarget(ctx, platform, model, override, intent)
}

// overrideFor 加载租户对平台的凭证覆盖，系统租户没有覆盖
func (r *Resolver) overrideFor(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error) {
	if tenantID == entity.SystemTenantID {
		return nil, nil
	}
	override, err := r.credRepo.Get(ctx, tenantID, platformID)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load credential override")
	}
	return override, nil
}

// buildTarget 解析有效凭证并合并参数
func (r *Resolver) buildTarget(ctx context.Context, platform *entity.Platform, model *entity.Model, override *entity.TenantCredentialOverride, intent Intent) (*Target, error) {
	cred, err := r.effectiveCredential(ctx, platform, override)
	if err != nil {
		return nil, err
	}

	return &Target{
		Platform:   platform,
		Model:      model,
		Credential: cred,
		Params:     MergeParams(model.DefaultParams, intent.Params),
	}, nil
}

// effectiveCredential 有效凭证：租户覆盖优先于平台自带
func (r *Resolver) effectiveCredential(ctx context.Context, platform *entity.Platform, override *entity.TenantCredentialOverride) (Credential, error) {
	if override != nil && override.Enabled {
		if key := r.materializeKey(ctx, override.APIKey); key != "" {
			baseURL := entity.NormalizeBaseURL(override.BaseURL)
			if baseURL == "" {
				baseURL = entity.NormalizeBaseURL(platform.BaseURL)
			}
			return Credential{APIKey: key, BaseURL: baseURL, FromOverride: true}, nil
		}
	}

	if key := r.materializeKey(ctx, platform.APIKey); key != "" {
		return Credential{APIKey: key, BaseURL: entity.NormalizeBaseURL(platform.BaseURL)}, nil
	}

	return Credential{}, errors.ErrMissingCredential.WithDetail(platform.Name)
}

// materializeKey 解密并解析占位符，得到可用的明文密钥
// 口令未配置时密文原样带前缀返回，这种密钥不可用
func (r *Resolver) materializeKey(ctx context.Context, stored string) string {
	if stored == "" {
		return ""
	}
	plain := r.cipher.Decrypt(ctx, stored)
	if secret.IsEncrypted(plain) {
		return ""
	}
	return secret.ResolvePlaceholder(plain)
}

// pickFallback 从目录中选取首个可用的系统平台与模型
// 跳过租户隐藏的平台；优先选择有可用凭证的平台，都没有时仍返回目录首个，交由上层报缺凭证
func (r *Resolver) pickFallback(ctx context.Context, tenantID string, cap entity.ModelCapability) (*entity.Platform, *entity.Model, error) {
	snap, err := r.catalog.Snapshot(ctx)
	if err != nil {
		return nil, nil, errors.Wrap(err, errors.CodeDatabaseError, "failed to load catalog")
	}

	var first *entity.Platform
	var firstModel *entity.Model

	for _, p := range snap.Platforms {
		m := firstCapableModel(p.Models, cap)
		if m == nil {
			continue
		}
		override, err := r.overrideFor(ctx, tenantID, p.ID)
		if err != nil {
			return nil, nil, err
		}
		if override != nil && override.Hidden {
			continue
		}
		if first == nil {
			first, firstModel = p, m
		}
		if _, err := r.effectiveCredential(ctx, p, override); err == nil {
			return p, m, nil
		}
	}

	if first != nil {
		return first, firstModel, nil
	}
	return nil, nil, errors.New(errors.CodeResolveFailed, "no enabled system platform with models")
}

// firstCapableModel 取首个具备所需能力的模型
// 未声明能力时排除纯向量化模型
func firstCapableModel(models []*entity.Model, cap entity.ModelCapability) *entity.Model {
	for _, m := range models {
		if cap == "" {
			if !m.IsEmbeddingOnly() {
				return m
			}
			continue
		}
		if m.HasCapability(cap) {
			return m
		}
	}
	return nil
}
