package routing

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
)

type fakePlatformRepo struct {
	platforms []*entity.Platform
}

func (f *fakePlatformRepo) Create(ctx context.Context, p *entity.Platform) error { return nil }
func (f *fakePlatformRepo) Update(ctx context.Context, p *entity.Platform) error { return nil }
func (f *fakePlatformRepo) Delete(ctx context.Context, tenantID, id string) error {
	return nil
}

func (f *fakePlatformRepo) GetByID(ctx context.Context, id string) (*entity.Platform, error) {
	for _, p := range f.platforms {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlatformRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.Platform, error) {
	for _, p := range f.platforms {
		if p.TenantID == tenantID && p.Name == name {
			return p, nil
		}
	}
	return nil, nil
}

func (f *fakePlatformRepo) List(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	var out []*entity.Platform
	for _, p := range f.platforms {
		if p.TenantID == tenantID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlatformRepo) ListEnabled(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	var out []*entity.Platform
	for _, p := range f.platforms {
		if p.TenantID == tenantID && p.Enabled {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePlatformRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return nil
}

func (f *fakePlatformRepo) Reorder(ctx context.Context, tenantID string, orderedIDs []string) error {
	return nil
}

type fakeModelRepo struct {
	models []*entity.Model
}

func (f *fakeModelRepo) Create(ctx context.Context, m *entity.Model) error     { return nil }
func (f *fakeModelRepo) Update(ctx context.Context, m *entity.Model) error     { return nil }
func (f *fakeModelRepo) Delete(ctx context.Context, tenantID, id string) error { return nil }

func (f *fakeModelRepo) GetByID(ctx context.Context, id string) (*entity.Model, error) {
	for _, m := range f.models {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeModelRepo) GetByName(ctx context.Context, platformID, name string) (*entity.Model, error) {
	for _, m := range f.models {
		if m.PlatformID == platformID && m.Name == name {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeModelRepo) ListByPlatform(ctx context.Context, platformID string) ([]*entity.Model, error) {
	var out []*entity.Model
	for _, m := range f.models {
		if m.PlatformID == platformID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeModelRepo) ListEnabledByPlatforms(ctx context.Context, platformIDs []string) ([]*entity.Model, error) {
	ids := make(map[string]bool, len(platformIDs))
	for _, id := range platformIDs {
		ids[id] = true
	}
	var out []*entity.Model
	for _, m := range f.models {
		if ids[m.PlatformID] && m.Enabled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (f *fakeModelRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return nil
}

type fakeSlotRepo struct {
	slots          []*entity.UsagePolicySlot
	setTargetCalls int
}

func (f *fakeSlotRepo) Create(ctx context.Context, s *entity.UsagePolicySlot) error { return nil }
func (f *fakeSlotRepo) Upsert(ctx context.Context, s *entity.UsagePolicySlot) error { return nil }

func (f *fakeSlotRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.UsagePolicySlot, error) {
	for _, s := range f.slots {
		if s.TenantID == tenantID && s.Name == name {
			return s, nil
		}
	}
	return nil, nil
}

func (f *fakeSlotRepo) List(ctx context.Context, tenantID string) ([]*entity.UsagePolicySlot, error) {
	var out []*entity.UsagePolicySlot
	for _, s := range f.slots {
		if s.TenantID == tenantID {
			out = append(out, s)
		}
	}
	return out, nil
}

func (f *fakeSlotRepo) SetTarget(ctx context.Context, id string, platformID, modelID *string) error {
	f.setTargetCalls++
	for _, s := range f.slots {
		if s.ID == id {
			s.PlatformID = platformID
			s.ModelID = modelID
		}
	}
	return nil
}

func (f *fakeSlotRepo) Delete(ctx context.Context, tenantID, id string) error { return nil }

type fakeBindingRepo struct {
	bindings []*entity.AgentBinding
}

func (f *fakeBindingRepo) Upsert(ctx context.Context, b *entity.AgentBinding) error { return nil }

func (f *fakeBindingRepo) GetByName(ctx context.Context, tenantID, agentName string) (*entity.AgentBinding, error) {
	for _, b := range f.bindings {
		if b.TenantID == tenantID && b.AgentName == agentName {
			return b, nil
		}
	}
	return nil, nil
}

func (f *fakeBindingRepo) List(ctx context.Context, tenantID string) ([]*entity.AgentBinding, error) {
	return nil, nil
}

func (f *fakeBindingRepo) Delete(ctx context.Context, tenantID, agentName string) error { return nil }

type fakeCredRepo struct {
	creds []*entity.TenantCredentialOverride
}

func (f *fakeCredRepo) Upsert(ctx context.Context, c *entity.TenantCredentialOverride) error {
	return nil
}

func (f *fakeCredRepo) Get(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error) {
	for _, c := range f.creds {
		if c.TenantID == tenantID && c.PlatformID == platformID {
			return c, nil
		}
	}
	return nil, nil
}

func (f *fakeCredRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantCredentialOverride, error) {
	return nil, nil
}

func (f *fakeCredRepo) Delete(ctx context.Context, tenantID, platformID string) error { return nil }

var (
	_ repository.PlatformRepository     = (*fakePlatformRepo)(nil)
	_ repository.ModelRepository        = (*fakeModelRepo)(nil)
	_ repository.SlotRepository         = (*fakeSlotRepo)(nil)
	_ repository.AgentBindingRepository = (*fakeBindingRepo)(nil)
	_ repository.CredentialRepository   = (*fakeCredRepo)(nil)
)

// fixture 一个系统平台 + 两个模型（chat 已启用 / reasoning 已停用）的基准目录
type fixture struct {
	platforms *fakePlatformRepo
	models    *fakeModelRepo
	slots     *fakeSlotRepo
	bindings  *fakeBindingRepo
	creds     *fakeCredRepo
	resolver  *Resolver
}

func strPtr(s string) *string { return &s }

func newFixture(t *testing.T) *fixture {
	t.Helper()

	platforms := &fakePlatformRepo{platforms: []*entity.Platform{
		{
			ID: "p1", TenantID: entity.SystemTenantID, Name: "openai", Provider: "openai",
			BaseURL: "https://api.openai.com/v1/", APIKey: "sk-system", Enabled: true,
		},
		{
			ID: "p2", TenantID: "t-other", Name: "private", Provider: "openai",
			BaseURL: "https://private.example.com", APIKey: "sk-other", Enabled: true,
		},
		{
			ID: "p3", TenantID: entity.SystemTenantID, Name: "disabled", Provider: "openai",
			APIKey: "sk-disabled", Enabled: false,
		},
	}}
	models := &fakeModelRepo{models: []*entity.Model{
		{
			ID: "m1", PlatformID: "p1", TenantID: entity.SystemTenantID, Name: "gpt-4o",
			Capabilities: []string{"chat"}, Enabled: true,
			DefaultParams: map[string]any{"temperature": 0.7},
		},
		{
			ID: "m2", PlatformID: "p1", TenantID: entity.SystemTenantID, Name: "gpt-4o-reason",
			Capabilities: []string{"chat", "reasoning"}, Enabled: false,
		},
		{
			ID: "m3", PlatformID: "p2", TenantID: "t-other", Name: "other-model",
			Capabilities: []string{"chat"}, Enabled: true,
		},
	}}
	slots := &fakeSlotRepo{slots: []*entity.UsagePolicySlot{
		{ID: "s-main", TenantID: entity.SystemTenantID, Name: entity.SlotMain, Builtin: true},
	}}
	bindings := &fakeBindingRepo{}
	creds := &fakeCredRepo{}

	cipher, err := secret.New("test-pass")
	require.NoError(t, err)
	cache := catalog.NewCache(platforms, models, time.Minute)

	return &fixture{
		platforms: platforms,
		models:    models,
		slots:     slots,
		bindings:  bindings,
		creds:     creds,
		resolver:  NewResolver(platforms, models, slots, bindings, creds, cache, cipher),
	}
}

func TestResolveExplicit(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	target, err := fx.resolver.Resolve(ctx, "t1", Intent{
		PlatformID: "p1", ModelID: "m1",
		Params: map[string]any{"temperature": 0.1, "streaming": true},
	})
	require.NoError(t, err)

	assert.Equal(t, "p1", target.Platform.ID)
	assert.Equal(t, "m1", target.Model.ID)
	assert.Equal(t, "sk-system", target.Credential.APIKey)
	assert.Equal(t, "https://api.openai.com/v1", target.Credential.BaseURL)
	assert.False(t, target.Credential.FromOverride)
	assert.False(t, target.Repaired)
	assert.Empty(t, target.SlotName)

	// 调用方参数覆盖默认值，streaming 被剔除
	assert.Equal(t, 0.1, target.Params["temperature"])
	_, hasStreaming := target.Params["streaming"]
	assert.False(t, hasStreaming)
}

func TestResolveExplicitRejections(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name   string
		intent Intent
		code   errors.ErrorCode
	}{
		{"unknown platform", Intent{PlatformID: "nope", ModelID: "m1"}, errors.CodePlatformNotFound},
		{"foreign tenant platform", Intent{PlatformID: "p2", ModelID: "m3"}, errors.CodePermissionDenied},
		{"disabled platform", Intent{PlatformID: "p3", ModelID: "m1"}, errors.CodePlatformDisabled},
		{"model of another platform", Intent{PlatformID: "p1", ModelID: "m3"}, errors.CodeModelNotFound},
		{"disabled model", Intent{PlatformID: "p1", ModelID: "m2"}, errors.CodeModelDisabled},
		{"capability missing", Intent{PlatformID: "p1", ModelID: "m1", Capability: entity.CapabilityVision}, errors.CodeCapabilityMissing},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := fx.resolver.Resolve(ctx, "t1", tt.intent)
			require.Error(t, err)
			assert.Equal(t, tt.code, errors.AsAppError(err).Code)
		})
	}
}

func TestResolveExplicitOwnTenantPlatform(t *testing.T) {
	fx := newFixture(t)

	// 平台归属租户自己时放行
	target, err := fx.resolver.Resolve(context.Background(), "t-other", ExplicitIntent("p2", "m3"))
	require.NoError(t, err)
	assert.Equal(t, "sk-other", target.Credential.APIKey)
}

func TestCredentialOverrideWins(t *testing.T) {
	fx := newFixture(t)
	fx.creds.creds = []*entity.TenantCredentialOverride{
		{TenantID: "t1", PlatformID: "p1", APIKey: "sk-override", BaseURL: "https://proxy.example.com/", Enabled: true},
	}

	target, err := fx.resolver.Resolve(context.Background(), "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)

	assert.True(t, target.Credential.FromOverride)
	assert.Equal(t, "sk-override", target.Credential.APIKey)
	assert.Equal(t, "https://proxy.example.com", target.Credential.BaseURL)
}

func TestCredentialOverrideFallbacks(t *testing.T) {
	fx := newFixture(t)
	ctx := context.Background()

	// 停用的覆盖不生效
	fx.creds.creds = []*entity.TenantCredentialOverride{
		{TenantID: "t1", PlatformID: "p1", APIKey: "sk-override", Enabled: false},
	}
	target, err := fx.resolver.Resolve(ctx, "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.False(t, target.Credential.FromOverride)
	assert.Equal(t, "sk-system", target.Credential.APIKey)

	// 空密钥的覆盖不生效，但保留覆盖的 BaseURL 不应发生
	fx.creds.creds = []*entity.TenantCredentialOverride{
		{TenantID: "t1", PlatformID: "p1", APIKey: "", Enabled: true},
	}
	target, err = fx.resolver.Resolve(ctx, "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.False(t, target.Credential.FromOverride)
	assert.Equal(t, "https://api.openai.com/v1", target.Credential.BaseURL)
}

func TestCredentialOverrideBaseURLInherit(t *testing.T) {
	fx := newFixture(t)
	fx.creds.creds = []*entity.TenantCredentialOverride{
		{TenantID: "t1", PlatformID: "p1", APIKey: "sk-override", Enabled: true},
	}

	// 覆盖未指定 BaseURL 时沿用平台地址
	target, err := fx.resolver.Resolve(context.Background(), "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.True(t, target.Credential.FromOverride)
	assert.Equal(t, "https://api.openai.com/v1", target.Credential.BaseURL)
}

func TestMissingCredential(t *testing.T) {
	fx := newFixture(t)
	fx.platforms.platforms[0].APIKey = ""

	_, err := fx.resolver.Resolve(context.Background(), "t1", ExplicitIntent("p1", "m1"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingCredential, errors.AsAppError(err).Code)
}

func TestPlaceholderCredential(t *testing.T) {
	fx := newFixture(t)
	fx.platforms.platforms[0].APIKey = "{RESOLVER_TEST_KEY}"
	t.Setenv("RESOLVER_TEST_KEY", "sk-from-env")

	target, err := fx.resolver.Resolve(context.Background(), "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.Equal(t, "sk-from-env", target.Credential.APIKey)
}

func TestEncryptedCredential(t *testing.T) {
	fx := newFixture(t)
	cipher, err := secret.New("test-pass")
	require.NoError(t, err)
	sealed, err := cipher.Encrypt("sk-sealed")
	require.NoError(t, err)
	fx.platforms.platforms[0].APIKey = sealed

	target, err := fx.resolver.Resolve(context.Background(), "t1", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.Equal(t, "sk-sealed", target.Credential.APIKey)
}

func TestResolveSlotWithTarget(t *testing.T) {
	fx := newFixture(t)
	fx.slots.slots = append(fx.slots.slots, &entity.UsagePolicySlot{
		ID: "s-t1", TenantID: "t1", Name: "custom",
		PlatformID: strPtr("p1"), ModelID: strPtr("m1"),
	})

	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent("custom"))
	require.NoError(t, err)
	assert.Equal(t, "custom", target.SlotName)
	assert.False(t, target.Repaired)
	assert.Equal(t, 0, fx.slots.setTargetCalls)
}

func TestResolveSlotSystemFallback(t *testing.T) {
	fx := newFixture(t)
	fx.slots.slots[0].PlatformID = strPtr("p1")
	fx.slots.slots[0].ModelID = strPtr("m1")

	// 租户没有同名槽位时使用系统内置槽位
	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.NoError(t, err)
	assert.Equal(t, entity.SlotMain, target.SlotName)
	assert.False(t, target.Repaired)
}

func TestResolveSlotNotFound(t *testing.T) {
	fx := newFixture(t)

	_, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent("nonexistent"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeSlotNotFound, errors.AsAppError(err).Code)
}

func TestResolveSlotRepairsEmptyTarget(t *testing.T) {
	fx := newFixture(t)

	// main 槽位无目标，修复为目录首个可用平台+模型并回写
	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.NoError(t, err)

	assert.True(t, target.Repaired)
	assert.Equal(t, "p1", target.Platform.ID)
	assert.Equal(t, "m1", target.Model.ID)
	assert.Equal(t, 1, fx.slots.setTargetCalls)
	assert.Equal(t, "p1", *fx.slots.slots[0].PlatformID)
}

func TestResolveSlotRepairsBrokenTarget(t *testing.T) {
	fx := newFixture(t)

	// 指向已停用模型的目标视为不可用
	fx.slots.slots[0].PlatformID = strPtr("p1")
	fx.slots.slots[0].ModelID = strPtr("m2")

	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.NoError(t, err)
	assert.True(t, target.Repaired)
	assert.Equal(t, "m1", target.Model.ID)
	assert.Equal(t, 1, fx.slots.setTargetCalls)
}

func TestResolveAgentDirect(t *testing.T) {
	fx := newFixture(t)
	fx.bindings.bindings = []*entity.AgentBinding{
		{TenantID: "t1", AgentName: "writer", PlatformID: "p1", ModelID: "m1"},
	}

	target, err := fx.resolver.Resolve(context.Background(), "t1", AgentIntent("writer"))
	require.NoError(t, err)
	assert.Equal(t, "m1", target.Model.ID)
	assert.Empty(t, target.SlotName)
}

func TestResolveAgentSlotRef(t *testing.T) {
	fx := newFixture(t)
	fx.bindings.bindings = []*entity.AgentBinding{
		{TenantID: "t1", AgentName: "writer", SlotName: entity.SlotMain},
	}

	// 经由绑定的槽位解析：修复发生但不回写
	target, err := fx.resolver.Resolve(context.Background(), "t1", AgentIntent("writer"))
	require.NoError(t, err)
	assert.Equal(t, entity.SlotMain, target.SlotName)
	assert.True(t, target.Repaired)
	assert.Equal(t, 0, fx.slots.setTargetCalls)
}

func TestResolveAgentUnboundFallsBackToMain(t *testing.T) {
	fx := newFixture(t)
	fx.slots.slots[0].PlatformID = strPtr("p1")
	fx.slots.slots[0].ModelID = strPtr("m1")

	target, err := fx.resolver.Resolve(context.Background(), "t1", AgentIntent("unknown-agent"))
	require.NoError(t, err)
	assert.Equal(t, entity.SlotMain, target.SlotName)
	assert.Equal(t, 0, fx.slots.setTargetCalls)
}

func TestRepairPrefersPlatformWithCredential(t *testing.T) {
	fx := newFixture(t)

	// 目录首个平台没有可用凭证时，修复应选择有凭证的后续平台
	fx.platforms.platforms[0].APIKey = ""
	fx.platforms.platforms = append(fx.platforms.platforms, &entity.Platform{
		ID: "p4", TenantID: entity.SystemTenantID, Name: "backup", Provider: "anthropic",
		APIKey: "sk-backup", Enabled: true, DisplayOrder: 1,
	})
	fx.models.models = append(fx.models.models, &entity.Model{
		ID: "m4", PlatformID: "p4", TenantID: entity.SystemTenantID, Name: "claude-sonnet",
		Capabilities: []string{"chat"}, Enabled: true,
	})

	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.NoError(t, err)
	assert.True(t, target.Repaired)
	assert.Equal(t, "p4", target.Platform.ID)
	assert.Equal(t, "sk-backup", target.Credential.APIKey)
}

func TestSlotMissingCredentialNotRepaired(t *testing.T) {
	fx := newFixture(t)

	// 槽位目标有效只是缺凭证：报错而不是静默换到别的平台
	fx.slots.slots[0].PlatformID = strPtr("p1")
	fx.slots.slots[0].ModelID = strPtr("m1")
	fx.platforms.platforms[0].APIKey = ""
	fx.platforms.platforms = append(fx.platforms.platforms, &entity.Platform{
		ID: "p4", TenantID: entity.SystemTenantID, Name: "backup", Provider: "anthropic",
		APIKey: "sk-backup", Enabled: true, DisplayOrder: 1,
	})
	fx.models.models = append(fx.models.models, &entity.Model{
		ID: "m4", PlatformID: "p4", TenantID: entity.SystemTenantID, Name: "claude-sonnet",
		Capabilities: []string{"chat"}, Enabled: true,
	})

	_, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.Error(t, err)
	assert.Equal(t, errors.CodeMissingCredential, errors.AsAppError(err).Code)
	assert.Equal(t, 0, fx.slots.setTargetCalls)
}

func TestEmbeddingOnlyModelNeedsExplicitCapability(t *testing.T) {
	fx := newFixture(t)
	fx.models.models = append(fx.models.models, &entity.Model{
		ID: "m5", PlatformID: "p1", TenantID: entity.SystemTenantID, Name: "text-embedding-3",
		Capabilities: []string{"embedding"}, Enabled: true,
	})
	ctx := context.Background()

	// 未声明能力按对话处理，纯向量化模型不可用
	_, err := fx.resolver.Resolve(ctx, "t1", ExplicitIntent("p1", "m5"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeCapabilityMissing, errors.AsAppError(err).Code)

	target, err := fx.resolver.Resolve(ctx, "t1", Intent{
		PlatformID: "p1", ModelID: "m5",
		Capability: entity.CapabilityEmbedding,
	})
	require.NoError(t, err)
	assert.Equal(t, "m5", target.Model.ID)
}

func TestRepairSkipsEmbeddingOnlyModel(t *testing.T) {
	fx := newFixture(t)

	// p1 只剩纯向量化模型时，修复应落到后续平台的对话模型
	fx.models.models[0].Enabled = false
	fx.models.models = append(fx.models.models,
		&entity.Model{
			ID: "m5", PlatformID: "p1", TenantID: entity.SystemTenantID, Name: "text-embedding-3",
			Capabilities: []string{"embedding"}, Enabled: true,
		},
		&entity.Model{
			ID: "m4", PlatformID: "p4", TenantID: entity.SystemTenantID, Name: "claude-sonnet",
			Capabilities: []string{"chat"}, Enabled: true,
		},
	)
	fx.platforms.platforms = append(fx.platforms.platforms, &entity.Platform{
		ID: "p4", TenantID: entity.SystemTenantID, Name: "backup", Provider: "anthropic",
		APIKey: "sk-backup", Enabled: true, DisplayOrder: 1,
	})

	target, err := fx.resolver.Resolve(context.Background(), "t1", SlotIntent(entity.SlotMain))
	require.NoError(t, err)
	assert.True(t, target.Repaired)
	assert.Equal(t, "p4", target.Platform.ID)
	assert.Equal(t, "m4", target.Model.ID)
}

func TestHiddenPlatform(t *testing.T) {
	fx := newFixture(t)
	fx.creds.creds = []*entity.TenantCredentialOverride{
		{TenantID: "t1", PlatformID: "p1", Hidden: true},
	}
	ctx := context.Background()

	// 隐藏的平台对该租户等同于不存在
	_, err := fx.resolver.Resolve(ctx, "t1", ExplicitIntent("p1", "m1"))
	require.Error(t, err)
	assert.Equal(t, errors.CodePlatformNotFound, errors.AsAppError(err).Code)

	// 修复也不会落到隐藏平台上
	_, err = fx.resolver.Resolve(ctx, "t1", SlotIntent(entity.SlotMain))
	require.Error(t, err)
	assert.Equal(t, errors.CodeResolveFailed, errors.AsAppError(err).Code)

	// 其他租户不受影响
	target, err := fx.resolver.Resolve(ctx, "t2", ExplicitIntent("p1", "m1"))
	require.NoError(t, err)
	assert.Equal(t, "p1", target.Platform.ID)
}

func TestRepairRespectsCapability(t *testing.T) {
	fx := newFixture(t)
	fx.models.models[1].Enabled = true // m2: chat + reasoning

	target, err := fx.resolver.Resolve(context.Background(), "t1", Intent{
		Slot:       entity.SlotMain,
		Capability: entity.CapabilityReasoning,
	})
	require.NoError(t, err)
	assert.Equal(t, "m2", target.Model.ID)
}
