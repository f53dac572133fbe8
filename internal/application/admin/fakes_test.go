package admin

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
)

type memPlatformRepo struct {
	items []*entity.Platform
	seq   int
}

func (r *memPlatformRepo) Create(ctx context.Context, p *entity.Platform) error {
	if p.ID == "" {
		r.seq++
		p.ID = fmt.Sprintf("p%d", r.seq)
	}
	r.items = append(r.items, p)
	return nil
}

func (r *memPlatformRepo) Update(ctx context.Context, p *entity.Platform) error {
	for i, it := range r.items {
		if it.ID == p.ID {
			r.items[i] = p
		}
	}
	return nil
}

func (r *memPlatformRepo) Delete(ctx context.Context, tenantID, id string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if !(it.ID == id && it.TenantID == tenantID) {
			out = append(out, it)
		}
	}
	r.items = out
	return nil
}

func (r *memPlatformRepo) GetByID(ctx context.Context, id string) (*entity.Platform, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memPlatformRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.Platform, error) {
	for _, it := range r.items {
		if it.TenantID == tenantID && it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memPlatformRepo) List(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	var out []*entity.Platform
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memPlatformRepo) ListEnabled(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	var out []*entity.Platform
	for _, it := range r.items {
		if it.TenantID == tenantID && it.Enabled {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memPlatformRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	for _, it := range r.items {
		if it.ID == id && it.TenantID == tenantID {
			it.Enabled = enabled
		}
	}
	return nil
}

func (r *memPlatformRepo) Reorder(ctx context.Context, tenantID string, orderedIDs []string) error {
	return nil
}

type memModelRepo struct {
	items []*entity.Model
	seq   int
}

func (r *memModelRepo) Create(ctx context.Context, m *entity.Model) error {
	if m.ID == "" {
		r.seq++
		m.ID = fmt.Sprintf("m%d", r.seq)
	}
	r.items = append(r.items, m)
	return nil
}

func (r *memModelRepo) Update(ctx context.Context, m *entity.Model) error {
	for i, it := range r.items {
		if it.ID == m.ID {
			r.items[i] = m
		}
	}
	return nil
}

func (r *memModelRepo) Delete(ctx context.Context, tenantID, id string) error { return nil }

func (r *memModelRepo) GetByID(ctx context.Context, id string) (*entity.Model, error) {
	for _, it := range r.items {
		if it.ID == id {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memModelRepo) GetByName(ctx context.Context, platformID, name string) (*entity.Model, error) {
	for _, it := range r.items {
		if it.PlatformID == platformID && it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memModelRepo) ListByPlatform(ctx context.Context, platformID string) ([]*entity.Model, error) {
	var out []*entity.Model
	for _, it := range r.items {
		if it.PlatformID == platformID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memModelRepo) ListEnabledByPlatforms(ctx context.Context, platformIDs []string) ([]*entity.Model, error) {
	return nil, nil
}

func (r *memModelRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return nil
}

type memSlotRepo struct {
	items []*entity.UsagePolicySlot
	seq   int
}

func (r *memSlotRepo) Create(ctx context.Context, s *entity.UsagePolicySlot) error {
	if s.ID == "" {
		r.seq++
		s.ID = fmt.Sprintf("s%d", r.seq)
	}
	r.items = append(r.items, s)
	return nil
}

func (r *memSlotRepo) Upsert(ctx context.Context, s *entity.UsagePolicySlot) error {
	for i, it := range r.items {
		if it.TenantID == s.TenantID && it.Name == s.Name {
			s.ID = it.ID
			r.items[i] = s
			return nil
		}
	}
	return r.Create(ctx, s)
}

func (r *memSlotRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.UsagePolicySlot, error) {
	for _, it := range r.items {
		if it.TenantID == tenantID && it.Name == name {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memSlotRepo) List(ctx context.Context, tenantID string) ([]*entity.UsagePolicySlot, error) {
	var out []*entity.UsagePolicySlot
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memSlotRepo) SetTarget(ctx context.Context, id string, platformID, modelID *string) error {
	for _, it := range r.items {
		if it.ID == id {
			it.PlatformID = platformID
			it.ModelID = modelID
		}
	}
	return nil
}

func (r *memSlotRepo) Delete(ctx context.Context, tenantID, id string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if !(it.ID == id && it.TenantID == tenantID) {
			out = append(out, it)
		}
	}
	r.items = out
	return nil
}

type memCredRepo struct {
	items []*entity.TenantCredentialOverride
}

func (r *memCredRepo) Upsert(ctx context.Context, c *entity.TenantCredentialOverride) error {
	for i, it := range r.items {
		if it.TenantID == c.TenantID && it.PlatformID == c.PlatformID {
			r.items[i] = c
			return nil
		}
	}
	r.items = append(r.items, c)
	return nil
}

func (r *memCredRepo) Get(ctx context.Context, tenantID, platformID string) (*entity.TenantCredentialOverride, error) {
	for _, it := range r.items {
		if it.TenantID == tenantID && it.PlatformID == platformID {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memCredRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.TenantCredentialOverride, error) {
	var out []*entity.TenantCredentialOverride
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memCredRepo) Delete(ctx context.Context, tenantID, platformID string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if !(it.TenantID == tenantID && it.PlatformID == platformID) {
			out = append(out, it)
		}
	}
	r.items = out
	return nil
}

type memBindingRepo struct {
	items []*entity.AgentBinding
}

func (r *memBindingRepo) Upsert(ctx context.Context, b *entity.AgentBinding) error {
	for i, it := range r.items {
		if it.TenantID == b.TenantID && it.AgentName == b.AgentName {
			r.items[i] = b
			return nil
		}
	}
	r.items = append(r.items, b)
	return nil
}

func (r *memBindingRepo) GetByName(ctx context.Context, tenantID, agentName string) (*entity.AgentBinding, error) {
	for _, it := range r.items {
		if it.TenantID == tenantID && it.AgentName == agentName {
			return it, nil
		}
	}
	return nil, nil
}

func (r *memBindingRepo) List(ctx context.Context, tenantID string) ([]*entity.AgentBinding, error) {
	var out []*entity.AgentBinding
	for _, it := range r.items {
		if it.TenantID == tenantID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (r *memBindingRepo) Delete(ctx context.Context, tenantID, agentName string) error {
	out := r.items[:0]
	for _, it := range r.items {
		if !(it.TenantID == tenantID && it.AgentName == agentName) {
			out = append(out, it)
		}
	}
	r.items = out
	return nil
}

var (
	_ repository.PlatformRepository     = (*memPlatformRepo)(nil)
	_ repository.ModelRepository        = (*memModelRepo)(nil)
	_ repository.SlotRepository         = (*memSlotRepo)(nil)
	_ repository.CredentialRepository   = (*memCredRepo)(nil)
	_ repository.AgentBindingRepository = (*memBindingRepo)(nil)
)

// env 管理服务测试环境
type env struct {
	platforms *memPlatformRepo
	models    *memModelRepo
	slots     *memSlotRepo
	creds     *memCredRepo
	bindings  *memBindingRepo
	cipher    *secret.Cipher

	platformSvc *PlatformService
	modelSvc    *ModelService
	credSvc     *CredentialService
	slotSvc     *SlotService
	agentSvc    *AgentService
}

func newEnv(t *testing.T) *env {
	t.Helper()

	platforms := &memPlatformRepo{}
	models := &memModelRepo{}
	slots := &memSlotRepo{}
	creds := &memCredRepo{}
	bindings := &memBindingRepo{}

	cipher, err := secret.New("test-pass")
	require.NoError(t, err)
	invalidator := catalog.NewInvalidator(catalog.NewCache(platforms, models, time.Minute), nil)

	return &env{
		platforms:   platforms,
		models:      models,
		slots:       slots,
		creds:       creds,
		bindings:    bindings,
		cipher:      cipher,
		platformSvc: NewPlatformService(platforms, cipher, invalidator),
		modelSvc:    NewModelService(platforms, models, invalidator),
		credSvc:     NewCredentialService(platforms, creds, cipher, invalidator),
		slotSvc:     NewSlotService(slots, platforms, models, invalidator),
		agentSvc:    NewAgentService(bindings, slots, platforms, models, invalidator),
	}
}

func (e *env) seedPlatform(tenantID string) *entity.Platform {
	p := &entity.Platform{TenantID: tenantID, Name: "openai", Provider: "openai", APIKey: "ENC:sealed", Enabled: true}
	_ = e.platforms.Create(context.Background(), p)
	return p
}

func (e *env) seedModel(tenantID, platformID string) *entity.Model {
	m := &entity.Model{TenantID: tenantID, PlatformID: platformID, Name: "gpt-4o", Capabilities: []string{"chat"}, Enabled: true}
	_ = e.models.Create(context.Background(), m)
	return m
}
