package admin

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
)

type memTenantRepo struct {
	items map[string]*entity.Tenant
}

func newMemTenantRepo() *memTenantRepo {
	return &memTenantRepo{items: make(map[string]*entity.Tenant)}
}

func (r *memTenantRepo) Create(ctx context.Context, t *entity.Tenant) error {
	r.items[t.ID] = t
	return nil
}

func (r *memTenantRepo) GetByID(ctx context.Context, id string) (*entity.Tenant, error) {
	return r.items[id], nil
}

func (r *memTenantRepo) GetBySlug(ctx context.Context, slug string) (*entity.Tenant, error) {
	for _, t := range r.items {
		if t.Slug == slug {
			return t, nil
		}
	}
	return nil, nil
}

func (r *memTenantRepo) Update(ctx context.Context, t *entity.Tenant) error {
	r.items[t.ID] = t
	return nil
}

func (r *memTenantRepo) Delete(ctx context.Context, id string) error {
	delete(r.items, id)
	return nil
}

func (r *memTenantRepo) List(ctx context.Context, pagination repository.Pagination) (*repository.PagedResult[*entity.Tenant], error) {
	return &repository.PagedResult[*entity.Tenant]{}, nil
}

func (r *memTenantRepo) UpdateStatus(ctx context.Context, id string, status entity.TenantStatus) error {
	if t, ok := r.items[id]; ok {
		t.Status = status
	}
	return nil
}

func (r *memTenantRepo) ExistsBySlug(ctx context.Context, slug string) (bool, error) {
	t, _ := r.GetBySlug(ctx, slug)
	return t != nil, nil
}

var _ repository.TenantRepository = (*memTenantRepo)(nil)

const seedYAML = `platforms:
  - name: openai
    provider: openai
    base_url: https://api.openai.com/v1/
    api_key: sk-seed-plain
    models:
      - name: gpt-4o
        capabilities: [chat, vision]
        max_tokens: 128000
  - name: anthropic
    provider: anthropic
    api_key: "{ANTHROPIC_API_KEY}"
    enabled: false
    models:
      - name: claude-sonnet-4
        capabilities: [chat, reasoning]
`

func writeSeedFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte(seedYAML), 0o644))
	return path
}

func newSeederEnv(t *testing.T) (*Seeder, *memTenantRepo, *memPlatformRepo, *memModelRepo, *memSlotRepo) {
	t.Helper()
	tenants := newMemTenantRepo()
	platforms := &memPlatformRepo{}
	models := &memModelRepo{}
	slots := &memSlotRepo{}
	cipher, err := secret.New("test-pass")
	require.NoError(t, err)
	return NewSeeder(tenants, platforms, models, slots, cipher), tenants, platforms, models, slots
}

func TestSeederRun(t *testing.T) {
	seeder, tenants, platforms, models, slots := newSeederEnv(t)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx, writeSeedFile(t)))

	system, err := tenants.GetByID(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	require.NotNil(t, system)

	builtins, err := slots.List(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	names := make(map[string]bool, len(builtins))
	for _, s := range builtins {
		assert.True(t, s.Builtin)
		names[s.Name] = true
	}
	assert.Equal(t, map[string]bool{"main": true, "fast": true, "reason": true}, names)

	openai, err := platforms.GetByName(ctx, entity.SystemTenantID, "openai")
	require.NoError(t, err)
	require.NotNil(t, openai)
	assert.True(t, openai.Enabled)
	assert.Equal(t, "https://api.openai.com/v1", openai.BaseURL)
	assert.True(t, secret.IsEncrypted(openai.APIKey))

	anthropic, err := platforms.GetByName(ctx, entity.SystemTenantID, "anthropic")
	require.NoError(t, err)
	require.NotNil(t, anthropic)
	assert.False(t, anthropic.Enabled)
	assert.Equal(t, "{ANTHROPIC_API_KEY}", anthropic.APIKey)

	gpt, err := models.GetByName(ctx, openai.ID, "gpt-4o")
	require.NoError(t, err)
	require.NotNil(t, gpt)
	assert.Equal(t, []string{"chat", "vision"}, []string(gpt.Capabilities))
	assert.Equal(t, 128000, gpt.MaxTokens)
}

func TestSeederIdempotent(t *testing.T) {
	seeder, _, platforms, models, slots := newSeederEnv(t)
	ctx := context.Background()
	path := writeSeedFile(t)

	require.NoError(t, seeder.Run(ctx, path))
	firstKey := mustPlatform(t, platforms, "openai").APIKey

	require.NoError(t, seeder.Run(ctx, path))

	all, err := platforms.List(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	// 既有密钥不被二次加密覆盖
	assert.Equal(t, firstKey, mustPlatform(t, platforms, "openai").APIKey)

	openai := mustPlatform(t, platforms, "openai")
	seeded, err := models.ListByPlatform(ctx, openai.ID)
	require.NoError(t, err)
	assert.Len(t, seeded, 1)

	builtins, err := slots.List(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	assert.Len(t, builtins, 3)
}

func TestSeederNoSeedFile(t *testing.T) {
	seeder, tenants, platforms, _, slots := newSeederEnv(t)
	ctx := context.Background()

	require.NoError(t, seeder.Run(ctx, ""))

	system, err := tenants.GetByID(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	assert.NotNil(t, system)

	builtins, err := slots.List(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	assert.Len(t, builtins, 3)

	all, err := platforms.List(ctx, entity.SystemTenantID)
	require.NoError(t, err)
	assert.Empty(t, all)
}

func mustPlatform(t *testing.T, repo *memPlatformRepo, name string) *entity.Platform {
	t.Helper()
	p, err := repo.GetByName(context.Background(), entity.SystemTenantID, name)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p
}
