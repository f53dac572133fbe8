package catalog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
)

type stubPlatformRepo struct {
	platforms []*entity.Platform
	err       error
	calls     int
}

func (s *stubPlatformRepo) Create(ctx context.Context, p *entity.Platform) error     { return nil }
func (s *stubPlatformRepo) Update(ctx context.Context, p *entity.Platform) error     { return nil }
func (s *stubPlatformRepo) Delete(ctx context.Context, tenantID, id string) error    { return nil }
func (s *stubPlatformRepo) GetByID(ctx context.Context, id string) (*entity.Platform, error) {
	return nil, nil
}

func (s *stubPlatformRepo) GetByName(ctx context.Context, tenantID, name string) (*entity.Platform, error) {
	return nil, nil
}

func (s *stubPlatformRepo) List(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	return nil, nil
}

func (s *stubPlatformRepo) ListEnabled(ctx context.Context, tenantID string) ([]*entity.Platform, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	return s.platforms, nil
}

func (s *stubPlatformRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return nil
}

func (s *stubPlatformRepo) Reorder(ctx context.Context, tenantID string, orderedIDs []string) error {
	return nil
}

type stubModelRepo struct {
	models []*entity.Model
}

func (s *stubModelRepo) Create(ctx context.Context, m *entity.Model) error     { return nil }
func (s *stubModelRepo) Update(ctx context.Context, m *entity.Model) error     { return nil }
func (s *stubModelRepo) Delete(ctx context.Context, tenantID, id string) error { return nil }
func (s *stubModelRepo) GetByID(ctx context.Context, id string) (*entity.Model, error) {
	return nil, nil
}

func (s *stubModelRepo) GetByName(ctx context.Context, platformID, name string) (*entity.Model, error) {
	return nil, nil
}

func (s *stubModelRepo) ListByPlatform(ctx context.Context, platformID string) ([]*entity.Model, error) {
	return nil, nil
}

func (s *stubModelRepo) ListEnabledByPlatforms(ctx context.Context, platformIDs []string) ([]*entity.Model, error) {
	return s.models, nil
}

func (s *stubModelRepo) SetEnabled(ctx context.Context, tenantID, id string, enabled bool) error {
	return nil
}

func TestSnapshotGroupsModelsByPlatform(t *testing.T) {
	platforms := &stubPlatformRepo{platforms: []*entity.Platform{
		{ID: "p1", TenantID: entity.SystemTenantID, Name: "openai", Enabled: true},
		{ID: "p2", TenantID: entity.SystemTenantID, Name: "anthropic", Enabled: true},
	}}
	models := &stubModelRepo{models: []*entity.Model{
		{ID: "m1", PlatformID: "p1", Name: "gpt-4o", Enabled: true},
		{ID: "m2", PlatformID: "p2", Name: "claude-sonnet", Enabled: true},
		{ID: "m3", PlatformID: "p1", Name: "gpt-4o-mini", Enabled: true},
	}}

	cache := NewCache(platforms, models, time.Minute)
	snap, err := cache.Snapshot(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.Platforms, 2)
	assert.Len(t, snap.Platforms[0].Models, 2)
	assert.Len(t, snap.Platforms[1].Models, 1)
	assert.Equal(t, "gpt-4o", snap.Platforms[0].Models[0].Name)
}

func TestSnapshotCachedWithinTTL(t *testing.T) {
	platforms := &stubPlatformRepo{platforms: []*entity.Platform{
		{ID: "p1", TenantID: entity.SystemTenantID, Enabled: true},
	}}
	cache := NewCache(platforms, &stubModelRepo{}, time.Minute)
	ctx := context.Background()

	first, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	second, err := cache.Snapshot(ctx)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, platforms.calls)
}

func TestInvalidateForcesReload(t *testing.T) {
	platforms := &stubPlatformRepo{platforms: []*entity.Platform{
		{ID: "p1", TenantID: entity.SystemTenantID, Enabled: true},
	}}
	cache := NewCache(platforms, &stubModelRepo{}, time.Minute)
	ctx := context.Background()

	_, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	cache.Invalidate()
	_, err = cache.Snapshot(ctx)
	require.NoError(t, err)

	assert.Equal(t, 2, platforms.calls)
}

func TestSnapshotServesStaleOnReloadFailure(t *testing.T) {
	platforms := &stubPlatformRepo{platforms: []*entity.Platform{
		{ID: "p1", TenantID: entity.SystemTenantID, Enabled: true},
	}}
	cache := NewCache(platforms, &stubModelRepo{}, time.Minute)
	ctx := context.Background()

	first, err := cache.Snapshot(ctx)
	require.NoError(t, err)

	// 失效后重载失败，沿用旧快照
	cache.Invalidate()
	platforms.err = errors.New("db down")
	stale, err := cache.Snapshot(ctx)
	require.NoError(t, err)
	assert.Same(t, first, stale)
}

func TestSnapshotFailsWithoutPrior(t *testing.T) {
	platforms := &stubPlatformRepo{err: errors.New("db down")}
	cache := NewCache(platforms, &stubModelRepo{}, time.Minute)

	_, err := cache.Snapshot(context.Background())
	assert.Error(t, err)
}
