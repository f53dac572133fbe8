// Package catalog 提供系统平台目录的内存快照缓存
package catalog

import (
	"context"
	"sync"
	"time"

	"go.opentelemetry.io/otel"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/metrics"
)

var tracer = otel.Tracer("catalog")

// Snapshot 目录快照：已启用的系统平台及其已启用模型，均按展示顺序排列
type Snapshot struct {
	Platforms []*entity.Platform
	LoadedAt  time.Time
}

// Cache 带 TTL 的目录缓存
// 读多写少，双重检查锁：读路径仅加读锁，过期后由单个写者重建
type Cache struct {
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	ttl          time.Duration

	mu       sync.RWMutex
	snapshot *Snapshot
	loadedAt time.Time
}

// NewCache 创建目录缓存
func NewCache(platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &Cache{
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		ttl:          ttl,
	}
}

// Snapshot 获取目录快照，过期时重新加载
func (c *Cache) Snapshot(ctx context.Context) (*Snapshot, error) {
	ctx, span := tracer.Start(ctx, "catalog.Cache.Snapshot")
	defer span.End()

	// 快路径：读锁下检查有效性
	c.mu.RLock()
	if c.snapshot != nil && time.Since(c.loadedAt) < c.ttl {
		snap := c.snapshot
		c.mu.RUnlock()
		metrics.CatalogCacheHits.Inc()
		return snap, nil
	}
	c.mu.RUnlock()

	// 慢路径：写锁下二次检查后重建
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.snapshot != nil && time.Since(c.loadedAt) < c.ttl {
		metrics.CatalogCacheHits.Inc()
		return c.snapshot, nil
	}

	snap, err := c.load(ctx)
	if err != nil {
		// 加载失败时沿用旧快照，避免目录短暂不可用
		if c.snapshot != nil {
			logger.Warn(ctx, "catalog reload failed, serving stale snapshot", "error", err.Error())
			return c.snapshot, nil
		}
		return nil, err
	}

	c.snapshot = snap
	c.loadedAt = snap.LoadedAt
	metrics.CatalogCacheReloads.Inc()
	return snap, nil
}

// load 从仓储构建完整快照
func (c *Cache) load(ctx context.Context) (*Snapshot, error) {
	platforms, err := c.platformRepo.ListEnabled(ctx, entity.SystemTenantID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, 0, len(platforms))
	for _, p := range platforms {
		ids = append(ids, p.ID)
	}

	models, err := c.modelRepo.ListEnabledByPlatforms(ctx, ids)
	if err != nil {
		return nil, err
	}

	byPlatform := make(map[string][]*entity.Model, len(platforms))
	for _, m := range models {
		byPlatform[m.PlatformID] = append(byPlatform[m.PlatformID], m)
	}
	for _, p := range platforms {
		p.Models = byPlatform[p.ID]
	}

	return &Snapshot{
		Platforms: platforms,
		LoadedAt:  time.Now(),
	}, nil
}

// Invalidate 主动失效，下一次读取将重新加载
func (c *Cache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loadedAt = time.Time{}
}
