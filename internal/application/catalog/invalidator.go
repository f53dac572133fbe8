// Package catalog 提供系统平台目录的内存快照缓存
package catalog

import (
	"context"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/messaging"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

// Invalidator 目录失效广播
// 管理端变更后本地立即失效，并通过 Redis Stream 通知其他实例
type Invalidator struct {
	cache    *Cache
	producer *messaging.Producer
}

// NewInvalidator 创建失效广播器
func NewInvalidator(cache *Cache, producer *messaging.Producer) *Invalidator {
	return &Invalidator{cache: cache, producer: producer}
}

// Invalidate 本地失效并广播
func (i *Invalidator) Invalidate(ctx context.Context, tenantID, reason string) {
	i.cache.Invalidate()

	if i.producer == nil {
		return
	}
	if _, err := i.producer.PublishCatalogInvalidation(ctx, tenantID, reason); err != nil {
		// 广播失败不影响本地结果，其他实例靠 TTL 兜底
		logger.Warn(ctx, "failed to broadcast catalog invalidation", "error", err.Error(), "reason", reason)
	}
}

// RegisterConsumer 在消费者上注册目录失效处理器
func RegisterConsumer(consumer *messaging.Consumer, cache *Cache) {
	consumer.RegisterHandler(messaging.MsgTypeCatalogInvalidate, func(ctx context.Context, msg *messaging.Message) error {
		var payload messaging.CatalogInvalidation
		if err := msg.UnmarshalPayload(&payload); err != nil {
			return err
		}
		cache.Invalidate()
		logger.Debug(ctx, "catalog invalidated by broadcast", "reason", payload.Reason)
		return nil
	})
}
