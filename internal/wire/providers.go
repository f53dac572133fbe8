// Package wire 提供依赖注入配置
package wire

import (
	"fmt"
	"os"

	"github.com/google/wire"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/catalog"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/routing"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/tokenizer"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/usage"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/config"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/service"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/messaging"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/persistence/postgres"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/persistence/redis"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/handler"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/router"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/utils"
)

// App 应用容器，聚合 HTTP 路由器与需要独立启动/停止的后台组件
type App struct {
	Router     *router.Router
	Catalog    *catalog.Cache
	Consumer   *messaging.Consumer
	UsageQuery *usage.Query
	PgClient   *postgres.Client
}

// BootstrapLayer 引导工具依赖容器
type BootstrapLayer struct {
	PgClient *postgres.Client
	Seeder   *admin.Seeder
}

// PostgresSet PostgreSQL 提供者集合
var PostgresSet = wire.NewSet(
	ProvidePostgresClient,
	postgres.NewTxManager,
	postgres.NewTenantContext,
	postgres.NewTenantRepository,
	postgres.NewPlatformRepository,
	postgres.NewModelRepository,
	postgres.NewCredentialRepository,
	postgres.NewSlotRepository,
	postgres.NewAgentBindingRepository,
	postgres.NewUsageLogRepository,
	wire.Bind(new(repository.Transactor), new(*postgres.TxManager)),
	wire.Bind(new(repository.TenantContextManager), new(*postgres.TenantContext)),
	wire.Bind(new(repository.TenantRepository), new(*postgres.TenantRepository)),
	wire.Bind(new(repository.PlatformRepository), new(*postgres.PlatformRepository)),
	wire.Bind(new(repository.ModelRepository), new(*postgres.ModelRepository)),
	wire.Bind(new(repository.CredentialRepository), new(*postgres.CredentialRepository)),
	wire.Bind(new(repository.SlotRepository), new(*postgres.SlotRepository)),
	wire.Bind(new(repository.AgentBindingRepository), new(*postgres.AgentBindingRepository)),
	wire.Bind(new(repository.UsageLogRepository), new(*postgres.UsageLogRepository)),
)

// RedisSet Redis 提供者集合
var RedisSet = wire.NewSet(
	ProvideRedisClient,
	redis.NewCache,
	redis.NewRateLimiter,
	wire.Bind(new(middleware.RateLimiter), new(*redis.RateLimiter)),
)

// MessagingSet 消息提供者集合
var MessagingSet = wire.NewSet(
	ProvideMessagingProducer,
	ProvideCatalogConsumer,
)

// EngineSet 路由引擎提供者集合
var EngineSet = wire.NewSet(
	ProvideCipher,
	ProvideCatalogCache,
	catalog.NewInvalidator,
	tokenizer.NewEstimator,
	routing.NewResolver,
	usage.NewRecorder,
	ProvideUsageQuery,
	wire.Bind(new(service.UsageRecorder), new(*usage.Recorder)),
	admin.NewPlatformService,
	admin.NewModelService,
	admin.NewCredentialService,
	admin.NewSlotService,
	admin.NewAgentService,
)

// RouterSet 路由器提供者集合
var RouterSet = wire.NewSet(
	ProvideJWTManager,
	ProvideAuthHandler,
	handler.NewHealthHandler,
	handler.NewTenantHandler,
	handler.NewPlatformHandler,
	handler.NewModelHandler,
	handler.NewCredentialHandler,
	handler.NewSlotHandler,
	handler.NewAgentHandler,
	handler.NewResolveHandler,
	handler.NewUsageHandler,
	wire.Struct(new(router.Handlers), "*"),
	wire.Struct(new(router.Deps), "*"),
	router.New,
)

// ProvidePostgresClient 提供 PostgreSQL 客户端
func ProvidePostgresClient(cfg *config.Config) (*postgres.Client, func(), error) {
	client, err := postgres.NewClient(&cfg.Database.Postgres, cfg.App.Env)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideRedisClient 提供 Redis 客户端
func ProvideRedisClient(cfg *config.Config) (*redis.Client, func(), error) {
	client, err := redis.NewClient(&cfg.Cache.Redis)
	if err != nil {
		return nil, nil, err
	}
	cleanup := func() {
		client.Close()
	}
	return client, cleanup, nil
}

// ProvideMessagingProducer 提供消息生产者
func ProvideMessagingProducer(redisClient *redis.Client, cfg *config.Config) *messaging.Producer {
	maxLen := cfg.Messaging.RedisStream.MaxLen
	if maxLen <= 0 {
		maxLen = 100000
	}
	return messaging.NewProducer(redisClient.Redis(), int64(maxLen))
}

// ProvideCatalogConsumer 提供目录失效广播消费者
func ProvideCatalogConsumer(redisClient *redis.Client, cfg *config.Config, cache *catalog.Cache) *messaging.Consumer {
	consumer := messaging.NewConsumer(redisClient.Redis(), messaging.ConsumerConfig{
		Stream:        messaging.StreamCatalogInvalidate,
		Group:         messaging.ConsumerGroupCatalogWatcher,
		ConsumerName:  hostnameConsumerName(),
		BlockTimeout:  cfg.Messaging.RedisStream.BlockTimeout,
		ClaimInterval: cfg.Messaging.RedisStream.ClaimInterval,
		RetryLimit:    cfg.Messaging.RedisStream.RetryLimit,
	})
	catalog.RegisterConsumer(consumer, cache)
	return consumer
}

func hostnameConsumerName() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "gateway"
	}
	return fmt.Sprintf("%s-%d", host, os.Getpid())
}

// ProvideCipher 提供凭证加密器
func ProvideCipher(cfg *config.Config) (*secret.Cipher, error) {
	return secret.New(cfg.Engine.SecretPassphrase)
}

// ProvideCatalogCache 提供目录快照缓存
func ProvideCatalogCache(cfg *config.Config, platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository) *catalog.Cache {
	return catalog.NewCache(platformRepo, modelRepo, cfg.Engine.CatalogTTL)
}

// ProvideUsageQuery 提供用量查询服务
func ProvideUsageQuery(cfg *config.Config, usageRepo repository.UsageLogRepository) *usage.Query {
	return usage.NewQuery(usageRepo, cfg.Engine.UsageRetention)
}

// ProvideJWTManager 提供 JWT 管理器
func ProvideJWTManager(cfg *config.Config) *utils.JWTManager {
	return utils.NewJWTManager(cfg.Security.JWT.Secret, cfg.Security.JWT.Issuer)
}

// ProvideAuthHandler 提供令牌签发处理器
func ProvideAuthHandler(cfg *config.Config, jwtManager *utils.JWTManager) *handler.AuthHandler {
	return handler.NewAuthHandler(jwtManager, cfg.Security.JWT.Expiration)
}
