package admin

import (
	"context"
	"fmt"

	"github.com/spf13/viper"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/secret"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

// SeedCatalog 引导种子文件结构
type SeedCatalog struct {
	Platforms []SeedPlatform `mapstructure:"platforms"`
}

// SeedPlatform 种子平台定义
// APIKey 支持三种写法：明文（落库前加密）、ENC: 密文（原样保留）、{ENV_VAR} 占位符（原样保留，解析时取环境变量）
type SeedPlatform struct {
	Name     string         `mapstructure:"name"`
	Provider string         `mapstructure:"provider"`
	BaseURL  string         `mapstructure:"base_url"`
	APIKey   string         `mapstructure:"api_key"`
	Enabled  *bool          `mapstructure:"enabled"`
	Extra    map[string]any `mapstructure:"extra"`
	Models   []SeedModel    `mapstructure:"models"`
}

// SeedModel 种子模型定义
type SeedModel struct {
	Name          string         `mapstructure:"name"`
	DisplayName   string         `mapstructure:"display_name"`
	Capabilities  []string       `mapstructure:"capabilities"`
	Enabled       *bool          `mapstructure:"enabled"`
	MaxTokens     int            `mapstructure:"max_tokens"`
	DefaultParams map[string]any `mapstructure:"default_params"`
}

// Seeder 引导期种子数据写入
type Seeder struct {
	tenantRepo   repository.TenantRepository
	platformRepo repository.PlatformRepository
	modelRepo    repository.ModelRepository
	slotRepo     repository.SlotRepository
	cipher       *secret.Cipher
}

// NewSeeder 创建种子写入器
func NewSeeder(tenantRepo repository.TenantRepository, platformRepo repository.PlatformRepository, modelRepo repository.ModelRepository, slotRepo repository.SlotRepository, cipher *secret.Cipher) *Seeder {
	return &Seeder{
		tenantRepo:   tenantRepo,
		platformRepo: platformRepo,
		modelRepo:    modelRepo,
		slotRepo:     slotRepo,
		cipher:       cipher,
	}
}

// Run 执行引导：系统租户、内置槽位、种子目录，全部幂等
func (s *Seeder) Run(ctx context.Context, seedFile string) error {
	if err := s.ensureSystemTenant(ctx); err != nil {
		return err
	}
	if err := s.ensureBuiltinSlots(ctx); err != nil {
		return err
	}
	if seedFile == "" {
		return nil
	}

	seed, err := LoadSeedCatalog(seedFile)
	if err != nil {
		return fmt.Errorf("failed to load seed catalog: %w", err)
	}
	return s.applySeed(ctx, seed)
}

// LoadSeedCatalog 读取种子目录文件
func LoadSeedCatalog(path string) (*SeedCatalog, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var seed SeedCatalog
	if err := v.Unmarshal(&seed); err != nil {
		return nil, err
	}
	return &seed, nil
}

func (s *Seeder) ensureSystemTenant(ctx context.Context) error {
	existing, err := s.tenantRepo.GetByID(ctx, entity.SystemTenantID)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}
	return s.tenantRepo.Create(ctx, entity.NewTenant(entity.SystemTenantID, "System", "system"))
}

func (s *Seeder) ensureBuiltinSlots(ctx context.Context) error {
	for _, slot := range entity.BuiltinSlots() {
		if err := s.slotRepo.Upsert(ctx, slot); err != nil {
			return err
		}
	}
	return nil
}

func (s *Seeder) applySeed(ctx context.Context, seed *SeedCatalog) error {
	for _, sp := range seed.Platforms {
		platform, err := s.seedPlatform(ctx, sp)
		if err != nil {
			return err
		}
		for _, sm := range sp.Models {
			if err := s.seedModel(ctx, platform, sm); err != nil {
				return err
			}
		}
	}
	return nil
}

// seedPlatform 写入种子平台，已存在时仅补充缺失的密钥
func (s *Seeder) seedPlatform(ctx context.Context, sp SeedPlatform) (*entity.Platform, error) {
	apiKey, err := s.sealSeedKey(sp.APIKey)
	if err != nil {
		return nil, err
	}

	existing, err := s.platformRepo.GetByName(ctx, entity.SystemTenantID, sp.Name)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		if existing.APIKey == "" && apiKey != "" {
			existing.APIKey = apiKey
			if err := s.platformRepo.Update(ctx, existing); err != nil {
				return nil, err
			}
		}
		return existing, nil
	}

	platform := &entity.Platform{
		TenantID: entity.SystemTenantID,
		Name:     sp.Name,
		Provider: sp.Provider,
		BaseURL:  entity.NormalizeBaseURL(sp.BaseURL),
		APIKey:   apiKey,
		Enabled:  sp.Enabled == nil || *sp.Enabled,
		Extra:    sp.Extra,
	}
	if err := s.platformRepo.Create(ctx, platform); err != nil {
		return nil, err
	}
	logger.Info(ctx, "seeded platform", "name", sp.Name, "provider", sp.Provider)
	return platform, nil
}

func (s *Seeder) seedModel(ctx context.Context, platform *entity.Platform, sm SeedModel) error {
	existing, err := s.modelRepo.GetByName(ctx, platform.ID, sm.Name)
	if err != nil {
		return err
	}
	if existing != nil {
		return nil
	}

	model := &entity.Model{
		PlatformID:    platform.ID,
		TenantID:      entity.SystemTenantID,
		Name:          sm.Name,
		DisplayName:   sm.DisplayName,
		Capabilities:  sm.Capabilities,
		Enabled:       sm.Enabled == nil || *sm.Enabled,
		MaxTokens:     sm.MaxTokens,
		DefaultParams: sm.DefaultParams,
	}
	if err := s.modelRepo.Create(ctx, model); err != nil {
		return err
	}
	logger.Info(ctx, "seeded model", "platform", platform.Name, "name", sm.Name)
	return nil
}

// sealSeedKey 明文加密、密文与占位符原样保留
func (s *Seeder) sealSeedKey(key string) (string, error) {
	if key == "" || secret.IsEncrypted(key) || secret.IsPlaceholder(key) {
		return key, nil
	}
	return s.cipher.Encrypt(key)
}
