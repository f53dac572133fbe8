package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/config"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/wire"
)

func main() {
	_ = godotenv.Load()

	fmt.Println("Starting system bootstrap...")

	// 1. 加载配置
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx := context.Background()

	// 2. 初始化依赖（仅 PostgreSQL 与种子写入器）
	layer, cleanup, err := wire.InitializeBootstrap(ctx, cfg)
	if err != nil {
		log.Fatalf("failed to initialize bootstrap layer: %v", err)
	}
	defer cleanup()

	// 3. 迁移表结构
	fmt.Println("Migrating schema...")
	if err := layer.PgClient.Migrate(
		&entity.Tenant{},
		&entity.Platform{},
		&entity.Model{},
		&entity.TenantCredentialOverride{},
		&entity.UsagePolicySlot{},
		&entity.AgentBinding{},
		&entity.UsageLogEntry{},
	); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	// 4. 写入系统租户、内置槽位与种子目录
	seedFile := cfg.Engine.SeedFile
	if env := os.Getenv("BOOTSTRAP_SEED_FILE"); env != "" {
		seedFile = env
	}
	if seedFile != "" {
		fmt.Printf("Seeding catalog from %s...\n", seedFile)
	}
	if err := layer.Seeder.Run(ctx, seedFile); err != nil {
		log.Fatalf("failed to seed catalog: %v", err)
	}

	fmt.Println("Bootstrap completed successfully.")
}
