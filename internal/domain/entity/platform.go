// Package entity 定义领域实体
package entity

import (
	"strings"
	"time"
)

// SystemTenantID 系统租户 ID，系统级平台/模型/槽位归属于它
const SystemTenantID = "-1"

// Platform LLM 提供商平台
type Platform struct {
	ID           string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID     string         `json:"tenant_id" gorm:"type:varchar(64);index;not null;uniqueIndex:uq_platform_tenant_name"`
	Name         string         `json:"name" gorm:"type:varchar(128);not null;uniqueIndex:uq_platform_tenant_name"`
	Provider     string         `json:"provider" gorm:"type:varchar(32);not null"`
	BaseURL      string         `json:"base_url" gorm:"type:varchar(512)"`
	APIKey       string         `json:"-" gorm:"type:text"`
	Enabled      bool           `json:"enabled" gorm:"not null;default:true"`
	DisplayOrder int            `json:"display_order" gorm:"not null;default:0"`
	Extra        map[string]any `json:"extra,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt    time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time      `json:"updated_at" gorm:"autoUpdateTime"`

	Models []*Model `json:"models,omitempty" gorm:"-"`
}

func (Platform) TableName() string {
	return "platforms"
}

// IsSystem 是否系统级平台
func (p *Platform) IsSystem() bool {
	return p.TenantID == SystemTenantID
}

// NormalizeBaseURL 规范化基础地址，去除末尾斜杠
func NormalizeBaseURL(raw string) string {
	return strings.TrimRight(strings.TrimSpace(raw), "/")
}
