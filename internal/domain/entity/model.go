// Package entity 定义领域实体
package entity

import (
	"time"

	"github.com/lib/pq"
)

// ModelCapability 模型能力标签
type ModelCapability string

const (
	CapabilityChat      ModelCapability = "chat"
	CapabilityEmbedding ModelCapability = "embedding"
	CapabilityReasoning ModelCapability = "reasoning"
	CapabilityVision    ModelCapability = "vision"
)

// Model 平台下的模型
type Model struct {
	ID            string         `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	PlatformID    string         `json:"platform_id" gorm:"type:uuid;index;not null"`
	TenantID      string         `json:"tenant_id" gorm:"type:varchar(64);index;not null"`
	Name          string         `json:"name" gorm:"type:varchar(128);not null"`
	DisplayName   string         `json:"display_name" gorm:"type:varchar(128)"`
	Capabilities  pq.StringArray `json:"capabilities" gorm:"type:text[]"`
	Enabled       bool           `json:"enabled" gorm:"not null;default:true"`
	DisplayOrder  int            `json:"display_order" gorm:"not null;default:0"`
	DefaultParams map[string]any `json:"default_params,omitempty" gorm:"type:jsonb;serializer:json"`
	MaxTokens     int            `json:"max_tokens" gorm:"not null;default:0"`
	Extra         map[string]any `json:"extra,omitempty" gorm:"type:jsonb;serializer:json"`
	CreatedAt     time.Time      `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time      `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Model) TableName() string {
	return "models"
}

// HasCapability 检查模型是否具备指定能力
func (m *Model) HasCapability(cap ModelCapability) bool {
	if cap == "" {
		return true
	}
	for _, c := range m.Capabilities {
		if c == string(cap) {
			return true
		}
	}
	return false
}

// IsEmbeddingOnly 是否只具备向量化能力
// 纯向量化模型不参与默认的对话类解析
func (m *Model) IsEmbeddingOnly() bool {
	if len(m.Capabilities) == 0 {
		return false
	}
	for _, c := range m.Capabilities {
		if c != string(CapabilityEmbedding) {
			return false
		}
	}
	return true
}
