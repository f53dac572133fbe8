// Package entity 定义领域实体
package entity

import "time"

// AgentBinding 智能体到路由目标的绑定
// 两种形态二选一：引用槽位 (SlotName) 或直接指定 (PlatformID, ModelID)
type AgentBinding struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   string    `json:"tenant_id" gorm:"type:varchar(64);not null;uniqueIndex:uq_agent_tenant_name"`
	AgentName  string    `json:"agent_name" gorm:"type:varchar(128);not null;uniqueIndex:uq_agent_tenant_name"`
	SlotName   string    `json:"slot_name,omitempty" gorm:"type:varchar(64)"`
	PlatformID string    `json:"platform_id,omitempty" gorm:"type:uuid"`
	ModelID    string    `json:"model_id,omitempty" gorm:"type:uuid"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (AgentBinding) TableName() string {
	return "agent_bindings"
}

// IsSlotRef 是否为槽位引用形态
func (b *AgentBinding) IsSlotRef() bool {
	return b.SlotName != ""
}

// IsDirect 是否为直接指定形态
func (b *AgentBinding) IsDirect() bool {
	return b.PlatformID != "" && b.ModelID != ""
}

// Valid 绑定形态是否合法（两种形态恰好取其一）
func (b *AgentBinding) Valid() bool {
	return b.IsSlotRef() != b.IsDirect()
}
