// Package entity 定义领域实体
package entity

import "time"

// 内置槽位名称
const (
	SlotMain   = "main"
	SlotFast   = "fast"
	SlotReason = "reason"
)

// UsagePolicySlot 用途槽位，将业务用途映射到具体平台与模型
type UsagePolicySlot struct {
	ID          string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID    string    `json:"tenant_id" gorm:"type:varchar(64);not null;uniqueIndex:uq_slot_tenant_name"`
	Name        string    `json:"name" gorm:"type:varchar(64);not null;uniqueIndex:uq_slot_tenant_name"`
	DisplayName string    `json:"display_name" gorm:"type:varchar(128)"`
	PlatformID  *string   `json:"platform_id,omitempty" gorm:"type:uuid"`
	ModelID     *string   `json:"model_id,omitempty" gorm:"type:uuid"`
	Builtin     bool      `json:"builtin" gorm:"not null;default:false"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt   time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (UsagePolicySlot) TableName() string {
	return "usage_policy_slots"
}

// HasTarget 槽位是否已指向具体平台与模型
func (s *UsagePolicySlot) HasTarget() bool {
	return s.PlatformID != nil && *s.PlatformID != "" && s.ModelID != nil && *s.ModelID != ""
}

// BuiltinSlots 系统内置槽位定义
func BuiltinSlots() []*UsagePolicySlot {
	return []*UsagePolicySlot{
		{TenantID: SystemTenantID, Name: SlotMain, DisplayName: "主模型", Builtin: true},
		{TenantID: SystemTenantID, Name: SlotFast, DisplayName: "快速模型", Builtin: true},
		{TenantID: SystemTenantID, Name: SlotReason, DisplayName: "推理模型", Builtin: true},
	}
}
