// Package entity 定义领域实体
package entity

import "time"

// TenantCredentialOverride 租户对平台的凭证覆盖
// 解析时优先于平台自带凭证；Hidden 使平台对该租户整体不可见
type TenantCredentialOverride struct {
	ID         string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID   string    `json:"tenant_id" gorm:"type:varchar(64);not null;uniqueIndex:uq_cred_tenant_platform"`
	PlatformID string    `json:"platform_id" gorm:"type:uuid;not null;uniqueIndex:uq_cred_tenant_platform"`
	APIKey     string    `json:"-" gorm:"type:text"`
	BaseURL    string    `json:"base_url,omitempty" gorm:"type:varchar(512)"`
	Enabled    bool      `json:"enabled" gorm:"not null;default:true"`
	Hidden     bool      `json:"hidden" gorm:"not null;default:false"`
	CreatedAt  time.Time `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt  time.Time `json:"updated_at" gorm:"autoUpdateTime"`
}

func (TenantCredentialOverride) TableName() string {
	return "tenant_credential_overrides"
}
