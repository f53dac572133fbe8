// Package entity 定义领域实体
package entity

import (
	"time"
)

// TenantStatus 租户状态
type TenantStatus string

const (
	TenantStatusActive    TenantStatus = "active"
	TenantStatusSuspended TenantStatus = "suspended"
	TenantStatusDeleted   TenantStatus = "deleted"
)

// Tenant 租户实体
type Tenant struct {
	ID        string       `json:"id" gorm:"type:varchar(64);primaryKey"`
	Name      string       `json:"name" gorm:"type:varchar(128);not null"`
	Slug      string       `json:"slug" gorm:"type:varchar(64);uniqueIndex"`
	Status    TenantStatus `json:"status" gorm:"type:varchar(32);not null;default:'active'"`
	CreatedAt time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

func (Tenant) TableName() string {
	return "tenants"
}

// NewTenant 创建新租户
func NewTenant(id, name, slug string) *Tenant {
	now := time.Now()
	return &Tenant{
		ID:        id,
		Name:      name,
		Slug:      slug,
		Status:    TenantStatusActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// IsActive 检查租户是否活跃
func (t *Tenant) IsActive() bool {
	return t.Status == TenantStatusActive
}
