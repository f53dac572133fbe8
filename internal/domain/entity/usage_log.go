// Package entity 定义领域实体
package entity

import "time"

// UsageLogEntry 一次 LLM 调用的用量日志，只追加不修改
type UsageLogEntry struct {
	ID               string    `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	TenantID         string    `json:"tenant_id" gorm:"type:varchar(64);index;not null"`
	CorrelationID    string    `json:"correlation_id" gorm:"type:varchar(64);index"`
	AgentName        string    `json:"agent_name,omitempty" gorm:"type:varchar(128);index"`
	Provider         string    `json:"provider" gorm:"type:varchar(32);not null"`
	PlatformID       string    `json:"platform_id,omitempty" gorm:"type:uuid"`
	Model            string    `json:"model" gorm:"type:varchar(128);not null"`
	PromptTokens     int       `json:"prompt_tokens" gorm:"not null;default:0"`
	CompletionTokens int       `json:"completion_tokens" gorm:"not null;default:0"`
	TotalTokens      int       `json:"total_tokens" gorm:"not null;default:0"`
	Estimated        bool      `json:"estimated" gorm:"not null;default:false"`
	Success          bool      `json:"success" gorm:"not null;default:true"`
	ErrorMessage     string    `json:"error_message,omitempty" gorm:"type:text"`
	LatencyMs        int       `json:"latency_ms" gorm:"not null;default:0"`
	CreatedAt        time.Time `json:"created_at" gorm:"autoCreateTime;index"`
}

func (UsageLogEntry) TableName() string {
	return "usage_log_entries"
}
