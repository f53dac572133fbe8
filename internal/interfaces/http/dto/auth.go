// Package dto 提供 HTTP 层数据传输对象
package dto

// IssueTokenRequest 签发访问令牌请求
// 管理员为租户或业务服务签发 JWT
type IssueTokenRequest struct {
	TenantID   string `json:"tenant_id" binding:"required,max=64"`
	Subject    string `json:"subject" binding:"required,max=128"`
	Role       string `json:"role" binding:"required,oneof=admin tenant service"`
	TTLSeconds int    `json:"ttl_seconds" binding:"omitempty,min=60"`
}

// TokenResponse 令牌响应
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	ExpiresIn   int    `json:"expires_in"` // 秒
}
