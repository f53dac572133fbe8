// Package handler 提供 HTTP 请求处理器
package handler

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/utils"
)

// AuthHandler 令牌签发处理器
type AuthHandler struct {
	jwtManager *utils.JWTManager
	defaultTTL time.Duration
}

// NewAuthHandler 创建令牌签发处理器
func NewAuthHandler(jwtManager *utils.JWTManager, defaultTTL time.Duration) *AuthHandler {
	if defaultTTL <= 0 {
		defaultTTL = 24 * time.Hour
	}
	return &AuthHandler{
		jwtManager: jwtManager,
		defaultTTL: defaultTTL,
	}
}

// IssueToken 签发访问令牌（仅管理员）
// @Summary 为租户或业务服务签发 JWT
// @Tags Auth
// @Accept json
// @Produce json
// @Param body body dto.IssueTokenRequest true "签发内容"
// @Success 200 {object} dto.Response[dto.TokenResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/auth/tokens [post]
func (h *AuthHandler) IssueToken(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.IssueTokenRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	ttl := h.defaultTTL
	if req.TTLSeconds > 0 {
		ttl = time.Duration(req.TTLSeconds) * time.Second
	}

	token, err := h.jwtManager.GenerateToken(req.TenantID, req.Subject, req.Role, ttl)
	if err != nil {
		logger.Error(ctx, "failed to issue token", err)
		dto.InternalError(c, "failed to issue token")
		return
	}

	dto.Success(c, dto.TokenResponse{
		AccessToken: token,
		ExpiresIn:   int(ttl.Seconds()),
	})
}
