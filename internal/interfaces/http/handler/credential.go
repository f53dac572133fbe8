// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// CredentialHandler 租户凭证覆盖处理器
type CredentialHandler struct {
	credSvc *admin.CredentialService
}

// NewCredentialHandler 创建凭证覆盖处理器
func NewCredentialHandler(credSvc *admin.CredentialService) *CredentialHandler {
	return &CredentialHandler{
		credSvc: credSvc,
	}
}

// ListCredentials 获取凭证覆盖列表
// @Summary 获取当前租户的凭证覆盖列表
// @Tags Credentials
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[[]dto.CredentialResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/credentials [get]
func (h *CredentialHandler) ListCredentials(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	creds, err := h.credSvc.List(ctx, tenantID)
	if err != nil {
		respondError(ctx, c, err, "failed to list credentials")
		return
	}

	dto.Success(c, dto.ToCredentialResponses(creds))
}

// UpsertCredential 写入凭证覆盖
// @Summary 写入租户对平台的凭证覆盖
// @Description 覆盖后解析时优先于平台自带凭证，api_key 为空表示保留原值
// @Tags Credentials
// @Accept json
// @Produce json
// @Param pid path string true "平台 ID"
// @Param body body dto.UpsertCredentialRequest true "凭证内容"
// @Success 200 {object} dto.Response[dto.CredentialResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/credentials/{pid} [put]
func (h *CredentialHandler) UpsertCredential(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpsertCredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	cred := req.ToCredential(tenantID, c.Param("pid"))
	if err := h.credSvc.Upsert(ctx, cred); err != nil {
		respondError(ctx, c, err, "failed to upsert credential")
		return
	}

	dto.Success(c, dto.ToCredentialResponse(cred))
}

// GetCredential 获取凭证覆盖
// @Summary 获取租户对平台的凭证覆盖
// @Tags Credentials
// @Accept json
// @Produce json
// @Param pid path string true "平台 ID"
// @Success 200 {object} dto.Response[dto.CredentialResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/credentials/{pid} [get]
func (h *CredentialHandler) GetCredential(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	cred, err := h.credSvc.Get(ctx, tenantID, c.Param("pid"))
	if err != nil {
		respondError(ctx, c, err, "failed to get credential")
		return
	}
	if cred == nil {
		dto.NotFound(c, "credential override not found")
		return
	}

	dto.Success(c, dto.ToCredentialResponse(cred))
}

// DeleteCredential 删除凭证覆盖
// @Summary 删除租户对平台的凭证覆盖
// @Tags Credentials
// @Accept json
// @Produce json
// @Param pid path string true "平台 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/credentials/{pid} [delete]
func (h *CredentialHandler) DeleteCredential(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.credSvc.Delete(ctx, tenantID, c.Param("pid")); err != nil {
		respondError(ctx, c, err, "failed to delete credential")
		return
	}

	dto.NoContent(c)
}
