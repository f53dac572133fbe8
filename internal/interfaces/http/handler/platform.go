// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// PlatformHandler 平台处理器
type PlatformHandler struct {
	platformSvc *admin.PlatformService
}

// NewPlatformHandler 创建平台处理器
func NewPlatformHandler(platformSvc *admin.PlatformService) *PlatformHandler {
	return &PlatformHandler{
		platformSvc: platformSvc,
	}
}

// ListPlatforms 获取平台列表
// @Summary 获取平台列表
// @Description 获取当前租户的全部平台，按展示顺序排列
// @Tags Platforms
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[[]dto.PlatformResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/platforms [get]
func (h *PlatformHandler) ListPlatforms(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	platforms, err := h.platformSvc.List(ctx, tenantID)
	if err != nil {
		respondError(ctx, c, err, "failed to list platforms")
		return
	}

	dto.Success(c, dto.ToPlatformResponses(platforms))
}

// CreatePlatform 创建平台
// @Summary 创建平台
// @Description 为当前租户创建 LLM 提供商平台，明文密钥落库前会被加密
// @Tags Platforms
// @Accept json
// @Produce json
// @Param body body dto.CreatePlatformRequest true "平台信息"
// @Success 201 {object} dto.Response[dto.PlatformResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/platforms [post]
func (h *PlatformHandler) CreatePlatform(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.CreatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	platform := req.ToPlatform(tenantID)
	if err := h.platformSvc.Create(ctx, platform); err != nil {
		respondError(ctx, c, err, "failed to create platform")
		return
	}

	dto.Created(c, dto.ToPlatformResponse(platform))
}

// GetPlatform 获取平台详情
// @Summary 获取平台详情
// @Tags Platforms
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Success 200 {object} dto.Response[dto.PlatformResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/platforms/{id} [get]
func (h *PlatformHandler) GetPlatform(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	platform, err := h.platformSvc.Get(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "failed to get platform")
		return
	}

	dto.Success(c, dto.ToPlatformResponse(platform))
}

// UpdatePlatform 更新平台
// @Summary 更新平台
// @Description 更新平台信息，api_key 为空表示保留原值
// @Tags Platforms
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Param body body dto.UpdatePlatformRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.PlatformResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/platforms/{id} [put]
func (h *PlatformHandler) UpdatePlatform(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdatePlatformRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	platform := (&dto.CreatePlatformRequest{
		Name:     req.Name,
		Provider: req.Provider,
		BaseURL:  req.BaseURL,
		APIKey:   req.APIKey,
		Enabled:  req.Enabled,
		Extra:    req.Extra,
	}).ToPlatform(tenantID)
	platform.ID = c.Param("id")

	if err := h.platformSvc.Update(ctx, platform); err != nil {
		respondError(ctx, c, err, "failed to update platform")
		return
	}

	dto.Success(c, dto.ToPlatformResponse(platform))
}

// SetPlatformEnabled 启用/停用平台
// @Summary 启用/停用平台
// @Description 软停用平台，解析时即使被直接引用也不放行
// @Tags Platforms
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Param body body dto.SetEnabledRequest true "启停状态"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/platforms/{id}/enabled [put]
func (h *PlatformHandler) SetPlatformEnabled(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.platformSvc.SetEnabled(ctx, tenantID, c.Param("id"), *req.Enabled); err != nil {
		respondError(ctx, c, err, "failed to set platform enabled")
		return
	}

	dto.NoContent(c)
}

// ReorderPlatforms 重排平台
// @Summary 重排平台展示顺序
// @Tags Platforms
// @Accept json
// @Produce json
// @Param body body dto.ReorderRequest true "排序后的平台 ID 列表"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/platforms/reorder [post]
func (h *PlatformHandler) ReorderPlatforms(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.ReorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.platformSvc.Reorder(ctx, tenantID, req.OrderedIDs); err != nil {
		respondError(ctx, c, err, "failed to reorder platforms")
		return
	}

	dto.NoContent(c)
}

// DeletePlatform 删除平台
// @Summary 删除平台
// @Tags Platforms
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/platforms/{id} [delete]
func (h *PlatformHandler) DeletePlatform(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.platformSvc.Delete(ctx, tenantID, c.Param("id")); err != nil {
		respondError(ctx, c, err, "failed to delete platform")
		return
	}

	dto.NoContent(c)
}
