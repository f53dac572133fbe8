// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// ModelHandler 模型处理器
type ModelHandler struct {
	modelSvc *admin.ModelService
}

// NewModelHandler 创建模型处理器
func NewModelHandler(modelSvc *admin.ModelService) *ModelHandler {
	return &ModelHandler{
		modelSvc: modelSvc,
	}
}

// ListModels 获取平台下模型列表
// @Summary 获取平台下模型列表
// @Tags Models
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Success 200 {object} dto.Response[[]dto.ModelResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/platforms/{id}/models [get]
func (h *ModelHandler) ListModels(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	models, err := h.modelSvc.ListByPlatform(ctx, tenantID, c.Param("id"))
	if err != nil {
		respondError(ctx, c, err, "failed to list models")
		return
	}

	dto.Success(c, dto.ToModelResponses(models))
}

// CreateModel 在平台下创建模型
// @Summary 创建模型
// @Tags Models
// @Accept json
// @Produce json
// @Param id path string true "平台 ID"
// @Param body body dto.CreateModelRequest true "模型信息"
// @Success 201 {object} dto.Response[dto.ModelResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/platforms/{id}/models [post]
func (h *ModelHandler) CreateModel(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.CreateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	model := req.ToModel(tenantID, c.Param("id"))
	if err := h.modelSvc.Create(ctx, model); err != nil {
		respondError(ctx, c, err, "failed to create model")
		return
	}

	dto.Created(c, dto.ToModelResponse(model))
}

// UpdateModel 更新模型
// @Summary 更新模型
// @Tags Models
// @Accept json
// @Produce json
// @Param mid path string true "模型 ID"
// @Param body body dto.UpdateModelRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.ModelResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/models/{mid} [put]
func (h *ModelHandler) UpdateModel(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdateModelRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	model := (&dto.CreateModelRequest{
		Name:          req.Name,
		DisplayName:   req.DisplayName,
		Capabilities:  req.Capabilities,
		Enabled:       req.Enabled,
		MaxTokens:     req.MaxTokens,
		DefaultParams: req.DefaultParams,
		Extra:         req.Extra,
	}).ToModel(tenantID, "")
	model.ID = c.Param("mid")

	if err := h.modelSvc.Update(ctx, model); err != nil {
		respondError(ctx, c, err, "failed to update model")
		return
	}

	dto.Success(c, dto.ToModelResponse(model))
}

// SetModelEnabled 启用/停用模型
// @Summary 启用/停用模型
// @Tags Models
// @Accept json
// @Produce json
// @Param mid path string true "模型 ID"
// @Param body body dto.SetEnabledRequest true "启停状态"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/models/{mid}/enabled [put]
func (h *ModelHandler) SetModelEnabled(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.SetEnabledRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.modelSvc.SetEnabled(ctx, tenantID, c.Param("mid"), *req.Enabled); err != nil {
		respondError(ctx, c, err, "failed to set model enabled")
		return
	}

	dto.NoContent(c)
}

// DeleteModel 删除模型
// @Summary 删除模型
// @Tags Models
// @Accept json
// @Produce json
// @Param mid path string true "模型 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/models/{mid} [delete]
func (h *ModelHandler) DeleteModel(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.modelSvc.Delete(ctx, tenantID, c.Param("mid")); err != nil {
		respondError(ctx, c, err, "failed to delete model")
		return
	}

	dto.NoContent(c)
}
