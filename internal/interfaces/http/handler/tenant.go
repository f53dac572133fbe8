// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/entity"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"

	"github.com/gin-gonic/gin"
)

// TenantHandler 租户处理器
type TenantHandler struct {
	tenantRepo repository.TenantRepository
}

// NewTenantHandler 创建租户处理器
func NewTenantHandler(tenantRepo repository.TenantRepository) *TenantHandler {
	return &TenantHandler{
		tenantRepo: tenantRepo,
	}
}

// ListTenants 获取租户列表（仅管理员）
// @Summary 获取租户列表
// @Tags Tenants
// @Accept json
// @Produce json
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]dto.TenantResponse]
// @Failure 403 {object} dto.ErrorResponse
// @Router /v1/tenants [get]
func (h *TenantHandler) ListTenants(c *gin.Context) {
	ctx := c.Request.Context()
	pageReq := dto.BindPage(c)

	result, err := h.tenantRepo.List(ctx, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		logger.Error(ctx, "failed to list tenants", err)
		dto.InternalError(c, "failed to list tenants")
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, dto.ToTenantResponses(result.Items), meta)
}

// CreateTenant 创建租户（仅管理员）
// @Summary 创建租户
// @Tags Tenants
// @Accept json
// @Produce json
// @Param body body dto.CreateTenantRequest true "租户信息"
// @Success 201 {object} dto.Response[dto.TenantResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/tenants [post]
func (h *TenantHandler) CreateTenant(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	exists, err := h.tenantRepo.ExistsBySlug(ctx, req.Slug)
	if err != nil {
		logger.Error(ctx, "failed to check tenant slug", err)
		dto.InternalError(c, "failed to create tenant")
		return
	}
	if exists {
		dto.Conflict(c, "tenant slug already exists")
		return
	}

	tenant := entity.NewTenant(req.ID, req.Name, req.Slug)
	if err := h.tenantRepo.Create(ctx, tenant); err != nil {
		logger.Error(ctx, "failed to create tenant", err)
		dto.InternalError(c, "failed to create tenant")
		return
	}

	dto.Created(c, dto.ToTenantResponse(tenant))
}

// GetCurrentTenant 获取当前租户信息
// @Summary 获取当前租户资料
// @Tags Tenants
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[dto.TenantResponse]
// @Failure 401 {object} dto.ErrorResponse
// @Router /v1/tenants/current [get]
func (h *TenantHandler) GetCurrentTenant(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	tenant, err := h.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		logger.Error(ctx, "failed to get tenant", err)
		dto.InternalError(c, "failed to get tenant info")
		return
	}
	if tenant == nil {
		dto.NotFound(c, "tenant not found")
		return
	}

	dto.Success(c, dto.ToTenantResponse(tenant))
}

// UpdateCurrentTenant 更新当前租户信息
// @Summary 更新当前租户资料
// @Tags Tenants
// @Accept json
// @Produce json
// @Param body body dto.UpdateTenantRequest true "更新内容"
// @Success 200 {object} dto.Response[dto.TenantResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/tenants/current [put]
func (h *TenantHandler) UpdateCurrentTenant(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UpdateTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	tenant, err := h.tenantRepo.GetByID(ctx, tenantID)
	if err != nil {
		logger.Error(ctx, "failed to get tenant", err)
		dto.InternalError(c, "failed to get tenant info")
		return
	}
	if tenant == nil {
		dto.NotFound(c, "tenant not found")
		return
	}

	req.ApplyToTenant(tenant)
	if err := h.tenantRepo.Update(ctx, tenant); err != nil {
		logger.Error(ctx, "failed to update tenant", err)
		dto.InternalError(c, "failed to update tenant info")
		return
	}

	dto.Success(c, dto.ToTenantResponse(tenant))
}

// SuspendTenant 停用租户（仅管理员）
// @Summary 停用租户
// @Tags Tenants
// @Accept json
// @Produce json
// @Param id path string true "租户 ID"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/tenants/{id}/suspend [post]
func (h *TenantHandler) SuspendTenant(c *gin.Context) {
	ctx := c.Request.Context()

	if err := h.tenantRepo.UpdateStatus(ctx, c.Param("id"), entity.TenantStatusSuspended); err != nil {
		logger.Error(ctx, "failed to suspend tenant", err)
		dto.InternalError(c, "failed to suspend tenant")
		return
	}

	dto.NoContent(c)
}
