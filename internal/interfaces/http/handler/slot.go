// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// SlotHandler 用途槽位处理器
type SlotHandler struct {
	slotSvc *admin.SlotService
}

// NewSlotHandler 创建槽位处理器
func NewSlotHandler(slotSvc *admin.SlotService) *SlotHandler {
	return &SlotHandler{
		slotSvc: slotSvc,
	}
}

// ListSlots 获取槽位列表
// @Summary 获取槽位列表
// @Description 获取当前租户可见的槽位，系统内置槽位始终包含
// @Tags Slots
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[[]dto.SlotResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/slots [get]
func (h *SlotHandler) ListSlots(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	slots, err := h.slotSvc.List(ctx, tenantID)
	if err != nil {
		respondError(ctx, c, err, "failed to list slots")
		return
	}

	dto.Success(c, dto.ToSlotResponses(slots))
}

// GetSlot 按名称获取槽位
// @Summary 按名称获取槽位
// @Description 租户自有槽位优先，同名时遮蔽系统内置槽位
// @Tags Slots
// @Accept json
// @Produce json
// @Param name path string true "槽位名"
// @Success 200 {object} dto.Response[dto.SlotResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/slots/{name} [get]
func (h *SlotHandler) GetSlot(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	slot, err := h.slotSvc.Get(ctx, tenantID, c.Param("name"))
	if err != nil {
		respondError(ctx, c, err, "failed to get slot")
		return
	}

	dto.Success(c, dto.ToSlotResponse(slot))
}

// CreateSlot 创建自定义槽位
// @Summary 创建自定义槽位
// @Tags Slots
// @Accept json
// @Produce json
// @Param body body dto.CreateSlotRequest true "槽位信息"
// @Success 201 {object} dto.Response[dto.SlotResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /v1/slots [post]
func (h *SlotHandler) CreateSlot(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.CreateSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	slot := req.ToSlot(tenantID)
	if err := h.slotSvc.Create(ctx, slot); err != nil {
		respondError(ctx, c, err, "failed to create slot")
		return
	}

	dto.Created(c, dto.ToSlotResponse(slot))
}

// SetSlotTarget 设置槽位指向
// @Summary 设置槽位指向的平台与模型
// @Description 平台与模型须同时给出，或同时为空表示清空指向
// @Tags Slots
// @Accept json
// @Produce json
// @Param name path string true "槽位名"
// @Param body body dto.SetSlotTargetRequest true "指向内容"
// @Success 204
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/slots/{name}/target [put]
func (h *SlotHandler) SetSlotTarget(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.SetSlotTargetRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	if err := h.slotSvc.SetTarget(ctx, tenantID, c.Param("name"), req.PlatformID, req.ModelID); err != nil {
		respondError(ctx, c, err, "failed to set slot target")
		return
	}

	dto.NoContent(c)
}

// DeleteSlot 删除自定义槽位
// @Summary 删除自定义槽位
// @Description 内置槽位受保护，删除请求返回 422
// @Tags Slots
// @Accept json
// @Produce json
// @Param name path string true "槽位名"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/slots/{name} [delete]
func (h *SlotHandler) DeleteSlot(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.slotSvc.Delete(ctx, tenantID, c.Param("name")); err != nil {
		respondError(ctx, c, err, "failed to delete slot")
		return
	}

	dto.NoContent(c)
}
