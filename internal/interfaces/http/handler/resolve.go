// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/routing"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// ResolveHandler 路由解析处理器
type ResolveHandler struct {
	resolver *routing.Resolver
}

// NewResolveHandler 创建解析处理器
func NewResolveHandler(resolver *routing.Resolver) *ResolveHandler {
	return &ResolveHandler{
		resolver: resolver,
	}
}

// Resolve 解析路由意图
// @Summary 将路由意图解析为具体调用目标
// @Description 支持三种意图形态：槽位名、智能体名、显式平台+模型；返回平台、模型、可用凭证与合并后的调用参数
// @Tags Resolve
// @Accept json
// @Produce json
// @Param body body dto.ResolveRequest true "路由意图"
// @Success 200 {object} dto.Response[dto.ResolveResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /v1/resolve [post]
func (h *ResolveHandler) Resolve(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.ResolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}
	if !req.Valid() {
		dto.BadRequest(c, "exactly one of slot, agent, or platform_id+model_id is required")
		return
	}

	target, err := h.resolver.Resolve(ctx, tenantID, req.ToIntent())
	if err != nil {
		respondError(ctx, c, err, "failed to resolve route")
		return
	}

	dto.Success(c, dto.ToResolveResponse(target))
}
