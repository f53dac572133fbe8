// Package handler 提供 HTTP 请求处理器
package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/admin"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// AgentHandler 智能体绑定处理器
type AgentHandler struct {
	agentSvc *admin.AgentService
}

// NewAgentHandler 创建绑定处理器
func NewAgentHandler(agentSvc *admin.AgentService) *AgentHandler {
	return &AgentHandler{
		agentSvc: agentSvc,
	}
}

// ListAgents 获取绑定列表
// @Summary 获取当前租户的智能体绑定列表
// @Tags Agents
// @Accept json
// @Produce json
// @Success 200 {object} dto.Response[[]dto.AgentBindingResponse]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/agents [get]
func (h *AgentHandler) ListAgents(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	bindings, err := h.agentSvc.List(ctx, tenantID)
	if err != nil {
		respondError(ctx, c, err, "failed to list agent bindings")
		return
	}

	dto.Success(c, dto.ToAgentBindingResponses(bindings))
}

// BindAgent 绑定智能体
// @Summary 绑定智能体到槽位或具体平台/模型
// @Description 槽位引用与直接指定二选一，重复绑定覆盖旧值
// @Tags Agents
// @Accept json
// @Produce json
// @Param name path string true "智能体名"
// @Param body body dto.BindAgentRequest true "绑定内容"
// @Success 200 {object} dto.Response[dto.AgentBindingResponse]
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/agents/{name}/binding [put]
func (h *AgentHandler) BindAgent(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.BindAgentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	binding := req.ToBinding(tenantID, c.Param("name"))
	if err := h.agentSvc.Bind(ctx, binding); err != nil {
		respondError(ctx, c, err, "failed to bind agent")
		return
	}

	dto.Success(c, dto.ToAgentBindingResponse(binding))
}

// GetAgentBinding 获取绑定详情
// @Summary 获取智能体绑定详情
// @Tags Agents
// @Accept json
// @Produce json
// @Param name path string true "智能体名"
// @Success 200 {object} dto.Response[dto.AgentBindingResponse]
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/agents/{name}/binding [get]
func (h *AgentHandler) GetAgentBinding(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	binding, err := h.agentSvc.Get(ctx, tenantID, c.Param("name"))
	if err != nil {
		respondError(ctx, c, err, "failed to get agent binding")
		return
	}
	if binding == nil {
		dto.NotFound(c, "agent binding not found")
		return
	}

	dto.Success(c, dto.ToAgentBindingResponse(binding))
}

// UnbindAgent 解除绑定
// @Summary 解除智能体绑定
// @Description 解除后该智能体解析时回退到 main 槽位
// @Tags Agents
// @Accept json
// @Produce json
// @Param name path string true "智能体名"
// @Success 204
// @Failure 404 {object} dto.ErrorResponse
// @Router /v1/agents/{name}/binding [delete]
func (h *AgentHandler) UnbindAgent(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	if err := h.agentSvc.Unbind(ctx, tenantID, c.Param("name")); err != nil {
		respondError(ctx, c, err, "failed to unbind agent")
		return
	}

	dto.NoContent(c)
}
