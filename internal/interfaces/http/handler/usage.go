// Package handler 提供 HTTP 请求处理器
package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/application/usage"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/service"
	rediscache "github.com/AIdeaStudio/llm-mgr-langchain/internal/infrastructure/persistence/redis"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// usageReportTTL 聚合报表缓存时长，上报路径会主动失效
const usageReportTTL = 30 * time.Second

// UsageHandler 用量处理器
type UsageHandler struct {
	recorder service.UsageRecorder
	query    *usage.Query
	cache    *rediscache.Cache
}

// NewUsageHandler 创建用量处理器
func NewUsageHandler(recorder service.UsageRecorder, query *usage.Query, cache *rediscache.Cache) *UsageHandler {
	return &UsageHandler{
		recorder: recorder,
		query:    query,
		cache:    cache,
	}
}

// ReportUsage 上报一次 LLM 调用结果
// @Summary 上报一次 LLM 调用的用量
// @Description 提供商未返回用量时按模型家族本地估算；记录失败不影响响应
// @Tags Usage
// @Accept json
// @Produce json
// @Param body body dto.UsageEventRequest true "调用结果"
// @Success 202 {object} dto.Response[gin.H]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/usage/events [post]
func (h *UsageHandler) ReportUsage(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UsageEventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		dto.BadRequest(c, "invalid request body: "+err.Error())
		return
	}

	h.recorder.OnStart(ctx, req.CorrelationID, req.ToStart(tenantID))
	if req.Error != "" {
		h.recorder.OnError(ctx, req.CorrelationID, errors.New(req.Error))
	} else {
		h.recorder.OnSuccess(ctx, req.CorrelationID, req.ProviderUsage(), req.OutputText)
	}

	// 报表缓存失效尽力而为
	_ = h.cache.InvalidateUsage(ctx, tenantID)

	dto.Accepted(c, gin.H{"correlation_id": req.CorrelationID})
}

// GetUsage 查询用量聚合
// @Summary 查询时间窗口内的用量聚合
// @Description 缺省窗口为最近 30 天，可按智能体/提供商/模型过滤，可选分智能体与按日聚合
// @Tags Usage
// @Accept json
// @Produce json
// @Param start query string false "起始时间 (RFC3339)"
// @Param end query string false "结束时间 (RFC3339)"
// @Param agent query string false "按智能体过滤"
// @Param provider query string false "按提供商过滤"
// @Param model query string false "按模型过滤"
// @Param by_agent query bool false "是否分智能体聚合"
// @Param daily query bool false "是否按日聚合"
// @Success 200 {object} dto.Response[usage.Report]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/usage [get]
func (h *UsageHandler) GetUsage(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UsageQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		dto.BadRequest(c, "invalid query params: "+err.Error())
		return
	}

	start, end, err := req.Window()
	if err != nil {
		dto.BadRequest(c, "invalid time window: "+err.Error())
		return
	}
	opts := req.ToOptions()

	digest := fmt.Sprintf("%d:%d:%s:%s:%s:%t:%t",
		start.Unix(), end.Unix(), req.Agent, req.Provider, req.Model, req.ByAgent, req.Daily)
	raw, err := h.cache.GetOrLoadSafe(ctx, rediscache.UsageReportKey(tenantID, digest), usageReportTTL, func() (interface{}, error) {
		return h.query.GetUsage(ctx, tenantID, start, end, opts)
	})
	if err != nil {
		respondError(ctx, c, err, "failed to query usage")
		return
	}

	var report usage.Report
	if err := json.Unmarshal(raw, &report); err != nil {
		respondError(ctx, c, err, "failed to decode usage report")
		return
	}

	dto.Success(c, report)
}

// ListUsageEntries 分页查询用量明细
// @Summary 分页查询用量明细
// @Tags Usage
// @Accept json
// @Produce json
// @Param start query string false "起始时间 (RFC3339)"
// @Param end query string false "结束时间 (RFC3339)"
// @Param page query int false "页码" default(1)
// @Param page_size query int false "每页条数" default(20)
// @Success 200 {object} dto.Response[[]entity.UsageLogEntry]
// @Failure 400 {object} dto.ErrorResponse
// @Router /v1/usage/entries [get]
func (h *UsageHandler) ListUsageEntries(c *gin.Context) {
	ctx := c.Request.Context()
	tenantID := middleware.GetTenantIDFromGin(c)

	var req dto.UsageQueryRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		dto.BadRequest(c, "invalid query params: "+err.Error())
		return
	}
	start, end, err := req.Window()
	if err != nil {
		dto.BadRequest(c, "invalid time window: "+err.Error())
		return
	}

	pageReq := dto.BindPage(c)
	result, err := h.query.ListEntries(ctx, tenantID, start, end, repository.NewPagination(pageReq.Page, pageReq.PageSize))
	if err != nil {
		respondError(ctx, c, err, "failed to list usage entries")
		return
	}

	meta := dto.NewPageMeta(pageReq.Page, pageReq.PageSize, int(result.Total))
	dto.SuccessWithPage(c, result.Items, meta)
}

// PurgeUsage 按保留期清理过期明细
// @Summary 立即执行一次用量明细保留期清理
// @Description 删除早于配置保留期的明细；保留期为 0 时不执行
// @Tags Usage
// @Produce json
// @Success 200 {object} dto.Response[gin.H]
// @Failure 500 {object} dto.ErrorResponse
// @Router /v1/usage/purge [post]
func (h *UsageHandler) PurgeUsage(c *gin.Context) {
	ctx := c.Request.Context()

	deleted, err := h.query.PurgeExpired(ctx)
	if err != nil {
		respondError(ctx, c, err, "failed to purge usage entries")
		return
	}

	dto.Success(c, gin.H{"deleted": deleted})
}
