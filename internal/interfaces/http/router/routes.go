// Package router 提供 HTTP 路由配置
package router

import (
	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/middleware"
)

// RegisterV1Routes 注册 v1 版本路由
func RegisterV1Routes(v1 *gin.RouterGroup, h Handlers) {
	// 路由解析与用量上报：业务服务的热路径
	v1.POST("/resolve", middleware.RequirePermission(middleware.PermResolve), h.Resolve.Resolve)

	usage := v1.Group("/usage")
	{
		usage.POST("/events", middleware.RequirePermission(middleware.PermResolve), h.Usage.ReportUsage)
		usage.GET("", middleware.RequirePermission(middleware.PermUsageRead), h.Usage.GetUsage)
		usage.GET("/entries", middleware.RequirePermission(middleware.PermUsageRead), h.Usage.ListUsageEntries)
		usage.POST("/purge", middleware.RequireAdmin(), h.Usage.PurgeUsage)
	}

	// 令牌签发
	auth := v1.Group("/auth", middleware.RequireAdmin())
	{
		auth.POST("/tokens", h.Auth.IssueToken)
	}

	// 平台管理
	platforms := v1.Group("/platforms")
	{
		platforms.GET("", h.Platform.ListPlatforms)

		write := middleware.RequirePermission(middleware.PermCatalogWrite)
		platforms.POST("", write, h.Platform.CreatePlatform)
		platforms.POST("/reorder", write, h.Platform.ReorderPlatforms)
		platforms.GET("/:id", h.Platform.GetPlatform)
		platforms.PUT("/:id", write, h.Platform.UpdatePlatform)
		platforms.PUT("/:id/enabled", write, h.Platform.SetPlatformEnabled)
		platforms.DELETE("/:id", write, h.Platform.DeletePlatform)

		// 平台下的模型
		platforms.GET("/:id/models", h.Model.ListModels)
		platforms.POST("/:id/models", write, h.Model.CreateModel)
	}

	// 模型管理
	models := v1.Group("/models", middleware.RequirePermission(middleware.PermCatalogWrite))
	{
		models.PUT("/:mid", h.Model.UpdateModel)
		models.PUT("/:mid/enabled", h.Model.SetModelEnabled)
		models.DELETE("/:mid", h.Model.DeleteModel)
	}

	// 租户凭证覆盖
	credentials := v1.Group("/credentials")
	{
		credentials.GET("", h.Credential.ListCredentials)
		credentials.GET("/:pid", h.Credential.GetCredential)

		write := middleware.RequirePermission(middleware.PermCatalogWrite)
		credentials.PUT("/:pid", write, h.Credential.UpsertCredential)
		credentials.DELETE("/:pid", write, h.Credential.DeleteCredential)
	}

	// 用途槽位
	slots := v1.Group("/slots")
	{
		slots.GET("", h.Slot.ListSlots)
		slots.GET("/:name", h.Slot.GetSlot)

		write := middleware.RequirePermission(middleware.PermCatalogWrite)
		slots.POST("", write, h.Slot.CreateSlot)
		slots.PUT("/:name/target", write, h.Slot.SetSlotTarget)
		slots.DELETE("/:name", write, h.Slot.DeleteSlot)
	}

	// 智能体绑定
	agents := v1.Group("/agents")
	{
		agents.GET("", h.Agent.ListAgents)
		agents.GET("/:name/binding", h.Agent.GetAgentBinding)

		write := middleware.RequirePermission(middleware.PermCatalogWrite)
		agents.PUT("/:name/binding", write, h.Agent.BindAgent)
		agents.DELETE("/:name/binding", write, h.Agent.UnbindAgent)
	}

	// 租户管理
	tenants := v1.Group("/tenants")
	{
		tenants.GET("/current", h.Tenant.GetCurrentTenant)
		tenants.PUT("/current", h.Tenant.UpdateCurrentTenant)

		admin := middleware.RequireAdmin()
		tenants.GET("", admin, h.Tenant.ListTenants)
		tenants.POST("", admin, h.Tenant.CreateTenant)
		tenants.POST("/:id/suspend", admin, h.Tenant.SuspendTenant)
	}
}
