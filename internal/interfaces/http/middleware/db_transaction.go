// Package middleware 提供 HTTP 中间件
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/domain/repository"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

type rollbackOnlyError struct {
	status int
}

func (e rollbackOnlyError) Error() string {
	return fmt.Sprintf("rollback only: status=%d", e.status)
}

// DBTransaction 请求级事务中间件
// 管理端变更在同一事务内完成，事务开启后立即绑定租户 GUC 使行级安全策略生效；
// set_config(..., is_local=TRUE) 只在事务内有效，所以绑定必须发生在事务里。
// 状态码 >= 400 或存在 Gin 错误时回滚，否则提交。
func DBTransaction(tx repository.Transactor, tenantCtx repository.TenantContextManager) gin.HandlerFunc {
	if tx == nil || tenantCtx == nil {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		// 路由解析与用量上报是高频调用，读路径走内存快照缓存，
		// 偶发写入（槽位修复、用量落库）由各自组件按需开短事务，
		// 不让每次调用都持有请求级事务连接。
		path := c.Request.URL.Path
		if strings.HasSuffix(path, "/resolve") || strings.Contains(path, "/usage") {
			c.Next()
			return
		}

		ctx := c.Request.Context()
		tenantID := GetTenantID(ctx)

		err := tx.WithTransaction(ctx, func(txCtx context.Context) error {
			// 租户 GUC 须在任何查询之前设置
			if tenantID != "" {
				if err := tenantCtx.SetTenant(txCtx, tenantID); err != nil {
					return err
				}
			}

			c.Request = c.Request.WithContext(txCtx)
			c.Next()

			status := c.Writer.Status()
			if status >= http.StatusBadRequest || len(c.Errors) > 0 {
				return rollbackOnlyError{status: status}
			}
			return nil
		})
		if err == nil {
			return
		}

		// 业务主动回滚时响应已由 Handler 写入
		var rbErr rollbackOnlyError
		if errors.As(err, &rbErr) {
			return
		}

		// 提交失败、死锁等数据库层错误
		logger.Error(ctx, "db transaction failed", err)
		if !c.Writer.Written() && c.Writer.Status() < http.StatusBadRequest {
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{
				"code":     http.StatusInternalServerError,
				"message":  "internal server error",
				"trace_id": c.GetString("trace_id"),
			})
		}
	}
}
