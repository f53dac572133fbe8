// Package handler 提供 HTTP 请求处理器
package handler

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/AIdeaStudio/llm-mgr-langchain/internal/interfaces/http/dto"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/errors"
	"github.com/AIdeaStudio/llm-mgr-langchain/pkg/logger"
)

// respondError 统一错误响应
// AppError 按自带状态码与错误码返回，其余记日志后回 500
func respondError(ctx context.Context, c *gin.Context, err error, fallback string) {
	if errors.IsAppError(err) {
		appErr := errors.AsAppError(err)
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    appErr.HTTPStatus,
			Message: appErr.Message,
			Error: &dto.ErrorDetail{
				ErrorCode: string(appErr.Code),
				Details:   appErr.Detail,
			},
			TraceID: c.GetString("trace_id"),
		})
		return
	}

	logger.Error(ctx, fallback, err)
	dto.InternalError(c, fallback)
}
