package shared

import (
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/i18n"
	"github.com/foodhub-next/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get(constants.ContextKeyRequestID); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, key string, err error) {
	RespondErrorWithMsg(c, code, i18n.T(i18n.ResolveLocale(c), key), err)
}

// RespondErrorWithMsg 返回自定义消息错误响应；5xx 记 error，其余记 warn。
func RespondErrorWithMsg(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		log := RequestLog(c)
		if appErr.Internal() {
			log.Errorw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", err)
		} else {
			log.Warnw("handler_error", "code", appErr.Code, "message", appErr.Message, "error", err)
		}
	}
	appErr.Write(c)
}

// RespondErrorWithArgs 返回带格式化参数的国际化错误响应。
func RespondErrorWithArgs(c *gin.Context, code int, key string, args []interface{}, err error) {
	RespondErrorWithMsg(c, code, i18n.Sprintf(i18n.ResolveLocale(c), key, args...), err)
}
