package shared

import (
	"strconv"
	"strings"

	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// GetContextUintWithKeys 从上下文读取 uint 值并统一处理错误响应。
func GetContextUintWithKeys(c *gin.Context, key, invalidKey, typeInvalidKey string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			RespondError(c, response.CodeBadRequest, invalidKey, nil)
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, typeInvalidKey, nil)
		return 0, false
	}
}

// GetActor 读取鉴权中间件写入的当前操作者。
func GetActor(c *gin.Context) (service.Actor, bool) {
	accountID, ok := GetContextUintWithKeys(c, constants.ContextKeyAccountID, "error.unauthorized", "error.internal_error")
	if !ok {
		return service.Actor{}, false
	}
	if accountID == 0 {
		RespondError(c, response.CodeUnauthorized, "error.unauthorized", nil)
		return service.Actor{}, false
	}
	return service.Actor{
		AccountID: accountID,
		Role:      c.GetString(constants.ContextKeyRole),
	}, true
}

// ParseUintParam 解析路径中的正整数 ID，失败时返回 400。
func ParseUintParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		RespondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(id), true
}

// RequestID 读取请求追踪 ID。
func RequestID(c *gin.Context) string {
	return c.GetString(constants.ContextKeyRequestID)
}
