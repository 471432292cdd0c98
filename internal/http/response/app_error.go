package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// AppError 接口层错误：业务码、已本地化的提示与原始错误
type AppError struct {
	Code    int
	Message string
	Err     error
}

// WrapError 构造接口层错误
func WrapError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// Internal 是否为服务端错误（5xx）
func (e *AppError) Internal() bool {
	return HTTPStatus(e.Code) >= http.StatusInternalServerError
}

// Write 输出错误响应并终止后续处理
func (e *AppError) Write(c *gin.Context) {
	c.AbortWithStatusJSON(HTTPStatus(e.Code), errorBody(c, e.Code, e.Message))
}
