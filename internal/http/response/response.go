package response

import (
	"github.com/foodhub-next/internal/constants"

	"github.com/gin-gonic/gin"
)

// Response 统一响应信封；分页接口额外携带 pagination
type Response struct {
	StatusCode int         `json:"status_code"`
	Msg        string      `json:"msg"`
	Data       interface{} `json:"data"`
	Pagination *Pagination `json:"pagination,omitempty"`
}

// Pagination 分页信息
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"page_size"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"total_page"`
}

// BuildPagination total_page 向上取整，page_size 为 0 时为 0
func BuildPagination(page, pageSize int, total int64) Pagination {
	p := Pagination{Page: page, PageSize: pageSize, Total: total}
	if pageSize > 0 {
		p.TotalPage = (total + int64(pageSize) - 1) / int64(pageSize)
	}
	return p
}

func Success(c *gin.Context, data interface{}) {
	c.JSON(HTTPStatus(CodeOK), Response{StatusCode: CodeOK, Msg: "success", Data: data})
}

func SuccessWithPage(c *gin.Context, data interface{}, pagination Pagination) {
	c.JSON(HTTPStatus(CodeOK), Response{StatusCode: CodeOK, Msg: "success", Data: data, Pagination: &pagination})
}

// Error 错误响应，HTTP 状态码与业务码一致，data 中带上请求 ID 便于排查
func Error(c *gin.Context, code int, msg string) {
	c.JSON(HTTPStatus(code), errorBody(c, code, msg))
}

func Unauthorized(c *gin.Context, msg string) {
	Error(c, CodeUnauthorized, msg)
}

func Forbidden(c *gin.Context, msg string) {
	Error(c, CodeForbidden, msg)
}

func errorBody(c *gin.Context, code int, msg string) Response {
	body := Response{StatusCode: code, Msg: msg}
	if c != nil {
		if id := c.GetString(constants.ContextKeyRequestID); id != "" {
			body.Data = gin.H{constants.ContextKeyRequestID: id}
		}
	}
	return body
}
