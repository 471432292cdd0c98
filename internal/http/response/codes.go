package response

import "net/http"

const (
	CodeOK              = 0
	CodeBadRequest      = 400
	CodeUnauthorized    = 401
	CodeForbidden       = 403
	CodeNotFound        = 404
	CodeConflict        = 409
	CodeTooManyRequests = 429
	CodeInternal        = 500
)

// HTTPStatus 业务错误码对应的 HTTP 状态码
func HTTPStatus(code int) int {
	switch code {
	case CodeOK:
		return http.StatusOK
	case CodeBadRequest, CodeUnauthorized, CodeForbidden, CodeNotFound, CodeConflict, CodeTooManyRequests, CodeInternal:
		return code
	default:
		if code >= 400 && code < 600 {
			return code
		}
		return http.StatusOK
	}
}
