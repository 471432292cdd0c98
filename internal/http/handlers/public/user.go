package public

import (
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateProfileRequest 更新资料请求，缺省字段不修改
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Phone    *string `json:"phone"`
	FullName *string `json:"full_name"`
	Address  *string `json:"address"`
	Avatar   *string `json:"avatar"`
}

// GetProfile 获取当前账号资料
func (h *Handler) GetProfile(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	profile, err := h.UserService.GetProfile(actor.AccountID)
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, profile)
}

// UpdateProfile 更新当前账号资料
func (h *Handler) UpdateProfile(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	profile, err := h.UserService.UpdateProfile(actor.AccountID, service.UpdateProfileInput{
		Username: req.Username,
		Phone:    req.Phone,
		FullName: req.FullName,
		Address:  req.Address,
		Avatar:   req.Avatar,
	})
	if err != nil {
		respondWithMappedError(c, err, accountErrorRules, response.CodeInternal, "error.internal_error")
		return
	}
	response.Success(c, profile)
}
