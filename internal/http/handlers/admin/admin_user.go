package admin

import (
	"github.com/foodhub-next/internal/constants"
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// UpdateUserStatusRequest 更新账号状态请求
type UpdateUserStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListUsers 账号列表
func (h *Handler) ListUsers(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	accounts, total, err := h.UserService.AdminList(repository.AccountListFilter{
		Page:     page,
		PageSize: pageSize,
		Keyword:  c.Query("keyword"),
		Role:     c.Query("role"),
		Status:   c.Query("status"),
	})
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, accounts, response.BuildPagination(page, pageSize, total))
}

// GetUser 账号详情
func (h *Handler) GetUser(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	profile, err := h.UserService.AdminGet(id)
	if err != nil {
		if err == service.ErrNotFound {
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
			return
		}
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, profile)
}

// UpdateUserStatus 启用/禁用账号
func (h *Handler) UpdateUserStatus(c *gin.Context) {
	actor, ok := getActor(c)
	if !ok {
		return
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}
	var req UpdateUserStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.account_status_invalid", err)
		return
	}
	account, err := h.UserService.AdminUpdateStatus(actor, id, req.Status)
	if err != nil {
		switch err {
		case service.ErrAccountStatusInvalid:
			respondError(c, response.CodeBadRequest, "error.account_status_invalid", nil)
		case service.ErrCannotDisableSelf:
			respondError(c, response.CodeBadRequest, "error.cannot_disable_self", nil)
		case service.ErrNotFound:
			respondError(c, response.CodeNotFound, "error.user_not_found", nil)
		default:
			respondError(c, response.CodeInternal, "error.internal_error", err)
		}
		return
	}
	target := account.ID
	h.recordAudit(c, actor, service.AuthzAuditInput{
		TargetAccountID: &target,
		Action:          constants.AuditActionUserStatus,
		Role:            account.RoleCode(),
		Detail:          account.Status,
	})
	response.Success(c, account)
}
