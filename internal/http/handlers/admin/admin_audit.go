package admin

import (
	"strconv"
	"strings"

	"github.com/foodhub-next/internal/constants"
	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/repository"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

// recordAudit 写入后台审计日志，失败仅记录告警
func (h *Handler) recordAudit(c *gin.Context, actor service.Actor, input service.AuthzAuditInput) {
	input.OperatorID = actor.AccountID
	input.OperatorEmail = c.GetString(constants.ContextKeyEmail)
	input.RequestID = handlershared.RequestID(c)
	if err := h.AuditService.RecordAuthz(input); err != nil {
		requestLog(c).Warnw("admin_audit_record_failed", "action", input.Action, "error", err)
	}
}

// ListAuthzAuditLogs 后台审计日志列表
func (h *Handler) ListAuthzAuditLogs(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	filter := repository.AuthzAuditLogListFilter{
		Page:     page,
		PageSize: pageSize,
		Action:   strings.TrimSpace(c.Query("action")),
		Role:     strings.TrimSpace(c.Query("role")),
	}
	var ok bool
	if filter.OperatorID, ok = parseUintQuery(c, "operator_id"); !ok {
		return
	}
	if filter.TargetAccountID, ok = parseUintQuery(c, "target_account_id"); !ok {
		return
	}
	if filter.CreatedFrom, ok = parseTimeQuery(c, "created_from"); !ok {
		return
	}
	if filter.CreatedTo, ok = parseTimeQuery(c, "created_to"); !ok {
		return
	}

	items, total, err := h.AuditService.ListAuthzAuditLogs(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

// ListLoginLogs 登录日志列表
func (h *Handler) ListLoginLogs(c *gin.Context) {
	page, pageSize := handlershared.QueryPagination(c)

	filter := repository.LoginLogListFilter{
		Page:       page,
		PageSize:   pageSize,
		Email:      strings.TrimSpace(c.Query("email")),
		Status:     strings.TrimSpace(c.Query("status")),
		FailReason: strings.TrimSpace(c.Query("fail_reason")),
		ClientIP:   strings.TrimSpace(c.Query("client_ip")),
	}
	var ok bool
	if filter.AccountID, ok = parseUintQuery(c, "account_id"); !ok {
		return
	}
	if filter.CreatedFrom, ok = parseTimeQuery(c, "created_from"); !ok {
		return
	}
	if filter.CreatedTo, ok = parseTimeQuery(c, "created_to"); !ok {
		return
	}

	items, total, err := h.AuditService.ListLoginLogs(filter)
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.SuccessWithPage(c, items, response.BuildPagination(page, pageSize, total))
}

func parseUintQuery(c *gin.Context, key string) (uint, bool) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return 0, true
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.bad_request", nil)
		return 0, false
	}
	return uint(value), true
}
