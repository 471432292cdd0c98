package admin

import (
	"errors"
	"net/url"
	"strings"

	"github.com/foodhub-next/internal/authz"
	"github.com/foodhub-next/internal/constants"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/service"

	"github.com/gin-gonic/gin"
)

type authzPolicyPayload struct {
	Role   string `json:"role" binding:"required"`
	Object string `json:"object" binding:"required"`
	Action string `json:"action" binding:"required"`
}

// ListAuthzRoles 获取角色列表
func (h *Handler) ListAuthzRoles(c *gin.Context) {
	roles, err := h.AuthzService.ListRoles()
	if err != nil {
		respondError(c, response.CodeInternal, "error.internal_error", err)
		return
	}
	response.Success(c, roles)
}

// GetAuthzRolePolicies 获取角色策略
func (h *Handler) GetAuthzRolePolicies(c *gin.Context) {
	role := decodeRoleParam(c.Param("role"))
	if role == "" {
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", nil)
		return
	}

	policies, err := h.AuthzService.GetRolePolicies(role)
	if err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", err)
		return
	}
	response.Success(c, policies)
}

// GrantAuthzPolicy 授予角色策略
func (h *Handler) GrantAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_policy_invalid", err)
		return
	}
	actor, ok := getActor(c)
	if !ok {
		return
	}

	policy, err := h.AuthzService.GrantRolePolicy(req.Role, req.Object, req.Action)
	if err != nil {
		respondAuthzError(c, err)
		return
	}

	h.recordAudit(c, actor, service.AuthzAuditInput{
		Action: constants.AuditActionPolicyGrant,
		Role:   policy.Subject,
		Object: policy.Object,
		Method: policy.Action,
	})
	requestLog(c).Infow("admin_authz_policy_granted",
		"operator_id", actor.AccountID,
		"role", policy.Subject,
		"object", policy.Object,
		"action", policy.Action,
	)
	response.Success(c, policy)
}

// RevokeAuthzPolicy 撤销角色策略，预置策略不可撤销
func (h *Handler) RevokeAuthzPolicy(c *gin.Context) {
	var req authzPolicyPayload
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, response.CodeBadRequest, "error.authz_policy_invalid", err)
		return
	}
	actor, ok := getActor(c)
	if !ok {
		return
	}

	policy, err := h.AuthzService.RevokeRolePolicy(req.Role, req.Object, req.Action)
	if err != nil {
		respondAuthzError(c, err)
		return
	}

	h.recordAudit(c, actor, service.AuthzAuditInput{
		Action: constants.AuditActionPolicyRevoke,
		Role:   policy.Subject,
		Object: policy.Object,
		Method: policy.Action,
	})
	requestLog(c).Infow("admin_authz_policy_revoked",
		"operator_id", actor.AccountID,
		"role", policy.Subject,
		"object", policy.Object,
		"action", policy.Action,
	)
	response.Success(c, policy)
}

func respondAuthzError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, authz.ErrBuiltinPolicy):
		respondError(c, response.CodeForbidden, "error.authz_builtin_policy", nil)
	case errors.Is(err, authz.ErrRoleRequired):
		respondError(c, response.CodeBadRequest, "error.authz_role_invalid", nil)
	case errors.Is(err, authz.ErrActionInvalid):
		respondError(c, response.CodeBadRequest, "error.authz_policy_invalid", nil)
	default:
		respondError(c, response.CodeInternal, "error.internal_error", err)
	}
}

func decodeRoleParam(value string) string {
	decoded, err := url.QueryUnescape(value)
	if err != nil {
		return strings.TrimSpace(value)
	}
	return strings.TrimSpace(decoded)
}
