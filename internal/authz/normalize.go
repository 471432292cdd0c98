package authz

import (
	"strings"
)

const (
	apiV1Prefix = "/api/v1"
	rolePrefix  = "role:"
)

var allowedActions = map[string]struct{}{
	"GET": {}, "POST": {}, "PUT": {}, "PATCH": {}, "DELETE": {}, "*": {},
}

// SubjectForRole 账号角色编码对应的授权主体，如 CUSTOMER -> role:customer
func SubjectForRole(roleCode string) (string, error) {
	return NormalizeRole(roleCode)
}

// NormalizeRole 统一为 role:<小写名>，空格替换为下划线
func NormalizeRole(role string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(role))
	name = strings.TrimPrefix(name, rolePrefix)
	name = strings.ReplaceAll(strings.TrimSpace(name), " ", "_")
	if name == "" {
		return "", ErrRoleRequired
	}
	return rolePrefix + name, nil
}

// NormalizeObject 去掉 /api/v1 前缀，策略以版本无关的路由模板存储
func NormalizeObject(object string) string {
	normalized := strings.TrimSpace(object)
	if !strings.HasPrefix(normalized, "/") {
		normalized = "/" + normalized
	}
	switch {
	case normalized == apiV1Prefix:
		return "/"
	case strings.HasPrefix(normalized, apiV1Prefix+"/"):
		return strings.TrimPrefix(normalized, apiV1Prefix)
	default:
		return normalized
	}
}

// NormalizeAction HTTP 方法大写，* 表示任意方法
func NormalizeAction(action string) string {
	return strings.ToUpper(strings.TrimSpace(action))
}

func normalizePolicy(role, object, action string) (Policy, error) {
	subject, err := NormalizeRole(role)
	if err != nil {
		return Policy{}, err
	}
	act := NormalizeAction(action)
	if _, ok := allowedActions[act]; !ok {
		return Policy{}, ErrActionInvalid
	}
	return Policy{Subject: subject, Object: NormalizeObject(object), Action: act}, nil
}
