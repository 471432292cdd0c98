package authz

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/casbin/casbin/v3"
	"github.com/casbin/casbin/v3/model"
	"github.com/casbin/casbin/v3/util"
	gormadapter "github.com/casbin/gorm-adapter/v3"
	"gorm.io/gorm"
)

const casbinTableName = "casbin_rule"

// 主体可以是角色本身或继承的父角色；对象按 gin 路由模板匹配
const rbacModel = `
[request_definition]
r = sub, obj, act

[policy_definition]
p = sub, obj, act

[role_definition]
g = _, _

[policy_effect]
e = some(where (p.eft == allow))

[matchers]
m = (g(r.sub, p.sub) || r.sub == p.sub) && keyMatch2(r.obj, p.obj) && (r.act == p.act || p.act == "*")
`

var (
	// ErrUnavailable 授权服务未初始化
	ErrUnavailable = errors.New("authz service unavailable")
	// ErrBuiltinPolicy 预置策略不可撤销
	ErrBuiltinPolicy = errors.New("builtin policy is immutable")
	// ErrRoleRequired 角色为空
	ErrRoleRequired = errors.New("role is required")
	// ErrActionInvalid 动作不是 HTTP 方法或 *
	ErrActionInvalid = errors.New("action must be an http method or *")
)

// Policy 角色策略
type Policy struct {
	Subject string `json:"subject"`
	Object  string `json:"object"`
	Action  string `json:"action"`
}

// Service 基于 casbin 的角色-路由授权，策略持久化在 casbin_rule 表
type Service struct {
	enforcer *casbin.SyncedEnforcer
}

// NewService 创建授权服务并加载已有策略
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, errors.New("authz db is nil")
	}
	adapter, err := gormadapter.NewAdapterByDBUseTableName(db, "", casbinTableName)
	if err != nil {
		return nil, fmt.Errorf("create authz adapter: %w", err)
	}
	m, err := model.NewModelFromString(rbacModel)
	if err != nil {
		return nil, fmt.Errorf("load authz model: %w", err)
	}
	enforcer, err := casbin.NewSyncedEnforcer(m, adapter)
	if err != nil {
		return nil, fmt.Errorf("init authz enforcer: %w", err)
	}
	enforcer.AddFunction("keyMatch2", util.KeyMatch2Func)
	enforcer.EnableAutoSave(true)
	if err := enforcer.LoadPolicy(); err != nil {
		return nil, fmt.Errorf("load authz policy: %w", err)
	}
	return &Service{enforcer: enforcer}, nil
}

func (s *Service) ready() error {
	if s == nil || s.enforcer == nil {
		return ErrUnavailable
	}
	return nil
}

// EnforceRole 判断账号角色能否以 act 访问 obj（完整请求路径或路由模板均可）
func (s *Service) EnforceRole(roleCode, obj, act string) (bool, error) {
	if err := s.ready(); err != nil {
		return false, err
	}
	subject, err := SubjectForRole(roleCode)
	if err != nil {
		return false, err
	}
	return s.enforcer.Enforce(subject, NormalizeObject(obj), NormalizeAction(act))
}

// ReloadPolicy 从数据库重新加载策略，多实例部署时由定时任务调用
func (s *Service) ReloadPolicy() error {
	if err := s.ready(); err != nil {
		return err
	}
	return s.enforcer.LoadPolicy()
}

// ListRoles 列出所有出现在策略或继承关系中的角色
func (s *Service) ListRoles() ([]string, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	set := make(map[string]struct{})
	subjects, err := s.enforcer.GetAllSubjects()
	if err != nil {
		return nil, fmt.Errorf("list policy subjects: %w", err)
	}
	for _, subject := range subjects {
		set[subject] = struct{}{}
	}
	links, err := s.enforcer.GetNamedGroupingPolicy("g")
	if err != nil {
		return nil, fmt.Errorf("list role links: %w", err)
	}
	for _, link := range links {
		for _, role := range link {
			set[role] = struct{}{}
		}
	}

	roles := make([]string, 0, len(set))
	for role := range set {
		if strings.HasPrefix(role, rolePrefix) {
			roles = append(roles, role)
		}
	}
	sort.Strings(roles)
	return roles, nil
}

// GrantRolePolicy 为角色追加策略，返回归一化后的策略；已存在时不报错
func (s *Service) GrantRolePolicy(role, object, action string) (Policy, error) {
	if err := s.ready(); err != nil {
		return Policy{}, err
	}
	policy, err := normalizePolicy(role, object, action)
	if err != nil {
		return Policy{}, err
	}
	if _, err := s.enforcer.AddPolicy(policy.Subject, policy.Object, policy.Action); err != nil {
		return Policy{}, fmt.Errorf("grant policy: %w", err)
	}
	return policy, nil
}

// RevokeRolePolicy 撤销角色策略，预置策略返回 ErrBuiltinPolicy
func (s *Service) RevokeRolePolicy(role, object, action string) (Policy, error) {
	if err := s.ready(); err != nil {
		return Policy{}, err
	}
	policy, err := normalizePolicy(role, object, action)
	if err != nil {
		return Policy{}, err
	}
	if isBuiltinPolicy(policy) {
		return Policy{}, ErrBuiltinPolicy
	}
	if _, err := s.enforcer.RemovePolicy(policy.Subject, policy.Object, policy.Action); err != nil {
		return Policy{}, fmt.Errorf("revoke policy: %w", err)
	}
	return policy, nil
}

// GetRolePolicies 查询角色直接拥有的策略（不含继承）
func (s *Service) GetRolePolicies(role string) ([]Policy, error) {
	if err := s.ready(); err != nil {
		return nil, err
	}
	subject, err := NormalizeRole(role)
	if err != nil {
		return nil, err
	}
	rules, err := s.enforcer.GetFilteredPolicy(0, subject)
	if err != nil {
		return nil, fmt.Errorf("get role policies: %w", err)
	}
	policies := make([]Policy, 0, len(rules))
	for _, rule := range rules {
		if len(rule) < 3 {
			continue
		}
		policies = append(policies, Policy{Subject: rule[0], Object: rule[1], Action: rule[2]})
	}
	return policies, nil
}
