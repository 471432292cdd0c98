package authz

import "fmt"

// RoleSeed 预置角色定义
type RoleSeed struct {
	Role      string
	Inherits  []string
	Policies  []Policy
	Immutable bool
}

// BuiltinRoleSeeds 系统预置角色矩阵，角色名与账号角色编码一一对应
func BuiltinRoleSeeds() []RoleSeed {
	return []RoleSeed{
		{
			Role: "member",
			Policies: []Policy{
				{Object: "/users/profile", Action: "GET"},
				{Object: "/users/profile", Action: "PATCH"},
				{Object: "/orders/:id", Action: "GET"},
				{Object: "/orders/:id/ws", Action: "GET"},
			},
			Immutable: true,
		},
		{
			Role:     "customer",
			Inherits: []string{"member"},
			Policies: []Policy{
				{Object: "/cart", Action: "GET"},
				{Object: "/cart", Action: "DELETE"},
				{Object: "/cart/:dishId", Action: "POST"},
				{Object: "/cart/:dishId", Action: "DELETE"},
				{Object: "/cart/item/:dishId", Action: "PATCH"},
				{Object: "/orders", Action: "POST"},
				{Object: "/orders/my-orders", Action: "GET"},
				{Object: "/orders/:id/cancel", Action: "PATCH"},
			},
			Immutable: true,
		},
		{
			Role:     "restaurant",
			Inherits: []string{"member"},
			Policies: []Policy{
				{Object: "/restaurants/profile", Action: "GET"},
				{Object: "/restaurants/:id", Action: "PATCH"},
				{Object: "/restaurants/:id", Action: "DELETE"},
				{Object: "/categories", Action: "*"},
				{Object: "/categories/:id", Action: "*"},
				{Object: "/dishes", Action: "POST"},
				{Object: "/dishes/:id", Action: "PATCH"},
				{Object: "/dishes/:id", Action: "DELETE"},
				{Object: "/orders/restaurant-orders", Action: "GET"},
				{Object: "/orders/:id/status", Action: "PATCH"},
			},
			Immutable: true,
		},
		{
			Role: "admin",
			Policies: []Policy{
				{Object: "/*", Action: "*"},
			},
			Immutable: true,
		},
	}
}

// BootstrapBuiltinRoles 写入预置角色的继承关系与策略，可重复执行
func (s *Service) BootstrapBuiltinRoles() error {
	if err := s.ready(); err != nil {
		return err
	}
	var links, rules [][]string
	for _, seed := range BuiltinRoleSeeds() {
		role, err := NormalizeRole(seed.Role)
		if err != nil {
			return err
		}
		for _, parent := range seed.Inherits {
			parentRole, err := NormalizeRole(parent)
			if err != nil {
				return err
			}
			links = append(links, []string{role, parentRole})
		}
		for _, item := range seed.Policies {
			policy, err := normalizePolicy(role, item.Object, item.Action)
			if err != nil {
				return fmt.Errorf("builtin policy %s %s: %w", role, item.Object, err)
			}
			rules = append(rules, []string{policy.Subject, policy.Object, policy.Action})
		}
	}

	missingLinks, err := filterMissing(links, func(params ...interface{}) (bool, error) {
		return s.enforcer.HasNamedGroupingPolicy("g", params...)
	})
	if err != nil {
		return err
	}
	if len(missingLinks) > 0 {
		if _, err := s.enforcer.AddNamedGroupingPolicies("g", missingLinks); err != nil {
			return fmt.Errorf("link builtin roles: %w", err)
		}
	}
	missingRules, err := filterMissing(rules, s.enforcer.HasPolicy)
	if err != nil {
		return err
	}
	if len(missingRules) > 0 {
		if _, err := s.enforcer.AddPolicies(missingRules); err != nil {
			return fmt.Errorf("add builtin policies: %w", err)
		}
	}
	return nil
}

func filterMissing(rows [][]string, has func(params ...interface{}) (bool, error)) ([][]string, error) {
	missing := make([][]string, 0, len(rows))
	for _, row := range rows {
		params := make([]interface{}, len(row))
		for i, v := range row {
			params[i] = v
		}
		exists, err := has(params...)
		if err != nil {
			return nil, fmt.Errorf("check builtin rule %v: %w", row, err)
		}
		if !exists {
			missing = append(missing, row)
		}
	}
	return missing, nil
}

func isBuiltinPolicy(policy Policy) bool {
	for _, seed := range BuiltinRoleSeeds() {
		if !seed.Immutable {
			continue
		}
		role, err := NormalizeRole(seed.Role)
		if err != nil || role != policy.Subject {
			continue
		}
		for _, item := range seed.Policies {
			if NormalizeObject(item.Object) == policy.Object && NormalizeAction(item.Action) == policy.Action {
				return true
			}
		}
	}
	return false
}
