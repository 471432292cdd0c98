package authz

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
)

func setupAuthzServiceTest(t *testing.T) *Service {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	svc, err := NewService(db)
	if err != nil {
		t.Fatalf("new authz service failed: %v", err)
	}
	return svc
}

func TestEnforceRoleWithGrantedPolicy(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	policy, err := svc.GrantRolePolicy("Courier", "/api/v1/orders/:id", "get")
	if err != nil {
		t.Fatalf("grant role policy failed: %v", err)
	}
	if policy != (Policy{Subject: "role:courier", Object: "/orders/:id", Action: "GET"}) {
		t.Fatalf("unexpected normalized policy: %+v", policy)
	}

	allow, err := svc.EnforceRole("COURIER", "/api/v1/orders/42", "get")
	if err != nil {
		t.Fatalf("enforce allow failed: %v", err)
	}
	if !allow {
		t.Fatalf("expected allow=true")
	}

	allow, err = svc.EnforceRole("COURIER", "/api/v1/orders/42", "PATCH")
	if err != nil {
		t.Fatalf("enforce deny failed: %v", err)
	}
	if allow {
		t.Fatalf("expected allow=false")
	}

	if _, err := svc.RevokeRolePolicy("courier", "/orders/:id", "GET"); err != nil {
		t.Fatalf("revoke role policy failed: %v", err)
	}
	allow, err = svc.EnforceRole("COURIER", "/orders/42", "GET")
	if err != nil {
		t.Fatalf("enforce after revoke failed: %v", err)
	}
	if allow {
		t.Fatalf("expected revoked policy to deny")
	}
}

func TestNormalizeObject(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "/api/v1/orders/:id/status", want: "/orders/:id/status"},
		{in: "/orders/:id", want: "/orders/:id"},
		{in: "cart", want: "/cart"},
		{in: "/api/v1", want: "/"},
		{in: "", want: "/"},
	}
	for _, item := range cases {
		got := NormalizeObject(item.in)
		if got != item.want {
			t.Fatalf("normalize object failed, in=%q want=%q got=%q", item.in, item.want, got)
		}
	}
}

func TestSubjectForRole(t *testing.T) {
	got, err := SubjectForRole(" RESTAURANT ")
	if err != nil {
		t.Fatalf("subject for role failed: %v", err)
	}
	if got != "role:restaurant" {
		t.Fatalf("unexpected subject: %s", got)
	}
	if _, err := SubjectForRole(""); err == nil {
		t.Fatalf("expected empty role to fail")
	}
}

func TestBootstrapBuiltinRoles(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles failed: %v", err)
	}
	// 重复执行不应报错
	if err := svc.BootstrapBuiltinRoles(); err != nil {
		t.Fatalf("bootstrap builtin roles again failed: %v", err)
	}

	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	wantRoles := map[string]bool{
		"role:member":     true,
		"role:customer":   true,
		"role:restaurant": true,
		"role:admin":      true,
	}
	for _, role := range roles {
		delete(wantRoles, role)
	}
	if len(wantRoles) != 0 {
		t.Fatalf("builtin roles missing: %v", wantRoles)
	}

	cases := []struct {
		role   string
		object string
		action string
		allow  bool
	}{
		{role: "CUSTOMER", object: "/api/v1/cart/:dishId", action: "POST", allow: true},
		{role: "CUSTOMER", object: "/api/v1/orders/:id/cancel", action: "PATCH", allow: true},
		{role: "CUSTOMER", object: "/api/v1/users/profile", action: "GET", allow: true},
		{role: "CUSTOMER", object: "/api/v1/orders/:id/status", action: "PATCH", allow: false},
		{role: "CUSTOMER", object: "/api/v1/dishes", action: "POST", allow: false},
		{role: "RESTAURANT", object: "/api/v1/orders/:id/status", action: "PATCH", allow: true},
		{role: "RESTAURANT", object: "/api/v1/categories/:id", action: "DELETE", allow: true},
		{role: "RESTAURANT", object: "/api/v1/orders/:id", action: "GET", allow: true},
		{role: "RESTAURANT", object: "/api/v1/cart", action: "GET", allow: false},
		{role: "RESTAURANT", object: "/api/v1/orders/:id/cancel", action: "PATCH", allow: false},
		{role: "RESTAURANT", object: "/api/v1/admin/users", action: "GET", allow: false},
		{role: "ADMIN", object: "/api/v1/admin/users/:id/status", action: "PATCH", allow: true},
		{role: "ADMIN", object: "/api/v1/orders", action: "GET", allow: true},
	}
	for _, tc := range cases {
		allow, err := svc.EnforceRole(tc.role, tc.object, tc.action)
		if err != nil {
			t.Fatalf("enforce %s %s %s failed: %v", tc.role, tc.action, tc.object, err)
		}
		if allow != tc.allow {
			t.Fatalf("enforce %s %s %s: want=%v got=%v", tc.role, tc.action, tc.object, tc.allow, allow)
		}
	}

	if _, err := svc.RevokeRolePolicy("customer", "/orders", "POST"); !errors.Is(err, ErrBuiltinPolicy) {
		t.Fatalf("expected ErrBuiltinPolicy, got %v", err)
	}

	policies, err := svc.GetRolePolicies("admin")
	if err != nil {
		t.Fatalf("get role policies failed: %v", err)
	}
	if len(policies) != 1 || policies[0].Object != "/*" || policies[0].Action != "*" {
		t.Fatalf("unexpected admin policies: %+v", policies)
	}
}

func TestGrantRolePolicyValidation(t *testing.T) {
	svc := setupAuthzServiceTest(t)
	if _, err := svc.GrantRolePolicy(" ", "/orders", "GET"); !errors.Is(err, ErrRoleRequired) {
		t.Fatalf("expected ErrRoleRequired, got %v", err)
	}
	if _, err := svc.GrantRolePolicy("courier", "/orders", "FETCH"); !errors.Is(err, ErrActionInvalid) {
		t.Fatalf("expected ErrActionInvalid, got %v", err)
	}
	if _, err := svc.GrantRolePolicy("courier", "/orders", "*"); err != nil {
		t.Fatalf("wildcard action should be accepted: %v", err)
	}
	roles, err := svc.ListRoles()
	if err != nil {
		t.Fatalf("list roles failed: %v", err)
	}
	if len(roles) != 1 || roles[0] != "role:courier" {
		t.Fatalf("unexpected roles: %v", roles)
	}
}

func TestNormalizeRole(t *testing.T) {
	for in, want := range map[string]string{
		"CUSTOMER":        "role:customer",
		"role:restaurant": "role:restaurant",
		" night shift ":   "role:night_shift",
	} {
		got, err := NormalizeRole(in)
		if err != nil || got != want {
			t.Fatalf("normalize %q: want %q got %q (%v)", in, want, got, err)
		}
	}
}
