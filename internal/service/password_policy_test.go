package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/foodhub-next/internal/config"
)

func TestValidatePassword(t *testing.T) {
	strict := config.PasswordPolicyConfig{
		MinLength:      8,
		RequireUpper:   true,
		RequireLower:   true,
		RequireNumber:  true,
		RequireSpecial: true,
	}
	cases := []struct {
		name     string
		policy   config.PasswordPolicyConfig
		password string
		key      string
	}{
		{name: "default_floor", policy: config.PasswordPolicyConfig{MinLength: 2}, password: "abc12", key: "error.password_min_length"},
		{name: "default_ok", policy: config.PasswordPolicyConfig{}, password: "abcdef", key: ""},
		{name: "too_short", policy: strict, password: "Ab1!", key: "error.password_min_length"},
		{name: "missing_upper", policy: strict, password: "abcdef1!", key: "error.password_require_upper"},
		{name: "missing_lower", policy: strict, password: "ABCDEF1!", key: "error.password_require_lower"},
		{name: "missing_number", policy: strict, password: "Abcdefg!", key: "error.password_require_number"},
		{name: "missing_special", policy: strict, password: "Abcdefg1", key: "error.password_require_special"},
		{name: "strict_ok", policy: strict, password: "Abcdef1!", key: ""},
		{name: "too_long", policy: config.PasswordPolicyConfig{}, password: strings.Repeat("a", 73), key: "error.password_max_length"},
		{name: "space_is_special", policy: strict, password: "Abcdef1 ", key: ""},
		{name: "unicode_length", policy: config.PasswordPolicyConfig{}, password: "mậtkhẩu", key: ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := validatePassword(tc.policy, tc.password)
			if tc.key == "" {
				if err != nil {
					t.Fatalf("expected password to pass, got %v", err)
				}
				return
			}
			if !errors.Is(err, ErrWeakPassword) {
				t.Fatalf("expected ErrWeakPassword, got %v", err)
			}
			var policyErr passwordPolicyError
			if !errors.As(err, &policyErr) {
				t.Fatalf("expected passwordPolicyError, got %T", err)
			}
			if policyErr.Key() != tc.key {
				t.Fatalf("unexpected key: want=%s got=%s", tc.key, policyErr.Key())
			}
		})
	}
}

func TestPasswordMinLengthArgs(t *testing.T) {
	err := validatePassword(config.PasswordPolicyConfig{MinLength: 10}, "short")
	var policyErr passwordPolicyError
	if !errors.As(err, &policyErr) {
		t.Fatalf("expected passwordPolicyError, got %v", err)
	}
	args := policyErr.Args()
	if len(args) != 1 || args[0] != 10 {
		t.Fatalf("unexpected args: %v", args)
	}
}
