package service

import (
	"unicode"

	"github.com/foodhub-next/internal/config"
)

const (
	minPasswordLength = 6
	// bcrypt 只处理前 72 字节
	maxPasswordBytes = 72
)

// passwordPolicyError 密码不满足策略，携带 i18n 键供接口层本地化
type passwordPolicyError struct {
	key  string
	args []interface{}
}

func (e passwordPolicyError) Error() string        { return e.key }
func (e passwordPolicyError) Is(target error) bool { return target == ErrWeakPassword }
func (e passwordPolicyError) Key() string          { return e.key }
func (e passwordPolicyError) Args() []interface{}  { return e.args }

type charClassRule struct {
	enabled func(config.PasswordPolicyConfig) bool
	match   func(rune) bool
	key     string
}

// 按顺序检查，返回第一条未满足的规则
var charClassRules = []charClassRule{
	{
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RequireUpper },
		match:   unicode.IsUpper,
		key:     "error.password_require_upper",
	},
	{
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RequireLower },
		match:   unicode.IsLower,
		key:     "error.password_require_lower",
	},
	{
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RequireNumber },
		match:   unicode.IsDigit,
		key:     "error.password_require_number",
	},
	{
		enabled: func(p config.PasswordPolicyConfig) bool { return p.RequireSpecial },
		match:   func(r rune) bool { return !unicode.IsLetter(r) && !unicode.IsDigit(r) },
		key:     "error.password_require_special",
	},
}

func validatePassword(policy config.PasswordPolicyConfig, password string) error {
	minLength := max(policy.MinLength, minPasswordLength)
	if len([]rune(password)) < minLength {
		return passwordPolicyError{key: "error.password_min_length", args: []interface{}{minLength}}
	}
	if len(password) > maxPasswordBytes {
		return passwordPolicyError{key: "error.password_max_length", args: []interface{}{maxPasswordBytes}}
	}
	for _, rule := range charClassRules {
		if rule.enabled(policy) && !containsRune(password, rule.match) {
			return passwordPolicyError{key: rule.key}
		}
	}
	return nil
}

func containsRune(s string, match func(rune) bool) bool {
	for _, r := range s {
		if match(r) {
			return true
		}
	}
	return false
}
