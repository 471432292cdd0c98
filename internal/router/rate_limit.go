package router

import (
	"bytes"
	"encoding/json"
	"io"
	"strconv"
	"strings"

	handlershared "github.com/foodhub-next/internal/http/handlers/shared"
	"github.com/foodhub-next/internal/http/response"
	"github.com/foodhub-next/internal/i18n"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

// RateLimitKeyFunc 从请求中提取限流维度
type RateLimitKeyFunc func(*gin.Context) string

// RateLimitRule 固定窗口限流规则，窗口或次数为 0 时不限流
type RateLimitRule struct {
	Prefix        string
	WindowSeconds int
	MaxRequests   int
	MessageKey    string
}

func (r RateLimitRule) enabled() bool {
	return r.WindowSeconds > 0 && r.MaxRequests > 0
}

func (r RateLimitRule) key(subject string) string {
	if r.Prefix == "" {
		return subject
	}
	return r.Prefix + ":" + subject
}

func (r RateLimitRule) messageKey() string {
	if key := strings.TrimSpace(r.MessageKey); key != "" {
		return key
	}
	return "error.rate_limited"
}

// 返回 {当前计数, 剩余秒数}
var rateLimitScript = redis.NewScript(`
local current = redis.call("INCR", KEYS[1])
if current == 1 then
	redis.call("EXPIRE", KEYS[1], ARGV[1])
end
return {current, redis.call("TTL", KEYS[1])}
`)

// RateLimitMiddleware 基于 Redis 计数的登录/注册类接口限流
func RateLimitMiddleware(client *redis.Client, rule RateLimitRule, keyFunc RateLimitKeyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if client == nil || !rule.enabled() {
			c.Next()
			return
		}

		subject := ""
		if keyFunc != nil {
			subject = strings.TrimSpace(keyFunc(c))
		}
		if subject == "" {
			subject = c.ClientIP()
		}

		counts, err := rateLimitScript.Run(c.Request.Context(), client, []string{rule.key(subject)}, rule.WindowSeconds).Int64Slice()
		if err != nil || len(counts) < 2 {
			handlershared.RequestLog(c).Warnw("rate_limit_check_failed", "prefix", rule.Prefix, "error", err)
			response.Error(c, response.CodeInternal, i18n.T(i18n.ResolveLocale(c), "error.rate_limit_unavailable"))
			c.Abort()
			return
		}
		if counts[0] <= int64(rule.MaxRequests) {
			c.Next()
			return
		}

		wait := int(counts[1])
		if wait < 1 {
			wait = rule.WindowSeconds
		}
		c.Header("Retry-After", strconv.Itoa(wait))
		response.Error(c, response.CodeTooManyRequests, i18n.Sprintf(i18n.ResolveLocale(c), rule.messageKey(), wait))
		c.Abort()
	}
}

// KeyByIP 按客户端 IP 限流
func KeyByIP(c *gin.Context) string {
	return c.ClientIP()
}

// KeyByIPAndJSONField 按 JSON 字段（如 email）+ IP 限流，字段缺失时退化为 IP
func KeyByIPAndJSONField(field string) RateLimitKeyFunc {
	return func(c *gin.Context) string {
		value := strings.ToLower(peekJSONStringField(c, field))
		if value == "" {
			return c.ClientIP()
		}
		return value + "|" + c.ClientIP()
	}
}

// peekJSONStringField 读取请求体中的字符串字段，并还原请求体供后续绑定
func peekJSONStringField(c *gin.Context, field string) string {
	if c == nil || c.Request == nil || c.Request.Body == nil {
		return ""
	}
	body, err := io.ReadAll(c.Request.Body)
	c.Request.Body = io.NopCloser(bytes.NewReader(body))
	if err != nil || len(body) == 0 {
		return ""
	}
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return ""
	}
	var text string
	if err := json.Unmarshal(payload[field], &text); err != nil {
		return ""
	}
	return strings.TrimSpace(text)
}
